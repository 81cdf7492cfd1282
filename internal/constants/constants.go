package constants

const (
	Version        = `0.1.0`
	ConfigFile     = `cfg`
	ConfigFileType = `json`
	ConfigDir      = `/.veil/`

	FiltersFile = `filters.json`
	LogFile     = `veil.log`

	SnippetDir  = `.obsidian/snippets`
	SnippetFile = `veil.css`

	NoteExtension = `.md`
)
