package search

import "github.com/veil-notes/veil/internal/metadata"

// Config describes index behavior.
type Config struct {
	// EnableBody controls whether queries scan note bodies in addition to
	// titles and front matter.
	EnableBody bool
	// IgnoredFolders contains directory names that should be skipped when
	// indexing. Paths containing any of these folders will not be indexed.
	IgnoredFolders []string
}

// Query represents a search request against the index.
type Query struct {
	// Term is the free-text query to evaluate against indexed content.
	Term string
	// Tags enumerates tag names. A note matches when it carries at least one
	// of them.
	Tags []string
	// Metadata filters require front-matter fields to carry one of the listed
	// values. Every key must be satisfied for a note to match.
	Metadata map[string][]string
}

// Result captures a note match from the index. Record carries the note's
// decoded front matter so surfaces can apply visibility rules without
// re-reading the file.
type Result struct {
	Path      string
	Title     string
	Snippet   string
	MatchFrom string
	Record    *metadata.Record
}
