package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// SearchConfig controls what the search index reads.
type SearchConfig struct {
	EnableBody     bool     `json:"enable_body"     yaml:"enable_body"`
	IgnoredFolders []string `json:"ignored_folders" yaml:"ignored_folders"`
}

// LoggingConfig controls the structured log file.
type LoggingConfig struct {
	Level string `json:"level" yaml:"level"`
}

// Config carries the application settings persisted under the config
// directory. Filter rules persist separately; see the filter package.
type Config struct {
	VaultDir   string        `json:"vault_dir"   yaml:"vaultdir"`
	Editor     string        `json:"editor"      yaml:"editor"`
	EditorArgs string        `json:"editor_args" yaml:"editorargs"`
	Search     SearchConfig  `json:"search"      yaml:"search"`
	Logging    LoggingConfig `json:"logging"     yaml:"logging"`

	home string
}

var validEditorNames = []string{"nvim", "vim", "vscode", "code", "nano", "obsidian", "custom"}

var ValidEditors = func() map[string]bool {
	editors := make(map[string]bool, len(validEditorNames))
	for _, editor := range validEditorNames {
		editors[editor] = true
	}

	return editors
}()

func ValidateEditor(editor string) error {
	if _, valid := ValidEditors[editor]; valid {
		return nil
	}

	return fmt.Errorf(
		"invalid editor: %q. Please choose from %s.",
		editor,
		validEditorList(),
	)
}

func validEditorList() string {
	quoted := make([]string, len(validEditorNames))
	for i, name := range validEditorNames {
		quoted[i] = fmt.Sprintf("'%s'", name)
	}

	if len(quoted) == 0 {
		return ""
	}

	if len(quoted) == 1 {
		return quoted[0]
	}

	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}

func newConfig(home string) *Config {
	return &Config{
		Editor: "nvim",
		Search: SearchConfig{
			EnableBody:     true,
			IgnoredFolders: []string{".obsidian", ".git", ".trash"},
		},
		Logging: LoggingConfig{Level: "info"},
		home:    home,
	}
}

func (cfg *Config) ensureDefaults() {
	if strings.TrimSpace(cfg.Editor) == "" {
		cfg.Editor = "nvim"
	}
	if cfg.Search.IgnoredFolders == nil {
		cfg.Search.IgnoredFolders = []string{".obsidian", ".git", ".trash"}
	}
	if strings.TrimSpace(cfg.Logging.Level) == "" {
		cfg.Logging.Level = "info"
	}
}

// Load reads the settings file under home, layering stored fields over the
// defaults. An empty file, as created by EnsureConfigExists, yields the
// defaults untouched.
func Load(home string) (*Config, error) {
	path := GetConfigPath(home)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := newConfig(home)
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg.ensureDefaults()

	if cfg.Editor != "" {
		if err := ValidateEditor(cfg.Editor); err != nil {
			return nil, err
		}
	}

	cfg.syncViper()
	return cfg, nil
}

// Save validates, mirrors the settings into viper, and writes the file.
func (cfg *Config) Save() error {
	if cfg.Editor != "" {
		if err := ValidateEditor(cfg.Editor); err != nil {
			return err
		}
	}

	cfg.syncViper()

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	configPath := cfg.GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

func (cfg *Config) syncViper() {
	viper.Set("vault_dir", cfg.VaultDir)
	viper.Set("editor", cfg.Editor)
	viper.Set("editor_args", cfg.EditorArgs)
	viper.Set("enable_body", cfg.Search.EnableBody)
	if cfg.Search.IgnoredFolders == nil {
		viper.Set("ignored_folders", []string{})
	} else {
		viper.Set("ignored_folders", append([]string(nil), cfg.Search.IgnoredFolders...))
	}
	viper.Set("log_level", cfg.Logging.Level)
}

// GetConfigPath returns the settings file path for the config's home.
func (cfg *Config) GetConfigPath() string {
	return GetConfigPath(cfg.home)
}

// FiltersPath returns the filter rules file path for the config's home.
func (cfg *Config) FiltersPath() string {
	return GetFiltersPath(cfg.home)
}

// LogPath returns the structured log file path for the config's home.
func (cfg *Config) LogPath() string {
	return GetLogPath(cfg.home)
}

// SetVaultDir updates the vault location and persists the change.
func (cfg *Config) SetVaultDir(dir string) error {
	cfg.VaultDir = dir
	return cfg.Save()
}

// ChangeEditor validates and persists a new editor choice.
func (cfg *Config) ChangeEditor(editor string) error {
	if err := ValidateEditor(editor); err != nil {
		return err
	}

	cfg.Editor = editor
	return cfg.Save()
}
