package config_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/veil-notes/veil/internal/config"
)

func writeConfig(t testing.TB, home string, cfg map[string]interface{}) {
	t.Helper()

	configPath := config.GetConfigPath(home)
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("failed to create config directory: %v", err)
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("failed to marshal config data: %v", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
}

func TestLoadAcceptsSupportedEditors(t *testing.T) {
	editors := []string{"nvim", "obsidian", "vscode", "vim", "nano"}

	for _, editor := range editors {
		editor := editor
		t.Run(editor, func(t *testing.T) {
			home := t.TempDir()
			writeConfig(t, home, map[string]interface{}{
				"vault_dir": filepath.Join(home, "vault"),
				"editor":    editor,
			})

			cfg, err := config.Load(home)
			if err != nil {
				t.Fatalf("expected load to succeed for editor %q: %v", editor, err)
			}

			if cfg.Editor != editor {
				t.Fatalf("expected editor %q, got %q", editor, cfg.Editor)
			}
		})
	}
}

func TestLoadRejectsUnsupportedEditor(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, map[string]interface{}{
		"vault_dir": filepath.Join(home, "vault"),
		"editor":    "unsupported",
	})

	if _, err := config.Load(home); err == nil {
		t.Fatal("expected load to fail for unsupported editor")
	}
}

func TestLoadAppliesDefaultsToEmptyFile(t *testing.T) {
	home := t.TempDir()
	configPath := config.GetConfigPath(home)
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("failed to create config directory: %v", err)
	}
	if err := os.WriteFile(configPath, nil, 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("expected load to succeed for empty file: %v", err)
	}

	if cfg.Editor != "nvim" {
		t.Fatalf("expected default editor nvim, got %q", cfg.Editor)
	}
	if !cfg.Search.EnableBody {
		t.Fatal("expected body search enabled by default")
	}
	if len(cfg.Search.IgnoredFolders) == 0 {
		t.Fatal("expected default ignored folders")
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("expected default log level info, got %q", cfg.Logging.Level)
	}
}

func TestLoadMergesPartialFileOverDefaults(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, map[string]interface{}{
		"vault_dir": filepath.Join(home, "vault"),
	})

	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("expected load to succeed: %v", err)
	}

	if cfg.VaultDir == "" {
		t.Fatal("stored vault_dir lost")
	}
	if cfg.Editor != "nvim" {
		t.Fatalf("missing editor should default to nvim, got %q", cfg.Editor)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, map[string]interface{}{
		"vault_dir": filepath.Join(home, "vault"),
		"editor":    "vim",
	})

	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	cfg.Search.EnableBody = false
	if err := cfg.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	reloaded, err := config.Load(home)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Search.EnableBody {
		t.Fatal("saved enable_body=false was not persisted")
	}
	if reloaded.Editor != "vim" {
		t.Fatalf("editor changed across round trip: %q", reloaded.Editor)
	}
}

func TestEnsureConfigExistsRequiresVault(t *testing.T) {
	home := t.TempDir()

	err := config.EnsureConfigExists(home)
	if err == nil {
		t.Fatal("expected an init error when no vault is configured")
	}

	var initErr *config.ConfigInitError
	if !errors.As(err, &initErr) {
		t.Fatalf("expected ConfigInitError, got %v", err)
	}

	// The bootstrap should still have created the empty settings file.
	if _, statErr := os.Stat(config.GetConfigPath(home)); statErr != nil {
		t.Fatalf("config file not created: %v", statErr)
	}
}

func TestEnsureConfigExistsAcceptsConfiguredVault(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, map[string]interface{}{
		"vault_dir": filepath.Join(home, "vault"),
	})

	if err := config.EnsureConfigExists(home); err != nil {
		t.Fatalf("expected configured vault to pass: %v", err)
	}
}

func TestPathsDeriveFromHome(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, map[string]interface{}{
		"vault_dir": filepath.Join(home, "vault"),
	})

	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if got := cfg.FiltersPath(); got != config.GetFiltersPath(home) {
		t.Fatalf("FiltersPath = %q, want %q", got, config.GetFiltersPath(home))
	}
	if got := cfg.LogPath(); got != config.GetLogPath(home) {
		t.Fatalf("LogPath = %q, want %q", got, config.GetLogPath(home))
	}
}
