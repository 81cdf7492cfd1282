package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/veil-notes/veil/internal/constants"
)

func GetConfigPath(homeDir string) string {
	return filepath.Join(
		homeDir,
		constants.ConfigDir,
		constants.ConfigFile+"."+constants.ConfigFileType,
	)
}

func GetFiltersPath(homeDir string) string {
	return filepath.Join(homeDir, constants.ConfigDir, constants.FiltersFile)
}

func GetLogPath(homeDir string) string {
	return filepath.Join(homeDir, constants.ConfigDir, constants.LogFile)
}

// EnsureConfigExists creates the config directory and an empty settings
// file when missing, then verifies the settings name a vault.
func EnsureConfigExists(homeDir string) error {
	configPath := GetConfigPath(homeDir)
	configDir := filepath.Dir(configPath)

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		file, err := os.Create(configPath)
		if err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		file.Close()
	} else if err != nil {
		return fmt.Errorf("failed to check config file existence: %w", err)
	}

	cfg, err := Load(homeDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if strings.TrimSpace(cfg.VaultDir) == "" {
		return &ConfigInitError{
			msg: "no vault directory is configured; run 'veil init' first",
		}
	}

	return nil
}
