package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"

	"github.com/veil-notes/veil/internal/config"
	"github.com/veil-notes/veil/internal/constants"
	"github.com/veil-notes/veil/internal/editor"
	"github.com/veil-notes/veil/internal/filter"
	"github.com/veil-notes/veil/internal/logger"
	"github.com/veil-notes/veil/internal/search"
	indexsvc "github.com/veil-notes/veil/internal/services/index"
	"github.com/veil-notes/veil/internal/vault"
	"github.com/veil-notes/veil/internal/visibility"
)

type State struct {
	Config     *config.Config
	Home       string
	Vault      string
	Handler    *vault.Handler
	Cache      *vault.Cache
	Engine     *visibility.Engine
	Editor     *editor.Editor
	Watcher    *VaultWatcher
	Index      IndexService
	Logger     *logger.Logger
	RootStatus *RootStatus
}

// RootStatus carries the shared status line rendered beneath interactive
// surfaces.
type RootStatus struct {
	mu   sync.Mutex
	line string
}

func (r *RootStatus) Set(line string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.line = line
	r.mu.Unlock()
}

func (r *RootStatus) Value() string {
	if r == nil {
		return ""
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.line
}

// IndexService exposes the shared search index snapshots produced by the
// vault index manager.
type IndexService interface {
	AcquireSnapshot() (*search.Index, error)
	QueueUpdate(string)
	Stats() indexsvc.Stats
	Close() error
}

func NewState() (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadConfig(home)
	if err != nil {
		return nil, err
	}

	log, err := logger.Open(cfg.LogPath(), logger.Config{Level: cfg.Logging.Level})
	if err != nil {
		log = logger.Nop()
	}

	handler := vault.NewHandler(cfg.VaultDir, cfg.Search.IgnoredFolders)
	cache := vault.NewCache(cfg.VaultDir, log)

	filterSet, err := filter.Load(cfg.FiltersPath())
	if err != nil {
		return nil, fmt.Errorf("loading filters: %w", err)
	}
	engine := visibility.NewEngine(filterSet, cfg.FiltersPath(), cache, log)

	// An unconfigured install has no vault to watch or index yet; init has
	// to be able to run before either exists.
	var watcher *VaultWatcher
	var indexService IndexService
	if cfg.VaultDir != "" {
		watcher, err = NewVaultWatcher(cfg.VaultDir)
		if err != nil {
			return nil, fmt.Errorf("failed to create vault watcher: %w", err)
		}

		searchCfg := search.Config{
			EnableBody:     cfg.Search.EnableBody,
			IgnoredFolders: append([]string(nil), cfg.Search.IgnoredFolders...),
		}
		svc := indexsvc.NewService(cfg.VaultDir, searchCfg, log)
		indexService = svc
		watcher.OnChange(func(rel string) {
			cache.Invalidate(filepath.FromSlash(rel))
			svc.QueueUpdate(rel)
			engine.Invalidate()
		})
		watcher.OnClose(func() {
			_ = svc.Close()
		})
	}

	return &State{
		Config:     cfg,
		Home:       home,
		Vault:      cfg.VaultDir,
		Handler:    handler,
		Cache:      cache,
		Engine:     engine,
		Editor:     editor.New(cfg),
		Watcher:    watcher,
		Index:      indexService,
		Logger:     log,
		RootStatus: &RootStatus{},
	}, nil
}

// RequireVault guards commands that cannot run without a configured vault.
func (s *State) RequireVault() error {
	if s == nil || s.Vault == "" {
		return errors.New("no vault configured; run `veil init <vault-dir>` first")
	}
	if _, err := os.Stat(s.Vault); err != nil {
		return fmt.Errorf("vault directory %q: %w", s.Vault, err)
	}
	return nil
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory. err: %s", err)
	}

	return home, nil
}

func LoadConfig(home string) (*config.Config, error) {
	viper.AddConfigPath(home + constants.ConfigDir)
	viper.SetConfigName(constants.ConfigFile)
	viper.SetConfigType(constants.ConfigFileType)
	viper.ReadInConfig()

	// A missing vault is not fatal here: init has to be able to run before
	// one is configured, and every other command guards with RequireVault.
	if err := config.EnsureConfigExists(home); err != nil {
		var initErr *config.ConfigInitError
		if !errors.As(err, &initErr) {
			return nil, err
		}
	}

	return config.Load(home)
}

// Close releases resources associated with the state, including the vault
// watcher, shared index service, and log file.
func (s *State) Close() error {
	if s == nil {
		return nil
	}

	var errs []error
	if s.Watcher != nil {
		if err := s.Watcher.Close(); err != nil {
			errs = append(errs, err)
		}
		s.Watcher = nil
	}
	if s.Index != nil {
		if err := s.Index.Close(); err != nil && !errors.Is(err, indexsvc.ErrClosed) {
			errs = append(errs, err)
		}
		s.Index = nil
	}
	if s.Logger != nil {
		s.Logger.Close()
		s.Logger = nil
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
