package initialize

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/veil-notes/veil/internal/config"
	"github.com/veil-notes/veil/internal/pathutil"
	"github.com/veil-notes/veil/internal/state"
)

type initOptions struct {
	editor string
}

func NewCmdInit(s *state.State) *cobra.Command {
	var opts initOptions

	cmd := &cobra.Command{
		Use:     "init <vault-dir>",
		Aliases: []string{"initialize"},
		Short:   "Point veil at a note vault",
		Long: heredoc.Doc(`
			Init records the vault directory (and optionally the editor) in the
			configuration file, creating it if needed. The directory must already
			exist; veil never creates vaults.
		`),
		Example: heredoc.Doc(`
			veil init ~/notes
			veil init ~/notes --editor vscode
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(s, args[0], opts)
		},
	}

	cmd.Flags().
		StringVarP(&opts.editor, "editor", "e", "", "Editor used to open notes (nvim, vim, vscode, code, nano, obsidian, custom).")

	return cmd
}

func run(s *state.State, dir string, opts initOptions) error {
	vault := pathutil.NormalizePath(dir)
	if abs, err := filepath.Abs(vault); err == nil {
		vault = abs
	}

	info, err := os.Stat(vault)
	if err != nil {
		return fmt.Errorf("vault directory %q: %w", vault, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("vault path %q is not a directory", vault)
	}

	if opts.editor != "" {
		if err := config.ValidateEditor(opts.editor); err != nil {
			return err
		}
		s.Config.Editor = opts.editor
	}

	if err := s.Config.SetVaultDir(vault); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("Vault set to %s\nConfig written to %s\n", vault, s.Config.GetConfigPath())
	return nil
}
