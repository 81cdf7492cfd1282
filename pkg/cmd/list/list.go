package list

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/veil-notes/veil/internal/pathutil"
	"github.com/veil-notes/veil/internal/state"
)

type listOptions struct {
	showAll    bool
	hiddenOnly bool
}

func NewCmdList(s *state.State) *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List vault notes, split by the visibility rules",
		Long: heredoc.Doc(`
			List prints the vault's notes as the rules see them: visible notes first,
			then a count of what the rules hide. Pass --all to append the hidden
			notes with a marker, or --hidden to print only them.
		`),
		Example: heredoc.Doc(`
			veil list
			veil list --all
			veil list --hidden
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.RequireVault(); err != nil {
				return err
			}
			return run(cmd.OutOrStdout(), s, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.showAll, "all", "a", false, "Append hidden notes with a marker.")
	cmd.Flags().BoolVar(&opts.hiddenOnly, "hidden", false, "Print only the notes the rules hide.")

	return cmd
}

func run(out io.Writer, s *state.State, opts listOptions) error {
	paths, err := s.Handler.Notes()
	if err != nil {
		return fmt.Errorf("listing vault notes: %w", err)
	}

	visible, hidden := s.Engine.Partition(paths)

	if !opts.hiddenOnly {
		for _, p := range visible {
			fmt.Fprintln(out, displayPath(s.Vault, p))
		}
	}
	if opts.hiddenOnly || opts.showAll {
		for _, p := range hidden {
			fmt.Fprintf(out, "%s [hidden]\n", displayPath(s.Vault, p))
		}
	}

	fmt.Fprintf(out, "\n%d visible, %d hidden\n", len(visible), len(hidden))
	return nil
}

// displayPath prefers the vault-relative form and falls back to the raw path
// for notes outside the vault root.
func displayPath(vaultDir, p string) string {
	rel, err := pathutil.VaultRelative(vaultDir, p)
	if err != nil {
		return p
	}
	return rel
}
