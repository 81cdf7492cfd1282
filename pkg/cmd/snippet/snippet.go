package snippet

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/veil-notes/veil/internal/pathutil"
	"github.com/veil-notes/veil/internal/state"
	"github.com/veil-notes/veil/internal/visibility"
)

func NewCmdSnippet(s *state.State) *cobra.Command {
	var toStdout bool

	cmd := &cobra.Command{
		Use:   "snippet",
		Short: "Export the hidden set as a CSS snippet",
		Long: heredoc.Doc(`
			Snippet renders per-path CSS suppression rules for every note the
			filter rules currently hide and writes them into the vault's
			.obsidian/snippets directory, so Obsidian-style renderers hide the
			same notes veil does. Pass --stdout to print the stylesheet instead.
		`),
		Example: heredoc.Doc(`
			veil snippet
			veil snippet --stdout > veil.css
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.RequireVault(); err != nil {
				return err
			}
			return run(cmd.OutOrStdout(), s, toStdout)
		},
	}

	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Print the stylesheet instead of writing it into the vault.")

	return cmd
}

func run(out io.Writer, s *state.State, toStdout bool) error {
	paths, err := s.Handler.Notes()
	if err != nil {
		return fmt.Errorf("listing vault notes: %w", err)
	}

	_, hidden := s.Engine.Partition(paths)

	rels := make([]string, 0, len(hidden))
	for _, p := range hidden {
		rel, err := pathutil.VaultRelative(s.Vault, p)
		if err != nil {
			rel = p
		}
		rels = append(rels, rel)
	}

	css := visibility.Stylesheet(rels)

	if toStdout {
		fmt.Fprint(out, css)
		return nil
	}

	path, err := visibility.WriteSnippet(s.Vault, css)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %d suppression rule(s) to %s\n", len(rels), path)
	return nil
}
