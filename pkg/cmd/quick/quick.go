package quick

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/veil-notes/veil/internal/fzf"
	"github.com/veil-notes/veil/internal/state"
)

func NewCmdQuick(s *state.State) *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:     "quick [query]",
		Aliases: []string{"q", "switch"},
		Short:   "Fuzzy-find a note and open it",
		Long: heredoc.Doc(`
			Quick runs the fuzzy switcher over the vault's notes with a markdown
			preview and opens the pick in your editor. Notes hidden by the rules
			are withheld when quick-switch filtering is enabled
			(veil rules toggle quick). Pass --print to print the picked path
			instead of opening it.
		`),
		Example: heredoc.Doc(`
			veil quick
			veil quick robotics
			veil quick --print
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.RequireVault(); err != nil {
				return err
			}

			finder := fzf.NewFuzzyFinder(s, "Select a note.")
			query := strings.Join(args, " ")

			if !printOnly {
				if query == "" {
					_, err := finder.Run(true)
					return err
				}
				_, err := finder.RunWithQuery(query, true)
				return err
			}

			var path string
			var err error
			if query == "" {
				path, err = finder.Run(false)
			} else {
				path, err = finder.RunWithQuery(query, false)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&printOnly, "print", "p", false, "Print the selected path instead of opening it.")

	return cmd
}
