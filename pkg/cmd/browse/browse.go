package browse

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/veil-notes/veil/internal/state"
	"github.com/veil-notes/veil/internal/tui/explorer"
)

func NewCmdBrowse(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "browse",
		Aliases: []string{"b", "notes"},
		Short:   "Browse the vault with visibility rules applied",
		Long: heredoc.Doc(`
			Browse opens the interactive explorer over the vault. Notes matching the
			filter rules are withheld from the listing; press H inside the explorer
			to reveal them with a marker, f to filter out the selected note, and
			enter to open one in your editor.
		`),
		Example: heredoc.Doc(`
			veil browse
			veil b
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.RequireVault(); err != nil {
				return err
			}
			return explorer.Run(s)
		},
	}

	return cmd
}
