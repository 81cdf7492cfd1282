package rulesRemove

import (
	"fmt"
	"strconv"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/veil-notes/veil/internal/state"
)

func NewCmdRulesRemove(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <index>",
		Aliases: []string{"rm", "delete"},
		Short:   "Remove the rule at an index",
		Long: heredoc.Doc(`
			Remove deletes the rule at the given index, as shown by rules list.
			Later rules shift down to fill the gap.
		`),
		Example: heredoc.Doc(`
			veil rules remove 0
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q", args[0])
			}

			if err := s.Engine.RemovePredicate(idx); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed rule %d\n", idx)
			return nil
		},
	}

	return cmd
}
