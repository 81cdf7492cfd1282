package rules

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/veil-notes/veil/internal/state"
	"github.com/veil-notes/veil/pkg/cmd/rules/rulesAdd"
	"github.com/veil-notes/veil/pkg/cmd/rules/rulesList"
	"github.com/veil-notes/veil/pkg/cmd/rules/rulesRemove"
	"github.com/veil-notes/veil/pkg/cmd/rules/rulesSet"
	"github.com/veil-notes/veil/pkg/cmd/rules/rulesToggle"
)

func NewCmdRules(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rules",
		Aliases: []string{"r", "filters"},
		Short:   "Manage the filter rules deciding note visibility",
		Long: heredoc.Doc(`
			Rules manages the predicate rules evaluated against each note's
			front-matter. Every change persists immediately and re-applies to the
			explorer, search, and quick-switcher. Running rules with no
			subcommand lists the current configuration.
		`),
		Example: heredoc.Doc(`
			veil rules add --key status --operator equals --value completed
			veil rules toggle hide
			veil rules remove 0
		`),
		RunE: rulesList.NewCmdRulesList(s).RunE,
	}

	cmd.AddCommand(
		rulesList.NewCmdRulesList(s),
		rulesAdd.NewCmdRulesAdd(s),
		rulesRemove.NewCmdRulesRemove(s),
		rulesSet.NewCmdRulesSet(s),
		rulesToggle.NewCmdRulesToggle(s),
	)

	return cmd
}
