package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/veil-notes/veil/internal/constants"
	"github.com/veil-notes/veil/internal/state"
	"github.com/veil-notes/veil/pkg/cmd/browse"
	"github.com/veil-notes/veil/pkg/cmd/initialize"
	"github.com/veil-notes/veil/pkg/cmd/list"
	"github.com/veil-notes/veil/pkg/cmd/quick"
	"github.com/veil-notes/veil/pkg/cmd/rules"
	"github.com/veil-notes/veil/pkg/cmd/search"
	"github.com/veil-notes/veil/pkg/cmd/snippet"
)

var noFilter bool

func NewCmdRoot(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "veil",
		Version: constants.Version,
		Short:   "Hide and reveal vault notes by their front-matter",
		Long: heredoc.Doc(`
			Veil evaluates filter rules against each note's YAML front-matter and
			applies the resulting visibility consistently across the explorer, search
			results, and the quick-switcher. Rules are edited with the rules
			subcommands and persist between runs.

			Running veil with no subcommand opens the explorer.
		`),
		Example: heredoc.Doc(`
			veil rules add --key status --operator equals --value completed
			veil browse
			veil list --all
		`),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noFilter {
				s.Engine.Disarm()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return browse.NewCmdBrowse(s).RunE(cmd, args)
		},
	}

	cmd.PersistentFlags().
		BoolVar(&noFilter, "no-filter", false, "Disable filtering on every surface for this run.")

	cmd.AddCommand(
		initialize.NewCmdInit(s),
		browse.NewCmdBrowse(s),
		list.NewCmdList(s),
		search.NewCmdSearch(s),
		quick.NewCmdQuick(s),
		rules.NewCmdRules(s),
		snippet.NewCmdSnippet(s),
	)

	return cmd
}
