package rulesList

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/veil-notes/veil/internal/filter"
	"github.com/veil-notes/veil/internal/state"
)

func NewCmdRulesList(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the configured rules and policy flags",
		Example: heredoc.Doc(`
			veil rules list
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			render(cmd.OutOrStdout(), s.Engine.Set())
			return nil
		},
	}

	return cmd
}

func render(out io.Writer, set *filter.Set) {
	if len(set.Predicates) == 0 {
		fmt.Fprintln(out, "No rules configured; every note is visible.")
	} else {
		for i, p := range set.Predicates {
			fmt.Fprintf(out, "[%d] %s\n", i, p)
		}
	}

	mode := "any rule (or)"
	if set.CombineWithAnd {
		mode = "every rule (and)"
	}
	action := "show only matches"
	if set.HideMatches {
		action = "hide matches"
	}
	fmt.Fprintf(out, "\nMatch %s, %s\n", mode, action)
	fmt.Fprintf(
		out,
		"Surfaces: explorer=%s search=%s quick-switch=%s\n",
		onOff(set.OnExplorer),
		onOff(set.OnSearch),
		onOff(set.OnQuickSwitch),
	)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
