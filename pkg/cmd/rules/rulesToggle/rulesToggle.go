package rulesToggle

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/veil-notes/veil/internal/filter"
	"github.com/veil-notes/veil/internal/state"
)

func NewCmdRulesToggle(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle <flag>",
		Short: "Flip a policy flag or a surface toggle",
		Long: heredoc.Doc(`
			Toggle flips one of the filter set's flags:

			  combine    and-combination vs. or-combination of the rules
			  hide       hide matching notes vs. show only matching notes
			  explorer   filtering on the explorer
			  search     filtering on search results
			  quick      filtering on the quick-switcher
		`),
		Example: heredoc.Doc(`
			veil rules toggle hide
			veil rules toggle quick
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := flip(s, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	}

	return cmd
}

func flip(s *state.State, flag string) (string, error) {
	set := s.Engine.Set()

	switch flag {
	case "combine", "and":
		next := !set.CombineWithAnd
		if err := s.Engine.SetCombineWithAnd(next); err != nil {
			return "", err
		}
		if next {
			return "Notes now match only when every rule holds.", nil
		}
		return "Notes now match when any rule holds.", nil
	case "hide":
		next := !set.HideMatches
		if err := s.Engine.SetHideMatches(next); err != nil {
			return "", err
		}
		if next {
			return "Matching notes are now hidden.", nil
		}
		return "Only matching notes are now shown.", nil
	case "explorer":
		return flipSurface(s, filter.SurfaceExplorer, !set.OnExplorer)
	case "search":
		return flipSurface(s, filter.SurfaceSearch, !set.OnSearch)
	case "quick", "quick-switch":
		return flipSurface(s, filter.SurfaceQuickSwitch, !set.OnQuickSwitch)
	default:
		return "", fmt.Errorf("unknown flag %q (valid: combine, hide, explorer, search, quick)", flag)
	}
}

func flipSurface(s *state.State, surface filter.Surface, enabled bool) (string, error) {
	if err := s.Engine.SetSurface(surface, enabled); err != nil {
		return "", err
	}

	verb := "disabled"
	if enabled {
		verb = "enabled"
	}
	return fmt.Sprintf("Filtering %s on %s.", verb, surface), nil
}
