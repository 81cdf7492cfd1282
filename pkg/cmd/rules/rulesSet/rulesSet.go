package rulesSet

import (
	"fmt"
	"strconv"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/veil-notes/veil/internal/filter"
	"github.com/veil-notes/veil/internal/state"
)

func NewCmdRulesSet(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <index> <field> <value>",
		Short: "Update one field of an existing rule",
		Long: heredoc.Doc(`
			Set updates a single field of the rule at the given index. Field is
			one of key, value, operator, or type. Switching the operator to
			contains, includes, greater-than, or less-than also corrects the
			type to the one that operator requires.
		`),
		Example: heredoc.Doc(`
			veil rules set 0 value draft
			veil rules set 1 operator greater-than
		`),
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q", args[0])
			}

			if err := apply(s, idx, args[1], args[2]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated rule [%d] %s\n", idx, s.Engine.Set().Predicates[idx])
			return nil
		},
	}

	return cmd
}

func apply(s *state.State, idx int, field, value string) error {
	switch field {
	case "key":
		return s.Engine.UpdateKey(idx, value)
	case "value":
		return s.Engine.UpdateValue(idx, value)
	case "operator":
		op, err := filter.ParseOperator(value)
		if err != nil {
			return err
		}
		return s.Engine.UpdateOperator(idx, op)
	case "type":
		t, err := filter.ParseFieldType(value)
		if err != nil {
			return err
		}
		return s.Engine.UpdateType(idx, t)
	default:
		return fmt.Errorf("unknown field %q (valid: key, value, operator, type)", field)
	}
}
