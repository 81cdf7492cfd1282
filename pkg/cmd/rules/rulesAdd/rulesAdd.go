package rulesAdd

import (
	"fmt"
	"io"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/erikgeiser/promptkit/selection"
	"github.com/erikgeiser/promptkit/textinput"
	"github.com/spf13/cobra"

	"github.com/veil-notes/veil/internal/filter"
	"github.com/veil-notes/veil/internal/state"
)

type addOptions struct {
	key         string
	operator    string
	fieldType   string
	value       string
	fromNote    string
	interactive bool
}

func NewCmdRulesAdd(s *state.State) *cobra.Command {
	var opts addOptions

	cmd := &cobra.Command{
		Use:     "add",
		Aliases: []string{"a"},
		Short:   "Add a filter rule",
		Long: heredoc.Doc(`
			Add appends a rule to the filter set. Provide the rule with flags,
			walk through it with --interactive, or derive one from a note's
			front-matter with --from-note: the note's first key/value pair is
			turned into a rule whose operator and type follow the value's shape.
		`),
		Example: heredoc.Doc(`
			veil rules add --key status --operator equals --value completed
			veil rules add --key priority --operator greater-than --value 2
			veil rules add --interactive
			veil rules add --from-note projects/roadmap.md
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), s, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.key, "key", "k", "", "Front-matter key the rule reads.")
	cmd.Flags().StringVarP(&opts.operator, "operator", "o", string(filter.OpEquals), "Comparison operator.")
	cmd.Flags().StringVarP(&opts.fieldType, "type", "t", "", "Field type for coercion (defaults to the operator's mandated type, else text).")
	cmd.Flags().StringVarP(&opts.value, "value", "v", "", "Comparison operand.")
	cmd.Flags().StringVar(&opts.fromNote, "from-note", "", "Derive the rule from this note's front-matter.")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Build the rule through prompts.")

	return cmd
}

func run(out io.Writer, s *state.State, opts addOptions) error {
	if opts.fromNote != "" {
		return runFromNote(out, s, opts.fromNote)
	}

	var p filter.Predicate
	var err error
	if opts.interactive {
		p, err = promptPredicate()
	} else {
		p, err = flagPredicate(opts)
	}
	if err != nil {
		return err
	}

	idx, err := s.Engine.AddPredicate(p)
	if err != nil {
		return fmt.Errorf("saving rule: %w", err)
	}

	fmt.Fprintf(out, "Added rule [%d] %s\n", idx, p)
	return nil
}

func runFromNote(out io.Writer, s *state.State, notePath string) error {
	if err := s.RequireVault(); err != nil {
		return err
	}

	note, err := s.Cache.Load(notePath)
	if err != nil {
		return fmt.Errorf("reading note %s: %w", notePath, err)
	}

	p, err := s.Engine.AddQuickFilter(note.Record)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Added rule %s\n", p)
	return nil
}

func flagPredicate(opts addOptions) (filter.Predicate, error) {
	if strings.TrimSpace(opts.key) == "" {
		return filter.Predicate{}, fmt.Errorf("--key is required (or use --interactive / --from-note)")
	}

	op, err := filter.ParseOperator(opts.operator)
	if err != nil {
		return filter.Predicate{}, err
	}

	t := filter.TypeText
	if opts.fieldType != "" {
		if t, err = filter.ParseFieldType(opts.fieldType); err != nil {
			return filter.Predicate{}, err
		}
	}
	// A constrained operator always wins over the declared type, matching
	// what SetOperator does on edit.
	if required, ok := op.RequiredType(); ok {
		t = required
	}

	return filter.Predicate{Key: opts.key, Value: opts.value, Operator: op, Type: t}, nil
}

func promptPredicate() (filter.Predicate, error) {
	opChoices := make([]string, 0, len(filter.Operators()))
	for _, op := range filter.Operators() {
		opChoices = append(opChoices, string(op))
	}

	opSel := selection.New("Operator:", opChoices)
	opSel.Filter = nil
	opChoice, err := opSel.RunPrompt()
	if err != nil {
		return filter.Predicate{}, err
	}
	op := filter.Operator(opChoice)

	t := filter.TypeText
	if required, ok := op.RequiredType(); ok {
		t = required
	} else if op != filter.OpExists {
		typeChoices := make([]string, 0, len(filter.FieldTypes()))
		for _, ft := range filter.FieldTypes() {
			typeChoices = append(typeChoices, string(ft))
		}

		typeSel := selection.New("Field type:", typeChoices)
		typeSel.Filter = nil
		typeChoice, err := typeSel.RunPrompt()
		if err != nil {
			return filter.Predicate{}, err
		}
		t = filter.FieldType(typeChoice)
	}

	keyInput := textinput.New("Front-matter key:")
	keyInput.Placeholder = "status"
	key, err := keyInput.RunPrompt()
	if err != nil {
		return filter.Predicate{}, err
	}

	value := ""
	if op != filter.OpExists {
		valueInput := textinput.New("Comparison value:")
		if value, err = valueInput.RunPrompt(); err != nil {
			return filter.Predicate{}, err
		}
	}

	return filter.Predicate{Key: key, Value: value, Operator: op, Type: t}, nil
}
