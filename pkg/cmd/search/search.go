package search

import (
	"fmt"
	"io"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/veil-notes/veil/internal/filter"
	"github.com/veil-notes/veil/internal/pathutil"
	"github.com/veil-notes/veil/internal/search"
	"github.com/veil-notes/veil/internal/state"
)

type searchOptions struct {
	tags     []string
	metadata []string
	showAll  bool
}

func NewCmdSearch(s *state.State) *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:     "search [terms...]",
		Aliases: []string{"s", "find"},
		Short:   "Search the vault, with visibility rules applied",
		Long: heredoc.Doc(`
			Search queries the vault index over note titles, front-matter, and
			(when enabled) bodies. Results the filter rules hide are withheld
			unless --all is passed. Repeat --tag and --meta to narrow further;
			--meta takes key=value pairs and every key must be satisfied.
		`),
		Example: heredoc.Doc(`
			veil search robotics
			veil search --tag project --meta status=active
			veil search robotics --all
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.RequireVault(); err != nil {
				return err
			}
			return run(cmd.OutOrStdout(), s, args, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.tags, "tag", "t", nil, "Require one of these tags.")
	cmd.Flags().StringSliceVarP(&opts.metadata, "meta", "m", nil, "Require a front-matter key=value pair.")
	cmd.Flags().BoolVarP(&opts.showAll, "all", "a", false, "Include results the rules hide.")

	return cmd
}

func run(out io.Writer, s *state.State, terms []string, opts searchOptions) error {
	query, err := buildQuery(terms, opts)
	if err != nil {
		return err
	}

	idx, err := s.Index.AcquireSnapshot()
	if err != nil {
		return fmt.Errorf("acquiring search index: %w", err)
	}

	results := idx.Search(query)

	filtering := !opts.showAll && s.Engine.Enabled(filter.SurfaceSearch)
	shown := 0
	for _, r := range results {
		if filtering && !s.Engine.Visible(r.Record) {
			continue
		}
		shown++
		printResult(out, s.Vault, r)
	}

	if shown == 0 {
		fmt.Fprintln(out, "No results.")
		return nil
	}
	if dropped := len(results) - shown; dropped > 0 {
		fmt.Fprintf(out, "\n%d result(s) hidden by filter rules; pass --all to include them.\n", dropped)
	}
	return nil
}

func buildQuery(terms []string, opts searchOptions) (search.Query, error) {
	q := search.Query{Term: strings.Join(terms, " ")}

	if len(opts.tags) > 0 {
		q.Tags = append(q.Tags, opts.tags...)
	}
	for _, pair := range opts.metadata {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return search.Query{}, fmt.Errorf("invalid --meta %q: expected key=value", pair)
		}
		if q.Metadata == nil {
			q.Metadata = make(map[string][]string)
		}
		q.Metadata[key] = append(q.Metadata[key], value)
	}

	if q.Term == "" && len(q.Tags) == 0 && len(q.Metadata) == 0 {
		return search.Query{}, fmt.Errorf("nothing to search for: pass terms, --tag, or --meta")
	}
	return q, nil
}

func printResult(out io.Writer, vaultDir string, r search.Result) {
	path := r.Path
	if rel, err := pathutil.VaultRelative(vaultDir, r.Path); err == nil {
		path = rel
	}

	fmt.Fprintf(out, "%s\t%s\n", path, r.Title)
	if r.Snippet != "" {
		fmt.Fprintf(out, "    %s\n", r.Snippet)
	}
}
