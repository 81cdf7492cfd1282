package search

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/veil-notes/veil/internal/metadata"
)

type document struct {
	Path       string
	Title      string
	Tags       []string
	Record     *metadata.Record
	Body       string
	ModifiedAt time.Time
}

// Index stores searchable representations of notes on disk.
type Index struct {
	root string
	cfg  Config
	docs map[string]document
}

// NewIndex constructs an empty index rooted at the provided directory.
func NewIndex(root string, cfg Config) *Index {
	return &Index{
		root: filepath.Clean(root),
		cfg:  cfg,
		docs: make(map[string]document),
	}
}

// Build replaces the index contents using the provided note paths.
func (idx *Index) Build(paths []string) error {
	idx.docs = make(map[string]document, len(paths))
	for _, p := range paths {
		canonical := idx.normalize(p)
		if canonical == "" {
			continue
		}

		if idx.shouldIgnore(canonical) {
			continue
		}

		doc, err := idx.loadDocument(canonical)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("search: indexing %s: %w", canonical, err)
		}
		idx.docs[canonical] = doc
	}
	return nil
}

// Update refreshes the indexed representation of the provided path.
//
// The method gracefully handles files that have been removed and ignores
// paths that fall under configured ignore rules.
func (idx *Index) Update(path string) error {
	if idx == nil {
		return nil
	}

	canonical := idx.normalize(path)
	if canonical == "" {
		return nil
	}

	if idx.shouldIgnore(canonical) {
		return idx.Remove(canonical)
	}

	doc, err := idx.loadDocument(canonical)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return idx.Remove(canonical)
		}
		return fmt.Errorf("search: indexing %s: %w", canonical, err)
	}

	if idx.docs == nil {
		idx.docs = make(map[string]document)
	}
	idx.docs[canonical] = doc
	return nil
}

// Remove deletes the provided path from the index if present.
func (idx *Index) Remove(path string) error {
	if idx == nil {
		return nil
	}

	canonical := idx.normalize(path)
	if canonical == "" {
		return nil
	}

	delete(idx.docs, canonical)
	return nil
}

// Size reports the number of indexed notes.
func (idx *Index) Size() int {
	if idx == nil {
		return 0
	}
	return len(idx.docs)
}

// Clone returns an independent copy of the index so snapshot holders can read
// it while the original keeps absorbing updates.
func (idx *Index) Clone() *Index {
	if idx == nil {
		return nil
	}

	out := &Index{
		root: idx.root,
		cfg: Config{
			EnableBody:     idx.cfg.EnableBody,
			IgnoredFolders: append([]string(nil), idx.cfg.IgnoredFolders...),
		},
		docs: make(map[string]document, len(idx.docs)),
	}
	for path, doc := range idx.docs {
		doc.Tags = append([]string(nil), doc.Tags...)
		doc.Record = doc.Record.Clone()
		out.docs[path] = doc
	}
	return out
}

func (idx *Index) normalize(path string) string {
	cleaned := filepath.Clean(path)
	if cleaned == "." || cleaned == "" {
		return ""
	}
	if filepath.IsAbs(cleaned) {
		return cleaned
	}
	joined := filepath.Join(idx.root, cleaned)
	return filepath.Clean(joined)
}

// Search evaluates the provided query against the index and returns matching
// notes alongside snippets describing the match location.
func (idx *Index) Search(q Query) []Result {
	if len(idx.docs) == 0 {
		return nil
	}
	term := strings.TrimSpace(q.Term)
	loweredTerm := strings.ToLower(term)

	results := make([]Result, 0)
	for _, doc := range idx.docs {
		if !doc.matchesFilters(q) {
			continue
		}

		res := Result{Path: doc.Path, Title: doc.Title, Record: doc.Record}

		if loweredTerm == "" {
			// Pure metadata filtering request.
			res.MatchFrom = "metadata"
			results = append(results, res)
			continue
		}

		if strings.Contains(strings.ToLower(doc.Title), loweredTerm) {
			res.Snippet = doc.Title
			res.MatchFrom = "title"
			results = append(results, res)
			continue
		}

		if snippet, ok := doc.matchFrontMatter(loweredTerm); ok {
			res.Snippet = snippet
			res.MatchFrom = "frontmatter"
			results = append(results, res)
			continue
		}

		if idx.cfg.EnableBody {
			if snippet, ok := doc.matchBody(loweredTerm); ok {
				res.Snippet = snippet
				res.MatchFrom = "body"
				results = append(results, res)
				continue
			}
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
	return results
}

// Entry summarizes an indexed note.
type Entry struct {
	Path       string
	Title      string
	Tags       []string
	Record     *metadata.Record
	ModifiedAt time.Time
}

// Entries returns summaries for every indexed note, sorted by path.
func (idx *Index) Entries() []Entry {
	if len(idx.docs) == 0 {
		return nil
	}

	out := make([]Entry, 0, len(idx.docs))
	for _, doc := range idx.docs {
		out = append(out, Entry{
			Path:       doc.Path,
			Title:      doc.Title,
			Tags:       append([]string(nil), doc.Tags...),
			Record:     doc.Record,
			ModifiedAt: doc.ModifiedAt,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})
	return out
}

func (idx *Index) shouldIgnore(path string) bool {
	rel, err := filepath.Rel(idx.root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	parts := strings.Split(rel, "/")
	for _, segment := range parts {
		for _, ignored := range idx.cfg.IgnoredFolders {
			if ignored == "" {
				continue
			}
			if strings.EqualFold(segment, ignored) {
				return true
			}
		}
	}
	return false
}

func (idx *Index) loadDocument(path string) (document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return document{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return document{}, err
	}

	// Malformed front matter indexes as a note without metadata; the body
	// stays searchable.
	rec, body, _ := metadata.Parse(data)

	return document{
		Path:       filepath.Clean(path),
		Title:      noteTitle(path, rec),
		Tags:       recordTags(rec),
		Record:     rec,
		Body:       string(body),
		ModifiedAt: info.ModTime().UTC(),
	}, nil
}

func noteTitle(path string, rec *metadata.Record) string {
	if title := rec.Get("title"); !title.IsAbsent() {
		if s := strings.TrimSpace(title.String()); s != "" {
			return s
		}
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func recordTags(rec *metadata.Record) []string {
	val := rec.Get("tags")
	switch val.Kind() {
	case metadata.KindList:
		return val.Strings()
	case metadata.KindAbsent:
		return nil
	default:
		if s := strings.TrimSpace(val.String()); s != "" {
			return []string{s}
		}
		return nil
	}
}

func (doc document) matchesFilters(q Query) bool {
	if len(q.Tags) > 0 {
		matched := false
		for _, tag := range q.Tags {
			if containsFold(doc.Tags, tag) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for key, wanted := range q.Metadata {
		val := doc.Record.Get(key)
		if val.IsAbsent() {
			return false
		}
		if len(wanted) == 0 {
			continue
		}
		matched := false
		for _, want := range wanted {
			if valueMatches(val, want) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func valueMatches(val metadata.Value, want string) bool {
	if val.Kind() == metadata.KindList {
		return containsFold(val.Strings(), want)
	}
	return strings.EqualFold(strings.TrimSpace(val.String()), strings.TrimSpace(want))
}

func (doc document) matchFrontMatter(loweredTerm string) (string, bool) {
	for _, key := range doc.Record.Keys() {
		rendered := doc.Record.Get(key).String()
		if strings.Contains(strings.ToLower(key), loweredTerm) ||
			strings.Contains(strings.ToLower(rendered), loweredTerm) {
			return fmt.Sprintf("%s: %s", key, rendered), true
		}
	}
	return "", false
}

func (doc document) matchBody(loweredTerm string) (string, bool) {
	loweredBody := strings.ToLower(doc.Body)
	at := strings.Index(loweredBody, loweredTerm)
	if at < 0 {
		return "", false
	}

	const window = 60
	start := at - window
	if start < 0 {
		start = 0
	}
	end := at + len(loweredTerm) + window
	if end > len(doc.Body) {
		end = len(doc.Body)
	}

	// Keep the window on rune boundaries.
	for start > 0 && !utf8.RuneStart(doc.Body[start]) {
		start--
	}
	for end < len(doc.Body) && !utf8.RuneStart(doc.Body[end]) {
		end++
	}

	snippet := strings.Join(strings.Fields(doc.Body[start:end]), " ")
	return snippet, snippet != ""
}

func containsFold(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), strings.TrimSpace(want)) {
			return true
		}
	}
	return false
}
