// Package fzf implements the quick-switcher: fuzzy selection over the
// vault's visible notes with a markdown preview pane.
package fzf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/muesli/termenv"

	"github.com/veil-notes/veil/internal/filter"
	"github.com/veil-notes/veil/internal/state"
	"github.com/veil-notes/veil/internal/vault"
)

// FuzzyFinder encapsulates the fuzzy finder functionality
type FuzzyFinder struct {
	state  *state.State
	header string
	notes  []vault.Note
}

func NewFuzzyFinder(s *state.State, header string) *FuzzyFinder {
	return &FuzzyFinder{state: s, header: header}
}

func (f *FuzzyFinder) Run(execute bool) (string, error) {
	if execute {
		f.findAndExecute("")
		return "", nil
	}
	return f.findAndReturn("")
}

func (f *FuzzyFinder) RunWithQuery(query string, execute bool) (string, error) {
	if execute {
		f.findAndExecute(query)
		return "", nil
	}
	return f.findAndReturn(query)
}

func (f *FuzzyFinder) find(query string) (int, error) {
	notes, err := visibleNotes(f.state)
	if err != nil {
		return -1, fmt.Errorf("error listing notes: %w", err)
	}

	f.notes = notes

	return f.fuzzySelectNote(query)
}

// findAndReturn handles the logic of finding and returning the selected note
func (f *FuzzyFinder) findAndReturn(query string) (string, error) {
	idx, err := f.find(query)
	if err != nil {
		return "", err
	}

	if idx == -1 {
		return "", fmt.Errorf("no note selected")
	}

	return f.notes[idx].Path, nil
}

// findAndExecute encapsulates the common logic for note finding and opening
func (f *FuzzyFinder) findAndExecute(query string) {
	idx, err := f.find(query)
	if err != nil {
		f.handleFuzzySelectError(err)
		return
	}

	if idx != -1 {
		f.Execute(idx)
	}
}

// visibleNotes walks the vault and drops notes the quick-switch rules hide.
func visibleNotes(s *state.State) ([]vault.Note, error) {
	paths, err := s.Handler.Notes()
	if err != nil {
		return nil, err
	}

	filtering := s.Engine != nil && s.Engine.Enabled(filter.SurfaceQuickSwitch)

	notes := make([]vault.Note, 0, len(paths))
	for _, p := range paths {
		note, err := s.Cache.Load(p)
		if err != nil {
			continue
		}
		if filtering && !s.Engine.Visible(note.Record) {
			continue
		}
		notes = append(notes, note)
	}
	return notes, nil
}

// fuzzySelectNote performs fuzzy selection on notes based on query
func (f *FuzzyFinder) fuzzySelectNote(query string) (int, error) {
	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderMarkdownPreview),
	}

	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}

	if f.header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.header))
	}

	labels := make([]string, 0, len(f.notes))
	for _, note := range f.notes {
		labels = append(labels, switcherLabel(note))
	}

	return fuzzyfinder.Find(f.notes, func(i int) string {
		return labels[i]
	}, options...)
}

func switcherLabel(note vault.Note) string {
	title := note.Title
	if title == "" {
		title = filepath.Base(note.Path)
	}

	if len(note.Tags) == 0 {
		return fmt.Sprintf("%s [No tags] ", title)
	}

	return fmt.Sprintf("%s [Tags: %s] ", title, strings.Join(note.Tags, ", "))
}

func (f *FuzzyFinder) renderMarkdownPreview(
	i, w, h int,
) string {
	if i == -1 {
		return ""
	}

	content, err := os.ReadFile(f.notes[i].Path)
	if err != nil {
		return "Error reading file"
	}

	r, _ := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(previewWrap(w)),
		glamour.WithColorProfile(termenv.ANSI256),
	)

	markdown, err := r.Render(string(content))
	if err != nil {
		return "Error rendering markdown"
	}

	return markdown
}

func previewWrap(width int) int {
	if width <= 0 || width > 100 {
		return 100
	}
	return width
}

// handleFuzzySelectError prints appropriate messages for fuzzy select errors
func (f *FuzzyFinder) handleFuzzySelectError(err error) {
	if err == fuzzyfinder.ErrAbort {
		fmt.Println("No note selected")
	} else {
		fmt.Println("Error selecting note:", err)
	}
}

// Execute opens the selected note in the configured editor
func (f *FuzzyFinder) Execute(idx int) {
	if idx < 0 || idx >= len(f.notes) {
		return
	}

	if err := f.state.Editor.Open(f.notes[idx].Path); err != nil {
		fmt.Println("Error opening note:", err)
	}
}
