package explorer

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"

	"github.com/veil-notes/veil/internal/filter"
	"github.com/veil-notes/veil/internal/vault"
	"github.com/veil-notes/veil/internal/visibility"
)

type noteItem struct {
	fileName     string
	path         string
	rel          string
	title        string
	subdirectory string
	tags         []string
	date         string
	modifiedAt   time.Time
	hidden       bool
	showDetails  bool
}

func (i noteItem) Title() string {
	if i.showDetails {
		return i.rel
	}

	title := i.title
	if title == "" {
		title = strings.TrimSuffix(i.fileName, filepath.Ext(i.fileName))
	}
	if i.hidden {
		return title + " [hidden]"
	}
	return title
}

func (i noteItem) Description() string {
	if i.showDetails {
		description := "Modified: " + i.modifiedAt.Format("2006-01-02 15:04")
		if i.date != "" {
			description += ", Date: " + i.date
		}
		if i.hidden {
			description += " [hidden]"
		}
		return description
	}

	description := ""

	if i.subdirectory != "" {
		description += fmt.Sprintf("[%s] ", i.subdirectory)
	}

	if len(i.tags) == 0 {
		description += "No tags"
	} else {
		description += strings.Join(i.tags, ", ")
	}

	return description
}

func (i noteItem) FilterValue() string {
	str := strings.Join(i.tags, " ")
	parts := []string{i.Title(), "[" + str + "]", "[" + i.subdirectory + "]"}
	return strings.Join(parts, " ")
}

func (i noteItem) Path() string {
	return i.path
}

func newNoteItem(note vault.Note, hidden, details bool) noteItem {
	return noteItem{
		fileName:     filepath.Base(note.Path),
		path:         note.Path,
		rel:          note.Rel,
		title:        note.Title,
		subdirectory: subdirectoryOf(note.Rel),
		tags:         note.Tags,
		date:         note.Date,
		modifiedAt:   note.ModifiedAt,
		hidden:       hidden,
		showDetails:  details,
	}
}

func subdirectoryOf(rel string) string {
	dir := path.Dir(rel)
	if dir == "." || dir == "/" {
		return ""
	}
	return dir
}

// buildItems converts cached notes into list items, applying the explorer's
// visibility rules. Hidden notes are dropped unless includeHidden is set, in
// which case they carry a marker instead.
func buildItems(notes []vault.Note, eng *visibility.Engine, includeHidden, details bool) []noteItem {
	filtering := eng != nil && eng.Enabled(filter.SurfaceExplorer)

	items := make([]noteItem, 0, len(notes))
	for _, note := range notes {
		hidden := filtering && !eng.Visible(note.Record)
		if hidden && !includeHidden {
			continue
		}
		items = append(items, newNoteItem(note, hidden, details))
	}
	return items
}

func countHidden(notes []vault.Note, eng *visibility.Engine) int {
	if eng == nil || !eng.Enabled(filter.SurfaceExplorer) {
		return 0
	}

	n := 0
	for _, note := range notes {
		if !eng.Visible(note.Record) {
			n++
		}
	}
	return n
}

func castToNoteItems(items []list.Item) []noteItem {
	out := make([]noteItem, 0, len(items))
	for _, item := range items {
		if i, ok := item.(noteItem); ok {
			out = append(out, i)
		}
	}
	return out
}
