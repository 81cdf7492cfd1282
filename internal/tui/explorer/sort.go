package explorer

import (
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/charmbracelet/bubbles/list"
)

type sortField int

const (
	sortByTitle sortField = iota
	sortBySubdir
	sortByModifiedAt
	sortByNoteDate
)

type sortOrder int

const (
	ascending sortOrder = iota
	descending
)

func sortItems(items []noteItem, field sortField, order sortOrder) []list.Item {
	sortedItems := make([]noteItem, len(items))
	copy(sortedItems, items)

	sort.SliceStable(sortedItems, func(i, j int) bool {
		switch field {
		case sortByTitle:
			iTitle := titleForSort(sortedItems[i])
			jTitle := titleForSort(sortedItems[j])
			if order == ascending {
				return strings.Compare(iTitle, jTitle) < 0
			}
			return strings.Compare(iTitle, jTitle) > 0
		case sortBySubdir:
			if order == ascending {
				return strings.Compare(
					sortedItems[i].subdirectory,
					sortedItems[j].subdirectory,
				) < 0
			}
			return strings.Compare(
				sortedItems[i].subdirectory,
				sortedItems[j].subdirectory,
			) > 0
		case sortByNoteDate:
			iTime := noteDate(sortedItems[i])
			jTime := noteDate(sortedItems[j])
			if order == ascending {
				return iTime.Before(jTime)
			}
			return iTime.After(jTime)
		default:
			if order == ascending {
				return sortedItems[i].modifiedAt.Before(sortedItems[j].modifiedAt)
			}
			return sortedItems[i].modifiedAt.After(sortedItems[j].modifiedAt)
		}
	})

	listItems := make([]list.Item, len(sortedItems))
	for i, item := range sortedItems {
		listItems[i] = item
	}

	return listItems
}

// noteDate prefers the date recorded in front matter and falls back to the
// file's modification time when it is missing or unparseable.
func noteDate(item noteItem) time.Time {
	if item.date != "" {
		if t, err := dateparse.ParseAny(item.date); err == nil {
			return t
		}
	}
	return item.modifiedAt
}

func titleForSort(item noteItem) string {
	if item.title == "" {
		return strings.TrimSuffix(item.fileName, filepath.Ext(item.fileName))
	}
	return item.title
}
