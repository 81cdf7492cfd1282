package explorer

import "github.com/charmbracelet/bubbles/key"

type listKeyMap struct {
	openNote         key.Binding
	toggleHidden     key.Binding
	toggleDetails    key.Binding
	toggleTitleBar   key.Binding
	toggleStatusBar  key.Binding
	togglePagination key.Binding
	sortByTitle      key.Binding
	sortBySubdir     key.Binding
	sortByModifiedAt key.Binding
	sortByNoteDate   key.Binding
	sortAscending    key.Binding
	sortDescending   key.Binding
}

func newListKeyMap() *listKeyMap {
	return &listKeyMap{
		openNote: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "open"),
		),
		toggleHidden: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "toggle hidden"),
		),
		toggleDetails: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "details"),
		),
		toggleTitleBar: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "toggle title"),
		),
		toggleStatusBar: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "toggle status"),
		),
		togglePagination: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "toggle pagination"),
		),
		sortByTitle: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "sort by title"),
		),
		sortBySubdir: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("f2", "sort by subdirectory"),
		),
		sortByModifiedAt: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("f3", "sort by modified"),
		),
		sortByNoteDate: key.NewBinding(
			key.WithKeys("f4"),
			key.WithHelp("f4", "sort by note date"),
		),
		sortAscending: key.NewBinding(
			key.WithKeys("f5"),
			key.WithHelp("f5", "ascending sort"),
		),
		sortDescending: key.NewBinding(
			key.WithKeys("f6"),
			key.WithHelp("f6", "descending sort"),
		),
	}
}

func (m listKeyMap) fullHelp() []key.Binding {
	return []key.Binding{
		m.toggleTitleBar,
		m.toggleStatusBar,
		m.togglePagination,
		m.toggleDetails,
		m.openNote,
		m.toggleHidden,
		m.sortByTitle,
		m.sortBySubdir,
		m.sortByModifiedAt,
		m.sortByNoteDate,
		m.sortAscending,
		m.sortDescending,
	}
}
