package explorer

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/veil-notes/veil/internal/state"
)

// rulesChangedMsg tells the model to rebuild its items after a rule mutation.
type rulesChangedMsg struct{}

func newItemDelegate(keys *delegateKeyMap, s *state.State) list.DefaultDelegate {
	d := list.NewDefaultDelegate()

	d.Styles.SelectedTitle = selectedItemStyle
	d.Styles.SelectedDesc = selectedItemStyle

	d.UpdateFunc = func(msg tea.Msg, m *list.Model) tea.Cmd {
		var item noteItem

		if i, ok := m.SelectedItem().(noteItem); ok {
			item = i
		} else {
			return nil
		}

		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch {
			case key.Matches(msg, keys.quickFilter):
				rec := s.Cache.Record(item.path)
				pred, err := s.Engine.AddQuickFilter(rec)
				if err != nil {
					return m.NewStatusMessage(
						statusStyle(fmt.Sprintf("Cannot filter on %s: %v", item.fileName, err)),
					)
				}

				status := m.NewStatusMessage(
					statusStyle("Added rule: " + pred.String()),
				)
				return tea.Batch(status, func() tea.Msg { return rulesChangedMsg{} })

			case key.Matches(msg, keys.yank):
				if err := clipboard.WriteAll(item.rel); err != nil {
					return m.NewStatusMessage(statusStyle("Failed to copy path of " + item.fileName))
				}
				return m.NewStatusMessage(statusStyle("Copied " + item.rel))
			}
		}

		return nil
	}

	shortHelp := []key.Binding{keys.quickFilter, keys.yank}
	longHelp := [][]key.Binding{{keys.quickFilter, keys.yank}}

	d.ShortHelpFunc = func() []key.Binding {
		return shortHelp
	}

	d.FullHelpFunc = func() [][]key.Binding {
		return longHelp
	}

	return d
}

type delegateKeyMap struct {
	quickFilter key.Binding
	yank        key.Binding
}

func newDelegateKeyMap() *delegateKeyMap {
	return &delegateKeyMap{
		quickFilter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter out"),
		),
		yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy path"),
		),
	}
}
