// Package explorer is the interactive vault browser. It renders the note
// list next to a markdown preview and applies the explorer visibility rules,
// with a reveal toggle for auditing what the rules hide.
package explorer

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/veil-notes/veil/internal/state"
	"github.com/veil-notes/veil/internal/vault"
)

const indexStatusEvery = 15 * time.Second

type editorFinishedMsg struct{ err error }

type pollIndexMsg struct{}

type Model struct {
	list         list.Model
	keys         *listKeyMap
	delegateKeys *delegateKeyMap
	state        *state.State
	preview      string
	previews     map[string]string
	statusLine   string
	width        int
	height       int
	hiddenCount  int
	showHidden   bool
	showDetails  bool
	sortField    sortField
	sortOrder    sortOrder
}

func New(s *state.State) (*Model, error) {
	notes, err := collectNotes(s)
	if err != nil {
		return nil, err
	}

	hidden := countHidden(notes, s.Engine)
	items := buildItems(notes, s.Engine, false, false)
	sortedItems := sortItems(items, sortByModifiedAt, descending)

	dkeys := newDelegateKeyMap()
	lkeys := newListKeyMap()
	delegate := newItemDelegate(dkeys, s)

	l := list.New(sortedItems, delegate, 0, 0)
	l.Title = renderListTitle(len(items), hidden, false, sortByModifiedAt, descending)
	l.Styles.Title = titleStyle

	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{
			lkeys.openNote,
			lkeys.toggleHidden,
		}
	}

	l.AdditionalFullHelpKeys = lkeys.fullHelp

	return &Model{
		state:        s,
		list:         l,
		keys:         lkeys,
		delegateKeys: dkeys,
		previews:     make(map[string]string),
		hiddenCount:  hidden,
		sortField:    sortByModifiedAt,
		sortOrder:    descending,
	}, nil
}

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd

	if m.state != nil && m.state.Watcher != nil {
		cmds = append(cmds, m.state.Watcher.Start())
	}
	if m.state != nil && m.state.Index != nil {
		cmds = append(cmds, m.state.IndexHeartbeatCmd())
	}

	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var retCmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := appStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)

	case state.VaultNoteChangedMsg:
		cmds = append(cmds, m.refresh())
		if m.state.Watcher != nil {
			cmds = append(cmds, m.state.Watcher.Start())
		}

	case state.VaultWatcherErrMsg:
		cmds = append(cmds, m.list.NewStatusMessage(
			statusStyle(fmt.Sprintf("Watcher error: %v", msg.Err)),
		))
		if m.state.Watcher != nil {
			cmds = append(cmds, m.state.Watcher.Start())
		}

	case state.IndexStatsMsg:
		m.statusLine = msg.Line
		cmds = append(cmds, pollIndexLater())

	case pollIndexMsg:
		cmds = append(cmds, m.state.IndexHeartbeatCmd())

	case rulesChangedMsg:
		cmds = append(cmds, m.refresh())

	case editorFinishedMsg:
		if msg.err != nil {
			cmds = append(cmds, m.list.NewStatusMessage(
				statusStyle(fmt.Sprintf("Editor error: %v", msg.err)),
			))
		}
		cmds = append(cmds, m.refresh())

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		retCmd = m.handleKey(msg)
	}

	nl, cmd := m.list.Update(msg)
	m.list = nl
	cmds = append(cmds, cmd, retCmd)

	m.handlePreview()
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.openNote):
		return m.openNote()

	case key.Matches(msg, m.keys.toggleHidden):
		return m.toggleHidden()

	case key.Matches(msg, m.keys.toggleDetails):
		m.showDetails = !m.showDetails
		return m.refreshItems()

	case key.Matches(msg, m.keys.toggleTitleBar):
		v := !m.list.ShowTitle()
		m.list.SetShowTitle(v)
		m.list.SetShowFilter(v)
		m.list.SetFilteringEnabled(v)
		return nil

	case key.Matches(msg, m.keys.toggleStatusBar):
		m.list.SetShowStatusBar(!m.list.ShowStatusBar())
		return nil

	case key.Matches(msg, m.keys.togglePagination):
		m.list.SetShowPagination(!m.list.ShowPagination())
		return nil

	case key.Matches(msg, m.keys.sortByTitle):
		m.sortField = sortByTitle
		return m.refreshSort()

	case key.Matches(msg, m.keys.sortBySubdir):
		m.sortField = sortBySubdir
		return m.refreshSort()

	case key.Matches(msg, m.keys.sortByModifiedAt):
		m.sortField = sortByModifiedAt
		return m.refreshSort()

	case key.Matches(msg, m.keys.sortByNoteDate):
		m.sortField = sortByNoteDate
		return m.refreshSort()

	case key.Matches(msg, m.keys.sortAscending):
		m.sortOrder = ascending
		return m.refreshSort()

	case key.Matches(msg, m.keys.sortDescending):
		m.sortOrder = descending
		return m.refreshSort()
	}

	return nil
}

func (m Model) View() string {
	listPane := listStyle.Width(m.width / 2).Render(m.list.View())

	previewPane := previewStyle.Render(
		lipgloss.NewStyle().
			Height(m.list.Height()).
			MaxHeight(m.list.Height()).
			MaxWidth(800).
			Render(fmt.Sprintf("%s\n%s", titleStyle.Render("Preview"), m.preview)),
	)

	layout := lipgloss.JoinHorizontal(lipgloss.Top, listPane, previewPane)
	if m.statusLine != "" {
		layout = lipgloss.JoinVertical(lipgloss.Left, layout, statusBannerStyle.Render(m.statusLine))
	}

	return appStyle.Render(layout)
}

func Run(s *state.State) error {
	m, err := New(s)
	if err != nil {
		return err
	}

	if _, err := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running explorer: %w", err)
	}

	return nil
}

func (m *Model) handlePreview() {
	item, ok := m.list.SelectedItem().(noteItem)
	if !ok {
		return
	}

	if p, exists := m.previews[item.path]; exists {
		m.preview = p
		return
	}

	r := renderPreview(item.path, m.width/2)
	if len(m.previews) >= maxCachedPreviews {
		m.previews = make(map[string]string, maxCachedPreviews)
	}
	m.previews[item.path] = r
	m.preview = r
}

func (m *Model) refresh() tea.Cmd {
	m.list.ResetFilter()
	cmd := m.refreshItems()
	m.list.ResetSelected()
	m.handlePreview()
	return cmd
}

func (m *Model) refreshItems() tea.Cmd {
	notes, err := collectNotes(m.state)
	if err != nil {
		return m.list.NewStatusMessage(statusStyle(fmt.Sprintf("Error reading vault: %v", err)))
	}

	m.hiddenCount = countHidden(notes, m.state.Engine)
	items := buildItems(notes, m.state.Engine, m.showHidden, m.showDetails)
	sortedItems := sortItems(items, m.sortField, m.sortOrder)

	m.previews = make(map[string]string)
	m.list.Title = renderListTitle(len(items), m.hiddenCount, m.showHidden, m.sortField, m.sortOrder)
	return m.list.SetItems(sortedItems)
}

func (m *Model) refreshSort() tea.Cmd {
	m.list.ResetFilter()
	items := castToNoteItems(m.list.Items())
	sortedItems := sortItems(items, m.sortField, m.sortOrder)
	m.list.ResetSelected()
	m.list.Title = renderListTitle(len(items), m.hiddenCount, m.showHidden, m.sortField, m.sortOrder)
	cmd := m.list.SetItems(sortedItems)
	m.handlePreview()
	return cmd
}

func (m *Model) toggleHidden() tea.Cmd {
	m.showHidden = !m.showHidden
	cmd := m.refresh()

	if m.showHidden {
		return tea.Batch(cmd, m.list.NewStatusMessage(statusStyle("Revealing hidden notes")))
	}
	return tea.Batch(cmd, m.list.NewStatusMessage(statusStyle("Hidden notes concealed")))
}

func (m *Model) openNote() tea.Cmd {
	item, ok := m.list.SelectedItem().(noteItem)
	if !ok {
		return nil
	}

	launch, err := m.state.Editor.LaunchForPath(item.path)
	if err != nil {
		return m.list.NewStatusMessage(
			statusStyle(fmt.Sprintf("Cannot open %s: %v", item.fileName, err)),
		)
	}

	if !launch.Wait {
		if err := launch.Cmd.Start(); err != nil {
			return m.list.NewStatusMessage(
				statusStyle(fmt.Sprintf("Cannot open %s: %v", item.fileName, err)),
			)
		}
		return m.list.NewStatusMessage(statusStyle("Opened " + item.fileName))
	}

	return tea.ExecProcess(launch.Cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

func collectNotes(s *state.State) ([]vault.Note, error) {
	paths, err := s.Handler.Notes()
	if err != nil {
		return nil, err
	}

	notes := make([]vault.Note, 0, len(paths))
	for _, p := range paths {
		note, err := s.Cache.Load(p)
		if err != nil {
			continue
		}
		notes = append(notes, note)
	}
	return notes, nil
}

func pollIndexLater() tea.Cmd {
	return tea.Tick(indexStatusEvery, func(time.Time) tea.Msg {
		return pollIndexMsg{}
	})
}
