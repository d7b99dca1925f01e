// Package tui implements the interactive snapshot history browser.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spendy-app/spendy/internal/cli"
	"github.com/spendy-app/spendy/internal/model"
	"github.com/spendy-app/spendy/internal/persona"
	"github.com/spendy-app/spendy/internal/service"
)

// State represents the current state of the browser.
type State int

const (
	// StateList shows the snapshot list.
	StateList State = iota
	// StateDetail shows one frozen analysis.
	StateDetail
)

// KeyMap defines the key bindings for the browser.
type KeyMap struct {
	Open   key.Binding
	Delete key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "view"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type historyItem struct {
	snapshot model.Snapshot
}

func (i historyItem) Title() string {
	profile := persona.Lookup(i.snapshot.Persona)
	return fmt.Sprintf("%s — %s", i.snapshot.CreatedAt.Local().Format("2006-01-02 15:04"), profile.Name)
}

func (i historyItem) Description() string {
	return fmt.Sprintf("%d건의 지출 기록", len(i.snapshot.Records))
}

func (i historyItem) FilterValue() string {
	return i.snapshot.Persona
}

type snapshotsLoadedMsg struct {
	snapshots []model.Snapshot
}

type snapshotDeletedMsg struct {
	id string
}

type errMsg struct {
	err error
}

// Model holds the history browser state.
type Model struct {
	ctx      context.Context
	store    service.SnapshotStore
	lastErr  error
	userID   string
	list     list.Model
	keymap   KeyMap
	viewing  *model.Snapshot
	state    State
	width    int
	height   int
	quitting bool
}

// NewModel creates a browser over one user's snapshot namespace.
func NewModel(ctx context.Context, store service.SnapshotStore, userID string) Model {
	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 0, 0)
	l.Title = "분석 기록"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	return Model{
		ctx:    ctx,
		store:  store,
		userID: userID,
		list:   l,
		keymap: DefaultKeyMap(),
		state:  StateList,
	}
}

// Init loads the snapshot list.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, m.loadSnapshots())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-2)

	case snapshotsLoadedMsg:
		items := make([]list.Item, 0, len(msg.snapshots))
		for _, snap := range msg.snapshots {
			items = append(items, historyItem{snapshot: snap})
		}
		m.list.SetItems(items)

	case snapshotDeletedMsg:
		return m, m.loadSnapshots()

	case errMsg:
		m.lastErr = msg.err

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keymap.Back):
			if m.state == StateDetail {
				m.state = StateList
				m.viewing = nil
			}

		case key.Matches(msg, m.keymap.Open):
			if m.state == StateList {
				if item, ok := m.list.SelectedItem().(historyItem); ok {
					snap := item.snapshot
					m.viewing = &snap
					m.state = StateDetail
				}
			}

		case key.Matches(msg, m.keymap.Delete):
			if m.state == StateList {
				if item, ok := m.list.SelectedItem().(historyItem); ok {
					return m, m.deleteSnapshot(item.snapshot.ID)
				}
			}
		}
	}

	if m.state == StateList {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the browser.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state == StateDetail && m.viewing != nil {
		return m.detailView()
	}

	view := m.list.View()
	if m.lastErr != nil {
		view += "\n" + cli.ErrorStyle.Render(m.lastErr.Error())
	}
	return view
}

func (m Model) detailView() string {
	snap := *m.viewing
	analysis := cli.FrozenAnalysis(snap)

	header := cli.TitleStyle.Render(snap.CreatedAt.Local().Format("2006-01-02 15:04 분석"))
	body := cli.RenderAnalysis(analysis)
	footer := cli.SubtleStyle.Render("esc: 목록으로 / q: 종료")

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) loadSnapshots() tea.Cmd {
	return func() tea.Msg {
		snapshots, err := m.store.ListSnapshots(m.ctx, m.userID)
		if err != nil {
			return errMsg{err: err}
		}
		return snapshotsLoadedMsg{snapshots: snapshots}
	}
}

func (m Model) deleteSnapshot(id string) tea.Cmd {
	return func() tea.Msg {
		if err := m.store.DeleteSnapshot(m.ctx, m.userID, id); err != nil {
			return errMsg{err: err}
		}
		return snapshotDeletedMsg{id: id}
	}
}

// Run starts the interactive browser and blocks until it exits.
func Run(ctx context.Context, store service.SnapshotStore, userID string) error {
	program := tea.NewProgram(NewModel(ctx, store, userID), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
