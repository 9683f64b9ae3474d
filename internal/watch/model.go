// Package watch drives the live slot dashboard behind `tak list --watch`.
package watch

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gurisko/tak/internal/ui"
	"github.com/gurisko/tak/internal/worktree"
)

const refresh_interval = 3 * time.Second

type KeyMap struct {
	Refresh key.Binding
	Quit    key.Binding
	CtrlC   key.Binding
}

var Keys = KeyMap{
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc"),
		key.WithHelp("q", "quit"),
	),
	CtrlC: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
}

// Model is the root Bubbletea model for watch mode.
type Model struct {
	reg *worktree.Registry
	app string

	slots  []worktree.Slot
	free   []string
	loaded bool

	refreshed time.Time
}

func NewModel(app string, reg *worktree.Registry) Model {
	return Model{reg: reg, app: app}
}

func (m Model) Init() tea.Cmd {
	return m.cmd_snapshot()
}

// Messages
type MsgSnapshot struct {
	Slots []worktree.Slot
	Free  []string
	At    time.Time
}
type MsgTick struct{}

func (m Model) cmd_snapshot() tea.Cmd {
	reg := m.reg
	return func() tea.Msg {
		return MsgSnapshot{
			Slots: reg.Snapshot(),
			Free:  reg.FreeNames(),
			At:    time.Now(),
		}
	}
}

func tick_after(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return MsgTick{}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, Keys.Quit), key.Matches(msg, Keys.CtrlC):
			return m, tea.Quit
		case key.Matches(msg, Keys.Refresh):
			return m, m.cmd_snapshot()
		}
		return m, nil

	case MsgSnapshot:
		m.slots = msg.Slots
		m.free = msg.Free
		m.refreshed = msg.At
		m.loaded = true
		return m, tick_after(refresh_interval)

	case MsgTick:
		return m, m.cmd_snapshot()
	}
	return m, nil
}

func (m Model) View() string {
	if !m.loaded {
		return "\n  Scanning worktrees...\n"
	}

	title := ui.Title(fmt.Sprintf("tak — %s", m.app))
	clock := ui.Dim(m.refreshed.Format("15:04:05"))
	help := ui.Dim(fmt.Sprintf("%s %s · %s %s",
		Keys.Refresh.Help().Key, Keys.Refresh.Help().Desc,
		Keys.Quit.Help().Key, Keys.Quit.Help().Desc,
	))

	return fmt.Sprintf("\n  %s  %s\n\n%s\n\n  %s\n",
		title, clock, ui.RenderSlotTable(m.slots, m.free), help)
}

// Run blocks until the dashboard exits.
func Run(app string, reg *worktree.Registry) error {
	p := tea.NewProgram(NewModel(app, reg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run watch mode: %w", err)
	}
	return nil
}
