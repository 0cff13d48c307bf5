// Package ui is the interactive terminal board. It binds the ordered tally
// list to keys, polls the clock for the midnight rollover, and refreshes
// when another client writes to the store.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marszhhx/recare-tally/pkg/board"
	"github.com/marszhhx/recare-tally/pkg/history"
	"github.com/marszhhx/recare-tally/pkg/store"
)

type mode int

const (
	modeBoard mode = iota
	modeInsert
	modeHistory
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	countStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	customStyle = lipgloss.NewStyle().Faint(true).Italic(true)
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Faint(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

type tickMsg time.Time

type storeMsg struct {
	evt store.Event
	ok  bool
}

// Model is the bubbletea model for the board screen.
type Model struct {
	ctx   context.Context
	board *board.Board
	hist  *history.Projector

	mode   mode
	cursor int
	items  []board.Item

	days  []history.Day
	types []string

	input  textinput.Model
	status string
	isErr  bool

	events <-chan store.Event
}

// New creates the board UI. The watch channel may be nil when the store
// does not support change notification.
func New(ctx context.Context, b *board.Board, hist *history.Projector, events <-chan store.Event) Model {
	ti := textinput.New()
	ti.Placeholder = "new tally name"
	ti.CharLimit = 64

	m := Model{
		ctx:    ctx,
		board:  b,
		hist:   hist,
		input:  ti,
		events: events,
	}
	m.reload()
	return m
}

func (m *Model) reload() {
	m.items = m.board.Ordered()
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.waitForStore())
}

func tick() tea.Cmd {
	return tea.Tick(board.MidnightPollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) waitForStore() tea.Cmd {
	if m.events == nil {
		return nil
	}
	return func() tea.Msg {
		evt, ok := <-m.events
		return storeMsg{evt: evt, ok: ok}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if rolled, err := m.board.CheckMidnight(m.ctx); err != nil {
			m.setErr(err)
		} else if rolled {
			m.setStatus("board reset for " + m.board.DateKey())
			m.reload()
		}
		return m, tick()

	case storeMsg:
		if !msg.ok {
			m.events = nil
			return m, nil
		}
		// Another client wrote; re-derive from the store.
		if err := m.board.Load(m.ctx); err != nil {
			m.setErr(err)
		} else {
			m.reload()
		}
		return m, m.waitForStore()

	case tea.KeyMsg:
		if m.mode == modeInsert {
			return m.updateInsert(msg)
		}
		return m.updateBoard(msg)
	}
	return m, nil
}

func (m Model) updateInsert(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBoard
		m.input.Blur()
		m.input.SetValue("")
		return m, nil
	case "enter":
		name := m.input.Value()
		m.mode = modeBoard
		m.input.Blur()
		m.input.SetValue("")
		if strings.TrimSpace(name) == "" {
			return m, nil
		}
		if err := m.board.AddTally(m.ctx, name); err != nil {
			m.setErr(err)
		} else {
			m.setStatus("added " + strings.ToUpper(strings.TrimSpace(name)))
			m.reload()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.mode == modeHistory {
			m.mode = modeBoard
			return m, nil
		}
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case "+", "=", "right", "l":
		if item, ok := m.current(); ok {
			if err := m.board.Increment(m.ctx, item.Name); err != nil {
				m.setErr(err)
			} else {
				m.clearStatus()
				m.reload()
			}
		}

	case "-", "left", "h":
		if item, ok := m.current(); ok {
			if err := m.board.Decrement(m.ctx, item.Name); err != nil {
				m.setErr(err)
			} else {
				m.clearStatus()
				m.reload()
			}
		}

	case "a":
		m.mode = modeInsert
		m.input.Focus()
		return m, textinput.Blink

	case "x":
		if item, ok := m.current(); ok {
			if err := m.board.RemoveTally(m.ctx, item.Name); err != nil {
				m.setErr(err)
			} else {
				m.setStatus("removed " + item.Name)
				m.reload()
			}
		}

	case "K":
		m.moveBy(-1)

	case "J":
		m.moveBy(1)

	case "H":
		if m.mode == modeHistory {
			m.mode = modeBoard
			return m, nil
		}
		days, err := m.hist.LoadAll(m.ctx)
		if err != nil {
			m.setErr(err)
			return m, nil
		}
		m.days = days
		m.types = m.board.Order()
		m.mode = modeHistory

	case "r":
		if err := m.board.Load(m.ctx); err != nil {
			m.setErr(err)
		} else {
			m.setStatus("refreshed")
			m.reload()
		}
	}
	return m, nil
}

func (m *Model) moveBy(delta int) {
	idx := m.cursor + delta
	if idx < 0 || idx >= len(m.items) {
		return
	}
	source := m.items[m.cursor].Name
	target := m.items[idx].Name
	if err := m.board.Move(m.ctx, source, target); err != nil {
		m.setErr(err)
		return
	}
	m.cursor = idx
	m.clearStatus()
	m.reload()
}

func (m *Model) current() (board.Item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return board.Item{}, false
	}
	return m.items[m.cursor], true
}

func (m *Model) setStatus(s string) { m.status, m.isErr = s, false }
func (m *Model) setErr(err error)   { m.status, m.isErr = err.Error(), true }
func (m *Model) clearStatus()       { m.status, m.isErr = "", false }

func (m Model) View() string {
	if m.mode == modeHistory {
		return m.viewHistory()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Daily Tally · "+m.board.DateKey()) + "\n\n")

	width := 0
	for _, item := range m.items {
		if len(item.Name) > width {
			width = len(item.Name)
		}
	}

	for i, item := range m.items {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		line := fmt.Sprintf("%s%s%s  %s",
			prefix,
			item.Name,
			strings.Repeat(" ", width-len(item.Name)),
			countStyle.Render(fmt.Sprintf("%3d", item.Count)),
		)
		if !item.Builtin {
			line += customStyle.Render("  custom")
		}
		b.WriteString(line + "\n")
	}

	if m.mode == modeInsert {
		b.WriteString("\n" + m.input.View() + "\n")
	}

	if m.status != "" {
		style := statusStyle
		if m.isErr {
			style = errStyle
		}
		b.WriteString("\n" + style.Render(m.status) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render(
		"j/k move · +/- count · a add · x remove · J/K reorder · H history · r refresh · q quit") + "\n")
	return b.String()
}

func (m Model) viewHistory() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("History") + "\n\n")
	if len(m.days) == 0 {
		b.WriteString(statusStyle.Render(" no history") + "\n")
	}
	for _, day := range m.days {
		b.WriteString(fmt.Sprintf("%s, %s", day.Weekday, day.LongDate))
		if day.DisplayTime != "" {
			b.WriteString(statusStyle.Render("  (last write " + day.DisplayTime + ")"))
		}
		b.WriteString("\n")
		for _, name := range m.types {
			b.WriteString(fmt.Sprintf("    %-30s %3d\n", name, day.Tallies.Count(name)))
		}
	}
	b.WriteString("\n" + helpStyle.Render("H/esc back · q quit") + "\n")
	return b.String()
}

// Run starts the UI and blocks until it exits.
func Run(ctx context.Context, b *board.Board, hist *history.Projector, events <-chan store.Event) error {
	p := tea.NewProgram(New(ctx, b, hist, events), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
