// Package tracker is the interactive terminal clock: clock in, clock out and
// watch the running time tinted by the shift it currently falls into.
package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"timesheet/internal/apperr"
	"timesheet/internal/timeutil"
	"timesheet/interval"
	"timesheet/session"
	"timesheet/shift"
)

const maxLogLines = 8

// Clock is the part of the session controller the tracker drives.
type Clock interface {
	ClockIn() (session.OpenSession, bool)
	ClockOut() (interval.Interval, bool, error)
	Status() (session.Running, bool)
}

type keyMap struct {
	In   key.Binding
	Out  key.Binding
	Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.In, k.Out, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultKeyMap() keyMap {
	return keyMap{
		In:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "clock in")),
		Out:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "clock out")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Timer tints, one per shift.
var (
	timerColors = map[shift.Label]lipgloss.Color{
		shift.Overday: lipgloss.Color("#80B3FF"),
		shift.Mid:     lipgloss.Color("#80FF80"),
		shift.Night:   lipgloss.Color("#FFFF80"),
	}

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0080FF"))
	labelStyle  = lipgloss.NewStyle().Bold(true)
	timerStyle  = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("#000000"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	logStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#928374"))
)

type tickMsg time.Time

type Model struct {
	clock Clock
	keys  keyMap
	help  help.Model

	log       []string
	notice    string
	quitArmed bool
}

func New(clock Clock) Model {
	return Model{
		clock: clock,
		keys:  defaultKeyMap(),
		help:  help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tick()
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if _, open := m.clock.Status(); open && !m.quitArmed {
			m.quitArmed = true
			m.notice = "Still clocked in; the open session is lost on quit. Press q again to quit."
			return m, nil
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.In):
		m.quitArmed = false
		m.notice = ""
		if opened, ok := m.clock.ClockIn(); ok {
			m.appendLog(fmt.Sprintf("Clocked in: %s", opened.Start.Format(interval.TimestampLayout)))
		}
	case key.Matches(msg, m.keys.Out):
		m.quitArmed = false
		m.notice = ""
		item, closed, err := m.clock.ClockOut()
		if err != nil {
			m.notice = fmt.Sprintf("%s: %v", apperr.Title(err), err)
			return m, nil
		}
		if closed {
			m.appendLog(fmt.Sprintf("Clocked out: %s  - %.2f h  [%s]",
				item.End.Format(interval.TimestampLayout), item.DurationHours, item.Shift.Code()))
		}
	}
	return m, nil
}

func (m *Model) appendLog(line string) {
	m.log = append(m.log, line)
	if len(m.log) > maxLogLines {
		m.log = m.log[len(m.log)-maxLogLines:]
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Timesheet"))
	b.WriteString("\n\n")

	running, open := m.clock.Status()
	clockIn := "--:--:--"
	elapsed := time.Duration(0)
	style := timerStyle
	if open {
		clockIn = running.Session.Start.Format("15:04:05")
		elapsed = running.Elapsed
		if color, ok := timerColors[running.Shift]; ok {
			style = style.Background(color)
		}
	}

	b.WriteString(labelStyle.Render("Clock In: ") + clockIn + "\n")
	timer := "Running Time: " + timeutil.FormatElapsed(elapsed)
	if open && running.Shift != shift.None {
		timer += "  [" + running.Shift.Name() + "]"
	}
	b.WriteString(style.Render(timer) + "\n")

	if m.notice != "" {
		b.WriteString("\n" + noticeStyle.Render(m.notice) + "\n")
	}

	if len(m.log) > 0 {
		b.WriteString("\n")
		for _, line := range m.log {
			b.WriteString(logStyle.Render(line) + "\n")
		}
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}
