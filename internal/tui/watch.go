package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/stationup/internal/wifi"
)

// maxEventLines bounds the scrolled event log
const maxEventLines = 8

// EventMsg delivers a lifecycle event to the model (via Program.Send)
type EventMsg wifi.Event

// OutcomeMsg delivers the terminal outcome set to the model
type OutcomeMsg wifi.OutcomeSet

// Model is the bubbletea model for the bring-up watch view.
type Model struct {
	iface  string
	ssid   string
	budget int

	spinner spinner.Model
	events  []string
	retries int
	addr    string
	outcome wifi.OutcomeSet
	done    bool
	aborted bool
}

// NewModel creates a watch model for one bring-up run.
func NewModel(iface, ssid string, budget int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = TitleStyle
	return Model{
		iface:   iface,
		ssid:    ssid,
		budget:  budget,
		spinner: sp,
	}
}

// Aborted reports whether the user quit before a terminal outcome.
func (m Model) Aborted() bool {
	return m.aborted
}

// Outcome returns the latched outcome set (zero until done).
func (m Model) Outcome() wifi.OutcomeSet {
	return m.outcome
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if !m.done {
				m.aborted = true
			}
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case EventMsg:
		m.applyEvent(wifi.Event(msg))
		return m, nil

	case OutcomeMsg:
		m.outcome = wifi.OutcomeSet(msg)
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) applyEvent(ev wifi.Event) {
	var line string
	switch ev.Kind {
	case wifi.EventStationStarted:
		line = "station started, connecting"
	case wifi.EventDisconnected:
		if m.retries < m.budget {
			m.retries++
		}
		line = RetryStyle.Render(fmt.Sprintf("disconnected, retry %d/%d", m.retries, m.budget))
		if ev.Reason != "" {
			line += EventStyle.Render(" " + ev.Reason)
		}
	case wifi.EventAddressAcquired:
		m.retries = 0
		m.addr = ev.Addr.String()
		line = "got ip " + m.addr
	default:
		line = EventStyle.Render(ev.String())
	}

	m.events = append(m.events, line)
	if len(m.events) > maxEventLines {
		m.events = m.events[len(m.events)-maxEventLines:]
	}
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("stationup"))
	b.WriteString(EventStyle.Render(fmt.Sprintf("  %s → %q", m.iface, m.ssid)))
	b.WriteString("\n\n")

	for _, line := range m.events {
		b.WriteString("  " + line + "\n")
	}

	switch {
	case m.done && m.outcome.Has(wifi.OutcomeSucceeded):
		b.WriteString("\n" + SuccessStyle.Render(fmt.Sprintf("✓ connected to %q, ip %s", m.ssid, m.addr)) + "\n")
	case m.done && m.outcome.Has(wifi.OutcomeExhausted):
		b.WriteString("\n" + FailureStyle.Render(fmt.Sprintf("✗ failed to connect after %d retries", m.budget)) + "\n")
	case m.done:
		b.WriteString("\n" + FailureStyle.Render("✗ no outcome reported") + "\n")
	default:
		b.WriteString("\n" + m.spinner.View() + StatusStyle.Render(" waiting for lease...") + "\n")
		b.WriteString(HelpStyle.Render("  q to abort the watch (bring-up keeps running)") + "\n")
	}

	return b.String()
}
