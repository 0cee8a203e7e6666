package component

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StatusModel shows a spinner plus a one-line status text while an operation
// is in flight.
type StatusModel struct {
	spinner spinner.Model
	running bool
	text    string
	width   int
}

// NewStatusModel creates the status component.
func NewStatusModel() StatusModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return StatusModel{
		spinner: s,
		text:    "Ready",
	}
}

// Init does nothing; the spinner starts when work does.
func (m StatusModel) Init() tea.Cmd {
	return nil
}

// Start begins the spinner with the given status text.
func (m *StatusModel) Start(text string) tea.Cmd {
	m.running = true
	m.text = text
	return m.spinner.Tick
}

// Stop halts the spinner and shows the given text.
func (m *StatusModel) Stop(text string) {
	m.running = false
	m.text = text
}

// Running reports whether the spinner is active.
func (m *StatusModel) Running() bool {
	return m.running
}

// Update advances the spinner animation.
func (m StatusModel) Update(msg tea.Msg) (StatusModel, tea.Cmd) {
	if m.running {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the status line.
func (m *StatusModel) View() string {
	if m.running {
		return fmt.Sprintf("%s %s", m.spinner.View(), m.text)
	}
	return "  " + m.text
}

// SetWidth sets the component width.
func (m *StatusModel) SetWidth(width int) {
	m.width = width
}
