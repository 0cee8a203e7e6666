package component

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SubmitMsg is emitted when the user submits the input line.
type SubmitMsg struct {
	Value string
}

// EditModel wraps the idea/command input box.
type EditModel struct {
	textarea textarea.Model
	width    int
}

// NewEditModel creates the input component.
func NewEditModel() EditModel {
	ta := textarea.New()
	ta.Placeholder = "Describe your idea, or /help for commands..."
	ta.Focus()

	ta.Prompt = "> "
	ta.CharLimit = 2000

	ta.SetWidth(30)
	ta.SetHeight(1)

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.ShowLineNumbers = false

	// Enter submits; newlines are disabled.
	ta.KeyMap.InsertNewline.SetEnabled(false)

	return EditModel{
		textarea: ta,
		width:    30,
	}
}

// Init starts the cursor blink.
func (m EditModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles input events.
func (m EditModel) Update(msg tea.Msg) (EditModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter {
			value := m.textarea.Value()
			if value != "" {
				m.textarea.Reset()
				return m, func() tea.Msg {
					return SubmitMsg{Value: value}
				}
			}
			return m, nil
		}
	}

	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// View renders the component.
func (m *EditModel) View() string {
	return m.textarea.View()
}

// SetWidth sets the component width.
func (m *EditModel) SetWidth(width int) {
	m.width = width
	m.textarea.SetWidth(width)
}

// SetValue replaces the input contents, e.g. when loading a suggestion.
func (m *EditModel) SetValue(value string) {
	m.textarea.SetValue(value)
}

// Height returns the rendered height.
func (m *EditModel) Height() int {
	return lipgloss.Height(m.textarea.View())
}
