// Package wizard implements the interactive prompt behind `dbsetup init`. It
// collects the database connection URL, validating it before accepting.
package wizard

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type state int

const (
	stateEditing state = iota
	stateDone
	stateCancelled
)

// Model is the Bubble Tea model for the init prompt.
type Model struct {
	state       state
	input       textinput.Model
	validateErr error
}

// New creates a new wizard model with the given default connection URL.
func New(defaultURL string) Model {
	input := textinput.New()
	input.Placeholder = defaultURL
	input.CharLimit = 512
	input.Width = 72
	input.Focus()

	return Model{
		state: stateEditing,
		input: input,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.state = stateCancelled
			return m, tea.Quit

		case "enter":
			value := m.input.Value()
			if value == "" {
				value = m.input.Placeholder
			}
			if err := ValidateDatabaseURL(value); err != nil {
				m.validateErr = err
				return m, nil
			}
			m.input.SetValue(value)
			m.validateErr = nil
			m.state = stateDone
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	switch m.state {
	case stateDone:
		return successStyle.Render("✓") + " Using " + m.input.Value() + "\n"
	case stateCancelled:
		return labelStyle.Render("Cancelled.") + "\n"
	}

	view := headerStyle.Render("dbsetup init") + "\n\n"
	view += labelStyle.Render("Database connection URL:") + "\n"
	view += m.input.View() + "\n"
	if m.validateErr != nil {
		view += errorStyle.Render(fmt.Sprintf("✗ %v", m.validateErr)) + "\n"
	}
	view += helpStyle.Render("enter to accept · esc to cancel")
	return view
}

// Run launches the prompt and returns the accepted connection URL. An empty
// string with a nil error means the user cancelled.
func Run(defaultURL string) (string, error) {
	program := tea.NewProgram(New(defaultURL))
	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("wizard failed: %w", err)
	}

	model, ok := final.(Model)
	if !ok {
		return "", fmt.Errorf("wizard returned unexpected model type")
	}
	if model.state != stateDone {
		return "", nil
	}
	return model.input.Value(), nil
}
