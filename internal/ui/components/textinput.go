package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/courseforge/internal/ui/theme"
)

// TextInput wraps bubbles/textinput for single-line fields such as course
// and lesson names.
type TextInput struct {
	Model textinput.Model
	Label string
	err   string
}

// NewTextInput creates a labeled text input. charLimit <= 0 means
// unlimited.
func NewTextInput(label, placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return TextInput{Model: ti, Label: label}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label, input, and any validation error.
func (t TextInput) View() string {
	s := ""
	if t.Label != "" {
		s += theme.InputLabel.Render(t.Label) + "\n"
	}
	s += t.Model.View()
	if t.err != "" {
		s += "\n" + theme.Incorrect.Render(t.err)
	}
	return s
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value, placing the cursor at the end.
func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
	t.Model.CursorEnd()
}

// SetError shows a validation message under the input. Empty clears it.
func (t *TextInput) SetError(msg string) {
	t.err = msg
}
