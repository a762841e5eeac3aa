package components

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/courseforge/internal/ui/theme"
)

// TextArea wraps bubbles/textarea for multi-line fields: descriptions,
// theory text, code.
type TextArea struct {
	Model textarea.Model
	Label string
	err   string
}

// NewTextArea creates a labeled multi-line input.
func NewTextArea(label, placeholder string, width, height int) TextArea {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	if width > 0 {
		ta.SetWidth(width)
	}
	if height > 0 {
		ta.SetHeight(height)
	}
	ta.Focus()
	return TextArea{Model: ta, Label: label}
}

// Init returns the initial command.
func (t TextArea) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextArea) Update(msg tea.Msg) (TextArea, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label, area, and any validation error.
func (t TextArea) View() string {
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

// Value returns the current content.
func (t TextArea) Value() string {
	return t.Model.Value()
}

// SetValue replaces the content.
func (t *TextArea) SetValue(v string) {
	t.Model.SetValue(v)
}

// SetError shows a validation message under the area. Empty clears it.
func (t *TextArea) SetError(msg string) {
	t.err = msg
}
