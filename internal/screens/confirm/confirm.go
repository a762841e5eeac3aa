// Package confirm provides a modal confirmation screen. Destructive
// actions route through here before touching the server.
package confirm

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/courseforge/internal/router"
	"github.com/abhisek/courseforge/internal/screen"
	"github.com/abhisek/courseforge/internal/ui/layout"
	"github.com/abhisek/courseforge/internal/ui/theme"
)

// ConfirmScreen asks a yes/no question. Yes pops the modal and runs the
// action; no just pops.
type ConfirmScreen struct {
	prompt string
	action func() tea.Msg
}

var _ screen.Screen = (*ConfirmScreen)(nil)
var _ screen.KeyHintProvider = (*ConfirmScreen)(nil)

// New creates a confirmation modal.
func New(prompt string, action func() tea.Msg) *ConfirmScreen {
	return &ConfirmScreen{prompt: prompt, action: action}
}

func (c *ConfirmScreen) Init() tea.Cmd {
	return nil
}

func (c *ConfirmScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "y", "enter":
		pop := func() tea.Msg { return router.PopScreenMsg{} }
		if c.action == nil {
			return c, pop
		}
		return c, tea.Sequence(pop, c.action)
	case "n":
		return c, func() tea.Msg { return router.PopScreenMsg{} }
	}

	return c, nil
}

func (c *ConfirmScreen) View(width, height int) string {
	body := theme.Body.Render(c.prompt) + "\n\n" +
		theme.Hint.Render("y: yes    n: no")

	card := theme.Card.Render(body)

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(card)
}

func (c *ConfirmScreen) Title() string {
	return "Confirm"
}

func (c *ConfirmScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "y", Description: "Yes"},
		{Key: "n", Description: "No"},
		{Key: "Esc", Description: "Cancel"},
	}
}
