package lessonview

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/courseforge/internal/course"
	"github.com/abhisek/courseforge/internal/ui/layout"
	"github.com/abhisek/courseforge/internal/ui/theme"
)

func (s *LessonScreen) View(width, height int) string {
	switch s.mode {
	case modeAddBlock:
		body := theme.Title.Render("Add Block") + "\n\n" + s.kindMenu.View()
		return lipgloss.NewStyle().Padding(1, 4).Width(width).Render(body)
	case modeEditBlock:
		return lipgloss.NewStyle().Padding(1, 4).Width(width).Render(s.form.view())
	case modeGenerate:
		body := theme.Title.Render("Generate Lesson Content") + "\n\n" + s.prompt.View() + "\n\n" +
			theme.Hint.Render("ctrl+s: generate    esc: cancel")
		return lipgloss.NewStyle().Padding(1, 4).Width(width).Render(body)
	case modeRegenerate:
		body := theme.Title.Render("Regenerate Block") + "\n\n" + s.prompt.View() + "\n\n" +
			theme.Hint.Render("ctrl+s: generate    esc: cancel")
		return lipgloss.NewStyle().Padding(1, 4).Width(width).Render(body)
	}
	return s.viewBlocks(width, height)
}

func (s *LessonScreen) viewBlocks(width, height int) string {
	var b strings.Builder

	if open := s.lessons.Open(); open != nil && open.Description != "" {
		b.WriteString("  " + theme.Hint.Render(layout.Truncate(open.Description, width-6)) + "\n\n")
	}

	if s.loading {
		b.WriteString("  " + theme.Hint.Render("Working…") + "\n")
		return b.String()
	}

	blocks := s.blocks()
	if len(blocks) == 0 {
		b.WriteString("  " + theme.Hint.Render("No blocks yet. Press a to add one or G to generate content.") + "\n")
	}

	drag := s.editor.Reorder()

	for i, blk := range blocks {
		selected := i == s.cursor
		marker := "  "
		style := theme.Unselected
		switch {
		case drag.Dragging() && drag.DraggedID() == blk.ID.String():
			marker = "⇅ "
			style = theme.Dragging
		case drag.Dragging() && i == drag.OverIndex():
			marker = "→ "
			style = theme.Dragging
		case selected:
			marker = "▸ "
			style = theme.Selected
		}

		badge := theme.Badge.Render(string(blk.Kind()))
		b.WriteString(style.Render(fmt.Sprintf("%s%2d.", marker, i+1)) + " " + badge + "\n")
		b.WriteString(s.renderBlock(blk, selected, width) + "\n")
	}

	if s.status != "" {
		b.WriteString("\n  " + theme.Incorrect.Render(s.status) + "\n")
	}

	return b.String()
}

func (s *LessonScreen) renderBlock(b course.Block, selected bool, width int) string {
	indent := lipgloss.NewStyle().PaddingLeft(6)
	w := width - 10
	if w < 20 {
		w = 20
	}

	switch c := b.Content.(type) {
	case course.Theory:
		body := theme.Body.Bold(true).Render(c.Title) + "\n" +
			theme.Body.Render(clip(c.Content, w, selected))
		return indent.Render(body)

	case course.Code:
		head := c.Language
		if c.Title != "" {
			head = c.Title + " (" + c.Language + ")"
		}
		body := theme.Body.Bold(true).Render(head) + "\n" +
			theme.CodeBlock.Render(clip(c.Code, w, selected))
		if c.Explanation != "" && selected {
			body += "\n" + theme.Hint.Render(clip(c.Explanation, w, false))
		}
		return indent.Render(body)

	case course.Note:
		color := theme.NoteInfo
		switch c.NoteKind {
		case course.NoteWarning:
			color = theme.NoteWarning
		case course.NoteTip:
			color = theme.NoteTip
		case course.NoteImportant:
			color = theme.NoteImportant
		}
		body := lipgloss.NewStyle().Foreground(color).Bold(true).Render(string(c.NoteKind)) +
			" " + theme.Body.Render(clip(c.Content, w, selected))
		return indent.Render(body)

	case course.SingleChoice:
		return indent.Render(s.renderChoice(b, c.Question, c.Options, false, selected, w))

	case course.MultipleChoice:
		return indent.Render(s.renderChoice(b, c.Question, c.Options, true, selected, w))
	}

	return indent.Render(theme.Hint.Render("(empty block)"))
}

// renderChoice draws a quiz block with the reader's marks and, once
// checked, the server verdict.
func (s *LessonScreen) renderChoice(b course.Block, question string, options []string, multiple, selected bool, w int) string {
	tracker := s.lessons.Quiz()

	var out strings.Builder
	out.WriteString(theme.Body.Bold(true).Render(clip(question, w, selected)) + "\n")

	sel := map[int]bool{}
	correctSet := map[int]bool{}
	checked := false
	isCorrect := false
	explanation := ""

	if tracker != nil {
		answer := tracker.Selection(b.ID)
		if answer.Single != nil {
			sel[*answer.Single] = true
		}
		for _, i := range answer.Multi {
			sel[i] = true
		}
		if res, ok := tracker.Result(b.ID); ok {
			checked = true
			isCorrect = res.IsCorrect
			explanation = res.Explanation
			if res.CorrectAnswer != nil {
				correctSet[*res.CorrectAnswer] = true
			}
			for _, i := range res.CorrectAnswers {
				correctSet[i] = true
			}
		}
	}

	for i, opt := range options {
		mark := "( )"
		if multiple {
			mark = "[ ]"
		}
		if sel[i] {
			if multiple {
				mark = "[x]"
			} else {
				mark = "(•)"
			}
		}
		line := fmt.Sprintf("%d %s %s", i+1, mark, clip(opt, w-8, false))
		switch {
		case checked && correctSet[i]:
			out.WriteString(theme.Correct.Render(line) + "\n")
		case checked && sel[i]:
			out.WriteString(theme.Incorrect.Render(line) + "\n")
		default:
			out.WriteString(theme.Body.Render(line) + "\n")
		}
	}

	if checked {
		if isCorrect {
			out.WriteString(theme.Correct.Render("Correct!"))
		} else {
			out.WriteString(theme.Incorrect.Render("Not quite."))
		}
		if explanation != "" && selected {
			out.WriteString("\n" + theme.Hint.Render(clip(explanation, w, false)))
		}
	} else if selected {
		out.WriteString(theme.Hint.Render("1-9: mark    c: check"))
	}

	return out.String()
}

// clip trims content for list display: the selected block shows more.
func clip(s string, width int, selected bool) string {
	lines := strings.Split(s, "\n")
	max := 2
	if selected {
		max = 8
	}
	if len(lines) > max {
		lines = append(lines[:max], "…")
	}
	for i, l := range lines {
		lines[i] = layout.Truncate(l, width)
	}
	return strings.Join(lines, "\n")
}
