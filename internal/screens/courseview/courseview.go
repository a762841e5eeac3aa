// Package courseview shows one course: its lesson plan, inline editing
// of names and descriptions, lesson reordering, and AI plan generation.
package courseview

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/courseforge/internal/api"
	"github.com/abhisek/courseforge/internal/course"
	"github.com/abhisek/courseforge/internal/edit"
	"github.com/abhisek/courseforge/internal/editor"
	"github.com/abhisek/courseforge/internal/router"
	"github.com/abhisek/courseforge/internal/screen"
	"github.com/abhisek/courseforge/internal/screens/confirm"
	"github.com/abhisek/courseforge/internal/screens/lessonview"
	"github.com/abhisek/courseforge/internal/store"
	"github.com/abhisek/courseforge/internal/ui/components"
	"github.com/abhisek/courseforge/internal/ui/layout"
	"github.com/abhisek/courseforge/internal/ui/theme"
)

type mode int

const (
	modeBrowse mode = iota
	modeEditLine // single-line field via an edit session
	modeEditText // multi-line field via an edit session
	modeNewLesson
	modeGenerate
)

// CourseScreen is the lesson plan view for the open course.
type CourseScreen struct {
	courses *store.CourseStore
	lessons *store.LessonStore
	editor  *editor.Editor

	mode   mode
	cursor int

	// Inline edit state.
	line    components.TextInput
	text    components.TextArea
	session *edit.Session[string]
	save    func(context.Context) error

	// New lesson form.
	name  components.TextInput
	desc  components.TextArea
	focus int

	// Generate form.
	goal components.TextArea

	loading bool
	status  string
}

var _ screen.Screen = (*CourseScreen)(nil)
var _ screen.KeyHintProvider = (*CourseScreen)(nil)
var _ screen.EscInterceptor = (*CourseScreen)(nil)

type refreshedMsg struct{ err error }
type savedMsg struct{ err error }
type lessonOpenedMsg struct{ err error }
type generatedMsg struct {
	count int
	err   error
}

// New creates the course screen for the currently open course.
func New(courses *store.CourseStore, lessons *store.LessonStore, ed *editor.Editor) *CourseScreen {
	return &CourseScreen{
		courses: courses,
		lessons: lessons,
		editor:  ed,
	}
}

func (c *CourseScreen) Init() tea.Cmd {
	return nil
}

// InterceptsEsc keeps Esc inside the screen while an inline mode or a
// drag is active.
func (c *CourseScreen) InterceptsEsc() bool {
	return c.mode != modeBrowse || c.lessons.Reorder().Dragging()
}

func (c *CourseScreen) refresh() tea.Cmd {
	c.loading = true
	return func() tea.Msg {
		return refreshedMsg{err: c.lessons.Load(context.Background())}
	}
}

func (c *CourseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshedMsg:
		c.loading = false
		if msg.err != nil {
			c.status = msg.err.Error()
		} else {
			c.status = ""
			c.clampCursor()
		}
		return c, nil

	case savedMsg:
		c.loading = false
		if msg.err != nil {
			c.status = msg.err.Error()
			return c, nil
		}
		c.mode = modeBrowse
		c.session = nil
		c.status = ""
		return c, nil

	case lessonOpenedMsg:
		c.loading = false
		if msg.err != nil {
			c.status = msg.err.Error()
			return c, nil
		}
		return c, func() tea.Msg {
			return router.PushScreenMsg{
				Screen: lessonview.New(c.courses, c.lessons, c.editor),
			}
		}

	case generatedMsg:
		c.loading = false
		if msg.err != nil {
			c.status = msg.err.Error()
			return c, nil
		}
		if msg.count > 0 {
			c.status = fmt.Sprintf("Generated %d lessons", msg.count)
		}
		c.mode = modeBrowse
		return c, nil

	case tea.KeyMsg:
		switch c.mode {
		case modeEditLine, modeEditText:
			return c.updateEdit(msg)
		case modeNewLesson:
			return c.updateNewLesson(msg)
		case modeGenerate:
			return c.updateGenerate(msg)
		default:
			return c.updateBrowse(msg)
		}
	}

	return c, nil
}

func (c *CourseScreen) clampCursor() {
	if n := len(c.lessons.Lessons()); c.cursor >= n {
		c.cursor = n - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
}

func (c *CourseScreen) updateBrowse(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	list := c.lessons.Lessons()
	drag := c.lessons.Reorder()

	switch msg.String() {
	case "up", "k":
		if c.cursor > 0 {
			c.cursor--
		}
		if drag.Dragging() {
			drag.Over(c.cursor)
		}
	case "down", "j":
		if c.cursor < len(list)-1 {
			c.cursor++
		}
		if drag.Dragging() {
			drag.Over(c.cursor)
		}
	case "esc":
		if drag.Dragging() {
			drag.Cancel()
		}
	case "g":
		if drag.Dragging() {
			return c, c.dropAt(c.cursor)
		}
		if c.cursor < len(list) && c.courses.IsAuthor() {
			if err := c.lessons.Grab(list[c.cursor].ID); err != nil {
				c.status = err.Error()
			} else {
				drag.Over(c.cursor)
			}
		}
	case "enter":
		if drag.Dragging() {
			return c, c.dropAt(c.cursor)
		}
		if c.cursor < len(list) {
			id := list[c.cursor].ID
			c.loading = true
			return c, func() tea.Msg {
				return lessonOpenedMsg{err: c.lessons.Select(context.Background(), id)}
			}
		}
	case "n":
		if c.courses.IsAuthor() {
			c.mode = modeNewLesson
			c.focus = 0
			c.name = components.NewTextInput("Name", "lesson name", course.MaxNameLength)
			c.desc = components.NewTextArea("Description", "what this lesson covers", 60, 4)
			c.desc.Model.Blur()
			return c, c.name.Init()
		}
	case "d":
		if c.cursor < len(list) && c.courses.IsAuthor() {
			id := list[c.cursor].ID
			action := func() tea.Msg {
				if err := c.lessons.Select(context.Background(), id); err != nil {
					return refreshedMsg{err: err}
				}
				return refreshedMsg{err: c.lessons.Delete(context.Background())}
			}
			return c, func() tea.Msg {
				return router.PushScreenMsg{Screen: confirm.New("Delete this lesson?", action)}
			}
		}
	case "e":
		if c.cursor < len(list) && c.courses.IsAuthor() {
			return c.beginLessonEdit(list[c.cursor], false)
		}
	case "E":
		if c.cursor < len(list) && c.courses.IsAuthor() {
			return c.beginLessonEdit(list[c.cursor], true)
		}
	case "c":
		if c.courses.IsAuthor() {
			return c.beginCourseEdit(false)
		}
	case "C":
		if c.courses.IsAuthor() {
			return c.beginCourseEdit(true)
		}
	case "G":
		if c.courses.IsAuthor() {
			c.mode = modeGenerate
			c.goal = components.NewTextArea("Learning goal", "what should students be able to do", 60, 4)
			return c, c.goal.Init()
		}
	case "r":
		return c, c.refresh()
	}

	return c, nil
}

func (c *CourseScreen) dropAt(index int) tea.Cmd {
	c.loading = true
	return func() tea.Msg {
		return refreshedMsg{err: c.lessons.Drop(context.Background(), index)}
	}
}

func (c *CourseScreen) beginLessonEdit(l course.LessonSummary, description bool) (screen.Screen, tea.Cmd) {
	if err := c.lessons.Select(context.Background(), l.ID); err != nil {
		c.status = err.Error()
		return c, nil
	}
	if description {
		sess, err := c.lessons.EditDescription()
		if err != nil {
			c.status = err.Error()
			return c, nil
		}
		c.session = sess
		c.save = c.lessons.SaveDescription
		c.mode = modeEditText
		c.text = components.NewTextArea("Lesson description", "", 60, 4)
		c.text.SetValue(sess.Draft())
		return c, c.text.Init()
	}
	sess, err := c.lessons.EditName()
	if err != nil {
		c.status = err.Error()
		return c, nil
	}
	c.session = sess
	c.save = c.lessons.SaveName
	c.mode = modeEditLine
	c.line = components.NewTextInput("Lesson name", "", course.MaxNameLength)
	c.line.SetValue(sess.Draft())
	return c, c.line.Init()
}

func (c *CourseScreen) beginCourseEdit(description bool) (screen.Screen, tea.Cmd) {
	if description {
		sess, err := c.courses.EditDescription()
		if err != nil {
			c.status = err.Error()
			return c, nil
		}
		c.session = sess
		c.save = c.courses.SaveDescription
		c.mode = modeEditText
		c.text = components.NewTextArea("Course description", "", 60, 4)
		c.text.SetValue(sess.Draft())
		return c, c.text.Init()
	}
	sess, err := c.courses.EditName()
	if err != nil {
		c.status = err.Error()
		return c, nil
	}
	c.session = sess
	c.save = c.courses.SaveName
	c.mode = modeEditLine
	c.line = components.NewTextInput("Course name", "", course.MaxNameLength)
	c.line.SetValue(sess.Draft())
	return c, c.line.Init()
}

func (c *CourseScreen) updateEdit(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if c.session != nil {
			c.session.Cancel()
		}
		c.session = nil
		c.mode = modeBrowse
		return c, nil
	case "enter", "ctrl+s":
		if msg.String() == "enter" && c.mode == modeEditText {
			break
		}
		if c.session == nil {
			c.mode = modeBrowse
			return c, nil
		}
		value := c.line.Value()
		if c.mode == modeEditText {
			value = c.text.Value()
		}
		c.session.Change(value)
		save := c.save
		c.loading = true
		return c, func() tea.Msg {
			return savedMsg{err: save(context.Background())}
		}
	}

	var cmd tea.Cmd
	if c.mode == modeEditText {
		c.text, cmd = c.text.Update(msg)
	} else {
		c.line, cmd = c.line.Update(msg)
	}
	return c, cmd
}

func (c *CourseScreen) updateNewLesson(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		c.mode = modeBrowse
		return c, nil
	case "tab":
		if c.focus == 0 {
			c.focus = 1
			c.name.Model.Blur()
			return c, c.desc.Init()
		}
		c.focus = 0
		c.desc.Model.Blur()
		return c, c.name.Init()
	case "enter", "ctrl+s":
		if msg.String() == "enter" && c.focus == 1 {
			break
		}
		name, desc := c.name.Value(), c.desc.Value()
		if err := course.ValidateName(name); err != nil {
			c.name.SetError(err.Error())
			return c, nil
		}
		if err := course.ValidateDescription(desc); err != nil {
			c.desc.SetError(err.Error())
			return c, nil
		}
		draft := c.editor.Draft()
		c.loading = true
		return c, func() tea.Msg {
			err := c.lessons.Create(context.Background(), name, desc, draft)
			if err == nil {
				c.editor.ClearDraft()
				return lessonOpenedMsg{}
			}
			return savedMsg{err: err}
		}
	}

	var cmd tea.Cmd
	if c.focus == 0 {
		c.name, cmd = c.name.Update(msg)
	} else {
		c.desc, cmd = c.desc.Update(msg)
	}
	return c, cmd
}

func (c *CourseScreen) updateGenerate(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		c.mode = modeBrowse
		return c, nil
	case "ctrl+s":
		goal := strings.TrimSpace(c.goal.Value())
		run := func() tea.Msg {
			req := api.GenerateLessonsRequest{}
			if goal != "" {
				req.Goal = &goal
			}
			count, err := c.lessons.Generate(context.Background(), req)
			if err != nil {
				return generatedMsg{err: err}
			}
			return generatedMsg{count: count}
		}
		c.loading = true
		if len(c.lessons.Lessons()) > 0 {
			c.loading = false
			return c, func() tea.Msg {
				return router.PushScreenMsg{
					Screen: confirm.New("Generating a plan replaces all existing lessons. Continue?", run),
				}
			}
		}
		return c, run
	}

	var cmd tea.Cmd
	c.goal, cmd = c.goal.Update(msg)
	return c, cmd
}

func (c *CourseScreen) View(width, height int) string {
	switch c.mode {
	case modeEditLine:
		return c.viewForm(width, c.line.View(), "enter: save    esc: cancel")
	case modeEditText:
		return c.viewForm(width, c.text.View(), "ctrl+s: save    esc: cancel")
	case modeNewLesson:
		form := theme.Title.Render("New Lesson") + "\n\n" + c.name.View() + "\n\n" + c.desc.View()
		return c.viewForm(width, form, "tab: switch field    ctrl+s: create    esc: cancel")
	case modeGenerate:
		form := theme.Title.Render("Generate Lesson Plan") + "\n\n" + c.goal.View()
		return c.viewForm(width, form, "ctrl+s: generate    esc: cancel")
	default:
		return c.viewPlan(width, height)
	}
}

func (c *CourseScreen) viewForm(width int, body, hints string) string {
	s := body + "\n\n" + theme.Hint.Render(hints)
	if c.status != "" {
		s += "\n" + theme.Incorrect.Render(c.status)
	}
	return lipgloss.NewStyle().Padding(1, 4).Width(width).Render(s)
}

func (c *CourseScreen) viewPlan(width, height int) string {
	var b strings.Builder

	if open := c.courses.Open(); open != nil && open.Description != "" {
		b.WriteString("  " + theme.Hint.Render(layout.Truncate(open.Description, width-6)) + "\n\n")
	}

	if c.loading {
		b.WriteString("  " + theme.Hint.Render("Loading…") + "\n")
		return b.String()
	}

	drag := c.lessons.Reorder()
	list := c.lessons.Lessons()
	if len(list) == 0 {
		b.WriteString("  " + theme.Hint.Render("No lessons yet. Press n to add one or G to generate a plan.") + "\n")
	}

	for i, l := range list {
		line := fmt.Sprintf("%2d. %s", i+1, layout.Truncate(l.Name, width-12))
		switch {
		case drag.Dragging() && drag.DraggedID() == fmt.Sprint(l.ID):
			b.WriteString(theme.Dragging.Render("  ⇅ "+line) + "\n")
		case drag.Dragging() && i == drag.OverIndex():
			b.WriteString(theme.Dragging.Render("  → "+line) + "\n")
		case i == c.cursor:
			b.WriteString(theme.Selected.Render("  ▸ "+line) + "\n")
		default:
			b.WriteString(theme.Unselected.Render("    "+line) + "\n")
		}
	}

	if c.status != "" {
		b.WriteString("\n  " + theme.Incorrect.Render(c.status) + "\n")
	}

	return b.String()
}

func (c *CourseScreen) Title() string {
	if open := c.courses.Open(); open != nil {
		return open.Name
	}
	return "Course"
}

func (c *CourseScreen) KeyHints() []layout.KeyHint {
	switch c.mode {
	case modeEditLine:
		return []layout.KeyHint{{Key: "Enter", Description: "Save"}, {Key: "Esc", Description: "Cancel"}}
	case modeEditText, modeGenerate:
		return []layout.KeyHint{{Key: "Ctrl+S", Description: "Save"}, {Key: "Esc", Description: "Cancel"}}
	case modeNewLesson:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Field"},
			{Key: "Ctrl+S", Description: "Create"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	if c.lessons.Reorder().Dragging() {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter", Description: "Drop"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	if !c.courses.IsAuthor() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Open"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Open"},
		{Key: "n", Description: "New"},
		{Key: "g", Description: "Move"},
		{Key: "e/E", Description: "Edit"},
		{Key: "G", Description: "Generate"},
		{Key: "d", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}
