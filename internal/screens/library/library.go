// Package library is the course library screen: the author's own courses
// alongside community ones, with search, create, open, and delete.
package library

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/courseforge/internal/course"
	"github.com/abhisek/courseforge/internal/editor"
	"github.com/abhisek/courseforge/internal/router"
	"github.com/abhisek/courseforge/internal/screen"
	"github.com/abhisek/courseforge/internal/screens/confirm"
	"github.com/abhisek/courseforge/internal/screens/courseview"
	"github.com/abhisek/courseforge/internal/store"
	"github.com/abhisek/courseforge/internal/ui/components"
	"github.com/abhisek/courseforge/internal/ui/layout"
	"github.com/abhisek/courseforge/internal/ui/theme"
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeCreate
)

// row is one selectable line in the flattened course list.
type row struct {
	course course.Course
	mine   bool
}

// LibraryScreen lists and manages courses.
type LibraryScreen struct {
	courses *store.CourseStore
	lessons *store.LessonStore
	editor  *editor.Editor

	mode    mode
	search  components.TextInput
	name    components.TextInput
	desc    components.TextArea
	focus   int // create form: 0 = name, 1 = description
	cursor  int
	loading bool
	status  string
}

var _ screen.Screen = (*LibraryScreen)(nil)
var _ screen.KeyHintProvider = (*LibraryScreen)(nil)

type loadedMsg struct{ err error }
type openedMsg struct{ err error }
type createdMsg struct{ err error }
type deletedMsg struct{ err error }

// New creates the library screen.
func New(courses *store.CourseStore, lessons *store.LessonStore, ed *editor.Editor) *LibraryScreen {
	return &LibraryScreen{
		courses: courses,
		lessons: lessons,
		editor:  ed,
		search:  components.NewTextInput("", "search courses", 0),
	}
}

func (l *LibraryScreen) Init() tea.Cmd {
	return l.load("")
}

func (l *LibraryScreen) load(query string) tea.Cmd {
	l.loading = true
	return func() tea.Msg {
		return loadedMsg{err: l.courses.Load(context.Background(), query)}
	}
}

func (l *LibraryScreen) rows() []row {
	var out []row
	for _, c := range l.courses.My() {
		out = append(out, row{course: c, mine: true})
	}
	for _, c := range l.courses.Community() {
		out = append(out, row{course: c})
	}
	return out
}

func (l *LibraryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		l.loading = false
		if msg.err != nil {
			l.status = msg.err.Error()
		} else {
			l.status = ""
			if n := len(l.rows()); l.cursor >= n && n > 0 {
				l.cursor = n - 1
			}
		}
		return l, nil

	case openedMsg:
		l.loading = false
		if msg.err != nil {
			l.status = msg.err.Error()
			return l, nil
		}
		return l, func() tea.Msg {
			return router.PushScreenMsg{
				Screen: courseview.New(l.courses, l.lessons, l.editor),
			}
		}

	case createdMsg:
		l.loading = false
		if msg.err != nil {
			l.status = msg.err.Error()
			return l, nil
		}
		l.mode = modeBrowse
		return l, func() tea.Msg {
			return router.PushScreenMsg{
				Screen: courseview.New(l.courses, l.lessons, l.editor),
			}
		}

	case deletedMsg:
		l.loading = false
		if msg.err != nil {
			l.status = msg.err.Error()
		}
		return l, nil

	case tea.KeyMsg:
		switch l.mode {
		case modeSearch:
			return l.updateSearch(msg)
		case modeCreate:
			return l.updateCreate(msg)
		default:
			return l.updateBrowse(msg)
		}
	}

	return l, nil
}

func (l *LibraryScreen) updateBrowse(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	rows := l.rows()

	switch msg.String() {
	case "up", "k":
		if l.cursor > 0 {
			l.cursor--
		}
	case "down", "j":
		if l.cursor < len(rows)-1 {
			l.cursor++
		}
	case "enter":
		if l.cursor < len(rows) {
			id := rows[l.cursor].course.ID
			l.loading = true
			return l, func() tea.Msg {
				if err := l.courses.Select(context.Background(), id); err != nil {
					return openedMsg{err: err}
				}
				return openedMsg{err: l.lessons.Load(context.Background())}
			}
		}
	case "/":
		l.mode = modeSearch
		l.search.SetValue(l.courses.Query())
		return l, l.search.Init()
	case "n":
		l.mode = modeCreate
		l.focus = 0
		l.name = components.NewTextInput("Name", "course name", course.MaxNameLength)
		l.desc = components.NewTextArea("Description", "what the course teaches", 60, 5)
		l.desc.Model.Blur()
		return l, l.name.Init()
	case "d":
		if l.cursor < len(rows) && rows[l.cursor].mine {
			id := rows[l.cursor].course.ID
			action := func() tea.Msg {
				if err := l.courses.Select(context.Background(), id); err != nil {
					return deletedMsg{err: err}
				}
				return deletedMsg{err: l.courses.Delete(context.Background())}
			}
			return l, func() tea.Msg {
				return router.PushScreenMsg{
					Screen: confirm.New("Delete this course and all its lessons?", action),
				}
			}
		}
	case "r":
		return l, l.load(l.courses.Query())
	}

	return l, nil
}

func (l *LibraryScreen) updateSearch(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		l.mode = modeBrowse
		l.cursor = 0
		return l, l.load(l.search.Value())
	case "esc":
		l.mode = modeBrowse
		return l, nil
	}

	var cmd tea.Cmd
	l.search, cmd = l.search.Update(msg)
	return l, cmd
}

func (l *LibraryScreen) updateCreate(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab":
		if l.focus == 0 {
			l.focus = 1
			l.name.Model.Blur()
			return l, l.desc.Init()
		}
		l.focus = 0
		l.desc.Model.Blur()
		return l, l.name.Init()
	case "esc":
		l.mode = modeBrowse
		return l, nil
	case "ctrl+s", "enter":
		// Enter submits from the name field; in the description it is a
		// newline, so ctrl+s saves from there.
		if msg.String() == "enter" && l.focus == 1 {
			break
		}
		name, desc := l.name.Value(), l.desc.Value()
		if err := course.ValidateName(name); err != nil {
			l.name.SetError(err.Error())
			return l, nil
		}
		if err := course.ValidateDescription(desc); err != nil {
			l.desc.SetError(err.Error())
			return l, nil
		}
		l.loading = true
		return l, func() tea.Msg {
			if err := l.courses.Create(context.Background(), name, desc); err != nil {
				return createdMsg{err: err}
			}
			return createdMsg{err: l.lessons.Load(context.Background())}
		}
	}

	var cmd tea.Cmd
	if l.focus == 0 {
		l.name, cmd = l.name.Update(msg)
	} else {
		l.desc, cmd = l.desc.Update(msg)
	}
	return l, cmd
}

func (l *LibraryScreen) View(width, height int) string {
	switch l.mode {
	case modeCreate:
		return l.viewCreate(width)
	default:
		return l.viewList(width, height)
	}
}

func (l *LibraryScreen) viewList(width, height int) string {
	var b strings.Builder

	if l.mode == modeSearch {
		b.WriteString("  / " + l.search.Model.View() + "\n\n")
	} else if q := l.courses.Query(); q != "" {
		b.WriteString("  " + theme.Hint.Render(fmt.Sprintf("search: %q", q)) + "\n\n")
	}

	if l.loading {
		b.WriteString("  " + theme.Hint.Render("Loading…") + "\n")
		return b.String()
	}

	rows := l.rows()
	idx := 0

	writeSection := func(label string, mine bool) {
		b.WriteString("  " + theme.InputLabel.Render(label) + "\n")
		any := false
		for _, r := range rows {
			if r.mine != mine {
				continue
			}
			any = true
			line := layout.Truncate(r.course.Name, width-10)
			if r.course.Description != "" {
				line += "  " + theme.Hint.Render(layout.Truncate(r.course.Description, width/3))
			}
			if idx == l.cursor {
				b.WriteString(theme.Selected.Render("  ▸ "+line) + "\n")
			} else {
				b.WriteString(theme.Unselected.Render("    "+line) + "\n")
			}
			idx++
		}
		if !any {
			b.WriteString("    " + theme.Hint.Render("none") + "\n")
		}
		b.WriteString("\n")
	}

	writeSection("My Courses", true)
	writeSection("Community", false)

	if l.status != "" {
		b.WriteString("  " + theme.Incorrect.Render(l.status) + "\n")
	}

	return b.String()
}

func (l *LibraryScreen) viewCreate(width int) string {
	form := theme.Title.Render("New Course") + "\n\n" +
		l.name.View() + "\n\n" +
		l.desc.View() + "\n\n" +
		theme.Hint.Render("tab: switch field    ctrl+s: create    esc: cancel")

	if l.status != "" {
		form += "\n" + theme.Incorrect.Render(l.status)
	}

	return lipgloss.NewStyle().Padding(1, 4).Width(width).Render(form)
}

func (l *LibraryScreen) Title() string {
	return "Library"
}

func (l *LibraryScreen) KeyHints() []layout.KeyHint {
	switch l.mode {
	case modeSearch:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Search"},
			{Key: "Esc", Description: "Cancel"},
		}
	case modeCreate:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Field"},
			{Key: "Ctrl+S", Description: "Create"},
			{Key: "Esc", Description: "Cancel"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Open"},
			{Key: "n", Description: "New"},
			{Key: "/", Description: "Search"},
			{Key: "d", Description: "Delete"},
			{Key: "r", Description: "Refresh"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
}
