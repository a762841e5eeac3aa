// Package lessonview shows one lesson's content blocks. Authors edit,
// reorder, and generate blocks here; everyone can work through the quiz
// blocks.
package lessonview

import (
	"context"
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/courseforge/internal/course"
	"github.com/abhisek/courseforge/internal/editor"
	"github.com/abhisek/courseforge/internal/generate"
	"github.com/abhisek/courseforge/internal/router"
	"github.com/abhisek/courseforge/internal/screen"
	"github.com/abhisek/courseforge/internal/screens/confirm"
	"github.com/abhisek/courseforge/internal/store"
	"github.com/abhisek/courseforge/internal/ui/components"
	"github.com/abhisek/courseforge/internal/ui/layout"
)

type mode int

const (
	modeBrowse mode = iota
	modeAddBlock
	modeEditBlock
	modeGenerate
	modeRegenerate
)

// LessonScreen is the block list view for the open lesson.
type LessonScreen struct {
	courses *store.CourseStore
	lessons *store.LessonStore
	editor  *editor.Editor

	mode   mode
	cursor int

	kindMenu components.Menu
	form     *blockForm
	prompt   components.TextArea // generate / regenerate request

	loading bool
	status  string
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)
var _ screen.EscInterceptor = (*LessonScreen)(nil)

// New creates the lesson screen for the currently open lesson.
func New(courses *store.CourseStore, lessons *store.LessonStore, ed *editor.Editor) *LessonScreen {
	return &LessonScreen{
		courses: courses,
		lessons: lessons,
		editor:  ed,
	}
}

func (s *LessonScreen) Init() tea.Cmd {
	// A block created right before this screen opened may already have an
	// edit session waiting.
	if sess := s.editor.Session(); sess != nil && sess.Open() {
		s.openFormForSession()
	}
	return nil
}

func (s *LessonScreen) InterceptsEsc() bool {
	return s.mode != modeBrowse || s.editor.Reorder().Dragging()
}

func (s *LessonScreen) blocks() []course.Block {
	return s.editor.Blocks()
}

func (s *LessonScreen) openFormForSession() {
	sess := s.editor.Session()
	if sess == nil || !sess.Open() {
		return
	}
	s.form = newBlockForm(sess.Draft())
	s.mode = modeEditBlock
	for i, b := range s.blocks() {
		if b.ID.String() == sess.TargetID() {
			s.cursor = i
			break
		}
	}
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshedMsg:
		s.loading = false
		if msg.err != nil {
			s.status = msg.err.Error()
		} else {
			s.status = ""
			s.clampCursor()
			// AddBlock opens an edit session on the new block.
			s.openFormForSession()
		}
		return s, nil

	case blockSavedMsg:
		s.loading = false
		if msg.err != nil {
			s.status = msg.err.Error()
			return s, nil
		}
		s.mode = modeBrowse
		s.form = nil
		s.status = ""
		return s, nil

	case checkedMsg:
		s.loading = false
		if msg.err != nil {
			s.status = msg.err.Error()
		} else {
			s.status = ""
		}
		return s, nil

	case generatedMsg:
		s.loading = false
		if msg.err != nil {
			s.status = msg.err.Error()
			if msg.added > 0 {
				s.status = fmt.Sprintf("Added %d blocks before failing: %v", msg.added, msg.err)
			}
			return s, nil
		}
		s.mode = modeBrowse
		s.status = fmt.Sprintf("Added %d blocks", msg.added)
		return s, nil

	case tea.KeyMsg:
		switch s.mode {
		case modeAddBlock:
			return s.updateAddBlock(msg)
		case modeEditBlock:
			return s.updateEditBlock(msg)
		case modeGenerate, modeRegenerate:
			return s.updatePrompt(msg)
		default:
			return s.updateBrowse(msg)
		}
	}

	return s, nil
}

func (s *LessonScreen) clampCursor() {
	if n := len(s.blocks()); s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s *LessonScreen) updateBrowse(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	blocks := s.blocks()
	drag := s.editor.Reorder()
	author := s.courses.IsAuthor()

	key := msg.String()

	// Quiz interaction works for any reader, not just the author.
	if s.cursor < len(blocks) {
		if handled, cmd := s.updateQuiz(blocks[s.cursor], key); handled {
			return s, cmd
		}
	}

	switch key {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
		if drag.Dragging() {
			drag.Over(s.cursor)
		}
	case "down", "j":
		if s.cursor < len(blocks)-1 {
			s.cursor++
		}
		if drag.Dragging() {
			drag.Over(s.cursor)
		}
	case "esc":
		if drag.Dragging() {
			drag.Cancel()
		}
	case "g":
		if !author {
			break
		}
		if drag.Dragging() {
			return s, s.dropAt(s.cursor)
		}
		if s.cursor < len(blocks) {
			if err := s.editor.Grab(blocks[s.cursor].ID); err != nil {
				s.status = err.Error()
			} else {
				drag.Over(s.cursor)
			}
		}
	case "enter":
		if drag.Dragging() {
			return s, s.dropAt(s.cursor)
		}
		if author && s.cursor < len(blocks) {
			return s.beginEdit(blocks[s.cursor])
		}
	case "e":
		if author && s.cursor < len(blocks) {
			return s.beginEdit(blocks[s.cursor])
		}
	case "a":
		if author {
			s.mode = modeAddBlock
			s.kindMenu = s.newKindMenu()
		}
	case "d":
		if author && s.cursor < len(blocks) {
			id := blocks[s.cursor].ID
			action := func() tea.Msg {
				return refreshedMsg{err: s.editor.DeleteBlock(context.Background(), id)}
			}
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: confirm.New("Delete this block?", action)}
			}
		}
	case "G":
		if author {
			s.mode = modeGenerate
			s.prompt = components.NewTextArea("Generation goal", "optional guidance for the generator", 60, 4)
			return s, s.prompt.Init()
		}
	case "R":
		if author && s.cursor < len(blocks) && blocks[s.cursor].Persisted() {
			s.mode = modeRegenerate
			s.prompt = components.NewTextArea("Rewrite request", "how should this block change", 60, 4)
			return s, s.prompt.Init()
		}
	}

	return s, nil
}

// updateQuiz handles answer selection and checking on choice blocks.
func (s *LessonScreen) updateQuiz(b course.Block, key string) (bool, tea.Cmd) {
	kind := b.Kind()
	if kind != course.KindSingleChoice && kind != course.KindMultipleChoice {
		return false, nil
	}
	if !b.Persisted() {
		return false, nil
	}
	tracker := s.lessons.Quiz()
	if tracker == nil {
		return false, nil
	}

	if n, err := strconv.Atoi(key); err == nil && n >= 1 {
		option := n - 1
		switch c := b.Content.(type) {
		case course.SingleChoice:
			if option < len(c.Options) && !tracker.Locked(b.ID) {
				tracker.Select(b.ID, option)
				return true, nil
			}
		case course.MultipleChoice:
			if option < len(c.Options) && !tracker.Locked(b.ID) {
				tracker.Toggle(b.ID, option)
				return true, nil
			}
		}
		return false, nil
	}

	if key == "c" {
		lesson := s.lessons.Open()
		if lesson == nil || tracker.Locked(b.ID) || tracker.Selection(b.ID).Empty() {
			return false, nil
		}
		s.loading = true
		id := b.ID
		courseID, lessonID := lesson.CourseID, lesson.ID
		return true, func() tea.Msg {
			_, err := tracker.Check(context.Background(), courseID, lessonID, id)
			return checkedMsg{err: err}
		}
	}

	return false, nil
}

func (s *LessonScreen) dropAt(index int) tea.Cmd {
	s.loading = true
	return func() tea.Msg {
		return refreshedMsg{err: s.editor.Drop(context.Background(), index)}
	}
}

func (s *LessonScreen) beginEdit(b course.Block) (screen.Screen, tea.Cmd) {
	if err := s.editor.EditBlock(b); err != nil {
		s.status = err.Error()
		return s, nil
	}
	s.openFormForSession()
	return s, nil
}

func (s *LessonScreen) newKindMenu() components.Menu {
	items := make([]components.MenuItem, 0, len(course.Kinds))
	for _, kind := range course.Kinds {
		k := kind
		items = append(items, components.MenuItem{
			Label: string(k),
			Action: func() tea.Cmd {
				s.mode = modeBrowse
				s.loading = true
				return func() tea.Msg {
					return refreshedMsg{err: s.editor.AddBlock(context.Background(), k)}
				}
			},
		})
	}
	return components.NewMenu(items)
}

func (s *LessonScreen) updateAddBlock(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if msg.String() == "esc" {
		s.mode = modeBrowse
		return s, nil
	}
	var cmd tea.Cmd
	s.kindMenu, cmd = s.kindMenu.Update(msg)
	return s, cmd
}

func (s *LessonScreen) updateEditBlock(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	done, save, cmd := s.form.update(msg)
	if done {
		s.editor.CancelEdit()
		s.form = nil
		s.mode = modeBrowse
		return s, nil
	}
	if save {
		draft := s.form.collect()
		sess := s.editor.Session()
		if sess == nil {
			s.mode = modeBrowse
			s.form = nil
			return s, nil
		}
		sess.Change(draft)
		s.loading = true
		return s, func() tea.Msg {
			return blockSavedMsg{err: s.editor.SaveBlock(context.Background())}
		}
	}
	return s, cmd
}

func (s *LessonScreen) updatePrompt(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.mode = modeBrowse
		return s, nil
	case "ctrl+s":
		text := s.prompt.Value()
		s.loading = true
		if s.mode == modeRegenerate {
			blocks := s.blocks()
			if s.cursor >= len(blocks) {
				s.loading = false
				s.mode = modeBrowse
				return s, nil
			}
			id := blocks[s.cursor].ID
			s.mode = modeBrowse
			return s, func() tea.Msg {
				return blockSavedMsg{err: s.editor.GenerateForBlock(context.Background(), id, text)}
			}
		}
		s.mode = modeBrowse
		return s, func() tea.Msg {
			added, err := s.editor.GenerateContent(context.Background(), generate.LessonInput{Goal: text})
			return generatedMsg{added: added, err: err}
		}
	}

	var cmd tea.Cmd
	s.prompt, cmd = s.prompt.Update(msg)
	return s, cmd
}

func (s *LessonScreen) Title() string {
	if open := s.lessons.Open(); open != nil {
		return open.Name
	}
	return "Lesson"
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	switch s.mode {
	case modeAddBlock:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Kind"},
			{Key: "Enter", Description: "Add"},
			{Key: "Esc", Description: "Cancel"},
		}
	case modeEditBlock:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Field"},
			{Key: "Ctrl+S", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	case modeGenerate, modeRegenerate:
		return []layout.KeyHint{
			{Key: "Ctrl+S", Description: "Generate"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	if s.editor.Reorder().Dragging() {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter", Description: "Drop"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	if !s.courses.IsAuthor() {
		return []layout.KeyHint{
			{Key: "1-9", Description: "Answer"},
			{Key: "c", Description: "Check"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "e", Description: "Edit"},
		{Key: "a", Description: "Add"},
		{Key: "g", Description: "Move"},
		{Key: "d", Description: "Delete"},
		{Key: "G/R", Description: "Generate"},
		{Key: "1-9 c", Description: "Quiz"},
		{Key: "Esc", Description: "Back"},
	}
}
