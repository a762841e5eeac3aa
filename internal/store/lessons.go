package store

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/courseforge/internal/api"
	"github.com/abhisek/courseforge/internal/course"
	"github.com/abhisek/courseforge/internal/edit"
	"github.com/abhisek/courseforge/internal/quiz"
	"github.com/abhisek/courseforge/internal/reorder"
)

// LessonStore owns the lesson list of the open course and the currently
// open lesson. Not safe for concurrent use; the event loop owns it.
type LessonStore struct {
	api     LessonAPI
	courses *CourseStore
	confirm Confirmer
	quiz    *quiz.Tracker
	log     *zap.Logger

	lessons  []course.LessonSummary
	open     *course.Lesson
	reorder  *reorder.Session[course.LessonSummary]
	nameEdit *edit.Session[string]
	descEdit *edit.Session[string]
}

// NewLessonStore creates a lesson store bound to the course store's open
// course. tracker may be nil when quiz state is not needed.
func NewLessonStore(client LessonAPI, courses *CourseStore, confirm Confirmer, tracker *quiz.Tracker, log *zap.Logger) *LessonStore {
	if log == nil {
		log = zap.NewNop()
	}
	s := &LessonStore{
		api:     client,
		courses: courses,
		confirm: confirm,
		quiz:    tracker,
		log:     log,
	}
	s.reorder = reorder.NewSession(reorder.Hooks[course.LessonSummary]{
		ID: func(l course.LessonSummary) string {
			return strconv.FormatInt(l.ID, 10)
		},
		Locked: s.lessonLocked,
		Apply: func(items []course.LessonSummary) {
			s.lessons = items
		},
		Commit: func(ctx context.Context, id string, insertIndex int) error {
			lessonID, err := strconv.ParseInt(id, 10, 64)
			if err != nil {
				return fmt.Errorf("parse lesson id: %w", err)
			}
			return s.api.ReorderLesson(ctx, s.mustCourseID(), lessonID, insertIndex)
		},
		Reload: func(ctx context.Context) ([]course.LessonSummary, error) {
			return s.fetchSorted(ctx, s.mustCourseID())
		},
	})
	return s
}

// Lessons returns the lesson summaries sorted by position.
func (s *LessonStore) Lessons() []course.LessonSummary { return s.lessons }

// Open returns the currently open lesson, or nil.
func (s *LessonStore) Open() *course.Lesson { return s.open }

// Reorder returns the drag session for the lesson list.
func (s *LessonStore) Reorder() *reorder.Session[course.LessonSummary] { return s.reorder }

// Quiz returns the tracker for the open lesson, or nil.
func (s *LessonStore) Quiz() *quiz.Tracker { return s.quiz }

// Load fetches the open course's lessons, sorted by position.
func (s *LessonStore) Load(ctx context.Context) error {
	if s.courses.Open() == nil {
		return ErrNoOpenCourse
	}
	lessons, err := s.fetchSorted(ctx, s.courses.Open().ID)
	if err != nil {
		return err
	}
	s.lessons = lessons
	return nil
}

// Select fetches a full lesson and makes it the open one. Quiz state from
// the previous lesson is dropped wholesale.
func (s *LessonStore) Select(ctx context.Context, lessonID int64) error {
	if s.courses.Open() == nil {
		return ErrNoOpenCourse
	}
	lesson, err := s.api.GetLesson(ctx, s.courses.Open().ID, lessonID)
	if err != nil {
		return fmt.Errorf("get lesson: %w", err)
	}
	stampBlockPositions(lesson)
	s.open = lesson
	s.nameEdit = nil
	s.descEdit = nil
	if s.quiz != nil {
		s.quiz.Reset()
	}
	return nil
}

// CloseLesson drops the open lesson, its edit sessions, and quiz state.
func (s *LessonStore) CloseLesson() {
	s.open = nil
	s.nameEdit = nil
	s.descEdit = nil
	if s.quiz != nil {
		s.quiz.Reset()
	}
}

// SetOpen replaces the open lesson with a fresh server representation.
// Used by the block editor after block mutations. Quiz state survives:
// the lesson is the same, only its blocks changed.
func (s *LessonStore) SetOpen(lesson *course.Lesson) {
	stampBlockPositions(lesson)
	s.open = lesson
}

// Create validates and creates a lesson at the end of the list, with the
// given draft blocks, then opens it and reloads the list.
func (s *LessonStore) Create(ctx context.Context, name, description string, blocks []course.Block) error {
	if s.courses.Open() == nil {
		return ErrNoOpenCourse
	}
	if !s.courses.IsAuthor() {
		return ErrNotAuthor
	}
	if err := course.ValidateName(name); err != nil {
		return err
	}
	if err := course.ValidateDescription(description); err != nil {
		return err
	}

	created, err := s.api.CreateLesson(ctx, api.LessonCreate{
		CourseID:    s.courses.Open().ID,
		Position:    len(s.lessons),
		Name:        strings.TrimSpace(name),
		Description: optional(strings.TrimSpace(description)),
		Blocks:      blocks,
	})
	if err != nil {
		return fmt.Errorf("create lesson: %w", err)
	}
	stampBlockPositions(created)
	s.open = created
	if s.quiz != nil {
		s.quiz.Reset()
	}
	return s.Load(ctx)
}

// Delete removes the open lesson after confirmation, then reloads the
// list. Declining is a silent no-op.
func (s *LessonStore) Delete(ctx context.Context) error {
	if s.open == nil {
		return ErrNoOpenLesson
	}
	if !s.courses.IsAuthor() {
		return ErrNotAuthor
	}
	if s.confirm != nil && !s.confirm.Confirm("Delete this lesson?") {
		return nil
	}
	if err := s.api.DeleteLesson(ctx, s.open.CourseID, s.open.ID); err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	s.CloseLesson()
	return s.Load(ctx)
}

// Generate asks the server to generate a lesson plan for the open course.
// Existing lessons are replaced wholesale, so when any exist the user is
// asked to confirm first; declining returns 0 with no call made. The list
// is reloaded afterwards.
func (s *LessonStore) Generate(ctx context.Context, req api.GenerateLessonsRequest) (int, error) {
	if s.courses.Open() == nil {
		return 0, ErrNoOpenCourse
	}
	if !s.courses.IsAuthor() {
		return 0, ErrNotAuthor
	}
	if len(s.lessons) > 0 && s.confirm != nil &&
		!s.confirm.Confirm("Generating a plan replaces all existing lessons. Continue?") {
		return 0, nil
	}

	result, err := s.api.GenerateLessons(ctx, s.courses.Open().ID, req)
	if err != nil {
		return 0, fmt.Errorf("generate lessons: %w", err)
	}
	s.CloseLesson()
	s.log.Debug("lesson plan generated", zap.Int("lessons", result.LessonsCount))
	return result.LessonsCount, s.Load(ctx)
}

// Grab starts dragging a lesson by id.
func (s *LessonStore) Grab(lessonID int64) error {
	return s.reorder.Grab(strconv.FormatInt(lessonID, 10))
}

// Drop completes the active lesson drag onto targetIndex.
func (s *LessonStore) Drop(ctx context.Context, targetIndex int) error {
	return s.reorder.Drop(ctx, s.lessons, targetIndex)
}

// EditName opens an edit session on the open lesson's name.
func (s *LessonStore) EditName() (*edit.Session[string], error) {
	if s.open == nil {
		return nil, ErrNoOpenLesson
	}
	if !s.courses.IsAuthor() {
		return nil, ErrNotAuthor
	}
	if s.nameEdit != nil && s.nameEdit.Open() {
		return nil, ErrEditInProgress
	}
	s.nameEdit = edit.Start(edit.LessonName, strconv.FormatInt(s.open.ID, 10), s.open.Name, course.ValidateName)
	return s.nameEdit, nil
}

// SaveName commits the open lesson name edit, sending only the name.
func (s *LessonStore) SaveName(ctx context.Context) error {
	if s.nameEdit == nil {
		return edit.ErrClosed
	}
	return s.nameEdit.Save(ctx, func(ctx context.Context, draft string) error {
		trimmed := strings.TrimSpace(draft)
		updated, err := s.api.UpdateLesson(ctx, s.open.CourseID, s.open.ID, api.LessonUpdate{Name: &trimmed})
		if err != nil {
			return fmt.Errorf("update lesson name: %w", err)
		}
		s.SetOpen(updated)
		return s.Load(ctx)
	})
}

// EditDescription opens an edit session on the open lesson's description.
func (s *LessonStore) EditDescription() (*edit.Session[string], error) {
	if s.open == nil {
		return nil, ErrNoOpenLesson
	}
	if !s.courses.IsAuthor() {
		return nil, ErrNotAuthor
	}
	if s.descEdit != nil && s.descEdit.Open() {
		return nil, ErrEditInProgress
	}
	s.descEdit = edit.Start(edit.LessonDescription, strconv.FormatInt(s.open.ID, 10), s.open.Description, course.ValidateDescription)
	return s.descEdit, nil
}

// SaveDescription commits the open lesson description edit.
func (s *LessonStore) SaveDescription(ctx context.Context) error {
	if s.descEdit == nil {
		return edit.ErrClosed
	}
	return s.descEdit.Save(ctx, func(ctx context.Context, draft string) error {
		trimmed := strings.TrimSpace(draft)
		updated, err := s.api.UpdateLesson(ctx, s.open.CourseID, s.open.ID, api.LessonUpdate{Description: &trimmed})
		if err != nil {
			return fmt.Errorf("update lesson description: %w", err)
		}
		s.SetOpen(updated)
		return s.Load(ctx)
	})
}

// NameEdit returns the open lesson name edit session, or nil.
func (s *LessonStore) NameEdit() *edit.Session[string] { return s.nameEdit }

// DescriptionEdit returns the open lesson description edit session, or nil.
func (s *LessonStore) DescriptionEdit() *edit.Session[string] { return s.descEdit }

// lessonLocked blocks dragging a lesson whose name or description is
// mid-edit.
func (s *LessonStore) lessonLocked(id string) bool {
	if s.nameEdit != nil && s.nameEdit.Open() && s.nameEdit.TargetID() == id {
		return true
	}
	if s.descEdit != nil && s.descEdit.Open() && s.descEdit.TargetID() == id {
		return true
	}
	return false
}

func (s *LessonStore) fetchSorted(ctx context.Context, courseID int64) ([]course.LessonSummary, error) {
	lessons, err := s.api.ListLessons(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	sort.SliceStable(lessons, func(i, j int) bool {
		return lessons[i].Position < lessons[j].Position
	})
	return lessons, nil
}

// mustCourseID is only reachable from reorder hooks, which require an
// open course.
func (s *LessonStore) mustCourseID() int64 {
	if s.courses.Open() == nil {
		return 0
	}
	return s.courses.Open().ID
}

// stampBlockPositions mirrors array order into the runtime position field.
func stampBlockPositions(l *course.Lesson) {
	if l == nil {
		return
	}
	for i := range l.Blocks {
		l.Blocks[i].Position = i
	}
}
