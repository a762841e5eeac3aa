package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/abhisek/courseforge/internal/api"
	"github.com/abhisek/courseforge/internal/course"
	"github.com/abhisek/courseforge/internal/edit"
)

// CourseStore owns the course library and the currently open course.
// Not safe for concurrent use; the event loop owns it.
type CourseStore struct {
	api     CourseAPI
	userID  int64
	confirm Confirmer
	log     *zap.Logger

	my        []course.Course
	community []course.Course
	searching bool
	query     string

	open     *course.Course
	nameEdit *edit.Session[string]
	descEdit *edit.Session[string]
}

// NewCourseStore creates a store for the given user. confirm may be nil,
// in which case destructive actions proceed unprompted.
func NewCourseStore(client CourseAPI, userID int64, confirm Confirmer, log *zap.Logger) *CourseStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &CourseStore{api: client, userID: userID, confirm: confirm, log: log}
}

// My returns the user's own courses in the current library view.
func (s *CourseStore) My() []course.Course { return s.my }

// Community returns everyone else's courses in the current library view.
func (s *CourseStore) Community() []course.Course { return s.community }

// Searching reports whether the library shows search results.
func (s *CourseStore) Searching() bool { return s.searching }

// Query returns the active search query, or "".
func (s *CourseStore) Query() string { return s.query }

// Open returns the currently open course, or nil.
func (s *CourseStore) Open() *course.Course { return s.open }

// IsAuthor reports whether the open course belongs to the current user.
func (s *CourseStore) IsAuthor() bool {
	return s.open != nil && s.open.AuthorID == s.userID
}

// Load refreshes the library. A blank query fetches the full catalog and
// the user's own list concurrently and derives the community partition as
// their set difference. A non-blank query delegates the partition to the
// server as-is.
func (s *CourseStore) Load(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query != "" {
		result, err := s.api.SearchCourses(ctx, query)
		if err != nil {
			return fmt.Errorf("search courses: %w", err)
		}
		s.my = result.My
		s.community = result.Community
		s.searching = true
		s.query = query
		return nil
	}

	var (
		wg         sync.WaitGroup
		all, mine  []course.Course
		allErr     error
		mineErr    error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		all, allErr = s.api.ListCourses(ctx)
	}()
	go func() {
		defer wg.Done()
		mine, mineErr = s.api.ListMyCourses(ctx)
	}()
	wg.Wait()

	if allErr != nil {
		return fmt.Errorf("list courses: %w", allErr)
	}
	if mineErr != nil {
		return fmt.Errorf("list my courses: %w", mineErr)
	}

	mineIDs := make(map[int64]struct{}, len(mine))
	for _, c := range mine {
		mineIDs[c.ID] = struct{}{}
	}
	community := make([]course.Course, 0, len(all))
	for _, c := range all {
		if _, ok := mineIDs[c.ID]; !ok {
			community = append(community, c)
		}
	}

	s.my = mine
	s.community = community
	s.searching = false
	s.query = ""
	s.log.Debug("library loaded",
		zap.Int("my", len(mine)),
		zap.Int("community", len(community)))
	return nil
}

// Select fetches a course and makes it the open one. Any stale field edit
// sessions are dropped.
func (s *CourseStore) Select(ctx context.Context, id int64) error {
	c, err := s.api.GetCourse(ctx, id)
	if err != nil {
		return fmt.Errorf("get course: %w", err)
	}
	s.open = c
	s.nameEdit = nil
	s.descEdit = nil
	return nil
}

// Close drops the open course and its edit sessions.
func (s *CourseStore) Close() {
	s.open = nil
	s.nameEdit = nil
	s.descEdit = nil
}

// Create validates and creates a new course, opens it, and refreshes the
// library.
func (s *CourseStore) Create(ctx context.Context, name, description string) error {
	if err := course.ValidateName(name); err != nil {
		return err
	}
	if err := course.ValidateDescription(description); err != nil {
		return err
	}

	created, err := s.api.CreateCourse(ctx, api.CourseCreate{
		Name:        strings.TrimSpace(name),
		Description: optional(strings.TrimSpace(description)),
	})
	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	s.open = created
	return s.Load(ctx, "")
}

// Delete removes the open course after confirmation, then refreshes the
// library. Declining is a silent no-op.
func (s *CourseStore) Delete(ctx context.Context) error {
	if s.open == nil {
		return ErrNoOpenCourse
	}
	if !s.IsAuthor() {
		return ErrNotAuthor
	}
	if s.confirm != nil && !s.confirm.Confirm("Delete this course and all its lessons?") {
		return nil
	}
	if err := s.api.DeleteCourse(ctx, s.open.ID); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	s.Close()
	return s.Load(ctx, "")
}

// EditName opens an edit session on the open course's name. Only the
// author may edit, and only one name edit can be open at a time.
func (s *CourseStore) EditName() (*edit.Session[string], error) {
	if s.open == nil {
		return nil, ErrNoOpenCourse
	}
	if !s.IsAuthor() {
		return nil, ErrNotAuthor
	}
	if s.nameEdit != nil && s.nameEdit.Open() {
		return nil, ErrEditInProgress
	}
	s.nameEdit = edit.Start(edit.CourseName, strconv.FormatInt(s.open.ID, 10), s.open.Name, course.ValidateName)
	return s.nameEdit, nil
}

// SaveName commits the open name edit, sending only the name field. The
// server's course replaces the local one.
func (s *CourseStore) SaveName(ctx context.Context) error {
	if s.nameEdit == nil {
		return edit.ErrClosed
	}
	return s.nameEdit.Save(ctx, func(ctx context.Context, draft string) error {
		trimmed := strings.TrimSpace(draft)
		updated, err := s.api.UpdateCourse(ctx, s.open.ID, api.CourseUpdate{Name: &trimmed})
		if err != nil {
			return fmt.Errorf("update course name: %w", err)
		}
		s.open = updated
		return nil
	})
}

// EditDescription opens an edit session on the open course's description.
func (s *CourseStore) EditDescription() (*edit.Session[string], error) {
	if s.open == nil {
		return nil, ErrNoOpenCourse
	}
	if !s.IsAuthor() {
		return nil, ErrNotAuthor
	}
	if s.descEdit != nil && s.descEdit.Open() {
		return nil, ErrEditInProgress
	}
	s.descEdit = edit.Start(edit.CourseDescription, strconv.FormatInt(s.open.ID, 10), s.open.Description, course.ValidateDescription)
	return s.descEdit, nil
}

// SaveDescription commits the open description edit, sending only the
// description field.
func (s *CourseStore) SaveDescription(ctx context.Context) error {
	if s.descEdit == nil {
		return edit.ErrClosed
	}
	return s.descEdit.Save(ctx, func(ctx context.Context, draft string) error {
		trimmed := strings.TrimSpace(draft)
		updated, err := s.api.UpdateCourse(ctx, s.open.ID, api.CourseUpdate{Description: &trimmed})
		if err != nil {
			return fmt.Errorf("update course description: %w", err)
		}
		s.open = updated
		return nil
	})
}

// NameEdit returns the open name edit session, or nil.
func (s *CourseStore) NameEdit() *edit.Session[string] { return s.nameEdit }

// DescriptionEdit returns the open description edit session, or nil.
func (s *CourseStore) DescriptionEdit() *edit.Session[string] { return s.descEdit }
