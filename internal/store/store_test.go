package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/courseforge/internal/api"
	"github.com/abhisek/courseforge/internal/course"
)

// fakeAPI is an in-memory stand-in for the remote service, implementing
// the API slices the stores consume.
type fakeAPI struct {
	all       []course.Course
	mine      []course.Course
	search    *api.SearchResult
	courses   map[int64]*course.Course
	lessons   map[int64][]course.LessonSummary
	full      map[int64]*course.Lesson
	err       error
	calls     []string
	reorderFn func(lessonID int64, newPosition int) error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		courses: make(map[int64]*course.Course),
		lessons: make(map[int64][]course.LessonSummary),
		full:    make(map[int64]*course.Lesson),
	}
}

func (f *fakeAPI) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeAPI) ListCourses(context.Context) ([]course.Course, error) {
	f.record("list")
	return f.all, f.err
}

func (f *fakeAPI) ListMyCourses(context.Context) ([]course.Course, error) {
	f.record("list-my")
	return f.mine, f.err
}

func (f *fakeAPI) SearchCourses(_ context.Context, query string) (*api.SearchResult, error) {
	f.record("search %s", query)
	if f.err != nil {
		return nil, f.err
	}
	return f.search, nil
}

func (f *fakeAPI) GetCourse(_ context.Context, id int64) (*course.Course, error) {
	f.record("get-course %d", id)
	if f.err != nil {
		return nil, f.err
	}
	if c, ok := f.courses[id]; ok {
		return c, nil
	}
	return nil, &api.ServerError{StatusCode: 404, Detail: "Course not found"}
}

func (f *fakeAPI) CreateCourse(_ context.Context, in api.CourseCreate) (*course.Course, error) {
	f.record("create-course %s", in.Name)
	if f.err != nil {
		return nil, f.err
	}
	c := &course.Course{ID: int64(len(f.courses) + 1), Name: in.Name, AuthorID: 1}
	if in.Description != nil {
		c.Description = *in.Description
	}
	f.courses[c.ID] = c
	return c, nil
}

func (f *fakeAPI) UpdateCourse(_ context.Context, id int64, in api.CourseUpdate) (*course.Course, error) {
	f.record("update-course %d", id)
	if f.err != nil {
		return nil, f.err
	}
	c := *f.courses[id]
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	f.courses[id] = &c
	return &c, nil
}

func (f *fakeAPI) DeleteCourse(_ context.Context, id int64) error {
	f.record("delete-course %d", id)
	if f.err != nil {
		return f.err
	}
	delete(f.courses, id)
	return nil
}

func (f *fakeAPI) GenerateLessons(_ context.Context, id int64, _ api.GenerateLessonsRequest) (*api.GenerateLessonsResult, error) {
	f.record("generate-lessons %d", id)
	if f.err != nil {
		return nil, f.err
	}
	return &api.GenerateLessonsResult{LessonsCount: len(f.lessons[id])}, nil
}

func (f *fakeAPI) ListLessons(_ context.Context, courseID int64) ([]course.LessonSummary, error) {
	f.record("list-lessons %d", courseID)
	if f.err != nil {
		return nil, f.err
	}
	return f.lessons[courseID], nil
}

func (f *fakeAPI) GetLesson(_ context.Context, _, lessonID int64) (*course.Lesson, error) {
	f.record("get-lesson %d", lessonID)
	if f.err != nil {
		return nil, f.err
	}
	if l, ok := f.full[lessonID]; ok {
		copied := *l
		return &copied, nil
	}
	return nil, &api.ServerError{StatusCode: 404, Detail: "Lesson not found"}
}

func (f *fakeAPI) CreateLesson(_ context.Context, in api.LessonCreate) (*course.Lesson, error) {
	f.record("create-lesson pos=%d", in.Position)
	if f.err != nil {
		return nil, f.err
	}
	l := &course.Lesson{
		ID:       int64(len(f.full) + 100),
		CourseID: in.CourseID,
		Position: in.Position,
		Name:     in.Name,
		Blocks:   in.Blocks,
	}
	f.full[l.ID] = l
	f.lessons[in.CourseID] = append(f.lessons[in.CourseID], course.LessonSummary{
		ID: l.ID, CourseID: in.CourseID, Position: in.Position, Name: in.Name,
	})
	return l, nil
}

func (f *fakeAPI) UpdateLesson(_ context.Context, _, lessonID int64, in api.LessonUpdate) (*course.Lesson, error) {
	f.record("update-lesson %d", lessonID)
	if f.err != nil {
		return nil, f.err
	}
	l := *f.full[lessonID]
	if in.Name != nil {
		l.Name = *in.Name
	}
	if in.Description != nil {
		l.Description = *in.Description
	}
	f.full[lessonID] = &l
	return &l, nil
}

func (f *fakeAPI) DeleteLesson(_ context.Context, courseID, lessonID int64) error {
	f.record("delete-lesson %d", lessonID)
	if f.err != nil {
		return f.err
	}
	delete(f.full, lessonID)
	kept := f.lessons[courseID][:0]
	for _, l := range f.lessons[courseID] {
		if l.ID != lessonID {
			kept = append(kept, l)
		}
	}
	f.lessons[courseID] = kept
	return nil
}

func (f *fakeAPI) ReorderLesson(_ context.Context, courseID, lessonID int64, newPosition int) error {
	f.record("reorder-lesson %d -> %d", lessonID, newPosition)
	if f.reorderFn != nil {
		return f.reorderFn(lessonID, newPosition)
	}
	if f.err != nil {
		return f.err
	}
	// Reorder the server copy the way the service does.
	list := f.lessons[courseID]
	from := -1
	for i, l := range list {
		if l.ID == lessonID {
			from = i
			break
		}
	}
	if from == -1 {
		return &api.ServerError{StatusCode: 404, Detail: "Lesson not found"}
	}
	moved := list[from]
	rest := append(append([]course.LessonSummary(nil), list[:from]...), list[from+1:]...)
	out := append(append(append([]course.LessonSummary(nil), rest[:newPosition]...), moved), rest[newPosition:]...)
	for i := range out {
		out[i].Position = i
	}
	f.lessons[courseID] = out
	return nil
}

func (f *fakeAPI) AddBlock(_ context.Context, _, lessonID int64, b course.Block) (*course.Lesson, error) {
	f.record("add-block %d", lessonID)
	if f.err != nil {
		return nil, f.err
	}
	l := *f.full[lessonID]
	b.ID = uuid.New()
	l.Blocks = append(append([]course.Block(nil), l.Blocks...), b)
	f.full[lessonID] = &l
	copied := l
	return &copied, nil
}

func (f *fakeAPI) UpdateBlock(_ context.Context, _, lessonID int64, blockID uuid.UUID, b course.Block) (*course.Lesson, error) {
	f.record("update-block %s", blockID)
	if f.err != nil {
		return nil, f.err
	}
	l := *f.full[lessonID]
	blocks := append([]course.Block(nil), l.Blocks...)
	for i := range blocks {
		if blocks[i].ID == blockID {
			b.ID = blockID
			blocks[i] = b
		}
	}
	l.Blocks = blocks
	f.full[lessonID] = &l
	copied := l
	return &copied, nil
}

func (f *fakeAPI) DeleteBlock(_ context.Context, _, lessonID int64, blockID uuid.UUID) (*course.Lesson, error) {
	f.record("delete-block %s", blockID)
	if f.err != nil {
		return nil, f.err
	}
	l := *f.full[lessonID]
	kept := make([]course.Block, 0, len(l.Blocks))
	for _, b := range l.Blocks {
		if b.ID != blockID {
			kept = append(kept, b)
		}
	}
	l.Blocks = kept
	f.full[lessonID] = &l
	copied := l
	return &copied, nil
}

func (f *fakeAPI) ReorderBlock(_ context.Context, _, lessonID int64, blockID uuid.UUID, newPosition int) error {
	f.record("reorder-block %s -> %d", blockID, newPosition)
	if f.err != nil {
		return f.err
	}
	l := *f.full[lessonID]
	from := -1
	for i, b := range l.Blocks {
		if b.ID == blockID {
			from = i
			break
		}
	}
	if from == -1 {
		return &api.ServerError{StatusCode: 404, Detail: "Block not found"}
	}
	moved := l.Blocks[from]
	rest := append(append([]course.Block(nil), l.Blocks[:from]...), l.Blocks[from+1:]...)
	l.Blocks = append(append(append([]course.Block(nil), rest[:newPosition]...), moved), rest[newPosition:]...)
	f.full[lessonID] = &l
	return nil
}

// yes and no are canned confirmers.
var (
	yes = ConfirmFunc(func(string) bool { return true })
	no  = ConfirmFunc(func(string) bool { return false })
)
