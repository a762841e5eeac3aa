// Package store holds the client-side working copies of remote courses
// and lessons. Stores never persist anything locally: every mutation goes
// through the API and the server representation replaces the local one.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/abhisek/courseforge/internal/api"
	"github.com/abhisek/courseforge/internal/course"
)

var (
	// ErrNoOpenCourse is returned for operations that need a selected course.
	ErrNoOpenCourse = errors.New("no course is open")

	// ErrNoOpenLesson is returned for operations that need a selected lesson.
	ErrNoOpenLesson = errors.New("no lesson is open")

	// ErrNotAuthor is returned when a non-author tries to modify a course.
	ErrNotAuthor = errors.New("only the course author can do that")

	// ErrEditInProgress is returned when a second edit targets a surface
	// that already has an open session.
	ErrEditInProgress = errors.New("an edit is already in progress")
)

// Confirmer asks the user to approve a destructive action. Implementations
// block until the user answers.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// CourseAPI is the slice of the remote API the course store uses.
type CourseAPI interface {
	ListCourses(ctx context.Context) ([]course.Course, error)
	ListMyCourses(ctx context.Context) ([]course.Course, error)
	SearchCourses(ctx context.Context, query string) (*api.SearchResult, error)
	GetCourse(ctx context.Context, id int64) (*course.Course, error)
	CreateCourse(ctx context.Context, in api.CourseCreate) (*course.Course, error)
	UpdateCourse(ctx context.Context, id int64, in api.CourseUpdate) (*course.Course, error)
	DeleteCourse(ctx context.Context, id int64) error
}

// LessonAPI is the slice of the remote API the lesson store uses.
type LessonAPI interface {
	ListLessons(ctx context.Context, courseID int64) ([]course.LessonSummary, error)
	GetLesson(ctx context.Context, courseID, lessonID int64) (*course.Lesson, error)
	CreateLesson(ctx context.Context, in api.LessonCreate) (*course.Lesson, error)
	UpdateLesson(ctx context.Context, courseID, lessonID int64, in api.LessonUpdate) (*course.Lesson, error)
	DeleteLesson(ctx context.Context, courseID, lessonID int64) error
	ReorderLesson(ctx context.Context, courseID, lessonID int64, newPosition int) error
	GenerateLessons(ctx context.Context, id int64, in api.GenerateLessonsRequest) (*api.GenerateLessonsResult, error)
}

// BlockAPI is the slice of the remote API the block editor uses.
type BlockAPI interface {
	GetLesson(ctx context.Context, courseID, lessonID int64) (*course.Lesson, error)
	AddBlock(ctx context.Context, courseID, lessonID int64, b course.Block) (*course.Lesson, error)
	UpdateBlock(ctx context.Context, courseID, lessonID int64, blockID uuid.UUID, b course.Block) (*course.Lesson, error)
	DeleteBlock(ctx context.Context, courseID, lessonID int64, blockID uuid.UUID) (*course.Lesson, error)
	ReorderBlock(ctx context.Context, courseID, lessonID int64, blockID uuid.UUID, newPosition int) error
}

// optional returns nil for blank strings so empty fields serialize as
// null rather than "".
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
