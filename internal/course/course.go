package course

import (
	"time"
)

// Course is a remote course entity. The client holds a working copy only;
// the server representation is authoritative.
type Course struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	AuthorID    int64      `json:"author_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// LessonSummary is the list representation of a lesson, returned by the
// course lessons index. Full block content requires fetching the lesson.
type LessonSummary struct {
	ID          int64  `json:"id"`
	CourseID    int64  `json:"course_id"`
	Position    int    `json:"position"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// WithPosition returns a copy of the summary at the given position.
func (l LessonSummary) WithPosition(p int) LessonSummary {
	l.Position = p
	return l
}

// Lesson is a full lesson with its ordered content blocks.
type Lesson struct {
	ID          int64   `json:"id"`
	CourseID    int64   `json:"course_id"`
	Position    int     `json:"position"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Blocks      []Block `json:"blocks"`
}

// WithPosition returns a copy of the lesson at the given position.
func (l Lesson) WithPosition(p int) Lesson {
	l.Position = p
	return l
}
