// Package generate produces lesson content with AI. Two implementations
// exist behind one interface: Remote delegates to the course service's
// generation endpoints, Direct talks to an LLM provider with the user's
// own key. Callers persist the returned blocks themselves.
package generate

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/courseforge/internal/course"
)

// LessonInput describes the lesson to generate blocks for.
type LessonInput struct {
	CourseID          int64
	LessonID          int64
	CourseName        string
	CourseDescription string
	LessonName        string
	LessonDescription string

	// Context is extra background the user typed.
	Context string
	// Goal is what the lesson should teach.
	Goal string
	// FocusPoints are topics the content must cover.
	FocusPoints []string
}

// BlockInput describes a single block to (re)generate.
type BlockInput struct {
	CourseID int64
	LessonID int64
	BlockID  uuid.UUID

	// Block is the current block; its kind constrains the output.
	Block course.Block
	// UserRequest is the user's instruction for this block.
	UserRequest string
	// Context is extra background, typically the lesson name.
	Context string
}

// ContentGenerator produces blocks for lessons. Returned blocks are not
// persisted; the caller adds or updates them through the API.
type ContentGenerator interface {
	// LessonBlocks generates a sequence of blocks for a lesson.
	LessonBlocks(ctx context.Context, in LessonInput) ([]course.Block, error)

	// Block generates replacement content for one block, keeping its kind.
	Block(ctx context.Context, in BlockInput) (course.Block, error)
}

// GenerationError wraps any failure inside a generator so callers can
// recognize generation problems without knowing which backend ran.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("content generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
