package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/abhisek/courseforge/internal/course"
)

// LessonCreate is the body for creating a lesson with its initial blocks.
type LessonCreate struct {
	CourseID    int64          `json:"course_id"`
	Position    int            `json:"position"`
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	Blocks      []course.Block `json:"blocks"`
}

// LessonUpdate is a partial lesson update; nil fields are left untouched.
type LessonUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// GenerateContentRequest parameterizes lesson content generation.
type GenerateContentRequest struct {
	Context     *string  `json:"context,omitempty"`
	Goal        *string  `json:"goal,omitempty"`
	FocusPoints []string `json:"focus_points,omitempty"`
}

// GeneratedContent is the block list produced for a lesson. The blocks are
// not persisted; the caller adds them one by one.
type GeneratedContent struct {
	Blocks []course.Block `json:"blocks"`
}

type reorderBody struct {
	NewPosition int `json:"new_position"`
}

// ListLessons returns the lesson summaries of a course. Order is whatever
// the server sent; callers sort by position.
func (c *Client) ListLessons(ctx context.Context, courseID int64) ([]course.LessonSummary, error) {
	var out []course.LessonSummary
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/courses/%d/lessons", courseID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetLesson fetches a full lesson with its blocks.
func (c *Client) GetLesson(ctx context.Context, courseID, lessonID int64) (*course.Lesson, error) {
	var out course.Lesson
	path := fmt.Sprintf("/api/courses/%d/lessons/%d", courseID, lessonID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateLesson creates a lesson and returns the server representation.
func (c *Client) CreateLesson(ctx context.Context, in LessonCreate) (*course.Lesson, error) {
	var out course.Lesson
	path := fmt.Sprintf("/api/courses/%d/lessons", in.CourseID)
	if err := c.do(ctx, http.MethodPost, path, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateLesson applies a partial update and returns the updated lesson.
func (c *Client) UpdateLesson(ctx context.Context, courseID, lessonID int64, in LessonUpdate) (*course.Lesson, error) {
	var out course.Lesson
	path := fmt.Sprintf("/api/courses/%d/lessons/%d", courseID, lessonID)
	if err := c.do(ctx, http.MethodPatch, path, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteLesson removes a lesson.
func (c *Client) DeleteLesson(ctx context.Context, courseID, lessonID int64) error {
	path := fmt.Sprintf("/api/courses/%d/lessons/%d", courseID, lessonID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// ReorderLesson moves a lesson to newPosition.
func (c *Client) ReorderLesson(ctx context.Context, courseID, lessonID int64, newPosition int) error {
	path := fmt.Sprintf("/api/courses/%d/lessons/%d/reorder", courseID, lessonID)
	return c.do(ctx, http.MethodPost, path, reorderBody{NewPosition: newPosition}, nil)
}

// GenerateLessonContent asks the server to generate blocks for a lesson.
func (c *Client) GenerateLessonContent(ctx context.Context, courseID, lessonID int64, in GenerateContentRequest) (*GeneratedContent, error) {
	var out GeneratedContent
	path := fmt.Sprintf("/api/courses/%d/lessons/%d/generate-content", courseID, lessonID)
	if err := c.do(ctx, http.MethodPost, path, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
