package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/abhisek/courseforge/internal/course"
)

// CourseCreate is the body for creating a course.
type CourseCreate struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// CourseUpdate is a partial course update; nil fields are left untouched.
type CourseUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// SearchResult is the server-side partition of search matches into the
// caller's own courses and everyone else's.
type SearchResult struct {
	My        []course.Course `json:"my"`
	Community []course.Course `json:"community"`
}

// GenerateLessonsRequest parameterizes bulk lesson-plan generation.
type GenerateLessonsRequest struct {
	Goal            *string  `json:"goal,omitempty"`
	StartKnowledge  *string  `json:"start_knowledge,omitempty"`
	TargetKnowledge *string  `json:"target_knowledge,omitempty"`
	TargetAudience  *string  `json:"target_audience,omitempty"`
	Topics          []string `json:"topics,omitempty"`
}

// GenerateLessonsResult reports how many lessons were generated.
type GenerateLessonsResult struct {
	LessonsCount int `json:"lessons_count"`
}

// ListCourses returns every course visible to the caller.
func (c *Client) ListCourses(ctx context.Context) ([]course.Course, error) {
	var out []course.Course
	if err := c.do(ctx, http.MethodGet, "/api/courses", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListMyCourses returns the caller's own courses.
func (c *Client) ListMyCourses(ctx context.Context) ([]course.Course, error) {
	var out []course.Course
	if err := c.do(ctx, http.MethodGet, "/api/courses/my", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchCourses runs a server-side search. The server partitions the
// matches; the client does not recompute them.
func (c *Client) SearchCourses(ctx context.Context, query string) (*SearchResult, error) {
	path := "/api/courses/search?query=" + url.QueryEscape(query)
	var out SearchResult
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCourse fetches one course by id.
func (c *Client) GetCourse(ctx context.Context, id int64) (*course.Course, error) {
	var out course.Course
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/courses/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCourse creates a course and returns the server representation.
func (c *Client) CreateCourse(ctx context.Context, in CourseCreate) (*course.Course, error) {
	var out course.Course
	if err := c.do(ctx, http.MethodPost, "/api/courses", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCourse applies a partial update and returns the updated course.
func (c *Client) UpdateCourse(ctx context.Context, id int64, in CourseUpdate) (*course.Course, error) {
	var out course.Course
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/courses/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCourse removes a course and everything under it.
func (c *Client) DeleteCourse(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/courses/%d", id), nil, nil)
}

// GenerateLessons asks the server to generate a lesson plan, replacing the
// course's existing lessons.
func (c *Client) GenerateLessons(ctx context.Context, id int64, in GenerateLessonsRequest) (*GenerateLessonsResult, error) {
	var out GenerateLessonsResult
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/courses/%d/generate-lessons", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
