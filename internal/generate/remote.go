package generate

import (
	"context"

	"github.com/google/uuid"

	"github.com/abhisek/courseforge/internal/api"
	"github.com/abhisek/courseforge/internal/course"
)

// remoteAPI is the slice of the course service the remote generator uses.
type remoteAPI interface {
	GenerateLessonContent(ctx context.Context, courseID, lessonID int64, in api.GenerateContentRequest) (*api.GeneratedContent, error)
	GenerateBlockContent(ctx context.Context, courseID, lessonID int64, blockID uuid.UUID, in api.GenerateBlockRequest) (*course.Block, error)
}

// Remote generates content through the course service, which runs the
// model server-side.
type Remote struct {
	api remoteAPI
}

// NewRemote creates a server-backed generator.
func NewRemote(client remoteAPI) *Remote {
	return &Remote{api: client}
}

func (r *Remote) LessonBlocks(ctx context.Context, in LessonInput) ([]course.Block, error) {
	req := api.GenerateContentRequest{
		FocusPoints: in.FocusPoints,
	}
	if in.Context != "" {
		req.Context = &in.Context
	}
	if in.Goal != "" {
		req.Goal = &in.Goal
	}

	result, err := r.api.GenerateLessonContent(ctx, in.CourseID, in.LessonID, req)
	if err != nil {
		return nil, &GenerationError{Err: err}
	}
	return result.Blocks, nil
}

func (r *Remote) Block(ctx context.Context, in BlockInput) (course.Block, error) {
	req := api.GenerateBlockRequest{}
	if in.UserRequest != "" {
		req.UserRequest = &in.UserRequest
	}
	if in.Context != "" {
		req.Context = &in.Context
	}

	block, err := r.api.GenerateBlockContent(ctx, in.CourseID, in.LessonID, in.BlockID, req)
	if err != nil {
		return course.Block{}, &GenerationError{Err: err}
	}
	return *block, nil
}
