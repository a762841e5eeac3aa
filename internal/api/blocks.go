package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/abhisek/courseforge/internal/course"
)

// AnswerResult is the server's verdict on a quiz answer. For single choice
// CorrectAnswer is set; for multiple choice CorrectAnswers is.
type AnswerResult struct {
	IsCorrect      bool   `json:"is_correct"`
	CorrectAnswer  *int   `json:"correct_answer,omitempty"`
	CorrectAnswers []int  `json:"correct_answers,omitempty"`
	Explanation    string `json:"explanation,omitempty"`
}

// GenerateBlockRequest parameterizes single-block content generation.
type GenerateBlockRequest struct {
	UserRequest *string `json:"user_request,omitempty"`
	Context     *string `json:"context,omitempty"`
}

type addBlockBody struct {
	Block    course.Block `json:"block"`
	Position *int         `json:"position,omitempty"`
}

type answerBody struct {
	Answer any `json:"answer"`
}

type generatedBlockResult struct {
	Block course.Block `json:"block"`
}

// AddBlock appends a block to a lesson and returns the full updated
// lesson; the new block is the last one and carries its server id.
func (c *Client) AddBlock(ctx context.Context, courseID, lessonID int64, b course.Block) (*course.Lesson, error) {
	var out course.Lesson
	path := fmt.Sprintf("/api/courses/%d/lessons/%d/blocks", courseID, lessonID)
	if err := c.do(ctx, http.MethodPost, path, addBlockBody{Block: b}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBlock replaces a block's content and returns the updated lesson.
func (c *Client) UpdateBlock(ctx context.Context, courseID, lessonID int64, blockID uuid.UUID, b course.Block) (*course.Lesson, error) {
	var out course.Lesson
	path := fmt.Sprintf("/api/courses/%d/lessons/%d/blocks/%s", courseID, lessonID, blockID)
	if err := c.do(ctx, http.MethodPatch, path, b, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteBlock removes a block and returns the updated lesson.
func (c *Client) DeleteBlock(ctx context.Context, courseID, lessonID int64, blockID uuid.UUID) (*course.Lesson, error) {
	var out course.Lesson
	path := fmt.Sprintf("/api/courses/%d/lessons/%d/blocks/%s", courseID, lessonID, blockID)
	if err := c.do(ctx, http.MethodDelete, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReorderBlock moves a block to newPosition within its lesson.
func (c *Client) ReorderBlock(ctx context.Context, courseID, lessonID int64, blockID uuid.UUID, newPosition int) error {
	path := fmt.Sprintf("/api/courses/%d/lessons/%d/blocks/%s/reorder", courseID, lessonID, blockID)
	return c.do(ctx, http.MethodPost, path, reorderBody{NewPosition: newPosition}, nil)
}

// CheckAnswer verifies a quiz answer server-side. answer is an int for
// single choice or a []int for multiple choice.
func (c *Client) CheckAnswer(ctx context.Context, courseID, lessonID int64, blockID uuid.UUID, answer any) (*AnswerResult, error) {
	var out AnswerResult
	path := fmt.Sprintf("/api/courses/%d/lessons/%d/blocks/%s/check-answer", courseID, lessonID, blockID)
	if err := c.do(ctx, http.MethodPost, path, answerBody{Answer: answer}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateBlockContent asks the server to regenerate one block's content
// and returns the resulting block.
func (c *Client) GenerateBlockContent(ctx context.Context, courseID, lessonID int64, blockID uuid.UUID, in GenerateBlockRequest) (*course.Block, error) {
	var out generatedBlockResult
	path := fmt.Sprintf("/api/courses/%d/lessons/%d/blocks/%s/generate-content", courseID, lessonID, blockID)
	if err := c.do(ctx, http.MethodPost, path, in, &out); err != nil {
		return nil, err
	}
	return &out.Block, nil
}
