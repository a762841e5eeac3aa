package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/courseforge/internal/course"
	"github.com/abhisek/courseforge/internal/llm"
)

const lessonSystemPrompt = `You are a course author writing lesson content.
Produce clear, focused teaching material as a sequence of content blocks.
Mix block types: theory for explanations, code for runnable examples, note
for callouts, single_choice and multiple_choice for comprehension checks.
Choice blocks need at least two options and valid zero-based answer
indices. Keep each block self-contained and in teaching order.`

const blockSystemPrompt = `You are a course author revising one content
block of a lesson. Rewrite the block as requested while keeping its type
unchanged. Return only the block object.`

// DirectConfig tunes the LLM-backed generator.
type DirectConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultDirectConfig returns sensible generation limits.
func DefaultDirectConfig() DirectConfig {
	return DirectConfig{
		MaxTokens:   8192,
		Temperature: 0.7,
	}
}

// Direct generates content locally through an LLM provider, for users who
// bring their own API key instead of relying on the server's generator.
type Direct struct {
	provider llm.Provider
	config   DirectConfig
	log      *zap.Logger
}

// NewDirect creates an LLM-backed generator.
func NewDirect(provider llm.Provider, cfg DirectConfig, log *zap.Logger) *Direct {
	if log == nil {
		log = zap.NewNop()
	}
	return &Direct{provider: provider, config: cfg, log: log}
}

func (d *Direct) LessonBlocks(ctx context.Context, in LessonInput) ([]course.Block, error) {
	resp, err := d.provider.Generate(ctx, llm.Request{
		System: lessonSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildLessonPrompt(in)},
		},
		Schema:      lessonContentSchema,
		MaxTokens:   d.config.MaxTokens,
		Temperature: d.config.Temperature,
	})
	if err != nil {
		return nil, &GenerationError{Err: err}
	}

	var out struct {
		Blocks []course.Block `json:"blocks"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, &GenerationError{Err: fmt.Errorf("decode blocks: %w", err)}
	}

	d.log.Debug("lesson content generated",
		zap.String("lesson", in.LessonName),
		zap.Int("blocks", len(out.Blocks)),
		zap.Int("tokens", resp.Usage.TotalTokens))
	return out.Blocks, nil
}

func (d *Direct) Block(ctx context.Context, in BlockInput) (course.Block, error) {
	resp, err := d.provider.Generate(ctx, llm.Request{
		System: blockSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildBlockPrompt(in)},
		},
		Schema:      singleBlockSchema,
		MaxTokens:   d.config.MaxTokens,
		Temperature: d.config.Temperature,
	})
	if err != nil {
		return course.Block{}, &GenerationError{Err: err}
	}

	var block course.Block
	if err := json.Unmarshal(resp.Content, &block); err != nil {
		return course.Block{}, &GenerationError{Err: fmt.Errorf("decode block: %w", err)}
	}
	if in.Block.Kind() != "" && block.Kind() != in.Block.Kind() {
		return course.Block{}, &GenerationError{
			Err: fmt.Errorf("block kind changed from %s to %s", in.Block.Kind(), block.Kind()),
		}
	}
	// The generated content replaces the existing block in place.
	block.ID = in.Block.ID
	return block, nil
}

func buildLessonPrompt(in LessonInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Course: %s\n", in.CourseName)
	if in.CourseDescription != "" {
		fmt.Fprintf(&b, "Course description: %s\n", in.CourseDescription)
	}
	fmt.Fprintf(&b, "Lesson: %s\n", in.LessonName)
	if in.LessonDescription != "" {
		fmt.Fprintf(&b, "Lesson description: %s\n", in.LessonDescription)
	}
	if in.Goal != "" {
		fmt.Fprintf(&b, "Goal: %s\n", in.Goal)
	}
	if in.Context != "" {
		fmt.Fprintf(&b, "Additional context: %s\n", in.Context)
	}
	if len(in.FocusPoints) > 0 {
		fmt.Fprintf(&b, "Must cover: %s\n", strings.Join(in.FocusPoints, "; "))
	}
	b.WriteString("\nWrite the content blocks for this lesson.")
	return b.String()
}

func buildBlockPrompt(in BlockInput) string {
	var b strings.Builder
	current, err := json.Marshal(in.Block)
	if err == nil {
		fmt.Fprintf(&b, "Current block:\n%s\n\n", current)
	}
	if in.Context != "" {
		fmt.Fprintf(&b, "Lesson context: %s\n", in.Context)
	}
	if in.UserRequest != "" {
		fmt.Fprintf(&b, "Request: %s\n", in.UserRequest)
	} else {
		b.WriteString("Request: improve and complete this block's content.\n")
	}
	return b.String()
}
