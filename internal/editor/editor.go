// Package editor manages the block list of the open lesson: adding,
// editing, deleting, reordering, and AI generation. For a lesson that is
// not saved yet it keeps a purely local draft list; once the lesson has a
// server identity every mutation goes through the API.
package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/courseforge/internal/course"
	"github.com/abhisek/courseforge/internal/edit"
	"github.com/abhisek/courseforge/internal/generate"
	"github.com/abhisek/courseforge/internal/reorder"
	"github.com/abhisek/courseforge/internal/store"
)

var (
	// ErrNotPersisted is returned when a per-block operation targets a
	// block that has no server identity yet. Save the lesson first.
	ErrNotPersisted = errors.New("block is not saved yet")

	// ErrNoOpenLesson is returned for server-backed operations without an
	// open lesson.
	ErrNoOpenLesson = errors.New("no lesson is open")

	// ErrEditInProgress is returned when a block edit starts while another
	// is open.
	ErrEditInProgress = errors.New("a block edit is already in progress")
)

// Editor owns block-level editing for the open lesson.
// Not safe for concurrent use; the event loop owns it.
type Editor struct {
	api     store.BlockAPI
	lessons *store.LessonStore
	gen     generate.ContentGenerator
	confirm store.Confirmer
	log     *zap.Logger

	draft   []course.Block
	session *edit.Session[course.Block]
	reorder *reorder.Session[course.Block]
}

// New creates an editor. gen may be nil when generation is unavailable;
// confirm may be nil to skip prompts.
func New(client store.BlockAPI, lessons *store.LessonStore, gen generate.ContentGenerator, confirm store.Confirmer, log *zap.Logger) *Editor {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Editor{
		api:     client,
		lessons: lessons,
		gen:     gen,
		confirm: confirm,
		log:     log,
	}
	e.reorder = reorder.NewSession(reorder.Hooks[course.Block]{
		ID: func(b course.Block) string {
			return b.ID.String()
		},
		Locked: e.blockLocked,
		Apply: func(blocks []course.Block) {
			if lesson := e.lessons.Open(); lesson != nil {
				lesson.Blocks = blocks
			}
		},
		Commit: func(ctx context.Context, id string, insertIndex int) error {
			blockID, err := uuid.Parse(id)
			if err != nil {
				return fmt.Errorf("parse block id: %w", err)
			}
			lesson := e.lessons.Open()
			if lesson == nil {
				return ErrNoOpenLesson
			}
			return e.api.ReorderBlock(ctx, lesson.CourseID, lesson.ID, blockID, insertIndex)
		},
		Reload: func(ctx context.Context) ([]course.Block, error) {
			lesson := e.lessons.Open()
			if lesson == nil {
				return nil, ErrNoOpenLesson
			}
			fresh, err := e.api.GetLesson(ctx, lesson.CourseID, lesson.ID)
			if err != nil {
				return nil, err
			}
			e.lessons.SetOpen(fresh)
			return fresh.Blocks, nil
		},
	})
	return e
}

// Blocks returns the ordered block list: the open lesson's blocks, or the
// local draft when composing a new lesson.
func (e *Editor) Blocks() []course.Block {
	if lesson := e.lessons.Open(); lesson != nil {
		return lesson.Blocks
	}
	return e.draft
}

// Draft returns the local draft blocks for an unsaved lesson.
func (e *Editor) Draft() []course.Block { return e.draft }

// ClearDraft drops the local draft, typically after the lesson is created.
func (e *Editor) ClearDraft() { e.draft = nil }

// Session returns the open block edit session, or nil.
func (e *Editor) Session() *edit.Session[course.Block] { return e.session }

// Reorder returns the drag session for the block list.
func (e *Editor) Reorder() *reorder.Session[course.Block] { return e.reorder }

// AddBlock appends a fresh block of the given kind. Unknown kinds are a
// no-op. Without an open lesson the block joins the local draft; with one
// it is created server-side immediately and opened for editing.
func (e *Editor) AddBlock(ctx context.Context, kind course.BlockKind) error {
	block, ok := course.NewBlock(kind)
	if !ok {
		return nil
	}

	lesson := e.lessons.Open()
	if lesson == nil {
		e.draft = append(e.draft, block.WithPosition(len(e.draft)))
		return nil
	}

	updated, err := e.api.AddBlock(ctx, lesson.CourseID, lesson.ID, block)
	if err != nil {
		return fmt.Errorf("add block: %w", err)
	}
	e.lessons.SetOpen(updated)

	// The server appended it, so the new block is the last one.
	if n := len(updated.Blocks); n > 0 {
		return e.EditBlock(updated.Blocks[n-1])
	}
	return nil
}

// EditBlock opens an edit session on a persisted block.
func (e *Editor) EditBlock(b course.Block) error {
	if !b.Persisted() {
		return ErrNotPersisted
	}
	if e.session != nil && e.session.Open() {
		return ErrEditInProgress
	}
	e.session = edit.Start(edit.LessonBlock, b.ID.String(), b, course.Block.Validate)
	return nil
}

// SaveBlock commits the open block edit. The server's lesson replaces the
// local one; on failure the session stays open with the draft intact.
func (e *Editor) SaveBlock(ctx context.Context) error {
	if e.session == nil {
		return edit.ErrClosed
	}
	lesson := e.lessons.Open()
	if lesson == nil {
		return ErrNoOpenLesson
	}
	return e.session.Save(ctx, func(ctx context.Context, draft course.Block) error {
		updated, err := e.api.UpdateBlock(ctx, lesson.CourseID, lesson.ID, draft.ID, draft)
		if err != nil {
			return fmt.Errorf("update block: %w", err)
		}
		e.lessons.SetOpen(updated)
		return nil
	})
}

// CancelEdit discards the open block edit, if any.
func (e *Editor) CancelEdit() {
	if e.session != nil {
		e.session.Cancel()
	}
}

// DeleteBlock removes a block after confirmation. Declining is a silent
// no-op. Deleting the block under edit cancels the edit.
func (e *Editor) DeleteBlock(ctx context.Context, blockID uuid.UUID) error {
	lesson := e.lessons.Open()
	if lesson == nil {
		return ErrNoOpenLesson
	}
	if e.confirm != nil && !e.confirm.Confirm("Delete this block?") {
		return nil
	}

	updated, err := e.api.DeleteBlock(ctx, lesson.CourseID, lesson.ID, blockID)
	if err != nil {
		return fmt.Errorf("delete block: %w", err)
	}
	e.lessons.SetOpen(updated)

	if e.session != nil && e.session.Open() && e.session.TargetID() == blockID.String() {
		e.session.Cancel()
	}
	return nil
}

// RemoveDraftBlock deletes a block from the local draft by index.
func (e *Editor) RemoveDraftBlock(index int) {
	if index < 0 || index >= len(e.draft) {
		return
	}
	e.draft = append(e.draft[:index], e.draft[index+1:]...)
	for i := range e.draft {
		e.draft[i] = e.draft[i].WithPosition(i)
	}
}

// UpdateDraftBlock replaces a draft block's content by index.
func (e *Editor) UpdateDraftBlock(index int, b course.Block) {
	if index < 0 || index >= len(e.draft) {
		return
	}
	e.draft[index] = b.WithPosition(index)
}

// Grab starts dragging a persisted block.
func (e *Editor) Grab(blockID uuid.UUID) error {
	if blockID == uuid.Nil {
		return ErrNotPersisted
	}
	return e.reorder.Grab(blockID.String())
}

// Drop completes the active block drag onto targetIndex.
func (e *Editor) Drop(ctx context.Context, targetIndex int) error {
	return e.reorder.Drop(ctx, e.Blocks(), targetIndex)
}

// GenerateContent generates blocks for the open lesson and appends them
// one by one, in order. A mid-sequence failure keeps the blocks already
// added; the count of added blocks is returned alongside the error.
func (e *Editor) GenerateContent(ctx context.Context, in generate.LessonInput) (int, error) {
	lesson := e.lessons.Open()
	if lesson == nil {
		return 0, ErrNoOpenLesson
	}
	if e.gen == nil {
		return 0, &generate.GenerationError{Err: errors.New("no generator configured")}
	}

	in.CourseID = lesson.CourseID
	in.LessonID = lesson.ID
	if in.LessonName == "" {
		in.LessonName = lesson.Name
	}
	if in.LessonDescription == "" {
		in.LessonDescription = lesson.Description
	}

	blocks, err := e.gen.LessonBlocks(ctx, in)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, b := range blocks {
		updated, err := e.api.AddBlock(ctx, lesson.CourseID, lesson.ID, b)
		if err != nil {
			e.log.Warn("generated block not added",
				zap.Int("added", added),
				zap.Int("total", len(blocks)),
				zap.Error(err))
			e.refreshLesson(ctx, lesson.CourseID, lesson.ID)
			return added, fmt.Errorf("add generated block %d of %d: %w", added+1, len(blocks), err)
		}
		e.lessons.SetOpen(updated)
		added++
	}

	e.refreshLesson(ctx, lesson.CourseID, lesson.ID)
	return added, nil
}

// GenerateForBlock regenerates one persisted block's content and saves it.
func (e *Editor) GenerateForBlock(ctx context.Context, blockID uuid.UUID, userRequest string) error {
	lesson := e.lessons.Open()
	if lesson == nil {
		return ErrNoOpenLesson
	}
	if e.gen == nil {
		return &generate.GenerationError{Err: errors.New("no generator configured")}
	}
	if blockID == uuid.Nil {
		return ErrNotPersisted
	}

	var target *course.Block
	for i := range lesson.Blocks {
		if lesson.Blocks[i].ID == blockID {
			target = &lesson.Blocks[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("block %s not in open lesson", blockID)
	}

	block, err := e.gen.Block(ctx, generate.BlockInput{
		CourseID:    lesson.CourseID,
		LessonID:    lesson.ID,
		BlockID:     blockID,
		Block:       *target,
		UserRequest: userRequest,
		Context:     lesson.Name,
	})
	if err != nil {
		return err
	}

	updated, err := e.api.UpdateBlock(ctx, lesson.CourseID, lesson.ID, blockID, block)
	if err != nil {
		return fmt.Errorf("save generated block: %w", err)
	}
	e.lessons.SetOpen(updated)
	return nil
}

// blockLocked blocks dragging the block currently under edit.
func (e *Editor) blockLocked(id string) bool {
	return e.session != nil && e.session.Open() && e.session.TargetID() == id
}

// refreshLesson replaces the open lesson with the server state, best
// effort: generation already reported its own outcome.
func (e *Editor) refreshLesson(ctx context.Context, courseID, lessonID int64) {
	fresh, err := e.api.GetLesson(ctx, courseID, lessonID)
	if err != nil {
		e.log.Warn("lesson refresh failed", zap.Error(err))
		return
	}
	e.lessons.SetOpen(fresh)
}
