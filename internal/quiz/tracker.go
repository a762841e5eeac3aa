// Package quiz tracks per-block answer selections and server verdicts for
// the currently open lesson. Selections live only in memory and are
// dropped wholesale when the lesson changes.
package quiz

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/abhisek/courseforge/internal/api"
)

// ErrNoSelection is returned when check runs on a block with nothing
// selected. It never reaches the network.
var ErrNoSelection = errors.New("select an answer first")

// Checker verifies answers server-side. *api.Client satisfies it.
type Checker interface {
	CheckAnswer(ctx context.Context, courseID, lessonID int64, blockID uuid.UUID, answer any) (*api.AnswerResult, error)
}

// Answer is the local selection for one quiz block: either a single index
// or a set of indices, depending on the block kind.
type Answer struct {
	Single *int
	Multi  []int
}

// Empty reports whether nothing is selected.
func (a Answer) Empty() bool {
	return a.Single == nil && len(a.Multi) == 0
}

// wire converts the selection to the check-answer payload shape.
func (a Answer) wire() any {
	if a.Single != nil {
		return *a.Single
	}
	return a.Multi
}

// Tracker holds quiz state for one lesson. Not safe for concurrent use;
// the event loop owns it.
type Tracker struct {
	checker    Checker
	selections map[uuid.UUID]Answer
	results    map[uuid.UUID]*api.AnswerResult
}

// NewTracker creates an empty tracker backed by checker.
func NewTracker(checker Checker) *Tracker {
	return &Tracker{
		checker:    checker,
		selections: make(map[uuid.UUID]Answer),
		results:    make(map[uuid.UUID]*api.AnswerResult),
	}
}

// Select sets the single-choice selection for a block, overwriting any
// previous choice.
func (t *Tracker) Select(blockID uuid.UUID, option int) {
	t.selections[blockID] = Answer{Single: &option}
}

// Toggle flips an option in a block's multiple-choice selection set.
func (t *Tracker) Toggle(blockID uuid.UUID, option int) {
	current := t.selections[blockID]
	for i, o := range current.Multi {
		if o == option {
			multi := append(append([]int(nil), current.Multi[:i]...), current.Multi[i+1:]...)
			t.selections[blockID] = Answer{Multi: multi}
			return
		}
	}
	t.selections[blockID] = Answer{Multi: append(append([]int(nil), current.Multi...), option)}
}

// Selection returns the current selection for a block.
func (t *Tracker) Selection(blockID uuid.UUID) Answer {
	return t.selections[blockID]
}

// Check sends the block's selection to the server and stores the verdict.
// An empty selection fails locally with ErrNoSelection.
func (t *Tracker) Check(ctx context.Context, courseID, lessonID int64, blockID uuid.UUID) (*api.AnswerResult, error) {
	sel, ok := t.selections[blockID]
	if !ok || sel.Empty() {
		return nil, ErrNoSelection
	}

	result, err := t.checker.CheckAnswer(ctx, courseID, lessonID, blockID, sel.wire())
	if err != nil {
		return nil, err
	}
	t.results[blockID] = result
	return result, nil
}

// Result returns the stored verdict for a block, if any.
func (t *Tracker) Result(blockID uuid.UUID) (*api.AnswerResult, bool) {
	r, ok := t.results[blockID]
	return r, ok
}

// Locked reports whether a block was answered correctly. The UI uses this
// to stop accepting selection changes; it is derived state, not a mode.
func (t *Tracker) Locked(blockID uuid.UUID) bool {
	r, ok := t.results[blockID]
	return ok && r.IsCorrect
}

// Reset drops all selections and verdicts. Called on lesson change or
// reload, since block identity may not survive either.
func (t *Tracker) Reset() {
	t.selections = make(map[uuid.UUID]Answer)
	t.results = make(map[uuid.UUID]*api.AnswerResult)
}
