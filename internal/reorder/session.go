// Package reorder runs the grab-move-drop lifecycle for one reorderable
// list. The session applies the new order locally first so the UI reflects
// the move immediately, then commits it to the server and replaces the
// local list with the server's answer. A failed commit still refetches,
// falling back to the pre-grab snapshot when even the refetch fails, so
// the optimistic order is always discarded in favor of known-good state.
package reorder

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/abhisek/courseforge/internal/ordering"
)

// Phase is the state of a reorder session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseCommitting
)

var (
	// ErrBusy is returned when a grab starts while a previous reorder is
	// still in flight.
	ErrBusy = errors.New("a reorder is already in progress")

	// ErrLocked is returned when the grabbed item is mid-edit.
	ErrLocked = errors.New("item is being edited")

	// ErrNotDragging is returned for drop or cancel without an active grab.
	ErrNotDragging = errors.New("no item is grabbed")
)

// Hooks connects a session to the list it reorders. ID and Apply are
// required; Locked is optional.
type Hooks[T ordering.Positioned[T]] struct {
	// ID returns a stable identity for an item.
	ID func(T) string

	// Locked reports whether the item may not be grabbed right now.
	Locked func(id string) bool

	// Apply publishes a new list, optimistic or authoritative.
	Apply func(items []T)

	// Commit persists the move on the server. insertIndex is the item's
	// index after removal, which is also its new position.
	Commit func(ctx context.Context, id string, insertIndex int) error

	// Reload fetches the authoritative list.
	Reload func(ctx context.Context) ([]T, error)
}

// Session is the reorder state machine for one list. It is not safe for
// concurrent use; the event loop owns it.
type Session[T ordering.Positioned[T]] struct {
	hooks     Hooks[T]
	phase     Phase
	draggedID string
	overIndex int
}

// NewSession creates an idle session.
func NewSession[T ordering.Positioned[T]](hooks Hooks[T]) *Session[T] {
	return &Session[T]{hooks: hooks, overIndex: -1}
}

// Phase returns the current phase.
func (s *Session[T]) Phase() Phase { return s.phase }

// Dragging reports whether an item is currently grabbed.
func (s *Session[T]) Dragging() bool { return s.phase == PhaseDragging }

// DraggedID returns the grabbed item's id, or "" when idle.
func (s *Session[T]) DraggedID() string { return s.draggedID }

// OverIndex returns the current drop-target hint, or -1 when none.
func (s *Session[T]) OverIndex() int { return s.overIndex }

// Grab starts dragging the item with the given id.
func (s *Session[T]) Grab(id string) error {
	if s.phase != PhaseIdle {
		return ErrBusy
	}
	if s.hooks.Locked != nil && s.hooks.Locked(id) {
		return ErrLocked
	}
	s.phase = PhaseDragging
	s.draggedID = id
	s.overIndex = -1
	return nil
}

// Over records the index the grabbed item is hovering above. Purely a
// visual hint; the list is not touched.
func (s *Session[T]) Over(index int) {
	if s.phase != PhaseDragging {
		return
	}
	s.overIndex = index
}

// Leave clears the hover hint.
func (s *Session[T]) Leave() {
	if s.phase != PhaseDragging {
		return
	}
	s.overIndex = -1
}

// Cancel abandons the grab. Only a dragging session can be cancelled; a
// committing one must run to completion.
func (s *Session[T]) Cancel() error {
	if s.phase != PhaseDragging {
		return ErrNotDragging
	}
	s.reset()
	return nil
}

// Drop completes the move onto targetIndex. The sequence is: no-op
// shortcut when the item is already there, optimistic local apply, server
// commit, authoritative reload. On commit failure the reload still runs;
// if that reload fails too, the pre-grab order is restored from a
// snapshot. Either way the optimistic order never outlives the attempt.
func (s *Session[T]) Drop(ctx context.Context, items []T, targetIndex int) error {
	if s.phase != PhaseDragging {
		return ErrNotDragging
	}

	from := -1
	for i, it := range items {
		if s.hooks.ID(it) == s.draggedID {
			from = i
			break
		}
	}
	if from == -1 || from == targetIndex {
		s.reset()
		return nil
	}

	s.phase = PhaseCommitting
	snapshot := slices.Clone(items)
	reordered, insertIndex := ordering.Move(items, from, targetIndex)
	s.hooks.Apply(reordered)

	if err := s.hooks.Commit(ctx, s.draggedID, insertIndex); err != nil {
		if fresh, rerr := s.hooks.Reload(ctx); rerr == nil {
			s.hooks.Apply(fresh)
		} else {
			s.hooks.Apply(snapshot)
		}
		s.reset()
		return fmt.Errorf("commit reorder: %w", err)
	}

	fresh, err := s.hooks.Reload(ctx)
	if err != nil {
		s.reset()
		return fmt.Errorf("reload after reorder: %w", err)
	}
	s.hooks.Apply(fresh)
	s.reset()
	return nil
}

func (s *Session[T]) reset() {
	s.phase = PhaseIdle
	s.draggedID = ""
	s.overIndex = -1
}
