// Package edit holds the draft state for one editable surface: a course
// name or description, a lesson name or description, or a single block.
// Owners keep at most one open session per surface, so two edits of the
// same field cannot race each other.
package edit

import (
	"context"
	"errors"
)

// Target names the surface a session edits.
type Target int

const (
	CourseName Target = iota
	CourseDescription
	LessonName
	LessonDescription
	LessonBlock
)

// ErrClosed is returned when a saved or cancelled session is used again.
var ErrClosed = errors.New("edit session is closed")

// Session is an open edit of one value. Change mutates only the draft;
// nothing reaches the server until Save.
type Session[V any] struct {
	target   Target
	targetID string
	draft    V
	validate func(V) error
	open     bool
}

// Start opens a session seeded with the current value. validate may be
// nil for surfaces with no local constraints.
func Start[V any](target Target, targetID string, current V, validate func(V) error) *Session[V] {
	return &Session[V]{
		target:   target,
		targetID: targetID,
		draft:    current,
		validate: validate,
		open:     true,
	}
}

// Target returns the edited surface.
func (s *Session[V]) Target() Target { return s.target }

// TargetID returns the identity of the edited entity.
func (s *Session[V]) TargetID() string { return s.targetID }

// Open reports whether the session still accepts changes.
func (s *Session[V]) Open() bool { return s.open }

// Draft returns the current draft value.
func (s *Session[V]) Draft() V { return s.draft }

// Change replaces the draft. Ignored on a closed session.
func (s *Session[V]) Change(v V) {
	if !s.open {
		return
	}
	s.draft = v
}

// Save validates the draft and hands it to commit. Validation failures
// never reach the network. On any failure the session stays open with the
// draft intact; only a successful commit closes it.
func (s *Session[V]) Save(ctx context.Context, commit func(context.Context, V) error) error {
	if !s.open {
		return ErrClosed
	}
	if s.validate != nil {
		if err := s.validate(s.draft); err != nil {
			return err
		}
	}
	if err := commit(ctx, s.draft); err != nil {
		return err
	}
	s.open = false
	return nil
}

// Cancel discards the draft and closes the session.
func (s *Session[V]) Cancel() {
	s.open = false
}
