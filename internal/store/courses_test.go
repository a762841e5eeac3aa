package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/courseforge/internal/api"
	"github.com/abhisek/courseforge/internal/course"
)

func libraryCourse(id int64, name string, author int64) course.Course {
	return course.Course{ID: id, Name: name, AuthorID: author}
}

func TestLoadPartitionsLibrary(t *testing.T) {
	f := newFakeAPI()
	f.all = []course.Course{
		libraryCourse(1, "mine", 1),
		libraryCourse(2, "theirs", 2),
		libraryCourse(3, "also mine", 1),
	}
	f.mine = []course.Course{
		libraryCourse(1, "mine", 1),
		libraryCourse(3, "also mine", 1),
	}

	s := NewCourseStore(f, 1, nil, nil)
	if err := s.Load(context.Background(), ""); err != nil {
		t.Fatal(err)
	}

	if len(s.My()) != 2 {
		t.Errorf("my = %d, want 2", len(s.My()))
	}
	if len(s.Community()) != 1 || s.Community()[0].ID != 2 {
		t.Errorf("community = %+v, want just course 2", s.Community())
	}
	if s.Searching() {
		t.Error("blank query must not set searching")
	}
}

func TestLoadSearchUsesServerPartition(t *testing.T) {
	f := newFakeAPI()
	// The server's answer is taken as-is even if it disagrees with what a
	// client-side partition would compute.
	f.search = &api.SearchResult{
		My:        []course.Course{libraryCourse(5, "match", 1)},
		Community: []course.Course{libraryCourse(5, "match", 1)},
	}

	s := NewCourseStore(f, 1, nil, nil)
	if err := s.Load(context.Background(), "  match  "); err != nil {
		t.Fatal(err)
	}

	if !s.Searching() {
		t.Error("searching flag not set")
	}
	if s.Query() != "match" {
		t.Errorf("query = %q, want trimmed", s.Query())
	}
	if len(s.My()) != 1 || len(s.Community()) != 1 {
		t.Errorf("partition recomputed: my=%d community=%d", len(s.My()), len(s.Community()))
	}
	for _, call := range f.calls {
		if call == "list" || call == "list-my" {
			t.Errorf("search must not fetch lists: %v", f.calls)
		}
	}
}

func TestCreateValidatesLocally(t *testing.T) {
	f := newFakeAPI()
	s := NewCourseStore(f, 1, nil, nil)

	err := s.Create(context.Background(), strings.Repeat("x", course.MaxNameLength+1), "")
	var verr *course.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if len(f.calls) != 0 {
		t.Errorf("invalid create must not hit the server: %v", f.calls)
	}
}

func TestEditNameRequiresAuthor(t *testing.T) {
	f := newFakeAPI()
	f.courses[9] = &course.Course{ID: 9, Name: "not mine", AuthorID: 2}

	s := NewCourseStore(f, 1, nil, nil)
	if err := s.Select(context.Background(), 9); err != nil {
		t.Fatal(err)
	}
	if _, err := s.EditName(); !errors.Is(err, ErrNotAuthor) {
		t.Errorf("err = %v, want ErrNotAuthor", err)
	}
}

func TestSaveNameSendsOnlyName(t *testing.T) {
	f := newFakeAPI()
	f.courses[4] = &course.Course{ID: 4, Name: "old", Description: "keep me", AuthorID: 1}

	s := NewCourseStore(f, 1, nil, nil)
	if err := s.Select(context.Background(), 4); err != nil {
		t.Fatal(err)
	}

	session, err := s.EditName()
	if err != nil {
		t.Fatal(err)
	}
	session.Change("  new name  ")
	if err := s.SaveName(context.Background()); err != nil {
		t.Fatal(err)
	}

	if s.Open().Name != "new name" {
		t.Errorf("name = %q", s.Open().Name)
	}
	if s.Open().Description != "keep me" {
		t.Errorf("description changed: %q", s.Open().Description)
	}
	if session.Open() {
		t.Error("session must close after save")
	}

	// A fresh edit is allowed once the previous one closed.
	if _, err := s.EditName(); err != nil {
		t.Errorf("second edit after save: %v", err)
	}
}

func TestSecondEditSameFieldRefused(t *testing.T) {
	f := newFakeAPI()
	f.courses[4] = &course.Course{ID: 4, Name: "n", AuthorID: 1}

	s := NewCourseStore(f, 1, nil, nil)
	if err := s.Select(context.Background(), 4); err != nil {
		t.Fatal(err)
	}
	if _, err := s.EditName(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.EditName(); !errors.Is(err, ErrEditInProgress) {
		t.Errorf("err = %v, want ErrEditInProgress", err)
	}
	// A different field is independent.
	if _, err := s.EditDescription(); err != nil {
		t.Errorf("description edit blocked: %v", err)
	}
}

func TestSaveNameServerFailureKeepsSession(t *testing.T) {
	f := newFakeAPI()
	f.courses[4] = &course.Course{ID: 4, Name: "old", AuthorID: 1}

	s := NewCourseStore(f, 1, nil, nil)
	if err := s.Select(context.Background(), 4); err != nil {
		t.Fatal(err)
	}
	session, err := s.EditName()
	if err != nil {
		t.Fatal(err)
	}
	session.Change("renamed")

	f.err = &api.ServerError{StatusCode: 500, Detail: "boom"}
	if err := s.SaveName(context.Background()); err == nil {
		t.Fatal("expected save failure")
	}
	if !session.Open() {
		t.Error("session must stay open")
	}
	if session.Draft() != "renamed" {
		t.Errorf("draft = %q", session.Draft())
	}
	if s.Open().Name != "old" {
		t.Errorf("entity must keep server value, got %q", s.Open().Name)
	}
}

func TestDeleteDeclined(t *testing.T) {
	f := newFakeAPI()
	f.courses[4] = &course.Course{ID: 4, Name: "n", AuthorID: 1}

	s := NewCourseStore(f, 1, no, nil)
	if err := s.Select(context.Background(), 4); err != nil {
		t.Fatal(err)
	}
	f.calls = nil

	if err := s.Delete(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(f.calls) != 0 {
		t.Errorf("declined delete must not hit the server: %v", f.calls)
	}
	if s.Open() == nil {
		t.Error("declined delete must keep the course open")
	}
}

func TestDeleteConfirmed(t *testing.T) {
	f := newFakeAPI()
	f.courses[4] = &course.Course{ID: 4, Name: "n", AuthorID: 1}

	s := NewCourseStore(f, 1, yes, nil)
	if err := s.Select(context.Background(), 4); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(context.Background()); err != nil {
		t.Fatal(err)
	}
	if s.Open() != nil {
		t.Error("course must close after delete")
	}
	if _, ok := f.courses[4]; ok {
		t.Error("course not deleted server-side")
	}
}
