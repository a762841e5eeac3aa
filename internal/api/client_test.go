package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/courseforge/internal/course"
)

func TestBearerTokenAndPaths(t *testing.T) {
	var gotAuth, gotPath, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotMethod = r.Method
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := NewClient(server.URL, WithToken("tok-123"))
	_, err := c.ListCourses(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "/api/courses", gotPath)
	assert.Equal(t, http.MethodGet, gotMethod)
}

func TestSearchCoursesEscapesQuery(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		_, _ = w.Write([]byte(`{"my":[],"community":[]}`))
	}))
	defer server.Close()

	c := NewClient(server.URL)
	res, err := c.SearchCourses(context.Background(), "go & tea")
	require.NoError(t, err)
	assert.Equal(t, "go & tea", gotQuery)
	assert.Empty(t, res.My)
	assert.Empty(t, res.Community)
}

func TestServerErrorDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Course not found"}`))
	}))
	defer server.Close()

	c := NewClient(server.URL)
	_, err := c.GetCourse(context.Background(), 99)

	var serr *ServerError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusNotFound, serr.StatusCode)
	assert.Equal(t, "Course not found", serr.Detail)
}

func TestServerErrorNonJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	c := NewClient(server.URL)
	err := c.DeleteCourse(context.Background(), 1)

	var serr *ServerError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "upstream down", serr.Detail)
}

func TestTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // refuse connections

	c := NewClient(server.URL)
	_, err := c.ListCourses(context.Background())

	var terr *TransportError
	require.ErrorAs(t, err, &terr)

	var serr *ServerError
	assert.False(t, errors.As(err, &serr))
}

func TestReorderLessonBody(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		assert.Equal(t, "/api/courses/3/lessons/7/reorder", r.URL.Path)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := NewClient(server.URL)
	require.NoError(t, c.ReorderLesson(context.Background(), 3, 7, 2))
	assert.Equal(t, map[string]any{"new_position": float64(2)}, gotBody)
}

func TestAddBlockWrapsBlock(t *testing.T) {
	var gotBody map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"id":7,"course_id":3,"position":0,"name":"L","blocks":[{"type":"note","note_type":"info","content":"","block_id":"` + uuid.NewString() + `"}]}`))
	}))
	defer server.Close()

	b, _ := course.NewBlock(course.KindNote)
	c := NewClient(server.URL)
	lesson, err := c.AddBlock(context.Background(), 3, 7, b)
	require.NoError(t, err)

	// Draft wrapped under "block" with no block_id.
	require.Contains(t, gotBody, "block")
	assert.NotContains(t, string(gotBody["block"]), "block_id")

	require.Len(t, lesson.Blocks, 1)
	assert.True(t, lesson.Blocks[0].Persisted())
}

func TestCheckAnswerShapes(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"is_correct":false,"correct_answers":[0,2],"explanation":"close"}`))
	}))
	defer server.Close()

	c := NewClient(server.URL)
	res, err := c.CheckAnswer(context.Background(), 1, 2, uuid.New(), []int{1, 2})
	require.NoError(t, err)

	assert.Equal(t, []any{float64(1), float64(2)}, gotBody["answer"])
	assert.False(t, res.IsCorrect)
	assert.Equal(t, []int{0, 2}, res.CorrectAnswers)
	assert.Nil(t, res.CorrectAnswer)
	assert.Equal(t, "close", res.Explanation)
}
