package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerAndRequestIDHeaders(t *testing.T) {
	var gotAuth, gotReqID, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok-123", nil)
	_, err := c.ListProjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotReqID)
	// GET with no body carries no JSON content type
	assert.Empty(t, gotContentType)
}

func TestUnauthorizedIsSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL, "expired", nil)
	_, err := c.Me(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestErrorDetailExtraction(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"detail string", `{"detail":"task not found"}`, "task not found"},
		{"detail object", `{"detail":{"field":"title"}}`, `{"field":"title"}`},
		{"raw json", `{"error":"boom"}`, `{"error":"boom"}`},
		{"raw text", `something broke`, "something broke"},
		{"empty body", ``, http.StatusText(http.StatusUnprocessableEntity)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := New(srv.URL, "tok", nil)
			_, err := c.GetTask(context.Background(), 7)
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
			assert.Equal(t, tc.want, apiErr.Detail)
		})
	}
}

func TestUploadUsesMultipart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "avatar.png")
	require.NoError(t, os.WriteFile(path, []byte("png-bytes"), 0o644))

	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "avatar.png", hdr.Filename)
		w.Write([]byte(`{"id":1,"username":"a"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", nil)
	_, err := c.UploadAvatar(context.Background(), 1, path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(gotContentType, "multipart/form-data"))
}

func TestSpaceSeparatedTimestampsDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":3,"title":"x","created_at":"2024-05-01 09:30:00","due_date":"2024-05-10 00:00:00"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", nil)
	tasks, err := c.ListProjectTasks(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].CreatedAt.Valid())
	assert.True(t, tasks[0].DueDate.Valid())
	assert.Equal(t, 10, tasks[0].DueDate.Day())
}

func TestInspectToken(t *testing.T) {
	// header/payload {"alg":"HS256"} . {"sub":"42","exp":4102444800}
	tok := "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
		"eyJzdWIiOiI0MiIsImV4cCI6NDEwMjQ0NDgwMH0." +
		"c2ln"
	info, err := InspectToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "42", info.Subject)
	assert.Equal(t, 2100, info.ExpiresAt.UTC().Year())
	assert.False(t, info.ExpiresSoon(0))
}
