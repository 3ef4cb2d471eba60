package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListIssuesWrappedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/issues", r.URL.Path)
		assert.Equal(t, "ward-12", r.URL.Query().Get("ward"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[{"id":"a","title":"Pothole","status":"open"},{"id":"b","title":"Streetlight","status":"resolved"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key")
	issues, err := c.ListIssues(context.Background(), ListParams{Ward: "ward-12", Page: 2, Limit: 10})
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, "Pothole", issues[0].Title)
}

func TestListIssuesBareArrayResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"a","title":"Pothole","status":"open"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key")
	issues, err := c.ListIssues(context.Background(), ListParams{})
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "a", issues[0].ID)
}

func TestUpvoteRequiresSession(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key")
	_, err := c.Upvote(context.Background(), "abc")
	assert.ErrorIs(t, err, ErrNoSession)
	assert.False(t, called, "no request should be sent without a session")
}

func TestUpvoteReturnsServerCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/issues/abc/upvote", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"upvotes":7}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", WithSession(&Session{ID: "u1", Token: "tok-1"}))
	count, err := c.Upvote(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
}

func TestUpvoteSurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Issue not found"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", WithSession(&Session{ID: "u1", Token: "tok-1"}))
	_, err := c.Upvote(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "Issue not found", err.Error())
}

func TestUpvoteGenericErrorWhenBodyUnparseable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", WithSession(&Session{ID: "u1", Token: "tok-1"}))
	_, err := c.Upvote(context.Background(), "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upvote issue")
}

func TestCreateIssueReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"new-1","title":"Garbage not collected","status":"open","upvotes":0}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key")
	created, err := c.CreateIssueReport(context.Background(), CreateIssue{
		Title:       "Garbage not collected",
		Description: "Bins overflowing for three days",
		Category:    "sanitation",
	})
	require.NoError(t, err)
	assert.Equal(t, "new-1", created.ID)
	assert.Equal(t, "open", created.Status)
}

func TestAnalytics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/issues/analytics", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"total":10,"open":6,"resolved":4}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key")
	a, err := c.Analytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), a.Total)
	assert.Equal(t, int64(6), a.Open)
}

func TestWardZones(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geo/ward-zones", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ward-1":"Kothrud","ward-2":"Aundh"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key")
	zones, err := c.WardZones(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Kothrud", zones["ward-1"])
}

func TestVerifyGoogleToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/google/verify", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"user":{"id":"sub-9","email":"a@b.com","name":"Asha"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key")
	session, err := c.VerifyGoogleToken(context.Background(), "google-token")
	require.NoError(t, err)
	assert.Equal(t, "sub-9", session.ID)
	assert.Equal(t, "google-token", session.Token)
}

func TestFileSessionStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.json")
	store := NewFileSessionStore(path)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded, "empty store loads as logged out")

	session := &Session{ID: "u1", Email: "a@b.com", Name: "Asha", Token: "tok"}
	require.NoError(t, store.Save(session))

	loaded, err = store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, *session, *loaded)

	require.NoError(t, store.Clear())
	loaded, err = store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Clearing twice is fine.
	require.NoError(t, store.Clear())
}
