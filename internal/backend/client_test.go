package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := DefaultConfig()
	cfg.Endpoint = srv.URL
	cfg.TimeoutMs = 2000
	return NewHTTPClient(cfg, NoopObserver{})
}

func TestCheckStatus(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/material/status/course-1", r.URL.Path)
		json.NewEncoder(w).Encode(StatusResult{Status: "researching", Progress: 40, Message: "🔍 Pesquisando"})
	}))

	res, err := c.CheckStatus(context.Background(), "course-1")
	require.NoError(t, err)
	assert.Equal(t, "researching", res.Status)
	assert.Equal(t, 40.0, res.Progress)
}

func TestCreateInitialThread(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/material/create-initial-thread", r.URL.Path)
		var req CreateThreadRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Fotossíntese", req.Topic)
		assert.Equal(t, "beginner", req.KnowledgeLevel)
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))

	err := c.CreateInitialThread(context.Background(), CreateThreadRequest{
		CourseID:       "course-1",
		Topic:          "Fotossíntese",
		KnowledgeLevel: "beginner",
	})
	require.NoError(t, err)
}

func TestCreateInitialThread_Rejected(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "topic too vague"})
	}))

	err := c.CreateInitialThread(context.Background(), CreateThreadRequest{CourseID: "c"})
	assert.ErrorIs(t, err, ErrRejected)
}

func TestTriggerGeneration(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/material/generate", r.URL.Path)
		json.NewEncoder(w).Encode(TriggerResult{Success: true})
	}))

	res, err := c.TriggerGeneration(context.Background(), "course-1")
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestCall_RetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(StatusResult{Status: "preparing", Progress: 5})
	}))

	res, err := c.CheckStatus(context.Background(), "course-1")
	require.NoError(t, err)
	assert.Equal(t, "preparing", res.Status)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCall_ServerErrorAfterRetries(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad", http.StatusBadGateway)
	}))

	_, err := c.CheckStatus(context.Background(), "course-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestAvailable(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	}))
	assert.True(t, c.Available(context.Background()))

	down := NewHTTPClient(Config{Endpoint: "http://127.0.0.1:1", TimeoutMs: 200}, nil)
	assert.False(t, down.Available(context.Background()))
}
