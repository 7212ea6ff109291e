package transport

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGet_BuildsRequest(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "dev@example.com", "token123", time.Second, zap.NewNop())
	params := url.Values{}
	params.Set("startAt", "50")
	raw, err := c.Get(context.Background(), "project/search", params)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, string(raw))

	require.NotNil(t, got)
	assert.Equal(t, "/rest/api/3/project/search", got.URL.Path)
	assert.Equal(t, "50", got.URL.Query().Get("startAt"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))

	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("dev@example.com:token123"))
	assert.Equal(t, want, got.Header.Get("Authorization"))
}

func TestGet_BearerAuthWithoutEmail(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "", "token123", time.Second, zap.NewNop())
	_, err := c.Get(context.Background(), "myself", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer token123", auth)
}

func TestPost_SendsJSONBody(t *testing.T) {
	var contentType string
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": "1"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "dev@example.com", "token123", time.Second, zap.NewNop())
	raw, err := c.Post(context.Background(), "issue", map[string]string{"summary": "New issue"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": "1"}`, string(raw))
	assert.Equal(t, "application/json", contentType)
	assert.JSONEq(t, `{"summary": "New issue"}`, string(body))
}

func TestDo_ErrorStatusSurfacesAsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"errorMessages": ["project not found"]}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "", "token123", time.Second, zap.NewNop())
	_, err := c.Get(context.Background(), "project/NOPE", nil)
	require.Error(t, err)

	var terr *Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, http.StatusNotFound, terr.Status)
	assert.Contains(t, terr.Body, "project not found")
}

func TestDo_NoContentYieldsEmptyObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "", "token123", time.Second, zap.NewNop())
	raw, err := c.Get(context.Background(), "whatever", nil)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Empty(t, m)
}

func TestDo_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "", "token123", time.Minute, zap.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Get(ctx, "slow", nil)
	assert.Error(t, err)
}

func TestNewHTTPClient_TrimsTrailingSlash(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL+"/", "", "token123", time.Second, zap.NewNop())
	_, err := c.Get(context.Background(), "myself", nil)
	require.NoError(t, err)
	assert.Equal(t, "/rest/api/3/myself", path)
}
