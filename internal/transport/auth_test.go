package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stagemap/pkg/errors"
)

func TestNoAuth(t *testing.T) {
	req := &http.Request{Header: make(http.Header)}
	NoAuth{}.Apply(req, "secret")
	assert.Empty(t, req.Header)
}

func TestBearerAuth(t *testing.T) {
	req := &http.Request{Header: make(http.Header)}
	BearerAuth{}.Apply(req, "secret")
	assert.Equal(t, "Bearer secret", req.Header.Get("Authorization"))
}

func TestHeaderAuth(t *testing.T) {
	req := &http.Request{Header: make(http.Header)}
	HeaderAuth{Header: "X-Data-Key"}.Apply(req, "secret")
	assert.Equal(t, "secret", req.Header.Get("X-Data-Key"))
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestQueryAuth(t *testing.T) {
	u, err := url.Parse("https://example.com/events_timeline.json?v=2")
	require.NoError(t, err)
	req := &http.Request{URL: u, Header: make(http.Header)}

	QueryAuth{Param: "sig"}.Apply(req, "abc")
	assert.Equal(t, "abc", req.URL.Query().Get("sig"))
	assert.Equal(t, "2", req.URL.Query().Get("v"))

	// nil URL is ignored
	QueryAuth{Param: "sig"}.Apply(&http.Request{}, "abc")
}

func TestParseAuth(t *testing.T) {
	tests := []struct {
		scheme string
		want   Authenticator
	}{
		{"", BearerAuth{}},
		{"Bearer", BearerAuth{}},
		{"none", NoAuth{}},
		{"header:X-Key", HeaderAuth{Header: "X-Key"}},
		{"query:token", QueryAuth{Param: "token"}},
	}
	for _, tt := range tests {
		got, err := ParseAuth(tt.scheme)
		require.NoError(t, err, tt.scheme)
		assert.Equal(t, tt.want, got, tt.scheme)
	}

	for _, bad := range []string{"header", "query:", "basic"} {
		_, err := ParseAuth(bad)
		assert.True(t, errors.IsValidationError(err), bad)
	}
}

func TestClientLoadsPrivateDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"timeline":[{"month":"2021-01","events":[{"name":"Recital","lat":1,"lng":2}]}]}`))
	}))
	defer srv.Close()

	t.Run("with token", func(t *testing.T) {
		c := New(BearerAuth{}, "secret").WithHTTPClient(srv.Client())
		doc, err := c.NewLoader().Load(context.Background(), srv.URL)
		require.NoError(t, err)
		require.Len(t, doc.Timeline, 1)
	})

	t.Run("without token", func(t *testing.T) {
		c := New(nil, "").WithHTTPClient(srv.Client())
		_, err := c.NewLoader().Load(context.Background(), srv.URL)
		var loadErr *errors.LoadError
		require.True(t, errors.As(err, &loadErr))
		assert.Equal(t, http.StatusUnauthorized, loadErr.StatusCode)
	})

	t.Run("caller request untouched", func(t *testing.T) {
		req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, nil)
		require.NoError(t, err)
		resp, err := New(BearerAuth{}, "secret").WithHTTPClient(srv.Client()).Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Empty(t, req.Header.Get("Authorization"))
	})
}
