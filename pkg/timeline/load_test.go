package timeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stagemap/pkg/errors"
)

const hamlet = `{"timeline":[{"month":"2021-01","events":[{"name":"Hamlet Premiere","date":"2021-01-05","lat":51.5,"lng":-0.1}]}]}`

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events_timeline.json")
	require.NoError(t, os.WriteFile(path, []byte(hamlet), 0o644))

	doc, err := Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, doc.Timeline, 1)
	assert.Equal(t, "2021-01", doc.Timeline[0].Month)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.IsLoadError(err))
	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestLoadURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/events_timeline.json":
			_, _ = w.Write([]byte(hamlet))
		case "/broken.json":
			_, _ = w.Write([]byte(`{"timeline": [`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	loader := &Loader{Client: srv.Client()}

	t.Run("ok", func(t *testing.T) {
		doc, err := loader.Load(context.Background(), srv.URL+"/events_timeline.json")
		require.NoError(t, err)
		assert.Equal(t, 1, doc.Build().TotalEvents())
	})

	t.Run("non-2xx", func(t *testing.T) {
		_, err := loader.Load(context.Background(), srv.URL+"/missing.json")
		var le *errors.LoadError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, http.StatusNotFound, le.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		_, err := loader.Load(context.Background(), srv.URL+"/broken.json")
		assert.True(t, errors.IsLoadError(err))
		var pe *errors.ParseError
		assert.ErrorAs(t, err, &pe)
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := loader.Load(ctx, srv.URL+"/events_timeline.json")
		assert.True(t, errors.IsLoadError(err))
	})
}
