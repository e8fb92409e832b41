package web

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderIndex(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderIndex(&buf, DefaultPageConfig("/api/v1")))

	page := buf.String()
	assert.Contains(t, page, `<title>Stage map</title>`)
	assert.Contains(t, page, `"apiPrefix":`)
	assert.Contains(t, page, `api`)
	assert.Contains(t, page, `"premiere":"#f6c445"`)
	assert.Contains(t, page, `"radius":38`)
	assert.Contains(t, page, `id="miniChartBox"`)
}

func TestDefaultPageConfig(t *testing.T) {
	cfg := DefaultPageConfig("/x")
	assert.Equal(t, []int64{1600, 800, 400, 200}, cfg.SpeedsMS)
	assert.Equal(t, 3, cfg.Zoom)
	assert.Equal(t, 6, cfg.FlyToZoom)
	assert.Equal(t, int64(600), cfg.FlyToMS)
	assert.Len(t, cfg.Colors, 4)
}

func TestStatic(t *testing.T) {
	srv := httptest.NewServer(http.StripPrefix("/static/", Static()))
	defer srv.Close()

	for _, name := range []string{"app.js", "style.css"} {
		resp, err := http.Get(srv.URL + "/static/" + name)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, name)
	}
}

func TestScriptGuards(t *testing.T) {
	raw, err := content.ReadFile("static/app.js")
	require.NoError(t, err)
	script := string(raw)

	t.Run("heat plugin missing", func(t *testing.T) {
		assert.Contains(t, script, "els.heat.disabled = true;")
		assert.Contains(t, script, "send('/mode', { mode: 'points' });")
		assert.Contains(t, script, "els.heat.disabled = !s.heat_available || !heatLayer;")
	})

	t.Run("out of order responses", func(t *testing.T) {
		assert.Contains(t, script, "if (idx === shownIndex) els.list.innerHTML = html;")
		assert.Contains(t, script, "if (active === chartActive) els.chart.innerHTML = svg;")
	})

	t.Run("chart clicks are plain selects", func(t *testing.T) {
		assert.NotContains(t, script, "via:")
	})
}
