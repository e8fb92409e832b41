package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type monthRow struct {
	Month string `json:"month"`
	Count int    `json:"event_count"`
}

type monthRows []monthRow

func (r monthRows) Table() Data {
	d := Data{Headers: []string{Header("month"), Header("event_count")}, ColumnAlignment: []Align{AlignLeft, AlignRight}}
	for _, m := range r {
		d.Rows = append(d.Rows, []string{m.Month, "n"})
	}
	return d
}

func TestFormats(t *testing.T) {
	rows := monthRows{{Month: "2021-01", Count: 3}}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, FormatJSON, rows))
		assert.JSONEq(t, `[{"month":"2021-01","event_count":3}]`, buf.String())
	})

	t.Run("yaml uses json names", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, FormatYAML, rows))
		assert.Contains(t, buf.String(), "event_count: 3")
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, FormatTable, rows))
		out := buf.String()
		assert.Contains(t, out, "2021-01")
		assert.Contains(t, strings.ToUpper(out), "EVENT COUNT")
	})

	t.Run("table falls back to json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, FormatTable, map[string]int{"a": 1}))
		assert.JSONEq(t, `{"a":1}`, buf.String())
	})
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestHeader(t *testing.T) {
	assert.Equal(t, "Event Count", Header("event_count"))
}
