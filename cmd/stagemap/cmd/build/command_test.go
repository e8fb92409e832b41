package build

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stagemap/cmd/application"
	"github.com/agentstation/stagemap/pkg/timeline"
)

const dump = `{"id":"e1","name":"Hamlet Premiere","life-span":{"begin":"2021-03-14"},"relations":[{"type":"held at","target-type":"place","place":{"name":"Globe","coordinates":{"latitude":"51.508","longitude":"-0.097"},"area":{"name":"London","iso-3166-1-codes":["GB"]}}}]}
{"id":"e2","name":"No place","life-span":{"begin":"2021-03-01"},"relations":[]}
not json
`

func TestBuildCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "event.json")
	require.NoError(t, os.WriteFile(input, []byte(dump), 0o600))
	out := filepath.Join(dir, "public", "events_timeline.json")

	app := &application.Mock{OutputFormatFunc: func() string { return "json" }}
	cmd := NewCommand(app)
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--input", input, "--output", out})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	var result Result
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
	assert.Equal(t, 1, result.Stats.Events)
	assert.Equal(t, 1, result.Stats.Skipped)
	assert.Equal(t, 1, result.Stats.Malformed)
	assert.Equal(t, 1, result.Months)
	assert.Equal(t, "2021-03", result.Start)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	doc, err := timeline.Decode(f)
	require.NoError(t, err)
	require.Len(t, doc.Timeline, 1)
	assert.Equal(t, "Hamlet Premiere", doc.Timeline[0].Events[0].Name)
}

func TestBuildCommandDefaultsOutputToDataSource(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "event.json")
	require.NoError(t, os.WriteFile(input, []byte(dump), 0o600))
	data := filepath.Join(dir, "data.json")

	app := &application.Mock{
		DataSourceFunc:   func() string { return data },
		OutputFormatFunc: func() string { return "yaml" },
	}
	cmd := NewCommand(app)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"-i", input})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	_, err := os.Stat(data)
	assert.NoError(t, err)
}

func TestBuildCommandMissingInput(t *testing.T) {
	cmd := NewCommand(&application.Mock{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--input", filepath.Join(t.TempDir(), "missing.json"), "--output", filepath.Join(t.TempDir(), "x.json")})
	assert.Error(t, cmd.ExecuteContext(context.Background()))
}

func TestResultTable(t *testing.T) {
	data := Result{Input: "in", Output: "out", Months: 2, Start: "2021-01", End: "2021-02"}.Table()
	assert.Equal(t, []string{"Field", "Value"}, data.Headers)
	assert.Contains(t, data.Rows, []string{"Range", "2021-01 to 2021-02"})
}
