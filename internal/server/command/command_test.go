package command

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stagemap"
	"github.com/agentstation/stagemap/pkg/errors"
	"github.com/agentstation/stagemap/pkg/logging"
	"github.com/agentstation/stagemap/pkg/playback"
	"github.com/agentstation/stagemap/pkg/timeline"
	"github.com/agentstation/stagemap/pkg/view"
)

type call struct {
	op  string
	arg any
}

type fakeControls struct{ calls []call }

func (f *fakeControls) record(op string, arg any) error {
	f.calls = append(f.calls, call{op, arg})
	return nil
}

func (f *fakeControls) SelectMonth(_ context.Context, i int) error { return f.record("select", i) }
func (f *fakeControls) UserSelect(_ context.Context, i int) error  { return f.record("user", i) }
func (f *fakeControls) SetMode(_ context.Context, m view.Mode) error {
	return f.record("mode", m)
}
func (f *fakeControls) Play(context.Context) error  { return f.record("play", nil) }
func (f *fakeControls) Pause(context.Context) error { return f.record("pause", nil) }
func (f *fakeControls) SetSpeed(_ context.Context, d time.Duration) error {
	return f.record("speed", d)
}

func TestApply(t *testing.T) {
	tests := []struct {
		json string
		want call
	}{
		{`{"type":"select","index":3}`, call{"user", 3}},
		{`{"type":"select","index":0,"via":"chart"}`, call{"user", 0}},
		{`{"type":"mode","mode":"heat"}`, call{"mode", view.ModeHeat}},
		{`{"type":"play"}`, call{"play", nil}},
		{`{"type":"pause"}`, call{"pause", nil}},
		{`{"type":"speed","interval_ms":400}`, call{"speed", 400 * time.Millisecond}},
	}
	for _, tt := range tests {
		t.Run(tt.json, func(t *testing.T) {
			c, err := Decode([]byte(tt.json))
			require.NoError(t, err)
			f := &fakeControls{}
			require.NoError(t, Apply(context.Background(), f, c))
			assert.Equal(t, []call{tt.want}, f.calls)
		})
	}
}

func TestApplyRejects(t *testing.T) {
	for _, raw := range []string{
		`{"type":"select"}`,
		`{"type":"mode","mode":"satellite"}`,
		`{"type":"speed"}`,
		`{"type":"rewind"}`,
	} {
		t.Run(raw, func(t *testing.T) {
			c, err := Decode([]byte(raw))
			require.NoError(t, err)
			f := &fakeControls{}
			err = Apply(context.Background(), f, c)
			assert.True(t, errors.IsValidationError(err))
			assert.Empty(t, f.calls)
		})
	}

	_, err := Decode([]byte(`{not json`))
	assert.True(t, errors.IsValidationError(err))
}

func TestChartSelectStopsPlayback(t *testing.T) {
	frames := []timeline.Frame{{Month: "2021-01"}, {Month: "2021-02"}, {Month: "2021-03"}, {Month: "2021-04"}}
	sched := playback.NewManualScheduler()
	p, err := stagemap.New(context.Background(),
		stagemap.WithTimeline(timeline.New(frames)),
		stagemap.WithScheduler(sched),
		stagemap.WithLogger(logging.NewNopLogger()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	ctx := context.Background()
	require.NoError(t, p.Play(ctx))
	require.True(t, p.Snapshot().Playing())

	c, err := Decode([]byte(`{"type":"select","index":2,"via":"chart"}`))
	require.NoError(t, err)
	require.NoError(t, Apply(ctx, p, c))

	snap := p.Snapshot()
	assert.False(t, snap.Playing())
	assert.Equal(t, 2, snap.State.Index)
}
