package stagemap

import (
	"context"
	"time"

	"github.com/agentstation/stagemap/pkg/view"
)

// Controls mutates the session. Every call runs on the player loop. In the
// no-data and error states they do nothing and return nil.
type Controls interface {
	// SelectMonth moves to month i without touching playback.
	SelectMonth(ctx context.Context, i int) error

	// UserSelect stops playback and moves to month i. Every select made
	// by a person goes through it.
	UserSelect(ctx context.Context, i int) error

	// SetMode stops playback and switches between points and heat.
	SetMode(ctx context.Context, m view.Mode) error

	// Play starts stepping through months from the current one.
	Play(ctx context.Context) error

	// Pause stops playback.
	Pause(ctx context.Context) error

	// SetSpeed changes the time spent on each month.
	SetSpeed(ctx context.Context, d time.Duration) error
}

func (p *player) ready() bool {
	return p.Status() == view.StatusReady
}

// SelectMonth moves to month i.
func (p *player) SelectMonth(ctx context.Context, i int) error {
	return p.exec(ctx, func() error {
		if !p.ready() {
			return nil
		}
		return p.controller.SelectMonth(i)
	})
}

// UserSelect stops playback and moves to month i.
func (p *player) UserSelect(ctx context.Context, i int) error {
	return p.exec(ctx, func() error {
		if !p.ready() {
			return nil
		}
		return p.controller.UserSelect(i)
	})
}

// SetMode switches the rendering mode.
func (p *player) SetMode(ctx context.Context, m view.Mode) error {
	return p.exec(ctx, func() error {
		if !p.ready() {
			return nil
		}
		return p.controller.SetMode(m)
	})
}

// Play starts playback.
func (p *player) Play(ctx context.Context) error {
	return p.exec(ctx, func() error {
		if !p.ready() {
			return nil
		}
		p.engine.Start()
		return nil
	})
}

// Pause stops playback.
func (p *player) Pause(ctx context.Context) error {
	return p.exec(ctx, func() error {
		p.engine.Stop()
		return nil
	})
}

// SetSpeed changes the playback interval. A running playback restarts at
// the new cadence.
func (p *player) SetSpeed(ctx context.Context, d time.Duration) error {
	if err := validateInterval(d); err != nil {
		return err
	}
	return p.exec(ctx, func() error {
		if err := p.engine.SetInterval(d); err != nil {
			return err
		}
		// SetInterval only notifies on state changes.
		p.publish()
		return nil
	})
}
