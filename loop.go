package stagemap

import (
	"context"
	"time"

	"github.com/agentstation/stagemap/pkg/constants"
	"github.com/agentstation/stagemap/pkg/errors"
)

// run executes queued commands one at a time until Close.
func (p *player) run() {
	defer close(p.done)
	for {
		select {
		case fn := <-p.cmds:
			fn()
		case <-p.quit:
			return
		}
	}
}

// exec runs fn on the loop and waits for its result.
func (p *player) exec(ctx context.Context, fn func() error) error {
	result := make(chan error, 1)
	task := func() { result <- fn() }

	select {
	case p.cmds <- task:
	case <-ctx.Done():
		return ctx.Err()
	case <-p.quit:
		return errors.ErrClosed
	}

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-p.done:
		return errors.ErrClosed
	}
}

// Dispatch hands a playback tick to the loop. It gives up when the tick's
// task is cancelled or the player is closed, so a Stop running on the loop
// never waits on a ticker blocked here.
func (p *player) Dispatch(cancel <-chan struct{}, fn func()) bool {
	select {
	case p.cmds <- fn:
		return true
	case <-cancel:
		return false
	case <-p.quit:
		return false
	}
}

// Close stops playback and shuts the loop down. It is safe to call more
// than once.
func (p *player) Close() error {
	p.closeOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), constants.LoopShutdownTimeout)
		defer cancel()
		if err := p.exec(ctx, func() error {
			p.engine.Stop()
			return nil
		}); err != nil {
			p.logger.Warn().Err(err).Msg("Failed to stop playback before shutdown")
		}
		close(p.quit)
	})

	select {
	case <-p.done:
		p.logger.Debug().Msg("Player closed")
		return nil
	case <-time.After(constants.LoopShutdownTimeout):
		return errors.WrapResource("close", "player", "", errors.ErrTimeout)
	}
}
