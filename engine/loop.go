package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/minaorangina/blackjack/protocol"
)

const DefaultFPS = 30

// InputSource is polled once per frame and must not block
type InputSource interface {
	Poll() (Input, error)
}

// View draws the table once per frame
type View interface {
	Render(state protocol.TableState) error
}

// Pacer caps a loop at a fixed frame rate by sleeping off the rest of each frame
type Pacer struct {
	Frame time.Duration
	sleep func(ctx context.Context, d time.Duration)
	now   func() time.Time
}

func NewPacer(fps int) *Pacer {
	if fps < 1 {
		fps = DefaultFPS
	}
	return &Pacer{
		Frame: time.Second / time.Duration(fps),
		sleep: sleepCtx,
		now:   time.Now,
	}
}

// Wait sleeps until a frame has passed since started
func (p *Pacer) Wait(ctx context.Context, started time.Time) {
	elapsed := p.now().Sub(started)
	if elapsed < p.Frame {
		p.sleep(ctx, p.Frame-elapsed)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// Run is the frame loop for front ends without one of their own:
// poll, step, render, then wait out the frame.
func (e *Engine) Run(ctx context.Context, src InputSource, view View, pacer *Pacer) error {
	if pacer == nil {
		pacer = NewPacer(DefaultFPS)
	}

	for {
		started := pacer.now()

		if err := ctx.Err(); err != nil {
			return err
		}

		in, err := src.Poll()
		if err != nil {
			return fmt.Errorf("poll input: %w", err)
		}

		quit, err := e.Step(ctx, in)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}

		if err := view.Render(e.State()); err != nil {
			return fmt.Errorf("render: %w", err)
		}

		pacer.Wait(ctx, started)
	}
}
