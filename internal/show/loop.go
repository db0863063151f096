package show

import (
	"context"
	"errors"
	"image"
	"time"

	"github.com/joelhk/driftframe/internal/engine"
	"github.com/joelhk/driftframe/internal/logging"
	"github.com/joelhk/driftframe/internal/slide"
)

// Loop is the fixed-rate presentation loop.
type Loop struct {
	engine  *engine.Engine
	surface Surface
	tick    time.Duration
	log     *logging.Logger

	fullscreen bool
}

// LoopOptions holds configuration for creating a Loop.
type LoopOptions struct {
	Engine  *engine.Engine
	Surface Surface
	Tick    time.Duration // tick period; defaults to 60 Hz
	Log     *logging.Logger
}

// NewLoop creates a presentation loop.
func NewLoop(opts LoopOptions) *Loop {
	if opts.Tick <= 0 {
		opts.Tick = time.Second / 60
	}
	if opts.Log == nil {
		opts.Log = logging.New()
	}
	return &Loop{
		engine:     opts.Engine,
		surface:    opts.Surface,
		tick:       opts.Tick,
		log:        opts.Log,
		fullscreen: true,
	}
}

// Run starts the engine and ticks until the user quits, the context is
// cancelled, or the catalog is exhausted. Exhaustion is returned as an error
// so the process can exit nonzero.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.engine.Start(time.Now()); err != nil {
		return err
	}
	l.draw()

	ticker := time.NewTicker(l.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case action := <-l.surface.Events():
			done, err := l.handleAction(action)
			if err != nil {
				return err
			}
			if done {
				return nil
			}

		case now := <-ticker.C:
			if err := l.engine.Update(now); err != nil {
				if errors.Is(err, slide.ErrCatalogExhausted) {
					l.log.Error("no images remaining, stopping")
				}
				return err
			}
			l.draw()
		}
	}
}

// handleAction dispatches a user action to the engine or surface. It returns
// done=true when the loop should exit cleanly.
func (l *Loop) handleAction(action Action) (done bool, err error) {
	now := time.Now()
	switch action {
	case ActionQuit:
		return true, nil

	case ActionAdvance:
		if err := l.engine.Advance(1, now); err != nil {
			return false, err
		}
		l.draw()

	case ActionBack:
		if err := l.engine.Advance(-1, now); err != nil {
			return false, err
		}
		l.draw()

	case ActionPause:
		paused := l.engine.TogglePause(now)
		l.log.Info("pause toggled", "paused", paused)

	case ActionFullscreen:
		l.fullscreen = !l.fullscreen
		if err := l.surface.SetFullscreen(l.fullscreen); err != nil {
			l.log.Warn("fullscreen toggle failed", "error", err)
		}
	}
	return false, nil
}

// draw composites the current frame (and the incoming slide while a
// transition is active) and presents it.
func (l *Loop) draw() {
	frame := l.engine.Frame()

	l.surface.Clear()
	if frame.Current != nil {
		l.drawSlide(frame.Current, frame.CurrentAlpha)
	}
	if frame.Next != nil {
		l.drawSlide(frame.Next, frame.NextAlpha)
	}
	if err := l.surface.Present(); err != nil {
		l.log.Warn("present failed", "error", err)
	}
}

// drawSlide composites one slide's layers: background filling the surface,
// foreground centered, caption bar flush to the bottom.
func (l *Loop) drawSlide(s *slide.Slide, alpha uint8) {
	if alpha == 0 {
		return
	}
	w, h := l.surface.Size()

	if s.Background != nil {
		l.surface.Draw(s.Background, image.Point{}, alpha)
	}
	if s.Foreground != nil {
		fb := s.Foreground.Bounds()
		at := image.Pt((w-fb.Dx())/2, (h-fb.Dy())/2)
		l.surface.Draw(s.Foreground, at, alpha)
	}
	if s.CaptionBar != nil {
		cb := s.CaptionBar.Bounds()
		l.surface.Draw(s.CaptionBar, image.Pt((w-cb.Dx())/2, h-cb.Dy()), alpha)
	}
}
