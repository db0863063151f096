// Package engine implements the crossfade state machine: it owns the current
// and next slides, transition timing, alpha computation, auto-advance, and
// the preload hand-off. All methods take the current time explicitly so the
// presentation loop (and tests) control the clock.
package engine

import (
	"math"
	"time"

	"github.com/joelhk/driftframe/internal/catalog"
	"github.com/joelhk/driftframe/internal/logging"
	"github.com/joelhk/driftframe/internal/slide"
)

// State is the transition state.
type State int

const (
	// StateIdle means a single slide is displayed at full opacity.
	StateIdle State = iota
	// StateActive means a crossfade toward the next slide is in progress.
	StateActive
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// AlphaOpaque is the fully-visible alpha value. During a crossfade the
// current and next alphas always sum to AlphaOpaque.
const AlphaOpaque = 255

// Frame is what the presentation loop composites on a tick: the current
// slide, plus the incoming slide while a transition is active.
type Frame struct {
	Current      *slide.Slide
	CurrentAlpha uint8
	Next         *slide.Slide // nil unless transitioning
	NextAlpha    uint8
}

// Options configures an Engine.
type Options struct {
	Catalog   *catalog.Catalog
	Loader    *slide.Loader
	Preloader *slide.Preloader
	Rotation  time.Duration // time each slide stays before auto-advance
	Duration  time.Duration // crossfade duration
	Timeout   time.Duration // bounded wait for a preloaded slide (default 5s)
	Log       *logging.Logger
}

// Engine is the transition state machine. It is driven from the presentation
// loop only; the preload worker never touches it.
type Engine struct {
	cat      *catalog.Catalog
	loader   *slide.Loader
	pre      *slide.Preloader
	rotation time.Duration
	duration time.Duration
	timeout  time.Duration
	log      *logging.Logger

	state           State
	current         *slide.Slide
	next            *slide.Slide
	index           int
	alpha           int // alpha of the current slide
	paused          bool
	transitionStart time.Time
	slideStart      time.Time
}

// New creates an Engine. Call Start before the first tick.
func New(opts Options) *Engine {
	if opts.Timeout <= 0 {
		opts.Timeout = slide.DefaultConsumeTimeout
	}
	if opts.Log == nil {
		opts.Log = logging.New()
	}
	return &Engine{
		cat:      opts.Catalog,
		loader:   opts.Loader,
		pre:      opts.Preloader,
		rotation: opts.Rotation,
		duration: opts.Duration,
		timeout:  opts.Timeout,
		log:      opts.Log,
		state:    StateIdle,
		alpha:    AlphaOpaque,
	}
}

// Start loads the first slide synchronously and anticipates the next one.
// Returns slide.ErrCatalogExhausted if no catalog entry can be rendered.
func (e *Engine) Start(now time.Time) error {
	s, pos, err := e.loader.Load(0)
	if err != nil {
		return err
	}
	e.current = s
	e.index = pos
	e.alpha = AlphaOpaque
	e.slideStart = now
	e.pre.Request(e.nextIndex(1))
	return nil
}

// Begin starts a crossfade toward the slide at target (taken modulo the
// catalog length). If the preload worker was anticipating that index the
// preloaded slide is consumed; otherwise the slide is loaded synchronously.
// A no-op while a transition is already active.
func (e *Engine) Begin(target int, now time.Time) error {
	if e.state == StateActive {
		return nil
	}

	n := e.cat.Len()
	if n == 0 {
		return slide.ErrCatalogExhausted
	}
	target = ((target % n) + n) % n

	var (
		s   *slide.Slide
		err error
	)
	if expected, ok := e.pre.Expecting(); ok && expected == target {
		s, err = e.pre.Consume(target, e.timeout)
	} else {
		s, _, err = e.loader.Load(target)
	}
	if err != nil {
		return err
	}

	e.next = s
	e.state = StateActive
	e.transitionStart = now
	e.alpha = AlphaOpaque
	e.log.Debug("transition begun", "to", s.Path)

	// Anticipate the slide after the incoming one. Failed entries may have
	// shrunk the catalog during the load, so anchor on the slide's actual
	// position rather than the requested target.
	pos := e.cat.IndexOf(s.Path)
	if pos < 0 {
		pos = target
	}
	if n := e.cat.Len(); n > 0 {
		e.pre.Request((pos + 1) % n)
	}
	return nil
}

// Update advances timers and the active crossfade. When idle, unpaused, and
// the rotation interval has elapsed, it begins a transition to the next
// slide. Returns slide.ErrCatalogExhausted when no images remain.
func (e *Engine) Update(now time.Time) error {
	if e.state == StateIdle && !e.paused && now.Sub(e.slideStart) >= e.rotation {
		if err := e.Begin(e.nextIndex(1), now); err != nil {
			return err
		}
	}

	if e.state == StateActive {
		progress := float64(now.Sub(e.transitionStart)) / float64(e.duration)
		if progress > 1.0 {
			progress = 1.0
		}
		eased := Ease(progress)
		e.alpha = int(float64(AlphaOpaque) * (1 - eased))
		if progress >= 1.0 {
			e.finish(now)
		}
	}
	return nil
}

// Advance handles manual navigation: direction > 0 steps forward, otherwise
// backward. If a transition is active it is committed first, so navigation is
// instantaneous and no blend is silently abandoned.
func (e *Engine) Advance(direction int, now time.Time) error {
	if e.state == StateActive {
		e.finish(now)
	}
	step := 1
	if direction < 0 {
		step = -1
	}
	return e.Begin(e.nextIndex(step), now)
}

// finish commits the in-flight transition: the incoming slide becomes
// current, the index is recomputed from its catalog position, and the
// auto-advance timer restarts. A no-op when already idle.
func (e *Engine) finish(now time.Time) {
	if e.state != StateActive {
		return
	}
	if e.current != nil {
		e.current.Release()
	}
	e.current = e.next
	e.next = nil
	e.state = StateIdle
	e.alpha = AlphaOpaque
	e.slideStart = now

	pos := e.cat.IndexOf(e.current.Path)
	if pos < 0 {
		// The entry vanished to a concurrent repair; fall back to the start.
		pos = 0
	}
	e.index = pos
}

// TogglePause flips the paused flag. Resuming restarts the auto-advance
// timer so the current slide gets a full interval.
func (e *Engine) TogglePause(now time.Time) bool {
	e.paused = !e.paused
	if !e.paused {
		e.slideStart = now
	}
	return e.paused
}

// Frame returns the slides and alphas to composite for the current tick.
func (e *Engine) Frame() Frame {
	if e.state != StateActive {
		return Frame{Current: e.current, CurrentAlpha: AlphaOpaque}
	}
	return Frame{
		Current:      e.current,
		CurrentAlpha: uint8(e.alpha),
		Next:         e.next,
		NextAlpha:    uint8(AlphaOpaque - e.alpha),
	}
}

// State returns the current transition state.
func (e *Engine) State() State { return e.state }

// Index returns the catalog position of the current slide.
func (e *Engine) Index() int { return e.index }

// Paused reports whether auto-advance is paused.
func (e *Engine) Paused() bool { return e.paused }

func (e *Engine) nextIndex(step int) int {
	n := e.cat.Len()
	if n == 0 {
		return 0
	}
	return ((e.index+step)%n + n) % n
}

// Ease is the sine ease-in-out curve: monotonically non-decreasing on [0,1]
// with Ease(0)=0 and Ease(1)=1.
func Ease(progress float64) float64 {
	return (1 - math.Cos(progress*math.Pi)) / 2
}
