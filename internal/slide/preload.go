package slide

import (
	"sync"
	"time"
)

// DefaultConsumeTimeout bounds how long Consume waits for an in-flight
// preload before falling back to a synchronous load.
const DefaultConsumeTimeout = 5 * time.Second

// request is one unit of preload work. The worker goroutine is the single
// writer of slide/err (before done closes); the main loop is the single
// reader (after done closes).
type request struct {
	index int
	done  chan struct{}
	slide *Slide
	err   error
}

// Preloader runs the Loader asynchronously for one anticipated catalog index
// at a time. At most one request is live; issuing a new one supersedes the
// previous, whose result is released on arrival instead of delivered.
type Preloader struct {
	loader *Loader

	mu      sync.Mutex
	pending *request
}

// NewPreloader creates a Preloader over the given loader.
func NewPreloader(loader *Loader) *Preloader {
	return &Preloader{loader: loader}
}

// Request launches an asynchronous load for the given catalog index,
// superseding any outstanding request.
func (p *Preloader) Request(index int) {
	req := &request{index: index, done: make(chan struct{})}
	p.mu.Lock()
	p.pending = req
	p.mu.Unlock()
	go p.run(req)
}

func (p *Preloader) run(req *request) {
	s, _, err := p.loader.Load(req.index)

	p.mu.Lock()
	stale := p.pending != req
	if !stale {
		req.slide, req.err = s, err
	}
	p.mu.Unlock()

	if stale && s != nil {
		s.Release()
	}
	close(req.done)
}

// Expecting returns the index of the outstanding request, if any.
func (p *Preloader) Expecting() (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pending == nil {
		return 0, false
	}
	return p.pending.index, true
}

// Consume returns the slide for expected. If the outstanding request matches,
// it waits up to timeout for delivery; on mismatch, timeout, or preload
// failure it discards the request and loads synchronously. Mismatch is
// detected immediately, without waiting on the in-flight work.
func (p *Preloader) Consume(expected int, timeout time.Duration) (*Slide, error) {
	if timeout <= 0 {
		timeout = DefaultConsumeTimeout
	}

	p.mu.Lock()
	req := p.pending
	if req == nil || req.index != expected {
		// Mark any mismatched request stale so its result is released
		// on arrival, then load what was actually asked for.
		p.pending = nil
		p.mu.Unlock()
		s, _, err := p.loader.Load(expected)
		return s, err
	}
	p.mu.Unlock()

	select {
	case <-req.done:
		p.mu.Lock()
		if p.pending == req {
			p.pending = nil
		}
		p.mu.Unlock()
		if req.err != nil {
			s, _, err := p.loader.Load(expected)
			return s, err
		}
		return req.slide, nil

	case <-time.After(timeout):
		// The worker is not interrupted; a late result is released on
		// arrival because the request is no longer pending.
		p.mu.Lock()
		if p.pending == req {
			p.pending = nil
		}
		p.mu.Unlock()
		// If delivery raced the timeout, release the now-unwanted result.
		select {
		case <-req.done:
			if req.slide != nil {
				req.slide.Release()
			}
		default:
		}
		s, _, err := p.loader.Load(expected)
		return s, err
	}
}
