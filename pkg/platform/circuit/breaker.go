// Package circuit provides a two-state circuit breaker.
//
// The breaker opens after a run of consecutive failures and closes again
// after a run of consecutive successes. It never blocks calls itself: callers
// keep trying the primary path and use Open to decide whether to serve a
// fallback.
package circuit

import "sync"

// Transition reports a state change caused by one observation.
type Transition int

const (
	Unchanged Transition = iota
	Opened
	Closed
)

type Breaker struct {
	mu        sync.Mutex
	name      string
	open      bool
	failures  int
	successes int

	openAfter  int
	closeAfter int
}

type Option func(*Breaker)

// WithFailureThreshold sets the consecutive failures that open the breaker.
// Default 5.
func WithFailureThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.openAfter = n
		}
	}
}

// WithSuccessThreshold sets the consecutive successes that close an open
// breaker. Default 3.
func WithSuccessThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.closeAfter = n
		}
	}
}

func New(name string, opts ...Option) *Breaker {
	b := &Breaker{name: name, openAfter: 5, closeAfter: 3}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Breaker) Name() string {
	return b.name
}

func (b *Breaker) Open() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open
}

// Observe records the outcome of one primary call. A nil err is a success.
func (b *Breaker) Observe(err error) Transition {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.failures++
		b.successes = 0
		if !b.open && b.failures >= b.openAfter {
			b.open = true
			return Opened
		}
		return Unchanged
	}

	b.failures = 0
	if !b.open {
		return Unchanged
	}
	b.successes++
	if b.successes >= b.closeAfter {
		b.open = false
		b.successes = 0
		return Closed
	}
	return Unchanged
}

func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.open = false
	b.failures = 0
	b.successes = 0
}
