package sequencer

import (
	"sort"
	"sync"
	"time"
)

// Clock schedules repeating callbacks.
type Clock interface {
	// Every calls fn once per interval until the returned Ticker is stopped.
	Every(interval time.Duration, fn func()) Ticker
}

// Ticker is a live repeating timer. Stop is synchronous and safe to call twice.
type Ticker interface {
	Stop()
}

// WallClock runs each ticker on its own goroutine but never calls fn there.
// Fired callbacks are posted to Fired() and must be run by the control goroutine.
type WallClock struct {
	fired chan func()
}

// NewWallClock creates a wall clock with a small buffer of pending beats
func NewWallClock() *WallClock {
	return &WallClock{fired: make(chan func(), 16)}
}

// Fired returns the channel of callbacks waiting to run on the control goroutine
func (c *WallClock) Fired() <-chan func() {
	return c.fired
}

func (c *WallClock) Every(interval time.Duration, fn func()) Ticker {
	t := &wallTicker{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	go t.run(fn, c.fired)
	return t
}

type wallTicker struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *wallTicker) run(fn func(), out chan<- func()) {
	for {
		select {
		case <-t.done:
			return
		case <-t.ticker.C:
			select {
			case <-t.done:
				return
			default:
			}
			select {
			case out <- fn:
			case <-t.done:
				return
			}
		}
	}
}

func (t *wallTicker) Stop() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}

// ManualClock is a deterministic Clock. Time only moves when Advance or Step
// is called, and callbacks run synchronously on the caller's goroutine.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	tickers []*manualTicker
}

type manualTicker struct {
	clock    *ManualClock
	interval time.Duration
	next     time.Duration
	seq      int
	fn       func()
	stopped  bool
}

// NewManualClock creates a manual clock at time zero
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

func (c *ManualClock) Every(interval time.Duration, fn func()) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &manualTicker{
		clock:    c,
		interval: interval,
		next:     c.now + interval,
		seq:      c.seq,
		fn:       fn,
	}
	c.tickers = append(c.tickers, t)
	return t
}

func (t *manualTicker) Stop() {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped {
		return
	}
	t.stopped = true
	live := t.clock.tickers[:0]
	for _, other := range t.clock.tickers {
		if other != t {
			live = append(live, other)
		}
	}
	t.clock.tickers = live
}

// Now returns the elapsed simulated time
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Active returns the number of tickers that have not been stopped
func (c *ManualClock) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tickers)
}

// Advance moves time forward by d, firing every deadline that falls inside
// the window in chronological order. Callbacks may start or stop tickers.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		t := c.earliest()
		if t == nil || t.next > target {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = t.next
		t.next += t.interval
		fn := t.fn
		c.mu.Unlock()

		fn()
	}
}

// Step advances time to the next pending deadline and fires it.
// Returns false when no ticker is live.
func (c *ManualClock) Step() bool {
	c.mu.Lock()
	t := c.earliest()
	if t == nil {
		c.mu.Unlock()
		return false
	}
	d := t.next - c.now
	c.mu.Unlock()

	c.Advance(d)
	return true
}

// earliest returns the live ticker with the soonest deadline; ties fire in
// creation order. Caller holds mu.
func (c *ManualClock) earliest() *manualTicker {
	if len(c.tickers) == 0 {
		return nil
	}
	sorted := append([]*manualTicker(nil), c.tickers...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].next == sorted[j].next {
			return sorted[i].seq < sorted[j].seq
		}
		return sorted[i].next < sorted[j].next
	})
	return sorted[0]
}
