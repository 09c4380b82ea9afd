package clock

import (
	"sync"
	"time"
)

// Manual is a Clock whose tickers fire only when Tick is called.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*manualTicker
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) NewTicker(d time.Duration) Ticker {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTicker{
		period: d,
		ch:     make(chan time.Time),
		done:   make(chan struct{}),
	}
	m.tickers = append(m.tickers, t)
	return t
}

// Tick advances the clock by one period of the first active ticker and
// delivers a tick to every active ticker. It blocks until each tick is
// received or the ticker is stopped.
func (m *Manual) Tick() {
	m.mu.Lock()
	active := m.activeLocked()
	if len(active) > 0 {
		m.now = m.now.Add(active[0].period)
	}
	now := m.now
	m.mu.Unlock()

	for _, t := range active {
		select {
		case t.ch <- now:
		case <-t.done:
		}
	}
}

// Active returns the number of tickers that have not been stopped.
func (m *Manual) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.activeLocked())
}

func (m *Manual) activeLocked() []*manualTicker {
	var out []*manualTicker
	for _, t := range m.tickers {
		if !t.stopped() {
			out = append(out, t)
		}
	}
	return out
}

type manualTicker struct {
	period time.Duration
	ch     chan time.Time
	once   sync.Once
	done   chan struct{}
}

func (t *manualTicker) C() <-chan time.Time { return t.ch }

func (t *manualTicker) Stop() {
	t.once.Do(func() { close(t.done) })
}

func (t *manualTicker) stopped() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}
