package engine

import (
	"log"
	"sync"
	"time"
)

// Publisher receives metric snapshots for an external display. The
// engine treats it as advisory: a failing or slow publisher never gates
// ingestion.
type Publisher interface {
	Publish(Snapshot) error
}

// Throttle wraps a Publisher with a minimum interval between emissions.
// Snapshots arriving inside the interval are dropped, not queued, and
// delivery happens off the caller's goroutine.
type Throttle struct {
	mu    sync.Mutex
	min   time.Duration
	last  time.Time
	sink  Publisher
	nowFn func() time.Time
}

func NewThrottle(sink Publisher, min time.Duration) *Throttle {
	return &Throttle{min: min, sink: sink, nowFn: time.Now}
}

// Publish emits the snapshot unless one was emitted within the minimum
// interval. Reports whether the snapshot was dispatched.
func (t *Throttle) Publish(s Snapshot) bool {
	if t == nil || t.sink == nil {
		return false
	}
	t.mu.Lock()
	now := t.nowFn()
	if !t.last.IsZero() && now.Sub(t.last) < t.min {
		t.mu.Unlock()
		return false
	}
	t.last = now
	t.mu.Unlock()

	go t.dispatch(s)
	return true
}

// Force emits regardless of the interval. Used for lifecycle
// transitions so the display always sees the final state.
func (t *Throttle) Force(s Snapshot) {
	if t == nil || t.sink == nil {
		return
	}
	t.mu.Lock()
	t.last = t.nowFn()
	t.mu.Unlock()

	go t.dispatch(s)
}

func (t *Throttle) dispatch(s Snapshot) {
	if err := t.sink.Publish(s); err != nil {
		log.Printf("telemetry publish failed: %v", err)
	}
}
