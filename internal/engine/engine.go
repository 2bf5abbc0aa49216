package engine

import (
	"context"
	"log"
	"sync"
	"time"
)

// PointStore is the persistence collaborator. Both calls are
// best-effort: failures are logged and in-memory state stays
// authoritative.
type PointStore interface {
	InsertPoint(ctx context.Context, p TrackPoint) error
	SaveSession(ctx context.Context, rec Record) error
}

// Config collects every engine threshold in one place.
type Config struct {
	Limits            Limits
	Admission         AdmissionConfig
	MaxPoints         int
	TelemetryInterval time.Duration
	FixBuffer         int
}

func DefaultConfig() Config {
	return Config{
		Limits:            DefaultLimits(),
		Admission:         DefaultAdmissionConfig(),
		MaxPoints:         50000,
		TelemetryInterval: time.Second,
		FixBuffer:         64,
	}
}

// IngestStatus is the top-level outcome of one ingestion call.
type IngestStatus uint8

const (
	IngestAdmitted IngestStatus = iota
	IngestFiltered
	IngestInactive
	IngestCapacity
)

func (s IngestStatus) String() string {
	switch s {
	case IngestAdmitted:
		return "admitted"
	case IngestFiltered:
		return "filtered"
	case IngestInactive:
		return "inactive"
	case IngestCapacity:
		return "capacity"
	}
	return "unknown"
}

// IngestResult reports what happened to one fix. Filtered and inactive
// outcomes are expected high-frequency conditions, not errors.
type IngestResult struct {
	Status  IngestStatus `json:"status"`
	Reason  RejectReason `json:"-"`
	Repairs []FieldIssue `json:"-"`
}

// Counters are cumulative per-session diagnostic tallies.
type Counters struct {
	Repaired         int `json:"repaired_fields"`
	RejectedAccuracy int `json:"rejected_accuracy"`
	RejectedStale    int `json:"rejected_stale"`
	RejectedTooSoon  int `json:"rejected_too_soon"`
	RejectedTooClose int `json:"rejected_too_close"`
	DroppedInactive  int `json:"dropped_inactive"`
	DroppedCapacity  int `json:"dropped_capacity"`
}

// Signal is a sensor-source lifecycle notification. The engine surfaces
// these for diagnostics only.
type Signal uint8

const (
	SignalPermissionGranted Signal = iota
	SignalPermissionDenied
	SignalSystemPaused
	SignalSystemResumed
)

func (s Signal) String() string {
	switch s {
	case SignalPermissionGranted:
		return "permission_granted"
	case SignalPermissionDenied:
		return "permission_denied"
	case SignalSystemPaused:
		return "system_paused"
	case SignalSystemResumed:
		return "system_resumed"
	}
	return "unknown"
}

// Engine owns at most one session at a time and serializes every
// mutation to it: validate, gate, admit, aggregate and publish happen
// as one atomic step per fix under the engine lock. Lifecycle calls
// take the same lock, so a point can never be admitted into a session
// that is concurrently being stopped.
type Engine struct {
	mu       sync.Mutex
	cfg      Config
	store    PointStore
	throttle *Throttle

	session    *Session
	lastAdmit  time.Time
	current    Sample
	hasCurrent bool
	counters   Counters

	fixes chan RawFix
	nowFn func() time.Time
}

// New builds an engine with injected collaborators. Both store and
// publisher may be nil; the engine then runs purely in memory.
func New(cfg Config, store PointStore, pub Publisher) *Engine {
	if cfg.FixBuffer <= 0 {
		cfg.FixBuffer = 64
	}
	return &Engine{
		cfg:      cfg,
		store:    store,
		throttle: NewThrottle(pub, cfg.TelemetryInterval),
		fixes:    make(chan RawFix, cfg.FixBuffer),
		nowFn:    time.Now,
	}
}

// Fixes is the sensor-source handoff: a bounded channel consumed by
// Run. Senders should drop on a full buffer rather than block.
func (e *Engine) Fixes() chan<- RawFix {
	return e.fixes
}

// Run consumes fixes until the context is cancelled. Intended to run on
// its own goroutine; direct Ingest calls remain safe concurrently.
func (e *Engine) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case fix := <-e.fixes:
			e.Ingest(fix)
		}
	}
}

// Start opens a new session. Fails with ErrSessionExists while a
// session is active or paused.
func (e *Engine) Start(activity ActivityType) (Snapshot, error) {
	if !activity.Valid() {
		return Snapshot{}, ErrActivityType
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != nil && e.session.State != StateStopped {
		return Snapshot{}, ErrSessionExists
	}

	now := e.nowFn()
	e.session = newSession(activity, now)
	e.lastAdmit = time.Time{}
	e.counters = Counters{}

	e.persistSession()
	snap := e.snapshotLocked(now)
	e.throttle.Force(snap)
	log.Printf("session %s started: %s", e.session.ID, activity)
	return snap, nil
}

func (e *Engine) Pause() (Snapshot, error) {
	return e.transition((*Session).pause, "paused")
}

func (e *Engine) Resume() (Snapshot, error) {
	return e.transition((*Session).resume, "resumed")
}

// Stop finalizes the session. The session stays readable afterwards but
// refuses all further ingestion and transitions.
func (e *Engine) Stop() (Snapshot, error) {
	return e.transition((*Session).stop, "stopped")
}

func (e *Engine) transition(apply func(*Session, time.Time) error, verb string) (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return Snapshot{}, ErrNoSession
	}
	now := e.nowFn()
	if err := apply(e.session, now); err != nil {
		return Snapshot{}, err
	}

	e.persistSession()
	snap := e.snapshotLocked(now)
	e.throttle.Force(snap)
	log.Printf("session %s %s", e.session.ID, verb)
	return snap, nil
}

// Ingest runs one fix through the full pipeline. Never returns an
// error: every outcome, including "session not active", is an expected
// condition reported in the result.
func (e *Engine) Ingest(fix RawFix) IngestResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.nowFn()
	sample, issues := ValidateFix(fix, e.cfg.Limits)
	e.counters.Repaired += len(issues)

	// Positional awareness survives rejection: the latest validated
	// sample is always the "where is the user now" answer, whether or
	// not it becomes a track point.
	e.current = sample
	e.hasCurrent = true

	if e.session == nil || e.session.State != StateActive {
		e.counters.DroppedInactive++
		return IngestResult{Status: IngestInactive, Repairs: issues}
	}

	if len(e.session.Points) >= e.cfg.MaxPoints {
		e.counters.DroppedCapacity++
		return IngestResult{Status: IngestCapacity, Repairs: issues}
	}

	prev := e.session.lastPoint()
	if reason := ShouldAdmit(sample, prev, e.lastAdmit, now, e.cfg.Admission); reason != Admitted {
		switch reason {
		case RejectAccuracy:
			e.counters.RejectedAccuracy++
		case RejectStale:
			e.counters.RejectedStale++
		case RejectTooSoon:
			e.counters.RejectedTooSoon++
		case RejectTooClose:
			e.counters.RejectedTooClose++
		}
		return IngestResult{Status: IngestFiltered, Reason: reason, Repairs: issues}
	}

	p := sample.point(e.session.ID)
	e.session.Metrics.Apply(p, prev, e.cfg.Limits.MaxSpeedMps)
	e.session.Points = append(e.session.Points, p)
	e.lastAdmit = now

	e.persistPoint(p)
	e.throttle.Publish(e.snapshotLocked(now))
	return IngestResult{Status: IngestAdmitted, Repairs: issues}
}

// Signal records a sensor lifecycle notification. Logged only; the
// engine does not act on these.
func (e *Engine) Signal(sig Signal) {
	log.Printf("sensor signal: %s", sig)
}

// Snapshot returns the current metrics, or false when no session
// exists.
func (e *Engine) Snapshot() (Snapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return Snapshot{}, false
	}
	return e.snapshotLocked(e.nowFn()), true
}

// Summary returns the persistence-shaped view of the current session
// plus its discardable flag.
func (e *Engine) Summary() (Record, bool, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return Record{}, false, false
	}
	now := e.nowFn()
	return e.session.record(), e.session.Discardable(now), true
}

// Points returns a copy of the admitted point sequence.
func (e *Engine) Points() []TrackPoint {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return nil
	}
	out := make([]TrackPoint, len(e.session.Points))
	copy(out, e.session.Points)
	return out
}

func (e *Engine) Counters() Counters {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.counters
}

func (e *Engine) snapshotLocked(now time.Time) Snapshot {
	s := e.session
	duration := s.Duration(now)
	snap := Snapshot{
		SessionID:       s.ID,
		Activity:        s.Activity,
		State:           s.State.String(),
		StartTime:       s.StartTime,
		DistanceKm:      s.Metrics.TotalDistanceM / 1000,
		DurationSec:     duration.Seconds(),
		AverageSpeedKmh: KmhFromMps(s.Metrics.AverageSpeedMps()),
		MaxSpeedKmh:     KmhFromMps(s.Metrics.MaxSpeedMps),
		ElevationGainM:  s.Metrics.ElevationGainM,
		ElevationLossM:  s.Metrics.ElevationLossM,
		PaceMinPerKm:    PaceMinPerKm(s.Metrics.TotalDistanceM, duration),
		PointCount:      len(s.Points),
	}
	if e.hasCurrent {
		snap.CurrentSpeedKmh = KmhFromMps(e.current.SpeedMps)
		snap.CurrentLatitude = e.current.Latitude
		snap.CurrentLongitude = e.current.Longitude
	}
	return snap
}

const persistTimeout = 2 * time.Second

func (e *Engine) persistPoint(p TrackPoint) {
	if e.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := e.store.InsertPoint(ctx, p); err != nil {
		log.Printf("persist point failed: %v", err)
	}
}

func (e *Engine) persistSession() {
	if e.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := e.store.SaveSession(ctx, e.session.record()); err != nil {
		log.Printf("persist session failed: %v", err)
	}
}
