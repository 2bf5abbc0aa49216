package engine

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSessionExists = errors.New("a session is already in progress")
	ErrNoSession     = errors.New("no session in progress")
	ErrNotActive     = errors.New("session not active")
	ErrNotPaused     = errors.New("session not paused")
	ErrStopped       = errors.New("session already stopped")
	ErrActivityType  = errors.New("unknown activity type")
)

// State is the lifecycle state of a session. Idle is represented by the
// engine holding no session at all.
type State uint8

const (
	StateActive State = iota
	StatePaused
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

// Minimum duration and distance below which a stopped session is
// flagged as discardable.
const (
	minSaveDuration  = 10 * time.Second
	minSaveDistanceM = 10.0
)

// Session is the aggregate root: identity, lifecycle, the append-only
// point sequence and the running metrics. It is mutated only by the
// engine, under the engine's lock, and becomes read-only once stopped.
type Session struct {
	ID             string
	Activity       ActivityType
	StartTime      time.Time
	EndTime        time.Time
	State          State
	PausedDuration time.Duration
	Points         []TrackPoint
	Metrics        Metrics

	pauseStart time.Time
}

func newSession(activity ActivityType, now time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Activity:  activity,
		StartTime: now,
		State:     StateActive,
	}
}

func (s *Session) pause(now time.Time) error {
	if s.State == StateStopped {
		return ErrStopped
	}
	if s.State != StateActive {
		return ErrNotActive
	}
	s.State = StatePaused
	s.pauseStart = now
	return nil
}

// resume closes the open pause span, folding it into PausedDuration.
// Spans are accumulated at resume (or stop) time, never retroactively.
func (s *Session) resume(now time.Time) error {
	if s.State == StateStopped {
		return ErrStopped
	}
	if s.State != StatePaused {
		return ErrNotPaused
	}
	if span := now.Sub(s.pauseStart); span > 0 {
		s.PausedDuration += span
	}
	s.State = StateActive
	s.pauseStart = time.Time{}
	return nil
}

func (s *Session) stop(now time.Time) error {
	if s.State == StateStopped {
		return ErrStopped
	}
	if s.State == StatePaused {
		if span := now.Sub(s.pauseStart); span > 0 {
			s.PausedDuration += span
		}
		s.pauseStart = time.Time{}
	}
	s.State = StateStopped
	s.EndTime = now
	return nil
}

// Duration is wall time since start minus accumulated paused time,
// clamped to zero so clock anomalies can never surface as negative.
func (s *Session) Duration(now time.Time) time.Duration {
	end := s.EndTime
	if end.IsZero() {
		end = now
	}
	paused := s.PausedDuration
	if s.State == StatePaused && !s.pauseStart.IsZero() {
		if span := end.Sub(s.pauseStart); span > 0 {
			paused += span
		}
	}
	d := end.Sub(s.StartTime) - paused
	if d < 0 {
		return 0
	}
	return d
}

// Discardable reports whether the session is too short to be worth
// keeping. The decision stays with the caller; this is advisory.
func (s *Session) Discardable(now time.Time) bool {
	return s.Duration(now) < minSaveDuration || s.Metrics.TotalDistanceM < minSaveDistanceM
}

func (s *Session) lastPoint() *TrackPoint {
	if len(s.Points) == 0 {
		return nil
	}
	return &s.Points[len(s.Points)-1]
}

// Record is the flat, persistence-facing shape of a session row.
type Record struct {
	ID              string
	Activity        ActivityType
	StartTime       time.Time
	EndTime         time.Time
	State           string
	PausedSec       float64
	TotalDistanceM  float64
	MaxSpeedMps     float64
	AverageSpeedMps float64
	ElevationGainM  float64
	ElevationLossM  float64
	PointCount      int
}

func (s *Session) record() Record {
	return Record{
		ID:              s.ID,
		Activity:        s.Activity,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		State:           s.State.String(),
		PausedSec:       s.PausedDuration.Seconds(),
		TotalDistanceM:  s.Metrics.TotalDistanceM,
		MaxSpeedMps:     s.Metrics.MaxSpeedMps,
		AverageSpeedMps: s.Metrics.AverageSpeedMps(),
		ElevationGainM:  s.Metrics.ElevationGainM,
		ElevationLossM:  s.Metrics.ElevationLossM,
		PointCount:      len(s.Points),
	}
}
