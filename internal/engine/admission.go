package engine

import (
	"time"

	"github.com/nikozzzzzz/rideTrack/internal/shared/geo"
)

// AdmissionConfig holds the thresholds a validated sample must clear
// before it becomes a track point.
type AdmissionConfig struct {
	MaxAccuracyM float64       // reject fixes less precise than this
	MaxFixAge    time.Duration // reject fixes older (or more future-dated) than this
	MinInterval  time.Duration // debounce: minimum time between admitted points
	MinDistanceM float64       // debounce: minimum movement between admitted points
}

func DefaultAdmissionConfig() AdmissionConfig {
	return AdmissionConfig{
		MaxAccuracyM: 50,
		MaxFixAge:    10 * time.Second,
		MinInterval:  2 * time.Second,
		MinDistanceM: 5,
	}
}

// RejectReason reports which admission gate a sample failed, if any.
type RejectReason uint8

const (
	Admitted RejectReason = iota
	RejectAccuracy
	RejectStale
	RejectTooSoon
	RejectTooClose
)

func (r RejectReason) String() string {
	switch r {
	case Admitted:
		return "admitted"
	case RejectAccuracy:
		return "accuracy_too_low"
	case RejectStale:
		return "stale_timestamp"
	case RejectTooSoon:
		return "too_soon"
	case RejectTooClose:
		return "too_close"
	}
	return "unknown"
}

// ShouldAdmit decides whether a validated sample becomes a track point.
// Gates run in a fixed order and the first failure wins, so a given
// sample against a given prior state always yields the same reason.
// All state is passed in; there is no hidden clock.
func ShouldAdmit(s Sample, prev *TrackPoint, lastAdmit, now time.Time, cfg AdmissionConfig) RejectReason {
	if s.HorizontalAccuracy > cfg.MaxAccuracyM {
		return RejectAccuracy
	}

	age := now.Sub(s.Timestamp)
	if age > cfg.MaxFixAge || age < -cfg.MaxFixAge {
		return RejectStale
	}
	// Out-of-order delivery: a point may never precede its predecessor.
	if prev != nil && s.Timestamp.Before(prev.Timestamp) {
		return RejectStale
	}

	if !lastAdmit.IsZero() && now.Sub(lastAdmit) < cfg.MinInterval {
		return RejectTooSoon
	}

	if prev != nil {
		d := geo.HaversineM(prev.Latitude, prev.Longitude, s.Latitude, s.Longitude)
		if d < cfg.MinDistanceM {
			return RejectTooClose
		}
	}

	return Admitted
}
