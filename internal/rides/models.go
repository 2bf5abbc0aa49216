package rides

import (
	"time"

	"github.com/nikozzzzzz/rideTrack/internal/engine"
)

// Ride is a finished (or in-flight) session row as stored by the
// persistence collaborator.
type Ride struct {
	ID             string     `json:"id"`
	ActivityType   string     `json:"activity_type"`
	StartedAt      time.Time  `json:"started_at"`
	EndedAt        *time.Time `json:"ended_at,omitempty"`
	State          string     `json:"state"`
	PausedSec      float64    `json:"paused_sec"`
	DistanceM      float64    `json:"distance_m"`
	MaxSpeedMps    float64    `json:"max_speed_mps"`
	AvgSpeedMps    float64    `json:"average_speed_mps"`
	ElevationGainM float64    `json:"elevation_gain_m"`
	ElevationLossM float64    `json:"elevation_loss_m"`
	PointCount     int        `json:"point_count"`
}

func (r Ride) record() engine.Record {
	rec := engine.Record{
		ID:              r.ID,
		Activity:        engine.ActivityType(r.ActivityType),
		StartTime:       r.StartedAt,
		State:           r.State,
		PausedSec:       r.PausedSec,
		TotalDistanceM:  r.DistanceM,
		MaxSpeedMps:     r.MaxSpeedMps,
		AverageSpeedMps: r.AvgSpeedMps,
		ElevationGainM:  r.ElevationGainM,
		ElevationLossM:  r.ElevationLossM,
		PointCount:      r.PointCount,
	}
	if r.EndedAt != nil {
		rec.EndTime = *r.EndedAt
	}
	return rec
}
