package ride

import (
	"time"

	"github.com/nikozzzzzz/rideTrack/internal/engine"
)

type StartRequest struct {
	ActivityType string `json:"activity_type"`
}

type FixRequest struct {
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	AltitudeM          float64   `json:"altitude_m"`
	Timestamp          time.Time `json:"timestamp"`
	SpeedMps           float64   `json:"speed_mps"`
	CourseDeg          float64   `json:"course_deg"`
	HorizontalAccuracy float64   `json:"horizontal_accuracy_m"`
	VerticalAccuracy   float64   `json:"vertical_accuracy_m"`
}

func (r FixRequest) rawFix() engine.RawFix {
	return engine.RawFix{
		Latitude:           r.Latitude,
		Longitude:          r.Longitude,
		AltitudeM:          r.AltitudeM,
		Timestamp:          r.Timestamp,
		SpeedMps:           r.SpeedMps,
		CourseDeg:          r.CourseDeg,
		HorizontalAccuracy: r.HorizontalAccuracy,
		VerticalAccuracy:   r.VerticalAccuracy,
	}
}

type IngestResponse struct {
	Status   string `json:"status"`
	Reason   string `json:"reason,omitempty"`
	Repaired int    `json:"repaired_fields,omitempty"`
}

type SummaryResponse struct {
	SessionID       string  `json:"session_id"`
	ActivityType    string  `json:"activity_type"`
	State           string  `json:"state"`
	StartedAt       string  `json:"started_at"`
	EndedAt         string  `json:"ended_at,omitempty"`
	PausedSec       float64 `json:"paused_sec"`
	DistanceM       float64 `json:"distance_m"`
	MaxSpeedMps     float64 `json:"max_speed_mps"`
	AverageSpeedMps float64 `json:"average_speed_mps"`
	ElevationGainM  float64 `json:"elevation_gain_m"`
	ElevationLossM  float64 `json:"elevation_loss_m"`
	PointCount      int     `json:"point_count"`
	Discardable     bool    `json:"discardable"`
}

func summaryResponse(rec engine.Record, discardable bool) SummaryResponse {
	resp := SummaryResponse{
		SessionID:       rec.ID,
		ActivityType:    string(rec.Activity),
		State:           rec.State,
		StartedAt:       rec.StartTime.Format(time.RFC3339),
		PausedSec:       rec.PausedSec,
		DistanceM:       rec.TotalDistanceM,
		MaxSpeedMps:     rec.MaxSpeedMps,
		AverageSpeedMps: rec.AverageSpeedMps,
		ElevationGainM:  rec.ElevationGainM,
		ElevationLossM:  rec.ElevationLossM,
		PointCount:      rec.PointCount,
		Discardable:     discardable,
	}
	if !rec.EndTime.IsZero() {
		resp.EndedAt = rec.EndTime.Format(time.RFC3339)
	}
	return resp
}
