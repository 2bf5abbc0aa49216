package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/nikozzzzzz/rideTrack/internal/shared/geo"
)

// Metrics is the running aggregate of one session. Every field is an SI
// unit (meters, m/s); km/h, pace and formatted strings are derived on
// read, never stored. TotalDistanceM, ElevationGainM and ElevationLossM
// only ever grow while a session is active.
type Metrics struct {
	TotalDistanceM float64 `json:"total_distance_m"`
	MaxSpeedMps    float64 `json:"max_speed_mps"`
	SpeedSumMps    float64 `json:"-"`
	SpeedCount     int     `json:"-"`
	ElevationGainM float64 `json:"elevation_gain_m"`
	ElevationLossM float64 `json:"elevation_loss_m"`
}

// Apply folds one admitted point into the aggregate. Strictly O(1):
// only the delta against the previous point is computed, the point
// history is never rescanned.
func (m *Metrics) Apply(p TrackPoint, prev *TrackPoint, maxSpeedMps float64) {
	if prev != nil {
		d := geo.HaversineM(prev.Latitude, prev.Longitude, p.Latitude, p.Longitude)
		// A degenerate coordinate pair that survived validation must not
		// corrupt the running total.
		if d >= 0 && !math.IsNaN(d) && !math.IsInf(d, 0) {
			m.TotalDistanceM += d
		}

		diff := p.AltitudeM - prev.AltitudeM
		if !math.IsNaN(diff) && !math.IsInf(diff, 0) {
			if diff > 0 {
				m.ElevationGainM += diff
			} else {
				m.ElevationLossM += math.Abs(diff)
			}
		}
	}

	if p.SpeedMps >= 0 && p.SpeedMps <= maxSpeedMps && !math.IsNaN(p.SpeedMps) && !math.IsInf(p.SpeedMps, 0) {
		m.MaxSpeedMps = math.Max(m.MaxSpeedMps, p.SpeedMps)
		m.SpeedSumMps += p.SpeedMps
		m.SpeedCount++
	}
}

// AverageSpeedMps is the mean of all valid per-point speeds, 0 when no
// valid speed has been seen.
func (m Metrics) AverageSpeedMps() float64 {
	if m.SpeedCount == 0 {
		return 0
	}
	avg := m.SpeedSumMps / float64(m.SpeedCount)
	if math.IsNaN(avg) || math.IsInf(avg, 0) || avg < 0 {
		return 0
	}
	return avg
}

// PaceMinPerKm derives pace from distance and moving duration. Returns
// 0 as the "no pace" sentinel whenever either input is degenerate.
func PaceMinPerKm(distanceM float64, duration time.Duration) float64 {
	if distanceM <= 0 || duration <= 0 {
		return 0
	}
	pace := (duration.Minutes()) / (distanceM / 1000)
	if math.IsNaN(pace) || math.IsInf(pace, 0) || pace < 0 {
		return 0
	}
	return pace
}

// KmhFromMps converts a stored m/s value for display.
func KmhFromMps(mps float64) float64 {
	return mps * 3.6
}

func FormatDistance(distanceM float64) string {
	if distanceM < 0 || math.IsNaN(distanceM) || math.IsInf(distanceM, 0) {
		return "0.00 km"
	}
	return fmt.Sprintf("%.2f km", distanceM/1000)
}

func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	hours := total / 3600
	minutes := total % 3600 / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

func FormatSpeed(mps float64) string {
	if mps < 0 || math.IsNaN(mps) || math.IsInf(mps, 0) {
		return "0.0 km/h"
	}
	return fmt.Sprintf("%.1f km/h", KmhFromMps(mps))
}

func FormatPace(minPerKm float64) string {
	if minPerKm <= 0 || math.IsNaN(minPerKm) || math.IsInf(minPerKm, 0) {
		return "--:--"
	}
	minutes := int(minPerKm)
	seconds := int((minPerKm - float64(minutes)) * 60)
	return fmt.Sprintf("%d:%02d /km", minutes, seconds)
}

// Snapshot is a read-only copy of the current session state for an
// external display. Distances and speeds are converted to display units
// here; the engine itself stores SI only.
type Snapshot struct {
	SessionID       string       `json:"session_id"`
	Activity        ActivityType `json:"activity_type"`
	State           string       `json:"state"`
	StartTime       time.Time    `json:"start_time"`
	DistanceKm      float64      `json:"distance_km"`
	DurationSec     float64      `json:"duration_sec"`
	AverageSpeedKmh float64      `json:"average_speed_kmh"`
	CurrentSpeedKmh float64      `json:"current_speed_kmh"`
	MaxSpeedKmh     float64      `json:"max_speed_kmh"`
	ElevationGainM  float64      `json:"elevation_gain_m"`
	ElevationLossM  float64      `json:"elevation_loss_m"`
	PaceMinPerKm    float64      `json:"pace_min_per_km"`
	PointCount      int          `json:"point_count"`
	CurrentLatitude float64      `json:"current_latitude"`
	CurrentLongitude float64     `json:"current_longitude"`
}
