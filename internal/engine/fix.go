package engine

import "time"

// ActivityType identifies the kind of activity a session records.
type ActivityType string

const (
	ActivityRunning      ActivityType = "running"
	ActivityCycling      ActivityType = "cycling"
	ActivityMotorcycling ActivityType = "motorcycling"
	ActivitySkiing       ActivityType = "skiing"
	ActivityWalking      ActivityType = "walking"
)

var activityNames = map[ActivityType]string{
	ActivityRunning:      "Running",
	ActivityCycling:      "Cycling",
	ActivityMotorcycling: "Motorcycling",
	ActivitySkiing:       "Skiing",
	ActivityWalking:      "Walking",
}

func (a ActivityType) Valid() bool {
	_, ok := activityNames[a]
	return ok
}

func (a ActivityType) DisplayName() string {
	if name, ok := activityNames[a]; ok {
		return name
	}
	return string(a)
}

// RawFix is one reading from a positioning sensor, exactly as delivered.
// Nothing about it is trusted until it has passed through ValidateFix.
type RawFix struct {
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	AltitudeM          float64   `json:"altitude_m"`
	Timestamp          time.Time `json:"timestamp"`
	SpeedMps           float64   `json:"speed_mps"`
	CourseDeg          float64   `json:"course_deg"`
	HorizontalAccuracy float64   `json:"horizontal_accuracy_m"`
	VerticalAccuracy   float64   `json:"vertical_accuracy_m"`
}

// TrackPoint is an admitted observation belonging to one session.
// Points are append-only: once admitted they are never mutated or
// reordered, and their timestamps are non-decreasing within a session.
type TrackPoint struct {
	SessionID          string    `json:"session_id"`
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	AltitudeM          float64   `json:"altitude_m"`
	Timestamp          time.Time `json:"timestamp"`
	SpeedMps           float64   `json:"speed_mps"`
	CourseDeg          float64   `json:"course_deg"`
	HorizontalAccuracy float64   `json:"horizontal_accuracy_m"`
	VerticalAccuracy   float64   `json:"vertical_accuracy_m"`
}
