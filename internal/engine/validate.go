package engine

import (
	"log"
	"math"
	"time"
)

// Limits bounds the fields of a raw fix. Values outside a range are
// clamped, non-finite values fall back to zero; a fix is never rejected
// at this stage so a single bad field cannot stall the pipeline.
type Limits struct {
	MaxSpeedMps  float64 // 138.89 m/s = 500 km/h
	MinAltitudeM float64
	MaxAltitudeM float64
}

func DefaultLimits() Limits {
	return Limits{
		MaxSpeedMps:  138.89,
		MinAltitudeM: -500,
		MaxAltitudeM: 10000,
	}
}

// Sample is a fix whose fields have all been forced into domain range.
type Sample struct {
	Latitude           float64
	Longitude          float64
	AltitudeM          float64
	Timestamp          time.Time
	SpeedMps           float64
	CourseDeg          float64
	HorizontalAccuracy float64
	VerticalAccuracy   float64
}

// IssueKind classifies a single repaired field.
type IssueKind uint8

const (
	IssueNonFinite IssueKind = iota
	IssueOutOfRange
)

func (k IssueKind) String() string {
	if k == IssueNonFinite {
		return "non_finite"
	}
	return "out_of_range"
}

// FieldIssue records one repair made while validating a fix.
type FieldIssue struct {
	Field string
	Kind  IssueKind
	Value float64
}

// ValidateFix sanitizes a raw fix into a Sample. Every field is checked
// independently; repairs are returned for diagnostics and logged, and
// the sample is always produced.
func ValidateFix(raw RawFix, lim Limits) (Sample, []FieldIssue) {
	var issues []FieldIssue

	repair := func(field string, v, lo, hi float64) float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			issues = append(issues, FieldIssue{Field: field, Kind: IssueNonFinite, Value: v})
			log.Printf("fix validation: %s non-finite, using 0.0", field)
			return 0
		}
		if v < lo || v > hi {
			issues = append(issues, FieldIssue{Field: field, Kind: IssueOutOfRange, Value: v})
			log.Printf("fix validation: %s %v out of range, clamping", field, v)
			return math.Max(lo, math.Min(hi, v))
		}
		return v
	}

	s := Sample{
		Latitude:           repair("latitude", raw.Latitude, -90, 90),
		Longitude:          repair("longitude", raw.Longitude, -180, 180),
		AltitudeM:          repair("altitude", raw.AltitudeM, lim.MinAltitudeM, lim.MaxAltitudeM),
		Timestamp:          raw.Timestamp,
		SpeedMps:           repair("speed", raw.SpeedMps, 0, lim.MaxSpeedMps),
		CourseDeg:          repairCourse(raw.CourseDeg, &issues),
		HorizontalAccuracy: repair("horizontal_accuracy", raw.HorizontalAccuracy, 0, math.MaxFloat64),
		VerticalAccuracy:   repair("vertical_accuracy", raw.VerticalAccuracy, 0, math.MaxFloat64),
	}
	return s, issues
}

// repairCourse clamps a heading into [0, 360). A reading of exactly 360
// wraps to 0.
func repairCourse(v float64, issues *[]FieldIssue) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		*issues = append(*issues, FieldIssue{Field: "course", Kind: IssueNonFinite, Value: v})
		log.Printf("fix validation: course non-finite, using 0.0")
		return 0
	}
	if v < 0 || v >= 360 {
		*issues = append(*issues, FieldIssue{Field: "course", Kind: IssueOutOfRange, Value: v})
		clamped := math.Mod(v, 360)
		if clamped < 0 {
			clamped = 0
		}
		return clamped
	}
	return v
}

// point converts a validated sample into a track point tagged with its
// owning session.
func (s Sample) point(sessionID string) TrackPoint {
	return TrackPoint{
		SessionID:          sessionID,
		Latitude:           s.Latitude,
		Longitude:          s.Longitude,
		AltitudeM:          s.AltitudeM,
		Timestamp:          s.Timestamp,
		SpeedMps:           s.SpeedMps,
		CourseDeg:          s.CourseDeg,
		HorizontalAccuracy: s.HorizontalAccuracy,
		VerticalAccuracy:   s.VerticalAccuracy,
	}
}
