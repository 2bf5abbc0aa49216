package engine

import (
	"math"
	"testing"
	"time"
)

func TestValidateFixCleanPassesThrough(t *testing.T) {
	ts := time.Now()
	raw := RawFix{
		Latitude:           45.07,
		Longitude:          7.68,
		AltitudeM:          240,
		Timestamp:          ts,
		SpeedMps:           4.2,
		CourseDeg:          181.5,
		HorizontalAccuracy: 8,
		VerticalAccuracy:   12,
	}

	s, issues := ValidateFix(raw, DefaultLimits())
	if len(issues) != 0 {
		t.Fatalf("expected no repairs, got %v", issues)
	}
	if s.Latitude != 45.07 || s.Longitude != 7.68 || s.SpeedMps != 4.2 {
		t.Fatalf("fields changed unexpectedly: %+v", s)
	}
	if !s.Timestamp.Equal(ts) {
		t.Fatalf("timestamp must pass through unchanged")
	}
}

func TestValidateFixNaNLatitudeRepaired(t *testing.T) {
	s, issues := ValidateFix(RawFix{Latitude: math.NaN(), Longitude: 7.68}, DefaultLimits())
	if s.Latitude != 0 {
		t.Fatalf("expected NaN latitude to become 0, got %v", s.Latitude)
	}
	if len(issues) != 1 || issues[0].Field != "latitude" || issues[0].Kind != IssueNonFinite {
		t.Fatalf("expected one non-finite latitude issue, got %v", issues)
	}
}

func TestValidateFixClampsRanges(t *testing.T) {
	raw := RawFix{
		Latitude:           95,
		Longitude:          -200,
		AltitudeM:          20000,
		SpeedMps:           -0.4,
		HorizontalAccuracy: -3,
		VerticalAccuracy:   -1,
	}

	s, issues := ValidateFix(raw, DefaultLimits())
	if s.Latitude != 90 {
		t.Fatalf("latitude clamp: got %v", s.Latitude)
	}
	if s.Longitude != -180 {
		t.Fatalf("longitude clamp: got %v", s.Longitude)
	}
	if s.AltitudeM != 10000 {
		t.Fatalf("altitude clamp: got %v", s.AltitudeM)
	}
	if s.SpeedMps != 0 {
		t.Fatalf("negative speed must clamp to 0, got %v", s.SpeedMps)
	}
	if s.HorizontalAccuracy != 0 || s.VerticalAccuracy != 0 {
		t.Fatalf("accuracy clamp: %v / %v", s.HorizontalAccuracy, s.VerticalAccuracy)
	}
	if len(issues) != 6 {
		t.Fatalf("expected 6 repairs, got %d: %v", len(issues), issues)
	}
}

func TestValidateFixSpeedAboveMax(t *testing.T) {
	s, issues := ValidateFix(RawFix{SpeedMps: 200}, DefaultLimits())
	if s.SpeedMps != 138.89 {
		t.Fatalf("expected speed clamped to 138.89, got %v", s.SpeedMps)
	}
	if len(issues) != 1 {
		t.Fatalf("expected one repair, got %v", issues)
	}
}

func TestValidateFixCourse(t *testing.T) {
	if s, _ := ValidateFix(RawFix{CourseDeg: 360}, DefaultLimits()); s.CourseDeg != 0 {
		t.Fatalf("360 should wrap to 0, got %v", s.CourseDeg)
	}
	if s, _ := ValidateFix(RawFix{CourseDeg: 450}, DefaultLimits()); s.CourseDeg != 90 {
		t.Fatalf("450 should wrap to 90, got %v", s.CourseDeg)
	}
	if s, _ := ValidateFix(RawFix{CourseDeg: -10}, DefaultLimits()); s.CourseDeg != 0 {
		t.Fatalf("negative course should become 0, got %v", s.CourseDeg)
	}
	if s, _ := ValidateFix(RawFix{CourseDeg: math.Inf(1)}, DefaultLimits()); s.CourseDeg != 0 {
		t.Fatalf("non-finite course should become 0, got %v", s.CourseDeg)
	}
}

func TestValidateFixHighAccuracyNotRepaired(t *testing.T) {
	// A 200 m accuracy is a legal value; it is the admission filter's
	// job to reject it, not the validator's.
	s, issues := ValidateFix(RawFix{HorizontalAccuracy: 200}, DefaultLimits())
	if s.HorizontalAccuracy != 200 {
		t.Fatalf("accuracy must pass through numerically, got %v", s.HorizontalAccuracy)
	}
	if len(issues) != 0 {
		t.Fatalf("expected no repairs, got %v", issues)
	}
}
