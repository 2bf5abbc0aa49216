package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/nikozzzzzz/rideTrack/internal/engine"
)

// WriteCSV serializes a finalized session: a summary block followed by
// one row per track point. Pure transform of immutable data; the input
// is never modified.
func WriteCSV(w io.Writer, rec engine.Record, points []engine.TrackPoint) error {
	cw := csv.NewWriter(w)

	duration := durationSec(rec)
	pace := engine.PaceMinPerKm(rec.TotalDistanceM, time.Duration(duration*float64(time.Second)))

	summary := [][]string{
		{"Session ID", rec.ID},
		{"Activity", string(rec.Activity)},
		{"Distance (m)", formatFloat(rec.TotalDistanceM)},
		{"Duration (s)", formatFloat(duration)},
		{"Average Speed (m/s)", formatFloat(rec.AverageSpeedMps)},
		{"Max Speed (m/s)", formatFloat(rec.MaxSpeedMps)},
		{"Elevation Gain (m)", formatFloat(rec.ElevationGainM)},
		{"Elevation Loss (m)", formatFloat(rec.ElevationLossM)},
		{"Average Pace (min/km)", formatFloat(pace)},
		{"Data Points", strconv.Itoa(len(points))},
	}
	if err := cw.WriteAll(summary); err != nil {
		return err
	}

	header := []string{"Timestamp", "Latitude", "Longitude", "Altitude", "Speed", "Course", "HorizontalAccuracy", "VerticalAccuracy"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, p := range points {
		row := []string{
			p.Timestamp.UTC().Format(time.RFC3339),
			formatFloat(p.Latitude),
			formatFloat(p.Longitude),
			formatFloat(p.AltitudeM),
			formatFloat(p.SpeedMps),
			formatFloat(p.CourseDeg),
			formatFloat(p.HorizontalAccuracy),
			formatFloat(p.VerticalAccuracy),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Filename is the suggested download name for an exported session.
func Filename(sessionID string) string {
	return "ride-" + sessionID + ".csv"
}

func durationSec(rec engine.Record) float64 {
	if rec.EndTime.IsZero() || rec.EndTime.Before(rec.StartTime) {
		return 0
	}
	d := rec.EndTime.Sub(rec.StartTime).Seconds() - rec.PausedSec
	if d < 0 {
		return 0
	}
	return d
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
