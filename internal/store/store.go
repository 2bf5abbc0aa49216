package store

import (
	"context"
	"time"

	"github.com/nikozzzzzz/rideTrack/internal/db"
	"github.com/nikozzzzzz/rideTrack/internal/engine"
)

// Service is the persistence collaborator: best-effort durability for
// admitted points and session rows. The engine never rolls back
// in-memory state on a failure here.
type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) InsertPoint(ctx context.Context, p engine.TrackPoint) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO ride_points (session_id, location, altitude_m, recorded_at, speed_mps, course_deg, h_accuracy_m, v_accuracy_m)
		VALUES ($1, ST_SetSRID(ST_MakePoint($2,$3), 4326)::geography, $4, $5, $6, $7, $8, $9)
	`, p.SessionID, p.Longitude, p.Latitude, p.AltitudeM, p.Timestamp, p.SpeedMps, p.CourseDeg, p.HorizontalAccuracy, p.VerticalAccuracy)
	return err
}

func (s *Service) SaveSession(ctx context.Context, rec engine.Record) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO ride_sessions (id, activity_type, started_at, ended_at, state, paused_sec, distance_m, max_speed_mps, avg_speed_mps, elevation_gain_m, elevation_loss_m, point_count)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (id) DO UPDATE SET
			ended_at = EXCLUDED.ended_at,
			state = EXCLUDED.state,
			paused_sec = EXCLUDED.paused_sec,
			distance_m = EXCLUDED.distance_m,
			max_speed_mps = EXCLUDED.max_speed_mps,
			avg_speed_mps = EXCLUDED.avg_speed_mps,
			elevation_gain_m = EXCLUDED.elevation_gain_m,
			elevation_loss_m = EXCLUDED.elevation_loss_m,
			point_count = EXCLUDED.point_count
	`, rec.ID, string(rec.Activity), rec.StartTime, timePtr(rec.EndTime), rec.State, rec.PausedSec,
		rec.TotalDistanceM, rec.MaxSpeedMps, rec.AverageSpeedMps, rec.ElevationGainM, rec.ElevationLossM, rec.PointCount)
	return err
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
