package rides

import (
	"context"

	"github.com/nikozzzzzz/rideTrack/internal/db"
	"github.com/nikozzzzzz/rideTrack/internal/engine"
)

// Service reads ride history out of Postgres. It never touches the
// live engine: stopped sessions are immutable rows.
type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

const rideColumns = `id, activity_type, started_at, ended_at, state, COALESCE(paused_sec,0),
		COALESCE(distance_m,0), COALESCE(max_speed_mps,0), COALESCE(avg_speed_mps,0),
		COALESCE(elevation_gain_m,0), COALESCE(elevation_loss_m,0), COALESCE(point_count,0)`

func (s *Service) List(ctx context.Context) ([]Ride, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+rideColumns+`
		FROM ride_sessions
		ORDER BY started_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []Ride
	for rows.Next() {
		var r Ride
		if err := rows.Scan(&r.ID, &r.ActivityType, &r.StartedAt, &r.EndedAt, &r.State, &r.PausedSec,
			&r.DistanceM, &r.MaxSpeedMps, &r.AvgSpeedMps, &r.ElevationGainM, &r.ElevationLossM, &r.PointCount); err != nil {
			return nil, err
		}
		rides = append(rides, r)
	}
	return rides, nil
}

func (s *Service) Get(ctx context.Context, id string) (Ride, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+rideColumns+`
		FROM ride_sessions WHERE id=$1
	`, id)

	var r Ride
	if err := row.Scan(&r.ID, &r.ActivityType, &r.StartedAt, &r.EndedAt, &r.State, &r.PausedSec,
		&r.DistanceM, &r.MaxSpeedMps, &r.AvgSpeedMps, &r.ElevationGainM, &r.ElevationLossM, &r.PointCount); err != nil {
		return Ride{}, err
	}
	return r, nil
}

func (s *Service) Points(ctx context.Context, id string) ([]engine.TrackPoint, error) {
	rows, err := s.db.Query(ctx, `
		SELECT session_id, ST_Y(location::geometry), ST_X(location::geometry), COALESCE(altitude_m,0), recorded_at,
			COALESCE(speed_mps,0), COALESCE(course_deg,0), COALESCE(h_accuracy_m,0), COALESCE(v_accuracy_m,0)
		FROM ride_points WHERE session_id=$1
		ORDER BY recorded_at
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []engine.TrackPoint
	for rows.Next() {
		var p engine.TrackPoint
		if err := rows.Scan(&p.SessionID, &p.Latitude, &p.Longitude, &p.AltitudeM, &p.Timestamp,
			&p.SpeedMps, &p.CourseDeg, &p.HorizontalAccuracy, &p.VerticalAccuracy); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM ride_points WHERE session_id=$1`, id); err != nil {
		return err
	}
	_, err := s.db.Exec(ctx, `DELETE FROM ride_sessions WHERE id=$1`, id)
	return err
}
