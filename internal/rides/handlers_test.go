package rides

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func newRidesApp(t *testing.T) (*fiber.App, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	app := fiber.New()
	passthrough := func(c *fiber.Ctx) error { return c.Next() }
	RegisterRoutes(app.Group("/rides"), NewService(mock), passthrough)
	return app, mock
}

func TestListHandler(t *testing.T) {
	app, mock := newRidesApp(t)
	defer mock.Close()

	start := time.Date(2025, 7, 19, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	mock.ExpectQuery(`SELECT id, activity_type`).
		WillReturnRows(pgxmock.NewRows(rideRowColumns).
			AddRow("ride-1", "cycling", start, &end, "stopped", 60.0, 12000.0, 6.0, 4.5, 120.0, 80.0, 900))

	resp, err := app.Test(httptest.NewRequest("GET", "/rides/", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status: %d", resp.StatusCode)
	}
	var rides []Ride
	if err := json.NewDecoder(resp.Body).Decode(&rides); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rides) != 1 || rides[0].ID != "ride-1" {
		t.Fatalf("unexpected rides: %+v", rides)
	}
}

func TestGetHandlerNotFound(t *testing.T) {
	app, mock := newRidesApp(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, activity_type`).WithArgs("missing").WillReturnError(errRides)

	resp, err := app.Test(httptest.NewRequest("GET", "/rides/missing", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status: %d", resp.StatusCode)
	}
}

func TestExportHandler(t *testing.T) {
	app, mock := newRidesApp(t)
	defer mock.Close()

	start := time.Date(2025, 7, 19, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	mock.ExpectQuery(`SELECT id, activity_type`).
		WithArgs("ride-1").
		WillReturnRows(pgxmock.NewRows(rideRowColumns).
			AddRow("ride-1", "cycling", start, &end, "stopped", 0.0, 12000.0, 6.0, 4.5, 120.0, 80.0, 1))
	mock.ExpectQuery(`SELECT session_id, ST_Y\(location::geometry\)`).
		WithArgs("ride-1").
		WillReturnRows(pgxmock.NewRows([]string{"session_id", "lat", "lng", "altitude_m", "recorded_at", "speed_mps", "course_deg", "h_accuracy_m", "v_accuracy_m"}).
			AddRow("ride-1", 45.07, 7.68, 240.0, start, 4.2, 90.0, 5.0, 10.0))

	resp, err := app.Test(httptest.NewRequest("GET", "/rides/ride-1/export", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status: %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("content type: %s", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "ride-ride-1.csv") {
		t.Fatalf("content disposition: %s", cd)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(buf.String(), "Timestamp,Latitude,Longitude") {
		t.Fatalf("missing csv header:\n%s", buf.String())
	}
}

func TestExportHandlerInProgress(t *testing.T) {
	app, mock := newRidesApp(t)
	defer mock.Close()

	start := time.Date(2025, 7, 19, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, activity_type`).
		WithArgs("ride-2").
		WillReturnRows(pgxmock.NewRows(rideRowColumns).
			AddRow("ride-2", "running", start, nil, "active", 0.0, 100.0, 3.0, 2.5, 5.0, 2.0, 10))

	resp, err := app.Test(httptest.NewRequest("GET", "/rides/ride-2/export", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("status: %d", resp.StatusCode)
	}
}

func TestDeleteHandler(t *testing.T) {
	app, mock := newRidesApp(t)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM ride_points`).
		WithArgs("ride-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectExec(`DELETE FROM ride_sessions`).
		WithArgs("ride-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	resp, err := app.Test(httptest.NewRequest("DELETE", "/rides/ride-1", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("status: %d", resp.StatusCode)
	}
}
