package server

import (
	"net/http/httptest"
	"testing"

	"github.com/nikozzzzzz/rideTrack/internal/config"
)

func TestHealthRoute(t *testing.T) {
	s := NewServer(config.Config{JWTSecret: "secret", ServerPort: ":0"}, nil, nil)

	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 status")
	}
}

func TestHistoryRoutesWithoutDB(t *testing.T) {
	s := NewServer(config.Config{JWTSecret: "secret", ServerPort: ":0"}, nil, nil)

	for _, path := range []string{"/rides/", "/rides/ride-1", "/rides/ride-1/points", "/rides/ride-1/export"} {
		req := httptest.NewRequest("GET", path, nil)
		resp, err := s.App.Test(req)
		if err != nil {
			t.Fatalf("test request: %v", err)
		}
		if resp.StatusCode != 503 {
			t.Fatalf("expected 503 for %s without a database, got %d", path, resp.StatusCode)
		}
	}
}

func TestServerWiresEngine(t *testing.T) {
	s := NewServer(config.Config{JWTSecret: "secret", ServerPort: ":0"}, nil, nil)

	if s.Engine == nil {
		t.Fatalf("engine not wired")
	}
	if _, ok := s.Engine.Snapshot(); ok {
		t.Fatalf("fresh server should have no session")
	}
}
