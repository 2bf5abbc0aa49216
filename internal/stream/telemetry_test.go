package stream

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/nikozzzzzz/rideTrack/internal/engine"
)

func TestTelemetrySinkRoutesByRide(t *testing.T) {
	hub := NewHub(nil)
	client := hub.Register("ride-42")
	defer hub.Unregister(client)

	sink := NewTelemetrySink(hub)
	if err := sink.Publish(engine.Snapshot{SessionID: "ride-42", DistanceKm: 1.5}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case msg := <-client.Send:
		var snap engine.Snapshot
		if err := json.Unmarshal(msg, &snap); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if snap.DistanceKm != 1.5 {
			t.Fatalf("unexpected snapshot: %+v", snap)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatalf("timeout waiting for snapshot")
	}
}

func TestTelemetrySinkNoClients(t *testing.T) {
	sink := NewTelemetrySink(NewHub(nil))
	if err := sink.Publish(engine.Snapshot{SessionID: "nobody"}); err != nil {
		t.Fatalf("publish with no clients should not fail: %v", err)
	}
}
