package stream

import (
	"encoding/json"

	"github.com/nikozzzzzz/rideTrack/internal/engine"
)

// TelemetrySink adapts the hub to the engine's Publisher contract:
// snapshots are routed to the channel of the ride they belong to.
type TelemetrySink struct {
	hub *Hub
}

func NewTelemetrySink(hub *Hub) *TelemetrySink {
	return &TelemetrySink{hub: hub}
}

func (s *TelemetrySink) Publish(snap engine.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	s.hub.Broadcast(snap.SessionID, payload)
	return nil
}
