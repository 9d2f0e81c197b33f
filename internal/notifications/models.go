package notifications

import "time"

// EventType identifies what a live-feed event describes.
type EventType string

const (
	// EventChargerStatus is sent when a charger's rolled-up status or trust
	// score changes.
	EventChargerStatus EventType = "charger_status"
	// EventChargerAdded is sent when a new charger enters the registry.
	EventChargerAdded EventType = "charger_added"
	// EventCoinsAwarded is sent to the earning user when coins are credited.
	EventCoinsAwarded EventType = "coins_awarded"
)

// Event is one message on the live feed. Target, when set, restricts
// delivery to a single user; otherwise the event is broadcast.
type Event struct {
	Type      EventType              `json:"type"`
	Data      map[string]interface{} `json:"data"`
	Target    string                 `json:"target,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Publisher pushes events to connected clients. Services depend on this
// rather than the WebSocket manager so tests can drop events on the floor.
type Publisher interface {
	Publish(event Event)
}

// NopPublisher discards events.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}
