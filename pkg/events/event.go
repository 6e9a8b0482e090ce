package events

import "time"

// Event type codes published on the evidence bus.
const (
	TypeIngestionRunStarted  = "ingestion.run.started"
	TypeIngestionRunFinished = "ingestion.run.finished"
	TypeIngestionRunFailed   = "ingestion.run.failed"
	TypeDecisionRecorded     = "decision.recorded"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "decision.recorded").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the plain implementation the services publish.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
