package event

import (
	"time"

	"github.com/google/uuid"
)

// Event represents a domain event raised by the workflow engine.
type Event struct {
	ID            string                 `json:"id"`
	Type          Type                   `json:"type"`
	RequestID     string                 `json:"request_id"`
	Payload       map[string]interface{} `json:"payload"`
	Timestamp     time.Time              `json:"timestamp"`
	CorrelationID string                 `json:"correlation_id"`
}

// New creates a domain event with a generated ID and timestamp
func New(eventType Type, requestID string, payload map[string]interface{}) *Event {
	return &Event{
		ID:            uuid.NewString(),
		Type:          eventType,
		RequestID:     requestID,
		Payload:       payload,
		Timestamp:     time.Now(),
		CorrelationID: uuid.NewString(),
	}
}

// NewWithCorrelation creates an event linked to an existing correlation chain
func NewWithCorrelation(eventType Type, requestID string, payload map[string]interface{}, correlationID string) *Event {
	evt := New(eventType, requestID, payload)
	evt.CorrelationID = correlationID
	return evt
}

// WithPayload returns a copy of the event with an added payload entry; the
// receiver is never mutated.
func (e *Event) WithPayload(key string, value interface{}) *Event {
	newPayload := make(map[string]interface{}, len(e.Payload)+1)
	for k, v := range e.Payload {
		newPayload[k] = v
	}
	newPayload[key] = value

	clone := *e
	clone.Payload = newPayload
	return &clone
}

// PayloadString retrieves a string value from the payload
func (e *Event) PayloadString(key string) string {
	if val, ok := e.Payload[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

// PayloadInt retrieves an int64 value from the payload
func (e *Event) PayloadInt(key string) int64 {
	if val, ok := e.Payload[key]; ok {
		switch v := val.(type) {
		case int64:
			return v
		case int:
			return int64(v)
		case float64:
			return int64(v)
		}
	}
	return 0
}
