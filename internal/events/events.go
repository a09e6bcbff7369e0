package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by a session.
const (
	TypeCardPresented    = "card_presented"
	TypeCardAnswered     = "card_answered"
	TypeSessionCompleted = "session_completed"
)

// SessionEvent records one step of a study or quiz session.
type SessionEvent struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	// Type is one of the Type* constants.
	Type string `json:"type"`
	// Payload is the JSON encoding of a type-specific value.
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// UnmarshalPayload decodes Payload into v.
func (e *SessionEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewSessionEvent stamps a fresh ID and time on an event of eventType for
// sessionID, encoding payload as JSON.
func NewSessionEvent(sessionID uuid.UUID, eventType string, payload interface{}) (*SessionEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &SessionEvent{
		ID:        uuid.New(),
		SessionID: sessionID,
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now(),
	}, nil
}

// EventHandler reacts to session events.
type EventHandler interface {
	HandleEvent(ctx context.Context, event *SessionEvent) error
}

// HandlerFunc adapts an ordinary function to the EventHandler interface.
type HandlerFunc func(ctx context.Context, event *SessionEvent) error

// HandleEvent calls f(ctx, event).
func (f HandlerFunc) HandleEvent(ctx context.Context, event *SessionEvent) error {
	return f(ctx, event)
}

// EventEmitter is what a session publishes its events through.
type EventEmitter interface {
	EmitEvent(ctx context.Context, event *SessionEvent) error
}
