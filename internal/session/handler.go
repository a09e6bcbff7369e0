package session

import (
	"context"
	"log/slog"

	"github.com/phrazzld/crablang/internal/events"
)

// LogEventHandler writes session events to a structured logger. Completed
// sessions are logged at info level, everything else at debug.
type LogEventHandler struct {
	logger *slog.Logger
}

// NewLogEventHandler creates a LogEventHandler.
func NewLogEventHandler(logger *slog.Logger) *LogEventHandler {
	return &LogEventHandler{logger: logger.With("component", "session_events")}
}

// HandleEvent implements events.EventHandler.
func (h *LogEventHandler) HandleEvent(ctx context.Context, event *events.SessionEvent) error {
	switch event.Type {
	case events.TypeSessionCompleted:
		var p completedPayload
		if err := event.UnmarshalPayload(&p); err != nil {
			return err
		}
		h.logger.InfoContext(ctx, "session completed",
			"session_id", event.SessionID,
			"mode", p.Mode,
			"cards", p.Cards,
			"reviewed", p.Reviewed,
			"correct", p.Score.Correct,
			"total", p.Score.Total,
			"completed", p.Completed)
	case events.TypeCardAnswered:
		var r Result
		if err := event.UnmarshalPayload(&r); err != nil {
			return err
		}
		h.logger.DebugContext(ctx, "card answered",
			"session_id", event.SessionID,
			"index", r.Index,
			"term", r.Card.Term,
			"correct", r.Correct)
	default:
		h.logger.DebugContext(ctx, "session event",
			"session_id", event.SessionID,
			"event_type", event.Type,
			"payload", string(event.Payload))
	}
	return nil
}
