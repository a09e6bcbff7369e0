package events

import (
	"context"
	"log/slog"
	"sync"
)

// InMemoryEventEmitter fans each event out to its handlers on the calling
// goroutine, first registered first.
type InMemoryEventEmitter struct {
	handlers []EventHandler
	mu       sync.RWMutex
	logger   *slog.Logger
}

// NewInMemoryEventEmitter returns an emitter with no handlers. A nil logger
// means slog.Default().
func NewInMemoryEventEmitter(logger *slog.Logger) *InMemoryEventEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryEventEmitter{
		logger: logger.With("component", "event_emitter"),
	}
}

func (e *InMemoryEventEmitter) RegisterHandler(handler EventHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = append(e.handlers, handler)
	e.logger.Debug("event handler added", "handlers", len(e.handlers))
}

// EmitEvent hands event to every handler. A failing handler does not stop
// the ones after it; the first error is returned once all have run.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *SessionEvent) error {
	e.mu.RLock()
	handlers := append([]EventHandler(nil), e.handlers...)
	e.mu.RUnlock()

	var firstErr error
	for i, handler := range handlers {
		err := handler.HandleEvent(ctx, event)
		if err == nil {
			continue
		}
		e.logger.Error("event handler error",
			"error", err,
			"handler", i,
			"event_type", event.Type,
			"event_id", event.ID)
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NopEmitter discards every event.
type NopEmitter struct{}

func (NopEmitter) EmitEvent(context.Context, *SessionEvent) error {
	return nil
}
