package api

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// CallEvent records one HTTP exchange with the backend.
type CallEvent struct {
	Method    string
	Path      string
	Status    int
	Duration  time.Duration
	RequestID string
	Err       error
}

// Observer receives an event after every API call.
type Observer interface {
	OnCallComplete(ctx context.Context, event CallEvent)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(context.Context, CallEvent) {}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes API call events to w as slog text records.
func NewLogObserver(w io.Writer) Observer {
	if w == nil {
		return NoopObserver{}
	}
	return &logObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
}

func (o *logObserver) OnCallComplete(ctx context.Context, event CallEvent) {
	attrs := []any{
		"method", event.Method,
		"path", event.Path,
		"status", event.Status,
		"duration_ms", event.Duration.Milliseconds(),
		"request_id", event.RequestID,
	}
	if event.Err != nil {
		attrs = append(attrs, "error_code", errorCode(event.Err), "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "api_call", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "api_call", attrs...)
}
