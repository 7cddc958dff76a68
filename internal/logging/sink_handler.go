package logging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// logSink is one destination of a run's log stream, such as the console or
// the rotating log file.
type logSink struct {
	name    string
	handler slog.Handler
}

// sinkHandler writes every record to all sinks that accept its level. A sink
// that fails does not stop the others; the failures come back joined and
// labelled with the sink name.
type sinkHandler struct {
	sinks []logSink
}

func newSinkHandler(sinks ...logSink) slog.Handler {
	live := make([]logSink, 0, len(sinks))
	for _, sink := range sinks {
		if sink.handler != nil {
			live = append(live, sink)
		}
	}
	switch len(live) {
	case 0:
		return NoopHandler{}
	case 1:
		return live[0].handler
	}
	return &sinkHandler{sinks: live}
}

func (h *sinkHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, sink := range h.sinks {
		if sink.handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *sinkHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	last := len(h.sinks) - 1
	for idx, sink := range h.sinks {
		if !sink.handler.Enabled(ctx, record.Level) {
			continue
		}
		rec := record
		if idx < last {
			rec = record.Clone()
		}
		if err := sink.handler.Handle(ctx, rec); err != nil {
			errs = append(errs, fmt.Errorf("%s log: %w", sink.name, err))
		}
	}
	return errors.Join(errs...)
}

func (h *sinkHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(func(handler slog.Handler) slog.Handler { return handler.WithAttrs(attrs) })
}

func (h *sinkHandler) WithGroup(name string) slog.Handler {
	return h.derive(func(handler slog.Handler) slog.Handler { return handler.WithGroup(name) })
}

func (h *sinkHandler) derive(fn func(slog.Handler) slog.Handler) slog.Handler {
	next := make([]logSink, len(h.sinks))
	for i, sink := range h.sinks {
		next[i] = logSink{name: sink.name, handler: fn(sink.handler)}
	}
	return &sinkHandler{sinks: next}
}
