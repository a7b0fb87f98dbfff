package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/plangrid/internal/domain"
)

// MutationEvent describes one finished store mutation and the planning it
// left active.
type MutationEvent struct {
	Op         string
	PlanningID string
	Projects   int
	Groups     int
	Duration   time.Duration
	Err        error
	Fields     map[string]any
}

// Rejected reports whether the mutation failed because of its input rather
// than the store: unknown ids, invalid dates or config, unreadable imports.
func (e MutationEvent) Rejected() bool {
	for _, target := range []error{
		domain.ErrNotFound, domain.ErrInvalidProject, domain.ErrInvalidConfig,
		domain.ErrFormat, domain.ErrLastGroup, domain.ErrNameRequired,
	} {
		if errors.Is(e.Err, target) {
			return true
		}
	}
	return false
}

// MutationObserver receives an event after every store mutation.
type MutationObserver interface {
	ObserveMutation(ctx context.Context, event MutationEvent)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) ObserveMutation(context.Context, MutationEvent) {}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes one line per mutation to w. Rejected mutations log
// at WARN, other failures at ERROR.
func NewLogObserver(w io.Writer) MutationObserver {
	if w == nil {
		return NoopObserver{}
	}
	return &logObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logObserver) ObserveMutation(ctx context.Context, event MutationEvent) {
	attrs := make([]slog.Attr, 0, 6+len(event.Fields))
	attrs = append(attrs,
		slog.String("op", event.Op),
		slog.String("planning_id", event.PlanningID),
		slog.Int("projects", event.Projects),
		slog.Int("groups", event.Groups),
		slog.Int64("duration_ms", event.Duration.Milliseconds()),
	)
	for k, v := range event.Fields {
		attrs = append(attrs, slog.Any(k, v))
	}

	level := slog.LevelInfo
	switch {
	case event.Err == nil:
	case event.Rejected():
		level = slog.LevelWarn
	default:
		level = slog.LevelError
	}
	if event.Err != nil {
		attrs = append(attrs, slog.String("error", event.Err.Error()))
	}
	o.logger.LogAttrs(ctx, level, "planning_mutation", attrs...)
}

// observe reports one finished mutation with the state of the planning
// active afterwards. Defer it with the named error result, before taking
// s.mu.
func (s *Store) observe(ctx context.Context, op string, startedAt time.Time, fields map[string]any, err error) {
	s.mu.Lock()
	p := s.active()
	event := MutationEvent{
		Op:         op,
		PlanningID: p.ID,
		Projects:   len(p.Projects),
		Groups:     len(p.Groups),
		Duration:   time.Since(startedAt),
		Err:        err,
		Fields:     fields,
	}
	s.mu.Unlock()
	s.observer.ObserveMutation(ctx, event)
}
