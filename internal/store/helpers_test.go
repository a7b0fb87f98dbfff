package store

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/plangrid/internal/domain"
	"github.com/alexanderramin/plangrid/internal/repository"
	"github.com/alexanderramin/plangrid/internal/testutil"
	"github.com/stretchr/testify/require"
)

var clockStart = time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	base := []Option{
		WithIDGenerator(testutil.SequentialIDs()),
		WithClock(testutil.SteppingClock(clockStart, time.Minute)),
	}
	return New(nil, append(base, opts...)...)
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func addProject(t *testing.T, s *Store, name, start, end string, opts ...testutil.ProjectOption) domain.Project {
	t.Helper()
	opts = append([]testutil.ProjectOption{testutil.WithDates(day(t, start), day(t, end))}, opts...)
	p, err := s.AddProject(context.Background(), testutil.NewTestProject(name, opts...))
	require.NoError(t, err)
	return p
}

func ptr[T any](v T) *T { return &v }

type recordingObserver struct {
	mu     sync.Mutex
	events []MutationEvent
}

func (o *recordingObserver) ObserveMutation(_ context.Context, e MutationEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() MutationEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

type failingRepo struct{ repository.StateRepo }

func (failingRepo) Save(context.Context, *repository.StateRecord) error {
	return context.DeadlineExceeded
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}
