// Package store holds the plannings of the application and every operation
// that reads or mutates them. All dates stay aligned to the active grid.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/plangrid/internal/calendar"
	"github.com/alexanderramin/plangrid/internal/domain"
	"github.com/alexanderramin/plangrid/internal/exchange"
	"github.com/alexanderramin/plangrid/internal/repository"
	"github.com/google/uuid"
)

// DefaultStorageKey names the persisted record when no other key is configured.
const DefaultStorageKey = "plangrid-state"

// Store is the state container of the application. It is safe for
// concurrent use; operations are serialized.
type Store struct {
	mu sync.Mutex

	plannings []*domain.Planning
	activeID  string

	selectedProjectID string
	selectedCard      int

	repo     repository.StateRepo
	key      string
	defaults domain.TimelineConfig

	logger   *slog.Logger
	observer MutationObserver
	now      func() time.Time
	newID    func() string
}

// Option configures a Store.
type Option func(*Store)

// WithStorageKey sets the key of the persisted record.
func WithStorageKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithDefaultTimeline sets the config given to new and reset plannings.
func WithDefaultTimeline(cfg domain.TimelineConfig) Option {
	return func(s *Store) { s.defaults = cfg }
}

// WithLogger sets the logger for warnings and persistence failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithObserver sets the observer notified after every mutation.
func WithObserver(o MutationObserver) Option {
	return func(s *Store) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithClock sets the time source for planning timestamps and exports.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator sets the source of the unique part of new ids.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// New creates a store holding one default planning. A nil repo keeps all
// state in memory for the lifetime of the process.
func New(repo repository.StateRepo, opts ...Option) *Store {
	s := &Store{
		repo:     repo,
		key:      DefaultStorageKey,
		defaults: domain.DefaultTimelineConfig(),
		logger:   slog.New(slog.DiscardHandler),
		observer: NoopObserver{},
		now:      func() time.Time { return time.Now().UTC() },
		newID:    func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}

	initial := s.newPlanning(exchange.DefaultPlanningName)
	s.plannings = []*domain.Planning{initial}
	s.activeID = initial.ID
	return s
}

// Open creates a store and loads the persisted record from repo.
func Open(ctx context.Context, repo repository.StateRepo, opts ...Option) (*Store, error) {
	s := New(repo, opts...)
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the in-memory state with the persisted record. A missing
// record leaves the current state untouched.
func (s *Store) Load(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}

	rec, err := s.repo.Load(ctx, s.key)
	if errors.Is(err, repository.ErrStateNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading state: %w", err)
	}

	state, err := exchange.DecodeState(rec.Payload, s.defaults)
	if err != nil {
		return err
	}
	if len(state.Plannings) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, p := range state.Plannings {
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		if p.UpdatedAt.IsZero() {
			p.UpdatedAt = p.CreatedAt
		}
	}
	s.plannings = state.Plannings
	s.activeID = state.ActiveID
	if s.indexOf(s.activeID) < 0 {
		s.activeID = s.plannings[0].ID
	}
	s.clearSelection()

	s.logger.DebugContext(ctx, "state loaded",
		"key", s.key,
		"schema_version", rec.SchemaVersion,
		"plannings", len(s.plannings),
	)
	return nil
}

// Save writes the current state to the repository.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx)
}

func (s *Store) saveLocked(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	payload, err := exchange.EncodeState(exchange.State{Plannings: s.plannings, ActiveID: s.activeID})
	if err != nil {
		return err
	}
	return s.repo.Save(ctx, &repository.StateRecord{
		Key:           s.key,
		SchemaVersion: exchange.StateVersion,
		Payload:       payload,
		UpdatedAt:     time.Now().UTC(),
	})
}

// persist writes the state after a mutation. Failures are logged; the
// in-memory state stays authoritative.
func (s *Store) persist(ctx context.Context) {
	if err := s.saveLocked(ctx); err != nil {
		s.logger.ErrorContext(ctx, "persisting state", "key", s.key, "error", err)
	}
}

// updateActive runs fn on a copy of the active planning and swaps the copy
// in only when fn succeeds.
func (s *Store) updateActive(ctx context.Context, fn func(draft *domain.Planning) error) error {
	idx := s.indexOf(s.activeID)
	draft := s.plannings[idx].Clone()
	if err := fn(draft); err != nil {
		return err
	}
	draft.UpdatedAt = s.now()
	s.plannings[idx] = draft
	s.persist(ctx)
	return nil
}

func (s *Store) active() *domain.Planning {
	return s.plannings[s.indexOf(s.activeID)]
}

func (s *Store) indexOf(planningID string) int {
	for i, p := range s.plannings {
		if p.ID == planningID {
			return i
		}
	}
	return -1
}

func (s *Store) id(kind string) string {
	return kind + "-" + s.newID()
}

func (s *Store) newPlanning(name string) *domain.Planning {
	now := s.now()
	return &domain.Planning{
		ID:             s.id("planning"),
		Name:           name,
		CreatedAt:      now,
		UpdatedAt:      now,
		TimelineConfig: s.defaults,
		Groups:         domain.DefaultGroups(),
	}
}

// cells builds the grid of cfg, warning when it was truncated.
func (s *Store) cells(ctx context.Context, cfg domain.TimelineConfig) []calendar.Cell {
	grid := calendar.BuildCells(cfg)
	if grid.Truncated {
		s.logger.WarnContext(ctx, "timeline truncated",
			"max_cells", calendar.MaxCells,
			"start", domain.FormatDate(cfg.StartDate),
			"end", domain.FormatDate(cfg.EndDate),
			"granularity", cfg.Granularity,
		)
	}
	return grid.Cells
}

func (s *Store) notFound(ctx context.Context, err error, id string) error {
	s.logger.WarnContext(ctx, "unknown reference", "error", err, "id", id)
	return fmt.Errorf("%w: %s", err, id)
}
