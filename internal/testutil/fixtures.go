package testutil

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/plangrid/internal/domain"
)

var testCodeCounter atomic.Int64

// Project options
type ProjectOption func(*domain.Project)

func WithDates(start, end time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = start
		p.EndDate = end
	}
}

func WithGroup(id string) ProjectOption {
	return func(p *domain.Project) {
		p.GroupID = id
	}
}

func WithRow(row int) ProjectOption {
	return func(p *domain.Project) {
		p.Row = row
	}
}

func WithColorOverride(color string) ProjectOption {
	return func(p *domain.Project) {
		p.ColorOverride = color
	}
}

// NewTestProject returns a quarter-aligned project in the first default group,
// spanning Q1 2026. It has no id; the store assigns one.
func NewTestProject(name string, opts ...ProjectOption) domain.Project {
	p := domain.Project{
		Code:      fmt.Sprintf("P%03d", testCodeCounter.Add(1)),
		Name:      name,
		GroupID:   domain.DefaultGroups()[0].ID,
		StartDate: domain.Date(2026, time.January, 1),
		EndDate:   domain.Date(2026, time.April, 1),
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// SequentialIDs returns an id generator yielding "0001", "0002", ... The
// padding keeps generated ids apart from the default group ids. Safe for
// concurrent use.
func SequentialIDs() func() string {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("%04d", n.Add(1))
	}
}

// SteppingClock returns a clock that starts at start and advances by step
// on every call, so successive timestamps are strictly ordered.
func SteppingClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := next
		next = next.Add(step)
		return t
	}
}
