package store

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/plangrid/internal/domain"
	"github.com/alexanderramin/plangrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserver_ReceivesEvents(t *testing.T) {
	obs := &recordingObserver{}
	s := newTestStore(t, WithObserver(obs))
	ctx := context.Background()

	p := addProject(t, s, "Audit", "2026-01-01", "2026-04-01")
	e := obs.last()
	assert.Equal(t, "add-project", e.Op)
	assert.NoError(t, e.Err)
	assert.Equal(t, p.ID, e.Fields["project_id"])
	assert.Equal(t, s.ActivePlanningID(), e.PlanningID)
	assert.Equal(t, 1, e.Projects)
	assert.Equal(t, 4, e.Groups)

	err := s.DeleteProject(ctx, "project-missing")
	require.Error(t, err)
	e = obs.last()
	assert.Equal(t, "delete-project", e.Op)
	assert.ErrorIs(t, e.Err, domain.ErrProjectNotFound)
	assert.True(t, e.Rejected())
}

func TestObserver_ReportsPlanningActiveAfterMutation(t *testing.T) {
	obs := &recordingObserver{}
	s := newTestStore(t, WithObserver(obs))
	ctx := context.Background()
	first := s.ActivePlanningID()
	addProject(t, s, "Audit", "2026-01-01", "2026-04-01")

	second, err := s.CreatePlanning(ctx, "Second")
	require.NoError(t, err)
	e := obs.last()
	assert.Equal(t, "create-planning", e.Op)
	assert.Equal(t, second, e.PlanningID)
	assert.Zero(t, e.Projects)

	require.NoError(t, s.LoadPlanning(ctx, first))
	e = obs.last()
	assert.Equal(t, first, e.PlanningID)
	assert.Equal(t, first, e.Fields["target_id"])
	assert.Equal(t, 1, e.Projects)
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	s := newTestStore(t, WithObserver(NewLogObserver(&buf)))
	ctx := context.Background()

	_, err := s.AddProject(ctx, testutil.NewTestProject("Audit"))
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "msg=planning_mutation")
	assert.Contains(t, out, "op=add-project")
	assert.Contains(t, out, "planning_id="+s.ActivePlanningID())
	assert.Contains(t, out, "projects=1")

	buf.Reset()
	require.Error(t, s.DeleteGroup(ctx, "group-missing"))
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "op=delete-group")
}

func TestLogObserver_StoreFailureLogsError(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogObserver(&buf)

	obs.ObserveMutation(context.Background(), MutationEvent{
		Op:         "import",
		PlanningID: "planning-0001",
		Duration:   3 * time.Millisecond,
		Err:        fmt.Errorf("saving: %w", context.DeadlineExceeded),
	})

	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "planning_id=planning-0001")
	assert.Contains(t, buf.String(), "duration_ms=3")
}

func TestMutationEvent_Rejected(t *testing.T) {
	assert.False(t, MutationEvent{}.Rejected())
	assert.True(t, MutationEvent{Err: fmt.Errorf("wrap: %w", domain.ErrInvalidConfig)}.Rejected())
	assert.True(t, MutationEvent{Err: domain.ErrPlanningNotFound}.Rejected())
	assert.False(t, MutationEvent{Err: context.Canceled}.Rejected())
}

func TestNewLogObserver_NilWriter(t *testing.T) {
	assert.IsType(t, NoopObserver{}, NewLogObserver(nil))
}
