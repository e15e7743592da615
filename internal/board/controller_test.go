package board

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"processcraft/internal/domain"
	"processcraft/internal/service"
)

// fakeMover scripts the server side of the reconciliation.
type fakeMover struct {
	fail  error
	calls int
	last  MoveIntent

	// echo, when set, transforms the canonical response.
	echo func(t *domain.Task)
}

func (m *fakeMover) UpdateStatusAndOrder(ctx context.Context, taskID string, status domain.Status, order int) (*domain.Task, error) {
	m.calls++
	m.last = MoveIntent{TaskID: taskID, Status: status}
	if m.fail != nil {
		return nil, m.fail
	}
	t := &domain.Task{
		ID:        taskID,
		Title:     "server title",
		Status:    status,
		Order:     order,
		ProjectID: "p1",
		CreatedAt: time.Unix(1700000000, 0),
	}
	if m.echo != nil {
		m.echo(t)
	}
	return t, nil
}

func boardTasks() []*domain.Task {
	return []*domain.Task{
		{ID: "t1", Title: "server title", Description: "d1", Status: domain.StatusToDo, Order: 0, ProjectID: "p1", CreatedAt: time.Unix(1700000000, 0)},
		{ID: "t2", Title: "two", Description: "d2", Status: domain.StatusInProgress, Order: 0, ProjectID: "p1", CreatedAt: time.Unix(1700000100, 0)},
		{ID: "t3", Title: "three", Description: "d3", Status: domain.StatusDone, Order: 3, ProjectID: "p1", CreatedAt: time.Unix(1700000200, 0)},
	}
}

func TestApplyCommit(t *testing.T) {
	mover := &fakeMover{}
	ctrl := NewController(mover, boardTasks())

	outcome := ctrl.Apply(context.Background(), MoveIntent{TaskID: "t1", Status: domain.StatusDone})
	if outcome.Phase != PhaseCommitted {
		t.Fatalf("phase = %s, want committed", outcome.Phase)
	}
	if mover.calls != 1 {
		t.Fatalf("mover calls = %d, want 1", mover.calls)
	}
	if mover.last.Status != domain.StatusDone {
		t.Fatalf("server saw status %q", mover.last.Status)
	}

	done := ctrl.Column(domain.StatusDone)
	if len(done) != 2 {
		t.Fatalf("done column = %d tasks, want 2", len(done))
	}

	n := ctrl.Notification()
	if n == nil || n.Kind != NoticeSuccess {
		t.Fatalf("notification = %+v, want success", n)
	}
}

// The move is always dispatched with order 0; the local task adopts the
// canonical row the server returns.
func TestApplyCommitKeepsCanonicalServerState(t *testing.T) {
	mover := &fakeMover{echo: func(task *domain.Task) {
		task.Title = "renamed on server"
		task.Order = 7
	}}
	ctrl := NewController(mover, boardTasks())

	outcome := ctrl.Apply(context.Background(), MoveIntent{TaskID: "t1", Status: domain.StatusInProgress})
	if outcome.Phase != PhaseCommitted {
		t.Fatalf("phase = %s", outcome.Phase)
	}

	for _, task := range ctrl.Tasks() {
		if task.ID != "t1" {
			continue
		}
		if task.Title != "renamed on server" || task.Order != 7 {
			t.Fatalf("local task did not adopt canonical state: %+v", task)
		}
	}
}

func TestApplyRollbackRestoresExactSnapshot(t *testing.T) {
	mover := &fakeMover{fail: service.ErrAccessDenied}
	ctrl := NewController(mover, boardTasks())

	before := ctrl.Tasks()

	outcome := ctrl.Apply(context.Background(), MoveIntent{TaskID: "t3", Status: domain.StatusToDo})
	if outcome.Phase != PhaseRolledBack {
		t.Fatalf("phase = %s, want rolled-back", outcome.Phase)
	}
	if !errors.Is(outcome.Err, service.ErrAccessDenied) {
		t.Fatalf("err = %v", outcome.Err)
	}

	after := ctrl.Tasks()
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("board state differs after rollback:\nbefore=%+v\nafter=%+v", before, after)
	}

	n := ctrl.Notification()
	if n == nil || n.Kind != NoticeError {
		t.Fatalf("notification = %+v, want error", n)
	}
	if n.Message != "Task not found or you don't have permission to update it." {
		t.Fatalf("message = %q", n.Message)
	}
}

func TestApplyRollbackGenericMessageForTransportFailure(t *testing.T) {
	mover := &fakeMover{fail: errors.New("connection refused")}
	ctrl := NewController(mover, boardTasks())

	outcome := ctrl.Apply(context.Background(), MoveIntent{TaskID: "t1", Status: domain.StatusDone})
	if outcome.Phase != PhaseRolledBack {
		t.Fatalf("phase = %s", outcome.Phase)
	}
	n := ctrl.Notification()
	if n == nil || n.Message != "Failed to update task status. Please try again." {
		t.Fatalf("notification = %+v", n)
	}
}

func TestApplySameStatusIsNoOp(t *testing.T) {
	mover := &fakeMover{}
	ctrl := NewController(mover, boardTasks())

	before := ctrl.Tasks()
	outcome := ctrl.Apply(context.Background(), MoveIntent{TaskID: "t2", Status: domain.StatusInProgress})
	if outcome.Phase != PhaseIdle {
		t.Fatalf("phase = %s, want idle", outcome.Phase)
	}
	if mover.calls != 0 {
		t.Fatalf("mover called %d times on a no-op", mover.calls)
	}
	if !reflect.DeepEqual(before, ctrl.Tasks()) {
		t.Fatal("no-op mutated local state")
	}
	if ctrl.Notification() != nil {
		t.Fatal("no-op produced a notification")
	}
}

func TestApplyDiscardsUnknownTaskAndInvalidColumn(t *testing.T) {
	mover := &fakeMover{}
	ctrl := NewController(mover, boardTasks())

	if out := ctrl.Apply(context.Background(), MoveIntent{TaskID: "ghost", Status: domain.StatusDone}); out.Phase != PhaseIdle {
		t.Fatalf("unknown task phase = %s", out.Phase)
	}
	if out := ctrl.Apply(context.Background(), MoveIntent{TaskID: "t1", Status: "Archived"}); out.Phase != PhaseIdle {
		t.Fatalf("invalid column phase = %s", out.Phase)
	}
	if mover.calls != 0 {
		t.Fatalf("mover called %d times for discarded intents", mover.calls)
	}
}

func TestApplyPhaseSequence(t *testing.T) {
	mover := &fakeMover{}
	ctrl := NewController(mover, boardTasks())

	var phases []MovePhase
	ctrl.SetPhaseHook(func(taskID string, phase MovePhase) {
		phases = append(phases, phase)
	})

	ctrl.Apply(context.Background(), MoveIntent{TaskID: "t1", Status: domain.StatusDone})

	want := []MovePhase{PhaseOptimisticallyMoved, PhaseReconciling, PhaseCommitted}
	if !reflect.DeepEqual(phases, want) {
		t.Fatalf("phases = %v, want %v", phases, want)
	}

	phases = nil
	mover.fail = errors.New("boom")
	ctrl.Apply(context.Background(), MoveIntent{TaskID: "t1", Status: domain.StatusToDo})
	want = []MovePhase{PhaseOptimisticallyMoved, PhaseReconciling, PhaseRolledBack}
	if !reflect.DeepEqual(phases, want) {
		t.Fatalf("phases = %v, want %v", phases, want)
	}
}

func TestOptimisticStateVisibleDuringReconcile(t *testing.T) {
	release := make(chan struct{})
	seen := make(chan domain.Status, 1)

	mover := &blockingMover{release: release, start: make(chan struct{}, 1)}
	ctrl := NewController(mover, boardTasks())

	go func() {
		ctrl.Apply(context.Background(), MoveIntent{TaskID: "t1", Status: domain.StatusDone})
	}()

	<-mover.start
	for _, task := range ctrl.Tasks() {
		if task.ID == "t1" {
			seen <- task.Status
		}
	}
	close(release)

	if got := <-seen; got != domain.StatusDone {
		t.Fatalf("status during reconcile = %q, want optimistic %q", got, domain.StatusDone)
	}
}

type blockingMover struct {
	release chan struct{}
	start   chan struct{}
}

func (m *blockingMover) UpdateStatusAndOrder(ctx context.Context, taskID string, status domain.Status, order int) (*domain.Task, error) {
	m.start <- struct{}{}
	<-m.release
	return &domain.Task{ID: taskID, Status: status, Order: order}, nil
}

func TestProgress(t *testing.T) {
	ctrl := NewController(&fakeMover{}, boardTasks())
	done, total := ctrl.Progress()
	if done != 1 || total != 3 {
		t.Fatalf("progress = %d/%d, want 1/3", done, total)
	}
}

func TestClearNotification(t *testing.T) {
	ctrl := NewController(&fakeMover{}, boardTasks())
	ctrl.Apply(context.Background(), MoveIntent{TaskID: "t1", Status: domain.StatusDone})
	if ctrl.Notification() == nil {
		t.Fatal("expected notification after commit")
	}
	ctrl.ClearNotification()
	if ctrl.Notification() != nil {
		t.Fatal("notification survived dismissal")
	}
}
