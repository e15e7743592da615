// Package board owns the client-visible task state for one open project:
// per-column groupings, the drag session, and the optimistic-update/rollback
// protocol around the column-move mutation.
package board

import (
	"context"
	"errors"
	"sync"

	"processcraft/internal/domain"
	"processcraft/internal/service"
)

// Mover is the server mutation the controller reconciles against.
type Mover interface {
	UpdateStatusAndOrder(ctx context.Context, taskID string, status domain.Status, order int) (*domain.Task, error)
}

// MovePhase tracks where a single column-move is in its lifecycle.
type MovePhase int

const (
	PhaseIdle MovePhase = iota
	PhaseOptimisticallyMoved
	PhaseReconciling
	PhaseCommitted
	PhaseRolledBack
)

func (p MovePhase) String() string {
	switch p {
	case PhaseOptimisticallyMoved:
		return "optimistically-moved"
	case PhaseReconciling:
		return "reconciling"
	case PhaseCommitted:
		return "committed"
	case PhaseRolledBack:
		return "rolled-back"
	default:
		return "idle"
	}
}

// MoveIntent is what the drag layer emits: which task, which column.
type MoveIntent struct {
	TaskID string
	Status domain.Status
}

// Outcome reports how a move intent ended.
type Outcome struct {
	Phase MovePhase // PhaseCommitted, PhaseRolledBack, or PhaseIdle for a discarded/no-op intent
	Task  *domain.Task
	Err   error
}

type NotificationKind string

const (
	NoticeSuccess NotificationKind = "success"
	NoticeError   NotificationKind = "error"
)

// Notification is the transient message the UI shows after a move resolves.
type Notification struct {
	Kind    NotificationKind
	Message string
}

// Controller keeps the last-known-good task list for one project and runs
// the optimistic protocol around every column-move. Methods are safe for
// concurrent use, but moves of the same task are not queued or de-duplicated:
// the last server write wins, matching the current design.
type Controller struct {
	mu       sync.Mutex
	tasks    []domain.Task
	mover    Mover
	notice   *Notification
	dragging string

	// onPhase, when set, observes every phase transition of a move.
	onPhase func(taskID string, phase MovePhase)
}

func NewController(mover Mover, tasks []*domain.Task) *Controller {
	c := &Controller{mover: mover}
	c.Reset(tasks)
	return c
}

// SetPhaseHook registers an observer for move phase transitions.
func (c *Controller) SetPhaseHook(hook func(taskID string, phase MovePhase)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onPhase = hook
}

// Reset replaces the local state with a fresh server snapshot.
func (c *Controller) Reset(tasks []*domain.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tasks = make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		c.tasks = append(c.tasks, *t)
	}
}

// Tasks returns a copy of the current task list in board order.
func (c *Controller) Tasks() []domain.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// Column returns the tasks currently grouped under one status.
func (c *Controller) Column(status domain.Status) []domain.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []domain.Task
	for _, t := range c.tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// Progress reports done/total for the board header.
func (c *Controller) Progress() (done, total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.tasks {
		if t.Status == domain.StatusDone {
			done++
		}
	}
	return done, len(c.tasks)
}

// Notification returns the message to display, if any.
func (c *Controller) Notification() *Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.notice == nil {
		return nil
	}
	n := *c.notice
	return &n
}

// ClearNotification dismisses the current message.
func (c *Controller) ClearNotification() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notice = nil
}

func (c *Controller) emit(taskID string, phase MovePhase) {
	if c.onPhase != nil {
		c.onPhase(taskID, phase)
	}
}

func (c *Controller) find(taskID string) int {
	for i := range c.tasks {
		if c.tasks[i].ID == taskID {
			return i
		}
	}
	return -1
}

// Apply runs the optimistic protocol for one move intent:
// snapshot, local rewrite, server call, then commit or rollback.
// An intent for an unknown task or an invalid column is discarded before any
// state mutation; a move to the task's current column is a no-op.
func (c *Controller) Apply(ctx context.Context, intent MoveIntent) Outcome {
	if !intent.Status.Valid() {
		return Outcome{Phase: PhaseIdle}
	}

	c.mu.Lock()
	idx := c.find(intent.TaskID)
	if idx < 0 {
		c.mu.Unlock()
		return Outcome{Phase: PhaseIdle}
	}
	if c.tasks[idx].Status == intent.Status {
		c.mu.Unlock()
		return Outcome{Phase: PhaseIdle}
	}

	// Full-object snapshot for rollback, then the optimistic rewrite.
	// Order is a placeholder; the server echoes back the canonical value.
	snapshot := c.tasks[idx]
	c.tasks[idx].Status = intent.Status
	c.tasks[idx].Order = 0
	c.emit(intent.TaskID, PhaseOptimisticallyMoved)
	c.emit(intent.TaskID, PhaseReconciling)
	c.mu.Unlock()

	updated, err := c.mover.UpdateStatusAndOrder(ctx, intent.TaskID, intent.Status, 0)

	c.mu.Lock()
	defer c.mu.Unlock()

	idx = c.find(intent.TaskID)
	if err != nil {
		if idx >= 0 {
			c.tasks[idx] = snapshot
		}
		c.notice = &Notification{Kind: NoticeError, Message: moveErrorMessage(err)}
		c.emit(intent.TaskID, PhaseRolledBack)
		return Outcome{Phase: PhaseRolledBack, Err: err}
	}

	if idx >= 0 && updated != nil {
		c.tasks[idx] = *updated
	}
	c.notice = &Notification{Kind: NoticeSuccess, Message: "Task status updated successfully."}
	c.emit(intent.TaskID, PhaseCommitted)
	return Outcome{Phase: PhaseCommitted, Task: updated}
}

// moveErrorMessage prefers the server-provided message and falls back to a
// generic one for opaque transport failures.
func moveErrorMessage(err error) string {
	var ve *service.ValidationError
	switch {
	case errors.Is(err, service.ErrAccessDenied):
		return "Task not found or you don't have permission to update it."
	case errors.As(err, &ve):
		return "Invalid task status data."
	default:
		return "Failed to update task status. Please try again."
	}
}

// ServiceMover adapts the task mutation service to the Mover interface for
// one authenticated user.
type ServiceMover struct {
	Service *service.TaskService
	UserID  string
}

func (m ServiceMover) UpdateStatusAndOrder(ctx context.Context, taskID string, status domain.Status, order int) (*domain.Task, error) {
	return m.Service.UpdateStatusAndOrder(ctx, m.UserID, taskID, status, order)
}
