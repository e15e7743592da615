package domain

import (
	"fmt"
	"time"
)

// Status is the Kanban column a task lives in. The values are the exact
// strings stored in the database and exchanged with the frontend.
type Status string

const (
	StatusToDo       Status = "To Do"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

// Statuses lists the three board columns in display order.
var Statuses = []Status{StatusToDo, StatusInProgress, StatusDone}

func (s Status) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// ParseStatus validates a raw status string coming off the wire.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown task status %q", raw)
	}
	return s, nil
}

type Task struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Status      Status    `db:"status" json:"status"`
	Order       int       `db:"order" json:"order"`
	ProjectID   string    `db:"project_id" json:"project_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// TaskCounts is the dashboard aggregate across all projects a user owns.
type TaskCounts struct {
	Total      int `json:"total"`
	ToDo       int `json:"todo"`
	InProgress int `json:"in_progress"`
	Done       int `json:"done"`
}
