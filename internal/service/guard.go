package service

import (
	"context"
	"errors"

	"processcraft/internal/domain"
	"processcraft/internal/repository"
)

// Guard answers ownership questions for every mutation. It never errors on
// an authorization mismatch: "not found" and "not owned" are the same
// negative answer, and only a storage fault surfaces as an error.
type Guard struct {
	projects ProjectStore
	tasks    TaskStore
}

func NewGuard(projects ProjectStore, tasks TaskStore) *Guard {
	return &Guard{projects: projects, tasks: tasks}
}

// TaskOwnership is the result of the Task -> Project -> owner walk.
type TaskOwnership struct {
	Owned     bool
	ProjectID string
	Task      *domain.Task
}

func (g *Guard) VerifyProjectOwnership(ctx context.Context, userID, projectID string) (bool, error) {
	project, err := g.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return project.OwnerID == userID, nil
}

func (g *Guard) VerifyTaskOwnership(ctx context.Context, userID, taskID string) (TaskOwnership, error) {
	task, project, err := g.tasks.GetWithProject(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return TaskOwnership{}, nil
		}
		return TaskOwnership{}, err
	}
	if project.OwnerID != userID {
		return TaskOwnership{}, nil
	}
	return TaskOwnership{Owned: true, ProjectID: project.ID, Task: task}, nil
}
