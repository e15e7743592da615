package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"processcraft/internal/domain"
	"processcraft/internal/logger"

	"github.com/google/uuid"
)

// TaskService is the authoritative status/order transition surface. Every
// operation takes the acting user explicitly and checks ownership through
// the guard before touching storage.
type TaskService struct {
	tasks TaskStore
	guard *Guard
}

func NewTaskService(projects ProjectStore, tasks TaskStore) *TaskService {
	return &TaskService{
		tasks: tasks,
		guard: NewGuard(projects, tasks),
	}
}

// TaskUpdate carries a partial edit; nil fields are left untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *domain.Status
}

func validateTaskTitle(ve *ValidationError, title string) {
	if title == "" {
		ve.add("title", "Task title is required")
	} else if utf8.RuneCountInString(title) > 100 {
		ve.add("title", "Task title must be less than 100 characters")
	}
}

func (s *TaskService) Create(ctx context.Context, userID, projectID, title, description string, status domain.Status, order int) (*domain.Task, error) {
	title = strings.TrimSpace(title)
	if status == "" {
		status = domain.StatusToDo
	}

	ve := newValidationError()
	validateTaskTitle(ve, title)
	if !status.Valid() {
		ve.add("status", "Unknown task status")
	}
	if order < 0 {
		ve.add("order", "Order must not be negative")
	}
	if projectID == "" {
		ve.add("project_id", "Project ID is required")
	}
	if !ve.empty() {
		return nil, ve
	}

	owned, err := s.guard.VerifyProjectOwnership(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, ErrAccessDenied
	}

	task := &domain.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Status:      status,
		Order:       order,
		ProjectID:   projectID,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		logger.Error("failed to create task", "project_id", projectID, "error", err)
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// UpdateDetails applies a partial edit to title, description or status.
func (s *TaskService) UpdateDetails(ctx context.Context, userID, taskID string, upd TaskUpdate) (*domain.Task, error) {
	ve := newValidationError()
	if upd.Title != nil {
		*upd.Title = strings.TrimSpace(*upd.Title)
		validateTaskTitle(ve, *upd.Title)
	}
	if upd.Status != nil && !upd.Status.Valid() {
		ve.add("status", "Unknown task status")
	}
	if !ve.empty() {
		return nil, ve
	}

	own, err := s.guard.VerifyTaskOwnership(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if !own.Owned {
		return nil, ErrAccessDenied
	}

	task := own.Task
	if upd.Title != nil {
		task.Title = *upd.Title
	}
	if upd.Description != nil {
		task.Description = *upd.Description
	}
	if upd.Status != nil {
		task.Status = *upd.Status
	}
	if err := s.tasks.Update(ctx, task); err != nil {
		logger.Error("failed to update task", "task_id", taskID, "error", err)
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// UpdateStatusAndOrder is the column-move primitive behind drag-and-drop.
// Both fields are written in one statement. Sibling tasks are not reordered;
// the stored order is exactly what the caller sent.
func (s *TaskService) UpdateStatusAndOrder(ctx context.Context, userID, taskID string, status domain.Status, order int) (*domain.Task, error) {
	ve := newValidationError()
	if !status.Valid() {
		ve.add("status", "Unknown task status")
	}
	if order < 0 {
		ve.add("order", "Order must not be negative")
	}
	if !ve.empty() {
		return nil, ve
	}

	own, err := s.guard.VerifyTaskOwnership(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if !own.Owned {
		return nil, ErrAccessDenied
	}

	task, err := s.tasks.UpdateStatusOrder(ctx, taskID, status, order)
	if err != nil {
		logger.Error("failed to move task", "task_id", taskID, "error", err)
		return nil, fmt.Errorf("move task: %w", err)
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	own, err := s.guard.VerifyTaskOwnership(ctx, userID, taskID)
	if err != nil {
		return err
	}
	if !own.Owned {
		return ErrAccessDenied
	}
	if err := s.tasks.Delete(ctx, taskID); err != nil {
		logger.Error("failed to delete task", "task_id", taskID, "error", err)
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// ListByProject returns a project's tasks for the board, ownership checked.
func (s *TaskService) ListByProject(ctx context.Context, userID, projectID string) ([]*domain.Task, error) {
	owned, err := s.guard.VerifyProjectOwnership(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, ErrAccessDenied
	}
	return s.tasks.ListByProject(ctx, projectID)
}

// CountByStatus aggregates the dashboard summary across all of the user's
// projects. No projects is not an error, just zeros.
func (s *TaskService) CountByStatus(ctx context.Context, userID string) (domain.TaskCounts, error) {
	return s.tasks.CountByOwner(ctx, userID)
}
