package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"processcraft/internal/domain"
	"processcraft/internal/logger"
	"processcraft/internal/repository"

	"github.com/google/uuid"
)

type ProjectService struct {
	projects ProjectStore
	tasks    TaskStore
	guard    *Guard
}

func NewProjectService(projects ProjectStore, tasks TaskStore) *ProjectService {
	return &ProjectService{
		projects: projects,
		tasks:    tasks,
		guard:    NewGuard(projects, tasks),
	}
}

// ProjectUpdate carries a partial edit; nil fields are left untouched.
type ProjectUpdate struct {
	Name        *string
	Description *string
}

// ProjectWithTasks is the board page payload: the project plus its tasks in
// board order.
type ProjectWithTasks struct {
	Project *domain.Project `json:"project"`
	Tasks   []*domain.Task  `json:"tasks"`
}

func validateProjectName(ve *ValidationError, name string) {
	if utf8.RuneCountInString(name) < 2 {
		ve.add("name", "Project name must be at least 2 characters long")
	} else if utf8.RuneCountInString(name) > 100 {
		ve.add("name", "Project name must be less than 100 characters")
	}
}

func (s *ProjectService) Create(ctx context.Context, userID, name, description string) (*domain.Project, error) {
	name = strings.TrimSpace(name)

	ve := newValidationError()
	validateProjectName(ve, name)
	if !ve.empty() {
		return nil, ve
	}

	project := &domain.Project{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		OwnerID:     userID,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		logger.Error("failed to create project", "error", err)
		return nil, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) List(ctx context.Context, userID string) ([]*domain.Project, error) {
	return s.projects.ListByOwner(ctx, userID)
}

// GetWithTasks loads one project and its tasks. A foreign or missing project
// is ErrAccessDenied either way.
func (s *ProjectService) GetWithTasks(ctx context.Context, userID, projectID string) (*ProjectWithTasks, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccessDenied
		}
		return nil, err
	}
	if project.OwnerID != userID {
		return nil, ErrAccessDenied
	}

	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return &ProjectWithTasks{Project: project, Tasks: tasks}, nil
}

func (s *ProjectService) Update(ctx context.Context, userID, projectID string, upd ProjectUpdate) (*domain.Project, error) {
	ve := newValidationError()
	if upd.Name != nil {
		*upd.Name = strings.TrimSpace(*upd.Name)
		validateProjectName(ve, *upd.Name)
	}
	if !ve.empty() {
		return nil, ve
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccessDenied
		}
		return nil, err
	}
	if project.OwnerID != userID {
		return nil, ErrAccessDenied
	}

	if upd.Name != nil {
		project.Name = *upd.Name
	}
	if upd.Description != nil {
		project.Description = *upd.Description
	}
	if err := s.projects.Update(ctx, project); err != nil {
		logger.Error("failed to update project", "project_id", projectID, "error", err)
		return nil, fmt.Errorf("update project: %w", err)
	}
	return project, nil
}

// Delete removes the project and, through the persistence cascade, every
// task inside it.
func (s *ProjectService) Delete(ctx context.Context, userID, projectID string) error {
	owned, err := s.guard.VerifyProjectOwnership(ctx, userID, projectID)
	if err != nil {
		return err
	}
	if !owned {
		return ErrAccessDenied
	}
	if err := s.projects.Delete(ctx, projectID); err != nil {
		logger.Error("failed to delete project", "project_id", projectID, "error", err)
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}
