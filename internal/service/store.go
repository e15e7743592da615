package service

import (
	"context"

	"processcraft/internal/domain"
)

// The store interfaces mirror the persistence service contract. The pgx
// repositories satisfy them in production; tests substitute in-memory fakes.

type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type ProjectStore interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type TaskStore interface {
	Create(ctx context.Context, t *domain.Task) error
	GetWithProject(ctx context.Context, id string) (*domain.Task, *domain.Project, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	UpdateStatusOrder(ctx context.Context, id string, status domain.Status, order int) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	CountByOwner(ctx context.Context, ownerID string) (domain.TaskCounts, error)
}
