package repository

import (
	"context"
	"errors"

	"processcraft/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO tasks (id, title, description, status, "order", project_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		t.ID, t.Title, t.Description, t.Status, t.Order, t.ProjectID,
	).Scan(&t.CreatedAt)
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, title, COALESCE(description, ''), status, "order", project_id, created_at
		 FROM tasks
		 WHERE id = $1`,
		id,
	)
	return scanTask(row)
}

// GetWithProject fetches a task joined to its parent project, used by the
// ownership walk Task -> Project -> owner.
func (r *TaskRepository) GetWithProject(ctx context.Context, id string) (*domain.Task, *domain.Project, error) {
	row := r.db.QueryRow(ctx,
		`SELECT t.id, t.title, COALESCE(t.description, ''), t.status, t."order", t.project_id, t.created_at,
		        p.id, p.name, COALESCE(p.description, ''), p.owner_id, p.created_at
		 FROM tasks t
		 JOIN projects p ON p.id = t.project_id
		 WHERE t.id = $1`,
		id,
	)

	var t domain.Task
	var p domain.Project
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Order, &t.ProjectID, &t.CreatedAt,
		&p.ID, &p.Name, &p.Description, &p.OwnerID, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	return &t, &p, nil
}

// ListByProject returns the project's tasks in board order.
func (r *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, title, COALESCE(description, ''), status, "order", project_id, created_at
		 FROM tasks
		 WHERE project_id = $1
		 ORDER BY "order" ASC, created_at ASC`,
		projectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Order, &t.ProjectID, &t.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &t)
	}
	return res, rows.Err()
}

func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE tasks SET title = $1, description = $2, status = $3 WHERE id = $4`,
		t.Title, t.Description, t.Status, t.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatusOrder writes the column-move in a single statement so both
// fields land atomically.
func (r *TaskRepository) UpdateStatusOrder(ctx context.Context, id string, status domain.Status, order int) (*domain.Task, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE tasks SET status = $1, "order" = $2
		 WHERE id = $3
		 RETURNING id, title, COALESCE(description, ''), status, "order", project_id, created_at`,
		status, order, id,
	)
	return scanTask(row)
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByOwner aggregates task counts per status across every project the
// user owns. A user with no projects gets all zeros.
func (r *TaskRepository) CountByOwner(ctx context.Context, ownerID string) (domain.TaskCounts, error) {
	rows, err := r.db.Query(ctx,
		`SELECT t.status, COUNT(*)
		 FROM tasks t
		 JOIN projects p ON p.id = t.project_id
		 WHERE p.owner_id = $1
		 GROUP BY t.status`,
		ownerID,
	)
	if err != nil {
		return domain.TaskCounts{}, err
	}
	defer rows.Close()

	var counts domain.TaskCounts
	for rows.Next() {
		var status domain.Status
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return domain.TaskCounts{}, err
		}
		switch status {
		case domain.StatusToDo:
			counts.ToDo = n
		case domain.StatusInProgress:
			counts.InProgress = n
		case domain.StatusDone:
			counts.Done = n
		}
		counts.Total += n
	}
	return counts, rows.Err()
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Order, &t.ProjectID, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}
