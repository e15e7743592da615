package repository

import (
	"context"
	"errors"

	"processcraft/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProjectRepository struct {
	db *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO projects (id, name, description, owner_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		p.ID, p.Name, p.Description, p.OwnerID,
	).Scan(&p.CreatedAt)
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, COALESCE(description, ''), owner_id, created_at
		 FROM projects
		 WHERE id = $1`,
		id,
	)
	return scanProject(row)
}

// ListByOwner returns the owner's projects, newest first.
func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Project, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, COALESCE(description, ''), owner_id, created_at
		 FROM projects
		 WHERE owner_id = $1
		 ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Project
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.OwnerID, &p.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &p)
	}
	return res, rows.Err()
}

func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE projects SET name = $1, description = $2 WHERE id = $3`,
		p.Name, p.Description, p.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the project; child tasks go with it via the FK cascade.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.OwnerID, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
