package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/ayemen27/siteledger/internal/domain"
	"github.com/ayemen27/siteledger/internal/infrastructure/postgres/generated"
)

// ProjectRepository implements usecase.ProjectRepository.
type ProjectRepository struct {
	queries *generated.Queries
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(db generated.DBTX) *ProjectRepository {
	return &ProjectRepository{queries: generated.New(db)}
}

// GetByID retrieves a project by ID.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row, err := r.queries.GetProject(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}

		return nil, err
	}

	return rowToProject(row), nil
}

// ListActive returns active projects ordered by creation time.
func (r *ProjectRepository) ListActive(ctx context.Context) ([]*domain.Project, error) {
	rows, err := r.queries.ListActiveProjects(ctx)
	if err != nil {
		return nil, err
	}

	projects := make([]*domain.Project, len(rows))
	for i, row := range rows {
		projects[i] = rowToProject(row)
	}

	return projects, nil
}

func rowToProject(row generated.Project) *domain.Project {
	p := &domain.Project{
		ID:        row.ID,
		Name:      row.Name,
		Status:    row.Status,
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt.Time,
	}

	if row.Description.Valid {
		desc := row.Description.String
		p.Description = &desc
	}

	return p
}
