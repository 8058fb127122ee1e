package pgsql

import (
	"context"
	"errors"

	"github.com/caixadigital/cashbook_app/internal/apperrors"
	"github.com/caixadigital/cashbook_app/internal/core/domain"
	portsrepo "github.com/caixadigital/cashbook_app/internal/core/ports/repositories"
	"github.com/caixadigital/cashbook_app/internal/models"
	"github.com/caixadigital/cashbook_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxProjectRepository struct {
	BaseRepository
}

// newPgxProjectRepository creates a new repository for project data.
func newPgxProjectRepository(pool *pgxpool.Pool) portsrepo.ProjectRepositoryFacade {
	return &PgxProjectRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxProjectRepository implements portsrepo.ProjectRepositoryFacade
var _ portsrepo.ProjectRepositoryFacade = (*PgxProjectRepository)(nil)

const projectSelectQuery = `
SELECT
	p.project_id, p.name, p.description, p.is_active,
	p.created_at, p.created_by, p.last_updated_at, p.last_updated_by
FROM projects p
`

// getProjects runs the select query with the given filter and collects rows.
func (r *PgxProjectRepository) getProjects(ctx context.Context, filterQuery string, args ...any) ([]domain.Project, error) {
	query := projectSelectQuery + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query projects", err)
	}
	defer rows.Close()

	modelProjects := []models.Project{}
	for rows.Next() {
		var m models.Project
		err := rows.Scan(
			&m.ProjectID,
			&m.Name,
			&m.Description,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan project row", err)
		}
		modelProjects = append(modelProjects, m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating project rows", err)
	}

	return mapping.ToDomainProjectSlice(modelProjects), nil
}

func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	query := `
		INSERT INTO projects (
			project_id, name, description, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		project.ProjectID,
		project.Name,
		project.Description,
		project.IsActive,
		project.CreatedAt,
		project.CreatedBy,
		project.LastUpdatedAt,
		project.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError("project ID " + project.ProjectID + " already exists")
			}
		}
		return apperrors.NewAppError(500, "failed to save project "+project.ProjectID, err)
	}
	return nil
}

func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	query := `WHERE p.project_id = $1`
	projects, err := r.getProjects(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &projects[0], nil
}

// ListProjectsByUserID retrieves every project the user is a member of.
// Inactive projects are only listed for admins.
func (r *PgxProjectRepository) ListProjectsByUserID(ctx context.Context, userID string, includeDisabled bool) ([]domain.Project, error) {
	baseQuery := `JOIN project_users pu ON p.project_id = pu.project_id WHERE pu.user_id = $1 AND pu.role != $2`

	var whereClause string
	args := []any{userID, domain.RoleRemoved}

	if !includeDisabled {
		whereClause = " AND p.is_active = true"
	} else {
		whereClause = " AND (p.is_active = true OR pu.role = $3)"
		args = append(args, domain.RoleAdmin)
	}

	query := baseQuery + whereClause + " ORDER BY p.name;"

	return r.getProjects(ctx, query, args...)
}

func (r *PgxProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	query := `
		UPDATE projects
		SET name = $2, description = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE project_id = $1;
	`
	result, err := r.Pool.Exec(ctx, query,
		project.ProjectID,
		project.Name,
		project.Description,
		project.IsActive,
		project.LastUpdatedAt,
		project.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update project "+project.ProjectID, err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("project not found")
	}

	return nil
}

func (r *PgxProjectRepository) AddUserToProject(ctx context.Context, membership domain.UserProject) error {
	query := `
		INSERT INTO project_users (user_id, project_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, project_id) DO UPDATE SET role = EXCLUDED.role;
	` // Upsert: Add user or update their role if they already exist
	_, err := r.Pool.Exec(ctx, query,
		membership.UserID,
		membership.ProjectID,
		membership.Role,
		membership.JoinedAt,
	)

	if err != nil {
		return apperrors.NewAppError(500, "failed to add/update user "+membership.UserID+" in project "+membership.ProjectID, err)
	}
	return nil
}

func (r *PgxProjectRepository) FindUserProjectRole(ctx context.Context, userID, projectID string) (*domain.UserProject, error) {
	query := `
		SELECT user_id, project_id, role, joined_at
		FROM project_users
		WHERE user_id = $1 AND project_id = $2;
	`
	var up domain.UserProject
	err := r.Pool.QueryRow(ctx, query, userID, projectID).Scan(
		&up.UserID,
		&up.ProjectID,
		&up.Role,
		&up.JoinedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("project membership not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find user "+userID+" project role in "+projectID, err)
	}
	return &up, nil
}

// ListProjectUsers retrieves all memberships of a project, excluding removed
// members.
func (r *PgxProjectRepository) ListProjectUsers(ctx context.Context, projectID string) ([]domain.UserProject, error) {
	query := `
		SELECT pu.user_id, u.name AS user_name, pu.project_id, pu.role, pu.joined_at
		FROM project_users pu
		JOIN users u ON pu.user_id = u.user_id
		WHERE pu.project_id = $1 AND pu.role != $2
		ORDER BY pu.joined_at DESC;
	`

	rows, err := r.Pool.Query(ctx, query, projectID, domain.RoleRemoved)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query users for project "+projectID, err)
	}
	defer rows.Close()

	var memberships []domain.UserProject
	for rows.Next() {
		var up domain.UserProject
		err := rows.Scan(
			&up.UserID,
			&up.UserName,
			&up.ProjectID,
			&up.Role,
			&up.JoinedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan project membership row", err)
		}
		memberships = append(memberships, up)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating project membership rows", err)
	}

	return memberships, nil
}

// UpdateUserProjectRole updates a user's role in a project.
func (r *PgxProjectRepository) UpdateUserProjectRole(ctx context.Context, userID, projectID string, role domain.UserProjectRole) error {
	query := `
		UPDATE project_users
		SET role = $3
		WHERE user_id = $1 AND project_id = $2;
	`

	result, err := r.Pool.Exec(ctx, query, userID, projectID, role)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update role for user "+userID+" in project "+projectID, err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("project membership not found")
	}

	return nil
}
