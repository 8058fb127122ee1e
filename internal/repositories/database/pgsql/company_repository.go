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

type PgxCompanyRepository struct {
	BaseRepository
}

// newPgxCompanyRepository creates a new repository for company data.
func newPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCompanyRepository implements portsrepo.CompanyRepositoryFacade
var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

const companyColumns = `company_id, project_id, name, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanCompanyRow(row pgx.Row) (models.Company, error) {
	var m models.Company
	err := row.Scan(
		&m.CompanyID,
		&m.ProjectID,
		&m.Name,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveCompany inserts a new company.
func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	modelCompany := mapping.ToModelCompany(company)

	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelCompany.CompanyID,
		modelCompany.ProjectID,
		modelCompany.Name,
		modelCompany.IsActive,
		modelCompany.CreatedAt,
		modelCompany.CreatedBy,
		modelCompany.LastUpdatedAt,
		modelCompany.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError("company ID " + modelCompany.CompanyID + " already exists")
			}
		}
		return apperrors.NewAppError(500, "failed to save company "+modelCompany.CompanyID, err)
	}
	return nil
}

// FindCompanyByID retrieves a company by its ID.
func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `
		SELECT ` + companyColumns + `
		FROM companies
		WHERE company_id = $1;
	`
	modelCompany, err := scanCompanyRow(r.Pool.QueryRow(ctx, query, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find company by ID "+companyID, err)
	}

	domainCompany := mapping.ToDomainCompany(modelCompany)
	return &domainCompany, nil
}

// ListCompanies retrieves all active companies of a project.
func (r *PgxCompanyRepository) ListCompanies(ctx context.Context, projectID string) ([]domain.Company, error) {
	query := `
		SELECT ` + companyColumns + `
		FROM companies
		WHERE project_id = $1 AND is_active = TRUE
		ORDER BY name;
	`

	rows, err := r.Pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query companies for project "+projectID, err)
	}
	defer rows.Close()

	modelCompanies := []models.Company{}
	for rows.Next() {
		m, scanErr := scanCompanyRow(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan company row for project "+projectID, scanErr)
		}
		modelCompanies = append(modelCompanies, m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating company rows for project "+projectID, err)
	}

	return mapping.ToDomainCompanySlice(modelCompanies), nil
}

// UpdateCompany updates an existing company.
func (r *PgxCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	modelCompany := mapping.ToModelCompany(company)

	query := `
		UPDATE companies
		SET name = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE company_id = $1;
	`
	result, err := r.Pool.Exec(ctx, query,
		modelCompany.CompanyID,
		modelCompany.Name,
		modelCompany.IsActive,
		modelCompany.LastUpdatedAt,
		modelCompany.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update company "+modelCompany.CompanyID, err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("company not found")
	}

	return nil
}
