package companyinfra

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hirehub/hirehub/board/company"
	"github.com/hirehub/hirehub/pkg/kernel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresCompanyRepository implements company.Repository using PostgreSQL
type PostgresCompanyRepository struct {
	db *sqlx.DB
}

// NewPostgresCompanyRepository creates a new PostgreSQL company repository
func NewPostgresCompanyRepository(db *sqlx.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{
		db: db,
	}
}

// Create creates a new company
func (r *PostgresCompanyRepository) Create(ctx context.Context, companyEntity *company.Company) error {
	query := `
		INSERT INTO companies (
			id, name, description, website, location, logo_url,
			owner_id, created_at, updated_at
		) VALUES (
			:id, :name, :description, :website, :location, :logo_url,
			:owner_id, :created_at, :updated_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, companyEntity)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation on name
				return company.ErrNameTaken()
			}
		}
		return fmt.Errorf("failed to create company: %w", err)
	}

	return nil
}

// Update updates an existing company
func (r *PostgresCompanyRepository) Update(ctx context.Context, id kernel.CompanyID, companyEntity *company.Company) error {
	query := `
		UPDATE companies SET
			name = :name,
			description = :description,
			website = :website,
			location = :location,
			logo_url = :logo_url,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, companyEntity)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" {
				return company.ErrNameTaken()
			}
		}
		return fmt.Errorf("failed to update company: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return company.ErrCompanyNotFound()
	}

	return nil
}

// GetByID retrieves a company by ID
func (r *PostgresCompanyRepository) GetByID(ctx context.Context, id kernel.CompanyID) (*company.Company, error) {
	query := `
		SELECT
			id, name, description, website, location, logo_url,
			owner_id, created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	var model company.Company
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, company.ErrCompanyNotFound()
		}
		return nil, fmt.Errorf("failed to get company by id: %w", err)
	}

	return &model, nil
}

// GetByName retrieves a company by its unique name
func (r *PostgresCompanyRepository) GetByName(ctx context.Context, name string) (*company.Company, error) {
	query := `
		SELECT
			id, name, description, website, location, logo_url,
			owner_id, created_at, updated_at
		FROM companies
		WHERE name = $1
	`

	var model company.Company
	err := r.db.GetContext(ctx, &model, query, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, company.ErrCompanyNotFound()
		}
		return nil, fmt.Errorf("failed to get company by name: %w", err)
	}

	return &model, nil
}

// ListByOwner retrieves all companies registered by a recruiter
func (r *PostgresCompanyRepository) ListByOwner(ctx context.Context, ownerID kernel.UserID) ([]company.Company, error) {
	query := `
		SELECT
			id, name, description, website, location, logo_url,
			owner_id, created_at, updated_at
		FROM companies
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	companies := []company.Company{}
	err := r.db.SelectContext(ctx, &companies, query, string(ownerID))
	if err != nil {
		return nil, fmt.Errorf("failed to list companies by owner: %w", err)
	}

	return companies, nil
}
