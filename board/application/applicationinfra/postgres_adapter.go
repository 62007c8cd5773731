package applicationinfra

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hirehub/hirehub/board/application"
	"github.com/hirehub/hirehub/pkg/kernel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresApplicationRepository implements application.Repository using
// PostgreSQL. The applications table carries UNIQUE (job_id,
// applicant_id), which is what actually guarantees one application per
// candidate per job under concurrent submissions.
type PostgresApplicationRepository struct {
	db *sqlx.DB
}

// NewPostgresApplicationRepository creates a new PostgreSQL application repository
func NewPostgresApplicationRepository(db *sqlx.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{
		db: db,
	}
}

// Create persists a new application
func (r *PostgresApplicationRepository) Create(ctx context.Context, applicationEntity *application.Application) error {
	query := `
		INSERT INTO applications (
			id, job_id, applicant_id, status, created_at, updated_at
		) VALUES (
			:id, :job_id, :applicant_id, :status, :created_at, :updated_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, applicationEntity)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation on (job_id, applicant_id)
				return application.ErrAlreadyApplied()
			}
			if pqErr.Code == "23503" { // foreign_key_violation
				return fmt.Errorf("invalid job or applicant reference: %w", err)
			}
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

// Update updates an existing application
func (r *PostgresApplicationRepository) Update(ctx context.Context, id kernel.ApplicationID, applicationEntity *application.Application) error {
	query := `
		UPDATE applications SET
			status = :status,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, applicationEntity)
	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return application.ErrApplicationNotFound()
	}

	return nil
}

// GetByID retrieves an application by ID
func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	query := `
		SELECT id, job_id, applicant_id, status, created_at, updated_at
		FROM applications
		WHERE id = $1
	`

	var model application.Application
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, application.ErrApplicationNotFound()
		}
		return nil, fmt.Errorf("failed to get application by id: %w", err)
	}

	return &model, nil
}

// HasApplied checks whether an application exists for the pair
func (r *PostgresApplicationRepository) HasApplied(ctx context.Context, jobID kernel.JobID, applicantID kernel.UserID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND applicant_id = $2)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, string(jobID), string(applicantID))
	if err != nil {
		return false, fmt.Errorf("failed to check application existence: %w", err)
	}

	return exists, nil
}

// ListByApplicant retrieves a candidate's applications, newest first
func (r *PostgresApplicationRepository) ListByApplicant(ctx context.Context, applicantID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM applications WHERE applicant_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, string(applicantID)); err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}

	query := `
		SELECT id, job_id, applicant_id, status, created_at, updated_at
		FROM applications
		WHERE applicant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	applications := []application.Application{}
	err := r.db.SelectContext(ctx, &applications, query, string(applicantID), pagination.PageSize, pagination.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list applications by applicant: %w", err)
	}

	return &kernel.Paginated[application.Application]{
		Items: applications,
		Page:  kernel.NewPage(pagination, total),
		Empty: len(applications) == 0,
	}, nil
}

// ListByJob retrieves a job's applications in application order
func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID kernel.JobID, pagination kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM applications WHERE job_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, string(jobID)); err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}

	query := `
		SELECT id, job_id, applicant_id, status, created_at, updated_at
		FROM applications
		WHERE job_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`

	applications := []application.Application{}
	err := r.db.SelectContext(ctx, &applications, query, string(jobID), pagination.PageSize, pagination.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list applications by job: %w", err)
	}

	return &kernel.Paginated[application.Application]{
		Items: applications,
		Page:  kernel.NewPage(pagination, total),
		Empty: len(applications) == 0,
	}, nil
}
