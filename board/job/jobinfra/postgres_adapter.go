package jobinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hirehub/hirehub/board/job"
	"github.com/hirehub/hirehub/pkg/kernel"
	"github.com/jmoiron/sqlx"
)

// PostgresJobRepository implements job.Repository using PostgreSQL
type PostgresJobRepository struct {
	db *sqlx.DB
}

// NewPostgresJobRepository creates a new PostgreSQL job repository
func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type jobModel struct {
	ID              string          `db:"id"`
	Title           string          `db:"title"`
	Description     string          `db:"description"`
	Requirements    json.RawMessage `db:"requirements"`
	Salary          float64         `db:"salary"`
	Location        string          `db:"location"`
	JobType         string          `db:"job_type"`
	ExperienceLevel string          `db:"experience_level"`
	Positions       int             `db:"positions"`
	CompanyID       string          `db:"company_id"`
	CreatedBy       string          `db:"created_by"`
	ExpirationDate  time.Time       `db:"expiration_date"`
	IsActive        bool            `db:"is_active"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

// toEntity converts database model to domain entity
func (m *jobModel) toEntity() (*job.Job, error) {
	var requirements []string
	if len(m.Requirements) > 0 {
		if err := json.Unmarshal(m.Requirements, &requirements); err != nil {
			return nil, fmt.Errorf("failed to unmarshal requirements: %w", err)
		}
	}

	return &job.Job{
		ID:              kernel.JobID(m.ID),
		Title:           m.Title,
		Description:     m.Description,
		Requirements:    requirements,
		Salary:          m.Salary,
		Location:        m.Location,
		JobType:         m.JobType,
		ExperienceLevel: m.ExperienceLevel,
		Positions:       m.Positions,
		CompanyID:       kernel.CompanyID(m.CompanyID),
		CreatedBy:       kernel.UserID(m.CreatedBy),
		ExpirationDate:  m.ExpirationDate,
		IsActive:        m.IsActive,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}, nil
}

// fromEntity converts domain entity to database model
func fromEntity(j *job.Job) (*jobModel, error) {
	requirements, err := json.Marshal(j.Requirements)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal requirements: %w", err)
	}

	return &jobModel{
		ID:              string(j.ID),
		Title:           j.Title,
		Description:     j.Description,
		Requirements:    requirements,
		Salary:          j.Salary,
		Location:        j.Location,
		JobType:         j.JobType,
		ExperienceLevel: j.ExperienceLevel,
		Positions:       j.Positions,
		CompanyID:       string(j.CompanyID),
		CreatedBy:       string(j.CreatedBy),
		ExpirationDate:  j.ExpirationDate,
		IsActive:        j.IsActive,
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
	}, nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new job
func (r *PostgresJobRepository) Create(ctx context.Context, jobEntity *job.Job) error {
	model, err := fromEntity(jobEntity)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO jobs (
			id, title, description, requirements, salary, location,
			job_type, experience_level, positions, company_id,
			created_by, expiration_date, is_active, created_at, updated_at
		) VALUES (
			:id, :title, :description, :requirements, :salary, :location,
			:job_type, :experience_level, :positions, :company_id,
			:created_by, :expiration_date, :is_active, :created_at, :updated_at
		)
	`

	_, err = r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// Update updates an existing job
func (r *PostgresJobRepository) Update(ctx context.Context, id kernel.JobID, jobEntity *job.Job) error {
	model, err := fromEntity(jobEntity)
	if err != nil {
		return err
	}

	query := `
		UPDATE jobs SET
			title = :title,
			description = :description,
			requirements = :requirements,
			salary = :salary,
			location = :location,
			job_type = :job_type,
			experience_level = :experience_level,
			positions = :positions,
			expiration_date = :expiration_date,
			is_active = :is_active,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return job.ErrJobNotFound()
	}

	return nil
}

// GetByID retrieves a job by ID
func (r *PostgresJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	query := `
		SELECT
			id, title, description, requirements, salary, location,
			job_type, experience_level, positions, company_id,
			created_by, expiration_date, is_active, created_at, updated_at
		FROM jobs
		WHERE id = $1
	`

	var model jobModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, job.ErrJobNotFound()
		}
		return nil, fmt.Errorf("failed to get job by id: %w", err)
	}

	return model.toEntity()
}

// List retrieves jobs matching the filter with pagination
func (r *PostgresJobRepository) List(ctx context.Context, filter job.SearchFilter, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	whereConditions := []string{}
	args := []interface{}{}
	argCount := 1

	if filter.Keyword != "" {
		whereConditions = append(whereConditions, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d OR location ILIKE $%d)", argCount, argCount, argCount))
		args = append(args, "%"+filter.Keyword+"%")
		argCount++
	}

	if !filter.ShowExpired {
		whereConditions = append(whereConditions, "is_active = true")
	}

	whereClause := ""
	if len(whereConditions) > 0 {
		whereClause = "WHERE " + whereConditions[0]
		for i := 1; i < len(whereConditions); i++ {
			whereClause += " AND " + whereConditions[i]
		}
	}

	// Count total
	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM jobs %s", whereClause)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}

	// Get paginated results
	query := fmt.Sprintf(`
		SELECT
			id, title, description, requirements, salary, location,
			job_type, experience_level, positions, company_id,
			created_by, expiration_date, is_active, created_at, updated_at
		FROM jobs
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argCount, argCount+1)

	args = append(args, pagination.PageSize, pagination.Offset())

	var models []jobModel
	err := r.db.SelectContext(ctx, &models, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	entities, err := toEntities(models)
	if err != nil {
		return nil, err
	}

	return &kernel.Paginated[job.Job]{
		Items: entities,
		Page:  kernel.NewPage(pagination, total),
		Empty: len(entities) == 0,
	}, nil
}

// ListByCreator retrieves jobs posted by a specific recruiter
func (r *PostgresJobRepository) ListByCreator(ctx context.Context, creatorID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	// Count total
	var total int
	countQuery := `SELECT COUNT(*) FROM jobs WHERE created_by = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, string(creatorID)); err != nil {
		return nil, fmt.Errorf("failed to count creator jobs: %w", err)
	}

	query := `
		SELECT
			id, title, description, requirements, salary, location,
			job_type, experience_level, positions, company_id,
			created_by, expiration_date, is_active, created_at, updated_at
		FROM jobs
		WHERE created_by = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var models []jobModel
	err := r.db.SelectContext(ctx, &models, query, string(creatorID), pagination.PageSize, pagination.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list creator jobs: %w", err)
	}

	entities, err := toEntities(models)
	if err != nil {
		return nil, err
	}

	return &kernel.Paginated[job.Job]{
		Items: entities,
		Page:  kernel.NewPage(pagination, total),
		Empty: len(entities) == 0,
	}, nil
}

// DeactivateExpired flips is_active to false for every active job whose
// expiration has passed. A single batch UPDATE keeps the sweep atomic
// and idempotent.
func (r *PostgresJobRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE jobs
		SET is_active = false, updated_at = $1
		WHERE is_active = true AND expiration_date < $1
	`

	result, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate expired jobs: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows, nil
}

// CountStats summarizes the board by expiration date against now.
// Counts derive from the timestamp, not the cached is_active flag.
func (r *PostgresJobRepository) CountStats(ctx context.Context, now time.Time) (job.Stats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE expiration_date >= $1) AS active,
			COUNT(*) FILTER (WHERE expiration_date < $1) AS expired
		FROM jobs
	`

	var stats job.Stats
	err := r.db.GetContext(ctx, &stats, query, now)
	if err != nil {
		return job.Stats{}, fmt.Errorf("failed to count job stats: %w", err)
	}

	return stats, nil
}

// CountApplications counts applications submitted against a job
func (r *PostgresJobRepository) CountApplications(ctx context.Context, jobID kernel.JobID) (int64, error) {
	query := `SELECT COUNT(*) FROM applications WHERE job_id = $1`

	var count int64
	err := r.db.GetContext(ctx, &count, query, string(jobID))
	if err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}

	return count, nil
}

// toEntities converts a slice of models, failing on the first bad row
func toEntities(models []jobModel) ([]job.Job, error) {
	entities := make([]job.Job, 0, len(models))
	for i := range models {
		entity, err := models[i].toEntity()
		if err != nil {
			return nil, err
		}
		entities = append(entities, *entity)
	}
	return entities, nil
}
