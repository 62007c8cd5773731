package job

import (
	"context"
	"time"

	"github.com/hirehub/hirehub/pkg/kernel"
)

// SearchFilter narrows job listings
type SearchFilter struct {
	// Keyword matches title, description and location, case-insensitively
	Keyword string
	// ShowExpired includes postings whose stored is_active flag is false
	ShowExpired bool
}

// Stats summarizes the board by expiration state at a point in time
type Stats struct {
	Total   int64 `json:"total" db:"total"`
	Active  int64 `json:"active" db:"active"`
	Expired int64 `json:"expired" db:"expired"`
}

type Repository interface {
	// Create creates a new job
	Create(ctx context.Context, job *Job) error

	// Update updates an existing job
	Update(ctx context.Context, id kernel.JobID, job *Job) error

	// GetByID retrieves a job by ID
	GetByID(ctx context.Context, id kernel.JobID) (*Job, error)

	// List retrieves jobs matching the filter with pagination
	List(ctx context.Context, filter SearchFilter, pagination kernel.PaginationOptions) (*kernel.Paginated[Job], error)

	// ListByCreator retrieves jobs posted by a specific recruiter
	ListByCreator(ctx context.Context, creatorID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[Job], error)

	// DeactivateExpired flips is_active to false for every active job
	// whose expiration has passed, returning how many changed
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)

	// CountStats summarizes the board by expiration date against now
	CountStats(ctx context.Context, now time.Time) (Stats, error)

	// CountApplications counts applications submitted against a job
	CountApplications(ctx context.Context, jobID kernel.JobID) (int64, error)
}

// ApplicationChecker answers whether a user already applied to a job.
// Satisfied by the application repository.
type ApplicationChecker interface {
	HasApplied(ctx context.Context, jobID kernel.JobID, applicantID kernel.UserID) (bool, error)
}
