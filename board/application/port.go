package application

import (
	"context"

	"github.com/hirehub/hirehub/pkg/kernel"
)

type Repository interface {
	// Create persists a new application. The store enforces the
	// uniqueness of (job_id, applicant_id); a duplicate insert fails
	// with ErrAlreadyApplied.
	Create(ctx context.Context, application *Application) error

	// Update updates an existing application
	Update(ctx context.Context, id kernel.ApplicationID, application *Application) error

	// GetByID retrieves an application by ID
	GetByID(ctx context.Context, id kernel.ApplicationID) (*Application, error)

	// HasApplied checks whether an application exists for the pair
	HasApplied(ctx context.Context, jobID kernel.JobID, applicantID kernel.UserID) (bool, error)

	// ListByApplicant retrieves a candidate's applications, newest first
	ListByApplicant(ctx context.Context, applicantID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[Application], error)

	// ListByJob retrieves a job's applications in application order
	ListByJob(ctx context.Context, jobID kernel.JobID, pagination kernel.PaginationOptions) (*kernel.Paginated[Application], error)
}
