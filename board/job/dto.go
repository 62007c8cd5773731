package job

import (
	"time"

	"github.com/hirehub/hirehub/pkg/kernel"
)

// CreateJobRequest - DTO for posting a job.
// Requirements arrive as a single comma-separated string.
type CreateJobRequest struct {
	Title           string           `json:"title" validate:"required"`
	Description     string           `json:"description" validate:"required"`
	Requirements    string           `json:"requirements" validate:"required"`
	Salary          float64          `json:"salary" validate:"gte=0"`
	Location        string           `json:"location" validate:"required"`
	JobType         string           `json:"job_type" validate:"required"`
	ExperienceLevel string           `json:"experience_level" validate:"required"`
	Positions       int              `json:"positions" validate:"required,gt=0"`
	CompanyID       kernel.CompanyID `json:"company_id" validate:"required"`
	ExpirationDate  *time.Time       `json:"expiration_date,omitempty"`
}

// UpdateJobRequest - DTO for the full field replace of an update
type UpdateJobRequest struct {
	Title           string     `json:"title" validate:"required"`
	Description     string     `json:"description" validate:"required"`
	Requirements    string     `json:"requirements" validate:"required"`
	Salary          float64    `json:"salary" validate:"gte=0"`
	Location        string     `json:"location" validate:"required"`
	JobType         string     `json:"job_type" validate:"required"`
	ExperienceLevel string     `json:"experience_level" validate:"required"`
	Positions       int        `json:"positions" validate:"required,gt=0"`
	ExpirationDate  *time.Time `json:"expiration_date,omitempty"`
}

// ExtendJobRequest - DTO for pushing a job's expiration forward
type ExtendJobRequest struct {
	Days int `json:"days" validate:"required,gt=0"`
}

// ExtendJobResponse - DTO returned after an extension
type ExtendJobResponse struct {
	JobID             kernel.JobID `json:"job_id"`
	NewExpirationDate time.Time    `json:"new_expiration_date"`
}

// JobResponse - DTO for returning a job with its derived status.
// HasApplied is set on student reads, ApplicationCount on the
// recruiter's own listing.
type JobResponse struct {
	Job
	Status           Status `json:"status"`
	HasApplied       *bool  `json:"has_applied,omitempty"`
	ApplicationCount *int64 `json:"application_count,omitempty"`
}

// PaginatedJobsResponse is a paginated list of job responses
type PaginatedJobsResponse = kernel.Paginated[JobResponse]

// ListJobsResponse - DTO for the job board listing with its summary
type ListJobsResponse struct {
	PaginatedJobsResponse
	Stats Stats `json:"stats"`
}

// ToResponse converts a Job entity to its response DTO with status
// derived at the given instant
func ToResponse(j *Job, now time.Time) JobResponse {
	return JobResponse{
		Job:    *j,
		Status: j.StatusAt(now),
	}
}
