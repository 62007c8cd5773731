package application

import (
	"github.com/hirehub/hirehub/board/job"
	"github.com/hirehub/hirehub/pkg/iam/user"
	"github.com/hirehub/hirehub/pkg/kernel"
)

// UpdateStatusRequest - DTO for a recruiter's decision on an application
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// StatusChangeResponse - DTO returned after a status update. The
// previous status lets callers detect an accepted/rejected reversal.
type StatusChangeResponse struct {
	Application    Application `json:"application"`
	PreviousStatus Status      `json:"previous_status"`
}

// AppliedJobResponse - a candidate's application joined with its job
type AppliedJobResponse struct {
	Application
	Job *job.JobResponse `json:"job,omitempty"`
}

// ApplicantResponse - a job's application joined with its candidate
type ApplicantResponse struct {
	Application
	Applicant *user.UserResponse `json:"applicant,omitempty"`
}

// PaginatedAppliedJobs is a paginated list of a candidate's applications
type PaginatedAppliedJobs = kernel.Paginated[AppliedJobResponse]

// PaginatedApplicants is a paginated list of a job's applicants
type PaginatedApplicants = kernel.Paginated[ApplicantResponse]
