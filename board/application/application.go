package application

import (
	"strings"
	"time"

	"github.com/hirehub/hirehub/pkg/kernel"
)

// Status represents the state of an application
type Status string

const (
	StatusPending  Status = "pending"  // Submitted, awaiting recruiter review
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Application is a candidate's record of intent to be considered for one job
type Application struct {
	ID          kernel.ApplicationID `db:"id" json:"id"`
	JobID       kernel.JobID         `db:"job_id" json:"job_id"`
	ApplicantID kernel.UserID        `db:"applicant_id" json:"applicant_id"`
	Status      Status               `db:"status" json:"status"`
	CreatedAt   time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time            `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsPending checks if the application is still awaiting review
func (a *Application) IsPending() bool {
	return a.Status == StatusPending
}

// SetStatus overwrites the status unconditionally and returns the
// previous value. Recruiters may flip accepted and rejected freely to
// correct mistakes; callers expose the previous status so a reversal
// is visible.
func (a *Application) SetStatus(newStatus Status) Status {
	previous := a.Status
	a.Status = newStatus
	a.UpdatedAt = time.Now()
	return previous
}

// ParseDecision parses a recruiter's status decision case-insensitively.
// Only accepted and rejected are valid decisions; pending is the
// initial state and cannot be re-entered.
func ParseDecision(raw string) (Status, error) {
	switch Status(strings.ToLower(raw)) {
	case StatusAccepted:
		return StatusAccepted, nil
	case StatusRejected:
		return StatusRejected, nil
	default:
		return "", ErrInvalidStatus().WithDetail("status", raw)
	}
}
