package job

import (
	"strings"
	"time"

	"github.com/hirehub/hirehub/pkg/kernel"
)

// DefaultValidityDays is the posting window applied when no expiration is given
const DefaultValidityDays = 20

// Job is a recruiter-owned posting with a bounded validity window
type Job struct {
	ID              kernel.JobID     `db:"id" json:"id"`
	Title           string           `db:"title" json:"title"`
	Description     string           `db:"description" json:"description"`
	Requirements    []string         `db:"requirements" json:"requirements"`
	Salary          float64          `db:"salary" json:"salary"`
	Location        string           `db:"location" json:"location"`
	JobType         string           `db:"job_type" json:"job_type"`
	ExperienceLevel string           `db:"experience_level" json:"experience_level"`
	Positions       int              `db:"positions" json:"positions"`
	CompanyID       kernel.CompanyID `db:"company_id" json:"company_id"`
	CreatedBy       kernel.UserID    `db:"created_by" json:"created_by"`
	ExpirationDate  time.Time        `db:"expiration_date" json:"expiration_date"`
	IsActive        bool             `db:"is_active" json:"is_active"`
	CreatedAt       time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time        `db:"updated_at" json:"updated_at"`
}

// Status is the time-derived view of a posting's validity.
// The stored is_active flag lags behind the sweep; this is computed
// fresh on every read and is authoritative for display.
type Status struct {
	IsExpired     bool `json:"is_expired"`
	IsActive      bool `json:"is_active"`
	RemainingDays int  `json:"remaining_days"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsCreatedBy checks whether the given user posted this job
func (j *Job) IsCreatedBy(userID kernel.UserID) bool {
	return j.CreatedBy == userID
}

// StatusAt derives the expiration view of this job at the given instant
func (j *Job) StatusAt(now time.Time) Status {
	remaining := 0
	if j.ExpirationDate.After(now) {
		// Ceiling: a partial day still counts as one remaining day
		remaining = int((j.ExpirationDate.Sub(now) + 24*time.Hour - 1) / (24 * time.Hour))
	}

	return Status{
		IsExpired:     now.After(j.ExpirationDate),
		IsActive:      j.IsActive,
		RemainingDays: remaining,
	}
}

// ExtendBy pushes the expiration forward by whole days from its current
// value (not from now) and reactivates the posting. The extension may
// leave the expiration still in the past; the next sweep reconciles it.
func (j *Job) ExtendBy(days int) time.Time {
	j.ExpirationDate = j.ExpirationDate.Add(time.Duration(days) * 24 * time.Hour)
	j.IsActive = true
	j.UpdatedAt = time.Now()
	return j.ExpirationDate
}

// ReplaceDetails performs the full field replace of an update and
// reactivates the posting
func (j *Job) ReplaceDetails(title, description string, requirements []string, salary float64, location, jobType, experienceLevel string, positions int, expirationDate time.Time) {
	j.Title = title
	j.Description = description
	j.Requirements = requirements
	j.Salary = salary
	j.Location = location
	j.JobType = jobType
	j.ExperienceLevel = experienceLevel
	j.Positions = positions
	j.ExpirationDate = expirationDate
	j.IsActive = true
	j.UpdatedAt = time.Now()
}

// NormalizeRequirements splits a comma-separated requirements string,
// trimming whitespace and dropping empty entries
func NormalizeRequirements(raw string) []string {
	parts := strings.Split(raw, ",")
	requirements := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			requirements = append(requirements, trimmed)
		}
	}
	return requirements
}
