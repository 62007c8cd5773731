package job_test

import (
	"testing"
	"time"

	"github.com/hirehub/hirehub/board/job"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeRequirements(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"plain list", "React, Node, SQL", []string{"React", "Node", "SQL"}},
		{"extra whitespace", "  Go ,  Postgres  ", []string{"Go", "Postgres"}},
		{"empty entries dropped", "Go,,Redis,", []string{"Go", "Redis"}},
		{"only commas", ", ,,", []string{}},
		{"empty string", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, job.NormalizeRequirements(tt.raw))
		})
	}
}

func TestStatusAt_Expired(t *testing.T) {
	now := time.Now()
	j := &job.Job{
		ExpirationDate: now.Add(-25 * 24 * time.Hour),
		IsActive:       true, // sweep has not run yet
	}

	status := j.StatusAt(now)

	assert.True(t, status.IsExpired, "past expiration must report expired regardless of stored flag")
	assert.True(t, status.IsActive, "stored flag is reported as-is")
	assert.Equal(t, 0, status.RemainingDays, "remaining days floor at zero")
}

func TestStatusAt_RemainingDaysCeiling(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		until     time.Duration
		remaining int
	}{
		{"half a day counts as one", 12 * time.Hour, 1},
		{"exactly five days", 5 * 24 * time.Hour, 5},
		{"five days and an hour rounds up", 5*24*time.Hour + time.Hour, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := &job.Job{ExpirationDate: now.Add(tt.until), IsActive: true}
			status := j.StatusAt(now)
			assert.False(t, status.IsExpired)
			assert.Equal(t, tt.remaining, status.RemainingDays)
		})
	}
}

func TestExtendBy_AddsToPriorExpiration(t *testing.T) {
	expiration := time.Now().Add(5 * 24 * time.Hour)
	j := &job.Job{ExpirationDate: expiration, IsActive: true}

	got := j.ExtendBy(10)

	assert.Equal(t, expiration.Add(10*24*time.Hour), got, "extension counts from the prior expiration, not from now")
	assert.Equal(t, got, j.ExpirationDate)
	assert.True(t, j.IsActive)
}

func TestExtendBy_ReactivatesEvenWhenStillPast(t *testing.T) {
	// Expired 30 days ago; a 10-day extension still lands in the past
	expiration := time.Now().Add(-30 * 24 * time.Hour)
	j := &job.Job{ExpirationDate: expiration, IsActive: false}

	got := j.ExtendBy(10)

	assert.True(t, got.Before(time.Now()), "extension may leave the expiration in the past")
	assert.True(t, j.IsActive, "extension reactivates unconditionally; the next sweep reconciles")
}

func TestReplaceDetailsReactivates(t *testing.T) {
	j := &job.Job{IsActive: false}
	expiration := time.Now().Add(7 * 24 * time.Hour)

	j.ReplaceDetails("Backend Engineer", "Build APIs", []string{"Go"}, 90000, "Lima", "full-time", "senior", 2, expiration)

	assert.True(t, j.IsActive)
	assert.Equal(t, "Backend Engineer", j.Title)
	assert.Equal(t, expiration, j.ExpirationDate)
}
