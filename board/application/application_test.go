package application_test

import (
	"testing"

	"github.com/hirehub/hirehub/board/application"
	"github.com/hirehub/hirehub/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecision(t *testing.T) {
	tests := []struct {
		raw  string
		want application.Status
	}{
		{"accepted", application.StatusAccepted},
		{"ACCEPTED", application.StatusAccepted},
		{"Accepted", application.StatusAccepted},
		{"rejected", application.StatusRejected},
		{"REJECTED", application.StatusRejected},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := application.ParseDecision(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDecisionRejectsInvalid(t *testing.T) {
	for _, raw := range []string{"pending", "approved", "", "accepted "} {
		t.Run("invalid_"+raw, func(t *testing.T) {
			_, err := application.ParseDecision(raw)
			require.Error(t, err)
			assert.True(t, errx.IsType(err, errx.TypeValidation))
		})
	}
}

func TestSetStatusReturnsPrevious(t *testing.T) {
	a := &application.Application{Status: application.StatusPending}

	previous := a.SetStatus(application.StatusAccepted)
	assert.Equal(t, application.StatusPending, previous)
	assert.Equal(t, application.StatusAccepted, a.Status)

	// Terminal states may be flipped; the previous value makes the
	// reversal visible to callers
	previous = a.SetStatus(application.StatusRejected)
	assert.Equal(t, application.StatusAccepted, previous)
	assert.Equal(t, application.StatusRejected, a.Status)
}
