package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonflowpro/salon-api/internal/models"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{"scheduled to in_progress", StatusScheduled, StatusInProgress, true},
		{"in_progress to completed", StatusInProgress, StatusCompleted, true},
		{"scheduled to completed", StatusScheduled, StatusCompleted, true},
		{"scheduled to canceled", StatusScheduled, StatusCanceled, true},
		{"in_progress to canceled", StatusInProgress, StatusCanceled, true},
		{"completed to scheduled", StatusCompleted, StatusScheduled, false},
		{"completed to canceled", StatusCompleted, StatusCanceled, false},
		{"canceled to in_progress", StatusCanceled, StatusInProgress, false},
		{"canceled to completed", StatusCanceled, StatusCompleted, false},
		{"in_progress to scheduled", StatusInProgress, StatusScheduled, false},
		{"completed to completed", StatusCompleted, StatusCompleted, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CanTransition(tc.from, tc.to)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestTransitionStampsTimestamps(t *testing.T) {
	now := time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusScheduled)}
	require.NoError(t, Transition(ap, StatusInProgress, now))
	assert.Equal(t, string(StatusInProgress), ap.Status)
	assert.Nil(t, ap.CompletedAt)

	require.NoError(t, Complete(ap, now))
	assert.Equal(t, string(StatusCompleted), ap.Status)
	require.NotNil(t, ap.CompletedAt)
	assert.Equal(t, now, *ap.CompletedAt)

	canceled := &models.Appointment{Status: string(StatusScheduled)}
	require.NoError(t, Cancel(canceled, now))
	require.NotNil(t, canceled.CancelledAt)
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus(StatusScheduled))
	assert.True(t, IsValidStatus(StatusCanceled))
	assert.False(t, IsValidStatus(Status("done")))
	assert.False(t, IsValidStatus(Status("")))
}
