package member

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/irontrack/gymdesk/internal/models"
)

func TestEndOfDay(t *testing.T) {
	in := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	got := endOfDay(in)
	require.Equal(t, time.Date(2024, 1, 15, 23, 59, 59, int(999*time.Millisecond), time.UTC), got)
}

func TestAddCalendarMonths(t *testing.T) {
	tests := []struct {
		name   string
		in     time.Time
		months int
		want   time.Time
	}{
		{
			name:   "same day next month",
			in:     time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			months: 1,
			want:   time.Date(2024, 2, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			name:   "jan 31 clamps to leap feb 29",
			in:     time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC),
			months: 1,
			want:   time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC),
		},
		{
			name:   "jan 31 clamps to feb 28 off leap year",
			in:     time.Date(2023, 1, 31, 10, 0, 0, 0, time.UTC),
			months: 1,
			want:   time.Date(2023, 2, 28, 10, 0, 0, 0, time.UTC),
		},
		{
			name:   "mar 31 clamps to apr 30",
			in:     time.Date(2024, 3, 31, 10, 0, 0, 0, time.UTC),
			months: 1,
			want:   time.Date(2024, 4, 30, 10, 0, 0, 0, time.UTC),
		},
		{
			name:   "crosses year boundary",
			in:     time.Date(2024, 12, 15, 10, 0, 0, 0, time.UTC),
			months: 1,
			want:   time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			name:   "twelve months",
			in:     time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC),
			months: 12,
			want:   time.Date(2025, 2, 28, 10, 0, 0, 0, time.UTC),
		},
		{
			name:   "three months",
			in:     time.Date(2024, 11, 30, 10, 0, 0, 0, time.UTC),
			months: 3,
			want:   time.Date(2025, 2, 28, 10, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, addCalendarMonths(tt.in, tt.months))
		})
	}
}

func TestRegistrationWindow(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	t.Run("monthly plan runs a calendar month from now", func(t *testing.T) {
		start, end := registrationWindow(&models.Plan{DurationInMonths: 1}, now)
		require.Equal(t, now, start)
		require.Equal(t, time.Date(2024, 2, 15, 10, 0, 0, 0, time.UTC), end)
	})

	t.Run("single visit ends at end of day", func(t *testing.T) {
		start, end := registrationWindow(&models.Plan{DurationInMonths: 0}, now)
		require.Equal(t, now, start)
		require.Equal(t, endOfDay(now), end)
	})
}

func TestRenewalWindow(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	t.Run("active membership extends from its end date", func(t *testing.T) {
		current := models.Membership{EndDate: time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC)}
		start, end := renewalWindow(&models.Plan{DurationInMonths: 1}, current, now)
		require.Equal(t, current.EndDate, start)
		require.Equal(t, time.Date(2024, 2, 20, 10, 0, 0, 0, time.UTC), end)
	})

	t.Run("expired membership restarts from now", func(t *testing.T) {
		current := models.Membership{EndDate: time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)}
		start, end := renewalWindow(&models.Plan{DurationInMonths: 1}, current, now)
		require.Equal(t, now, start)
		require.Equal(t, time.Date(2024, 2, 15, 10, 0, 0, 0, time.UTC), end)
	})

	t.Run("single visit never rolls over a remaining window", func(t *testing.T) {
		current := models.Membership{EndDate: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
		start, end := renewalWindow(&models.Plan{DurationInMonths: 0}, current, now)
		require.Equal(t, now, start)
		require.Equal(t, endOfDay(now), end)
	})
}
