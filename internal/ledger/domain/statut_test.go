package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDeriveStatut(t *testing.T) {
	t.Parallel()

	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("due date in the past is retard", func(t *testing.T) {
		require.Equal(t, StatutRetard, DeriveStatut(today.AddDate(0, 0, -1), today))
		require.Equal(t, StatutRetard, DeriveStatut(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), today))
	})

	t.Run("due date today is avenir", func(t *testing.T) {
		require.Equal(t, StatutAvenir, DeriveStatut(today, today))
	})

	t.Run("due date in the future is avenir", func(t *testing.T) {
		require.Equal(t, StatutAvenir, DeriveStatut(today.AddDate(0, 0, 1), today))
		require.Equal(t, StatutAvenir, DeriveStatut(time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC), today))
	})

	t.Run("comparison ignores time of day", func(t *testing.T) {
		lateToday := time.Date(2025, 6, 15, 23, 59, 59, 0, time.UTC)
		require.Equal(t, StatutAvenir, DeriveStatut(today, lateToday))
		require.Equal(t, StatutAvenir, DeriveStatut(lateToday, today))
	})
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("2025-09-15")
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("15/09/2025")
	require.Error(t, err)
}
