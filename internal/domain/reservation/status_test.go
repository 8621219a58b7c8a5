package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/restaurant-reservations/internal/models"
)

func TestCanTransition_AllowsEveryKnownPair(t *testing.T) {
	for _, from := range Statuses() {
		for _, to := range Statuses() {
			assert.NoError(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTransition(t *testing.T) {
	created := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	later := created.Add(time.Hour)

	t.Run("unknown status leaves the record alone", func(t *testing.T) {
		r := &models.Reservation{Status: "pending", UpdatedAt: created}

		assert.ErrorIs(t, Transition(r, "Confirmed", later), ErrInvalidStatus)
		assert.Equal(t, "pending", r.Status)
		assert.Equal(t, created, r.UpdatedAt)
	})

	t.Run("same status keeps UpdatedAt", func(t *testing.T) {
		r := &models.Reservation{Status: "confirmed", UpdatedAt: created}

		require.NoError(t, Transition(r, "confirmed", later))
		assert.Equal(t, created, r.UpdatedAt)
	})

	t.Run("cancelled back to confirmed", func(t *testing.T) {
		r := &models.Reservation{Status: "cancelled", UpdatedAt: created}

		require.NoError(t, Transition(r, "confirmed", later))
		assert.Equal(t, "confirmed", r.Status)
		assert.Equal(t, later, r.UpdatedAt)
	})
}
