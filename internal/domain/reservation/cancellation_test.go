//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"court-reservations/internal/domain/reservation"
	"court-reservations/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCancellationPolicy(t *testing.T) {
	policy := reservation.NewCancellationPolicy(jst, reservation.DefaultCancelCutoff)
	// 2025-03-10 09:00:00 local
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, jst)

	tests := []struct {
		name   string
		mutate func(*builder.ReservationBuilder)
		now    time.Time
		errIs  error
	}{
		{
			name:   "future date",
			mutate: func(b *builder.ReservationBuilder) { b.WithDate("2025-03-11").WithSlot("07:00", "08:00") },
			now:    now,
		},
		{
			name:   "today, exactly at cutoff",
			mutate: func(b *builder.ReservationBuilder) { b.WithDate("2025-03-10").WithSlot("11:00", "12:00") },
			now:    now,
		},
		{
			name:   "today, one second inside cutoff",
			mutate: func(b *builder.ReservationBuilder) { b.WithDate("2025-03-10").WithSlot("11:00", "12:00") },
			now:    now.Add(time.Second),
			errIs:  reservation.ErrTooLateToCancel,
		},
		{
			name:   "today, one hour ahead",
			mutate: func(b *builder.ReservationBuilder) { b.WithDate("2025-03-10").WithSlot("10:00", "11:00") },
			now:    now,
			errIs:  reservation.ErrTooLateToCancel,
		},
		{
			name:   "today, already started",
			mutate: func(b *builder.ReservationBuilder) { b.WithDate("2025-03-10").WithSlot("08:00", "10:00") },
			now:    now,
			errIs:  reservation.ErrTooLateToCancel,
		},
		{
			name:   "past date is still cancellable",
			mutate: func(b *builder.ReservationBuilder) { b.WithDate("2025-03-01").WithSlot("09:00", "10:00") },
			now:    now,
		},
		{
			name: "already cancelled",
			mutate: func(b *builder.ReservationBuilder) {
				b.WithDate("2025-03-11").WithStatus(reservation.StatusCancelled)
			},
			now:   now,
			errIs: reservation.ErrAlreadyCancelled,
		},
		{
			name: "already cancelled wins over cutoff",
			mutate: func(b *builder.ReservationBuilder) {
				b.WithDate("2025-03-10").WithSlot("09:30", "10:00").WithStatus(reservation.StatusCancelled)
			},
			now:   now,
			errIs: reservation.ErrAlreadyCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := builder.NewReservationBuilder().With(tt.mutate).BuildDomain()

			cancelled, err := policy.Cancel(res, tt.now)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				assert.Nil(t, cancelled)
				assert.Equal(t, tt.errIs == reservation.ErrAlreadyCancelled, res.IsCancelled())
				return
			}
			require.NoError(t, err)
			assert.True(t, cancelled.IsCancelled())
			assert.Equal(t, tt.now, cancelled.UpdatedAt())
			assert.Equal(t, res.ID(), cancelled.ID())
			assert.True(t, res.IsConfirmed(), "original must be left untouched")
		})
	}

	t.Run("second cancel is rejected", func(t *testing.T) {
		res := builder.NewReservationBuilder().WithDate("2025-03-12").BuildDomain()
		first, err := policy.Cancel(res, now)
		require.NoError(t, err)

		_, err = policy.Cancel(first, now)
		assert.ErrorIs(t, err, reservation.ErrAlreadyCancelled)
	})

	t.Run("custom cutoff", func(t *testing.T) {
		short := reservation.NewCancellationPolicy(jst, 30*time.Minute)
		res := builder.NewReservationBuilder().WithDate("2025-03-10").WithSlot("10:00", "11:00").BuildDomain()
		assert.NoError(t, short.CanCancel(res, now))
	})
}
