package bookings_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	memstore "github.com/m04kA/SMC-SchedulingService/internal/testutil"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

func setup(status domain.BookingStatus) (*bookings.Service, *memstore.Store, uuid.UUID) {
	store := memstore.NewStore()
	start := time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)
	b := store.AddBooking(domain.Booking{
		StaffID:      uuid.New(),
		StartAt:      start,
		EndAt:        start.Add(time.Hour),
		Status:       status,
		CustomerName: "Jan Novak",
	})
	return bookings.NewService(store.Bookings(), store.TxManager(), logger.Nop()), store, b.ID
}

func TestGetByID(t *testing.T) {
	svc, _, id := setup(domain.StatusConfirmed)

	got, err := svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "CONFIRMED", got.Status)

	_, err = svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, bookings.ErrBookingNotFound)
}

func TestGetByID_StorageError(t *testing.T) {
	svc, store, id := setup(domain.StatusConfirmed)
	store.FailOn("Bookings.GetByID", errors.New("timeout"))

	_, err := svc.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, bookings.ErrInternal)
}

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.BookingStatus
		to      string
		wantErr error
	}{
		{"confirmed to cancelled", domain.StatusConfirmed, "CANCELLED", nil},
		{"confirmed to completed", domain.StatusConfirmed, "COMPLETED", nil},
		{"hold to no show", domain.StatusHold, "NO_SHOW", nil},
		{"completed is final", domain.StatusCompleted, "CANCELLED", bookings.ErrCannotChangeStatus},
		{"cancelled is final", domain.StatusCancelled, "COMPLETED", bookings.ErrCannotChangeStatus},
		{"confirmed is not a target", domain.StatusConfirmed, "CONFIRMED", bookings.ErrInvalidStatus},
		{"unknown status", domain.StatusConfirmed, "DONE", bookings.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, id := setup(tt.from)

			got, err := svc.UpdateStatus(context.Background(), id, &models.UpdateStatusRequest{Status: tt.to})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, store.AllBookings()[0].Status)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.to, got.Status)
			assert.Equal(t, domain.BookingStatus(tt.to), store.AllBookings()[0].Status)
		})
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc, _, _ := setup(domain.StatusConfirmed)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), &models.UpdateStatusRequest{Status: "CANCELLED"})
	assert.ErrorIs(t, err, bookings.ErrBookingNotFound)
}

func TestUpdateStatus_CancelledBookingFreesInterval(t *testing.T) {
	svc, store, id := setup(domain.StatusConfirmed)
	b := store.AllBookings()[0]

	busy, err := store.Bookings().HasOverlap(context.Background(), b.StaffID, b.StartAt, b.EndAt)
	require.NoError(t, err)
	require.True(t, busy)

	_, err = svc.UpdateStatus(context.Background(), id, &models.UpdateStatusRequest{Status: "CANCELLED"})
	require.NoError(t, err)

	busy, err = store.Bookings().HasOverlap(context.Background(), b.StaffID, b.StartAt, b.EndAt)
	require.NoError(t, err)
	assert.False(t, busy)
}
