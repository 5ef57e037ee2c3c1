package seatbookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/events"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/ledger"
	"github.com/m04kA/SMC-FacilityBooking/internal/testutil/memstore"
	"github.com/m04kA/SMC-FacilityBooking/pkg/logger"
	"github.com/m04kA/SMC-FacilityBooking/pkg/ptr"
)

var day = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*Service, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	ledgerSvc := ledger.NewService(
		store.Ledger(), store.SeatBookings(), store.RoomBookings(), store.CafeteriaBookings(),
		nil, events.NopPublisher{}, store.TxManager(), logger.NewNop(),
	)
	svc := NewService(store.SeatBookings(), ledgerSvc, store.TxManager(), logger.NewNop()).
		WithTimeProvider(&memstore.FixedClock{T: day.Add(8 * time.Hour)})
	return svc, store
}

func TestService_GetByID(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	created, err := store.SeatBookings().Create(ctx, &domain.SeatBooking{FloorNumber: 1, Date: day, SeatNo: []string{"A 001"}})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"A 001"}, got.SeatNo)

	_, err = svc.GetByID(ctx, 404)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_UpcomingByToken(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	for _, b := range []*domain.SeatBooking{
		{FloorNumber: 1, Date: day, SeatNo: []string{"A 001"}, Token: ptr.Ptr("alice")},
		{FloorNumber: 1, Date: day.AddDate(0, 0, 3), SeatNo: []string{"A 002"}, Users: []string{"alice"}},
		{FloorNumber: 1, Date: day.AddDate(0, 0, -1), SeatNo: []string{"A 003"}, Token: ptr.Ptr("alice")},
		{FloorNumber: 1, Date: day, SeatNo: []string{"A 004"}, Token: ptr.Ptr("bob")},
	} {
		_, err := store.SeatBookings().Create(ctx, b)
		require.NoError(t, err)
	}

	got, err := svc.UpcomingByToken(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"A 001"}, got[0].SeatNo)
	assert.Equal(t, []string{"A 002"}, got[1].SeatNo)

	_, err = svc.UpcomingByToken(ctx, " ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Delete_CascadesToLedger(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	booking, err := store.SeatBookings().Create(ctx, &domain.SeatBooking{FloorNumber: 1, Date: day, SeatNo: []string{"A 001"}})
	require.NoError(t, err)
	_, err = store.Ledger().Create(ctx, domain.NewSeatLedgerEntry(booking))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, booking.ID))

	_, err = store.Ledger().GetByBooking(ctx, booking.ID, domain.AmenitySeat)
	assert.Error(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, booking.ID), ErrBookingNotFound)
}
