package cafeteriabookings

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

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func newService(t *testing.T, capacity int) (*Service, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	store.AddFloor(domain.Floor{Number: 5, Name: "Fifth", StartingSeatNo: "E 001", EndingSeatNo: "E 020", Capacity: capacity})
	ledgerSvc := ledger.NewService(
		store.Ledger(), store.SeatBookings(), store.RoomBookings(), store.CafeteriaBookings(),
		nil, events.NopPublisher{}, store.TxManager(), logger.NewNop(),
	)
	svc := NewService(store.CafeteriaBookings(), store.Floors(), ledgerSvc, store.TxManager(), logger.NewNop()).
		WithTimeProvider(&memstore.FixedClock{T: at(8, 0)})
	return svc, store
}

func book(t *testing.T, store *memstore.Store, token string, start, end time.Time) *domain.CafeteriaBooking {
	t.Helper()
	ctx := context.Background()
	b, err := store.CafeteriaBookings().Create(ctx, &domain.CafeteriaBooking{
		FloorNumber: 5, Date: day, StartTime: start, EndTime: end, Token: token,
	})
	require.NoError(t, err)
	_, err = store.Ledger().Create(ctx, domain.NewCafeteriaLedgerEntry(b))
	require.NoError(t, err)
	return b
}

func TestService_Patch(t *testing.T) {
	ctx := context.Background()

	t.Run("moves window and syncs ledger", func(t *testing.T) {
		svc, store := newService(t, 2)
		b := book(t, store, "alice", at(12, 0), at(12, 30))

		got, err := svc.Patch(ctx, b.ID, &PatchRequest{StartTime: ptr.Ptr(at(13, 0)), EndTime: ptr.Ptr(at(13, 30))})
		require.NoError(t, err)
		assert.Equal(t, at(13, 0), got.StartTime)

		entry, err := store.Ledger().GetByBooking(ctx, b.ID, domain.AmenityCafeteria)
		require.NoError(t, err)
		assert.Equal(t, []string{"2024-03-15T13:00:00.000Z", "2024-03-15T13:30:00.000Z"}, entry.Details)
	})

	t.Run("own slot is not counted", func(t *testing.T) {
		svc, store := newService(t, 1)
		b := book(t, store, "alice", at(12, 0), at(12, 30))

		_, err := svc.Patch(ctx, b.ID, &PatchRequest{EndTime: ptr.Ptr(at(12, 45))})
		assert.NoError(t, err)
	})

	t.Run("full window", func(t *testing.T) {
		svc, store := newService(t, 1)
		book(t, store, "bob", at(13, 0), at(14, 0))
		b := book(t, store, "alice", at(12, 0), at(12, 30))

		_, err := svc.Patch(ctx, b.ID, &PatchRequest{StartTime: ptr.Ptr(at(13, 15)), EndTime: ptr.Ptr(at(13, 45))})
		assert.ErrorIs(t, err, ErrNoCapacity)
	})

	t.Run("invalid window", func(t *testing.T) {
		svc, store := newService(t, 2)
		b := book(t, store, "alice", at(12, 0), at(12, 30))

		_, err := svc.Patch(ctx, b.ID, &PatchRequest{StartTime: ptr.Ptr(at(12, 30))})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("not found", func(t *testing.T) {
		svc, _ := newService(t, 2)

		_, err := svc.Patch(ctx, 9, &PatchRequest{Date: ptr.Ptr(day)})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestService_DeleteAndUpcoming(t *testing.T) {
	svc, store := newService(t, 5)
	ctx := context.Background()
	b := book(t, store, "alice", at(12, 0), at(12, 30))

	upcoming, err := svc.UpcomingByToken(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, upcoming, 1)

	require.NoError(t, svc.Delete(ctx, b.ID))
	assert.ErrorIs(t, svc.Delete(ctx, b.ID), ErrBookingNotFound)

	all, err := store.Ledger().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
