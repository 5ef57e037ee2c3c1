package create_seat_booking

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/events"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/ledger"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/occupancy"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/seatallocation"
	"github.com/m04kA/SMC-FacilityBooking/internal/testutil/memstore"
	"github.com/m04kA/SMC-FacilityBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-FacilityBooking/pkg/logger"
	"github.com/m04kA/SMC-FacilityBooking/pkg/metrics"
	"github.com/m04kA/SMC-FacilityBooking/pkg/ptr"
	"github.com/m04kA/SMC-FacilityBooking/pkg/txmanager"
)

var day = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

type outcomeCounter map[string]int

func (c outcomeCounter) ObserveAllocation(resource, outcome string) {
	c[resource+"/"+outcome]++
}

type fixture struct {
	uc       *UseCase
	store    *memstore.Store
	outcomes outcomeCounter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	store.AddFloor(domain.Floor{Number: 1, Name: "First", StartingSeatNo: "A 001", EndingSeatNo: "A 010", Capacity: 10})

	ledgerSvc := ledger.NewService(
		store.Ledger(), store.SeatBookings(), store.RoomBookings(), store.CafeteriaBookings(),
		nil, events.NopPublisher{}, store.TxManager(), logger.NewNop(),
	)
	allocator := seatallocation.NewAllocator(occupancy.NewResolver(store.SeatBookings()))
	outcomes := outcomeCounter{}

	uc := NewUseCase(store.Floors(), allocator, store.SeatBookings(), ledgerSvc, store.TxManager(), outcomes, logger.NewNop())
	return &fixture{uc: uc, store: store, outcomes: outcomes}
}

func TestUseCase_Execute_AllocatesAfterExistingBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, &Request{Date: day, FloorNumber: 1, SeatNo: []string{"A 001", "A 002", "A 003", "A 004"}})
	require.NoError(t, err)

	// время суток отбрасывается
	resp, err := f.uc.Execute(ctx, &Request{Date: day.Add(15 * time.Hour), FloorNumber: 1, Capacity: 3, Token: ptr.Ptr("alice")})
	require.NoError(t, err)
	assert.Equal(t, []string{"A 005", "A 006", "A 007"}, resp.Booking.SeatNo)
	assert.Equal(t, day, resp.Booking.Date)

	require.NotNil(t, resp.Ledger)
	assert.Equal(t, domain.AmenitySeat, resp.Ledger.Amenity)
	assert.Equal(t, resp.Booking.ID, resp.Ledger.BookingID)
	assert.Equal(t, "alice", resp.Ledger.Token)
	assert.Equal(t, []string{"1", "A 005,A 006,A 007"}, resp.Ledger.Details)

	_, err = f.uc.Execute(ctx, &Request{Date: day, FloorNumber: 1, Capacity: 8})
	assert.ErrorIs(t, err, ErrSeatsNotFound)

	// неудачная попытка ничего не записала
	bookings, err := f.store.SeatBookings().List(ctx)
	require.NoError(t, err)
	assert.Len(t, bookings, 2)
	entries, err := f.store.Ledger().List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	assert.Equal(t, 2, f.outcomes["Seating/allocated"])
	assert.Equal(t, 1, f.outcomes["Seating/not_available"])
}

func TestUseCase_Execute_ExplicitSeatsAreTrusted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, &Request{Date: day, FloorNumber: 1, SeatNo: []string{"A 001"}})
	require.NoError(t, err)

	resp, err := f.uc.Execute(ctx, &Request{Date: day, FloorNumber: 1, SeatNo: []string{" A 001 "}, Capacity: 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"A 001"}, resp.Booking.SeatNo)
	assert.Equal(t, domain.UnknownOwnerToken, resp.Ledger.Token)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{name: "no date", req: &Request{FloorNumber: 1, Capacity: 1}, wantErr: ErrInvalidInput},
		{name: "neither seats nor capacity", req: &Request{Date: day, FloorNumber: 1}, wantErr: ErrInvalidInput},
		{name: "empty label", req: &Request{Date: day, FloorNumber: 1, SeatNo: []string{"A 001", " "}}, wantErr: ErrInvalidInput},
		{name: "capacity too large", req: &Request{Date: day, FloorNumber: 1, Capacity: domain.MaxSeatCapacity + 1}, wantErr: ErrInvalidInput},
		{name: "unknown floor", req: &Request{Date: day, FloorNumber: 9, Capacity: 1}, wantErr: ErrFloorNotFound},
		{name: "whole floor plus one", req: &Request{Date: day, FloorNumber: 1, Capacity: 11}, wantErr: ErrSeatsNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			resp, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, resp)
		})
	}
}

func TestUseCase_Execute_NilMetrics(t *testing.T) {
	store := memstore.New()
	store.AddFloor(domain.Floor{Number: 2, StartingSeatNo: "B 001", EndingSeatNo: "B 003", Capacity: 3})
	ledgerSvc := ledger.NewService(
		store.Ledger(), store.SeatBookings(), store.RoomBookings(), store.CafeteriaBookings(),
		nil, events.NopPublisher{}, store.TxManager(), logger.NewNop(),
	)
	var m *metrics.Metrics
	uc := NewUseCase(store.Floors(), seatallocation.NewAllocator(occupancy.NewResolver(store.SeatBookings())),
		store.SeatBookings(), ledgerSvc, store.TxManager(), m, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{Date: day, FloorNumber: 2, Capacity: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"B 001", "B 002", "B 003"}, resp.Booking.SeatNo)
}

type recordingPublisher struct {
	events []events.BookingEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event events.BookingEvent) error {
	p.events = append(p.events, event)
	return nil
}

// commitFailingTxManager настоящий txmanager поверх sqlmock, COMMIT которого
// отклоняется PostgreSQL с кодом 40001
func commitFailingTxManager(t *testing.T) *txmanager.TxManager {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(&pq.Error{Code: "40001", Message: "could not serialize access"})
	return txmanager.New(dbmetrics.Wrap(db, nil))
}

func TestUseCase_Execute_SerializationFailureOnCommit(t *testing.T) {
	store := memstore.New()
	store.AddFloor(domain.Floor{Number: 1, StartingSeatNo: "A 001", EndingSeatNo: "A 010", Capacity: 10})
	publisher := &recordingPublisher{}
	ledgerSvc := ledger.NewService(
		store.Ledger(), store.SeatBookings(), store.RoomBookings(), store.CafeteriaBookings(),
		nil, publisher, store.TxManager(), logger.NewNop(),
	)
	outcomes := outcomeCounter{}
	uc := NewUseCase(store.Floors(), seatallocation.NewAllocator(occupancy.NewResolver(store.SeatBookings())),
		store.SeatBookings(), ledgerSvc, commitFailingTxManager(t), outcomes, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{Date: day, FloorNumber: 1, Capacity: 3})
	require.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrInternal)
	assert.Nil(t, resp)

	assert.Empty(t, publisher.events)
	assert.Equal(t, 1, outcomes["Seating/conflict"])
	assert.Zero(t, outcomes["Seating/allocated"])
}

func TestUseCase_CreateInTx_DoesNotAnnounce(t *testing.T) {
	store := memstore.New()
	store.AddFloor(domain.Floor{Number: 1, StartingSeatNo: "A 001", EndingSeatNo: "A 010", Capacity: 10})
	publisher := &recordingPublisher{}
	ledgerSvc := ledger.NewService(
		store.Ledger(), store.SeatBookings(), store.RoomBookings(), store.CafeteriaBookings(),
		nil, publisher, store.TxManager(), logger.NewNop(),
	)
	outcomes := outcomeCounter{}
	uc := NewUseCase(store.Floors(), seatallocation.NewAllocator(occupancy.NewResolver(store.SeatBookings())),
		store.SeatBookings(), ledgerSvc, store.TxManager(), outcomes, logger.NewNop())

	resp, err := uc.CreateInTx(context.Background(), &Request{Date: day, FloorNumber: 1, Capacity: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"A 001", "A 002"}, resp.Booking.SeatNo)
	assert.Empty(t, publisher.events)
	assert.Empty(t, outcomes)

	_, err = uc.CreateInTx(context.Background(), &Request{FloorNumber: 1, Capacity: 2})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
