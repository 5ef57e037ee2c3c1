package create_room_booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	roomBookingRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/roombooking"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/events"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/ledger"
	"github.com/m04kA/SMC-FacilityBooking/internal/testutil/memstore"
	"github.com/m04kA/SMC-FacilityBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-FacilityBooking/pkg/logger"
	"github.com/m04kA/SMC-FacilityBooking/pkg/metrics"
	"github.com/m04kA/SMC-FacilityBooking/pkg/ptr"
	"github.com/m04kA/SMC-FacilityBooking/pkg/txmanager"
)

var day = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

type fixture struct {
	uc    *UseCase
	store *memstore.Store
	rooms *memstore.RoomBookings
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	store.AddFloor(domain.Floor{Number: 1, Name: "First", StartingSeatNo: "A 001", EndingSeatNo: "A 010", Capacity: 10})
	store.AddRoom(domain.MeetingRoom{ID: 1, Name: "Orion", Capacity: 6, FloorNumber: 1})
	store.AddRoom(domain.MeetingRoom{ID: 2, Name: "Ghost", Capacity: 6, FloorNumber: 4})

	ledgerSvc := ledger.NewService(
		store.Ledger(), store.SeatBookings(), store.RoomBookings(), store.CafeteriaBookings(),
		nil, events.NopPublisher{}, store.TxManager(), logger.NewNop(),
	)
	rooms := store.RoomBookings()
	var m *metrics.Metrics
	uc := NewUseCase(store.Rooms(), store.Floors(), rooms, ledgerSvc, store.TxManager(), m, logger.NewNop())
	return &fixture{uc: uc, store: store, rooms: rooms}
}

func TestUseCase_Execute(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.uc.Execute(ctx, &Request{
		RoomID: 1, Date: day, StartTime: at(10, 0), EndTime: at(11, 0), Users: []string{"bob", "carol"}, Token: ptr.Ptr("alice"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Orion", resp.Booking.RoomName)
	assert.Equal(t, 1, resp.Booking.FloorNumber)
	assert.Equal(t, domain.AmenityMeetingRoom, resp.Ledger.Amenity)
	assert.Equal(t, []string{"2024-03-15T10:00:00.000Z", "2024-03-15T11:00:00.000Z", "1", "Orion", "bob,carol"}, resp.Ledger.Details)

	// касание границы не пересечение
	_, err = f.uc.Execute(ctx, &Request{RoomID: 1, Date: day, StartTime: at(11, 0), EndTime: at(12, 0)})
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, &Request{RoomID: 1, Date: day, StartTime: at(10, 30), EndTime: at(10, 45)})
	assert.ErrorIs(t, err, ErrSlotAlreadyBooked)

	bookings, err := f.rooms.List(ctx)
	require.NoError(t, err)
	assert.Len(t, bookings, 2)
}

func TestUseCase_Execute_ExclusionViolationIsConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// бронь, начавшаяся накануне, не видна в выборке за день, но ее ловит ограничение БД
	_, err := f.rooms.Create(ctx, &domain.RoomBooking{
		RoomID: 1, Date: day.AddDate(0, 0, -1), StartTime: at(-1, 0), EndTime: at(9, 0), FloorNumber: 1,
	})
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, &Request{RoomID: 1, Date: day, StartTime: at(8, 0), EndTime: at(10, 0)})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{name: "end equals start", req: &Request{RoomID: 1, Date: day, StartTime: at(10, 0), EndTime: at(10, 0)}, wantErr: ErrInvalidInput},
		{name: "end before start", req: &Request{RoomID: 1, Date: day, StartTime: at(11, 0), EndTime: at(10, 0)}, wantErr: ErrInvalidInput},
		{name: "no room", req: &Request{Date: day, StartTime: at(10, 0), EndTime: at(11, 0)}, wantErr: ErrInvalidInput},
		{name: "unknown room", req: &Request{RoomID: 9, Date: day, StartTime: at(10, 0), EndTime: at(11, 0)}, wantErr: ErrRoomNotFound},
		{name: "room on unknown floor", req: &Request{RoomID: 2, Date: day, StartTime: at(10, 0), EndTime: at(11, 0)}, wantErr: ErrFloorNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
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

type outcomeCounter map[string]int

func (c outcomeCounter) ObserveAllocation(resource, outcome string) {
	c[resource+"/"+outcome]++
}

type lockConflictRooms struct {
	*memstore.RoomBookings
}

func (lockConflictRooms) ListByRoomAndDate(context.Context, int64, time.Time) ([]*domain.RoomBooking, error) {
	return nil, fmt.Errorf("%w: ListByRoomAndDate - query: pq: could not serialize access", roomBookingRepo.ErrConflict)
}

func TestUseCase_Execute_SerializationFailure(t *testing.T) {
	store := memstore.New()
	store.AddFloor(domain.Floor{Number: 1, Name: "First", StartingSeatNo: "A 001", EndingSeatNo: "A 010", Capacity: 10})
	store.AddRoom(domain.MeetingRoom{ID: 1, Name: "Orion", Capacity: 6, FloorNumber: 1})
	ledgerSvc := ledger.NewService(
		store.Ledger(), store.SeatBookings(), store.RoomBookings(), store.CafeteriaBookings(),
		nil, events.NopPublisher{}, store.TxManager(), logger.NewNop(),
	)
	req := &Request{RoomID: 1, Date: day, StartTime: at(10, 0), EndTime: at(11, 0)}

	t.Run("on commit", func(t *testing.T) {
		outcomes := outcomeCounter{}
		uc := NewUseCase(store.Rooms(), store.Floors(), store.RoomBookings(), ledgerSvc, commitFailingTxManager(t), outcomes, logger.NewNop())

		_, err := uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrConflict)
		assert.NotErrorIs(t, err, ErrInternal)
		assert.Equal(t, 1, outcomes["meetingRoom/conflict"])
	})

	t.Run("on locking read", func(t *testing.T) {
		outcomes := outcomeCounter{}
		repo := lockConflictRooms{RoomBookings: store.RoomBookings()}
		uc := NewUseCase(store.Rooms(), store.Floors(), repo, ledgerSvc, store.TxManager(), outcomes, logger.NewNop())

		_, err := uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrConflict)
		assert.Equal(t, 1, outcomes["meetingRoom/conflict"])
	})
}
