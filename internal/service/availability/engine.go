// Package availability считает свободные ресурсы: места, переговорные и столовую.
// Все результаты - снимок на момент запроса, ничего не резервируется.
package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	floorRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/floor"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/availability/models"
	"github.com/m04kA/SMC-FacilityBooking/pkg/seatlabel"
)

// Engine счетчики доступности
type Engine struct {
	floors         FloorRepository
	rooms          RoomRepository
	seatBookings   SeatBookingRepository
	roomBookings   RoomBookingRepository
	cafeBookings   CafeteriaBookingRepository
	cafeteriaFloor int
	timeProvider   TimeProvider
	logger         Logger
}

func NewEngine(
	floors FloorRepository,
	rooms RoomRepository,
	seatBookings SeatBookingRepository,
	roomBookings RoomBookingRepository,
	cafeBookings CafeteriaBookingRepository,
	cafeteriaFloor int,
	logger Logger,
) *Engine {
	return &Engine{
		floors:         floors,
		rooms:          rooms,
		seatBookings:   seatBookings,
		roomBookings:   roomBookings,
		cafeBookings:   cafeBookings,
		cafeteriaFloor: cafeteriaFloor,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// WithTimeProvider подменяет источник времени
func (e *Engine) WithTimeProvider(tp TimeProvider) *Engine {
	e.timeProvider = tp
	return e
}

// SeatsAvailableOnDate сумма мест по этажам минус занятые места на дату.
// Нулевая дата означает сегодня.
func (e *Engine) SeatsAvailableOnDate(ctx context.Context, date time.Time) (*models.SeatAvailability, error) {
	day := e.dayOrToday(date)

	perFloor, err := e.SeatsAvailableByFloor(ctx, day)
	if err != nil {
		return nil, err
	}

	result := &models.SeatAvailability{Date: day.Format(domain.DateFormat)}
	for _, f := range perFloor {
		result.Total += f.Capacity
		result.Booked += f.Booked
		result.Available += f.Available
	}

	return result, nil
}

// SeatsAvailableByFloor свободные места по каждому этажу на дату
func (e *Engine) SeatsAvailableByFloor(ctx context.Context, date time.Time) ([]models.FloorAvailability, error) {
	day := e.dayOrToday(date)

	floors, err := e.floors.List(ctx)
	if err != nil {
		e.logger.Error("SeatsAvailableByFloor: failed to list floors: %v", err)
		return nil, fmt.Errorf("%w: SeatsAvailableByFloor - list floors: %v", ErrInternal, err)
	}

	bookings, err := e.seatBookings.ListByDate(ctx, day)
	if err != nil {
		e.logger.Error("SeatsAvailableByFloor: failed to list seat bookings for %s: %v", day.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: SeatsAvailableByFloor - list bookings: %v", ErrInternal, err)
	}

	// Одно и то же место, забронированное дважды, считается один раз ("A 1" и "A 001" совпадают)
	booked := make(map[int]map[string]struct{})
	for _, b := range bookings {
		seats, ok := booked[b.FloorNumber]
		if !ok {
			seats = make(map[string]struct{})
			booked[b.FloorNumber] = seats
		}
		for _, s := range b.SeatNo {
			seats[seatlabel.Canonical(s)] = struct{}{}
		}
	}

	result := make([]models.FloorAvailability, 0, len(floors))
	for _, f := range floors {
		used := len(booked[f.Number])
		result = append(result, models.FloorAvailability{
			FloorNumber: f.Number,
			FloorName:   f.Name,
			Capacity:    f.Capacity,
			Booked:      used,
			Available:   nonNegative(f.Capacity - used),
		})
	}

	return result, nil
}

// RoomsAvailableByTime переговорные вместимостью не меньше запрошенной,
// у которых нет брони в этот день, пересекающейся с [start, end)
func (e *Engine) RoomsAvailableByTime(ctx context.Context, req models.RoomsByTimeRequest) ([]*domain.MeetingRoom, error) {
	window, err := domain.NewTimeRange(req.Start, req.End)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.Capacity < 0 {
		return nil, fmt.Errorf("%w: capacity must not be negative", ErrInvalidInput)
	}

	day := domain.NormalizeDate(req.Date)

	bookings, err := e.roomBookings.ListByDate(ctx, day)
	if err != nil {
		e.logger.Error("RoomsAvailableByTime: failed to list room bookings: %v", err)
		return nil, fmt.Errorf("%w: RoomsAvailableByTime - list bookings: %v", ErrInternal, err)
	}

	busy := make(map[int64]struct{})
	for _, b := range bookings {
		if b.Range().Overlaps(window) {
			busy[b.RoomID] = struct{}{}
		}
	}

	rooms, err := e.rooms.ListByMinCapacity(ctx, req.Capacity)
	if err != nil {
		e.logger.Error("RoomsAvailableByTime: failed to list rooms: %v", err)
		return nil, fmt.Errorf("%w: RoomsAvailableByTime - list rooms: %v", ErrInternal, err)
	}

	free := make([]*domain.MeetingRoom, 0, len(rooms))
	for _, r := range rooms {
		if _, ok := busy[r.ID]; !ok {
			free = append(free, r)
		}
	}

	return free, nil
}

// RoomsAvailableNow число переговорных, не занятых в текущий момент
func (e *Engine) RoomsAvailableNow(ctx context.Context) (int, error) {
	now := e.timeProvider.Now()

	total, err := e.rooms.Count(ctx)
	if err != nil {
		e.logger.Error("RoomsAvailableNow: failed to count rooms: %v", err)
		return 0, fmt.Errorf("%w: RoomsAvailableNow - count rooms: %v", ErrInternal, err)
	}

	bookings, err := e.roomBookings.ListByDate(ctx, domain.NormalizeDate(now))
	if err != nil {
		e.logger.Error("RoomsAvailableNow: failed to list room bookings: %v", err)
		return 0, fmt.Errorf("%w: RoomsAvailableNow - list bookings: %v", ErrInternal, err)
	}

	busy := make(map[int64]struct{})
	for _, b := range bookings {
		if b.Range().Contains(now) {
			busy[b.RoomID] = struct{}{}
		}
	}

	return nonNegative(total - len(busy)), nil
}

// CafeteriaAvailableByDateTime вместимость этажа минус брони, пересекающиеся с [start, end)
func (e *Engine) CafeteriaAvailableByDateTime(ctx context.Context, req models.CafeteriaByTimeRequest) (int, error) {
	window, err := domain.NewTimeRange(req.Start, req.End)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	floorNumber := req.FloorNumber
	if floorNumber == 0 {
		floorNumber = e.cafeteriaFloor
	}

	floor, err := e.getFloor(ctx, floorNumber)
	if err != nil {
		return 0, err
	}

	bookings, err := e.cafeBookings.ListByFloorAndDate(ctx, floor.Number, domain.NormalizeDate(req.Date))
	if err != nil {
		e.logger.Error("CafeteriaAvailableByDateTime: failed to list bookings: %v", err)
		return 0, fmt.Errorf("%w: CafeteriaAvailableByDateTime - list bookings: %v", ErrInternal, err)
	}

	return nonNegative(floor.Capacity - CountOverlapping(bookings, window)), nil
}

// CafeteriaAvailableToday вместимость опорного этажа минус все брони столовой за сегодня
func (e *Engine) CafeteriaAvailableToday(ctx context.Context) (int, error) {
	floor, err := e.getFloor(ctx, e.cafeteriaFloor)
	if err != nil {
		return 0, err
	}

	count, err := e.cafeBookings.CountByDate(ctx, domain.NormalizeDate(e.timeProvider.Now()))
	if err != nil {
		e.logger.Error("CafeteriaAvailableToday: failed to count bookings: %v", err)
		return 0, fmt.Errorf("%w: CafeteriaAvailableToday - count bookings: %v", ErrInternal, err)
	}

	return nonNegative(floor.Capacity - count), nil
}

// CountOverlapping число броней столовой, пересекающихся с window
func CountOverlapping(bookings []*domain.CafeteriaBooking, window domain.TimeRange) int {
	count := 0
	for _, b := range bookings {
		if b.Range().Overlaps(window) {
			count++
		}
	}
	return count
}

func (e *Engine) getFloor(ctx context.Context, number int) (*domain.Floor, error) {
	floor, err := e.floors.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, floorRepo.ErrFloorNotFound) {
			e.logger.Warn("availability: floor %d not found", number)
			return nil, ErrFloorNotFound
		}
		e.logger.Error("availability: failed to get floor %d: %v", number, err)
		return nil, fmt.Errorf("%w: get floor: %v", ErrInternal, err)
	}
	return floor, nil
}

func (e *Engine) dayOrToday(date time.Time) time.Time {
	if date.IsZero() {
		return domain.NormalizeDate(e.timeProvider.Now())
	}
	return domain.NormalizeDate(date)
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
