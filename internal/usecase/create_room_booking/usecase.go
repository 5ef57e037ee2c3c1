package create_room_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	floorRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/floor"
	roomRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/room"
	roomBookingRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/roombooking"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/events"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/ledger"
	"github.com/m04kA/SMC-FacilityBooking/pkg/metrics"
)

// UseCase use case для бронирования переговорной
type UseCase struct {
	rooms       RoomRepository
	floors      FloorRepository
	bookingRepo RoomBookingRepository
	ledger      LedgerService
	txManager   TransactionManager
	outcomes    OutcomeRecorder
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	rooms RoomRepository,
	floors FloorRepository,
	bookingRepo RoomBookingRepository,
	ledger LedgerService,
	txManager TransactionManager,
	outcomes OutcomeRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		rooms:       rooms,
		floors:      floors,
		bookingRepo: bookingRepo,
		ledger:      ledger,
		txManager:   txManager,
		outcomes:    outcomes,
		logger:      logger,
	}
}

// Execute выполняет use case бронирования переговорной
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateRoomBooking: room=%d, date=%s, start=%s, end=%s",
		req.RoomID, req.Date.Format(domain.DateFormat), req.StartTime.Format(domain.TimeFormat), req.EndTime.Format(domain.TimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateRoomBooking: validation failed: %v", err)
		return nil, err
	}

	date := domain.NormalizeDate(req.Date)
	window := domain.TimeRange{Start: req.StartTime, End: req.EndTime}

	// 2. Переговорная
	room, err := uc.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("CreateRoomBooking: room=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("CreateRoomBooking: failed to get room=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	// 3. Этаж переговорной
	if _, err := uc.floors.GetByNumber(ctx, room.FloorNumber); err != nil {
		if errors.Is(err, floorRepo.ErrFloorNotFound) {
			uc.logger.Warn("CreateRoomBooking: floor=%d of room=%d not found", room.FloorNumber, room.ID)
			return nil, ErrFloorNotFound
		}
		uc.logger.Error("CreateRoomBooking: failed to get floor=%d: %v", room.FloorNumber, err)
		return nil, fmt.Errorf("%w: failed to get floor: %v", ErrInternal, err)
	}

	var result Response

	// 4. Проверка пересечений и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Брони переговорной на этот день (FOR UPDATE)
		sameDay, err := uc.bookingRepo.ListByRoomAndDate(txCtx, room.ID, date)
		if err != nil {
			if errors.Is(err, roomBookingRepo.ErrConflict) {
				return fmt.Errorf("%w: failed to lock bookings: %v", ErrConflict, err)
			}
			uc.logger.Error("CreateRoomBooking: failed to list bookings: %v", err)
			return fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
		}

		for _, other := range sameDay {
			if other.Range().Overlaps(window) {
				uc.logger.Warn("CreateRoomBooking: room=%d slot overlaps booking id=%d", room.ID, other.ID)
				return ErrSlotAlreadyBooked
			}
		}

		// 4.2. Бронь
		created, err := uc.bookingRepo.Create(txCtx, &domain.RoomBooking{
			RoomID:      room.ID,
			RoomName:    room.Name,
			Date:        date,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			FloorNumber: room.FloorNumber,
			Users:       req.Users,
			Status:      req.Status,
			Token:       req.Token,
		})
		if err != nil {
			if errors.Is(err, roomBookingRepo.ErrConflict) {
				uc.logger.Warn("CreateRoomBooking: conflict on insert: %v", err)
				return ErrConflict
			}
			uc.logger.Error("CreateRoomBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 4.3. Строка журнала
		entry, err := uc.ledger.Record(txCtx, domain.NewRoomLedgerEntry(created))
		if err != nil {
			if errors.Is(err, ledger.ErrConflict) {
				return ErrConflict
			}
			return fmt.Errorf("%w: failed to record ledger entry: %v", ErrInternal, err)
		}

		result = Response{Booking: created, Ledger: entry}
		return nil
	})
	if err != nil {
		err = translateTxError(err)
		uc.observe(err)
		return nil, err
	}

	uc.observe(nil)
	uc.ledger.Announce(ctx, events.EventBookingCreated, result.Ledger)
	uc.logger.Info("CreateRoomBooking: created booking id=%d for room=%d", result.Booking.ID, room.ID)

	return &result, nil
}

func (uc *UseCase) observe(err error) {
	resource := string(domain.AmenityMeetingRoom)
	switch {
	case err == nil:
		uc.outcomes.ObserveAllocation(resource, metrics.OutcomeAllocated)
	case errors.Is(err, ErrSlotAlreadyBooked):
		uc.outcomes.ObserveAllocation(resource, metrics.OutcomeNotAvailable)
	case errors.Is(err, ErrConflict):
		uc.outcomes.ObserveAllocation(resource, metrics.OutcomeConflict)
	}
}
