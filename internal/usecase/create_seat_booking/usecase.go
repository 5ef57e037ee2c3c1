package create_seat_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	floorRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/floor"
	seatBookingRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/seatbooking"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/events"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/ledger"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/seatallocation"
	"github.com/m04kA/SMC-FacilityBooking/pkg/metrics"
)

// UseCase use case для бронирования мест на этаже
type UseCase struct {
	floors      FloorRepository
	allocator   SeatAllocator
	bookingRepo SeatBookingRepository
	ledger      LedgerService
	txManager   TransactionManager
	outcomes    OutcomeRecorder
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	floors FloorRepository,
	allocator SeatAllocator,
	bookingRepo SeatBookingRepository,
	ledger LedgerService,
	txManager TransactionManager,
	outcomes OutcomeRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		floors:      floors,
		allocator:   allocator,
		bookingRepo: bookingRepo,
		ledger:      ledger,
		txManager:   txManager,
		outcomes:    outcomes,
		logger:      logger,
	}
}

// Execute выполняет use case бронирования мест.
// Выделение мест, запись брони и строки журнала выполняются в одной
// сериализуемой транзакции: брони этажа на дату читаются с FOR UPDATE.
// Событие публикуется только после фиксации транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateSeatBooking: floor=%d, date=%s, seats=%v, capacity=%d",
		req.FloorNumber, req.Date.Format(domain.DateFormat), req.SeatNo, req.Capacity)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateSeatBooking: validation failed: %v", err)
		return nil, err
	}

	var result *Response

	// 2. Выделение мест и запись в транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created, err := uc.persist(txCtx, req)
		if err != nil {
			return err
		}
		result = created
		return nil
	})
	if err != nil {
		err = translateTxError(err)
		if errors.Is(err, ErrConflict) {
			uc.logger.Warn("CreateSeatBooking: %v", err)
		}
		uc.Observe(err)
		return nil, err
	}

	uc.Observe(nil)
	uc.ledger.Announce(ctx, events.EventBookingCreated, result.Ledger)
	uc.logger.Info("CreateSeatBooking: created booking id=%d, seats=%v", result.Booking.ID, result.Booking.SeatNo)

	return result, nil
}

// CreateInTx создает бронь внутри уже открытой транзакции вызывающего.
// Событие не публикуется и метрики не учитываются: это делает вызывающий
// после фиксации своей транзакции (см. Observe).
func (uc *UseCase) CreateInTx(txCtx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	return uc.persist(txCtx, req)
}

func (uc *UseCase) persist(txCtx context.Context, req *Request) (*Response, error) {
	// Дата брони - календарный день в UTC
	date := domain.NormalizeDate(req.Date)

	floor, err := uc.floors.GetByNumber(txCtx, req.FloorNumber)
	if err != nil {
		if errors.Is(err, floorRepo.ErrFloorNotFound) {
			uc.logger.Warn("CreateSeatBooking: floor=%d not found", req.FloorNumber)
			return nil, ErrFloorNotFound
		}
		uc.logger.Error("CreateSeatBooking: failed to get floor=%d: %v", req.FloorNumber, err)
		return nil, fmt.Errorf("%w: failed to get floor: %v", ErrInternal, err)
	}

	// Явно указанные места не проверяются на занятость
	seats := trimLabels(req.SeatNo)
	if len(seats) == 0 {
		allocated, err := uc.allocator.Allocate(txCtx, floor, date, req.Capacity)
		if err != nil {
			switch {
			case errors.Is(err, seatallocation.ErrSeatsNotFound):
				uc.logger.Warn("CreateSeatBooking: %v", err)
				return nil, ErrSeatsNotFound
			case errors.Is(err, seatallocation.ErrConflict):
				return nil, fmt.Errorf("%w: %v", ErrConflict, err)
			}
			uc.logger.Error("CreateSeatBooking: allocation failed: %v", err)
			return nil, fmt.Errorf("%w: failed to allocate seats: %v", ErrInternal, err)
		}
		seats = allocated
	}

	created, err := uc.bookingRepo.Create(txCtx, &domain.SeatBooking{
		FloorNumber: floor.Number,
		Date:        date,
		SeatNo:      seats,
		Status:      req.Status,
		Users:       req.Users,
		Token:       req.Token,
	})
	if err != nil {
		if errors.Is(err, seatBookingRepo.ErrConflict) {
			uc.logger.Warn("CreateSeatBooking: conflict on insert: %v", err)
			return nil, ErrConflict
		}
		uc.logger.Error("CreateSeatBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	entry, err := uc.ledger.Record(txCtx, domain.NewSeatLedgerEntry(created))
	if err != nil {
		if errors.Is(err, ledger.ErrConflict) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("%w: failed to record ledger entry: %v", ErrInternal, err)
	}

	return &Response{Booking: created, Ledger: entry}, nil
}

// Observe учитывает результат попытки бронирования в метриках
func (uc *UseCase) Observe(err error) {
	resource := string(domain.AmenitySeat)
	switch {
	case err == nil:
		uc.outcomes.ObserveAllocation(resource, metrics.OutcomeAllocated)
	case errors.Is(err, ErrSeatsNotFound):
		uc.outcomes.ObserveAllocation(resource, metrics.OutcomeNotAvailable)
	case errors.Is(err, ErrConflict):
		uc.outcomes.ObserveAllocation(resource, metrics.OutcomeConflict)
	}
}
