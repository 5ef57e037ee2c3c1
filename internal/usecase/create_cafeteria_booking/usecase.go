package create_cafeteria_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	cafeRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/cafeteriabooking"
	floorRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/floor"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/events"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/availability"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/ledger"
	"github.com/m04kA/SMC-FacilityBooking/pkg/metrics"
)

// UseCase use case для бронирования места в столовой
type UseCase struct {
	floors       FloorRepository
	bookingRepo  CafeteriaBookingRepository
	ledger       LedgerService
	txManager    TransactionManager
	outcomes     OutcomeRecorder
	defaultFloor int
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	floors FloorRepository,
	bookingRepo CafeteriaBookingRepository,
	ledger LedgerService,
	txManager TransactionManager,
	outcomes OutcomeRecorder,
	defaultFloor int,
	logger Logger,
) *UseCase {
	return &UseCase{
		floors:       floors,
		bookingRepo:  bookingRepo,
		ledger:       ledger,
		txManager:    txManager,
		outcomes:     outcomes,
		defaultFloor: defaultFloor,
		logger:       logger,
	}
}

// Execute выполняет use case бронирования столовой
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateCafeteriaBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Значения по умолчанию
	token := strings.TrimSpace(req.Token)
	if token == "" {
		token = domain.UnknownOwnerToken
	}
	floorNumber := uc.defaultFloor
	if req.FloorNumber != nil {
		floorNumber = *req.FloorNumber
	}
	date := domain.NormalizeDate(req.Date)
	window := domain.TimeRange{Start: req.StartTime, End: req.EndTime}

	uc.logger.Info("CreateCafeteriaBooking: floor=%d, date=%s, start=%s, end=%s",
		floorNumber, date.Format(domain.DateFormat), req.StartTime.Format(domain.TimeFormat), req.EndTime.Format(domain.TimeFormat))

	// 3. Этаж и его вместимость
	floor, err := uc.floors.GetByNumber(ctx, floorNumber)
	if err != nil {
		if errors.Is(err, floorRepo.ErrFloorNotFound) {
			uc.logger.Warn("CreateCafeteriaBooking: floor=%d not found", floorNumber)
			return nil, ErrFloorNotFound
		}
		uc.logger.Error("CreateCafeteriaBooking: failed to get floor=%d: %v", floorNumber, err)
		return nil, fmt.Errorf("%w: failed to get floor: %v", ErrInternal, err)
	}

	var result Response

	// 4. Проверка вместимости и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Брони этажа на дату (FOR UPDATE)
		sameDay, err := uc.bookingRepo.ListByFloorAndDate(txCtx, floor.Number, date)
		if err != nil {
			if errors.Is(err, cafeRepo.ErrConflict) {
				return fmt.Errorf("%w: failed to lock bookings: %v", ErrConflict, err)
			}
			uc.logger.Error("CreateCafeteriaBooking: failed to list bookings: %v", err)
			return fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
		}

		overlapping := availability.CountOverlapping(sameDay, window)
		if overlapping >= floor.Capacity {
			uc.logger.Warn("CreateCafeteriaBooking: no capacity, %d/%d taken", overlapping, floor.Capacity)
			return ErrNoCapacity
		}

		// 4.2. Бронь
		created, err := uc.bookingRepo.Create(txCtx, &domain.CafeteriaBooking{
			FloorNumber: floor.Number,
			Date:        date,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			Token:       token,
		})
		if err != nil {
			if errors.Is(err, cafeRepo.ErrConflict) {
				return ErrConflict
			}
			uc.logger.Error("CreateCafeteriaBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 4.3. Строка журнала
		entry, err := uc.ledger.Record(txCtx, domain.NewCafeteriaLedgerEntry(created))
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
	uc.logger.Info("CreateCafeteriaBooking: created booking id=%d", result.Booking.ID)

	return &result, nil
}

func (uc *UseCase) observe(err error) {
	resource := string(domain.AmenityCafeteria)
	switch {
	case err == nil:
		uc.outcomes.ObserveAllocation(resource, metrics.OutcomeAllocated)
	case errors.Is(err, ErrNoCapacity):
		uc.outcomes.ObserveAllocation(resource, metrics.OutcomeNotAvailable)
	case errors.Is(err, ErrConflict):
		uc.outcomes.ObserveAllocation(resource, metrics.OutcomeConflict)
	}
}
