package update_seat_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	seatBookingRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/seatbooking"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/events"
	"github.com/m04kA/SMC-FacilityBooking/internal/usecase/create_seat_booking"
)

// UseCase замена брони мест: старая бронь удаляется, новая создается
// заново в той же транзакции. ID брони при этом меняется.
type UseCase struct {
	bookingRepo SeatBookingRepository
	creator     SeatBookingCreator
	ledger      LedgerService
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo SeatBookingRepository,
	creator SeatBookingCreator,
	ledger LedgerService,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		creator:     creator,
		ledger:      ledger,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет замену брони
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateSeatBooking: id=%d, floor=%d, seats=%v, capacity=%d",
		req.ID, req.FloorNumber, req.SeatNo, req.Capacity)

	if req.ID <= 0 {
		return nil, fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	var (
		result  *Response
		removed *domain.LedgerEntry
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Старая бронь (FOR UPDATE)
		if _, err := uc.bookingRepo.GetByID(txCtx, req.ID); err != nil {
			if errors.Is(err, seatBookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2. Удаление старой брони и ее записи в журнале
		if err := uc.bookingRepo.Delete(txCtx, req.ID); err != nil {
			if errors.Is(err, seatBookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to delete booking: %v", ErrInternal, err)
		}

		entry, err := uc.ledger.DeleteByBooking(txCtx, req.ID, domain.AmenitySeat)
		if err != nil {
			return fmt.Errorf("%w: failed to delete ledger entry: %v", ErrInternal, err)
		}
		removed = entry

		// 3. Новая бронь; освобожденные места снова доступны для выделения.
		// События и метрики - только после фиксации транзакции замены.
		created, err := uc.creator.CreateInTx(txCtx, &create_seat_booking.Request{
			Date:        req.Date,
			FloorNumber: req.FloorNumber,
			Status:      req.Status,
			Token:       req.Token,
			SeatNo:      req.SeatNo,
			Capacity:    req.Capacity,
			Users:       req.Users,
		})
		if err != nil {
			return translateCreateError(err)
		}

		result = &Response{ReplacedID: req.ID, Booking: created.Booking, Ledger: created.Ledger}
		return nil
	})
	if err != nil {
		err = translateTxError(err)
		uc.logger.Warn("UpdateSeatBooking: id=%d not replaced: %v", req.ID, err)
		uc.observe(err)
		return nil, err
	}

	uc.observe(nil)
	uc.ledger.Announce(ctx, events.EventBookingDeleted, removed)
	uc.ledger.Announce(ctx, events.EventBookingCreated, result.Ledger)
	uc.logger.Info("UpdateSeatBooking: booking id=%d replaced by id=%d", req.ID, result.Booking.ID)

	return result, nil
}

func translateCreateError(err error) error {
	switch {
	case errors.Is(err, create_seat_booking.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, create_seat_booking.ErrFloorNotFound):
		return ErrFloorNotFound
	case errors.Is(err, create_seat_booking.ErrSeatsNotFound):
		return ErrSeatsNotFound
	case errors.Is(err, create_seat_booking.ErrConflict):
		return ErrConflict
	}
	return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
}

// observe передает в метрики только исходы выделения мест
func (uc *UseCase) observe(err error) {
	switch {
	case err == nil:
		uc.creator.Observe(nil)
	case errors.Is(err, ErrSeatsNotFound):
		uc.creator.Observe(create_seat_booking.ErrSeatsNotFound)
	case errors.Is(err, ErrConflict):
		uc.creator.Observe(create_seat_booking.ErrConflict)
	}
}
