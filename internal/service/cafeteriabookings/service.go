package cafeteriabookings

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
)

// Service сервис бронирований столовой (кроме создания)
type Service struct {
	repo         CafeteriaBookingRepository
	floors       FloorRepository
	ledger       LedgerService
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

func NewService(
	repo CafeteriaBookingRepository,
	floors FloorRepository,
	ledger LedgerService,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		repo:         repo,
		floors:       floors,
		ledger:       ledger,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.CafeteriaBooking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, cafeRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: cafeteria booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for cafeteria booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return booking, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.CafeteriaBooking, error) {
	bookings, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return bookings, nil
}

func (s *Service) UpcomingByToken(ctx context.Context, token string) ([]*domain.CafeteriaBooking, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	today := domain.NormalizeDate(s.timeProvider.Now())
	bookings, err := s.repo.ListUpcomingByToken(ctx, token, today)
	if err != nil {
		s.logger.Error("UpcomingByToken: repository error for token=%s: %v", token, err)
		return nil, fmt.Errorf("%w: UpcomingByToken - repository error: %v", ErrInternal, err)
	}
	return bookings, nil
}

// Patch меняет дату и/или интервал брони с повторной проверкой вместимости этажа
func (s *Service) Patch(ctx context.Context, id int64, req *PatchRequest) (*domain.CafeteriaBooking, error) {
	s.logger.Info("Patch: cafeteria booking id=%d", id)

	var updated *domain.CafeteriaBooking
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if req.Date != nil {
			booking.Date = domain.NormalizeDate(*req.Date)
		}
		if req.StartTime != nil {
			booking.StartTime = *req.StartTime
		}
		if req.EndTime != nil {
			booking.EndTime = *req.EndTime
		}
		window, err := domain.NewTimeRange(booking.StartTime, booking.EndTime)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		if err := s.checkCapacity(txCtx, booking, window); err != nil {
			return err
		}

		saved, err := s.repo.Update(txCtx, booking)
		if err != nil {
			switch {
			case errors.Is(err, cafeRepo.ErrBookingNotFound):
				return ErrBookingNotFound
			case errors.Is(err, cafeRepo.ErrConflict):
				return ErrConflict
			}
			return fmt.Errorf("%w: Patch - repository error: %v", ErrInternal, err)
		}

		if _, _, err := s.ledger.Sync(txCtx, domain.NewCafeteriaLedgerEntry(saved)); err != nil {
			return fmt.Errorf("%w: Patch - ledger: %v", ErrInternal, err)
		}

		updated = saved
		return nil
	})
	if err != nil {
		err = translateTxError(err)
		s.logger.Warn("Patch: cafeteria booking id=%d: %v", id, err)
		return nil, err
	}

	s.logger.Info("Patch: cafeteria booking id=%d updated", id)
	return updated, nil
}

// Delete удаляет бронь вместе с ее записью в журнале
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: cafeteria booking id=%d", id)

	var removed *domain.LedgerEntry
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, id); err != nil {
			switch {
			case errors.Is(err, cafeRepo.ErrBookingNotFound):
				return ErrBookingNotFound
			case errors.Is(err, cafeRepo.ErrConflict):
				return ErrConflict
			}
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		entry, err := s.ledger.DeleteByBooking(txCtx, id, domain.AmenityCafeteria)
		if err != nil {
			return fmt.Errorf("%w: Delete - ledger: %v", ErrInternal, err)
		}
		removed = entry
		return nil
	})
	if err != nil {
		err = translateTxError(err)
		s.logger.Warn("Delete: cafeteria booking id=%d: %v", id, err)
		return err
	}

	s.ledger.Announce(ctx, events.EventBookingDeleted, removed)
	s.logger.Info("Delete: cafeteria booking id=%d deleted", id)
	return nil
}

func (s *Service) checkCapacity(ctx context.Context, booking *domain.CafeteriaBooking, window domain.TimeRange) error {
	floor, err := s.floors.GetByNumber(ctx, booking.FloorNumber)
	if err != nil {
		if errors.Is(err, floorRepo.ErrFloorNotFound) {
			return ErrFloorNotFound
		}
		return fmt.Errorf("%w: checkCapacity - floor: %v", ErrInternal, err)
	}

	sameDay, err := s.repo.ListByFloorAndDate(ctx, booking.FloorNumber, booking.Date)
	if err != nil {
		if errors.Is(err, cafeRepo.ErrConflict) {
			return ErrConflict
		}
		return fmt.Errorf("%w: checkCapacity - list bookings: %v", ErrInternal, err)
	}

	others := make([]*domain.CafeteriaBooking, 0, len(sameDay))
	for _, b := range sameDay {
		if b.ID != booking.ID {
			others = append(others, b)
		}
	}

	if availability.CountOverlapping(others, window) >= floor.Capacity {
		return ErrNoCapacity
	}
	return nil
}
