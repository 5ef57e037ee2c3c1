package roombookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	roomBookingRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/roombooking"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/events"
)

// Service сервис бронирований переговорных (кроме создания)
type Service struct {
	repo         RoomBookingRepository
	ledger       LedgerService
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

func NewService(repo RoomBookingRepository, ledger LedgerService, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		repo:         repo,
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

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.RoomBooking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, roomBookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: room booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for room booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return booking, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.RoomBooking, error) {
	bookings, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return bookings, nil
}

func (s *Service) UpcomingByToken(ctx context.Context, token string) ([]*domain.RoomBooking, error) {
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

// Patch частично обновляет бронь. При изменении даты или времени
// новый интервал проверяется на пересечение с остальными бронями переговорной.
// Запись журнала приводится к новым данным брони.
func (s *Service) Patch(ctx context.Context, id int64, req *PatchRequest) (*domain.RoomBooking, error) {
	s.logger.Info("Patch: room booking id=%d", id)

	var updated *domain.RoomBooking
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Текущая бронь (FOR UPDATE)
		booking, err := s.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		// 2. Слияние и валидация интервала
		apply(booking, req)
		if _, err := domain.NewTimeRange(booking.StartTime, booking.EndTime); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		// 3. Проверка пересечений
		if req.movesWindow() {
			sameDay, err := s.repo.ListByRoomAndDate(txCtx, booking.RoomID, booking.Date)
			if err != nil {
				if errors.Is(err, roomBookingRepo.ErrConflict) {
					return ErrConflict
				}
				return fmt.Errorf("%w: Patch - list room bookings: %v", ErrInternal, err)
			}
			for _, other := range sameDay {
				if other.ID != booking.ID && other.Range().Overlaps(booking.Range()) {
					s.logger.Warn("Patch: room=%d slot overlaps booking id=%d", booking.RoomID, other.ID)
					return ErrSlotAlreadyBooked
				}
			}
		}

		// 4. Сохранение
		saved, err := s.repo.Update(txCtx, booking)
		if err != nil {
			switch {
			case errors.Is(err, roomBookingRepo.ErrBookingNotFound):
				return ErrBookingNotFound
			case errors.Is(err, roomBookingRepo.ErrConflict):
				return ErrConflict
			}
			return fmt.Errorf("%w: Patch - repository error: %v", ErrInternal, err)
		}

		// 5. Журнал
		if _, _, err := s.ledger.Sync(txCtx, domain.NewRoomLedgerEntry(saved)); err != nil {
			return fmt.Errorf("%w: Patch - ledger: %v", ErrInternal, err)
		}

		updated = saved
		return nil
	})
	if err != nil {
		err = translateTxError(err)
		if !errors.Is(err, ErrInternal) {
			s.logger.Warn("Patch: room booking id=%d rejected: %v", id, err)
		} else {
			s.logger.Error("Patch: failed to update room booking id=%d: %v", id, err)
		}
		return nil, err
	}

	s.logger.Info("Patch: room booking id=%d updated", id)
	return updated, nil
}

// Delete удаляет бронь вместе с ее записью в журнале
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: room booking id=%d", id)

	var removed *domain.LedgerEntry
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, id); err != nil {
			switch {
			case errors.Is(err, roomBookingRepo.ErrBookingNotFound):
				return ErrBookingNotFound
			case errors.Is(err, roomBookingRepo.ErrConflict):
				return ErrConflict
			}
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		entry, err := s.ledger.DeleteByBooking(txCtx, id, domain.AmenityMeetingRoom)
		if err != nil {
			return fmt.Errorf("%w: Delete - ledger: %v", ErrInternal, err)
		}
		removed = entry
		return nil
	})
	if err != nil {
		err = translateTxError(err)
		s.logger.Warn("Delete: room booking id=%d: %v", id, err)
		return err
	}

	s.ledger.Announce(ctx, events.EventBookingDeleted, removed)
	s.logger.Info("Delete: room booking id=%d deleted", id)
	return nil
}

func apply(b *domain.RoomBooking, req *PatchRequest) {
	if req.Date != nil {
		b.Date = domain.NormalizeDate(*req.Date)
	}
	if req.StartTime != nil {
		b.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		b.EndTime = *req.EndTime
	}
	if req.FloorNumber != nil {
		b.FloorNumber = *req.FloorNumber
	}
	if req.RoomName != nil {
		b.RoomName = *req.RoomName
	}
	if req.Users != nil {
		b.Users = append([]string(nil), (*req.Users)...)
	}
	if req.Status != nil {
		b.Status = *req.Status
	}
}
