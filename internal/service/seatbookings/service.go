package seatbookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	seatBookingRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/seatbooking"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/events"
)

// Service сервис для чтения и удаления бронирований мест.
// Создание и замена брони - в use cases create_seat_booking и update_seat_booking.
type Service struct {
	repo         SeatBookingRepository
	ledger       LedgerService
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

func NewService(repo SeatBookingRepository, ledger LedgerService, txManager TransactionManager, logger Logger) *Service {
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

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.SeatBooking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, seatBookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: seat booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for seat booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return booking, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.SeatBooking, error) {
	bookings, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return bookings, nil
}

// UpcomingByToken брони с сегодняшнего дня, где token владелец или участник
func (s *Service) UpcomingByToken(ctx context.Context, token string) ([]*domain.SeatBooking, error) {
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

// Delete удаляет бронь вместе с ее записью в журнале
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: seat booking id=%d", id)

	var removed *domain.LedgerEntry
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, id); err != nil {
			switch {
			case errors.Is(err, seatBookingRepo.ErrBookingNotFound):
				return ErrBookingNotFound
			case errors.Is(err, seatBookingRepo.ErrConflict):
				return ErrConflict
			}
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		entry, err := s.ledger.DeleteByBooking(txCtx, id, domain.AmenitySeat)
		if err != nil {
			return fmt.Errorf("%w: Delete - ledger: %v", ErrInternal, err)
		}
		removed = entry
		return nil
	})
	if err != nil {
		err = translateTxError(err)
		if errors.Is(err, ErrBookingNotFound) || errors.Is(err, ErrConflict) {
			s.logger.Warn("Delete: seat booking id=%d: %v", id, err)
		} else {
			s.logger.Error("Delete: failed to delete seat booking id=%d: %v", id, err)
		}
		return err
	}

	s.ledger.Announce(ctx, events.EventBookingDeleted, removed)
	s.logger.Info("Delete: seat booking id=%d deleted", id)
	return nil
}
