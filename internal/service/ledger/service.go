// Package ledger ведет сводный журнал бронирований (overall booking):
// одна запись на каждую бронь места, переговорной или столовой.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	ledgerRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/ledger"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/events"
)

// Service сервис сводного журнала
type Service struct {
	repo         LedgerRepository
	seats        SeatBookingRepository
	rooms        RoomBookingRepository
	cafeteria    CafeteriaBookingRepository
	availability AvailabilityEngine
	publisher    EventPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

func NewService(
	repo LedgerRepository,
	seats SeatBookingRepository,
	rooms RoomBookingRepository,
	cafeteria CafeteriaBookingRepository,
	availability AvailabilityEngine,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		repo:         repo,
		seats:        seats,
		rooms:        rooms,
		cafeteria:    cafeteria,
		availability: availability,
		publisher:    publisher,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Record добавляет запись журнала. Вызывается внутри транзакции создания брони.
func (s *Service) Record(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	if !entry.Amenity.IsValid() {
		return nil, fmt.Errorf("%w: unknown amenity %q", ErrInvalidInput, entry.Amenity)
	}

	created, err := s.repo.Create(ctx, entry)
	if err != nil {
		if errors.Is(err, ledgerRepo.ErrDuplicateEntry) {
			s.logger.Warn("Record: entry for booking=%d amenity=%s already exists", entry.BookingID, entry.Amenity)
			return nil, ErrConflict
		}
		s.logger.Error("Record: failed to create entry for booking=%d amenity=%s: %v", entry.BookingID, entry.Amenity, err)
		return nil, fmt.Errorf("%w: Record - repository error: %v", ErrInternal, err)
	}

	return created, nil
}

// Announce публикует событие по записи журнала. Ошибка только логируется:
// бронь уже зафиксирована и не должна падать из-за брокера.
func (s *Service) Announce(ctx context.Context, eventType events.EventType, entry *domain.LedgerEntry) {
	if entry == nil {
		return
	}

	event := events.NewBookingEvent(eventType, entry, s.timeProvider.Now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Announce: failed to publish %s for booking=%d amenity=%s: %v",
			eventType, entry.BookingID, entry.Amenity, err)
	}
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.LedgerEntry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ledgerRepo.ErrEntryNotFound) {
			s.logger.Warn("GetByID: entry id=%d not found", id)
			return nil, ErrEntryNotFound
		}
		s.logger.Error("GetByID: repository error for entry id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return entry, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.LedgerEntry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return entries, nil
}

// FindByBooking запись журнала по паре (bookingID, amenity)
func (s *Service) FindByBooking(ctx context.Context, bookingID int64, amenity domain.Amenity) (*domain.LedgerEntry, error) {
	entry, err := s.repo.GetByBooking(ctx, bookingID, amenity)
	if err != nil {
		if errors.Is(err, ledgerRepo.ErrEntryNotFound) {
			return nil, ErrEntryNotFound
		}
		s.logger.Error("FindByBooking: repository error for booking=%d amenity=%s: %v", bookingID, amenity, err)
		return nil, fmt.Errorf("%w: FindByBooking - repository error: %v", ErrInternal, err)
	}
	return entry, nil
}

// UpdateWindow меняет дату и интервал времени записи.
// Интервал есть только у переговорных и столовой (details[0], details[1]).
func (s *Service) UpdateWindow(ctx context.Context, bookingID int64, amenity domain.Amenity, patch WindowPatch) (*domain.LedgerEntry, error) {
	if !amenity.IsValid() {
		return nil, fmt.Errorf("%w: unknown amenity %q", ErrInvalidInput, amenity)
	}
	if amenity == domain.AmenitySeat && (patch.Start != nil || patch.End != nil) {
		return nil, fmt.Errorf("%w: seat bookings have no time window", ErrInvalidInput)
	}

	var result *domain.LedgerEntry
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		entry, err := s.FindByBooking(txCtx, bookingID, amenity)
		if err != nil {
			return err
		}

		if err := applyWindow(entry, patch); err != nil {
			return err
		}

		if err := s.repo.Update(txCtx, entry); err != nil {
			s.logger.Error("UpdateWindow: failed to update entry id=%d: %v", entry.ID, err)
			return fmt.Errorf("%w: UpdateWindow - repository error: %v", ErrInternal, err)
		}

		result = entry
		return nil
	})
	if err != nil {
		return nil, translateTxError(err)
	}

	s.logger.Info("UpdateWindow: entry for booking=%d amenity=%s updated", bookingID, amenity)
	return result, nil
}

// Sync заменяет дату и детали записи значениями из fresh или создает запись, если ее нет.
// created = true, если запись была создана.
func (s *Service) Sync(ctx context.Context, fresh *domain.LedgerEntry) (entry *domain.LedgerEntry, created bool, err error) {
	entry, err = s.FindByBooking(ctx, fresh.BookingID, fresh.Amenity)
	if errors.Is(err, ErrEntryNotFound) {
		entry, err = s.Record(ctx, fresh)
		return entry, err == nil, err
	}
	if err != nil {
		return nil, false, err
	}

	entry.Date = fresh.Date
	entry.Details = fresh.Details
	if err := s.repo.Update(ctx, entry); err != nil {
		s.logger.Error("Sync: failed to update entry id=%d: %v", entry.ID, err)
		return nil, false, fmt.Errorf("%w: Sync - repository error: %v", ErrInternal, err)
	}

	return entry, false, nil
}

// DeleteByBooking удаляет запись брони и возвращает ее.
// Отсутствие записи не ошибка: возвращается nil.
func (s *Service) DeleteByBooking(ctx context.Context, bookingID int64, amenity domain.Amenity) (*domain.LedgerEntry, error) {
	entry, err := s.FindByBooking(ctx, bookingID, amenity)
	if errors.Is(err, ErrEntryNotFound) {
		s.logger.Warn("DeleteByBooking: no entry for booking=%d amenity=%s", bookingID, amenity)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteByBooking(ctx, bookingID, amenity); err != nil && !errors.Is(err, ledgerRepo.ErrEntryNotFound) {
		s.logger.Error("DeleteByBooking: failed to delete entry for booking=%d amenity=%s: %v", bookingID, amenity, err)
		return nil, fmt.Errorf("%w: DeleteByBooking - repository error: %v", ErrInternal, err)
	}

	return entry, nil
}

// Delete удаляет запись по ID
func (s *Service) Delete(ctx context.Context, id int64) error {
	entry, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ledgerRepo.ErrEntryNotFound) {
			return ErrEntryNotFound
		}
		s.logger.Error("Delete: repository error for entry id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.Announce(ctx, events.EventBookingDeleted, entry)
	s.logger.Info("Delete: entry id=%d deleted", id)
	return nil
}

// Rollup пересобирает записи журнала по всем броням владельца token:
// недостающие создаются, существующие приводятся к актуальным данным брони.
func (s *Service) Rollup(ctx context.Context, token string) ([]*domain.LedgerEntry, error) {
	s.logger.Info("Rollup: token=%s", token)

	seats, err := s.seats.ListByOwner(ctx, token)
	if err != nil {
		s.logger.Error("Rollup: failed to list seat bookings: %v", err)
		return nil, fmt.Errorf("%w: Rollup - list seat bookings: %v", ErrInternal, err)
	}
	rooms, err := s.rooms.ListByOwner(ctx, token)
	if err != nil {
		s.logger.Error("Rollup: failed to list room bookings: %v", err)
		return nil, fmt.Errorf("%w: Rollup - list room bookings: %v", ErrInternal, err)
	}
	cafes, err := s.cafeteria.ListByOwner(ctx, token)
	if err != nil {
		s.logger.Error("Rollup: failed to list cafeteria bookings: %v", err)
		return nil, fmt.Errorf("%w: Rollup - list cafeteria bookings: %v", ErrInternal, err)
	}

	fresh := make([]*domain.LedgerEntry, 0, len(seats)+len(rooms)+len(cafes))
	for _, b := range cafes {
		fresh = append(fresh, domain.NewCafeteriaLedgerEntry(b))
	}
	for _, b := range rooms {
		fresh = append(fresh, domain.NewRoomLedgerEntry(b))
	}
	for _, b := range seats {
		fresh = append(fresh, domain.NewSeatLedgerEntry(b))
	}

	if len(fresh) == 0 {
		s.logger.Warn("Rollup: no bookings found for token=%s", token)
		return nil, ErrNoBookings
	}

	result := make([]*domain.LedgerEntry, 0, len(fresh))
	created := make([]*domain.LedgerEntry, 0)
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, entry := range fresh {
			synced, isNew, err := s.Sync(txCtx, entry)
			if err != nil {
				return err
			}
			if isNew {
				created = append(created, synced)
			}
			result = append(result, synced)
		}
		return nil
	})
	if err != nil {
		return nil, translateTxError(err)
	}

	for _, entry := range created {
		s.Announce(ctx, events.EventBookingCreated, entry)
	}

	s.logger.Info("Rollup: %d entries for token=%s (%d new)", len(result), token, len(created))
	return result, nil
}

// Homescreen предстоящие записи владельца и текущие счетчики доступности
func (s *Service) Homescreen(ctx context.Context, token string) (*Homescreen, error) {
	today := domain.NormalizeDate(s.timeProvider.Now())

	overall, err := s.repo.ListUpcomingByToken(ctx, token, today)
	if err != nil {
		s.logger.Error("Homescreen: failed to list entries for token=%s: %v", token, err)
		return nil, fmt.Errorf("%w: Homescreen - list entries: %v", ErrInternal, err)
	}

	rooms, err := s.availability.RoomsAvailableNow(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: Homescreen - rooms: %v", ErrInternal, err)
	}

	seats, err := s.availability.SeatsAvailableOnDate(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("%w: Homescreen - seats: %v", ErrInternal, err)
	}

	cafeteria, err := s.availability.CafeteriaAvailableToday(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: Homescreen - cafeteria: %v", ErrInternal, err)
	}

	return &Homescreen{
		Overall:      overall,
		MeetingRooms: rooms,
		Seats:        seats.Available,
		Cafeteria:    cafeteria,
	}, nil
}

func applyWindow(entry *domain.LedgerEntry, patch WindowPatch) error {
	if patch.Date != nil {
		entry.Date = domain.NormalizeDate(*patch.Date)
	}

	if patch.Start == nil && patch.End == nil {
		return nil
	}

	start, end, err := currentWindow(entry)
	if err != nil && (patch.Start == nil || patch.End == nil) {
		return fmt.Errorf("%w: entry has no time window to patch: %v", ErrInvalidInput, err)
	}
	if patch.Start != nil {
		start = *patch.Start
	}
	if patch.End != nil {
		end = *patch.End
	}

	if _, err := domain.NewTimeRange(start, end); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	for len(entry.Details) < 2 {
		entry.Details = append(entry.Details, "")
	}
	entry.Details[domain.DetailsStartIdx] = domain.FormatInstant(start)
	entry.Details[domain.DetailsEndIdx] = domain.FormatInstant(end)

	return nil
}

func currentWindow(entry *domain.LedgerEntry) (time.Time, time.Time, error) {
	if len(entry.Details) < 2 {
		return time.Time{}, time.Time{}, errors.New("details too short")
	}
	start, err := time.Parse(time.RFC3339Nano, entry.Details[domain.DetailsStartIdx])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.Parse(time.RFC3339Nano, entry.Details[domain.DetailsEndIdx])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
