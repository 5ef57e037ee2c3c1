// Package memstore - in-memory реализации репозиториев для тестов сервисов и use cases.
// Ошибки совпадают с ошибками PostgreSQL-репозиториев.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	cafeRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/cafeteriabooking"
	floorRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/floor"
	ledgerRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/ledger"
	roomRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/room"
	roomBookingRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/roombooking"
	seatBookingRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/seatbooking"
)

type state struct {
	floors  map[int]domain.Floor
	rooms   map[int64]domain.MeetingRoom
	seats   map[int64]domain.SeatBooking
	roomBks map[int64]domain.RoomBooking
	cafeBks map[int64]domain.CafeteriaBooking
	ledger  map[int64]domain.LedgerEntry
	nextID  int64
}

// Store общее хранилище
type Store struct {
	mu sync.Mutex
	st state
}

func New() *Store {
	return &Store{st: state{
		floors:  make(map[int]domain.Floor),
		rooms:   make(map[int64]domain.MeetingRoom),
		seats:   make(map[int64]domain.SeatBooking),
		roomBks: make(map[int64]domain.RoomBooking),
		cafeBks: make(map[int64]domain.CafeteriaBooking),
		ledger:  make(map[int64]domain.LedgerEntry),
	}}
}

func (s *Store) AddFloor(f domain.Floor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.floors[f.Number] = f
}

func (s *Store) AddRoom(r domain.MeetingRoom) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.rooms[r.ID] = r
}

func (s *Store) id() int64 {
	s.st.nextID++
	return s.st.nextID
}

func (s *Store) snapshot() state {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.clone()
}

func (s *Store) restore(st state) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st = st
}

func (st state) clone() state {
	c := state{
		floors:  make(map[int]domain.Floor, len(st.floors)),
		rooms:   make(map[int64]domain.MeetingRoom, len(st.rooms)),
		seats:   make(map[int64]domain.SeatBooking, len(st.seats)),
		roomBks: make(map[int64]domain.RoomBooking, len(st.roomBks)),
		cafeBks: make(map[int64]domain.CafeteriaBooking, len(st.cafeBks)),
		ledger:  make(map[int64]domain.LedgerEntry, len(st.ledger)),
		nextID:  st.nextID,
	}
	for k, v := range st.floors {
		c.floors[k] = v
	}
	for k, v := range st.rooms {
		c.rooms[k] = v
	}
	for k, v := range st.seats {
		v.SeatNo = append([]string(nil), v.SeatNo...)
		v.Users = append([]string(nil), v.Users...)
		c.seats[k] = v
	}
	for k, v := range st.roomBks {
		v.Users = append([]string(nil), v.Users...)
		c.roomBks[k] = v
	}
	for k, v := range st.cafeBks {
		c.cafeBks[k] = v
	}
	for k, v := range st.ledger {
		v.Details = append([]string(nil), v.Details...)
		c.ledger[k] = v
	}
	return c
}

// TxManager выполняет fn и откатывает состояние хранилища при ошибке
type TxManager struct {
	store *Store
	Calls int
}

func (s *Store) TxManager() *TxManager {
	return &TxManager{store: s}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	saved := m.store.snapshot()
	if err := fn(ctx); err != nil {
		m.store.restore(saved)
		return err
	}
	return nil
}

// Floors

type Floors struct{ s *Store }

func (s *Store) Floors() *Floors { return &Floors{s: s} }

func (r *Floors) GetByNumber(_ context.Context, number int) (*domain.Floor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.st.floors[number]
	if !ok {
		return nil, floorRepo.ErrFloorNotFound
	}
	return &f, nil
}

func (r *Floors) List(_ context.Context) ([]*domain.Floor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]*domain.Floor, 0, len(r.s.st.floors))
	for _, f := range r.s.st.floors {
		f := f
		result = append(result, &f)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Number < result[j].Number })
	return result, nil
}

// Rooms

type Rooms struct{ s *Store }

func (s *Store) Rooms() *Rooms { return &Rooms{s: s} }

func (r *Rooms) GetByID(_ context.Context, id int64) (*domain.MeetingRoom, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	room, ok := r.s.st.rooms[id]
	if !ok {
		return nil, roomRepo.ErrRoomNotFound
	}
	return &room, nil
}

func (r *Rooms) List(ctx context.Context) ([]*domain.MeetingRoom, error) {
	return r.ListByMinCapacity(ctx, 0)
}

func (r *Rooms) ListByMinCapacity(_ context.Context, capacity int) ([]*domain.MeetingRoom, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]*domain.MeetingRoom, 0)
	for _, room := range r.s.st.rooms {
		room := room
		if room.Capacity >= capacity {
			result = append(result, &room)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *Rooms) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.st.rooms), nil
}

// Seat bookings

type SeatBookings struct{ s *Store }

func (s *Store) SeatBookings() *SeatBookings { return &SeatBookings{s: s} }

func (r *SeatBookings) Create(_ context.Context, b *domain.SeatBooking) (*domain.SeatBooking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b.ID = r.s.id()
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	stored := *b
	stored.SeatNo = append([]string(nil), b.SeatNo...)
	stored.Users = append([]string(nil), b.Users...)
	r.s.st.seats[b.ID] = stored
	return b, nil
}

func (r *SeatBookings) GetByID(_ context.Context, id int64) (*domain.SeatBooking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.st.seats[id]
	if !ok {
		return nil, seatBookingRepo.ErrBookingNotFound
	}
	return &b, nil
}

func (r *SeatBookings) List(_ context.Context) ([]*domain.SeatBooking, error) {
	return r.filter(func(*domain.SeatBooking) bool { return true }), nil
}

func (r *SeatBookings) ListByFloorAndDate(_ context.Context, floorNumber int, date time.Time) ([]*domain.SeatBooking, error) {
	return r.filter(func(b *domain.SeatBooking) bool {
		return b.FloorNumber == floorNumber && b.Date.Equal(date)
	}), nil
}

func (r *SeatBookings) ListByDate(_ context.Context, date time.Time) ([]*domain.SeatBooking, error) {
	return r.filter(func(b *domain.SeatBooking) bool { return b.Date.Equal(date) }), nil
}

func (r *SeatBookings) ListUpcomingByToken(_ context.Context, token string, from time.Time) ([]*domain.SeatBooking, error) {
	return r.filter(func(b *domain.SeatBooking) bool {
		return !b.Date.Before(from) && b.IsOwnedBy(token)
	}), nil
}

func (r *SeatBookings) ListByOwner(_ context.Context, token string) ([]*domain.SeatBooking, error) {
	return r.filter(func(b *domain.SeatBooking) bool { return b.Token != nil && *b.Token == token }), nil
}

func (r *SeatBookings) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.seats[id]; !ok {
		return seatBookingRepo.ErrBookingNotFound
	}
	delete(r.s.st.seats, id)
	return nil
}

func (r *SeatBookings) filter(keep func(*domain.SeatBooking) bool) []*domain.SeatBooking {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]*domain.SeatBooking, 0)
	for _, b := range r.s.st.seats {
		b := b
		if keep(&b) {
			result = append(result, &b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Room bookings

type RoomBookings struct {
	s *Store

	// EnforceExclusion имитирует exclusion constraint room_bookings_no_overlap
	EnforceExclusion bool
}

func (s *Store) RoomBookings() *RoomBookings { return &RoomBookings{s: s, EnforceExclusion: true} }

func (r *RoomBookings) Create(_ context.Context, b *domain.RoomBooking) (*domain.RoomBooking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.overlapsLocked(b) {
		return nil, roomBookingRepo.ErrConflict
	}
	b.ID = r.s.id()
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	stored := *b
	stored.Users = append([]string(nil), b.Users...)
	r.s.st.roomBks[b.ID] = stored
	return b, nil
}

func (r *RoomBookings) GetByID(_ context.Context, id int64) (*domain.RoomBooking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.st.roomBks[id]
	if !ok {
		return nil, roomBookingRepo.ErrBookingNotFound
	}
	return &b, nil
}

func (r *RoomBookings) List(_ context.Context) ([]*domain.RoomBooking, error) {
	return r.filter(func(*domain.RoomBooking) bool { return true }), nil
}

func (r *RoomBookings) ListByRoomAndDate(_ context.Context, roomID int64, date time.Time) ([]*domain.RoomBooking, error) {
	return r.filter(func(b *domain.RoomBooking) bool { return b.RoomID == roomID && b.Date.Equal(date) }), nil
}

func (r *RoomBookings) ListByDate(_ context.Context, date time.Time) ([]*domain.RoomBooking, error) {
	return r.filter(func(b *domain.RoomBooking) bool { return b.Date.Equal(date) }), nil
}

func (r *RoomBookings) ListUpcomingByToken(_ context.Context, token string, from time.Time) ([]*domain.RoomBooking, error) {
	return r.filter(func(b *domain.RoomBooking) bool { return !b.Date.Before(from) && b.IsOwnedBy(token) }), nil
}

func (r *RoomBookings) ListByOwner(_ context.Context, token string) ([]*domain.RoomBooking, error) {
	return r.filter(func(b *domain.RoomBooking) bool { return b.Token != nil && *b.Token == token }), nil
}

func (r *RoomBookings) Update(_ context.Context, b *domain.RoomBooking) (*domain.RoomBooking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.roomBks[b.ID]; !ok {
		return nil, roomBookingRepo.ErrBookingNotFound
	}
	if r.overlapsLocked(b) {
		return nil, roomBookingRepo.ErrConflict
	}
	b.UpdatedAt = time.Now()
	stored := *b
	stored.Users = append([]string(nil), b.Users...)
	r.s.st.roomBks[b.ID] = stored
	return b, nil
}

func (r *RoomBookings) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.roomBks[id]; !ok {
		return roomBookingRepo.ErrBookingNotFound
	}
	delete(r.s.st.roomBks, id)
	return nil
}

func (r *RoomBookings) overlapsLocked(b *domain.RoomBooking) bool {
	if !r.EnforceExclusion {
		return false
	}
	for id, other := range r.s.st.roomBks {
		if id != b.ID && other.RoomID == b.RoomID && other.Range().Overlaps(b.Range()) {
			return true
		}
	}
	return false
}

func (r *RoomBookings) filter(keep func(*domain.RoomBooking) bool) []*domain.RoomBooking {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]*domain.RoomBooking, 0)
	for _, b := range r.s.st.roomBks {
		b := b
		if keep(&b) {
			result = append(result, &b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Cafeteria bookings

type CafeteriaBookings struct{ s *Store }

func (s *Store) CafeteriaBookings() *CafeteriaBookings { return &CafeteriaBookings{s: s} }

func (r *CafeteriaBookings) Create(_ context.Context, b *domain.CafeteriaBooking) (*domain.CafeteriaBooking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b.ID = r.s.id()
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	r.s.st.cafeBks[b.ID] = *b
	return b, nil
}

func (r *CafeteriaBookings) GetByID(_ context.Context, id int64) (*domain.CafeteriaBooking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.st.cafeBks[id]
	if !ok {
		return nil, cafeRepo.ErrBookingNotFound
	}
	return &b, nil
}

func (r *CafeteriaBookings) List(_ context.Context) ([]*domain.CafeteriaBooking, error) {
	return r.filter(func(*domain.CafeteriaBooking) bool { return true }), nil
}

func (r *CafeteriaBookings) ListByFloorAndDate(_ context.Context, floorNumber int, date time.Time) ([]*domain.CafeteriaBooking, error) {
	return r.filter(func(b *domain.CafeteriaBooking) bool {
		return b.FloorNumber == floorNumber && b.Date.Equal(date)
	}), nil
}

func (r *CafeteriaBookings) CountByDate(_ context.Context, date time.Time) (int, error) {
	return len(r.filter(func(b *domain.CafeteriaBooking) bool { return b.Date.Equal(date) })), nil
}

func (r *CafeteriaBookings) ListUpcomingByToken(_ context.Context, token string, from time.Time) ([]*domain.CafeteriaBooking, error) {
	return r.filter(func(b *domain.CafeteriaBooking) bool { return b.Token == token && !b.Date.Before(from) }), nil
}

func (r *CafeteriaBookings) ListByOwner(_ context.Context, token string) ([]*domain.CafeteriaBooking, error) {
	return r.filter(func(b *domain.CafeteriaBooking) bool { return b.Token == token }), nil
}

func (r *CafeteriaBookings) Update(_ context.Context, b *domain.CafeteriaBooking) (*domain.CafeteriaBooking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.cafeBks[b.ID]; !ok {
		return nil, cafeRepo.ErrBookingNotFound
	}
	b.UpdatedAt = time.Now()
	r.s.st.cafeBks[b.ID] = *b
	return b, nil
}

func (r *CafeteriaBookings) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.cafeBks[id]; !ok {
		return cafeRepo.ErrBookingNotFound
	}
	delete(r.s.st.cafeBks, id)
	return nil
}

func (r *CafeteriaBookings) filter(keep func(*domain.CafeteriaBooking) bool) []*domain.CafeteriaBooking {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]*domain.CafeteriaBooking, 0)
	for _, b := range r.s.st.cafeBks {
		b := b
		if keep(&b) {
			result = append(result, &b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Ledger

type Ledger struct{ s *Store }

func (s *Store) Ledger() *Ledger { return &Ledger{s: s} }

func (r *Ledger) Create(_ context.Context, e *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.st.ledger {
		if existing.BookingID == e.BookingID && existing.Amenity == e.Amenity {
			return nil, ledgerRepo.ErrDuplicateEntry
		}
	}
	e.ID = r.s.id()
	e.CreatedAt = time.Now()
	stored := *e
	stored.Details = append([]string(nil), e.Details...)
	r.s.st.ledger[e.ID] = stored
	return e, nil
}

func (r *Ledger) GetByID(_ context.Context, id int64) (*domain.LedgerEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.st.ledger[id]
	if !ok {
		return nil, ledgerRepo.ErrEntryNotFound
	}
	return &e, nil
}

func (r *Ledger) GetByBooking(_ context.Context, bookingID int64, amenity domain.Amenity) (*domain.LedgerEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.st.ledger {
		if e.BookingID == bookingID && e.Amenity == amenity {
			e := e
			return &e, nil
		}
	}
	return nil, ledgerRepo.ErrEntryNotFound
}

func (r *Ledger) List(_ context.Context) ([]*domain.LedgerEntry, error) {
	return r.filter(func(*domain.LedgerEntry) bool { return true }), nil
}

func (r *Ledger) ListUpcomingByToken(_ context.Context, token string, from time.Time) ([]*domain.LedgerEntry, error) {
	return r.filter(func(e *domain.LedgerEntry) bool { return e.Token == token && !e.Date.Before(from) }), nil
}

func (r *Ledger) Update(_ context.Context, e *domain.LedgerEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.ledger[e.ID]; !ok {
		return ledgerRepo.ErrEntryNotFound
	}
	stored := *e
	stored.Details = append([]string(nil), e.Details...)
	r.s.st.ledger[e.ID] = stored
	return nil
}

func (r *Ledger) DeleteByBooking(_ context.Context, bookingID int64, amenity domain.Amenity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, e := range r.s.st.ledger {
		if e.BookingID == bookingID && e.Amenity == amenity {
			delete(r.s.st.ledger, id)
			return nil
		}
	}
	return ledgerRepo.ErrEntryNotFound
}

func (r *Ledger) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.ledger[id]; !ok {
		return ledgerRepo.ErrEntryNotFound
	}
	delete(r.s.st.ledger, id)
	return nil
}

func (r *Ledger) filter(keep func(*domain.LedgerEntry) bool) []*domain.LedgerEntry {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]*domain.LedgerEntry, 0)
	for _, e := range r.s.st.ledger {
		e := e
		if keep(&e) {
			result = append(result, &e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// FixedClock фиксированное время для тестов
type FixedClock struct {
	T time.Time
}

func (c *FixedClock) Now() time.Time { return c.T }
