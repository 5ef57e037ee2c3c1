package seat_bookings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/api/middleware"
	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/seatbookings"
	createSeatBooking "github.com/m04kA/SMC-FacilityBooking/internal/usecase/create_seat_booking"
	updateSeatBooking "github.com/m04kA/SMC-FacilityBooking/internal/usecase/update_seat_booking"
	"github.com/m04kA/SMC-FacilityBooking/pkg/logger"
)

type fakeCreator struct {
	got *createSeatBooking.Request
	err error
}

func (f *fakeCreator) Execute(_ context.Context, req *createSeatBooking.Request) (*createSeatBooking.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	b := &domain.SeatBooking{
		ID:          7,
		FloorNumber: req.FloorNumber,
		Date:        req.Date,
		SeatNo:      []string{"A 005", "A 006"},
		Token:       req.Token,
	}
	return &createSeatBooking.Response{Booking: b, Ledger: domain.NewSeatLedgerEntry(b)}, nil
}

type fakeUpdater struct {
	err error
}

func (f *fakeUpdater) Execute(_ context.Context, req *updateSeatBooking.Request) (*updateSeatBooking.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	b := &domain.SeatBooking{ID: req.ID + 100, FloorNumber: req.FloorNumber, Date: req.Date, SeatNo: req.SeatNo}
	return &updateSeatBooking.Response{ReplacedID: req.ID, Booking: b, Ledger: domain.NewSeatLedgerEntry(b)}, nil
}

type fakeService struct {
	bookings  map[int64]*domain.SeatBooking
	deleteErr error
}

func (f *fakeService) GetByID(_ context.Context, id int64) (*domain.SeatBooking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, seatbookings.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeService) List(_ context.Context) ([]*domain.SeatBooking, error) {
	result := make([]*domain.SeatBooking, 0, len(f.bookings))
	for _, b := range f.bookings {
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeService) UpcomingByToken(_ context.Context, token string) ([]*domain.SeatBooking, error) {
	if token == "" {
		return nil, seatbookings.ErrInvalidInput
	}
	return []*domain.SeatBooking{}, nil
}

func (f *fakeService) Delete(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.bookings[id]; !ok {
		return seatbookings.ErrBookingNotFound
	}
	delete(f.bookings, id)
	return nil
}

func newRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Identify)
	r.HandleFunc("/seat-bookings", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/seat-bookings", h.List).Methods(http.MethodGet)
	r.HandleFunc("/seat-bookings/{bookingId}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/seat-bookings/{bookingId}", h.Replace).Methods(http.MethodPut)
	r.HandleFunc("/seat-bookings/{bookingId}", h.Delete).Methods(http.MethodDelete)
	return r
}

func newTestHandler(creator *fakeCreator, updater *fakeUpdater) (*Handler, *fakeService) {
	svc := &fakeService{bookings: map[int64]*domain.SeatBooking{
		1: {ID: 1, FloorNumber: 2, Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), SeatNo: []string{"A 001"}},
	}}
	return NewHandler(creator, updater, svc, logger.NewNop()), svc
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "created", body: `{"date":"2025-03-10","floorNumber":2,"capacity":2}`, wantStatus: http.StatusCreated},
		{name: "malformed json", body: `{"date":`, wantStatus: http.StatusBadRequest},
		{name: "unknown field", body: `{"date":"2025-03-10","floor":2}`, wantStatus: http.StatusBadRequest},
		{name: "bad date", body: `{"date":"10.03.2025","floorNumber":2,"capacity":2}`, wantStatus: http.StatusBadRequest},
		{name: "seats not found", body: `{"date":"2025-03-10","floorNumber":2,"capacity":9}`, err: createSeatBooking.ErrSeatsNotFound, wantStatus: http.StatusUnprocessableEntity},
		{name: "floor not found", body: `{"date":"2025-03-10","floorNumber":9,"capacity":1}`, err: createSeatBooking.ErrFloorNotFound, wantStatus: http.StatusNotFound},
		{name: "invalid input", body: `{"date":"2025-03-10","floorNumber":2}`, err: createSeatBooking.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "conflict", body: `{"date":"2025-03-10","floorNumber":2,"capacity":1}`, err: createSeatBooking.ErrConflict, wantStatus: http.StatusConflict},
		{name: "internal", body: `{"date":"2025-03-10","floorNumber":2,"capacity":1}`, err: fmt.Errorf("%w: boom", createSeatBooking.ErrInternal), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(&fakeCreator{err: tt.err}, &fakeUpdater{})

			rec := httptest.NewRecorder()
			newRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/seat-bookings", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestCreate_TokenFromHeader(t *testing.T) {
	creator := &fakeCreator{}
	h, _ := newTestHandler(creator, &fakeUpdater{})

	req := httptest.NewRequest(http.MethodPost, "/seat-bookings", strings.NewReader(`{"date":"2025-03-10","floorNumber":2,"capacity":2}`))
	req.Header.Set(middleware.UserTokenHeader, "alice")
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, creator.got.Token)
	assert.Equal(t, "alice", *creator.got.Token)

	var resp CreatedResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(7), resp.Booking.ID)
	assert.Equal(t, []string{"A 005", "A 006"}, resp.Booking.SeatNo)
	assert.Equal(t, "Seating", resp.Ledger.Amenity)
	assert.Equal(t, "alice", resp.Ledger.Token)
}

func TestReplace(t *testing.T) {
	h, _ := newTestHandler(&fakeCreator{}, &fakeUpdater{})

	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/seat-bookings/1",
		strings.NewReader(`{"date":"2025-03-11","floorNumber":2,"seatNo":["B 001"]}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp CreatedResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.ReplacedID)
	assert.Equal(t, int64(1), *resp.ReplacedID)
	assert.Equal(t, int64(101), resp.Booking.ID)
}

func TestReplace_NotFound(t *testing.T) {
	h, _ := newTestHandler(&fakeCreator{}, &fakeUpdater{err: updateSeatBooking.ErrBookingNotFound})

	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/seat-bookings/42",
		strings.NewReader(`{"date":"2025-03-11","floorNumber":2,"capacity":1}`)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetAndDelete(t *testing.T) {
	h, svc := newTestHandler(&fakeCreator{}, &fakeUpdater{})
	router := newRouter(h)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/seat-bookings/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var got SeatBookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "2025-03-10", got.Date)
	assert.Equal(t, []string{}, got.Users)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/seat-bookings/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/seat-bookings/1", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, svc.bookings)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/seat-bookings/1", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDelete_Conflict(t *testing.T) {
	h, svc := newTestHandler(&fakeCreator{}, &fakeUpdater{})
	svc.deleteErr = fmt.Errorf("%w: Service.Delete - commit: serialization failure", seatbookings.ErrConflict)
	router := newRouter(h)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/seat-bookings/1", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Len(t, svc.bookings, 1)
}
