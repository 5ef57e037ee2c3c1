package room_bookings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/roombookings"
	createRoomBooking "github.com/m04kA/SMC-FacilityBooking/internal/usecase/create_room_booking"
	"github.com/m04kA/SMC-FacilityBooking/pkg/logger"
)

type fakeCreator struct {
	got *createRoomBooking.Request
	err error
}

func (f *fakeCreator) Execute(_ context.Context, req *createRoomBooking.Request) (*createRoomBooking.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	b := &domain.RoomBooking{
		ID:        3,
		RoomID:    req.RoomID,
		RoomName:  "Orion",
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Users:     req.Users,
	}
	return &createRoomBooking.Response{Booking: b, Ledger: domain.NewRoomLedgerEntry(b)}, nil
}

type fakeService struct {
	patched *roombookings.PatchRequest
	err     error
}

func (f *fakeService) GetByID(_ context.Context, id int64) (*domain.RoomBooking, error) {
	if id != 1 {
		return nil, roombookings.ErrBookingNotFound
	}
	return &domain.RoomBooking{ID: 1, RoomID: 2}, nil
}

func (f *fakeService) List(_ context.Context) ([]*domain.RoomBooking, error) {
	return nil, nil
}

func (f *fakeService) UpcomingByToken(_ context.Context, token string) ([]*domain.RoomBooking, error) {
	return []*domain.RoomBooking{{ID: 1, Token: &token}}, nil
}

func (f *fakeService) Patch(_ context.Context, id int64, req *roombookings.PatchRequest) (*domain.RoomBooking, error) {
	f.patched = req
	if f.err != nil {
		return nil, f.err
	}
	b := &domain.RoomBooking{ID: id}
	if req.StartTime != nil {
		b.StartTime = *req.StartTime
	}
	return b, nil
}

func (f *fakeService) Delete(_ context.Context, id int64) error {
	if id != 1 {
		return roombookings.ErrBookingNotFound
	}
	return nil
}

func newRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/room-bookings", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/room-bookings", h.List).Methods(http.MethodGet)
	r.HandleFunc("/room-bookings/{bookingId}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/room-bookings/{bookingId}", h.Patch).Methods(http.MethodPatch)
	r.HandleFunc("/room-bookings/{bookingId}", h.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/users/{token}/room-bookings", h.Upcoming).Methods(http.MethodGet)
	return r
}

func TestCreate(t *testing.T) {
	const validBody = `{"roomId":2,"date":"2025-03-10","startTime":"2025-03-10T09:00:00Z","endTime":"2025-03-10T10:00:00Z","users":["a","b"]}`

	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "created", body: validBody, wantStatus: http.StatusCreated},
		{name: "missing room", body: `{"date":"2025-03-10","startTime":"2025-03-10T09:00:00Z","endTime":"2025-03-10T10:00:00Z"}`, wantStatus: http.StatusBadRequest},
		{name: "bad time", body: `{"roomId":2,"date":"2025-03-10","startTime":"09:00","endTime":"10:00"}`, wantStatus: http.StatusBadRequest},
		{name: "slot booked", body: validBody, err: createRoomBooking.ErrSlotAlreadyBooked, wantStatus: http.StatusUnprocessableEntity},
		{name: "room not found", body: validBody, err: createRoomBooking.ErrRoomNotFound, wantStatus: http.StatusNotFound},
		{name: "end before start", body: validBody, err: createRoomBooking.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "db conflict", body: validBody, err: createRoomBooking.ErrConflict, wantStatus: http.StatusConflict},
		{name: "internal", body: validBody, err: createRoomBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeCreator{err: tt.err}, &fakeService{}, logger.NewNop())

			rec := httptest.NewRecorder()
			newRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/room-bookings", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestCreate_ResponseCarriesLedger(t *testing.T) {
	creator := &fakeCreator{}
	h := NewHandler(creator, &fakeService{}, logger.NewNop())

	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/room-bookings", strings.NewReader(
		`{"roomId":2,"date":"2025-03-10","startTime":"2025-03-10T09:00:00+03:00","endTime":"2025-03-10T10:00:00+03:00"}`)))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC), creator.got.StartTime.UTC())

	var resp CreatedResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "2025-03-10T06:00:00Z", resp.Booking.StartTime)
	assert.Equal(t, "meetingRoom", resp.Ledger.Amenity)
	assert.Equal(t, domain.UnknownOwnerToken, resp.Ledger.Token)
	assert.Equal(t, []string{}, resp.Booking.Users)
}

func TestPatch(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(&fakeCreator{}, svc, logger.NewNop())

	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/room-bookings/1",
		strings.NewReader(`{"startTime":"2025-03-10T11:00:00Z","status":true}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.patched.StartTime)
	assert.Nil(t, svc.patched.EndTime)
	assert.Nil(t, svc.patched.Date)
	require.NotNil(t, svc.patched.Status)
	assert.True(t, *svc.patched.Status)
}

func TestPatch_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not found", err: roombookings.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "overlap", err: roombookings.ErrSlotAlreadyBooked, wantStatus: http.StatusUnprocessableEntity},
		{name: "invalid range", err: roombookings.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "conflict", err: roombookings.ErrConflict, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeCreator{}, &fakeService{err: tt.err}, logger.NewNop())

			rec := httptest.NewRecorder()
			newRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/room-bookings/1",
				strings.NewReader(`{"endTime":"2025-03-10T12:00:00Z"}`)))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestReadAndDelete(t *testing.T) {
	router := newRouter(NewHandler(&fakeCreator{}, &fakeService{}, logger.NewNop()))

	cases := []struct {
		method     string
		path       string
		wantStatus int
	}{
		{http.MethodGet, "/room-bookings", http.StatusOK},
		{http.MethodGet, "/room-bookings/1", http.StatusOK},
		{http.MethodGet, "/room-bookings/5", http.StatusNotFound},
		{http.MethodGet, "/room-bookings/0", http.StatusBadRequest},
		{http.MethodGet, "/users/alice/room-bookings", http.StatusOK},
		{http.MethodDelete, "/room-bookings/1", http.StatusNoContent},
		{http.MethodDelete, "/room-bookings/5", http.StatusNotFound},
	}

	for _, c := range cases {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(c.method, c.path, nil))
		assert.Equal(t, c.wantStatus, rec.Code, "%s %s", c.method, c.path)
	}
}
