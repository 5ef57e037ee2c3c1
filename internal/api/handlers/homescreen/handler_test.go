package homescreen

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/ledger"
	"github.com/m04kA/SMC-FacilityBooking/pkg/logger"
)

type fakeService struct {
	token string
	err   error
}

func (f *fakeService) Homescreen(_ context.Context, token string) (*ledger.Homescreen, error) {
	f.token = token
	if f.err != nil {
		return nil, f.err
	}
	return &ledger.Homescreen{
		Overall: []*domain.LedgerEntry{{
			ID:        1,
			Token:     token,
			Amenity:   domain.AmenityCafeteria,
			BookingID: 4,
			Date:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			Details:   []string{"2025-03-10T12:00:00.000Z", "2025-03-10T12:30:00.000Z"},
		}},
		MeetingRooms: 2,
		Seats:        40,
		Cafeteria:    11,
	}, nil
}

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/homescreen/{token}", h.Handle).Methods(http.MethodGet)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	rec := serve(NewHandler(svc, logger.NewNop()), "/homescreen/alice")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", svc.token)

	var resp HomescreenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 2, resp.MeetingRooms)
	assert.Equal(t, 40, resp.Seats)
	assert.Equal(t, 11, resp.Cafeteria)
	require.Len(t, resp.OverallBookings, 1)
	assert.Equal(t, "2025-03-10", resp.OverallBookings[0].Date)
}

func TestHandle_Errors(t *testing.T) {
	rec := serve(NewHandler(&fakeService{err: errors.New("db down")}, logger.NewNop()), "/homescreen/alice")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = serve(NewHandler(&fakeService{}, logger.NewNop()), "/homescreen/%20")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
