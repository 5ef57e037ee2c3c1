package availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	availabilityService "github.com/m04kA/SMC-FacilityBooking/internal/service/availability"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/availability/models"
	"github.com/m04kA/SMC-FacilityBooking/internal/testutil/memstore"
	"github.com/m04kA/SMC-FacilityBooking/pkg/logger"
)

var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func newRouter(t *testing.T) *mux.Router {
	t.Helper()
	ctx := context.Background()

	store := memstore.New()
	store.AddFloor(domain.Floor{Number: 1, Name: "First", StartingSeatNo: "A 001", EndingSeatNo: "A 010", Capacity: 10})
	store.AddFloor(domain.Floor{Number: 5, Name: "Fifth", StartingSeatNo: "E 001", EndingSeatNo: "E 005", Capacity: 3})
	store.AddRoom(domain.MeetingRoom{ID: 1, Name: "Orion", Capacity: 4, FloorNumber: 1})
	store.AddRoom(domain.MeetingRoom{ID: 2, Name: "Vega", Capacity: 10, FloorNumber: 1})

	_, err := store.SeatBookings().Create(ctx, &domain.SeatBooking{FloorNumber: 1, Date: day, SeatNo: []string{"A 001", "A 002"}})
	require.NoError(t, err)
	_, err = store.RoomBookings().Create(ctx, &domain.RoomBooking{RoomID: 1, Date: day, StartTime: day.Add(9 * time.Hour), EndTime: day.Add(10 * time.Hour)})
	require.NoError(t, err)
	_, err = store.CafeteriaBookings().Create(ctx, &domain.CafeteriaBooking{FloorNumber: 5, Date: day, StartTime: day.Add(12 * time.Hour), EndTime: day.Add(13 * time.Hour), Token: "a"})
	require.NoError(t, err)

	engine := availabilityService.NewEngine(
		store.Floors(), store.Rooms(), store.SeatBookings(), store.RoomBookings(), store.CafeteriaBookings(),
		5, logger.NewNop(),
	).WithTimeProvider(&memstore.FixedClock{T: day.Add(9*time.Hour + 30*time.Minute)})

	h := NewHandler(engine, logger.NewNop())
	r := mux.NewRouter()
	r.HandleFunc("/availability/seats", h.Seats).Methods(http.MethodGet)
	r.HandleFunc("/availability/seats/floors", h.SeatsByFloor).Methods(http.MethodGet)
	r.HandleFunc("/availability/rooms", h.Rooms).Methods(http.MethodGet)
	r.HandleFunc("/availability/rooms/now", h.RoomsNow).Methods(http.MethodGet)
	r.HandleFunc("/availability/cafeteria", h.Cafeteria).Methods(http.MethodGet)
	r.HandleFunc("/availability/cafeteria/today", h.CafeteriaToday).Methods(http.MethodGet)
	return r
}

func get(t *testing.T, router http.Handler, target string, wantStatus int, out interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	require.Equal(t, wantStatus, rec.Code, rec.Body.String())
	if out != nil {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
	}
}

func TestSeats(t *testing.T) {
	router := newRouter(t)

	var total models.SeatAvailability
	get(t, router, "/availability/seats?date=2025-03-10", http.StatusOK, &total)
	assert.Equal(t, 13, total.Total)
	assert.Equal(t, 11, total.Available)

	// без даты - сегодня по часам сервиса
	get(t, router, "/availability/seats", http.StatusOK, &total)
	assert.Equal(t, 11, total.Available)

	var floors []models.FloorAvailability
	get(t, router, "/availability/seats/floors?date=2025-03-11", http.StatusOK, &floors)
	require.Len(t, floors, 2)
	assert.Equal(t, 10, floors[0].Available)

	get(t, router, "/availability/seats?date=10-03-2025", http.StatusBadRequest, nil)
}

func TestRooms(t *testing.T) {
	router := newRouter(t)

	var rooms []models.RoomResponse
	get(t, router, "/availability/rooms?start=2025-03-10T09:30:00Z&end=2025-03-10T10:30:00Z", http.StatusOK, &rooms)
	require.Len(t, rooms, 1)
	assert.Equal(t, "Vega", rooms[0].Name)

	// касание конца брони не пересечение
	get(t, router, "/availability/rooms?date=2025-03-10&start=2025-03-10T10:00:00Z&end=2025-03-10T11:00:00Z&capacity=4", http.StatusOK, &rooms)
	assert.Len(t, rooms, 2)

	get(t, router, "/availability/rooms?start=2025-03-10T10:00:00Z&end=2025-03-10T11:00:00Z&capacity=8", http.StatusOK, &rooms)
	assert.Len(t, rooms, 1)

	get(t, router, "/availability/rooms?start=2025-03-10T11:00:00Z&end=2025-03-10T10:00:00Z", http.StatusBadRequest, nil)
	get(t, router, "/availability/rooms?start=2025-03-10T10:00:00Z", http.StatusBadRequest, nil)
	get(t, router, "/availability/rooms?start=2025-03-10T10:00:00Z&end=2025-03-10T11:00:00Z&capacity=many", http.StatusBadRequest, nil)

	var now CountResponse
	get(t, router, "/availability/rooms/now", http.StatusOK, &now)
	assert.Equal(t, 1, now.Available)
}

func TestCafeteria(t *testing.T) {
	router := newRouter(t)

	var count CountResponse
	get(t, router, "/availability/cafeteria?start=2025-03-10T12:30:00Z&end=2025-03-10T13:30:00Z", http.StatusOK, &count)
	assert.Equal(t, 2, count.Available)

	get(t, router, "/availability/cafeteria?start=2025-03-10T13:00:00Z&end=2025-03-10T13:30:00Z&floorId=5", http.StatusOK, &count)
	assert.Equal(t, 3, count.Available)

	get(t, router, "/availability/cafeteria?start=2025-03-10T13:00:00Z&end=2025-03-10T13:30:00Z&floorId=9", http.StatusNotFound, nil)
	get(t, router, "/availability/cafeteria?start=2025-03-10T13:30:00Z&end=2025-03-10T13:00:00Z", http.StatusBadRequest, nil)

	get(t, router, "/availability/cafeteria/today", http.StatusOK, &count)
	assert.Equal(t, 2, count.Available)
}
