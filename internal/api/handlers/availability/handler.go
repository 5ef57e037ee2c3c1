package availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FacilityBooking/internal/api/handlers"
	availabilityService "github.com/m04kA/SMC-FacilityBooking/internal/service/availability"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/availability/models"
)

const (
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidQuery  = "некорректные параметры запроса"
	msgInvalidWindow = "некорректный интервал времени"
	msgFloorNotFound = "этаж не найден"
)

type Handler struct {
	engine AvailabilityEngine
	logger Logger
}

func NewHandler(engine AvailabilityEngine, logger Logger) *Handler {
	return &Handler{
		engine: engine,
		logger: logger,
	}
}

// Seats GET /api/v1/availability/seats?date=
// Без даты считается на сегодня.
func (h *Handler) Seats(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /availability/seats - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.engine.SeatsAvailableOnDate(r.Context(), date)
	if err != nil {
		h.logger.Error("GET /availability/seats - Failed to count seats: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// SeatsByFloor GET /api/v1/availability/seats/floors?date=
func (h *Handler) SeatsByFloor(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /availability/seats/floors - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	floors, err := h.engine.SeatsAvailableByFloor(r.Context(), date)
	if err != nil {
		h.logger.Error("GET /availability/seats/floors - Failed to count seats: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	if floors == nil {
		floors = []models.FloorAvailability{}
	}
	handlers.RespondJSON(w, http.StatusOK, floors)
}

// Rooms GET /api/v1/availability/rooms?date=&start=&end=&capacity=
func (h *Handler) Rooms(w http.ResponseWriter, r *http.Request) {
	req, err := parseRoomsQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /availability/rooms - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	rooms, err := h.engine.RoomsAvailableByTime(r.Context(), req)
	if err != nil {
		if errors.Is(err, availabilityService.ErrInvalidInput) {
			h.logger.Warn("GET /availability/rooms - Invalid window: %v", err)
			handlers.RespondBadRequest(w, msgInvalidWindow)
			return
		}
		h.logger.Error("GET /availability/rooms - Failed to find rooms: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromDomainRooms(rooms))
}

// RoomsNow GET /api/v1/availability/rooms/now
func (h *Handler) RoomsNow(w http.ResponseWriter, r *http.Request) {
	count, err := h.engine.RoomsAvailableNow(r.Context())
	if err != nil {
		h.logger.Error("GET /availability/rooms/now - Failed to count rooms: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, CountResponse{Available: count})
}

// Cafeteria GET /api/v1/availability/cafeteria?date=&start=&end=&floorId=
func (h *Handler) Cafeteria(w http.ResponseWriter, r *http.Request) {
	req, err := parseCafeteriaQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /availability/cafeteria - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	count, err := h.engine.CafeteriaAvailableByDateTime(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, availabilityService.ErrInvalidInput):
			h.logger.Warn("GET /availability/cafeteria - Invalid window: %v", err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, availabilityService.ErrFloorNotFound):
			h.logger.Warn("GET /availability/cafeteria - Floor not found: floor=%d", req.FloorNumber)
			handlers.RespondNotFound(w, msgFloorNotFound)

		default:
			h.logger.Error("GET /availability/cafeteria - Failed to count capacity: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, CountResponse{Available: count})
}

// CafeteriaToday GET /api/v1/availability/cafeteria/today
func (h *Handler) CafeteriaToday(w http.ResponseWriter, r *http.Request) {
	count, err := h.engine.CafeteriaAvailableToday(r.Context())
	if err != nil {
		if errors.Is(err, availabilityService.ErrFloorNotFound) {
			h.logger.Warn("GET /availability/cafeteria/today - Cafeteria floor not found")
			handlers.RespondNotFound(w, msgFloorNotFound)
			return
		}
		h.logger.Error("GET /availability/cafeteria/today - Failed to count capacity: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, CountResponse{Available: count})
}
