package cafeteria_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FacilityBooking/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityBooking/internal/api/middleware"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/cafeteriabookings"
	createCafeteriaBooking "github.com/m04kA/SMC-FacilityBooking/internal/usecase/create_cafeteria_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgInvalidBookingID   = "некорректный идентификатор бронирования"
	msgInvalidToken       = "некорректный токен пользователя"
	msgInvalidInput       = "некорректные данные бронирования"
	msgBookingNotFound    = "бронирование не найдено"
	msgFloorNotFound      = "этаж столовой не найден"
	msgNoCapacity         = "в столовой нет свободных мест на это время"
	msgConflict           = "бронирование конфликтует с другим запросом, повторите попытку"
)

type Handler struct {
	creator CreateCafeteriaBookingUseCase
	service CafeteriaBookingService
	logger  Logger
}

func NewHandler(creator CreateCafeteriaBookingUseCase, service CafeteriaBookingService, logger Logger) *Handler {
	return &Handler{
		creator: creator,
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/cafeteria-bookings
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCafeteriaBookingRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /cafeteria-bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Без токена бронь записывается на UNKNOWN_USER
	token, _ := middleware.GetUserToken(r.Context())

	useCaseReq, err := req.ToUseCaseRequest(token)
	if err != nil {
		h.logger.Warn("POST /cafeteria-bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.creator.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createCafeteriaBooking.ErrInvalidInput):
			h.logger.Warn("POST /cafeteria-bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createCafeteriaBooking.ErrFloorNotFound):
			h.logger.Warn("POST /cafeteria-bookings - Floor not found")
			handlers.RespondNotFound(w, msgFloorNotFound)

		case errors.Is(err, createCafeteriaBooking.ErrNoCapacity):
			h.logger.Warn("POST /cafeteria-bookings - No capacity: date=%s, start=%s, end=%s", req.Date, req.StartTime, req.EndTime)
			handlers.RespondUnprocessable(w, msgNoCapacity)

		case errors.Is(err, createCafeteriaBooking.ErrConflict):
			h.logger.Warn("POST /cafeteria-bookings - Conflict")
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("POST /cafeteria-bookings - Failed to create booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /cafeteria-bookings - Booking created: booking_id=%d, floor=%d", result.Booking.ID, result.Booking.FloorNumber)
	handlers.RespondJSON(w, http.StatusCreated, &CreatedResponse{
		Booking: FromDomain(result.Booking),
		Ledger:  handlers.FromLedgerEntry(result.Ledger),
	})
}

// Patch PATCH /api/v1/cafeteria-bookings/{bookingId}
func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /cafeteria-bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req PatchCafeteriaBookingRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PATCH /cafeteria-bookings/%d - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	patch, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("PATCH /cafeteria-bookings/%d - Failed to parse request: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	booking, err := h.service.Patch(r.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, cafeteriabookings.ErrInvalidInput):
			h.logger.Warn("PATCH /cafeteria-bookings/%d - Invalid input: %v", id, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, cafeteriabookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /cafeteria-bookings/%d - Booking not found", id)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, cafeteriabookings.ErrFloorNotFound):
			h.logger.Warn("PATCH /cafeteria-bookings/%d - Floor not found", id)
			handlers.RespondNotFound(w, msgFloorNotFound)

		case errors.Is(err, cafeteriabookings.ErrNoCapacity):
			h.logger.Warn("PATCH /cafeteria-bookings/%d - No capacity", id)
			handlers.RespondUnprocessable(w, msgNoCapacity)

		case errors.Is(err, cafeteriabookings.ErrConflict):
			h.logger.Warn("PATCH /cafeteria-bookings/%d - Conflict: %v", id, err)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("PATCH /cafeteria-bookings/%d - Failed to update booking: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /cafeteria-bookings/%d - Booking updated", id)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(booking))
}

// Get GET /api/v1/cafeteria-bookings/{bookingId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /cafeteria-bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, cafeteriabookings.ErrBookingNotFound) {
			h.logger.Warn("GET /cafeteria-bookings/%d - Booking not found", id)
			handlers.RespondNotFound(w, msgBookingNotFound)
			return
		}
		h.logger.Error("GET /cafeteria-bookings/%d - Failed to get booking: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(booking))
}

// List GET /api/v1/cafeteria-bookings
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /cafeteria-bookings - Failed to list bookings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainList(bookings))
}

// Upcoming GET /api/v1/users/{token}/cafeteria-bookings
func (h *Handler) Upcoming(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	bookings, err := h.service.UpcomingByToken(r.Context(), token)
	if err != nil {
		if errors.Is(err, cafeteriabookings.ErrInvalidInput) {
			h.logger.Warn("GET /users/{token}/cafeteria-bookings - Invalid token")
			handlers.RespondBadRequest(w, msgInvalidToken)
			return
		}
		h.logger.Error("GET /users/%s/cafeteria-bookings - Failed to list bookings: %v", token, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainList(bookings))
}

// Delete DELETE /api/v1/cafeteria-bookings/{bookingId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("DELETE /cafeteria-bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, cafeteriabookings.ErrBookingNotFound):
			h.logger.Warn("DELETE /cafeteria-bookings/%d - Booking not found", id)
			handlers.RespondNotFound(w, msgBookingNotFound)
			return
		case errors.Is(err, cafeteriabookings.ErrConflict):
			h.logger.Warn("DELETE /cafeteria-bookings/%d - Conflict: %v", id, err)
			handlers.RespondConflict(w, msgConflict)
			return
		}
		h.logger.Error("DELETE /cafeteria-bookings/%d - Failed to delete booking: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /cafeteria-bookings/%d - Booking deleted", id)
	handlers.RespondNoContent(w)
}
