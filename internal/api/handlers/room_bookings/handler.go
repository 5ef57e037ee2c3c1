package room_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FacilityBooking/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityBooking/internal/api/middleware"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/roombookings"
	createRoomBooking "github.com/m04kA/SMC-FacilityBooking/internal/usecase/create_room_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgInvalidBookingID   = "некорректный идентификатор бронирования"
	msgInvalidToken       = "некорректный токен пользователя"
	msgInvalidInput       = "некорректные данные бронирования"
	msgBookingNotFound    = "бронирование не найдено"
	msgRoomNotFound       = "переговорная не найдена"
	msgFloorNotFound      = "этаж переговорной не найден"
	msgSlotAlreadyBooked  = "переговорная уже забронирована на это время"
	msgConflict           = "бронирование конфликтует с другим запросом, повторите попытку"
)

type Handler struct {
	creator CreateRoomBookingUseCase
	service RoomBookingService
	logger  Logger
}

func NewHandler(creator CreateRoomBookingUseCase, service RoomBookingService, logger Logger) *Handler {
	return &Handler{
		creator: creator,
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/room-bookings
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomBookingRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /room-bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var fallback *string
	if token, ok := middleware.GetUserToken(r.Context()); ok {
		fallback = &token
	}

	useCaseReq, err := req.ToUseCaseRequest(fallback)
	if err != nil {
		h.logger.Warn("POST /room-bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.creator.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createRoomBooking.ErrInvalidInput):
			h.logger.Warn("POST /room-bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createRoomBooking.ErrRoomNotFound):
			h.logger.Warn("POST /room-bookings - Room not found: room_id=%d", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createRoomBooking.ErrFloorNotFound):
			h.logger.Warn("POST /room-bookings - Floor not found: room_id=%d", req.RoomID)
			handlers.RespondNotFound(w, msgFloorNotFound)

		case errors.Is(err, createRoomBooking.ErrSlotAlreadyBooked):
			h.logger.Warn("POST /room-bookings - Slot already booked: room_id=%d, start=%s, end=%s",
				req.RoomID, req.StartTime, req.EndTime)
			handlers.RespondUnprocessable(w, msgSlotAlreadyBooked)

		case errors.Is(err, createRoomBooking.ErrConflict):
			h.logger.Warn("POST /room-bookings - Conflict: room_id=%d", req.RoomID)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("POST /room-bookings - Failed to create booking: room_id=%d, error=%v", req.RoomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /room-bookings - Booking created: booking_id=%d, room_id=%d", result.Booking.ID, result.Booking.RoomID)
	handlers.RespondJSON(w, http.StatusCreated, &CreatedResponse{
		Booking: FromDomain(result.Booking),
		Ledger:  handlers.FromLedgerEntry(result.Ledger),
	})
}

// Patch PATCH /api/v1/room-bookings/{bookingId}
func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /room-bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req PatchRoomBookingRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PATCH /room-bookings/%d - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	patch, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("PATCH /room-bookings/%d - Failed to parse request: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	booking, err := h.service.Patch(r.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, roombookings.ErrInvalidInput):
			h.logger.Warn("PATCH /room-bookings/%d - Invalid input: %v", id, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, roombookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /room-bookings/%d - Booking not found", id)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, roombookings.ErrSlotAlreadyBooked):
			h.logger.Warn("PATCH /room-bookings/%d - Slot already booked", id)
			handlers.RespondUnprocessable(w, msgSlotAlreadyBooked)

		case errors.Is(err, roombookings.ErrConflict):
			h.logger.Warn("PATCH /room-bookings/%d - Conflict", id)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("PATCH /room-bookings/%d - Failed to update booking: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /room-bookings/%d - Booking updated", id)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(booking))
}

// Get GET /api/v1/room-bookings/{bookingId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /room-bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, roombookings.ErrBookingNotFound) {
			h.logger.Warn("GET /room-bookings/%d - Booking not found", id)
			handlers.RespondNotFound(w, msgBookingNotFound)
			return
		}
		h.logger.Error("GET /room-bookings/%d - Failed to get booking: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(booking))
}

// List GET /api/v1/room-bookings
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /room-bookings - Failed to list bookings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainList(bookings))
}

// Upcoming GET /api/v1/users/{token}/room-bookings
func (h *Handler) Upcoming(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	bookings, err := h.service.UpcomingByToken(r.Context(), token)
	if err != nil {
		if errors.Is(err, roombookings.ErrInvalidInput) {
			h.logger.Warn("GET /users/{token}/room-bookings - Invalid token")
			handlers.RespondBadRequest(w, msgInvalidToken)
			return
		}
		h.logger.Error("GET /users/%s/room-bookings - Failed to list bookings: %v", token, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainList(bookings))
}

// Delete DELETE /api/v1/room-bookings/{bookingId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("DELETE /room-bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, roombookings.ErrBookingNotFound):
			h.logger.Warn("DELETE /room-bookings/%d - Booking not found", id)
			handlers.RespondNotFound(w, msgBookingNotFound)
			return
		case errors.Is(err, roombookings.ErrConflict):
			h.logger.Warn("DELETE /room-bookings/%d - Conflict: %v", id, err)
			handlers.RespondConflict(w, msgConflict)
			return
		}
		h.logger.Error("DELETE /room-bookings/%d - Failed to delete booking: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /room-bookings/%d - Booking deleted", id)
	handlers.RespondNoContent(w)
}
