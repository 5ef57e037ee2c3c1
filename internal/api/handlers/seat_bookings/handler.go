package seat_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FacilityBooking/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityBooking/internal/api/middleware"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/seatbookings"
	createSeatBooking "github.com/m04kA/SMC-FacilityBooking/internal/usecase/create_seat_booking"
	updateSeatBooking "github.com/m04kA/SMC-FacilityBooking/internal/usecase/update_seat_booking"
	"github.com/m04kA/SMC-FacilityBooking/pkg/ptr"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный идентификатор бронирования"
	msgInvalidToken       = "некорректный токен пользователя"
	msgBookingNotFound    = "бронирование не найдено"
	msgFloorNotFound      = "этаж не найден"
	msgSeatsNotFound      = "на этаже нет нужного количества свободных мест подряд"
	msgConflict           = "бронирование конфликтует с другим запросом, повторите попытку"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	creator CreateSeatBookingUseCase
	updater UpdateSeatBookingUseCase
	service SeatBookingService
	logger  Logger
}

func NewHandler(creator CreateSeatBookingUseCase, updater UpdateSeatBookingUseCase, service SeatBookingService, logger Logger) *Handler {
	return &Handler{
		creator: creator,
		updater: updater,
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/seat-bookings
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req SeatBookingRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /seat-bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToCreateRequest(requestToken(r))
	if err != nil {
		h.logger.Warn("POST /seat-bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.creator.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createSeatBooking.ErrInvalidInput):
			h.logger.Warn("POST /seat-bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createSeatBooking.ErrFloorNotFound):
			h.logger.Warn("POST /seat-bookings - Floor not found: floor=%d", req.FloorNumber)
			handlers.RespondNotFound(w, msgFloorNotFound)

		case errors.Is(err, createSeatBooking.ErrSeatsNotFound):
			h.logger.Warn("POST /seat-bookings - Seats not found: floor=%d, capacity=%d", req.FloorNumber, req.Capacity)
			handlers.RespondUnprocessable(w, msgSeatsNotFound)

		case errors.Is(err, createSeatBooking.ErrConflict):
			h.logger.Warn("POST /seat-bookings - Conflict: floor=%d, date=%s", req.FloorNumber, req.Date)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("POST /seat-bookings - Failed to create booking: floor=%d, error=%v", req.FloorNumber, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /seat-bookings - Booking created: booking_id=%d, seats=%v", result.Booking.ID, result.Booking.SeatNo)
	handlers.RespondJSON(w, http.StatusCreated, &CreatedResponse{
		Booking: FromDomain(result.Booking),
		Ledger:  handlers.FromLedgerEntry(result.Ledger),
	})
}

// Replace PUT /api/v1/seat-bookings/{bookingId}
// Бронь пересоздается целиком и получает новый ID.
func (h *Handler) Replace(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PUT /seat-bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req SeatBookingRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PUT /seat-bookings/%d - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUpdateRequest(id, requestToken(r))
	if err != nil {
		h.logger.Warn("PUT /seat-bookings/%d - Failed to parse request: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.updater.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateSeatBooking.ErrInvalidInput):
			h.logger.Warn("PUT /seat-bookings/%d - Invalid input: %v", id, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, updateSeatBooking.ErrBookingNotFound):
			h.logger.Warn("PUT /seat-bookings/%d - Booking not found", id)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, updateSeatBooking.ErrFloorNotFound):
			h.logger.Warn("PUT /seat-bookings/%d - Floor not found: floor=%d", id, req.FloorNumber)
			handlers.RespondNotFound(w, msgFloorNotFound)

		case errors.Is(err, updateSeatBooking.ErrSeatsNotFound):
			h.logger.Warn("PUT /seat-bookings/%d - Seats not found: floor=%d, capacity=%d", id, req.FloorNumber, req.Capacity)
			handlers.RespondUnprocessable(w, msgSeatsNotFound)

		case errors.Is(err, updateSeatBooking.ErrConflict):
			h.logger.Warn("PUT /seat-bookings/%d - Conflict", id)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("PUT /seat-bookings/%d - Failed to replace booking: error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /seat-bookings/%d - Booking replaced: new_booking_id=%d", id, result.Booking.ID)
	handlers.RespondJSON(w, http.StatusOK, &CreatedResponse{
		ReplacedID: ptr.Ptr(result.ReplacedID),
		Booking:    FromDomain(result.Booking),
		Ledger:     handlers.FromLedgerEntry(result.Ledger),
	})
}

// Get GET /api/v1/seat-bookings/{bookingId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /seat-bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, seatbookings.ErrBookingNotFound) {
			h.logger.Warn("GET /seat-bookings/%d - Booking not found", id)
			handlers.RespondNotFound(w, msgBookingNotFound)
			return
		}
		h.logger.Error("GET /seat-bookings/%d - Failed to get booking: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(booking))
}

// List GET /api/v1/seat-bookings
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /seat-bookings - Failed to list bookings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainList(bookings))
}

// Upcoming GET /api/v1/users/{token}/seat-bookings
func (h *Handler) Upcoming(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	bookings, err := h.service.UpcomingByToken(r.Context(), token)
	if err != nil {
		if errors.Is(err, seatbookings.ErrInvalidInput) {
			h.logger.Warn("GET /users/{token}/seat-bookings - Invalid token")
			handlers.RespondBadRequest(w, msgInvalidToken)
			return
		}
		h.logger.Error("GET /users/%s/seat-bookings - Failed to list bookings: %v", token, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainList(bookings))
}

// Delete DELETE /api/v1/seat-bookings/{bookingId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("DELETE /seat-bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, seatbookings.ErrBookingNotFound):
			h.logger.Warn("DELETE /seat-bookings/%d - Booking not found", id)
			handlers.RespondNotFound(w, msgBookingNotFound)
			return
		case errors.Is(err, seatbookings.ErrConflict):
			h.logger.Warn("DELETE /seat-bookings/%d - Conflict: %v", id, err)
			handlers.RespondConflict(w, msgConflict)
			return
		}
		h.logger.Error("DELETE /seat-bookings/%d - Failed to delete booking: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /seat-bookings/%d - Booking deleted", id)
	handlers.RespondNoContent(w)
}

// requestToken токен из заголовка авторизации, если он есть
func requestToken(r *http.Request) *string {
	if token, ok := middleware.GetUserToken(r.Context()); ok {
		return &token
	}
	return nil
}
