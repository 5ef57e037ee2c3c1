package overall_bookings

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FacilityBooking/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityBooking/internal/api/middleware"
	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/ledger"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат даты или времени"
	msgInvalidEntryID     = "некорректный идентификатор записи"
	msgInvalidBookingID   = "некорректный идентификатор бронирования"
	msgInvalidAmenity     = "неизвестный тип ресурса"
	msgEmptyPatch         = "не указаны поля для изменения"
	msgMissingToken       = "не указан токен пользователя"
	msgInvalidInput       = "некорректные данные записи"
	msgEntryNotFound      = "запись не найдена"
	msgConflict           = "запись изменена другим запросом, повторите попытку"
	msgNoBookings         = "у пользователя нет бронирований"
)

type Handler struct {
	service LedgerService
	logger  Logger
}

func NewHandler(service LedgerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Rollup POST /api/v1/overall-bookings
func (h *Handler) Rollup(w http.ResponseWriter, r *http.Request) {
	var req RollupRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeAndValidate(r, &req); err != nil {
			h.logger.Warn("POST /overall-bookings - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	token := strings.TrimSpace(req.Token)
	if token == "" {
		token, _ = middleware.GetUserToken(r.Context())
	}
	if token == "" {
		h.logger.Warn("POST /overall-bookings - Missing token")
		handlers.RespondBadRequest(w, msgMissingToken)
		return
	}

	entries, err := h.service.Rollup(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrNoBookings):
			h.logger.Warn("POST /overall-bookings - No bookings: token=%s", token)
			handlers.RespondNotFound(w, msgNoBookings)
			return
		case errors.Is(err, ledger.ErrConflict):
			h.logger.Warn("POST /overall-bookings - Conflict: token=%s, error=%v", token, err)
			handlers.RespondConflict(w, msgConflict)
			return
		}
		h.logger.Error("POST /overall-bookings - Failed to roll up bookings: token=%s, error=%v", token, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /overall-bookings - Rolled up %d entries: token=%s", len(entries), token)
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromLedgerEntries(entries))
}

// List GET /api/v1/overall-bookings
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /overall-bookings - Failed to list entries: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromLedgerEntries(entries))
}

// Get GET /api/v1/overall-bookings/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("GET /overall-bookings/{id} - Invalid entry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	entry, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ledger.ErrEntryNotFound) {
			h.logger.Warn("GET /overall-bookings/%d - Entry not found", id)
			handlers.RespondNotFound(w, msgEntryNotFound)
			return
		}
		h.logger.Error("GET /overall-bookings/%d - Failed to get entry: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromLedgerEntry(entry))
}

// UpdateWindow PATCH /api/v1/overall-bookings/{amenity}/{bookingId}
func (h *Handler) UpdateWindow(w http.ResponseWriter, r *http.Request) {
	amenity := domain.Amenity(mux.Vars(r)["amenity"])
	if !amenity.IsValid() {
		h.logger.Warn("PATCH /overall-bookings/%s/{bookingId} - Unknown amenity", amenity)
		handlers.RespondBadRequest(w, msgInvalidAmenity)
		return
	}

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /overall-bookings/%s/{bookingId} - Invalid booking ID: %v", amenity, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdateWindowRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PATCH /overall-bookings/%s/%d - Invalid request body: %v", amenity, bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	patch, err := req.ToWindowPatch()
	if err != nil {
		h.logger.Warn("PATCH /overall-bookings/%s/%d - Failed to parse request: %v", amenity, bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}
	if patch.IsEmpty() {
		handlers.RespondBadRequest(w, msgEmptyPatch)
		return
	}

	entry, err := h.service.UpdateWindow(r.Context(), bookingID, amenity, patch)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidInput):
			h.logger.Warn("PATCH /overall-bookings/%s/%d - Invalid input: %v", amenity, bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, ledger.ErrEntryNotFound):
			h.logger.Warn("PATCH /overall-bookings/%s/%d - Entry not found", amenity, bookingID)
			handlers.RespondNotFound(w, msgEntryNotFound)

		case errors.Is(err, ledger.ErrConflict):
			h.logger.Warn("PATCH /overall-bookings/%s/%d - Conflict: %v", amenity, bookingID, err)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("PATCH /overall-bookings/%s/%d - Failed to update entry: %v", amenity, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /overall-bookings/%s/%d - Entry updated: id=%d", amenity, bookingID, entry.ID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromLedgerEntry(entry))
}

// Delete DELETE /api/v1/overall-bookings/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /overall-bookings/{id} - Invalid entry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ledger.ErrEntryNotFound) {
			h.logger.Warn("DELETE /overall-bookings/%d - Entry not found", id)
			handlers.RespondNotFound(w, msgEntryNotFound)
			return
		}
		h.logger.Error("DELETE /overall-bookings/%d - Failed to delete entry: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /overall-bookings/%d - Entry deleted", id)
	handlers.RespondNoContent(w)
}
