package homescreen

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FacilityBooking/internal/api/handlers"
)

const msgInvalidToken = "некорректный токен пользователя"

type Handler struct {
	service HomescreenService
	logger  Logger
}

func NewHandler(service HomescreenService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/homescreen/{token}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(mux.Vars(r)["token"])
	if token == "" {
		h.logger.Warn("GET /homescreen/{token} - Empty token")
		handlers.RespondBadRequest(w, msgInvalidToken)
		return
	}

	result, err := h.service.Homescreen(r.Context(), token)
	if err != nil {
		h.logger.Error("GET /homescreen/%s - Failed to build homescreen: %v", token, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromService(result))
}
