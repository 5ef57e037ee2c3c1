package homescreen

import (
	"github.com/m04kA/SMC-FacilityBooking/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/ledger"
)

// HomescreenResponse предстоящие брони пользователя и текущая доступность ресурсов
type HomescreenResponse struct {
	OverallBookings []*handlers.LedgerEntryResponse `json:"overallBookings"`
	MeetingRooms    int                             `json:"meetingRooms"`
	Seats           int                             `json:"seats"`
	Cafeteria       int                             `json:"cafeteria"`
}

func FromService(h *ledger.Homescreen) *HomescreenResponse {
	return &HomescreenResponse{
		OverallBookings: handlers.FromLedgerEntries(h.Overall),
		MeetingRooms:    h.MeetingRooms,
		Seats:           h.Seats,
		Cafeteria:       h.Cafeteria,
	}
}
