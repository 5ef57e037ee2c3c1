package room_bookings

import (
	"github.com/m04kA/SMC-FacilityBooking/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/roombookings"
	createRoomBooking "github.com/m04kA/SMC-FacilityBooking/internal/usecase/create_room_booking"
)

// CreateRoomBookingRequest тело запроса на бронирование переговорной.
// startTime и endTime в RFC 3339 ("2025-03-10T09:00:00Z").
type CreateRoomBookingRequest struct {
	RoomID    int64    `json:"roomId" validate:"required,gt=0"`
	Date      string   `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string   `json:"startTime" validate:"required"`
	EndTime   string   `json:"endTime" validate:"required"`
	Users     []string `json:"users,omitempty" validate:"lte=50"`
	Status    bool     `json:"status"`
	Token     *string  `json:"token,omitempty"`
}

// PatchRoomBookingRequest частичное обновление, отсутствующие поля не меняются
type PatchRoomBookingRequest struct {
	Date        *string   `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime   *string   `json:"startTime,omitempty"`
	EndTime     *string   `json:"endTime,omitempty"`
	FloorNumber *int      `json:"floorNumber,omitempty" validate:"omitempty,gte=0"`
	RoomName    *string   `json:"roomName,omitempty" validate:"omitempty,min=1"`
	Users       *[]string `json:"users,omitempty" validate:"omitempty,lte=50"`
	Status      *bool     `json:"status,omitempty"`
}

// RoomBookingResponse бронь переговорной
type RoomBookingResponse struct {
	ID          int64    `json:"id"`
	RoomID      int64    `json:"roomId"`
	RoomName    string   `json:"roomName"`
	FloorNumber int      `json:"floorNumber"`
	Date        string   `json:"date"`
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
	Users       []string `json:"users"`
	Status      bool     `json:"status"`
	Token       *string  `json:"token,omitempty"`
}

// CreatedResponse созданная бронь и запись журнала
type CreatedResponse struct {
	Booking *RoomBookingResponse          `json:"booking"`
	Ledger  *handlers.LedgerEntryResponse `json:"overallBooking"`
}

func (r *CreateRoomBookingRequest) ToUseCaseRequest(fallbackToken *string) (*createRoomBooking.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}
	start, err := handlers.ParseInstant(r.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := handlers.ParseInstant(r.EndTime)
	if err != nil {
		return nil, err
	}

	token := r.Token
	if token == nil {
		token = fallbackToken
	}

	return &createRoomBooking.Request{
		RoomID:    r.RoomID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Users:     r.Users,
		Status:    r.Status,
		Token:     token,
	}, nil
}

func (r *PatchRoomBookingRequest) ToServiceRequest() (*roombookings.PatchRequest, error) {
	date, err := handlers.ParseOptionalDate(r.Date)
	if err != nil {
		return nil, err
	}
	start, err := handlers.ParseOptionalInstant(r.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := handlers.ParseOptionalInstant(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &roombookings.PatchRequest{
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		FloorNumber: r.FloorNumber,
		RoomName:    r.RoomName,
		Users:       r.Users,
		Status:      r.Status,
	}, nil
}

func FromDomain(b *domain.RoomBooking) *RoomBookingResponse {
	users := b.Users
	if users == nil {
		users = []string{}
	}
	return &RoomBookingResponse{
		ID:          b.ID,
		RoomID:      b.RoomID,
		RoomName:    b.RoomName,
		FloorNumber: b.FloorNumber,
		Date:        handlers.FormatDate(b.Date),
		StartTime:   handlers.FormatTimestamp(b.StartTime),
		EndTime:     handlers.FormatTimestamp(b.EndTime),
		Users:       users,
		Status:      b.Status,
		Token:       b.Token,
	}
}

func FromDomainList(bookings []*domain.RoomBooking) []*RoomBookingResponse {
	result := make([]*RoomBookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, FromDomain(b))
	}
	return result
}
