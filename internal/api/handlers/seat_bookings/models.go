package seat_bookings

import (
	"github.com/m04kA/SMC-FacilityBooking/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	createSeatBooking "github.com/m04kA/SMC-FacilityBooking/internal/usecase/create_seat_booking"
	updateSeatBooking "github.com/m04kA/SMC-FacilityBooking/internal/usecase/update_seat_booking"
)

// SeatBookingRequest тело запроса на создание и замену брони мест.
// Если задан seatNo, capacity игнорируется.
type SeatBookingRequest struct {
	Date        string   `json:"date" validate:"required,datetime=2006-01-02"`
	FloorNumber int      `json:"floorNumber" validate:"gte=0"`
	Status      bool     `json:"status"`
	Token       *string  `json:"token,omitempty"`
	SeatNo      []string `json:"seatNo,omitempty" validate:"omitempty,dive,required"`
	Capacity    int      `json:"capacity,omitempty" validate:"gte=0,lte=500"`
	Users       []string `json:"users,omitempty" validate:"lte=50"`
}

// SeatBookingResponse бронь мест
type SeatBookingResponse struct {
	ID          int64    `json:"id"`
	FloorNumber int      `json:"floorNumber"`
	Date        string   `json:"date"`
	SeatNo      []string `json:"seatNo"`
	Status      bool     `json:"status"`
	Users       []string `json:"users"`
	Token       *string  `json:"token,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
}

// CreatedResponse ответ на создание и замену: бронь и запись журнала
type CreatedResponse struct {
	ReplacedID *int64                        `json:"replacedId,omitempty"`
	Booking    *SeatBookingResponse          `json:"booking"`
	Ledger     *handlers.LedgerEntryResponse `json:"overallBooking"`
}

func (r *SeatBookingRequest) ToCreateRequest(fallbackToken *string) (*createSeatBooking.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	token := r.Token
	if token == nil {
		token = fallbackToken
	}

	return &createSeatBooking.Request{
		Date:        date,
		FloorNumber: r.FloorNumber,
		Status:      r.Status,
		Token:       token,
		SeatNo:      r.SeatNo,
		Capacity:    r.Capacity,
		Users:       r.Users,
	}, nil
}

func (r *SeatBookingRequest) ToUpdateRequest(id int64, fallbackToken *string) (*updateSeatBooking.Request, error) {
	create, err := r.ToCreateRequest(fallbackToken)
	if err != nil {
		return nil, err
	}

	return &updateSeatBooking.Request{
		ID:          id,
		Date:        create.Date,
		FloorNumber: create.FloorNumber,
		Status:      create.Status,
		Token:       create.Token,
		SeatNo:      create.SeatNo,
		Capacity:    create.Capacity,
		Users:       create.Users,
	}, nil
}

func FromDomain(b *domain.SeatBooking) *SeatBookingResponse {
	users := b.Users
	if users == nil {
		users = []string{}
	}
	return &SeatBookingResponse{
		ID:          b.ID,
		FloorNumber: b.FloorNumber,
		Date:        handlers.FormatDate(b.Date),
		SeatNo:      b.SeatNo,
		Status:      b.Status,
		Users:       users,
		Token:       b.Token,
		CreatedAt:   handlers.FormatTimestamp(b.CreatedAt),
	}
}

func FromDomainList(bookings []*domain.SeatBooking) []*SeatBookingResponse {
	result := make([]*SeatBookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, FromDomain(b))
	}
	return result
}
