package cafeteria_bookings

import (
	"github.com/m04kA/SMC-FacilityBooking/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/cafeteriabookings"
	createCafeteriaBooking "github.com/m04kA/SMC-FacilityBooking/internal/usecase/create_cafeteria_booking"
)

// CreateCafeteriaBookingRequest тело запроса. Владелец берется из заголовка X-User-Token.
type CreateCafeteriaBookingRequest struct {
	FloorNumber *int   `json:"floorNumber,omitempty" validate:"omitempty,gte=0"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"startTime" validate:"required"`
	EndTime     string `json:"endTime" validate:"required"`
}

type PatchCafeteriaBookingRequest struct {
	Date      *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
}

type CafeteriaBookingResponse struct {
	ID          int64  `json:"id"`
	FloorNumber int    `json:"floorNumber"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Token       string `json:"token"`
}

type CreatedResponse struct {
	Booking *CafeteriaBookingResponse     `json:"booking"`
	Ledger  *handlers.LedgerEntryResponse `json:"overallBooking"`
}

func (r *CreateCafeteriaBookingRequest) ToUseCaseRequest(token string) (*createCafeteriaBooking.Request, error) {
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

	return &createCafeteriaBooking.Request{
		Token:       token,
		FloorNumber: r.FloorNumber,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
	}, nil
}

func (r *PatchCafeteriaBookingRequest) ToServiceRequest() (*cafeteriabookings.PatchRequest, error) {
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

	return &cafeteriabookings.PatchRequest{Date: date, StartTime: start, EndTime: end}, nil
}

func FromDomain(b *domain.CafeteriaBooking) *CafeteriaBookingResponse {
	return &CafeteriaBookingResponse{
		ID:          b.ID,
		FloorNumber: b.FloorNumber,
		Date:        handlers.FormatDate(b.Date),
		StartTime:   handlers.FormatTimestamp(b.StartTime),
		EndTime:     handlers.FormatTimestamp(b.EndTime),
		Token:       b.Token,
	}
}

func FromDomainList(bookings []*domain.CafeteriaBooking) []*CafeteriaBookingResponse {
	result := make([]*CafeteriaBookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, FromDomain(b))
	}
	return result
}
