package availability

import (
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-FacilityBooking/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/availability/models"
)

// CountResponse число свободных ресурсов
type CountResponse struct {
	Available int `json:"available"`
}

// roomsQuery ?date=YYYY-MM-DD&start=RFC3339&end=RFC3339&capacity=N
type roomsQuery struct {
	Date     string `validate:"omitempty,datetime=2006-01-02"`
	Start    string `validate:"required"`
	End      string `validate:"required"`
	Capacity string `validate:"omitempty,number"`
}

func parseRoomsQuery(q url.Values) (models.RoomsByTimeRequest, error) {
	raw := roomsQuery{Date: q.Get("date"), Start: q.Get("start"), End: q.Get("end"), Capacity: q.Get("capacity")}
	if err := handlers.Validate(&raw); err != nil {
		return models.RoomsByTimeRequest{}, err
	}

	start, err := handlers.ParseInstant(raw.Start)
	if err != nil {
		return models.RoomsByTimeRequest{}, err
	}
	end, err := handlers.ParseInstant(raw.End)
	if err != nil {
		return models.RoomsByTimeRequest{}, err
	}

	// без даты берется день начала интервала
	date := start
	if raw.Date != "" {
		if date, err = handlers.ParseDate(raw.Date); err != nil {
			return models.RoomsByTimeRequest{}, err
		}
	}

	capacity := 0
	if raw.Capacity != "" {
		if capacity, err = strconv.Atoi(raw.Capacity); err != nil {
			return models.RoomsByTimeRequest{}, err
		}
	}

	return models.RoomsByTimeRequest{Date: date, Start: start, End: end, Capacity: capacity}, nil
}

// cafeteriaQuery ?date=YYYY-MM-DD&start=RFC3339&end=RFC3339&floorId=N
type cafeteriaQuery struct {
	Date    string `validate:"omitempty,datetime=2006-01-02"`
	Start   string `validate:"required"`
	End     string `validate:"required"`
	FloorID string `validate:"omitempty,number"`
}

func parseCafeteriaQuery(q url.Values) (models.CafeteriaByTimeRequest, error) {
	raw := cafeteriaQuery{Date: q.Get("date"), Start: q.Get("start"), End: q.Get("end"), FloorID: q.Get("floorId")}
	if err := handlers.Validate(&raw); err != nil {
		return models.CafeteriaByTimeRequest{}, err
	}

	start, err := handlers.ParseInstant(raw.Start)
	if err != nil {
		return models.CafeteriaByTimeRequest{}, err
	}
	end, err := handlers.ParseInstant(raw.End)
	if err != nil {
		return models.CafeteriaByTimeRequest{}, err
	}

	date := start
	if raw.Date != "" {
		if date, err = handlers.ParseDate(raw.Date); err != nil {
			return models.CafeteriaByTimeRequest{}, err
		}
	}

	floor := 0
	if raw.FloorID != "" {
		if floor, err = strconv.Atoi(raw.FloorID); err != nil {
			return models.CafeteriaByTimeRequest{}, err
		}
	}

	return models.CafeteriaByTimeRequest{Date: date, Start: start, End: end, FloorNumber: floor}, nil
}
