package models

import (
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// SeatAvailability свободные места по всем этажам на дату
type SeatAvailability struct {
	Date      string `json:"date"`
	Total     int    `json:"total"`
	Booked    int    `json:"booked"`
	Available int    `json:"available"`
}

// FloorAvailability свободные места этажа на дату
type FloorAvailability struct {
	FloorNumber int    `json:"floorNumber"`
	FloorName   string `json:"floorName"`
	Capacity    int    `json:"capacity"`
	Booked      int    `json:"booked"`
	Available   int    `json:"available"`
}

// RoomResponse свободная переговорная
type RoomResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Capacity    int    `json:"capacity"`
	FloorNumber int    `json:"floorNumber"`
}

// RoomsByTimeRequest параметры поиска переговорных
type RoomsByTimeRequest struct {
	Date     time.Time
	Start    time.Time
	End      time.Time
	Capacity int
}

// CafeteriaByTimeRequest параметры проверки столовой
type CafeteriaByTimeRequest struct {
	Date        time.Time
	Start       time.Time
	End         time.Time
	FloorNumber int
}

func FromDomainRooms(rooms []*domain.MeetingRoom) []RoomResponse {
	result := make([]RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		result = append(result, RoomResponse{
			ID:          r.ID,
			Name:        r.Name,
			Capacity:    r.Capacity,
			FloorNumber: r.FloorNumber,
		})
	}
	return result
}
