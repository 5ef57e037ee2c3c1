package floorservice

import "github.com/m04kA/SMC-FacilityBooking/internal/domain"

// Floor модель этажа из сервиса справочника этажей
type Floor struct {
	FloorNumber    int    `json:"floor_number"`
	FloorName      string `json:"floor_name"`
	StartingSeatNo string `json:"starting_seat_no"`
	EndingSeatNo   string `json:"ending_seat_no"`
	Capacity       int    `json:"capacity"`
}

func (f Floor) toDomain() *domain.Floor {
	return &domain.Floor{
		Number:         f.FloorNumber,
		Name:           f.FloorName,
		StartingSeatNo: f.StartingSeatNo,
		EndingSeatNo:   f.EndingSeatNo,
		Capacity:       f.Capacity,
	}
}
