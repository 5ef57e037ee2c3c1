package create_seat_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.FloorNumber < 0 {
		return fmt.Errorf("%w: floor number must not be negative", ErrInvalidInput)
	}

	if len(req.SeatNo) == 0 && req.Capacity <= 0 {
		return fmt.Errorf("%w: either seat_no or positive capacity is required", ErrInvalidInput)
	}

	for _, label := range req.SeatNo {
		if strings.TrimSpace(label) == "" {
			return fmt.Errorf("%w: seat_no contains an empty label", ErrInvalidInput)
		}
	}

	if len(req.SeatNo) == 0 && req.Capacity > domain.MaxSeatCapacity {
		return fmt.Errorf("%w: capacity must not exceed %d", ErrInvalidInput, domain.MaxSeatCapacity)
	}

	if len(req.Users) > domain.MaxUsers {
		return fmt.Errorf("%w: too many users (max %d)", ErrInvalidInput, domain.MaxUsers)
	}

	return nil
}

func trimLabels(labels []string) []string {
	result := make([]string, len(labels))
	for i, label := range labels {
		result[i] = strings.TrimSpace(label)
	}
	return result
}
