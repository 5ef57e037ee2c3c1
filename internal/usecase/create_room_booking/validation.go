package create_room_booking

import (
	"fmt"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: start and end time are required", ErrInvalidInput)
	}

	if _, err := domain.NewTimeRange(req.StartTime, req.EndTime); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if len(req.Users) > domain.MaxUsers {
		return fmt.Errorf("%w: too many users (max %d)", ErrInvalidInput, domain.MaxUsers)
	}

	return nil
}
