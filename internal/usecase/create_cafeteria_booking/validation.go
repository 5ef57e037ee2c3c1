package create_cafeteria_booking

import (
	"fmt"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: start and end time are required", ErrInvalidInput)
	}

	if _, err := domain.NewTimeRange(req.StartTime, req.EndTime); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.FloorNumber != nil && *req.FloorNumber < 0 {
		return fmt.Errorf("%w: floor number must not be negative", ErrInvalidInput)
	}

	return nil
}
