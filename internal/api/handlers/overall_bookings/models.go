package overall_bookings

import (
	"github.com/m04kA/SMC-FacilityBooking/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/ledger"
)

// RollupRequest владелец, чьи брони собираются в журнал.
// Без тела берется токен из X-User-Token.
type RollupRequest struct {
	Token string `json:"token" validate:"omitempty,max=255"`
}

// UpdateWindowRequest новая дата и/или интервал записи
type UpdateWindowRequest struct {
	Date      *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
}

func (r *UpdateWindowRequest) ToWindowPatch() (ledger.WindowPatch, error) {
	date, err := handlers.ParseOptionalDate(r.Date)
	if err != nil {
		return ledger.WindowPatch{}, err
	}
	start, err := handlers.ParseOptionalInstant(r.StartTime)
	if err != nil {
		return ledger.WindowPatch{}, err
	}
	end, err := handlers.ParseOptionalInstant(r.EndTime)
	if err != nil {
		return ledger.WindowPatch{}, err
	}

	return ledger.WindowPatch{Date: date, Start: start, End: end}, nil
}
