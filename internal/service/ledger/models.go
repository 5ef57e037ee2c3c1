package ledger

import (
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// WindowPatch изменение даты и/или интервала времени записи.
// nil - поле не меняется.
type WindowPatch struct {
	Date  *time.Time
	Start *time.Time
	End   *time.Time
}

func (p WindowPatch) IsEmpty() bool {
	return p.Date == nil && p.Start == nil && p.End == nil
}

// Homescreen данные главного экрана пользователя
type Homescreen struct {
	Overall      []*domain.LedgerEntry
	MeetingRooms int
	Seats        int
	Cafeteria    int
}
