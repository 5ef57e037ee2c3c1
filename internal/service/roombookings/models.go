package roombookings

import "time"

// PatchRequest частичное обновление брони переговорной. nil - поле не меняется.
type PatchRequest struct {
	Date        *time.Time
	StartTime   *time.Time
	EndTime     *time.Time
	FloorNumber *int
	RoomName    *string
	Users       *[]string
	Status      *bool
}

func (r *PatchRequest) movesWindow() bool {
	return r.Date != nil || r.StartTime != nil || r.EndTime != nil
}
