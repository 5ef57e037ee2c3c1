package cafeteriabookings

import "time"

// PatchRequest изменение даты и/или интервала брони столовой
type PatchRequest struct {
	Date      *time.Time
	StartTime *time.Time
	EndTime   *time.Time
}
