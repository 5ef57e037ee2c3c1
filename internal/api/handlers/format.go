package handlers

import (
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// LedgerEntryResponse строка сводного журнала в ответах API
type LedgerEntryResponse struct {
	ID        int64    `json:"id"`
	Token     string   `json:"token"`
	Amenity   string   `json:"amenity"`
	BookingID int64    `json:"bookingId"`
	Date      string   `json:"date"`
	Details   []string `json:"details"`
	CreatedAt string   `json:"createdAt,omitempty"`
}

func FromLedgerEntry(e *domain.LedgerEntry) *LedgerEntryResponse {
	if e == nil {
		return nil
	}
	details := e.Details
	if details == nil {
		details = []string{}
	}
	return &LedgerEntryResponse{
		ID:        e.ID,
		Token:     e.Token,
		Amenity:   string(e.Amenity),
		BookingID: e.BookingID,
		Date:      FormatDate(e.Date),
		Details:   details,
		CreatedAt: FormatTimestamp(e.CreatedAt),
	}
}

func FromLedgerEntries(entries []*domain.LedgerEntry) []*LedgerEntryResponse {
	result := make([]*LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, FromLedgerEntry(e))
	}
	return result
}

func FormatDate(t time.Time) string {
	return t.Format(domain.DateFormat)
}

// FormatTimestamp RFC 3339 в UTC, пустая строка для нулевого времени
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
