package events

import (
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// EventType тип события (routing key)
type EventType string

const (
	EventBookingCreated EventType = "booking.created"
	EventBookingDeleted EventType = "booking.deleted"
)

// BookingEvent событие изменения сводного журнала
type BookingEvent struct {
	Type       EventType `json:"type"`
	LedgerID   int64     `json:"ledger_id"`
	BookingID  int64     `json:"booking_id"`
	Amenity    string    `json:"amenity"`
	Token      string    `json:"token"`
	Date       string    `json:"date"`
	Details    []string  `json:"details"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewBookingEvent собирает событие по записи журнала
func NewBookingEvent(eventType EventType, entry *domain.LedgerEntry, now time.Time) BookingEvent {
	return BookingEvent{
		Type:       eventType,
		LedgerID:   entry.ID,
		BookingID:  entry.BookingID,
		Amenity:    string(entry.Amenity),
		Token:      entry.Token,
		Date:       entry.Date.Format(domain.DateFormat),
		Details:    entry.Details,
		OccurredAt: now.UTC(),
	}
}
