package seatallocation

import (
	"context"
	"time"
)

// OccupancyResolver источник занятых мест
type OccupancyResolver interface {
	Resolve(ctx context.Context, floorNumber int, date time.Time) ([]string, error)
}
