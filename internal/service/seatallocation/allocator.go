// Package seatallocation подбирает свободные места на этаже.
package seatallocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/occupancy"
	"github.com/m04kA/SMC-FacilityBooking/pkg/seatlabel"
)

// Allocator вычисляет свободные места и выделяет непрерывный блок
type Allocator struct {
	occupancy OccupancyResolver
}

func NewAllocator(occupancy OccupancyResolver) *Allocator {
	return &Allocator{occupancy: occupancy}
}

// FreeSeats возвращает свободные места этажа на дату в порядке диапазона
func (a *Allocator) FreeSeats(ctx context.Context, floor *domain.Floor, date time.Time) ([]string, error) {
	all, err := seatlabel.ExpandRange(floor.StartingSeatNo, floor.EndingSeatNo)
	if err != nil {
		if errors.Is(err, seatlabel.ErrRangeMismatch) || errors.Is(err, seatlabel.ErrInvalidLabel) {
			return nil, fmt.Errorf("%w: floor %d: %v", ErrInvalidFloorRange, floor.Number, err)
		}
		return nil, fmt.Errorf("%w: FreeSeats - expand range: %v", ErrInternal, err)
	}

	occupied, err := a.occupancy.Resolve(ctx, floor.Number, date)
	if err != nil {
		if errors.Is(err, occupancy.ErrConflict) {
			return nil, fmt.Errorf("%w: FreeSeats - resolve occupancy: %v", ErrConflict, err)
		}
		return nil, fmt.Errorf("%w: FreeSeats - resolve occupancy: %v", ErrInternal, err)
	}

	taken := make(map[string]struct{}, len(occupied))
	for _, label := range occupied {
		taken[seatlabel.Canonical(label)] = struct{}{}
	}

	free := make([]string, 0, len(all))
	for _, label := range all {
		if _, ok := taken[label]; !ok {
			free = append(free, label)
		}
	}

	return free, nil
}

// Allocate выделяет capacity мест подряд; ErrSeatsNotFound, если блока нет
func (a *Allocator) Allocate(ctx context.Context, floor *domain.Floor, date time.Time, capacity int) ([]string, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	free, err := a.FreeSeats(ctx, floor, date)
	if err != nil {
		return nil, err
	}

	block := FindContiguousBlock(capacity, free)
	if len(block) == 0 {
		return nil, fmt.Errorf("%w: floor %d, %d free, %d requested", ErrSeatsNotFound, floor.Number, len(free), capacity)
	}

	return block, nil
}
