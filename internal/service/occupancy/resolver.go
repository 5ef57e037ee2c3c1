// Package occupancy вычисляет занятые места этажа на дату.
package occupancy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	seatBookingRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/seatbooking"
	"github.com/m04kA/SMC-FacilityBooking/pkg/seatlabel"
)

// Resolver возвращает занятые места по сохраненным бронированиям
type Resolver struct {
	repo SeatBookingRepository
}

func NewResolver(repo SeatBookingRepository) *Resolver {
	return &Resolver{repo: repo}
}

// Resolve возвращает плоский список занятых мест этажа на календарный день.
// Скобки из сохраненных значений удаляются; дубликаты сохраняются,
// вызывающий сравнивает через множество.
func (r *Resolver) Resolve(ctx context.Context, floorNumber int, date time.Time) ([]string, error) {
	bookings, err := r.repo.ListByFloorAndDate(ctx, floorNumber, domain.NormalizeDate(date))
	if err != nil {
		if errors.Is(err, seatBookingRepo.ErrConflict) {
			return nil, fmt.Errorf("%w: Resolve - list bookings: %v", ErrConflict, err)
		}
		return nil, fmt.Errorf("%w: Resolve - list bookings: %v", ErrInternal, err)
	}

	occupied := make([]string, 0)
	for _, b := range bookings {
		for _, seat := range b.SeatNo {
			label := strings.TrimSpace(seatlabel.Sanitize(seat))
			if label == "" {
				continue
			}
			occupied = append(occupied, label)
		}
	}

	return occupied, nil
}
