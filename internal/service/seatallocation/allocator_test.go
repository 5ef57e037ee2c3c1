package seatallocation

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/occupancy"
)

type stubOccupancy struct {
	occupied []string
	err      error
}

func (s *stubOccupancy) Resolve(context.Context, int, time.Time) ([]string, error) {
	return s.occupied, s.err
}

var (
	testDate  = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	testFloor = &domain.Floor{Number: 1, StartingSeatNo: "A 001", EndingSeatNo: "A 010", Capacity: 10}
)

func TestAllocator_FreeSeats(t *testing.T) {
	a := NewAllocator(&stubOccupancy{occupied: []string{"A 002", "[A 005]", "A 5", "A 002"}})

	free, err := a.FreeSeats(context.Background(), testFloor, testDate)
	require.NoError(t, err)

	assert.Equal(t, []string{"A 001", "A 003", "A 004", "A 006", "A 007", "A 008", "A 009", "A 010"}, free)
}

func TestAllocator_Allocate(t *testing.T) {
	a := NewAllocator(&stubOccupancy{occupied: []string{"A 001", "A 002", "A 003", "A 004"}})

	seats, err := a.Allocate(context.Background(), testFloor, testDate, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"A 005", "A 006", "A 007"}, seats)

	_, err = a.Allocate(context.Background(), testFloor, testDate, 8)
	assert.ErrorIs(t, err, ErrSeatsNotFound)
}

func TestAllocator_InvalidCapacity(t *testing.T) {
	_, err := NewAllocator(&stubOccupancy{}).Allocate(context.Background(), testFloor, testDate, 0)
	assert.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestAllocator_MisconfiguredFloor(t *testing.T) {
	floor := &domain.Floor{Number: 2, StartingSeatNo: "A 001", EndingSeatNo: "B 010"}

	_, err := NewAllocator(&stubOccupancy{}).FreeSeats(context.Background(), floor, testDate)
	assert.ErrorIs(t, err, ErrInvalidFloorRange)
}

func TestAllocator_OccupancyError(t *testing.T) {
	_, err := NewAllocator(&stubOccupancy{err: errors.New("db down")}).FreeSeats(context.Background(), testFloor, testDate)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestAllocator_OccupancyConflict(t *testing.T) {
	a := NewAllocator(&stubOccupancy{err: fmt.Errorf("%w: serialization failure", occupancy.ErrConflict)})

	_, err := a.Allocate(context.Background(), testFloor, testDate, 2)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrInternal)
}
