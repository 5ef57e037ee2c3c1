package floor

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

const allFloorsKey = "floors:all"

// Source источник справочника этажей
type Source interface {
	GetByNumber(ctx context.Context, number int) (*domain.Floor, error)
	List(ctx context.Context) ([]*domain.Floor, error)
}

// CachedRepository кэширует справочник этажей в памяти.
// Этажи меняются внешним сервисом редко, поэтому достаточно TTL.
// Отсутствующие этажи не кэшируются.
type CachedRepository struct {
	source Source
	cache  *cache.Cache
}

func NewCachedRepository(source Source, ttl, cleanupInterval time.Duration) *CachedRepository {
	return &CachedRepository{
		source: source,
		cache:  cache.New(ttl, cleanupInterval),
	}
}

func (r *CachedRepository) GetByNumber(ctx context.Context, number int) (*domain.Floor, error) {
	key := floorKey(number)
	if cached, ok := r.cache.Get(key); ok {
		f := *cached.(*domain.Floor)
		return &f, nil
	}

	f, err := r.source.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	r.cache.SetDefault(key, f)
	copied := *f
	return &copied, nil
}

func (r *CachedRepository) List(ctx context.Context) ([]*domain.Floor, error) {
	if cached, ok := r.cache.Get(allFloorsKey); ok {
		return copyFloors(cached.([]*domain.Floor)), nil
	}

	floors, err := r.source.List(ctx)
	if err != nil {
		return nil, err
	}

	r.cache.SetDefault(allFloorsKey, floors)
	return copyFloors(floors), nil
}

// Invalidate сбрасывает кэш
func (r *CachedRepository) Invalidate() {
	r.cache.Flush()
}

func floorKey(number int) string {
	return fmt.Sprintf("floor:%d", number)
}

func copyFloors(floors []*domain.Floor) []*domain.Floor {
	result := make([]*domain.Floor, 0, len(floors))
	for _, f := range floors {
		copied := *f
		result = append(result, &copied)
	}
	return result
}
