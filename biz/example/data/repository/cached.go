package repository

import (
	"context"
	"time"

	"github.com/ncobase/example-api/biz/example/structs"
	"github.com/ncobase/example-api/data/cache"
	"github.com/ncobase/example-api/logging/logger"
	"github.com/sony/gobreaker"
)

// CacheOptions tunes CachedExampleRepository
type CacheOptions struct {
	TTL             time.Duration
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

// CachedExampleRepository is a read-through cache in front of another store.
// Only lookups by id are cached; lists always reach the store. Cache
// failures never fail a request, and after BreakerFailures consecutive
// failures the cache is skipped until BreakerTimeout elapses.
type CachedExampleRepository struct {
	ExampleRepository

	cache   cache.ICache[structs.Example]
	ttl     time.Duration
	breaker *gobreaker.CircuitBreaker
	logger  *logger.Logger
}

// NewCachedExampleRepository wraps next with c
func NewCachedExampleRepository(next ExampleRepository, c cache.ICache[structs.Example], opts CacheOptions, l *logger.Logger) *CachedExampleRepository {
	failures := opts.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	if l == nil {
		l = logger.StdLogger()
	}

	r := &CachedExampleRepository{
		ExampleRepository: next,
		cache:             c,
		ttl:               opts.TTL,
		logger:            l,
	}
	r.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "example-cache",
		MaxRequests: 1,
		Timeout:     opts.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			r.logger.Warn(context.Background(), "Cache breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
	return r
}

// BreakerState reports the cache breaker state
func (r *CachedExampleRepository) BreakerState() gobreaker.State {
	return r.breaker.State()
}

func (r *CachedExampleRepository) FindByID(ctx context.Context, id string) (*structs.Example, bool, error) {
	cached, err := r.breaker.Execute(func() (any, error) {
		return r.cache.Get(ctx, id)
	})
	if err != nil {
		r.logger.Warn(ctx, "Cache lookup failed", "id", id, "error", err)
	} else if example, ok := cached.(*structs.Example); ok && example != nil {
		return example, true, nil
	}

	example, found, err := r.ExampleRepository.FindByID(ctx, id)
	if err != nil || !found {
		return example, found, err
	}

	r.store(ctx, example)
	return example, true, nil
}

func (r *CachedExampleRepository) Update(ctx context.Context, id string, patch *structs.UpdateExampleRequest) (*structs.Example, bool, error) {
	example, found, err := r.ExampleRepository.Update(ctx, id, patch)
	r.evict(ctx, id)
	return example, found, err
}

func (r *CachedExampleRepository) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := r.ExampleRepository.Delete(ctx, id)
	r.evict(ctx, id)
	return deleted, err
}

func (r *CachedExampleRepository) store(ctx context.Context, example *structs.Example) {
	_, err := r.breaker.Execute(func() (any, error) {
		return nil, r.cache.Set(ctx, example.ID, example, r.ttl)
	})
	if err != nil {
		r.logger.Warn(ctx, "Cache store failed", "id", example.ID, "error", err)
	}
}

func (r *CachedExampleRepository) evict(ctx context.Context, id string) {
	_, err := r.breaker.Execute(func() (any, error) {
		return nil, r.cache.Delete(ctx, id)
	})
	if err != nil {
		r.logger.Warn(ctx, "Cache eviction failed", "id", id, "error", err)
	}
}
