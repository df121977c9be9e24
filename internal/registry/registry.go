// Package registry holds per-year tax law configuration behind an in-memory,
// year-keyed cache. Reads are concurrent; upserts and cache invalidation are
// serialized and never corrupt in-flight reads.
package registry

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/finwise/taxcore/internal/domain"
	"github.com/finwise/taxcore/pkg/logging"
)

// ConfigStore is the external configuration store consulted on cache misses.
// Implementations are expected to return domain.ErrConfigurationMissing when
// no configuration exists for the year; any other failure is treated as the
// store being unavailable.
type ConfigStore interface {
	FetchTaxLaw(ctx context.Context, year int) (*domain.TaxLawConfiguration, error)
	SaveTaxLaw(ctx context.Context, config *domain.TaxLawConfiguration) error
}

// Registry is the year-keyed tax law cache. The zero value is not usable;
// construct with New.
type Registry struct {
	mu    sync.RWMutex
	cache map[int]*domain.TaxLawConfiguration

	// store may be nil, in which case a cache miss is a missing configuration.
	store ConfigStore

	// group collapses concurrent cache-miss fetches for the same year into a
	// single store round trip.
	group  singleflight.Group
	logger logging.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithStore attaches an external configuration store for cache-miss fetches
// and upsert write-through.
func WithStore(store ConfigStore) Option {
	return func(r *Registry) { r.store = store }
}

// WithLogger attaches a logger. Nil restores the no-op default.
func WithLogger(logger logging.Logger) Option {
	return func(r *Registry) {
		if logger == nil {
			logger = logging.NopLogger{}
		}
		r.logger = logger
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		cache:  make(map[int]*domain.TaxLawConfiguration),
		logger: logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the law configuration for a tax year, cache-first. On a miss it
// fetches from the external store (the only operation here that may block),
// caches the result, and returns it. Concurrent misses for the same year
// share one fetch.
func (r *Registry) Get(ctx context.Context, year int) (*domain.TaxLawConfiguration, error) {
	r.mu.RLock()
	config, ok := r.cache[year]
	r.mu.RUnlock()
	if ok {
		return config, nil
	}

	if r.store == nil {
		return nil, fmt.Errorf("tax year %d: %w", year, domain.ErrConfigurationMissing)
	}

	value, err, _ := r.group.Do(strconv.Itoa(year), func() (any, error) {
		// Re-check under the flight: an upsert may have landed meanwhile.
		r.mu.RLock()
		cached, ok := r.cache[year]
		r.mu.RUnlock()
		if ok {
			return cached, nil
		}

		fetched, err := r.store.FetchTaxLaw(ctx, year)
		if err != nil {
			if errors.Is(err, domain.ErrConfigurationMissing) {
				return nil, fmt.Errorf("tax year %d: %w", year, domain.ErrConfigurationMissing)
			}
			r.logger.Warnf("tax law fetch failed for year %d: %v", year, err)
			return nil, fmt.Errorf("fetch tax law for year %d: %w: %v", year, domain.ErrStoreUnavailable, err)
		}

		r.mu.Lock()
		r.cache[year] = fetched
		r.mu.Unlock()
		r.logger.Debugf("cached tax law configuration for year %d", year)
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*domain.TaxLawConfiguration), nil
}

// Upsert inserts or replaces the configuration for config.Year. When a store
// is attached the write goes through to it before the cache is updated.
// Upserting the same configuration twice is a no-op beyond the second write.
func (r *Registry) Upsert(ctx context.Context, config *domain.TaxLawConfiguration) error {
	if config == nil {
		return fmt.Errorf("nil tax law configuration")
	}
	if config.Year == 0 {
		return fmt.Errorf("tax law configuration year is required")
	}

	if r.store != nil {
		if err := r.store.SaveTaxLaw(ctx, config); err != nil {
			return fmt.Errorf("save tax law for year %d: %w: %v", config.Year, domain.ErrStoreUnavailable, err)
		}
	}

	r.mu.Lock()
	r.cache[config.Year] = config
	r.mu.Unlock()
	r.logger.Infof("upserted tax law configuration for year %d", config.Year)
	return nil
}

// ClearCache drops every cached entry. Subsequent Get calls re-fetch from the
// store.
func (r *Registry) ClearCache() {
	r.mu.Lock()
	r.cache = make(map[int]*domain.TaxLawConfiguration)
	r.mu.Unlock()
	r.logger.Debugf("tax law cache cleared")
}

// CachedYears returns the years currently cached, in no particular order.
func (r *Registry) CachedYears() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	years := make([]int, 0, len(r.cache))
	for year := range r.cache {
		years = append(years, year)
	}
	return years
}
