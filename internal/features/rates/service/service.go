package service

import (
	"context"
	"sync"
	"time"

	"github.com/WiLayd/serverless-transport-task/internal/core/logger"
	"github.com/WiLayd/serverless-transport-task/internal/features/rates/domain"
	"github.com/WiLayd/serverless-transport-task/internal/features/rates/ports"

	"github.com/shopspring/decimal"
)

const (
	// BaseCurrency is the currency every cost is first computed in.
	BaseCurrency = "EUR"
)

// TargetCurrencies are the currencies a EUR cost is converted into.
var TargetCurrencies = []string{"USD", "UAH"}

// Cache holds the most recently fetched rate snapshot and serves it while it
// is fresh.
//
// The snapshot is not keyed by (base, symbols): a fresh snapshot is returned
// for any request, whatever pair it was fetched for. Every caller in this
// system requests EUR -> {USD, UAH}, and the cache is only safe under that
// single-pair usage.
type Cache struct {
	provider ports.RateProvider
	ttl      time.Duration
	now      func() time.Time

	mu        sync.Mutex
	snapshot  domain.Rates
	fetchedAt time.Time
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithClock injects the time source, used by tests to control expiry.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		c.now = now
	}
}

// NewCache creates a rate cache with the given freshness window.
func NewCache(provider ports.RateProvider, ttl time.Duration, opts ...CacheOption) *Cache {
	c := &Cache{
		provider: provider,
		ttl:      ttl,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetRates returns the cached snapshot while it is fresh, otherwise fetches
// a new one from the provider and replaces the snapshot. A failed fetch
// leaves the cache untouched and returns the provider error; an expired
// snapshot is never served.
func (c *Cache) GetRates(ctx context.Context, base string, symbols []string) (domain.Rates, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot != nil && c.now().Sub(c.fetchedAt) < c.ttl {
		logger.Get().Info("Returning currency rates from cache")
		return c.snapshot, nil
	}

	rates, err := c.provider.GetRates(ctx, base, symbols)
	if err != nil {
		return nil, err
	}

	c.snapshot = rates
	c.fetchedAt = c.now()

	logger.Get().Info("Successfully fetched and cached new currency rates")
	return rates, nil
}

// Converter derives USD and UAH equivalents of a EUR cost using a RateSource.
type Converter struct {
	source ports.RateSource
}

// NewConverter creates a new Converter.
func NewConverter(source ports.RateSource) *Converter {
	return &Converter{source: source}
}

// Convert returns the USD and UAH equivalents of costEUR. The EUR amount is
// rounded to 2 decimal places before each rate multiplication.
func (s *Converter) Convert(ctx context.Context, costEUR decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	rates, err := s.source.GetRates(ctx, BaseCurrency, TargetCurrencies)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	rounded := costEUR.Round(2)
	costUSD := rounded.Mul(decimal.NewFromFloat(rates["USD"]))
	costUAH := rounded.Mul(decimal.NewFromFloat(rates["UAH"]))

	return costUSD, costUAH, nil
}
