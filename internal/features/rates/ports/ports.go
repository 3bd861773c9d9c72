package ports

import (
	"context"

	"github.com/WiLayd/serverless-transport-task/internal/features/rates/domain"

	"github.com/shopspring/decimal"
)

// RateProvider defines the secondary port for fetching conversion rates from
// an external exchange-rate service.
type RateProvider interface {
	GetRates(ctx context.Context, base string, symbols []string) (domain.Rates, error)
}

// RateSource is the primary port for rate lookups. The cache implements it
// on top of a RateProvider.
type RateSource interface {
	GetRates(ctx context.Context, base string, symbols []string) (domain.Rates, error)
}

// CurrencyConverter converts a EUR cost into its USD and UAH equivalents.
type CurrencyConverter interface {
	Convert(ctx context.Context, costEUR decimal.Decimal) (costUSD, costUAH decimal.Decimal, err error)
}
