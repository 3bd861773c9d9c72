package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/WiLayd/serverless-transport-task/internal/core/apperrors"
	"github.com/WiLayd/serverless-transport-task/internal/core/config"
	"github.com/WiLayd/serverless-transport-task/internal/core/logger"
	"github.com/WiLayd/serverless-transport-task/internal/features/rates/domain"

	"go.uber.org/zap"
)

// FixerAdapter fetches conversion rates from the Fixer.io latest-rates API.
type FixerAdapter struct {
	apiURL string
	apiKey string
	client *http.Client
	logger *zap.Logger
}

// NewFixerAdapter creates a new FixerAdapter with the given settings.
func NewFixerAdapter(cfg config.FixerConfig, client *http.Client) *FixerAdapter {
	return &FixerAdapter{
		apiURL: cfg.APIURL,
		apiKey: cfg.APIKey,
		client: client,
		logger: logger.Get(),
	}
}

// fixerResponse represents the JSON structure from the Fixer API.
type fixerResponse struct {
	Success bool         `json:"success"`
	Rates   domain.Rates `json:"rates"`
	Error   *struct {
		Code int    `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

// GetRates fetches conversion rates from base to the given symbols. A missing
// API key fails fast with a configuration error before any network call.
func (a *FixerAdapter) GetRates(ctx context.Context, base string, symbols []string) (domain.Rates, error) {
	if a.apiKey == "" {
		a.logger.Error("FIXER_API_KEY is not configured in environment variables")
		return nil, apperrors.Configuration("Currency conversion service is not configured.")
	}

	query := url.Values{}
	query.Set("access_key", a.apiKey)
	query.Set("base", base)
	query.Set("symbols", strings.Join(symbols, ","))
	requestURL := fmt.Sprintf("%s?%s", a.apiURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rates request: %w", err)
	}

	a.logger.Info("Fetching fresh currency rates from Fixer API")

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("Error calling Fixer API", zap.Error(err))
		return nil, apperrors.ServiceUnavailable("Could not connect to the currency conversion service.")
	}
	defer resp.Body.Close()

	var data fixerResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		a.logger.Error("Failed to decode Fixer API response", zap.Error(err))
		return nil, apperrors.ServiceUnavailable("Could not connect to the currency conversion service.")
	}

	if !data.Success {
		info := ""
		if data.Error != nil {
			info = data.Error.Info
		}
		a.logger.Error("Fixer API request failed", zap.String("info", info))
		return nil, apperrors.ServiceUnavailable("Failed to fetch currency rates: %s", info)
	}

	return data.Rates, nil
}
