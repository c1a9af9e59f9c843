// Package exchange converts collected amounts into the payout currency.
package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/techreviewhub/automation/internal/domain"
)

// RateService abstracts the live exchange-rate lookup.
type RateService interface {
	LatestRate(ctx context.Context, from, to string) (float64, error)
}

// HTTPRateService queries an exchangerate-api style endpoint:
// GET {base}/{from} returns {"rates": {"GHS": 12.34, ...}}.
type HTTPRateService struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPRateService(baseURL string, timeout time.Duration) *HTTPRateService {
	return &HTTPRateService{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (s *HTTPRateService) LatestRate(ctx context.Context, from, to string) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/"+from, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected rate status: %d", resp.StatusCode)
	}

	var body struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode rates: %w", err)
	}

	rate, ok := body.Rates[to]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("%w: no %s rate in response", domain.ErrRateUnavailable, to)
	}
	return rate, nil
}

var _ RateService = (*HTTPRateService)(nil)

// Converter normalizes amounts into the payout currency. When the live rate
// service fails for any reason it falls back to a static approximate
// multiplier: availability over accuracy, a payout is never blocked solely
// because the rate service is down.
type Converter struct {
	svc      RateService
	fallback float64
	logger   *zap.Logger
}

func NewConverter(svc RateService, fallback float64, logger *zap.Logger) *Converter {
	return &Converter{svc: svc, fallback: fallback, logger: logger}
}

// ToPayoutCurrency converts amount from one currency to another. It cannot
// fail; the worst case is the fallback rate.
func (c *Converter) ToPayoutCurrency(ctx context.Context, amount float64, from, to string) float64 {
	rate, err := c.svc.LatestRate(ctx, from, to)
	if err != nil {
		c.logger.Warn("live rate unavailable, using fallback rate",
			zap.String("from", from),
			zap.String("to", to),
			zap.Float64("fallback_rate", c.fallback),
			zap.Error(err),
		)
		return amount * c.fallback
	}

	converted := amount * rate
	c.logger.Info("amount converted",
		zap.Float64("amount", amount),
		zap.String("from", from),
		zap.String("to", to),
		zap.Float64("rate", rate),
		zap.Float64("converted", converted),
	)
	return converted
}
