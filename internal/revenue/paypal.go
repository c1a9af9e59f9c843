package revenue

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// PayPalSource reads the available PayPal balance via the reporting API.
// Each Balance call fetches a fresh client-credentials token; collection
// cycles are hours apart, so token caching buys nothing.
type PayPalSource struct {
	clientID     string
	clientSecret string
	baseURL      string
	currency     string
	httpClient   *http.Client
}

func NewPayPalSource(clientID, clientSecret, baseURL, currency string, timeout time.Duration) *PayPalSource {
	return &PayPalSource{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      baseURL,
		currency:     currency,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

func (s *PayPalSource) Name() string { return "paypal" }

func (s *PayPalSource) Balance(ctx context.Context) (float64, error) {
	token, err := s.accessToken(ctx)
	if err != nil {
		return 0, fmt.Errorf("paypal auth: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/v1/reporting/balances", nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch balances: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected balances status: %d", resp.StatusCode)
	}

	var body struct {
		Balances []struct {
			Currency     string `json:"currency"`
			TotalBalance struct {
				Value string `json:"value"`
			} `json:"total_balance"`
		} `json:"balances"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode balances: %w", err)
	}

	for _, b := range body.Balances {
		if b.Currency == s.currency {
			v, err := strconv.ParseFloat(b.TotalBalance.Value, 64)
			if err != nil {
				return 0, fmt.Errorf("parse balance %q: %w", b.TotalBalance.Value, err)
			}
			return v, nil
		}
	}
	return 0, nil
}

func (s *PayPalSource) accessToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/v1/oauth2/token", strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(s.clientID, s.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected token status: %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode token: %w", err)
	}
	return body.AccessToken, nil
}

var _ Source = (*PayPalSource)(nil)
