package revenue

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// AffiliateSource covers the direct affiliate and email marketing programs,
// which share one balance-endpoint shape differing only by program name.
type AffiliateSource struct {
	program    string
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewAffiliateSource(program, apiKey, baseURL string, timeout time.Duration) *AffiliateSource {
	return &AffiliateSource{
		program:    program,
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (s *AffiliateSource) Name() string { return s.program }

func (s *AffiliateSource) Balance(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/programs/%s/balance", s.baseURL, s.program), nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch balance: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected balance status: %d", resp.StatusCode)
	}

	var body struct {
		Balance float64 `json:"balance"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode balance: %w", err)
	}
	return body.Balance, nil
}

var _ Source = (*AffiliateSource)(nil)
