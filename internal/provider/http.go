package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/techreviewhub/automation/internal/domain"
)

// HTTPProvider calls the content generation service over HTTP.
// The base URL is injected from config so tests can point to a local mock.
type HTTPProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewHTTPProvider(baseURL, apiKey string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Generate posts the job payload and returns the produced text.
func (p *HTTPProvider) Generate(ctx context.Context, job domain.ContentJob) (string, error) {
	body, err := json.Marshal(GenerateRequest{
		Kind:    string(job.Kind),
		Title:   job.Title,
		Product: job.Product,
		Topic:   job.Topic,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected provider status: %d", resp.StatusCode)
	}

	var genResp GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if genResp.Content == "" {
		return "", fmt.Errorf("provider returned empty content")
	}

	return genResp.Content, nil
}

// compile-time check that HTTPProvider implements ContentProvider
var _ ContentProvider = (*HTTPProvider)(nil)
