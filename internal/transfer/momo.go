package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/techreviewhub/automation/internal/domain"
)

// MomoClient talks to an MTN Mobile Money style API: submissions are
// acknowledged with 202 Accepted and correlated by the X-Reference-Id
// header, and settlement is queried separately by that same id.
type MomoClient struct {
	baseURL         string
	apiKey          string
	apiSecret       string
	subscriptionKey string
	environment     string
	payerMessage    string
	httpClient      *http.Client
}

func NewMomoClient(baseURL, apiKey, apiSecret, subscriptionKey, environment string, timeout time.Duration) *MomoClient {
	return &MomoClient{
		baseURL:         baseURL,
		apiKey:          apiKey,
		apiSecret:       apiSecret,
		subscriptionKey: subscriptionKey,
		environment:     environment,
		payerMessage:    "TechReview Hub revenue transfer",
		httpClient:      &http.Client{Timeout: timeout},
	}
}

type submitPayload struct {
	Amount       string    `json:"amount"`
	Currency     string    `json:"currency"`
	ExternalID   string    `json:"externalId"`
	Payer        momoPayer `json:"payer"`
	PayerMessage string    `json:"payerMessage"`
	PayeeNote    string    `json:"payeeNote"`
}

type momoPayer struct {
	PartyIDType string `json:"partyIdType"`
	PartyID     string `json:"partyId"`
}

// Submit posts the payout request. The provider accepts with 202; anything
// else is a request-level failure.
func (c *MomoClient) Submit(ctx context.Context, txID string, amount float64, currency, destination string) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return fmt.Errorf("momo auth: %w", err)
	}

	body, err := json.Marshal(submitPayload{
		Amount:       fmt.Sprintf("%.2f", amount),
		Currency:     currency,
		ExternalID:   txID,
		Payer:        momoPayer{PartyIDType: "MSISDN", PartyID: destination},
		PayerMessage: c.payerMessage,
		PayeeNote:    "Automated affiliate marketing earnings",
	})
	if err != nil {
		return fmt.Errorf("marshal payout: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/collection/v1_0/requesttopay", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Reference-Id", txID)
	req.Header.Set("X-Target-Environment", c.environment)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.subscriptionKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("submit payout: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("payout not accepted: status %d", resp.StatusCode)
	}
	return nil
}

// Status issues one status query for the given transaction id.
func (c *MomoClient) Status(ctx context.Context, txID string) (domain.TransferStatus, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return domain.TransferFailed, fmt.Errorf("momo auth: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/collection/v1_0/requesttopay/"+txID, nil)
	if err != nil {
		return domain.TransferFailed, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Target-Environment", c.environment)
	req.Header.Set("Ocp-Apim-Subscription-Key", c.subscriptionKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.TransferFailed, fmt.Errorf("query status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.TransferFailed, fmt.Errorf("unexpected status query response: %d", resp.StatusCode)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.TransferFailed, fmt.Errorf("decode status: %w", err)
	}

	switch body.Status {
	case "SUCCESSFUL":
		return domain.TransferSuccessful, nil
	case "PENDING":
		return domain.TransferPending, nil
	default:
		return domain.TransferFailed, nil
	}
}

func (c *MomoClient) accessToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/collection/token/", nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.apiKey, c.apiSecret)
	req.Header.Set("Ocp-Apim-Subscription-Key", c.subscriptionKey)

	resp, err := c.httpClient.Do(req)
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

// compile-time check that MomoClient implements PayoutProvider
var _ PayoutProvider = (*MomoClient)(nil)
