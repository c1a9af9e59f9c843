package revenue

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// AmazonSource reads unpaid earnings from the Amazon Associates reporting
// endpoint. Requests are signed with an HMAC-SHA256 of the associate tag and
// request date, per the reporting API contract.
type AmazonSource struct {
	accessKey    string
	secretKey    string
	associateTag string
	baseURL      string
	httpClient   *http.Client
}

func NewAmazonSource(accessKey, secretKey, associateTag, baseURL string, timeout time.Duration) *AmazonSource {
	return &AmazonSource{
		accessKey:    accessKey,
		secretKey:    secretKey,
		associateTag: associateTag,
		baseURL:      baseURL,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

func (s *AmazonSource) Name() string { return "amazon_associates" }

func (s *AmazonSource) Balance(ctx context.Context) (float64, error) {
	date := time.Now().UTC().Format("20060102")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/associates/v1/earnings?tag=%s", s.baseURL, s.associateTag), nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Amz-Access-Key", s.accessKey)
	req.Header.Set("X-Amz-Date", date)
	req.Header.Set("X-Amz-Signature", s.sign(s.associateTag+date))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch earnings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected earnings status: %d", resp.StatusCode)
	}

	var body struct {
		UnpaidEarnings float64 `json:"unpaid_earnings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode earnings: %w", err)
	}
	return body.UnpaidEarnings, nil
}

func (s *AmazonSource) sign(msg string) string {
	mac := hmac.New(sha256.New, []byte(s.secretKey))
	mac.Write([]byte(msg))
	return hex.EncodeToString(mac.Sum(nil))
}

var _ Source = (*AmazonSource)(nil)
