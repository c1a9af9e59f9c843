package provider

import (
	"context"

	"github.com/techreviewhub/automation/internal/domain"
)

// GenerateRequest is the JSON body posted to the content provider.
type GenerateRequest struct {
	Kind    string          `json:"kind"`
	Title   string          `json:"title"`
	Product *domain.Product `json:"product,omitempty"`
	Topic   *domain.Topic   `json:"topic,omitempty"`
}

// GenerateResponse maps the provider's response body.
type GenerateResponse struct {
	Content string `json:"content"`
}

// ContentProvider abstracts the external AI text generation service.
// The generation itself is a black box; only this request/response contract
// matters here.
type ContentProvider interface {
	Generate(ctx context.Context, job domain.ContentJob) (string, error)
}
