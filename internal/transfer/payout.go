package transfer

import (
	"context"

	"github.com/techreviewhub/automation/internal/domain"
)

// PayoutProvider abstracts the external payout API. Submit posts a payout
// request carrying the caller-generated transaction id (the idempotency key);
// Status queries the provider for the current state of that transaction.
type PayoutProvider interface {
	Submit(ctx context.Context, txID string, amount float64, currency, destination string) error
	Status(ctx context.Context, txID string) (domain.TransferStatus, error)
}
