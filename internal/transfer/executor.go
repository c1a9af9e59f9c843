package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/techreviewhub/automation/internal/domain"
	"github.com/techreviewhub/automation/internal/exchange"
	"github.com/techreviewhub/automation/internal/ledger"
	"github.com/techreviewhub/automation/internal/ratelimiter"
)

// limiter key for all payout provider calls
const payoutAPI = "payout"

// Policy holds the payout rules injected from config.
type Policy struct {
	Destination    string
	SourceCurrency string
	PayoutCurrency string
	// Threshold is the minimum collected amount (in the source currency)
	// for a transfer to be attempted. Below-threshold amounts are logged
	// and skipped; there is no rollover accumulation for the next cycle.
	Threshold float64
	// VerifyDelay is how long to wait after submission before the single
	// status query.
	VerifyDelay time.Duration
}

// Executor drives one payout attempt through its state machine:
// INITIATED → SUBMITTED → {PENDING, SUCCESSFUL, FAILED}. Verification is a
// single status query after a fixed delay; PENDING is treated as a qualified
// success and recorded as such, so an operator can audit unsettled transfers
// from the ledger later.
type Executor struct {
	provider  PayoutProvider
	converter *exchange.Converter
	ledger    *ledger.Ledger
	limiter   *ratelimiter.APILimiters
	policy    Policy
	logger    *zap.Logger

	// Hook for metrics. Optional (nil = no-op).
	onTransfer func(status domain.TransferStatus)
}

func NewExecutor(
	provider PayoutProvider,
	converter *exchange.Converter,
	l *ledger.Ledger,
	limiter *ratelimiter.APILimiters,
	policy Policy,
	logger *zap.Logger,
	onTransfer func(domain.TransferStatus),
) *Executor {
	if onTransfer == nil {
		onTransfer = func(domain.TransferStatus) {}
	}
	return &Executor{
		provider:   provider,
		converter:  converter,
		ledger:     l,
		limiter:    limiter,
		policy:     policy,
		logger:     logger,
		onTransfer: onTransfer,
	}
}

// Transfer converts and pays out the collected amount. It returns the ledger
// record of the attempt, or (nil, nil) when the amount was below the
// threshold and no attempt was made.
func (e *Executor) Transfer(ctx context.Context, amount float64) (*domain.TransferRecord, error) {
	if amount < e.policy.Threshold {
		e.logger.Info("below transfer threshold, skipping payout",
			zap.Float64("amount", amount),
			zap.Float64("threshold", e.policy.Threshold),
		)
		return nil, nil
	}

	converted := e.converter.ToPayoutCurrency(ctx, amount, e.policy.SourceCurrency, e.policy.PayoutCurrency)

	txID := newTransactionID()
	rec := domain.TransferRecord{
		Timestamp:       time.Now().UTC(),
		TransactionID:   txID,
		SourceAmount:    amount,
		ConvertedAmount: converted,
		Destination:     e.policy.Destination,
		Status:          domain.TransferInitiated,
	}

	log := e.logger.With(
		zap.String("transaction_id", txID),
		zap.Float64("source_amount", amount),
		zap.Float64("converted_amount", converted),
		zap.String("destination", e.policy.Destination),
	)
	log.Info("initiating transfer")

	if err := e.limiter.Wait(ctx, payoutAPI); err != nil {
		return e.finish(rec, domain.TransferFailed, log), fmt.Errorf("rate limiter: %w", err)
	}

	if err := e.provider.Submit(ctx, txID, converted, e.policy.PayoutCurrency, e.policy.Destination); err != nil {
		log.Error("payout submission failed", zap.Error(err))
		return e.finish(rec, domain.TransferFailed, log), fmt.Errorf("submit payout: %w", err)
	}
	rec.Status = domain.TransferSubmitted
	log.Info("payout request accepted, waiting before verification",
		zap.Duration("verify_delay", e.policy.VerifyDelay))

	// The delay must observe cancellation: a shutdown mid-wait records the
	// submission with its true last known state rather than losing it.
	select {
	case <-ctx.Done():
		log.Warn("verification aborted by shutdown, recording as pending")
		return e.finish(rec, domain.TransferPending, log), ctx.Err()
	case <-time.After(e.policy.VerifyDelay):
	}

	status, err := e.provider.Status(ctx, txID)
	if err != nil {
		log.Error("verification failed", zap.Error(err))
		return e.finish(rec, domain.TransferFailed, log), fmt.Errorf("verify payout: %w", err)
	}

	switch status {
	case domain.TransferSuccessful:
		log.Info("transfer completed successfully")
		return e.finish(rec, status, log), nil
	case domain.TransferPending:
		// Qualified success: the true terminal state is not yet known.
		log.Info("transfer pending at provider, proceeding")
		return e.finish(rec, status, log), nil
	default:
		log.Error("transfer rejected by provider")
		return e.finish(rec, domain.TransferFailed, log), domain.ErrTransferFailed
	}
}

// finish stamps the final status, appends the immutable ledger record, and
// fires the metrics hook. The record is returned for the caller's benefit.
func (e *Executor) finish(rec domain.TransferRecord, status domain.TransferStatus, log *zap.Logger) *domain.TransferRecord {
	rec.Status = status
	if err := e.ledger.AppendTransfer(rec); err != nil {
		log.Error("failed to append transfer record", zap.Error(err))
	}
	e.onTransfer(status)
	return &rec
}

func newTransactionID() string {
	return uuid.NewString()
}
