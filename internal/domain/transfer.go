package domain

import "time"

// TransferStatus tracks a payout attempt through its state machine:
// INITIATED → SUBMITTED → {PENDING, SUCCESSFUL, FAILED}.
// PENDING is not terminal: the provider accepted the request but has not yet
// settled it. The executor treats PENDING as a qualified success.
type TransferStatus string

const (
	TransferInitiated  TransferStatus = "INITIATED"
	TransferSubmitted  TransferStatus = "SUBMITTED"
	TransferPending    TransferStatus = "PENDING"
	TransferSuccessful TransferStatus = "SUCCESSFUL"
	TransferFailed     TransferStatus = "FAILED"
)

func (s TransferStatus) IsTerminal() bool {
	return s == TransferSuccessful || s == TransferFailed
}

// TransferRecord identifies one payout attempt. The transaction id is unique
// per attempt and doubles as the idempotency key and the verification
// correlation id. A record is immutable once written to the ledger.
type TransferRecord struct {
	Timestamp       time.Time      `json:"timestamp"`
	TransactionID   string         `json:"transaction_id"`
	SourceAmount    float64        `json:"source_amount"`
	ConvertedAmount float64        `json:"converted_amount"`
	Destination     string         `json:"destination"`
	Status          TransferStatus `json:"status"`
}
