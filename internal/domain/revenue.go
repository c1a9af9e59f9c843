package domain

import "time"

// RevenueEntry is the result of querying a single revenue source during one
// collection cycle. Entries are created fresh each cycle and never persisted
// individually; only the aggregated CollectionReport survives.
type RevenueEntry struct {
	Source   string
	Amount   float64
	Currency string
}

// CollectionReport aggregates one collection cycle across all sources.
// It is appended to the audit ledger and never mutated afterwards.
type CollectionReport struct {
	Timestamp      time.Time          `json:"timestamp"`
	TotalCollected float64            `json:"total_collected"`
	Sources        map[string]float64 `json:"sources"`
	Destination    string             `json:"destination"`
	FailedSources  []string           `json:"failed_sources,omitempty"`
}
