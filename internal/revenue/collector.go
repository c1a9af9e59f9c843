package revenue

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/techreviewhub/automation/internal/domain"
	"github.com/techreviewhub/automation/internal/ledger"
	"github.com/techreviewhub/automation/internal/ratelimiter"
)

// Hooks carries metric callbacks injected by main. Optional (nil = no-op).
type Hooks struct {
	OnCollected    func(source string, amount float64)
	OnSourceFailed func(source string)
}

// Collector fans out to a fixed set of revenue sources and aggregates the
// available balances for one cycle. Collection is partial-failure-tolerant:
// one unreachable source contributes zero, it never aborts the cycle.
type Collector struct {
	sources     []Source
	ledger      *ledger.Ledger
	limiter     *ratelimiter.APILimiters
	destination string
	currency    string
	logger      *zap.Logger
	hooks       Hooks
}

func NewCollector(
	sources []Source,
	l *ledger.Ledger,
	limiter *ratelimiter.APILimiters,
	destination, currency string,
	logger *zap.Logger,
	hooks Hooks,
) *Collector {
	if hooks.OnCollected == nil {
		hooks.OnCollected = func(string, float64) {}
	}
	if hooks.OnSourceFailed == nil {
		hooks.OnSourceFailed = func(string) {}
	}
	return &Collector{
		sources:     sources,
		ledger:      l,
		limiter:     limiter,
		destination: destination,
		currency:    currency,
		logger:      logger,
		hooks:       hooks,
	}
}

// CollectAll queries every source in order and appends the resulting report
// to the audit ledger unconditionally, zero-amount cycles included.
func (c *Collector) CollectAll(ctx context.Context) domain.CollectionReport {
	c.logger.Info("starting revenue collection", zap.Int("sources", len(c.sources)))

	report := domain.CollectionReport{
		Timestamp:   time.Now().UTC(),
		Sources:     map[string]float64{},
		Destination: c.destination,
	}

	var entries []domain.RevenueEntry
	for _, src := range c.sources {
		log := c.logger.With(zap.String("source", src.Name()))

		if err := c.limiter.Wait(ctx, src.Name()); err != nil {
			// ctx cancelled while waiting; treat like an unreachable source.
			log.Warn("rate limiter wait aborted", zap.Error(err))
			report.FailedSources = append(report.FailedSources, src.Name())
			c.hooks.OnSourceFailed(src.Name())
			continue
		}

		amount, err := src.Balance(ctx)
		if err != nil {
			log.Warn("source unreachable, counting as zero", zap.Error(err))
			report.FailedSources = append(report.FailedSources, src.Name())
			c.hooks.OnSourceFailed(src.Name())
			continue
		}

		if amount <= 0 {
			log.Info("no balance to collect")
			continue
		}
		entries = append(entries, domain.RevenueEntry{
			Source:   src.Name(),
			Amount:   amount,
			Currency: c.currency,
		})
		log.Info("balance collected", zap.Float64("amount", amount))
	}

	// Fold the cycle's entries into the report; the entries themselves are
	// never persisted.
	for _, e := range entries {
		report.Sources[e.Source] = e.Amount
		report.TotalCollected += e.Amount
		c.hooks.OnCollected(e.Source, e.Amount)
	}

	c.logger.Info("revenue collection finished",
		zap.Float64("total_collected", report.TotalCollected),
		zap.Int("failed_sources", len(report.FailedSources)),
	)

	if err := c.ledger.AppendCollection(report); err != nil {
		// Best effort: the cycle's numbers are still returned to the caller.
		c.logger.Error("failed to append collection report", zap.Error(err))
	}

	return report
}
