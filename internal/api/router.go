package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/techreviewhub/automation/internal/api/handler"
	apimw "github.com/techreviewhub/automation/internal/api/middleware"
	"github.com/techreviewhub/automation/internal/ledger"
	"github.com/techreviewhub/automation/internal/queue"
)

// NewRouter wires the read-only admin surface: liveness, Prometheus scrape,
// queue depth snapshots, and ledger history. Mutations happen only through
// the scheduler and the operator menu, never over HTTP.
func NewRouter(
	queues map[string]*queue.Store,
	led *ledger.Ledger,
	reg prometheus.Gatherer,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(apimw.RequestLogger(logger))

	qh := handler.NewQueueHandler(queues)
	lh := handler.NewLedgerHandler(led, logger)
	hh := handler.NewHealthHandler()

	r.Get("/healthz", hh.Health)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/queues", qh.Depths)
	r.Get("/ledger/collections", lh.Collections)
	r.Get("/ledger/transfers", lh.Transfers)

	return r
}
