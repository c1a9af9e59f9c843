package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/techreviewhub/automation/internal/api"
	"github.com/techreviewhub/automation/internal/artifact"
	"github.com/techreviewhub/automation/internal/config"
	"github.com/techreviewhub/automation/internal/domain"
	"github.com/techreviewhub/automation/internal/exchange"
	"github.com/techreviewhub/automation/internal/ledger"
	"github.com/techreviewhub/automation/internal/maintenance"
	"github.com/techreviewhub/automation/internal/metrics"
	"github.com/techreviewhub/automation/internal/provider"
	"github.com/techreviewhub/automation/internal/publish"
	"github.com/techreviewhub/automation/internal/queue"
	"github.com/techreviewhub/automation/internal/ratelimiter"
	"github.com/techreviewhub/automation/internal/revenue"
	"github.com/techreviewhub/automation/internal/runner"
	"github.com/techreviewhub/automation/internal/scheduler"
	"github.com/techreviewhub/automation/internal/transfer"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync() //nolint:errcheck

	// ---- configuration ----
	// A missing credential is fatal here, before any scheduled work runs.
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	a, err := newApp(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize", zap.Error(err))
	}

	a.menu()
}

// app holds the wired components shared by the scheduler loop and the
// operator menu.
type app struct {
	cfg    *config.Config
	logger *zap.Logger

	reviews  *queue.Store
	articles *queue.Store
	ledger   *ledger.Ledger

	reviewRunner  *runner.JobRunner
	articleRunner *runner.JobRunner
	collector     *revenue.Collector
	executor      *transfer.Executor
	checker       *maintenance.Checker
	backup        *maintenance.Backup

	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

func newApp(cfg *config.Config, logger *zap.Logger) (*app, error) {
	led := ledger.New(cfg.DataDir)

	// ---- durable queues ----
	reviews, err := queue.Load(filepath.Join(cfg.DataDir, "products_queue.json"))
	if err != nil {
		return nil, fmt.Errorf("load reviews queue: %w", err)
	}
	articles, err := queue.Load(filepath.Join(cfg.DataDir, "topics_queue.json"))
	if err != nil {
		return nil, fmt.Errorf("load articles queue: %w", err)
	}
	if err := seedIfEmpty(reviews, defaultReviewJobs()); err != nil {
		return nil, fmt.Errorf("seed reviews queue: %w", err)
	}
	if err := seedIfEmpty(articles, defaultArticleJobs()); err != nil {
		return nil, fmt.Errorf("seed articles queue: %w", err)
	}

	// ---- core dependencies ----
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	apis := append([]string{"content", "payout", "amazon_associates", "paypal"}, cfg.AffiliatePrograms...)
	limiter := ratelimiter.New(cfg.APIRateLimit, apis...)

	prov := provider.NewHTTPProvider(cfg.ContentBaseURL, cfg.ContentAPIKey, cfg.ContentTimeout)
	artifacts := artifact.NewStore(cfg.ArtifactDir)

	hooks := []publish.Hook{publish.NewLogHook(logger)}
	if cfg.RedisAddr != "" {
		hooks = append(hooks, publish.NewRedisHook(cfg.RedisAddr, cfg.RedisPassword, cfg.PublishChannel))
	}

	// ---- revenue pipeline ----
	sources := []revenue.Source{
		revenue.NewAmazonSource(cfg.AmazonAccessKey, cfg.AmazonSecretKey, cfg.AmazonAssociateTag, cfg.AmazonBaseURL, cfg.HTTPTimeout),
		revenue.NewPayPalSource(cfg.PayPalClientID, cfg.PayPalClientSecret, cfg.PayPalBaseURL, cfg.SourceCurrency, cfg.HTTPTimeout),
	}
	for _, program := range cfg.AffiliatePrograms {
		sources = append(sources, revenue.NewAffiliateSource(program, cfg.AffiliateAPIKey, cfg.AffiliateBaseURL, cfg.HTTPTimeout))
	}

	onCollected, onSourceFailed := m.CollectorHooks()
	collector := revenue.NewCollector(sources, led, limiter, cfg.PayoutDestination, cfg.SourceCurrency, logger, revenue.Hooks{
		OnCollected:    onCollected,
		OnSourceFailed: onSourceFailed,
	})

	converter := exchange.NewConverter(
		exchange.NewHTTPRateService(cfg.RateBaseURL, cfg.HTTPTimeout),
		cfg.FallbackRate,
		logger,
	)

	momo := transfer.NewMomoClient(cfg.MomoBaseURL, cfg.MomoAPIKey, cfg.MomoAPISecret, cfg.MomoSubscriptionKey, cfg.MomoEnvironment, cfg.HTTPTimeout)
	executor := transfer.NewExecutor(momo, converter, led, limiter, transfer.Policy{
		Destination:    cfg.PayoutDestination,
		SourceCurrency: cfg.SourceCurrency,
		PayoutCurrency: cfg.PayoutCurrency,
		Threshold:      cfg.TransferThreshold,
		VerifyDelay:    cfg.VerifyDelay,
	}, logger, m.TransferHook())

	// ---- job runners ----
	onGenerated, onFailed := m.RunnerHooks()
	runnerHooks := runner.Hooks{OnGenerated: onGenerated, OnFailed: onFailed}
	reviewRunner := runner.New("reviews", reviews, prov, artifacts, hooks, limiter, logger, runnerHooks)
	articleRunner := runner.New("articles", articles, prov, artifacts, hooks, limiter, logger, runnerHooks)

	return &app{
		cfg:           cfg,
		logger:        logger,
		reviews:       reviews,
		articles:      articles,
		ledger:        led,
		reviewRunner:  reviewRunner,
		articleRunner: articleRunner,
		collector:     collector,
		executor:      executor,
		checker:       maintenance.NewChecker(reviews, articles, artifacts, logger),
		backup:        maintenance.NewBackup(artifacts, []string{reviews.Path(), articles.Path()}, cfg.BackupDir, logger),
		registry:      reg,
		metrics:       m,
	}, nil
}

func seedIfEmpty(q *queue.Store, jobs []domain.ContentJob) error {
	if q.Len() > 0 {
		return nil
	}
	for _, j := range jobs {
		q.PushBack(j)
	}
	return q.Persist()
}

// ---- trigger callbacks ----

func (a *app) runReviewJob(ctx context.Context) error {
	err := a.reviewRunner.RunOne(ctx)
	a.metrics.QueueDepth.WithLabelValues("reviews").Set(float64(a.reviews.Len()))
	return err
}

func (a *app) runArticleJob(ctx context.Context) error {
	err := a.articleRunner.RunOne(ctx)
	a.metrics.QueueDepth.WithLabelValues("articles").Set(float64(a.articles.Len()))
	return err
}

// runRevenueCycle is the biweekly collect → convert → transfer → verify →
// record sequence. The steps are strictly sequential.
func (a *app) runRevenueCycle(ctx context.Context) error {
	report := a.collector.CollectAll(ctx)
	if report.TotalCollected <= 0 {
		a.logger.Info("no revenue to collect this period")
		return nil
	}
	if _, err := a.executor.Transfer(ctx, report.TotalCollected); err != nil {
		return fmt.Errorf("transfer: %w", err)
	}
	return nil
}

// ---- scheduler mode ----

func (a *app) runScheduler() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched := scheduler.New(scheduler.SystemClock(), a.cfg.PollInterval, a.cfg.FaultBackoff, a.logger)
	sched.Register("daily-review", scheduler.DailyAt(9, 0), a.runReviewJob)
	sched.Register("daily-health-check", scheduler.DailyAt(12, 0), a.checker.Run)
	sched.Register("weekly-article", scheduler.WeeklyOn(time.Monday, 10, 0), a.runArticleJob)
	sched.Register("weekly-backup", scheduler.WeeklyOn(time.Sunday, 23, 0), a.backup.Run)
	sched.Register("biweekly-revenue", scheduler.BiweeklyAt(9, 0), a.runRevenueCycle)

	// ---- admin HTTP server (read-only) ----
	router := api.NewRouter(map[string]*queue.Store{
		"reviews":  a.reviews,
		"articles": a.articles,
	}, a.ledger, a.registry, a.logger)
	srv := &http.Server{
		Addr:         a.cfg.AdminAddr,
		Handler:      router,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
	}
	go func() {
		a.logger.Info("admin server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("admin server error", zap.Error(err))
		}
	}()

	// Blocks until SIGINT/SIGTERM cancels ctx.
	sched.Run(ctx)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("admin server shutdown error", zap.Error(err))
	}

	a.logger.Info("automation stopped cleanly")
}

// ---- operator menu ----

func (a *app) menu() {
	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Println()
		fmt.Println("TechReview Hub Automation")
		fmt.Println("=========================")
		fmt.Println("1. Start scheduler")
		fmt.Println("2. Generate product review now")
		fmt.Println("3. Generate blog article now")
		fmt.Println("4. Run revenue collection cycle now")
		fmt.Println("5. Show queue contents")
		fmt.Println("6. Exit")
		fmt.Print("\nEnter your choice (1-6): ")

		if !sc.Scan() {
			return
		}

		switch strings.TrimSpace(sc.Text()) {
		case "1":
			fmt.Println("\nStarting scheduler, press Ctrl+C to stop")
			a.runScheduler()
			return
		case "2":
			a.runNow(a.runReviewJob)
		case "3":
			a.runNow(a.runArticleJob)
		case "4":
			a.runNow(a.runRevenueCycle)
		case "5":
			a.showQueues()
		case "6":
			return
		default:
			fmt.Println("Invalid choice")
		}
	}
}

// runNow executes one trigger callback outside the scheduler loop. Failures
// surface as log entries only, matching the scheduled path.
func (a *app) runNow(fn func(context.Context) error) {
	if err := fn(context.Background()); err != nil {
		a.logger.Error("manual run failed", zap.Error(err))
	}
}

func (a *app) showQueues() {
	print3 := func(name string, q *queue.Store) {
		items := q.Items()
		fmt.Printf("\n%s in queue: %d\n", name, len(items))
		for i, job := range items {
			if i == 3 {
				fmt.Printf("  ... and %d more\n", len(items)-3)
				break
			}
			fmt.Printf("  %d. %s\n", i+1, job.Title)
		}
	}
	print3("Products", a.reviews)
	print3("Topics", a.articles)
}
