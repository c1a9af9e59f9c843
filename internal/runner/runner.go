// Package runner executes one content job at a time against the durable
// queue: pop, generate, persist, notify. A failed job goes back to the
// front of its queue, so the next cycle retries it before anything newer.
package runner

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/techreviewhub/automation/internal/artifact"
	"github.com/techreviewhub/automation/internal/domain"
	"github.com/techreviewhub/automation/internal/provider"
	"github.com/techreviewhub/automation/internal/publish"
	"github.com/techreviewhub/automation/internal/queue"
	"github.com/techreviewhub/automation/internal/ratelimiter"
)

// limiter key for all content provider calls
const contentAPI = "content"

// Hooks carries metric callbacks injected by main. Optional (nil = no-op).
type Hooks struct {
	OnGenerated func(kind domain.JobKind)
	OnFailed    func(kind domain.JobKind)
}

// JobRunner pops jobs from one queue and turns them into persisted
// artifacts. One runner exists per queue (reviews, articles).
type JobRunner struct {
	name      string
	q         *queue.Store
	prov      provider.ContentProvider
	artifacts *artifact.Store
	hooks     []publish.Hook
	limiter   *ratelimiter.APILimiters
	logger    *zap.Logger
	metrics   Hooks
}

func New(
	name string,
	q *queue.Store,
	prov provider.ContentProvider,
	artifacts *artifact.Store,
	hooks []publish.Hook,
	limiter *ratelimiter.APILimiters,
	logger *zap.Logger,
	metrics Hooks,
) *JobRunner {
	if metrics.OnGenerated == nil {
		metrics.OnGenerated = func(domain.JobKind) {}
	}
	if metrics.OnFailed == nil {
		metrics.OnFailed = func(domain.JobKind) {}
	}
	return &JobRunner{
		name:      name,
		q:         q,
		prov:      prov,
		artifacts: artifacts,
		hooks:     hooks,
		limiter:   limiter,
		logger:    logger,
		metrics:   metrics,
	}
}

// RunOne processes the front job of the queue. An empty queue is a no-op,
// not an error. The queue file is persisted after every outcome, success or
// failure, so a crash mid-cycle loses at most the in-flight job's progress.
func (r *JobRunner) RunOne(ctx context.Context) error {
	job, ok := r.q.PopFront()
	if !ok {
		r.logger.Warn("no jobs in queue", zap.String("runner", r.name))
		return nil
	}

	log := r.logger.With(
		zap.String("runner", r.name),
		zap.String("job_id", job.ID),
		zap.String("title", job.Title),
	)
	log.Info("generating content")

	if err := r.limiter.Wait(ctx, contentAPI); err != nil {
		r.requeue(job, log)
		return fmt.Errorf("rate limiter: %w", err)
	}

	content, err := r.prov.Generate(ctx, job)
	if err != nil {
		log.Error("content provider failed, job returned to front of queue", zap.Error(err))
		r.requeue(job, log)
		r.metrics.OnFailed(job.Kind)
		return fmt.Errorf("generate content: %w", err)
	}

	filename := artifact.Filename(job.Kind, job.Title)
	if err := r.artifacts.Save(filename, content); err != nil {
		log.Error("artifact save failed, job returned to front of queue", zap.Error(err))
		r.requeue(job, log)
		r.metrics.OnFailed(job.Kind)
		return fmt.Errorf("save artifact: %w", err)
	}

	r.persist(log)
	log.Info("content generated", zap.String("file", filename))
	r.metrics.OnGenerated(job.Kind)

	// Publication hooks are fire-and-forget: a hook failure never rolls
	// back the job that produced the artifact.
	for _, h := range r.hooks {
		if err := h.Published(ctx, job, filename); err != nil {
			log.Warn("publication hook failed",
				zap.String("hook", h.Name()),
				zap.Error(err),
			)
		}
	}

	return nil
}

// requeue puts a failed job back at the front and persists the queue. The
// in-memory job is never dropped, even when the persist itself fails.
func (r *JobRunner) requeue(job domain.ContentJob, log *zap.Logger) {
	r.q.PushFront(job)
	r.persist(log)
}

func (r *JobRunner) persist(log *zap.Logger) {
	if err := r.q.Persist(); err != nil {
		log.Error("queue persistence failed", zap.Error(err))
	}
}
