package publish

import (
	"context"

	"go.uber.org/zap"

	"github.com/techreviewhub/automation/internal/domain"
)

// LogHook records the publication in the log, standing in for the homepage
// update step of the publishing pipeline.
type LogHook struct {
	logger *zap.Logger
}

func NewLogHook(logger *zap.Logger) *LogHook {
	return &LogHook{logger: logger}
}

func (h *LogHook) Name() string { return "log" }

func (h *LogHook) Published(_ context.Context, job domain.ContentJob, filename string) error {
	h.logger.Info("homepage update queued",
		zap.String("kind", string(job.Kind)),
		zap.String("title", job.Title),
		zap.String("file", filename),
	)
	return nil
}

var _ Hook = (*LogHook)(nil)
