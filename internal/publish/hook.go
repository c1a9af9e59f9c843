// Package publish notifies downstream publication systems that a new
// artifact exists. Hooks are fire-and-forget: a hook failure is logged by
// the caller and never rolls back the job that produced the artifact.
package publish

import (
	"context"

	"github.com/techreviewhub/automation/internal/domain"
)

// Hook is invoked after an artifact has been persisted.
type Hook interface {
	Name() string
	Published(ctx context.Context, job domain.ContentJob, filename string) error
}
