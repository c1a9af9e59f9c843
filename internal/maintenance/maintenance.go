// Package maintenance holds the housekeeping triggers: a daily health check
// over the queues and artifact store, and a weekly backup of everything the
// system would need to rebuild its state.
package maintenance

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/techreviewhub/automation/internal/artifact"
	"github.com/techreviewhub/automation/internal/queue"
)

// queue depths below these counts trigger a replenishment warning
const (
	lowReviewQueue  = 5
	lowArticleQueue = 3
)

// one gigabyte, the free-space floor for the health check
const minFreeBytes = 1 << 30

// Checker warns about conditions an operator should act on before they
// break a scheduled cycle. It never fails the trigger: findings surface as
// warning logs only.
type Checker struct {
	reviews   *queue.Store
	articles  *queue.Store
	artifacts *artifact.Store
	logger    *zap.Logger
}

func NewChecker(reviews, articles *queue.Store, artifacts *artifact.Store, logger *zap.Logger) *Checker {
	return &Checker{reviews: reviews, articles: articles, artifacts: artifacts, logger: logger}
}

// Run performs one health check pass.
func (c *Checker) Run(_ context.Context) error {
	c.logger.Info("running health check")

	if n := c.reviews.Len(); n < lowReviewQueue {
		c.logger.Warn("reviews queue running low", zap.Int("remaining", n))
	}
	if n := c.articles.Len(); n < lowArticleQueue {
		c.logger.Warn("articles queue running low", zap.Int("remaining", n))
	}

	var stat unix.Statfs_t
	if err := unix.Statfs(".", &stat); err != nil {
		c.logger.Warn("could not check disk space", zap.Error(err))
	} else if free := stat.Bavail * uint64(stat.Bsize); free < minFreeBytes {
		c.logger.Warn("low disk space", zap.Uint64("free_bytes", free))
	}

	if _, err := os.Stat(c.artifacts.Dir()); os.IsNotExist(err) {
		c.logger.Warn("artifact directory missing", zap.String("dir", c.artifacts.Dir()))
	}

	c.logger.Info("health check completed")
	return nil
}

// Backup copies all artifacts and queue files into a timestamped directory.
type Backup struct {
	artifacts  *artifact.Store
	queueFiles []string
	backupDir  string
	logger     *zap.Logger
}

func NewBackup(artifacts *artifact.Store, queueFiles []string, backupDir string, logger *zap.Logger) *Backup {
	return &Backup{artifacts: artifacts, queueFiles: queueFiles, backupDir: backupDir, logger: logger}
}

// Run creates one backup snapshot.
func (b *Backup) Run(_ context.Context) error {
	dir := filepath.Join(b.backupDir, "backup_"+time.Now().UTC().Format("20060102_150405"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}

	names, err := b.artifacts.List()
	if err != nil {
		return fmt.Errorf("list artifacts: %w", err)
	}
	for _, name := range names {
		src := filepath.Join(b.artifacts.Dir(), name)
		if err := copyFile(src, filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("backup artifact %s: %w", name, err)
		}
	}

	for _, path := range b.queueFiles {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		if err := copyFile(path, filepath.Join(dir, filepath.Base(path))); err != nil {
			return fmt.Errorf("backup queue file %s: %w", path, err)
		}
	}

	b.logger.Info("backup created",
		zap.String("dir", dir),
		zap.Int("artifacts", len(names)),
	)
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
