// Package queue implements the durable FIFO work queue backing content
// generation. The full ordered sequence round-trips to a JSON-array file:
// loaded at startup, rewritten after every mutation. Rewrites go through a
// temp file and rename so a crash mid-write cannot corrupt durable state.
package queue

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/techreviewhub/automation/internal/domain"
)

// Store is a durable double-ended queue of content jobs. Processing is
// single-threaded, but the admin endpoint reads depths from another
// goroutine, so mutations and reads are guarded by a mutex.
type Store struct {
	mu    sync.Mutex
	path  string
	items []domain.ContentJob
}

// Load reads the queue file at path. A missing file yields an empty queue;
// the caller may seed it and Persist.
func Load(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read queue file: %w", err)
	}

	if err := json.Unmarshal(data, &s.items); err != nil {
		return nil, fmt.Errorf("decode queue file %s: %w", path, err)
	}
	return s, nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// PeekFront returns the next job without removing it.
func (s *Store) PeekFront() (domain.ContentJob, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return domain.ContentJob{}, false
	}
	return s.items[0], true
}

// PopFront removes and returns the next job. The job is now in flight and
// must be pushed back to the front if processing fails.
func (s *Store) PopFront() (domain.ContentJob, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return domain.ContentJob{}, false
	}
	job := s.items[0]
	s.items = s.items[1:]
	return job, true
}

// PushFront reinserts a failed job at the head so the next cycle retries it
// before any originally-later item. Recency-biased retry, not fairness.
func (s *Store) PushFront(job domain.ContentJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]domain.ContentJob{job}, s.items...)
}

// PushBack appends a job; used for replenishment only.
func (s *Store) PushBack(job domain.ContentJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, job)
}

// Items returns a snapshot copy of the queued jobs in order.
func (s *Store) Items() []domain.ContentJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ContentJob, len(s.items))
	copy(out, s.items)
	return out
}

// Persist rewrites the whole queue file atomically (write temp, then rename).
func (s *Store) Persist() error {
	s.mu.Lock()
	items := s.items
	if items == nil {
		items = []domain.ContentJob{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("encode queue: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create queue dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp queue file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp queue file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp queue file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace queue file: %w", err)
	}
	return nil
}

// Path returns the backing file path; used by the backup trigger.
func (s *Store) Path() string {
	return s.path
}
