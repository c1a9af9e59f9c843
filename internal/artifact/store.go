// Package artifact persists generated site content under deterministic
// names, so re-running a job overwrites its own output instead of
// accumulating duplicates.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/techreviewhub/automation/internal/domain"
)

// Store writes artifacts into a flat directory with atomic replace.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Filename derives the artifact name from the job's kind and title:
// review-<slug>.html or blog-<slug>.html.
func Filename(kind domain.JobKind, title string) string {
	prefix := "review"
	if kind == domain.KindArticle {
		prefix = "blog"
	}
	return fmt.Sprintf("%s-%s.html", prefix, Slug(title))
}

// Slug lower-cases the title, replaces spaces with dashes, strips
// parentheses and punctuation that has no place in a filename, and spells
// out ampersands.
func Slug(title string) string {
	s := strings.ToLower(title)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "&", "and")
	for _, cut := range []string{"(", ")", ":", "?"} {
		s = strings.ReplaceAll(s, cut, "")
	}
	return s
}

// Save writes content under name via a temp file and rename.
func (s *Store) Save(name, content string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace artifact: %w", err)
	}
	return nil
}

// Dir returns the artifact directory; used by the health and backup triggers.
func (s *Store) Dir() string {
	return s.dir
}

// List returns the names of all stored artifacts.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read artifact dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
