package artifact_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/techreviewhub/automation/internal/artifact"
	"github.com/techreviewhub/automation/internal/domain"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Apple HomePod Mini", "apple-homepod-mini"},
		{"Amazon Echo Dot (5th Gen)", "amazon-echo-dot-5th-gen"},
		{"Smart Home Security Systems: Complete Buyer's Guide 2025", "smart-home-security-systems-complete-buyer's-guide-2025"},
		{"Alexa & Google Assistant Compared", "alexa-and-google-assistant-compared"},
		{"Is a Smart Thermostat Worth It?", "is-a-smart-thermostat-worth-it"},
	}
	for _, tc := range tests {
		if got := artifact.Slug(tc.in); got != tc.want {
			t.Errorf("Slug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFilename(t *testing.T) {
	if got := artifact.Filename(domain.KindReview, "Apple HomePod Mini"); got != "review-apple-homepod-mini.html" {
		t.Fatalf("review filename: got %q", got)
	}
	if got := artifact.Filename(domain.KindArticle, "Best Smart Speakers"); got != "blog-best-smart-speakers.html" {
		t.Fatalf("article filename: got %q", got)
	}
}

// The same job always produces the same filename, so a retried job
// overwrites its own artifact instead of accumulating duplicates.
func TestStore_SaveOverwrites(t *testing.T) {
	dir := t.TempDir()
	s := artifact.NewStore(dir)

	if err := s.Save("review-x.html", "first"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save("review-x.html", "second"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "review-x.html"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "second" {
		t.Fatalf("expected overwritten content, got %q", data)
	}

	names, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(names) != 1 {
		t.Fatalf("expected exactly one artifact, got %v", names)
	}
}

func TestStore_ListMissingDir(t *testing.T) {
	s := artifact.NewStore(filepath.Join(t.TempDir(), "nope"))
	names, err := s.List()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected no artifacts, got %v", names)
	}
}
