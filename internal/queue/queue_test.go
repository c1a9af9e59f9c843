package queue_test

import (
	"path/filepath"
	"testing"

	"github.com/techreviewhub/automation/internal/domain"
	"github.com/techreviewhub/automation/internal/queue"
)

func job(title string) domain.ContentJob {
	return domain.ContentJob{ID: title, Kind: domain.KindReview, Title: title}
}

func newStore(t *testing.T) *queue.Store {
	t.Helper()
	s, err := queue.Load(filepath.Join(t.TempDir(), "queue.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestStore_FIFOOrder(t *testing.T) {
	s := newStore(t)

	for _, title := range []string{"a", "b", "c"} {
		s.PushBack(job(title))
	}

	for _, want := range []string{"a", "b", "c"} {
		got, ok := s.PopFront()
		if !ok {
			t.Fatalf("expected item %q, queue empty", want)
		}
		if got.Title != want {
			t.Fatalf("expected %q, got %q", want, got.Title)
		}
	}

	if _, ok := s.PopFront(); ok {
		t.Fatal("expected empty queue after draining")
	}
}

// A failed job is reinserted at the front so the next cycle retries it
// before any originally-later item; the rest keep their relative order.
func TestStore_PushFrontAfterFailure(t *testing.T) {
	s := newStore(t)
	s.PushBack(job("a"))
	s.PushBack(job("b"))
	s.PushBack(job("c"))

	failed, _ := s.PopFront()
	s.PushFront(failed)

	if s.Len() != 3 {
		t.Fatalf("item count changed across a failed run: got %d", s.Len())
	}

	items := s.Items()
	for i, want := range []string{"a", "b", "c"} {
		if items[i].Title != want {
			t.Fatalf("position %d: expected %q, got %q", i, want, items[i].Title)
		}
	}
}

func TestStore_PeekDoesNotRemove(t *testing.T) {
	s := newStore(t)
	s.PushBack(job("a"))

	if got, ok := s.PeekFront(); !ok || got.Title != "a" {
		t.Fatalf("peek: got %v ok=%v", got, ok)
	}
	if s.Len() != 1 {
		t.Fatalf("peek removed the item: len=%d", s.Len())
	}
}

func TestStore_PersistLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.json")
	s, err := queue.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.PushBack(domain.ContentJob{
		ID:      "1",
		Kind:    domain.KindReview,
		Title:   "Apple HomePod Mini",
		Product: &domain.Product{Name: "Apple HomePod Mini", Price: "99.99", Features: []string{"Siri"}},
	})
	s.PushBack(domain.ContentJob{
		ID:    "2",
		Kind:  domain.KindArticle,
		Title: "Best Smart Speakers",
		Topic: &domain.Topic{Title: "Best Smart Speakers", Keywords: []string{"speakers"}},
	})

	if err := s.Persist(); err != nil {
		t.Fatalf("persist: %v", err)
	}

	loaded, err := queue.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := s.Items()
	got := loaded.Items()
	if len(got) != len(want) {
		t.Fatalf("expected %d items after reload, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].Title != want[i].Title || got[i].Kind != want[i].Kind {
			t.Fatalf("item %d differs after reload: want %+v, got %+v", i, want[i], got[i])
		}
	}
	if got[0].Product == nil || got[0].Product.Price != "99.99" {
		t.Fatal("product payload lost in round trip")
	}
	if got[1].Topic == nil || len(got[1].Topic.Keywords) != 1 {
		t.Fatal("topic payload lost in round trip")
	}
}

func TestStore_LoadMissingFile(t *testing.T) {
	s, err := queue.Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err != nil {
		t.Fatalf("missing file should yield an empty queue, got error: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty queue, got %d items", s.Len())
	}
}

func TestStore_PersistEmptyQueue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.json")
	s, _ := queue.Load(path)

	if err := s.Persist(); err != nil {
		t.Fatalf("persist empty: %v", err)
	}

	loaded, err := queue.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Len() != 0 {
		t.Fatalf("expected empty queue, got %d items", loaded.Len())
	}
}
