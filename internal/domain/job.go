package domain

import "time"

// JobKind distinguishes the two kinds of content the site publishes.
type JobKind string

const (
	KindReview  JobKind = "review"
	KindArticle JobKind = "article"
)

func (k JobKind) IsValid() bool {
	switch k {
	case KindReview, KindArticle:
		return true
	}
	return false
}

// Product is the payload of a review job.
type Product struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Price    string   `json:"price"`
	Brand    string   `json:"brand"`
	Features []string `json:"features"`
}

// Topic is the payload of an article job.
type Topic struct {
	Title    string   `json:"title"`
	Keywords []string `json:"keywords"`
}

// ContentJob is one pending unit of content-generation work. A job is owned
// exclusively by its queue; the runner takes it out while processing and
// pushes it back to the front if the run fails, so it is always either
// queued or in flight, never both.
type ContentJob struct {
	ID         string    `json:"id"`
	Kind       JobKind   `json:"kind"`
	Title      string    `json:"title"`
	Product    *Product  `json:"product,omitempty"`
	Topic      *Topic    `json:"topic,omitempty"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

func (j *ContentJob) Validate() error {
	if !j.Kind.IsValid() {
		return ErrInvalidJobKind
	}
	if j.Title == "" {
		return ErrInvalidJobTitle
	}
	return nil
}
