package handler

import (
	"net/http"

	"github.com/techreviewhub/automation/internal/queue"
)

// QueueHandler serves a human-readable snapshot of every durable queue.
// Raw Prometheus gauges are available at /metrics and are separate from
// this endpoint.
type QueueHandler struct {
	queues map[string]*queue.Store
}

func NewQueueHandler(queues map[string]*queue.Store) *QueueHandler {
	return &QueueHandler{queues: queues}
}

type queueSnapshot struct {
	Depth int      `json:"depth"`
	Head  string   `json:"head,omitempty"`
	Jobs  []string `json:"jobs"`
}

// Depths handles GET /queues
func (h *QueueHandler) Depths(w http.ResponseWriter, r *http.Request) {
	out := make(map[string]queueSnapshot, len(h.queues))
	for name, q := range h.queues {
		snap := queueSnapshot{Depth: q.Len(), Jobs: []string{}}
		for _, job := range q.Items() {
			snap.Jobs = append(snap.Jobs, job.Title)
		}
		if len(snap.Jobs) > 0 {
			snap.Head = snap.Jobs[0]
		}
		out[name] = snap
	}
	respondJSON(w, http.StatusOK, out)
}
