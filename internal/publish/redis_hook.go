package publish

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/techreviewhub/automation/internal/domain"
)

// RedisHook announces publications on a Redis pub/sub channel for any
// downstream consumer (site rebuilder, social poster). Delivery is best
// effort by nature of pub/sub.
type RedisHook struct {
	client  *redis.Client
	channel string
}

func NewRedisHook(addr, password, channel string) *RedisHook {
	return &RedisHook{
		client:  redis.NewClient(&redis.Options{Addr: addr, Password: password}),
		channel: channel,
	}
}

type publishedEvent struct {
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Filename string `json:"filename"`
}

func (h *RedisHook) Name() string { return "redis" }

func (h *RedisHook) Published(ctx context.Context, job domain.ContentJob, filename string) error {
	payload, err := json.Marshal(publishedEvent{
		Kind:     string(job.Kind),
		Title:    job.Title,
		Filename: filename,
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := h.client.Publish(ctx, h.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

func (h *RedisHook) Close() error {
	return h.client.Close()
}

var _ Hook = (*RedisHook)(nil)
