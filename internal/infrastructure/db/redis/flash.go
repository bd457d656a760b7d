package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/99minutos/user-console/internal/core/domain"
)

// flashTTL drops notifications nobody came back to read.
const flashTTL = 5 * time.Minute

// FlashQueue holds notifications of one browser until the next page render.
// It implements ports.Notifier.
type FlashQueue struct {
	client    redis.Cmdable
	consoleID string
	log       zerolog.Logger
}

func NewFlashQueue(client redis.Cmdable, consoleID string, log zerolog.Logger) *FlashQueue {
	return &FlashQueue{client: client, consoleID: consoleID, log: log}
}

// Notify appends n. Failures are logged; a lost notification never fails
// the operation that produced it.
func (q *FlashQueue) Notify(ctx context.Context, n domain.Notification) {
	raw, err := json.Marshal(n)
	if err != nil {
		q.log.Warn().Err(err).Msg("flash encode failed")
		return
	}
	pipe := q.client.TxPipeline()
	pipe.RPush(ctx, q.key(), raw)
	pipe.Expire(ctx, q.key(), flashTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		q.log.Warn().Err(err).Str("console_id", q.consoleID).Msg("flash push failed")
	}
}

// Drain returns and removes every queued notification, oldest first.
func (q *FlashQueue) Drain(ctx context.Context) ([]domain.Notification, error) {
	pipe := q.client.TxPipeline()
	lrange := pipe.LRange(ctx, q.key(), 0, -1)
	pipe.Del(ctx, q.key())
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("flash drain: %w", err)
	}

	items := lrange.Val()
	out := make([]domain.Notification, 0, len(items))
	for _, item := range items {
		var n domain.Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			q.log.Warn().Err(err).Msg("flash decode failed")
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (q *FlashQueue) key() string {
	return keyspace(q.consoleID, "flash")
}
