package bt

import (
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v7"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RedisRecorder mirrors History events to a Redis list, one JSON-encoded
// HistoryEvent per RPUSH. It is write-only and best-effort: a replay tool
// tails the list for audit/debugging, but nothing in the core ever reads it
// back to reconstruct tree state (spec Non-goals exclude a persistence
// format beyond the attribute-map contract; this is an operational log,
// not a save format).
type RedisRecorder struct {
	client    *redis.Client
	streamKey string
	log       logrus.FieldLogger
}

// NewRedisRecorder creates a Recorder that appends to the list
// "bt:history:<sessionID>", keyed per editor session so concurrent
// inspector runs against one Redis instance don't interleave.
func NewRedisRecorder(client *redis.Client, sessionID uuid.UUID) *RedisRecorder {
	return &RedisRecorder{
		client:    client,
		streamKey: fmt.Sprintf("bt:history:%s", sessionID),
		log:       logrus.StandardLogger().WithField("component", "redis-recorder"),
	}
}

// Record implements Recorder.
func (r *RedisRecorder) Record(event HistoryEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		r.log.WithError(err).Warn("failed to encode history event")
		return
	}

	if err := r.client.RPush(r.streamKey, payload).Err(); err != nil {
		r.log.WithError(err).Warn("failed to append history event to redis")
	}
}

// ReplayRedisHistory reads back every event appended under sessionID, for
// an external debugging/replay tool. The core never calls this itself.
func ReplayRedisHistory(client *redis.Client, sessionID uuid.UUID) ([]HistoryEvent, error) {
	key := fmt.Sprintf("bt:history:%s", sessionID)

	raw, err := client.LRange(key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("bt: replay history for %s: %w", sessionID, err)
	}

	events := make([]HistoryEvent, 0, len(raw))

	for _, r := range raw {
		var ev HistoryEvent
		if err := json.Unmarshal([]byte(r), &ev); err != nil {
			return nil, fmt.Errorf("bt: decode history event: %w", err)
		}

		events = append(events, ev)
	}

	return events, nil
}
