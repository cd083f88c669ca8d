package worker

// Jobs that exhaust their retries are parked on a per-queue Redis list
// (dlq:<queue>) so a failed PDF render or mail send can be inspected and
// replayed by hand without losing the payload.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const dlqPrefix = "dlq:"

// FailedJob is the envelope stored on a dead letter list.
type FailedJob struct {
	Queue    string          `json:"queue"`
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Error    string          `json:"error"`
	Attempts int             `json:"attempts"`
	FailedAt time.Time       `json:"failed_at"`
}

// deadLetter parks a job that gave up retrying. Best effort: a Redis error
// here is logged and swallowed, the job is already lost to the main queue.
func deadLetter(ctx context.Context, rdb *redis.Client, queue, jobType string, payload json.RawMessage, reason string, attempts int) {
	entry := FailedJob{
		Queue:    queue,
		Type:     jobType,
		Payload:  payload,
		Error:    reason,
		Attempts: attempts,
		FailedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: marshal failed job")
		return
	}
	if err := rdb.LPush(ctx, dlqPrefix+queue, data).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: push failed job")
		return
	}
	log.Warn().
		Str("queue", queue).
		Str("type", jobType).
		Str("error", reason).
		Int("attempts", attempts).
		Msg("dlq: job dead-lettered")
}

// DeadLetterCount reports how many jobs are parked for a queue.
func DeadLetterCount(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, dlqPrefix+queue).Result()
}
