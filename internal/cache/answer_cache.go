package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"rag-assistant/internal/model"
)

// AnswerCache stores detailed answers keyed by a hash of the question.
// Lookups and writes are best-effort; callers treat errors as cache misses.
type AnswerCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewAnswerCache(client *redisv9.Client, ttl time.Duration) *AnswerCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AnswerCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *AnswerCache) Get(ctx context.Context, question string) (*model.AnswerResult, bool, error) {
	raw, err := c.client.Get(ctx, answerKey(question)).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get answer failed: %w", err)
	}

	var result model.AnswerResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached answer failed: %w", err)
	}
	return &result, true, nil
}

func (c *AnswerCache) Set(ctx context.Context, question string, result *model.AnswerResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal answer cache failed: %w", err)
	}
	if err := c.client.Set(ctx, answerKey(question), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set answer failed: %w", err)
	}
	return nil
}

func answerKey(question string) string {
	sum := sha256.Sum256([]byte(question))
	return "rag:answer:" + hex.EncodeToString(sum[:])
}
