// Package cache holds the Redis read-through cache for quiz sets.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/quiz-history-api/internal/domain/entity"
	"github.com/oksasatya/quiz-history-api/pkg/helpers"
)

const keyPrefix = "quizset:"

func Key(id string) string { return keyPrefix + id }

type QuizSetCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewQuizSetCache(rdb redis.Cmdable, ttl time.Duration) *QuizSetCache {
	return &QuizSetCache{rdb: rdb, ttl: ttl}
}

func (c *QuizSetCache) Get(ctx context.Context, id string) (*entity.QuizSet, bool, error) {
	var qs entity.QuizSet
	hit, err := helpers.RedisGetJSON(ctx, c.rdb, Key(id), &qs)
	if err != nil || !hit {
		return nil, false, err
	}
	return &qs, true, nil
}

// Fill caches qs unless an entry already exists.
func (c *QuizSetCache) Fill(ctx context.Context, qs *entity.QuizSet) error {
	_, err := helpers.RedisSetNXJSON(ctx, c.rdb, Key(qs.ID), qs, c.ttl)
	return err
}

// Set overwrites the entry. Writers call it with the set the store returned.
func (c *QuizSetCache) Set(ctx context.Context, qs *entity.QuizSet) error {
	return helpers.RedisSetJSON(ctx, c.rdb, Key(qs.ID), qs, c.ttl)
}

func (c *QuizSetCache) Invalidate(ctx context.Context, id string) error {
	return helpers.RedisDel(ctx, c.rdb, Key(id))
}
