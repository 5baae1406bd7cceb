package movestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each document as a JSON value under moves:doc:<id>.
// Every write refreshes the TTL; a zero TTL keeps documents forever.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// DialRedis parses a redis:// URL and pings the server.
func DialRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, errors.New("REDIS_URL is required")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func (s *RedisStore) keyDoc(id string) string { return "moves:doc:" + strings.TrimSpace(id) }

func (s *RedisStore) Create(ctx context.Context, text string) (*Document, error) {
	doc := &Document{ID: newID(), Text: text, UpdatedAt: now()}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	ok, err := s.rdb.SetNX(ctx, s.keyDoc(doc.ID), raw, s.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("create document: id %s already taken", doc.ID)
	}
	return doc, nil
}

func (s *RedisStore) Load(ctx context.Context, id string) (*Document, error) {
	raw, err := s.rdb.Get(ctx, s.keyDoc(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", id, err)
	}
	return &doc, nil
}

func (s *RedisStore) Save(ctx context.Context, id, text string) error {
	doc := Document{ID: strings.TrimSpace(id), Text: text, UpdatedAt: now()}
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	ok, err := s.rdb.SetXX(ctx, s.keyDoc(id), raw, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := s.rdb.Del(ctx, s.keyDoc(id)).Result()
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
