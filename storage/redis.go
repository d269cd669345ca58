package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const authKeyPrefix = "clientSession:"

// RedisStore keeps the auth record in Redis, for deployments where the
// client runs on shared terminals and sessions must follow the operator
// between machines. The record is one JSON value under a single key, so
// save and clear stay matched-set just like the file backend.
type RedisStore struct {
	client  *redis.Client
	profile string
	ttl     time.Duration
}

// NewRedisStore pings the server before returning so a misconfigured
// address fails at startup rather than on first login. profile namespaces
// records when several operators share one Redis database.
func NewRedisStore(client *redis.Client, profile string, ttl time.Duration) (*RedisStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("storage: redis ping: %w", err)
	}
	return &RedisStore{client: client, profile: profile, ttl: ttl}, nil
}

func (s *RedisStore) authKey() string {
	return authKeyPrefix + s.profile
}

func (s *RedisStore) prefKey() string {
	return "clientPrefs:" + s.profile
}

func (s *RedisStore) SaveAuth(rec AuthRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("storage: marshal auth record: %w", err)
	}
	ctx := context.Background()
	if err := s.client.Set(ctx, s.authKey(), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("storage: save auth record: %w", err)
	}
	return nil
}

func (s *RedisStore) LoadAuth() (*AuthRecord, error) {
	ctx := context.Background()
	data, err := s.client.Get(ctx, s.authKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("storage: load auth record: %w", err)
	}
	var rec AuthRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("storage: unmarshal auth record: %w", err)
	}
	return &rec, nil
}

func (s *RedisStore) ClearAuth() error {
	return s.client.Del(context.Background(), s.authKey()).Err()
}

func (s *RedisStore) SaveLanguage(lang string) error {
	return s.client.Set(context.Background(), s.prefKey(), lang, 0).Err()
}

func (s *RedisStore) Language() (string, error) {
	lang, err := s.client.Get(context.Background(), s.prefKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("storage: load language: %w", err)
	}
	return lang, nil
}
