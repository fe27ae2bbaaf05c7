package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bistro-storefront/storefront-svc/internal/domain"
	"bistro-storefront/storefront-svc/internal/session"

	"github.com/redis/go-redis/v9"
)

const catalogKey = "catalog:menu"

var (
	ErrCacheMiss       = errors.New("cache miss")
	ErrSessionNotFound = errors.New("session not found")
	ErrSubmitInFlight  = errors.New("a submission is already in progress")
)

const maxUpdateRetries = 5

type RedisCache struct {
	Client     *redis.Client
	CatalogTTL time.Duration
	SessionTTL time.Duration
	LockTTL    time.Duration
}

func NewRedisCache(client *redis.Client, catalogTTL, sessionTTL time.Duration) *RedisCache {
	return &RedisCache{
		Client:     client,
		CatalogTTL: catalogTTL,
		SessionTTL: sessionTTL,
		LockTTL:    30 * time.Second,
	}
}

func sessionKey(id string) string {
	return "session:" + id
}

func submitLockKey(id string) string {
	return "session:" + id + ":busy"
}

func (c *RedisCache) GetCatalog(ctx context.Context) ([]domain.FoodItem, error) {
	data, err := c.Client.Get(ctx, catalogKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var items []domain.FoodItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal catalog failed: %w", err)
	}
	return items, nil
}

func (c *RedisCache) SetCatalog(ctx context.Context, items []domain.FoodItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal catalog failed: %w", err)
	}
	if err := c.Client.Set(ctx, catalogKey, data, c.CatalogTTL).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *RedisCache) InvalidateCatalog(ctx context.Context) error {
	return c.Client.Del(ctx, catalogKey).Err()
}

func (c *RedisCache) LoadSession(ctx context.Context, id string) (*session.Session, error) {
	return c.loadSession(ctx, c.Client, id)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (c *RedisCache) loadSession(ctx context.Context, client getter, id string) (*session.Session, error) {
	data, err := client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	var s session.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session failed: %w", err)
	}
	return &s, nil
}

func (c *RedisCache) SaveSession(ctx context.Context, s *session.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session failed: %w", err)
	}
	if err := c.Client.Set(ctx, sessionKey(s.ID), data, c.SessionTTL).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// UpdateSession applies fn to the stored session and writes it back under
// WATCH, retrying when another request changed the session in between. If fn
// returns an error nothing is written and that error is returned.
func (c *RedisCache) UpdateSession(ctx context.Context, id string, fn func(*session.Session) error) (*session.Session, error) {
	key := sessionKey(id)
	var updated *session.Session

	txf := func(tx *redis.Tx) error {
		s, err := c.loadSession(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(s); err != nil {
			return err
		}
		data, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("marshal session failed: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, c.SessionTTL)
			return nil
		})
		if err == nil {
			updated = s
		}
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := c.Client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return updated, err
	}
	return nil, fmt.Errorf("update session %s: too much contention", id)
}

func (c *RedisCache) DeleteSession(ctx context.Context, id string) error {
	if err := c.Client.Del(ctx, sessionKey(id), submitLockKey(id)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// AcquireSubmit sets the session's busy flag. It fails with ErrSubmitInFlight
// while another order or reservation submission holds it.
func (c *RedisCache) AcquireSubmit(ctx context.Context, id string) error {
	ok, err := c.Client.SetNX(ctx, submitLockKey(id), time.Now().Unix(), c.LockTTL).Result()
	if err != nil {
		return fmt.Errorf("redis setnx failed: %w", err)
	}
	if !ok {
		return ErrSubmitInFlight
	}
	return nil
}

func (c *RedisCache) ReleaseSubmit(ctx context.Context, id string) error {
	return c.Client.Del(ctx, submitLockKey(id)).Err()
}
