// Package cache: keyed cache dengan TTL. Pakai redis kalau tersedia,
// fallback ke memori proses kalau REDIS_ADDR kosong / redis mati.
package cache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// DeletePrefix menghapus semua key berawalan prefix (invalidasi list).
	DeletePrefix(ctx context.Context, prefix string) error
}

const keyPrefix = "schooldesk:"

// New memilih RedisStore kalau client != nil.
func New(client *redis.Client) Store {
	if client == nil {
		log.Info().Msg("[cache] redis not configured, using in-memory cache")
		return NewMemoryStore()
	}
	return &RedisStore{Client: client}
}

/* ===================== redis ===================== */

type RedisStore struct {
	Client *redis.Client
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.Client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return s.Client.Set(ctx, keyPrefix+key, val, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = keyPrefix + k
	}
	return s.Client.Del(ctx, full...).Err()
}

func (s *RedisStore) DeletePrefix(ctx context.Context, prefix string) error {
	iter := s.Client.Scan(ctx, 0, keyPrefix+prefix+"*", 100).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) == 0 {
		return nil
	}
	return s.Client.Del(ctx, batch...).Err()
}

/* ===================== memory ===================== */

type memItem struct {
	val []byte
	exp time.Time // zero = tanpa expiry
}

type MemoryStore struct {
	mu      sync.RWMutex
	items   map[string]memItem
	nowFunc func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]memItem), nowFunc: time.Now}
}

func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.nowFunc = now
	return s
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	it, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !it.exp.IsZero() && !s.nowFunc().Before(it.exp) {
		s.mu.Lock()
		delete(s.items, key)
		s.mu.Unlock()
		return nil, false, nil
	}
	return it.val, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	it := memItem{val: append([]byte(nil), val...)}
	if ttl > 0 {
		it.exp = s.nowFunc().Add(ttl)
	}
	s.mu.Lock()
	s.items[key] = it
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	for _, k := range keys {
		delete(s.items, k)
	}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) DeletePrefix(_ context.Context, prefix string) error {
	s.mu.Lock()
	for k := range s.items {
		if strings.HasPrefix(k, prefix) {
			delete(s.items, k)
		}
	}
	s.mu.Unlock()
	return nil
}

/* ===================== typed helpers ===================== */

// GetJSON: (nil,false,nil) kalau miss. Payload rusak dianggap miss.
func GetJSON[T any](ctx context.Context, s Store, key string) (*T, bool, error) {
	b, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	var out T
	if err := sonic.Unmarshal(b, &out); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[cache] drop corrupt entry")
		_ = s.Delete(ctx, key)
		return nil, false, nil
	}
	return &out, true, nil
}

func SetJSON(ctx context.Context, s Store, key string, v any, ttl time.Duration) error {
	b, err := sonic.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, b, ttl)
}

// Remember: ambil dari cache, kalau miss panggil load lalu simpan.
// Error cache hanya di-log; error load dikembalikan.
func Remember[T any](ctx context.Context, s Store, key string, ttl time.Duration, load func(ctx context.Context) (T, error)) (T, error) {
	if v, ok, err := GetJSON[T](ctx, s, key); err == nil && ok {
		return *v, nil
	} else if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[cache] get failed")
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	if err := SetJSON(ctx, s, key, v, ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[cache] set failed")
	}
	return v, nil
}
