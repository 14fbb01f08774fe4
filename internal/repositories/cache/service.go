package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/uduakgabriel-netizen/disbod/internal/models"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a key is absent from the cache.
var ErrCacheMiss = errors.New("cache miss")

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// Key generation
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// User caching
func (s *CacheService) CacheUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("cannot cache nil user")
	}

	keys := []string{
		s.GenerateKey("user", "id", user.ID),
		s.GenerateKey("user", "email", user.Email),
	}

	for _, key := range keys {
		if err := s.Set(ctx, key, user); err != nil {
			return err
		}
	}
	return nil
}

func (s *CacheService) GetUser(ctx context.Context, key string) (*models.User, error) {
	var user models.User
	found, err := s.Get(ctx, key, &user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrCacheMiss
	}
	return &user, nil
}

func (s *CacheService) InvalidateUser(ctx context.Context, userID uint, email string) error {
	keys := []string{
		s.GenerateKey("user", "id", userID),
	}
	if email != "" {
		keys = append(keys, s.GenerateKey("user", "email", email))
	}
	return s.Delete(ctx, keys...)
}

// Token blacklist. Logout stores the token's jti until its natural
// expiry; the auth middleware rejects any blacklisted jti.
func (s *CacheService) BlacklistToken(ctx context.Context, jti string, until time.Duration) error {
	if until <= 0 {
		return nil // already expired, nothing to revoke
	}
	return s.client.Set(ctx, s.GenerateKey("token", "blacklist", jti), "1", until).Err()
}

func (s *CacheService) IsTokenBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, s.GenerateKey("token", "blacklist", jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Explore result caching. Ranking queries are read-only and tolerate a
// short staleness window, so responses are cached under their full
// query string.
func (s *CacheService) CacheExploreResult(ctx context.Context, queryKey string, value interface{}, ttl time.Duration) error {
	return s.SetWithTTL(ctx, s.GenerateKey("explore", "result", queryKey), value, ttl)
}

func (s *CacheService) GetExploreResult(ctx context.Context, queryKey string, dest interface{}) (bool, error) {
	return s.Get(ctx, s.GenerateKey("explore", "result", queryKey), dest)
}

// FlushAll flushes all keys from the cache
func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

// Close closes the Redis client connection
func (s *CacheService) Close() error {
	return s.client.Close()
}
