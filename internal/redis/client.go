package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"puredrop/internal/models"
	"time"

	"github.com/go-redis/redis/v8"
)

var ErrCacheMiss = errors.New("cache miss")

type Client struct {
	rdb *redis.Client
}

func Initialize(ctx context.Context, redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

func NewClient(rdb *redis.Client) *Client {
	return &Client{rdb: rdb}
}

func shopKey(phone string) string {
	return "shop:" + phone
}

func loginAttemptsKey(phone string) string {
	return "login_attempts:" + phone
}

func loginCooldownKey(phone string) string {
	return "login_cooldown:" + phone
}

// Shop profile caching
func (c *Client) SetShop(ctx context.Context, owner *models.ShopOwner, ttl time.Duration) error {
	jsonData, err := json.Marshal(owner)
	if err != nil {
		return fmt.Errorf("failed to marshal shop: %w", err)
	}

	return c.rdb.Set(ctx, shopKey(owner.Phone), jsonData, ttl).Err()
}

func (c *Client) GetShop(ctx context.Context, phone string) (*models.ShopOwner, error) {
	val, err := c.rdb.Get(ctx, shopKey(phone)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get shop: %w", err)
	}

	var owner models.ShopOwner
	if err := json.Unmarshal(val, &owner); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shop: %w", err)
	}

	return &owner, nil
}

func (c *Client) DeleteShop(ctx context.Context, phone string) error {
	return c.rdb.Del(ctx, shopKey(phone)).Err()
}

// Login throttling

// LoginCooldown returns the remaining lockout for phone, zero when none.
func (c *Client) LoginCooldown(ctx context.Context, phone string) (time.Duration, error) {
	ttl, err := c.rdb.TTL(ctx, loginCooldownKey(phone)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read login cooldown: %w", err)
	}
	// TTL reports -2 for a missing key and -1 for a key without expiry.
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

// RecordLoginFailure counts a failed attempt and starts the cooldown once
// maxAttempts is reached.
func (c *Client) RecordLoginFailure(ctx context.Context, phone string, maxAttempts int, cooldown time.Duration) error {
	key := loginAttemptsKey(phone)

	attempts, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to count login attempt: %w", err)
	}
	// the first failure opens the counting window
	if attempts == 1 {
		if err := c.rdb.Expire(ctx, key, cooldown).Err(); err != nil {
			return fmt.Errorf("failed to expire login attempts: %w", err)
		}
	}

	if int(attempts) >= maxAttempts {
		pipe := c.rdb.TxPipeline()
		pipe.Set(ctx, loginCooldownKey(phone), "1", cooldown)
		pipe.Del(ctx, key)
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("failed to start login cooldown: %w", err)
		}
	}
	return nil
}

func (c *Client) ResetLoginAttempts(ctx context.Context, phone string) error {
	return c.rdb.Del(ctx, loginAttemptsKey(phone)).Err()
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
