package services

import (
	"context"
	"io"
	"mime/multipart"
	"puredrop/internal/models"
	"puredrop/internal/redis"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func assertKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if assert.Error(t, err) {
		assert.Equal(t, kind, KindOf(err), "error: %v", err)
	}
}

type fakeImageStore struct {
	uploads []string
	err     error
}

func (f *fakeImageStore) Upload(_ context.Context, file *multipart.FileHeader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploads = append(f.uploads, file.Filename)
	return "https://images.example.com/shops/" + file.Filename, nil
}

type fakeLimiter struct {
	mu       sync.Mutex
	failures map[string]int
	blocked  map[string]time.Duration
	resets   int
}

func newFakeLimiter() *fakeLimiter {
	return &fakeLimiter{failures: map[string]int{}, blocked: map[string]time.Duration{}}
}

func (f *fakeLimiter) LoginCooldown(_ context.Context, phone string) (time.Duration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.blocked[phone], nil
}

func (f *fakeLimiter) RecordLoginFailure(_ context.Context, phone string, maxAttempts int, cooldown time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[phone]++
	if f.failures[phone] >= maxAttempts {
		f.blocked[phone] = cooldown
		f.failures[phone] = 0
	}
	return nil
}

func (f *fakeLimiter) ResetLoginAttempts(_ context.Context, phone string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[phone] = 0
	f.resets++
	return nil
}

type fakeShopCache struct {
	mu      sync.Mutex
	entries map[string]models.ShopOwner
	gets    int
	deletes int
}

func newFakeShopCache() *fakeShopCache {
	return &fakeShopCache{entries: map[string]models.ShopOwner{}}
}

func (f *fakeShopCache) GetShop(_ context.Context, phone string) (*models.ShopOwner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	owner, ok := f.entries[phone]
	if !ok {
		return nil, redis.ErrCacheMiss
	}
	return &owner, nil
}

func (f *fakeShopCache) SetShop(_ context.Context, owner *models.ShopOwner, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[owner.Phone] = *owner
	return nil
}

func (f *fakeShopCache) DeleteShop(_ context.Context, phone string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	delete(f.entries, phone)
	return nil
}
