package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// OTPRepository stores hashed one-time codes with a TTL, plus a per-mobile resend cooldown.
type OTPRepository interface {
	SaveCode(ctx context.Context, mobile, codeHash string, ttl time.Duration) error
	GetCode(ctx context.Context, mobile string) (string, error)
	DeleteCode(ctx context.Context, mobile string) error
	// AcquireCooldown returns false while a previous cooldown for mobile is still running.
	AcquireCooldown(ctx context.Context, mobile string, cooldown time.Duration) (bool, error)
	ReleaseCooldown(ctx context.Context, mobile string) error
	// RegisterAttempt counts a verification attempt against the current code and
	// returns the running total. The counter resets when a code is saved or deleted.
	RegisterAttempt(ctx context.Context, mobile string, ttl time.Duration) (int64, error)
}

const (
	otpCodeKeyPrefix     = "otp:code:"
	otpCooldownKeyPrefix = "otp:cooldown:"
	otpAttemptsKeyPrefix = "otp:attempts:"
)

type redisOTPRepository struct {
	client *redis.Client
}

// NewRedisOTPRepository creates an OTPRepository backed by Redis key expiry.
func NewRedisOTPRepository(client *redis.Client) OTPRepository {
	return &redisOTPRepository{client: client}
}

func (r *redisOTPRepository) SaveCode(ctx context.Context, mobile, codeHash string, ttl time.Duration) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, otpCodeKeyPrefix+mobile, codeHash, ttl)
		pipe.Del(ctx, otpAttemptsKeyPrefix+mobile)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: saving otp: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *redisOTPRepository) GetCode(ctx context.Context, mobile string) (string, error) {
	val, err := r.client.Get(ctx, otpCodeKeyPrefix+mobile).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: reading otp: %v", ErrDatabaseError, err)
	}
	return val, nil
}

func (r *redisOTPRepository) DeleteCode(ctx context.Context, mobile string) error {
	if err := r.client.Del(ctx, otpCodeKeyPrefix+mobile, otpAttemptsKeyPrefix+mobile).Err(); err != nil {
		return fmt.Errorf("%w: deleting otp: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *redisOTPRepository) AcquireCooldown(ctx context.Context, mobile string, cooldown time.Duration) (bool, error) {
	if cooldown <= 0 {
		return true, nil
	}
	ok, err := r.client.SetNX(ctx, otpCooldownKeyPrefix+mobile, "1", cooldown).Result()
	if err != nil {
		return false, fmt.Errorf("%w: acquiring otp cooldown: %v", ErrDatabaseError, err)
	}
	return ok, nil
}

func (r *redisOTPRepository) ReleaseCooldown(ctx context.Context, mobile string) error {
	if err := r.client.Del(ctx, otpCooldownKeyPrefix+mobile).Err(); err != nil {
		return fmt.Errorf("%w: releasing otp cooldown: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *redisOTPRepository) RegisterAttempt(ctx context.Context, mobile string, ttl time.Duration) (int64, error) {
	key := otpAttemptsKeyPrefix + mobile
	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		if ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: counting otp attempt: %v", ErrDatabaseError, err)
	}
	return incr.Val(), nil
}

type memoryOTPEntry struct {
	value     string
	expiresAt time.Time
}

type memoryOTPAttempts struct {
	count     int64
	expiresAt time.Time
}

type memoryOTPRepository struct {
	mu        sync.Mutex
	codes     map[string]memoryOTPEntry
	attempts  map[string]memoryOTPAttempts
	cooldowns map[string]time.Time
	now       func() time.Time
}

// NewMemoryOTPRepository keeps codes in process memory. Used when no Redis is configured.
func NewMemoryOTPRepository() OTPRepository {
	return &memoryOTPRepository{
		codes:     make(map[string]memoryOTPEntry),
		attempts:  make(map[string]memoryOTPAttempts),
		cooldowns: make(map[string]time.Time),
		now:       time.Now,
	}
}

func (r *memoryOTPRepository) SaveCode(_ context.Context, mobile, codeHash string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes[mobile] = memoryOTPEntry{value: codeHash, expiresAt: r.now().Add(ttl)}
	delete(r.attempts, mobile)
	return nil
}

func (r *memoryOTPRepository) GetCode(_ context.Context, mobile string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.codes[mobile]
	if !ok {
		return "", ErrNotFound
	}
	if !r.now().Before(entry.expiresAt) {
		delete(r.codes, mobile)
		return "", ErrNotFound
	}
	return entry.value, nil
}

func (r *memoryOTPRepository) DeleteCode(_ context.Context, mobile string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.codes, mobile)
	delete(r.attempts, mobile)
	return nil
}

func (r *memoryOTPRepository) AcquireCooldown(_ context.Context, mobile string, cooldown time.Duration) (bool, error) {
	if cooldown <= 0 {
		return true, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	if until, ok := r.cooldowns[mobile]; ok && now.Before(until) {
		return false, nil
	}
	r.cooldowns[mobile] = now.Add(cooldown)
	return true, nil
}

func (r *memoryOTPRepository) ReleaseCooldown(_ context.Context, mobile string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cooldowns, mobile)
	return nil
}

func (r *memoryOTPRepository) RegisterAttempt(_ context.Context, mobile string, ttl time.Duration) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	entry, ok := r.attempts[mobile]
	if !ok || (!entry.expiresAt.IsZero() && !now.Before(entry.expiresAt)) {
		entry = memoryOTPAttempts{}
	}
	entry.count++
	if ttl > 0 {
		entry.expiresAt = now.Add(ttl)
	}
	r.attempts[mobile] = entry
	return entry.count, nil
}
