package security

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// LoginTrackerConfig holds configuration for login tracking
type LoginTrackerConfig struct {
	MaxAttempts   int           // Maximum failed attempts before block (default: 5)
	AttemptWindow time.Duration // Time window for tracking attempts (default: 15min)
	BlockDuration time.Duration // How long to block after max attempts (default: 15min)
	UseIPTracking bool          // Also track by IP address (default: true)
}

// DefaultLoginTrackerConfig returns sensible defaults
func DefaultLoginTrackerConfig() LoginTrackerConfig {
	return LoginTrackerConfig{
		MaxAttempts:   5,
		AttemptWindow: 15 * time.Minute,
		BlockDuration: 15 * time.Minute,
		UseIPTracking: true,
	}
}

// LoginTracker tracks failed login attempts and enforces blocks. With a
// nil Redis client it tracks nothing and never blocks.
type LoginTracker struct {
	client *goredis.Client
	config LoginTrackerConfig
	logger *SecurityLogger
}

func NewLoginTracker(client *goredis.Client, config LoginTrackerConfig, logger *SecurityLogger) *LoginTracker {
	if logger == nil {
		logger = Nop()
	}
	return &LoginTracker{
		client: client,
		config: config,
		logger: logger,
	}
}

// Redis key patterns
const (
	failLoginUserPrefix    = "fail:login:user:"
	failLoginIPPrefix      = "fail:login:ip:"
	blockedLoginUserPrefix = "blocked:login:user:"
	blockedLoginIPPrefix   = "blocked:login:ip:"
)

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: current count after increment
const incrWithTTLScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsBlocked checks if the given email or IP is currently blocked
func (lt *LoginTracker) IsBlocked(ctx context.Context, email, ip string) (bool, error) {
	if lt.client == nil {
		return false, nil
	}

	userKey := blockedLoginUserPrefix + normalizeEmail(email)
	exists, err := lt.client.Exists(ctx, userKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check user block: %w", err)
	}
	if exists > 0 {
		return true, nil
	}

	if lt.config.UseIPTracking && ip != "" {
		exists, err := lt.client.Exists(ctx, blockedLoginIPPrefix+ip).Result()
		if err != nil {
			return false, fmt.Errorf("failed to check IP block: %w", err)
		}
		if exists > 0 {
			return true, nil
		}
	}

	return false, nil
}

// RecordFailedAttempt records a failed login attempt.
// Returns (shouldBlock, currentAttempts, error)
func (lt *LoginTracker) RecordFailedAttempt(ctx context.Context, email, ip, userAgent, requestID string) (bool, int, error) {
	lt.logger.LogLoginFailed(ctx, email, ip, userAgent, requestID, "invalid_credentials")
	if lt.client == nil {
		return false, 0, nil
	}

	ttlSeconds := int(lt.config.AttemptWindow.Seconds())

	userCount, err := lt.atomicIncrement(ctx, failLoginUserPrefix+normalizeEmail(email), ttlSeconds)
	if err != nil {
		return false, 0, fmt.Errorf("failed to increment user counter: %w", err)
	}

	if lt.config.UseIPTracking && ip != "" {
		_, _ = lt.atomicIncrement(ctx, failLoginIPPrefix+ip, ttlSeconds) // Best effort
	}

	if userCount >= lt.config.MaxAttempts {
		if err := lt.createBlock(ctx, email, ip, requestID); err != nil {
			return true, userCount, fmt.Errorf("failed to create block: %w", err)
		}
		return true, userCount, nil
	}

	return false, userCount, nil
}

func (lt *LoginTracker) atomicIncrement(ctx context.Context, key string, ttlSeconds int) (int, error) {
	result, err := lt.client.Eval(ctx, incrWithTTLScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, err
	}
	count, ok := result.(int64)
	if !ok {
		return 0, errors.New("unexpected result type from Lua script")
	}
	return int(count), nil
}

// createBlock creates a temporary block for the user (and optionally IP)
func (lt *LoginTracker) createBlock(ctx context.Context, email, ip, requestID string) error {
	blockTTL := lt.config.BlockDuration

	if err := lt.client.Set(ctx, blockedLoginUserPrefix+normalizeEmail(email), "1", blockTTL).Err(); err != nil {
		return fmt.Errorf("failed to set user block: %w", err)
	}

	if lt.config.UseIPTracking && ip != "" {
		if err := lt.client.Set(ctx, blockedLoginIPPrefix+ip, "1", blockTTL).Err(); err != nil {
			// user is already blocked
			lt.logger.zapLogger.Warn("failed to set IP block", zap.Error(err))
		}
	}

	lt.logger.LogBlockCreated(ctx, "email", email, ip, requestID, int(blockTTL.Minutes()))
	return nil
}

// ClearAttempts clears failed login attempts on successful login
func (lt *LoginTracker) ClearAttempts(ctx context.Context, email, ip string) error {
	if lt.client == nil {
		return nil
	}

	if err := lt.client.Del(ctx, failLoginUserPrefix+normalizeEmail(email)).Err(); err != nil {
		return fmt.Errorf("failed to clear user attempts: %w", err)
	}

	if lt.config.UseIPTracking && ip != "" {
		_ = lt.client.Del(ctx, failLoginIPPrefix+ip).Err() // Best effort
	}

	return nil
}
