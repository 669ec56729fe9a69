package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Sessions tracks the current-session and theme-preference keys. One
// session record per user: logging in replaces any previous session.
type Sessions interface {
	SetCurrent(ctx context.Context, userID uuid.UUID, ttl time.Duration) error
	IsCurrent(ctx context.Context, userID uuid.UUID) (bool, error)
	Clear(ctx context.Context, userID uuid.UUID) error

	SetTheme(ctx context.Context, userID uuid.UUID, theme string) error
	Theme(ctx context.Context, userID uuid.UUID) (string, error)
}

type RedisSessions struct {
	client *redis.Client
}

func NewRedisSessions(client *redis.Client) *RedisSessions {
	return &RedisSessions{client: client}
}

func sessionKey(userID uuid.UUID) string { return "craveops:session:" + userID.String() }
func themeKey(userID uuid.UUID) string   { return "craveops:theme:" + userID.String() }

func (s *RedisSessions) SetCurrent(ctx context.Context, userID uuid.UUID, ttl time.Duration) error {
	if err := s.client.Set(ctx, sessionKey(userID), time.Now().UTC().Format(time.RFC3339), ttl).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

func (s *RedisSessions) IsCurrent(ctx context.Context, userID uuid.UUID) (bool, error) {
	err := s.client.Get(ctx, sessionKey(userID)).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("get session: %w", err)
	}
	return true, nil
}

func (s *RedisSessions) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *RedisSessions) SetTheme(ctx context.Context, userID uuid.UUID, theme string) error {
	if theme != "light" && theme != "dark" {
		return fmt.Errorf("unknown theme %q", theme)
	}
	if err := s.client.Set(ctx, themeKey(userID), theme, 0).Err(); err != nil {
		return fmt.Errorf("set theme: %w", err)
	}
	return nil
}

// Theme returns the stored preference, defaulting to "light" when the user
// never picked one.
func (s *RedisSessions) Theme(ctx context.Context, userID uuid.UUID) (string, error) {
	theme, err := s.client.Get(ctx, themeKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "light", nil
		}
		return "", fmt.Errorf("get theme: %w", err)
	}
	return theme, nil
}
