package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ccstudio/portfolio-backend/internal/auth/domain"
)

const sessionKeyPrefix = "portfolio:session:" // portfolio:session:{token}

// SessionRepository stores admin sessions in Redis. Expiry is enforced
// by the key TTL, so a session simply stops resolving once it lapses.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{client: client, ttl: ttl}
}

// Create issues a fresh session for the given admin email.
func (r *SessionRepository) Create(ctx context.Context, email string) (*domain.Session, error) {
	now := time.Now()
	s := &domain.Session{
		Token:     uuid.New().String(),
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(r.ttl),
	}

	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}

	if err := r.client.Set(ctx, r.key(s.Token), data, r.ttl).Err(); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return s, nil
}

// Get resolves a token to its session, or ErrNoSession.
func (r *SessionRepository) Get(ctx context.Context, token string) (*domain.Session, error) {
	data, err := r.client.Get(ctx, r.key(token)).Result()
	if err == redis.Nil {
		return nil, domain.ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var s domain.Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &s, nil
}

// Delete drops the session. Deleting an unknown token is not an error.
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, r.key(token)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) key(token string) string {
	return sessionKeyPrefix + token
}
