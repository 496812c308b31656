package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/ccstudio/portfolio-backend/internal/auth/domain"
)

type AdminStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
}

type SessionStore interface {
	Create(ctx context.Context, email string) (*domain.Session, error)
	Get(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
}

type AuthService struct {
	admins   AdminStore
	sessions SessionStore
}

func NewAuthService(admins AdminStore, sessions SessionStore) *AuthService {
	return &AuthService{
		admins:   admins,
		sessions: sessions,
	}
}

// SignIn checks the credentials and, when they hold, issues a session.
// Bad email and bad password both come back as ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.sessions.Create(ctx, admin.Email)
}

// SignOut drops the session behind the token.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// Session resolves a token to the live session, or ErrNoSession.
func (s *AuthService) Session(ctx context.Context, token string) (*domain.Session, error) {
	return s.sessions.Get(ctx, token)
}
