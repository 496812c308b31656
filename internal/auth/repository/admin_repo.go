package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ccstudio/portfolio-backend/internal/auth/domain"
)

// AdminRepository reads operator accounts from Postgres.
type AdminRepository struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{db: db}
}

// GetByEmail returns the admin account for the given email. An unknown
// email maps to ErrInvalidCredentials so callers can't tell apart a
// missing account from a bad password.
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	const q = `
select id, email, password_hash
from admins
where email = $1;
`
	var a domain.Admin
	err := r.db.QueryRow(ctx, q, email).Scan(&a.ID, &a.Email, &a.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return &a, nil
}
