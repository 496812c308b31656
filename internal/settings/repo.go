package settings

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when the settings row was never seeded.
var ErrNotFound = errors.New("settings not found")

// Settings is the site-wide singleton: shared branding assets the
// public pages render. The application only ever reads it.
type Settings struct {
	ID     int64  `json:"id"`
	Avatar string `json:"avatar"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// Get returns the single settings row.
func (r *Repo) Get(ctx context.Context) (*Settings, error) {
	const q = `
select id, avatar
from settings
limit 1;
`
	var s Settings
	err := r.db.QueryRow(ctx, q).Scan(&s.ID, &s.Avatar)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
