package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ccstudio/portfolio-backend/internal/projects/domain"
)

// Repo provides persistence operations for projects.
type Repo struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const projectCols = `id, uid, name, description, tools, roles, url, thumbnail, images, created_at`

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(&p.ID, &p.UID, &p.Name, &p.Description, &p.Tools, &p.Roles,
		&p.URL, &p.Thumbnail, &p.Images, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all projects, newest first.
func (r *Repo) List(ctx context.Context) ([]domain.Project, error) {
	const q = `
select ` + projectCols + `
from projects
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// GetByUID returns the project behind a public slug.
func (r *Repo) GetByUID(ctx context.Context, uid string) (*domain.Project, error) {
	const q = `
select ` + projectCols + `
from projects
where uid = $1;
`
	p, err := scanProject(r.db.QueryRow(ctx, q, uid))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return p, err
}

// GetByID returns the project behind its numeric primary key.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	const q = `
select ` + projectCols + `
from projects
where id = $1;
`
	p, err := scanProject(r.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return p, err
}

// Create inserts a new project, generating its public slug. A slug
// collision retries with a fresh suffix a bounded number of times.
func (r *Repo) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("name required")
	}

	for i := 0; i < 5; i++ {
		uid, err := domain.NewUID(p.Name)
		if err != nil {
			return nil, err
		}

		const q = `
insert into projects (uid, name, description, tools, roles, url, thumbnail, images)
values ($1, $2, $3, $4, $5, $6, $7, $8)
returning ` + projectCols + `;
`
		created, err := scanProject(r.db.QueryRow(ctx, q,
			uid, p.Name, p.Description, p.Tools, p.Roles, p.URL, p.Thumbnail, p.Images))
		if err == nil {
			return created, nil
		}

		// unique violation on uid → retry with a new suffix
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("failed to generate unique project uid")
}

// Update rewrites the mutable fields of an existing project.
func (r *Repo) Update(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	const q = `
update projects
set name = $2, description = $3, tools = $4, roles = $5, url = $6,
    thumbnail = $7, images = $8
where id = $1
returning ` + projectCols + `;
`
	updated, err := scanProject(r.db.QueryRow(ctx, q,
		p.ID, p.Name, p.Description, p.Tools, p.Roles, p.URL, p.Thumbnail, p.Images))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return updated, err
}

// Delete removes the row by id. Storage objects are intentionally not
// touched here; the janitor sweep reclaims them.
func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	const q = `
delete from projects
where id = $1;
`
	ct, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
