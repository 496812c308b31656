package http

import (
	"context"

	"github.com/ccstudio/portfolio-backend/internal/projects/domain"
	"github.com/ccstudio/portfolio-backend/internal/projects/service"
)

// Saver is the slice of the project service the admin endpoints need.
type Saver interface {
	Save(ctx context.Context, d service.Draft) (*service.SaveResult, error)
	Delete(ctx context.Context, id int64) error
}

// Reader is the read-only repository surface the endpoints need.
type Reader interface {
	List(ctx context.Context) ([]domain.Project, error)
	GetByUID(ctx context.Context, uid string) (*domain.Project, error)
}

// AdminHandler bundles the dependencies for the authenticated
// create/update/delete endpoints.
type AdminHandler struct {
	svc  Saver
	repo Reader
}

func NewAdmin(svc Saver, repo Reader) *AdminHandler {
	return &AdminHandler{svc: svc, repo: repo}
}

// PublicHandler serves the read-only project endpoints the home and
// detail pages render from.
type PublicHandler struct {
	repo Reader
}

func NewPublic(repo Reader) *PublicHandler {
	return &PublicHandler{repo: repo}
}
