package janitor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/time/rate"

	"github.com/ccstudio/portfolio-backend/internal/projects/domain"
	"github.com/ccstudio/portfolio-backend/internal/settings"
	"github.com/ccstudio/portfolio-backend/internal/storage"
)

// Deleting a project leaves its storage objects behind: the admin API
// never touches the bucket on delete. The janitor is how those objects
// get reclaimed — it sweeps everything no project or setting references.

type ProjectSource interface {
	List(ctx context.Context) ([]domain.Project, error)
}

type SettingsSource interface {
	Get(ctx context.Context) (*settings.Settings, error)
}

type Janitor struct {
	store    storage.Store
	projects ProjectSource
	settings SettingsSource
	limiter  *rate.Limiter
	grace    time.Duration
	now      func() time.Time
}

// New builds a janitor with the given grace window. Objects younger
// than the window are never collected, so an in-flight submit's fresh
// uploads can't be swept before their record lands.
func New(store storage.Store, projects ProjectSource, settings SettingsSource, grace time.Duration) *Janitor {
	return &Janitor{
		store:    store,
		projects: projects,
		settings: settings,
		limiter:  rate.NewLimiter(10, 20),
		grace:    grace,
		now:      time.Now,
	}
}

// SetNow overrides the sweep clock. Tests use it to pin the grace cutoff.
func (j *Janitor) SetNow(now func() time.Time) {
	j.now = now
}

// Sweep removes every unreferenced object older than the grace window.
// Per-object failures are logged and skipped; a failure to assemble the
// reference set aborts the whole sweep, deleting nothing.
func (j *Janitor) Sweep(ctx context.Context) (int, error) {
	referenced, err := j.referencedKeys(ctx)
	if err != nil {
		return 0, err
	}

	objects, err := j.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list storage: %w", err)
	}

	cutoff := j.now().Add(-j.grace)
	removed := 0
	for _, obj := range objects {
		if _, ok := referenced[obj.Key]; ok {
			continue
		}
		if !obj.LastModified.Before(cutoff) {
			continue
		}

		if err := j.limiter.Wait(ctx); err != nil {
			return removed, err
		}
		if err := j.store.Remove(ctx, []string{obj.Key}); err != nil {
			log.Printf("[janitor] remove %s: %v", obj.Key, err)
			continue
		}
		removed++
	}

	return removed, nil
}

// referencedKeys collects every storage key any project thumbnail or
// image, or the settings avatar, still points at.
func (j *Janitor) referencedKeys(ctx context.Context) (map[string]struct{}, error) {
	items, err := j.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	keys := make(map[string]struct{})
	add := func(url string) {
		if k := storage.KeyFromURL(url); k != "" {
			keys[k] = struct{}{}
		}
	}

	for _, p := range items {
		add(p.Thumbnail)
		for _, img := range p.Images {
			add(img)
		}
	}

	s, err := j.settings.Get(ctx)
	if err != nil && !errors.Is(err, settings.ErrNotFound) {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	if s != nil {
		add(s.Avatar)
	}

	return keys, nil
}
