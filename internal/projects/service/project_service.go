package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/ccstudio/portfolio-backend/internal/projects/domain"
	"github.com/ccstudio/portfolio-backend/internal/storage"
)

// SignedURLTTL is how long resolved image URLs stay retrievable.
const SignedURLTTL = 365 * 24 * time.Hour

// PendingUpload is a file submitted with the form but not yet stored.
type PendingUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// ImageSlot is one position of the ordered image list: either an
// already-persisted URL or a pending upload. Exactly one side is set,
// so reconciliation at submit time is a total mapping instead of a
// positional value lookup.
type ImageSlot struct {
	URL    string
	Upload *PendingUpload
}

// Draft carries everything the operator submitted from the edit form.
type Draft struct {
	ID          int64 // 0 on create
	Name        string
	Description string
	Tools       []string
	Roles       []string
	URL         string

	// Thumbnail replaces the persisted thumbnail reference once its
	// upload succeeds; until then the old one stays in place.
	Thumbnail *PendingUpload

	// Slots is the displayed ordered image list. When nil, the final
	// list defaults to the persisted images followed by NewImages in
	// submission order.
	Slots     []ImageSlot
	NewImages []*PendingUpload

	// Remove holds persisted image URLs queued for storage deletion.
	Remove []string
}

// SaveResult reports the submit step by step. Warnings carry the
// upload and removal steps that failed without sinking the save;
// Project is set whenever the record was actually persisted.
type SaveResult struct {
	Project  *domain.Project `json:"project"`
	Created  bool            `json:"created"`
	Warnings []string        `json:"warnings,omitempty"`
}

type Repo interface {
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) (*domain.Project, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type ProjectService struct {
	repo  Repo
	store storage.Store
	now   func() time.Time
}

func NewProjectService(repo Repo, store storage.Store) *ProjectService {
	return &ProjectService{
		repo:  repo,
		store: store,
		now:   time.Now,
	}
}

// Save runs the submit sequence: upload the pending thumbnail, upload
// the pending images as one concurrent batch, reconcile the ordered
// slot list into the final images array, best-effort-remove the queued
// deletions, then insert or update the record. Only a failed persist
// fails the save; every other failed step becomes a warning, so partial
// failure is never hidden from the operator.
func (s *ProjectService) Save(ctx context.Context, d Draft) (*SaveResult, error) {
	res := &SaveResult{}

	p := &domain.Project{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Tools:       d.Tools,
		Roles:       d.Roles,
		URL:         d.URL,
	}
	if p.Tools == nil {
		p.Tools = []string{}
	}
	if p.Roles == nil {
		p.Roles = []string{}
	}

	slots := d.Slots
	if d.ID != 0 {
		existing, err := s.repo.GetByID(ctx, d.ID)
		if err != nil {
			return nil, err
		}
		p.UID = existing.UID
		p.Thumbnail = existing.Thumbnail
		p.CreatedAt = existing.CreatedAt

		if slots == nil {
			slots = persistedSlots(existing.Images)
		}
	}
	if d.Slots == nil {
		// new files land at the end of the displayed list
		for _, up := range d.NewImages {
			slots = append(slots, ImageSlot{Upload: up})
		}
	}

	if d.Thumbnail != nil {
		url, err := s.uploadAndSign(ctx, d.Thumbnail)
		if err != nil {
			log.Printf("[projects] thumbnail upload failed: %v", err)
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("thumbnail %q not uploaded: %v", d.Thumbnail.Filename, err))
		} else {
			p.Thumbnail = url
		}
	}

	resolved := s.uploadBatch(ctx, slots, res)

	removeSet := make(map[string]struct{}, len(d.Remove))
	for _, u := range d.Remove {
		removeSet[u] = struct{}{}
	}

	// every final position is either an already-durable URL or a
	// freshly resolved one; transient slots never reach the record
	images := make([]string, 0, len(slots))
	for i, slot := range slots {
		switch {
		case slot.Upload != nil:
			if url, ok := resolved[i]; ok {
				images = append(images, url)
			}
		case slot.URL != "":
			if _, gone := removeSet[slot.URL]; !gone {
				images = append(images, slot.URL)
			}
		}
	}
	p.Images = images

	for _, u := range d.Remove {
		key := storage.KeyFromURL(u)
		if key == "" {
			continue
		}
		if err := s.store.Remove(ctx, []string{key}); err != nil {
			log.Printf("[projects] remove %s: %v", key, err)
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("stored image %s not removed: %v", key, err))
		}
	}

	var (
		saved *domain.Project
		err   error
	)
	if d.ID == 0 {
		saved, err = s.repo.Create(ctx, p)
		res.Created = true
	} else {
		saved, err = s.repo.Update(ctx, p)
	}
	if err != nil {
		return res, fmt.Errorf("persist project: %w", err)
	}

	res.Project = saved
	return res, nil
}

// Delete removes the project record by id. Its storage objects are
// left behind on purpose; the janitor sweep reclaims them later.
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// uploadBatch uploads every pending slot concurrently and returns the
// resolved URL per slot index. A failed upload records a warning and is
// simply absent from the result; it never aborts the rest of the batch.
func (s *ProjectService) uploadBatch(ctx context.Context, slots []ImageSlot, res *SaveResult) map[int]string {
	type outcome struct {
		url  string
		name string
		err  error
	}

	results := make([]*outcome, len(slots))

	var wg sync.WaitGroup
	for i, slot := range slots {
		if slot.Upload == nil {
			continue
		}
		wg.Add(1)
		go func(i int, up *PendingUpload) {
			defer wg.Done()
			url, err := s.uploadAndSign(ctx, up)
			results[i] = &outcome{url: url, name: up.Filename, err: err}
		}(i, slot.Upload)
	}
	wg.Wait()

	resolved := make(map[int]string, len(slots))
	for i, o := range results {
		if o == nil {
			continue
		}
		if o.err != nil {
			log.Printf("[projects] image upload failed: %v", o.err)
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("image %q not uploaded: %v", o.name, o.err))
			continue
		}
		resolved[i] = o.url
	}
	return resolved
}

func (s *ProjectService) uploadAndSign(ctx context.Context, up *PendingUpload) (string, error) {
	key := storage.UploadKey(s.now(), up.Filename)

	path, err := s.store.Upload(ctx, key, up.Body, up.ContentType)
	if err != nil {
		return "", fmt.Errorf("upload %q: %w", key, err)
	}

	url, err := s.store.SignedURL(ctx, path, SignedURLTTL)
	if err != nil {
		return "", fmt.Errorf("sign %q: %w", path, err)
	}
	return url, nil
}

func persistedSlots(urls []string) []ImageSlot {
	slots := make([]ImageSlot, 0, len(urls))
	for _, u := range urls {
		slots = append(slots, ImageSlot{URL: u})
	}
	return slots
}
