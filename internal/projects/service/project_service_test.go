package service_test

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccstudio/portfolio-backend/internal/projects/domain"
	"github.com/ccstudio/portfolio-backend/internal/projects/service"
	"github.com/ccstudio/portfolio-backend/internal/storage"
)

type fakeRepo struct {
	projects    map[int64]*domain.Project
	nextID      int64
	failPersist bool
}

func newFakeRepo(seed ...*domain.Project) *fakeRepo {
	r := &fakeRepo{projects: map[int64]*domain.Project{}, nextID: 100}
	for _, p := range seed {
		r.projects[p.ID] = p
	}
	return r
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	if r.failPersist {
		return nil, fmt.Errorf("insert failed")
	}
	r.nextID++
	cp := *p
	cp.ID = r.nextID
	cp.UID = domain.Slugify(p.Name) + "-0001"
	cp.CreatedAt = time.Now()
	r.projects[cp.ID] = &cp
	return &cp, nil
}

func (r *fakeRepo) Update(_ context.Context, p *domain.Project) (*domain.Project, error) {
	if r.failPersist {
		return nil, fmt.Errorf("update failed")
	}
	if _, ok := r.projects[p.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	r.projects[p.ID] = &cp
	return &cp, nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := r.projects[id]; !ok {
		return false, nil
	}
	delete(r.projects, id)
	return true, nil
}

// fakeStore signs uploads as https://cdn.test/{key}?token=t so that
// storage.KeyFromURL round-trips back to the key.
type fakeStore struct {
	mu       sync.Mutex
	uploads  []string
	removed  []string
	failName string // uploads whose key contains this fail
}

func (s *fakeStore) Upload(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	if s.failName != "" && strings.Contains(key, s.failName) {
		return "", fmt.Errorf("upload refused")
	}
	if body != nil {
		io.Copy(io.Discard, body)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads = append(s.uploads, key)
	return key, nil
}

func (s *fakeStore) SignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return signed(key), nil
}

func (s *fakeStore) Remove(_ context.Context, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, keys...)
	return nil
}

func (s *fakeStore) List(_ context.Context) ([]storage.Object, error) {
	return nil, nil
}

func signed(key string) string {
	return "https://cdn.test/" + key + "?token=t"
}

func upload(name string) *service.PendingUpload {
	return &service.PendingUpload{
		Filename:    name,
		ContentType: "image/png",
		Body:        strings.NewReader("img-bytes"),
	}
}

func seedProject() *domain.Project {
	return &domain.Project{
		ID:          7,
		UID:         "seed-0007",
		Name:        "Seed",
		Description: "seed project",
		Tools:       []string{"Go"},
		Roles:       []string{"dev"},
		Thumbnail:   signed("1-thumb.png"),
		Images:      []string{signed("1-a.png"), signed("1-b.png"), signed("1-c.png")},
		CreatedAt:   time.Now().Add(-time.Hour),
	}
}

func TestSave_ReorderOnly(t *testing.T) {
	existing := seedProject()
	repo := newFakeRepo(existing)
	store := &fakeStore{}
	svc := service.NewProjectService(repo, store)

	reordered := []service.ImageSlot{
		{URL: existing.Images[2]},
		{URL: existing.Images[0]},
		{URL: existing.Images[1]},
	}

	res, err := svc.Save(context.Background(), service.Draft{
		ID:          7,
		Name:        "Seed",
		Description: "seed project",
		Slots:       reordered,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Project)

	assert.Equal(t,
		[]string{existing.Images[2], existing.Images[0], existing.Images[1]},
		res.Project.Images)
	assert.Empty(t, store.uploads, "reorder alone must not upload anything")
	assert.Empty(t, res.Warnings)
}

func TestSave_NewUploadsResolveInPlace(t *testing.T) {
	existing := seedProject()
	repo := newFakeRepo(existing)
	store := &fakeStore{}
	svc := service.NewProjectService(repo, store)

	res, err := svc.Save(context.Background(), service.Draft{
		ID:          7,
		Name:        "Seed",
		Description: "seed project",
		Slots: []service.ImageSlot{
			{Upload: upload("new1.png")},
			{URL: existing.Images[0]},
			{Upload: upload("new2.png")},
		},
	})
	require.NoError(t, err)
	require.Len(t, res.Project.Images, 3)

	assert.True(t, strings.Contains(res.Project.Images[0], "new1.png"))
	assert.Equal(t, existing.Images[0], res.Project.Images[1])
	assert.True(t, strings.Contains(res.Project.Images[2], "new2.png"))
	assert.Len(t, store.uploads, 2)

	// nothing transient made it into the record
	for _, u := range res.Project.Images {
		assert.True(t, strings.HasPrefix(u, "https://cdn.test/"))
	}
}

func TestSave_RemovePersistedImage(t *testing.T) {
	existing := seedProject()
	repo := newFakeRepo(existing)
	store := &fakeStore{}
	svc := service.NewProjectService(repo, store)

	res, err := svc.Save(context.Background(), service.Draft{
		ID:          7,
		Name:        "Seed",
		Description: "seed project",
		Slots: []service.ImageSlot{
			{URL: existing.Images[0]},
			{URL: existing.Images[2]},
		},
		Remove: []string{existing.Images[1]},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{existing.Images[0], existing.Images[2]}, res.Project.Images)
	assert.NotContains(t, res.Project.Images, existing.Images[1])
	assert.Contains(t, store.removed, "1-b.png", "storage removal must be attempted")
}

func TestSave_DroppedPendingImageNeverUploads(t *testing.T) {
	repo := newFakeRepo()
	store := &fakeStore{}
	svc := service.NewProjectService(repo, store)

	kept := upload("kept.png")
	dropped := upload("dropped.png")
	_ = dropped // attached to the form, but the operator removed its slot

	res, err := svc.Save(context.Background(), service.Draft{
		Name:        "New",
		Description: "brand new",
		Slots:       []service.ImageSlot{{Upload: kept}},
	})
	require.NoError(t, err)

	require.Len(t, store.uploads, 1)
	assert.True(t, strings.Contains(store.uploads[0], "kept.png"))
	require.Len(t, res.Project.Images, 1)
	assert.False(t, strings.Contains(res.Project.Images[0], "dropped.png"))
}

func TestSave_NilSlotsAppendsNewImages(t *testing.T) {
	existing := seedProject()
	repo := newFakeRepo(existing)
	store := &fakeStore{}
	svc := service.NewProjectService(repo, store)

	res, err := svc.Save(context.Background(), service.Draft{
		ID:          7,
		Name:        "Seed",
		Description: "seed project",
		NewImages:   []*service.PendingUpload{upload("extra.png")},
	})
	require.NoError(t, err)

	require.Len(t, res.Project.Images, 4)
	assert.Equal(t, existing.Images, res.Project.Images[:3])
	assert.True(t, strings.Contains(res.Project.Images[3], "extra.png"))
}

func TestSave_FailedUploadBecomesWarning(t *testing.T) {
	existing := seedProject()
	repo := newFakeRepo(existing)
	store := &fakeStore{failName: "bad.png"}
	svc := service.NewProjectService(repo, store)

	res, err := svc.Save(context.Background(), service.Draft{
		ID:          7,
		Name:        "Seed",
		Description: "seed project",
		Slots: []service.ImageSlot{
			{URL: existing.Images[0]},
			{Upload: upload("bad.png")},
			{Upload: upload("good.png")},
		},
	})
	require.NoError(t, err, "a failed upload must not sink the save")

	require.Len(t, res.Project.Images, 2)
	assert.Equal(t, existing.Images[0], res.Project.Images[0])
	assert.True(t, strings.Contains(res.Project.Images[1], "good.png"))

	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "bad.png")
}

func TestSave_ThumbnailReplacement(t *testing.T) {
	existing := seedProject()

	t.Run("replaced on success", func(t *testing.T) {
		repo := newFakeRepo(existing)
		store := &fakeStore{}
		svc := service.NewProjectService(repo, store)

		res, err := svc.Save(context.Background(), service.Draft{
			ID:          7,
			Name:        "Seed",
			Description: "seed project",
			Thumbnail:   upload("fresh-thumb.png"),
		})
		require.NoError(t, err)
		assert.True(t, strings.Contains(res.Project.Thumbnail, "fresh-thumb.png"))
	})

	t.Run("kept on upload failure", func(t *testing.T) {
		repo := newFakeRepo(existing)
		store := &fakeStore{failName: "fresh-thumb.png"}
		svc := service.NewProjectService(repo, store)

		res, err := svc.Save(context.Background(), service.Draft{
			ID:          7,
			Name:        "Seed",
			Description: "seed project",
			Thumbnail:   upload("fresh-thumb.png"),
		})
		require.NoError(t, err)
		assert.Equal(t, existing.Thumbnail, res.Project.Thumbnail)
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "fresh-thumb.png")
	})
}

func TestSave_Create(t *testing.T) {
	repo := newFakeRepo()
	store := &fakeStore{}
	svc := service.NewProjectService(repo, store)

	res, err := svc.Save(context.Background(), service.Draft{
		Name:        "Brand New",
		Description: "first version",
		Tools:       []string{"Go", "React"},
		NewImages:   []*service.PendingUpload{upload("one.png")},
	})
	require.NoError(t, err)

	assert.True(t, res.Created)
	assert.NotZero(t, res.Project.ID)
	assert.NotEmpty(t, res.Project.UID)
	require.Len(t, res.Project.Images, 1)
	assert.NotNil(t, res.Project.Roles, "tag lists persist as empty, never null")
}

func TestSave_PersistFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.failPersist = true
	store := &fakeStore{}
	svc := service.NewProjectService(repo, store)

	res, err := svc.Save(context.Background(), service.Draft{
		Name:        "Doomed",
		Description: "won't persist",
	})
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Nil(t, res.Project)
}

func TestDelete(t *testing.T) {
	existing := seedProject()
	repo := newFakeRepo(existing)
	svc := service.NewProjectService(repo, &fakeStore{})

	t.Run("removes the record", func(t *testing.T) {
		require.NoError(t, svc.Delete(context.Background(), 7))
		_, err := repo.GetByID(context.Background(), 7)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		err := svc.Delete(context.Background(), 999)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
