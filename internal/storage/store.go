package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"
)

// Object describes one stored object as reported by the backing store.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// Store is the object storage contract the application depends on:
// upload under a caller-chosen key, resolve a time-limited retrieval
// URL, remove by key, and enumerate the bucket.
type Store interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Remove(ctx context.Context, keys []string) error
	List(ctx context.Context) ([]Object, error)
}

// UploadKey builds the storage key for a freshly submitted file: a
// unix-millisecond prefix plus the original filename. Keys are flat,
// there are no directories in the bucket.
func UploadKey(now time.Time, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.ReplaceAll(name, " ", "-")
	return fmt.Sprintf("%d-%s", now.UnixMilli(), name)
}

// KeyFromURL recovers the object key from a signed retrieval URL.
// Because keys are flat, the key is the last path segment; the query
// string (signature token) is ignored. Returns "" for garbage input.
func KeyFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	key := path.Base(u.Path)
	if key == "." || key == "/" {
		return ""
	}
	return key
}
