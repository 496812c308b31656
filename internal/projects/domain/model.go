package domain

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no project matches the requested id or slug.
var ErrNotFound = errors.New("project not found")

// Project is a single portfolio entry. The Images order is significant:
// it is the order the public pages display, and it must survive upload
// and reorder round-trips untouched.
type Project struct {
	ID          int64     `json:"id"`
	UID         string    `json:"uid"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Tools       []string  `json:"tools"`
	Roles       []string  `json:"roles"`
	URL         string    `json:"url"`
	Thumbnail   string    `json:"thumbnail"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"created_at"`
}
