package http

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/ccstudio/portfolio-backend/internal/projects/service"
)

// projectForm is the text portion of the multipart submit.
type projectForm struct {
	Name        string
	Description string
	Tools       string
	Roles       string
	URL         string
}

func (f projectForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required),
		validation.Field(&f.Description, validation.Required),
		validation.Field(&f.URL, is.URL),
	)
}

// slotSpec is one entry of the "slots" field: the operator's final
// ordered image list as tagged variants. "persisted" carries a stored
// URL, "upload" points at the n-th file of the "images" part.
type slotSpec struct {
	Type  string `json:"type"`
	URL   string `json:"url,omitempty"`
	Index *int   `json:"index,omitempty"`
}

// buildDraft translates the multipart request into a service.Draft.
// The returned closer releases every opened file part and must be
// called once the save is done.
func buildDraft(c *gin.Context) (service.Draft, func(), error) {
	noop := func() {}

	form := projectForm{
		Name:        strings.TrimSpace(c.PostForm("name")),
		Description: strings.TrimSpace(c.PostForm("description")),
		Tools:       c.PostForm("tools"),
		Roles:       c.PostForm("roles"),
		URL:         strings.TrimSpace(c.PostForm("url")),
	}
	if err := form.Validate(); err != nil {
		return service.Draft{}, noop, err
	}

	d := service.Draft{
		Name:        form.Name,
		Description: form.Description,
		Tools:       parseTags(form.Tools),
		Roles:       parseTags(form.Roles),
		URL:         form.URL,
	}

	var opened []io.Closer
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	if fh, err := c.FormFile("thumbnail"); err == nil {
		up, f, err := openUpload(fh)
		if err != nil {
			closeAll()
			return service.Draft{}, noop, err
		}
		opened = append(opened, f)
		d.Thumbnail = up
	}

	var uploads []*service.PendingUpload
	if mf, err := c.MultipartForm(); err == nil && mf != nil {
		for _, fh := range mf.File["images"] {
			up, f, err := openUpload(fh)
			if err != nil {
				closeAll()
				return service.Draft{}, noop, err
			}
			opened = append(opened, f)
			uploads = append(uploads, up)
		}
	}

	if raw := c.PostForm("slots"); raw != "" {
		var specs []slotSpec
		if err := json.Unmarshal([]byte(raw), &specs); err != nil {
			closeAll()
			return service.Draft{}, noop, fmt.Errorf("slots: %w", err)
		}
		slots, err := buildSlots(specs, uploads)
		if err != nil {
			closeAll()
			return service.Draft{}, noop, err
		}
		d.Slots = slots
	} else {
		d.NewImages = uploads
	}

	if raw := c.PostForm("remove"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &d.Remove); err != nil {
			closeAll()
			return service.Draft{}, noop, fmt.Errorf("remove: %w", err)
		}
	}

	return d, closeAll, nil
}

func buildSlots(specs []slotSpec, uploads []*service.PendingUpload) ([]service.ImageSlot, error) {
	slots := make([]service.ImageSlot, 0, len(specs))
	for _, spec := range specs {
		switch spec.Type {
		case "persisted":
			if spec.URL == "" {
				return nil, fmt.Errorf("slots: persisted entry without url")
			}
			slots = append(slots, service.ImageSlot{URL: spec.URL})
		case "upload":
			if spec.Index == nil || *spec.Index < 0 || *spec.Index >= len(uploads) {
				return nil, fmt.Errorf("slots: upload index out of range")
			}
			slots = append(slots, service.ImageSlot{Upload: uploads[*spec.Index]})
		default:
			return nil, fmt.Errorf("slots: unknown type %q", spec.Type)
		}
	}
	return slots, nil
}

func openUpload(fh *multipart.FileHeader) (*service.PendingUpload, io.Closer, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("open %q: %w", fh.Filename, err)
	}
	return &service.PendingUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        f,
	}, f, nil
}

// parseTags splits a comma-separated tag list, as the form submits it.
func parseTags(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
