package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Object describes an uploaded blob. PublicID is the opaque reference used for deletion.
type Object struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Size     int    `json:"size"`
}

// ObjectStore is a filesystem-backed object store handing out opaque ids and public URLs.
type ObjectStore struct {
	files   *LocalStorage
	baseURL string
}

// NewObjectStore wraps local storage; baseURL is the public prefix objects are served under.
func NewObjectStore(files *LocalStorage, baseURL string) *ObjectStore {
	return &ObjectStore{files: files, baseURL: strings.TrimRight(baseURL, "/")}
}

// Upload stores data under folder and returns its URL and opaque id.
func (s *ObjectStore) Upload(ctx context.Context, folder string, data []byte, filename string) (*Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("upload %s: empty content", filename)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	publicID := path.Join(strings.Trim(folder, "/"), uuid.NewString()+ext)
	if _, err := s.files.Save(publicID, data); err != nil {
		return nil, fmt.Errorf("upload %s: %w", filename, err)
	}
	return &Object{URL: s.URL(publicID), PublicID: publicID, Size: len(data)}, nil
}

// Delete removes the object. Unknown ids are not an error.
func (s *ObjectStore) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.files.Delete(publicID)
}

// Open returns the stored bytes for serving.
func (s *ObjectStore) Open(publicID string) (*os.File, error) {
	return s.files.Open(publicID)
}

// URL renders the public URL of an object id.
func (s *ObjectStore) URL(publicID string) string {
	if s.baseURL == "" {
		return "/" + publicID
	}
	return s.baseURL + "/" + publicID
}
