package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"railshift/models"
)

// LocalStore writes documents below Dir. URLs point at PublicBase + /documents/<key>.
type LocalStore struct {
	Dir        string
	PublicBase string
}

func NewLocalStore(dir, publicBase string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("storage: create %s: %w", dir, err)
	}
	return &LocalStore{Dir: dir, PublicBase: publicBase}, nil
}

func (s *LocalStore) Put(_ context.Context, name, contentType string, data []byte) (models.Document, error) {
	key := objectKey(name)
	if err := os.WriteFile(filepath.Join(s.Dir, key), data, 0644); err != nil {
		return models.Document{}, fmt.Errorf("storage: write %s: %w", key, err)
	}
	doc := newDocument(key, name, contentType, int64(len(data)))
	doc.URL = DocumentURL(s.PublicBase, "documents/"+key)
	return doc, nil
}

func (s *LocalStore) Delete(_ context.Context, doc models.Document) error {
	err := os.Remove(filepath.Join(s.Dir, filepath.Base(doc.Path)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: delete %s: %w", doc.Path, err)
	}
	return nil
}

// Open returns the stored file for serving.
func (s *LocalStore) Open(key string) (*os.File, error) {
	return os.Open(filepath.Join(s.Dir, filepath.Base(key)))
}
