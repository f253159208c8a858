// Package storage keeps the files uploaded with shifts.
package storage

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"railshift/models"
)

// DocumentStore persists uploaded shift documents.
type DocumentStore interface {
	Put(ctx context.Context, name, contentType string, data []byte) (models.Document, error)
	Delete(ctx context.Context, doc models.Document) error
}

// objectKey prefixes the sanitized file name with a uuid so uploads of
// equally named files never collide.
func objectKey(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || base == "." || base == "/" {
		base = "document"
	}
	return uuid.NewString() + "_" + base
}

func newDocument(key, name, contentType string, size int64) models.Document {
	return models.Document{
		ID:         strings.SplitN(key, "_", 2)[0],
		Name:       name,
		Path:       key,
		MimeType:   contentType,
		Size:       size,
		UploadedAt: time.Now().UTC(),
	}
}

// DocumentURL builds the absolute preview link of a stored document path.
func DocumentURL(baseURL, docPath string) string {
	if strings.HasPrefix(docPath, "http://") || strings.HasPrefix(docPath, "https://") {
		return docPath
	}
	if baseURL == "" {
		return docPath
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(docPath, "/")
}
