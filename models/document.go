package models

import "time"

// Document is an uploaded file attached to a shift.
type Document struct {
	ID         string    `json:"id" bson:"id"`
	Name       string    `json:"name" bson:"name"`
	Path       string    `json:"path" bson:"path"`
	URL        string    `json:"url,omitempty" bson:"url"`
	MimeType   string    `json:"mime_type,omitempty" bson:"mime_type"`
	Size       int64     `json:"size" bson:"size"`
	UploadedAt time.Time `json:"uploaded_at" bson:"uploaded_at"`
}
