package models

import "time"

type Location struct {
	ID        int64     `json:"id" bson:"_id" db:"id"`
	Name      string    `json:"name" bson:"name" db:"name" validate:"required"`
	Code      string    `json:"code,omitempty" bson:"code" db:"code"`
	Type      string    `json:"type,omitempty" bson:"type" db:"type"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}

// Label is the text shown for a location in selection lists.
func (l *Location) Label() string {
	if l == nil {
		return ""
	}
	if l.Code != "" {
		return l.Name + " (" + l.Code + ")"
	}
	return l.Name
}
