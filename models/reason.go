package models

import "time"

type Reason struct {
	ID          int64      `json:"id" bson:"_id" db:"id"`
	Name        string     `json:"name" bson:"name" db:"name" validate:"required"`
	Description string     `json:"description,omitempty" bson:"description" db:"description"`
	Type        string     `json:"type,omitempty" bson:"type" db:"type"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at" db:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" bson:"updated_at" db:"updated_at"`
}
