package models

import "time"

type Locomotive struct {
	ID        int64     `json:"id" bson:"_id" db:"id"`
	Name      string    `json:"name" bson:"name" db:"name" validate:"required"`
	Number    string    `json:"number" bson:"number" db:"number"`
	Status    string    `json:"status" bson:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}
