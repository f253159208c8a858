package models

import (
	"strings"
	"time"
)

type Employee struct {
	ID        int64     `json:"id" bson:"_id" db:"id"`
	FirstName string    `json:"first_name" bson:"first_name" db:"first_name" validate:"required"`
	LastName  string    `json:"last_name" bson:"last_name" db:"last_name" validate:"required"`
	Email     string    `json:"email,omitempty" bson:"email" db:"email" validate:"omitempty,email"`
	Phone     string    `json:"phone,omitempty" bson:"phone" db:"phone"`
	RoleIDs   []int64   `json:"role_ids" bson:"role_ids" db:"role_ids"`
	Rating    Rating    `json:"rating" bson:"rating" db:"rating"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

type Customer struct {
	ID        int64     `json:"id" bson:"_id" db:"id"`
	Name      string    `json:"name" bson:"name" db:"name" validate:"required"`
	Email     string    `json:"email,omitempty" bson:"email" db:"email" validate:"omitempty,email"`
	Phone     string    `json:"phone,omitempty" bson:"phone" db:"phone"`
	Address   string    `json:"address,omitempty" bson:"address" db:"address"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}
