package models

import "time"

type Role struct {
	ID        int64     `json:"id" bson:"_id" db:"id"`
	Name      string    `json:"name" bson:"name" db:"name" validate:"required"`
	ShortName string    `json:"short_name,omitempty" bson:"short_name" db:"short_name"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}

// ProductRole is one personnel role a product requires on a shift.
type ProductRole struct {
	RoleID int64  `json:"role_id" bson:"role_id"`
	Name   string `json:"name" bson:"name"`
}

type Product struct {
	ID         int64         `json:"id" bson:"_id" db:"id"`
	Name       string        `json:"name" bson:"name" db:"name" validate:"required"`
	CustomerID *int64        `json:"customer_id,omitempty" bson:"customer_id" db:"customer_id"`
	Roles      []ProductRole `json:"roles" bson:"roles" db:"roles"`
	CreatedAt  time.Time     `json:"created_at" bson:"created_at" db:"created_at"`
}
