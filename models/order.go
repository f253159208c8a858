package models

import "time"

type Order struct {
	ID           int64      `json:"id" bson:"_id" db:"id"`
	OrderNo      string     `json:"order_no" bson:"order_no" db:"order_no" validate:"required"`
	CustomerID   *int64     `json:"customer_id,omitempty" bson:"customer_id" db:"customer_id"`
	LocationID   *int64     `json:"location_id,omitempty" bson:"location_id" db:"location_id"`
	Status       string     `json:"status" bson:"status" db:"status"`
	WagonCount   int        `json:"wagon_count" bson:"wagon_count" db:"wagon_count"`
	DeliveryDate *time.Time `json:"delivery_date,omitempty" bson:"delivery_date" db:"delivery_date"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at" db:"created_at"`
}
