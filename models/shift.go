package models

import "time"

const (
	ShiftStatusPlanned   = "PLANNED"
	ShiftStatusActive    = "ACTIVE"
	ShiftStatusCompleted = "COMPLETED"
	ShiftStatusCancelled = "CANCELLED"
)

// ShiftRole is one personnel role on a shift. Employee assignment is
// optional until the shift is submitted.
type ShiftRole struct {
	RoleID        int64  `json:"role_id" bson:"role_id"`
	EmployeeID    *int64 `json:"employee_id,omitempty" bson:"employee_id"`
	Proximity     string `json:"proximity,omitempty" bson:"proximity"`
	BreakDuration int    `json:"break_duration" bson:"break_duration"`
	StartDay      string `json:"start_day,omitempty" bson:"start_day"`
	IsDisabled    bool   `json:"isDisabled" bson:"is_disabled"`
}

type Shift struct {
	ID           int64       `json:"id" bson:"_id" db:"id"`
	CustomerID   *int64      `json:"customer_id,omitempty" bson:"customer_id" db:"customer_id"`
	ProductID    int64       `json:"product_id" bson:"product_id" db:"product_id"`
	LocomotiveID *int64      `json:"locomotive_id,omitempty" bson:"locomotive_id" db:"locomotive_id"`
	Date         string      `json:"date" bson:"date" db:"date"`
	StartTime    string      `json:"start_time" bson:"start_time" db:"start_time"`
	EndTime      string      `json:"end_time" bson:"end_time" db:"end_time"`
	Status       string      `json:"status" bson:"status" db:"status"`
	Note         string      `json:"note,omitempty" bson:"note" db:"note"`
	Roles        []ShiftRole `json:"shift_roles" bson:"shift_roles" db:"shift_roles"`
	CreatedAt    time.Time   `json:"created_at" bson:"created_at" db:"created_at"`
	UpdatedAt    *time.Time  `json:"updated_at,omitempty" bson:"updated_at" db:"updated_at"`
}

// ShiftRequest creates one Shift per day between StartDate and EndDate.
type ShiftRequest struct {
	CustomerID   *int64      `json:"customer_id"`
	ProductID    int64       `json:"product_id" validate:"required"`
	LocomotiveID *int64      `json:"locomotive_id"`
	StartDate    string      `json:"start_date" validate:"required"`
	EndDate      string      `json:"end_date"`
	StartTime    string      `json:"start_time" validate:"required"`
	EndTime      string      `json:"end_time" validate:"required"`
	Note         string      `json:"note"`
	Roles        []ShiftRole `json:"shift_roles"`
}
