package models

import "time"

const (
	WagonStatusEmpty       = "EMPTY"
	WagonStatusLoaded      = "LOADED"
	WagonStatusToBeLoaded  = "TO_BE_LOADED"
	WagonStatusDamaged     = "DAMAGED"
	WagonStatusInTransit   = "IN_TRANSIT"
	WagonStatusUnavailable = "UNAVAILABLE"
)

type Wagon struct {
	ID                int64     `json:"id" bson:"_id" db:"id"`
	WagonNumber       string    `json:"wagon_number" bson:"wagon_number" db:"wagon_number" validate:"required"`
	Type              string    `json:"type" bson:"type" db:"type"`
	Status            string    `json:"status" bson:"status" db:"status"`
	NextStatus        string    `json:"next_status,omitempty" bson:"next_status" db:"next_status"`
	CurrentLocationID *int64    `json:"current_location_id,omitempty" bson:"current_location_id" db:"current_location_id"`
	ArrivalLocationID *int64    `json:"arrival_location_id,omitempty" bson:"arrival_location_id" db:"arrival_location_id"`
	Capacity          float64   `json:"capacity" bson:"capacity" db:"capacity"`
	Rail              string    `json:"rail,omitempty" bson:"rail" db:"rail"`
	Position          int       `json:"position" bson:"position" db:"position"`
	Axles             int       `json:"axles" bson:"axles" db:"axles"`
	TareWeight        float64   `json:"tare_weight" bson:"tare_weight" db:"tare_weight"`
	LoadWeight        float64   `json:"load_weight" bson:"load_weight" db:"load_weight"`
	BrakeWeight       float64   `json:"brake_weight" bson:"brake_weight" db:"brake_weight"`
	Remarks           string    `json:"remarks,omitempty" bson:"remarks" db:"remarks"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at" db:"created_at"`

	// Nested objects for responses (denormalized)
	CurrentLocation *Location `json:"current_location,omitempty" bson:"-"`
	ArrivalLocation *Location `json:"arrival_location,omitempty" bson:"-"`
}

// WagonOption is the flattened view of a wagon used by selection lists.
type WagonOption struct {
	ID              int64   `json:"id"`
	WagonNumber     string  `json:"wagon_number"`
	Status          string  `json:"status"`
	NextStatus      string  `json:"next_status,omitempty"`
	CurrentLocation string  `json:"current_location"`
	ArrivalLocation string  `json:"arrival_location"`
	Type            string  `json:"type"`
	Capacity        float64 `json:"capacity"`
	Rail            string  `json:"rail,omitempty"`
	Position        int     `json:"position"`
}

func NewWagonOption(w Wagon) WagonOption {
	return WagonOption{
		ID:              w.ID,
		WagonNumber:     w.WagonNumber,
		Status:          w.Status,
		NextStatus:      w.NextStatus,
		CurrentLocation: w.CurrentLocation.Label(),
		ArrivalLocation: w.ArrivalLocation.Label(),
		Type:            w.Type,
		Capacity:        w.Capacity,
		Rail:            w.Rail,
		Position:        w.Position,
	}
}

// WagonStatusUpdate is the body of a wagon status change.
type WagonStatusUpdate struct {
	Status     string `json:"status" validate:"required"`
	NextStatus string `json:"next_status"`
}

// WagonPositionUpdate moves a wagon to a location/rail/position.
type WagonPositionUpdate struct {
	LocationID int64  `json:"location_id" validate:"required"`
	Rail       string `json:"rail"`
	Position   int    `json:"position" validate:"gte=0"`
}
