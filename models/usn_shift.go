package models

import "time"

const (
	WagonActionAdd  = "ADD"
	WagonActionKeep = "KEEP"

	PurposeSupplying = "Supplying"
	PurposeCollect   = "Collecting"
	PurposeTransfer  = "Transfer"
)

// WagonAction tags a wagon id with what happens to it on a leg.
type WagonAction struct {
	WagonID int64  `json:"wagon_id" bson:"wagon_id"`
	Action  string `json:"action" bson:"action"`
}

// RouteLeg is the persisted form of one route-planning row.
type RouteLeg struct {
	StartLocation     Location      `json:"start_location" bson:"start_location"`
	ArrivalLocation   Location      `json:"arrival_location" bson:"arrival_location"`
	Purpose           string        `json:"purpose,omitempty" bson:"purpose"`
	TrainNo           string        `json:"train_no" bson:"train_no"`
	PickupDate        string        `json:"pickup_date,omitempty" bson:"pickup_date"`
	OrderIDs          []int64       `json:"order_ids" bson:"order_ids"`
	FirstWagonAction  []WagonAction `json:"first_wagon_action" bson:"first_wagon_action"`
	SecondWagonAction []WagonAction `json:"second_wagon_action" bson:"second_wagon_action"`
}

// Personnel links an employee to a USN shift role. Employee is only
// populated on responses and may be missing.
type Personnel struct {
	EmployeeID int64     `json:"employee_id" bson:"employee_id"`
	Employee   *Employee `json:"employee,omitempty" bson:"-"`
}

type USNShiftRole struct {
	RoleID        int64       `json:"role_id" bson:"role_id"`
	EmployeeID    *int64      `json:"employee_id,omitempty" bson:"employee_id"`
	Proximity     string      `json:"proximity,omitempty" bson:"proximity"`
	BreakDuration int         `json:"break_duration" bson:"break_duration"`
	StartDay      string      `json:"start_day,omitempty" bson:"start_day"`
	Personnels    []Personnel `json:"usn_shift_personnels,omitempty" bson:"usn_shift_personnels"`
}

type USNShift struct {
	ID            int64          `json:"id" bson:"_id" db:"id"`
	ProductID     int64          `json:"product_id" bson:"product_id" db:"product_id"`
	LocomotiveID  int64          `json:"locomotive_id" bson:"locomotive_id" db:"locomotive_id"`
	Date          string         `json:"date" bson:"date" db:"date"`
	StartTime     string         `json:"start_time" bson:"start_time" db:"start_time"`
	EndTime       string         `json:"end_time" bson:"end_time" db:"end_time"`
	Status        string         `json:"status" bson:"status" db:"status"`
	Note          string         `json:"note,omitempty" bson:"note" db:"note"`
	RoutePlanning []RouteLeg     `json:"route_planning" bson:"route_planning" db:"route_planning"`
	Roles         []USNShiftRole `json:"usn_shift_roles" bson:"usn_shift_roles" db:"usn_shift_roles"`
	Documents     []Document     `json:"documents" bson:"documents" db:"documents"`
	CreatedAt     time.Time      `json:"created_at" bson:"created_at" db:"created_at"`
	UpdatedAt     *time.Time     `json:"updated_at,omitempty" bson:"updated_at" db:"updated_at"`
}

// ShiftDay is one calendar day of a date-ranged shift request.
type ShiftDay struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// USNShiftRequest is the body sent to create or update USN shifts.
type USNShiftRequest struct {
	Shifts              []ShiftDay     `json:"shifts"`
	ProductID           int64          `json:"product_id"`
	LocomotiveID        int64          `json:"locomotive_id"`
	RoutePlanning       []RouteLeg     `json:"route_planning"`
	Roles               []USNShiftRole `json:"usn_shift_roles"`
	ExistingDocumentIDs []string       `json:"existing_document_ids,omitempty"`
	Note                string         `json:"note,omitempty"`
}

// WagonIDs returns every wagon referenced by the shift's legs, first seen order.
func (s *USNShift) WagonIDs() []int64 {
	seen := make(map[int64]bool)
	var ids []int64
	for _, leg := range s.RoutePlanning {
		for _, set := range [][]WagonAction{leg.FirstWagonAction, leg.SecondWagonAction} {
			for _, a := range set {
				if !seen[a.WagonID] {
					seen[a.WagonID] = true
					ids = append(ids, a.WagonID)
				}
			}
		}
	}
	return ids
}
