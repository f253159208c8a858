package usnshift

import (
	"railshift/models"
	"railshift/routeplan"
)

// RowInput is one route row as the form posts it.
type RowInput struct {
	StartLocation     string  `json:"startLocation"`
	ArrivalLocation   string  `json:"arrivalLocation"`
	SelectWagon       []int64 `json:"selectWagon"`
	SelectSecondWagon []int64 `json:"selectSecondWagon"`
	SelectPurpose     string  `json:"selectPurpose"`
	Orders            []int64 `json:"orders"`
	TrainNo           string  `json:"train_no"`
	PickupDate        string  `json:"pickup_date"`
}

type RoleInput struct {
	RoleID        int64  `json:"role_id"`
	Name          string `json:"name,omitempty"`
	EmployeeID    *int64 `json:"employee_id"`
	Proximity     string `json:"proximity"`
	BreakDuration int    `json:"break_duration"`
	StartDay      string `json:"start_day"`
	IsDisabled    bool   `json:"isDisabled"`
}

// FormInput is the raw form state accepted by the preview endpoint.
type FormInput struct {
	StartDate           string      `json:"start_date"`
	EndDate             string      `json:"end_date"`
	StartTime           string      `json:"start_time"`
	EndTime             string      `json:"end_time"`
	ProductID           int64       `json:"product_id"`
	LocomotiveID        int64       `json:"locomotive_id"`
	Note                string      `json:"note"`
	RoutePlanning       []RowInput  `json:"route_planning"`
	Roles               []RoleInput `json:"roles"`
	ExistingDocumentIDs []string    `json:"existing_document_ids"`
}

// Form rebuilds form state from the input.
func (in FormInput) Form(opts ...routeplan.Option) *Form {
	f := NewForm(opts...)
	f.StartDate = in.StartDate
	f.EndDate = in.EndDate
	f.StartTime = in.StartTime
	f.EndTime = in.EndTime
	f.ProductID = in.ProductID
	f.LocomotiveID = in.LocomotiveID
	f.Note = in.Note

	for _, r := range in.Roles {
		f.Roles = append(f.Roles, RoleSlot{
			RoleID:        r.RoleID,
			Name:          r.Name,
			EmployeeID:    r.EmployeeID,
			Proximity:     r.Proximity,
			BreakDuration: r.BreakDuration,
			StartDay:      r.StartDay,
			Disabled:      r.IsDisabled,
		})
	}
	for _, id := range in.ExistingDocumentIDs {
		f.ExistingDocuments = append(f.ExistingDocuments, models.Document{ID: id})
	}

	rows := make([]routeplan.Row, 0, len(in.RoutePlanning))
	for _, r := range in.RoutePlanning {
		rows = append(rows, routeplan.Row{
			StartLocation:     r.StartLocation,
			ArrivalLocation:   r.ArrivalLocation,
			SelectWagon:       r.SelectWagon,
			SelectSecondWagon: r.SelectSecondWagon,
			SelectPurpose:     r.SelectPurpose,
			Orders:            r.Orders,
			TrainNo:           r.TrainNo,
			PickupDate:        r.PickupDate,
		})
	}
	f.Route.Load(rows)
	return f
}
