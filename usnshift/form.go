// Package usnshift holds the state of the USN shift form and turns it into
// the request body of the shift endpoints.
package usnshift

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"railshift/models"
	"railshift/routeplan"
	"railshift/validation"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// RoleSlot is the form state of one personnel role of the selected product.
type RoleSlot struct {
	RoleID        int64
	Name          string
	EmployeeID    *int64
	Proximity     string
	BreakDuration int
	StartDay      string
	Disabled      bool
}

// Upload is a new file attached in the form.
type Upload struct {
	Name        string
	ContentType string
	Data        []byte
}

// Form aggregates the editable state of the USN shift screen.
type Form struct {
	ShiftID      int64
	StartDate    string
	EndDate      string
	StartTime    string
	EndTime      string
	ProductID    int64
	LocomotiveID int64
	Note         string

	Route             *routeplan.Plan
	Roles             []RoleSlot
	Documents         []Upload
	ExistingDocuments []models.Document

	opts []routeplan.Option
}

func NewForm(opts ...routeplan.Option) *Form {
	return &Form{Route: routeplan.New(opts...), opts: opts}
}

// Reset discards all state, e.g. after a successful submit.
func (f *Form) Reset() {
	*f = Form{Route: routeplan.New(f.opts...), opts: f.opts}
}

// SetProduct selects a product and creates one role slot per role it needs.
func (f *Form) SetProduct(p models.Product) {
	f.ProductID = p.ID
	f.Roles = make([]RoleSlot, 0, len(p.Roles))
	for _, r := range p.Roles {
		f.Roles = append(f.Roles, RoleSlot{RoleID: r.RoleID, Name: r.Name})
	}
}

func (f *Form) slot(roleID int64) *RoleSlot {
	i := slices.IndexFunc(f.Roles, func(s RoleSlot) bool { return s.RoleID == roleID })
	if i < 0 {
		return nil
	}
	return &f.Roles[i]
}

// ToggleRole flips a role between enabled and disabled. It reports false for
// roles the product does not have.
func (f *Form) ToggleRole(roleID int64) bool {
	s := f.slot(roleID)
	if s == nil {
		return false
	}
	s.Disabled = !s.Disabled
	return true
}

func (f *Form) AssignEmployee(roleID, employeeID int64) bool {
	s := f.slot(roleID)
	if s == nil {
		return false
	}
	id := employeeID
	s.EmployeeID = &id
	return true
}

// RemoveExistingDocument drops a server document from the form.
func (f *Form) RemoveExistingDocument(id string) {
	f.ExistingDocuments = slices.DeleteFunc(f.ExistingDocuments, func(d models.Document) bool {
		return d.ID == id
	})
}

// Validate returns every problem blocking a submit, keyed by form field.
func (f *Form) Validate() validation.Errors {
	errs := validation.Errors{}

	start, startErr := time.Parse(DateLayout, f.StartDate)
	switch {
	case strings.TrimSpace(f.StartDate) == "":
		errs.Add("startDate", "Start date is required")
	case startErr != nil:
		errs.Add("startDate", "Start date must be YYYY-MM-DD")
	}
	if f.EndDate != "" {
		end, err := time.Parse(DateLayout, f.EndDate)
		switch {
		case err != nil:
			errs.Add("endDate", "End date must be YYYY-MM-DD")
		case startErr == nil && end.Before(start):
			errs.Add("endDate", "End date must not be before start date")
		case startErr == nil && end.Sub(start) >= MaxDays*24*time.Hour:
			errs.Add("endDate", fmt.Sprintf("Date range must not exceed %d days", MaxDays))
		}
	}
	for key, v := range map[string]string{"startTime": f.StartTime, "endTime": f.EndTime} {
		if strings.TrimSpace(v) == "" {
			errs.Add(key, "Time is required")
		} else if _, err := time.Parse(TimeLayout, v); err != nil {
			errs.Add(key, "Time must be HH:MM")
		}
	}
	if f.ProductID == 0 {
		errs.Add("product", "Product is required")
	}
	if f.LocomotiveID == 0 {
		errs.Add("locomotive", "Locomotive is required")
	}
	for _, s := range f.Roles {
		if !s.Disabled && s.EmployeeID == nil {
			errs.Add("roles."+strconv.FormatInt(s.RoleID, 10)+".employee", "Employee is required for "+roleLabel(s))
		}
	}
	errs.Merge(f.Route.Validate())
	return errs
}

func roleLabel(s RoleSlot) string {
	if s.Name != "" {
		return s.Name
	}
	return "role " + strconv.FormatInt(s.RoleID, 10)
}

// FromShift fills the form from a stored shift for editing.
func FromShift(s *models.USNShift, product *models.Product, opts ...routeplan.Option) *Form {
	f := NewForm(opts...)
	f.ShiftID = s.ID
	f.StartDate = s.Date
	f.EndDate = s.Date
	f.StartTime = s.StartTime
	f.EndTime = s.EndTime
	f.LocomotiveID = s.LocomotiveID
	f.Note = s.Note
	f.ExistingDocuments = slices.Clone(s.Documents)
	if product != nil {
		f.SetProduct(*product)
	} else {
		f.ProductID = s.ProductID
	}
	for _, r := range s.Roles {
		if f.slot(r.RoleID) == nil {
			f.Roles = append(f.Roles, RoleSlot{RoleID: r.RoleID})
		}
		slot := f.slot(r.RoleID)
		slot.EmployeeID = r.EmployeeID
		if slot.EmployeeID == nil && len(r.Personnels) > 0 {
			id := r.Personnels[0].EmployeeID
			slot.EmployeeID = &id
		}
		slot.Proximity = r.Proximity
		slot.BreakDuration = r.BreakDuration
		slot.StartDay = r.StartDay
	}
	// product roles missing from the stored shift were switched off
	if product != nil {
		for i := range f.Roles {
			if !slices.ContainsFunc(s.Roles, func(r models.USNShiftRole) bool { return r.RoleID == f.Roles[i].RoleID }) {
				f.Roles[i].Disabled = true
			}
		}
	}

	rows := make([]routeplan.Row, 0, len(s.RoutePlanning))
	for _, leg := range s.RoutePlanning {
		rows = append(rows, routeplan.Row{
			StartLocation:     locationValue(leg.StartLocation),
			ArrivalLocation:   locationValue(leg.ArrivalLocation),
			SelectWagon:       actionIDs(leg.FirstWagonAction),
			SelectSecondWagon: actionIDs(leg.SecondWagonAction),
			SelectPurpose:     leg.Purpose,
			Orders:            slices.Clone(leg.OrderIDs),
			TrainNo:           leg.TrainNo,
			PickupDate:        leg.PickupDate,
		})
	}
	f.Route.Load(rows)
	return f
}

func locationValue(l models.Location) string {
	if l.ID > 0 {
		return strconv.FormatInt(l.ID, 10)
	}
	return l.Name
}

func actionIDs(actions []models.WagonAction) []int64 {
	ids := make([]int64, 0, len(actions))
	for _, a := range actions {
		ids = append(ids, a.WagonID)
	}
	return ids
}
