package usnshift

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"railshift/models"
	"railshift/routeplan"
)

// ResolveLocation maps a location typed into the form to a location record:
// by numeric id first, then by case-insensitive name. When neither matches
// a stub is returned, because the reference list may not hold every page.
func ResolveLocation(value string, locations []models.Location) models.Location {
	v := strings.TrimSpace(value)
	id, idErr := strconv.ParseInt(v, 10, 64)
	if idErr == nil {
		for _, l := range locations {
			if l.ID == id {
				return l
			}
		}
	}
	for _, l := range locations {
		if strings.EqualFold(strings.TrimSpace(l.Name), v) {
			return l
		}
	}
	stub := models.Location{Name: v}
	if idErr == nil {
		stub.ID = id
	}
	return stub
}

// WagonActions splits a row's wagons into the first action list (every
// selected wagon, tagged ADD) and the second one (kept wagons, tagged KEEP).
func WagonActions(r routeplan.Row) (first, second []models.WagonAction) {
	first = make([]models.WagonAction, 0, len(r.SelectWagon))
	for _, id := range r.SelectWagon {
		first = append(first, models.WagonAction{WagonID: id, Action: models.WagonActionAdd})
	}
	second = make([]models.WagonAction, 0, len(r.SelectSecondWagon))
	for _, id := range r.SelectSecondWagon {
		second = append(second, models.WagonAction{WagonID: id, Action: models.WagonActionKeep})
	}
	return first, second
}

// MaxDays bounds the number of days one request may expand to.
const MaxDays = 366

// ErrRangeTooLong is returned by ExpandDays for ranges over MaxDays days.
var ErrRangeTooLong = fmt.Errorf("usnshift: date range longer than %d days", MaxDays)

// ExpandDays lists every calendar day from start to end, both included.
// An empty end means a single day.
func ExpandDays(start, end string) ([]string, error) {
	from, err := time.Parse(DateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("usnshift: start date %q: %w", start, err)
	}
	if end == "" {
		return []string{from.Format(DateLayout)}, nil
	}
	to, err := time.Parse(DateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("usnshift: end date %q: %w", end, err)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("usnshift: end date %s before start date %s", end, start)
	}
	if to.Sub(from) >= MaxDays*24*time.Hour {
		return nil, ErrRangeTooLong
	}
	var days []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(DateLayout))
	}
	return days, nil
}

// BuildPayload turns the form into the shift request body. It does not
// validate; call Form.Validate first.
func BuildPayload(f *Form, locations []models.Location) (*models.USNShiftRequest, error) {
	days, err := ExpandDays(f.StartDate, f.EndDate)
	if err != nil {
		return nil, err
	}
	req := &models.USNShiftRequest{
		ProductID:    f.ProductID,
		LocomotiveID: f.LocomotiveID,
		Note:         strings.TrimSpace(f.Note),
	}
	for _, d := range days {
		req.Shifts = append(req.Shifts, models.ShiftDay{Date: d, StartTime: f.StartTime, EndTime: f.EndTime})
	}

	for _, r := range f.Route.Rows() {
		first, second := WagonActions(r)
		req.RoutePlanning = append(req.RoutePlanning, models.RouteLeg{
			StartLocation:     ResolveLocation(r.StartLocation, locations),
			ArrivalLocation:   ResolveLocation(r.ArrivalLocation, locations),
			Purpose:           r.SelectPurpose,
			TrainNo:           strings.TrimSpace(r.TrainNo),
			PickupDate:        r.PickupDate,
			OrderIDs:          r.Orders,
			FirstWagonAction:  first,
			SecondWagonAction: second,
		})
	}

	req.Roles = make([]models.USNShiftRole, 0, len(f.Roles))
	for _, s := range f.Roles {
		if s.Disabled {
			continue
		}
		role := models.USNShiftRole{
			RoleID:        s.RoleID,
			EmployeeID:    s.EmployeeID,
			Proximity:     s.Proximity,
			BreakDuration: s.BreakDuration,
			StartDay:      s.StartDay,
		}
		if s.EmployeeID != nil {
			role.Personnels = []models.Personnel{{EmployeeID: *s.EmployeeID}}
		}
		req.Roles = append(req.Roles, role)
	}

	for _, d := range f.ExistingDocuments {
		req.ExistingDocumentIDs = append(req.ExistingDocumentIDs, d.ID)
	}
	return req, nil
}

// Submit validates the form and assembles the payload. Validation problems
// come back as validation.Errors.
func Submit(f *Form, locations []models.Location) (*models.USNShiftRequest, error) {
	if errs := f.Validate(); !errs.Empty() {
		return nil, errs
	}
	return BuildPayload(f, locations)
}
