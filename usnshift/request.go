package usnshift

import (
	"fmt"
	"strings"
	"time"

	"railshift/models"
	"railshift/routeplan"
	"railshift/validation"
)

// ValidateRequest checks an assembled request on the receiving side. It
// mirrors Form.Validate so a payload that passed the form passes here too.
func ValidateRequest(req *models.USNShiftRequest) validation.Errors {
	errs := validation.Errors{}
	if len(req.Shifts) == 0 {
		errs.Add("shifts", "At least one shift day is required")
	}
	if len(req.Shifts) > MaxDays {
		errs.Add("shifts", fmt.Sprintf("At most %d shift days are allowed", MaxDays))
	}
	for i, d := range req.Shifts {
		key := fmt.Sprintf("shifts[%d]", i)
		if _, err := time.Parse(DateLayout, d.Date); err != nil {
			errs.Add(key+".date", "Date must be YYYY-MM-DD")
		}
		if _, err := time.Parse(TimeLayout, d.StartTime); err != nil {
			errs.Add(key+".start_time", "Time must be HH:MM")
		}
		if _, err := time.Parse(TimeLayout, d.EndTime); err != nil {
			errs.Add(key+".end_time", "Time must be HH:MM")
		}
	}
	if req.ProductID == 0 {
		errs.Add("product", "Product is required")
	}
	if req.LocomotiveID == 0 {
		errs.Add("locomotive", "Locomotive is required")
	}

	for i, leg := range req.RoutePlanning {
		if leg.StartLocation.ID == 0 && strings.TrimSpace(leg.StartLocation.Name) == "" {
			errs.Add(routeplan.Key(i, routeplan.FieldStartLocation), "Start location is required")
		}
		if leg.ArrivalLocation.ID == 0 && strings.TrimSpace(leg.ArrivalLocation.Name) == "" {
			errs.Add(routeplan.Key(i, routeplan.FieldArrivalLocation), "Arrival location is required")
		}
		if strings.TrimSpace(leg.TrainNo) == "" {
			errs.Add(routeplan.Key(i, routeplan.FieldTrainNo), "Train number is required")
		}
		if leg.Purpose == models.PurposeSupplying && len(leg.OrderIDs) == 0 {
			errs.Add(routeplan.Key(i, routeplan.FieldOrders), "At least one order is required when supplying")
		}
	}
	return errs
}

// Shifts builds one USN shift per requested day. Every shift gets the
// same route, roles and documents.
func Shifts(req *models.USNShiftRequest, docs []models.Document) []models.USNShift {
	shifts := make([]models.USNShift, 0, len(req.Shifts))
	for _, d := range req.Shifts {
		shifts = append(shifts, models.USNShift{
			ProductID:     req.ProductID,
			LocomotiveID:  req.LocomotiveID,
			Date:          d.Date,
			StartTime:     d.StartTime,
			EndTime:       d.EndTime,
			Status:        models.ShiftStatusPlanned,
			Note:          req.Note,
			RoutePlanning: req.RoutePlanning,
			Roles:         req.Roles,
			Documents:     docs,
		})
	}
	return shifts
}
