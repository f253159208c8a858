package routeplan

import (
	"fmt"
	"strings"

	"railshift/models"
	"railshift/validation"
)

// Key is the error key of a row field, e.g. routePlanning[2].train_no.
func Key(index int, field Field) string {
	return fmt.Sprintf("routePlanning[%d].%s", index, field)
}

// Validate checks every row for the fields a submit needs.
func (p *Plan) Validate() validation.Errors {
	errs := validation.Errors{}
	for i, r := range p.rows {
		if strings.TrimSpace(r.StartLocation) == "" {
			errs.Add(Key(i, FieldStartLocation), "Start location is required")
		}
		if strings.TrimSpace(r.ArrivalLocation) == "" {
			errs.Add(Key(i, FieldArrivalLocation), "Arrival location is required")
		}
		if strings.TrimSpace(r.TrainNo) == "" {
			errs.Add(Key(i, FieldTrainNo), "Train number is required")
		}
		if r.SelectPurpose == models.PurposeSupplying && len(r.Orders) == 0 {
			errs.Add(Key(i, FieldOrders), "At least one order is required when supplying")
		}
	}
	return errs
}
