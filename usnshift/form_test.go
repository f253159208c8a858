package usnshift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railshift/models"
	"railshift/routeplan"
)

var product = models.Product{
	ID:   3,
	Name: "Shunting",
	Roles: []models.ProductRole{
		{RoleID: 1, Name: "Driver"},
		{RoleID: 2, Name: "Shunter"},
	},
}

// validForm returns a form that passes validation.
func validForm(t *testing.T) *Form {
	t.Helper()
	f := NewForm()
	f.StartDate = "2024-06-08"
	f.EndDate = "2024-06-10"
	f.StartTime = "06:00"
	f.EndTime = "14:00"
	f.LocomotiveID = 9
	f.SetProduct(product)
	require.True(t, f.AssignEmployee(1, 100))
	require.True(t, f.AssignEmployee(2, 200))

	row := f.Route.Rows()[0]
	require.NoError(t, f.Route.UpdateRow(row.ID, routeplan.FieldStartLocation, "1"))
	require.NoError(t, f.Route.UpdateRow(row.ID, routeplan.FieldArrivalLocation, "harbour"))
	require.NoError(t, f.Route.UpdateRow(row.ID, routeplan.FieldTrainNo, "T-1"))
	return f
}

func TestSetProduct_CreatesRoleSlots(t *testing.T) {
	f := NewForm()
	f.SetProduct(product)
	require.Len(t, f.Roles, 2)
	assert.Equal(t, int64(3), f.ProductID)
	assert.Equal(t, "Shunter", f.Roles[1].Name)
	assert.False(t, f.ToggleRole(99))
}

func TestValidate_Valid(t *testing.T) {
	assert.Empty(t, validForm(t).Validate())
}

func TestValidate_EnabledRoleNeedsEmployee(t *testing.T) {
	f := validForm(t)
	f.Roles[1].EmployeeID = nil

	errs := f.Validate()
	assert.Equal(t, "Employee is required for Shunter", errs["roles.2.employee"])

	require.True(t, f.ToggleRole(2))
	assert.Empty(t, f.Validate())
}

func TestValidate_DatesAndTimes(t *testing.T) {
	f := validForm(t)
	f.StartDate = "2024-06-10"
	f.EndDate = "2024-06-08"
	f.StartTime = "6am"
	f.EndTime = ""

	errs := f.Validate()
	assert.True(t, errs.Has("endDate"))
	assert.Equal(t, "Time must be HH:MM", errs["startTime"])
	assert.Equal(t, "Time is required", errs["endTime"])

	f = validForm(t)
	f.StartDate = "2024-01-01"
	f.EndDate = "2025-01-01"
	assert.Equal(t, "Date range must not exceed 366 days", f.Validate()["endDate"])
}

func TestValidate_IncludesRouteErrors(t *testing.T) {
	f := validForm(t)
	row := f.Route.Rows()[0]
	require.NoError(t, f.Route.UpdateRow(row.ID, routeplan.FieldSelectPurpose, models.PurposeSupplying))

	errs := f.Validate()
	assert.True(t, errs.Has("routePlanning[0].orders"))
}

func TestReset_KeepsCascadePolicy(t *testing.T) {
	f := NewForm(routeplan.WithCascade(routeplan.CascadeFull))
	f.StartDate = "2024-01-01"
	f.Route.AddRow()

	f.Reset()

	assert.Empty(t, f.StartDate)
	assert.Equal(t, 1, f.Route.Len())
}

func TestFromShift_RoundTrip(t *testing.T) {
	emp := int64(100)
	shift := &models.USNShift{
		ID: 5, ProductID: 3, LocomotiveID: 9,
		Date: "2024-06-08", StartTime: "06:00", EndTime: "14:00",
		Roles: []models.USNShiftRole{
			{RoleID: 1, Personnels: []models.Personnel{{EmployeeID: emp}}},
		},
		RoutePlanning: []models.RouteLeg{{
			StartLocation:     models.Location{ID: 1, Name: "Depot"},
			ArrivalLocation:   models.Location{Name: "Nowhere"},
			TrainNo:           "T-1",
			FirstWagonAction:  []models.WagonAction{{WagonID: 4, Action: "ADD"}, {WagonID: 5, Action: "ADD"}},
			SecondWagonAction: []models.WagonAction{{WagonID: 5, Action: "KEEP"}},
		}},
		Documents: []models.Document{{ID: "d1", Name: "a.pdf"}},
	}

	f := FromShift(shift, &product)

	assert.Equal(t, int64(5), f.ShiftID)
	require.Len(t, f.Roles, 2)
	require.NotNil(t, f.Roles[0].EmployeeID)
	assert.Equal(t, emp, *f.Roles[0].EmployeeID)
	assert.True(t, f.Roles[1].Disabled)

	rows := f.Route.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0].StartLocation)
	assert.Equal(t, "Nowhere", rows[0].ArrivalLocation)
	assert.Equal(t, []int64{4, 5}, rows[0].SelectWagon)
	assert.Equal(t, []int64{5}, rows[0].SelectSecondWagon)

	f.RemoveExistingDocument("d1")
	assert.Empty(t, f.ExistingDocuments)
}
