package usnshift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railshift/models"
	"railshift/routeplan"
	"railshift/validation"
)

var locations = []models.Location{
	{ID: 1, Name: "Depot"},
	{ID: 2, Name: "Harbour"},
}

func TestResolveLocation(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  models.Location
	}{
		{name: "by id", value: "2", want: locations[1]},
		{name: "by name any case", value: "  dEPOT ", want: locations[0]},
		{name: "unknown id becomes stub", value: "77", want: models.Location{ID: 77, Name: "77"}},
		{name: "unknown name becomes stub", value: "Yard 9", want: models.Location{Name: "Yard 9"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveLocation(tt.value, locations))
		})
	}
}

func TestExpandDays_InclusiveRange(t *testing.T) {
	days, err := ExpandDays("2024-06-08", "2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-08", "2024-06-09", "2024-06-10"}, days)
}

func TestExpandDays_MonthBoundaryAndSingleDay(t *testing.T) {
	days, err := ExpandDays("2024-02-28", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-02-28", "2024-02-29", "2024-03-01"}, days)

	days, err = ExpandDays("2024-06-08", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-08"}, days)

	_, err = ExpandDays("2024-06-10", "2024-06-08")
	assert.Error(t, err)
	_, err = ExpandDays("08.06.2024", "")
	assert.Error(t, err)
}

func TestExpandDays_RangeIsCapped(t *testing.T) {
	days, err := ExpandDays("2024-01-01", "2024-12-31")
	require.NoError(t, err)
	assert.Len(t, days, MaxDays)

	_, err = ExpandDays("2024-01-01", "2025-01-01")
	assert.ErrorIs(t, err, ErrRangeTooLong)
	_, err = ExpandDays("2024-01-01", "9999-12-31")
	assert.ErrorIs(t, err, ErrRangeTooLong)
}

func TestBuildPayload_DateRangeExpandsPerDay(t *testing.T) {
	f := validForm(t)

	req, err := BuildPayload(f, locations)
	require.NoError(t, err)

	require.Len(t, req.Shifts, 3)
	for i, d := range []string{"2024-06-08", "2024-06-09", "2024-06-10"} {
		assert.Equal(t, models.ShiftDay{Date: d, StartTime: "06:00", EndTime: "14:00"}, req.Shifts[i])
	}
	assert.Equal(t, int64(3), req.ProductID)
	assert.Equal(t, int64(9), req.LocomotiveID)
}

func TestBuildPayload_FirstWagonActionsMatchSelection(t *testing.T) {
	f := validForm(t)
	row := f.Route.Rows()[0]
	for _, id := range []int64{31, 32, 33} {
		require.NoError(t, f.Route.ToggleWagon(row.ID, routeplan.FirstSet, id, routeplan.ModeAdd))
	}
	require.NoError(t, f.Route.ToggleWagon(row.ID, routeplan.SecondSet, 32, routeplan.ModeRemove))

	req, err := BuildPayload(f, locations)
	require.NoError(t, err)
	require.Len(t, req.RoutePlanning, 1)
	leg := req.RoutePlanning[0]

	selected, _ := f.Route.Row(row.ID)
	require.Len(t, leg.FirstWagonAction, len(selected.SelectWagon))
	for i, id := range selected.SelectWagon {
		assert.Equal(t, models.WagonAction{WagonID: id, Action: models.WagonActionAdd}, leg.FirstWagonAction[i])
	}
	assert.Equal(t, []models.WagonAction{
		{WagonID: 31, Action: models.WagonActionKeep},
		{WagonID: 33, Action: models.WagonActionKeep},
	}, leg.SecondWagonAction)

	assert.Equal(t, locations[0], leg.StartLocation)
	assert.Equal(t, locations[1], leg.ArrivalLocation)
}

func TestBuildPayload_SkipsDisabledRoles(t *testing.T) {
	f := validForm(t)
	require.True(t, f.ToggleRole(2))
	f.ExistingDocuments = []models.Document{{ID: "doc-1"}}

	req, err := BuildPayload(f, locations)
	require.NoError(t, err)
	require.Len(t, req.Roles, 1)
	assert.Equal(t, int64(1), req.Roles[0].RoleID)
	assert.Equal(t, []models.Personnel{{EmployeeID: 100}}, req.Roles[0].Personnels)
	assert.Equal(t, []string{"doc-1"}, req.ExistingDocumentIDs)
}

func TestSubmit_BlocksOnSupplyingWithoutOrders(t *testing.T) {
	f := validForm(t)
	row := f.Route.Rows()[0]
	require.NoError(t, f.Route.UpdateRow(row.ID, routeplan.FieldSelectPurpose, models.PurposeSupplying))

	req, err := Submit(f, locations)
	assert.Nil(t, req)
	errs, ok := validation.As(err)
	require.True(t, ok)
	assert.Contains(t, errs, "routePlanning[0].orders")
}
