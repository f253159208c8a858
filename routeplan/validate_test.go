package routeplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railshift/models"
)

func TestValidate_RequiredFields(t *testing.T) {
	p := New()
	errs := p.Validate()

	assert.True(t, errs.Has("routePlanning[0].startLocation"))
	assert.True(t, errs.Has("routePlanning[0].arrivalLocation"))
	assert.True(t, errs.Has("routePlanning[0].train_no"))
	assert.False(t, errs.Has("routePlanning[0].orders"))
}

func TestValidate_SupplyingNeedsOrders(t *testing.T) {
	p := New()
	id := p.Rows()[0].ID
	require.NoError(t, p.UpdateRow(id, FieldStartLocation, "A"))
	require.NoError(t, p.UpdateRow(id, FieldArrivalLocation, "B"))
	require.NoError(t, p.UpdateRow(id, FieldTrainNo, "4711"))
	require.NoError(t, p.UpdateRow(id, FieldSelectPurpose, models.PurposeSupplying))
	second := p.AddRow()
	require.NoError(t, p.UpdateRow(second.ID, FieldArrivalLocation, "C"))
	require.NoError(t, p.UpdateRow(second.ID, FieldTrainNo, "4712"))

	errs := p.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "At least one order is required when supplying", errs[Key(0, FieldOrders)])

	require.NoError(t, p.UpdateRow(id, FieldOrders, []int64{100}))
	assert.True(t, p.Validate().Empty())
}
