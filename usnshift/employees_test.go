package usnshift

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"railshift/models"
)

type fakeFetcher map[int64]*models.Employee

func (f fakeFetcher) GetEmployee(_ context.Context, id int64) (*models.Employee, error) {
	if e, ok := f[id]; ok {
		return e, nil
	}
	return nil, errors.New("not found")
}

func ptr(v int64) *int64 { return &v }

func TestResolveEmployees_FetchesMissingAndWarns(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	roles := []models.USNShiftRole{
		{RoleID: 1, EmployeeID: ptr(1)},
		{RoleID: 2, Personnels: []models.Personnel{{EmployeeID: 2}, {EmployeeID: 3}}},
	}
	loaded := []models.Employee{{ID: 1, FirstName: "Ada"}}
	fetcher := fakeFetcher{2: {ID: 2, FirstName: "Bo"}}

	got := ResolveEmployees(context.Background(), roles, loaded, fetcher, zap.New(core))

	assert.Len(t, got, 2)
	assert.Equal(t, int64(2), got[1].ID)
	assert.Equal(t, 1, logs.Len())
	assert.Equal(t, int64(3), logs.All()[0].ContextMap()["employee_id"])
}

func TestAttachEmployees(t *testing.T) {
	s := &models.USNShift{Roles: []models.USNShiftRole{
		{RoleID: 1, Personnels: []models.Personnel{{EmployeeID: 2}, {EmployeeID: 5}}},
	}}
	AttachEmployees(s, []models.Employee{{ID: 2, FirstName: "Bo"}})

	assert.Equal(t, "Bo", s.Roles[0].Personnels[0].Employee.FirstName)
	assert.Nil(t, s.Roles[0].Personnels[1].Employee)
}
