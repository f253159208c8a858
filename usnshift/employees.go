package usnshift

import (
	"context"
	"slices"

	"go.uber.org/zap"

	"railshift/models"
)

// EmployeeFetcher loads a single employee by id.
type EmployeeFetcher interface {
	GetEmployee(ctx context.Context, id int64) (*models.Employee, error)
}

// ResolveEmployees returns loaded extended with every employee referenced by
// roles but missing from loaded. Lookups are best effort: failures are
// logged and the employee is left out.
func ResolveEmployees(ctx context.Context, roles []models.USNShiftRole, loaded []models.Employee, fetcher EmployeeFetcher, logger *zap.Logger) []models.Employee {
	out := slices.Clone(loaded)
	have := make(map[int64]bool, len(loaded))
	for _, e := range loaded {
		have[e.ID] = true
	}

	for _, id := range referencedEmployees(roles) {
		if have[id] {
			continue
		}
		have[id] = true
		emp, err := fetcher.GetEmployee(ctx, id)
		if err != nil || emp == nil {
			logger.Warn("could not load employee referenced by shift role",
				zap.Int64("employee_id", id), zap.Error(err))
			continue
		}
		out = append(out, *emp)
	}
	return out
}

func referencedEmployees(roles []models.USNShiftRole) []int64 {
	var ids []int64
	for _, r := range roles {
		if r.EmployeeID != nil {
			ids = append(ids, *r.EmployeeID)
		}
		for _, p := range r.Personnels {
			ids = append(ids, p.EmployeeID)
		}
	}
	return ids
}

// AttachEmployees fills Personnel.Employee from the given list.
func AttachEmployees(s *models.USNShift, employees []models.Employee) {
	byID := make(map[int64]*models.Employee, len(employees))
	for i := range employees {
		byID[employees[i].ID] = &employees[i]
	}
	for i := range s.Roles {
		for j := range s.Roles[i].Personnels {
			p := &s.Roles[i].Personnels[j]
			if e, ok := byID[p.EmployeeID]; ok {
				p.Employee = e
			}
		}
	}
}
