package repository

import (
	"context"
	"errors"

	"railshift/models"
)

// ErrNotFound is returned when a record with the requested id does not exist.
var ErrNotFound = errors.New("repository: not found")

// Store is the CRUD surface every catalogue resource exposes.
type Store[T any] interface {
	List(ctx context.Context, q models.ListQuery) ([]T, int64, error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id int64) error
}

type WagonRepository interface {
	Store[models.Wagon]
	GetByIDs(ctx context.Context, ids []int64) ([]models.Wagon, error)
	UpdateStatus(ctx context.Context, id int64, u models.WagonStatusUpdate) error
	UpdatePosition(ctx context.Context, id int64, u models.WagonPositionUpdate) error
}

// Repositories groups the stores of one backend.
type Repositories struct {
	Reasons     Store[models.Reason]
	Locations   Store[models.Location]
	Locomotives Store[models.Locomotive]
	Roles       Store[models.Role]
	Products    Store[models.Product]
	Employees   Store[models.Employee]
	Customers   Store[models.Customer]
	Orders      Store[models.Order]
	Shifts      Store[models.Shift]
	USNShifts   Store[models.USNShift]
	Wagons      WagonRepository
}

// PDF returns the read model used by manifest generation.
func (r *Repositories) PDF() *PDFRepository {
	return NewPDFRepository(r.USNShifts, r.Wagons, r.Locomotives)
}
