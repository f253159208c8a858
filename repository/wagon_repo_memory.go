package repository

import (
	"context"
	"errors"

	"railshift/models"
)

type MemoryWagonRepo struct {
	*MemoryStore[models.Wagon]
}

func NewMemoryWagonRepo() *MemoryWagonRepo {
	return &MemoryWagonRepo{MemoryStore: NewMemoryStore(wagonTable)}
}

func (r *MemoryWagonRepo) GetByIDs(ctx context.Context, ids []int64) ([]models.Wagon, error) {
	var wagons []models.Wagon
	for _, id := range ids {
		w, err := r.Get(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		wagons = append(wagons, *w)
	}
	return wagons, nil
}

func (r *MemoryWagonRepo) modify(id int64, fn func(*models.Wagon)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	fn(&w)
	r.items[id] = w
	return nil
}

func (r *MemoryWagonRepo) UpdateStatus(_ context.Context, id int64, u models.WagonStatusUpdate) error {
	return r.modify(id, func(w *models.Wagon) {
		w.Status = u.Status
		w.NextStatus = u.NextStatus
	})
}

func (r *MemoryWagonRepo) UpdatePosition(_ context.Context, id int64, u models.WagonPositionUpdate) error {
	return r.modify(id, func(w *models.Wagon) {
		loc := u.LocationID
		w.CurrentLocationID = &loc
		w.Rail = u.Rail
		w.Position = u.Position
	})
}
