package repository

import (
	"context"
	"errors"

	"railshift/models"
)

// PDFRepository provides the reads needed to render a shift manifest.
type PDFRepository struct {
	Shifts      Store[models.USNShift]
	Wagons      WagonRepository
	Locomotives Store[models.Locomotive]
}

func NewPDFRepository(shifts Store[models.USNShift], wagons WagonRepository, locos Store[models.Locomotive]) *PDFRepository {
	return &PDFRepository{Shifts: shifts, Wagons: wagons, Locomotives: locos}
}

// GetShiftForPDF returns nil without error when the shift does not exist.
func (r *PDFRepository) GetShiftForPDF(ctx context.Context, id int64) (*models.USNShift, error) {
	s, err := r.Shifts.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return s, err
}

// GetWagonsForPDF indexes the referenced wagons by id.
func (r *PDFRepository) GetWagonsForPDF(ctx context.Context, ids []int64) (map[int64]models.Wagon, error) {
	wagons, err := r.Wagons.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]models.Wagon, len(wagons))
	for _, w := range wagons {
		byID[w.ID] = w
	}
	return byID, nil
}

func (r *PDFRepository) GetLocomotiveForPDF(ctx context.Context, id int64) (*models.Locomotive, error) {
	if id == 0 {
		return nil, nil
	}
	l, err := r.Locomotives.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return l, err
}
