package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"railshift/models"
	"railshift/repository"
	"railshift/validation"
)

type WagonHandler struct {
	*ResourceHandler[models.Wagon]
	Repo      repository.WagonRepository
	Locations repository.Store[models.Location]
}

func NewWagonHandler(repo repository.WagonRepository, locations repository.Store[models.Location], logger *zap.Logger) *WagonHandler {
	h := &WagonHandler{Repo: repo, Locations: locations}
	h.ResourceHandler = &ResourceHandler[models.Wagon]{
		Name:   "wagon",
		Store:  repo,
		ID:     func(w *models.Wagon) *int64 { return &w.ID },
		Logger: logger,
		Expand: h.attachLocations,
	}
	return h
}

// attachLocations fills current and arrival locations, loading each
// referenced location once. Deleted locations are left empty.
func (h *WagonHandler) attachLocations(ctx context.Context, wagons []models.Wagon) error {
	byID := map[int64]*models.Location{}
	lookup := func(id *int64) (*models.Location, error) {
		if id == nil {
			return nil, nil
		}
		if l, ok := byID[*id]; ok {
			return l, nil
		}
		l, err := h.Locations.Get(ctx, *id)
		if errors.Is(err, repository.ErrNotFound) {
			l, err = nil, nil
		}
		if err != nil {
			return nil, err
		}
		byID[*id] = l
		return l, nil
	}

	for i := range wagons {
		var err error
		if wagons[i].CurrentLocation, err = lookup(wagons[i].CurrentLocationID); err != nil {
			return err
		}
		if wagons[i].ArrivalLocation, err = lookup(wagons[i].ArrivalLocationID); err != nil {
			return err
		}
	}
	return nil
}

// Options lists wagons in the flattened shape the wagon picker uses.
func (h *WagonHandler) Options(w http.ResponseWriter, r *http.Request) {
	page, err := h.page(r.Context(), listQuery(r))
	if err != nil {
		writeStoreError(w, r, h.Logger, h.Name, err)
		return
	}
	opts := make([]models.WagonOption, 0, len(page.Data))
	for _, wagon := range page.Data {
		opts = append(opts, models.NewWagonOption(wagon))
	}
	writeJSON(w, http.StatusOK, models.Page[models.WagonOption]{Data: opts, Pagination: page.Pagination})
}

func (h *WagonHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid wagon id")
		return
	}
	var u models.WagonStatusUpdate
	if err := decodeJSON(r, &u); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if errs := validation.Struct(&u); !errs.Empty() {
		writeValidation(w, errs)
		return
	}
	if err := h.Repo.UpdateStatus(r.Context(), id, u); err != nil {
		writeStoreError(w, r, h.Logger, h.Name, err)
		return
	}
	h.respondUpdated(w, r, id)
}

func (h *WagonHandler) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid wagon id")
		return
	}
	var u models.WagonPositionUpdate
	if err := decodeJSON(r, &u); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if errs := validation.Struct(&u); !errs.Empty() {
		writeValidation(w, errs)
		return
	}
	if _, err := h.Locations.Get(r.Context(), u.LocationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeValidation(w, validation.Errors{"location_id": "unknown location"})
			return
		}
		writeStoreError(w, r, h.Logger, h.Name, err)
		return
	}
	if err := h.Repo.UpdatePosition(r.Context(), id, u); err != nil {
		writeStoreError(w, r, h.Logger, h.Name, err)
		return
	}
	h.respondUpdated(w, r, id)
}

func (h *WagonHandler) respondUpdated(w http.ResponseWriter, r *http.Request, id int64) {
	wagon, err := h.load(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, h.Logger, h.Name, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "wagon updated", Data: wagon})
}
