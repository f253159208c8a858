package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"railshift/models"
	"railshift/repository"
	"railshift/usnshift"
	"railshift/validation"
)

// ShiftHandler serves plain shifts. Create takes a date range and stores
// one shift per day.
type ShiftHandler struct {
	*ResourceHandler[models.Shift]
}

func NewShiftHandler(store repository.Store[models.Shift], logger *zap.Logger) *ShiftHandler {
	return &ShiftHandler{&ResourceHandler[models.Shift]{
		Name:   "shift",
		Store:  store,
		ID:     func(s *models.Shift) *int64 { return &s.ID },
		Logger: logger,
	}}
}

func (h *ShiftHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ShiftRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	errs := validation.Struct(&req)
	end := req.EndDate
	if end == "" {
		end = req.StartDate
	}
	var days []string
	if !errs.Has("start_date") {
		var err error
		days, err = usnshift.ExpandDays(req.StartDate, end)
		switch {
		case errors.Is(err, usnshift.ErrRangeTooLong):
			errs.Add("date_range", fmt.Sprintf("Date range must not exceed %d days", usnshift.MaxDays))
		case err != nil:
			errs.Add("date_range", err.Error())
		}
	}
	if !errs.Empty() {
		writeValidation(w, errs)
		return
	}

	created := make([]models.Shift, 0, len(days))
	for _, day := range days {
		s := models.Shift{
			CustomerID:   req.CustomerID,
			ProductID:    req.ProductID,
			LocomotiveID: req.LocomotiveID,
			Date:         day,
			StartTime:    req.StartTime,
			EndTime:      req.EndTime,
			Status:       models.ShiftStatusPlanned,
			Note:         req.Note,
			Roles:        req.Roles,
		}
		if err := h.Store.Create(r.Context(), &s); err != nil {
			h.rollback(r.Context(), created)
			writeStoreError(w, r, h.Logger, h.Name, err)
			return
		}
		created = append(created, s)
	}
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "shifts created", Data: created})
}

// rollback deletes the days of a range that were stored before a later day
// failed.
func (h *ShiftHandler) rollback(ctx context.Context, created []models.Shift) {
	ctx = context.WithoutCancel(ctx)
	for _, s := range created {
		if err := h.Store.Delete(ctx, s.ID); err != nil {
			h.Logger.Warn("could not roll back shift", zap.Int64("id", s.ID), zap.Error(err))
		}
	}
}
