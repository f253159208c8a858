package handlers

import (
	"context"
	"mime"
	"net/http"
	"slices"

	"go.uber.org/zap"

	"railshift/models"
	"railshift/repository"
	"railshift/storage"
	"railshift/usnshift"
	"railshift/validation"
)

// maxUploadMemory bounds the in-memory part of multipart parsing.
const maxUploadMemory = 32 << 20

type USNShiftHandler struct {
	*ResourceHandler[models.USNShift]
	Employees repository.Store[models.Employee]
	Locations repository.Store[models.Location]
	Documents storage.DocumentStore
}

func NewUSNShiftHandler(repos *repository.Repositories, docs storage.DocumentStore, logger *zap.Logger) *USNShiftHandler {
	h := &USNShiftHandler{
		Employees: repos.Employees,
		Locations: repos.Locations,
		Documents: docs,
	}
	h.ResourceHandler = &ResourceHandler[models.USNShift]{
		Name:   "usn shift",
		Store:  repos.USNShifts,
		ID:     func(s *models.USNShift) *int64 { return &s.ID },
		Logger: logger,
		Expand: h.attachEmployees,
	}
	return h
}

type employeeFetcher struct {
	store repository.Store[models.Employee]
}

func (f employeeFetcher) GetEmployee(ctx context.Context, id int64) (*models.Employee, error) {
	return f.store.Get(ctx, id)
}

func (h *USNShiftHandler) attachEmployees(ctx context.Context, shifts []models.USNShift) error {
	var employees []models.Employee
	for i := range shifts {
		employees = usnshift.ResolveEmployees(ctx, shifts[i].Roles, employees, employeeFetcher{h.Employees}, h.Logger)
		usnshift.AttachEmployees(&shifts[i], employees)
	}
	return nil
}

// readRequest accepts the multipart form body or a plain JSON payload.
func readRequest(r *http.Request) (*models.USNShiftRequest, []usnshift.Upload, error) {
	mediaType, params, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return usnshift.DecodeMultipart(r.Body, params["boundary"], maxUploadMemory)
	}
	var req models.USNShiftRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, nil, err
	}
	return &req, nil, nil
}

func (h *USNShiftHandler) store(ctx context.Context, uploads []usnshift.Upload) ([]models.Document, error) {
	docs := make([]models.Document, 0, len(uploads))
	for _, u := range uploads {
		doc, err := h.Documents.Put(ctx, u.Name, u.ContentType, u.Data)
		if err != nil {
			h.discard(ctx, docs)
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// discard deletes stored documents. Failures only leave orphaned files, so
// they are logged.
func (h *USNShiftHandler) discard(ctx context.Context, docs []models.Document) {
	for _, d := range docs {
		if err := h.Documents.Delete(ctx, d); err != nil {
			h.Logger.Warn("could not delete document", zap.String("path", d.Path), zap.Error(err))
		}
	}
}

// rollback deletes shifts stored earlier in a failed create, with their
// documents.
func (h *USNShiftHandler) rollback(ctx context.Context, created []models.USNShift) {
	ctx = context.WithoutCancel(ctx)
	for _, s := range created {
		if err := h.Store.Delete(ctx, s.ID); err != nil {
			h.Logger.Warn("could not roll back usn shift", zap.Int64("id", s.ID), zap.Error(err))
		}
		h.discard(ctx, s.Documents)
	}
}

func (h *USNShiftHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, uploads, err := readRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if errs := usnshift.ValidateRequest(req); !errs.Empty() {
		writeValidation(w, errs)
		return
	}

	// each shift owns its copy of the uploads, so editing one day never
	// removes files another day still lists
	shifts := usnshift.Shifts(req, nil)
	for i := range shifts {
		docs, err := h.store(r.Context(), uploads)
		if err != nil {
			h.rollback(r.Context(), shifts[:i])
			writeStoreError(w, r, h.Logger, h.Name, err)
			return
		}
		shifts[i].Documents = docs
		if err := h.Store.Create(r.Context(), &shifts[i]); err != nil {
			h.discard(r.Context(), docs)
			h.rollback(r.Context(), shifts[:i])
			writeStoreError(w, r, h.Logger, h.Name, err)
			return
		}
	}
	h.Logger.Info("usn shifts created", zap.Int("count", len(shifts)), zap.Int("documents", len(uploads)))
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "usn shifts created", Data: shifts})
}

// Update replaces a shift from the same payload Create takes. shifts holds
// at most one day, which moves the shift; without it the shift keeps its
// day and times. existing_document_ids lists the stored documents to keep.
func (h *USNShiftHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid usn shift id")
		return
	}
	current, err := h.Store.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, h.Logger, h.Name, err)
		return
	}

	req, uploads, err := readRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if len(req.Shifts) == 0 {
		req.Shifts = []models.ShiftDay{{Date: current.Date, StartTime: current.StartTime, EndTime: current.EndTime}}
	}
	errs := validation.Errors{}
	if len(req.Shifts) > 1 {
		errs.Add("shifts", "An update takes a single shift day")
	}
	errs.Merge(usnshift.ValidateRequest(req))
	if !errs.Empty() {
		writeValidation(w, errs)
		return
	}

	added, err := h.store(r.Context(), uploads)
	if err != nil {
		writeStoreError(w, r, h.Logger, h.Name, err)
		return
	}
	var kept, removed []models.Document
	for _, d := range current.Documents {
		if slices.Contains(req.ExistingDocumentIDs, d.ID) {
			kept = append(kept, d)
		} else {
			removed = append(removed, d)
		}
	}

	next := usnshift.Shifts(&models.USNShiftRequest{
		Shifts:        req.Shifts,
		ProductID:     req.ProductID,
		LocomotiveID:  req.LocomotiveID,
		RoutePlanning: req.RoutePlanning,
		Roles:         req.Roles,
		Note:          req.Note,
	}, append(kept, added...))[0]
	next.ID = id
	next.Status = current.Status

	if err := h.Store.Update(r.Context(), &next); err != nil {
		h.discard(r.Context(), added)
		writeStoreError(w, r, h.Logger, h.Name, err)
		return
	}
	h.discard(r.Context(), removed)

	updated, err := h.load(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, h.Logger, h.Name, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "usn shift updated", Data: updated})
}

func (h *USNShiftHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid usn shift id")
		return
	}
	current, err := h.Store.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, h.Logger, h.Name, err)
		return
	}
	if err := h.Store.Delete(r.Context(), id); err != nil {
		writeStoreError(w, r, h.Logger, h.Name, err)
		return
	}
	h.discard(r.Context(), current.Documents)
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "usn shift deleted"})
}

// Preview validates raw form state and returns the payload a submit would
// send, without storing anything.
func (h *USNShiftHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var in usnshift.FormInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	locations, _, err := h.Locations.List(r.Context(), models.ListQuery{Limit: models.MaxLimit})
	if err != nil {
		writeStoreError(w, r, h.Logger, h.Name, err)
		return
	}

	req, err := usnshift.Submit(in.Form(), locations)
	if err != nil {
		writeStoreError(w, r, h.Logger, h.Name, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: req})
}
