package client

import (
	"context"
	"errors"
	"net/http"

	"railshift/cache"
	"railshift/models"
	"railshift/usnshift"
	"railshift/validation"
)

type EmployeeService struct {
	Resource[models.Employee]
}

// GetEmployee lets the service back usnshift.ResolveEmployees.
func (s *EmployeeService) GetEmployee(ctx context.Context, id int64) (*models.Employee, error) {
	return s.Get(ctx, id)
}

var _ usnshift.EmployeeFetcher = (*EmployeeService)(nil)

type WagonService struct {
	Resource[models.Wagon]
}

func (s *WagonService) Options(ctx context.Context, q models.ListQuery) (*models.Page[models.WagonOption], error) {
	var page models.Page[models.WagonOption]
	if err := s.c.call(ctx, http.MethodGet, s.path+"/options", Values(q), nil, &page, false); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *WagonService) UpdateStatus(ctx context.Context, id int64, u models.WagonStatusUpdate) (*models.Wagon, error) {
	var w models.Wagon
	if err := s.c.call(ctx, http.MethodPatch, s.itemPath(id)+"/status", nil, u, &w, true); err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *WagonService) UpdatePosition(ctx context.Context, id int64, u models.WagonPositionUpdate) (*models.Wagon, error) {
	var w models.Wagon
	if err := s.c.call(ctx, http.MethodPatch, s.itemPath(id)+"/position", nil, u, &w, true); err != nil {
		return nil, err
	}
	return &w, nil
}

// LocomotiveService caches list pages. Concurrent requests for the same
// query share one call.
type LocomotiveService struct {
	Resource[models.Locomotive]
	cache *cache.TTL[models.Page[models.Locomotive]]
}

func (s *LocomotiveService) List(ctx context.Context, q models.ListQuery) (*models.Page[models.Locomotive], error) {
	page, err := s.cache.Do(ctx, cache.Key(s.path, Values(q)), func(ctx context.Context) (models.Page[models.Locomotive], error) {
		p, err := s.Resource.List(ctx, q)
		if err != nil {
			return models.Page[models.Locomotive]{}, err
		}
		return *p, nil
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *LocomotiveService) Create(ctx context.Context, l *models.Locomotive) (*models.Locomotive, error) {
	out, err := s.Resource.Create(ctx, l)
	if err == nil {
		s.cache.Purge()
	}
	return out, err
}

type ShiftService struct {
	Resource[models.Shift]
}

// Create stores one shift per day of the request's date range.
func (s *ShiftService) Create(ctx context.Context, req models.ShiftRequest) ([]models.Shift, error) {
	var shifts []models.Shift
	if err := s.c.call(ctx, http.MethodPost, s.path, nil, req, &shifts, true); err != nil {
		return nil, err
	}
	return shifts, nil
}

type USNShiftService struct {
	Resource[models.USNShift]
}

func (s *USNShiftService) sendMultipart(ctx context.Context, method, path string, req *models.USNShiftRequest, uploads []usnshift.Upload, out any) error {
	body, contentType, err := usnshift.EncodeMultipart(req, uploads)
	if err != nil {
		return err
	}
	httpReq, err := s.c.newRequest(ctx, method, path, nil, body, contentType)
	if err != nil {
		return err
	}
	return s.c.decode(httpReq, out, true)
}

// Create posts the assembled form with its uploads and returns one shift
// per requested day.
func (s *USNShiftService) Create(ctx context.Context, req *models.USNShiftRequest, uploads []usnshift.Upload) ([]models.USNShift, error) {
	var shifts []models.USNShift
	if err := s.sendMultipart(ctx, http.MethodPost, s.path, req, uploads, &shifts); err != nil {
		return nil, err
	}
	return shifts, nil
}

// Update replaces a shift. ExistingDocumentIDs lists the stored documents to keep.
func (s *USNShiftService) Update(ctx context.Context, id int64, req *models.USNShiftRequest, uploads []usnshift.Upload) (*models.USNShift, error) {
	var shift models.USNShift
	if err := s.sendMultipart(ctx, http.MethodPut, s.itemPath(id), req, uploads, &shift); err != nil {
		return nil, err
	}
	return &shift, nil
}

// Preview asks the server to validate and assemble raw form state. Field
// problems come back as validation.Errors.
func (s *USNShiftService) Preview(ctx context.Context, in usnshift.FormInput) (*models.USNShiftRequest, error) {
	var req models.USNShiftRequest
	err := s.c.call(ctx, http.MethodPost, s.path+"/preview", nil, in, &req, true)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnprocessableEntity && len(apiErr.Errors) > 0 {
		return nil, validation.Errors(apiErr.Errors)
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Manifest downloads the PDF manifest of a shift.
func (s *USNShiftService) Manifest(ctx context.Context, id int64) ([]byte, error) {
	req, err := s.c.newRequest(ctx, http.MethodGet, s.itemPath(id)+"/manifest", nil, nil, "")
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/pdf")
	return s.c.send(req)
}
