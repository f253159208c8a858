package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"railshift/handlers"
	"railshift/models"
	"railshift/repository"
	"railshift/storage"
	"railshift/usnshift"
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

type testServer struct {
	t       *testing.T
	handler http.Handler
	repos   *repository.Repositories
	docs    *storage.LocalStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	repos := repository.NewMemoryRepositories()
	docs, err := storage.NewLocalStore(t.TempDir(), "http://api.test")
	require.NoError(t, err)
	api := handlers.NewAPI(handlers.Deps{
		Repos:          repos,
		Documents:      docs,
		LocalDocuments: docs,
		Logger:         zap.NewNop(),
	})
	return &testServer{t: t, handler: NewRouter(api, zap.NewNop(), ""), repos: repos, docs: docs}
}

func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func data[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	env := decode[envelope](t, rec)
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func TestHealthzAndCORS(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = s.do(http.MethodOptions, "/wagons/3/status", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}

func TestReasonCRUD(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/reason", map[string]string{"description": "no name"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "is required", decode[envelope](t, rec).Errors["name"])

	rec = s.do(http.MethodPost, "/reason", map[string]string{"name": "Brake defect", "type": "damage"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := data[models.Reason](t, rec)
	assert.Equal(t, int64(1), created.ID)

	rec = s.do(http.MethodGet, "/reason?search=brake", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[models.Page[models.Reason]](t, rec)
	assert.Equal(t, models.Pagination{Page: 1, Limit: 10, Total: 1, TotalPages: 1}, page.Pagination)

	rec = s.do(http.MethodPut, "/reason/1", map[string]string{"name": "Brake defect", "description": "handbrake"})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := data[models.Reason](t, rec)
	assert.Equal(t, "handbrake", updated.Description)
	assert.NotNil(t, updated.UpdatedAt)

	rec = s.do(http.MethodDelete, "/reason/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/reason/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(http.MethodGet, "/reason/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEmployeeRatingIsCoerced(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/employees", map[string]any{"first_name": "Ada", "last_name": "Lovelace", "rating": "4.5"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, models.Rating(4.5), data[models.Employee](t, rec).Rating)

	rec = s.do(http.MethodPost, "/employees", map[string]any{"first_name": "Grace", "last_name": "Hopper", "rating": "abc"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, models.Rating(0), data[models.Employee](t, rec).Rating)
}

func TestWagonEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/locations", map[string]string{"name": "Maschen", "code": "MA"})
	require.Equal(t, http.StatusCreated, rec.Code)
	loc := data[models.Location](t, rec)

	rec = s.do(http.MethodPost, "/wagons", map[string]any{
		"wagon_number": "318012345678", "type": "Eanos", "status": "EMPTY", "current_location_id": loc.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	s.do(http.MethodPost, "/wagons", map[string]any{"wagon_number": "318012345679", "status": "LOADED"})

	rec = s.do(http.MethodGet, "/wagons?status=EMPTY", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[models.Page[models.Wagon]](t, rec)
	require.Len(t, page.Data, 1)
	require.NotNil(t, page.Data[0].CurrentLocation)
	assert.Equal(t, "Maschen", page.Data[0].CurrentLocation.Name)

	rec = s.do(http.MethodGet, "/wagons/options?status=EMPTY", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	opts := decode[models.Page[models.WagonOption]](t, rec)
	require.Len(t, opts.Data, 1)
	assert.Equal(t, "Maschen (MA)", opts.Data[0].CurrentLocation)

	rec = s.do(http.MethodPatch, "/wagons/1/status", map[string]string{"status": "TO_BE_LOADED", "next_status": "LOADED"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "TO_BE_LOADED", data[models.Wagon](t, rec).Status)

	rec = s.do(http.MethodPatch, "/wagons/1/status", map[string]string{})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(http.MethodPatch, "/wagons/1/position", map[string]any{"location_id": 99, "rail": "R1"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "unknown location", decode[envelope](t, rec).Errors["location_id"])

	rec = s.do(http.MethodPatch, "/wagons/2/position", map[string]any{"location_id": loc.ID, "rail": "R1", "position": 3})
	require.Equal(t, http.StatusOK, rec.Code)
	moved := data[models.Wagon](t, rec)
	assert.Equal(t, "R1", moved.Rail)
	require.NotNil(t, moved.CurrentLocation)

	rec = s.do(http.MethodPatch, "/wagons/42/status", map[string]string{"status": "EMPTY"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShiftCreateExpandsDateRange(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/shifts", map[string]any{
		"product_id": 1, "start_date": "2024-02-28", "end_date": "2024-03-01",
		"start_time": "06:00", "end_time": "14:00",
		"shift_roles": []map[string]any{{"role_id": 1, "isDisabled": true}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	shifts := data[[]models.Shift](t, rec)
	require.Len(t, shifts, 3)
	assert.Equal(t, "2024-02-29", shifts[1].Date)
	assert.True(t, shifts[2].Roles[0].IsDisabled)

	rec = s.do(http.MethodPost, "/shifts", map[string]any{
		"product_id": 1, "start_date": "2024-03-02", "end_date": "2024-03-01",
		"start_time": "06:00", "end_time": "14:00",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode[envelope](t, rec).Errors, "date_range")

	rec = s.do(http.MethodGet, "/shifts?date=2024-02-29", nil)
	assert.Equal(t, int64(1), decode[models.Page[models.Shift]](t, rec).Pagination.Total)
}

func usnRequest() *models.USNShiftRequest {
	emp := int64(1)
	return &models.USNShiftRequest{
		Shifts: []models.ShiftDay{
			{Date: "2024-06-08", StartTime: "06:00", EndTime: "14:00"},
			{Date: "2024-06-09", StartTime: "06:00", EndTime: "14:00"},
		},
		ProductID:    1,
		LocomotiveID: 1,
		RoutePlanning: []models.RouteLeg{{
			StartLocation:     models.Location{ID: 1, Name: "Maschen"},
			ArrivalLocation:   models.Location{ID: 2, Name: "Hamburg Süd"},
			TrainNo:           "47110",
			FirstWagonAction:  []models.WagonAction{{WagonID: 1, Action: models.WagonActionAdd}},
			SecondWagonAction: []models.WagonAction{},
		}},
		Roles: []models.USNShiftRole{{RoleID: 1, EmployeeID: &emp, Personnels: []models.Personnel{{EmployeeID: 1}}}},
	}
}

func (s *testServer) multipart(method, path string, req *models.USNShiftRequest, uploads []usnshift.Upload) *httptest.ResponseRecorder {
	s.t.Helper()
	body, contentType, err := usnshift.EncodeMultipart(req, uploads)
	require.NoError(s.t, err)
	r := httptest.NewRequest(method, path, body)
	r.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, r)
	return rec
}

func TestUSNShiftLifecycle(t *testing.T) {
	s := newTestServer(t)
	s.do(http.MethodPost, "/employees", map[string]any{"first_name": "Ada", "last_name": "Lovelace"})

	rec := s.multipart(http.MethodPost, "/usn-shifts", usnRequest(), []usnshift.Upload{
		{Name: "brake sheet.pdf", ContentType: "application/pdf", Data: []byte("%PDF brake")},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := data[[]models.USNShift](t, rec)
	require.Len(t, created, 2)
	assert.Equal(t, "2024-06-09", created[1].Date)
	require.Len(t, created[0].Documents, 1)
	doc := created[0].Documents[0]
	assert.Equal(t, "brake sheet.pdf", doc.Name)
	assert.Equal(t, "http://api.test/documents/"+doc.Path, doc.URL)

	rec = s.do(http.MethodGet, "/documents/"+doc.Path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "%PDF brake", rec.Body.String())

	rec = s.do(http.MethodGet, "/usn-shifts/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := data[models.USNShift](t, rec)
	require.NotNil(t, got.Roles[0].Personnels[0].Employee)
	assert.Equal(t, "Ada", got.Roles[0].Personnels[0].Employee.FirstName)

	rec = s.do(http.MethodGet, "/usn-shifts?date=2024-06-08", nil)
	assert.Equal(t, int64(1), decode[models.Page[models.USNShift]](t, rec).Pagination.Total)

	// each day stores its own copy of the upload
	require.Len(t, created[1].Documents, 1)
	assert.NotEqual(t, doc.Path, created[1].Documents[0].Path)

	// dropping the document from shift 1 removes its file only
	upd := usnRequest()
	upd.Shifts = nil
	upd.Note = "moved to track 4"
	rec = s.multipart(http.MethodPut, "/usn-shifts/1", upd, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := data[models.USNShift](t, rec)
	assert.Equal(t, "moved to track 4", updated.Note)
	assert.Equal(t, "2024-06-08", updated.Date)
	assert.Empty(t, updated.Documents)
	_, err := os.Stat(filepath.Join(s.docs.Dir, doc.Path))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(s.docs.Dir, created[1].Documents[0].Path))
	assert.NoError(t, err)

	rec = s.do(http.MethodDelete, "/usn-shifts/2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(http.MethodGet, "/usn-shifts/2", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUSNShiftCreateValidation(t *testing.T) {
	s := newTestServer(t)
	req := usnRequest()
	req.LocomotiveID = 0
	req.RoutePlanning[0].TrainNo = ""

	rec := s.multipart(http.MethodPost, "/usn-shifts", req, nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errs := decode[envelope](t, rec).Errors
	assert.Equal(t, "Locomotive is required", errs["locomotive"])
	assert.Equal(t, "Train number is required", errs["routePlanning[0].train_no"])

	rec = s.do(http.MethodPost, "/usn-shifts", usnRequest())
	assert.Equal(t, http.StatusCreated, rec.Code, "plain JSON bodies are accepted")
}

func TestUSNShiftPreview(t *testing.T) {
	s := newTestServer(t)
	s.do(http.MethodPost, "/locations", map[string]string{"name": "Maschen"})

	form := usnshift.FormInput{
		StartDate: "2024-06-08", StartTime: "06:00", EndTime: "14:00",
		ProductID: 1, LocomotiveID: 1,
		RoutePlanning: []usnshift.RowInput{{StartLocation: "1", ArrivalLocation: "Waltershof", SelectPurpose: models.PurposeSupplying}},
	}
	rec := s.do(http.MethodPost, "/usn-shifts/preview", form)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errs := decode[envelope](t, rec).Errors
	assert.Contains(t, errs, "routePlanning[0].train_no")
	assert.Contains(t, errs, "routePlanning[0].orders")

	form.RoutePlanning[0].TrainNo = "47110"
	form.RoutePlanning[0].Orders = []int64{4}
	rec = s.do(http.MethodPost, "/usn-shifts/preview", form)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	payload := data[models.USNShiftRequest](t, rec)
	assert.Equal(t, "Maschen", payload.RoutePlanning[0].StartLocation.Name)
	assert.Equal(t, models.Location{Name: "Waltershof"}, payload.RoutePlanning[0].ArrivalLocation)

	_, total, err := s.repos.USNShifts.List(t.Context(), models.ListQuery{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestManifestNotFound(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/usn-shifts/9/manifest", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
