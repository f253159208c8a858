package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"railshift/cache"
	"railshift/models"
	"railshift/repository"
)

func TestListQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/wagons?page=2&limit=500&search=318&status=EMPTY&type=", nil)
	q := listQuery(req)

	assert.Equal(t, 2, q.Page)
	assert.Equal(t, models.MaxLimit, q.Limit)
	assert.Equal(t, "318", q.Search)
	assert.Equal(t, map[string]string{"status": "EMPTY"}, q.Filters)

	q = listQuery(httptest.NewRequest(http.MethodGet, "/wagons?page=x", nil))
	assert.Equal(t, models.DefaultPage, q.Page)
	assert.Equal(t, models.DefaultLimit, q.Limit)
}

func TestLocomotiveListIsCachedUntilWrite(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryRepositories().Locomotives
	h := &ResourceHandler[models.Locomotive]{
		Name:   "locomotive",
		Store:  store,
		ID:     func(l *models.Locomotive) *int64 { return &l.ID },
		Logger: zap.NewNop(),
		Cache:  cache.New[models.Page[models.Locomotive]](cache.DefaultTTL),
	}
	require.NoError(t, store.Create(ctx, &models.Locomotive{Name: "Vectron"}))

	list := func() models.Page[models.Locomotive] {
		rec := httptest.NewRecorder()
		h.List(rec, httptest.NewRequest(http.MethodGet, "/locomotives", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		var page models.Page[models.Locomotive]
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
		return page
	}

	assert.Equal(t, int64(1), list().Pagination.Total)

	// written behind the handler's back: the cached page is still served
	require.NoError(t, store.Create(ctx, &models.Locomotive{Name: "Traxx"}))
	assert.Equal(t, int64(1), list().Pagination.Total)

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/locomotives", strings.NewReader(`{"name":"Gravita"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(3), list().Pagination.Total)
}

func TestResourceHandlerValidation(t *testing.T) {
	h := &ResourceHandler[models.Employee]{
		Name:   "employee",
		Store:  repository.NewMemoryRepositories().Employees,
		ID:     func(e *models.Employee) *int64 { return &e.ID },
		Logger: zap.NewNop(),
	}

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{"first_name":"Ada","email":"nope"}`)))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp ApiResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "validation failed", resp.Message)
	assert.Equal(t, "is required", resp.Errors["last_name"])
	assert.Equal(t, "must be a valid email", resp.Errors["email"])

	rec = httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{bad json`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
