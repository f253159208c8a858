package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"railshift/models"
	"railshift/repository"
	"railshift/validation"
)

type ApiResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ApiResponse{Success: false, Message: msg})
}

func writeValidation(w http.ResponseWriter, errs validation.Errors) {
	writeJSON(w, http.StatusUnprocessableEntity, ApiResponse{
		Success: false,
		Message: "validation failed",
		Errors:  errs,
	})
}

// writeStoreError maps repository and validation errors onto responses and
// logs anything unexpected.
func writeStoreError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, name string, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, name+" not found")
		return
	}
	if ve, ok := validation.As(err); ok {
		writeValidation(w, ve)
		return
	}
	logger.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// listQuery reads page, limit and search; every other parameter becomes a
// filter. Stores ignore filters they do not know.
func listQuery(r *http.Request) models.ListQuery {
	q := models.ListQuery{Filters: map[string]string{}}
	for key, values := range r.URL.Query() {
		if len(values) == 0 || values[0] == "" {
			continue
		}
		switch key {
		case "page":
			q.Page, _ = strconv.Atoi(values[0])
		case "limit":
			q.Limit, _ = strconv.Atoi(values[0])
		case "search":
			q.Search = values[0]
		default:
			q.Filters[key] = values[0]
		}
	}
	return q.Normalize()
}
