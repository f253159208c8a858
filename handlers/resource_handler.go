package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"railshift/cache"
	"railshift/models"
	"railshift/repository"
	"railshift/validation"
)

// ResourceHandler serves list/get/create/update/delete for one store.
type ResourceHandler[T any] struct {
	Name   string
	Store  repository.Store[T]
	ID     func(*T) *int64
	Logger *zap.Logger

	// Cache, when set, holds list pages and is purged on every write.
	Cache *cache.TTL[models.Page[T]]
	// Expand, when set, fills nested objects before items are returned.
	Expand func(ctx context.Context, items []T) error
}

func (h *ResourceHandler[T]) page(ctx context.Context, q models.ListQuery) (models.Page[T], error) {
	items, total, err := h.Store.List(ctx, q)
	if err != nil {
		return models.Page[T]{}, err
	}
	if h.Expand != nil {
		if err := h.Expand(ctx, items); err != nil {
			return models.Page[T]{}, err
		}
	}
	return models.NewPage(items, q, total), nil
}

func (h *ResourceHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	q := listQuery(r)

	var page models.Page[T]
	var err error
	if h.Cache != nil {
		page, err = h.Cache.Do(r.Context(), cache.Key(h.Name, r.URL.Query()), func(ctx context.Context) (models.Page[T], error) {
			return h.page(ctx, q)
		})
	} else {
		page, err = h.page(r.Context(), q)
	}
	if err != nil {
		writeStoreError(w, r, h.Logger, h.Name, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *ResourceHandler[T]) load(ctx context.Context, id int64) (*T, error) {
	item, err := h.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if h.Expand != nil {
		items := []T{*item}
		if err := h.Expand(ctx, items); err != nil {
			return nil, err
		}
		item = &items[0]
	}
	return item, nil
}

func (h *ResourceHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+h.Name+" id")
		return
	}
	item, err := h.load(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, h.Logger, h.Name, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: item})
}

func (h *ResourceHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	var item T
	if err := decodeJSON(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	*h.ID(&item) = 0
	if errs := validation.Struct(&item); !errs.Empty() {
		writeValidation(w, errs)
		return
	}
	if err := h.Store.Create(r.Context(), &item); err != nil {
		writeStoreError(w, r, h.Logger, h.Name, err)
		return
	}
	h.invalidate()
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: h.Name + " created", Data: item})
}

func (h *ResourceHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+h.Name+" id")
		return
	}
	var item T
	if err := decodeJSON(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	*h.ID(&item) = id
	if errs := validation.Struct(&item); !errs.Empty() {
		writeValidation(w, errs)
		return
	}
	if err := h.Store.Update(r.Context(), &item); err != nil {
		writeStoreError(w, r, h.Logger, h.Name, err)
		return
	}
	h.invalidate()

	updated, err := h.load(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, h.Logger, h.Name, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: h.Name + " updated", Data: updated})
}

func (h *ResourceHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+h.Name+" id")
		return
	}
	if err := h.Store.Delete(r.Context(), id); err != nil {
		writeStoreError(w, r, h.Logger, h.Name, err)
		return
	}
	h.invalidate()
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: h.Name + " deleted"})
}

func (h *ResourceHandler[T]) invalidate() {
	if h.Cache != nil {
		h.Cache.Purge()
	}
}
