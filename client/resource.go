package client

import (
	"context"
	"fmt"
	"net/http"

	"railshift/models"
)

// Resource is the generic list/get/create/update/delete service.
type Resource[T any] struct {
	c    *Client
	path string
}

func (r *Resource[T]) itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", r.path, id)
}

func (r *Resource[T]) List(ctx context.Context, q models.ListQuery) (*models.Page[T], error) {
	var page models.Page[T]
	if err := r.c.call(ctx, http.MethodGet, r.path, Values(q), nil, &page, false); err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *Resource[T]) Get(ctx context.Context, id int64) (*T, error) {
	var item T
	if err := r.c.call(ctx, http.MethodGet, r.itemPath(id), nil, nil, &item, true); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Resource[T]) Create(ctx context.Context, item *T) (*T, error) {
	var out T
	if err := r.c.call(ctx, http.MethodPost, r.path, nil, item, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T]) Update(ctx context.Context, id int64, item *T) (*T, error) {
	var out T
	if err := r.c.call(ctx, http.MethodPut, r.itemPath(id), nil, item, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	return r.c.call(ctx, http.MethodDelete, r.itemPath(id), nil, nil, nil, false)
}
