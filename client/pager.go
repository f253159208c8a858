package client

import (
	"context"
	"slices"
	"sort"
	"strconv"
	"strings"

	"railshift/models"
)

// FetchFunc loads one page of a collection, e.g. Resource.List.
type FetchFunc[T any] func(ctx context.Context, q models.ListQuery) (*models.Page[T], error)

// Pager holds the state of a paginated table: the rows loaded so far, the
// current search and filters. Fetched pages are kept per query, so going
// back to an earlier search does not refetch. A Pager is not safe for
// concurrent use.
type Pager[T any] struct {
	fetch   FetchFunc[T]
	limit   int
	search  string
	filters map[string]string

	page       int
	items      []T
	total      int64
	totalPages int
	pages      map[string]models.Page[T]
}

func NewPager[T any](fetch FetchFunc[T], limit int) *Pager[T] {
	if limit <= 0 {
		limit = models.DefaultLimit
	}
	return &Pager[T]{
		fetch:   fetch,
		limit:   limit,
		filters: map[string]string{},
		pages:   map[string]models.Page[T]{},
	}
}

func (p *Pager[T]) key(page int) string {
	keys := make([]string, 0, len(p.filters))
	for k := range p.filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(p.search)
	for _, k := range keys {
		b.WriteString("|" + k + "=" + p.filters[k])
	}
	b.WriteString("#" + strconv.Itoa(page))
	return b.String()
}

func (p *Pager[T]) get(ctx context.Context, page int) (models.Page[T], error) {
	key := p.key(page)
	if cached, ok := p.pages[key]; ok {
		return cached, nil
	}
	filters := make(map[string]string, len(p.filters))
	for k, v := range p.filters {
		filters[k] = v
	}
	res, err := p.fetch(ctx, models.ListQuery{Page: page, Limit: p.limit, Search: p.search, Filters: filters})
	if err != nil {
		return models.Page[T]{}, err
	}
	p.pages[key] = *res
	return *res, nil
}

// Load replaces the rows with the first page of the current query.
func (p *Pager[T]) Load(ctx context.Context) error {
	res, err := p.get(ctx, 1)
	if err != nil {
		return err
	}
	p.page = 1
	p.items = slices.Clone(res.Data)
	p.total = res.Pagination.Total
	p.totalPages = res.Pagination.TotalPages
	return nil
}

// LoadMore appends the next page. It does nothing when every page is loaded.
func (p *Pager[T]) LoadMore(ctx context.Context) error {
	if !p.HasMore() {
		return nil
	}
	res, err := p.get(ctx, p.page+1)
	if err != nil {
		return err
	}
	p.page++
	p.items = append(p.items, res.Data...)
	p.total = res.Pagination.Total
	p.totalPages = res.Pagination.TotalPages
	return nil
}

// Search sets the search term and reloads from the first page.
func (p *Pager[T]) Search(ctx context.Context, term string) error {
	p.search = strings.TrimSpace(term)
	return p.Load(ctx)
}

// SetFilter sets or, for an empty value, clears a filter and reloads.
func (p *Pager[T]) SetFilter(ctx context.Context, key, value string) error {
	if value == "" {
		delete(p.filters, key)
	} else {
		p.filters[key] = value
	}
	return p.Load(ctx)
}

// Refresh drops cached pages and reloads, e.g. after a create.
func (p *Pager[T]) Refresh(ctx context.Context) error {
	p.pages = map[string]models.Page[T]{}
	return p.Load(ctx)
}

func (p *Pager[T]) Items() []T { return slices.Clone(p.items) }

func (p *Pager[T]) HasMore() bool { return p.page > 0 && p.page < p.totalPages }

func (p *Pager[T]) Total() int64 { return p.total }
