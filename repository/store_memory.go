package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"railshift/models"
)

// MemoryStore keeps records in process. It backs DB_TYPE=memory and tests.
type MemoryStore[T any] struct {
	mu     sync.RWMutex
	items  map[int64]T
	nextID int64
	table  Table[T]
}

func NewMemoryStore[T any](t Table[T]) *MemoryStore[T] {
	return &MemoryStore[T]{items: make(map[int64]T), table: t}
}

// clone copies through JSON so callers never share slices with the store.
func clone[T any](item T) (T, error) {
	var out T
	b, err := json.Marshal(item)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(b, &out)
	return out, err
}

func fields(item any) map[string]any {
	b, err := json.Marshal(item)
	if err != nil {
		return nil
	}
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

func (s *MemoryStore[T]) matches(item T, q models.ListQuery) bool {
	f := fields(item)
	for key, want := range q.Filters {
		if !s.table.filterable(key) || want == "" {
			continue
		}
		got, ok := f[key]
		if !ok || got == nil || fmt.Sprint(got) != want {
			return false
		}
	}
	if q.Search == "" || len(s.table.Search) == 0 {
		return true
	}
	term := strings.ToLower(q.Search)
	for _, col := range s.table.Search {
		if v, ok := f[col].(string); ok && strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return false
}

func (s *MemoryStore[T]) List(_ context.Context, q models.ListQuery) ([]T, int64, error) {
	q = q.Normalize()
	s.mu.RLock()
	ids := make([]int64, 0, len(s.items))
	for id, item := range s.items {
		if s.matches(item, q) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	total := int64(len(ids))
	start := q.Offset()
	if start > len(ids) {
		start = len(ids)
	}
	end := start + q.Limit
	if end > len(ids) {
		end = len(ids)
	}

	items := make([]T, 0, end-start)
	for _, id := range ids[start:end] {
		c, err := clone(s.items[id])
		if err != nil {
			s.mu.RUnlock()
			return nil, 0, err
		}
		items = append(items, c)
	}
	s.mu.RUnlock()
	return items, total, nil
}

func (s *MemoryStore[T]) Get(_ context.Context, id int64) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	c, err := clone(item)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *MemoryStore[T]) Create(_ context.Context, item *T) error {
	s.table.stamp(item, time.Now().UTC())
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	*s.table.ID(item) = s.nextID
	c, err := clone(*item)
	if err != nil {
		return err
	}
	s.items[s.nextID] = c
	return nil
}

func (s *MemoryStore[T]) Update(_ context.Context, item *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := *s.table.ID(item)
	old, ok := s.items[id]
	if !ok {
		return ErrNotFound
	}
	s.table.touch(item, time.Now().UTC())
	*s.table.CreatedAt(item) = *s.table.CreatedAt(&old)
	c, err := clone(*item)
	if err != nil {
		return err
	}
	s.items[id] = c
	return nil
}

func (s *MemoryStore[T]) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func NewMemoryRepositories() *Repositories {
	return &Repositories{
		Reasons:     NewMemoryStore(reasonTable),
		Locations:   NewMemoryStore(locationTable),
		Locomotives: NewMemoryStore(locomotiveTable),
		Roles:       NewMemoryStore(roleTable),
		Products:    NewMemoryStore(productTable),
		Employees:   NewMemoryStore(employeeTable),
		Customers:   NewMemoryStore(customerTable),
		Orders:      NewMemoryStore(orderTable),
		Shifts:      NewMemoryStore(shiftTable),
		USNShifts:   NewMemoryStore(usnShiftTable),
		Wagons:      NewMemoryWagonRepo(),
	}
}
