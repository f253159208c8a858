// Package routeplan keeps the ordered route rows of a USN shift consistent
// while rows are added, edited and removed.
//
// Each row is one leg of the shift: a start and arrival location, the wagons
// picked up on the leg (the "first" set) and the subset of those wagons that
// stays on the train after the leg (the "second" set). Kept wagons carry into
// the next leg. A Plan is owned by a single form and is not safe for
// concurrent use.
package routeplan

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrUnknownRow   = errors.New("routeplan: unknown row")
	ErrInvalidValue = errors.New("routeplan: invalid value")
)

// Field names a mutable row field. Values match the form's field keys.
type Field string

const (
	FieldStartLocation     Field = "startLocation"
	FieldArrivalLocation   Field = "arrivalLocation"
	FieldSelectWagon       Field = "selectWagon"
	FieldSelectSecondWagon Field = "selectSecondWagon"
	FieldSelectPurpose     Field = "selectPurpose"
	FieldOrders            Field = "orders"
	FieldTrainNo           Field = "train_no"
	FieldPickupDate        Field = "pickup_date"
)

// WagonSet selects which wagon list of a row a toggle applies to.
type WagonSet int

const (
	FirstSet WagonSet = iota
	SecondSet
)

// Mode is the wagon selection dialog mode.
type Mode int

const (
	ModeAdd Mode = iota
	ModeRemove
)

// Cascade controls how far an edit propagates into following rows.
type Cascade int

const (
	// CascadeOneHop updates only the row directly after the edited one.
	CascadeOneHop Cascade = iota
	// CascadeFull re-derives every following row, and repairs the row
	// after a removed one.
	CascadeFull
)

type Row struct {
	ID                int
	StartLocation     string
	ArrivalLocation   string
	SelectWagon       []int64
	SelectSecondWagon []int64
	SelectPurpose     string
	Orders            []int64
	TrainNo           string
	PickupDate        string
}

func (r Row) clone() Row {
	r.SelectWagon = cloneIDs(r.SelectWagon)
	r.SelectSecondWagon = cloneIDs(r.SelectSecondWagon)
	r.Orders = cloneIDs(r.Orders)
	return r
}

func cloneIDs(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return slices.Clone(ids)
}

type Plan struct {
	rows    []Row
	nextID  int
	cascade Cascade
}

type Option func(*Plan)

func WithCascade(c Cascade) Option {
	return func(p *Plan) { p.cascade = c }
}

// New returns a plan holding one empty row.
func New(opts ...Option) *Plan {
	p := &Plan{nextID: 1}
	for _, opt := range opts {
		opt(p)
	}
	p.rows = []Row{p.newRow()}
	return p
}

func (p *Plan) newRow() Row {
	r := Row{
		ID:                p.nextID,
		SelectWagon:       []int64{},
		SelectSecondWagon: []int64{},
		Orders:            []int64{},
	}
	p.nextID++
	return r
}

// Rows returns a deep copy of the rows in order.
func (p *Plan) Rows() []Row {
	out := make([]Row, len(p.rows))
	for i, r := range p.rows {
		out[i] = r.clone()
	}
	return out
}

func (p *Plan) Len() int { return len(p.rows) }

func (p *Plan) Row(id int) (Row, bool) {
	i := p.index(id)
	if i < 0 {
		return Row{}, false
	}
	return p.rows[i].clone(), true
}

func (p *Plan) index(id int) int {
	return slices.IndexFunc(p.rows, func(r Row) bool { return r.ID == id })
}

// Load replaces the rows, assigning fresh ids. An empty slice leaves one
// default row.
func (p *Plan) Load(rows []Row) {
	p.rows = p.rows[:0]
	for _, r := range rows {
		nr := r.clone()
		nr.ID = p.nextID
		p.nextID++
		p.rows = append(p.rows, nr)
	}
	if len(p.rows) == 0 {
		p.rows = append(p.rows, p.newRow())
	}
}

// AddRow appends a row that starts where the last row arrives and carries
// the last row's kept wagons in both wagon sets.
func (p *Plan) AddRow() Row {
	r := p.newRow()
	if n := len(p.rows); n > 0 {
		prev := p.rows[n-1]
		r.StartLocation = prev.ArrivalLocation
		r.SelectWagon = cloneIDs(prev.SelectSecondWagon)
		r.SelectSecondWagon = cloneIDs(prev.SelectSecondWagon)
	}
	p.rows = append(p.rows, r)
	return r.clone()
}

// UpdateRow sets field on the row with the given id. Location fields and
// selectPurpose, train_no and pickup_date take a string; wagon and order
// fields take []int64.
//
// Setting arrivalLocation moves the next row's startLocation with it.
// Setting either wagon field copies this row's kept wagons into both wagon
// fields of the next row.
func (p *Plan) UpdateRow(id int, field Field, value any) error {
	i := p.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownRow, id)
	}
	if err := setField(&p.rows[i], field, value); err != nil {
		return err
	}
	switch field {
	case FieldArrivalLocation, FieldSelectWagon, FieldSelectSecondWagon:
		p.propagate(i, field)
	}
	return nil
}

func setField(r *Row, field Field, value any) error {
	switch field {
	case FieldStartLocation, FieldArrivalLocation, FieldSelectPurpose, FieldTrainNo, FieldPickupDate:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s wants a string, got %T", ErrInvalidValue, field, value)
		}
		switch field {
		case FieldStartLocation:
			r.StartLocation = s
		case FieldArrivalLocation:
			r.ArrivalLocation = s
		case FieldSelectPurpose:
			r.SelectPurpose = s
		case FieldTrainNo:
			r.TrainNo = s
		case FieldPickupDate:
			r.PickupDate = s
		}
	case FieldSelectWagon, FieldSelectSecondWagon, FieldOrders:
		ids, ok := value.([]int64)
		if !ok {
			return fmt.Errorf("%w: %s wants []int64, got %T", ErrInvalidValue, field, value)
		}
		switch field {
		case FieldSelectWagon:
			r.SelectWagon = cloneIDs(ids)
		case FieldSelectSecondWagon:
			r.SelectSecondWagon = cloneIDs(ids)
		case FieldOrders:
			r.Orders = cloneIDs(ids)
		}
	default:
		return fmt.Errorf("%w: unknown field %q", ErrInvalidValue, field)
	}
	return nil
}

// propagate pushes the effect of an edit on row i forward.
func (p *Plan) propagate(i int, field Field) {
	for j := i; j+1 < len(p.rows); j++ {
		cur, next := &p.rows[j], &p.rows[j+1]
		switch field {
		case FieldArrivalLocation:
			next.StartLocation = cur.ArrivalLocation
		case FieldSelectWagon, FieldSelectSecondWagon:
			next.SelectWagon = cloneIDs(cur.SelectSecondWagon)
			next.SelectSecondWagon = cloneIDs(cur.SelectSecondWagon)
		}
		if p.cascade == CascadeOneHop {
			return
		}
	}
}

// RemoveRow deletes the row. Under CascadeOneHop the following rows are left
// as they are.
func (p *Plan) RemoveRow(id int) error {
	i := p.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownRow, id)
	}
	p.rows = slices.Delete(p.rows, i, i+1)
	if p.cascade == CascadeFull && i > 0 && i < len(p.rows) {
		p.propagate(i-1, FieldArrivalLocation)
		p.propagate(i-1, FieldSelectSecondWagon)
	}
	return nil
}

// ToggleWagon adds or removes wagonID from one wagon set of a row.
//
// In the first set, a wagon added while the dialog is in ModeAdd is assumed
// kept and also lands in the second set. Removing a wagon from the first set
// always removes it from the second set.
func (p *Plan) ToggleWagon(id int, set WagonSet, wagonID int64, mode Mode) error {
	i := p.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownRow, id)
	}
	row := &p.rows[i]

	if set == SecondSet {
		second := toggle(row.SelectSecondWagon, wagonID)
		return p.UpdateRow(id, FieldSelectSecondWagon, second)
	}

	first := cloneIDs(row.SelectWagon)
	second := cloneIDs(row.SelectSecondWagon)
	if slices.Contains(first, wagonID) {
		first = without(first, wagonID)
		second = without(second, wagonID)
	} else {
		first = append(first, wagonID)
		if mode == ModeAdd && !slices.Contains(second, wagonID) {
			second = append(second, wagonID)
		}
	}
	row.SelectSecondWagon = second
	return p.UpdateRow(id, FieldSelectWagon, first)
}

func toggle(ids []int64, id int64) []int64 {
	if slices.Contains(ids, id) {
		return without(ids, id)
	}
	return append(cloneIDs(ids), id)
}

func without(ids []int64, id int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
