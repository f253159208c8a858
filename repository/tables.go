package repository

import (
	"encoding/json"
	"time"

	"railshift/models"
)

type scanner interface {
	Scan(dest ...any) error
}

// Table describes how a resource maps onto a postgres table or a mongo
// collection. Columns excludes the id, and Values/Scan follow its order.
type Table[T any] struct {
	Name      string
	Columns   []string
	Search    []string
	Filters   []string
	ID        func(*T) *int64
	CreatedAt func(*T) *time.Time
	UpdatedAt func(*T) **time.Time
	Values    func(*T) ([]any, error)
	Scan      func(scanner) (*T, error)
}

func (t Table[T]) filterable(key string) bool {
	for _, f := range t.Filters {
		if f == key {
			return true
		}
	}
	return false
}

func (t Table[T]) stamp(item *T, now time.Time) {
	if c := t.CreatedAt(item); c.IsZero() {
		*c = now
	}
}

func (t Table[T]) touch(item *T, now time.Time) {
	if t.UpdatedAt != nil {
		*t.UpdatedAt(item) = &now
	}
}

// jsonColumn encodes nested values for JSONB columns. lib/pq sends []byte as
// bytea, so the encoded form is passed as a string.
func jsonColumn(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if string(b) == "null" {
		return "[]", nil
	}
	return string(b), nil
}

func decodeColumn(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

var reasonTable = Table[models.Reason]{
	Name:      "reason",
	Columns:   []string{"name", "description", "type", "created_at", "updated_at"},
	Search:    []string{"name", "description"},
	Filters:   []string{"type"},
	ID:        func(r *models.Reason) *int64 { return &r.ID },
	CreatedAt: func(r *models.Reason) *time.Time { return &r.CreatedAt },
	UpdatedAt: func(r *models.Reason) **time.Time { return &r.UpdatedAt },
	Values: func(r *models.Reason) ([]any, error) {
		return []any{r.Name, r.Description, r.Type, r.CreatedAt, r.UpdatedAt}, nil
	},
	Scan: func(s scanner) (*models.Reason, error) {
		var r models.Reason
		err := s.Scan(&r.ID, &r.Name, &r.Description, &r.Type, &r.CreatedAt, &r.UpdatedAt)
		return &r, err
	},
}

var locationTable = Table[models.Location]{
	Name:      "location",
	Columns:   []string{"name", "code", "type", "created_at"},
	Search:    []string{"name", "code"},
	Filters:   []string{"type"},
	ID:        func(l *models.Location) *int64 { return &l.ID },
	CreatedAt: func(l *models.Location) *time.Time { return &l.CreatedAt },
	Values: func(l *models.Location) ([]any, error) {
		return []any{l.Name, l.Code, l.Type, l.CreatedAt}, nil
	},
	Scan: func(s scanner) (*models.Location, error) {
		var l models.Location
		err := s.Scan(&l.ID, &l.Name, &l.Code, &l.Type, &l.CreatedAt)
		return &l, err
	},
}

var locomotiveTable = Table[models.Locomotive]{
	Name:      "locomotive",
	Columns:   []string{"name", "number", "status", "created_at"},
	Search:    []string{"name", "number"},
	Filters:   []string{"status"},
	ID:        func(l *models.Locomotive) *int64 { return &l.ID },
	CreatedAt: func(l *models.Locomotive) *time.Time { return &l.CreatedAt },
	Values: func(l *models.Locomotive) ([]any, error) {
		return []any{l.Name, l.Number, l.Status, l.CreatedAt}, nil
	},
	Scan: func(s scanner) (*models.Locomotive, error) {
		var l models.Locomotive
		err := s.Scan(&l.ID, &l.Name, &l.Number, &l.Status, &l.CreatedAt)
		return &l, err
	},
}

var roleTable = Table[models.Role]{
	Name:      "role",
	Columns:   []string{"name", "short_name", "created_at"},
	Search:    []string{"name", "short_name"},
	ID:        func(r *models.Role) *int64 { return &r.ID },
	CreatedAt: func(r *models.Role) *time.Time { return &r.CreatedAt },
	Values: func(r *models.Role) ([]any, error) {
		return []any{r.Name, r.ShortName, r.CreatedAt}, nil
	},
	Scan: func(s scanner) (*models.Role, error) {
		var r models.Role
		err := s.Scan(&r.ID, &r.Name, &r.ShortName, &r.CreatedAt)
		return &r, err
	},
}

var productTable = Table[models.Product]{
	Name:      "product",
	Columns:   []string{"name", "customer_id", "roles", "created_at"},
	Search:    []string{"name"},
	Filters:   []string{"customer_id"},
	ID:        func(p *models.Product) *int64 { return &p.ID },
	CreatedAt: func(p *models.Product) *time.Time { return &p.CreatedAt },
	Values: func(p *models.Product) ([]any, error) {
		roles, err := jsonColumn(p.Roles)
		if err != nil {
			return nil, err
		}
		return []any{p.Name, p.CustomerID, roles, p.CreatedAt}, nil
	},
	Scan: func(s scanner) (*models.Product, error) {
		var p models.Product
		var roles []byte
		if err := s.Scan(&p.ID, &p.Name, &p.CustomerID, &roles, &p.CreatedAt); err != nil {
			return nil, err
		}
		return &p, decodeColumn(roles, &p.Roles)
	},
}

var employeeTable = Table[models.Employee]{
	Name:      "employee",
	Columns:   []string{"first_name", "last_name", "email", "phone", "role_ids", "rating", "created_at"},
	Search:    []string{"first_name", "last_name", "email"},
	ID:        func(e *models.Employee) *int64 { return &e.ID },
	CreatedAt: func(e *models.Employee) *time.Time { return &e.CreatedAt },
	Values: func(e *models.Employee) ([]any, error) {
		roleIDs, err := jsonColumn(e.RoleIDs)
		if err != nil {
			return nil, err
		}
		return []any{e.FirstName, e.LastName, e.Email, e.Phone, roleIDs, float64(e.Rating), e.CreatedAt}, nil
	},
	Scan: func(s scanner) (*models.Employee, error) {
		var e models.Employee
		var roleIDs []byte
		var rating float64
		if err := s.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Phone, &roleIDs, &rating, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Rating = models.Rating(rating)
		return &e, decodeColumn(roleIDs, &e.RoleIDs)
	},
}

var customerTable = Table[models.Customer]{
	Name:      "customer",
	Columns:   []string{"name", "email", "phone", "address", "created_at"},
	Search:    []string{"name", "email"},
	ID:        func(c *models.Customer) *int64 { return &c.ID },
	CreatedAt: func(c *models.Customer) *time.Time { return &c.CreatedAt },
	Values: func(c *models.Customer) ([]any, error) {
		return []any{c.Name, c.Email, c.Phone, c.Address, c.CreatedAt}, nil
	},
	Scan: func(s scanner) (*models.Customer, error) {
		var c models.Customer
		err := s.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt)
		return &c, err
	},
}

var orderTable = Table[models.Order]{
	Name:      "orders",
	Columns:   []string{"order_no", "customer_id", "location_id", "status", "wagon_count", "delivery_date", "created_at"},
	Search:    []string{"order_no"},
	Filters:   []string{"status", "customer_id", "location_id"},
	ID:        func(o *models.Order) *int64 { return &o.ID },
	CreatedAt: func(o *models.Order) *time.Time { return &o.CreatedAt },
	Values: func(o *models.Order) ([]any, error) {
		return []any{o.OrderNo, o.CustomerID, o.LocationID, o.Status, o.WagonCount, o.DeliveryDate, o.CreatedAt}, nil
	},
	Scan: func(s scanner) (*models.Order, error) {
		var o models.Order
		err := s.Scan(&o.ID, &o.OrderNo, &o.CustomerID, &o.LocationID, &o.Status, &o.WagonCount, &o.DeliveryDate, &o.CreatedAt)
		return &o, err
	},
}

var wagonTable = Table[models.Wagon]{
	Name: "wagon",
	Columns: []string{
		"wagon_number", "type", "status", "next_status", "current_location_id", "arrival_location_id",
		"capacity", "rail", "position", "axles", "tare_weight", "load_weight", "brake_weight", "remarks", "created_at",
	},
	Search:    []string{"wagon_number", "type"},
	Filters:   []string{"status", "type", "current_location_id", "arrival_location_id", "rail"},
	ID:        func(w *models.Wagon) *int64 { return &w.ID },
	CreatedAt: func(w *models.Wagon) *time.Time { return &w.CreatedAt },
	Values: func(w *models.Wagon) ([]any, error) {
		return []any{
			w.WagonNumber, w.Type, w.Status, w.NextStatus, w.CurrentLocationID, w.ArrivalLocationID,
			w.Capacity, w.Rail, w.Position, w.Axles, w.TareWeight, w.LoadWeight, w.BrakeWeight, w.Remarks, w.CreatedAt,
		}, nil
	},
	Scan: func(s scanner) (*models.Wagon, error) {
		var w models.Wagon
		err := s.Scan(
			&w.ID, &w.WagonNumber, &w.Type, &w.Status, &w.NextStatus, &w.CurrentLocationID, &w.ArrivalLocationID,
			&w.Capacity, &w.Rail, &w.Position, &w.Axles, &w.TareWeight, &w.LoadWeight, &w.BrakeWeight, &w.Remarks, &w.CreatedAt,
		)
		return &w, err
	},
}

var shiftTable = Table[models.Shift]{
	Name: "shift",
	Columns: []string{
		"customer_id", "product_id", "locomotive_id", "date", "start_time", "end_time",
		"status", "note", "shift_roles", "created_at", "updated_at",
	},
	Search:    []string{"note"},
	Filters:   []string{"date", "status", "product_id", "customer_id", "locomotive_id"},
	ID:        func(s *models.Shift) *int64 { return &s.ID },
	CreatedAt: func(s *models.Shift) *time.Time { return &s.CreatedAt },
	UpdatedAt: func(s *models.Shift) **time.Time { return &s.UpdatedAt },
	Values: func(s *models.Shift) ([]any, error) {
		roles, err := jsonColumn(s.Roles)
		if err != nil {
			return nil, err
		}
		return []any{
			s.CustomerID, s.ProductID, s.LocomotiveID, s.Date, s.StartTime, s.EndTime,
			s.Status, s.Note, roles, s.CreatedAt, s.UpdatedAt,
		}, nil
	},
	Scan: func(sc scanner) (*models.Shift, error) {
		var s models.Shift
		var roles []byte
		err := sc.Scan(
			&s.ID, &s.CustomerID, &s.ProductID, &s.LocomotiveID, &s.Date, &s.StartTime, &s.EndTime,
			&s.Status, &s.Note, &roles, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		return &s, decodeColumn(roles, &s.Roles)
	},
}

var usnShiftTable = Table[models.USNShift]{
	Name: "usn_shift",
	Columns: []string{
		"product_id", "locomotive_id", "date", "start_time", "end_time", "status", "note",
		"route_planning", "usn_shift_roles", "documents", "created_at", "updated_at",
	},
	Search:    []string{"note"},
	Filters:   []string{"date", "status", "product_id", "locomotive_id"},
	ID:        func(s *models.USNShift) *int64 { return &s.ID },
	CreatedAt: func(s *models.USNShift) *time.Time { return &s.CreatedAt },
	UpdatedAt: func(s *models.USNShift) **time.Time { return &s.UpdatedAt },
	Values: func(s *models.USNShift) ([]any, error) {
		route, err := jsonColumn(s.RoutePlanning)
		if err != nil {
			return nil, err
		}
		roles, err := jsonColumn(s.Roles)
		if err != nil {
			return nil, err
		}
		docs, err := jsonColumn(s.Documents)
		if err != nil {
			return nil, err
		}
		return []any{
			s.ProductID, s.LocomotiveID, s.Date, s.StartTime, s.EndTime, s.Status, s.Note,
			route, roles, docs, s.CreatedAt, s.UpdatedAt,
		}, nil
	},
	Scan: func(sc scanner) (*models.USNShift, error) {
		var s models.USNShift
		var route, roles, docs []byte
		err := sc.Scan(
			&s.ID, &s.ProductID, &s.LocomotiveID, &s.Date, &s.StartTime, &s.EndTime, &s.Status, &s.Note,
			&route, &roles, &docs, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if err := decodeColumn(route, &s.RoutePlanning); err != nil {
			return nil, err
		}
		if err := decodeColumn(roles, &s.Roles); err != nil {
			return nil, err
		}
		return &s, decodeColumn(docs, &s.Documents)
	},
}
