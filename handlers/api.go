package handlers

import (
	"go.uber.org/zap"

	"railshift/cache"
	"railshift/models"
	"railshift/repository"
	"railshift/storage"
)

type Deps struct {
	Repos     *repository.Repositories
	Documents storage.DocumentStore
	// LocalDocuments is set when documents are served by this process.
	LocalDocuments  *storage.LocalStore
	LocomotiveCache *cache.TTL[models.Page[models.Locomotive]]
	Logger          *zap.Logger
}

// API holds one handler per resource.
type API struct {
	Reasons     *ResourceHandler[models.Reason]
	Locations   *ResourceHandler[models.Location]
	Locomotives *ResourceHandler[models.Locomotive]
	Roles       *ResourceHandler[models.Role]
	Products    *ResourceHandler[models.Product]
	Employees   *ResourceHandler[models.Employee]
	Customers   *ResourceHandler[models.Customer]
	Orders      *ResourceHandler[models.Order]
	Wagons      *WagonHandler
	Shifts      *ShiftHandler
	USNShifts   *USNShiftHandler
	PDF         *PDFHandler
	Documents   *DocumentHandler
}

func NewAPI(d Deps) *API {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	r := d.Repos
	api := &API{
		Reasons: &ResourceHandler[models.Reason]{
			Name: "reason", Store: r.Reasons, Logger: d.Logger,
			ID: func(v *models.Reason) *int64 { return &v.ID },
		},
		Locations: &ResourceHandler[models.Location]{
			Name: "location", Store: r.Locations, Logger: d.Logger,
			ID: func(v *models.Location) *int64 { return &v.ID },
		},
		Locomotives: &ResourceHandler[models.Locomotive]{
			Name: "locomotive", Store: r.Locomotives, Logger: d.Logger,
			ID:    func(v *models.Locomotive) *int64 { return &v.ID },
			Cache: d.LocomotiveCache,
		},
		Roles: &ResourceHandler[models.Role]{
			Name: "role", Store: r.Roles, Logger: d.Logger,
			ID: func(v *models.Role) *int64 { return &v.ID },
		},
		Products: &ResourceHandler[models.Product]{
			Name: "product", Store: r.Products, Logger: d.Logger,
			ID: func(v *models.Product) *int64 { return &v.ID },
		},
		Employees: &ResourceHandler[models.Employee]{
			Name: "employee", Store: r.Employees, Logger: d.Logger,
			ID: func(v *models.Employee) *int64 { return &v.ID },
		},
		Customers: &ResourceHandler[models.Customer]{
			Name: "customer", Store: r.Customers, Logger: d.Logger,
			ID: func(v *models.Customer) *int64 { return &v.ID },
		},
		Orders: &ResourceHandler[models.Order]{
			Name: "order", Store: r.Orders, Logger: d.Logger,
			ID: func(v *models.Order) *int64 { return &v.ID },
		},
		Wagons:    NewWagonHandler(r.Wagons, r.Locations, d.Logger),
		Shifts:    NewShiftHandler(r.Shifts, d.Logger),
		USNShifts: NewUSNShiftHandler(r, d.Documents, d.Logger),
		PDF:       &PDFHandler{Repo: r.PDF(), Logger: d.Logger},
	}
	if d.LocalDocuments != nil {
		api.Documents = &DocumentHandler{Store: d.LocalDocuments}
	}
	return api
}
