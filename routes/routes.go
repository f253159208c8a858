package routes

import (
	"net/http"

	"go.uber.org/zap"

	"railshift/handlers"
)

// CORS middleware
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type crud interface {
	List(http.ResponseWriter, *http.Request)
	Get(http.ResponseWriter, *http.Request)
	Create(http.ResponseWriter, *http.Request)
}

type editable interface {
	crud
	Update(http.ResponseWriter, *http.Request)
	Delete(http.ResponseWriter, *http.Request)
}

// NewRouter registers every endpoint. Each handler is wrapped with panic
// recovery; the whole mux with CORS, request logging and the API key gate.
func NewRouter(api *handlers.API, logger *zap.Logger, apiKeyHash string) http.Handler {
	mux := http.NewServeMux()
	handle := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, handlers.RecoverWrapper(logger, fn))
	}
	collection := func(path string, h crud) {
		handle("GET "+path, h.List)
		handle("POST "+path, h.Create)
		handle("GET "+path+"/{id}", h.Get)
	}
	full := func(path string, h editable) {
		collection(path, h)
		handle("PUT "+path+"/{id}", h.Update)
		handle("DELETE "+path+"/{id}", h.Delete)
	}

	handle("GET /healthz", handlers.Healthz)

	full("/reason", api.Reasons)
	collection("/locations", api.Locations)
	collection("/employees", api.Employees)
	collection("/customers", api.Customers)
	collection("/roles", api.Roles)
	collection("/products", api.Products)
	collection("/orders", api.Orders)
	collection("/locomotives", api.Locomotives)

	collection("/wagons", api.Wagons)
	handle("GET /wagons/options", api.Wagons.Options)
	handle("PATCH /wagons/{id}/status", api.Wagons.UpdateStatus)
	handle("PATCH /wagons/{id}/position", api.Wagons.UpdatePosition)

	full("/shifts", api.Shifts)

	full("/usn-shifts", api.USNShifts)
	handle("POST /usn-shifts/preview", api.USNShifts.Preview)
	handle("GET /usn-shifts/{id}/manifest", api.PDF.Manifest)

	if api.Documents != nil {
		handle("GET /documents/{key}", api.Documents.Serve)
	}

	return withCORS(handlers.RequestLogger(logger)(handlers.RequireAPIKey(apiKeyHash, mux)))
}
