package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router builds the HTTP router: public product reads, admin product writes,
// and the replication provisioning endpoints that drive the primary.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)

	r.Get("/health", a.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/products", a.handleListProducts)

	r.Route("/admin", func(r chi.Router) {
		r.Use(adminRequired(a.config.AdminToken))

		r.Post("/products", a.handleCreateProduct)
		r.Patch("/products/{productID}", a.handleUpdateProduct)

		r.Route("/replication", func(r chi.Router) {
			r.Post("/roles", a.handleCreateRole)
			r.Post("/slots", a.handleCreateSlot)
			r.Get("/slots", a.handleListSlots)
			r.Delete("/slots/{slotName}", a.handleDropSlot)
		})
	})

	return r
}
