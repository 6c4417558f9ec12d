package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts the banner, the health check and every resource.
func setupRoutes(r chi.Router, handlers *routeHandlers) {
	r.Get("/", handlers.systemHandler.root())
	r.Get("/health", handlers.systemHandler.health())

	mountResource(r, "/users", handlers.userHandler)
	mountResource(r, "/projects", handlers.projectHandler)
	mountResource(r, "/skills", handlers.skillHandler)
	mountResource(r, "/categories", handlers.categoryHandler)
	mountResource(r, "/contacts", handlers.contactHandler)
}

func mountResource[E any, I any](r chi.Router, pattern string, h resourceHandler[E, I]) {
	r.Route(pattern, func(r chi.Router) {
		r.Get("/", h.list())
		r.Post("/", h.create())
		r.Get("/{id}", h.get())
		r.Put("/{id}", h.update())
		r.Delete("/{id}", h.remove())
	})
}
