package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/raido/internal/taskservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *taskservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Tasks.
	r.Get("/tasks", h.ListTasks)
	r.Post("/tasks", h.CreateTask)
	r.Get("/tasks/{id}", h.GetTask)
	r.Patch("/tasks/{id}", h.UpdateTask)
	r.Delete("/tasks/{id}", h.DeleteTask)
	r.Post("/tasks/{id}/move", h.MoveTask)
	r.Post("/tasks/{id}/scope", h.MoveTaskToScope)

	// Projects.
	r.Get("/projects", h.ListProjects)
	r.Post("/projects", h.CreateProject)
	r.Patch("/projects/{id}", h.UpdateProject)
	r.Delete("/projects/{id}", h.DeleteProject)
	r.Post("/projects/{id}/move", h.MoveProject)
	r.Post("/projects/{id}/scope", h.MoveProjectToScope)

	// Areas.
	r.Get("/areas", h.ListAreas)
	r.Post("/areas", h.CreateArea)
	r.Patch("/areas/{id}", h.UpdateArea)
	r.Delete("/areas/{id}", h.DeleteArea)
	r.Post("/areas/{id}/move", h.MoveArea)

	// Headers.
	r.Get("/headers", h.ListHeaders)
	r.Post("/headers", h.CreateHeader)
	r.Patch("/headers/{id}", h.UpdateHeader)
	r.Delete("/headers/{id}", h.DeleteHeader)
	r.Post("/headers/{id}/move", h.MoveHeader)

	// Search.
	r.Get("/search", h.Search)

	// Ordering maintenance.
	r.Get("/audit", h.AuditScope)
	r.Post("/repair", h.Repair)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
