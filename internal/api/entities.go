package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/raido/internal/models"
)

// ListProjects handles GET /api/projects.
//
//	@Summary		List the projects of an area scope in display order
//	@Tags			projects
//	@Produce		json
//	@Param			scope	query		string	false	"Scope key: area:<id> or orphan-projects"
//	@Success		200		{object}	ProjectListResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/projects [get]
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeParam(r, models.OrphanProjectsScope())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	projects, err := h.svc.ListProjects(r.Context(), scope)
	if err != nil {
		writeServiceError(w, "list projects", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"scope":    scope.Key(),
		"projects": projects,
	})
}

// CreateProject handles POST /api/projects.
//
//	@Summary		Create a project at the end of its area scope
//	@Tags			projects
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateProjectRequest	true	"Project to create"
//	@Success		201		{object}	models.Project
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/projects [post]
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	project, err := h.svc.CreateProject(r.Context(), req.Name, req.AreaID)
	if err != nil {
		writeServiceError(w, "create project", err)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

// UpdateProject handles PATCH /api/projects/{id}.
//
//	@Summary		Patch project fields
//	@Tags			projects
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Project id"
//	@Param			body	body		UpdateProjectRequest	true	"Fields to change"
//	@Success		200		{object}	models.Project
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/projects/{id} [patch]
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var req UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	project, err := h.svc.UpdateProject(r.Context(), chi.URLParam(r, "id"), req.Name, req.Completed)
	if err != nil {
		writeServiceError(w, "update project", err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// DeleteProject handles DELETE /api/projects/{id}.
//
//	@Summary		Delete a project with its headers and tasks
//	@Tags			projects
//	@Param			id	path	string	true	"Project id"
//	@Success		204	"Project deleted"
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/projects/{id} [delete]
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProject(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, "delete project", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveProject handles POST /api/projects/{id}/move.
//
//	@Summary		Move a project within its area scope
//	@Tags			projects
//	@Accept			json
//	@Param			id		path	string		true	"Project id"
//	@Param			body	body	MoveRequest	true	"Source and target indices"
//	@Success		204		"Project moved"
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/projects/{id}/move [post]
func (h *Handler) MoveProject(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	if err := h.svc.MoveProject(r.Context(), chi.URLParam(r, "id"), req.From, req.To); err != nil {
		writeServiceError(w, "move project", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveProjectToScope handles POST /api/projects/{id}/scope.
//
//	@Summary		Move a project under an area or out of all areas
//	@Tags			projects
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Project id"
//	@Param			body	body		ScopeMoveRequest	true	"Target scope key"
//	@Success		200		{object}	models.Project
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Failure		422		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/projects/{id}/scope [post]
func (h *Handler) MoveProjectToScope(w http.ResponseWriter, r *http.Request) {
	var req ScopeMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	scope, err := models.ParseScopeID(req.Scope)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	project, err := h.svc.MoveProjectToScope(r.Context(), chi.URLParam(r, "id"), scope)
	if err != nil {
		writeServiceError(w, "move project to scope", err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// ListAreas handles GET /api/areas.
//
//	@Summary		List all areas in display order
//	@Tags			areas
//	@Produce		json
//	@Success		200	{object}	AreaListResponse
//	@Security		BearerAuth
//	@Router			/areas [get]
func (h *Handler) ListAreas(w http.ResponseWriter, r *http.Request) {
	areas, err := h.svc.ListAreas(r.Context())
	if err != nil {
		writeServiceError(w, "list areas", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"areas": areas,
	})
}

// CreateArea handles POST /api/areas.
//
//	@Summary		Create an area at the end of the areas list
//	@Tags			areas
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateAreaRequest	true	"Area to create"
//	@Success		201		{object}	models.Area
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/areas [post]
func (h *Handler) CreateArea(w http.ResponseWriter, r *http.Request) {
	var req CreateAreaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	area, err := h.svc.CreateArea(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, "create area", err)
		return
	}
	writeJSON(w, http.StatusCreated, area)
}

// UpdateArea handles PATCH /api/areas/{id}.
//
//	@Summary		Rename an area
//	@Tags			areas
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Area id"
//	@Param			body	body		RenameRequest	true	"New name"
//	@Success		200		{object}	models.Area
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/areas/{id} [patch]
func (h *Handler) UpdateArea(w http.ResponseWriter, r *http.Request) {
	var req RenameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	area, err := h.svc.UpdateArea(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		writeServiceError(w, "update area", err)
		return
	}
	writeJSON(w, http.StatusOK, area)
}

// DeleteArea handles DELETE /api/areas/{id}. The area's projects survive
// and drop into the no-area scope.
//
//	@Summary		Delete an area
//	@Tags			areas
//	@Param			id	path	string	true	"Area id"
//	@Success		204	"Area deleted"
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/areas/{id} [delete]
func (h *Handler) DeleteArea(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteArea(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, "delete area", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveArea handles POST /api/areas/{id}/move.
//
//	@Summary		Move an area within the areas list
//	@Tags			areas
//	@Accept			json
//	@Param			id		path	string		true	"Area id"
//	@Param			body	body	MoveRequest	true	"Source and target indices"
//	@Success		204		"Area moved"
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/areas/{id}/move [post]
func (h *Handler) MoveArea(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	if err := h.svc.MoveArea(r.Context(), chi.URLParam(r, "id"), req.From, req.To); err != nil {
		writeServiceError(w, "move area", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListHeaders handles GET /api/headers.
//
//	@Summary		List a project's headers in display order
//	@Tags			headers
//	@Produce		json
//	@Param			project_id	query		string	true	"Project id"
//	@Success		200			{object}	HeaderListResponse
//	@Failure		400			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/headers [get]
func (h *Handler) ListHeaders(w http.ResponseWriter, r *http.Request) {
	projectID := r.URL.Query().Get("project_id")
	if projectID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'project_id' is required"))
		return
	}
	headers, err := h.svc.ListHeaders(r.Context(), projectID)
	if err != nil {
		writeServiceError(w, "list headers", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"headers": headers,
	})
}

// CreateHeader handles POST /api/headers.
//
//	@Summary		Create a header at the end of its project's header list
//	@Tags			headers
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateHeaderRequest	true	"Header to create"
//	@Success		201		{object}	models.Header
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/headers [post]
func (h *Handler) CreateHeader(w http.ResponseWriter, r *http.Request) {
	var req CreateHeaderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	header, err := h.svc.CreateHeader(r.Context(), req.ProjectID, req.Title)
	if err != nil {
		writeServiceError(w, "create header", err)
		return
	}
	writeJSON(w, http.StatusCreated, header)
}

// UpdateHeader handles PATCH /api/headers/{id}.
//
//	@Summary		Retitle a header
//	@Tags			headers
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Header id"
//	@Param			body	body		RenameRequest	true	"New title"
//	@Success		200		{object}	models.Header
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/headers/{id} [patch]
func (h *Handler) UpdateHeader(w http.ResponseWriter, r *http.Request) {
	var req RenameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	header, err := h.svc.UpdateHeader(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		writeServiceError(w, "update header", err)
		return
	}
	writeJSON(w, http.StatusOK, header)
}

// DeleteHeader handles DELETE /api/headers/{id}. The header's tasks fall
// back to the bare project scope.
//
//	@Summary		Delete a header
//	@Tags			headers
//	@Param			id	path	string	true	"Header id"
//	@Success		204	"Header deleted"
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/headers/{id} [delete]
func (h *Handler) DeleteHeader(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteHeader(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, "delete header", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveHeader handles POST /api/headers/{id}/move.
//
//	@Summary		Move a header within its project's header list
//	@Tags			headers
//	@Accept			json
//	@Param			id		path	string		true	"Header id"
//	@Param			body	body	MoveRequest	true	"Source and target indices"
//	@Success		204		"Header moved"
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/headers/{id}/move [post]
func (h *Handler) MoveHeader(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	if err := h.svc.MoveHeader(r.Context(), chi.URLParam(r, "id"), req.From, req.To); err != nil {
		writeServiceError(w, "move header", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
