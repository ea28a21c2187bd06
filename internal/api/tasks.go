package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/taskservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *taskservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *taskservice.Service) *Handler {
	return &Handler{svc: svc}
}

// scopeParam parses the "scope" query parameter, defaulting to def when the
// parameter is absent.
func scopeParam(r *http.Request, def models.ScopeID) (models.ScopeID, error) {
	raw := r.URL.Query().Get("scope")
	if raw == "" {
		return def, nil
	}
	return models.ParseScopeID(raw)
}

func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.Is(err, apperr.ErrConflict), errors.Is(err, apperr.ErrCommitFailed):
		writeJSON(w, http.StatusConflict, errorBody("conflict"))
	case errors.Is(err, apperr.ErrScopeMismatch):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("scope mismatch"))
	default:
		slog.Error(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// ListTasks handles GET /api/tasks.
//
//	@Summary		List the tasks of one scope in display order
//	@Tags			tasks
//	@Produce		json
//	@Param			scope				query		string	false	"Scope key, e.g. inbox or project:<id>"
//	@Param			include_completed	query		bool	false	"Include completed tasks"
//	@Param			limit				query		int		false	"Page size"
//	@Param			offset				query		int		false	"Page offset"
//	@Success		200					{object}	TaskListResponse
//	@Failure		400					{object}	errResponse
//	@Security		BearerAuth
//	@Router			/tasks [get]
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeParam(r, models.InboxScope())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	includeCompleted, _ := strconv.ParseBool(q.Get("include_completed"))

	tasks, err := h.svc.ListTasks(r.Context(), scope, includeCompleted, limit, offset)
	if err != nil {
		writeServiceError(w, "list tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"scope": scope.Key(),
		"tasks": tasks,
	})
}

// CreateTask handles POST /api/tasks.
//
//	@Summary		Create a task at the end of its scope
//	@Tags			tasks
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateTaskRequest	true	"Task to create"
//	@Success		201		{object}	models.Task
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/tasks [post]
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	due, err := parseDate(req.DueDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid due_date"))
		return
	}

	task, err := h.svc.CreateTask(r.Context(), taskservice.CreateTaskInput{
		Capture:   req.Capture,
		Title:     req.Title,
		Notes:     req.Notes,
		ProjectID: req.ProjectID,
		HeaderID:  req.HeaderID,
		Priority:  req.Priority,
		DueDate:   due,
	})
	if err != nil {
		writeServiceError(w, "create task", err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// GetTask handles GET /api/tasks/{id}.
//
//	@Summary		Get a single task
//	@Tags			tasks
//	@Produce		json
//	@Param			id	path		string	true	"Task id"
//	@Success		200	{object}	models.Task
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/tasks/{id} [get]
func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.svc.GetTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, "get task", err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// UpdateTask handles PATCH /api/tasks/{id}. Ordering is never affected:
// completing or retitling a task keeps its position key.
//
//	@Summary		Patch task fields
//	@Tags			tasks
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Task id"
//	@Param			body	body		UpdateTaskRequest	true	"Fields to change"
//	@Success		200		{object}	models.Task
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/tasks/{id} [patch]
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	in := taskservice.UpdateTaskInput{
		Title:     req.Title,
		Notes:     req.Notes,
		Completed: req.Completed,
		Logged:    req.Logged,
		Priority:  req.Priority,
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			in.ClearDueDate = true
		} else {
			due, err := parseDate(*req.DueDate)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, errorBody("invalid due_date"))
				return
			}
			in.DueDate = due
		}
	}

	task, err := h.svc.UpdateTask(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeServiceError(w, "update task", err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/{id}.
//
//	@Summary		Delete a task
//	@Tags			tasks
//	@Param			id	path	string	true	"Task id"
//	@Success		204	"Task deleted"
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/tasks/{id} [delete]
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTask(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, "delete task", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveTask handles POST /api/tasks/{id}/move.
//
//	@Summary		Move a task within its scope
//	@Tags			tasks
//	@Accept			json
//	@Param			id		path	string		true	"Task id"
//	@Param			body	body	MoveRequest	true	"Source and target indices"
//	@Success		204		"Task moved"
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/tasks/{id}/move [post]
func (h *Handler) MoveTask(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	if err := h.svc.MoveTask(r.Context(), chi.URLParam(r, "id"), req.From, req.To); err != nil {
		writeServiceError(w, "move task", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveTaskToScope handles POST /api/tasks/{id}/scope. The task lands at
// the end of the target scope.
//
//	@Summary		Move a task into another scope
//	@Tags			tasks
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Task id"
//	@Param			body	body		ScopeMoveRequest	true	"Target scope key"
//	@Success		200		{object}	models.Task
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Failure		422		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/tasks/{id}/scope [post]
func (h *Handler) MoveTaskToScope(w http.ResponseWriter, r *http.Request) {
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
	task, err := h.svc.MoveTaskToScope(r.Context(), chi.URLParam(r, "id"), scope)
	if err != nil {
		writeServiceError(w, "move task to scope", err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Search handles GET /api/search.
//
//	@Summary		Full-text search across task titles and notes
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		writeServiceError(w, "search", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results": results,
	})
}
