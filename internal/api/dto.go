package api

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/raido/internal/models"
)

const dateLayout = "2006-01-02"

// CreateTaskRequest is the body of POST /tasks. Either Capture (quick-add
// syntax) or Title must be present.
type CreateTaskRequest struct {
	Capture   string `json:"capture"`
	Title     string `json:"title"`
	Notes     string `json:"notes"`
	ProjectID string `json:"project_id"`
	HeaderID  string `json:"header_id"`
	Priority  int    `json:"priority"`
	DueDate   string `json:"due_date"`
}

// Validate validates the request.
func (r CreateTaskRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.When(r.Capture == "").Error("capture or title is required")),
		validation.Field(&r.Priority, validation.Min(models.PriorityNone), validation.Max(models.PriorityHigh)),
		validation.Field(&r.DueDate, validation.Date(dateLayout)),
	)
}

// UpdateTaskRequest is the body of PATCH /tasks/{id}. Absent fields are
// left untouched; a "due_date" of the empty string clears the due date.
type UpdateTaskRequest struct {
	Title     *string `json:"title"`
	Notes     *string `json:"notes"`
	Completed *bool   `json:"completed"`
	Logged    *bool   `json:"logged"`
	Priority  *int    `json:"priority"`
	DueDate   *string `json:"due_date"`
}

// Validate validates the request.
func (r UpdateTaskRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty),
		validation.Field(&r.Priority, validation.Min(models.PriorityNone), validation.Max(models.PriorityHigh)),
		validation.Field(&r.DueDate, validation.When(r.DueDate != nil && *r.DueDate != "", validation.Date(dateLayout))),
	)
}

// MoveRequest is the body of the per-entity move endpoints. From is the
// index the client believes the entity occupies; To is the target index.
type MoveRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Validate validates the request.
func (r MoveRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.From, validation.Min(0)),
		validation.Field(&r.To, validation.Min(0)),
	)
}

// ScopeMoveRequest is the body of the per-entity scope-move endpoints.
type ScopeMoveRequest struct {
	Scope string `json:"scope"`
}

// Validate validates the request.
func (r ScopeMoveRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Scope, validation.Required),
	)
}

// CreateProjectRequest is the body of POST /projects.
type CreateProjectRequest struct {
	Name   string `json:"name"`
	AreaID string `json:"area_id"`
}

// Validate validates the request.
func (r CreateProjectRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
	)
}

// UpdateProjectRequest is the body of PATCH /projects/{id}.
type UpdateProjectRequest struct {
	Name      *string `json:"name"`
	Completed *bool   `json:"completed"`
}

// Validate validates the request.
func (r UpdateProjectRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty),
	)
}

// CreateAreaRequest is the body of POST /areas.
type CreateAreaRequest struct {
	Name string `json:"name"`
}

// Validate validates the request.
func (r CreateAreaRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
	)
}

// CreateHeaderRequest is the body of POST /headers.
type CreateHeaderRequest struct {
	ProjectID string `json:"project_id"`
	Title     string `json:"title"`
}

// Validate validates the request.
func (r CreateHeaderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProjectID, validation.Required),
		validation.Field(&r.Title, validation.Required),
	)
}

// RenameRequest is the body of PATCH /areas/{id} and PATCH /headers/{id}.
type RenameRequest struct {
	Name string `json:"name"`
}

// Validate validates the request.
func (r RenameRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
	)
}

// RepairRequest is the body of POST /repair. An empty scope requests the
// full bootstrap-and-reindex pass.
type RepairRequest struct {
	Scope string `json:"scope"`
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
