package tasks

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/veridian-labs/regent/pkg/query"
	"github.com/veridian-labs/regent/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "tasks", "t").
	Project("id", "ID").
	Project("system_id", "SystemID").
	Project("task_type", "Type").
	Project("title", "Title").
	Project("description", "Description").
	Project("priority", "Priority").
	Project("due_date", "DueDate").
	Project("status", "Status").
	Project("assignee", "Assignee").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field: "DueDate",
}

// Filters contains optional filtering criteria for task queries. Nil fields
// are ignored. All fields use exact matching.
type Filters struct {
	SystemID *uuid.UUID `json:"system_id,omitempty"`
	Type     *string    `json:"task_type,omitempty"`
	Status   *Status    `json:"status,omitempty"`
	Priority *string    `json:"priority,omitempty"`
	Assignee *string    `json:"assignee,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("SystemID", f.SystemID).
		WhereEquals("Type", f.Type).
		WhereEquals("Status", f.Status).
		WhereEquals("Priority", f.Priority).
		WhereEquals("Assignee", f.Assignee)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("system_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			f.SystemID = &id
		}
	}

	if t := values.Get("task_type"); t != "" {
		f.Type = &t
	}

	if s := values.Get("status"); s != "" {
		status := Status(s)
		f.Status = &status
	}

	if p := values.Get("priority"); p != "" {
		f.Priority = &p
	}

	if a := values.Get("assignee"); a != "" {
		f.Assignee = &a
	}

	return f
}

func scanTask(s repository.Scanner) (Task, error) {
	var t Task

	err := s.Scan(
		&t.ID,
		&t.SystemID,
		&t.Type,
		&t.Title,
		&t.Description,
		&t.Priority,
		&t.DueDate,
		&t.Status,
		&t.Assignee,
		&t.CreatedAt,
		&t.UpdatedAt,
	)

	return t, err
}
