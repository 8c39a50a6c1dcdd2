package modifications

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/veridian-labs/regent/pkg/query"
	"github.com/veridian-labs/regent/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "modifications", "m").
	Project("id", "ID").
	Project("system_id", "SystemID").
	Project("field", "Field").
	Project("old_value", "OldValue").
	Project("new_value", "NewValue").
	Project("modification_type", "Type").
	Project("requires_new_conformity", "RequiresNewConformity").
	Project("status", "Status").
	Project("detected_at", "DetectedAt")

var defaultSort = query.SortField{
	Field:      "DetectedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for modification queries.
// Nil fields are ignored. All fields use exact matching.
type Filters struct {
	SystemID *uuid.UUID `json:"system_id,omitempty"`
	Type     *string    `json:"modification_type,omitempty"`
	Status   *string    `json:"status,omitempty"`
	Field    *string    `json:"field,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("SystemID", f.SystemID).
		WhereEquals("Type", f.Type).
		WhereEquals("Status", f.Status).
		WhereEquals("Field", f.Field)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("system_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			f.SystemID = &id
		}
	}

	if t := values.Get("modification_type"); t != "" {
		f.Type = &t
	}

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if field := values.Get("field"); field != "" {
		f.Field = &field
	}

	return f
}

func scanModification(s repository.Scanner) (ModificationRecord, error) {
	var m ModificationRecord

	err := s.Scan(
		&m.ID,
		&m.SystemID,
		&m.Field,
		&m.OldValue,
		&m.NewValue,
		&m.Type,
		&m.RequiresNewConformity,
		&m.Status,
		&m.DetectedAt,
	)

	return m, err
}
