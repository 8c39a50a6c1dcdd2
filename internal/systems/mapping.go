package systems

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/veridian-labs/regent/engine"
	"github.com/veridian-labs/regent/pkg/query"
	"github.com/veridian-labs/regent/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "systems", "s").
	Project("id", "ID").
	Project("name", "Name").
	Project("description", "Description").
	Project("lifecycle_status", "Lifecycle").
	Project("vendor_id", "VendorID").
	Project("intake_mode", "IntakeMode").
	Project("profile", "Profile").
	Project("version", "Version").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field: "Name",
}

// Filters contains optional filtering criteria for AI system queries. Nil
// fields are ignored. All fields use exact matching.
type Filters struct {
	Lifecycle  *engine.LifecycleStatus `json:"lifecycle_status,omitempty"`
	IntakeMode *engine.IntakeMode      `json:"intake_mode,omitempty"`
	VendorID   *uuid.UUID              `json:"vendor_id,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Lifecycle", f.Lifecycle).
		WhereEquals("IntakeMode", f.IntakeMode).
		WhereEquals("VendorID", f.VendorID)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if l := values.Get("lifecycle_status"); l != "" {
		lifecycle := engine.LifecycleStatus(l)
		f.Lifecycle = &lifecycle
	}

	if m := values.Get("intake_mode"); m != "" {
		mode := engine.IntakeMode(m)
		f.IntakeMode = &mode
	}

	if v := values.Get("vendor_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.VendorID = &id
		}
	}

	return f
}

func scanSystem(s repository.Scanner) (AISystem, error) {
	var sys AISystem
	var profileRaw []byte

	err := s.Scan(
		&sys.ID,
		&sys.Name,
		&sys.Description,
		&sys.Lifecycle,
		&sys.VendorID,
		&sys.IntakeMode,
		&profileRaw,
		&sys.Version,
		&sys.CreatedAt,
		&sys.UpdatedAt,
	)

	if err != nil {
		return sys, err
	}

	if len(profileRaw) > 0 {
		if err := json.Unmarshal(profileRaw, &sys.Profile); err != nil {
			return sys, fmt.Errorf("unmarshal profile: %w", err)
		}
	}

	return sys, nil
}
