package classifications

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/veridian-labs/regent/pkg/query"
	"github.com/veridian-labs/regent/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "classifications", "c").
	Project("id", "ID").
	Project("system_id", "SystemID").
	Project("risk_level", "RiskLevel").
	Project("ai_screening_result", "AIScreen").
	Project("prohibited_screening_result", "ProhibitedScreen").
	Project("highrisk_screening_result", "HighRiskScreen").
	Project("transparency_screening_result", "TransparencyScreen").
	Project("triggered_checks", "TriggeredChecks").
	Project("rationale", "Rationale").
	Project("classified_at", "ClassifiedAt").
	Project("reassess_flagged", "ReassessFlagged").
	Project("reassess_reason", "ReassessReason").
	Project("reassess_flagged_at", "ReassessFlaggedAt")

var defaultSort = query.SortField{
	Field:      "ClassifiedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for classification queries.
// Nil fields are ignored. All fields use exact matching.
type Filters struct {
	RiskLevel *string    `json:"risk_level,omitempty"`
	SystemID  *uuid.UUID `json:"system_id,omitempty"`
	Flagged   *bool      `json:"reassess_flagged,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("RiskLevel", f.RiskLevel).
		WhereEquals("SystemID", f.SystemID).
		WhereEquals("ReassessFlagged", f.Flagged)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if r := values.Get("risk_level"); r != "" {
		f.RiskLevel = &r
	}

	if s := values.Get("system_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			f.SystemID = &id
		}
	}

	switch values.Get("reassess_flagged") {
	case "true":
		t := true
		f.Flagged = &t
	case "false":
		t := false
		f.Flagged = &t
	}

	return f
}

func scanClassification(s repository.Scanner) (Classification, error) {
	var c Classification
	var checksRaw []byte

	err := s.Scan(
		&c.ID,
		&c.SystemID,
		&c.RiskLevel,
		&c.AIScreen,
		&c.ProhibitedScreen,
		&c.HighRiskScreen,
		&c.TransparencyScreen,
		&checksRaw,
		&c.Rationale,
		&c.ClassifiedAt,
		&c.ReassessFlagged,
		&c.ReassessReason,
		&c.ReassessFlaggedAt,
	)

	if err != nil {
		return c, err
	}

	if len(checksRaw) > 0 {
		if err := json.Unmarshal(checksRaw, &c.TriggeredChecks); err != nil {
			return c, fmt.Errorf("unmarshal triggered_checks: %w", err)
		}
	}

	if c.TriggeredChecks == nil {
		c.TriggeredChecks = []string{}
	}

	return c, nil
}
