// Package systems implements the AI system inventory and the evaluation
// orchestration around it: every write re-runs the classification engine
// over the system's snapshot and persists the derived classification,
// tasks, modification records, and reassessment flag in one transaction.
package systems

import (
	"time"

	"github.com/google/uuid"

	"github.com/veridian-labs/regent/engine"
	"github.com/veridian-labs/regent/internal/classifications"
	"github.com/veridian-labs/regent/internal/modifications"
	"github.com/veridian-labs/regent/internal/tasks"
)

// AISystem represents a stored AI system. Lifecycle, vendor, and intake
// mode are promoted to columns for filtering; the remaining snapshot
// attributes live in the profile payload.
type AISystem struct {
	ID          uuid.UUID              `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Lifecycle   engine.LifecycleStatus `json:"lifecycle_status"`
	VendorID    *uuid.UUID             `json:"vendor_id"`
	IntakeMode  engine.IntakeMode      `json:"intake_mode"`
	Profile     engine.Snapshot        `json:"profile"`
	Version     int                    `json:"version"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// Snapshot assembles the engine snapshot for this system revision. Promoted
// columns are authoritative over whatever the stored profile carries.
func (s AISystem) Snapshot() engine.Snapshot {
	snap := s.Profile
	snap.SystemID = s.ID
	snap.Version = s.Version
	snap.Lifecycle = s.Lifecycle
	snap.VendorID = s.VendorID
	snap.IntakeMode = s.IntakeMode
	snap.CapturedAt = s.UpdatedAt
	return snap
}

// CreateCommand carries the data needed to register an AI system.
type CreateCommand struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Profile     engine.Snapshot `json:"profile"`
}

// UpdateCommand carries the data needed to revise an AI system.
// ExpectedVersion implements optimistic concurrency: the update is rejected
// when the stored version has moved on.
type UpdateCommand struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Profile         engine.Snapshot `json:"profile"`
	ExpectedVersion int             `json:"expected_version"`
}

// EvaluationResult bundles everything a single engine pass produced for a
// system: the stored row, its classification, newly created tasks, appended
// modification records, and whether the pass raised the reassessment flag.
type EvaluationResult struct {
	System         *AISystem                          `json:"system"`
	Classification *classifications.Classification    `json:"classification"`
	Tasks          []tasks.Task                       `json:"tasks_created"`
	Modifications  []modifications.ModificationRecord `json:"modifications"`
	Reassessment   *engine.ReassessmentFlag           `json:"reassessment,omitempty"`
}
