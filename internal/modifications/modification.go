// Package modifications implements the modification record domain. Records
// are appended by the engine's field diff during system updates and tracked
// through a small resolution lifecycle; the change history itself is never
// rewritten.
package modifications

import (
	"time"

	"github.com/google/uuid"

	"github.com/veridian-labs/regent/engine"
)

// ModificationRecord represents a stored modification detected between two
// snapshots of an AI system.
type ModificationRecord struct {
	ID                    uuid.UUID                 `json:"id"`
	SystemID              uuid.UUID                 `json:"system_id"`
	Field                 string                    `json:"field"`
	OldValue              string                    `json:"old_value"`
	NewValue              string                    `json:"new_value"`
	Type                  engine.ModificationType   `json:"modification_type"`
	RequiresNewConformity bool                      `json:"requires_new_conformity"`
	Status                engine.ModificationStatus `json:"status"`
	DetectedAt            time.Time                 `json:"detected_at"`
}

// StatusCommand carries the data needed to advance a modification's status.
type StatusCommand struct {
	Status engine.ModificationStatus `json:"status"`
}
