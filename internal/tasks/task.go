// Package tasks implements the compliance task domain for Regent. Tasks are
// generated in batches by the engine's rule table and deduplicated per
// (system, task type); assignment and status advancement happen here, never
// in the engine.
package tasks

import (
	"time"

	"github.com/google/uuid"

	"github.com/veridian-labs/regent/engine"
)

// Status tracks a compliance task through its working lifecycle.
type Status string

// Task statuses. Open and in-progress tasks count against the per-type
// deduplication; done and dismissed tasks do not.
const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusDismissed  Status = "dismissed"
)

// Task represents a stored compliance task. It mirrors the tasks table schema.
type Task struct {
	ID          uuid.UUID       `json:"id"`
	SystemID    uuid.UUID       `json:"system_id"`
	Type        string          `json:"task_type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Priority    engine.Priority `json:"priority"`
	DueDate     time.Time       `json:"due_date"`
	Status      Status          `json:"status"`
	Assignee    *string         `json:"assignee"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// AssignCommand carries the data needed to assign a task.
type AssignCommand struct {
	Assignee string `json:"assignee"`
}

// StatusCommand carries the data needed to advance a task's status.
type StatusCommand struct {
	Status Status `json:"status"`
}
