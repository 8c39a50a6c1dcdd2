// Package classifications implements the risk classification domain for
// Regent. It stores the current classification and reassessment flag per AI
// system, replaced wholesale on every (re-)evaluation.
package classifications

import (
	"time"

	"github.com/google/uuid"

	"github.com/veridian-labs/regent/engine"
)

// Classification represents the stored risk classification for an AI system.
// It mirrors the classifications table schema, including the reassessment
// flag columns.
type Classification struct {
	ID                 uuid.UUID                          `json:"id"`
	SystemID           uuid.UUID                          `json:"system_id"`
	RiskLevel          engine.RiskLevel                   `json:"risk_level"`
	AIScreen           engine.AIScreeningResult           `json:"ai_screening_result"`
	ProhibitedScreen   engine.ProhibitedScreeningResult   `json:"prohibited_screening_result"`
	HighRiskScreen     engine.HighRiskScreeningResult     `json:"highrisk_screening_result"`
	TransparencyScreen engine.TransparencyScreeningResult `json:"transparency_screening_result"`
	TriggeredChecks    []string                           `json:"triggered_checks"`
	Rationale          string                             `json:"rationale"`
	ClassifiedAt       time.Time                          `json:"classified_at"`

	ReassessFlagged   bool       `json:"reassess_flagged"`
	ReassessReason    *string    `json:"reassess_reason"`
	ReassessFlaggedAt *time.Time `json:"reassess_flagged_at"`
}

// DismissCommand carries the data needed to dismiss a reassessment flag.
// DismissedBy identifies the human who reviewed and dismissed it.
type DismissCommand struct {
	DismissedBy string `json:"dismissed_by"`
}
