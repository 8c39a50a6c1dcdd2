// Package engine implements the regulatory classification and obligation
// derivation core: pure functions that map an AI system snapshot to a risk
// classification, derive the compliance tasks that follow from it, and
// compare snapshot revisions for substantial modifications and reassessment
// triggers. Nothing in this package reads a clock, touches I/O, or mutates
// its inputs; callers supply the current time explicitly.
package engine

import (
	"time"

	"github.com/google/uuid"
)

// LifecycleStatus describes where an AI system sits in its deployment lifecycle.
type LifecycleStatus string

// Lifecycle statuses.
const (
	LifecycleIdea    LifecycleStatus = "idea"
	LifecyclePilot   LifecycleStatus = "pilot"
	LifecycleLive    LifecycleStatus = "live"
	LifecycleRetired LifecycleStatus = "retired"
)

// IntakeMode distinguishes the full assessment wizard from the abbreviated
// quick-capture intake.
type IntakeMode string

// Intake modes.
const (
	IntakeFull  IntakeMode = "full"
	IntakeQuick IntakeMode = "quick"
)

// Value-chain roles an organization can hold for a system.
const (
	RoleProvider    = "provider"
	RoleDeployer    = "deployer"
	RoleImporter    = "importer"
	RoleDistributor = "distributor"
)

// MonitoringStatus describes the state of post-market monitoring for a system.
type MonitoringStatus string

// Monitoring statuses.
const (
	MonitoringNotStarted MonitoringStatus = "not_started"
	MonitoringPlanned    MonitoringStatus = "planned"
	MonitoringActive     MonitoringStatus = "active"
)

// LoggingStatus describes the state of automatic event logging for a system.
type LoggingStatus string

// Logging statuses.
const (
	LoggingNone       LoggingStatus = "none"
	LoggingConfigured LoggingStatus = "configured"
	LoggingRetained   LoggingStatus = "retained"
)

// RegistrationStatus describes EU database registration progress.
type RegistrationStatus string

// Registration statuses.
const (
	RegistrationNotStarted  RegistrationStatus = "not_started"
	RegistrationSubmitted   RegistrationStatus = "submitted"
	RegistrationComplete    RegistrationStatus = "registered"
	RegistrationNotRequired RegistrationStatus = "not_required"
)

// FRIAStatus describes fundamental-rights impact assessment progress.
type FRIAStatus string

// FRIA statuses.
const (
	FRIANotStarted  FRIAStatus = "not_started"
	FRIAInProgress  FRIAStatus = "in_progress"
	FRIAComplete    FRIAStatus = "complete"
	FRIANotRequired FRIAStatus = "not_required"
)

// FRIATriggerStatus records a previously derived FRIA trigger decision.
type FRIATriggerStatus string

// FRIA trigger statuses.
const (
	FRIATriggered    FRIATriggerStatus = "triggered"
	FRIANotTriggered FRIATriggerStatus = "not_triggered"
)

// Snapshot is the immutable point-in-time record of one AI system's
// classification-relevant attributes. Every edit produces a new Snapshot;
// the modification and reassessment detectors always operate on an
// (old, new) pair, never on a mutated value.
type Snapshot struct {
	ID       uuid.UUID `json:"id" yaml:"id"`
	SystemID uuid.UUID `json:"system_id" yaml:"system_id"`
	Version  int       `json:"version" yaml:"version"`

	Lifecycle       LifecycleStatus `json:"lifecycle_status" yaml:"lifecycle_status"`
	VendorID        *uuid.UUID      `json:"vendor_id" yaml:"vendor_id"`
	IntakeMode      IntakeMode      `json:"intake_mode" yaml:"intake_mode"`
	ValueChainRoles []string        `json:"value_chain_roles" yaml:"value_chain_roles"`
	FoundationModel string          `json:"foundation_model" yaml:"foundation_model"`
	PurposeCategory string          `json:"purpose_category" yaml:"purpose_category"`
	AffectedGroups  []string        `json:"affected_groups" yaml:"affected_groups"`

	// Screening answers, keyed by the fixed question identifiers declared
	// in screenings.go. Absent keys are unanswered.
	AIDefinition Answers `json:"ai_definition" yaml:"ai_definition"`
	Prohibited   Answers `json:"prohibited_practices" yaml:"prohibited_practices"`
	HighRisk     Answers `json:"highrisk_categories" yaml:"highrisk_categories"`
	Transparency Answers `json:"transparency_scenarios" yaml:"transparency_scenarios"`

	// Safety-component / regulated-product marker: a "yes" or "unsure"
	// classifies high-risk independently of the Annex III categories.
	HighRiskProduct Answer `json:"highrisk_product" yaml:"highrisk_product"`

	// Derived screening verdicts persisted from a prior evaluation.
	AIScreeningResult           AIScreeningResult           `json:"ai_screening_result" yaml:"ai_screening_result"`
	ProhibitedScreeningResult   ProhibitedScreeningResult   `json:"prohibited_screening_result" yaml:"prohibited_screening_result"`
	HighRiskScreeningResult     HighRiskScreeningResult     `json:"highrisk_screening_result" yaml:"highrisk_screening_result"`
	TransparencyScreeningResult TransparencyScreeningResult `json:"transparency_screening_result" yaml:"transparency_screening_result"`

	// RiskLevel carries the classification current at capture time, so a
	// revision pair can detect classification drift.
	RiskLevel RiskLevel `json:"risk_level" yaml:"risk_level"`

	// Governance state consulted by the not-already-satisfied predicates
	// of the task generator.
	OversightOwnerID         *uuid.UUID         `json:"oversight_owner_id" yaml:"oversight_owner_id"`
	OperatorsTrained         Answer             `json:"operators_trained" yaml:"operators_trained"`
	InstructionsAcknowledged Answer             `json:"instructions_acknowledged" yaml:"instructions_acknowledged"`
	MonitoringStatus         MonitoringStatus   `json:"monitoring_status" yaml:"monitoring_status"`
	LoggingStatus            LoggingStatus      `json:"logging_status" yaml:"logging_status"`
	IncidentProcess          Answer             `json:"incident_process_documented" yaml:"incident_process_documented"`
	RegistrationStatus       RegistrationStatus `json:"registration_status" yaml:"registration_status"`
	TransparencyDisclosure   Answer             `json:"transparency_disclosure_provided" yaml:"transparency_disclosure_provided"`

	// FRIA trigger fields, combined with OR in the task generator.
	FRIAStatus            FRIAStatus        `json:"fria_status" yaml:"fria_status"`
	IsPublicAuthority     Answer            `json:"is_public_authority" yaml:"is_public_authority"`
	ProvidesPublicService Answer            `json:"provides_public_service" yaml:"provides_public_service"`
	FRIATriggerStatus     FRIATriggerStatus `json:"fria_trigger_status" yaml:"fria_trigger_status"`

	CapturedAt time.Time `json:"captured_at" yaml:"captured_at"`
}

// Answers maps screening question identifiers to their recorded answers.
type Answers map[string]Answer

// Get returns the normalized answer for a question, AnswerUnknown when absent.
func (a Answers) Get(question string) Answer {
	if a == nil {
		return AnswerUnknown
	}
	return a[question].Normalize()
}

// HasVendor reports whether the snapshot references a vendor.
func (s Snapshot) HasVendor() bool {
	return s.VendorID != nil
}
