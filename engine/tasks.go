package engine

import (
	"time"

	"github.com/google/uuid"
)

// Priority is the urgency tier of a compliance task.
type Priority string

// Task priorities, most to least urgent.
const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ComplianceTask is one derived obligation. Type is the stable identifier
// the shell deduplicates on; assignment happens downstream.
type ComplianceTask struct {
	SystemID    uuid.UUID `json:"system_id"`
	Type        string    `json:"task_type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	DueDate     time.Time `json:"due_date"`
}

// Task type identifiers emitted by the rule table.
const (
	TaskProhibitedReview   = "prohibited_review"
	TaskFullAssessment     = "full_assessment"
	TaskDepInstructions    = "dep_instructions"
	TaskDepOversight       = "dep_oversight"
	TaskFRIAAssessment     = "fria_assessment"
	TaskVendorDocs         = "vendor_docs"
	TaskTransparencyNotice = "transparency_notice"
	TaskDepMonitoring      = "dep_monitoring"
	TaskDepLogRetention    = "dep_log_retention"
	TaskDepIncidentProcess = "dep_incident_process"
	TaskEUDBRegistration   = "eu_db_registration"
	TaskQuarterlyReview    = "quarterly_review"
)

type taskRule struct {
	taskType    string
	title       string
	description string
	priority    Priority
	offsetDays  int
	applies     func(Snapshot, RiskClassification) bool
}

// taskRules is the fixed obligation rule table. Rules are independent; the
// table is ordered by priority tier and, within a tier, by discovery order,
// which fixes the canonical output order of GenerateTasks.
var taskRules = []taskRule{
	{
		taskType:    TaskProhibitedReview,
		title:       "Review potential prohibited practice",
		description: "The prohibited-practice screening flagged this system. Review the flagged practices and decide whether the system must be withdrawn or redesigned.",
		priority:    PriorityUrgent,
		offsetDays:  7,
		applies: func(s Snapshot, c RiskClassification) bool {
			return c.ProhibitedScreen == PotentialProhibited
		},
	},
	{
		taskType:    TaskFullAssessment,
		title:       "Complete the full assessment",
		description: "This system was captured through the quick intake. Complete the full classification wizard to confirm the screening results.",
		priority:    PriorityHigh,
		offsetDays:  14,
		applies: func(s Snapshot, c RiskClassification) bool {
			return s.IntakeMode == IntakeQuick
		},
	},
	{
		taskType:    TaskDepInstructions,
		title:       "Obtain and follow the provider's instructions for use",
		description: "Collect the provider's instructions for use and verify the system is operated within them.",
		priority:    PriorityHigh,
		offsetDays:  14,
		applies: func(s Snapshot, c RiskClassification) bool {
			return c.HighRiskScreen != NotHighRisk && !s.InstructionsAcknowledged.Normalize().isYes()
		},
	},
	{
		taskType:    TaskDepOversight,
		title:       "Assign human oversight and train operators",
		description: "Designate a human oversight owner and ensure the people operating the system are trained for it.",
		priority:    PriorityHigh,
		offsetDays:  21,
		applies: func(s Snapshot, c RiskClassification) bool {
			if c.HighRiskScreen == NotHighRisk {
				return false
			}
			satisfied := s.OversightOwnerID != nil && s.OperatorsTrained.Normalize().isYes()
			return !satisfied
		},
	},
	{
		taskType:    TaskFRIAAssessment,
		title:       "Perform a fundamental rights impact assessment",
		description: "A FRIA trigger applies to this deployment. Conduct and document the assessment before continued operation.",
		priority:    PriorityHigh,
		offsetDays:  21,
		applies: func(s Snapshot, c RiskClassification) bool {
			return c.HighRiskScreen != NotHighRisk && friaTriggered(s)
		},
	},
	{
		taskType:    TaskVendorDocs,
		title:       "Collect vendor documentation",
		description: "This system was captured through the quick intake. Request conformity documentation and technical details from the vendor.",
		priority:    PriorityMedium,
		offsetDays:  21,
		applies: func(s Snapshot, c RiskClassification) bool {
			return s.IntakeMode == IntakeQuick
		},
	},
	{
		taskType:    TaskTransparencyNotice,
		title:       "Provide the required transparency disclosure",
		description: "Users must be informed they are interacting with or exposed to AI output. Implement the applicable disclosure.",
		priority:    PriorityMedium,
		offsetDays:  30,
		applies: func(s Snapshot, c RiskClassification) bool {
			return c.TransparencyScreen == TransparencyRequired && !s.TransparencyDisclosure.Normalize().isYes()
		},
	},
	{
		taskType:    TaskDepMonitoring,
		title:       "Establish post-market monitoring",
		description: "Set up monitoring of the system's operation in accordance with the provider's instructions.",
		priority:    PriorityMedium,
		offsetDays:  30,
		applies: func(s Snapshot, c RiskClassification) bool {
			return c.HighRiskScreen != NotHighRisk && s.MonitoringStatus != MonitoringActive
		},
	},
	{
		taskType:    TaskDepLogRetention,
		title:       "Retain automatically generated logs",
		description: "Configure retention of the system's automatically generated logs for the mandated period.",
		priority:    PriorityMedium,
		offsetDays:  30,
		applies: func(s Snapshot, c RiskClassification) bool {
			return c.HighRiskScreen != NotHighRisk && s.LoggingStatus != LoggingRetained
		},
	},
	{
		taskType:    TaskDepIncidentProcess,
		title:       "Document the serious-incident process",
		description: "Define and document the process for suspending use and informing the provider and authorities on serious incidents.",
		priority:    PriorityMedium,
		offsetDays:  45,
		applies: func(s Snapshot, c RiskClassification) bool {
			return c.HighRiskScreen != NotHighRisk && !s.IncidentProcess.Normalize().isYes()
		},
	},
	{
		taskType:    TaskEUDBRegistration,
		title:       "Register the system in the EU database",
		description: "Complete the EU database registration applicable to this high-risk deployment.",
		priority:    PriorityMedium,
		offsetDays:  60,
		applies: func(s Snapshot, c RiskClassification) bool {
			if c.HighRiskScreen == NotHighRisk {
				return false
			}
			switch s.RegistrationStatus {
			case RegistrationComplete, RegistrationNotRequired:
				return false
			}
			return true
		},
	},
	{
		taskType:    TaskQuarterlyReview,
		title:       "Quarterly compliance review",
		description: "Review this system's classification, obligations, and pending modifications.",
		priority:    PriorityLow,
		offsetDays:  90,
		applies: func(s Snapshot, c RiskClassification) bool {
			return true
		},
	},
}

// GenerateTasks derives the compliance tasks that follow from a snapshot and
// its classification. asOf anchors every due date; the function never reads
// a clock, so identical inputs always produce an identical task list.
func GenerateTasks(s Snapshot, c RiskClassification, asOf time.Time) []ComplianceTask {
	tasks := make([]ComplianceTask, 0, len(taskRules))

	for _, rule := range taskRules {
		if !rule.applies(s, c) {
			continue
		}
		tasks = append(tasks, ComplianceTask{
			SystemID:    s.SystemID,
			Type:        rule.taskType,
			Title:       rule.title,
			Description: rule.description,
			Priority:    rule.priority,
			DueDate:     asOf.AddDate(0, 0, rule.offsetDays),
		})
	}

	return tasks
}

// friaTriggered reproduces the source's OR-of-conditions trigger literally.
// The conditions overlap; no combination is treated as redundant. An unset
// FRIA status counts as open, same as every other governance predicate.
func friaTriggered(s Snapshot) bool {
	friaOpen := s.FRIAStatus != FRIAComplete && s.FRIAStatus != FRIANotRequired
	return friaOpen ||
		s.IsPublicAuthority.Escalates() ||
		s.ProvidesPublicService.Escalates() ||
		s.FRIATriggerStatus == FRIATriggered
}

func (a Answer) isYes() bool {
	return a == AnswerYes
}
