package engine_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/veridian-labs/regent/engine"
)

var asOf = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func taskTypes(tasks []engine.ComplianceTask) []string {
	types := make([]string, len(tasks))
	for i, task := range tasks {
		types[i] = task.Type
	}
	return types
}

func findTask(t *testing.T, tasks []engine.ComplianceTask, taskType string) engine.ComplianceTask {
	t.Helper()
	for _, task := range tasks {
		if task.Type == taskType {
			return task
		}
	}
	t.Fatalf("task %s not generated; got %v", taskType, taskTypes(tasks))
	return engine.ComplianceTask{}
}

func TestGenerateTasksMinimalRisk(t *testing.T) {
	s := baseSnapshot()
	c := engine.Classify(s)

	tasks := engine.GenerateTasks(s, c, asOf)

	want := []string{engine.TaskQuarterlyReview}
	if diff := cmp.Diff(want, taskTypes(tasks)); diff != "" {
		t.Errorf("task types mismatch (-want +got):\n%s", diff)
	}

	review := tasks[0]
	if review.Priority != engine.PriorityLow {
		t.Errorf("quarterly review priority = %q, want low", review.Priority)
	}
	if want := asOf.AddDate(0, 0, 90); !review.DueDate.Equal(want) {
		t.Errorf("quarterly review due = %v, want %v", review.DueDate, want)
	}
}

func TestGenerateTasksProhibited(t *testing.T) {
	s := baseSnapshot()
	s.Prohibited = engine.Answers{"social_scoring": engine.AnswerYes}
	c := engine.Classify(s)

	tasks := engine.GenerateTasks(s, c, asOf)

	if tasks[0].Type != engine.TaskProhibitedReview {
		t.Fatalf("first task = %s, want prohibited_review first", tasks[0].Type)
	}
	if tasks[0].Priority != engine.PriorityUrgent {
		t.Errorf("prohibited review priority = %q, want urgent", tasks[0].Priority)
	}
	if want := asOf.AddDate(0, 0, 7); !tasks[0].DueDate.Equal(want) {
		t.Errorf("prohibited review due = %v, want %v", tasks[0].DueDate, want)
	}
}

func TestGenerateTasksQuickIntake(t *testing.T) {
	s := baseSnapshot()
	s.IntakeMode = engine.IntakeQuick
	c := engine.Classify(s)

	tasks := engine.GenerateTasks(s, c, asOf)

	want := []string{
		engine.TaskFullAssessment,
		engine.TaskVendorDocs,
		engine.TaskQuarterlyReview,
	}
	if diff := cmp.Diff(want, taskTypes(tasks)); diff != "" {
		t.Errorf("task types mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateTasksHighRiskDeployerObligations(t *testing.T) {
	s := baseSnapshot()
	s.HighRisk = engine.Answers{"employment_workers": engine.AnswerYes}
	c := engine.Classify(s)

	tasks := engine.GenerateTasks(s, c, asOf)

	want := []string{
		engine.TaskDepInstructions,
		engine.TaskDepOversight,
		engine.TaskFRIAAssessment,
		engine.TaskDepMonitoring,
		engine.TaskDepLogRetention,
		engine.TaskDepIncidentProcess,
		engine.TaskEUDBRegistration,
		engine.TaskQuarterlyReview,
	}
	if diff := cmp.Diff(want, taskTypes(tasks)); diff != "" {
		t.Errorf("task types mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateTasksHighRiskObligationsSatisfied(t *testing.T) {
	owner := uuid.New()

	s := baseSnapshot()
	s.HighRisk = engine.Answers{"employment_workers": engine.AnswerYes}
	s.InstructionsAcknowledged = engine.AnswerYes
	s.OversightOwnerID = &owner
	s.OperatorsTrained = engine.AnswerYes
	s.MonitoringStatus = engine.MonitoringActive
	s.LoggingStatus = engine.LoggingRetained
	s.IncidentProcess = engine.AnswerYes
	s.RegistrationStatus = engine.RegistrationComplete
	s.FRIAStatus = engine.FRIANotRequired
	s.IsPublicAuthority = engine.AnswerNo
	s.ProvidesPublicService = engine.AnswerNo
	s.FRIATriggerStatus = engine.FRIANotTriggered
	c := engine.Classify(s)

	tasks := engine.GenerateTasks(s, c, asOf)

	want := []string{engine.TaskQuarterlyReview}
	if diff := cmp.Diff(want, taskTypes(tasks)); diff != "" {
		t.Errorf("task types mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateTasksOversightPartialSatisfaction(t *testing.T) {
	owner := uuid.New()

	// an owner without trained operators still needs the oversight task
	s := baseSnapshot()
	s.HighRisk = engine.Answers{"essential_services": engine.AnswerYes}
	s.OversightOwnerID = &owner
	s.OperatorsTrained = engine.AnswerUnsure
	c := engine.Classify(s)

	tasks := engine.GenerateTasks(s, c, asOf)
	oversight := findTask(t, tasks, engine.TaskDepOversight)

	if want := asOf.AddDate(0, 0, 21); !oversight.DueDate.Equal(want) {
		t.Errorf("oversight due = %v, want %v", oversight.DueDate, want)
	}
}

func TestGenerateTasksFRIATriggers(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(*engine.Snapshot)
		want    bool
	}{
		{
			"fria status never recorded",
			func(s *engine.Snapshot) {},
			true,
		},
		{
			"fria not started",
			func(s *engine.Snapshot) { s.FRIAStatus = engine.FRIANotStarted },
			true,
		},
		{
			"fria in progress",
			func(s *engine.Snapshot) { s.FRIAStatus = engine.FRIAInProgress },
			true,
		},
		{
			"public authority despite completed fria",
			func(s *engine.Snapshot) {
				s.FRIAStatus = engine.FRIAComplete
				s.IsPublicAuthority = engine.AnswerYes
			},
			true,
		},
		{
			"public service unsure",
			func(s *engine.Snapshot) {
				s.FRIAStatus = engine.FRIAComplete
				s.ProvidesPublicService = engine.AnswerUnsure
			},
			true,
		},
		{
			"persisted trigger status",
			func(s *engine.Snapshot) {
				s.FRIAStatus = engine.FRIANotRequired
				s.FRIATriggerStatus = engine.FRIATriggered
			},
			true,
		},
		{
			"no trigger",
			func(s *engine.Snapshot) {
				s.FRIAStatus = engine.FRIAComplete
				s.IsPublicAuthority = engine.AnswerNo
				s.ProvidesPublicService = engine.AnswerNo
				s.FRIATriggerStatus = engine.FRIANotTriggered
			},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := baseSnapshot()
			s.HighRisk = engine.Answers{"law_enforcement": engine.AnswerYes}
			tt.prepare(&s)
			c := engine.Classify(s)

			tasks := engine.GenerateTasks(s, c, asOf)

			found := false
			for _, task := range tasks {
				if task.Type == engine.TaskFRIAAssessment {
					found = true
				}
			}
			if found != tt.want {
				t.Errorf("fria_assessment generated = %v, want %v", found, tt.want)
			}
		})
	}
}

func TestGenerateTasksTransparencyNotice(t *testing.T) {
	s := baseSnapshot()
	s.Transparency = engine.Answers{"human_interaction": engine.AnswerYes}
	c := engine.Classify(s)

	tasks := engine.GenerateTasks(s, c, asOf)
	findTask(t, tasks, engine.TaskTransparencyNotice)

	// disclosure already provided drops the task
	s.TransparencyDisclosure = engine.AnswerYes
	tasks = engine.GenerateTasks(s, engine.Classify(s), asOf)
	for _, task := range tasks {
		if task.Type == engine.TaskTransparencyNotice {
			t.Error("transparency_notice generated despite provided disclosure")
		}
	}
}

func TestGenerateTasksDeterministic(t *testing.T) {
	s := baseSnapshot()
	s.SystemID = uuid.New()
	s.IntakeMode = engine.IntakeQuick
	s.HighRisk = engine.Answers{"education_vocational": engine.AnswerUnsure}
	c := engine.Classify(s)

	first := engine.GenerateTasks(s, c, asOf)
	second := engine.GenerateTasks(s, c, asOf)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated generation differs (-first +second):\n%s", diff)
	}
}

func TestGenerateTasksPriorityOrdering(t *testing.T) {
	s := baseSnapshot()
	s.IntakeMode = engine.IntakeQuick
	s.Prohibited = engine.Answers{"facial_scraping": engine.AnswerYes}
	s.HighRisk = engine.Answers{"biometric_identification": engine.AnswerYes}
	s.Transparency = engine.Answers{"synthetic_content": engine.AnswerYes}
	c := engine.Classify(s)

	tasks := engine.GenerateTasks(s, c, asOf)

	rank := map[engine.Priority]int{
		engine.PriorityUrgent: 0,
		engine.PriorityHigh:   1,
		engine.PriorityMedium: 2,
		engine.PriorityLow:    3,
	}

	for i := 1; i < len(tasks); i++ {
		if rank[tasks[i].Priority] < rank[tasks[i-1].Priority] {
			t.Fatalf("task %s (%s) ordered after %s (%s)",
				tasks[i].Type, tasks[i].Priority, tasks[i-1].Type, tasks[i-1].Priority)
		}
	}
}

func TestGenerateTasksPersistedProhibitedVerdict(t *testing.T) {
	s := baseSnapshot()
	s.ProhibitedScreeningResult = engine.PotentialProhibited
	c := engine.Classify(s)

	if c.Level != engine.RiskProhibited {
		t.Fatalf("Level = %q, want prohibited from the persisted verdict alone", c.Level)
	}

	tasks := engine.GenerateTasks(s, c, asOf)

	var reviews []engine.ComplianceTask
	for _, task := range tasks {
		if task.Type == engine.TaskProhibitedReview {
			reviews = append(reviews, task)
		}
	}
	if len(reviews) != 1 {
		t.Fatalf("prohibited_review count = %d, want exactly 1", len(reviews))
	}
	if reviews[0].Priority != engine.PriorityUrgent {
		t.Errorf("prohibited review priority = %q, want urgent", reviews[0].Priority)
	}
	if want := asOf.AddDate(0, 0, 7); !reviews[0].DueDate.Equal(want) {
		t.Errorf("prohibited review due = %v, want %v", reviews[0].DueDate, want)
	}
}

func TestGenerateTasksPersistedHighRiskVerdict(t *testing.T) {
	owner := uuid.New()

	s := baseSnapshot()
	s.HighRiskScreeningResult = engine.HighRiskAnnexIII
	s.OversightOwnerID = nil
	s.OperatorsTrained = engine.AnswerNo
	c := engine.Classify(s)

	if c.Level != engine.RiskHigh {
		t.Fatalf("Level = %q, want high_risk from the persisted verdict alone", c.Level)
	}

	tasks := engine.GenerateTasks(s, c, asOf)
	oversight := findTask(t, tasks, engine.TaskDepOversight)

	if oversight.Priority != engine.PriorityHigh {
		t.Errorf("oversight priority = %q, want high", oversight.Priority)
	}
	if want := asOf.AddDate(0, 0, 21); !oversight.DueDate.Equal(want) {
		t.Errorf("oversight due = %v, want %v", oversight.DueDate, want)
	}

	// closing the oversight gap removes only that task
	s.OversightOwnerID = &owner
	s.OperatorsTrained = engine.AnswerYes
	satisfied := engine.GenerateTasks(s, engine.Classify(s), asOf)

	var want []string
	for _, typ := range taskTypes(tasks) {
		if typ != engine.TaskDepOversight {
			want = append(want, typ)
		}
	}
	if diff := cmp.Diff(want, taskTypes(satisfied)); diff != "" {
		t.Errorf("task types after satisfying oversight (-want +got):\n%s", diff)
	}
}

func TestGenerateTasksPersistedNotHighRiskVerdict(t *testing.T) {
	s := baseSnapshot()
	s.HighRiskScreeningResult = engine.NotHighRisk
	s.Transparency = engine.Answers{"human_interaction": engine.AnswerYes}
	s.MonitoringStatus = engine.MonitoringNotStarted
	s.LoggingStatus = engine.LoggingNone
	c := engine.Classify(s)

	tasks := engine.GenerateTasks(s, c, asOf)

	deployerTypes := []string{
		engine.TaskDepInstructions,
		engine.TaskDepOversight,
		engine.TaskDepMonitoring,
		engine.TaskDepLogRetention,
		engine.TaskDepIncidentProcess,
	}
	for _, typ := range deployerTypes {
		for _, task := range tasks {
			if task.Type == typ {
				t.Errorf("%s generated for a not-high-risk verdict", typ)
			}
		}
	}
}
