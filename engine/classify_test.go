package engine_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/veridian-labs/regent/engine"
)

// aiYes answers all three AI-definition questions affirmatively.
func aiYes() engine.Answers {
	answers := engine.Answers{}
	for _, q := range engine.AIDefinitionQuestions {
		answers[q] = engine.AnswerYes
	}
	return answers
}

func baseSnapshot() engine.Snapshot {
	return engine.Snapshot{
		Lifecycle:    engine.LifecyclePilot,
		IntakeMode:   engine.IntakeFull,
		AIDefinition: aiYes(),
	}
}

func TestClassifyMinimalRisk(t *testing.T) {
	c := engine.Classify(baseSnapshot())

	if c.Level != engine.RiskMinimal {
		t.Fatalf("Level = %q, want minimal_risk", c.Level)
	}
	if c.AIScreen != engine.AISystem {
		t.Errorf("AIScreen = %q, want ai_system", c.AIScreen)
	}
	if len(c.TriggeredChecks) != 0 {
		t.Errorf("TriggeredChecks = %v, want empty", c.TriggeredChecks)
	}
}

func TestClassifyNotAI(t *testing.T) {
	s := baseSnapshot()
	s.AIDefinition["infers_from_inputs"] = engine.AnswerNo
	// prohibited answers must not override a not-AI verdict
	s.Prohibited = engine.Answers{"social_scoring": engine.AnswerYes}

	c := engine.Classify(s)

	if c.Level != engine.RiskNotAI {
		t.Fatalf("Level = %q, want not_ai", c.Level)
	}
}

func TestClassifyNeedsReview(t *testing.T) {
	tests := []struct {
		name         string
		aiDefinition engine.Answers
	}{
		{"unanswered question", engine.Answers{
			"machine_based_system": engine.AnswerYes,
			"infers_from_inputs":   engine.AnswerYes,
		}},
		{"unsure answer", engine.Answers{
			"machine_based_system":           engine.AnswerYes,
			"infers_from_inputs":             engine.AnswerUnsure,
			"outputs_influence_environments": engine.AnswerYes,
		}},
		{"no answers at all", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := baseSnapshot()
			s.AIDefinition = tt.aiDefinition
			// a high-risk hit must not mask the inconclusive AI screen
			s.HighRisk = engine.Answers{"law_enforcement": engine.AnswerYes}

			c := engine.Classify(s)
			if c.Level != engine.RiskNeedsReview {
				t.Errorf("Level = %q, want needs_review", c.Level)
			}
		})
	}
}

func TestClassifyProhibitedPrecedence(t *testing.T) {
	s := baseSnapshot()
	s.Prohibited = engine.Answers{"subliminal_manipulation": engine.AnswerUnsure}
	s.HighRisk = engine.Answers{"employment_workers": engine.AnswerYes}
	s.Transparency = engine.Answers{"human_interaction": engine.AnswerYes}

	c := engine.Classify(s)

	if c.Level != engine.RiskProhibited {
		t.Fatalf("Level = %q, want prohibited", c.Level)
	}
	if c.HighRiskScreen != engine.HighRiskAnnexIII {
		t.Errorf("HighRiskScreen = %q, want high_risk_annex_iii", c.HighRiskScreen)
	}
	if len(c.TriggeredChecks) != 1 || !strings.HasPrefix(c.TriggeredChecks[0], "prohibited:") {
		t.Errorf("TriggeredChecks = %v, want the prohibited check only", c.TriggeredChecks)
	}
}

func TestClassifyHighRisk(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(*engine.Snapshot)
		want    engine.HighRiskScreeningResult
	}{
		{
			"annex iii category",
			func(s *engine.Snapshot) {
				s.HighRisk = engine.Answers{"critical_infrastructure": engine.AnswerYes}
			},
			engine.HighRiskAnnexIII,
		},
		{
			"product safety marker",
			func(s *engine.Snapshot) { s.HighRiskProduct = engine.AnswerUnsure },
			engine.HighRiskProduct,
		},
		{
			"persisted annex iii verdict",
			func(s *engine.Snapshot) { s.HighRiskScreeningResult = engine.HighRiskAnnexIII },
			engine.HighRiskAnnexIII,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := baseSnapshot()
			tt.prepare(&s)

			c := engine.Classify(s)
			if c.Level != engine.RiskHigh {
				t.Fatalf("Level = %q, want high_risk", c.Level)
			}
			if c.HighRiskScreen != tt.want {
				t.Errorf("HighRiskScreen = %q, want %q", c.HighRiskScreen, tt.want)
			}
		})
	}
}

func TestClassifyLimitedRisk(t *testing.T) {
	s := baseSnapshot()
	s.Transparency = engine.Answers{"deepfake_content": engine.AnswerUnsure}

	c := engine.Classify(s)

	if c.Level != engine.RiskLimited {
		t.Fatalf("Level = %q, want limited_risk", c.Level)
	}
	if c.TransparencyScreen != engine.TransparencyRequired {
		t.Errorf("TransparencyScreen = %q, want transparency_required", c.TransparencyScreen)
	}
}

func TestClassifyPersistedVerdictShortCircuits(t *testing.T) {
	s := engine.Snapshot{AIScreeningResult: engine.NotAISystem}

	c := engine.Classify(s)
	if c.Level != engine.RiskNotAI {
		t.Errorf("Level = %q, want not_ai from persisted verdict", c.Level)
	}
}

func TestClassifyTriggeredCheckFormat(t *testing.T) {
	s := baseSnapshot()
	s.Prohibited = engine.Answers{"social_scoring": engine.AnswerYes}

	c := engine.Classify(s)

	want := []string{"prohibited:social_scoring=yes"}
	if diff := cmp.Diff(want, c.TriggeredChecks); diff != "" {
		t.Errorf("TriggeredChecks mismatch (-want +got):\n%s", diff)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	s := baseSnapshot()
	s.HighRisk = engine.Answers{
		"law_enforcement":  engine.AnswerYes,
		"migration_border": engine.AnswerUnsure,
	}

	first := engine.Classify(s)
	second := engine.Classify(s)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated classification differs (-first +second):\n%s", diff)
	}
}
