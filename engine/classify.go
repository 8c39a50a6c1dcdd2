package engine

import (
	"fmt"
	"strings"
)

// RiskLevel is the overall risk tier derived for a system.
type RiskLevel string

// Risk levels, least to most severe. NeedsReview marks an indeterminate
// verdict: classification never fails for incomplete data, it flags it.
const (
	RiskNeedsReview RiskLevel = "needs_review"
	RiskNotAI       RiskLevel = "not_ai"
	RiskMinimal     RiskLevel = "minimal_risk"
	RiskLimited     RiskLevel = "limited_risk"
	RiskHigh        RiskLevel = "high_risk"
	RiskProhibited  RiskLevel = "prohibited"
)

// RiskClassification is the evaluator's output: the overall risk tier, the
// four sub-verdicts that justify it, the specific checks that fired, and a
// rationale. It is replaced wholesale on every (re-)classification.
type RiskClassification struct {
	Level              RiskLevel                   `json:"risk_level"`
	AIScreen           AIScreeningResult           `json:"ai_screening_result"`
	ProhibitedScreen   ProhibitedScreeningResult   `json:"prohibited_screening_result"`
	HighRiskScreen     HighRiskScreeningResult     `json:"highrisk_screening_result"`
	TransparencyScreen TransparencyScreeningResult `json:"transparency_screening_result"`
	TriggeredChecks    []string                    `json:"triggered_checks"`
	Rationale          string                      `json:"rationale"`
}

// Classify derives the risk classification for a snapshot. It is pure,
// total, and deterministic: the same snapshot always yields the same
// result, and malformed or partial screening data produces a needs_review
// verdict rather than an error.
//
// Screens are evaluated in fixed precedence: an inconclusive AI-definition
// test short-circuits to needs_review (an explicit "no" to not_ai); a
// prohibited-practice hit forces prohibited regardless of any other field;
// a high-risk hit forces high_risk; a transparency hit forces limited_risk;
// otherwise minimal_risk.
func Classify(s Snapshot) RiskClassification {
	aiScreen := evaluateAIScreen(s)
	prohibitedScreen, prohibitedChecks := evaluateProhibitedScreen(s)
	highRiskScreen, highRiskChecks := evaluateHighRiskScreen(s)
	transparencyScreen, transparencyChecks := evaluateTransparencyScreen(s)

	c := RiskClassification{
		AIScreen:           aiScreen,
		ProhibitedScreen:   prohibitedScreen,
		HighRiskScreen:     highRiskScreen,
		TransparencyScreen: transparencyScreen,
		TriggeredChecks:    []string{},
	}

	switch aiScreen {
	case NotAISystem:
		c.Level = RiskNotAI
		c.Rationale = "system does not meet the AI-system definition"
		return c
	case AINeedsReview:
		c.Level = RiskNeedsReview
		c.Rationale = "AI-system definition screening is incomplete or inconclusive"
		return c
	}

	switch {
	case prohibitedScreen == PotentialProhibited:
		c.Level = RiskProhibited
		c.TriggeredChecks = prohibitedChecks
		c.Rationale = rationale("prohibited practice screening triggered", prohibitedChecks)
	case highRiskScreen != NotHighRisk:
		c.Level = RiskHigh
		c.TriggeredChecks = highRiskChecks
		c.Rationale = rationale("high-risk screening triggered", highRiskChecks)
	case transparencyScreen == TransparencyRequired:
		c.Level = RiskLimited
		c.TriggeredChecks = transparencyChecks
		c.Rationale = rationale("transparency obligations apply", transparencyChecks)
	default:
		c.Level = RiskMinimal
		c.Rationale = "no prohibited, high-risk, or transparency screening triggered"
	}

	return c
}

func evaluateAIScreen(s Snapshot) AIScreeningResult {
	switch s.AIScreeningResult {
	case AISystem, NotAISystem, AINeedsReview:
		return s.AIScreeningResult
	}

	conclusive := true
	for _, q := range AIDefinitionQuestions {
		switch s.AIDefinition.Get(q) {
		case AnswerNo:
			return NotAISystem
		case AnswerUnsure, AnswerUnknown:
			conclusive = false
		}
	}

	if !conclusive {
		return AINeedsReview
	}
	return AISystem
}

func evaluateProhibitedScreen(s Snapshot) (ProhibitedScreeningResult, []string) {
	checks := collectEscalations("prohibited", s.Prohibited, ProhibitedPracticeQuestions)

	if s.ProhibitedScreeningResult == PotentialProhibited {
		checks = append(checks, "prohibited:screening_result=potential_prohibited")
	}

	if len(checks) > 0 {
		return PotentialProhibited, checks
	}
	return NotProhibited, nil
}

func evaluateHighRiskScreen(s Snapshot) (HighRiskScreeningResult, []string) {
	if s.HighRiskProduct.Escalates() || s.HighRiskScreeningResult == HighRiskProduct {
		return HighRiskProduct, []string{"highrisk:product_marker=" + string(s.HighRiskProduct.Normalize())}
	}

	checks := collectEscalations("highrisk", s.HighRisk, HighRiskCategoryQuestions)

	if s.HighRiskScreeningResult == HighRiskAnnexIII {
		checks = append(checks, "highrisk:screening_result=high_risk_annex_iii")
	}

	if len(checks) > 0 {
		return HighRiskAnnexIII, checks
	}
	return NotHighRisk, nil
}

func evaluateTransparencyScreen(s Snapshot) (TransparencyScreeningResult, []string) {
	checks := collectEscalations("transparency", s.Transparency, TransparencyQuestions)

	if s.TransparencyScreeningResult == TransparencyRequired {
		checks = append(checks, "transparency:screening_result=transparency_required")
	}

	if len(checks) > 0 {
		return TransparencyRequired, checks
	}
	return NoTransparencyObligations, nil
}

func collectEscalations(screen string, answers Answers, questions []string) []string {
	var checks []string
	for _, q := range questions {
		if a := answers.Get(q); a.Escalates() {
			checks = append(checks, fmt.Sprintf("%s:%s=%s", screen, q, a))
		}
	}
	return checks
}

func rationale(summary string, checks []string) string {
	if len(checks) == 0 {
		return summary
	}
	return summary + ": " + strings.Join(checks, ", ")
}
