package engine

// AIScreeningResult is the verdict of the AI-definition screen.
type AIScreeningResult string

// AI screening verdicts.
const (
	AISystem      AIScreeningResult = "ai_system"
	NotAISystem   AIScreeningResult = "not_ai_system"
	AINeedsReview AIScreeningResult = "needs_review"
)

// ProhibitedScreeningResult is the verdict of the prohibited-practice screen.
type ProhibitedScreeningResult string

// Prohibited screening verdicts.
const (
	NotProhibited       ProhibitedScreeningResult = "not_prohibited"
	PotentialProhibited ProhibitedScreeningResult = "potential_prohibited"
)

// HighRiskScreeningResult is the verdict of the high-risk screen.
type HighRiskScreeningResult string

// High-risk screening verdicts.
const (
	NotHighRisk      HighRiskScreeningResult = "not_high_risk"
	HighRiskAnnexIII HighRiskScreeningResult = "high_risk_annex_iii"
	HighRiskProduct  HighRiskScreeningResult = "high_risk_product"
)

// TransparencyScreeningResult is the verdict of the transparency screen.
type TransparencyScreeningResult string

// Transparency screening verdicts.
const (
	NoTransparencyObligations TransparencyScreeningResult = "no_transparency_obligations"
	TransparencyRequired      TransparencyScreeningResult = "transparency_required"
)

// AIDefinitionQuestions are the question identifiers of the AI-definition
// screen. All three must be answered for a conclusive verdict.
var AIDefinitionQuestions = []string{
	"machine_based_system",
	"infers_from_inputs",
	"outputs_influence_environments",
}

// ProhibitedPracticeQuestions are the eight Article-5-style prohibited
// practice categories. A yes or unsure on any forces the prohibited verdict.
var ProhibitedPracticeQuestions = []string{
	"subliminal_manipulation",
	"vulnerability_exploitation",
	"social_scoring",
	"predictive_policing",
	"facial_scraping",
	"emotion_inference_workplace",
	"biometric_categorization",
	"realtime_remote_biometric_id",
}

// HighRiskCategoryQuestions are the Annex-III-style high-risk use categories.
var HighRiskCategoryQuestions = []string{
	"biometric_identification",
	"critical_infrastructure",
	"education_vocational",
	"employment_workers",
	"essential_services",
	"law_enforcement",
	"migration_border",
	"justice_democratic",
}

// TransparencyQuestions are the transparency-obligation scenarios.
var TransparencyQuestions = []string{
	"human_interaction",
	"synthetic_content",
	"emotion_recognition",
	"deepfake_content",
}
