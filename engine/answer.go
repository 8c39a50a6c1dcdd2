package engine

// Answer is the closed enumeration for a single screening question response.
// Wizard input arrives as free text; ParseAnswer narrows it before any
// branching logic sees it.
type Answer string

// Screening answer values.
const (
	AnswerYes     Answer = "yes"
	AnswerNo      Answer = "no"
	AnswerUnsure  Answer = "unsure"
	AnswerUnknown Answer = "unknown"
)

// ParseAnswer maps a raw answer string to the closed Answer enumeration.
// Empty input is unknown (not answered). Unrecognized values are read as
// unsure: a value outside the expected set must never abort evaluation, and
// the conservative screening policy escalates unresolved answers.
func ParseAnswer(raw string) Answer {
	switch Answer(raw) {
	case AnswerYes, AnswerNo, AnswerUnsure, AnswerUnknown:
		return Answer(raw)
	case "":
		return AnswerUnknown
	default:
		return AnswerUnsure
	}
}

// Normalize returns the answer coerced into the closed enumeration,
// applying the same rules as ParseAnswer.
func (a Answer) Normalize() Answer {
	return ParseAnswer(string(a))
}

// Escalates reports whether the answer triggers a screening under the
// conservative screening policy: unresolved answers escalate, so unsure
// counts the same as yes.
func (a Answer) Escalates() bool {
	switch a.Normalize() {
	case AnswerYes, AnswerUnsure:
		return true
	default:
		return false
	}
}

// Answered reports whether the question was answered at all.
func (a Answer) Answered() bool {
	return a.Normalize() != AnswerUnknown
}
