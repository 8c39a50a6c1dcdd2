package engine_test

import (
	"testing"

	"github.com/veridian-labs/regent/engine"
)

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want engine.Answer
	}{
		{"yes", "yes", engine.AnswerYes},
		{"no", "no", engine.AnswerNo},
		{"unsure", "unsure", engine.AnswerUnsure},
		{"unknown", "unknown", engine.AnswerUnknown},
		{"empty is unknown", "", engine.AnswerUnknown},
		{"unrecognized is unsure", "maybe", engine.AnswerUnsure},
		{"case sensitive", "Yes", engine.AnswerUnsure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := engine.ParseAnswer(tt.raw); got != tt.want {
				t.Errorf("ParseAnswer(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestAnswerEscalates(t *testing.T) {
	tests := []struct {
		name   string
		answer engine.Answer
		want   bool
	}{
		{"yes escalates", engine.AnswerYes, true},
		{"unsure escalates", engine.AnswerUnsure, true},
		{"no does not", engine.AnswerNo, false},
		{"unknown does not", engine.AnswerUnknown, false},
		{"empty does not", engine.Answer(""), false},
		{"unrecognized escalates", engine.Answer("perhaps"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.answer.Escalates(); got != tt.want {
				t.Errorf("Escalates() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnswerAnswered(t *testing.T) {
	if engine.Answer("").Answered() {
		t.Error("empty answer reported as answered")
	}
	if !engine.AnswerNo.Answered() {
		t.Error("no reported as unanswered")
	}
}

func TestAnswersGet(t *testing.T) {
	answers := engine.Answers{"social_scoring": engine.AnswerYes}

	if got := answers.Get("social_scoring"); got != engine.AnswerYes {
		t.Errorf("Get(present) = %q, want yes", got)
	}
	if got := answers.Get("missing"); got != engine.AnswerUnknown {
		t.Errorf("Get(absent) = %q, want unknown", got)
	}

	var nilAnswers engine.Answers
	if got := nilAnswers.Get("anything"); got != engine.AnswerUnknown {
		t.Errorf("Get on nil map = %q, want unknown", got)
	}
}
