package engine_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/veridian-labs/regent/engine"
)

func TestDetectReassessmentTriggersVendor(t *testing.T) {
	vendorA := uuid.New()
	vendorB := uuid.New()

	tests := []struct {
		name string
		old  *uuid.UUID
		new  *uuid.UUID
		want int
	}{
		{"vendor added", nil, &vendorA, 1},
		{"vendor removed", &vendorA, nil, 1},
		{"vendor changed", &vendorA, &vendorB, 1},
		{"vendor unchanged", &vendorA, &vendorA, 0},
		{"never had a vendor", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			old := baseSnapshot()
			old.VendorID = tt.old

			revised := old
			revised.VendorID = tt.new

			triggers := engine.DetectReassessmentTriggers(old, revised)
			if len(triggers) != tt.want {
				t.Fatalf("triggers = %v, want %d", triggers, tt.want)
			}
			if tt.want > 0 && triggers[0].Field != "vendor_id" {
				t.Errorf("Field = %q, want vendor_id", triggers[0].Field)
			}
		})
	}
}

func TestDetectReassessmentTriggersLifecycle(t *testing.T) {
	tests := []struct {
		name string
		old  engine.LifecycleStatus
		new  engine.LifecycleStatus
		want bool
	}{
		{"pilot to live", engine.LifecyclePilot, engine.LifecycleLive, true},
		{"idea to live", engine.LifecycleIdea, engine.LifecycleLive, true},
		{"live to retired", engine.LifecycleLive, engine.LifecycleRetired, true},
		{"idea to pilot", engine.LifecycleIdea, engine.LifecyclePilot, false},
		{"pilot to idea", engine.LifecyclePilot, engine.LifecycleIdea, false},
		{"live to pilot", engine.LifecycleLive, engine.LifecyclePilot, false},
		{"unchanged", engine.LifecycleLive, engine.LifecycleLive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			old := baseSnapshot()
			old.Lifecycle = tt.old

			revised := old
			revised.Lifecycle = tt.new

			triggers := engine.DetectReassessmentTriggers(old, revised)
			if got := len(triggers) > 0; got != tt.want {
				t.Errorf("triggered = %v, want %v (triggers %v)", got, tt.want, triggers)
			}
		})
	}
}

func TestDetectReassessmentTriggersCombined(t *testing.T) {
	vendor := uuid.New()

	old := baseSnapshot()
	old.Lifecycle = engine.LifecyclePilot

	revised := old
	revised.Lifecycle = engine.LifecycleLive
	revised.VendorID = &vendor

	triggers := engine.DetectReassessmentTriggers(old, revised)
	if len(triggers) != 2 {
		t.Fatalf("triggers = %v, want vendor and lifecycle", triggers)
	}
}

func TestBuildReassessmentFlag(t *testing.T) {
	flaggedAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	if flag := engine.BuildReassessmentFlag(nil, flaggedAt); flag != nil {
		t.Errorf("flag for no triggers = %v, want nil", flag)
	}

	triggers := []engine.Trigger{
		{Field: "vendor_id", Reason: "vendor changed"},
		{Field: "lifecycle_status", Reason: "system entered production"},
	}

	flag := engine.BuildReassessmentFlag(triggers, flaggedAt)
	if flag == nil {
		t.Fatal("flag = nil, want a raised flag")
	}
	if !flag.Flagged {
		t.Error("Flagged = false, want true")
	}
	if !flag.FlaggedAt.Equal(flaggedAt) {
		t.Errorf("FlaggedAt = %v, want %v", flag.FlaggedAt, flaggedAt)
	}
	if !strings.Contains(flag.Reason, "vendor changed") ||
		!strings.Contains(flag.Reason, "system entered production") {
		t.Errorf("Reason = %q, want both trigger reasons", flag.Reason)
	}
}
