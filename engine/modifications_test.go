package engine_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/veridian-labs/regent/engine"
)

func TestDetectModificationsIdentity(t *testing.T) {
	s := baseSnapshot()
	s.FoundationModel = "gpt-4o"
	s.AffectedGroups = []string{"employees", "applicants"}

	if mods := engine.DetectModifications(s, s); len(mods) != 0 {
		t.Errorf("DetectModifications(x, x) = %v, want empty", mods)
	}
}

func TestDetectModificationsFoundationModel(t *testing.T) {
	old := baseSnapshot()
	old.FoundationModel = "gpt-4o"

	revised := old
	revised.FoundationModel = "claude-sonnet"

	mods := engine.DetectModifications(old, revised)

	want := []engine.Modification{{
		Field:                 "foundation_model",
		OldValue:              "gpt-4o",
		NewValue:              "claude-sonnet",
		Type:                  engine.ModelChange,
		RequiresNewConformity: true,
		Status:                engine.ModificationPending,
	}}
	if diff := cmp.Diff(want, mods); diff != "" {
		t.Errorf("modifications mismatch (-want +got):\n%s", diff)
	}
}

func TestDetectModificationsPurposeCategory(t *testing.T) {
	old := baseSnapshot()
	old.PurposeCategory = "recruitment"

	revised := old
	revised.PurposeCategory = "credit_scoring"

	mods := engine.DetectModifications(old, revised)

	if len(mods) != 1 || mods[0].Type != engine.IntendedPurposeChange {
		t.Fatalf("mods = %v, want one intended_purpose_change", mods)
	}
}

func TestDetectModificationsSetFields(t *testing.T) {
	tests := []struct {
		name     string
		old      []string
		revised  []string
		detected bool
	}{
		{
			"reorder is not a change",
			[]string{"employees", "applicants"},
			[]string{"applicants", "employees"},
			false,
		},
		{
			"duplicates and whitespace are not a change",
			[]string{"employees", "applicants"},
			[]string{" applicants ", "employees", "employees"},
			false,
		},
		{
			"added member is a change",
			[]string{"employees"},
			[]string{"employees", "minors"},
			true,
		},
		{
			"nil and empty are equal",
			nil,
			[]string{},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			old := baseSnapshot()
			old.AffectedGroups = tt.old

			revised := old
			revised.AffectedGroups = tt.revised

			mods := engine.DetectModifications(old, revised)
			if got := len(mods) > 0; got != tt.detected {
				t.Errorf("detected = %v, want %v (mods %v)", got, tt.detected, mods)
			}
			if tt.detected && mods[0].Type != engine.SubstantialModification {
				t.Errorf("Type = %q, want substantial_modification", mods[0].Type)
			}
		})
	}
}

func TestDetectModificationsSetRendering(t *testing.T) {
	old := baseSnapshot()
	old.ValueChainRoles = []string{"deployer"}

	revised := old
	revised.ValueChainRoles = []string{"provider", "deployer"}

	mods := engine.DetectModifications(old, revised)

	if len(mods) != 1 {
		t.Fatalf("mods = %v, want one entry", mods)
	}
	if mods[0].OldValue != "deployer" || mods[0].NewValue != "deployer,provider" {
		t.Errorf("rendered values = %q -> %q, want canonical sorted form",
			mods[0].OldValue, mods[0].NewValue)
	}
}

func TestDetectModificationsVendorAdded(t *testing.T) {
	vendor := uuid.New()

	old := baseSnapshot()

	revised := old
	revised.VendorID = &vendor

	mods := engine.DetectModifications(old, revised)

	if len(mods) != 1 {
		t.Fatalf("mods = %v, want exactly one vendor modification", mods)
	}
	if mods[0].Field != "vendor_id" || mods[0].Type != engine.SubstantialModification {
		t.Errorf("mod = %+v, want vendor_id substantial_modification", mods[0])
	}
	if !mods[0].RequiresNewConformity {
		t.Error("RequiresNewConformity = false, want true")
	}
	if mods[0].OldValue != "" || mods[0].NewValue != vendor.String() {
		t.Errorf("values = %q -> %q, want empty -> vendor id", mods[0].OldValue, mods[0].NewValue)
	}
}

func TestDetectModificationsClassificationDrift(t *testing.T) {
	old := baseSnapshot()
	old.RiskLevel = engine.RiskMinimal

	revised := old
	revised.RiskLevel = engine.RiskHigh
	revised.HighRiskScreeningResult = engine.HighRiskAnnexIII

	mods := engine.DetectModifications(old, revised)

	fields := make(map[string]bool)
	for _, m := range mods {
		fields[m.Field] = true
	}

	if !fields["risk_level"] || !fields["highrisk_screening_result"] {
		t.Errorf("modification fields = %v, want risk_level and highrisk_screening_result", fields)
	}
}

func TestDetectModificationsIgnoresUntrackedFields(t *testing.T) {
	old := baseSnapshot()

	revised := old
	revised.Lifecycle = engine.LifecycleLive
	revised.MonitoringStatus = engine.MonitoringActive

	if mods := engine.DetectModifications(old, revised); len(mods) != 0 {
		t.Errorf("mods = %v, want no modifications for untracked fields", mods)
	}
}
