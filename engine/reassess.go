package engine

import (
	"fmt"
	"strings"
	"time"
)

// Trigger is one detected reason the current classification should be
// revisited by a human.
type Trigger struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ReassessmentFlag marks a classification for human review. The engine
// only ever sets the flag; clearing is an explicit external action
// (dismissal or re-classification), even if a later snapshot reverts the
// triggering field.
type ReassessmentFlag struct {
	Flagged   bool      `json:"flagged"`
	Reason    string    `json:"reason"`
	FlaggedAt time.Time `json:"flagged_at"`
}

// DetectReassessmentTriggers compares two snapshots over the narrow
// reassessment allow-list: vendor reference and lifecycle status. Vendor
// changes always trigger; lifecycle changes trigger only when the system
// enters production (-> live) or leaves service (-> retired), not for
// intermediate transitions.
func DetectReassessmentTriggers(old, new Snapshot) []Trigger {
	var triggers []Trigger

	if t, ok := vendorTrigger(old, new); ok {
		triggers = append(triggers, t)
	}
	if t, ok := lifecycleTrigger(old, new); ok {
		triggers = append(triggers, t)
	}

	return triggers
}

// BuildReassessmentFlag folds triggers into a flag value, nil when there is
// nothing to flag. asOf is supplied by the caller so the engine stays
// clock-free.
func BuildReassessmentFlag(triggers []Trigger, asOf time.Time) *ReassessmentFlag {
	if len(triggers) == 0 {
		return nil
	}

	reasons := make([]string, len(triggers))
	for i, t := range triggers {
		reasons[i] = t.Reason
	}

	return &ReassessmentFlag{
		Flagged:   true,
		Reason:    strings.Join(reasons, "; "),
		FlaggedAt: asOf,
	}
}

func vendorTrigger(old, new Snapshot) (Trigger, bool) {
	switch {
	case !old.HasVendor() && new.HasVendor():
		return Trigger{
			Field:  "vendor_id",
			Reason: fmt.Sprintf("vendor %s added; vendor-supplied components may change the system's conformity basis", *new.VendorID),
		}, true
	case old.HasVendor() && !new.HasVendor():
		return Trigger{
			Field:  "vendor_id",
			Reason: fmt.Sprintf("vendor %s removed; previously vendor-held obligations may now fall on the organization", *old.VendorID),
		}, true
	case old.HasVendor() && new.HasVendor() && *old.VendorID != *new.VendorID:
		return Trigger{
			Field:  "vendor_id",
			Reason: fmt.Sprintf("vendor changed from %s to %s; the replacement system may not match the assessed one", *old.VendorID, *new.VendorID),
		}, true
	}
	return Trigger{}, false
}

func lifecycleTrigger(old, new Snapshot) (Trigger, bool) {
	if old.Lifecycle == new.Lifecycle {
		return Trigger{}, false
	}

	switch new.Lifecycle {
	case LifecycleLive:
		return Trigger{
			Field:  "lifecycle_status",
			Reason: fmt.Sprintf("system entered production (%s -> live); classification assumptions must hold under real use", old.Lifecycle),
		}, true
	case LifecycleRetired:
		return Trigger{
			Field:  "lifecycle_status",
			Reason: fmt.Sprintf("system leaving service (%s -> retired); wind-down obligations apply", old.Lifecycle),
		}, true
	}

	return Trigger{}, false
}
