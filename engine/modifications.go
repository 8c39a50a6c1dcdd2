package engine

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// ModificationType tags a detected substantial modification.
type ModificationType string

// Modification types.
const (
	ModelChange             ModificationType = "model_change"
	IntendedPurposeChange   ModificationType = "intended_purpose_change"
	SubstantialModification ModificationType = "substantial_modification"
)

// ModificationStatus tracks human review of a modification record. The
// engine only ever emits StatusPending; advancement is external.
type ModificationStatus string

// Modification review statuses.
const (
	ModificationPending    ModificationStatus = "pending"
	ModificationInProgress ModificationStatus = "in_progress"
	ModificationComplete   ModificationStatus = "complete"
	ModificationWaived     ModificationStatus = "waived"
)

// Modification is one detected material change between two snapshots of the
// same system. RequiresNewConformity always starts true: the engine never
// assumes a change has no conformity impact, review may waive it later.
type Modification struct {
	Field                 string             `json:"field"`
	OldValue              string             `json:"old_value"`
	NewValue              string             `json:"new_value"`
	Type                  ModificationType   `json:"modification_type"`
	RequiresNewConformity bool               `json:"requires_new_conformity"`
	Status                ModificationStatus `json:"status"`
}

type trackedField struct {
	name    string
	modType ModificationType
	value   func(Snapshot) string
}

// trackedFields is the allow-list of substantial fields. Set-valued fields
// render sorted so reordering alone never registers as a change.
var trackedFields = []trackedField{
	{"foundation_model", ModelChange, func(s Snapshot) string { return strings.TrimSpace(s.FoundationModel) }},
	{"purpose_category", IntendedPurposeChange, func(s Snapshot) string { return strings.TrimSpace(s.PurposeCategory) }},
	{"vendor_id", SubstantialModification, func(s Snapshot) string { return renderOptionalID(s.VendorID) }},
	{"value_chain_roles", SubstantialModification, func(s Snapshot) string { return renderSet(s.ValueChainRoles) }},
	{"affected_groups", SubstantialModification, func(s Snapshot) string { return renderSet(s.AffectedGroups) }},
	{"highrisk_screening_result", SubstantialModification, func(s Snapshot) string { return string(s.HighRiskScreeningResult) }},
	{"risk_level", SubstantialModification, func(s Snapshot) string { return string(s.RiskLevel) }},
}

// DetectModifications compares two snapshots of the same system over the
// fixed allow-list of substantial fields. DetectModifications(x, x) is
// always empty.
func DetectModifications(old, new Snapshot) []Modification {
	var mods []Modification

	for _, f := range trackedFields {
		oldValue := f.value(old)
		newValue := f.value(new)
		if oldValue == newValue {
			continue
		}

		mods = append(mods, Modification{
			Field:                 f.name,
			OldValue:              oldValue,
			NewValue:              newValue,
			Type:                  f.modType,
			RequiresNewConformity: true,
			Status:                ModificationPending,
		})
	}

	return mods
}

// renderSet produces a canonical string for a set-valued field: trimmed,
// empties dropped, deduplicated, sorted. nil and empty render identically.
func renderSet(values []string) string {
	cleaned := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))

	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		cleaned = append(cleaned, v)
	}

	sort.Strings(cleaned)
	return strings.Join(cleaned, ",")
}

// renderOptionalID canonicalizes an optional reference: nil renders empty.
func renderOptionalID(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
