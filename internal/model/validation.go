package model

import (
	"fmt"
	"strings"
)

// Severity classifies a validation issue.
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// FieldTotal is the pseudo-field name for aggregate (cross-pillar) issues.
const FieldTotal = "total"

// ValidationIssue is a single problem found in a weight configuration.
type ValidationIssue struct {
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

func (i ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// ValidationResult reports the outcome of validating a weight configuration.
// IsValid is false iff at least one critical issue was raised; warnings never
// block use.
type ValidationResult struct {
	IsValid  bool              `json:"is_valid"`
	Errors   []ValidationIssue `json:"errors,omitempty"`
	Warnings []ValidationIssue `json:"warnings,omitempty"`
}

// Summary joins all critical issue messages, for embedding in error text.
func (r ValidationResult) Summary() string {
	msgs := make([]string, 0, len(r.Errors))
	for _, issue := range r.Errors {
		msgs = append(msgs, issue.String())
	}
	return strings.Join(msgs, "; ")
}

// WeightImpact quantifies the effect of switching from one weight
// configuration to another while holding pillar scores fixed.
type WeightImpact struct {
	// TotalScoreDifference is newTotal - originalTotal.
	TotalScoreDifference float64 `json:"total_score_difference"`
	// PercentChange is the total difference relative to the original total,
	// in percent. Reported as 0 when the original total is 0.
	PercentChange float64 `json:"percent_change"`
	// PillarImpacts maps each pillar to its signed contribution delta.
	PillarImpacts map[Pillar]float64 `json:"pillar_impacts"`
	// SignificantChanges describes pillars whose contribution moved by more
	// than the materiality threshold. Empty for identical configurations.
	SignificantChanges map[Pillar]string `json:"significant_changes,omitempty"`
}
