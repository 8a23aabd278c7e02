// Package weighting implements the weighting and aggregation engine: weight
// validation, normalization, score aggregation, and what-if impact analysis.
package weighting

import (
	"fmt"
	"math"

	"github.com/sells-group/bioscore-cli/internal/model"
)

// SumTolerance is the allowed deviation of the weight sum from 1.0 before a
// warning is raised. Configs outside tolerance are still usable because the
// aggregator normalizes internally.
const SumTolerance = 0.01

// ValidateWeights checks a weight configuration for structural correctness.
// Issues are returned as data, never as an error: aggregation is fail-soft
// and only persistence treats an invalid result as fatal.
func ValidateWeights(w model.WeightConfig) model.ValidationResult {
	var result model.ValidationResult

	allZero := true
	for _, p := range model.Pillars() {
		v := w.Weight(p)
		switch {
		case v < 0:
			result.Errors = append(result.Errors, model.ValidationIssue{
				Field:    string(p),
				Message:  fmt.Sprintf("negative weight %.3f not allowed", v),
				Severity: model.SeverityCritical,
			})
			allZero = false
		case v > 1:
			result.Errors = append(result.Errors, model.ValidationIssue{
				Field:    string(p),
				Message:  fmt.Sprintf("weight %.3f exceeds maximum of 1", v),
				Severity: model.SeverityCritical,
			})
			allZero = false
		case v == 0:
			result.Warnings = append(result.Warnings, model.ValidationIssue{
				Field:    string(p),
				Message:  "zero weight means pillar is ignored",
				Severity: model.SeverityWarning,
			})
		default:
			allZero = false
		}
	}

	if allZero {
		// Normalization cannot recover a distribution from all zeros; this is
		// the only configuration that must block use.
		result.Errors = append(result.Errors, model.ValidationIssue{
			Field:    model.FieldTotal,
			Message:  "all weights are zero; no pillar would contribute to the score",
			Severity: model.SeverityCritical,
		})
	}

	if sum := w.Sum(); math.Abs(sum-1.0) > SumTolerance {
		result.Warnings = append(result.Warnings, model.ValidationIssue{
			Field:    model.FieldTotal,
			Message:  fmt.Sprintf("weights sum to %.3f, expected 1.0; they will be normalized", sum),
			Severity: model.SeverityWarning,
		})
	}

	result.IsValid = len(result.Errors) == 0
	return result
}
