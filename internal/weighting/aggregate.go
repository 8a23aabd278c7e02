package weighting

import (
	"go.uber.org/zap"

	"github.com/sells-group/bioscore-cli/internal/model"
)

// ApplyWeights computes per-pillar weighted contributions and their total.
// Weights are normalized internally first, so callers may pass a non-summing
// config and still get a mathematically consistent result. When every raw
// score equals s the total equals s, since normalized weights sum to 1.
func ApplyWeights(scores model.PillarScores, weights model.WeightConfig) model.WeightedScores {
	nw := NormalizeWeights(weights)

	ws := model.WeightedScores{
		AssetQuality:       scores.AssetQuality.RawScore * nw.AssetQuality,
		MarketOutlook:      scores.MarketOutlook.RawScore * nw.MarketOutlook,
		CapitalIntensity:   scores.CapitalIntensity.RawScore * nw.CapitalIntensity,
		StrategicFit:       scores.StrategicFit.RawScore * nw.StrategicFit,
		FinancialReadiness: scores.FinancialReadiness.RawScore * nw.FinancialReadiness,
		RegulatoryRisk:     scores.RegulatoryRisk.RawScore * nw.RegulatoryRisk,
	}
	ws.Total = ws.AssetQuality + ws.MarketOutlook + ws.CapitalIntensity +
		ws.StrategicFit + ws.FinancialReadiness + ws.RegulatoryRisk

	return ws
}

// ApplyWeightsWithRecalculation validates and aggregates in one call. The
// weighted result is always usable, even when the validation result is
// invalid: validation is advisory, never gating.
func ApplyWeightsWithRecalculation(scores model.PillarScores, weights model.WeightConfig) (model.WeightedScores, model.ValidationResult) {
	result := ValidateWeights(weights)
	ws := ApplyWeights(scores, weights)

	if !result.IsValid {
		zap.L().Warn("weighting: aggregated with invalid weight config",
			zap.Float64("total", ws.Total),
			zap.String("issues", result.Summary()),
		)
	}

	return ws, result
}
