package weighting

import (
	"github.com/sells-group/bioscore-cli/internal/model"
)

// NormalizeWeights returns a new configuration whose weights sum to exactly
// 1.0 while preserving the relative proportions of the input. A literal
// zero-sum input falls back to equal weighting (1/6 each) instead of dividing
// by zero. Pure numeric transform; never fails and never validates.
func NormalizeWeights(w model.WeightConfig) model.WeightConfig {
	sum := w.Sum()
	if sum == 0 {
		equal := 1.0 / 6.0
		return model.WeightConfig{
			AssetQuality:       equal,
			MarketOutlook:      equal,
			CapitalIntensity:   equal,
			StrategicFit:       equal,
			FinancialReadiness: equal,
			RegulatoryRisk:     equal,
		}
	}

	return model.WeightConfig{
		AssetQuality:       w.AssetQuality / sum,
		MarketOutlook:      w.MarketOutlook / sum,
		CapitalIntensity:   w.CapitalIntensity / sum,
		StrategicFit:       w.StrategicFit / sum,
		FinancialReadiness: w.FinancialReadiness / sum,
		RegulatoryRisk:     w.RegulatoryRisk / sum,
	}
}
