package weighting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/bioscore-cli/internal/model"
)

func TestNormalizeWeights_PreservesProportions(t *testing.T) {
	w := model.WeightConfig{
		AssetQuality:       2,
		MarketOutlook:      2,
		CapitalIntensity:   1,
		StrategicFit:       1,
		FinancialReadiness: 1,
		RegulatoryRisk:     1,
	}

	n := NormalizeWeights(w)

	assert.InDelta(t, 1.0, n.Sum(), 1e-3)
	assert.InDelta(t, 0.25, n.AssetQuality, 1e-3)
	assert.InDelta(t, 0.25, n.MarketOutlook, 1e-3)
	assert.InDelta(t, 0.125, n.CapitalIntensity, 1e-3)
}

func TestNormalizeWeights_AlreadyNormalized(t *testing.T) {
	w := model.DefaultWeightConfig()

	n := NormalizeWeights(w)

	for _, p := range model.Pillars() {
		assert.InDelta(t, w.Weight(p), n.Weight(p), 1e-9)
	}
}

func TestNormalizeWeights_AllZeroFallsBackToEqual(t *testing.T) {
	n := NormalizeWeights(model.WeightConfig{})

	for _, p := range model.Pillars() {
		assert.InDelta(t, 1.0/6.0, n.Weight(p), 1e-3)
	}
	assert.InDelta(t, 1.0, n.Sum(), 1e-3)
}

func TestNormalizeWeights_SumsToOne(t *testing.T) {
	tests := []struct {
		name string
		w    model.WeightConfig
	}{
		{"tiny weights", model.WeightConfig{AssetQuality: 0.001, MarketOutlook: 0.002, CapitalIntensity: 0.003, StrategicFit: 0.001, FinancialReadiness: 0.001, RegulatoryRisk: 0.002}},
		{"large weights", model.WeightConfig{AssetQuality: 30, MarketOutlook: 20, CapitalIntensity: 10, StrategicFit: 15, FinancialReadiness: 15, RegulatoryRisk: 10}},
		{"single pillar", model.WeightConfig{StrategicFit: 0.4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NormalizeWeights(tt.w)
			assert.InDelta(t, 1.0, n.Sum(), 1e-3)
		})
	}
}

func TestNormalizeWeights_DoesNotMutateInput(t *testing.T) {
	w := model.WeightConfig{AssetQuality: 2, MarketOutlook: 2}
	_ = NormalizeWeights(w)

	assert.Equal(t, 2.0, w.AssetQuality)
	assert.Equal(t, 2.0, w.MarketOutlook)
}
