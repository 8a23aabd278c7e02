package weighting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/bioscore-cli/internal/model"
)

func TestValidateWeights_Default(t *testing.T) {
	result := ValidateWeights(model.DefaultWeightConfig())

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidateWeights_NegativeWeight(t *testing.T) {
	w := model.DefaultWeightConfig().WithWeight(model.PillarMarketOutlook, -0.2)

	result := ValidateWeights(w)

	assert.False(t, result.IsValid)
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, string(model.PillarMarketOutlook), result.Errors[0].Field)
	assert.Contains(t, result.Errors[0].Message, "negative weight")
	assert.Equal(t, model.SeverityCritical, result.Errors[0].Severity)
}

func TestValidateWeights_WeightAboveOne(t *testing.T) {
	w := model.DefaultWeightConfig().WithWeight(model.PillarAssetQuality, 1.5)

	result := ValidateWeights(w)

	assert.False(t, result.IsValid)
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, string(model.PillarAssetQuality), result.Errors[0].Field)
	assert.Contains(t, result.Errors[0].Message, "exceeds maximum of 1")
}

func TestValidateWeights_ZeroWeightWarns(t *testing.T) {
	w := model.DefaultWeightConfig()
	w.CapitalIntensity = 0
	w.AssetQuality += 0.10 // keep the sum at 1 so only the zero warning fires

	result := ValidateWeights(w)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, string(model.PillarCapitalIntensity), result.Warnings[0].Field)
	assert.Contains(t, result.Warnings[0].Message, "ignored")
	assert.Equal(t, model.SeverityWarning, result.Warnings[0].Severity)
}

func TestValidateWeights_SumDeviationWarnsOnly(t *testing.T) {
	w := model.WeightConfig{
		AssetQuality:       0.5,
		MarketOutlook:      0.5,
		CapitalIntensity:   0.5,
		StrategicFit:       0.5,
		FinancialReadiness: 0.5,
		RegulatoryRisk:     0.5,
	}

	result := ValidateWeights(w)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, model.FieldTotal, result.Warnings[0].Field)
	assert.Contains(t, result.Warnings[0].Message, "sum")
}

func TestValidateWeights_SumWithinTolerance(t *testing.T) {
	w := model.DefaultWeightConfig()
	w.RegulatoryRisk += 0.005 // within the 0.01 tolerance

	result := ValidateWeights(w)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Warnings)
}

func TestValidateWeights_AllZero(t *testing.T) {
	result := ValidateWeights(model.WeightConfig{})

	assert.False(t, result.IsValid)

	// Six individual zero-weight warnings plus the sum deviation warning.
	assert.Len(t, result.Warnings, 7)

	// One critical issue on the total field, distinct from the warnings.
	require.Len(t, result.Errors, 1)
	assert.Equal(t, model.FieldTotal, result.Errors[0].Field)
	assert.Equal(t, model.SeverityCritical, result.Errors[0].Severity)
}

func TestValidateWeights_MultipleIssues(t *testing.T) {
	w := model.WeightConfig{
		AssetQuality:       -0.1,
		MarketOutlook:      1.2,
		CapitalIntensity:   0,
		StrategicFit:       0.2,
		FinancialReadiness: 0.2,
		RegulatoryRisk:     0.2,
	}

	result := ValidateWeights(w)

	assert.False(t, result.IsValid)
	assert.Len(t, result.Errors, 2)
	assert.NotEmpty(t, result.Summary())
}
