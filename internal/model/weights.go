package model

import (
	"github.com/rotisserie/eris"
)

// WeightConfig assigns a share of total importance to each pillar. Weights
// are nominally in [0,1] and should sum to 1, but construction never fails;
// out-of-range configs are caught by weighting.ValidateWeights before use.
type WeightConfig struct {
	AssetQuality       float64 `json:"assetQuality" yaml:"assetQuality" mapstructure:"assetQuality"`
	MarketOutlook      float64 `json:"marketOutlook" yaml:"marketOutlook" mapstructure:"marketOutlook"`
	CapitalIntensity   float64 `json:"capitalIntensity" yaml:"capitalIntensity" mapstructure:"capitalIntensity"`
	StrategicFit       float64 `json:"strategicFit" yaml:"strategicFit" mapstructure:"strategicFit"`
	FinancialReadiness float64 `json:"financialReadiness" yaml:"financialReadiness" mapstructure:"financialReadiness"`
	RegulatoryRisk     float64 `json:"regulatoryRisk" yaml:"regulatoryRisk" mapstructure:"regulatoryRisk"`
}

// DefaultWeightConfig returns the canonical balanced configuration.
// Weights sum to 1.
func DefaultWeightConfig() WeightConfig {
	return WeightConfig{
		AssetQuality:       0.25,
		MarketOutlook:      0.20,
		CapitalIntensity:   0.10,
		StrategicFit:       0.15,
		FinancialReadiness: 0.15,
		RegulatoryRisk:     0.15,
	}
}

// Weight returns the weight for p. Unknown pillars return 0.
func (w WeightConfig) Weight(p Pillar) float64 {
	switch p {
	case PillarAssetQuality:
		return w.AssetQuality
	case PillarMarketOutlook:
		return w.MarketOutlook
	case PillarCapitalIntensity:
		return w.CapitalIntensity
	case PillarStrategicFit:
		return w.StrategicFit
	case PillarFinancialReadiness:
		return w.FinancialReadiness
	case PillarRegulatoryRisk:
		return w.RegulatoryRisk
	}
	return 0
}

// WithWeight returns a copy of w with the weight for p replaced.
func (w WeightConfig) WithWeight(p Pillar, v float64) WeightConfig {
	switch p {
	case PillarAssetQuality:
		w.AssetQuality = v
	case PillarMarketOutlook:
		w.MarketOutlook = v
	case PillarCapitalIntensity:
		w.CapitalIntensity = v
	case PillarStrategicFit:
		w.StrategicFit = v
	case PillarFinancialReadiness:
		w.FinancialReadiness = v
	case PillarRegulatoryRisk:
		w.RegulatoryRisk = v
	}
	return w
}

// Sum returns the sum of all six weights.
func (w WeightConfig) Sum() float64 {
	return w.AssetQuality + w.MarketOutlook + w.CapitalIntensity +
		w.StrategicFit + w.FinancialReadiness + w.RegulatoryRisk
}

// ToMap returns the six weights keyed by pillar name.
func (w WeightConfig) ToMap() map[string]float64 {
	m := make(map[string]float64, 6)
	for _, p := range Pillars() {
		m[string(p)] = w.Weight(p)
	}
	return m
}

// WeightConfigFromMap builds a WeightConfig from a pillar-name keyed map.
// All six pillar keys must be present.
func WeightConfigFromMap(m map[string]float64) (WeightConfig, error) {
	var w WeightConfig
	for _, p := range Pillars() {
		v, ok := m[string(p)]
		if !ok {
			return WeightConfig{}, eris.Errorf("model: weight config missing pillar %q", p)
		}
		w = w.WithWeight(p, v)
	}
	return w, nil
}

// WeightedScores holds the per-pillar weighted contributions
// (raw score x normalized weight) and their total.
type WeightedScores struct {
	AssetQuality       float64 `json:"asset_quality"`
	MarketOutlook      float64 `json:"market_outlook"`
	CapitalIntensity   float64 `json:"capital_intensity"`
	StrategicFit       float64 `json:"strategic_fit"`
	FinancialReadiness float64 `json:"financial_readiness"`
	RegulatoryRisk     float64 `json:"regulatory_risk"`
	Total              float64 `json:"total"`
}

// Contribution returns the weighted contribution for p.
func (s WeightedScores) Contribution(p Pillar) float64 {
	switch p {
	case PillarAssetQuality:
		return s.AssetQuality
	case PillarMarketOutlook:
		return s.MarketOutlook
	case PillarCapitalIntensity:
		return s.CapitalIntensity
	case PillarStrategicFit:
		return s.StrategicFit
	case PillarFinancialReadiness:
		return s.FinancialReadiness
	case PillarRegulatoryRisk:
		return s.RegulatoryRisk
	}
	return 0
}
