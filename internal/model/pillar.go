// Package model defines the domain types for biotech company scoring:
// pillars, per-pillar scores, weight configurations, and derived results.
package model

// Pillar identifies one of the six fixed evaluation dimensions.
type Pillar string

const (
	PillarAssetQuality       Pillar = "assetQuality"
	PillarMarketOutlook      Pillar = "marketOutlook"
	PillarCapitalIntensity   Pillar = "capitalIntensity"
	PillarStrategicFit       Pillar = "strategicFit"
	PillarFinancialReadiness Pillar = "financialReadiness"
	PillarRegulatoryRisk     Pillar = "regulatoryRisk"
)

// Pillars returns the six pillars in declared order.
func Pillars() []Pillar {
	return []Pillar{
		PillarAssetQuality,
		PillarMarketOutlook,
		PillarCapitalIntensity,
		PillarStrategicFit,
		PillarFinancialReadiness,
		PillarRegulatoryRisk,
	}
}

// ScoringFactor is a single contributing factor reported by the pillar
// scoring subsystem, carried through for explainability.
type ScoringFactor struct {
	Name         string  `json:"name"`
	Value        float64 `json:"value"`
	Contribution float64 `json:"contribution"`
	Description  string  `json:"description,omitempty"`
}

// PillarScore is the pre-computed score for a single pillar. Raw scores are
// on a 0-5 scale; confidence is 0-1. Immutable once produced upstream.
type PillarScore struct {
	RawScore   float64         `json:"raw_score"`
	Confidence float64         `json:"confidence"`
	Factors    []ScoringFactor `json:"factors,omitempty"`
	Warnings   []string        `json:"warnings,omitempty"`
}

// PillarScores holds exactly one PillarScore per pillar.
type PillarScores struct {
	AssetQuality       PillarScore `json:"asset_quality"`
	MarketOutlook      PillarScore `json:"market_outlook"`
	CapitalIntensity   PillarScore `json:"capital_intensity"`
	StrategicFit       PillarScore `json:"strategic_fit"`
	FinancialReadiness PillarScore `json:"financial_readiness"`
	RegulatoryRisk     PillarScore `json:"regulatory_risk"`
}

// Score returns the PillarScore for p. Unknown pillars return a zero value.
func (s PillarScores) Score(p Pillar) PillarScore {
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
	return PillarScore{}
}

// AllWarnings collects all per-pillar warnings, prefixed with the pillar name.
func (s PillarScores) AllWarnings() []string {
	var out []string
	for _, p := range Pillars() {
		for _, w := range s.Score(p).Warnings {
			out = append(out, string(p)+": "+w)
		}
	}
	return out
}
