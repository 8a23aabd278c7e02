package model

// Company identifies the biotech company being evaluated.
type Company struct {
	Name   string `json:"name"`
	Ticker string `json:"ticker,omitempty"`
}

// Scorecard pairs a company with its pre-computed pillar scores, as produced
// by the upstream pillar-scoring subsystem or supplied by an analyst.
type Scorecard struct {
	Company Company      `json:"company"`
	Scores  PillarScores `json:"scores"`
}
