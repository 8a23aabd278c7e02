// Package loader ingests analyst scorecards (JSON and XLSX) and weight
// configuration files.
package loader

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/bioscore-cli/internal/model"
)

// LoadScorecard reads a single-company scorecard from a JSON file. Raw
// scores must be in [0,5] and confidences in [0,1].
func LoadScorecard(path string) (*model.Scorecard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "loader: read scorecard")
	}

	var card model.Scorecard
	if err := json.Unmarshal(data, &card); err != nil {
		return nil, eris.Wrap(err, "loader: parse scorecard")
	}

	if card.Company.Name == "" {
		return nil, eris.New("loader: scorecard missing company name")
	}
	if err := checkScores(card.Scores); err != nil {
		return nil, err
	}
	return &card, nil
}

// LoadWeights reads a weight configuration from a JSON file keyed by pillar
// name. All six pillar keys must be present.
func LoadWeights(path string) (model.WeightConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.WeightConfig{}, eris.Wrap(err, "loader: read weights")
	}

	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.WeightConfig{}, eris.Wrap(err, "loader: parse weights")
	}

	w, err := model.WeightConfigFromMap(raw)
	if err != nil {
		return model.WeightConfig{}, eris.Wrap(err, "loader: weights file")
	}
	return w, nil
}

func checkScores(scores model.PillarScores) error {
	for _, p := range model.Pillars() {
		s := scores.Score(p)
		if s.RawScore < 0 || s.RawScore > 5 {
			return eris.Errorf("loader: pillar %s raw score %.2f outside [0,5]", p, s.RawScore)
		}
		if s.Confidence < 0 || s.Confidence > 1 {
			return eris.Errorf("loader: pillar %s confidence %.2f outside [0,1]", p, s.Confidence)
		}
	}
	return nil
}
