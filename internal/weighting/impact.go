package weighting

import (
	"fmt"
	"math"

	"github.com/sells-group/bioscore-cli/internal/model"
)

// SignificanceThreshold is the absolute per-pillar contribution delta above
// which a change is reported as significant. A 0.1 weight shift on a
// mid-range raw score (2.5) moves the contribution by 0.25 and registers.
const SignificanceThreshold = 0.1

// CalculateWeightImpact compares two weight configurations against the same
// pillar scores. Both sides are normalized independently, so the impact
// reflects the effective weighting even for non-summing inputs. Identical
// configurations yield a zero difference and an empty significance map.
func CalculateWeightImpact(scores model.PillarScores, original, updated model.WeightConfig) model.WeightImpact {
	before := ApplyWeights(scores, original)
	after := ApplyWeights(scores, updated)

	impact := model.WeightImpact{
		TotalScoreDifference: after.Total - before.Total,
		PillarImpacts:        make(map[model.Pillar]float64, 6),
		SignificantChanges:   make(map[model.Pillar]string),
	}

	// Zero baseline: report 0 rather than an undefined ratio. The absolute
	// difference still carries the signal.
	if before.Total != 0 {
		impact.PercentChange = impact.TotalScoreDifference / before.Total * 100
	}

	for _, p := range model.Pillars() {
		delta := after.Contribution(p) - before.Contribution(p)
		impact.PillarImpacts[p] = delta

		if math.Abs(delta) > SignificanceThreshold {
			direction := "increased"
			if delta < 0 {
				direction = "decreased"
			}
			impact.SignificantChanges[p] = fmt.Sprintf("%s by %.3f", direction, math.Abs(delta))
		}
	}

	return impact
}
