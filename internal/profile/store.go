// Package profile manages named weight-configuration profiles. Four built-in
// profiles are always available; user saves are validated and normalized
// before they are persisted, so stored profiles always sum to 1.
package profile

import (
	"context"
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/bioscore-cli/internal/model"
	"github.com/sells-group/bioscore-cli/internal/weighting"
)

// ErrInvalidWeights is returned by Save when the weight configuration fails
// validation. Check with eris.Is.
var ErrInvalidWeights = eris.New("profile: invalid weight configuration")

// Store is the named-profile persistence contract. Implementations must be
// safe for concurrent use; the surrounding evaluation layer issues
// concurrent requests that may each read a profile.
type Store interface {
	// Save validates and normalizes the weights, then persists them under
	// name, overwriting any existing profile. Invalid weights fail with
	// ErrInvalidWeights and write nothing.
	Save(ctx context.Context, name string, w model.WeightConfig) error
	// Load returns the stored config, or nil when no profile with that name
	// exists. Absence is a normal outcome, not an error.
	Load(ctx context.Context, name string) (*model.WeightConfig, error)
	// List returns built-in plus user-saved profile names, sorted.
	List(ctx context.Context) ([]string, error)
	// Delete removes a user-saved profile, reporting whether it existed.
	// Built-in profiles cannot be deleted, only shadowed.
	Delete(ctx context.Context, name string) (bool, error)
	Close() error
}

// Built-in profile names, present in every store from initialization.
const (
	ProfileConservative = "Conservative"
	ProfileAggressive   = "Aggressive"
	ProfileBalanced     = "Balanced"
	ProfileStrategic    = "Strategic"
)

// BuiltinProfiles returns the four seeded weight profiles. All sum to 1.
func BuiltinProfiles() map[string]model.WeightConfig {
	return map[string]model.WeightConfig{
		ProfileBalanced: model.DefaultWeightConfig(),
		ProfileConservative: {
			AssetQuality:       0.20,
			MarketOutlook:      0.10,
			CapitalIntensity:   0.15,
			StrategicFit:       0.10,
			FinancialReadiness: 0.25,
			RegulatoryRisk:     0.20,
		},
		ProfileAggressive: {
			AssetQuality:       0.30,
			MarketOutlook:      0.30,
			CapitalIntensity:   0.05,
			StrategicFit:       0.15,
			FinancialReadiness: 0.10,
			RegulatoryRisk:     0.10,
		},
		ProfileStrategic: {
			AssetQuality:       0.20,
			MarketOutlook:      0.15,
			CapitalIntensity:   0.10,
			StrategicFit:       0.35,
			FinancialReadiness: 0.10,
			RegulatoryRisk:     0.10,
		},
	}
}

// prepareForSave applies the shared save contract: trim the name, validate
// fail-hard, normalize before persisting.
func prepareForSave(name string, w model.WeightConfig) (string, model.WeightConfig, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", model.WeightConfig{}, eris.Wrap(ErrInvalidWeights, "profile: name is empty")
	}

	result := weighting.ValidateWeights(w)
	if !result.IsValid {
		return "", model.WeightConfig{}, eris.Wrap(ErrInvalidWeights, "profile "+name+": "+result.Summary())
	}

	return name, weighting.NormalizeWeights(w), nil
}

// mergeNames unions built-in names with user-saved ones and sorts the result
// so enumeration order is stable for a given store state.
func mergeNames(saved []string) []string {
	seen := make(map[string]bool, len(saved)+4)
	var names []string
	for builtin := range BuiltinProfiles() {
		seen[builtin] = true
		names = append(names, builtin)
	}
	for _, n := range saved {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}
