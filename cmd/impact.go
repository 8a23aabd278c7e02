package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/bioscore-cli/internal/loader"
	"github.com/sells-group/bioscore-cli/internal/model"
	"github.com/sells-group/bioscore-cli/internal/profile"
	"github.com/sells-group/bioscore-cli/internal/weighting"
)

var impactCmd = &cobra.Command{
	Use:   "impact",
	Short: "Compare two weight configurations against the same scorecard",
	Long: `Computes the per-pillar and aggregate score change caused by
switching weight configurations while holding pillar scores fixed. Each side
is a profile name or a weights JSON file.

Examples:
  bioscore impact --input acme.json --from Balanced --to Aggressive
  bioscore impact --input acme.json --from Balanced --to candidate.json`,
	RunE: runImpact,
}

func init() {
	f := impactCmd.Flags()
	f.String("input", "", "scorecard JSON file (required)")
	f.String("from", "", "original weights: profile name or JSON file (required)")
	f.String("to", "", "new weights: profile name or JSON file (required)")
	_ = impactCmd.MarkFlagRequired("input")
	_ = impactCmd.MarkFlagRequired("from")
	_ = impactCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(impactCmd)
}

func runImpact(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	inputPath, _ := cmd.Flags().GetString("input")
	fromRef, _ := cmd.Flags().GetString("from")
	toRef, _ := cmd.Flags().GetString("to")

	card, err := loader.LoadScorecard(inputPath)
	if err != nil {
		return err
	}

	profiles, err := openProfileStore(ctx)
	if err != nil {
		return err
	}
	defer profiles.Close()

	original, err := weightsFromRef(ctx, profiles, fromRef)
	if err != nil {
		return eris.Wrap(err, "impact: --from")
	}
	updated, err := weightsFromRef(ctx, profiles, toRef)
	if err != nil {
		return eris.Wrap(err, "impact: --to")
	}

	impact := weighting.CalculateWeightImpact(card.Scores, original, updated)
	printImpact(card.Company, impact)
	return nil
}

// weightsFromRef resolves a profile name or a weights file path.
func weightsFromRef(ctx context.Context, profiles profile.Store, ref string) (model.WeightConfig, error) {
	w, err := profiles.Load(ctx, ref)
	if err != nil {
		return model.WeightConfig{}, err
	}
	if w != nil {
		return *w, nil
	}
	return loader.LoadWeights(ref)
}

func printImpact(company model.Company, impact model.WeightImpact) {
	fmt.Printf("Company: %s\n", company.Name)
	fmt.Printf("Total change: %+.3f (%+.1f%%)\n\nPer pillar:\n", impact.TotalScoreDifference, impact.PercentChange)
	for _, p := range model.Pillars() {
		line := fmt.Sprintf("  %-20s %+.3f", p, impact.PillarImpacts[p])
		if desc, ok := impact.SignificantChanges[p]; ok {
			line += "  <- " + desc
		}
		fmt.Println(line)
	}
	if len(impact.SignificantChanges) == 0 {
		fmt.Println("\nNo significant changes.")
	}
}
