package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/bioscore-cli/internal/loader"
	"github.com/sells-group/bioscore-cli/internal/memo"
	"github.com/sells-group/bioscore-cli/internal/store"
	"github.com/sells-group/bioscore-cli/internal/weighting"
	"github.com/sells-group/bioscore-cli/pkg/anthropic"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a company scorecard with a weight configuration",
	Long: `Applies a weight configuration to a company's pre-computed pillar
scores and prints the weighted breakdown. Validation issues are reported but
never block scoring; an invalid config is normalized and applied anyway.

Examples:
  # Score with the default balanced weights
  bioscore score --input acme.json

  # Score with a saved profile
  bioscore score --input acme.json --profile Aggressive

  # Score with ad hoc weights, persist the evaluation, add a Claude memo
  bioscore score --input acme.json --weights weights.json --save --memo`,
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.String("input", "", "scorecard JSON file (required)")
	f.String("profile", "", "named weight profile to apply")
	f.String("weights", "", "weight configuration JSON file")
	f.Bool("save", false, "persist the evaluation record")
	f.Bool("memo", false, "generate an investment memo paragraph via Claude")
	_ = scoreCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	inputPath, _ := cmd.Flags().GetString("input")
	save, _ := cmd.Flags().GetBool("save")
	withMemo, _ := cmd.Flags().GetBool("memo")

	card, err := loader.LoadScorecard(inputPath)
	if err != nil {
		return err
	}

	profiles, err := openProfileStore(ctx)
	if err != nil {
		return err
	}
	defer profiles.Close()

	weights, err := resolveWeights(ctx, cmd, profiles)
	if err != nil {
		return err
	}

	ws, result := weighting.ApplyWeightsWithRecalculation(card.Scores, weights)
	printWeighted(card.Company, ws, result)

	if withMemo {
		if cfg.Anthropic.Key == "" {
			return eris.New("score: --memo requires anthropic.key to be configured")
		}
		gen := memo.NewGenerator(anthropic.NewClient(cfg.Anthropic.Key), cfg.Anthropic.Model, 0)
		text, err := gen.Generate(ctx, card.Company, card.Scores, ws, result)
		if err != nil {
			return err
		}
		fmt.Printf("\nMemo:\n%s\n", text)
	}

	if save {
		evals, err := openEvalStore(ctx)
		if err != nil {
			return err
		}
		defer evals.Close()

		eval := &store.Evaluation{
			Company:    card.Company,
			Scores:     card.Scores,
			Weights:    weights,
			Result:     ws,
			Validation: result,
			ConfigHash: weighting.ConfigHash(weights),
		}
		if err := evals.SaveEvaluation(ctx, eval); err != nil {
			return err
		}
		zap.L().Info("score: evaluation saved",
			zap.String("id", eval.ID),
			zap.String("company", card.Company.Name),
			zap.Float64("total", ws.Total),
		)
		fmt.Printf("\nSaved evaluation %s\n", eval.ID)
	}

	return nil
}
