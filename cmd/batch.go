package main

import (
	"context"
	"fmt"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/bioscore-cli/internal/loader"
	"github.com/sells-group/bioscore-cli/internal/memo"
	"github.com/sells-group/bioscore-cli/internal/model"
	"github.com/sells-group/bioscore-cli/internal/store"
	"github.com/sells-group/bioscore-cli/internal/weighting"
	"github.com/sells-group/bioscore-cli/pkg/anthropic"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score a workbook of company scorecards",
	Long: `Reads an XLSX workbook (one company per row: name, ticker, six raw
pillar scores in order) and scores every row with the same weight
configuration. Individual row failures are logged, not fatal.`,
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.String("input", "", "scorecard workbook (XLSX, required)")
	f.String("sheet", "", "sheet name (default: first sheet)")
	f.Int("skip-rows", 1, "header rows to skip")
	f.String("profile", "", "named weight profile to apply")
	f.String("weights", "", "weight configuration JSON file")
	f.Bool("save", false, "persist evaluation records")
	f.Bool("memo", false, "generate memo paragraphs via Claude (rate limited)")
	f.Int("concurrency", 0, "max concurrent companies (default from config)")
	_ = batchCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	inputPath, _ := cmd.Flags().GetString("input")
	sheetName, _ := cmd.Flags().GetString("sheet")
	skipRows, _ := cmd.Flags().GetInt("skip-rows")
	save, _ := cmd.Flags().GetBool("save")
	withMemo, _ := cmd.Flags().GetBool("memo")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	if concurrency <= 0 {
		concurrency = cfg.Batch.MaxConcurrent
	}

	cards, err := loader.ReadScorecardsXLSX(inputPath, loader.XLSXOptions{
		SheetName: sheetName,
		SkipRows:  skipRows,
	})
	if err != nil {
		return err
	}
	if len(cards) == 0 {
		zap.L().Info("batch: no scorecard rows found")
		return nil
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

	var evals store.Store
	if save {
		evals, err = openEvalStore(ctx)
		if err != nil {
			return err
		}
		defer evals.Close()
	}

	var gen *memo.Generator
	if withMemo {
		if cfg.Anthropic.Key == "" {
			return eris.New("batch: --memo requires anthropic.key to be configured")
		}
		gen = memo.NewGenerator(anthropic.NewClient(cfg.Anthropic.Key), cfg.Anthropic.Model, cfg.Anthropic.MemoRPS)
	}

	zap.L().Info("batch: scoring workbook",
		zap.Int("companies", len(cards)),
		zap.Int("concurrency", concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var succeeded, failed atomic.Int64

	for _, card := range cards {
		g.Go(func() error {
			if err := scoreOne(gctx, card, weights, evals, gen); err != nil {
				failed.Add(1)
				zap.L().Error("batch: company failed",
					zap.String("company", card.Company.Name),
					zap.Error(err),
				)
				return nil // don't abort batch on individual failure
			}
			succeeded.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return eris.Wrap(err, "batch: scoring")
	}

	zap.L().Info("batch: complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	fmt.Printf("Scored %d companies (%d failed)\n", succeeded.Load(), failed.Load())
	return nil
}

func scoreOne(ctx context.Context, card model.Scorecard, weights model.WeightConfig, evals store.Store, gen *memo.Generator) error {
	ws, result := weighting.ApplyWeightsWithRecalculation(card.Scores, weights)

	log := zap.L().With(zap.String("company", card.Company.Name))
	log.Info("batch: scored", zap.Float64("total", ws.Total))

	var memoText string
	if gen != nil {
		text, err := gen.Generate(ctx, card.Company, card.Scores, ws, result)
		if err != nil {
			return err
		}
		memoText = text
		fmt.Printf("%s (%.2f): %s\n\n", card.Company.Name, ws.Total, memoText)
	} else {
		fmt.Printf("%-30s %.2f\n", card.Company.Name, ws.Total)
	}

	if evals != nil {
		return evals.SaveEvaluation(ctx, &store.Evaluation{
			Company:    card.Company,
			Scores:     card.Scores,
			Weights:    weights,
			Result:     ws,
			Validation: result,
			ConfigHash: weighting.ConfigHash(weights),
		})
	}
	return nil
}
