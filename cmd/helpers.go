package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/bioscore-cli/internal/loader"
	"github.com/sells-group/bioscore-cli/internal/model"
	"github.com/sells-group/bioscore-cli/internal/profile"
	"github.com/sells-group/bioscore-cli/internal/store"
)

// openProfileStore builds the profile backend selected by config.
func openProfileStore(ctx context.Context) (profile.Store, error) {
	switch cfg.Profiles.Driver {
	case "memory":
		return profile.NewMemory(), nil

	case "sqlite":
		s, err := profile.NewSQLite(cfg.Profiles.Path)
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil

	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.Profiles.DatabaseURL)
		if err != nil {
			return nil, eris.Wrap(err, "connect postgres")
		}
		s := profile.NewPostgres(pool)
		if err := s.Migrate(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return s, nil
	}

	return nil, eris.Errorf("unknown profiles driver %q (want memory, sqlite, or postgres)", cfg.Profiles.Driver)
}

// openEvalStore opens the evaluation-record store.
func openEvalStore(ctx context.Context) (store.Store, error) {
	s, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// resolveWeights picks the weight configuration for a command: a named
// profile wins over a weights file, and the default config is the fallback.
func resolveWeights(ctx context.Context, cmd *cobra.Command, profiles profile.Store) (model.WeightConfig, error) {
	profileName, _ := cmd.Flags().GetString("profile")
	weightsPath, _ := cmd.Flags().GetString("weights")

	if profileName != "" {
		w, err := profiles.Load(ctx, profileName)
		if err != nil {
			return model.WeightConfig{}, err
		}
		if w == nil {
			return model.WeightConfig{}, eris.Errorf("profile %q not found", profileName)
		}
		return *w, nil
	}

	if weightsPath != "" {
		return loader.LoadWeights(weightsPath)
	}

	return model.DefaultWeightConfig(), nil
}

func printWeighted(company model.Company, ws model.WeightedScores, result model.ValidationResult) {
	header := company.Name
	if company.Ticker != "" {
		header += " (" + company.Ticker + ")"
	}
	fmt.Printf("Company: %s\n", header)
	fmt.Printf("Score:   %.2f / 5\n\nContributions:\n", ws.Total)
	for _, p := range model.Pillars() {
		fmt.Printf("  %-20s %.3f\n", p, ws.Contribution(p))
	}
	printValidation(result)
}

func printValidation(result model.ValidationResult) {
	if len(result.Errors) > 0 {
		fmt.Println("\nErrors:")
		for _, issue := range result.Errors {
			fmt.Printf("  %s\n", issue)
		}
	}
	if len(result.Warnings) > 0 {
		fmt.Println("\nWarnings:")
		for _, issue := range result.Warnings {
			fmt.Printf("  %s\n", issue)
		}
	}
}
