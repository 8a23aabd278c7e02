package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sells-group/bioscore-cli/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List saved evaluation records",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		company, _ := cmd.Flags().GetString("company")
		limit, _ := cmd.Flags().GetInt("limit")

		evals, err := openEvalStore(ctx)
		if err != nil {
			return err
		}
		defer evals.Close()

		records, err := evals.ListEvaluations(ctx, store.Filter{Company: company, Limit: limit})
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No evaluations.")
			return nil
		}

		for _, rec := range records {
			fmt.Printf("%s  %-30s %.2f  %s  %s\n",
				rec.CreatedAt.Format("2006-01-02 15:04"),
				rec.Company.Name,
				rec.Result.Total,
				rec.ConfigHash[:8],
				rec.ID,
			)
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().String("company", "", "filter by company name")
	runsCmd.Flags().Int("limit", 50, "max records to list")
	rootCmd.AddCommand(runsCmd)
}
