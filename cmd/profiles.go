package main

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/bioscore-cli/internal/loader"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Manage named weight profiles",
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available profiles (built-in and saved)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		profiles, err := openProfileStore(ctx)
		if err != nil {
			return err
		}
		defer profiles.Close()

		names, err := profiles.List(ctx)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var profilesShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a profile's weights",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		format, _ := cmd.Flags().GetString("format")

		profiles, err := openProfileStore(ctx)
		if err != nil {
			return err
		}
		defer profiles.Close()

		w, err := profiles.Load(ctx, args[0])
		if err != nil {
			return err
		}
		if w == nil {
			return eris.Errorf("profile %q not found", args[0])
		}

		switch format {
		case "yaml":
			out, err := yaml.Marshal(w)
			if err != nil {
				return eris.Wrap(err, "profiles: marshal yaml")
			}
			fmt.Print(string(out))
		case "json":
			out, err := json.MarshalIndent(w, "", "  ")
			if err != nil {
				return eris.Wrap(err, "profiles: marshal json")
			}
			fmt.Println(string(out))
		default:
			return eris.Errorf("profiles: --format must be yaml or json (got %q)", format)
		}
		return nil
	},
}

var profilesSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a weight configuration as a named profile",
	Long: `Validates the weights and saves them under the given name,
overwriting any existing profile. The stored weights are normalized to sum
to 1. Invalid weights (negative, above 1, or all zero) are rejected.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		weightsPath, _ := cmd.Flags().GetString("file")

		w, err := loader.LoadWeights(weightsPath)
		if err != nil {
			return err
		}

		profiles, err := openProfileStore(ctx)
		if err != nil {
			return err
		}
		defer profiles.Close()

		if err := profiles.Save(ctx, args[0], w); err != nil {
			return err
		}
		fmt.Printf("Saved profile %q\n", args[0])
		return nil
	},
}

var profilesDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		profiles, err := openProfileStore(ctx)
		if err != nil {
			return err
		}
		defer profiles.Close()

		removed, err := profiles.Delete(ctx, args[0])
		if err != nil {
			return err
		}
		if removed {
			fmt.Printf("Deleted profile %q\n", args[0])
		} else {
			fmt.Printf("No saved profile %q\n", args[0])
		}
		return nil
	},
}

func init() {
	profilesShowCmd.Flags().String("format", "yaml", "output format: yaml or json")
	profilesSaveCmd.Flags().String("file", "", "weight configuration JSON file (required)")
	_ = profilesSaveCmd.MarkFlagRequired("file")

	profilesCmd.AddCommand(profilesListCmd, profilesShowCmd, profilesSaveCmd, profilesDeleteCmd)
	rootCmd.AddCommand(profilesCmd)
}
