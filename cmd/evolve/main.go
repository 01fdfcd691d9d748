// Command evolve runs the Meta-League evolution engine from a YAML
// configuration file and prints per-generation snapshots plus the
// proof certificate of the best individual in the final Pareto front.
package main

import (
	"context"
	"fmt"
	"os"

	luxlog "github.com/luxfi/log"
	"github.com/metaleague/evolution/internal/certificate"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evolve",
		Short: "Run the Meta-League evolution engine",
		Long: `evolve drives the multi-objective evolutionary kernel over a
population of agents for a configured number of generations, then
prints one snapshot per generation and a proof certificate for the
best individual found.`,
	}
	cmd.AddCommand(runCmd(), certCmd())
	return cmd
}

func runCmd() *cobra.Command {
	var configPath string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a configured evolution and print generation snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			var logger luxlog.Logger
			if verbose {
				logger = luxlog.NewLogger("evolve")
			}

			result, err := runEvolution(context.Background(), cfg, logger)
			if err != nil {
				return fmt.Errorf("evolve: %w", err)
			}

			printSnapshots(cmd, result)
			printBestCertificate(cmd, result)
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML run configuration (defaults to the built-in default configuration)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log each generation to stderr")
	return cmd
}

func certCmd() *cobra.Command {
	var configPath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "cert",
		Short: "Run an evolution and print only the winning certificate",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			result, err := runEvolution(context.Background(), cfg, nil)
			if err != nil {
				return fmt.Errorf("evolve: %w", err)
			}
			best := bestOfFront(result.FinalParetoFront)
			if best == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "no individual survived the run")
				return nil
			}
			if asJSON {
				raw, err := certificate.RenderJSON(best)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(raw))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), certificate.Render(best))
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML run configuration (defaults to the built-in default configuration)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the certificate as JSON")
	return cmd
}
