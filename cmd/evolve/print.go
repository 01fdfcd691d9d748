package main

import (
	"fmt"

	"github.com/metaleague/evolution/internal/certificate"
	"github.com/spf13/cobra"

	"github.com/metaleague/evolution/evolution"
)

func printSnapshots(cmd *cobra.Command, result evolution.Result) {
	out := cmd.OutOrStdout()
	for _, snap := range result.Snapshots {
		fmt.Fprintf(out, "gen %d: population=%d passed=%d failed=%d paretoFront=%d best=%v avg=%v\n",
			snap.Generation, snap.PopulationSize, snap.PassedProofGate, snap.FailedProofGate,
			snap.ParetoFrontSize, snap.BestObjectives, snap.AvgObjectives)
	}
	fmt.Fprintf(out, "elapsed: %dms\n", result.ElapsedMillis)
}

func printBestCertificate(cmd *cobra.Command, result evolution.Result) {
	out := cmd.OutOrStdout()
	best := bestOfFront(result.FinalParetoFront)
	if best == nil {
		fmt.Fprintln(out, "no individual survived the run")
		return
	}
	fmt.Fprintln(out, certificate.Render(best))
}
