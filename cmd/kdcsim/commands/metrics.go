package commands

import (
	"github.com/spf13/cobra"

	"kdcsim/internal/metrics"
)

func metricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Run the walkthrough and print KDC counters in Prometheus text format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runDemo(cmd); err != nil {
				return err
			}
			return metrics.WriteText(cmd.OutOrStdout(), appCtx.Gatherer)
		},
	}
}
