package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"kdcsim/internal/domain"
)

const demoMessage = "Hello, B!"

// demoCmd replays the classic walkthrough between the first two configured
// participants.
func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the two-party key distribution walkthrough",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd)
		},
	}
}

func runDemo(cmd *cobra.Command) error {
	ids := appCtx.Config.Demo.Participants
	from, to := domain.Identity(ids[0]), domain.Identity(ids[1])

	if err := appCtx.Exchange(cmd.Context(), from, to); err != nil {
		return fmt.Errorf("exchange %s → %s: %w", from, to, err)
	}
	got, err := appCtx.Send(from, to, demoMessage)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s received: %s\n", to, got)
	return nil
}
