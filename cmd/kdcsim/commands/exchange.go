package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"kdcsim/internal/domain"
)

// exchange <from> <to> <message>: run one key exchange and deliver message.
func exchangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exchange <from> <to> <message>",
		Short: "Establish a session key between two participants and send a message",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to := domain.Identity(args[0]), domain.Identity(args[1])

			if err := appCtx.Exchange(cmd.Context(), from, to); err != nil {
				return fmt.Errorf("exchange %s → %s: %w", from, to, err)
			}
			p, err := appCtx.Participant(from)
			if err != nil {
				return err
			}
			fp, _ := p.SessionFingerprint()
			vu, _ := p.ValidUntil()

			got, err := appCtx.Send(from, to, args[2])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Session %s ↔ %s established. Fingerprint=%s ValidUntil=%s\n",
				from, to, fp, vu.UTC().Format("2006-01-02T15:04:05Z"))
			fmt.Fprintf(out, "[%s] %s\n", from, got)
			return nil
		},
	}
}
