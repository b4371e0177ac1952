package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"kdcsim/internal/crypto"
	"kdcsim/internal/domain"
)

func fingerprintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fingerprint [identity...]",
		Short: "Print long-term key fingerprints (all participants if none given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := appCtx.Registry.Identities()
			if len(args) > 0 {
				ids = ids[:0]
				for _, a := range args {
					ids = append(ids, domain.Identity(a))
				}
			}
			for _, id := range ids {
				key, err := appCtx.Registry.Lookup(id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", id, crypto.Fingerprint(key[:]))
			}
			return nil
		},
	}
	return cmd
}
