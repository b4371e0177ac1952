package commands

import (
	"github.com/spf13/cobra"

	"kdcsim/internal/app"
	"kdcsim/internal/config"
)

var (
	configPath string
	logLevel   string
	appCtx     *app.Wire
)

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "kdcsim",
		Short:        "Key Distribution Center protocol simulator",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Logging.Level = logLevel
				if err := cfg.Logging.Validate(); err != nil {
					return err
				}
			}
			appCtx, err = app.NewWire(cfg)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appCtx != nil {
				appCtx.Close()
			}
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to TOML config (defaults built in)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override Logging.Level (ERROR, WARNING, NOTICE, INFO, DEBUG)")

	root.AddCommand(demoCmd(), exchangeCmd(), fingerprintCmd(), metricsCmd())
	return root
}
