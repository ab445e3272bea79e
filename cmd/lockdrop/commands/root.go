package commands

import (
	"github.com/spf13/cobra"

	"lockdrop/internal/app"
)

var (
	configPath string
	dataDir    string
	keyDir     string

	cfg app.Config
)

func Execute() error {
	root := &cobra.Command{
		Use:           "lockdrop",
		Short:         "Authenticated message ingestion with encrypt-at-rest",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = app.LoadConfig(configPath)
			if dataDir != "" {
				cfg.DataDir = dataDir
			}
			if keyDir != "" {
				cfg.KeyDir = keyDir
			}
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default configs/config.yaml)")
	root.PersistentFlags().StringVar(&dataDir, "data", "", "data root directory (default from config)")
	root.PersistentFlags().StringVar(&keyDir, "keys", "", "key material directory (default from config)")

	root.AddCommand(serveCmd(), keygenCmd(), decryptCmd(), fingerprintCmd())
	return root.Execute()
}
