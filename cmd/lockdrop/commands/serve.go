package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"lockdrop/internal/app"
	"lockdrop/internal/crypto"
	"lockdrop/internal/logging"
)

func serveCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the ingestion daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen != "" {
				cfg.Listen = listen
			}

			wire, err := app.NewWire(cfg)
			if err != nil {
				return err
			}

			log := logging.NewLogger("serve")
			log.Infof("public key fingerprint %s", crypto.Fingerprint(wire.PublicKey))
			log.Infof("data root %s", cfg.DataDir)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return wire.Server.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config)")
	return cmd
}
