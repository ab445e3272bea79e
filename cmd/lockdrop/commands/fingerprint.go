package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"lockdrop/internal/app"
	"lockdrop/internal/crypto"
)

func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint",
		Short: "Print the configured public key's fingerprint",
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := app.LoadPublicKey(cfg)
			if err != nil {
				return err
			}
			fmt.Println(crypto.Fingerprint(pub))
			return nil
		},
	}
}
