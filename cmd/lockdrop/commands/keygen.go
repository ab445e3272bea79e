package commands

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lockdrop/internal/app"
	"lockdrop/internal/crypto"
)

func keygenCmd() *cobra.Command {
	var (
		bits       int
		passphrase string
	)

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate an RSA key pair for the vault",
		Long: "Generates the server's public key and the operator's private key.\n" +
			"With --passphrase the private key is sealed at rest; without it the\n" +
			"PEM is written in the clear with 0600 permissions.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(cfg.KeyDir, 0o700); err != nil {
				return err
			}

			priv, err := rsa.GenerateKey(rand.Reader, bits)
			if err != nil {
				return fmt.Errorf("generate key pair: %w", err)
			}

			pubPEM, err := crypto.EncodePublicKey(&priv.PublicKey)
			if err != nil {
				return err
			}
			pubPath := filepath.Join(cfg.KeyDir, app.PublicKeyFile)
			if err := os.WriteFile(pubPath, pubPEM, 0o600); err != nil {
				return err
			}

			privPEM := crypto.EncodePrivateKey(priv)
			privPath := filepath.Join(cfg.KeyDir, app.PrivateKeyFile)
			if passphrase != "" {
				sealed, err := crypto.SealPrivateKey(passphrase, privPEM)
				if err != nil {
					return err
				}
				privPath = filepath.Join(cfg.KeyDir, app.SealedKeyFile)
				if err := os.WriteFile(privPath, sealed, 0o600); err != nil {
					return err
				}
			} else if err := os.WriteFile(privPath, privPEM, 0o600); err != nil {
				return err
			}

			fmt.Printf("Key pair written.\nPublic:  %s\nPrivate: %s\nFingerprint: %s\n",
				pubPath, privPath, crypto.Fingerprint(&priv.PublicKey))
			return nil
		},
	}

	cmd.Flags().IntVar(&bits, "bits", 2048, "RSA key size in bits")
	cmd.Flags().StringVarP(&passphrase, "passphrase", "p", "", "seal the private key at rest")
	return cmd
}
