package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lockdrop/internal/app"
	"lockdrop/internal/crypto"
	"lockdrop/internal/domain"
)

func decryptCmd() *cobra.Command {
	var (
		keyPath    string
		passphrase string
		outPath    string
	)

	cmd := &cobra.Command{
		Use:   "decrypt [token-file]",
		Short: "Decrypt an encrypted category file offline",
		Long: "Reads an encrypted token (from a file fetched via the panel, or from\n" +
			"stdin), decrypts it with the operator's private key and writes the\n" +
			"plaintext. This is the only path that ever uses private key material.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw []byte
			var err error
			if len(args) == 1 {
				raw, err = os.ReadFile(args[0])
			} else {
				raw, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return err
			}

			token, err := domain.ParseToken(strings.TrimSpace(string(raw)))
			if err != nil {
				return err
			}

			priv, err := app.LoadPrivateKey(cfg, keyPath, passphrase)
			if err != nil {
				return err
			}

			plaintext, err := crypto.Decrypt(token, priv)
			if err != nil {
				return err
			}

			if outPath != "" {
				return os.WriteFile(outPath, plaintext, 0o600)
			}
			fmt.Println(string(plaintext))
			return nil
		},
	}

	cmd.Flags().StringVar(&keyPath, "key", "", "private key file (default from key dir)")
	cmd.Flags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase for a sealed private key")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write plaintext to file instead of stdout")
	return cmd
}
