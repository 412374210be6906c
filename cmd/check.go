package cmd

import (
	"context"
	"crypto/rsa"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tucanbot/flowgate/internal/envelope/keysource"
	"github.com/tucanbot/flowgate/pkg/flows"
)

var cfgFile string

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that the configured private key loads",
	Long: `Check resolves the private key named in the config file through the key
provider, exactly the way the webhook does at startup. Deployments run it
before rollout so a missing or corrupt key fails the pipeline instead of the
first live flow exchange.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, cfg, err := loadPrivateKey(cmd.Context())
		if err != nil {
			return err
		}

		color.Green("OK: %d-bit RSA key loaded from %s", key.N.BitLen(), cfg.PrivateKeyPath)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.PersistentFlags().StringVarP(
		&cfgFile,
		"config-file",
		"c",
		"flowgate.yaml",
		"Config file location.",
	)
}

// loadPrivateKey reads the config file and resolves the endpoint's private
// key through the provider, mirroring what the webhook does at startup.
func loadPrivateKey(ctx context.Context) (*rsa.PrivateKey, flows.Config, error) {
	data, err := os.ReadFile(cfgFile)
	if err != nil {
		return nil, flows.Config{}, errors.Wrap(err, "failed to read config file")
	}

	cfg, err := flows.ParseConfig(data)
	if err != nil {
		return nil, cfg, errors.Wrap(err, "failed to parse config file")
	}

	passphrase, err := cfg.Passphrase()
	if err != nil {
		return nil, cfg, err
	}

	provider := keysource.NewProvider()
	key, err := provider.Load(ctx, cfg.PrivateKeyPath, keysource.FileSource{
		Path:       cfg.PrivateKeyPath,
		Passphrase: passphrase,
	})
	if err != nil {
		return nil, cfg, err
	}

	return key, cfg, nil
}
