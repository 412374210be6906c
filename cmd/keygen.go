package cmd

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	// KeyOutPath is where the generated private key PEM is written.
	KeyOutPath string

	// PublicKeyOutPath is where the matching public key PEM is written. The
	// public key is what gets uploaded to the messaging platform's business
	// encryption endpoint.
	PublicKeyOutPath string

	// KeyBits is the RSA modulus size for generated keys.
	KeyBits int
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate an RSA key pair for the flow endpoint",
	Long: `Keygen generates the endpoint's RSA key pair: a PKCS#8 private key PEM
that the webhook keeps, and a PKIX public key PEM to upload to the messaging
platform so its clients can wrap symmetric keys for this endpoint.`,
	RunE: keygen,
}

func init() {
	rootCmd.AddCommand(keygenCmd)
	keygenCmd.PersistentFlags().StringVarP(
		&KeyOutPath,
		"out",
		"o",
		"flow-private-key.pem",
		"Path to write the private key PEM to.",
	)

	keygenCmd.PersistentFlags().StringVarP(
		&PublicKeyOutPath,
		"pub-out",
		"p",
		"flow-public-key.pem",
		"Path to write the public key PEM to.",
	)

	keygenCmd.PersistentFlags().IntVar(
		&KeyBits,
		"bits",
		2048,
		"RSA modulus size in bits.",
	)
}

func keygen(cmd *cobra.Command, args []string) error {
	key, err := rsa.GenerateKey(rand.Reader, KeyBits)
	if err != nil {
		return errors.Wrap(err, "failed to generate RSA key")
	}

	keyDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return errors.Wrap(err, "failed to marshal private key")
	}

	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyDER})
	if err := os.WriteFile(KeyOutPath, keyPEM, 0600); err != nil {
		return errors.Wrap(err, "failed to write private key")
	}

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return errors.Wrap(err, "failed to marshal public key")
	}

	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	if err := os.WriteFile(PublicKeyOutPath, pubPEM, 0644); err != nil {
		return errors.Wrap(err, "failed to write public key")
	}

	log.Infof("wrote %d-bit private key to %s", KeyBits, KeyOutPath)
	log.Infof("wrote public key to %s", PublicKeyOutPath)

	return nil
}
