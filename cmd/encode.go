package cmd

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tucanbot/flowgate/internal/envelope"
)

var (
	// EncodeInPath is the clear response JSON document; "-" reads stdin.
	EncodeInPath string

	// KeyB64 is the base64 symmetric key recovered from the request.
	KeyB64 string

	// IVB64 is the base64 initial vector recovered from the request.
	IVB64 string
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encrypt a flow response envelope",
	Long: `Encode encrypts a clear screen-transition response under the symmetric
key and initial vector recovered by decode, and prints the response envelope
JSON as the webhook would return it.`,
	RunE:         encode,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.PersistentFlags().StringVarP(
		&EncodeInPath,
		"in",
		"i",
		"-",
		"Clear response JSON document, - for stdin.",
	)

	encodeCmd.PersistentFlags().StringVar(
		&KeyB64,
		"key-b64",
		"",
		"Base64 symmetric key, as printed by decode --show-key-material.",
	)

	encodeCmd.PersistentFlags().StringVar(
		&IVB64,
		"iv-b64",
		"",
		"Base64 request initial vector, as printed by decode --show-key-material.",
	)
}

func encode(cmd *cobra.Command, args []string) error {
	key, err := base64.StdEncoding.DecodeString(KeyB64)
	if err != nil {
		return errors.Wrap(err, "failed to decode --key-b64")
	}

	iv, err := base64.StdEncoding.DecodeString(IVB64)
	if err != nil {
		return errors.Wrap(err, "failed to decode --iv-b64")
	}

	data, err := readInput(EncodeInPath)
	if err != nil {
		return err
	}

	if !json.Valid(data) {
		return errors.New("response document is not valid JSON")
	}

	response, err := envelope.EncryptResponse(json.RawMessage(data), key, iv)
	if err != nil {
		return err
	}

	out, err := json.Marshal(response)
	if err != nil {
		return errors.Wrap(err, "failed to marshal response envelope")
	}

	fmt.Println(string(out))

	return nil
}
