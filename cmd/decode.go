package cmd

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Jeffail/gabs/v2"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tucanbot/flowgate/internal/envelope"
)

var (
	// DecodeInPath is the request envelope JSON document; "-" reads stdin.
	DecodeInPath string

	// DecodePath optionally selects a single value out of the decrypted
	// payload, gabs path syntax ("data.date").
	DecodePath string

	// ShowKeyMaterial prints the recovered symmetric key and IV in base64,
	// for feeding into the encode command.
	ShowKeyMaterial bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decrypt a captured flow request envelope",
	Long: `Decode decrypts a request envelope with the configured private key and
prints the clear payload. It is a debugging tool for captured exchanges: feed
it the webhook request body and it shows what the client submitted.

With --show-key-material it also prints the recovered symmetric key and
initial vector, which the encode command needs to build the matching
response envelope.`,
	RunE:         decode,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.PersistentFlags().StringVarP(
		&cfgFile,
		"config-file",
		"c",
		"flowgate.yaml",
		"Config file location.",
	)

	decodeCmd.PersistentFlags().StringVarP(
		&DecodeInPath,
		"in",
		"i",
		"-",
		"Request envelope JSON document, - for stdin.",
	)

	decodeCmd.PersistentFlags().StringVar(
		&DecodePath,
		"path",
		"",
		"Print only the value at this payload path, e.g. 'data.date'.",
	)

	decodeCmd.PersistentFlags().BoolVar(
		&ShowKeyMaterial,
		"show-key-material",
		false,
		"Also print the recovered symmetric key and IV in base64.",
	)
}

func decode(cmd *cobra.Command, args []string) error {
	key, _, err := loadPrivateKey(cmd.Context())
	if err != nil {
		return err
	}

	data, err := readInput(DecodeInPath)
	if err != nil {
		return err
	}

	var env envelope.RequestEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return errors.Wrap(err, "failed to parse request envelope JSON")
	}

	decryptor, err := envelope.NewDecryptor(key)
	if err != nil {
		return err
	}

	request, err := decryptor.Decrypt(&env)
	if err != nil {
		return err
	}

	if DecodePath != "" {
		container, err := gabs.ParseJSON(request.Payload)
		if err != nil {
			return errors.Wrap(err, "failed to parse payload")
		}

		value := container.Path(DecodePath)
		if value == nil {
			return fmt.Errorf("payload has no value at path %q", DecodePath)
		}

		fmt.Println(value.String())
	} else {
		fmt.Println(string(request.Payload))
	}

	if ShowKeyMaterial {
		color.Cyan("symmetric key: %s", base64.StdEncoding.EncodeToString(request.SymmetricKey))
		color.Cyan("iv:            %s", base64.StdEncoding.EncodeToString(request.IV))
	}

	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read stdin")
		}

		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read input file")
	}

	return data, nil
}
