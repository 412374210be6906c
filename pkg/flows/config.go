package flows

import (
	"bytes"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config wraps the options for the flow data-exchange endpoint.
type Config struct {
	// PrivateKeyPath is the PEM file holding the endpoint's RSA private key.
	PrivateKeyPath string `yaml:"private-key-path"`

	// PrivateKeyPassphraseFile optionally names a file whose contents decrypt
	// an encrypted PEM block. The passphrase lives in its own file so the
	// config itself can be dumped and logged safely.
	PrivateKeyPassphraseFile string `yaml:"private-key-passphrase-file,omitempty"`
}

// Dump generates a YAML string of the Config object
func (c *Config) Dump() (string, error) {
	d, err := yaml.Marshal(&c)

	if err != nil {
		return "", errors.Wrap(err, "failed to generate YAML dump of config")
	}

	return string(d), nil
}

// Passphrase reads the configured passphrase file, trimming trailing line
// endings. It returns nil when no passphrase file is configured.
func (c *Config) Passphrase() ([]byte, error) {
	if c.PrivateKeyPassphraseFile == "" {
		return nil, nil
	}

	data, err := os.ReadFile(c.PrivateKeyPassphraseFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read passphrase file")
	}

	return bytes.TrimRight(data, "\r\n"), nil
}

func (c *Config) validate() error {
	var result *multierror.Error

	if c.PrivateKeyPath == "" {
		result = multierror.Append(result, fmt.Errorf("private-key-path is required"))
	}

	if c.PrivateKeyPassphraseFile != "" && c.PrivateKeyPassphraseFile == c.PrivateKeyPath {
		result = multierror.Append(result, fmt.Errorf("private-key-passphrase-file must not be the key file itself"))
	}

	return result.ErrorOrNil()
}

// ParseConfig reads config into a struct used to configure the endpoint
func ParseConfig(data []byte) (Config, error) {
	var config Config

	err := yaml.Unmarshal(data, &config)
	if err != nil {
		return config, err
	}

	if err = config.validate(); err != nil {
		return config, err
	}

	return config, nil
}
