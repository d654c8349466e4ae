package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Load reads the yaml config file, fills the defaults, applies the environment
// overrides and validates the result.
func Load(configFile string) (*Config, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(err, "yaml parsing error")
	}

	config.SetDefaults()
	config.ApplyEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}
