// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	x509keys "github.com/H0llyW00dzZ/x509-validator/src/x509/keys"
)

// ConfigEnv names the environment variable holding the config file path.
const ConfigEnv = "X509_VALIDATOR_CONFIG"

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// Config represents the validator configuration shared by the CLI and the MCP server.
//
// The configuration can be loaded from a JSON or YAML file given with --config or the
// X509_VALIDATOR_CONFIG environment variable, with defaults applied for any missing values.
// Supported file extensions: .json, .yaml, .yml
type Config struct {
	// Validation: Policy settings for certificate and key checks
	Validation struct {
		// AllowWeakAlgorithm: Skip the signature algorithm strength check
		AllowWeakAlgorithm bool `json:"allowWeakAlgorithm" yaml:"allowWeakAlgorithm"`
		// MinimumKeyBits: Private key size floor
		MinimumKeyBits int `json:"minimumKeyBits" yaml:"minimumKeyBits"`
		// RequiredPurposes: Purposes every validated certificate must support
		RequiredPurposes []string `json:"requiredPurposes" yaml:"requiredPurposes"`
	} `json:"validation" yaml:"validation"`

	// OCSP: Revocation check settings
	OCSP struct {
		// Enabled: Check revocation as part of validate
		Enabled bool `json:"enabled" yaml:"enabled"`
		// Timeout: Responder timeout in seconds
		Timeout int `json:"timeoutSeconds" yaml:"timeoutSeconds"`
		// UserAgent: Custom User-Agent, empty for the default
		UserAgent string `json:"userAgent,omitempty" yaml:"userAgent,omitempty"`
	} `json:"ocsp" yaml:"ocsp"`

	// Cache: Extractor cache settings
	Cache struct {
		// Size: Number of certificate views kept, 1 keeps only the last one
		Size int `json:"size" yaml:"size"`
	} `json:"cache" yaml:"cache"`

	// Language: BCP 47 tag for violation messages
	Language string `json:"language" yaml:"language"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	config := &Config{}
	config.Validation.MinimumKeyBits = x509keys.DefaultMinimumBits
	config.OCSP.Timeout = 10
	config.Cache.Size = 1
	config.Language = "en"
	return config
}

// detectConfigFormat determines the configuration file format based on file extension.
func detectConfigFormat(configPath string) configFormat {
	ext := strings.ToLower(filepath.Ext(configPath))
	switch ext {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// unmarshalConfig unmarshals configuration data based on the specified format.
func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// LoadConfig loads the configuration from a JSON or YAML file or applies defaults.
//
// Parameters:
//   - configPath: Path to the configuration file (optional, can be empty)
//     Supported formats: .json, .yaml, .yml
//
// Returns:
//   - A pointer to the loaded Config struct with defaults applied
//   - An error if the configuration file cannot be read or parsed
//
// Configuration Priority:
//  1. Default values are set
//  2. X509_VALIDATOR_CONFIG environment variable is checked if configPath is empty
//  3. Config file values override defaults (if file exists and is valid)
//
// Invalid numeric values in the file fall back to their defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	// Check environment variable for config file path if not provided
	if configPath == "" {
		configPath = os.Getenv(ConfigEnv)
	}

	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := unmarshalConfig(data, config, detectConfigFormat(configPath)); err != nil {
		return nil, err
	}

	// Validate and set defaults for invalid values
	defaults := DefaultConfig()
	if config.Validation.MinimumKeyBits <= 0 {
		config.Validation.MinimumKeyBits = defaults.Validation.MinimumKeyBits
	}
	if config.OCSP.Timeout <= 0 {
		config.OCSP.Timeout = defaults.OCSP.Timeout
	}
	if config.Cache.Size <= 0 {
		config.Cache.Size = defaults.Cache.Size
	}
	if config.Language == "" {
		config.Language = defaults.Language
	}

	return config, nil
}
