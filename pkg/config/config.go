package config

import (
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/time/rate"

	"github.com/c9s/bitflyer/pkg/envvar"
	"github.com/c9s/bitflyer/pkg/types"
)

const (
	DefaultBaseURL      = "https://api.bitflyer.com"
	DefaultKeyEnvVar    = "BITFLYER_API_KEY"
	DefaultSecretEnvVar = "BITFLYER_API_SECRET"
	DefaultTimeout      = 15 * time.Second
)

type Config struct {
	Bitflyer BitflyerConfig `yaml:"bitflyer"`
}

type RetryConfig struct {
	MaxRetries uint64      `yaml:"maxRetries"`
	Methods    StringSlice `yaml:"methods"`
}

// BitflyerConfig holds the names of the credential variables, never the credentials.
type BitflyerConfig struct {
	BaseURL      string        `yaml:"baseURL"`
	KeyEnvVar    string        `yaml:"keyEnvVar"`
	SecretEnvVar string        `yaml:"secretEnvVar"`
	ProductCodes StringSlice   `yaml:"productCodes"`
	Timeout      time.Duration `yaml:"timeout"`

	// RateLimit uses the b+n/duration syntax, e.g. 5+2/1s
	RateLimit string `yaml:"rateLimit"`

	Retry RetryConfig `yaml:"retry"`
}

func Default() *Config {
	c := &Config{}
	c.SetDefaults()
	return c
}

func (c *Config) SetDefaults() {
	b := &c.Bitflyer
	if b.BaseURL == "" {
		b.BaseURL = DefaultBaseURL
	}

	if b.KeyEnvVar == "" {
		b.KeyEnvVar = DefaultKeyEnvVar
	}

	if b.SecretEnvVar == "" {
		b.SecretEnvVar = DefaultSecretEnvVar
	}

	if len(b.ProductCodes) == 0 {
		b.ProductCodes = StringSlice{string(types.ProductBTCJPYPerp)}
	}

	if b.Timeout == 0 {
		b.Timeout = DefaultTimeout
	}
}

// ApplyEnv lets BITFLYER_BASE_URL, BITFLYER_TIMEOUT and BITFLYER_MAX_RETRIES override the file.
func (c *Config) ApplyEnv() {
	if v, ok := envvar.String("BITFLYER_BASE_URL"); ok {
		c.Bitflyer.BaseURL = v
	}

	if v, ok := envvar.Duration("BITFLYER_TIMEOUT"); ok {
		c.Bitflyer.Timeout = v
	}

	if v, ok := envvar.Uint64("BITFLYER_MAX_RETRIES"); ok {
		c.Bitflyer.Retry.MaxRetries = v
	}
}

// Validate reports every problem at once.
func (c *Config) Validate() (err error) {
	b := c.Bitflyer

	if b.BaseURL == "" {
		err = multierr.Append(err, errors.New("bitflyer.baseURL is required"))
	} else if u, parseErr := url.Parse(b.BaseURL); parseErr != nil || u.Scheme == "" || u.Host == "" {
		err = multierr.Append(err, errors.Errorf("bitflyer.baseURL %q is not an absolute url", b.BaseURL))
	}

	if b.KeyEnvVar == "" {
		err = multierr.Append(err, errors.New("bitflyer.keyEnvVar is required"))
	}

	if b.SecretEnvVar == "" {
		err = multierr.Append(err, errors.New("bitflyer.secretEnvVar is required"))
	}

	if len(b.ProductCodes) == 0 {
		err = multierr.Append(err, errors.New("bitflyer.productCodes is required"))
	}

	if b.Timeout <= 0 {
		err = multierr.Append(err, errors.Errorf("bitflyer.timeout must be positive, got %s", b.Timeout))
	}

	if b.RateLimit != "" {
		if _, rateErr := ParseRateLimitSyntax(b.RateLimit); rateErr != nil {
			err = multierr.Append(err, errors.Wrap(rateErr, "bitflyer.rateLimit"))
		}
	}

	for _, method := range b.Retry.Methods {
		switch strings.ToUpper(method) {
		case "GET", "POST":
		default:
			err = multierr.Append(err, errors.Errorf("bitflyer.retry.methods: unsupported method %q", method))
		}
	}

	return err
}

func (b BitflyerConfig) GetProductCodes() []types.ProductCode {
	codes := make([]types.ProductCode, 0, len(b.ProductCodes))
	for _, code := range b.ProductCodes {
		codes = append(codes, types.ProductCode(code))
	}

	return codes
}

// Credentials reads the api key and secret from the configured environment variables.
func (b BitflyerConfig) Credentials() (key, secret string, err error) {
	key, ok := envvar.String(b.KeyEnvVar)
	if !ok || key == "" {
		return "", "", errors.Errorf("environment variable %s is not set", b.KeyEnvVar)
	}

	secret, ok = envvar.String(b.SecretEnvVar)
	if !ok || secret == "" {
		return "", "", errors.Errorf("environment variable %s is not set", b.SecretEnvVar)
	}

	return key, secret, nil
}

// RateLimiter returns nil when no rate limit is configured.
func (b BitflyerConfig) RateLimiter() (*rate.Limiter, error) {
	if b.RateLimit == "" {
		return nil, nil
	}

	return ParseRateLimitSyntax(b.RateLimit)
}
