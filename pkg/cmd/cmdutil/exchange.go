package cmdutil

import (
	"net/http"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/c9s/bitflyer/pkg/config"
	"github.com/c9s/bitflyer/pkg/exchange/bitflyer"
	"github.com/c9s/bitflyer/pkg/exchange/bitflyer/bitflyerapi"
	"github.com/c9s/bitflyer/pkg/exchange/retry"
)

// NewTransport stacks the configured decorators on top of the http transport:
// rate limiting outermost, so every retry waits for its own token.
func NewTransport(c config.BitflyerConfig) (bitflyerapi.Transport, error) {
	var transport bitflyerapi.Transport

	httpTransport, err := bitflyerapi.NewHTTPTransport(c.BaseURL, &http.Client{Timeout: c.Timeout})
	if err != nil {
		return nil, errors.Wrapf(err, "invalid base url %q", c.BaseURL)
	}

	transport = httpTransport

	if c.Retry.MaxRetries > 0 {
		transport = retry.NewTransport(transport, c.Retry.MaxRetries, c.Retry.Methods)
	}

	limiter, err := c.RateLimiter()
	if err != nil {
		return nil, err
	}

	if limiter != nil {
		transport = bitflyerapi.NewRateLimitedTransport(transport, limiter)
	}

	return transport, nil
}

// NewExchange creates the exchange from the config.
// Without credentials only the public endpoints are usable, unless requireAuth is set.
func NewExchange(c *config.Config, requireAuth bool) (*bitflyer.Exchange, error) {
	transport, err := NewTransport(c.Bitflyer)
	if err != nil {
		return nil, err
	}

	key, secret, err := c.Bitflyer.Credentials()
	if err != nil {
		if requireAuth {
			return nil, err
		}

		log.WithError(err).Debug("no api credentials, only public endpoints are available")
	}

	return bitflyer.New(key, secret,
		bitflyer.WithTransport(transport),
		bitflyer.WithProductCodes(c.Bitflyer.GetProductCodes()...),
	), nil
}
