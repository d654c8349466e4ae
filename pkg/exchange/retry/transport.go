package retry

import (
	"context"
	"net/http"
	"strings"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"

	"github.com/c9s/bitflyer/pkg/exchange/bitflyer/bitflyerapi"
)

// DefaultMethods are the methods retried when none are configured.
// Order submission is a POST and is never retried unless asked for.
var DefaultMethods = []string{http.MethodGet}

type Option func(t *Transport)

// WithBackOff replaces the exponential back off used between attempts.
func WithBackOff(f func() backoff.BackOff) Option {
	return func(t *Transport) {
		t.newBackOff = f
	}
}

// Transport retries failed sends of the configured methods.
// Only transport failures are retried; any status code, including errors,
// is an answer from the exchange and is returned as is.
type Transport struct {
	bitflyerapi.Transport

	maxRetries uint64
	methods    map[string]struct{}
	newBackOff func() backoff.BackOff
}

func NewTransport(transport bitflyerapi.Transport, maxRetries uint64, methods []string, options ...Option) *Transport {
	if len(methods) == 0 {
		methods = DefaultMethods
	}

	t := &Transport{
		Transport:  transport,
		maxRetries: maxRetries,
		methods:    make(map[string]struct{}, len(methods)),
		newBackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
	}

	for _, method := range methods {
		t.methods[strings.ToUpper(method)] = struct{}{}
	}

	for _, option := range options {
		option(t)
	}

	return t
}

func (t *Transport) Retryable(method string) bool {
	_, ok := t.methods[strings.ToUpper(method)]
	return ok && t.maxRetries > 0
}

func (t *Transport) Send(
	ctx context.Context, method, path string, header http.Header, body []byte,
) (statusCode int, respBody []byte, err error) {
	if !t.Retryable(method) {
		return t.Transport.Send(ctx, method, path, header, body)
	}

	attempt := 0
	op := func() (err2 error) {
		attempt++
		statusCode, respBody, err2 = t.Transport.Send(ctx, method, path, header, body)
		if err2 != nil {
			log.WithError(err2).Warnf("%s %s failed, attempt #%d", method, path, attempt)
		}

		return err2
	}

	err = backoff.Retry(op, backoff.WithContext(
		backoff.WithMaxRetries(t.newBackOff(), t.maxRetries),
		ctx))
	return statusCode, respBody, err
}
