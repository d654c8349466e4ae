package bitflyerapi

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/c9s/requestgen"
	"golang.org/x/time/rate"
)

//go:generate mockgen -destination=mocks/mock_transport.go -package=mocks . Transport

// Transport sends one request and returns the raw status code and body.
// Connection handling, TLS and timeouts belong to the implementation.
// A non-nil error means no response was observed.
type Transport interface {
	Send(ctx context.Context, method, path string, header http.Header, body []byte) (int, []byte, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, method, path string, header http.Header, body []byte) (int, []byte, error)

func (f TransportFunc) Send(ctx context.Context, method, path string, header http.Header, body []byte) (int, []byte, error) {
	return f(ctx, method, path, header, body)
}

// HTTPTransport sends requests over net/http to a fixed base URL.
type HTTPTransport struct {
	requestgen.BaseAPIClient
}

func NewHTTPTransport(baseURL string, httpClient *http.Client) (*HTTPTransport, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}

	return &HTTPTransport{
		BaseAPIClient: requestgen.BaseAPIClient{
			BaseURL:    u,
			HttpClient: httpClient,
		},
	}, nil
}

func (t *HTTPTransport) Send(
	ctx context.Context, method, path string, header http.Header, body []byte,
) (int, []byte, error) {
	rel, err := url.Parse(path)
	if err != nil {
		return 0, nil, err
	}

	pathURL := t.BaseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, pathURL.String(), bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}

	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}

	start := time.Now()
	resp, err := t.HttpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}

	// NewResponse reads the whole body and closes it
	response, err := requestgen.NewResponse(resp)
	if err != nil {
		return 0, nil, err
	}

	recordLatencyMetrics(rel.Path, response.StatusCode, time.Since(start))
	return response.StatusCode, response.Body, nil
}

// RateLimitedTransport waits for a token of the limiter before every request.
type RateLimitedTransport struct {
	Transport

	limiter *rate.Limiter
}

func NewRateLimitedTransport(transport Transport, limiter *rate.Limiter) *RateLimitedTransport {
	return &RateLimitedTransport{
		Transport: transport,
		limiter:   limiter,
	}
}

func (t *RateLimitedTransport) Send(
	ctx context.Context, method, path string, header http.Header, body []byte,
) (int, []byte, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return 0, nil, err
	}

	return t.Transport.Send(ctx, method, path, header, body)
}
