package bitflyerapi

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const defaultHTTPTimeout = time.Second * 15
const RestBaseURL = "https://api.bitflyer.com"

var log = logrus.WithField("exchange", "bitflyer")

// RestClient builds public and signed requests and hands them to a Transport.
// It holds no mutable state besides the credentials, which are only read.
type RestClient struct {
	transport Transport

	key, secret string

	nowFunc func() time.Time
}

func NewClient() *RestClient {
	transport, err := NewHTTPTransport(RestBaseURL, &http.Client{
		Timeout: defaultHTTPTimeout,
	})
	if err != nil {
		panic(err)
	}

	return NewClientWithTransport(transport)
}

func NewClientWithTransport(transport Transport) *RestClient {
	return &RestClient{
		transport: transport,
		nowFunc:   time.Now,
	}
}

func (c *RestClient) Auth(key, secret string) {
	c.key = key
	// pragma: allowlist nextline secret
	c.secret = secret
}

// SetNowFunc replaces the clock used for the ACCESS-TIMESTAMP header.
func (c *RestClient) SetNowFunc(f func() time.Time) {
	c.nowFunc = f
}

// SendRequest sends an unsigned request.
func (c *RestClient) SendRequest(
	ctx context.Context, method, refURL string, params url.Values, payload interface{},
) (*Response, error) {
	path, err := buildPath(refURL, params)
	if err != nil {
		return nil, err
	}

	body, err := castPayload(payload)
	if err != nil {
		return nil, err
	}

	return c.send(ctx, method, path, http.Header{}, body)
}

// SendAuthenticatedRequest signs the request with the api secret and sends it.
// The path (including the query string) and the body bytes that are signed are
// exactly the ones handed to the transport.
func (c *RestClient) SendAuthenticatedRequest(
	ctx context.Context, method, refURL string, params url.Values, payload interface{},
) (*Response, error) {
	if len(c.key) == 0 {
		return nil, errors.New("empty api key")
	}

	if len(c.secret) == 0 {
		return nil, errors.New("empty api secret")
	}

	path, err := buildPath(refURL, params)
	if err != nil {
		return nil, err
	}

	body, err := castPayload(payload)
	if err != nil {
		return nil, err
	}

	method = strings.ToUpper(method)
	header := c.authHeader(method, path, body)

	log.WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"method":     method,
		"path":       path,
	}).Debug("sending authenticated request")

	return c.send(ctx, method, path, header, body)
}

// authHeader builds the ACCESS-* headers.
//
// See https://lightning.bitflyer.com/docs?lang=en#authentication
//
//	ACCESS-SIGN = hex(HMAC-SHA256(secret, timestamp + method + path + body))
func (c *RestClient) authHeader(method, path string, body []byte) http.Header {
	timestamp := strconv.FormatInt(c.nowFunc().Unix(), 10)
	signature := Sign(timestamp+method+path+string(body), c.secret)

	header := http.Header{}
	header.Set("ACCESS-KEY", c.key)
	header.Set("ACCESS-TIMESTAMP", timestamp)
	header.Set("ACCESS-SIGN", signature)
	header.Set("Content-Type", "application/json")
	return header
}

func (c *RestClient) send(ctx context.Context, method, path string, header http.Header, body []byte) (*Response, error) {
	statusCode, respBody, err := c.transport.Send(ctx, method, path, header, body)
	if err != nil {
		recordErrorMetrics(path, errorKindTimeout)
		return nil, &TimeoutError{Message: err.Error()}
	}

	response := &Response{Path: path, StatusCode: statusCode, Body: respBody}
	if response.IsError() {
		recordErrorMetrics(path, errorKindErrorResponse)
		return response, &ErrorResponse{
			Method:     method,
			Path:       path,
			StatusCode: statusCode,
			Body:       respBody,
		}
	}

	return response, nil
}

// Sign returns the lowercase hex HMAC-SHA256 of payload keyed with secret.
func Sign(payload string, secret string) string {
	var sig = hmac.New(sha256.New, []byte(secret))
	_, err := sig.Write([]byte(payload))
	if err != nil {
		return ""
	}

	return hex.EncodeToString(sig.Sum(nil))
}

func buildPath(refURL string, params url.Values) (string, error) {
	rel, err := url.Parse(refURL)
	if err != nil {
		return "", err
	}

	if len(params) > 0 {
		rel.RawQuery = params.Encode()
	}

	path := rel.Path
	if rel.RawQuery != "" {
		path += "?" + rel.RawQuery
	}

	return path, nil
}

// castPayload serializes the payload exactly once.
func castPayload(payload interface{}) ([]byte, error) {
	if payload == nil {
		return nil, nil
	}

	switch v := payload.(type) {
	case string:
		return []byte(v), nil

	case []byte:
		return v, nil

	}
	return json.Marshal(payload)
}
