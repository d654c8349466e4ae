package bitflyerapi

import (
	"encoding/json"
	"net/http"
)

// Response is the raw result of a request that reached the exchange.
type Response struct {
	Path       string
	StatusCode int
	Body       []byte
}

// IsError reports whether the exchange answered with anything but 200 OK.
func (r *Response) IsError() bool {
	return r.StatusCode != http.StatusOK
}

func (r *Response) String() string {
	return string(r.Body)
}

// DecodeJSON unmarshals the body; a body that does not fit v is an invalid response.
func (r *Response) DecodeJSON(v interface{}) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return r.invalid(&InvalidResponseError{Body: r.Body, Err: err})
	}

	return nil
}

func (r *Response) requireObject(fields ...string) error {
	return r.invalid(requireObject(r.Body, fields...))
}

func (r *Response) requireArray(fields ...string) error {
	return r.invalid(requireArray(r.Body, fields...))
}

func (r *Response) parentOrderPrices() ([]float64, error) {
	prices, err := ParseParentOrderPrices(r.Body)
	return prices, r.invalid(err)
}

// invalid counts a schema failure against the request path.
func (r *Response) invalid(err error) error {
	if err != nil {
		recordErrorMetrics(r.Path, errorKindInvalidResponse)
	}

	return err
}
