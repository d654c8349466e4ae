package httptesting

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

func BuildResponse(code int, payload []byte) *http.Response {
	return &http.Response{
		StatusCode:    code,
		Status:        http.StatusText(code),
		Header:        http.Header{},
		Body:          io.NopCloser(bytes.NewReader(payload)),
		ContentLength: int64(len(payload)),
	}
}

func BuildResponseString(code int, payload string) *http.Response {
	return &http.Response{
		StatusCode:    code,
		Status:        http.StatusText(code),
		Header:        http.Header{},
		Body:          io.NopCloser(strings.NewReader(payload)),
		ContentLength: int64(len(payload)),
	}
}

func BuildResponseJson(code int, payload interface{}) *http.Response {
	data, err := json.Marshal(payload)
	if err != nil {
		return BuildResponseString(http.StatusInternalServerError, `{error: "httptesting.MockTransport error calling json.Marshal()"}`)
	}

	resp := BuildResponse(code, data)
	resp.Header.Set("Content-Type", "application/json")
	return resp
}

func SetHeader(resp *http.Response, name string, value string) *http.Response {
	if resp.Header == nil {
		resp.Header = http.Header{}
	}

	resp.Header.Set(name, value)
	return resp
}

// ReadBody drains the request body and puts the bytes back, so handlers can inspect it.
func ReadBody(req *http.Request) []byte {
	if req.Body == nil {
		return nil
	}

	data, _ := io.ReadAll(req.Body)
	req.Body = io.NopCloser(bytes.NewReader(data))
	return data
}
