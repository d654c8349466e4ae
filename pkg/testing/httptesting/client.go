package httptesting

import (
	"net/http"
)

// EchoSave answers every request with the same status and content.
// When saveTo is set the last request is stored there so tests can inspect it.
type EchoSave struct {
	saveTo  **http.Request
	code    int
	content string
	err     error
}

func (st *EchoSave) RoundTrip(req *http.Request) (*http.Response, error) {
	if st.saveTo != nil {
		*st.saveTo = req
	}

	if st.err != nil {
		return nil, st.err
	}

	code := st.code
	if code == 0 {
		code = http.StatusOK
	}

	resp := BuildResponseString(code, st.content)
	SetHeader(resp, "Content-Type", "application/json")
	return resp, nil
}

func HttpClientWithContent(content string) *http.Client {
	return &http.Client{Transport: &EchoSave{content: content}}
}

func HttpClientWithStatus(code int, content string) *http.Client {
	return &http.Client{Transport: &EchoSave{code: code, content: content}}
}

func HttpClientWithError(err error) *http.Client {
	return &http.Client{Transport: &EchoSave{err: err}}
}

// "Saver" refers to saving the *http.Request in a local variable provided by the caller.
func HttpClientSaver(saved **http.Request, content string) *http.Client {
	return &http.Client{Transport: &EchoSave{saveTo: saved, content: content}}
}
