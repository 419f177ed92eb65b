// Package testutil holds helpers shared by HTTP handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// NewRequest creates a new HTTP request for testing. A string body is sent
// verbatim; anything else is marshalled to JSON.
func NewRequest(method, path string, body any) *http.Request {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		bodyBytes, _ := json.Marshal(b)
		reader = bytes.NewReader(bodyBytes)
	}

	r := httptest.NewRequest(method, path, reader)
	if reader != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	return r
}

// Response is a decoded response envelope.
type Response struct {
	Code    int             `json:"-"`
	Header  http.Header     `json:"-"`
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// RecordHTTPResponse decodes the envelope written to w.
func RecordHTTPResponse(t testing.TB, w *httptest.ResponseRecorder) Response {
	t.Helper()

	result := w.Result()
	defer result.Body.Close()

	resp := Response{Code: result.StatusCode, Header: result.Header}
	bodyBytes, err := io.ReadAll(result.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if len(bodyBytes) > 0 {
		if err := json.Unmarshal(bodyBytes, &resp); err != nil {
			t.Fatalf("decode response body %q: %v", bodyBytes, err)
		}
	}
	return resp
}

// DecodeData unmarshals the envelope data into dst.
func (r Response) DecodeData(t testing.TB, dst any) {
	t.Helper()
	if len(r.Data) == 0 {
		t.Fatalf("response has no data")
	}
	if err := json.Unmarshal(r.Data, dst); err != nil {
		t.Fatalf("decode response data: %v", err)
	}
}
