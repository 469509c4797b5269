package docfold

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// countingTransport records how many requests reach the wire. Operations that
// fail argument validation must never produce a request.
type countingTransport struct {
	calls int
}

func (ct *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ct.calls++
	return &http.Response{
		StatusCode: http.StatusOK,
		Status:     "200 OK",
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader("")),
		Request:    req,
	}, nil
}

func newCountingClient() (*Client, *countingTransport) {
	ct := &countingTransport{}
	client := NewClient("test-key", WithHTTPClient(&http.Client{Transport: ct}))
	return client, ct
}

// recordedRequest captures one request as seen by the test server.
type recordedRequest struct {
	method      string
	path        string
	rawQuery    string
	contentType string
	auth        string
	body        []byte
}

// recordRequests returns a handler that appends every request to reqs and
// responds 200 with respBody.
func recordRequests(reqs *[]recordedRequest, respBody []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*reqs = append(*reqs, recordedRequest{
			method:      r.Method,
			path:        r.URL.Path,
			rawQuery:    r.URL.RawQuery,
			contentType: r.Header.Get("Content-Type"),
			auth:        r.Header.Get("Authorization"),
			body:        body,
		})
		w.Write(respBody)
	}
}

// newTestClient starts an HTTP test server and returns a client pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-key", WithBaseURL(srv.URL))
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient("key")

	if client.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL() = %v, want %v", client.BaseURL(), DefaultBaseURL)
	}
	if client.endpoint != DefaultBaseURL+"/"+DefaultVersion {
		t.Errorf("endpoint = %v, want %v", client.endpoint, DefaultBaseURL+"/"+DefaultVersion)
	}
	if client.userAgent != "docfold-go/"+Version {
		t.Errorf("userAgent = %v, want docfold-go/%v", client.userAgent, Version)
	}
	if client.httpClient.Timeout != defaultTimeout {
		t.Errorf("timeout = %v, want %v", client.httpClient.Timeout, defaultTimeout)
	}
}

func TestClientOptions(t *testing.T) {
	tests := []struct {
		name         string
		opts         []Option
		wantEndpoint string
	}{
		{"base url", []Option{WithBaseURL("http://localhost:8745")}, "http://localhost:8745/v1"},
		{"base url trailing slash", []Option{WithBaseURL("http://localhost:8745/")}, "http://localhost:8745/v1"},
		{"version", []Option{WithVersion("v2")}, DefaultBaseURL + "/v2"},
		{"version with slashes", []Option{WithVersion("/v2/")}, DefaultBaseURL + "/v2"},
		{"base url and version", []Option{WithBaseURL("http://localhost:8745/"), WithVersion("v3")}, "http://localhost:8745/v3"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := NewClient("key", tc.opts...)
			if client.endpoint != tc.wantEndpoint {
				t.Errorf("endpoint = %v, want %v", client.endpoint, tc.wantEndpoint)
			}
		})
	}
}

func TestValidateKey(t *testing.T) {
	var reqs []recordedRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		recordRequests(&reqs, nil)(w, r)
		json.NewEncoder(w).Encode(map[string]bool{"valid": true})
	})

	if err := client.ValidateKey(context.Background()); err != nil {
		t.Fatalf("ValidateKey() error = %v", err)
	}
	if len(reqs) != 1 {
		t.Fatalf("got %d requests, want 1", len(reqs))
	}
	if reqs[0].method != http.MethodGet {
		t.Errorf("method = %v, want GET", reqs[0].method)
	}
	if reqs[0].path != "/v1/token" {
		t.Errorf("path = %v, want /v1/token", reqs[0].path)
	}
}

func TestValidateKeyRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid api key"}`))
	})

	err := client.ValidateKey(context.Background())
	if err == nil {
		t.Fatal("ValidateKey() error = nil, want APIError")
	}
	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("AsAPIError() = false for %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, http.StatusUnauthorized)
	}
}

func TestWithUserAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
	}))
	t.Cleanup(srv.Close)

	client := NewClient("key", WithBaseURL(srv.URL), WithUserAgent("billing-service/2.1"))
	if err := client.ValidateKey(context.Background()); err != nil {
		t.Fatalf("ValidateKey() error = %v", err)
	}
	if got != "billing-service/2.1" {
		t.Errorf("User-Agent = %q, want billing-service/2.1", got)
	}
}
