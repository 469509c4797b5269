package docfold

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// newRequest builds an authenticated request. The API key is sent in the
// Authorization header verbatim, without a scheme prefix.
func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("docfold: create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

// do runs the request and rejects non-2xx responses with an *APIError.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("docfold: do request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}
	return resp, nil
}

// maxErrorBody caps how much of an error response is retained for diagnostics.
const maxErrorBody = 64 << 10

// getBytes fetches a binary document.
func (c *Client) getBytes(ctx context.Context, path string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.endpoint+path, nil, "")
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("docfold: read response: %w", err)
	}
	return data, nil
}

// getJSON fetches a JSON document into result.
func (c *Client) getJSON(ctx context.Context, path string, result any) error {
	req, err := c.newRequest(ctx, http.MethodGet, c.endpoint+path, nil, "")
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("docfold: decode response: %w", err)
	}
	return nil
}

// postForm posts a multipart body and returns the raw response bytes.
func (c *Client) postForm(ctx context.Context, path string, f *form) ([]byte, error) {
	if err := f.close(); err != nil {
		return nil, fmt.Errorf("docfold: close form: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(f.bytes()), f.contentType())
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("docfold: read response: %w", err)
	}
	return data, nil
}

// postFormJSON posts a multipart body and decodes the JSON response into
// result.
func (c *Client) postFormJSON(ctx context.Context, path string, f *form, result any) error {
	if err := f.close(); err != nil {
		return fmt.Errorf("docfold: close form: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(f.bytes()), f.contentType())
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("docfold: decode response: %w", err)
	}
	return nil
}

// postJSON posts a JSON body and returns the raw response bytes.
func (c *Client) postJSON(ctx context.Context, path string, body any) ([]byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("docfold: marshal request: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(data), "application/json")
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("docfold: read response: %w", err)
	}
	return raw, nil
}

// del issues a DELETE. It reports true only when the service confirms the
// deletion with 204 No Content; any other success status reports false.
func (c *Client) del(ctx context.Context, path string) (bool, error) {
	req, err := c.newRequest(ctx, http.MethodDelete, c.endpoint+path, nil, "")
	if err != nil {
		return false, err
	}
	resp, err := c.do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusNoContent, nil
}
