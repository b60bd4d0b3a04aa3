package acquiring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const maxResponseSize = 1 << 20

var ErrInvalidResponse = errors.New("response is not valid JSON")

// Transport delivers a signed request body and returns the raw response body.
type Transport interface {
	Post(ctx context.Context, method Method, body []byte) ([]byte, error)
}

// TransportError reports a non-2xx HTTP status whose body is not JSON.
// JSON bodies are returned to the caller whatever the status.
type TransportError struct {
	Method     Method
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d with non-JSON body", e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return ErrInvalidResponse
}

type HTTPTransport struct {
	baseURL string
	client  *http.Client
}

func NewHTTPTransport(baseURL string, client *http.Client) *HTTPTransport {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{baseURL: baseURL, client: client}
}

func (t *HTTPTransport) Post(ctx context.Context, method Method, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+string(method), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if json.Valid(data) {
		return data, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{Method: method, StatusCode: resp.StatusCode, Body: string(data)}
	}
	return nil, ErrInvalidResponse
}
