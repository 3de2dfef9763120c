package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Response is an upstream reply with its body fully read.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// NewJSONRequest creates a request carrying payload as a JSON body.
func NewJSONRequest(ctx context.Context, method, url string, payload interface{}) (*http.Request, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// Do sends req once and reads the whole reply. Transport failures are
// returned as *UnavailableError without a status code.
func Do(client *http.Client, source string, req *http.Request) (*Response, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, &UnavailableError{Source: source, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UnavailableError{
			Source:     source,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to read response body: %w", err),
		}
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// Classify checks a raw body before any schema decoding, in priority order:
// blank, HTML page, not JSON. A nil return means the body is valid JSON.
func Classify(source string, body []byte) error {
	trimmed := bytes.TrimSpace(body)
	switch {
	case len(trimmed) == 0:
		return &ClassificationError{Source: source, Kind: ErrEmptyResponse}
	case trimmed[0] == '<':
		return &ClassificationError{Source: source, Kind: ErrHTMLResponse, Body: string(trimmed)}
	case !json.Valid(trimmed):
		return &ClassificationError{Source: source, Kind: ErrMalformedJSON, Body: string(trimmed)}
	}
	return nil
}

// Decode turns resp into v. A non-2xx reply with a body is an
// *UnavailableError carrying the status; everything else goes through
// Classify before unmarshalling.
func Decode(source string, resp *Response, v interface{}) error {
	trimmed := bytes.TrimSpace(resp.Body)
	if !resp.OK() && len(trimmed) > 0 {
		return &UnavailableError{Source: source, StatusCode: resp.StatusCode, Body: string(trimmed)}
	}

	if err := Classify(source, trimmed); err != nil {
		return err
	}

	if err := json.Unmarshal(trimmed, v); err != nil {
		return &ClassificationError{Source: source, Kind: ErrMalformedJSON, Body: string(trimmed), Err: err}
	}
	return nil
}
