// ABOUTME: Immutable request descriptor and buffered response types
// ABOUTME: Bodies are encoded once so a request can be replayed byte-for-byte after a refresh

package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Request describes one logical API call. It is a value: the client never
// mutates it, so the same Request can be dispatched again after a refresh.
type Request struct {
	Method string
	// Path is resolved against the client's base URL. A leading slash is
	// optional.
	Path   string
	Query  url.Values
	Header http.Header

	// Body is sent as JSON unless it is a []byte or json.RawMessage, which
	// are sent as is. nil means no body.
	Body any

	// Public requests go out without credentials and never enter the 401
	// recovery cycle. Sign-in and password reset endpoints use this.
	Public bool
}

// Response is a fully read 2xx response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the JSON body into v. An empty body leaves v untouched.
func (r *Response) Decode(v any) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// encodeBody turns Request.Body into bytes.
func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case json.RawMessage:
		return b, nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		return data, nil
	}
}
