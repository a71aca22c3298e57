// ABOUTME: Authenticated HTTP client for the AcademyX REST API
// ABOUTME: Attaches bearer credentials and bounds 401 recovery to one refresh and one replay

package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/2389/academyx-admin/internal/session"
)

// DefaultRefreshPath is the backend's token refresh endpoint.
const DefaultRefreshPath = "/auth/refresh-token"

// maxAttempts bounds dispatches per logical request: the original plus one
// replay after a refresh.
const maxAttempts = 2

// maxBodyBytes caps how much of a response body is read into memory.
const maxBodyBytes = 10 << 20

// Session is the credential holder the client reads from and reports to.
// *session.Manager implements it.
type Session interface {
	Tokens(ctx context.Context) (*session.Tokens, error)
	SaveTokens(ctx context.Context, t session.Tokens) error
	End(ctx context.Context, reason error) error
}

// Options tune a Client. The zero value is usable.
type Options struct {
	// HTTPClient performs the requests. Defaults to a client with a 30s timeout.
	HTTPClient *http.Client

	UserAgent string

	// RefreshPath overrides DefaultRefreshPath.
	RefreshPath string

	// CoalesceRefresh makes concurrent 401s share one in-flight refresh call
	// instead of each firing their own.
	CoalesceRefresh bool

	Logger *slog.Logger
}

// Client sends requests relative to a base URL. It is safe for concurrent use.
type Client struct {
	baseURL     *url.URL
	http        *http.Client
	session     Session
	refreshPath string
	coalesce    bool
	logger      *slog.Logger

	refreshes singleflight.Group

	mu            sync.RWMutex
	defaultHeader http.Header
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, sess Session, opts Options) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must use http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q has no host", baseURL)
	}
	if sess == nil {
		return nil, errors.New("session is required")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	refreshPath := opts.RefreshPath
	if refreshPath == "" {
		refreshPath = DefaultRefreshPath
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	header := make(http.Header)
	header.Set("Accept", "application/json")
	if opts.UserAgent != "" {
		header.Set("User-Agent", opts.UserAgent)
	}

	return &Client{
		baseURL:       u,
		http:          httpClient,
		session:       sess,
		refreshPath:   refreshPath,
		coalesce:      opts.CoalesceRefresh,
		logger:        logger.With("component", "client"),
		defaultHeader: header,
	}, nil
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Do sends req and returns its 2xx response.
//
// The stored access token, if any, is sent as a bearer credential. A 401 on
// the first dispatch triggers one refresh; on success the request is
// replayed once with the new token and that outcome is returned as is, even
// if it is another 401. If no refresh token is stored, or the refresh call
// fails, the session is ended and the error matches ErrSessionExpired.
//
// Other failures come back as *HTTPError or *NetworkError.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	body, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	if req.Public {
		return c.dispatch(ctx, req, body, "", 1)
	}

	bearer, err := c.storedAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		resp, err := c.dispatch(ctx, req, body, bearer, attempt)
		if !isUnauthorized(err) {
			return resp, err
		}
		if attempt >= maxAttempts {
			c.logger.Debug("replay rejected, not refreshing again", "method", req.Method, "path", req.Path)
			return nil, err
		}

		bearer, err = c.refresh(ctx, bearer)
		if err != nil {
			return nil, err
		}
	}
}

// storedAccessToken returns the persisted access token, or "" when logged out.
func (c *Client) storedAccessToken(ctx context.Context) (string, error) {
	tokens, err := c.session.Tokens(ctx)
	if err != nil {
		return "", fmt.Errorf("reading credentials: %w", err)
	}
	if tokens == nil {
		return "", nil
	}
	return tokens.AccessToken, nil
}

// dispatch performs a single HTTP round trip. Non-2xx statuses become
// *HTTPError, transport failures *NetworkError.
func (c *Client) dispatch(ctx context.Context, req Request, body []byte, bearer string, attempt int) (*Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	target := c.resolve(req.Path, req.Query)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	hreq, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	c.mu.RLock()
	hreq.Header = c.defaultHeader.Clone()
	c.mu.RUnlock()

	for k, vs := range req.Header {
		hreq.Header[k] = append([]string(nil), vs...)
	}
	if body != nil && hreq.Header.Get("Content-Type") == "" {
		hreq.Header.Set("Content-Type", "application/json")
	}
	// The store is the only source of credentials: with no stored token the
	// request goes out bare, whatever the default header last held.
	if bearer != "" && !req.Public {
		hreq.Header.Set("Authorization", "Bearer "+bearer)
	} else {
		hreq.Header.Del("Authorization")
	}
	hreq.Header.Set("X-Request-ID", uuid.NewString())

	start := time.Now()
	resp, err := c.http.Do(hreq)
	if err != nil {
		return nil, &NetworkError{Method: method, Path: req.Path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &NetworkError{Method: method, Path: req.Path, Err: fmt.Errorf("reading body: %w", err)}
	}

	c.logger.Debug("request completed",
		"method", method,
		"path", req.Path,
		"status", resp.StatusCode,
		"attempt", attempt,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{
			Method:     method,
			Path:       req.Path,
			StatusCode: resp.StatusCode,
			Body:       data,
		}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

// resolve joins path onto the base URL. Leading slashes are ignored so
// "admin/surveys" and "/admin/surveys" reach the same endpoint.
func (c *Client) resolve(path string, query url.Values) string {
	u := c.baseURL.JoinPath(strings.TrimLeft(path, "/"))
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// setDefaultBearer records the credential issued by the last refresh on the
// default header. dispatch always overrides it with the stored token or
// strips it, so it never authenticates a request on its own. An empty token
// removes it.
func (c *Client) setDefaultBearer(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token == "" {
		c.defaultHeader.Del("Authorization")
		return
	}
	c.defaultHeader.Set("Authorization", "Bearer "+token)
}
