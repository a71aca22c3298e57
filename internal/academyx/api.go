// ABOUTME: Typed AcademyX API over the authenticated client
// ABOUTME: Shared call helpers and id validation used by every resource file

package academyx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/2389/academyx-admin/internal/client"
	"github.com/2389/academyx-admin/internal/session"
)

// ErrMissingID is returned when a call needs an id and none was given.
var ErrMissingID = errors.New("missing id")

// ErrNoActiveCompany is returned by manager-scope calls when no company id is
// given and the session has no active company.
var ErrNoActiveCompany = errors.New("no active company; pass a company id or sign in as a company admin")

// Doer is the subset of *client.Client the API needs.
type Doer interface {
	Do(ctx context.Context, req client.Request) (*client.Response, error)
}

// API exposes the AcademyX endpoints.
type API struct {
	client  Doer
	session *session.Manager
}

// New creates an API. sess receives the tokens returned by SignIn and holds
// the active company for manager-scope calls.
func New(c Doer, sess *session.Manager) *API {
	return &API{client: c, session: sess}
}

// call sends an authenticated request and decodes the response into out
// when out is non-nil.
func (a *API) call(ctx context.Context, method, path string, body, out any) error {
	return a.send(ctx, client.Request{Method: method, Path: path, Body: body}, out)
}

// public sends a request without credentials.
func (a *API) public(ctx context.Context, method, path string, body, out any) error {
	return a.send(ctx, client.Request{Method: method, Path: path, Body: body, Public: true}, out)
}

func (a *API) send(ctx context.Context, req client.Request, out any) error {
	resp, err := a.client.Do(ctx, req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return resp.Decode(out)
}

// get is call for GET requests.
func (a *API) get(ctx context.Context, path string, out any) error {
	return a.call(ctx, http.MethodGet, path, nil, out)
}

// segment validates and escapes an id for use in a path.
func segment(kind, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%s: %w", kind, ErrMissingID)
	}
	return url.PathEscape(id), nil
}

// companyOrActive returns companyID, or the session's active company when
// companyID is empty.
func (a *API) companyOrActive(ctx context.Context, companyID string) (string, error) {
	if strings.TrimSpace(companyID) != "" {
		return segment("company", companyID)
	}
	if a.session == nil {
		return "", ErrNoActiveCompany
	}
	active, err := a.session.ActiveCompany(ctx)
	if err != nil {
		return "", fmt.Errorf("reading active company: %w", err)
	}
	if active == "" {
		return "", ErrNoActiveCompany
	}
	return url.PathEscape(active), nil
}
