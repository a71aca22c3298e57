// ABOUTME: Unverified JWT inspection for the stored access token
// ABOUTME: Extracts subject, role, company and expiry so the CLI can describe the session

package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken is returned when an access token is not a decodable JWT.
var ErrMalformedToken = errors.New("malformed token")

// Claims are the access token claims the backend issues.
type Claims struct {
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	CompanyID string `json:"companyId,omitempty"`
	jwt.RegisteredClaims
}

// Inspect decodes the claims of an access token without verifying its
// signature. The client never holds the signing key; this is for display
// only and must not be used for authorization decisions.
func Inspect(accessToken string) (*Claims, error) {
	if accessToken == "" {
		return nil, ErrMalformedToken
	}

	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, &claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	return &claims, nil
}

// Expiry returns the exp claim, or the zero time if the token has none.
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// Expired reports whether the token is past its exp claim at now.
// Tokens without exp never expire.
func (c *Claims) Expired(now time.Time) bool {
	exp := c.Expiry()
	return !exp.IsZero() && !now.Before(exp)
}
