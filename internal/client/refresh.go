// ABOUTME: Access token refresh cycle run after a 401
// ABOUTME: Exchanges the stored refresh token, persists the new pair, or ends the session

package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/2389/academyx-admin/internal/session"
)

// refreshRequest is the JSON body sent to the refresh endpoint.
type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// refresh obtains a new access token after rejectedBearer drew a 401.
// It returns the token to replay the request with.
func (c *Client) refresh(ctx context.Context, rejectedBearer string) (string, error) {
	tokens, err := c.session.Tokens(ctx)
	if err != nil {
		return "", fmt.Errorf("reading credentials: %w", err)
	}
	if tokens == nil || tokens.RefreshToken == "" {
		c.logger.Warn("got 401 with no refresh token stored")
		c.expire(ctx, ErrSessionExpired)
		return "", ErrSessionExpired
	}

	if !c.coalesce {
		return c.refreshCycle(ctx, tokens.RefreshToken)
	}

	// Another request already rotated the pair while ours was in flight.
	if rejectedBearer != "" && tokens.AccessToken != rejectedBearer {
		c.logger.Debug("access token already refreshed, replaying with stored token")
		return tokens.AccessToken, nil
	}

	// The shared call must not die with whichever caller happened to start it.
	shared := context.WithoutCancel(ctx)
	ch := c.refreshes.DoChan(tokens.RefreshToken, func() (any, error) {
		return c.refreshCycle(shared, tokens.RefreshToken)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// refreshCycle calls the refresh endpoint once and applies the outcome:
// persist the new pair, or end the session.
func (c *Client) refreshCycle(ctx context.Context, refreshToken string) (string, error) {
	pair, err := c.exchange(ctx, refreshToken)
	if err != nil {
		// The caller gave up; that says nothing about the refresh token.
		if ctx.Err() != nil {
			return "", err
		}
		c.logger.Warn("token refresh failed", "error", err)
		expired := &SessionExpiredError{Cause: err}
		c.expire(ctx, expired)
		return "", expired
	}

	if pair.RefreshToken == "" {
		pair.RefreshToken = refreshToken
	}

	if err := c.session.SaveTokens(ctx, *pair); err != nil {
		// The replay can still go out with the new token we hold.
		c.logger.Error("persisting refreshed tokens", "error", err)
	}
	c.setDefaultBearer(pair.AccessToken)

	c.logger.Debug("access token refreshed")
	return pair.AccessToken, nil
}

// exchange posts the refresh token and returns the pair from a 200 response.
// Any other status is a failure.
func (c *Client) exchange(ctx context.Context, refreshToken string) (*session.Tokens, error) {
	req := Request{
		Method: http.MethodPost,
		Path:   c.refreshPath,
		Public: true,
	}
	body, err := encodeBody(refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, err
	}

	resp, err := c.dispatch(ctx, req, body, "", 1)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{
			Method:     req.Method,
			Path:       req.Path,
			StatusCode: resp.StatusCode,
			Body:       resp.Body,
		}
	}

	var pair session.Tokens
	if err := resp.Decode(&pair); err != nil {
		return nil, err
	}
	if pair.AccessToken == "" {
		return nil, errors.New("refresh response has no access token")
	}
	return &pair, nil
}

// expire runs the logout side effect.
func (c *Client) expire(ctx context.Context, reason error) {
	c.setDefaultBearer("")
	if err := c.session.End(context.WithoutCancel(ctx), reason); err != nil {
		c.logger.Error("clearing credentials", "error", err)
	}
}
