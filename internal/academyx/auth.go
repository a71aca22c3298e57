// ABOUTME: Unauthenticated auth endpoints: sign-in, sign-up and password reset
// ABOUTME: SignIn persists the returned token pair and the user's company

package academyx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// SignIn authenticates with email and password. The returned pair is saved to
// the session, and a company admin's company becomes the active company.
func (a *API) SignIn(ctx context.Context, email, password string) (*LoginResult, error) {
	var res LoginResult
	err := a.public(ctx, http.MethodPost, "/auth/sign-in", map[string]string{
		"email":    email,
		"password": password,
	}, &res)
	if err != nil {
		return nil, err
	}
	if res.Tokens.AccessToken == "" {
		return nil, errors.New("sign-in response has no access token")
	}

	if a.session != nil {
		if err := a.session.SaveTokens(ctx, res.Tokens); err != nil {
			return nil, fmt.Errorf("saving tokens: %w", err)
		}
		if res.User.Role == RoleCompanyAdmin && res.User.CompanyID != "" {
			if err := a.session.SetActiveCompany(ctx, res.User.CompanyID); err != nil {
				return nil, fmt.Errorf("saving active company: %w", err)
			}
		}
	}
	return &res, nil
}

// SignUp registers a new account.
func (a *API) SignUp(ctx context.Context, in SignUpInput) (Result, error) {
	var res Result
	if err := a.public(ctx, http.MethodPost, "/auth/sign-up", in, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// EmailExists reports whether an account with email is registered.
func (a *API) EmailExists(ctx context.Context, email string) (bool, error) {
	var res struct {
		Exists bool `json:"exists"`
	}
	if err := a.public(ctx, http.MethodPost, "/auth/check-email", map[string]string{"email": email}, &res); err != nil {
		return false, err
	}
	return res.Exists, nil
}

// ForgotPassword starts the reset flow and returns the verification code.
func (a *API) ForgotPassword(ctx context.Context, email string) (string, error) {
	var res struct {
		Result struct {
			Code string `json:"code"`
		} `json:"result"`
	}
	if err := a.public(ctx, http.MethodPost, "/auth/forgot-password", map[string]string{"email": email}, &res); err != nil {
		return "", err
	}
	return res.Result.Code, nil
}

// RequestPasswordReset mails a reset link to email.
func (a *API) RequestPasswordReset(ctx context.Context, email string) error {
	return a.public(ctx, http.MethodPost, "/auth/request-reset-password", map[string]string{"email": email}, nil)
}

// VerifyResetToken returns the email a reset token belongs to.
func (a *API) VerifyResetToken(ctx context.Context, token string) (string, error) {
	var res struct {
		Email string `json:"email"`
	}
	if err := a.public(ctx, http.MethodPost, "/auth/verify-reset-token", map[string]string{"token": token}, &res); err != nil {
		return "", err
	}
	return res.Email, nil
}

// ResetPassword sets a new password using a reset token.
func (a *API) ResetPassword(ctx context.Context, token, password string) error {
	return a.public(ctx, http.MethodPost, "/auth/reset-password", map[string]string{
		"token":    token,
		"password": password,
	}, nil)
}
