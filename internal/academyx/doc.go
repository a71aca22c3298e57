// Package academyx provides typed access to the AcademyX REST API.
//
// API wraps a client.Client and a session.Manager. Auth endpoints (sign-in,
// sign-up, password reset) are sent without credentials; everything else goes
// through the client's bearer and refresh handling.
//
// Manager-scope calls take an optional company id and fall back to the
// session's active company, which SignIn sets from the signed-in user.
package academyx
