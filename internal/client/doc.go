// Package client implements the authenticated HTTP client for the AcademyX API.
//
// # Overview
//
// Every call goes through Client.Do with an immutable Request. The client reads
// the current credential pair from its Session, sends the access token as
// "Authorization: Bearer <token>", and buffers the response.
//
// # Recovery Protocol
//
// A 401 on the first dispatch of a request starts exactly one recovery cycle:
//
//	INITIAL -> SENT -> 401 -> REFRESHING -> RETRY_SENT -> outcome
//
//   - No refresh token stored: the session is ended and ErrSessionExpired is
//     returned. No refresh call is made.
//   - POST /auth/refresh-token {"refreshToken": ...} answers 200 with a new
//     pair: the pair is persisted and the request is replayed once with the
//     new access token. The replay's outcome is returned as is.
//   - The refresh call fails (transport error or any non-200): the session is
//     ended and a *SessionExpiredError wrapping the refresh failure is returned.
//
// A 401 on the replay is returned to the caller; there is never a second
// refresh for the same request. Every other status passes straight through as
// an *HTTPError without touching the stored credentials.
//
// # Errors
//
//   - *NetworkError: no response was received
//   - *HTTPError: a non-2xx response (inspect StatusCode and Body)
//   - ErrSessionExpired: matched by errors.Is for both expiry cases
//
// # Concurrent Refresh
//
// With Options.CoalesceRefresh set, concurrent 401s share a single in-flight
// refresh call, and a request whose token was already rotated by another
// goroutine replays with the stored token without refreshing. Without it each
// request refreshes on its own and the last pair written wins.
//
// # Usage
//
//	c, err := client.New("https://api.academyx.example", sessionManager, client.Options{
//	    CoalesceRefresh: true,
//	})
//	resp, err := c.Do(ctx, client.Request{Method: http.MethodGet, Path: "admin/surveys/all"})
package client
