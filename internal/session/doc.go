// Package session holds the authenticated state of the AcademyX client.
//
// A Manager is built once per process on top of a store.KV and injected into
// the request client. It stores exactly one credential pair under the
// "tokens" key (last write wins) plus the manager's active company under
// "activeCompany".
//
// When the request client decides a session cannot be recovered it calls
// End, which erases the pair and runs every callback registered with
// OnSessionExpired. The CLI uses that hook to tell the user to log in again.
//
// Inspect decodes the access token's claims without verifying them, which is
// enough to show who is logged in and when the token expires.
package session
