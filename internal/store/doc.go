// Package store provides the persistent key/value storage behind the client session.
//
// # Architecture
//
// Everything the client keeps between runs is a string under a fixed key:
//
//   - "tokens": the JSON credential pair {accessToken, refreshToken}
//   - "activeCompany": the company a manager is currently working in
//
// The KV interface is deliberately small so the session layer can run on any
// of the implementations below.
//
// # Implementations
//
//   - SQLiteStore: a single kv table in a SQLite file. Open accepts either the
//     pure-Go modernc driver ("sqlite", the default) or the cgo mattn driver
//     ("sqlite3").
//   - MemoryStore: process memory only, used by tests and by the "memory"
//     session driver.
//   - Sealed: wraps another KV and encrypts values with NaCl secretbox. The
//     key is derived from a passphrase with Argon2id; the random salt lives
//     in the inner store under "sealSalt".
//
// # Usage
//
//	kv, err := store.Open(store.DriverSQLite, "~/.config/academyx/session.db")
//	if err != nil {
//	    return err
//	}
//	defer kv.Close()
//
//	sealed, err := store.NewSealed(ctx, kv, os.Getenv("ACADEMYX_SESSION_KEY"))
package store
