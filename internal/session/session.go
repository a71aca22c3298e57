// ABOUTME: Session holder persisting the credential pair and active company in a KV store
// ABOUTME: Owns the logout side effect and notifies listeners when a session ends

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/2389/academyx-admin/internal/store"
)

// Fixed storage keys.
const (
	TokensKey        = "tokens"
	ActiveCompanyKey = "activeCompany"
)

// Tokens is the credential pair issued by sign-in and refresh.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// ExpiredFunc is called after a session has been ended.
type ExpiredFunc func(reason error)

// Manager is the process-wide session state holder. It is safe for
// concurrent use.
type Manager struct {
	kv     store.KV
	logger *slog.Logger

	mu        sync.RWMutex
	listeners []ExpiredFunc
}

// NewManager creates a Manager on top of kv.
func NewManager(kv store.KV) *Manager {
	return &Manager{
		kv:     kv,
		logger: slog.Default().With("component", "session"),
	}
}

// Tokens returns the stored credential pair, or nil if there is none.
func (m *Manager) Tokens(ctx context.Context) (*Tokens, error) {
	raw, err := m.kv.Get(ctx, TokensKey)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading tokens: %w", err)
	}

	var t Tokens
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return nil, fmt.Errorf("decoding tokens: %w", err)
	}
	return &t, nil
}

// SaveTokens persists t, replacing any previous pair.
func (m *Manager) SaveTokens(ctx context.Context, t Tokens) error {
	if t.AccessToken == "" {
		return errors.New("access token is required")
	}

	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encoding tokens: %w", err)
	}
	if err := m.kv.Set(ctx, TokensKey, string(data)); err != nil {
		return fmt.Errorf("saving tokens: %w", err)
	}
	return nil
}

// TokensSavedAt returns when the credential pair was last written, by sign-in
// or refresh. It returns the zero time when no pair is stored or the store
// keeps no timestamps.
func (m *Manager) TokensSavedAt(ctx context.Context) (time.Time, error) {
	ts, ok := m.kv.(store.Timestamper)
	if !ok {
		return time.Time{}, nil
	}
	t, err := ts.UpdatedAt(ctx, TokensKey)
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, errors.ErrUnsupported) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("loading token timestamp: %w", err)
	}
	return t, nil
}

// ClearTokens removes the stored credential pair.
func (m *Manager) ClearTokens(ctx context.Context) error {
	if err := m.kv.Delete(ctx, TokensKey); err != nil {
		return fmt.Errorf("clearing tokens: %w", err)
	}
	return nil
}

// LoggedIn reports whether a credential pair is stored.
func (m *Manager) LoggedIn(ctx context.Context) bool {
	t, err := m.Tokens(ctx)
	return err == nil && t != nil
}

// OnSessionExpired registers fn to run every time End is called.
func (m *Manager) OnSessionExpired(fn ExpiredFunc) {
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

// End is the logout side effect for an irrecoverable authentication
// failure: it erases the stored credentials and notifies every listener.
// Listeners run even if erasing fails.
func (m *Manager) End(ctx context.Context, reason error) error {
	err := m.ClearTokens(ctx)

	m.logger.Info("session ended", "reason", reason)

	m.mu.RLock()
	listeners := make([]ExpiredFunc, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.RUnlock()

	for _, fn := range listeners {
		fn(reason)
	}
	return err
}

// Logout is a user-initiated sign out. It clears the credentials and the
// active company without firing expiry listeners.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.ClearTokens(ctx); err != nil {
		return err
	}
	if err := m.kv.Delete(ctx, ActiveCompanyKey); err != nil {
		return fmt.Errorf("clearing active company: %w", err)
	}
	return nil
}

// SetActiveCompany records the company a manager is working in.
func (m *Manager) SetActiveCompany(ctx context.Context, companyID string) error {
	if err := m.kv.Set(ctx, ActiveCompanyKey, companyID); err != nil {
		return fmt.Errorf("saving active company: %w", err)
	}
	return nil
}

// ActiveCompany returns the active company id, or "" if none is set.
func (m *Manager) ActiveCompany(ctx context.Context) (string, error) {
	id, err := m.kv.Get(ctx, ActiveCompanyKey)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("loading active company: %w", err)
	}
	return id, nil
}
