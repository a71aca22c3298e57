// ABOUTME: Tests for the session manager
// ABOUTME: Covers token persistence, idempotent saves, logout side effects, and active company

package session

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/academyx-admin/internal/store"
)

func newTestManager(t *testing.T) (*Manager, store.KV) {
	t.Helper()
	kv, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return NewManager(kv), kv
}

func TestManager_NoTokens(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	tokens, err := m.Tokens(ctx)
	require.NoError(t, err)
	assert.Nil(t, tokens)
	assert.False(t, m.LoggedIn(ctx))
}

func TestManager_SaveAndLoad(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.SaveTokens(ctx, Tokens{AccessToken: "A1", RefreshToken: "R1"}))

	tokens, err := m.Tokens(ctx)
	require.NoError(t, err)
	require.NotNil(t, tokens)
	assert.Equal(t, Tokens{AccessToken: "A1", RefreshToken: "R1"}, *tokens)
	assert.True(t, m.LoggedIn(ctx))
}

func TestManager_SaveSamePairIsStable(t *testing.T) {
	m, kv := newTestManager(t)
	ctx := context.Background()
	pair := Tokens{AccessToken: "A1", RefreshToken: "R1"}

	require.NoError(t, m.SaveTokens(ctx, pair))
	first, err := kv.Get(ctx, TokensKey)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, m.SaveTokens(ctx, pair))
	}
	second, err := kv.Get(ctx, TokensKey)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	tokens, err := m.Tokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, pair, *tokens)
}

func TestManager_SaveRequiresAccessToken(t *testing.T) {
	m, _ := newTestManager(t)
	assert.Error(t, m.SaveTokens(context.Background(), Tokens{RefreshToken: "R1"}))
}

func TestManager_CorruptTokens(t *testing.T) {
	m, kv := newTestManager(t)
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, TokensKey, "{not json"))

	_, err := m.Tokens(ctx)
	assert.Error(t, err)
	assert.False(t, m.LoggedIn(ctx))
}

func TestManager_EndClearsAndNotifies(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()
	require.NoError(t, m.SaveTokens(ctx, Tokens{AccessToken: "A1", RefreshToken: "R1"}))

	reason := errors.New("refresh rejected")
	var got []error
	m.OnSessionExpired(func(r error) { got = append(got, r) })
	m.OnSessionExpired(func(r error) { got = append(got, r) })

	require.NoError(t, m.End(ctx, reason))

	assert.Equal(t, []error{reason, reason}, got)
	assert.False(t, m.LoggedIn(ctx))
}

func TestManager_EndWithoutTokens(t *testing.T) {
	m, _ := newTestManager(t)
	called := false
	m.OnSessionExpired(func(error) { called = true })

	require.NoError(t, m.End(context.Background(), nil))
	assert.True(t, called)
}

func TestManager_LogoutDoesNotNotify(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()
	require.NoError(t, m.SaveTokens(ctx, Tokens{AccessToken: "A1", RefreshToken: "R1"}))
	require.NoError(t, m.SetActiveCompany(ctx, "company-1"))

	m.OnSessionExpired(func(error) { t.Error("logout must not fire expiry listeners") })

	require.NoError(t, m.Logout(ctx))
	assert.False(t, m.LoggedIn(ctx))

	company, err := m.ActiveCompany(ctx)
	require.NoError(t, err)
	assert.Empty(t, company)
}

func TestManager_ActiveCompany(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	company, err := m.ActiveCompany(ctx)
	require.NoError(t, err)
	assert.Empty(t, company)

	require.NoError(t, m.SetActiveCompany(ctx, "company-42"))
	company, err = m.ActiveCompany(ctx)
	require.NoError(t, err)
	assert.Equal(t, "company-42", company)
}

func TestManager_ConcurrentSavesLastWriteWins(t *testing.T) {
	m := NewManager(store.NewMemoryStore())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.SaveTokens(ctx, Tokens{AccessToken: "A", RefreshToken: "R"})
		}()
	}
	wg.Wait()

	tokens, err := m.Tokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A", tokens.AccessToken)
}

func TestManager_TokensSavedAt(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	saved, err := m.TokensSavedAt(ctx)
	require.NoError(t, err)
	assert.True(t, saved.IsZero())

	before := time.Now().Add(-time.Second)
	require.NoError(t, m.SaveTokens(ctx, Tokens{AccessToken: "A1", RefreshToken: "R1"}))

	saved, err = m.TokensSavedAt(ctx)
	require.NoError(t, err)
	assert.False(t, saved.Before(before.Truncate(time.Second)), "saved at %v", saved)
}

func TestManager_TokensSavedAt_MemoryStore(t *testing.T) {
	m := NewManager(store.NewMemoryStore())
	ctx := context.Background()
	require.NoError(t, m.SaveTokens(ctx, Tokens{AccessToken: "A1"}))

	saved, err := m.TokensSavedAt(ctx)
	require.NoError(t, err)
	assert.True(t, saved.IsZero())
}
