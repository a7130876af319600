// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/media-ranker/clock"
	"github.com/danielhkuo/media-ranker/store"
	"github.com/danielhkuo/media-ranker/testutil"
	"github.com/danielhkuo/media-ranker/validate"
)

func setupGate(t *testing.T) (*Gate, *store.Store, *clock.Fixed) {
	t.Helper()
	s, clk := testutil.SetupTestStore(t)
	return NewGate(s, clk, validate.New(clk), time.Hour), s, clk
}

func TestLoginOrRegister_NewUser(t *testing.T) {
	gate, _, clk := setupGate(t)
	ctx := context.Background()

	user, token, isNew, err := gate.LoginOrRegister(ctx, "  alice ")
	require.NoError(t, err)

	assert.True(t, isNew)
	assert.Equal(t, "alice", user.Name)
	assert.Equal(t, clock.Today(clk), user.JoinDate.UTC())
	assert.NoError(t, ValidateTokenFormat(token))

	current, err := gate.ResolveCurrentUser(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, user.ID, current.ID)
}

func TestLoginOrRegister_ExistingUser(t *testing.T) {
	gate, _, _ := setupGate(t)
	ctx := context.Background()

	first, token1, _, err := gate.LoginOrRegister(ctx, "bob")
	require.NoError(t, err)

	second, token2, isNew, err := gate.LoginOrRegister(ctx, "bob")
	require.NoError(t, err)

	assert.False(t, isNew)
	assert.Equal(t, first.ID, second.ID)
	assert.NotEqual(t, token1, token2, "each login gets its own session")
}

func TestLoginOrRegister_EarliestUserWins(t *testing.T) {
	gate, s, clk := setupGate(t)
	ctx := context.Background()

	older := testutil.CreateTestUser(t, s, clk, "carol")
	clk.Advance(time.Minute)
	testutil.CreateTestUser(t, s, clk, "carol")

	user, _, isNew, err := gate.LoginOrRegister(ctx, "carol")
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, older.ID, user.ID)
}

func TestLoginOrRegister_BlankName(t *testing.T) {
	gate, s, _ := setupGate(t)
	ctx := context.Background()

	_, _, _, err := gate.LoginOrRegister(ctx, "   ")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidName)

	var verrs validate.Errors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("name"))

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users, "no user created for a blank name")
}

func TestResolveCurrentUser(t *testing.T) {
	gate, s, clk := setupGate(t)
	ctx := context.Background()

	user, token, _, err := gate.LoginOrRegister(ctx, "dana")
	require.NoError(t, err)

	t.Run("empty token", func(t *testing.T) {
		got, err := gate.ResolveCurrentUser(ctx, "")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("malformed token", func(t *testing.T) {
		got, err := gate.ResolveCurrentUser(ctx, "not-a-token")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("unknown token", func(t *testing.T) {
		other, _ := GenerateSessionToken()
		got, err := gate.ResolveCurrentUser(ctx, other)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("live token", func(t *testing.T) {
		got, err := gate.ResolveCurrentUser(ctx, token)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("expired token", func(t *testing.T) {
		clk.Advance(time.Hour)
		got, err := gate.ResolveCurrentUser(ctx, token)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("deleted user", func(t *testing.T) {
		_, token, _, err := gate.LoginOrRegister(ctx, "erin")
		require.NoError(t, err)
		erin, err := s.FindUserByName(ctx, "erin")
		require.NoError(t, err)
		require.NoError(t, s.DeleteUser(ctx, erin.ID))

		got, err := gate.ResolveCurrentUser(ctx, token)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestRequireLogin(t *testing.T) {
	gate, _, _ := setupGate(t)
	ctx := context.Background()

	_, err := gate.RequireLogin(ctx, "")
	assert.True(t, errors.Is(err, ErrNotAuthenticated))

	_, token, _, err := gate.LoginOrRegister(ctx, "frank")
	require.NoError(t, err)

	user, err := gate.RequireLogin(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "frank", user.Name)
}

func TestLogout(t *testing.T) {
	gate, _, _ := setupGate(t)
	ctx := context.Background()

	_, token, _, err := gate.LoginOrRegister(ctx, "gina")
	require.NoError(t, err)

	existed, err := gate.Logout(ctx, token)
	require.NoError(t, err)
	assert.True(t, existed)

	got, err := gate.ResolveCurrentUser(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, got, "token no longer resolves after logout")

	existed, err = gate.Logout(ctx, token)
	require.NoError(t, err)
	assert.False(t, existed, "second logout reports no session")

	existed, err = gate.Logout(ctx, "")
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestLogout_ExpiredSession(t *testing.T) {
	gate, s, clk := setupGate(t)
	ctx := context.Background()

	_, token, _, err := gate.LoginOrRegister(ctx, "zed")
	require.NoError(t, err)

	clk.Advance(2 * time.Hour)

	got, err := gate.ResolveCurrentUser(ctx, token)
	require.NoError(t, err)
	require.Nil(t, got)

	existed, err := gate.Logout(ctx, token)
	require.NoError(t, err)
	assert.False(t, existed, "an expired session is not a live one")

	_, err = s.GetSession(ctx, HashToken(token))
	assert.ErrorIs(t, err, store.ErrSessionNotFound, "the expired row is still removed")
}

func TestLoginOrRegister_UsesGivenValidator(t *testing.T) {
	s, clk := testutil.SetupTestStore(t)
	ctx := context.Background()

	// The validator's clock decides the join date, not the gate's.
	vclk := clock.NewFixed(time.Date(2030, 1, 2, 9, 0, 0, 0, time.UTC))
	v := validate.New(vclk)
	gate := NewGate(s, clk, v, time.Hour)
	assert.Same(t, v, gate.validator)

	user, _, isNew, err := gate.LoginOrRegister(ctx, "hana")
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, clock.Today(vclk), user.JoinDate.UTC())
}

func TestLoginPrunesExpiredSessions(t *testing.T) {
	gate, s, clk := setupGate(t)
	ctx := context.Background()

	_, stale, _, err := gate.LoginOrRegister(ctx, "hal")
	require.NoError(t, err)

	clk.Advance(2 * time.Hour)
	_, _, _, err = gate.LoginOrRegister(ctx, "hal")
	require.NoError(t, err)

	_, err = s.GetSession(ctx, HashToken(stale))
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}
