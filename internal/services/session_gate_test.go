package services

import (
	"context"
	"testing"
	"time"

	"kalasangam_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionGate_States(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	gate := NewSessionGate(env.auth, env.profiles, env.bus)
	t.Cleanup(gate.Close)

	t.Run("no token", func(t *testing.T) {
		res, err := gate.Resolve(ctx, env.db, "")
		require.NoError(t, err)
		assert.Equal(t, StateUnauthenticated, res.State)
	})

	t.Run("invalid token", func(t *testing.T) {
		res, err := gate.Resolve(ctx, env.db, "garbage")
		require.NoError(t, err)
		assert.Equal(t, StateUnauthenticated, res.State)
	})

	session := env.signUp(t, "gate@example.com")

	t.Run("session without profile", func(t *testing.T) {
		res, err := gate.Resolve(ctx, env.db, session.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, StateOnboarding, res.State)
		assert.Equal(t, session.UserID, res.UserID)
		assert.Nil(t, res.Profile)
		assert.Zero(t, gate.Cached(), "Онбординг не кешируется")
	})

	t.Run("ready after onboarding", func(t *testing.T) {
		env.onboard(t, session.UserID, "Gate Keeper", "gatekeeper")

		res, err := gate.Resolve(ctx, env.db, session.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, StateReady, res.State)
		require.NotNil(t, res.Profile)
		assert.Equal(t, "gatekeeper", res.Profile.Username)

		resp := res.Response()
		assert.Equal(t, "ready", resp.State)
		assert.Equal(t, session.SessionID, resp.SessionID)

		assert.Eventually(t, func() bool {
			_, _ = gate.Resolve(ctx, env.db, session.AccessToken)
			return gate.Cached() == 1
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("profile update evicts cached result", func(t *testing.T) {
		_, err := env.profiles.Save(ctx, env.db, session.UserID, &dto.SpecsInput{StageName: "GK"}, &dto.PortfolioInput{})
		require.NoError(t, err)

		assert.Eventually(t, func() bool { return gate.Cached() == 0 }, time.Second, 10*time.Millisecond)

		res, err := gate.Resolve(ctx, env.db, session.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "GK", res.Profile.Specs().StageName)
	})

	t.Run("sign out evicts and unauthenticates", func(t *testing.T) {
		require.NoError(t, env.auth.SignOut(ctx, env.db, session.SessionID))

		assert.Eventually(t, func() bool { return gate.Cached() == 0 }, time.Second, 10*time.Millisecond)

		res, err := gate.Resolve(ctx, env.db, session.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, StateUnauthenticated, res.State)
	})
}

func TestShellService(t *testing.T) {
	env := newTestEnv(t)
	shell := NewShellService(env.bus)
	t.Cleanup(shell.Close)

	locked := shell.Current("s1", StateOnboarding)
	assert.Equal(t, string(ViewOnboarding), locked.View)
	assert.True(t, locked.Locked)
	assert.Equal(t, []string{"onboarding"}, locked.Available)

	_, err := shell.Set("s1", StateOnboarding, "projects")
	assert.Error(t, err, "До онбординга навигация закрыта")

	home := shell.Current("s1", StateReady)
	assert.Equal(t, string(ViewDashboard), home.View)
	assert.False(t, home.Locked)
	assert.Len(t, home.Available, len(navigableViews))

	view, err := shell.Set("s1", StateReady, "ai-coach")
	require.NoError(t, err)
	assert.Equal(t, "ai-coach", view.View)
	assert.Equal(t, "ai-coach", shell.Current("s1", StateReady).View)
	assert.Equal(t, "dashboard", shell.Current("s2", StateReady).View, "Экран хранится по сессии")

	_, err = shell.Set("s1", StateReady, "settings")
	assert.Error(t, err)
	_, err = shell.Set("s1", StateReady, "onboarding")
	assert.Error(t, err)
}
