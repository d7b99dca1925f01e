package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendy-app/spendy/internal/model"
)

func TestCurrentUser(t *testing.T) {
	ctx := context.Background()

	t.Run("nobody logged in initially", func(t *testing.T) {
		store := newTestStore(t)

		user, err := store.GetCurrentUser(ctx)
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("set and get round trip", func(t *testing.T) {
		store := newTestStore(t)

		require.NoError(t, store.SetCurrentUser(ctx, model.User{ID: "secret-1", Nickname: "앨리스"}))

		user, err := store.GetCurrentUser(ctx)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "secret-1", user.ID)
		assert.Equal(t, "앨리스", user.Nickname)
	})

	t.Run("logging in replaces the previous user", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.SetCurrentUser(ctx, model.User{ID: "secret-1", Nickname: "앨리스"}))
		require.NoError(t, store.SetCurrentUser(ctx, model.User{ID: "secret-2", Nickname: "밥"}))

		user, err := store.GetCurrentUser(ctx)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "밥", user.Nickname)
	})

	t.Run("clear logs out", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.SetCurrentUser(ctx, model.User{ID: "secret-1", Nickname: "앨리스"}))

		require.NoError(t, store.ClearCurrentUser(ctx))

		user, err := store.GetCurrentUser(ctx)
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("clearing an empty session is a no-op", func(t *testing.T) {
		store := newTestStore(t)
		assert.NoError(t, store.ClearCurrentUser(ctx))
	})

	t.Run("rejects user without id", func(t *testing.T) {
		store := newTestStore(t)
		err := store.SetCurrentUser(ctx, model.User{Nickname: "앨리스"})
		assert.ErrorIs(t, err, ErrEmptyString)
	})
}
