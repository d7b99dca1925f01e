package main

import (
	"context"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendy-app/spendy/internal/common"
	"github.com/spendy-app/spendy/internal/model"
	"github.com/spendy-app/spendy/internal/testutil"
)

func TestRequireUser(t *testing.T) {
	ctx := context.Background()

	t.Run("nobody logged in yields a user-facing error", func(t *testing.T) {
		store := testutil.SetupTestDB(t)

		_, err := requireUser(ctx, store)
		require.Error(t, err)

		var userErr *common.UserError
		require.ErrorAs(t, err, &userErr)
		assert.Contains(t, userErr.UserMessage, "로그인이 필요합니다")
	})

	t.Run("returns the logged-in user", func(t *testing.T) {
		store := testutil.SetupTestDB(t)
		require.NoError(t, store.SetCurrentUser(ctx, model.User{ID: "secret-1", Nickname: "앨리스"}))

		user, err := requireUser(ctx, store)
		require.NoError(t, err)
		assert.Equal(t, "secret-1", user.ID)
		assert.Equal(t, "앨리스", user.Nickname)
	})
}

func TestInitConfig(t *testing.T) {
	t.Run("defaults succeed without a config file", func(t *testing.T) {
		require.NoError(t, initConfig(nil, nil))
	})

	t.Run("invalid log level is rejected", func(t *testing.T) {
		viper.Set("logging.level", "noisy")
		t.Cleanup(func() { viper.Set("logging.level", "info") })

		err := initConfig(nil, nil)
		assert.ErrorContains(t, err, "invalid log level")
	})
}
