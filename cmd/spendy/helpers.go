package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/spendy-app/spendy/internal/common"
	"github.com/spendy-app/spendy/internal/config"
	"github.com/spendy-app/spendy/internal/directory"
	"github.com/spendy-app/spendy/internal/gemini"
	"github.com/spendy-app/spendy/internal/model"
	"github.com/spendy-app/spendy/internal/storage"
)

// initStorage initializes the snapshot store with proper path expansion.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/spendy/spendy.db"
	}

	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// requireUser returns the logged-in user or a user-facing error.
func requireUser(ctx context.Context, store *storage.SQLiteStorage) (*model.User, error) {
	user, err := store.GetCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, common.NewUserError("로그인이 필요합니다. 'spendy auth login' 을 먼저 실행해주세요.", nil)
	}
	return user, nil
}

// initGemini builds the Gemini client from configuration.
func initGemini() (*gemini.Client, error) {
	return gemini.NewClient(gemini.Config{
		APIKey:     viper.GetString("gemini.api_key"),
		BaseURL:    viper.GetString("gemini.base_url"),
		TextModel:  viper.GetString("gemini.text_model"),
		ImageModel: viper.GetString("gemini.image_model"),
	}, slog.Default().With("component", "gemini"))
}

// initDirectory builds the sheets-backed user directory from configuration.
func initDirectory(ctx context.Context) (*directory.Directory, error) {
	return directory.NewDirectory(ctx, directory.Config{
		SpreadsheetID:   viper.GetString("directory.spreadsheet_id"),
		CredentialsFile: config.ExpandPath(viper.GetString("directory.credentials_file")),
		SheetName:       viper.GetString("directory.sheet_name"),
		RetryAttempts:   3,
		RetryDelay:      time.Second,
	}, slog.Default().With("component", "directory"))
}
