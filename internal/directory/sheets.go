// Package directory implements the user directory service on top of a
// Google Sheet with nickname and id columns.
package directory

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
	"unicode"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/spendy-app/spendy/internal/common"
	"github.com/spendy-app/spendy/internal/model"
	"github.com/spendy-app/spendy/internal/service"
)

// User-facing messages, shown verbatim by the CLI.
const (
	msgMissingInput     = "닉네임과 비밀번호를 모두 입력해주세요."
	msgNicknameTooLong  = "닉네임은 최대 13자까지만 가능합니다."
	msgBadSecret        = "비밀번호는 4~14자리의 영문과 숫자 조합이어야 합니다."
	msgNicknameTaken    = "이미 사용 중인 닉네임입니다."
	msgSignUpDone       = "회원가입이 완료되었습니다! 로그인해주세요."
	msgWrongCredentials = "닉네임이나 비밀번호가 틀렸습니다."
	msgLoginDone        = "로그인 성공!"
	msgNetworkFailure   = "네트워크 오류가 발생했습니다. 잠시 후 다시 시도해주세요."
)

const maxNicknameLen = 13

// Config holds configuration for the sheets-backed directory.
type Config struct {
	SpreadsheetID   string
	CredentialsFile string
	SheetName       string
	RetryAttempts   int
	RetryDelay      time.Duration
}

// Validate ensures all required fields are present.
func (c *Config) Validate() error {
	if c.SpreadsheetID == "" {
		return fmt.Errorf("%w: directory spreadsheet ID is required", common.ErrMissingConfig)
	}
	if c.CredentialsFile == "" {
		return fmt.Errorf("%w: directory credentials file is required", common.ErrMissingConfig)
	}
	return nil
}

// Directory implements service.UserDirectory against the Sheets API.
type Directory struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewDirectory creates a directory client from service-account credentials.
func NewDirectory(ctx context.Context, config Config, logger *slog.Logger) (*Directory, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if config.SheetName == "" {
		config.SheetName = "Users"
	}

	data, err := os.ReadFile(config.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	creds, err := google.CredentialsFromJSON(ctx, data, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithTokenSource(creds.TokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Directory{
		service: svc,
		logger:  logger,
		config:  config,
	}, nil
}

// SignUp registers a new nickname. Validation failures and duplicate
// nicknames come back as unsuccessful results with a user message, not as
// errors; only context cancellation surfaces as an error.
func (d *Directory) SignUp(ctx context.Context, nickname, secret string) (service.AuthResult, error) {
	nickname = strings.TrimSpace(nickname)
	secret = strings.TrimSpace(secret)

	if nickname == "" || secret == "" {
		return service.AuthResult{Message: msgMissingInput}, nil
	}
	if len([]rune(nickname)) > maxNicknameLen {
		return service.AuthResult{Message: msgNicknameTooLong}, nil
	}
	if !validSecret(secret) {
		return service.AuthResult{Message: msgBadSecret}, nil
	}

	existing, err := d.findUser(ctx, nickname)
	if err != nil {
		d.logger.Error("sign up lookup failed", "error", err)
		return service.AuthResult{Message: msgNetworkFailure}, ctxErr(ctx)
	}
	if existing != nil {
		return service.AuthResult{Message: msgNicknameTaken}, nil
	}

	row := &sheets.ValueRange{Values: [][]any{{nickname, secret}}}
	appendErr := common.WithRetry(ctx, func() error {
		_, err := d.service.Spreadsheets.Values.
			Append(d.config.SpreadsheetID, d.usersRange(), row).
			ValueInputOption("RAW").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).
			Do()
		return err
	}, d.retryOpts())
	if appendErr != nil {
		d.logger.Error("sign up append failed", "error", appendErr)
		return service.AuthResult{Message: msgNetworkFailure}, ctxErr(ctx)
	}

	d.logger.Info("user signed up", "nickname", nickname)
	return service.AuthResult{Success: true, Message: msgSignUpDone}, nil
}

// Login resolves a nickname/secret pair to a user identifier. Wrong
// nickname and wrong secret produce the same message on purpose.
func (d *Directory) Login(ctx context.Context, nickname, secret string) (service.AuthResult, error) {
	nickname = strings.TrimSpace(nickname)
	secret = strings.TrimSpace(secret)

	if nickname == "" || secret == "" {
		return service.AuthResult{Message: msgMissingInput}, nil
	}

	user, err := d.findUser(ctx, nickname)
	if err != nil {
		d.logger.Error("login lookup failed", "error", err)
		return service.AuthResult{Message: msgNetworkFailure}, ctxErr(ctx)
	}
	if user == nil || user.ID != secret {
		return service.AuthResult{Message: msgWrongCredentials}, nil
	}

	d.logger.Info("user logged in", "nickname", nickname)
	return service.AuthResult{Success: true, User: user, Message: msgLoginDone}, nil
}

// findUser scans the user sheet for an exact nickname match.
func (d *Directory) findUser(ctx context.Context, nickname string) (*model.User, error) {
	var resp *sheets.ValueRange
	err := common.WithRetry(ctx, func() error {
		var getErr error
		resp, getErr = d.service.Spreadsheets.Values.
			Get(d.config.SpreadsheetID, d.usersRange()).
			Context(ctx).
			Do()
		return getErr
	}, d.retryOpts())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDirectoryUnavailable, err)
	}

	for _, row := range resp.Values {
		if len(row) < 2 {
			continue
		}
		rowNickname, ok := row[0].(string)
		if !ok || rowNickname != nickname {
			continue
		}
		id, _ := row[1].(string)
		return &model.User{ID: id, Nickname: rowNickname}, nil
	}
	return nil, nil
}

func (d *Directory) usersRange() string {
	// Row 1 holds the nickname/id header.
	return fmt.Sprintf("%s!A2:B", d.config.SheetName)
}

func (d *Directory) retryOpts() service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  d.config.RetryAttempts,
		InitialDelay: d.config.RetryDelay,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
	}
}

// validSecret enforces the 4-14 character letters-and-digits policy.
func validSecret(secret string) bool {
	runes := []rune(secret)
	if len(runes) < 4 || len(runes) > 14 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range runes {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			hasLetter = true
		}
	}
	return hasLetter && hasDigit
}

// ctxErr surfaces cancellation to the caller while letting ordinary
// network failures degrade to a message-only result.
func ctxErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return nil
}
