package directory

import (
	"context"
	"strings"
	"sync"

	"github.com/spendy-app/spendy/internal/model"
	"github.com/spendy-app/spendy/internal/service"
)

// MockDirectory is an in-memory UserDirectory with the same validation
// rules as the sheets-backed implementation.
type MockDirectory struct {
	mu    sync.Mutex
	users map[string]string // nickname -> secret
}

// NewMockDirectory creates an empty in-memory directory.
func NewMockDirectory() *MockDirectory {
	return &MockDirectory{users: make(map[string]string)}
}

// SignUp implements service.UserDirectory.
func (m *MockDirectory) SignUp(_ context.Context, nickname, secret string) (service.AuthResult, error) {
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

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[nickname]; exists {
		return service.AuthResult{Message: msgNicknameTaken}, nil
	}
	m.users[nickname] = secret
	return service.AuthResult{Success: true, Message: msgSignUpDone}, nil
}

// Login implements service.UserDirectory.
func (m *MockDirectory) Login(_ context.Context, nickname, secret string) (service.AuthResult, error) {
	nickname = strings.TrimSpace(nickname)
	secret = strings.TrimSpace(secret)

	if nickname == "" || secret == "" {
		return service.AuthResult{Message: msgMissingInput}, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	stored, exists := m.users[nickname]
	if !exists || stored != secret {
		return service.AuthResult{Message: msgWrongCredentials}, nil
	}
	return service.AuthResult{
		Success: true,
		User:    &model.User{ID: stored, Nickname: nickname},
		Message: msgLoginDone,
	}, nil
}
