package testutil

import (
	"context"

	"relaybot/internal/domain"
	"relaybot/internal/gateway"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) EnsureUser(userID int64) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ListUsers() ([]int64, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// MockGroupRepository is a mock for GroupRepository
type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) AddGroup(chatID int64) (bool, error) {
	args := m.Called(chatID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGroupRepository) ListGroups() ([]int64, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// MockStatsRepository is a mock for StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) GetStats() (domain.BroadcastStats, error) {
	args := m.Called()
	return args.Get(0).(domain.BroadcastStats), args.Error(1)
}

func (m *MockStatsRepository) AddStats(delta domain.BroadcastStats) (domain.BroadcastStats, error) {
	args := m.Called(delta)
	return args.Get(0).(domain.BroadcastStats), args.Error(1)
}

// MockMessenger is a mock for service.Messenger
type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) SendText(chatID int64, text string, mode domain.ParseMode) (domain.MessageRef, error) {
	args := m.Called(chatID, text, mode)
	return args.Get(0).(domain.MessageRef), args.Error(1)
}

func (m *MockMessenger) SendPhoto(chatID int64, photoURL, caption string, mode domain.ParseMode) (domain.MessageRef, error) {
	args := m.Called(chatID, photoURL, caption, mode)
	return args.Get(0).(domain.MessageRef), args.Error(1)
}

func (m *MockMessenger) Forward(msg domain.MessageRef, toChatID int64) error {
	args := m.Called(msg, toChatID)
	return args.Error(0)
}

func (m *MockMessenger) EditText(msg domain.MessageRef, text string, mode domain.ParseMode) error {
	args := m.Called(msg, text, mode)
	return args.Error(0)
}

func (m *MockMessenger) Delete(msg domain.MessageRef) error {
	args := m.Called(msg)
	return args.Error(0)
}

// MockGateway is a mock for service.Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) AskChatGPT(ctx context.Context, prompt string) string {
	return m.Called(ctx, prompt).String(0)
}

func (m *MockGateway) AskGemini(ctx context.Context, prompt string) string {
	return m.Called(ctx, prompt).String(0)
}

func (m *MockGateway) AskDeepSeek(ctx context.Context, prompt string) string {
	return m.Called(ctx, prompt).String(0)
}

func (m *MockGateway) InstagramProfile(ctx context.Context, username string) gateway.Result {
	return m.Called(ctx, username).Get(0).(gateway.Result)
}

func (m *MockGateway) FreeFirePlayer(ctx context.Context, uid string) gateway.Result {
	return m.Called(ctx, uid).Get(0).(gateway.Result)
}
