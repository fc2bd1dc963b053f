package service

import (
	"fmt"
	"html"

	"relaybot/internal/domain"
	"relaybot/internal/repository"

	"go.uber.org/zap"
)

// UserService registers users and groups the bot sees
type UserService struct {
	users      repository.UserRepository
	groups     repository.GroupRepository
	messenger  Messenger
	operatorID int64
	logger     *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	users repository.UserRepository,
	groups repository.GroupRepository,
	messenger Messenger,
	operatorID int64,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		users:      users,
		groups:     groups,
		messenger:  messenger,
		operatorID: operatorID,
		logger:     logger,
	}
}

// RegisterUser records the user once and tells the operator about newcomers.
// Storage errors are logged and reported as "not new".
func (s *UserService) RegisterUser(user domain.User) bool {
	created, err := s.users.EnsureUser(user.ID)
	if err != nil {
		s.logger.Error("Failed to register user",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
		return false
	}
	if !created {
		return false
	}

	s.logger.Info("New user registered",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
	)

	notice := fmt.Sprintf("👤 <b>New User Started Bot</b>\nName: %s\nUsername: %s\nID: <code>%d</code>",
		html.EscapeString(user.FullName()),
		html.EscapeString(user.Handle()),
		user.ID,
	)
	if _, err := s.messenger.SendText(s.operatorID, notice, domain.ParseHTML); err != nil {
		s.logger.Warn("Failed to notify operator about new user", zap.Error(err))
	}
	return true
}

// TrackGroup records a group the bot now belongs to. Non-group chats are ignored.
func (s *UserService) TrackGroup(group domain.Group) bool {
	if !group.Type.IsGroup() {
		return false
	}
	created, err := s.groups.AddGroup(group.ChatID)
	if err != nil {
		s.logger.Error("Failed to track group",
			zap.Int64("chat_id", group.ChatID),
			zap.Error(err),
		)
		return false
	}
	if created {
		s.logger.Info("Joined new group",
			zap.Int64("chat_id", group.ChatID),
			zap.String("title", group.Title),
		)
	}
	return created
}
