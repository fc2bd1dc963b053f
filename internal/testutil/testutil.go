package testutil

import (
	"relaybot/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user
func NewTestUser(userID int64, username string) domain.User {
	return domain.User{
		ID:        userID,
		FirstName: "Test",
		LastName:  "User",
		Username:  username,
	}
}

// NewPrivateMessage creates a text message in the sender's private chat
func NewPrivateMessage(messageID int, sender domain.User, text string) domain.Message {
	return domain.Message{
		Ref:      domain.MessageRef{ChatID: sender.ID, MessageID: messageID},
		ChatType: domain.ChatPrivate,
		Sender:   sender,
		Text:     text,
	}
}

// NewGroupMessage creates a text message in a group chat
func NewGroupMessage(messageID int, chatID int64, title string, sender domain.User, text string) domain.Message {
	return domain.Message{
		Ref:       domain.MessageRef{ChatID: chatID, MessageID: messageID},
		ChatType:  domain.ChatSuperGroup,
		ChatTitle: title,
		Sender:    sender,
		Text:      text,
	}
}
