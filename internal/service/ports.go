package service

import (
	"context"

	"relaybot/internal/domain"
	"relaybot/internal/gateway"
)

// Messenger is the outbound side of the messaging transport. Every call may
// fail; callers decide on fallbacks.
type Messenger interface {
	SendText(chatID int64, text string, mode domain.ParseMode) (domain.MessageRef, error)
	SendPhoto(chatID int64, photoURL, caption string, mode domain.ParseMode) (domain.MessageRef, error)
	Forward(msg domain.MessageRef, toChatID int64) error
	EditText(msg domain.MessageRef, text string, mode domain.ParseMode) error
	Delete(msg domain.MessageRef) error
}

// Gateway is the remote AI and lookup API surface
type Gateway interface {
	AskChatGPT(ctx context.Context, prompt string) string
	AskGemini(ctx context.Context, prompt string) string
	AskDeepSeek(ctx context.Context, prompt string) string
	InstagramProfile(ctx context.Context, username string) gateway.Result
	FreeFirePlayer(ctx context.Context, uid string) gateway.Result
}
