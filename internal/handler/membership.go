package handler

import (
	"relaybot/internal/transport"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleMyChatMember records groups the bot has been added to
func (h *Handler) handleMyChatMember(c tele.Context) error {
	update := c.ChatMember()
	if update == nil || update.Chat == nil || update.NewChatMember == nil {
		return nil
	}

	h.logger.Info("Bot membership changed",
		zap.Int64("chat_id", update.Chat.ID),
		zap.String("status", string(update.NewChatMember.Role)),
	)

	if !transport.IsMemberRole(update.NewChatMember.Role) {
		return nil
	}
	h.users.TrackGroup(transport.ToGroup(update.Chat))
	return nil
}
