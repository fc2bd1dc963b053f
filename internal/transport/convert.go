package transport

import (
	"relaybot/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// ToUser converts a Telegram user
func ToUser(u *tele.User) domain.User {
	if u == nil {
		return domain.User{}
	}
	return domain.User{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
	}
}

// ToChatType converts a Telegram chat type. Private channels count as channels.
func ToChatType(t tele.ChatType) domain.ChatType {
	switch t {
	case tele.ChatPrivate:
		return domain.ChatPrivate
	case tele.ChatGroup:
		return domain.ChatGroup
	case tele.ChatSuperGroup:
		return domain.ChatSuperGroup
	default:
		return domain.ChatChannel
	}
}

// ToMessage converts an inbound Telegram message. Captions of media messages
// are not treated as text.
func ToMessage(msg *tele.Message) domain.Message {
	if msg == nil {
		return domain.Message{}
	}
	out := domain.Message{
		Ref:    domain.MessageRef{MessageID: msg.ID},
		Sender: ToUser(msg.Sender),
		Text:   msg.Text,
	}
	if msg.Chat != nil {
		out.Ref.ChatID = msg.Chat.ID
		out.ChatType = ToChatType(msg.Chat.Type)
		out.ChatTitle = msg.Chat.Title
	}
	return out
}

// ToGroup converts the chat of a membership update
func ToGroup(chat *tele.Chat) domain.Group {
	if chat == nil {
		return domain.Group{}
	}
	return domain.Group{
		ChatID: chat.ID,
		Type:   ToChatType(chat.Type),
		Title:  chat.Title,
	}
}

// IsMemberRole reports whether the bot can post in the chat with this role
func IsMemberRole(role tele.MemberStatus) bool {
	switch role {
	case tele.Member, tele.Administrator, tele.Creator:
		return true
	default:
		return false
	}
}
