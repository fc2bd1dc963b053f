package domain

// ChatType mirrors Telegram chat types
type ChatType string

const (
	ChatPrivate    ChatType = "private"
	ChatGroup      ChatType = "group"
	ChatSuperGroup ChatType = "supergroup"
	ChatChannel    ChatType = "channel"
)

// IsGroup reports whether the chat is a group or a supergroup
func (t ChatType) IsGroup() bool {
	return t == ChatGroup || t == ChatSuperGroup
}

// ParseMode is a formatting hint for outgoing text
type ParseMode string

const (
	ParsePlain    ParseMode = ""
	ParseHTML     ParseMode = "HTML"
	ParseMarkdown ParseMode = "Markdown"
)

// MessageRef points at a message that already exists in some chat
type MessageRef struct {
	ChatID    int64
	MessageID int
}

// Message is an inbound message, decoupled from the transport types
type Message struct {
	Ref       MessageRef
	ChatType  ChatType
	ChatTitle string
	Sender    User
	Text      string
}

// HasText reports whether the message carries text (media and stickers don't)
func (m Message) HasText() bool {
	return m.Text != ""
}

// IsPrivate reports whether the message was sent in a 1:1 chat with the bot
func (m Message) IsPrivate() bool {
	return m.ChatType == ChatPrivate
}

// ChatName returns the chat title, or "Private" for untitled chats
func (m Message) ChatName() string {
	if m.ChatTitle == "" {
		return "Private"
	}
	return m.ChatTitle
}
