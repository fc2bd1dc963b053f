package transport

import (
	"fmt"
	"strconv"

	"relaybot/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// API is the part of *tele.Bot the messenger needs
type API interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	Forward(to tele.Recipient, msg tele.Editable, opts ...interface{}) (*tele.Message, error)
	Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error)
	Delete(msg tele.Editable) error
}

// Messenger sends outbound actions through the Telegram Bot API
type Messenger struct {
	api API
}

// NewMessenger wraps a bot
func NewMessenger(api API) *Messenger {
	return &Messenger{api: api}
}

func (m *Messenger) SendText(chatID int64, text string, mode domain.ParseMode) (domain.MessageRef, error) {
	sent, err := m.api.Send(tele.ChatID(chatID), text, sendOptions(mode))
	if err != nil {
		return domain.MessageRef{}, fmt.Errorf("send text to %d: %w", chatID, err)
	}
	return refOf(sent), nil
}

func (m *Messenger) SendPhoto(chatID int64, photoURL, caption string, mode domain.ParseMode) (domain.MessageRef, error) {
	photo := &tele.Photo{File: tele.FromURL(photoURL), Caption: caption}
	sent, err := m.api.Send(tele.ChatID(chatID), photo, sendOptions(mode))
	if err != nil {
		return domain.MessageRef{}, fmt.Errorf("send photo to %d: %w", chatID, err)
	}
	return refOf(sent), nil
}

func (m *Messenger) Forward(msg domain.MessageRef, toChatID int64) error {
	if _, err := m.api.Forward(tele.ChatID(toChatID), storedMessage(msg)); err != nil {
		return fmt.Errorf("forward %d/%d to %d: %w", msg.ChatID, msg.MessageID, toChatID, err)
	}
	return nil
}

func (m *Messenger) EditText(msg domain.MessageRef, text string, mode domain.ParseMode) error {
	if _, err := m.api.Edit(storedMessage(msg), text, sendOptions(mode)); err != nil {
		return fmt.Errorf("edit %d/%d: %w", msg.ChatID, msg.MessageID, err)
	}
	return nil
}

func (m *Messenger) Delete(msg domain.MessageRef) error {
	if err := m.api.Delete(storedMessage(msg)); err != nil {
		return fmt.Errorf("delete %d/%d: %w", msg.ChatID, msg.MessageID, err)
	}
	return nil
}

func sendOptions(mode domain.ParseMode) *tele.SendOptions {
	return &tele.SendOptions{ParseMode: parseMode(mode)}
}

func parseMode(mode domain.ParseMode) tele.ParseMode {
	switch mode {
	case domain.ParseHTML:
		return tele.ModeHTML
	case domain.ParseMarkdown:
		return tele.ModeMarkdown
	default:
		return tele.ModeDefault
	}
}

func storedMessage(ref domain.MessageRef) tele.StoredMessage {
	return tele.StoredMessage{
		MessageID: strconv.Itoa(ref.MessageID),
		ChatID:    ref.ChatID,
	}
}

func refOf(msg *tele.Message) domain.MessageRef {
	if msg == nil {
		return domain.MessageRef{}
	}
	ref := domain.MessageRef{MessageID: msg.ID}
	if msg.Chat != nil {
		ref.ChatID = msg.Chat.ID
	}
	return ref
}
