package handler

import (
	"strings"
	"unicode"

	"relaybot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	pingButtonText    = "🏓 Use /ping or press again if needed."
	helpButtonText    = "❓ Use /help or type a command. Buttons start a flow that expects the next message to be the input."
	unknownActionText = "Unknown action."
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	// The message already shows this text, e.g. the same button pressed twice
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		_ = c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// editOrSend replaces the pressed message's text, sending a new message when
// the edit is refused
func (h *Handler) editOrSend(c tele.Context, text string, opts ...interface{}) error {
	userID := c.Sender().ID
	if err := c.Edit(text, opts...); err != nil {
		if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
			return nil
		}
		return c.Send(text, opts...)
	}
	return c.Respond()
}

// flowButton starts flow for the presser and shows the flow prompt
func (h *Handler) flowButton(flow domain.Flow) tele.HandlerFunc {
	return func(c tele.Context) error {
		prompt := h.dispatcher.BeginFlow(c.Sender().ID, flow)
		return h.editOrSend(c, prompt, tele.ModeMarkdown)
	}
}

func (h *Handler) handlePingButton(c tele.Context) error {
	return h.editOrSend(c, pingButtonText)
}

func (h *Handler) handleHelpButton(c tele.Context) error {
	return h.editOrSend(c, helpButtonText)
}

// handleCallback handles callback queries that did not reach a button
// handler, matching on the cleaned data instead
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	data := cleanCallbackData(callback.Data)
	h.logger.Info("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)

	if flow, ok := buttonFlows[data]; ok {
		return h.flowButton(flow)(c)
	}
	switch data {
	case btnPing.Unique:
		return h.handlePingButton(c)
	case btnHelp.Unique:
		return h.handleHelpButton(c)
	}

	h.logger.Warn("Unhandled callback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return h.editOrSend(c, unknownActionText)
}

var buttonFlows = map[string]domain.Flow{
	btnGemini.Unique:   domain.FlowGeminiPrompt,
	btnDeepSeek.Unique: domain.FlowDeepSeekPrompt,
	btnInsta.Unique:    domain.FlowInstagramLookup,
	btnFreeFire.Unique: domain.FlowFreeFireLookup,
}
