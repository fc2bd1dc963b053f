package handler

import (
	"strings"

	"relaybot/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// captureCommand reports the command invocation to the inbox
func (h *Handler) captureCommand(c tele.Context, command string) {
	msg, ok := domainMessage(c)
	if !ok {
		return
	}
	h.dispatcher.CaptureCommand(msg, command)
}

// handleGemini handles /gemini <prompt>
func (h *Handler) handleGemini(c tele.Context) error {
	h.captureCommand(c, "/gemini")

	prompt := strings.Join(c.Args(), " ")
	if prompt == "" {
		return c.Send("💡 Usage: /gemini <prompt>\nOr press *Gemini 3* button and send prompt.", tele.ModeMarkdown)
	}
	h.lookups.AskGemini(h.ctx, c.Chat().ID, prompt)
	return nil
}

// handleDeepSeek handles /deepseek <prompt>
func (h *Handler) handleDeepSeek(c tele.Context) error {
	h.captureCommand(c, "/deepseek")

	prompt := strings.Join(c.Args(), " ")
	if prompt == "" {
		return c.Send("💡 Usage: /deepseek <prompt>\nOr press *DeepSeek* button and send prompt.", tele.ModeMarkdown)
	}
	h.lookups.AskDeepSeek(h.ctx, c.Chat().ID, prompt)
	return nil
}

// handleAI handles /ai <prompt>, asking two engines at once
func (h *Handler) handleAI(c tele.Context) error {
	h.captureCommand(c, "/ai")

	prompt := strings.Join(c.Args(), " ")
	if prompt == "" {
		return c.Send("💡 Usage: /ai <prompt> - runs ChatGPT + Gemini3")
	}
	h.lookups.AskCombined(h.ctx, c.Chat().ID, prompt)
	return nil
}

// flowCommand starts flow for the sender; their next text message is its input
func (h *Handler) flowCommand(command string, flow domain.Flow) tele.HandlerFunc {
	return func(c tele.Context) error {
		h.captureCommand(c, command)
		return c.Send(h.dispatcher.BeginFlow(c.Sender().ID, flow), tele.ModeMarkdown)
	}
}

// handleMessage routes every plain message through the dispatcher
func (h *Handler) handleMessage(c tele.Context) error {
	msg, ok := domainMessage(c)
	if !ok {
		return nil
	}
	h.dispatcher.HandleMessage(h.ctx, msg)
	return nil
}
