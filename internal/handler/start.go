package handler

import (
	"fmt"
	"html"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	h.logger.Info("User started bot",
		zap.Int64("user_id", c.Sender().ID),
		zap.String("username", c.Sender().Username),
	)
	h.captureCommand(c, "/start")

	return c.Send(welcomeText(h.opts.BotName), startMenuMarkup(), tele.ModeMarkdown)
}

// handleHelp handles /help command
func (h *Handler) handleHelp(c tele.Context) error {
	return c.Send(helpText, tele.ModeMarkdown)
}

// handlePing measures the round trip of one send and shows bot status
func (h *Handler) handlePing(c tele.Context) error {
	h.captureCommand(c, "/ping")

	start := time.Now()
	msg, err := h.bot.Send(c.Chat(), "🏓 Pinging...")
	if err != nil {
		return err
	}
	latency := time.Since(start)

	_, err = h.bot.Edit(msg, pingText(h.opts, latency, time.Since(h.startedAt)), tele.ModeHTML)
	return err
}

func welcomeText(botName string) string {
	return fmt.Sprintf("✨ *Welcome to %s*\n\n", botName) +
		"Use the buttons below or commands:\n" +
		"• /gemini <prompt>\n" +
		"• /deepseek <prompt>\n" +
		"• /insta (or press button)\n" +
		"• /ff (or press button)\n" +
		"• /ping\n\n" +
		"Tip: press a button and then send the prompt/username/uid as the next message ✅"
}

const helpText = "🛠️ *Commands*\n" +
	"• /gemini <prompt> - Gemini 3 AI\n" +
	"• /deepseek <prompt> - DeepSeek AI\n" +
	"• /ai <prompt> - ChatGPT + Gemini 3\n" +
	"• /insta - Get Instagram profile (bot will ask username)\n" +
	"• /ff - Get Free Fire player info (bot will ask UID)\n" +
	"• /ping - Bot status\n" +
	"• /broadcast <group\\_id> <message> (owner only)\n" +
	"• /broadcastall <message> (owner only)\n"

func pingText(opts Options, latency, uptime time.Duration) string {
	return fmt.Sprintf(
		"💫 <i>Hi! I’m %s</i>\n\n"+
			"🤖 <i>Bot Username:</i> <code>%s</code>\n"+
			"⚡ <i>Ping:</i> <code>%d ms</code>\n"+
			"🕒 <i>Uptime:</i> <code>%s</code>\n"+
			"📡 <i>Status:</i> Active ✅",
		html.EscapeString(opts.BotName),
		html.EscapeString(opts.BotUsername),
		latency.Milliseconds(),
		formatUptime(uptime),
	)
}

// formatUptime renders d as H:MM:SS, prefixed with days when longer than one
func formatUptime(d time.Duration) string {
	total := int64(d / time.Second)
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	clock := fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	switch {
	case days == 1:
		return "1 day, " + clock
	case days > 1:
		return fmt.Sprintf("%d days, %s", days, clock)
	default:
		return clock
	}
}
