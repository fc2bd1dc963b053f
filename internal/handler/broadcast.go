package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"relaybot/internal/domain"
	"relaybot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleBroadcast handles /broadcast <chat_id> <message>
func (h *Handler) handleBroadcast(c tele.Context) error {
	chatID, text, err := parseTargetArgs(c.Args())
	if err != nil {
		return c.Send(err.Error())
	}
	res, err := h.broadcasts.BroadcastToOne(h.ctx, c.Sender().ID, chatID, domain.Payload{Text: text})
	return h.reportBroadcast(c, res, err)
}

// handleBroadcastAll handles /broadcastall <message>
func (h *Handler) handleBroadcastAll(c tele.Context) error {
	text := strings.Join(c.Args(), " ")
	if text == "" {
		return c.Send("Usage: /broadcastall <message>")
	}
	res, err := h.broadcasts.BroadcastToAll(h.ctx, c.Sender().ID, domain.Payload{Text: text})
	return h.reportBroadcast(c, res, err)
}

// handleBroadcastMedia handles /broadcast_media <media_url> <caption>
func (h *Handler) handleBroadcastMedia(c tele.Context) error {
	payload, err := parseMediaArgs(c.Args())
	if err != nil {
		return c.Send(err.Error())
	}
	res, err := h.broadcasts.BroadcastToAll(h.ctx, c.Sender().ID, payload)
	return h.reportBroadcast(c, res, err)
}

// handleBroadcastUsers handles /broadcastusers <message>
func (h *Handler) handleBroadcastUsers(c tele.Context) error {
	text := strings.Join(c.Args(), " ")
	if text == "" {
		return c.Send("Usage: /broadcastusers <message>")
	}
	res, err := h.broadcasts.BroadcastToUsers(h.ctx, c.Sender().ID, domain.Payload{Text: text})
	return h.reportBroadcast(c, res, err)
}

// handleStats handles /stats
func (h *Handler) handleStats(c tele.Context) error {
	sum, err := h.broadcasts.Summary(c.Sender().ID)
	if errors.Is(err, service.ErrNotOperator) {
		return nil
	}
	if err != nil {
		return err
	}
	return c.Send(statsText(sum), tele.ModeHTML)
}

func (h *Handler) reportBroadcast(c tele.Context, res domain.BroadcastResult, err error) error {
	if errors.Is(err, service.ErrNotOperator) {
		h.logger.Warn("Broadcast by non-operator ignored", zap.Int64("user_id", c.Sender().ID))
		return nil
	}
	if err != nil {
		return err
	}
	return c.Send(fmt.Sprintf("✅ Sent: %d, ❌ Failed: %d", res.Sent, res.Failed))
}

// usageError is an argument error whose text is shown to the operator as is
type usageError string

func (e usageError) Error() string { return string(e) }

// parseTargetArgs splits "<chat_id> <message...>"
func parseTargetArgs(args []string) (int64, string, error) {
	if len(args) < 2 {
		return 0, "", usageError("Usage: /broadcast <group_id> <message>")
	}
	chatID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, "", usageError("Invalid group id.")
	}
	return chatID, strings.Join(args[1:], " "), nil
}

// parseMediaArgs splits "<media_url> <caption...>"
func parseMediaArgs(args []string) (domain.Payload, error) {
	if len(args) < 2 {
		return domain.Payload{}, usageError("Usage: /broadcast_media <media_url> <caption>")
	}
	return domain.Payload{MediaURL: args[0], Text: strings.Join(args[1:], " ")}, nil
}

func statsText(sum service.Summary) string {
	return fmt.Sprintf(
		"📊 <b>Bot Stats</b>\n\n"+
			"👤 Users: <code>%d</code>\n"+
			"👥 Groups: <code>%d</code>\n\n"+
			"<b>Broadcasts</b>\n"+
			"Users: ✅ %d, ❌ %d\n"+
			"Groups: ✅ %d, ❌ %d",
		sum.Users,
		sum.Groups,
		sum.Stats.SentUsers, sum.Stats.FailedUsers,
		sum.Stats.SentGroups, sum.Stats.FailedGroups,
	)
}
