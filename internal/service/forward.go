package service

import (
	"fmt"
	"html"

	"relaybot/internal/domain"
	"relaybot/internal/metrics"

	"go.uber.org/zap"
)

const mediaPlaceholder = "<Media/Sticker/Other>"

// Forwarder mirrors messages according to the fixed forwarding table. Every
// outbound call is its own failure boundary: nothing is returned as an error,
// outcomes describe what happened.
type Forwarder struct {
	rules     domain.ForwardRules
	messenger Messenger
	logger    *zap.Logger
}

// NewForwarder creates a new forwarder
func NewForwarder(rules domain.ForwardRules, messenger Messenger, logger *zap.Logger) *Forwarder {
	return &Forwarder{
		rules:     rules,
		messenger: messenger,
		logger:    logger,
	}
}

// Route runs inbox capture (private chats only), tracked-sender shadowing
// and the source mirror, in that order, without early return.
func (f *Forwarder) Route(msg domain.Message) []domain.RuleOutcome {
	var outcomes []domain.RuleOutcome
	if msg.IsPrivate() {
		if o, ok := f.CaptureInbox(msg, ""); ok {
			outcomes = append(outcomes, o)
		}
	}
	outcomes = append(outcomes, f.ShadowTracked(msg)...)
	if o, ok := f.Mirror(msg); ok {
		outcomes = append(outcomes, o)
	}
	return outcomes
}

// CaptureInbox copies the message into the inbox chat behind a caption. When
// command is set the message is reported as that command invocation. If the
// caption or the forward fails, a synthesized text copy is sent instead; if
// that fails too the failure is logged and dropped.
func (f *Forwarder) CaptureInbox(msg domain.Message, command string) (domain.RuleOutcome, bool) {
	inbox := f.rules.InboxChatID
	if inbox == 0 {
		return domain.RuleOutcome{}, false
	}
	outcome := domain.RuleOutcome{Rule: domain.RuleInbox, Destination: inbox}

	_, err := f.messenger.SendText(inbox, inboxCaption(msg, command), domain.ParseHTML)
	if err == nil {
		err = f.messenger.Forward(msg.Ref, inbox)
	}
	if err == nil {
		outcome.Status = domain.StatusForwarded
		return f.record(outcome), true
	}

	f.logger.Warn("Failed to forward to inbox",
		zap.Int64("user_id", msg.Sender.ID),
		zap.Int("message_id", msg.Ref.MessageID),
		zap.Error(err),
	)

	if _, copyErr := f.messenger.SendText(inbox, inboxCopy(msg, command), domain.ParseHTML); copyErr != nil {
		f.logger.Warn("Failed fallback copy to inbox",
			zap.Int64("user_id", msg.Sender.ID),
			zap.Error(copyErr),
		)
		outcome.Status = domain.StatusFailed
		outcome.Err = copyErr
		return f.record(outcome), true
	}

	outcome.Status = domain.StatusCopied
	outcome.Err = err
	return f.record(outcome), true
}

// ShadowTracked announces and forwards the message to the destination of
// every tracked pair whose sender matches. Pairs are evaluated independently.
func (f *Forwarder) ShadowTracked(msg domain.Message) []domain.RuleOutcome {
	var outcomes []domain.RuleOutcome
	for _, tracked := range f.rules.Tracked {
		if tracked.SenderID != msg.Sender.ID || tracked.ChatID == 0 {
			continue
		}
		outcome := domain.RuleOutcome{Rule: domain.RuleTracked, Destination: tracked.ChatID}

		announce := fmt.Sprintf("📨 Message from tracked user in <b>%s</b>", html.EscapeString(msg.ChatName()))
		if _, err := f.messenger.SendText(tracked.ChatID, announce, domain.ParseHTML); err != nil {
			f.logger.Warn("Failed to announce tracked message",
				zap.Int64("tracked_user_id", tracked.SenderID),
				zap.Int64("chat_id", tracked.ChatID),
				zap.Error(err),
			)
		}

		if err := f.messenger.Forward(msg.Ref, tracked.ChatID); err != nil {
			f.logger.Warn("Tracked forward failed",
				zap.Int64("tracked_user_id", tracked.SenderID),
				zap.Int64("chat_id", tracked.ChatID),
				zap.Error(err),
			)
			outcome.Status = domain.StatusFailed
			outcome.Err = err
		} else {
			outcome.Status = domain.StatusForwarded
		}
		outcomes = append(outcomes, f.record(outcome))
	}
	return outcomes
}

// Mirror relays messages of the source chat to the destination chat. A failed
// forward of a text message falls back to a text copy; a failed forward of
// anything else is dropped.
func (f *Forwarder) Mirror(msg domain.Message) (domain.RuleOutcome, bool) {
	rule := f.rules.Mirror
	if rule.SourceChatID == 0 || rule.DestChatID == 0 || msg.Ref.ChatID != rule.SourceChatID {
		return domain.RuleOutcome{}, false
	}
	outcome := domain.RuleOutcome{Rule: domain.RuleMirror, Destination: rule.DestChatID}

	err := f.messenger.Forward(msg.Ref, rule.DestChatID)
	if err == nil {
		outcome.Status = domain.StatusForwarded
		return f.record(outcome), true
	}
	outcome.Err = err

	if !msg.HasText() {
		f.logger.Warn("Mirror forward failed, non-text message dropped",
			zap.Int("message_id", msg.Ref.MessageID),
			zap.Error(err),
		)
		outcome.Status = domain.StatusDropped
		return f.record(outcome), true
	}

	copyText := fmt.Sprintf("📨 From: %s (%s)\nContent: %s", msg.Sender.FullName(), msg.Sender.Handle(), msg.Text)
	if _, copyErr := f.messenger.SendText(rule.DestChatID, copyText, domain.ParsePlain); copyErr != nil {
		f.logger.Warn("Mirror fallback copy failed",
			zap.Int("message_id", msg.Ref.MessageID),
			zap.Error(copyErr),
		)
		outcome.Status = domain.StatusFailed
		outcome.Err = copyErr
		return f.record(outcome), true
	}

	outcome.Status = domain.StatusCopied
	return f.record(outcome), true
}

func (f *Forwarder) record(o domain.RuleOutcome) domain.RuleOutcome {
	metrics.IncForward(string(o.Rule), string(o.Status))
	return o
}

func inboxHeader(msg domain.Message, command string) string {
	msgType := "Message"
	if command != "" {
		msgType = "Command"
	}
	return fmt.Sprintf("📨 From: %s (%s)\nID: <code>%d</code>\nType: %s",
		html.EscapeString(msg.Sender.FullName()),
		html.EscapeString(msg.Sender.Handle()),
		msg.Sender.ID,
		msgType,
	)
}

func inboxCaption(msg domain.Message, command string) string {
	caption := inboxHeader(msg, command)
	switch {
	case command != "":
		caption += "\nCommand: " + html.EscapeString(command)
	case msg.HasText():
		caption += "\nMessage: " + html.EscapeString(msg.Text)
	}
	return caption
}

func inboxCopy(msg domain.Message, command string) string {
	content := msg.Text
	if !msg.HasText() {
		content = mediaPlaceholder
	}
	return inboxHeader(msg, command) + "\nContent: " + html.EscapeString(content)
}
