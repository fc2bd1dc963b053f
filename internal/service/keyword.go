package service

import (
	"fmt"
	"html"
	"strings"

	"relaybot/internal/domain"
	"relaybot/internal/metrics"

	"go.uber.org/zap"
)

// KeywordScanner matches text against a fixed, ordered keyword list
type KeywordScanner struct {
	keywords []string
	lowered  []string
}

// NewKeywordScanner creates a scanner; empty keywords are ignored
func NewKeywordScanner(keywords []string) *KeywordScanner {
	s := &KeywordScanner{}
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		s.keywords = append(s.keywords, kw)
		s.lowered = append(s.lowered, strings.ToLower(kw))
	}
	return s
}

// Scan returns the first keyword, in configured order, that occurs in text
// as a case-insensitive substring.
func (s *KeywordScanner) Scan(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	lowered := strings.ToLower(text)
	for i, kw := range s.lowered {
		if strings.Contains(lowered, kw) {
			return s.keywords[i], true
		}
	}
	return "", false
}

// KeywordAlerter reports keyword mentions to the operator
type KeywordAlerter struct {
	scanner    *KeywordScanner
	messenger  Messenger
	operatorID int64
	logger     *zap.Logger
}

// NewKeywordAlerter creates a new keyword alerter
func NewKeywordAlerter(scanner *KeywordScanner, messenger Messenger, operatorID int64, logger *zap.Logger) *KeywordAlerter {
	return &KeywordAlerter{
		scanner:    scanner,
		messenger:  messenger,
		operatorID: operatorID,
		logger:     logger,
	}
}

// Check scans the message and sends at most one alert. It returns the
// matched keyword, if any.
func (a *KeywordAlerter) Check(msg domain.Message) (string, bool) {
	keyword, ok := a.scanner.Scan(msg.Text)
	if !ok {
		return "", false
	}

	if _, err := a.messenger.SendText(a.operatorID, keywordAlert(keyword, msg), domain.ParseHTML); err != nil {
		a.logger.Warn("Failed to send keyword alert",
			zap.String("keyword", keyword),
			zap.Int64("chat_id", msg.Ref.ChatID),
			zap.Error(err),
		)
		metrics.IncKeywordAlert("failed")
		return keyword, true
	}

	a.logger.Info("Keyword mention detected",
		zap.String("keyword", keyword),
		zap.Int64("user_id", msg.Sender.ID),
		zap.Int64("chat_id", msg.Ref.ChatID),
	)
	metrics.IncKeywordAlert("sent")
	return keyword, true
}

func keywordAlert(keyword string, msg domain.Message) string {
	return fmt.Sprintf(
		"🚨 <b>Keyword Mention Detected!</b>\n"+
			"<b>Keyword:</b> <code>%s</code>\n"+
			"<b>From:</b> %s (%s)\n"+
			"<b>Chat:</b> %s\n"+
			"<b>Message:</b> %s",
		html.EscapeString(keyword),
		html.EscapeString(msg.Sender.FullName()),
		html.EscapeString(msg.Sender.Handle()),
		html.EscapeString(msg.ChatName()),
		html.EscapeString(msg.Text),
	)
}
