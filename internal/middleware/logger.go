package middleware

import (
	"fmt"
	"time"

	"relaybot/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Logger logs each update under a fresh event id and turns a handler panic
// into a logged error so the poller keeps running.
func Logger(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) (err error) {
			kind := EventKind(c)
			log := logger.With(
				zap.String("event_id", uuid.NewString()),
				zap.Int("update_id", c.Update().ID),
				zap.String("kind", kind),
			)
			if c.Sender() != nil {
				log = log.With(zap.Int64("user_id", c.Sender().ID))
			}
			if c.Chat() != nil {
				log = log.With(zap.Int64("chat_id", c.Chat().ID))
			}
			metrics.IncEvent(kind)

			start := time.Now()
			defer func() {
				if r := recover(); r != nil {
					log.Error("Handler panicked", zap.Any("panic", r), zap.Stack("stack"))
					err = fmt.Errorf("handler panic: %v", r)
				}
			}()

			err = next(c)
			if err != nil {
				log.Warn("Handler failed", zap.Duration("took", time.Since(start)), zap.Error(err))
				return err
			}
			log.Debug("Update handled", zap.Duration("took", time.Since(start)))
			return nil
		}
	}
}

// EventKind classifies an update for logs and metrics
func EventKind(c tele.Context) string {
	u := c.Update()
	switch {
	case u.Callback != nil:
		return "callback"
	case u.MyChatMember != nil:
		return "membership"
	case u.Message != nil && CommandName(u.Message.Text) != "":
		return "command"
	case u.Message != nil:
		return "message"
	default:
		return "other"
	}
}
