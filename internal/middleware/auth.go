package middleware

import (
	"strings"

	"relaybot/internal/metrics"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// OperatorOnly lets only the operator through. Anyone else gets no reply.
func OperatorOnly(operatorID int64, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			command := CommandName(c.Text())

			if c.Sender() == nil || c.Sender().ID != operatorID {
				var userID int64
				if c.Sender() != nil {
					userID = c.Sender().ID
				}
				logger.Warn("Operator command from non-operator ignored",
					zap.Int64("user_id", userID),
					zap.String("command", command),
				)
				metrics.IncOperatorCommand(command, "denied")
				return nil
			}

			metrics.IncOperatorCommand(command, "allowed")
			return next(c)
		}
	}
}

// CommandName returns "/cmd" for "/cmd@bot args", or "" for non-commands
func CommandName(text string) string {
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	name := strings.Fields(text)[0]
	if i := strings.IndexByte(name, '@'); i > 0 {
		name = name[:i]
	}
	return name
}
