package middleware

import (
	"relaybot/internal/domain"
	"relaybot/internal/transport"

	tele "gopkg.in/telebot.v3"
)

// UserRegistrar records users the first time they are seen
type UserRegistrar interface {
	RegisterUser(user domain.User) bool
}

// RegisterSender registers the sender of every inbound message before it is
// handled. Button presses and membership updates are not messages.
func RegisterSender(registrar UserRegistrar) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Callback() == nil && c.Message() != nil && c.Sender() != nil && !c.Sender().IsBot {
				registrar.RegisterUser(transport.ToUser(c.Sender()))
			}
			return next(c)
		}
	}
}
