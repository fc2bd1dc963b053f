package handler

import (
	"context"
	"time"

	"relaybot/internal/domain"
	"relaybot/internal/middleware"
	"relaybot/internal/service"
	"relaybot/internal/transport"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Options are the static settings the handlers present to users
type Options struct {
	BotName     string
	BotUsername string
	OperatorID  int64
}

// Handler manages all bot interactions
type Handler struct {
	bot        *tele.Bot
	ctx        context.Context
	opts       Options
	dispatcher *service.Dispatcher
	lookups    *service.LookupService
	broadcasts *service.BroadcastService
	users      *service.UserService
	logger     *zap.Logger
	startedAt  time.Time
}

// NewHandler creates a new handler instance. ctx bounds the remote calls
// made on behalf of updates.
func NewHandler(
	ctx context.Context,
	bot *tele.Bot,
	opts Options,
	dispatcher *service.Dispatcher,
	lookups *service.LookupService,
	broadcasts *service.BroadcastService,
	users *service.UserService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:        bot,
		ctx:        ctx,
		opts:       opts,
		dispatcher: dispatcher,
		lookups:    lookups,
		broadcasts: broadcasts,
		users:      users,
		logger:     logger,
		startedAt:  time.Now(),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	h.bot.Use(middleware.Logger(h.logger), middleware.RegisterSender(h.users))

	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/help", h.handleHelp)
	h.bot.Handle("/ping", h.handlePing)
	h.bot.Handle("/gemini", h.handleGemini)
	h.bot.Handle("/deepseek", h.handleDeepSeek)
	h.bot.Handle("/ai", h.handleAI)
	h.bot.Handle("/insta", h.flowCommand("/insta", domain.FlowInstagramLookup))
	h.bot.Handle("/ff", h.flowCommand("/ff", domain.FlowFreeFireLookup))

	// Operator commands
	op := h.bot.Group()
	op.Use(middleware.OperatorOnly(h.opts.OperatorID, h.logger))
	op.Handle("/broadcast", h.handleBroadcast)
	op.Handle("/broadcastall", h.handleBroadcastAll)
	op.Handle("/broadcast_media", h.handleBroadcastMedia)
	op.Handle("/broadcastusers", h.handleBroadcastUsers)
	op.Handle("/stats", h.handleStats)

	// Plain messages. Telebot raises a separate event for each non-media kind.
	for _, event := range messageEvents {
		h.bot.Handle(event, h.handleMessage)
	}

	// Callback queries (inline buttons)
	h.bot.Handle(&btnGemini, h.flowButton(domain.FlowGeminiPrompt))
	h.bot.Handle(&btnDeepSeek, h.flowButton(domain.FlowDeepSeekPrompt))
	h.bot.Handle(&btnInsta, h.flowButton(domain.FlowInstagramLookup))
	h.bot.Handle(&btnFreeFire, h.flowButton(domain.FlowFreeFireLookup))
	h.bot.Handle(&btnPing, h.handlePingButton)
	h.bot.Handle(&btnHelp, h.handleHelpButton)

	// Generic callback handler for buttons that did not match by unique
	h.bot.Handle(tele.OnCallback, h.handleCallback)

	// Bot membership changes
	h.bot.Handle(tele.OnMyChatMember, h.handleMyChatMember)
}

// messageEvents are the update kinds routed as plain messages
var messageEvents = []string{
	tele.OnText,
	tele.OnMedia,
	tele.OnContact,
	tele.OnLocation,
	tele.OnVenue,
	tele.OnDice,
	tele.OnPoll,
}

// Inline keyboard buttons
var (
	btnGemini = tele.Btn{
		Unique: "btn_gemini",
		Text:   "🧠 Gemini 3",
	}
	btnDeepSeek = tele.Btn{
		Unique: "btn_deepseek",
		Text:   "🔥 DeepSeek",
	}
	btnInsta = tele.Btn{
		Unique: "btn_insta",
		Text:   "📸 Insta Info",
	}
	btnFreeFire = tele.Btn{
		Unique: "btn_ff",
		Text:   "🎮 FF Player",
	}
	btnPing = tele.Btn{
		Unique: "btn_ping",
		Text:   "🏓 Ping",
	}
	btnHelp = tele.Btn{
		Unique: "btn_help",
		Text:   "❓ Help",
	}
)

// startMenuMarkup returns the /start keyboard
func startMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnGemini, btnDeepSeek),
		menu.Row(btnInsta, btnFreeFire),
		menu.Row(btnPing, btnHelp),
	)
	return menu
}

// domainMessage converts the update's message, reporting false when there
// is no message with a sender.
func domainMessage(c tele.Context) (domain.Message, bool) {
	msg := c.Message()
	if msg == nil || msg.Sender == nil {
		return domain.Message{}, false
	}
	return transport.ToMessage(msg), true
}
