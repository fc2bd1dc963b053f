package service

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"
	"sync"

	"relaybot/internal/domain"
	"relaybot/internal/metrics"

	"go.uber.org/zap"
)

const instagramFailed = "❌ Failed to fetch Instagram data."

// LookupService runs the AI and lookup requests on behalf of a chat. A
// placeholder reply is sent first and then edited with the outcome.
type LookupService struct {
	gateway   Gateway
	messenger Messenger
	logger    *zap.Logger
}

// NewLookupService creates a new lookup service
func NewLookupService(gateway Gateway, messenger Messenger, logger *zap.Logger) *LookupService {
	return &LookupService{
		gateway:   gateway,
		messenger: messenger,
		logger:    logger,
	}
}

// CompleteFlow finishes a pending flow with the user's message text as input
func (s *LookupService) CompleteFlow(ctx context.Context, flow domain.Flow, chatID int64, input string) {
	input = strings.TrimSpace(input)
	switch flow {
	case domain.FlowGeminiPrompt:
		s.AskGemini(ctx, chatID, input)
	case domain.FlowDeepSeekPrompt:
		s.AskDeepSeek(ctx, chatID, input)
	case domain.FlowInstagramLookup:
		s.InstagramProfile(ctx, chatID, input)
	case domain.FlowFreeFireLookup:
		s.FreeFirePlayer(ctx, chatID, input)
	default:
		s.logger.Warn("Unknown flow", zap.String("flow", string(flow)))
		return
	}
	metrics.IncFlow(string(flow), "completed")
}

// AskGemini answers a prompt with Gemini
func (s *LookupService) AskGemini(ctx context.Context, chatID int64, prompt string) {
	s.answer(chatID, "🤖 Gemini 3 is thinking... ⏳", func() string {
		return "🧠 <b>Gemini 3 Response</b>\n\n" + html.EscapeString(s.gateway.AskGemini(ctx, prompt))
	})
}

// AskDeepSeek answers a prompt with DeepSeek
func (s *LookupService) AskDeepSeek(ctx context.Context, chatID int64, prompt string) {
	s.answer(chatID, "🚀 DeepSeek 3.2 is thinking... ⏳", func() string {
		return "🔥 <b>DeepSeek 3.2 Response</b>\n\n" + html.EscapeString(s.gateway.AskDeepSeek(ctx, prompt))
	})
}

// AskCombined asks ChatGPT and Gemini at the same time and shows both replies
func (s *LookupService) AskCombined(ctx context.Context, chatID int64, prompt string) {
	s.answer(chatID, "🤖 Asking both AI engines... ⏳", func() string {
		var (
			wg       sync.WaitGroup
			chatGPT  string
			geminiAn string
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			chatGPT = s.gateway.AskChatGPT(ctx, prompt)
		}()
		go func() {
			defer wg.Done()
			geminiAn = s.gateway.AskGemini(ctx, prompt)
		}()
		wg.Wait()

		return fmt.Sprintf("💡 <b>AI Responses</b>\n\n<b>ChatGPT:</b>\n%s\n\n<b>Gemini 3:</b>\n%s",
			html.EscapeString(chatGPT),
			html.EscapeString(geminiAn),
		)
	})
}

// InstagramProfile shows an Instagram profile, with its picture when the
// service returns one.
func (s *LookupService) InstagramProfile(ctx context.Context, chatID int64, username string) {
	placeholder, err := s.messenger.SendText(chatID, "🔎 Fetching Instagram info...", domain.ParsePlain)
	if err != nil {
		s.logger.Warn("Failed to send placeholder", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}

	res := s.gateway.InstagramProfile(ctx, username)
	obj, ok := res.Object()
	if !ok || obj["status"] != "ok" {
		s.edit(placeholder, instagramFailed, domain.ParsePlain)
		return
	}

	profile, _ := obj["profile"].(map[string]any)
	caption := instagramCaption(profile)

	pic, _ := profile["profile_pic_url_hd"].(string)
	if pic == "" {
		s.edit(placeholder, caption, domain.ParseHTML)
		return
	}

	// The placeholder stays until the photo is out so the text fallback has a target.
	if _, err := s.messenger.SendPhoto(chatID, pic, caption, domain.ParseHTML); err != nil {
		s.logger.Warn("Failed to send profile picture, falling back to text",
			zap.String("username", username),
			zap.Error(err),
		)
		s.edit(placeholder, caption, domain.ParseHTML)
		return
	}
	if err := s.messenger.Delete(placeholder); err != nil {
		s.logger.Warn("Failed to delete placeholder", zap.Error(err))
	}
}

// FreeFirePlayer shows the raw player record as indented JSON
func (s *LookupService) FreeFirePlayer(ctx context.Context, chatID int64, uid string) {
	s.answer(chatID, "🎯 Fetching Free Fire player info...", func() string {
		res := s.gateway.FreeFirePlayer(ctx, uid)
		return "🎮 <b>Free Fire Player Info</b>\n\n<pre>" + html.EscapeString(res.Indent()) + "</pre>"
	})
}

// answer sends the placeholder, computes the reply and edits it in
func (s *LookupService) answer(chatID int64, placeholderText string, reply func() string) {
	placeholder, err := s.messenger.SendText(chatID, placeholderText, domain.ParsePlain)
	if err != nil {
		s.logger.Warn("Failed to send placeholder", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}
	s.edit(placeholder, reply(), domain.ParseHTML)
}

func (s *LookupService) edit(msg domain.MessageRef, text string, mode domain.ParseMode) {
	if err := s.messenger.EditText(msg, text, mode); err != nil {
		s.logger.Warn("Failed to edit reply",
			zap.Int64("chat_id", msg.ChatID),
			zap.Int("message_id", msg.MessageID),
			zap.Error(err),
		)
	}
}

func instagramCaption(p map[string]any) string {
	field := func(name string) string {
		switch v := p[name].(type) {
		case nil:
			return "-"
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		default:
			return html.EscapeString(fmt.Sprint(v))
		}
	}
	handle := field("username")
	if handle != "-" {
		handle = "@" + handle
	}
	return "📸 <b>Instagram Info</b>\n\n" +
		"👤 Name: " + field("full_name") + "\n" +
		"🔖 Username: " + handle + "\n" +
		"📝 Bio: " + field("biography") + "\n" +
		"👥 Followers: " + field("followers") + "\n" +
		"➡ Following: " + field("following") + "\n" +
		"📦 Posts: " + field("posts") + "\n" +
		"📅 Created: " + field("account_creation_year") + "\n" +
		"✅ Verified: " + field("is_verified")
}
