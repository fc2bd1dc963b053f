package domain

// Flow is a pending single-step conversation: the next text message
// from the user is the input for it.
type Flow string

const (
	FlowNone            Flow = ""
	FlowGeminiPrompt    Flow = "await_gemini"
	FlowDeepSeekPrompt  Flow = "await_deepseek"
	FlowInstagramLookup Flow = "await_insta"
	FlowFreeFireLookup  Flow = "await_ff"
)

// Prompt returns the text asking the user for the flow input
func (f Flow) Prompt() string {
	switch f {
	case FlowGeminiPrompt:
		return "🧠 Send your *Gemini 3* prompt now (just type message):"
	case FlowDeepSeekPrompt:
		return "🔥 Send your *DeepSeek 3.2* prompt now (just type message):"
	case FlowInstagramLookup:
		return "📸 Send Instagram username (e.g. zuck):"
	case FlowFreeFireLookup:
		return "🎮 Send Free Fire UID:"
	default:
		return ""
	}
}
