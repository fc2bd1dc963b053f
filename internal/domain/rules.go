package domain

// TrackedSender shadows every message of SenderID into ChatID
type TrackedSender struct {
	SenderID int64
	ChatID   int64
}

// MirrorRule relays every message of SourceChatID into DestChatID
type MirrorRule struct {
	SourceChatID int64
	DestChatID   int64
}

// ForwardRules is the fixed forwarding table. Zero chat ids disable a rule.
type ForwardRules struct {
	InboxChatID int64
	Tracked     []TrackedSender
	Mirror      MirrorRule
}
