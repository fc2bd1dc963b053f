package domain

// BroadcastStats holds cumulative broadcast counters
type BroadcastStats struct {
	SentUsers    int `json:"sent_users"`
	FailedUsers  int `json:"failed_users"`
	SentGroups   int `json:"sent_groups"`
	FailedGroups int `json:"failed_groups"`
}

// Add returns s increased by delta
func (s BroadcastStats) Add(delta BroadcastStats) BroadcastStats {
	return BroadcastStats{
		SentUsers:    s.SentUsers + delta.SentUsers,
		FailedUsers:  s.FailedUsers + delta.FailedUsers,
		SentGroups:   s.SentGroups + delta.SentGroups,
		FailedGroups: s.FailedGroups + delta.FailedGroups,
	}
}

// Audience selects which counters a broadcast run feeds
type Audience string

const (
	AudienceGroups Audience = "groups"
	AudienceUsers  Audience = "users"
)

// Delta converts a run result into a stats increment for the audience
func (a Audience) Delta(r BroadcastResult) BroadcastStats {
	if a == AudienceUsers {
		return BroadcastStats{SentUsers: r.Sent, FailedUsers: r.Failed}
	}
	return BroadcastStats{SentGroups: r.Sent, FailedGroups: r.Failed}
}

// BroadcastResult is the tally of one fan-out run
type BroadcastResult struct {
	Sent   int
	Failed int
}

// Payload is what a broadcast delivers: plain text, or a photo URL with a caption
type Payload struct {
	Text     string
	MediaURL string
}

// IsMedia reports whether the payload is a photo
func (p Payload) IsMedia() bool {
	return p.MediaURL != ""
}
