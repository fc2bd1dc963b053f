package repository

import (
	"relaybot/internal/domain"
)

// UserRepository stores the ids of users that ever talked to the bot
type UserRepository interface {
	// EnsureUser appends the id once; created reports whether it was new
	EnsureUser(userID int64) (created bool, err error)
	ListUsers() ([]int64, error)
}

// GroupRepository stores the ids of groups the bot joined
type GroupRepository interface {
	// AddGroup appends the id once; created reports whether it was new
	AddGroup(chatID int64) (created bool, err error)
	ListGroups() ([]int64, error)
}

// StatsRepository stores cumulative broadcast counters
type StatsRepository interface {
	GetStats() (domain.BroadcastStats, error)
	// AddStats increments the stored counters by delta and returns the new totals
	AddStats(delta domain.BroadcastStats) (domain.BroadcastStats, error)
}
