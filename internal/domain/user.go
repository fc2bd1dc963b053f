package domain

import "strings"

// User represents a Telegram account observed by the bot
type User struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
}

// FullName returns first and last name joined by a space
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Handle returns the @username, or "-" when the account has none
func (u User) Handle() string {
	if u.Username == "" {
		return "-"
	}
	return "@" + u.Username
}

// Group represents a group chat the bot is a member of
type Group struct {
	ChatID int64
	Type   ChatType
	Title  string
}
