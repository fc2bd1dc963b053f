package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Duration
		expected string
	}{
		{name: "zero", input: 0, expected: "0:00:00"},
		{name: "seconds are truncated", input: 61*time.Second + 900*time.Millisecond, expected: "0:01:01"},
		{name: "hours", input: 13*time.Hour + 5*time.Minute, expected: "13:05:00"},
		{name: "one day", input: 25 * time.Hour, expected: "1 day, 1:00:00"},
		{name: "days", input: 72*time.Hour + 3*time.Second, expected: "3 days, 0:00:03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatUptime(tt.input))
		})
	}
}

func TestPingText(t *testing.T) {
	text := pingText(Options{BotName: "Hinata", BotUsername: "@Hinata_00_bot"}, 42*time.Millisecond, time.Hour)

	assert.Contains(t, text, "Hi! I’m Hinata")
	assert.Contains(t, text, "<code>@Hinata_00_bot</code>")
	assert.Contains(t, text, "<code>42 ms</code>")
	assert.Contains(t, text, "<code>1:00:00</code>")
}

func TestWelcomeText(t *testing.T) {
	assert.Contains(t, welcomeText("Hinata"), "*Welcome to Hinata*")
}
