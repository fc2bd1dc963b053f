package handler

import (
	"testing"

	"relaybot/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestCleanCallbackData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "normal string",
			input:    "test_data",
			expected: "test_data",
		},
		{
			name:     "string with whitespace",
			input:    "  test_data  ",
			expected: "test_data",
		},
		{
			name:     "string with newline",
			input:    "test\ndata",
			expected: "testdata",
		},
		{
			name:     "string with tab",
			input:    "test\tdata",
			expected: "testdata",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "only whitespace",
			input:    "   ",
			expected: "",
		},
		{
			name:     "string with unprintable characters",
			input:    "test\x00data\x01",
			expected: "testdata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cleanCallbackData(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestButtonFlows(t *testing.T) {
	tests := []struct {
		data     string
		expected domain.Flow
	}{
		{data: "btn_gemini", expected: domain.FlowGeminiPrompt},
		{data: "btn_deepseek", expected: domain.FlowDeepSeekPrompt},
		{data: "btn_insta", expected: domain.FlowInstagramLookup},
		{data: "btn_ff", expected: domain.FlowFreeFireLookup},
	}

	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			// telebot prefixes unique button data with \f
			flow, ok := buttonFlows[cleanCallbackData("\f"+tt.data)]
			assert.True(t, ok)
			assert.Equal(t, tt.expected, flow)
		})
	}

	_, ok := buttonFlows["btn_ping"]
	assert.False(t, ok)
}

func TestStartMenuMarkup(t *testing.T) {
	menu := startMenuMarkup()

	var uniques []string
	for _, row := range menu.InlineKeyboard {
		for _, btn := range row {
			uniques = append(uniques, btn.Unique)
		}
	}
	assert.Equal(t, []string{"btn_gemini", "btn_deepseek", "btn_insta", "btn_ff", "btn_ping", "btn_help"}, uniques)
}
