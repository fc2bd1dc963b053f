package service

import (
	"fmt"
	"strings"
	"testing"

	"relaybot/internal/domain"
	"relaybot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestKeywordScanner_Scan(t *testing.T) {
	scanner := NewKeywordScanner([]string{"shawon", "sn", "Izumi", ""})

	tests := []struct {
		name          string
		text          string
		expectedKw    string
		expectedMatch bool
	}{
		{
			name:          "exact match",
			text:          "shawon",
			expectedKw:    "shawon",
			expectedMatch: true,
		},
		{
			name:          "upper case text",
			text:          "HEY SHAWON!",
			expectedKw:    "shawon",
			expectedMatch: true,
		},
		{
			name:          "mixed case keyword",
			text:          "izumi was here",
			expectedKw:    "Izumi",
			expectedMatch: true,
		},
		{
			name:          "substring inside a word",
			text:          "snake",
			expectedKw:    "sn",
			expectedMatch: true,
		},
		{
			name:          "first configured keyword wins",
			text:          "sn and shawon",
			expectedKw:    "shawon",
			expectedMatch: true,
		},
		{
			name:          "no match",
			text:          "hello world",
			expectedMatch: false,
		},
		{
			name:          "empty text",
			text:          "",
			expectedMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kw, ok := scanner.Scan(tt.text)
			assert.Equal(t, tt.expectedMatch, ok)
			assert.Equal(t, tt.expectedKw, kw)
		})
	}
}

func TestKeywordScanner_ReturnedKeywordIsFirstSubstring(t *testing.T) {
	keywords := []string{"alpha", "beta", "gamma"}
	scanner := NewKeywordScanner(keywords)

	texts := []string{"GAMMA beta", "xxBETAxx alpha", "gamma", "ALPHABET"}
	for _, text := range texts {
		kw, ok := scanner.Scan(text)
		assert.True(t, ok, text)

		lowered := strings.ToLower(text)
		for _, candidate := range keywords {
			if strings.Contains(lowered, candidate) {
				assert.Equal(t, candidate, kw, text)
				break
			}
		}
	}
}

func TestKeywordAlerter_Check(t *testing.T) {
	sender := testutil.NewTestUser(42, "alice")
	msg := testutil.NewGroupMessage(1, -100, "Gophers", sender, "ping SHAWON and sn")

	messenger := new(testutil.MockMessenger)
	messenger.On("SendText", int64(1), mock.MatchedBy(func(text string) bool {
		return strings.Contains(text, "<code>shawon</code>") &&
			strings.Contains(text, "Test User (@alice)") &&
			strings.Contains(text, "<b>Chat:</b> Gophers") &&
			strings.Contains(text, "ping SHAWON and sn")
	}), domain.ParseHTML).Return(domain.MessageRef{}, nil).Once()

	alerter := NewKeywordAlerter(NewKeywordScanner([]string{"shawon", "sn"}), messenger, 1, testutil.NewTestLogger())

	kw, ok := alerter.Check(msg)

	assert.True(t, ok)
	assert.Equal(t, "shawon", kw)
	messenger.AssertExpectations(t)
	messenger.AssertNumberOfCalls(t, "SendText", 1)
}

func TestKeywordAlerter_NoMatchSendsNothing(t *testing.T) {
	messenger := new(testutil.MockMessenger)
	alerter := NewKeywordAlerter(NewKeywordScanner([]string{"shawon"}), messenger, 1, testutil.NewTestLogger())

	_, ok := alerter.Check(testutil.NewPrivateMessage(1, testutil.NewTestUser(2, ""), "hello"))

	assert.False(t, ok)
	messenger.AssertNotCalled(t, "SendText", mock.Anything, mock.Anything, mock.Anything)
}

func TestKeywordAlerter_SendFailureIsSwallowed(t *testing.T) {
	messenger := new(testutil.MockMessenger)
	messenger.On("SendText", int64(1), mock.Anything, domain.ParseHTML).
		Return(domain.MessageRef{}, fmt.Errorf("forbidden"))

	alerter := NewKeywordAlerter(NewKeywordScanner([]string{"x"}), messenger, 1, testutil.NewTestLogger())

	kw, ok := alerter.Check(testutil.NewPrivateMessage(1, testutil.NewTestUser(2, ""), "x"))

	assert.True(t, ok)
	assert.Equal(t, "x", kw)
}

func TestKeywordAlert_EscapesHTML(t *testing.T) {
	msg := testutil.NewPrivateMessage(1, domain.User{ID: 3, FirstName: "<b>"}, "a < b")

	text := keywordAlert("<", msg)

	assert.Contains(t, text, "<code>&lt;</code>")
	assert.Contains(t, text, "&lt;b&gt;")
	assert.Contains(t, text, "<b>Chat:</b> Private")
	assert.Contains(t, text, "a &lt; b")
}
