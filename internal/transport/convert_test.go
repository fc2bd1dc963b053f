package transport

import (
	"testing"

	"relaybot/internal/domain"

	"github.com/stretchr/testify/assert"
	tele "gopkg.in/telebot.v3"
)

func TestToMessage(t *testing.T) {
	tests := []struct {
		name     string
		msg      *tele.Message
		expected domain.Message
	}{
		{
			name:     "nil",
			msg:      nil,
			expected: domain.Message{},
		},
		{
			name: "private text",
			msg: &tele.Message{
				ID:     5,
				Text:   "hello",
				Sender: &tele.User{ID: 42, FirstName: "Ann", Username: "ann"},
				Chat:   &tele.Chat{ID: 42, Type: tele.ChatPrivate},
			},
			expected: domain.Message{
				Ref:      domain.MessageRef{ChatID: 42, MessageID: 5},
				ChatType: domain.ChatPrivate,
				Sender:   domain.User{ID: 42, FirstName: "Ann", Username: "ann"},
				Text:     "hello",
			},
		},
		{
			name: "supergroup photo",
			msg: &tele.Message{
				ID:      6,
				Caption: "look",
				Photo:   &tele.Photo{},
				Sender:  &tele.User{ID: 7},
				Chat:    &tele.Chat{ID: -100, Type: tele.ChatSuperGroup, Title: "Team"},
			},
			expected: domain.Message{
				Ref:       domain.MessageRef{ChatID: -100, MessageID: 6},
				ChatType:  domain.ChatSuperGroup,
				ChatTitle: "Team",
				Sender:    domain.User{ID: 7},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToMessage(tt.msg))
		})
	}
}

func TestToChatType(t *testing.T) {
	assert.Equal(t, domain.ChatPrivate, ToChatType(tele.ChatPrivate))
	assert.Equal(t, domain.ChatGroup, ToChatType(tele.ChatGroup))
	assert.Equal(t, domain.ChatSuperGroup, ToChatType(tele.ChatSuperGroup))
	assert.Equal(t, domain.ChatChannel, ToChatType(tele.ChatChannel))
	assert.Equal(t, domain.ChatChannel, ToChatType(tele.ChatChannelPrivate))
}

func TestIsMemberRole(t *testing.T) {
	assert.True(t, IsMemberRole(tele.Member))
	assert.True(t, IsMemberRole(tele.Administrator))
	assert.True(t, IsMemberRole(tele.Creator))
	assert.False(t, IsMemberRole(tele.Left))
	assert.False(t, IsMemberRole(tele.Kicked))
	assert.False(t, IsMemberRole(tele.Restricted))
}

func TestToGroup(t *testing.T) {
	assert.Equal(t,
		domain.Group{ChatID: -5, Type: domain.ChatGroup, Title: "g"},
		ToGroup(&tele.Chat{ID: -5, Type: tele.ChatGroup, Title: "g"}),
	)
	assert.Equal(t, domain.Group{}, ToGroup(nil))
}
