package transport

import (
	"errors"
	"testing"

	"relaybot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

type call struct {
	method string
	to     string
	what   interface{}
	target tele.Editable
	opts   []interface{}
}

type fakeAPI struct {
	calls []call
	err   error
}

func (f *fakeAPI) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	f.calls = append(f.calls, call{method: "Send", to: to.Recipient(), what: what, opts: opts})
	if f.err != nil {
		return nil, f.err
	}
	return &tele.Message{ID: 99, Chat: &tele.Chat{ID: -1}}, nil
}

func (f *fakeAPI) Forward(to tele.Recipient, msg tele.Editable, opts ...interface{}) (*tele.Message, error) {
	f.calls = append(f.calls, call{method: "Forward", to: to.Recipient(), target: msg, opts: opts})
	return nil, f.err
}

func (f *fakeAPI) Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error) {
	f.calls = append(f.calls, call{method: "Edit", target: msg, what: what, opts: opts})
	return nil, f.err
}

func (f *fakeAPI) Delete(msg tele.Editable) error {
	f.calls = append(f.calls, call{method: "Delete", target: msg})
	return f.err
}

func TestMessenger_SendText(t *testing.T) {
	api := &fakeAPI{}
	m := NewMessenger(api)

	ref, err := m.SendText(-1, "<b>hi</b>", domain.ParseHTML)

	require.NoError(t, err)
	assert.Equal(t, domain.MessageRef{ChatID: -1, MessageID: 99}, ref)
	require.Len(t, api.calls, 1)
	assert.Equal(t, "-1", api.calls[0].to)
	assert.Equal(t, "<b>hi</b>", api.calls[0].what)
	assert.Equal(t, []interface{}{&tele.SendOptions{ParseMode: tele.ModeHTML}}, api.calls[0].opts)
}

func TestMessenger_SendPhoto(t *testing.T) {
	api := &fakeAPI{}
	m := NewMessenger(api)

	_, err := m.SendPhoto(-1, "https://cdn/x.jpg", "caption", domain.ParsePlain)

	require.NoError(t, err)
	photo, ok := api.calls[0].what.(*tele.Photo)
	require.True(t, ok)
	assert.Equal(t, "https://cdn/x.jpg", photo.FileURL)
	assert.Equal(t, "caption", photo.Caption)
}

func TestMessenger_ForwardEditDelete(t *testing.T) {
	api := &fakeAPI{}
	m := NewMessenger(api)
	ref := domain.MessageRef{ChatID: 42, MessageID: 7}

	require.NoError(t, m.Forward(ref, -500))
	require.NoError(t, m.EditText(ref, "new", domain.ParseMarkdown))
	require.NoError(t, m.Delete(ref))

	require.Len(t, api.calls, 3)
	for _, c := range api.calls {
		msgID, chatID := c.target.MessageSig()
		assert.Equal(t, "7", msgID)
		assert.Equal(t, int64(42), chatID)
	}
	assert.Equal(t, "-500", api.calls[0].to)
	assert.Equal(t, []interface{}{&tele.SendOptions{ParseMode: tele.ModeMarkdown}}, api.calls[1].opts)
}

func TestMessenger_WrapsErrors(t *testing.T) {
	cause := errors.New("telegram: bot was blocked by the user (403)")
	m := NewMessenger(&fakeAPI{err: cause})
	ref := domain.MessageRef{ChatID: 42, MessageID: 7}

	_, err := m.SendText(42, "x", domain.ParsePlain)
	assert.ErrorIs(t, err, cause)
	_, err = m.SendPhoto(42, "u", "c", domain.ParsePlain)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, m.Forward(ref, 1), cause)
	assert.ErrorIs(t, m.EditText(ref, "x", domain.ParsePlain), cause)
	assert.ErrorIs(t, m.Delete(ref), cause)
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, tele.ModeHTML, parseMode(domain.ParseHTML))
	assert.Equal(t, tele.ModeMarkdown, parseMode(domain.ParseMarkdown))
	assert.Equal(t, tele.ModeDefault, parseMode(domain.ParsePlain))
}
