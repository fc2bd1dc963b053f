package service

import (
	"context"
	"testing"

	"relaybot/internal/domain"
	"relaybot/internal/gateway"
	"relaybot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher(rules domain.ForwardRules, keywords []string, messenger *testutil.MockMessenger, gw *testutil.MockGateway) (*Dispatcher, *FlowTracker) {
	logger := testutil.NewTestLogger()
	flows := NewFlowTracker()
	d := NewDispatcher(
		flows,
		NewKeywordAlerter(NewKeywordScanner(keywords), messenger, operatorID, logger),
		NewForwarder(rules, messenger, logger),
		NewLookupService(gw, messenger, logger),
		logger,
	)
	return d, flows
}

func TestDispatcher_FlowThenPlainMessage(t *testing.T) {
	messenger := new(testutil.MockMessenger)
	gw := new(testutil.MockGateway)
	d, flows := newTestDispatcher(domain.ForwardRules{InboxChatID: inboxChat}, []string{"zuck"}, messenger, gw)
	ctx := context.Background()
	user := testutil.NewTestUser(42, "alice")

	prompt := d.BeginFlow(42, domain.FlowInstagramLookup)
	assert.Equal(t, domain.FlowInstagramLookup.Prompt(), prompt)
	assert.Equal(t, domain.FlowInstagramLookup, flows.pending(42))

	// the flow input is consumed by the lookup and nothing else
	ref := domain.MessageRef{ChatID: 42, MessageID: 501}
	messenger.On("SendText", int64(42), "🔎 Fetching Instagram info...", domain.ParsePlain).Return(ref, nil).Once()
	gw.On("InstagramProfile", mock.Anything, "zuck").Return(gateway.Result{Value: map[string]any{"status": "fail"}}).Once()
	messenger.On("EditText", ref, instagramFailed, domain.ParsePlain).Return(nil).Once()

	res := d.HandleMessage(ctx, testutil.NewPrivateMessage(2, user, "zuck"))

	assert.Equal(t, domain.FlowInstagramLookup, res.Flow)
	assert.Empty(t, res.Keyword)
	assert.Empty(t, res.Forwarding)
	assert.Equal(t, domain.FlowNone, flows.pending(42))
	messenger.AssertNotCalled(t, "Forward", mock.Anything, mock.Anything)
	messenger.AssertExpectations(t)

	// the next message is an ordinary one
	third := testutil.NewPrivateMessage(3, user, "zuck again")
	messenger.On("SendText", operatorID, containsAll("Keyword Mention Detected", "zuck again"), domain.ParseHTML).Return(domain.MessageRef{}, nil).Once()
	messenger.On("SendText", inboxChat, containsAll("Type: Message", "Message: zuck again"), domain.ParseHTML).Return(domain.MessageRef{}, nil).Once()
	messenger.On("Forward", third.Ref, inboxChat).Return(nil).Once()

	res = d.HandleMessage(ctx, third)

	assert.Equal(t, domain.FlowNone, res.Flow)
	assert.Equal(t, "zuck", res.Keyword)
	require.Len(t, res.Forwarding, 1)
	assert.Equal(t, domain.StatusForwarded, res.Forwarding[0].Status)
	gw.AssertNumberOfCalls(t, "InstagramProfile", 1)
	messenger.AssertExpectations(t)
}

func TestDispatcher_FlowIsPerUser(t *testing.T) {
	messenger := new(testutil.MockMessenger)
	gw := new(testutil.MockGateway)
	d, flows := newTestDispatcher(domain.ForwardRules{}, nil, messenger, gw)

	d.BeginFlow(42, domain.FlowGeminiPrompt)

	res := d.HandleMessage(context.Background(), testutil.NewPrivateMessage(1, testutil.NewTestUser(43, "bob"), "hello"))

	assert.Equal(t, domain.FlowNone, res.Flow)
	assert.Equal(t, domain.FlowGeminiPrompt, flows.pending(42))
	gw.AssertNotCalled(t, "AskGemini", mock.Anything, mock.Anything)
}

func TestDispatcher_MediaDoesNotConsumeFlow(t *testing.T) {
	messenger := new(testutil.MockMessenger)
	gw := new(testutil.MockGateway)
	d, flows := newTestDispatcher(domain.ForwardRules{}, []string{"x"}, messenger, gw)

	d.BeginFlow(42, domain.FlowFreeFireLookup)

	res := d.HandleMessage(context.Background(), testutil.NewPrivateMessage(1, testutil.NewTestUser(42, "alice"), ""))

	assert.Equal(t, domain.FlowNone, res.Flow)
	assert.Equal(t, domain.FlowFreeFireLookup, flows.pending(42))
}

func TestDispatcher_InboxFailuresDoNotEscape(t *testing.T) {
	messenger := new(testutil.MockMessenger)
	gw := new(testutil.MockGateway)
	rules := domain.ForwardRules{
		InboxChatID: inboxChat,
		Mirror:      domain.MirrorRule{SourceChatID: sourceChat, DestChatID: destChat},
	}
	d, _ := newTestDispatcher(rules, []string{"help"}, messenger, gw)

	messenger.On("SendText", inboxChat, mock.Anything, domain.ParseHTML).Return(domain.MessageRef{}, errForbidden)
	messenger.On("Forward", mock.Anything, inboxChat).Return(errForbidden)
	messenger.On("SendText", operatorID, mock.Anything, domain.ParseHTML).Return(domain.MessageRef{}, nil)

	msg := testutil.NewPrivateMessage(9, testutil.NewTestUser(42, "alice"), "help me")

	var res Dispatch
	assert.NotPanics(t, func() {
		res = d.HandleMessage(context.Background(), msg)
	})
	assert.Equal(t, "help", res.Keyword)
	require.Len(t, res.Forwarding, 1)
	assert.Equal(t, domain.StatusFailed, res.Forwarding[0].Status)

	// the next event is still processed
	next := testutil.NewGroupMessage(10, sourceChat, "Source", testutil.NewTestUser(7, "carol"), "plain")
	messenger.On("Forward", next.Ref, destChat).Return(nil).Once()

	res = d.HandleMessage(context.Background(), next)
	require.Len(t, res.Forwarding, 1)
	assert.Equal(t, domain.RuleMirror, res.Forwarding[0].Rule)
	assert.Equal(t, domain.StatusForwarded, res.Forwarding[0].Status)
}

func TestDispatcher_CaptureCommand(t *testing.T) {
	messenger := new(testutil.MockMessenger)
	d, _ := newTestDispatcher(domain.ForwardRules{InboxChatID: inboxChat}, nil, messenger, new(testutil.MockGateway))
	msg := testutil.NewPrivateMessage(5, testutil.NewTestUser(42, "alice"), "/insta")

	messenger.On("SendText", inboxChat, containsAll("Type: Command", "Command: /insta"), domain.ParseHTML).Return(domain.MessageRef{}, nil)
	messenger.On("Forward", msg.Ref, inboxChat).Return(nil)

	d.CaptureCommand(msg, "/insta")

	messenger.AssertExpectations(t)
}
