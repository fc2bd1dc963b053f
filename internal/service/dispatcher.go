package service

import (
	"context"

	"relaybot/internal/domain"
	"relaybot/internal/metrics"

	"go.uber.org/zap"
)

// Dispatch describes what the dispatcher did with one inbound message
type Dispatch struct {
	// Flow is the pending flow the message completed, FlowNone otherwise
	Flow domain.Flow
	// Keyword is the matched keyword, empty when none matched
	Keyword    string
	Forwarding []domain.RuleOutcome
}

// Dispatcher decides what an inbound plain message means: the completion of
// a pending flow, or an ordinary message subject to keyword alerts and the
// forwarding table.
type Dispatcher struct {
	flows     *FlowTracker
	alerter   *KeywordAlerter
	forwarder *Forwarder
	lookups   *LookupService
	logger    *zap.Logger
}

// NewDispatcher creates a new dispatcher
func NewDispatcher(
	flows *FlowTracker,
	alerter *KeywordAlerter,
	forwarder *Forwarder,
	lookups *LookupService,
	logger *zap.Logger,
) *Dispatcher {
	return &Dispatcher{
		flows:     flows,
		alerter:   alerter,
		forwarder: forwarder,
		lookups:   lookups,
		logger:    logger,
	}
}

// BeginFlow makes the user's next text message the input of flow and
// returns the prompt to show.
func (d *Dispatcher) BeginFlow(userID int64, flow domain.Flow) string {
	d.flows.Set(userID, flow)
	metrics.IncFlow(string(flow), "started")
	d.logger.Debug("Flow started",
		zap.Int64("user_id", userID),
		zap.String("flow", string(flow)),
	)
	return flow.Prompt()
}

// CaptureCommand reports a command invocation to the inbox
func (d *Dispatcher) CaptureCommand(msg domain.Message, command string) {
	d.forwarder.CaptureInbox(msg, command)
}

// HandleMessage processes one plain message. A text message from a user with
// a pending flow completes that flow and nothing else happens. Otherwise the
// keyword alert and every forwarding rule run.
func (d *Dispatcher) HandleMessage(ctx context.Context, msg domain.Message) Dispatch {
	if msg.HasText() {
		if flow := d.flows.Consume(msg.Sender.ID); flow != domain.FlowNone {
			d.logger.Info("Completing flow",
				zap.Int64("user_id", msg.Sender.ID),
				zap.String("flow", string(flow)),
			)
			d.lookups.CompleteFlow(ctx, flow, msg.Ref.ChatID, msg.Text)
			return Dispatch{Flow: flow}
		}
	}

	var res Dispatch
	if kw, ok := d.alerter.Check(msg); ok {
		res.Keyword = kw
	}
	res.Forwarding = d.forwarder.Route(msg)
	return res
}
