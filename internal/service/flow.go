package service

import (
	"sync"

	"relaybot/internal/domain"
)

// FlowTracker holds at most one pending flow per user for the process
// lifetime. Flows never expire: one that is never consumed stays until it is
// overwritten or the process restarts.
type FlowTracker struct {
	mu    sync.Mutex
	flows map[int64]domain.Flow
}

// NewFlowTracker creates an empty tracker
func NewFlowTracker() *FlowTracker {
	return &FlowTracker{flows: make(map[int64]domain.Flow)}
}

// Set records a flow for the user, replacing any pending one
func (t *FlowTracker) Set(userID int64, flow domain.Flow) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if flow == domain.FlowNone {
		delete(t.flows, userID)
		return
	}
	t.flows[userID] = flow
}

// Consume returns the pending flow and clears it
func (t *FlowTracker) Consume(userID int64) domain.Flow {
	t.mu.Lock()
	defer t.mu.Unlock()

	flow, ok := t.flows[userID]
	if !ok {
		return domain.FlowNone
	}
	delete(t.flows, userID)
	return flow
}

// pending returns the pending flow without clearing it
func (t *FlowTracker) pending(userID int64) domain.Flow {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.flows[userID]
}
