package service

import (
	"sync"
	"testing"

	"relaybot/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestFlowTracker_ConsumeOnce(t *testing.T) {
	tracker := NewFlowTracker()

	tracker.Set(42, domain.FlowInstagramLookup)

	assert.Equal(t, domain.FlowInstagramLookup, tracker.Consume(42))
	assert.Equal(t, domain.FlowNone, tracker.Consume(42))
}

func TestFlowTracker_SetOverwrites(t *testing.T) {
	tracker := NewFlowTracker()

	tracker.Set(42, domain.FlowGeminiPrompt)
	tracker.Set(42, domain.FlowFreeFireLookup)

	assert.Equal(t, domain.FlowFreeFireLookup, tracker.Consume(42))
	assert.Equal(t, domain.FlowNone, tracker.Consume(42))
}

func TestFlowTracker_UsersAreIndependent(t *testing.T) {
	tracker := NewFlowTracker()

	tracker.Set(1, domain.FlowGeminiPrompt)
	tracker.Set(2, domain.FlowDeepSeekPrompt)

	assert.Equal(t, domain.FlowDeepSeekPrompt, tracker.Consume(2))
	assert.Equal(t, domain.FlowGeminiPrompt, tracker.pending(1))
	assert.Equal(t, domain.FlowGeminiPrompt, tracker.Consume(1))
}

func TestFlowTracker_SetNoneClears(t *testing.T) {
	tracker := NewFlowTracker()

	tracker.Set(1, domain.FlowGeminiPrompt)
	tracker.Set(1, domain.FlowNone)

	assert.Equal(t, domain.FlowNone, tracker.Consume(1))
}

func TestFlowTracker_ConcurrentConsumeYieldsOnce(t *testing.T) {
	tracker := NewFlowTracker()
	tracker.Set(7, domain.FlowGeminiPrompt)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		hits int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if tracker.Consume(7) != domain.FlowNone {
				mu.Lock()
				hits++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, hits)
}
