package bridge

import "sync"

// TurnState tracks where a dialogue turn's tool call is in its
// lifecycle. Every call traverses Idle → AwaitingToolCall →
// Dispatching → terminal → Idle.
type TurnState string

// Turn states.
const (
	StateIdle             TurnState = "idle"
	StateAwaitingToolCall TurnState = "awaiting_tool_call"
	StateDispatching      TurnState = "dispatching"
	StateCompleted        TurnState = "completed"
	StateFailed           TurnState = "failed"
	StateTimedOut         TurnState = "timed_out"
)

// stateTracker holds the bridge's observable turn state.
type stateTracker struct {
	mu    sync.RWMutex
	state TurnState
}

func newStateTracker() *stateTracker {
	return &stateTracker{state: StateIdle}
}

func (t *stateTracker) set(s TurnState) {
	t.mu.Lock()
	t.state = s
	t.mu.Unlock()
}

func (t *stateTracker) get() TurnState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}
