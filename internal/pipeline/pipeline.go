// Package pipeline tracks the inbetween orchestrator through its fixed
// sequence of states and plans the output frames it emits.
//
// The sequence is straight-line with no branching or retry:
//
//	Init -> FlowComputed -> MapsComputed -> PerFrame (once per frame) -> Done
package pipeline

import (
	"errors"
	"fmt"
	"sync"
)

// ErrInvalidParameter indicates an orchestrator parameter outside its domain.
var ErrInvalidParameter = errors.New("invalid parameter")

// ErrInvalidTransition indicates an out-of-order state change.
var ErrInvalidTransition = errors.New("invalid pipeline transition")

// State identifies a step of the orchestrator.
type State int

const (
	// StateInit validates inputs; nothing has been computed.
	StateInit State = iota

	// StateFlowComputed holds both directed displacement fields.
	StateFlowComputed

	// StateMapsComputed holds the protection, reliability and line maps
	// shared read-only by every frame.
	StateMapsComputed

	// StatePerFrame emits frames, once per timestep.
	StatePerFrame

	// StateDone follows the last emitted frame.
	StateDone
)

var stateNames = [...]string{
	StateInit:         "init",
	StateFlowComputed: "flow_computed",
	StateMapsComputed: "maps_computed",
	StatePerFrame:     "per_frame",
	StateDone:         "done",
}

// String returns the state name used in logs.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Pipeline records the progress of one inbetween invocation. Frame
// emission may be reported from several goroutines.
type Pipeline struct {
	frames  int
	state   State
	emitted int
	mu      sync.Mutex
}

// New creates a pipeline that will emit the given number of frames.
func New(frames int) (*Pipeline, error) {
	if frames < 1 {
		return nil, fmt.Errorf("%w: frame count must be at least 1, got %d", ErrInvalidParameter, frames)
	}
	return &Pipeline{frames: frames, state: StateInit}, nil
}

// Advance moves to the next state. Only the successor of the current
// state is accepted, and Done only after every frame was emitted.
func (p *Pipeline) Advance(next State) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if next != p.state+1 {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.state, next)
	}
	if next == StateDone && p.emitted != p.frames {
		return fmt.Errorf("%w: %s -> %s after %d of %d frames",
			ErrInvalidTransition, p.state, next, p.emitted, p.frames)
	}
	p.state = next
	return nil
}

// EmitFrame records one emitted frame and returns how many have been
// emitted so far. It is valid only in StatePerFrame.
func (p *Pipeline) EmitFrame() (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StatePerFrame {
		return p.emitted, fmt.Errorf("%w: frame emitted in state %s", ErrInvalidTransition, p.state)
	}
	if p.emitted == p.frames {
		return p.emitted, fmt.Errorf("%w: all %d frames already emitted", ErrInvalidTransition, p.frames)
	}
	p.emitted++
	return p.emitted, nil
}

// State returns the current state.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Emitted returns the number of frames emitted so far.
func (p *Pipeline) Emitted() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.emitted
}
