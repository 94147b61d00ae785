package bridge

import "fmt"

// State is a device lifecycle state.
type State int32

// Lifecycle states, in order.
const (
	Starting State = iota
	Running
	Closing
	Closed
)

var stateNames = [...]string{
	Starting: "starting",
	Running:  "running",
	Closing:  "closing",
	Closed:   "closed",
}

// String returns the lowercase state name.
func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// State returns the current lifecycle state.
func (b *Bridge) State() State {
	return State(b.state.Load())
}

// Done returns a channel that is closed when the bridge reaches Closed.
func (b *Bridge) Done() <-chan struct{} {
	return b.closed
}

// Transition moves the lifecycle forward to to. States may be skipped, so a
// device that fails to start can go from Starting straight to Closed.
// Moving to the current or an earlier state returns ErrInvalidTransition.
func (b *Bridge) Transition(to State) error {
	if to < Starting || to > Closed {
		return fmt.Errorf("%w: unknown state %v", ErrInvalidTransition, to)
	}
	for {
		from := State(b.state.Load())
		if to <= from {
			return fmt.Errorf("%w: %v -> %v", ErrInvalidTransition, from, to)
		}
		if b.state.CompareAndSwap(int32(from), int32(to)) {
			b.log.Info("bridge: state changed", "from", from, "to", to)
			if to == Closed {
				b.shutdownQueue()
			}
			return nil
		}
	}
}
