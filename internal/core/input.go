package core

// Intents is the decoded input for a single simulation tick. The platform
// layer turns raw key events into intents; the simulation never sees keys.
type Intents struct {
	JumpPressed bool // edge-triggered: true only on the tick the key went down
	SteerLeft   bool // held
	SteerRight  bool // held
	Pause       bool // toggle request
}

// Steer returns -1, 0 or +1 for the held steering direction. Opposing keys
// cancel out.
func (in Intents) Steer() int {
	switch {
	case in.SteerLeft && !in.SteerRight:
		return -1
	case in.SteerRight && !in.SteerLeft:
		return 1
	default:
		return 0
	}
}

// IsZero reports whether no intent is set.
func (in Intents) IsZero() bool {
	return in == Intents{}
}
