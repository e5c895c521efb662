package booking

// Decide applies the owner's decision to the current status.
// The only legal transitions are WAITING -> APPROVED and WAITING -> REJECTED;
// both are terminal.
func Decide(current Status, approved bool) (Status, error) {
	if current != StatusWaiting {
		return current, ErrAlreadyDecided
	}
	if approved {
		return StatusApproved, nil
	}
	return StatusRejected, nil
}

// ParseState maps a query-string value onto the closed State enum.
// Unknown values are rejected before they reach the engine.
func ParseState(s string) (State, error) {
	switch State(s) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return State(s), nil
	}
	return "", ErrUnknownState
}
