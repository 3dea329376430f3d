package booking

import "errors"

var ErrUnknownListState = errors.New("unknown booking list state")

// ListState is the filter token for time-relative booking listings.
// CURRENT/PAST/FUTURE are evaluated against a reference instant captured
// once per listing call; WAITING/REJECTED filter by status.
type ListState string

const (
	StateAll      ListState = "ALL"
	StateCurrent  ListState = "CURRENT"
	StatePast     ListState = "PAST"
	StateFuture   ListState = "FUTURE"
	StateWaiting  ListState = "WAITING"
	StateRejected ListState = "REJECTED"
)

func ParseListState(raw string) (ListState, error) {
	switch ListState(raw) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return ListState(raw), nil
	default:
		return "", ErrUnknownListState
	}
}

func (s ListState) String() string {
	return string(s)
}
