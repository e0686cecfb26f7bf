package service

import (
	"strings"

	"shareit/internal/database"
)

// Booking state filters accepted by the list endpoints.
const (
	StateAll      = "ALL"
	StateCurrent  = "CURRENT"
	StateFuture   = "FUTURE"
	StatePast     = "PAST"
	StateWaiting  = "WAITING"
	StateRejected = "REJECTED"
)

var knownStates = map[string]bool{
	StateAll:      true,
	StateCurrent:  true,
	StateFuture:   true,
	StatePast:     true,
	StateWaiting:  true,
	StateRejected: true,
}

// ParseBookingState normalizes a state filter value. An empty value defaults to
// ALL; anything not in the closed set fails with an unknown-state error.
func ParseBookingState(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return StateAll, nil
	}
	state := strings.ToUpper(strings.TrimSpace(raw))
	if !knownStates[state] {
		return "", database.UnknownStatef("Unknown state: %s", raw)
	}
	return state, nil
}
