package domain

import (
	"fmt"
	"strings"
)

// FlowState is the conversation mode persisted for a user between turns.
// Its string value is the wire and storage representation.
type FlowState string

const (
	FlowNormal      FlowState = "Normal"      // Default mode
	FlowCheckIn     FlowState = "CheckIn"     // A wellness check-in was opened
	FlowSuicideRisk FlowState = "SuicideRisk" // A risk message was detected
)

// FlowStates lists every valid flow state in declaration order.
var FlowStates = []FlowState{FlowNormal, FlowCheckIn, FlowSuicideRisk}

// Valid reports whether f is one of the known flow states.
func (f FlowState) Valid() bool {
	switch f {
	case FlowNormal, FlowCheckIn, FlowSuicideRisk:
		return true
	}
	return false
}

// OrDefault returns FlowNormal for the zero value and any unknown state.
func (f FlowState) OrDefault() FlowState {
	if !f.Valid() {
		return FlowNormal
	}
	return f
}

func (f FlowState) String() string {
	return string(f)
}

// ParseFlowState converts a stored or user supplied value into a FlowState.
// Matching is exact, as the stored values are the literal enum names.
func ParseFlowState(s string) (FlowState, error) {
	f := FlowState(s)
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q (want one of %s)", ErrInvalidFlowState, s, FlowStateNames())
	}
	return f, nil
}

// FlowStateNames returns the valid states joined by commas, e.g. "Normal,CheckIn,SuicideRisk".
func FlowStateNames() string {
	names := make([]string, len(FlowStates))
	for i, f := range FlowStates {
		names[i] = string(f)
	}
	return strings.Join(names, ",")
}
