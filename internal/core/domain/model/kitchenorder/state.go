package kitchenorder

import (
	"fmt"

	"kitchen/internal/pkg/errs"
)

// State is the position of a kitchen order in its lifecycle. Values are ordered.
type State int

const (
	Unknown State = iota
	Created
	Prepping
	Baking
	Assembling
	FinishedAssembly
)

const entityName = "kitchen order"

func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:          "Unknown",
		Created:          "Created",
		Prepping:         "Prepping",
		Baking:           "Baking",
		Assembling:       "Assembling",
		FinishedAssembly: "FinishedAssembly",
	}
}

func (s State) Validate() error {
	if s < Created || s > FinishedAssembly {
		return errs.NewValueIsInvalidErrorWithCause("state is invalid", fmt.Errorf("%d is not a valid kitchen order state", s))
	}
	return nil
}

func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

func (s State) Add() (State, error) {
	return s.step(Unknown, Created, "add")
}

func (s State) StartPrep() (State, error) {
	return s.step(Created, Prepping, "start prep")
}

func (s State) StartBake() (State, error) {
	return s.step(Prepping, Baking, "start bake")
}

func (s State) StartAssembly() (State, error) {
	return s.step(Baking, Assembling, "start assembly")
}

func (s State) FinishAssembly() (State, error) {
	return s.step(Assembling, FinishedAssembly, "finish assembly")
}

// StepToward returns the state right after s on the way to target. It never
// moves backwards and never leaves Unknown.
func (s State) StepToward(target State) (State, bool) {
	if s == Unknown || target <= s || s >= FinishedAssembly {
		return s, false
	}
	return s + 1, true
}

func (s State) step(from, to State, transition string) (State, error) {
	if s != from {
		return s, errs.NewIllegalStateTransitionError(entityName, transition, s.String())
	}
	return to, nil
}
