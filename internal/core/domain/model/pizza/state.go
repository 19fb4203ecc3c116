package pizza

import (
	"fmt"

	"kitchen/internal/pkg/errs"
)

// State is the position of a pizza in its lifecycle. Values are ordered.
type State int

const (
	// Unknown is the state of a pizza that has not seen its AddedEvent.
	Unknown State = iota
	Created
	Prepping
	Baking
	// FinishedBaking is terminal.
	FinishedBaking
)

const entityName = "pizza"

func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:        "Unknown",
		Created:        "Created",
		Prepping:       "Prepping",
		Baking:         "Baking",
		FinishedBaking: "FinishedBaking",
	}
}

// Validate accepts every state a stored pizza can be in.
func (s State) Validate() error {
	if s < Created || s > FinishedBaking {
		return errs.NewValueIsInvalidErrorWithCause("state is invalid", fmt.Errorf("%d is not a valid pizza state", s))
	}
	return nil
}

func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Add transitions Unknown -> Created.
func (s State) Add() (State, error) {
	if s != Unknown {
		return s, errs.NewIllegalStateTransitionError(entityName, "add", s.String())
	}
	return Created, nil
}

// StartPrep transitions Created -> Prepping.
func (s State) StartPrep() (State, error) {
	if s != Created {
		return s, errs.NewIllegalStateTransitionError(entityName, "start prep", s.String())
	}
	return Prepping, nil
}

// FinishPrep transitions Prepping -> Baking. The pizza goes into the oven as
// soon as prep is done.
func (s State) FinishPrep() (State, error) {
	if s != Prepping {
		return s, errs.NewIllegalStateTransitionError(entityName, "finish prep", s.String())
	}
	return Baking, nil
}

// FinishBake transitions Baking -> FinishedBaking.
func (s State) FinishBake() (State, error) {
	if s != Baking {
		return s, errs.NewIllegalStateTransitionError(entityName, "finish bake", s.String())
	}
	return FinishedBaking, nil
}
