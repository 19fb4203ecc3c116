package kitchenorder

import (
	"kitchen/internal/core/domain/model/pizza"
)

// DeriveState is the status an order should have given the current states
// of all of its pizzas:
//
//   - FinishedAssembly when every pizza has finished baking
//   - Assembling when at least one, but not every, pizza has finished baking
//   - Baking when a pizza is baking and none has finished
//   - Prepping when a pizza is prepping and none is further along
//   - Created otherwise
//
// The result depends only on the set of states, never on the order in which
// pizzas reached them.
func DeriveState(pizzaStates []pizza.State) State {
	if len(pizzaStates) == 0 {
		return Created
	}

	var finished, baking, prepping int
	for _, s := range pizzaStates {
		switch s {
		case pizza.FinishedBaking:
			finished++
		case pizza.Baking:
			baking++
		case pizza.Prepping:
			prepping++
		}
	}

	switch {
	case finished == len(pizzaStates):
		return FinishedAssembly
	case finished > 0:
		return Assembling
	case baking > 0:
		return Baking
	case prepping > 0:
		return Prepping
	default:
		return Created
	}
}
