// Package pizza implements the Pizza aggregate: a single pizza moving through
// the kitchen as a strictly forward state machine.
//
//	Unknown ──> Created ──> Prepping ──> Baking ──> FinishedBaking
//
// A pizza has no state of its own outside its events. Commands check the
// current state, publish one event on the "pizzas" topic and apply it.
// RestorePizza rebuilds a pizza by folding its stream.
package pizza
