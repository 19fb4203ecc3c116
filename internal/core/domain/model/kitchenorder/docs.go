// Package kitchenorder implements the KitchenOrder aggregate: the set of
// pizzas cooked for one paid online order.
//
//	Unknown ──> Created ──> Prepping ──> Baking ──> Assembling ──> FinishedAssembly
//
// Only StartPrep is a direct command. Every later step is derived from the
// states of the order's pizzas by DeriveState and taken one at a time by
// Advance, so the order can never run ahead of, or fall behind, its pizzas.
package kitchenorder
