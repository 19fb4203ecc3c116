// Package ordering is the kitchen's own vocabulary for the external ordering
// context. Nothing here is owned by the kitchen: an OnlineOrder is what the
// anti-corruption layer hands over, and PaidEvent is the translated signal
// that an order was paid and should be cooked.
package ordering
