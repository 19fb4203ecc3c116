// Package kernel holds the vocabulary shared by every kitchen aggregate.
//
// The package includes:
//   - Ref: typed opaque identities (PizzaRef, KitchenOrderRef, OnlineOrderRef, PaymentRef)
//   - PizzaSize: the size enum used by orders, pizzas and the ordering boundary
//   - Event, Topic and EventLog: the contracts of the topic-addressed event log
//   - EventSourced: the base embedded by aggregates whose state is a fold of their events
//
// Aggregates never call each other. They publish events to the log and the
// log fans them out to subscribers on the publishing goroutine.
package kernel
