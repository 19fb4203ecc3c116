package kitchenorder

import (
	"kitchen/internal/core/domain/model/kernel"
)

// Topic is the home topic of every kitchen order stream.
const Topic kernel.Topic = "kitchen_orders"

const (
	AddedEventType            = "kitchen_order.added"
	PrepStartedEventType      = "kitchen_order.prep_started"
	BakeStartedEventType      = "kitchen_order.bake_started"
	AssemblyStartedEventType  = "kitchen_order.assembly_started"
	AssemblyFinishedEventType = "kitchen_order.assembly_finished"
)

// AddedEvent opens a kitchen order stream and carries its line items.
type AddedEvent struct {
	KitchenOrderRef kernel.KitchenOrderRef `json:"kitchen_order_ref"`
	OnlineOrderRef  kernel.OnlineOrderRef  `json:"online_order_ref"`
	Pizzas          []LineItem             `json:"pizzas"`
}

func (AddedEvent) EventType() string      { return AddedEventType }
func (e AddedEvent) AggregateRef() string { return e.KitchenOrderRef.String() }

type PrepStartedEvent struct {
	KitchenOrderRef kernel.KitchenOrderRef `json:"kitchen_order_ref"`
}

func (PrepStartedEvent) EventType() string      { return PrepStartedEventType }
func (e PrepStartedEvent) AggregateRef() string { return e.KitchenOrderRef.String() }

type BakeStartedEvent struct {
	KitchenOrderRef kernel.KitchenOrderRef `json:"kitchen_order_ref"`
}

func (BakeStartedEvent) EventType() string      { return BakeStartedEventType }
func (e BakeStartedEvent) AggregateRef() string { return e.KitchenOrderRef.String() }

type AssemblyStartedEvent struct {
	KitchenOrderRef kernel.KitchenOrderRef `json:"kitchen_order_ref"`
}

func (AssemblyStartedEvent) EventType() string      { return AssemblyStartedEventType }
func (e AssemblyStartedEvent) AggregateRef() string { return e.KitchenOrderRef.String() }

type AssemblyFinishedEvent struct {
	KitchenOrderRef kernel.KitchenOrderRef `json:"kitchen_order_ref"`
}

func (AssemblyFinishedEvent) EventType() string      { return AssemblyFinishedEventType }
func (e AssemblyFinishedEvent) AggregateRef() string { return e.KitchenOrderRef.String() }
