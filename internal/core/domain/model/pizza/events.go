package pizza

import (
	"kitchen/internal/core/domain/model/kernel"
)

// Topic is the home topic of every pizza stream.
const Topic kernel.Topic = "pizzas"

const (
	AddedEventType        = "pizza.added"
	PrepStartedEventType  = "pizza.prep_started"
	PrepFinishedEventType = "pizza.prep_finished"
	BakeFinishedEventType = "pizza.bake_finished"
)

// AddedEvent opens a pizza stream.
type AddedEvent struct {
	PizzaRef        kernel.PizzaRef        `json:"pizza_ref"`
	KitchenOrderRef kernel.KitchenOrderRef `json:"kitchen_order_ref"`
	Size            kernel.PizzaSize       `json:"size"`
}

func (AddedEvent) EventType() string      { return AddedEventType }
func (e AddedEvent) AggregateRef() string { return e.PizzaRef.String() }

type PrepStartedEvent struct {
	PizzaRef        kernel.PizzaRef        `json:"pizza_ref"`
	KitchenOrderRef kernel.KitchenOrderRef `json:"kitchen_order_ref"`
}

func (PrepStartedEvent) EventType() string      { return PrepStartedEventType }
func (e PrepStartedEvent) AggregateRef() string { return e.PizzaRef.String() }

// PrepFinishedEvent also means the pizza entered the oven.
type PrepFinishedEvent struct {
	PizzaRef        kernel.PizzaRef        `json:"pizza_ref"`
	KitchenOrderRef kernel.KitchenOrderRef `json:"kitchen_order_ref"`
}

func (PrepFinishedEvent) EventType() string      { return PrepFinishedEventType }
func (e PrepFinishedEvent) AggregateRef() string { return e.PizzaRef.String() }

type BakeFinishedEvent struct {
	PizzaRef        kernel.PizzaRef        `json:"pizza_ref"`
	KitchenOrderRef kernel.KitchenOrderRef `json:"kitchen_order_ref"`
}

func (BakeFinishedEvent) EventType() string      { return BakeFinishedEventType }
func (e BakeFinishedEvent) AggregateRef() string { return e.PizzaRef.String() }
