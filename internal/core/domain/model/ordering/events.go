package ordering

import "kitchen/internal/core/domain/model/kernel"

// Topic carries events translated from the ordering context.
const Topic kernel.Topic = "ordering"

const PaidEventType = "ordering.online_order_paid"

// PaidEvent is published by the anti-corruption layer once an online order is paid.
type PaidEvent struct {
	OnlineOrderRef kernel.OnlineOrderRef `json:"online_order_ref"`
}

func (PaidEvent) EventType() string      { return PaidEventType }
func (e PaidEvent) AggregateRef() string { return e.OnlineOrderRef.String() }
