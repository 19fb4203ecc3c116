// Package queries contains read operations. Each query replays the aggregates
// it needs and returns a plain read model; nothing is cached between calls.
package queries

import (
	"context"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/kitchenorder"
	"kitchen/internal/core/domain/model/pizza"
)

type (
	KitchenOrderReader interface {
		FindByRef(ctx context.Context, ref kernel.KitchenOrderRef) (*kitchenorder.KitchenOrder, error)
		FindByOnlineOrderRef(ctx context.Context, ref kernel.OnlineOrderRef) (*kitchenorder.KitchenOrder, error)
	}

	PizzaReader interface {
		FindByRef(ctx context.Context, ref kernel.PizzaRef) (*pizza.Pizza, error)
		FindByKitchenOrderRef(ctx context.Context, ref kernel.KitchenOrderRef) ([]*pizza.Pizza, error)
	}
)

type LineItemResponse struct {
	Ref  string `json:"ref"`
	Size string `json:"size"`
}

type KitchenOrderResponse struct {
	Ref                 string             `json:"ref"`
	OnlineOrderRef      string             `json:"online_order_ref"`
	State               string             `json:"state"`
	Pizzas              []LineItemResponse `json:"pizzas"`
	IsPrepping          bool               `json:"is_prepping"`
	IsBaking            bool               `json:"is_baking"`
	HasStartedAssembly  bool               `json:"has_started_assembly"`
	HasFinishedAssembly bool               `json:"has_finished_assembly"`
}

type PizzaResponse struct {
	Ref               string `json:"ref"`
	KitchenOrderRef   string `json:"kitchen_order_ref"`
	Size              string `json:"size"`
	State             string `json:"state"`
	IsPrepping        bool   `json:"is_prepping"`
	IsBaking          bool   `json:"is_baking"`
	HasFinishedBaking bool   `json:"has_finished_baking"`
}

func kitchenOrderResponse(o *kitchenorder.KitchenOrder) KitchenOrderResponse {
	items := o.Pizzas()
	pizzas := make([]LineItemResponse, 0, len(items))
	for _, item := range items {
		pizzas = append(pizzas, LineItemResponse{Ref: item.Ref.String(), Size: item.Size.String()})
	}

	return KitchenOrderResponse{
		Ref:                 o.Ref().String(),
		OnlineOrderRef:      o.OnlineOrderRef().String(),
		State:               o.State().String(),
		Pizzas:              pizzas,
		IsPrepping:          o.IsPrepping(),
		IsBaking:            o.IsBaking(),
		HasStartedAssembly:  o.HasStartedAssembly(),
		HasFinishedAssembly: o.HasFinishedAssembly(),
	}
}

func pizzaResponse(p *pizza.Pizza) PizzaResponse {
	return PizzaResponse{
		Ref:               p.Ref().String(),
		KitchenOrderRef:   p.KitchenOrderRef().String(),
		Size:              p.Size().String(),
		State:             p.State().String(),
		IsPrepping:        p.IsPrepping(),
		IsBaking:          p.IsBaking(),
		HasFinishedBaking: p.HasFinishedBaking(),
	}
}
