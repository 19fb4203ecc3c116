// Package choreography holds the standing rules that move kitchen orders and
// pizzas forward. Aggregates never call each other: each rule reacts to an
// event on the log, reloads what it needs from the repositories and issues
// commands, which publish further events.
//
//	c := choreography.NewChoreography(eventLog, kitchenOrderRepo, pizzaRepo, orderingService, logger)
//	c.Register()
package choreography

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/kitchenorder"
	"kitchen/internal/core/domain/model/ordering"
	"kitchen/internal/core/domain/model/pizza"
	"kitchen/internal/core/ports"
	"kitchen/internal/pkg/errs"
)

type Choreography struct {
	log           kernel.EventLog
	kitchenOrders ports.KitchenOrderRepository
	pizzas        ports.PizzaRepository
	ordering      ports.OrderingService
	logger        *slog.Logger
}

func NewChoreography(
	log kernel.EventLog,
	kitchenOrders ports.KitchenOrderRepository,
	pizzas ports.PizzaRepository,
	ordering ports.OrderingService,
	logger *slog.Logger,
) *Choreography {
	return &Choreography{
		log:           log,
		kitchenOrders: kitchenOrders,
		pizzas:        pizzas,
		ordering:      ordering,
		logger:        logger.With("component", "choreography"),
	}
}

// Register subscribes every rule to the log. Call it once per log.
func (c *Choreography) Register() {
	c.log.Subscribe(ordering.Topic, c.onOrderingEvent)
	c.log.Subscribe(kitchenorder.Topic, c.onKitchenOrderEvent)
	c.log.Subscribe(pizza.Topic, c.onPizzaEvent)
}

func (c *Choreography) onOrderingEvent(ctx context.Context, event kernel.Event) error {
	if e, ok := event.(ordering.PaidEvent); ok {
		return c.OpenKitchenOrder(ctx, e.OnlineOrderRef)
	}
	return nil
}

func (c *Choreography) onKitchenOrderEvent(ctx context.Context, event kernel.Event) error {
	switch e := event.(type) {
	case kitchenorder.AddedEvent:
		return c.addPizzas(ctx, e.KitchenOrderRef, e.Pizzas)
	case kitchenorder.PrepStartedEvent:
		return c.startPizzaPrep(ctx, e.KitchenOrderRef)
	}
	return nil
}

func (c *Choreography) onPizzaEvent(ctx context.Context, event kernel.Event) error {
	var ref kernel.KitchenOrderRef
	switch e := event.(type) {
	case pizza.PrepStartedEvent:
		ref = e.KitchenOrderRef
	case pizza.PrepFinishedEvent:
		ref = e.KitchenOrderRef
	case pizza.BakeFinishedEvent:
		ref = e.KitchenOrderRef
	default:
		return nil
	}
	return c.Reconcile(ctx, ref)
}

// OpenKitchenOrder creates the kitchen order of a paid online order. It is a
// no-op when the online order already has one, so a redelivered payment does
// not cook the pizzas twice. The order's ref is derived from the online order
// ref; a concurrent opener loses on the stream version and is treated as a
// redelivery.
func (c *Choreography) OpenKitchenOrder(ctx context.Context, ref kernel.OnlineOrderRef) error {
	orderRef := kernel.KitchenOrderRefFor(ref)

	_, err := c.kitchenOrders.FindByRef(ctx, orderRef)
	if err == nil {
		c.logger.DebugContext(ctx, "kitchen order already open",
			"online_order_ref", ref.String(),
			"kitchen_order_ref", orderRef.String(),
		)
		return nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	onlineOrder, err := c.ordering.FindByRef(ctx, ref)
	if err != nil {
		return fmt.Errorf("look up online order %s: %w", ref, err)
	}

	order, err := kitchenorder.NewKitchenOrder(orderRef, ref, onlineOrder.Pizzas(), c.log)
	if err != nil {
		return err
	}
	if err = c.kitchenOrders.Add(ctx, order); err != nil {
		var dispatchErr *kernel.DispatchError
		if !errors.As(err, &dispatchErr) && errors.Is(err, errs.ErrVersionIsInvalid) {
			c.logger.DebugContext(ctx, "kitchen order opened concurrently",
				"online_order_ref", ref.String(),
				"kitchen_order_ref", orderRef.String(),
			)
			return nil
		}
		return err
	}

	c.logger.InfoContext(ctx, "kitchen order opened",
		"online_order_ref", ref.String(),
		"kitchen_order_ref", orderRef.String(),
		"pizzas", len(order.Pizzas()),
	)
	return nil
}

// addPizzas materialises every line item that has no pizza stream yet.
func (c *Choreography) addPizzas(ctx context.Context, orderRef kernel.KitchenOrderRef, items []kitchenorder.LineItem) error {
	var errList []error
	for _, item := range items {
		_, err := c.pizzas.FindByRef(ctx, item.Ref)
		if err == nil {
			continue
		}
		if !errors.Is(err, errs.ErrObjectNotFound) {
			errList = append(errList, err)
			continue
		}

		p, err := pizza.NewPizza(item.Ref, orderRef, item.Size, c.log)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		if err = c.pizzas.Add(ctx, p); err != nil {
			errList = append(errList, fmt.Errorf("add pizza %s: %w", item.Ref, err))
		}
	}
	return errors.Join(errList...)
}

func (c *Choreography) startPizzaPrep(ctx context.Context, orderRef kernel.KitchenOrderRef) error {
	order, err := c.kitchenOrders.FindByRef(ctx, orderRef)
	if err != nil {
		return err
	}
	if err = c.addPizzas(ctx, orderRef, order.Pizzas()); err != nil {
		return err
	}

	pizzas, err := c.pizzas.FindByKitchenOrderRef(ctx, orderRef)
	if err != nil {
		return err
	}

	var errList []error
	for _, p := range pizzas {
		if p.State() != pizza.Created {
			continue
		}
		if err = p.StartPrep(ctx); err != nil {
			errList = append(errList, fmt.Errorf("start prep of pizza %s: %w", p.Ref(), err))
		}
	}
	return errors.Join(errList...)
}

// Reconcile brings the kitchen order in line with the current states of its
// pizzas. Each pass reloads both from the log, so steps already taken by
// nested dispatch are seen and never repeated.
func (c *Choreography) Reconcile(ctx context.Context, orderRef kernel.KitchenOrderRef) error {
	for {
		order, err := c.kitchenOrders.FindByRef(ctx, orderRef)
		if err != nil {
			return err
		}

		pizzas, err := c.pizzas.FindByKitchenOrderRef(ctx, orderRef)
		if err != nil {
			return err
		}

		states := make(map[kernel.PizzaRef]pizza.State, len(pizzas))
		for _, p := range pizzas {
			states[p.Ref()] = p.State()
		}

		from := order.State()
		advanced, err := order.Advance(ctx, states)
		if advanced {
			c.logger.DebugContext(ctx, "kitchen order advanced",
				"kitchen_order_ref", orderRef.String(),
				"from", from.String(),
				"to", order.State().String(),
			)
		}
		if err != nil {
			return err
		}
		if !advanced {
			return nil
		}
	}
}
