package kitchenorder

import (
	"context"
	"errors"
	"fmt"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/pizza"
	"kitchen/internal/pkg/errs"
	"kitchen/internal/pkg/guard"
)

var (
	ErrKitchenOrderIsNotConstructed = errors.New(
		"KitchenOrder must be created via NewKitchenOrder or RestoreKitchenOrder",
	)
	ErrPizzasAreRequired = errs.NewValueIsRequiredError("pizzas")
	ErrHistoryIsEmpty    = errs.NewValueIsRequiredError("kitchen order history")
)

// KitchenOrder is an event-sourced aggregate holding the set of pizzas cooked
// for one online order. Its fields change only in Apply.
type KitchenOrder struct {
	kernel.EventSourced

	ref            kernel.KitchenOrderRef
	onlineOrderRef kernel.OnlineOrderRef
	pizzas         []LineItem
	state          State

	guard guard.ConstructorGuard
}

// NewKitchenOrder builds an order that is not yet in the kitchen. Every size
// becomes a line item under a freshly generated PizzaRef. Create (usually via
// the repository) publishes its AddedEvent.
func NewKitchenOrder(
	ref kernel.KitchenOrderRef,
	onlineOrderRef kernel.OnlineOrderRef,
	sizes []kernel.PizzaSize,
	publisher kernel.EventPublisher,
) (*KitchenOrder, error) {
	o := &KitchenOrder{
		EventSourced: kernel.NewEventSourced(Topic, publisher),
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setRef(ref),
		o.setOnlineOrderRef(onlineOrderRef),
		o.setPizzas(sizes),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreKitchenOrder folds history, in log order, into a fresh order.
func RestoreKitchenOrder(publisher kernel.EventPublisher, history []kernel.Event) (*KitchenOrder, error) {
	if len(history) == 0 {
		return nil, ErrHistoryIsEmpty
	}

	o := &KitchenOrder{
		EventSourced: kernel.NewEventSourced(Topic, publisher),
		guard:        guard.NewConstructorGuard(),
	}

	for i, event := range history {
		if err := o.Apply(event); err != nil {
			return nil, errs.NewReplayIsInconsistentError(Topic.String(), history[0].AggregateRef(), i, err)
		}
	}

	return o, nil
}

func (o *KitchenOrder) Validate() error {
	if o == nil {
		return ErrKitchenOrderIsNotConstructed
	}
	return o.guard.Validate(ErrKitchenOrderIsNotConstructed)
}

func (o *KitchenOrder) Ref() kernel.KitchenOrderRef {
	return o.ref
}

func (o *KitchenOrder) OnlineOrderRef() kernel.OnlineOrderRef {
	return o.onlineOrderRef
}

func (o *KitchenOrder) State() State {
	return o.state
}

// Pizzas returns a copy of the line items in the order they were added.
func (o *KitchenOrder) Pizzas() []LineItem {
	items := make([]LineItem, len(o.pizzas))
	copy(items, o.pizzas)
	return items
}

func (o *KitchenOrder) PizzaRefs() []kernel.PizzaRef {
	refs := make([]kernel.PizzaRef, 0, len(o.pizzas))
	for _, item := range o.pizzas {
		refs = append(refs, item.Ref)
	}
	return refs
}

// Contains reports whether ref is one of the order's pizzas.
func (o *KitchenOrder) Contains(ref kernel.PizzaRef) bool {
	for _, item := range o.pizzas {
		if item.Ref.IsEqual(ref) {
			return true
		}
	}
	return false
}

func (o *KitchenOrder) IsAdded() bool {
	return o.state != Unknown
}

func (o *KitchenOrder) IsPrepping() bool {
	return o.state == Prepping
}

func (o *KitchenOrder) IsBaking() bool {
	return o.state == Baking
}

func (o *KitchenOrder) HasStartedAssembly() bool {
	return o.state == Assembling || o.state == FinishedAssembly
}

func (o *KitchenOrder) HasFinishedAssembly() bool {
	return o.state == FinishedAssembly
}

func (o *KitchenOrder) Create(ctx context.Context) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if _, err := o.state.Add(); err != nil {
		return err
	}

	return o.Process(ctx, AddedEvent{
		KitchenOrderRef: o.ref,
		OnlineOrderRef:  o.onlineOrderRef,
		Pizzas:          o.Pizzas(),
	}, o.Apply)
}

// StartPrep is legal only from Created.
func (o *KitchenOrder) StartPrep(ctx context.Context) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if _, err := o.state.StartPrep(); err != nil {
		return err
	}

	return o.Process(ctx, PrepStartedEvent{KitchenOrderRef: o.ref}, o.Apply)
}

// Advance takes at most one forward step toward the state implied by the
// pizzas and reports whether an event was appended. Pizzas of the order
// missing from pizzaStates count as Created; entries for other pizzas are
// ignored. Callers that want the order fully caught up call Advance on a
// freshly loaded order until it returns false.
func (o *KitchenOrder) Advance(ctx context.Context, pizzaStates map[kernel.PizzaRef]pizza.State) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}

	target := DeriveState(o.statesOf(pizzaStates))
	next, ok := o.state.StepToward(target)
	if !ok {
		return false, nil
	}

	var event kernel.Event
	switch next {
	case Prepping:
		event = PrepStartedEvent{KitchenOrderRef: o.ref}
	case Baking:
		event = BakeStartedEvent{KitchenOrderRef: o.ref}
	case Assembling:
		event = AssemblyStartedEvent{KitchenOrderRef: o.ref}
	case FinishedAssembly:
		event = AssemblyFinishedEvent{KitchenOrderRef: o.ref}
	default:
		return false, errs.NewIllegalStateTransitionError(entityName, "advance", o.state.String())
	}

	if err := o.Process(ctx, event, o.Apply); err != nil {
		var dispatchErr *kernel.DispatchError
		return errors.As(err, &dispatchErr), err
	}

	return true, nil
}

// Apply folds one event into the order. On error nothing changes.
func (o *KitchenOrder) Apply(event kernel.Event) error {
	if event == nil {
		return errs.NewValueIsRequiredError("event")
	}
	if !o.ref.IsIdentity() && event.AggregateRef() != o.ref.String() {
		return errs.NewValueIsInvalidErrorWithCause("event",
			fmt.Errorf("%s addressed to %s applied to kitchen order %s", event.EventType(), event.AggregateRef(), o.ref))
	}

	var (
		next State
		err  error
	)

	switch e := event.(type) {
	case AddedEvent:
		if next, err = o.state.Add(); err != nil {
			return err
		}
		if err = o.validateAdded(e); err != nil {
			return err
		}
		o.ref, o.onlineOrderRef = e.KitchenOrderRef, e.OnlineOrderRef
		o.pizzas = make([]LineItem, len(e.Pizzas))
		copy(o.pizzas, e.Pizzas)
	case PrepStartedEvent:
		next, err = o.state.StartPrep()
	case BakeStartedEvent:
		next, err = o.state.StartBake()
	case AssemblyStartedEvent:
		next, err = o.state.StartAssembly()
	case AssemblyFinishedEvent:
		next, err = o.state.FinishAssembly()
	default:
		return errs.NewValueIsInvalidErrorWithCause("event", fmt.Errorf("%s is not a kitchen order event", event.EventType()))
	}
	if err != nil {
		return err
	}

	o.state = next
	o.Record()
	return nil
}

func (o *KitchenOrder) statesOf(pizzaStates map[kernel.PizzaRef]pizza.State) []pizza.State {
	states := make([]pizza.State, 0, len(o.pizzas))
	for _, item := range o.pizzas {
		s, ok := pizzaStates[item.Ref]
		if !ok || s == pizza.Unknown {
			s = pizza.Created
		}
		states = append(states, s)
	}
	return states
}

func (o *KitchenOrder) validateAdded(e AddedEvent) error {
	if len(e.Pizzas) == 0 {
		return ErrPizzasAreRequired
	}

	errList := []error{e.KitchenOrderRef.Validate(), e.OnlineOrderRef.Validate()}
	seen := make(map[kernel.PizzaRef]struct{}, len(e.Pizzas))
	for _, item := range e.Pizzas {
		errList = append(errList, item.Validate())
		if _, dup := seen[item.Ref]; dup {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("pizzas",
				fmt.Errorf("pizza %s is listed twice", item.Ref)))
		}
		seen[item.Ref] = struct{}{}
	}
	return errors.Join(errList...)
}

func (o *KitchenOrder) setRef(ref kernel.KitchenOrderRef) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	o.ref = ref
	return nil
}

func (o *KitchenOrder) setOnlineOrderRef(ref kernel.OnlineOrderRef) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	o.onlineOrderRef = ref
	return nil
}

func (o *KitchenOrder) setPizzas(sizes []kernel.PizzaSize) error {
	if len(sizes) == 0 {
		return ErrPizzasAreRequired
	}

	items := make([]LineItem, 0, len(sizes))
	for _, size := range sizes {
		if err := size.Validate(); err != nil {
			return err
		}
		items = append(items, LineItem{Ref: kernel.NewPizzaRef(), Size: size})
	}

	o.pizzas = items
	return nil
}
