package pizza

import (
	"context"
	"errors"
	"fmt"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/errs"
	"kitchen/internal/pkg/guard"
)

var (
	// ErrPizzaIsNotConstructed is returned when a Pizza was not created through
	// NewPizza or RestorePizza.
	ErrPizzaIsNotConstructed = errors.New("Pizza must be created via NewPizza or RestorePizza")

	ErrHistoryIsEmpty = errs.NewValueIsRequiredError("pizza history")
)

// Pizza is an event-sourced aggregate. Its fields are a cache of the fold of
// its stream; they change only in Apply.
type Pizza struct {
	kernel.EventSourced

	ref             kernel.PizzaRef
	kitchenOrderRef kernel.KitchenOrderRef
	size            kernel.PizzaSize
	state           State

	guard guard.ConstructorGuard
}

// NewPizza validates the inputs and returns a pizza that is not yet part of
// the kitchen. Create (usually through the repository) publishes its AddedEvent.
//
//	p, err := pizza.NewPizza(repo.NextIdentity(), orderRef, kernel.SizeLarge, eventLog)
//	if err != nil {
//	    return err
//	}
//	err = repo.Add(ctx, p)
func NewPizza(
	ref kernel.PizzaRef,
	kitchenOrderRef kernel.KitchenOrderRef,
	size kernel.PizzaSize,
	publisher kernel.EventPublisher,
) (*Pizza, error) {
	p := &Pizza{
		EventSourced: kernel.NewEventSourced(Topic, publisher),
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setRef(ref),
		p.setKitchenOrderRef(kitchenOrderRef),
		p.setSize(size),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePizza folds history, in log order, into a fresh pizza. A history that
// cannot be folded yields *errs.ReplayIsInconsistentError.
func RestorePizza(publisher kernel.EventPublisher, history []kernel.Event) (*Pizza, error) {
	if len(history) == 0 {
		return nil, ErrHistoryIsEmpty
	}

	p := &Pizza{
		EventSourced: kernel.NewEventSourced(Topic, publisher),
		guard:        guard.NewConstructorGuard(),
	}

	for i, event := range history {
		if err := p.Apply(event); err != nil {
			return nil, errs.NewReplayIsInconsistentError(Topic.String(), history[0].AggregateRef(), i, err)
		}
	}

	return p, nil
}

func (p *Pizza) Validate() error {
	if p == nil {
		return ErrPizzaIsNotConstructed
	}
	return p.guard.Validate(ErrPizzaIsNotConstructed)
}

func (p *Pizza) Ref() kernel.PizzaRef {
	return p.ref
}

func (p *Pizza) KitchenOrderRef() kernel.KitchenOrderRef {
	return p.kitchenOrderRef
}

func (p *Pizza) Size() kernel.PizzaSize {
	return p.size
}

func (p *Pizza) State() State {
	return p.state
}

// IsAdded reports whether the AddedEvent of this pizza has been applied.
func (p *Pizza) IsAdded() bool {
	return p.state != Unknown
}

func (p *Pizza) IsPrepping() bool {
	return p.state == Prepping
}

func (p *Pizza) IsBaking() bool {
	return p.state == Baking
}

func (p *Pizza) HasFinishedBaking() bool {
	return p.state == FinishedBaking
}

// Create publishes the AddedEvent. It fails if this instance was already added
// or, through the log's version check, if the ref already has a stream.
func (p *Pizza) Create(ctx context.Context) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, err := p.state.Add(); err != nil {
		return err
	}

	return p.Process(ctx, AddedEvent{
		PizzaRef:        p.ref,
		KitchenOrderRef: p.kitchenOrderRef,
		Size:            p.size,
	}, p.Apply)
}

func (p *Pizza) StartPrep(ctx context.Context) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, err := p.state.StartPrep(); err != nil {
		return err
	}

	return p.Process(ctx, PrepStartedEvent{PizzaRef: p.ref, KitchenOrderRef: p.kitchenOrderRef}, p.Apply)
}

func (p *Pizza) FinishPrep(ctx context.Context) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, err := p.state.FinishPrep(); err != nil {
		return err
	}

	return p.Process(ctx, PrepFinishedEvent{PizzaRef: p.ref, KitchenOrderRef: p.kitchenOrderRef}, p.Apply)
}

// FinishBake takes the pizza out of the oven.
func (p *Pizza) FinishBake(ctx context.Context) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, err := p.state.FinishBake(); err != nil {
		return err
	}

	return p.Process(ctx, BakeFinishedEvent{PizzaRef: p.ref, KitchenOrderRef: p.kitchenOrderRef}, p.Apply)
}

// Apply folds one event into the pizza. It is total: every input either
// yields the next state or an error, and on error nothing changes.
func (p *Pizza) Apply(event kernel.Event) error {
	if event == nil {
		return errs.NewValueIsRequiredError("event")
	}
	if !p.ref.IsIdentity() && event.AggregateRef() != p.ref.String() {
		return errs.NewValueIsInvalidErrorWithCause("event",
			fmt.Errorf("%s addressed to %s applied to pizza %s", event.EventType(), event.AggregateRef(), p.ref))
	}

	switch e := event.(type) {
	case AddedEvent:
		next, err := p.state.Add()
		if err != nil {
			return err
		}
		if err = errors.Join(
			e.PizzaRef.Validate(),
			e.KitchenOrderRef.Validate(),
			e.Size.Validate(),
		); err != nil {
			return err
		}
		p.ref, p.kitchenOrderRef, p.size = e.PizzaRef, e.KitchenOrderRef, e.Size
		p.state = next
	case PrepStartedEvent:
		next, err := p.state.StartPrep()
		if err != nil {
			return err
		}
		p.state = next
	case PrepFinishedEvent:
		next, err := p.state.FinishPrep()
		if err != nil {
			return err
		}
		p.state = next
	case BakeFinishedEvent:
		next, err := p.state.FinishBake()
		if err != nil {
			return err
		}
		p.state = next
	default:
		return errs.NewValueIsInvalidErrorWithCause("event", fmt.Errorf("%s is not a pizza event", event.EventType()))
	}

	p.Record()
	return nil
}

func (p *Pizza) setRef(ref kernel.PizzaRef) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	p.ref = ref
	return nil
}

func (p *Pizza) setKitchenOrderRef(ref kernel.KitchenOrderRef) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	p.kitchenOrderRef = ref
	return nil
}

func (p *Pizza) setSize(size kernel.PizzaSize) error {
	if err := size.Validate(); err != nil {
		return err
	}
	p.size = size
	return nil
}
