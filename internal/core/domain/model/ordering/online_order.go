package ordering

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/errs"
	"kitchen/internal/pkg/guard"
)

var (
	ErrOnlineOrderIsNotConstructed = errors.New("OnlineOrder must be created via NewOnlineOrder")
	ErrPizzasAreRequired           = errs.NewValueIsRequiredError("pizzas")
)

// OnlineOrder is the kitchen's read-only view of an order placed with the
// ordering context.
type OnlineOrder struct {
	ref       kernel.OnlineOrderRef
	orderType Type
	pizzas    []kernel.PizzaSize

	guard guard.ConstructorGuard
}

func NewOnlineOrder(ref kernel.OnlineOrderRef, orderType Type, pizzas []kernel.PizzaSize) (*OnlineOrder, error) {
	o := &OnlineOrder{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		o.setRef(ref),
		o.setType(orderType),
		o.setPizzas(pizzas),
	); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *OnlineOrder) Validate() error {
	if o == nil {
		return ErrOnlineOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOnlineOrderIsNotConstructed)
}

func (o *OnlineOrder) Ref() kernel.OnlineOrderRef {
	return o.ref
}

func (o *OnlineOrder) Type() Type {
	return o.orderType
}

// Pizzas returns the ordered sizes; the slice is a copy.
func (o *OnlineOrder) Pizzas() []kernel.PizzaSize {
	sizes := make([]kernel.PizzaSize, len(o.pizzas))
	copy(sizes, o.pizzas)
	return sizes
}

func (o *OnlineOrder) setRef(ref kernel.OnlineOrderRef) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	o.ref = ref
	return nil
}

func (o *OnlineOrder) setType(orderType Type) error {
	if err := orderType.Validate(); err != nil {
		return err
	}
	o.orderType = orderType
	return nil
}

func (o *OnlineOrder) setPizzas(pizzas []kernel.PizzaSize) error {
	if len(pizzas) == 0 {
		return ErrPizzasAreRequired
	}
	for _, size := range pizzas {
		if err := size.Validate(); err != nil {
			return err
		}
	}
	o.pizzas = make([]kernel.PizzaSize, len(pizzas))
	copy(o.pizzas, pizzas)
	return nil
}
