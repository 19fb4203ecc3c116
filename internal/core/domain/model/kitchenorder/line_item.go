package kitchenorder

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
)

// LineItem is one pizza of an order: the ref its Pizza aggregate is added
// under and its size.
type LineItem struct {
	Ref  kernel.PizzaRef  `json:"ref"`
	Size kernel.PizzaSize `json:"size"`
}

func (i LineItem) Validate() error {
	return errors.Join(i.Ref.Validate(), i.Size.Validate())
}
