package ordering

import (
	"fmt"
	"strings"

	"kitchen/internal/pkg/errs"
)

// Type tells the kitchen how the order leaves the shop.
type Type int

const (
	UnknownType Type = iota
	Pickup
	Delivery
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		UnknownType: "Unknown",
		Pickup:      "Pickup",
		Delivery:    "Delivery",
	}
}

func ParseType(s string) (Type, error) {
	name := strings.TrimSpace(s)
	for t, str := range getTypeStrings() {
		if t != UnknownType && strings.EqualFold(str, name) {
			return t, nil
		}
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not an online order type", s))
}

func (t Type) Validate() error {
	if t != Pickup && t != Delivery {
		return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%d is not a valid online order type", t))
	}
	return nil
}

func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "Unknown"
}
