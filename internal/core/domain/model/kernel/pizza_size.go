package kernel

import (
	"fmt"
	"strings"

	"kitchen/internal/pkg/errs"
)

// PizzaSize is shared by the kitchen order line items, the pizzas themselves
// and the ordering vocabulary translated at the boundary.
type PizzaSize int

const (
	UnknownSize PizzaSize = iota
	SizeSmall
	SizeMedium
	SizeLarge
)

func getSizeStrings() map[PizzaSize]string {
	return map[PizzaSize]string{
		UnknownSize: "Unknown",
		SizeSmall:   "Small",
		SizeMedium:  "Medium",
		SizeLarge:   "Large",
	}
}

// ParsePizzaSize matches names case-insensitively ("small", "MEDIUM", "Large").
func ParsePizzaSize(s string) (PizzaSize, error) {
	name := strings.TrimSpace(s)
	for size, str := range getSizeStrings() {
		if size != UnknownSize && strings.EqualFold(str, name) {
			return size, nil
		}
	}
	return UnknownSize, errs.NewValueIsInvalidErrorWithCause("size", fmt.Errorf("%q is not a pizza size", s))
}

func (s PizzaSize) Validate() error {
	if s < SizeSmall || s > SizeLarge {
		return errs.NewValueIsInvalidErrorWithCause("size", fmt.Errorf("%d is not a valid pizza size", s))
	}
	return nil
}

func (s PizzaSize) String() string {
	if str, ok := getSizeStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

func (s PizzaSize) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(strings.ToLower(s.String())), nil
}

func (s *PizzaSize) UnmarshalText(text []byte) error {
	size, err := ParsePizzaSize(string(text))
	if err != nil {
		return err
	}
	*s = size
	return nil
}
