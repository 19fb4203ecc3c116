package kernel

import (
	"strings"

	"kitchen/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrRefIsNotConstructed is returned when validating an identity (zero value) ref.
var ErrRefIsNotConstructed = errs.NewValueIsRequiredError("ref must be created via New*Ref or *RefFromString")

// RefKind tags a Ref with the aggregate it addresses. The method is unexported
// so the set of kinds is closed to this package.
type RefKind interface {
	kindName() string
}

type (
	pizzaKind        struct{}
	kitchenOrderKind struct{}
	onlineOrderKind  struct{}
	paymentKind      struct{}
)

func (pizzaKind) kindName() string        { return "pizzaRef" }
func (kitchenOrderKind) kindName() string { return "kitchenOrderRef" }
func (onlineOrderKind) kindName() string  { return "onlineOrderRef" }
func (paymentKind) kindName() string      { return "paymentRef" }

// Ref is an opaque identity token. Refs of different kinds are distinct types,
// so a PizzaRef cannot be passed where a KitchenOrderRef is expected.
//
// The zero value is the identity ref: it addresses nothing and fails Validate.
type Ref[K RefKind] struct {
	value string
}

type (
	PizzaRef        = Ref[pizzaKind]
	KitchenOrderRef = Ref[kitchenOrderKind]
	OnlineOrderRef  = Ref[onlineOrderKind]
	PaymentRef      = Ref[paymentKind]
)

func NewPizzaRef() PizzaRef               { return newRef[pizzaKind]() }
func NewKitchenOrderRef() KitchenOrderRef { return newRef[kitchenOrderKind]() }
func NewOnlineOrderRef() OnlineOrderRef   { return newRef[onlineOrderKind]() }
func NewPaymentRef() PaymentRef           { return newRef[paymentKind]() }

var kitchenOrderNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("kitchen:kitchen_order"))

// KitchenOrderRefFor derives the ref of the kitchen order cooked for an online
// order (a name-based UUID). Every caller opening that order appends to the
// same stream, so the journal admits only one creation event. The identity
// ref maps to the identity ref.
func KitchenOrderRefFor(onlineOrderRef OnlineOrderRef) KitchenOrderRef {
	if onlineOrderRef.IsIdentity() {
		return KitchenOrderRef{}
	}
	return KitchenOrderRef{value: uuid.NewSHA1(kitchenOrderNamespace, []byte(onlineOrderRef.value)).String()}
}

func PizzaRefFromString(s string) (PizzaRef, error) {
	return refFromString[pizzaKind](s)
}

func KitchenOrderRefFromString(s string) (KitchenOrderRef, error) {
	return refFromString[kitchenOrderKind](s)
}

func OnlineOrderRefFromString(s string) (OnlineOrderRef, error) {
	return refFromString[onlineOrderKind](s)
}

func PaymentRefFromString(s string) (PaymentRef, error) {
	return refFromString[paymentKind](s)
}

func newRef[K RefKind]() Ref[K] {
	return Ref[K]{value: uuid.NewString()}
}

// refFromString accepts any non-blank token. Refs minted by other systems
// (the ordering context, for one) are not required to be UUIDs.
func refFromString[K RefKind](s string) (Ref[K], error) {
	s = strings.TrimSpace(s)
	if s == "" {
		var k K
		return Ref[K]{}, errs.NewValueIsRequiredError(k.kindName())
	}
	return Ref[K]{value: s}, nil
}

func (r Ref[K]) String() string {
	return r.value
}

// IsIdentity reports whether r is the null-object ref.
func (r Ref[K]) IsIdentity() bool {
	return r.value == ""
}

func (r Ref[K]) IsEqual(other Ref[K]) bool {
	return r.value == other.value
}

func (r Ref[K]) Validate() error {
	if r.IsIdentity() {
		return ErrRefIsNotConstructed
	}
	return nil
}

func (r Ref[K]) MarshalText() ([]byte, error) {
	return []byte(r.value), nil
}

// UnmarshalText accepts the empty string and decodes it as the identity ref.
func (r *Ref[K]) UnmarshalText(text []byte) error {
	r.value = strings.TrimSpace(string(text))
	return nil
}
