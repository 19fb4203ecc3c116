// Package guard detects zero-value use of types that must be built through a
// constructor. Aggregates, commands and queries embed a ConstructorGuard and
// check it in their Validate method.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is true only when set by NewConstructorGuard.
//
//	type StartOrderPrepCommand struct {
//	    ref   kernel.KitchenOrderRef
//	    guard guard.ConstructorGuard
//	}
//
//	func (c StartOrderPrepCommand) Validate() error {
//	    return c.guard.Validate(ErrStartOrderPrepCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the enclosing value as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
