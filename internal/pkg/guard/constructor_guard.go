// Package guard marks domain objects that were built through their constructor,
// so a zero-value struct can be told apart from a properly initialised one.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the guard is a zero
// value and the caller did not supply its own error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded into aggregates and value objects. Only the
// constructor sets it, so Validate fails for any struct built by literal.
//
// Example:
//
//	var ErrLineNotConstructed = errors.New("Line must be created via NewLine")
//
//	type Line struct {
//	    catalogItemID string
//	    quantity      int
//	    guard         guard.ConstructorGuard
//	}
//
//	func NewLine(catalogItemID string, quantity int) (Line, error) {
//	    return Line{catalogItemID: catalogItemID, quantity: quantity, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (l Line) Validate() error {
//	    return l.guard.Validate(ErrLineNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. For a zero value it returns
// validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
