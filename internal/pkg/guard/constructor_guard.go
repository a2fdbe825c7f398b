// Package guard provides ConstructorGuard, a marker embedded in commands, queries
// and value objects to detect instances that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is true only when produced by NewConstructorGuard, so the zero
// value of any struct embedding it fails Validate.
//
// Example:
//
//	type SendTruckCommand struct {
//	    packageID kernel.PackageID
//	    guard     guard.ConstructorGuard
//	}
//
//	func (c SendTruckCommand) Validate() error {
//	    return c.guard.Validate(ErrSendTruckCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is the zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
