// Package guard provides the constructor-guard pattern used by commands,
// queries, and value objects across the application.
//
// A ConstructorGuard embedded in a struct records whether the struct was
// created through its designated constructor. Zero-value instances fail
// validation, which keeps domain invariants from being bypassed by direct
// struct literals.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes
// a nil validation error for an object that was not properly constructed.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks whether its enclosing object went through a
// constructor function. The zero value is "not constructed".
//
// Example:
//
//	type SendMessageCommand struct {
//	    body  string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewSendMessageCommand(body string) (SendMessageCommand, error) {
//	    if body == "" {
//	        return SendMessageCommand{}, errors.New("body is required")
//	    }
//	    return SendMessageCommand{body: body, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c SendMessageCommand) Validate() error {
//	    return c.guard.Validate(ErrSendMessageCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marking the enclosing object as
// properly constructed. Call it inside constructor functions only.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the object was built via its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
