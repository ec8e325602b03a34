package modular

import (
	"errors"
	"fmt"
)

var (
	// ErrModuleNotFound matches every *ModuleNotFoundError.
	ErrModuleNotFound = errors.New("module not found")
	// ErrInvalidSignature matches every *InvalidSignatureError.
	ErrInvalidSignature = errors.New("module has invalid signature")
)

// ModuleNotFoundError means nothing is registered at the computed locator,
// usually a typo in the configured module list.
type ModuleNotFoundError struct {
	Locator string
}

func (e *ModuleNotFoundError) Error() string {
	return fmt.Sprintf("module %s does not exist", e.Locator)
}

func (e *ModuleNotFoundError) Is(target error) bool { return target == ErrModuleNotFound }

// InvalidSignatureError means the value produced at the locator does not
// implement core.Definition.
type InvalidSignatureError struct {
	Locator string
}

func (e *InvalidSignatureError) Error() string {
	return fmt.Sprintf("module %s must implement core.Definition", e.Locator)
}

func (e *InvalidSignatureError) Is(target error) bool { return target == ErrInvalidSignature }
