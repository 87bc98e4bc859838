package lower

import (
	"fmt"

	"go.starlark.net/syntax"
)

// CapabilityError reports that a sugared value was asked to perform an
// operation its variant does not support.
type CapabilityError struct {
	Kind string
	Op   string
	Pos  syntax.Position
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("%s does not support %s at %s", e.Kind, e.Op, e.Pos)
}

// UnresolvedNameError reports a free variable the resolver could not supply.
type UnresolvedNameError struct {
	Name string
	Pos  syntax.Position
}

func (e *UnresolvedNameError) Error() string {
	return fmt.Sprintf("undefined name %s at %s", e.Name, e.Pos)
}

// ArityMismatchError reports a callee whose output count disagrees with its
// callsite descriptor.
type ArityMismatchError struct {
	Expected int
	Actual   int
	Pos      syntax.Position
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("expected %d outputs, got %d at %s", e.Expected, e.Actual, e.Pos)
}

// PosError attaches a source position to an otherwise plain error.
type PosError struct {
	Err error
	Pos syntax.Position
}

func (e PosError) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Pos)
}

func (e PosError) Unwrap() error {
	return e.Err
}

func withPos(err error, pos syntax.Position) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(PosError); ok {
		return err
	}
	return PosError{
		Err: err,
		Pos: pos,
	}
}

func errorf(pos syntax.Position, format string, args ...any) error {
	return withPos(fmt.Errorf(format, args...), pos)
}
