package lower

import (
	"slices"

	"go.starlark.net/syntax"
)

// TupleValue is a fixed-arity sequence of sugared values. Tuples exist only
// during lowering; they have no graph representation, so materializing one
// fails.
type TupleValue struct {
	unsupported
	elems []SugaredValue
}

func NewTupleValue(elems []SugaredValue) *TupleValue {
	return &TupleValue{
		unsupported: unsupported{kind: "tuple"},
		elems:       slices.Clone(elems),
	}
}

func (t *TupleValue) AsTuple(_ syntax.Position, _ *Builder) ([]SugaredValue, error) {
	return slices.Clone(t.elems), nil
}

func (t *TupleValue) UnrolledFor(_ syntax.Position, _ *Builder) ([]SugaredValue, error) {
	return slices.Clone(t.elems), nil
}
