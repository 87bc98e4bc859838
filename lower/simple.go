package lower

import (
	"go.starlark.net/syntax"

	"github.com/reusee/graphscript/graphir"
)

// SimpleValue wraps a plain graph value. Most things in the environment are
// simple values, not syntax sugar.
type SimpleValue struct {
	unsupported
	value *graphir.Value
}

func NewSimpleValue(v *graphir.Value) *SimpleValue {
	return &SimpleValue{
		unsupported: unsupported{kind: "value"},
		value:       v,
	}
}

func (s *SimpleValue) AsValue(_ syntax.Position, _ *Builder) (*graphir.Value, error) {
	return s.value, nil
}

// Attr resolves an attribute through the builder's attribute table, keyed by
// the value's declared type, yielding a builtin bound to this value as its
// first input.
func (s *SimpleValue) Attr(pos syntax.Position, b *Builder, name string) (SugaredValue, error) {
	op, ok := b.Attrs.Lookup(s.value.Type(), name)
	if !ok {
		return nil, errorf(pos, "unknown attribute %s on %s", name, s.value.Type())
	}
	return NewBuiltinMethod(op, s.value), nil
}
