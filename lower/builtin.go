package lower

import (
	"go.starlark.net/syntax"

	"github.com/reusee/graphscript/graphir"
)

// BuiltinFunction names an operator in the builder's op table. Calling it
// emits exactly one node. A builtin may carry a bound receiver which is
// prepended to the call inputs.
type BuiltinFunction struct {
	unsupported
	name string
	self *graphir.Value
}

func NewBuiltinFunction(name string) *BuiltinFunction {
	return &BuiltinFunction{
		unsupported: unsupported{kind: "builtin"},
		name:        name,
	}
}

func NewBuiltinMethod(name string, self *graphir.Value) *BuiltinFunction {
	return &BuiltinFunction{
		unsupported: unsupported{kind: "builtin"},
		name:        name,
		self:        self,
	}
}

func (f *BuiltinFunction) Name() string {
	return f.name
}

func (f *BuiltinFunction) Call(
	pos syntax.Position,
	b *Builder,
	inputs []*graphir.Value,
	attrs []graphir.Attr,
	cd CallsiteDescriptor,
) ([]*graphir.Value, error) {
	spec, ok := b.Ops.Lookup(f.name)
	if !ok {
		return nil, errorf(pos, "unknown builtin: %s", f.name)
	}

	if f.self != nil {
		inputs = append([]*graphir.Value{f.self}, inputs...)
	}
	if spec.NumInputs != graphir.VariadicInputs && len(inputs) != spec.NumInputs {
		return nil, errorf(pos, "builtin %s expects %d inputs, got %d", f.name, spec.NumInputs, len(inputs))
	}
	if !cd.Check(spec.NumOutputs) {
		return nil, &ArityMismatchError{
			Expected: cd.NOutputs,
			Actual:   spec.NumOutputs,
			Pos:      pos,
		}
	}

	node := b.Graph.NewNode(f.name, inputs, attrs, spec.NumOutputs, pos)
	return node.Outputs, nil
}
