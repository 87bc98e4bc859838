package lower

import (
	"go.starlark.net/syntax"

	"github.com/reusee/graphscript/graphir"
)

// MethodValue is a reference to an already registered method. Calling it
// emits an invoke node whose output count is the method graph's declared
// output count.
type MethodValue struct {
	unsupported
	method *graphir.Method
}

func NewMethodValue(meth *graphir.Method) *MethodValue {
	return &MethodValue{
		unsupported: unsupported{kind: "method"},
		method:      meth,
	}
}

func (m *MethodValue) Call(
	pos syntax.Position,
	b *Builder,
	inputs []*graphir.Value,
	attrs []graphir.Attr,
	cd CallsiteDescriptor,
) ([]*graphir.Value, error) {
	if len(attrs) > 0 {
		return nil, errorf(pos, "method %s does not accept keyword attributes", m.method.Name)
	}
	if len(inputs) != len(m.method.Params) {
		return nil, errorf(pos, "method %s expects %d inputs, got %d", m.method.Name, len(m.method.Params), len(inputs))
	}

	numOutputs := len(m.method.Graph.Outputs())
	if !cd.Check(numOutputs) {
		return nil, &ArityMismatchError{
			Expected: cd.NOutputs,
			Actual:   numOutputs,
			Pos:      pos,
		}
	}

	node := b.Graph.NewNode(
		"invoke",
		inputs,
		[]graphir.Attr{{Name: "method", Value: m.method.Name}},
		numOutputs,
		pos,
	)
	return node.Outputs, nil
}
