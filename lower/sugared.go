package lower

import (
	"go.starlark.net/syntax"

	"github.com/reusee/graphscript/graphir"
)

// The AST can contain expressions like a bound receiver, a module attribute
// or a builtin name that are not first-class values in the graph. A
// SugaredValue represents such an expression during lowering, separating its
// behavior from the AST walker itself. Each variant supports a subset of the
// five capabilities; the rest fail with a CapabilityError.
type SugaredValue interface {
	// Kind names the variant for diagnostics.
	Kind() string

	// AsValue materializes the value as a single graph value, e.g. `x + 4`.
	AsValue(pos syntax.Position, b *Builder) (*graphir.Value, error)

	// Attr selects an attribute, e.g. `x.field`.
	Attr(pos syntax.Position, b *Builder, name string) (SugaredValue, error)

	// AsTuple expands the value into a fixed-arity sequence, e.g. the right
	// hand side of `a, b = x`.
	AsTuple(pos syntax.Position, b *Builder) ([]SugaredValue, error)

	// Call invokes the value, e.g. `outputs = x(inputs)`, emitting nodes into
	// the builder's graph.
	Call(pos syntax.Position, b *Builder, inputs []*graphir.Value, attrs []graphir.Attr, cd CallsiteDescriptor) ([]*graphir.Value, error)

	// UnrolledFor expands the value for `for i in x:`; the loop body is
	// unrolled once per element.
	UnrolledFor(pos syntax.Position, b *Builder) ([]SugaredValue, error)
}

// unsupported is the default behavior of every capability: fail loudly,
// naming the variant and the operation. Variants embed it and override only
// what they support; it never guesses a fallback.
type unsupported struct {
	kind string
}

func (u unsupported) Kind() string {
	return u.kind
}

func (u unsupported) AsValue(pos syntax.Position, _ *Builder) (*graphir.Value, error) {
	return nil, &CapabilityError{Kind: u.kind, Op: "materialize", Pos: pos}
}

func (u unsupported) Attr(pos syntax.Position, _ *Builder, _ string) (SugaredValue, error) {
	return nil, &CapabilityError{Kind: u.kind, Op: "attr", Pos: pos}
}

func (u unsupported) AsTuple(pos syntax.Position, _ *Builder) ([]SugaredValue, error) {
	return nil, &CapabilityError{Kind: u.kind, Op: "tuple", Pos: pos}
}

func (u unsupported) Call(pos syntax.Position, _ *Builder, _ []*graphir.Value, _ []graphir.Attr, _ CallsiteDescriptor) ([]*graphir.Value, error) {
	return nil, &CapabilityError{Kind: u.kind, Op: "call", Pos: pos}
}

func (u unsupported) UnrolledFor(pos syntax.Position, _ *Builder) ([]SugaredValue, error) {
	return nil, &CapabilityError{Kind: u.kind, Op: "iterate", Pos: pos}
}
