package debugs

import (
	"testing"

	"github.com/reusee/dscope"
	"go.starlark.net/syntax"

	"github.com/reusee/graphscript/graphir"
)

func TestInspect(t *testing.T) {
	module := graphir.NewModule()
	g := graphir.NewGraph()
	x := g.AddInput("x", graphir.Dynamic)
	pos := syntax.MakePosition(nil, 1, 1)
	node := g.NewNode("neg", []*graphir.Value{x}, nil, 1, pos)
	g.RegisterOutput(node.Outputs[0])
	module.Register("forward", g, []string{"x"})

	dscope.New(
		new(Module),
	).Call(func(
		inspect Inspect,
	) {
		inspect(t.Context(), "test", module, map[string]any{
			"answer": 42,
		})
	})
}
