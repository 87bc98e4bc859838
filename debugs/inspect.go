package debugs

import (
	"context"
	"maps"
	"slices"

	"github.com/reusee/graphscript/graphir"
	"github.com/reusee/graphscript/logs"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Inspect opens a REPL over a compiled module. Each method is exposed as a
// dict of its graph's shape, and extra globals can be passed alongside.
type Inspect func(ctx context.Context, what string, module *graphir.Module, globals map[string]any)

func (Module) Inspect(
	logger logs.Logger,
) Inspect {
	return func(ctx context.Context, what string, module *graphir.Module, globals map[string]any) {

		mappings := make(starlark.StringDict)
		for name, value := range globals {
			mappings[name] = toStarlarkValue(value)
		}
		if module != nil {
			methods := make(map[string]any)
			for _, name := range module.MethodNames() {
				method, ok := module.Method(name)
				if !ok {
					continue
				}
				methods[name] = map[string]any{
					"params": method.Params,
					"inputs": len(method.Graph.Inputs()),
					"nodes":  method.Graph.NumNodes(),
					"dump":   method.Graph.String(),
				}
			}
			mappings["methods"] = toStarlarkValue(methods)
		}

		logger.InfoContext(ctx, "inspect: "+what,
			"globals", slices.Collect(maps.Keys(mappings)),
		)
		defer func() {
			logger.InfoContext(ctx, "inspect end: "+what)
		}()

		thread := &starlark.Thread{
			Name: "repl",
		}
		repl.REPLOptions(&syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
		}, thread, mappings)
	}
}
