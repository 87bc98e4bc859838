package lower

import "github.com/reusee/graphscript/graphir"

// Builder is the method under construction: the graph being built plus the
// collaborator tables sugared values consult when they emit nodes.
type Builder struct {
	Graph *graphir.Graph
	Ops   graphir.OpTable
	Attrs graphir.AttrTable

	moduleInputs map[paramKey]*graphir.Value
}

type paramKey struct {
	module *graphir.Module
	name   string
}

func NewBuilder(ops graphir.OpTable) *Builder {
	if ops == nil {
		ops = graphir.DefaultOps()
	}
	return &Builder{
		Graph: graphir.NewGraph(),
		Ops:   ops,
		Attrs: graphir.DefaultAttrs(),
	}
}

// moduleInput materializes a module parameter as a graph input, once per
// (module, name) pair per graph.
func (b *Builder) moduleInput(m *graphir.Module, name string, typ graphir.Type) *graphir.Value {
	key := paramKey{module: m, name: name}
	if v, ok := b.moduleInputs[key]; ok {
		return v
	}
	v := b.Graph.AddInput(name, typ)
	if b.moduleInputs == nil {
		b.moduleInputs = make(map[paramKey]*graphir.Value)
	}
	b.moduleInputs[key] = v
	return v
}
