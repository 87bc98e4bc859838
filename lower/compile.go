package lower

import (
	"io"

	"go.starlark.net/syntax"

	"github.com/reusee/graphscript/graphir"
)

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}

// CompileDef lowers a single function definition to a standalone graph. Free
// names go through resolver only; there is no receiver. Compilation is
// all-or-nothing: the first error aborts it.
func CompileDef(def *syntax.DefStmt, ops graphir.OpTable, resolver Resolver) (*graphir.Graph, error) {
	g, _, err := compileDef(def, ops, resolver, nil)
	return g, err
}

// DefineMethods lowers each definition and registers it on the module. If
// self is non-nil it is bound to the first formal parameter of every
// definition before the resolver is consulted for anything else. A failed
// definition leaves no registration behind.
func DefineMethods(
	m *graphir.Module,
	defs []*syntax.DefStmt,
	ops graphir.OpTable,
	resolver Resolver,
	self SugaredValue,
) error {
	for _, def := range defs {
		g, params, err := compileDef(def, ops, resolver, self)
		if err != nil {
			return err
		}
		m.Register(def.Name.Name, g, params)
	}
	return nil
}

// DefineMethodsFromSource parses source text into definitions, then
// delegates to DefineMethods. Only def statements may appear at top level.
func DefineMethodsFromSource(
	m *graphir.Module,
	filename string,
	src io.Reader,
	ops graphir.OpTable,
	resolver Resolver,
	self SugaredValue,
) error {
	file, err := fileOptions.Parse(filename, src, 0)
	if err != nil {
		return err
	}
	var defs []*syntax.DefStmt
	for _, stmt := range file.Stmts {
		def, ok := stmt.(*syntax.DefStmt)
		if !ok {
			return errorf(nodePos(stmt), "unsupported top-level statement: %T", stmt)
		}
		defs = append(defs, def)
	}
	return DefineMethods(m, defs, ops, resolver, self)
}

func compileDef(
	def *syntax.DefStmt,
	ops graphir.OpTable,
	resolver Resolver,
	self SugaredValue,
) (*graphir.Graph, []string, error) {
	names, err := paramNames(def)
	if err != nil {
		return nil, nil, err
	}

	b := NewBuilder(ops)
	env := &Env{}

	if self != nil {
		if len(names) == 0 {
			return nil, nil, errorf(nodePos(def), "method %s must declare a receiver parameter", def.Name.Name)
		}
		env.Def(names[0], self)
		names = names[1:]
	}
	for _, name := range names {
		env.Def(name, NewSimpleValue(b.Graph.AddInput(name, graphir.Dynamic)))
	}

	c := &lowerer{
		builder:  b,
		env:      env,
		resolver: resolver,
	}
	if err := c.lowerStmts(def.Body); err != nil {
		return nil, nil, err
	}

	return b.Graph, names, nil
}

func paramNames(def *syntax.DefStmt) ([]string, error) {
	names := make([]string, 0, len(def.Params))
	for _, p := range def.Params {
		id, ok := p.(*syntax.Ident)
		if !ok {
			return nil, errorf(nodePos(p), "unsupported parameter form: %T", p)
		}
		names = append(names, id.Name)
	}
	return names, nil
}

func nodePos(n syntax.Node) syntax.Position {
	pos, _ := n.Span()
	return pos
}
