package graphir

import "slices"

// Method is a named graph registered on a module, together with the formal
// parameter names its graph inputs were created from.
type Method struct {
	Name   string
	Graph  *Graph
	Params []string
}

// Module is a container of compiled methods, declared parameters and
// submodules. Registration replaces any previous method of the same name.
type Module struct {
	methods     map[string]*Method
	methodNames []string
	paramTypes  map[string]Type
	submodules  map[string]*Module
}

func NewModule() *Module {
	return &Module{
		methods:    make(map[string]*Method),
		paramTypes: make(map[string]Type),
		submodules: make(map[string]*Module),
	}
}

func (m *Module) Register(name string, g *Graph, params []string) {
	if _, ok := m.methods[name]; !ok {
		m.methodNames = append(m.methodNames, name)
	}
	m.methods[name] = &Method{
		Name:   name,
		Graph:  g,
		Params: slices.Clone(params),
	}
}

func (m *Module) Method(name string) (*Method, bool) {
	meth, ok := m.methods[name]
	return meth, ok
}

// MethodNames returns method names in registration order.
func (m *Module) MethodNames() []string {
	return slices.Clone(m.methodNames)
}

func (m *Module) DeclareParameter(name string, typ Type) {
	m.paramTypes[name] = typ
}

func (m *Module) Parameter(name string) (Type, bool) {
	typ, ok := m.paramTypes[name]
	return typ, ok
}

func (m *Module) AddSubmodule(name string, sub *Module) {
	m.submodules[name] = sub
}

func (m *Module) Submodule(name string) (*Module, bool) {
	sub, ok := m.submodules[name]
	return sub, ok
}
