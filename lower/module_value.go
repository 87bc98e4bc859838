package lower

import (
	"go.starlark.net/syntax"

	"github.com/reusee/graphscript/graphir"
)

// ModuleValue is the sugared form of a module, typically the bound receiver.
// It has no graph representation; attribute access desugars to submodules,
// parameters (materialized as graph inputs on first use) and registered
// methods.
type ModuleValue struct {
	unsupported
	module *graphir.Module
}

func NewModuleValue(m *graphir.Module) *ModuleValue {
	return &ModuleValue{
		unsupported: unsupported{kind: "module"},
		module:      m,
	}
}

func (m *ModuleValue) Attr(pos syntax.Position, b *Builder, name string) (SugaredValue, error) {
	if sub, ok := m.module.Submodule(name); ok {
		return NewModuleValue(sub), nil
	}
	if typ, ok := m.module.Parameter(name); ok {
		return NewSimpleValue(b.moduleInput(m.module, name, typ)), nil
	}
	if meth, ok := m.module.Method(name); ok {
		return NewMethodValue(meth), nil
	}
	return nil, errorf(pos, "module has no attribute %s", name)
}
