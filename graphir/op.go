package graphir

import "maps"

// VariadicInputs marks an operator that accepts any number of inputs.
const VariadicInputs = -1

// OpSpec declares the arity contract of a builtin operator.
type OpSpec struct {
	Name       string `json:"name"`
	NumInputs  int    `json:"inputs"`
	NumOutputs int    `json:"outputs"`
}

// OpTable maps builtin names to their specs. It is treated as read-only
// during compilation.
type OpTable map[string]OpSpec

func (t OpTable) Lookup(name string) (OpSpec, bool) {
	spec, ok := t[name]
	return spec, ok
}

// Extend returns a copy of the table with the given specs added, later specs
// overriding earlier ones of the same name.
func (t OpTable) Extend(specs ...OpSpec) OpTable {
	ret := maps.Clone(t)
	if ret == nil {
		ret = make(OpTable)
	}
	for _, spec := range specs {
		ret[spec.Name] = spec
	}
	return ret
}

func DefaultOps() OpTable {
	table := make(OpTable)
	for _, name := range []string{
		"add", "sub", "mul", "div", "floordiv", "mod", "pow",
		"eq", "ne", "lt", "le", "gt", "ge",
		"band", "bor", "bxor", "lsh", "rsh",
		"contains",
	} {
		table[name] = OpSpec{Name: name, NumInputs: 2, NumOutputs: 1}
	}
	for _, name := range []string{"neg", "not", "abs"} {
		table[name] = OpSpec{Name: name, NumInputs: 1, NumOutputs: 1}
	}
	table["divmod"] = OpSpec{Name: "divmod", NumInputs: 2, NumOutputs: 2}
	table["minmax"] = OpSpec{Name: "minmax", NumInputs: VariadicInputs, NumOutputs: 2}
	table["cat"] = OpSpec{Name: "cat", NumInputs: VariadicInputs, NumOutputs: 1}
	return table
}
