package graphir

// AttrTable resolves attribute names on plain graph values to builtin
// operators, keyed by the value's declared type. The resolved builtin takes
// the value itself as its first input.
type AttrTable map[Type]map[string]string

func (t AttrTable) Lookup(typ Type, name string) (string, bool) {
	if attrs, ok := t[typ]; ok {
		if op, ok := attrs[name]; ok {
			return op, true
		}
	}
	// anything not covered by a concrete type falls back to Dynamic
	if typ != Dynamic {
		if attrs, ok := t[Dynamic]; ok {
			if op, ok := attrs[name]; ok {
				return op, true
			}
		}
	}
	return "", false
}

func DefaultAttrs() AttrTable {
	return AttrTable{
		Dynamic: {
			"abs":    "abs",
			"add":    "add",
			"divmod": "divmod",
			"neg":    "neg",
		},
		String: {
			"cat": "cat",
		},
	}
}
