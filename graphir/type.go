package graphir

import "fmt"

// Type is the declared type of a Value. Node outputs default to Dynamic;
// constants carry the kind of their literal.
type Type int

const (
	Dynamic Type = iota
	Int
	Float
	String
	Bool
)

func (t Type) String() string {
	switch t {
	case Dynamic:
		return "Dynamic"
	case Int:
		return "Int"
	case Float:
		return "Float"
	case String:
		return "String"
	case Bool:
		return "Bool"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// TypeOfConst maps a constant to its Type. The second result is false for
// values that cannot be graph constants.
func TypeOfConst(value any) (Type, bool) {
	switch value.(type) {
	case int64:
		return Int, true
	case float64:
		return Float, true
	case string:
		return String, true
	case bool:
		return Bool, true
	}
	return Dynamic, false
}
