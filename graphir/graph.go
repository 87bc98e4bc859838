package graphir

import (
	"fmt"
	"slices"

	"go.starlark.net/syntax"
)

// Graph is an append-only arena of operator nodes and value handles. It owns
// every Node and Value it hands out; callers thread the handles and never
// free them.
type Graph struct {
	inputs  []*Value
	nodes   []*Node
	outputs []*Value
	nextID  int
}

// Value is a handle to a single typed datum in its owning graph. Inputs have
// a nil Node.
type Value struct {
	id   int
	name string
	typ  Type
	node *Node
}

func (v *Value) ID() int {
	return v.id
}

func (v *Value) Type() Type {
	return v.typ
}

// Node returns the node that produces this value, or nil for graph inputs.
func (v *Value) Node() *Node {
	return v.node
}

// Ref is the textual name of the value, as used in dumps.
func (v *Value) Ref() string {
	if v.name != "" {
		return "%" + v.name
	}
	return fmt.Sprintf("%%%d", v.id)
}

// Attr is a constant attribute attached to a node.
type Attr struct {
	Name  string
	Value any
}

type Node struct {
	Op      string
	Inputs  []*Value
	Outputs []*Value
	Attrs   []Attr
	Pos     syntax.Position
}

func NewGraph() *Graph {
	return &Graph{}
}

func (g *Graph) newValue(name string, typ Type, node *Node) *Value {
	v := &Value{
		id:   g.nextID,
		name: name,
		typ:  typ,
		node: node,
	}
	g.nextID++
	return v
}

func (g *Graph) AddInput(name string, typ Type) *Value {
	v := g.newValue(name, typ, nil)
	g.inputs = append(g.inputs, v)
	return v
}

// NewNode appends an operator node with the given inputs and returns it,
// allocating numOutputs fresh output values.
func (g *Graph) NewNode(op string, inputs []*Value, attrs []Attr, numOutputs int, pos syntax.Position) *Node {
	n := &Node{
		Op:     op,
		Inputs: slices.Clone(inputs),
		Attrs:  slices.Clone(attrs),
		Pos:    pos,
	}
	for range numOutputs {
		n.Outputs = append(n.Outputs, g.newValue("", Dynamic, n))
	}
	g.nodes = append(g.nodes, n)
	return n
}

// Constant emits a constant node. Supported constants are int64, float64,
// string and bool.
func (g *Graph) Constant(value any, pos syntax.Position) (*Value, error) {
	typ, ok := TypeOfConst(value)
	if !ok {
		return nil, fmt.Errorf("unsupported constant type: %T", value)
	}
	n := g.NewNode("constant", nil, []Attr{{Name: "value", Value: value}}, 1, pos)
	n.Outputs[0].typ = typ
	return n.Outputs[0], nil
}

func (g *Graph) RegisterOutput(v *Value) {
	g.outputs = append(g.outputs, v)
}

func (g *Graph) Inputs() []*Value {
	return g.inputs
}

func (g *Graph) Nodes() []*Node {
	return g.nodes
}

func (g *Graph) Outputs() []*Value {
	return g.outputs
}

func (g *Graph) NumNodes() int {
	return len(g.nodes)
}
