package graphir

import (
	"fmt"
	"strings"
)

// String renders the graph in a stable textual form. Two structurally equal
// graphs dump to the same text.
func (g *Graph) String() string {
	var sb strings.Builder

	sb.WriteString("graph(")
	for i, in := range g.inputs {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s : %s", in.Ref(), in.Type())
	}
	sb.WriteString("):\n")

	for _, n := range g.nodes {
		sb.WriteString("  ")
		for i, out := range n.Outputs {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s : %s", out.Ref(), out.Type())
		}
		if len(n.Outputs) > 0 {
			sb.WriteString(" = ")
		}
		sb.WriteString(n.Op)
		if len(n.Attrs) > 0 {
			sb.WriteString("[")
			for i, attr := range n.Attrs {
				if i > 0 {
					sb.WriteString(", ")
				}
				fmt.Fprintf(&sb, "%s=%#v", attr.Name, attr.Value)
			}
			sb.WriteString("]")
		}
		sb.WriteString("(")
		for i, in := range n.Inputs {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(in.Ref())
		}
		sb.WriteString(")\n")
	}

	sb.WriteString("  return (")
	for i, out := range g.outputs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(out.Ref())
	}
	sb.WriteString(")\n")

	return sb.String()
}
