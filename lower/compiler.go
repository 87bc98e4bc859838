package lower

import (
	"go.starlark.net/syntax"

	"github.com/reusee/graphscript/graphir"
)

type lowerer struct {
	builder  *Builder
	env      *Env
	resolver Resolver
	returned bool
}

func (c *lowerer) lowerStmts(stmts []syntax.Stmt) error {
	for _, stmt := range stmts {
		if c.returned {
			// statements after return are unreachable
			return nil
		}
		if err := c.lowerStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (c *lowerer) lowerStmt(stmt syntax.Stmt) error {
	switch s := stmt.(type) {

	case *syntax.ExprStmt:
		// results are discarded, accept whatever the expression produces
		_, err := c.lowerExpr(s.X, CallsiteDescriptor{NOutputs: 1, AllowVarargs: true})
		return err

	case *syntax.AssignStmt:
		return c.lowerAssign(s)

	case *syntax.ReturnStmt:
		return c.lowerReturn(s)

	case *syntax.ForStmt:
		return c.lowerFor(s)

	case *syntax.BranchStmt:
		if s.Token == syntax.PASS {
			return nil
		}
		return errorf(nodePos(s), "unsupported statement: %s", s.Token)

	default:
		return errorf(nodePos(stmt), "unsupported statement type: %T", stmt)
	}
}

func (c *lowerer) lowerAssign(s *syntax.AssignStmt) error {
	if s.Op != syntax.EQ {
		return c.lowerAugmentedAssign(s)
	}

	switch lhs := s.LHS.(type) {

	case *syntax.Ident:
		val, err := c.lowerExpr(s.RHS, valueCallsite)
		if err != nil {
			return err
		}
		c.env.Def(lhs.Name, val)
		return nil

	case *syntax.ParenExpr:
		inner := *s
		inner.LHS = lhs.X
		return c.lowerAssign(&inner)

	case *syntax.TupleExpr:
		return c.lowerUnpackAssign(s, lhs.List)

	case *syntax.ListExpr:
		return c.lowerUnpackAssign(s, lhs.List)

	default:
		return errorf(nodePos(s.LHS), "unsupported assignment target: %T", s.LHS)
	}
}

func (c *lowerer) lowerUnpackAssign(s *syntax.AssignStmt, targets []syntax.Expr) error {
	names := make([]string, len(targets))
	for i, target := range targets {
		id, ok := target.(*syntax.Ident)
		if !ok {
			return errorf(nodePos(target), "unsupported assignment target: %T", target)
		}
		names[i] = id.Name
	}

	cd := CallsiteDescriptor{NOutputs: len(names)}
	rhs, err := c.lowerExpr(s.RHS, cd)
	if err != nil {
		return err
	}
	elems, err := rhs.AsTuple(nodePos(s.RHS), c.builder)
	if err != nil {
		return err
	}
	if len(elems) != len(names) {
		return &ArityMismatchError{
			Expected: len(names),
			Actual:   len(elems),
			Pos:      nodePos(s.RHS),
		}
	}
	for i, name := range names {
		c.env.Def(name, elems[i])
	}
	return nil
}

var augOps = map[syntax.Token]string{
	syntax.PLUS_EQ:       "add",
	syntax.MINUS_EQ:      "sub",
	syntax.STAR_EQ:       "mul",
	syntax.SLASH_EQ:      "div",
	syntax.SLASHSLASH_EQ: "floordiv",
	syntax.PERCENT_EQ:    "mod",
	syntax.AMP_EQ:        "band",
	syntax.PIPE_EQ:       "bor",
	syntax.CIRCUMFLEX_EQ: "bxor",
	syntax.LTLT_EQ:       "lsh",
	syntax.GTGT_EQ:       "rsh",
}

func (c *lowerer) lowerAugmentedAssign(s *syntax.AssignStmt) error {
	op, ok := augOps[s.Op]
	if !ok {
		return errorf(nodePos(s), "augmented assignment op %s not supported", s.Op)
	}
	lhs, ok := s.LHS.(*syntax.Ident)
	if !ok {
		return errorf(nodePos(s.LHS), "unsupported augmented assignment target: %T", s.LHS)
	}

	cur, err := c.lowerExpr(lhs, valueCallsite)
	if err != nil {
		return err
	}
	outs, err := c.emitBinaryOp(op, nodePos(s), cur, s.RHS)
	if err != nil {
		return err
	}
	c.env.Def(lhs.Name, outs)
	return nil
}

func (c *lowerer) lowerReturn(s *syntax.ReturnStmt) error {
	c.returned = true
	if s.Result == nil {
		return nil
	}

	pos := nodePos(s.Result)

	// a tuple display returns each element
	if tuple, ok := s.Result.(*syntax.TupleExpr); ok {
		for _, elem := range tuple.List {
			sv, err := c.lowerExpr(elem, valueCallsite)
			if err != nil {
				return err
			}
			v, err := sv.AsValue(nodePos(elem), c.builder)
			if err != nil {
				return err
			}
			c.builder.Graph.RegisterOutput(v)
		}
		return nil
	}

	// a call in return position forwards all of its outputs
	sv, err := c.lowerExpr(s.Result, varargCallsite)
	if err != nil {
		return err
	}
	if tv, ok := sv.(*TupleValue); ok {
		elems, err := tv.AsTuple(pos, c.builder)
		if err != nil {
			return err
		}
		for _, elem := range elems {
			v, err := elem.AsValue(pos, c.builder)
			if err != nil {
				return err
			}
			c.builder.Graph.RegisterOutput(v)
		}
		return nil
	}
	v, err := sv.AsValue(pos, c.builder)
	if err != nil {
		return err
	}
	c.builder.Graph.RegisterOutput(v)
	return nil
}

// lowerFor unrolls the loop body once per element of the iterated sugared
// value. No graph-native control flow is emitted.
func (c *lowerer) lowerFor(s *syntax.ForStmt) error {
	id, ok := s.Vars.(*syntax.Ident)
	if !ok {
		return errorf(nodePos(s.Vars), "unsupported loop variable: %T", s.Vars)
	}

	seq, err := c.lowerExpr(s.X, valueCallsite)
	if err != nil {
		return err
	}
	elems, err := seq.UnrolledFor(nodePos(s.X), c.builder)
	if err != nil {
		return err
	}

	for _, elem := range elems {
		c.env.Def(id.Name, elem)
		if err := c.lowerStmts(s.Body); err != nil {
			return err
		}
		if c.returned {
			break
		}
	}
	return nil
}

func (c *lowerer) lowerExpr(expr syntax.Expr, cd CallsiteDescriptor) (SugaredValue, error) {
	switch e := expr.(type) {

	case *syntax.Ident:
		return c.lowerIdent(e)

	case *syntax.Literal:
		return c.lowerLiteral(e)

	case *syntax.ParenExpr:
		return c.lowerExpr(e.X, cd)

	case *syntax.UnaryExpr:
		return c.lowerUnaryExpr(e)

	case *syntax.BinaryExpr:
		return c.lowerBinaryExpr(e)

	case *syntax.CallExpr:
		return c.lowerCall(e, cd)

	case *syntax.DotExpr:
		base, err := c.lowerExpr(e.X, valueCallsite)
		if err != nil {
			return nil, err
		}
		return base.Attr(nodePos(e.Name), c.builder, e.Name.Name)

	case *syntax.TupleExpr:
		return c.lowerTupleDisplay(e.List)

	case *syntax.ListExpr:
		return c.lowerTupleDisplay(e.List)

	default:
		return nil, errorf(nodePos(expr), "unsupported expression: %T", expr)
	}
}

func (c *lowerer) lowerIdent(e *syntax.Ident) (SugaredValue, error) {
	if v, ok := c.env.Get(e.Name); ok {
		return v, nil
	}

	// True/False/None parse as identifiers
	switch e.Name {
	case "True":
		return c.constant(true, nodePos(e))
	case "False":
		return c.constant(false, nodePos(e))
	}

	if c.resolver != nil {
		if v, ok := c.resolver.Resolve(e.Name); ok {
			return v, nil
		}
	}
	return nil, &UnresolvedNameError{
		Name: e.Name,
		Pos:  nodePos(e),
	}
}

func (c *lowerer) lowerLiteral(e *syntax.Literal) (SugaredValue, error) {
	switch v := e.Value.(type) {
	case int64, float64, string:
		return c.constant(v, nodePos(e))
	default:
		return nil, errorf(nodePos(e), "unsupported literal: %v", e.Value)
	}
}

func (c *lowerer) constant(value any, pos syntax.Position) (SugaredValue, error) {
	v, err := c.builder.Graph.Constant(value, pos)
	if err != nil {
		return nil, withPos(err, pos)
	}
	return NewSimpleValue(v), nil
}

func (c *lowerer) lowerUnaryExpr(e *syntax.UnaryExpr) (SugaredValue, error) {
	var op string
	switch e.Op {
	case syntax.PLUS:
		return c.lowerExpr(e.X, valueCallsite)
	case syntax.MINUS:
		op = "neg"
	case syntax.NOT:
		op = "not"
	default:
		return nil, errorf(nodePos(e), "unsupported unary op: %s", e.Op)
	}

	sv, err := c.lowerExpr(e.X, valueCallsite)
	if err != nil {
		return nil, err
	}
	v, err := sv.AsValue(nodePos(e.X), c.builder)
	if err != nil {
		return nil, err
	}
	outs, err := NewBuiltinFunction(op).Call(nodePos(e), c.builder, []*graphir.Value{v}, nil, valueCallsite)
	if err != nil {
		return nil, err
	}
	return NewSimpleValue(outs[0]), nil
}

var binOps = map[syntax.Token]string{
	syntax.PLUS:       "add",
	syntax.MINUS:      "sub",
	syntax.STAR:       "mul",
	syntax.SLASH:      "div",
	syntax.SLASHSLASH: "floordiv",
	syntax.PERCENT:    "mod",
	syntax.STARSTAR:   "pow",
	syntax.EQL:        "eq",
	syntax.NEQ:        "ne",
	syntax.LT:         "lt",
	syntax.LE:         "le",
	syntax.GT:         "gt",
	syntax.GE:         "ge",
	syntax.AMP:        "band",
	syntax.PIPE:       "bor",
	syntax.CIRCUMFLEX: "bxor",
	syntax.LTLT:       "lsh",
	syntax.GTGT:       "rsh",
	syntax.IN:         "contains",
}

func (c *lowerer) lowerBinaryExpr(e *syntax.BinaryExpr) (SugaredValue, error) {
	if e.Op == syntax.NOT_IN {
		contained, err := c.lowerBinaryOp("contains", e)
		if err != nil {
			return nil, err
		}
		v, err := contained.AsValue(nodePos(e), c.builder)
		if err != nil {
			return nil, err
		}
		outs, err := NewBuiltinFunction("not").Call(nodePos(e), c.builder, []*graphir.Value{v}, nil, valueCallsite)
		if err != nil {
			return nil, err
		}
		return NewSimpleValue(outs[0]), nil
	}

	op, ok := binOps[e.Op]
	if !ok {
		return nil, errorf(nodePos(e), "unsupported binary op: %s", e.Op)
	}
	return c.lowerBinaryOp(op, e)
}

func (c *lowerer) lowerBinaryOp(op string, e *syntax.BinaryExpr) (SugaredValue, error) {
	x, err := c.lowerExpr(e.X, valueCallsite)
	if err != nil {
		return nil, err
	}
	return c.emitBinaryOp(op, nodePos(e), x, e.Y)
}

func (c *lowerer) emitBinaryOp(op string, pos syntax.Position, lhs SugaredValue, rhsExpr syntax.Expr) (SugaredValue, error) {
	lv, err := lhs.AsValue(pos, c.builder)
	if err != nil {
		return nil, err
	}
	rhs, err := c.lowerExpr(rhsExpr, valueCallsite)
	if err != nil {
		return nil, err
	}
	rv, err := rhs.AsValue(nodePos(rhsExpr), c.builder)
	if err != nil {
		return nil, err
	}
	outs, err := NewBuiltinFunction(op).Call(pos, c.builder, []*graphir.Value{lv, rv}, nil, valueCallsite)
	if err != nil {
		return nil, err
	}
	return NewSimpleValue(outs[0]), nil
}

func (c *lowerer) lowerCall(e *syntax.CallExpr, cd CallsiteDescriptor) (SugaredValue, error) {
	callee, err := c.lowerExpr(e.Fn, valueCallsite)
	if err != nil {
		return nil, err
	}

	var inputs []*graphir.Value
	var attrs []graphir.Attr

	for _, arg := range e.Args {
		switch a := arg.(type) {

		case *syntax.BinaryExpr:
			if a.Op != syntax.EQ {
				break
			}
			// keyword arguments become constant node attributes
			id, ok := a.X.(*syntax.Ident)
			if !ok {
				return nil, errorf(nodePos(a.X), "keyword argument name must be an identifier")
			}
			lit, ok := a.Y.(*syntax.Literal)
			if !ok {
				return nil, errorf(nodePos(a.Y), "keyword argument %s must be a literal", id.Name)
			}
			attrs = append(attrs, graphir.Attr{Name: id.Name, Value: lit.Value})
			continue

		case *syntax.UnaryExpr:
			if a.Op != syntax.STAR {
				break
			}
			// star expansion forwards all elements of the inner value
			innerCD := valueCallsite
			if _, isCall := a.X.(*syntax.CallExpr); isCall {
				innerCD = varargCallsite
			}
			sv, err := c.lowerExpr(a.X, innerCD)
			if err != nil {
				return nil, err
			}
			elems, err := sv.AsTuple(nodePos(a.X), c.builder)
			if err != nil {
				return nil, err
			}
			for _, elem := range elems {
				v, err := elem.AsValue(nodePos(a.X), c.builder)
				if err != nil {
					return nil, err
				}
				inputs = append(inputs, v)
			}
			continue
		}

		sv, err := c.lowerExpr(arg, valueCallsite)
		if err != nil {
			return nil, err
		}
		v, err := sv.AsValue(nodePos(arg), c.builder)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, v)
	}

	outs, err := callee.Call(nodePos(e), c.builder, inputs, attrs, cd)
	if err != nil {
		return nil, err
	}
	if len(outs) == 1 {
		return NewSimpleValue(outs[0]), nil
	}
	elems := make([]SugaredValue, len(outs))
	for i, out := range outs {
		elems[i] = NewSimpleValue(out)
	}
	return NewTupleValue(elems), nil
}

func (c *lowerer) lowerTupleDisplay(list []syntax.Expr) (SugaredValue, error) {
	elems := make([]SugaredValue, 0, len(list))
	for _, expr := range list {
		sv, err := c.lowerExpr(expr, valueCallsite)
		if err != nil {
			return nil, err
		}
		elems = append(elems, sv)
	}
	return NewTupleValue(elems), nil
}
