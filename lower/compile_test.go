package lower

import (
	"errors"
	"strings"
	"testing"

	"go.starlark.net/syntax"

	"github.com/reusee/graphscript/graphir"
)

func parseDef(t *testing.T, src string) *syntax.DefStmt {
	t.Helper()
	file, err := fileOptions.Parse("test", strings.NewReader(src), 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, stmt := range file.Stmts {
		if def, ok := stmt.(*syntax.DefStmt); ok {
			return def
		}
	}
	t.Fatal("no def in source")
	return nil
}

func TestCompileBasic(t *testing.T) {
	def := parseDef(t, `
def f(x, y):
	return x + y
`)
	g, err := CompileDef(def, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Inputs()) != 2 {
		t.Fatalf("expected 2 inputs, got %d", len(g.Inputs()))
	}
	if g.NumNodes() != 1 || g.Nodes()[0].Op != "add" {
		t.Fatalf("unexpected graph:\n%s", g)
	}
	if len(g.Outputs()) != 1 {
		t.Fatalf("expected 1 output, got %d", len(g.Outputs()))
	}
}

func TestUnresolvedName(t *testing.T) {
	def := parseDef(t, `
def f(x):
	return x + missing
`)
	empty := ResolverFunc(func(string) (SugaredValue, bool) {
		return nil, false
	})
	_, err := CompileDef(def, nil, empty)
	var nameErr *UnresolvedNameError
	if !errors.As(err, &nameErr) {
		t.Fatalf("expected UnresolvedNameError, got %v", err)
	}
	if nameErr.Name != "missing" {
		t.Fatalf("name = %s, want missing", nameErr.Name)
	}
	if !nameErr.Pos.IsValid() {
		t.Fatal("error must carry a position")
	}
}

func TestTupleUnpackArityMismatch(t *testing.T) {
	def := parseDef(t, `
def f(x, y):
	a, b, c = divmod(x, y)
	return a
`)
	_, err := CompileDef(def, nil, nil)
	var arityErr *ArityMismatchError
	if !errors.As(err, &arityErr) {
		t.Fatalf("expected ArityMismatchError, got %v", err)
	}
	if arityErr.Expected != 3 || arityErr.Actual != 2 {
		t.Fatalf("unexpected arity fields: %+v", arityErr)
	}
}

func TestTupleUnpack(t *testing.T) {
	def := parseDef(t, `
def f(x, y):
	q, r = divmod(x, y)
	return q + r
`)
	g, err := CompileDef(def, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if g.NumNodes() != 2 {
		t.Fatalf("expected 2 nodes, got %d:\n%s", g.NumNodes(), g)
	}
	if g.Nodes()[0].Op != "divmod" || g.Nodes()[1].Op != "add" {
		t.Fatalf("unexpected graph:\n%s", g)
	}
}

func TestTupleUnpackFromDisplay(t *testing.T) {
	def := parseDef(t, `
def f(x, y):
	a, b = (y, x)
	return a - b
`)
	g, err := CompileDef(def, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if g.NumNodes() != 1 || g.Nodes()[0].Op != "sub" {
		t.Fatalf("unexpected graph:\n%s", g)
	}
	// a is y, b is x
	node := g.Nodes()[0]
	if node.Inputs[0].Ref() != "%y" || node.Inputs[1].Ref() != "%x" {
		t.Fatalf("unexpected operand order:\n%s", g)
	}
}

func TestBoundReceiver(t *testing.T) {
	module := graphir.NewModule()
	module.DeclareParameter("w", graphir.Dynamic)

	var resolved []string
	resolver := ResolverFunc(func(name string) (SugaredValue, bool) {
		resolved = append(resolved, name)
		return nil, false
	})

	def := parseDef(t, `
def forward(self, x):
	return self.w + x
`)
	err := DefineMethods(module, []*syntax.DefStmt{def}, nil, resolver, NewModuleValue(module))
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range resolved {
		if name == "self" {
			t.Fatal("resolver must not be consulted for the receiver")
		}
	}

	meth, ok := module.Method("forward")
	if !ok {
		t.Fatal("method not registered")
	}
	if len(meth.Params) != 1 || meth.Params[0] != "x" {
		t.Fatalf("unexpected params: %v", meth.Params)
	}
	// x plus the materialized parameter w
	if len(meth.Graph.Inputs()) != 2 {
		t.Fatalf("expected 2 graph inputs, got %d:\n%s", len(meth.Graph.Inputs()), meth.Graph)
	}
}

func TestReceiverRequiresParameter(t *testing.T) {
	module := graphir.NewModule()
	def := parseDef(t, `
def f():
	return 1
`)
	err := DefineMethods(module, []*syntax.DefStmt{def}, nil, nil, NewModuleValue(module))
	if err == nil {
		t.Fatal("expected error for missing receiver parameter")
	}
}

func TestDeterministicCompilation(t *testing.T) {
	src := `
def f(x, y):
	q, r = divmod(x + y, x * y)
	for v in (q, r):
		x = x + v
	return x, q - r
`
	compile := func() string {
		g, err := CompileDef(parseDef(t, src), nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		return g.String()
	}
	a := compile()
	b := compile()
	if a != b {
		t.Fatalf("compilation is not deterministic:\n%s\n%s", a, b)
	}
}

func TestUnrolledFor(t *testing.T) {
	def := parseDef(t, `
def f(x, y):
	acc = x
	for v in (y, x):
		acc = acc + v
	return acc
`)
	g, err := CompileDef(def, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if g.NumNodes() != 2 {
		t.Fatalf("expected 2 unrolled add nodes, got %d:\n%s", g.NumNodes(), g)
	}
	for _, n := range g.Nodes() {
		if n.Op != "add" {
			t.Fatalf("unexpected op %s:\n%s", n.Op, g)
		}
	}
}

func TestForOverValueFails(t *testing.T) {
	def := parseDef(t, `
def f(x):
	for v in x:
		pass
	return x
`)
	_, err := CompileDef(def, nil, nil)
	var capErr *CapabilityError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected CapabilityError, got %v", err)
	}
	if capErr.Kind != "value" || capErr.Op != "iterate" {
		t.Fatalf("unexpected error fields: %+v", capErr)
	}
}

func TestStarArgForwarding(t *testing.T) {
	def := parseDef(t, `
def f(x, y):
	return cat(*divmod(x, y))
`)
	g, err := CompileDef(def, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if g.NumNodes() != 2 {
		t.Fatalf("expected 2 nodes, got %d:\n%s", g.NumNodes(), g)
	}
	catNode := g.Nodes()[1]
	if catNode.Op != "cat" || len(catNode.Inputs) != 2 {
		t.Fatalf("star expansion did not forward both outputs:\n%s", g)
	}
}

func TestKeywordAttributes(t *testing.T) {
	def := parseDef(t, `
def f(x):
	return abs(x, mode="fast")
`)
	g, err := CompileDef(def, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	node := g.Nodes()[0]
	if len(node.Attrs) != 1 || node.Attrs[0].Name != "mode" || node.Attrs[0].Value != "fast" {
		t.Fatalf("unexpected attrs: %+v", node.Attrs)
	}
	if len(node.Inputs) != 1 {
		t.Fatalf("keyword argument must not count as an input:\n%s", g)
	}
}

func TestCallUncallable(t *testing.T) {
	def := parseDef(t, `
def f(x):
	return x(x)
`)
	_, err := CompileDef(def, nil, nil)
	var capErr *CapabilityError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected CapabilityError, got %v", err)
	}
	if capErr.Kind != "value" || capErr.Op != "call" {
		t.Fatalf("unexpected error fields: %+v", capErr)
	}
}

func TestNoPartialRegistration(t *testing.T) {
	module := graphir.NewModule()
	good := parseDef(t, `
def good(x):
	return x
`)
	bad := parseDef(t, `
def bad(x):
	return missing
`)
	err := DefineMethods(module, []*syntax.DefStmt{good, bad}, nil, nil, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := module.Method("good"); !ok {
		t.Fatal("earlier definition must stay registered")
	}
	if _, ok := module.Method("bad"); ok {
		t.Fatal("failed definition must not be registered")
	}
}

func TestDefineMethodsFromSource(t *testing.T) {
	module := graphir.NewModule()

	// later definitions reach earlier ones through the resolver
	resolver := ResolverFunc(func(name string) (SugaredValue, bool) {
		if meth, ok := module.Method(name); ok {
			return NewMethodValue(meth), true
		}
		return nil, false
	})

	src := `
def double(x):
	return x + x

def quad(x):
	return double(double(x))
`
	err := DefineMethodsFromSource(module, "test", strings.NewReader(src), nil, resolver, nil)
	if err != nil {
		t.Fatal(err)
	}

	meth, ok := module.Method("quad")
	if !ok {
		t.Fatal("quad not registered")
	}
	invokes := 0
	for _, n := range meth.Graph.Nodes() {
		if n.Op == "invoke" {
			invokes++
			if len(n.Attrs) != 1 || n.Attrs[0].Value != "double" {
				t.Fatalf("unexpected invoke attrs: %+v", n.Attrs)
			}
		}
	}
	if invokes != 2 {
		t.Fatalf("expected 2 invoke nodes, got %d:\n%s", invokes, meth.Graph)
	}
}

func TestFromSourceRejectsNonDef(t *testing.T) {
	module := graphir.NewModule()
	err := DefineMethodsFromSource(module, "test", strings.NewReader("x = 1\n"), nil, nil, nil)
	if err == nil {
		t.Fatal("expected error for non-def top-level statement")
	}
}

func TestFromSourceParseError(t *testing.T) {
	module := graphir.NewModule()
	err := DefineMethodsFromSource(module, "test", strings.NewReader("def f(:\n"), nil, nil, nil)
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestMultiOutputReturn(t *testing.T) {
	def := parseDef(t, `
def f(x, y):
	return divmod(x, y)
`)
	g, err := CompileDef(def, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Outputs()) != 2 {
		t.Fatalf("expected both outputs forwarded, got %d:\n%s", len(g.Outputs()), g)
	}
}

func TestMethodCallArity(t *testing.T) {
	module := graphir.NewModule()
	err := DefineMethodsFromSource(module, "test", strings.NewReader(`
def one(x):
	return x
`), nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	resolver := ResolverFunc(func(name string) (SugaredValue, bool) {
		if meth, ok := module.Method(name); ok {
			return NewMethodValue(meth), true
		}
		return nil, false
	})
	def := parseDef(t, `
def f(x, y):
	return one(x, y)
`)
	_, err = CompileDef(def, nil, resolver)
	if err == nil {
		t.Fatal("expected input arity error")
	}
}

func TestAugmentedAssign(t *testing.T) {
	def := parseDef(t, `
def f(x, y):
	x += y
	x *= y
	return x
`)
	g, err := CompileDef(def, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if g.NumNodes() != 2 || g.Nodes()[0].Op != "add" || g.Nodes()[1].Op != "mul" {
		t.Fatalf("unexpected graph:\n%s", g)
	}
}

func TestLiteralAndBoolConstants(t *testing.T) {
	def := parseDef(t, `
def f(x):
	flag = True
	return x + 1, flag
`)
	g, err := CompileDef(def, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	dump := g.String()
	if !strings.Contains(dump, "constant[value=1]") {
		t.Fatalf("missing int constant:\n%s", dump)
	}
	if !strings.Contains(dump, "constant[value=true]") {
		t.Fatalf("missing bool constant:\n%s", dump)
	}
}

func TestUnsupportedStatement(t *testing.T) {
	def := parseDef(t, `
def f(x):
	while x:
		pass
	return x
`)
	_, err := CompileDef(def, nil, nil)
	if err == nil {
		t.Fatal("expected error for unsupported statement")
	}
}
