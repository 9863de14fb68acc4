package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyPal/pifront/lib/ast"
	pilex "github.com/vyPal/pifront/lib/lexer"
)

// sexpr renders an expression as a fully bracketed prefix form so tests can
// check tree shape in one string.
func sexpr(e ast.Node) string {
	var v *ast.Visitor[string]
	join := func(head string, parts ...ast.Node) string {
		out := []string{head}
		for _, p := range parts {
			out = append(out, v.Visit(p))
		}
		return "(" + strings.Join(out, " ") + ")"
	}
	v = &ast.Visitor[string]{
		Binary: func(_ *ast.Visitor[string], n *ast.Binary) string {
			return join(n.Op.String(), n.Left, n.Right)
		},
		Unary: func(_ *ast.Visitor[string], n *ast.Unary) string {
			return join(n.Op.String(), n.X)
		},
		Ident: func(_ *ast.Visitor[string], n *ast.Ident) string { return n.Name },
		Const: func(_ *ast.Visitor[string], n *ast.Const) string {
			if n.Type == ast.StringConst {
				return `"` + n.Value + `"`
			}
			return n.Value
		},
		Call: func(_ *ast.Visitor[string], n *ast.Call) string {
			parts := []ast.Node{n.Fn}
			for _, a := range n.Args {
				parts = append(parts, a)
			}
			return join("call", parts...)
		},
		Member: func(_ *ast.Visitor[string], n *ast.Member) string {
			return "(. " + v.Visit(n.X) + " " + n.Field + ")"
		},
		Arrow: func(_ *ast.Visitor[string], n *ast.Arrow) string {
			return "(-> " + v.Visit(n.X) + " " + n.Field + ")"
		},
		Index: func(_ *ast.Visitor[string], n *ast.Index) string {
			return join("[]", n.X, n.Index)
		},
		MemberAssign: func(_ *ast.Visitor[string], n *ast.MemberAssign) string {
			head := ".="
			if n.Arrow {
				head = "->="
			}
			return "(" + head + " " + v.Visit(n.X) + " " + n.Field + " " + v.Visit(n.Value) + ")"
		},
		ArrayUpdate: func(_ *ast.Visitor[string], n *ast.ArrayUpdate) string {
			return join("[:=]", n.X, n.Index, n.Value)
		},
		ArrayUpdateAssign: func(_ *ast.Visitor[string], n *ast.ArrayUpdateAssign) string {
			return join("[]=", n.X, n.Index, n.Value)
		},
		Quantified: func(_ *ast.Visitor[string], n *ast.Quantified) string {
			out := []string{n.Quant.String()}
			for _, f := range n.Vars {
				out = append(out, "("+f.Name+" "+f.Type.String()+")")
			}
			out = append(out, v.Visit(n.Body))
			return "(" + strings.Join(out, " ") + ")"
		},
		Length: func(_ *ast.Visitor[string], n *ast.Length) string {
			return join("#", n.X)
		},
		New: func(_ *ast.Visitor[string], n *ast.New) string {
			if n.Size != nil {
				return join("new "+n.Type.String()+"[]", n.Size)
			}
			parts := make([]ast.Node, len(n.Args))
			for i, a := range n.Args {
				parts[i] = a
			}
			return join("new "+n.Type.String(), parts...)
		},
		Paren: func(_ *ast.Visitor[string], n *ast.Paren) string {
			return join("paren", n.X)
		},
		Assign: func(_ *ast.Visitor[string], n *ast.Assign) string {
			return join("=", n.Target, n.Value)
		},
	}
	return v.Visit(e)
}

func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	tokens, err := pilex.Tokenize("", src)
	require.NoError(t, err)
	expr, next, err := ParseExpression(tokens, 0)
	require.NoError(t, err, src)
	require.True(t, tokens[next].EOF(), "trailing tokens after %q", src)
	return expr
}

func parseExprErr(t *testing.T, src string) *SyntaxError {
	t.Helper()
	tokens, err := pilex.Tokenize("", src)
	require.NoError(t, err)
	expr, next, err := ParseExpression(tokens, 0)
	require.Error(t, err, src)
	assert.Nil(t, expr)
	assert.Equal(t, 0, next)
	var se *SyntaxError
	require.True(t, errors.As(err, &se), "%T is not a SyntaxError", err)
	return se
}

func TestExpressionShapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a + b * c", "(+ a (* b c))"},
		{"a - b - c", "(- (- a b) c)"},
		{"a = b = c", "(= a (= b c))"},
		{"a * b / c % d", "(% (/ (* a b) c) d)"},
		{"a || b && c", "(|| a (&& b c))"},
		{"a && b || c && d", "(|| (&& a b) (&& c d))"},
		{"a == b < c", "(== a (< b c))"},
		{"a != b == c", "(== (!= a b) c)"},
		{"a < b + c", "(< a (+ b c))"},
		{"a <= b >= c", "(>= (<= a b) c)"},
		{"!a && -b", "(&& (! a) (- b))"},
		{"- - a", "(- (- a))"},
		{"-a * b", "(* (- a) b)"},
		{"(a + b) * c", "(* (paren (+ a b)) c)"},
		{"f()", "(call f)"},
		{"f(a, b).x[i]", "([] (. (call f a b) x) i)"},
		{"o.m(1)(2)", "(call (call (. o m) 1) 2)"},
		{"p->next->val", "(-> (-> p next) val)"},
		{"a[i := v][j]", "([] ([:=] a i v) j)"},
		{"a[i := b[j := 0]]", "([:=] a i ([:=] b j 0))"},
		{"#a + 1", "(+ (# a) 1)"},
		{"#a.items[0]", "(# ([] (. a items) 0))"},
		{"new C(1, x)", "(new C 1 x)"},
		{"new C().f", "(. (new C) f)"},
		{"new int[n + 1]", "(new int[] (+ n 1))"},
		{"x = a[i := 1]", "(= x ([:=] a i 1))"},
		{"o.f = 3", "(.= o f 3)"},
		{"p->f = 3", "(->= p f 3)"},
		{"a[i] = b[j] = 0", "([]= a i ([]= b j 0))"},
		{"x = o.f = 1", "(= x (.= o f 1))"},
		{"f(a[i := 1], o.f = 2)", "(call f ([:=] a i 1) (.= o f 2))"},
		{"forall x: int. x > 0", "(forall (x int) (> x 0))"},
		{
			"exists i: int, j: int. a[i] == b[j] && i < j",
			"(exists (i int) (j int) (&& (== ([] a i) ([] b j)) (< i j)))",
		},
		{"forall a: int[]. #a >= 0", "(forall (a int[]) (>= (# a) 0))"},
		{"p && forall x: int. q || r", "(&& p (forall (x int) (|| q r)))"},
		{`"hi" == s`, `(== "hi" s)`},
		{"true || null", "(|| true null)"},
	}

	for _, tc := range tests {
		got := sexpr(parseExpr(t, tc.input))
		assert.Equal(t, tc.want, got, tc.input)
	}
}

func TestNestedQuantifiersKeepOwnBindings(t *testing.T) {
	e := parseExpr(t, "forall x: int. (exists x: bool. x) && x > 0")
	outer := e.(*ast.Quantified)
	require.Len(t, outer.Vars, 1)
	assert.Equal(t, "int", outer.Vars[0].Type.Name)

	body := outer.Body.(*ast.Binary)
	inner := body.Left.(*ast.Paren).X.(*ast.Quantified)
	assert.Equal(t, ast.Exists, inner.Quant)
	assert.Equal(t, "bool", inner.Vars[0].Type.Name)
	assert.NotSame(t, outer.Vars[0], inner.Vars[0])
}

func TestExpressionPositions(t *testing.T) {
	e := parseExpr(t, "abc +\n  f(x)")
	bin := e.(*ast.Binary)
	assert.Equal(t, 1, bin.Pos.Line)
	assert.Equal(t, 1, bin.Pos.Column)
	call := bin.Right.(*ast.Call)
	assert.Equal(t, 2, call.Pos.Line)
	assert.Equal(t, 3, call.Pos.Column)
	assert.Equal(t, 5, call.Args[0].Position().Column)
}

func TestParseExpressionStopsAtFirstUnconsumedToken(t *testing.T) {
	tokens, err := pilex.Tokenize("", "a + b; c")
	require.NoError(t, err)
	expr, next, err := ParseExpression(tokens, 0)
	require.NoError(t, err)
	assert.Equal(t, "(+ a b)", sexpr(expr))
	assert.Equal(t, ";", tokens[next].Value)

	expr, next, err = ParseExpression(tokens, next+1)
	require.NoError(t, err)
	assert.Equal(t, "c", sexpr(expr))
	assert.True(t, tokens[next].EOF())
}

func TestAssignmentRequiresLvalue(t *testing.T) {
	for _, src := range []string{"(a + b) = c", "(a) = c", "a + b = c", "f(x) = 1", "1 = x", "#a = 2"} {
		se := parseExprErr(t, src)
		assert.Equal(t, "=", se.Token.Value, src)
		assert.Contains(t, se.Expected, expIdent, src)
	}
	se := parseExprErr(t, "(a + b) = c")
	assert.Equal(t, 9, se.Pos.Column)
	assert.Contains(t, se.Error(), "cannot assign to parenthesized expression")
}

func TestExpressionErrors(t *testing.T) {
	tests := []struct {
		input    string
		token    string
		expected []string
	}{
		{"a +", "", exprStart},
		{"a + )", ")", exprStart},
		{"f(a b)", "b", []string{",", ")"}},
		{"a[1", "", []string{"]", ":="}},
		{"a[1 := 2", "", []string{"]"}},
		{"o.", "", []string{expIdent}},
		{"forall x int. x", "int", []string{":"}},
		{"forall x: int x", "x", []string{",", "."}},
		{"forall : int. x", ":", []string{expIdent}},
		{"new C", "", []string{"(", "["}},
		{"new 3", "3", []string{expIdent}},
		{"(a", "", []string{")"}},
	}
	for _, tc := range tests {
		se := parseExprErr(t, tc.input)
		assert.Equal(t, tc.token, se.Token.Value, tc.input)
		assert.Equal(t, tc.expected, se.Expected, tc.input)
	}
}

func TestSyntaxErrorMessage(t *testing.T) {
	se := parseExprErr(t, "a + )")
	assert.Equal(t, 1, se.Position().Line)
	assert.Equal(t, 5, se.Position().Column)
	assert.True(t, strings.HasPrefix(se.Error(), "1:5: unexpected \")\" (expected one of identifier, integer, string, \"true\""), se.Error())

	se = parseExprErr(t, "(a")
	assert.Equal(t, "unexpected end of input (expected \")\")", se.Message())
}
