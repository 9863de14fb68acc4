package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ident(name string) *Ident { return &Ident{Name: name} }

// sample is (a + b) * f(c, d)
func sample() Expr {
	return &Binary{
		Op:   Mul,
		Left: &Paren{X: &Binary{Op: Add, Left: ident("a"), Right: ident("b")}},
		Right: &Call{
			Fn:   ident("f"),
			Args: []Expr{ident("c"), ident("d")},
		},
	}
}

func TestVisitorDefaultReturnsLastChild(t *testing.T) {
	v := &Visitor[string]{
		Ident: func(_ *Visitor[string], n *Ident) string { return n.Name },
	}
	assert.Equal(t, "d", v.Visit(sample()))
}

func TestVisitorCombineFoldsInOrder(t *testing.T) {
	v := &Visitor[string]{
		Ident:   func(_ *Visitor[string], n *Ident) string { return n.Name },
		Combine: func(acc, next string) string { return acc + next },
	}
	assert.Equal(t, "abfcd", Walk(v, sample()))
}

func TestVisitorHandlerControlsRecursion(t *testing.T) {
	count := &Visitor[int]{
		Ident:   func(*Visitor[int], *Ident) int { return 1 },
		Combine: func(acc, next int) int { return acc + next },
	}
	assert.Equal(t, 5, count.Visit(sample()))

	// Skip call arguments but keep counting elsewhere.
	count.Call = func(v *Visitor[int], n *Call) int { return v.Visit(n.Fn) }
	assert.Equal(t, 3, count.Visit(sample()))
}

func TestVisitorLeafAndNil(t *testing.T) {
	v := &Visitor[int]{}
	assert.Equal(t, 0, v.Visit(&BreakStmt{}))
	assert.Equal(t, 0, v.Visit(nil))
}

func TestVisitorDoesNotMutate(t *testing.T) {
	tree := sample()
	before := tree.(*Binary).Right.(*Call).Args[1]
	v := &Visitor[int]{Combine: func(acc, next int) int { return acc + next }}
	v.Visit(tree)
	v.Visit(tree)
	assert.Same(t, before, tree.(*Binary).Right.(*Call).Args[1])
}

func TestChildrenOrder(t *testing.T) {
	pre := &Annotation{Tag: Pre, Pred: ident("p")}
	post := &Annotation{Tag: Post, Pred: ident("q")}
	fn := &FnDecl{
		Name:     "f",
		Formals:  []*Formal{{Name: "x", Type: Type{Name: "int"}}},
		Requires: []*Annotation{pre},
		Ensures:  []*Annotation{post},
		Body:     &Block{},
	}
	var kinds []Kind
	for _, c := range fn.Children() {
		kinds = append(kinds, c.Kind())
	}
	assert.Equal(t, []Kind{KindFormal, KindAnnotation, KindAnnotation, KindBlock}, kinds)

	loop := &ForStmt{Cond: ident("c"), Body: &Block{}}
	assert.Len(t, loop.Children(), 2)
}

func TestInspect(t *testing.T) {
	var names []string
	Inspect(sample(), func(n Node) bool {
		if _, ok := n.(*Call); ok {
			return false
		}
		if id, ok := n.(*Ident); ok {
			names = append(names, id.Name)
		}
		return true
	})
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "int[][]", Type{Name: "int", Dims: 2}.String())
	assert.Equal(t, "C", Type{Name: "C"}.String())
	assert.Equal(t, "ArrayUpdateAssign", KindArrayUpdateAssign.String())
}
