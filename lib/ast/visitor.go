package ast

// Visitor walks a tree with one optional handler per node kind. A handler
// receives the visitor so it can recurse with Visit or VisitChildren. Kinds
// without a handler default to VisitChildren.
//
// When Combine is nil the default result is the result of the last child, or
// the zero value for nodes without children. Otherwise child results are
// folded left to right starting from the zero value.
//
// A Visitor carries no state of its own and never modifies the tree, so one
// value may be shared by concurrent walks as long as its handlers allow it.
type Visitor[R any] struct {
	Program           func(v *Visitor[R], n *Program) R
	ClassDecl         func(v *Visitor[R], n *ClassDecl) R
	FnDecl            func(v *Visitor[R], n *FnDecl) R
	VarDecl           func(v *Visitor[R], n *VarDecl) R
	Formal            func(v *Visitor[R], n *Formal) R
	Annotation        func(v *Visitor[R], n *Annotation) R
	Ranking           func(v *Visitor[R], n *Ranking) R
	Block             func(v *Visitor[R], n *Block) R
	IfStmt            func(v *Visitor[R], n *IfStmt) R
	WhileStmt         func(v *Visitor[R], n *WhileStmt) R
	ForStmt           func(v *Visitor[R], n *ForStmt) R
	ReturnStmt        func(v *Visitor[R], n *ReturnStmt) R
	BreakStmt         func(v *Visitor[R], n *BreakStmt) R
	AssertStmt        func(v *Visitor[R], n *AssertStmt) R
	ExprStmt          func(v *Visitor[R], n *ExprStmt) R
	Binary            func(v *Visitor[R], n *Binary) R
	Unary             func(v *Visitor[R], n *Unary) R
	Ident             func(v *Visitor[R], n *Ident) R
	Const             func(v *Visitor[R], n *Const) R
	Call              func(v *Visitor[R], n *Call) R
	Member            func(v *Visitor[R], n *Member) R
	Arrow             func(v *Visitor[R], n *Arrow) R
	Index             func(v *Visitor[R], n *Index) R
	MemberAssign      func(v *Visitor[R], n *MemberAssign) R
	ArrayUpdate       func(v *Visitor[R], n *ArrayUpdate) R
	ArrayUpdateAssign func(v *Visitor[R], n *ArrayUpdateAssign) R
	Quantified        func(v *Visitor[R], n *Quantified) R
	Length            func(v *Visitor[R], n *Length) R
	New               func(v *Visitor[R], n *New) R
	Paren             func(v *Visitor[R], n *Paren) R
	Assign            func(v *Visitor[R], n *Assign) R

	Combine func(acc, next R) R
}

// Visit dispatches n to its handler. A nil node yields the zero value.
func (v *Visitor[R]) Visit(n Node) R {
	switch n := n.(type) {
	case *Program:
		if v.Program != nil {
			return v.Program(v, n)
		}
	case *ClassDecl:
		if v.ClassDecl != nil {
			return v.ClassDecl(v, n)
		}
	case *FnDecl:
		if v.FnDecl != nil {
			return v.FnDecl(v, n)
		}
	case *VarDecl:
		if v.VarDecl != nil {
			return v.VarDecl(v, n)
		}
	case *Formal:
		if v.Formal != nil {
			return v.Formal(v, n)
		}
	case *Annotation:
		if v.Annotation != nil {
			return v.Annotation(v, n)
		}
	case *Ranking:
		if v.Ranking != nil {
			return v.Ranking(v, n)
		}
	case *Block:
		if v.Block != nil {
			return v.Block(v, n)
		}
	case *IfStmt:
		if v.IfStmt != nil {
			return v.IfStmt(v, n)
		}
	case *WhileStmt:
		if v.WhileStmt != nil {
			return v.WhileStmt(v, n)
		}
	case *ForStmt:
		if v.ForStmt != nil {
			return v.ForStmt(v, n)
		}
	case *ReturnStmt:
		if v.ReturnStmt != nil {
			return v.ReturnStmt(v, n)
		}
	case *BreakStmt:
		if v.BreakStmt != nil {
			return v.BreakStmt(v, n)
		}
	case *AssertStmt:
		if v.AssertStmt != nil {
			return v.AssertStmt(v, n)
		}
	case *ExprStmt:
		if v.ExprStmt != nil {
			return v.ExprStmt(v, n)
		}
	case *Binary:
		if v.Binary != nil {
			return v.Binary(v, n)
		}
	case *Unary:
		if v.Unary != nil {
			return v.Unary(v, n)
		}
	case *Ident:
		if v.Ident != nil {
			return v.Ident(v, n)
		}
	case *Const:
		if v.Const != nil {
			return v.Const(v, n)
		}
	case *Call:
		if v.Call != nil {
			return v.Call(v, n)
		}
	case *Member:
		if v.Member != nil {
			return v.Member(v, n)
		}
	case *Arrow:
		if v.Arrow != nil {
			return v.Arrow(v, n)
		}
	case *Index:
		if v.Index != nil {
			return v.Index(v, n)
		}
	case *MemberAssign:
		if v.MemberAssign != nil {
			return v.MemberAssign(v, n)
		}
	case *ArrayUpdate:
		if v.ArrayUpdate != nil {
			return v.ArrayUpdate(v, n)
		}
	case *ArrayUpdateAssign:
		if v.ArrayUpdateAssign != nil {
			return v.ArrayUpdateAssign(v, n)
		}
	case *Quantified:
		if v.Quantified != nil {
			return v.Quantified(v, n)
		}
	case *Length:
		if v.Length != nil {
			return v.Length(v, n)
		}
	case *New:
		if v.New != nil {
			return v.New(v, n)
		}
	case *Paren:
		if v.Paren != nil {
			return v.Paren(v, n)
		}
	case *Assign:
		if v.Assign != nil {
			return v.Assign(v, n)
		}
	case nil:
		var zero R
		return zero
	}
	return v.VisitChildren(n)
}

// VisitChildren visits the children of n in order and aggregates the results.
func (v *Visitor[R]) VisitChildren(n Node) R {
	var result R
	for _, child := range n.Children() {
		next := v.Visit(child)
		if v.Combine != nil {
			result = v.Combine(result, next)
		} else {
			result = next
		}
	}
	return result
}

// Walk is shorthand for v.Visit(n).
func Walk[R any](v *Visitor[R], n Node) R {
	return v.Visit(n)
}

// Inspect traverses the tree in depth-first order, calling f for each node.
// If f returns false the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, child := range n.Children() {
		Inspect(child, f)
	}
}
