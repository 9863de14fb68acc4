package ast

import "github.com/alecthomas/participle/v2/lexer"

// Block is the only scoping unit: a declaration is visible to the rest of its
// block and to nested blocks.
type Block struct {
	Pos   lexer.Position
	Stmts []Stmt
}

// IfStmt is a conditional. Assume is the optional branch-entry annotation; it
// is kept apart from Cond and carries no evaluation semantics here. Else is
// nil when there is no else branch.
type IfStmt struct {
	Pos    lexer.Position
	Assume *Annotation
	Cond   Expr
	Then   *Block
	Else   *Block
}

type WhileStmt struct {
	Pos       lexer.Position
	Invariant *Annotation
	Decreases *Ranking
	Cond      Expr
	Body      *Block
}

// ForStmt is for (Init; Cond; Update) Body. Init is a *VarDecl, an *ExprStmt
// or nil; Cond and Update may be nil.
type ForStmt struct {
	Pos       lexer.Position
	Invariant *Annotation
	Decreases *Ranking
	Init      Stmt
	Cond      Expr
	Update    Expr
	Body      *Block
}

// ReturnStmt may carry several results for functions with multiple outputs.
type ReturnStmt struct {
	Pos     lexer.Position
	Results []Expr
}

type BreakStmt struct {
	Pos lexer.Position
}

type AssertStmt struct {
	Pos  lexer.Position
	Pred Expr
}

type ExprStmt struct {
	Pos lexer.Position
	X   Expr
}

func (n *Block) Kind() Kind      { return KindBlock }
func (n *IfStmt) Kind() Kind     { return KindIfStmt }
func (n *WhileStmt) Kind() Kind  { return KindWhileStmt }
func (n *ForStmt) Kind() Kind    { return KindForStmt }
func (n *ReturnStmt) Kind() Kind { return KindReturnStmt }
func (n *BreakStmt) Kind() Kind  { return KindBreakStmt }
func (n *AssertStmt) Kind() Kind { return KindAssertStmt }
func (n *ExprStmt) Kind() Kind   { return KindExprStmt }

func (n *Block) Position() lexer.Position      { return n.Pos }
func (n *IfStmt) Position() lexer.Position     { return n.Pos }
func (n *WhileStmt) Position() lexer.Position  { return n.Pos }
func (n *ForStmt) Position() lexer.Position    { return n.Pos }
func (n *ReturnStmt) Position() lexer.Position { return n.Pos }
func (n *BreakStmt) Position() lexer.Position  { return n.Pos }
func (n *AssertStmt) Position() lexer.Position { return n.Pos }
func (n *ExprStmt) Position() lexer.Position   { return n.Pos }

func (n *Block) Children() []Node {
	out := make([]Node, 0, len(n.Stmts))
	for _, s := range n.Stmts {
		out = append(out, s)
	}
	return out
}

func (n *IfStmt) Children() []Node {
	var out []Node
	if n.Assume != nil {
		out = append(out, n.Assume)
	}
	out = append(out, nodes(n.Cond)...)
	if n.Then != nil {
		out = append(out, n.Then)
	}
	if n.Else != nil {
		out = append(out, n.Else)
	}
	return out
}

func (n *WhileStmt) Children() []Node {
	out := loopAnnotations(n.Invariant, n.Decreases)
	out = append(out, nodes(n.Cond)...)
	if n.Body != nil {
		out = append(out, n.Body)
	}
	return out
}

func (n *ForStmt) Children() []Node {
	out := loopAnnotations(n.Invariant, n.Decreases)
	out = append(out, nodes(n.Init, n.Cond, n.Update)...)
	if n.Body != nil {
		out = append(out, n.Body)
	}
	return out
}

func loopAnnotations(inv *Annotation, dec *Ranking) []Node {
	var out []Node
	if inv != nil {
		out = append(out, inv)
	}
	if dec != nil {
		out = append(out, dec)
	}
	return out
}

func (n *ReturnStmt) Children() []Node { return exprs(n.Results) }
func (n *BreakStmt) Children() []Node  { return nil }
func (n *AssertStmt) Children() []Node { return nodes(n.Pred) }
func (n *ExprStmt) Children() []Node   { return nodes(n.X) }

func (*Block) stmtNode()      {}
func (*VarDecl) stmtNode()    {}
func (*IfStmt) stmtNode()     {}
func (*WhileStmt) stmtNode()  {}
func (*ForStmt) stmtNode()    {}
func (*ReturnStmt) stmtNode() {}
func (*BreakStmt) stmtNode()  {}
func (*AssertStmt) stmtNode() {}
func (*ExprStmt) stmtNode()   {}
