package ast

import "github.com/alecthomas/participle/v2/lexer"

type BinaryOp int

const (
	Mul BinaryOp = iota
	Div
	Mod
	Add
	Sub
	Eq
	Neq
	Lt
	Le
	Gt
	Ge
	And
	Or
)

var binaryOps = [...]string{
	Mul: "*",
	Div: "/",
	Mod: "%",
	Add: "+",
	Sub: "-",
	Eq:  "==",
	Neq: "!=",
	Lt:  "<",
	Le:  "<=",
	Gt:  ">",
	Ge:  ">=",
	And: "&&",
	Or:  "||",
}

func (op BinaryOp) String() string { return binaryOps[op] }

type UnaryOp int

const (
	Not UnaryOp = iota
	Neg
)

func (op UnaryOp) String() string {
	if op == Not {
		return "!"
	}
	return "-"
}

type ConstKind int

const (
	IntConst ConstKind = iota
	BoolConst
	StringConst
	NullConst
)

var constKinds = [...]string{
	IntConst:    "int",
	BoolConst:   "bool",
	StringConst: "string",
	NullConst:   "null",
}

func (k ConstKind) String() string { return constKinds[k] }

type Quantifier int

const (
	Forall Quantifier = iota
	Exists
)

func (q Quantifier) String() string {
	if q == Forall {
		return "forall"
	}
	return "exists"
}

// Binary covers every infix operator; Op tells them apart.
type Binary struct {
	Pos   lexer.Position
	Op    BinaryOp
	Left  Expr
	Right Expr
}

type Unary struct {
	Pos lexer.Position
	Op  UnaryOp
	X   Expr
}

type Ident struct {
	Pos  lexer.Position
	Name string
}

// Const is a literal. Value holds the source text for integers, the
// unquoted contents for strings and "true"/"false"/"null" otherwise.
type Const struct {
	Pos   lexer.Position
	Type  ConstKind
	Value string
}

type Call struct {
	Pos  lexer.Position
	Fn   Expr
	Args []Expr
}

// Member is X.Field.
type Member struct {
	Pos   lexer.Position
	X     Expr
	Field string
}

// Arrow is X->Field.
type Arrow struct {
	Pos   lexer.Position
	X     Expr
	Field string
}

// Index is X[Index].
type Index struct {
	Pos   lexer.Position
	X     Expr
	Index Expr
}

// MemberAssign is X.Field = Value (or X->Field = Value when Arrow is set).
// It denotes X with Field replaced, not a store.
type MemberAssign struct {
	Pos   lexer.Position
	X     Expr
	Field string
	Arrow bool
	Value Expr
}

// ArrayUpdate is the functional update X[Index := Value].
type ArrayUpdate struct {
	Pos   lexer.Position
	X     Expr
	Index Expr
	Value Expr
}

// ArrayUpdateAssign is X[Index] = Value. Like ArrayUpdate it denotes the
// updated array value.
type ArrayUpdateAssign struct {
	Pos   lexer.Position
	X     Expr
	Index Expr
	Value Expr
}

// Quantified binds Vars inside Body only.
type Quantified struct {
	Pos   lexer.Position
	Quant Quantifier
	Vars  []*Formal
	Body  Expr
}

// Length is #X.
type Length struct {
	Pos lexer.Position
	X   Expr
}

// New is new T(Args) for objects or new T[Size] for arrays; Size is nil for
// the former.
type New struct {
	Pos  lexer.Position
	Type Type
	Args []Expr
	Size Expr
}

type Paren struct {
	Pos lexer.Position
	X   Expr
}

type Assign struct {
	Pos    lexer.Position
	Target *Ident
	Value  Expr
}

func (n *Binary) Kind() Kind            { return KindBinary }
func (n *Unary) Kind() Kind             { return KindUnary }
func (n *Ident) Kind() Kind             { return KindIdent }
func (n *Const) Kind() Kind             { return KindConst }
func (n *Call) Kind() Kind              { return KindCall }
func (n *Member) Kind() Kind            { return KindMember }
func (n *Arrow) Kind() Kind             { return KindArrow }
func (n *Index) Kind() Kind             { return KindIndex }
func (n *MemberAssign) Kind() Kind      { return KindMemberAssign }
func (n *ArrayUpdate) Kind() Kind       { return KindArrayUpdate }
func (n *ArrayUpdateAssign) Kind() Kind { return KindArrayUpdateAssign }
func (n *Quantified) Kind() Kind        { return KindQuantified }
func (n *Length) Kind() Kind            { return KindLength }
func (n *New) Kind() Kind               { return KindNew }
func (n *Paren) Kind() Kind             { return KindParen }
func (n *Assign) Kind() Kind            { return KindAssign }

func (n *Binary) Position() lexer.Position            { return n.Pos }
func (n *Unary) Position() lexer.Position             { return n.Pos }
func (n *Ident) Position() lexer.Position             { return n.Pos }
func (n *Const) Position() lexer.Position             { return n.Pos }
func (n *Call) Position() lexer.Position              { return n.Pos }
func (n *Member) Position() lexer.Position            { return n.Pos }
func (n *Arrow) Position() lexer.Position             { return n.Pos }
func (n *Index) Position() lexer.Position             { return n.Pos }
func (n *MemberAssign) Position() lexer.Position      { return n.Pos }
func (n *ArrayUpdate) Position() lexer.Position       { return n.Pos }
func (n *ArrayUpdateAssign) Position() lexer.Position { return n.Pos }
func (n *Quantified) Position() lexer.Position        { return n.Pos }
func (n *Length) Position() lexer.Position            { return n.Pos }
func (n *New) Position() lexer.Position               { return n.Pos }
func (n *Paren) Position() lexer.Position             { return n.Pos }
func (n *Assign) Position() lexer.Position            { return n.Pos }

func (n *Binary) Children() []Node { return nodes(n.Left, n.Right) }
func (n *Unary) Children() []Node  { return nodes(n.X) }
func (n *Ident) Children() []Node  { return nil }
func (n *Const) Children() []Node  { return nil }

func (n *Call) Children() []Node {
	return append(nodes(n.Fn), exprs(n.Args)...)
}

func (n *Member) Children() []Node            { return nodes(n.X) }
func (n *Arrow) Children() []Node             { return nodes(n.X) }
func (n *Index) Children() []Node             { return nodes(n.X, n.Index) }
func (n *MemberAssign) Children() []Node      { return nodes(n.X, n.Value) }
func (n *ArrayUpdate) Children() []Node       { return nodes(n.X, n.Index, n.Value) }
func (n *ArrayUpdateAssign) Children() []Node { return nodes(n.X, n.Index, n.Value) }

func (n *Quantified) Children() []Node {
	out := make([]Node, 0, len(n.Vars)+1)
	for _, v := range n.Vars {
		out = append(out, v)
	}
	return append(out, nodes(n.Body)...)
}

func (n *Length) Children() []Node { return nodes(n.X) }

func (n *New) Children() []Node {
	return append(exprs(n.Args), nodes(n.Size)...)
}

func (n *Paren) Children() []Node { return nodes(n.X) }

func (n *Assign) Children() []Node {
	var out []Node
	if n.Target != nil {
		out = append(out, n.Target)
	}
	return append(out, nodes(n.Value)...)
}

func (*Binary) exprNode()            {}
func (*Unary) exprNode()             {}
func (*Ident) exprNode()             {}
func (*Const) exprNode()             {}
func (*Call) exprNode()              {}
func (*Member) exprNode()            {}
func (*Arrow) exprNode()             {}
func (*Index) exprNode()             {}
func (*MemberAssign) exprNode()      {}
func (*ArrayUpdate) exprNode()       {}
func (*ArrayUpdateAssign) exprNode() {}
func (*Quantified) exprNode()        {}
func (*Length) exprNode()            {}
func (*New) exprNode()               {}
func (*Paren) exprNode()             {}
func (*Assign) exprNode()            {}
