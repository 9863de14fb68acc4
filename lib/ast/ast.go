// Package ast declares the types used to represent pi syntax trees.
//
// The node set is closed: every node reports its Kind, its source position
// and its structural children in field order. Nodes are built once by the
// parser and are not modified afterwards.
package ast

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Kind identifies the concrete type of a Node.
type Kind int

const (
	KindProgram Kind = iota
	KindClassDecl
	KindFnDecl
	KindVarDecl
	KindFormal
	KindAnnotation
	KindRanking

	KindBlock
	KindIfStmt
	KindWhileStmt
	KindForStmt
	KindReturnStmt
	KindBreakStmt
	KindAssertStmt
	KindExprStmt

	KindBinary
	KindUnary
	KindIdent
	KindConst
	KindCall
	KindMember
	KindArrow
	KindIndex
	KindMemberAssign
	KindArrayUpdate
	KindArrayUpdateAssign
	KindQuantified
	KindLength
	KindNew
	KindParen
	KindAssign
)

var kindNames = [...]string{
	KindProgram:           "Program",
	KindClassDecl:         "ClassDecl",
	KindFnDecl:            "FnDecl",
	KindVarDecl:           "VarDecl",
	KindFormal:            "Formal",
	KindAnnotation:        "Annotation",
	KindRanking:           "Ranking",
	KindBlock:             "Block",
	KindIfStmt:            "IfStmt",
	KindWhileStmt:         "WhileStmt",
	KindForStmt:           "ForStmt",
	KindReturnStmt:        "ReturnStmt",
	KindBreakStmt:         "BreakStmt",
	KindAssertStmt:        "AssertStmt",
	KindExprStmt:          "ExprStmt",
	KindBinary:            "Binary",
	KindUnary:             "Unary",
	KindIdent:             "Ident",
	KindConst:             "Const",
	KindCall:              "Call",
	KindMember:            "Member",
	KindArrow:             "Arrow",
	KindIndex:             "Index",
	KindMemberAssign:      "MemberAssign",
	KindArrayUpdate:       "ArrayUpdate",
	KindArrayUpdateAssign: "ArrayUpdateAssign",
	KindQuantified:        "Quantified",
	KindLength:            "Length",
	KindNew:               "New",
	KindParen:             "Paren",
	KindAssign:            "Assign",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Node is implemented by every syntax tree node.
type Node interface {
	Kind() Kind
	Position() lexer.Position
	// Children returns the non-nil child nodes in field order.
	Children() []Node
}

// Decl is a top-level or class member declaration.
type Decl interface {
	Node
	declNode()
}

// Stmt is a statement inside a function body.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression.
type Expr interface {
	Node
	exprNode()
}

// Type is a type reference such as int or C[][]. It is a value, not a node.
type Type struct {
	Name string
	Dims int
}

func (t Type) String() string {
	return t.Name + strings.Repeat("[]", t.Dims)
}

// Program is the root of a parsed file.
type Program struct {
	Pos   lexer.Position
	Decls []Decl
}

// ClassDecl declares a class with fields and methods.
type ClassDecl struct {
	Pos     lexer.Position
	Name    string
	Members []Decl
}

// FnDecl declares a function together with its contract.
type FnDecl struct {
	Pos       lexer.Position
	Name      string
	Formals   []*Formal
	Results   []Type
	Requires  []*Annotation
	Ensures   []*Annotation
	Decreases *Ranking
	Body      *Block
}

// VarDecl declares a global, a class field or a local variable. Init is nil
// when the declaration has no initializer.
type VarDecl struct {
	Pos  lexer.Position
	Name string
	Type Type
	Init Expr
}

// Formal is a function parameter or a quantifier bound variable.
type Formal struct {
	Pos  lexer.Position
	Name string
	Type Type
}

// AnnotationKind tells which contract an annotation expresses.
type AnnotationKind int

const (
	Pre AnnotationKind = iota
	Post
	Assume
	Invariant
)

var annotationNames = [...]string{
	Pre:       "pre",
	Post:      "post",
	Assume:    "assume",
	Invariant: "invariant",
}

func (k AnnotationKind) String() string { return annotationNames[k] }

// Annotation is a contract predicate owned by a function, branch or loop.
type Annotation struct {
	Pos   lexer.Position
	Tag   AnnotationKind
	Label string
	Pred  Expr
}

// Ranking is a termination measure: a tuple of expressions expected to
// decrease lexicographically.
type Ranking struct {
	Pos      lexer.Position
	Measures []Expr
}

func (n *Program) Kind() Kind    { return KindProgram }
func (n *ClassDecl) Kind() Kind  { return KindClassDecl }
func (n *FnDecl) Kind() Kind     { return KindFnDecl }
func (n *VarDecl) Kind() Kind    { return KindVarDecl }
func (n *Formal) Kind() Kind     { return KindFormal }
func (n *Annotation) Kind() Kind { return KindAnnotation }
func (n *Ranking) Kind() Kind    { return KindRanking }

func (n *Program) Position() lexer.Position    { return n.Pos }
func (n *ClassDecl) Position() lexer.Position  { return n.Pos }
func (n *FnDecl) Position() lexer.Position     { return n.Pos }
func (n *VarDecl) Position() lexer.Position    { return n.Pos }
func (n *Formal) Position() lexer.Position     { return n.Pos }
func (n *Annotation) Position() lexer.Position { return n.Pos }
func (n *Ranking) Position() lexer.Position    { return n.Pos }

func (n *Program) Children() []Node {
	out := make([]Node, 0, len(n.Decls))
	for _, d := range n.Decls {
		out = append(out, d)
	}
	return out
}

func (n *ClassDecl) Children() []Node {
	out := make([]Node, 0, len(n.Members))
	for _, d := range n.Members {
		out = append(out, d)
	}
	return out
}

func (n *FnDecl) Children() []Node {
	var out []Node
	for _, f := range n.Formals {
		out = append(out, f)
	}
	for _, a := range n.Requires {
		out = append(out, a)
	}
	for _, a := range n.Ensures {
		out = append(out, a)
	}
	if n.Decreases != nil {
		out = append(out, n.Decreases)
	}
	if n.Body != nil {
		out = append(out, n.Body)
	}
	return out
}

func (n *VarDecl) Children() []Node { return nodes(n.Init) }
func (n *Formal) Children() []Node  { return nil }

func (n *Annotation) Children() []Node { return nodes(n.Pred) }
func (n *Ranking) Children() []Node    { return exprs(n.Measures) }

func (*ClassDecl) declNode() {}
func (*FnDecl) declNode()    {}
func (*VarDecl) declNode()   {}

// nodes drops nil interface values. Pointer fields are checked by callers.
func nodes(in ...Node) []Node {
	var out []Node
	for _, n := range in {
		if n == nil {
			continue
		}
		out = append(out, n)
	}
	return out
}

func exprs(in []Expr) []Node {
	out := make([]Node, 0, len(in))
	for _, e := range in {
		out = append(out, e)
	}
	return out
}
