// Package printer renders pi syntax trees back to source text.
//
// The printer never inserts parentheses: a Paren node prints as parentheses
// and nothing else does. Trees produced by the parser therefore re-parse to
// the same structure.
package printer

import (
	"io"
	"strconv"
	"strings"

	"github.com/vyPal/pifront/lib/ast"
)

const indentUnit = "    "

// Print renders n. Declarations and statements end with a newline,
// expressions do not.
func Print(n ast.Node) string {
	p := &printer{}
	p.v = p.visitor()
	return p.v.Visit(n)
}

// Fprint writes the rendering of n to w.
func Fprint(w io.Writer, n ast.Node) error {
	_, err := io.WriteString(w, Print(n))
	return err
}

type printer struct {
	depth int
	v     *ast.Visitor[string]
}

func (p *printer) indent() string {
	return strings.Repeat(indentUnit, p.depth)
}

func (p *printer) list(exprs []ast.Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = p.v.Visit(e)
	}
	return strings.Join(parts, ", ")
}

// stmt renders a statement on its own line(s).
func (p *printer) stmt(s ast.Stmt) string {
	if b, ok := s.(*ast.Block); ok {
		return p.indent() + p.v.Visit(b) + "\n"
	}
	return p.v.Visit(s)
}

// annotations renders contract lines in front of the annotated construct.
func (p *printer) annotations(list []*ast.Annotation, dec *ast.Ranking) string {
	var sb strings.Builder
	for _, a := range list {
		if a != nil {
			sb.WriteString(p.indent() + p.v.Visit(a) + "\n")
		}
	}
	if dec != nil {
		sb.WriteString(p.indent() + p.v.Visit(dec) + "\n")
	}
	return sb.String()
}

func varSpec(v *ast.Visitor[string], n *ast.VarDecl) string {
	s := "var " + n.Name + ": " + n.Type.String()
	if n.Init != nil {
		s += " = " + v.Visit(n.Init)
	}
	return s
}

func (p *printer) visitor() *ast.Visitor[string] {
	return &ast.Visitor[string]{
		Program: func(v *ast.Visitor[string], n *ast.Program) string {
			parts := make([]string, len(n.Decls))
			for i, d := range n.Decls {
				parts[i] = v.Visit(d)
			}
			return strings.Join(parts, "\n")
		},
		ClassDecl: func(v *ast.Visitor[string], n *ast.ClassDecl) string {
			var sb strings.Builder
			sb.WriteString(p.indent() + "class " + n.Name + " {\n")
			p.depth++
			for i, m := range n.Members {
				if _, ok := m.(*ast.FnDecl); ok && i > 0 {
					sb.WriteString("\n")
				}
				sb.WriteString(v.Visit(m))
			}
			p.depth--
			sb.WriteString(p.indent() + "}\n")
			return sb.String()
		},
		FnDecl: func(v *ast.Visitor[string], n *ast.FnDecl) string {
			var sb strings.Builder
			sb.WriteString(p.annotations(append(append([]*ast.Annotation{}, n.Requires...), n.Ensures...), n.Decreases))
			formals := make([]string, len(n.Formals))
			for i, f := range n.Formals {
				formals[i] = v.Visit(f)
			}
			sb.WriteString(p.indent() + "function " + n.Name + "(" + strings.Join(formals, ", ") + ")")
			switch len(n.Results) {
			case 0:
			case 1:
				sb.WriteString(": " + n.Results[0].String())
			default:
				types := make([]string, len(n.Results))
				for i, t := range n.Results {
					types[i] = t.String()
				}
				sb.WriteString(": (" + strings.Join(types, ", ") + ")")
			}
			body := &ast.Block{}
			if n.Body != nil {
				body = n.Body
			}
			sb.WriteString(" " + v.Visit(body) + "\n")
			return sb.String()
		},
		VarDecl: func(v *ast.Visitor[string], n *ast.VarDecl) string {
			return p.indent() + varSpec(v, n) + ";\n"
		},
		Formal: func(_ *ast.Visitor[string], n *ast.Formal) string {
			return n.Name + ": " + n.Type.String()
		},
		Annotation: func(v *ast.Visitor[string], n *ast.Annotation) string {
			s := "@" + n.Tag.String() + " "
			if n.Label != "" {
				s += n.Label + ": "
			}
			return s + v.Visit(n.Pred)
		},
		Ranking: func(_ *ast.Visitor[string], n *ast.Ranking) string {
			return "@decreases " + p.list(n.Measures)
		},

		Block: func(_ *ast.Visitor[string], n *ast.Block) string {
			if len(n.Stmts) == 0 {
				return "{\n" + p.indent() + "}"
			}
			var sb strings.Builder
			sb.WriteString("{\n")
			p.depth++
			for _, s := range n.Stmts {
				sb.WriteString(p.stmt(s))
			}
			p.depth--
			sb.WriteString(p.indent() + "}")
			return sb.String()
		},
		IfStmt: func(v *ast.Visitor[string], n *ast.IfStmt) string {
			s := p.annotations([]*ast.Annotation{n.Assume}, nil)
			s += p.indent() + "if (" + v.Visit(n.Cond) + ") " + v.Visit(n.Then)
			if n.Else != nil {
				s += " else " + v.Visit(n.Else)
			}
			return s + "\n"
		},
		WhileStmt: func(v *ast.Visitor[string], n *ast.WhileStmt) string {
			s := p.annotations([]*ast.Annotation{n.Invariant}, n.Decreases)
			return s + p.indent() + "while (" + v.Visit(n.Cond) + ") " + v.Visit(n.Body) + "\n"
		},
		ForStmt: func(v *ast.Visitor[string], n *ast.ForStmt) string {
			s := p.annotations([]*ast.Annotation{n.Invariant}, n.Decreases)
			s += p.indent() + "for ("
			switch init := n.Init.(type) {
			case *ast.VarDecl:
				s += varSpec(v, init)
			case *ast.ExprStmt:
				s += v.Visit(init.X)
			}
			s += ";"
			if n.Cond != nil {
				s += " " + v.Visit(n.Cond)
			}
			s += ";"
			if n.Update != nil {
				s += " " + v.Visit(n.Update)
			}
			return s + ") " + v.Visit(n.Body) + "\n"
		},
		ReturnStmt: func(_ *ast.Visitor[string], n *ast.ReturnStmt) string {
			if len(n.Results) == 0 {
				return p.indent() + "return;\n"
			}
			return p.indent() + "return " + p.list(n.Results) + ";\n"
		},
		BreakStmt: func(*ast.Visitor[string], *ast.BreakStmt) string {
			return p.indent() + "break;\n"
		},
		AssertStmt: func(v *ast.Visitor[string], n *ast.AssertStmt) string {
			return p.indent() + "assert " + v.Visit(n.Pred) + ";\n"
		},
		ExprStmt: func(v *ast.Visitor[string], n *ast.ExprStmt) string {
			return p.indent() + v.Visit(n.X) + ";\n"
		},

		Binary: func(v *ast.Visitor[string], n *ast.Binary) string {
			return v.Visit(n.Left) + " " + n.Op.String() + " " + v.Visit(n.Right)
		},
		Unary: func(v *ast.Visitor[string], n *ast.Unary) string {
			return n.Op.String() + v.Visit(n.X)
		},
		Ident: func(_ *ast.Visitor[string], n *ast.Ident) string {
			return n.Name
		},
		Const: func(_ *ast.Visitor[string], n *ast.Const) string {
			if n.Type == ast.StringConst {
				return strconv.Quote(n.Value)
			}
			return n.Value
		},
		Call: func(v *ast.Visitor[string], n *ast.Call) string {
			return v.Visit(n.Fn) + "(" + p.list(n.Args) + ")"
		},
		Member: func(v *ast.Visitor[string], n *ast.Member) string {
			return v.Visit(n.X) + "." + n.Field
		},
		Arrow: func(v *ast.Visitor[string], n *ast.Arrow) string {
			return v.Visit(n.X) + "->" + n.Field
		},
		Index: func(v *ast.Visitor[string], n *ast.Index) string {
			return v.Visit(n.X) + "[" + v.Visit(n.Index) + "]"
		},
		MemberAssign: func(v *ast.Visitor[string], n *ast.MemberAssign) string {
			sep := "."
			if n.Arrow {
				sep = "->"
			}
			return v.Visit(n.X) + sep + n.Field + " = " + v.Visit(n.Value)
		},
		ArrayUpdate: func(v *ast.Visitor[string], n *ast.ArrayUpdate) string {
			return v.Visit(n.X) + "[" + v.Visit(n.Index) + " := " + v.Visit(n.Value) + "]"
		},
		ArrayUpdateAssign: func(v *ast.Visitor[string], n *ast.ArrayUpdateAssign) string {
			return v.Visit(n.X) + "[" + v.Visit(n.Index) + "] = " + v.Visit(n.Value)
		},
		Quantified: func(v *ast.Visitor[string], n *ast.Quantified) string {
			vars := make([]string, len(n.Vars))
			for i, f := range n.Vars {
				vars[i] = v.Visit(f)
			}
			return n.Quant.String() + " " + strings.Join(vars, ", ") + ". " + v.Visit(n.Body)
		},
		Length: func(v *ast.Visitor[string], n *ast.Length) string {
			return "#" + v.Visit(n.X)
		},
		New: func(v *ast.Visitor[string], n *ast.New) string {
			if n.Size != nil {
				return "new " + n.Type.String() + "[" + v.Visit(n.Size) + "]"
			}
			return "new " + n.Type.String() + "(" + p.list(n.Args) + ")"
		},
		Paren: func(v *ast.Visitor[string], n *ast.Paren) string {
			return "(" + v.Visit(n.X) + ")"
		},
		Assign: func(v *ast.Visitor[string], n *ast.Assign) string {
			return v.Visit(n.Target) + " = " + v.Visit(n.Value)
		},
	}
}
