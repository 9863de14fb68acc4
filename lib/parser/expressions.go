package parser

import (
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/vyPal/pifront/lib/ast"
	pilex "github.com/vyPal/pifront/lib/lexer"
)

// binaryLevels lists the infix operators from lowest to highest precedence.
// Every level is left-associative.
var binaryLevels = []map[string]ast.BinaryOp{
	{"||": ast.Or},
	{"&&": ast.And},
	{"==": ast.Eq, "!=": ast.Neq},
	{"<": ast.Lt, "<=": ast.Le, ">": ast.Gt, ">=": ast.Ge},
	{"+": ast.Add, "-": ast.Sub},
	{"*": ast.Mul, "/": ast.Div, "%": ast.Mod},
}

// exprStart is what may begin an expression.
var exprStart = []string{
	expIdent, expInteger, expString, "true", "false", "null",
	"(", "new", "forall", "exists", "#", "!", "-",
}

func (p *Parser) startsExpression() bool {
	tok := p.peek()
	switch tok.Type {
	case pilex.Ident, pilex.Int, pilex.String:
		return true
	case pilex.Keyword:
		switch tok.Value {
		case "true", "false", "null", "new", "forall", "exists":
			return true
		}
	case pilex.Punct:
		switch tok.Value {
		case "(", "#", "!", "-":
			return true
		}
	}
	return false
}

func (p *Parser) parseExpression() ast.Expr {
	return p.parseAssign()
}

// parseAssign handles the right-associative assignment family. The left
// side decides the node: identifiers assign, member and arrow accesses
// build a MemberAssign, array indexing builds an ArrayUpdateAssign.
func (p *Parser) parseAssign() ast.Expr {
	left := p.parseBinary(0)
	if !p.isPunct("=") {
		return left
	}
	eq := p.peek()
	switch left.(type) {
	case *ast.Ident, *ast.Member, *ast.Arrow, *ast.Index:
	default:
		p.failAt(eq, "cannot assign to "+describeExpr(left), expIdent, expMember, expElement)
	}
	p.Pos++ // "="
	value := p.parseAssign()

	switch l := left.(type) {
	case *ast.Ident:
		return &ast.Assign{Pos: l.Pos, Target: l, Value: value}
	case *ast.Member:
		return &ast.MemberAssign{Pos: l.Pos, X: l.X, Field: l.Field, Value: value}
	case *ast.Arrow:
		return &ast.MemberAssign{Pos: l.Pos, X: l.X, Field: l.Field, Arrow: true, Value: value}
	default:
		ix := l.(*ast.Index)
		return &ast.ArrayUpdateAssign{Pos: ix.Pos, X: ix.X, Index: ix.Index, Value: value}
	}
}

func describeExpr(e ast.Expr) string {
	switch e.(type) {
	case *ast.Paren:
		return "parenthesized expression"
	case *ast.Const:
		return "constant"
	case *ast.Call:
		return "call result"
	}
	return "expression"
}

func (p *Parser) parseBinary(level int) ast.Expr {
	if level == len(binaryLevels) {
		return p.parseUnary()
	}
	left := p.parseBinary(level + 1)
	for {
		tok := p.peek()
		op, ok := binaryLevels[level][tok.Value]
		if !ok || tok.Type != pilex.Punct {
			return left
		}
		p.Pos++ // op
		right := p.parseBinary(level + 1)
		left = &ast.Binary{Pos: left.Position(), Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() ast.Expr {
	tok := p.peek()
	if tok.Type == pilex.Punct && (tok.Value == "!" || tok.Value == "-") {
		p.Pos++ // op
		op := ast.Not
		if tok.Value == "-" {
			op = ast.Neg
		}
		return &ast.Unary{Pos: tok.Pos, Op: op, X: p.parseUnary()}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expr {
	x := p.parsePrimary()
	for {
		pos := x.Position()
		switch {
		case p.isPunct("("):
			x = &ast.Call{Pos: pos, Fn: x, Args: p.parseArgs()}
		case p.isPunct("."):
			p.Pos++ // "."
			name := p.expectIdent()
			x = &ast.Member{Pos: pos, X: x, Field: name.Value}
		case p.isPunct("->"):
			p.Pos++ // "->"
			name := p.expectIdent()
			x = &ast.Arrow{Pos: pos, X: x, Field: name.Value}
		case p.isPunct("["):
			p.Pos++ // "["
			index := p.parseExpression()
			if p.accept(":=") {
				value := p.parseExpression()
				p.expect("]")
				x = &ast.ArrayUpdate{Pos: pos, X: x, Index: index, Value: value}
				continue
			}
			if !p.accept("]") {
				p.fail("]", ":=")
			}
			x = &ast.Index{Pos: pos, X: x, Index: index}
		default:
			return x
		}
	}
}

// parseArgs parses a parenthesized, comma separated argument list.
func (p *Parser) parseArgs() []ast.Expr {
	p.expect("(")
	if p.accept(")") {
		return nil
	}
	args := p.parseExprList()
	if !p.accept(")") {
		p.fail(",", ")")
	}
	return args
}

func (p *Parser) parseExprList() []ast.Expr {
	list := []ast.Expr{p.parseExpression()}
	for p.accept(",") {
		list = append(list, p.parseExpression())
	}
	return list
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.peek()
	switch tok.Type {
	case pilex.Ident:
		p.Pos++ // name
		return &ast.Ident{Pos: tok.Pos, Name: tok.Value}
	case pilex.Int:
		p.Pos++ // value
		return &ast.Const{Pos: tok.Pos, Type: ast.IntConst, Value: tok.Value}
	case pilex.String:
		p.Pos++ // value
		return &ast.Const{Pos: tok.Pos, Type: ast.StringConst, Value: tok.Value}
	case pilex.Keyword:
		switch tok.Value {
		case "true", "false":
			p.Pos++ // value
			return &ast.Const{Pos: tok.Pos, Type: ast.BoolConst, Value: tok.Value}
		case "null":
			p.Pos++ // value
			return &ast.Const{Pos: tok.Pos, Type: ast.NullConst, Value: tok.Value}
		case "new":
			return p.parseNew()
		case "forall", "exists":
			return p.parseQuantified()
		}
	case pilex.Punct:
		switch tok.Value {
		case "(":
			p.Pos++ // "("
			x := p.parseExpression()
			p.expect(")")
			return &ast.Paren{Pos: tok.Pos, X: x}
		case "#":
			p.Pos++ // "#"
			return &ast.Length{Pos: tok.Pos, X: p.parsePostfix()}
		}
	}
	p.failAt(tok, "", exprStart...)
	panic("unreachable")
}

// parseNew parses new T(args) and new T[size].
func (p *Parser) parseNew() ast.Expr {
	tok := p.expect("new")
	name := p.expectIdent()
	n := &ast.New{Pos: tok.Pos, Type: ast.Type{Name: name.Value}}
	switch {
	case p.isPunct("("):
		n.Args = p.parseArgs()
	case p.accept("["):
		n.Size = p.parseExpression()
		p.expect("]")
	default:
		p.fail("(", "[")
	}
	return n
}

// parseQuantified parses forall/exists x: T, y: T . body. The body extends
// as far right as possible and is the only scope of the bound variables.
func (p *Parser) parseQuantified() ast.Expr {
	tok := p.next()
	q := &ast.Quantified{Pos: tok.Pos, Quant: ast.Forall}
	if tok.Value == "exists" {
		q.Quant = ast.Exists
	}
	q.Vars = append(q.Vars, p.parseFormal())
	for p.accept(",") {
		q.Vars = append(q.Vars, p.parseFormal())
	}
	if !p.accept(".") {
		p.fail(",", ".")
	}
	q.Body = p.parseExpression()
	return q
}

// parseFormal parses name: type.
func (p *Parser) parseFormal() *ast.Formal {
	name := p.expectIdent()
	p.expect(":")
	return &ast.Formal{Pos: name.Pos, Name: name.Value, Type: p.parseType()}
}

// parseType parses a type name followed by any number of [] pairs.
func (p *Parser) parseType() ast.Type {
	tok := p.peek()
	if tok.Type != pilex.Ident {
		p.fail(expType)
	}
	p.Pos++ // name
	t := ast.Type{Name: tok.Value}
	for p.isPunct("[") && isPunctToken(p.peekAt(1), "]") {
		p.Pos += 2 // "[" "]"
		t.Dims++
	}
	return t
}

func isPunctToken(tok lexer.Token, value string) bool {
	return tok.Type == pilex.Punct && tok.Value == value
}
