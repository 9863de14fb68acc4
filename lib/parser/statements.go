package parser

import (
	"github.com/vyPal/pifront/lib/ast"
)

var (
	declStart   = []string{"class", "function", "var", "@"}
	memberStart = []string{"var", "function", "@", "}"}
	stmtStart   = []string{"{", "var", "if", "while", "for", "return", "break", "assert", "@", expExpression}
)

func (p *Parser) parseDecl() ast.Decl {
	switch {
	case p.isKeyword("class"):
		return p.parseClass()
	case p.isKeyword("var"):
		return p.parseVarDecl()
	case p.isKeyword("function"), p.isPunct("@"):
		return p.parseFunctionDecl()
	}
	p.fail(declStart...)
	panic("unreachable")
}

func (p *Parser) parseClass() *ast.ClassDecl {
	tok := p.expect("class")
	name := p.expectIdent()
	class := &ast.ClassDecl{Pos: tok.Pos, Name: name.Value}
	p.expect("{")
	for !p.accept("}") {
		switch {
		case p.isKeyword("var"):
			class.Members = append(class.Members, p.parseVarDecl())
		case p.isKeyword("function"), p.isPunct("@"):
			class.Members = append(class.Members, p.parseFunctionDecl())
		default:
			p.fail(memberStart...)
		}
	}
	return class
}

// parseFunctionDecl parses the optional contract annotations and the
// function they belong to.
func (p *Parser) parseFunctionDecl() *ast.FnDecl {
	set := p.parseAnnotations()
	if !p.isKeyword("function") {
		p.fail("function", "@")
	}
	set.restrict(p, "a function", true, ast.Pre, ast.Post)

	fn := p.parseFunction()
	fn.Requires = set.all(ast.Pre)
	fn.Ensures = set.all(ast.Post)
	fn.Decreases = set.decreases
	return fn
}

func (p *Parser) parseFunction() *ast.FnDecl {
	tok := p.expect("function")
	name := p.expectIdent()
	fn := &ast.FnDecl{Pos: tok.Pos, Name: name.Value}

	p.expect("(")
	if !p.accept(")") {
		fn.Formals = append(fn.Formals, p.parseFormal())
		for p.accept(",") {
			fn.Formals = append(fn.Formals, p.parseFormal())
		}
		if !p.accept(")") {
			p.fail(",", ")")
		}
	}

	if p.accept(":") {
		if p.accept("(") {
			fn.Results = append(fn.Results, p.parseType())
			for p.accept(",") {
				fn.Results = append(fn.Results, p.parseType())
			}
			if !p.accept(")") {
				p.fail(",", ")")
			}
		} else {
			fn.Results = append(fn.Results, p.parseType())
		}
	}

	fn.Body = p.parseBlock()
	return fn
}

// parseVarDecl parses var name: type [= init];
func (p *Parser) parseVarDecl() *ast.VarDecl {
	decl := p.parseVarSpec()
	p.expect(";")
	return decl
}

func (p *Parser) parseVarSpec() *ast.VarDecl {
	tok := p.expect("var")
	name := p.expectIdent()
	p.expect(":")
	decl := &ast.VarDecl{Pos: tok.Pos, Name: name.Value, Type: p.parseType()}
	if p.accept("=") {
		decl.Init = p.parseExpression()
	}
	return decl
}

func (p *Parser) parseBlock() *ast.Block {
	tok := p.expect("{")
	block := &ast.Block{Pos: tok.Pos}
	for !p.accept("}") {
		if !p.startsStatement() {
			p.fail(append([]string{"}"}, stmtStart...)...)
		}
		block.Stmts = append(block.Stmts, p.parseStatement())
	}
	return block
}

func (p *Parser) startsStatement() bool {
	switch {
	case p.isPunct("{"), p.isPunct("@"):
		return true
	case p.isKeyword("var"), p.isKeyword("if"), p.isKeyword("while"), p.isKeyword("for"),
		p.isKeyword("return"), p.isKeyword("break"), p.isKeyword("assert"):
		return true
	}
	return p.startsExpression()
}

func (p *Parser) parseStatement() ast.Stmt {
	tok := p.peek()
	switch {
	case p.isPunct("{"):
		return p.parseBlock()
	case p.isPunct("@"):
		return p.parseAnnotatedStatement()
	case p.isKeyword("var"):
		return p.parseVarDecl()
	case p.isKeyword("if"):
		return p.parseIf(nil)
	case p.isKeyword("while"):
		return p.parseWhile(&annotationSet{})
	case p.isKeyword("for"):
		return p.parseFor(&annotationSet{})
	case p.isKeyword("return"):
		p.Pos++ // "return"
		ret := &ast.ReturnStmt{Pos: tok.Pos}
		if !p.accept(";") {
			ret.Results = p.parseExprList()
			if !p.accept(";") {
				p.fail(",", ";")
			}
		}
		return ret
	case p.isKeyword("break"):
		p.Pos++ // "break"
		p.expect(";")
		return &ast.BreakStmt{Pos: tok.Pos}
	case p.isKeyword("assert"):
		p.Pos++ // "assert"
		pred := p.parseExpression()
		p.expect(";")
		return &ast.AssertStmt{Pos: tok.Pos, Pred: pred}
	}
	if !p.startsExpression() {
		p.fail(stmtStart...)
	}
	x := p.parseExpression()
	p.expect(";")
	return &ast.ExprStmt{Pos: x.Position(), X: x}
}

// parseAnnotatedStatement attaches a branch-entry assumption to an if, or an
// invariant and termination measure to a loop.
func (p *Parser) parseAnnotatedStatement() ast.Stmt {
	set := p.parseAnnotations()
	switch {
	case p.isKeyword("if"):
		set.restrict(p, "an if statement", false, ast.Assume)
		return p.parseIf(set.first(ast.Assume))
	case p.isKeyword("while"):
		set.restrict(p, "a while loop", true, ast.Invariant)
		return p.parseWhile(set)
	case p.isKeyword("for"):
		set.restrict(p, "a for loop", true, ast.Invariant)
		return p.parseFor(set)
	}
	p.fail("if", "while", "for", "@")
	panic("unreachable")
}

func (p *Parser) parseCond() ast.Expr {
	p.expect("(")
	cond := p.parseExpression()
	p.expect(")")
	return cond
}

func (p *Parser) parseIf(assume *ast.Annotation) *ast.IfStmt {
	tok := p.expect("if")
	stmt := &ast.IfStmt{Pos: tok.Pos, Assume: assume}
	stmt.Cond = p.parseCond()
	stmt.Then = p.parseBlock()
	if !p.accept("else") {
		return stmt
	}
	switch {
	case p.isKeyword("if"):
		nested := p.parseIf(nil)
		stmt.Else = &ast.Block{Pos: nested.Pos, Stmts: []ast.Stmt{nested}}
	case p.isPunct("{"):
		stmt.Else = p.parseBlock()
	default:
		p.fail("{", "if")
	}
	return stmt
}

func (p *Parser) parseWhile(set *annotationSet) *ast.WhileStmt {
	tok := p.expect("while")
	stmt := &ast.WhileStmt{
		Pos:       tok.Pos,
		Invariant: set.first(ast.Invariant),
		Decreases: set.decreases,
	}
	stmt.Cond = p.parseCond()
	stmt.Body = p.parseBlock()
	return stmt
}

func (p *Parser) parseFor(set *annotationSet) *ast.ForStmt {
	tok := p.expect("for")
	stmt := &ast.ForStmt{
		Pos:       tok.Pos,
		Invariant: set.first(ast.Invariant),
		Decreases: set.decreases,
	}
	p.expect("(")
	switch {
	case p.isKeyword("var"):
		stmt.Init = p.parseVarSpec()
	case !p.isPunct(";"):
		x := p.parseExpression()
		stmt.Init = &ast.ExprStmt{Pos: x.Position(), X: x}
	}
	p.expect(";")
	if !p.isPunct(";") {
		stmt.Cond = p.parseExpression()
	}
	p.expect(";")
	if !p.isPunct(")") {
		stmt.Update = p.parseExpression()
	}
	p.expect(")")
	stmt.Body = p.parseBlock()
	return stmt
}
