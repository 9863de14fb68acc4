// Package parser turns a pi token stream into an ast.Program.
//
// Parsing is fail-fast: the first SyntaxError aborts the current top-level
// declaration and nothing built for it is returned. A Parser owns no state
// besides its token slice and cursor, so independent parses may run in
// parallel.
package parser

import (
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/vyPal/pifront/lib/ast"
	pilex "github.com/vyPal/pifront/lib/lexer"
)

type Parser struct {
	Tokens []lexer.Token
	Pos    int
}

func New(tokens []lexer.Token) *Parser {
	return &Parser{Tokens: tokens}
}

// ParseString tokenizes and parses a whole source file held in memory.
func ParseString(filename, src string) (*ast.Program, error) {
	tokens, err := pilex.Tokenize(filename, src)
	if err != nil {
		return nil, err
	}
	return New(tokens).ParseProgram()
}

// ParseProgram parses declarations up to the end of input.
func ParseProgram(tokens []lexer.Token) (*ast.Program, error) {
	return New(tokens).ParseProgram()
}

// ParseDecl parses one top-level declaration starting at tokens[pos] and
// returns the index of the first token after it.
func ParseDecl(tokens []lexer.Token, pos int) (ast.Decl, int, error) {
	p := &Parser{Tokens: tokens, Pos: pos}
	decl, err := p.ParseDecl()
	if err != nil {
		return nil, pos, err
	}
	return decl, p.Pos, nil
}

// ParseExpression parses one expression starting at tokens[pos] and returns
// the index of the first unconsumed token.
func ParseExpression(tokens []lexer.Token, pos int) (ast.Expr, int, error) {
	p := &Parser{Tokens: tokens, Pos: pos}
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, pos, err
	}
	return expr, p.Pos, nil
}

func (p *Parser) ParseProgram() (*ast.Program, error) {
	var prog *ast.Program
	if err := p.try(func() { prog = p.parseProgram() }); err != nil {
		return nil, err
	}
	return prog, nil
}

// ParseDecl parses the next top-level declaration. On failure the cursor is
// left where it was.
func (p *Parser) ParseDecl() (ast.Decl, error) {
	start := p.Pos
	var decl ast.Decl
	if err := p.try(func() { decl = p.parseDecl() }); err != nil {
		p.Pos = start
		return nil, err
	}
	return decl, nil
}

func (p *Parser) ParseExpression() (ast.Expr, error) {
	var expr ast.Expr
	if err := p.try(func() { expr = p.parseExpression() }); err != nil {
		return nil, err
	}
	return expr, nil
}

// try runs f and turns a SyntaxError raised by fail into an error return.
func (p *Parser) try(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			se, ok := r.(*SyntaxError)
			if !ok {
				panic(r)
			}
			err = se
		}
	}()
	f()
	return nil
}

func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{Pos: p.peek().Pos}
	for !p.peek().EOF() {
		prog.Decls = append(prog.Decls, p.parseDecl())
	}
	return prog
}

func (p *Parser) peekAt(n int) lexer.Token {
	if i := p.Pos + n; i < len(p.Tokens) {
		return p.Tokens[i]
	}
	if len(p.Tokens) == 0 {
		return lexer.EOFToken(lexer.Position{})
	}
	return lexer.EOFToken(p.Tokens[len(p.Tokens)-1].Pos)
}

func (p *Parser) peek() lexer.Token {
	return p.peekAt(0)
}

func (p *Parser) next() lexer.Token {
	tok := p.peek()
	if !tok.EOF() {
		p.Pos++
	}
	return tok
}

func (p *Parser) isPunct(value string) bool {
	tok := p.peek()
	return tok.Type == pilex.Punct && tok.Value == value
}

func (p *Parser) isKeyword(value string) bool {
	tok := p.peek()
	return tok.Type == pilex.Keyword && tok.Value == value
}

// accept consumes the current token if it is the punctuation or keyword value.
func (p *Parser) accept(value string) bool {
	if p.isPunct(value) || p.isKeyword(value) {
		p.Pos++
		return true
	}
	return false
}

func (p *Parser) expect(value string) lexer.Token {
	if p.isPunct(value) || p.isKeyword(value) {
		return p.next()
	}
	p.fail(value)
	panic("unreachable")
}

func (p *Parser) expectIdent() lexer.Token {
	if p.peek().Type == pilex.Ident {
		return p.next()
	}
	p.fail(expIdent)
	panic("unreachable")
}

// fail aborts the parse at the current token.
func (p *Parser) fail(expected ...string) {
	p.failAt(p.peek(), "", expected...)
}

func (p *Parser) failAt(tok lexer.Token, msg string, expected ...string) {
	panic(&SyntaxError{
		Pos:      tok.Pos,
		Token:    tok,
		Expected: expected,
		Msg:      msg,
	})
}
