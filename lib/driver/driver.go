// Package driver feeds pi source files through the lexer and parser and
// collects the diagnostics for each file.
package driver

import (
	"context"
	"os"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/vyPal/pifront/lib/ast"
	pilex "github.com/vyPal/pifront/lib/lexer"
	"github.com/vyPal/pifront/lib/parser"
)

type Options struct {
	// Resync skips a broken declaration and keeps parsing the rest of the
	// file instead of stopping at the first syntax error.
	Resync bool
	// Parallelism bounds ParseFiles. Values below one mean one.
	Parallelism int
}

// Result is the outcome of parsing one file. Program is nil only when
// nothing could be parsed: a lexical error, or a syntax error without
// Resync. Errors holds *parser.SyntaxError and participle.Error values.
type Result struct {
	Path    string
	Source  string
	Program *ast.Program
	Errors  []error
}

func (r *Result) OK() bool { return len(r.Errors) == 0 }

type Driver struct {
	Options
	log commonlog.Logger
}

func New(opts Options) *Driver {
	return &Driver{
		Options: opts,
		log:     commonlog.GetLogger("pifront.driver"),
	}
}

// ParseFile reads and parses path. The error is only set when the file
// cannot be read; syntax problems land in Result.Errors.
func (d *Driver) ParseFile(path string) (*Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return d.ParseSource(path, string(src)), nil
}

// ParseSource parses src as if it had been read from path.
func (d *Driver) ParseSource(path, src string) *Result {
	res := &Result{Path: path, Source: src}

	tokens, err := pilex.Tokenize(path, src)
	if err != nil {
		d.log.Debugf("%s: lexing failed: %s", path, err)
		res.Errors = append(res.Errors, err)
		return res
	}
	d.log.Debugf("%s: %d tokens", path, len(tokens))

	if !d.Resync {
		prog, err := parser.ParseProgram(tokens)
		if err != nil {
			res.Errors = append(res.Errors, err)
			return res
		}
		res.Program = prog
		d.log.Infof("%s: parsed %d declarations", path, len(prog.Decls))
		return res
	}

	prog := &ast.Program{}
	if len(tokens) > 0 {
		prog.Pos = tokens[0].Pos
	}
	pos := 0
	for pos < len(tokens) && !tokens[pos].EOF() {
		decl, next, err := parser.ParseDecl(tokens, pos)
		if err != nil {
			res.Errors = append(res.Errors, err)
			next = Resync(tokens, pos, tokenIndex(tokens, pos, err))
			d.log.Debugf("%s: resuming at token %d after %s", path, next, err)
		} else {
			prog.Decls = append(prog.Decls, decl)
		}
		pos = next
	}
	res.Program = prog
	d.log.Infof("%s: parsed %d declarations, %d errors", path, len(prog.Decls), len(res.Errors))
	return res
}

// ParseFiles parses every path with at most Parallelism files in flight.
// Results keep the order of paths. The first read error, or ctx being
// cancelled, stops the remaining work.
func (d *Driver) ParseFiles(ctx context.Context, paths []string) ([]*Result, error) {
	results := make([]*Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(d.Parallelism, 1))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := d.ParseFile(path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Resync returns the index of the first token at or after failed where a
// new top-level declaration may begin, with failed being the index of the
// token a declaration starting at start was rejected on. class, function,
// @pre and @post start one at any nesting depth; var and @decreases only
// outside the braces opened since start. The EOF index is returned when
// nothing is found.
func Resync(tokens []lexer.Token, start, failed int) int {
	depth := 0
	for i := start + 1; i < len(tokens); i++ {
		tok := tokens[i]
		switch {
		case tok.EOF():
			return i
		case isPunct(tok, "{"):
			depth++
		case isPunct(tok, "}"):
			if depth > 0 {
				depth--
			}
		case i < failed:
		case tok.Type == pilex.Keyword && (tok.Value == "class" || tok.Value == "function"):
			return i
		case tok.Type == pilex.Keyword && tok.Value == "var":
			if depth == 0 {
				return i
			}
		case isPunct(tok, "@") && i+1 < len(tokens):
			switch tokens[i+1].Value {
			case "pre", "post":
				return i
			case "decreases":
				if depth == 0 {
					return i
				}
			}
		}
	}
	return len(tokens)
}

// tokenIndex finds the token err was reported on, searching from start.
func tokenIndex(tokens []lexer.Token, start int, err error) int {
	var se *parser.SyntaxError
	if !errors.As(err, &se) {
		return start + 1
	}
	for i := start; i < len(tokens); i++ {
		if tokens[i].Pos == se.Token.Pos {
			return i
		}
	}
	return len(tokens)
}

func isPunct(tok lexer.Token, value string) bool {
	return tok.Type == pilex.Punct && tok.Value == value
}
