package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/alecthomas/participle/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyPal/pifront/lib/ast"
	pilex "github.com/vyPal/pifront/lib/lexer"
	"github.com/vyPal/pifront/lib/parser"
)

const broken = `var a: int;
function broken() { x = ; }
function ok(): int { return 1; }
class C { var f: int }
var b: int = 2;
class D { function g() { if (x) { y = ; } } }
@pre n > 0
function last(n: int) {}
`

func names(prog *ast.Program) []string {
	var out []string
	for _, d := range prog.Decls {
		switch d := d.(type) {
		case *ast.VarDecl:
			out = append(out, d.Name)
		case *ast.FnDecl:
			out = append(out, d.Name)
		case *ast.ClassDecl:
			out = append(out, d.Name)
		}
	}
	return out
}

func TestResyncKeepsGoodDeclarations(t *testing.T) {
	res := New(Options{Resync: true}).ParseSource("broken.pi", broken)
	require.NotNil(t, res.Program)
	assert.False(t, res.OK())
	assert.Equal(t, []string{"a", "ok", "b", "last"}, names(res.Program))

	require.Len(t, res.Errors, 3)
	lines := make([]int, len(res.Errors))
	for i, err := range res.Errors {
		var se *parser.SyntaxError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, "broken.pi", se.Pos.Filename)
		lines[i] = se.Pos.Line
	}
	assert.Equal(t, []int{2, 4, 6}, lines)

	last := res.Program.Decls[3].(*ast.FnDecl)
	assert.Len(t, last.Requires, 1)
}

func TestResyncDropsAnnotationsOfBrokenFunction(t *testing.T) {
	src := "@pre x > 0\n@post y\nfunction f( {}\nfunction g() {}\n"
	res := New(Options{Resync: true}).ParseSource("", src)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, []string{"g"}, names(res.Program))
}

func TestWithoutResyncStopsAtFirstError(t *testing.T) {
	res := New(Options{}).ParseSource("broken.pi", broken)
	assert.Nil(t, res.Program)
	require.Len(t, res.Errors, 1)
	var se *parser.SyntaxError
	require.True(t, errors.As(res.Errors[0], &se))
	assert.Equal(t, 2, se.Pos.Line)
}

func TestLexicalError(t *testing.T) {
	for _, opts := range []Options{{}, {Resync: true}} {
		res := New(opts).ParseSource("bad.pi", "var s: string = \"open\n")
		assert.Nil(t, res.Program)
		require.Len(t, res.Errors, 1)
		var perr participle.Error
		assert.True(t, errors.As(res.Errors[0], &perr))
	}
}

func TestResync(t *testing.T) {
	tokens, err := pilex.Tokenize("", "function f() { var x: int; } var y: int;")
	require.NoError(t, err)
	// Rejected on the first "var", which is nested and so not a boundary.
	next := Resync(tokens, 0, 5)
	assert.Equal(t, "var", tokens[next].Value)
	assert.Equal(t, "y", tokens[next+1].Value)

	tokens, err = pilex.Tokenize("", "x y z")
	require.NoError(t, err)
	next = Resync(tokens, 0, 0)
	assert.True(t, tokens[next].EOF())
}

func writeFiles(t *testing.T, n int) []string {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for i := 0; i < n; i++ {
		path := filepath.Join(dir, "f"+strconv.Itoa(i)+".pi")
		src := "function f" + strconv.Itoa(i) + "() {}\n"
		if i%3 == 2 {
			src = "function broken( {}\n"
		}
		require.NoError(t, os.WriteFile(path, []byte(src), 0644))
		paths = append(paths, path)
	}
	return paths
}

func TestParseFilesKeepsOrder(t *testing.T) {
	paths := writeFiles(t, 10)
	results, err := New(Options{Parallelism: 3}).ParseFiles(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, len(paths))
	for i, res := range results {
		assert.Equal(t, paths[i], res.Path)
		if i%3 == 2 {
			assert.False(t, res.OK(), res.Path)
			continue
		}
		require.True(t, res.OK(), res.Path)
		assert.Equal(t, []string{"f" + strconv.Itoa(i)}, names(res.Program))
	}
}

func TestParseFilesMissingFile(t *testing.T) {
	paths := append(writeFiles(t, 2), filepath.Join(t.TempDir(), "missing.pi"))
	_, err := New(Options{Parallelism: 2}).ParseFiles(context.Background(), paths)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "missing.pi")
}

func TestParseFilesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(Options{}).ParseFiles(ctx, writeFiles(t, 4))
	assert.ErrorIs(t, err, context.Canceled)
}
