package pilex

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Token types produced by the pi lexer. Ident, Int and String reuse the
// text/scanner values so positions and symbols line up with participle.
const (
	EOF     = lexer.EOF
	Ident   = lexer.TokenType(scanner.Ident)
	Int     = lexer.TokenType(scanner.Int)
	String  = lexer.TokenType(scanner.String)
	Keyword lexer.TokenType = -(iota + 100)
	Punct
)

var keywords = map[string]bool{
	"class":    true,
	"function": true,
	"var":      true,
	"if":       true,
	"else":     true,
	"while":    true,
	"for":      true,
	"return":   true,
	"break":    true,
	"assert":   true,
	"forall":   true,
	"exists":   true,
	"new":      true,
	"true":     true,
	"false":    true,
	"null":     true,
}

// IsKeyword reports whether s is reserved.
func IsKeyword(s string) bool {
	return keywords[s]
}

// compound lists the two-rune operators; the scanner only yields single runes.
var compound = map[string]bool{
	"==": true,
	"!=": true,
	"<=": true,
	">=": true,
	"&&": true,
	"||": true,
	"->": true,
	":=": true,
}

// TextScannerLexer is a lexer for pi source built on the text/scanner module.
var (
	TextScannerLexer lexer.Definition = &textScannerLexerDefinition{}

	// DefaultDefinition defines properties for the default lexer.
	DefaultDefinition = TextScannerLexer
)

// NewTextScannerLexer constructs a Definition that uses an underlying scanner.Scanner
//
// "configure" will be called after the scanner.Scanner.Init(r) is called.
func NewTextScannerLexer(configure func(*scanner.Scanner)) lexer.Definition {
	return &textScannerLexerDefinition{configure: configure}
}

type textScannerLexerDefinition struct {
	configure func(*scanner.Scanner)
}

func (d *textScannerLexerDefinition) Lex(filename string, r io.Reader) (lexer.Lexer, error) {
	l := Lex(filename, r)
	if d.configure != nil {
		d.configure(l.(*textScannerLexer).scanner)
	}
	return l, nil
}

func (d *textScannerLexerDefinition) Symbols() map[string]lexer.TokenType {
	return map[string]lexer.TokenType{
		"EOF":     EOF,
		"Ident":   Ident,
		"Int":     Int,
		"String":  String,
		"Keyword": Keyword,
		"Punct":   Punct,
	}
}

// textScannerLexer is a Lexer based on text/scanner.Scanner
type textScannerLexer struct {
	scanner  *scanner.Scanner
	filename string
	err      error
}

// Lex an io.Reader with text/scanner.Scanner.
//
// Comments are skipped, floats are not recognised and string tokens are
// unquoted.
func Lex(filename string, r io.Reader) lexer.Lexer {
	s := &scanner.Scanner{}
	s.Init(r)
	s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanStrings |
		scanner.ScanComments | scanner.SkipComments
	lexerr := lexWithScanner(filename, s)
	lexerr.scanner.Error = func(s *scanner.Scanner, msg string) {
		lexerr.err = participle.Errorf(lexer.Position(lexerr.scanner.Pos()), msg)
	}
	return lexerr
}

// LexWithScanner creates a Lexer from a user-provided scanner.Scanner.
//
// Useful if you need to customise the Scanner.
func LexWithScanner(filename string, scan *scanner.Scanner) lexer.Lexer {
	return lexWithScanner(filename, scan)
}

func lexWithScanner(filename string, scan *scanner.Scanner) *textScannerLexer {
	scan.Filename = filename
	lexer := &textScannerLexer{
		filename: filename,
		scanner:  scan,
	}
	return lexer
}

// LexBytes returns a new default lexer over bytes.
func LexBytes(filename string, b []byte) lexer.Lexer {
	return Lex(filename, bytes.NewReader(b))
}

// LexString returns a new default lexer over a string.
func LexString(filename, s string) lexer.Lexer {
	return Lex(filename, strings.NewReader(s))
}

// Tokenize consumes the whole input. The returned slice always ends with an
// EOF token.
func Tokenize(filename, src string) ([]lexer.Token, error) {
	return lexer.ConsumeAll(LexString(filename, src))
}

func (t *textScannerLexer) Next() (lexer.Token, error) {
	typ := t.scanner.Scan()
	text := t.scanner.TokenText()
	pos := lexer.Position(t.scanner.Position)
	pos.Filename = t.filename
	if t.err != nil {
		return lexer.Token{}, t.err
	}
	switch typ {
	case scanner.EOF:
		return lexer.EOFToken(pos), nil
	case scanner.Ident:
		if keywords[text] {
			return lexer.Token{Type: Keyword, Value: text, Pos: pos}, nil
		}
		return lexer.Token{Type: Ident, Value: text, Pos: pos}, nil
	case scanner.Int:
		return lexer.Token{Type: Int, Value: text, Pos: pos}, nil
	case scanner.String:
		s, err := strconv.Unquote(text)
		if err != nil {
			return lexer.Token{}, participle.Errorf(pos, "invalid string literal %s", text)
		}
		return lexer.Token{Type: String, Value: s, Pos: pos}, nil
	}
	if pair := text + string(t.scanner.Peek()); compound[pair] {
		t.scanner.Next()
		text = pair
	}
	return lexer.Token{Type: Punct, Value: text, Pos: pos}, nil
}
