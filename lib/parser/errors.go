package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	pilex "github.com/vyPal/pifront/lib/lexer"
)

// Construct names used in SyntaxError.Expected next to literal tokens.
const (
	expIdent      = "identifier"
	expInteger    = "integer"
	expString     = "string"
	expExpression = "expression"
	expType       = "type"
	expMember     = "member access"
	expElement    = "array index"
)

var constructs = map[string]bool{
	expIdent:      true,
	expInteger:    true,
	expString:     true,
	expExpression: true,
	expType:       true,
	expMember:     true,
	expElement:    true,
}

// SyntaxError is the only error the parser returns. Token is the offending
// token and Expected lists what would have been accepted in its place:
// literal token values such as ";" or construct names such as "identifier".
type SyntaxError struct {
	Pos      lexer.Position
	Token    lexer.Token
	Expected []string
	Msg      string
}

var _ participle.Error = (*SyntaxError)(nil)

// Message returns the error text without the position prefix.
func (e *SyntaxError) Message() string {
	msg := e.Msg
	if msg == "" {
		msg = "unexpected " + describe(e.Token)
	}
	if len(e.Expected) == 0 {
		return msg
	}
	parts := make([]string, len(e.Expected))
	for i, exp := range e.Expected {
		if constructs[exp] {
			parts[i] = exp
		} else {
			parts[i] = strconv.Quote(exp)
		}
	}
	if len(parts) == 1 {
		return fmt.Sprintf("%s (expected %s)", msg, parts[0])
	}
	return fmt.Sprintf("%s (expected one of %s)", msg, strings.Join(parts, ", "))
}

func (e *SyntaxError) Position() lexer.Position { return e.Pos }

func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": " + e.Message()
}

func describe(tok lexer.Token) string {
	switch tok.Type {
	case pilex.EOF:
		return "end of input"
	case pilex.String:
		return "string " + strconv.Quote(tok.Value)
	case pilex.Int:
		return "integer " + tok.Value
	case pilex.Ident:
		return "identifier " + strconv.Quote(tok.Value)
	}
	return strconv.Quote(tok.Value)
}
