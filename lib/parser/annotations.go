package parser

import (
	"slices"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/vyPal/pifront/lib/ast"
	pilex "github.com/vyPal/pifront/lib/lexer"
)

var annotationKinds = map[string]ast.AnnotationKind{
	"pre":       ast.Pre,
	"post":      ast.Post,
	"assume":    ast.Assume,
	"invariant": ast.Invariant,
}

var annotationNames = []string{"pre", "post", "assume", "invariant", "decreases"}

// annotationSet collects the annotations written in front of a construct
// before they are handed to their owner.
type annotationSet struct {
	list []*ast.Annotation
	at   []lexer.Token

	decreases   *ast.Ranking
	decreasesAt lexer.Token
}

// parseAnnotations parses a run of '@' annotations. Each predicate is an
// ordinary expression; it ends where the expression grammar stops, which is
// always the next '@' or the keyword of the annotated construct.
func (p *Parser) parseAnnotations() *annotationSet {
	set := &annotationSet{}
	for p.isPunct("@") {
		at := p.next()
		word := p.peek()
		if word.Type != pilex.Ident {
			p.fail(annotationNames...)
		}
		if word.Value == "decreases" {
			p.Pos++ // "decreases"
			if set.decreases != nil {
				p.failAt(at, "duplicate @decreases annotation")
			}
			set.decreases = &ast.Ranking{Pos: at.Pos, Measures: p.parseExprList()}
			set.decreasesAt = at
			continue
		}
		kind, ok := annotationKinds[word.Value]
		if !ok {
			p.fail(annotationNames...)
		}
		p.Pos++ // kind
		a := &ast.Annotation{Pos: at.Pos, Tag: kind}
		if p.peek().Type == pilex.Ident && isPunctToken(p.peekAt(1), ":") {
			a.Label = p.next().Value
			p.Pos++ // ":"
		}
		a.Pred = p.parseExpression()
		set.list = append(set.list, a)
		set.at = append(set.at, at)
	}
	return set
}

// restrict fails on the first annotation whose kind is not allowed in front
// of target. Each allowed kind other than pre/post may appear at most once.
func (s *annotationSet) restrict(p *Parser, target string, decreases bool, allowed ...ast.AnnotationKind) {
	var names []string
	for _, k := range allowed {
		names = append(names, k.String())
	}
	if decreases {
		names = append(names, "decreases")
	}
	seen := map[ast.AnnotationKind]bool{}
	for i, a := range s.list {
		if !slices.Contains(allowed, a.Tag) {
			p.failAt(s.at[i], "@"+a.Tag.String()+" cannot annotate "+target, names...)
		}
		if a.Tag != ast.Pre && a.Tag != ast.Post && seen[a.Tag] {
			p.failAt(s.at[i], "duplicate @"+a.Tag.String()+" annotation")
		}
		seen[a.Tag] = true
	}
	if s.decreases != nil && !decreases {
		p.failAt(s.decreasesAt, "@decreases cannot annotate "+target, names...)
	}
}

func (s *annotationSet) first(kind ast.AnnotationKind) *ast.Annotation {
	for _, a := range s.list {
		if a.Tag == kind {
			return a
		}
	}
	return nil
}

func (s *annotationSet) all(kind ast.AnnotationKind) []*ast.Annotation {
	var out []*ast.Annotation
	for _, a := range s.list {
		if a.Tag == kind {
			out = append(out, a)
		}
	}
	return out
}
