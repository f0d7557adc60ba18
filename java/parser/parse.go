package parser

import (
	"errors"
	"strings"

	"github.com/dhamidi/javafront/java/version"
)

type options struct {
	file string
}

// Option configures a call to Parse.
type Option func(*options)

// WithFile sets the file name reported in positions.
func WithFile(name string) Option {
	return func(o *options) {
		o.file = name
	}
}

// Parse parses src as ctx on language level v. A nil ctx parses a whole
// compilation unit. On failure no tree is returned and the error is a
// *LexError or a *ParseError.
//
// Positions in the returned tree and in errors are relative to src, not
// to the scaffolding ctx wraps around it.
func Parse(src string, v version.Version, ctx Context, opts ...Option) (*Node, error) {
	if ctx == nil {
		ctx = CompilationUnitContext{}
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	prefix, suffix := ctx.wrapper()
	features := FeaturesFor(v)
	lexer := NewLexer([]byte(prefix+src+suffix), o.file, features)
	lexer.startAt(1-strings.Count(prefix, "\n"), -len(prefix))
	tokens, _, err := lexer.Tokenize()
	if err != nil {
		return nil, err
	}

	p := newParser(tokens, features, ctx.String())
	root := p.parseCompilationUnit()
	if p.err != nil {
		return nil, p.err
	}
	inferEffectiveModifiers(root)

	node, err := ctx.Unwrap(root)
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			parseErr.Context = ctx.String()
			parseErr.Version = v
			if parseErr.Pos.Offset < 0 {
				parseErr.Pos = Position{File: o.file, Line: 1, Column: 1}
			}
		}
		return nil, err
	}
	return node, nil
}

func ParseCompilationUnit(src string, v version.Version, opts ...Option) (*Node, error) {
	return Parse(src, v, CompilationUnitContext{}, opts...)
}

func ParseExpression(src string, v version.Version, opts ...Option) (*Node, error) {
	return Parse(src, v, ExpressionContext{}, opts...)
}

func ParseAnnotation(src string, v version.Version, opts ...Option) (*Node, error) {
	return Parse(src, v, AnnotationContext{}, opts...)
}
