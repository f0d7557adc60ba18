package parser

import (
	"errors"
	"fmt"

	"github.com/dhamidi/javafront/java/version"
)

// LexError reports a malformed token, such as an unterminated string or
// comment. It is raised before any grammar rule runs.
type LexError struct {
	Pos     Position
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: lexical error: %s", e.Pos, e.Message)
}

// ParseError reports input that matches no production legal on the
// active language level.
type ParseError struct {
	Pos     Position
	Message string
	// Context describes what was being parsed, e.g. "an annotation".
	Context string
	Version version.Version
}

func (e *ParseError) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("%s: %s (java %s)", e.Pos, e.Message, e.Version)
	}
	return fmt.Sprintf("%s: %s while parsing %s (java %s)", e.Pos, e.Message, e.Context, e.Version)
}

// IsLexical reports whether err is, or wraps, a *LexError.
func IsLexical(err error) bool {
	var lexErr *LexError
	return errors.As(err, &lexErr)
}

// InvariantError describes a tree that violates a structural invariant.
// A correct parser never produces one.
type InvariantError struct {
	Node    *Node
	Message string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Node.Kind, e.Node.Span.Start, e.Message)
}

func errUnsupported(p Production, v version.Version) string {
	return fmt.Sprintf("%s not supported in java %s (legal in %s)", p, v, p.Versions())
}
