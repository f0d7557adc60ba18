// Package format renders syntax trees and class symbols for the command
// line.
package format

import (
	"fmt"
	"io"

	"github.com/dhamidi/javafront/java/parser"
	"github.com/dhamidi/javafront/java/symbols"
)

// NodeEncoder writes a syntax tree.
type NodeEncoder interface {
	Encode(node *parser.Node) error
	MarshalText(node *parser.Node) ([]byte, error)
}

// SymbolEncoder writes a resolved, unresolved or array class symbol.
type SymbolEncoder interface {
	Encode(sym symbols.ClassSymbol) error
	MarshalText(sym symbols.ClassSymbol) ([]byte, error)
}

// NodeFormats lists the names accepted by NewNodeEncoder.
var NodeFormats = []string{"tree", "positions", "json", "java"}

// SymbolFormats lists the names accepted by NewSymbolEncoder.
var SymbolFormats = []string{"line", "json"}

func NewNodeEncoder(name string, w io.Writer) (NodeEncoder, error) {
	switch name {
	case "tree":
		return NewTreeEncoder(w, false), nil
	case "positions":
		return NewTreeEncoder(w, true), nil
	case "json":
		return NewASTJSONEncoder(w), nil
	case "java":
		return NewJavaEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown tree format %q (want one of %v)", name, NodeFormats)
}

func NewSymbolEncoder(name string, w io.Writer) (SymbolEncoder, error) {
	switch name {
	case "line":
		return NewLineEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown symbol format %q (want one of %v)", name, SymbolFormats)
}

// TreeEncoder writes the indented tree dump, optionally with spans.
type TreeEncoder struct {
	w         io.Writer
	positions bool
}

func NewTreeEncoder(w io.Writer, positions bool) *TreeEncoder {
	return &TreeEncoder{w: w, positions: positions}
}

func (e *TreeEncoder) Encode(node *parser.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalText(node *parser.Node) ([]byte, error) {
	if e.positions {
		return []byte(node.StringWithPositions()), nil
	}
	return []byte(node.String()), nil
}
