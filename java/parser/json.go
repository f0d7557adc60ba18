package parser

import (
	"encoding/json"

	"github.com/iancoleman/strcase"
)

type jsonNode struct {
	Kind       string            `json:"kind"`
	Span       *jsonSpan         `json:"span,omitempty"`
	Token      string            `json:"token,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Children   []*jsonNode       `json:"children,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// MarshalJSON encodes the subtree rooted at n. Attribute names are
// written in snake case, as in "literal_kind". Parent links are omitted.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON())
}

func (n *Node) toJSON() *jsonNode {
	jn := &jsonNode{
		Kind: n.Kind.String(),
	}

	if n.Span.Start.Line != 0 || n.Span.End.Line != 0 {
		jn.Span = &jsonSpan{
			Start: jsonPosition{Offset: n.Span.Start.Offset, Line: n.Span.Start.Line, Column: n.Span.Start.Column},
			End:   jsonPosition{Offset: n.Span.End.Offset, Line: n.Span.End.Line, Column: n.Span.End.Column},
		}
	}

	if n.Token != nil {
		jn.Token = n.Token.Literal
	}

	for _, attr := range n.Attributes() {
		if attr.Name == "token" {
			continue
		}
		if jn.Attributes == nil {
			jn.Attributes = make(map[string]string)
		}
		jn.Attributes[strcase.ToSnake(attr.Name)] = attr.Value
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*jsonNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = child.toJSON()
		}
	}

	return jn
}
