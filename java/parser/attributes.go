package parser

import (
	"strconv"
	"strings"
)

// LiteralKind classifies a KindLiteral node. Exactly one kind applies to
// any literal.
type LiteralKind int

const (
	LiteralNone LiteralKind = iota
	LiteralNumeric
	LiteralChar
	LiteralString
	LiteralBoolean
	LiteralNull
)

var literalKindNames = [...]string{"none", "numeric", "char", "string", "boolean", "null"}

func (k LiteralKind) String() string {
	return literalKindNames[k]
}

func (n *Node) LiteralKind() LiteralKind {
	if n.Kind != KindLiteral || n.Token == nil {
		return LiteralNone
	}
	switch n.Token.Kind {
	case TokenIntLiteral, TokenFloatLiteral:
		return LiteralNumeric
	case TokenCharLiteral:
		return LiteralChar
	case TokenStringLiteral, TokenTextBlock:
		return LiteralString
	case TokenTrue, TokenFalse:
		return LiteralBoolean
	case TokenNull:
		return LiteralNull
	}
	return LiteralNone
}

func (n *Node) IsNumericLiteral() bool { return n.LiteralKind() == LiteralNumeric }
func (n *Node) IsCharLiteral() bool    { return n.LiteralKind() == LiteralChar }
func (n *Node) IsStringLiteral() bool  { return n.LiteralKind() == LiteralString }
func (n *Node) IsBooleanLiteral() bool { return n.LiteralKind() == LiteralBoolean }
func (n *Node) IsNullLiteral() bool    { return n.LiteralKind() == LiteralNull }

// IsTextBlock reports whether a string literal was written as a text
// block.
func (n *Node) IsTextBlock() bool {
	return n.Kind == KindLiteral && n.Token != nil && n.Token.Kind == TokenTextBlock
}

// QualifiedName joins the identifiers of a QualifiedName node, or returns
// the literal of an Identifier.
func (n *Node) QualifiedName() string {
	switch n.Kind {
	case KindIdentifier:
		return n.TokenLiteral()
	case KindQualifiedName:
		parts := make([]string, 0, len(n.Children))
		for _, c := range n.Children {
			parts = append(parts, c.TokenLiteral())
		}
		return strings.Join(parts, ".")
	}
	return ""
}

// AnnotationName returns the name of an annotation as written, e.g.
// "java.lang.Override".
func (n *Node) AnnotationName() string {
	if n.Kind != KindAnnotation {
		return ""
	}
	if name := n.FirstChildOfKind(KindQualifiedName); name != nil {
		return name.QualifiedName()
	}
	return ""
}

// SimpleName returns the last segment of an annotation name.
func (n *Node) SimpleName() string {
	name := n.AnnotationName()
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// MemberList returns the member list of an annotation, or nil for a
// marker annotation.
func (n *Node) MemberList() *Node {
	if n.Kind != KindAnnotation {
		return nil
	}
	return n.FirstChildOfKind(KindMemberList)
}

func (n *Node) IsMarker() bool {
	return n.Kind == KindAnnotation && n.MemberList() == nil
}

func (n *Node) IsShorthand() bool {
	return n.Kind == KindMemberValuePair && n.Flags.Has(FlagShorthand)
}

// MemberName returns the name of a member value pair. Shorthand pairs
// are named "value".
func (n *Node) MemberName() string {
	if n.Kind != KindMemberValuePair {
		return ""
	}
	if n.IsShorthand() {
		return "value"
	}
	return n.Name()
}

// Value returns the value of a member value pair.
func (n *Node) Value() *Node {
	if n.Kind != KindMemberValuePair || len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// Operator returns the operator token text of an operator expression.
func (n *Node) Operator() string {
	switch n.Kind {
	case KindAssignExpr, KindBinaryExpr, KindUnaryExpr, KindPostfixExpr:
		return n.TokenLiteral()
	}
	return ""
}

// Attribute is one kind-specific property of a node, in a form generic
// tree printers and matchers can consume.
type Attribute struct {
	Name  string
	Value string
}

// Attributes lists the kind-specific attributes of n in a stable order.
// Structural content (children, parent, span) is not included.
func (n *Node) Attributes() []Attribute {
	var attrs []Attribute
	add := func(name, value string) {
		attrs = append(attrs, Attribute{Name: name, Value: value})
	}
	addBool := func(name string, v bool) {
		add(name, strconv.FormatBool(v))
	}

	switch n.Kind {
	case KindLiteral:
		add("token", n.TokenLiteral())
		add("literalKind", n.LiteralKind().String())
		addBool("textBlock", n.IsTextBlock())
	case KindIdentifier, KindThis, KindSuper:
		add("token", n.TokenLiteral())
	case KindAssignExpr, KindBinaryExpr, KindUnaryExpr, KindPostfixExpr:
		add("operator", n.Operator())
	case KindAnnotation:
		add("annotationName", n.AnnotationName())
		add("simpleName", n.SimpleName())
		addBool("marker", n.IsMarker())
	case KindMemberValuePair:
		add("memberName", n.MemberName())
		addBool("shorthand", n.IsShorthand())
	case KindModifiers:
		add("explicit", n.Explicit.String())
		add("effective", n.Effective.String())
	case KindType:
		if n.Token != nil {
			add("token", n.TokenLiteral())
		}
		addBool("diamond", n.Flags.Has(FlagDiamond))
	case KindWildcard, KindMethodRef:
		if n.Token != nil {
			add("token", n.TokenLiteral())
		}
	case KindImportDecl:
		addBool("static", n.Flags.Has(FlagStatic))
		addBool("onDemand", n.Flags.Has(FlagOnDemand))
	case KindInitializer:
		addBool("static", n.Flags.Has(FlagStatic))
	case KindVariableDeclarator, KindMethodDecl:
		add("dims", strconv.Itoa(n.Dims))
	case KindParameter:
		addBool("varargs", n.Flags.Has(FlagVarargs))
		add("dims", strconv.Itoa(n.Dims))
	case KindConstructorDecl:
		addBool("compact", n.Flags.Has(FlagCompact))
	case KindSwitchCase, KindSwitchLabel:
		addBool("rule", n.Flags.Has(FlagSwitchRule))
		if n.Kind == KindSwitchLabel {
			addBool("default", n.Flags.Has(FlagDefault))
		}
	case KindModuleDecl:
		addBool("open", n.Flags.Has(FlagOpen))
	case KindRequiresDirective:
		addBool("static", n.Flags.Has(FlagStatic))
		addBool("transitive", n.Flags.Has(FlagTransitive))
	}

	if n.Kind.IsExpression() {
		add("parenDepth", strconv.Itoa(n.ParenDepth))
	}
	return attrs
}
