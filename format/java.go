package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/javafront/java/parser"
)

// UnsupportedError reports a node the Java printer cannot render.
type UnsupportedError struct {
	Kind parser.NodeKind
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("cannot print %s as Java source", e.Kind)
}

// JavaEncoder renders annotation, expression and type subtrees as Java
// source. Parentheses come from each node's ParenDepth and literals are
// written as they appeared, so parsing the output yields an equal tree.
type JavaEncoder struct {
	w io.Writer
}

func NewJavaEncoder(w io.Writer) *JavaEncoder {
	return &JavaEncoder{w: w}
}

func (e *JavaEncoder) Encode(node *parser.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JavaEncoder) MarshalText(node *parser.Node) ([]byte, error) {
	p := &javaPrinter{}
	p.printNode(node)
	if p.err != nil {
		return nil, p.err
	}
	return []byte(p.sb.String()), nil
}

// JavaSource renders node with a JavaEncoder.
func JavaSource(node *parser.Node) (string, error) {
	text, err := (&JavaEncoder{}).MarshalText(node)
	return string(text), err
}

type javaPrinter struct {
	sb  strings.Builder
	err error
}

func (p *javaPrinter) write(s string) {
	p.sb.WriteString(s)
}

func (p *javaPrinter) unsupported(node *parser.Node) {
	if p.err == nil {
		p.err = &UnsupportedError{Kind: node.Kind}
	}
}

func (p *javaPrinter) printNode(node *parser.Node) {
	if node == nil || p.err != nil {
		return
	}
	p.write(strings.Repeat("(", node.ParenDepth))
	switch node.Kind {
	case parser.KindAnnotation:
		p.printAnnotation(node)
	case parser.KindMemberValueArray, parser.KindArrayInit:
		p.printInitializer(node)
	case parser.KindModifiers:
		p.printModifiers(node)
	case parser.KindType, parser.KindArrayType, parser.KindWildcard,
		parser.KindTypeArguments, parser.KindUnionType, parser.KindIntersectionType:
		p.printType(node)
	case parser.KindQualifiedName:
		p.write(node.QualifiedName())
	default:
		p.printExpr(node)
	}
	p.write(strings.Repeat(")", node.ParenDepth))
}

func (p *javaPrinter) printList(nodes []*parser.Node, sep string) {
	for i, n := range nodes {
		if i > 0 {
			p.write(sep)
		}
		p.printNode(n)
	}
}

func (p *javaPrinter) printAnnotation(node *parser.Node) {
	p.write("@")
	p.write(node.AnnotationName())
	members := node.MemberList()
	if members == nil {
		return
	}
	p.write("(")
	for i, pair := range members.Children {
		if i > 0 {
			p.write(", ")
		}
		if !pair.IsShorthand() {
			p.write(pair.MemberName())
			p.write(" = ")
		}
		p.printNode(pair.Value())
	}
	p.write(")")
}

func (p *javaPrinter) printInitializer(node *parser.Node) {
	p.write("{")
	p.printList(node.Children, ", ")
	p.write("}")
}

// printModifiers writes annotations and explicit modifiers followed by
// a space when there are any.
func (p *javaPrinter) printModifiers(node *parser.Node) {
	for _, ann := range node.Children {
		p.printNode(ann)
		p.write(" ")
	}
	if s := node.Explicit.String(); s != "" {
		p.write(s)
		p.write(" ")
	}
}

func (p *javaPrinter) printTypeAnnotations(node *parser.Node) {
	for _, c := range node.Children {
		if c.Kind == parser.KindAnnotation {
			p.printNode(c)
			p.write(" ")
		}
	}
}

func (p *javaPrinter) printType(node *parser.Node) {
	switch node.Kind {
	case parser.KindType:
		p.printTypeAnnotations(node)
		if node.Token != nil {
			p.write(node.Token.Literal)
			return
		}
		first := true
		for _, c := range node.Children {
			switch c.Kind {
			case parser.KindQualifiedName:
				if !first {
					p.write(".")
				}
				first = false
				p.write(c.QualifiedName())
			case parser.KindTypeArguments:
				p.printNode(c)
			}
		}
		if node.Flags.Has(parser.FlagDiamond) {
			p.write("<>")
		}
	case parser.KindArrayType:
		elem := node.Children[len(node.Children)-1]
		p.printNode(elem)
		if len(node.Children) > 1 {
			p.write(" ")
			p.printList(node.Children[:len(node.Children)-1], " ")
			p.write(" ")
		}
		p.write("[]")
	case parser.KindWildcard:
		p.printTypeAnnotations(node)
		p.write("?")
		if node.Token != nil {
			p.write(" ")
			p.write(node.Token.Literal)
			p.write(" ")
			p.printNode(node.Children[len(node.Children)-1])
		}
	case parser.KindTypeArguments:
		p.write("<")
		p.printList(node.Children, ", ")
		p.write(">")
	case parser.KindUnionType:
		p.printList(node.Children, " | ")
	case parser.KindIntersectionType:
		p.printList(node.Children, " & ")
	}
}

func (p *javaPrinter) printExpr(node *parser.Node) {
	c := node.Children
	switch node.Kind {
	case parser.KindLiteral, parser.KindIdentifier, parser.KindThis, parser.KindSuper:
		p.write(node.TokenLiteral())
	case parser.KindAssignExpr, parser.KindBinaryExpr:
		p.printNode(c[0])
		p.write(" " + node.Operator() + " ")
		p.printNode(c[1])
	case parser.KindUnaryExpr:
		operand, err := JavaSource(c[0])
		if err != nil {
			p.err = err
			return
		}
		op := node.Operator()
		p.write(op)
		// "- -x" must not collapse into "--x".
		if (op == "+" || op == "-") && strings.HasPrefix(operand, op) {
			p.write(" ")
		}
		p.write(operand)
	case parser.KindPostfixExpr:
		p.printNode(c[0])
		p.write(node.Operator())
	case parser.KindTernaryExpr:
		p.printNode(c[0])
		p.write(" ? ")
		p.printNode(c[1])
		p.write(" : ")
		p.printNode(c[2])
	case parser.KindCastExpr:
		p.write("(")
		p.printNode(c[0])
		p.write(") ")
		p.printNode(c[1])
	case parser.KindInstanceofExpr:
		p.printNode(c[0])
		p.write(" instanceof ")
		p.printNode(c[1])
	case parser.KindTypePattern:
		p.printNode(c[0])
	case parser.KindRecordPattern:
		p.printNode(c[0])
		p.write("(")
		p.printList(c[1:], ", ")
		p.write(")")
	case parser.KindCallExpr:
		p.printNode(c[0])
		p.printNode(c[1])
	case parser.KindArguments:
		p.write("(")
		p.printList(c, ", ")
		p.write(")")
	case parser.KindFieldAccess:
		p.printNode(c[0])
		p.write(".")
		p.printList(c[1:], "")
	case parser.KindArrayAccess:
		p.printNode(c[0])
		p.write("[")
		p.printNode(c[1])
		p.write("]")
	case parser.KindMethodRef:
		p.printNode(c[0])
		p.write("::")
		p.printList(c[1:], "")
		p.write(node.TokenLiteral())
	case parser.KindClassLiteral:
		p.printNode(c[0])
		p.write(".class")
	case parser.KindNewExpr:
		p.printNew(node)
	case parser.KindNewArrayExpr:
		p.printNewArray(node)
	case parser.KindLambdaExpr:
		p.printLambda(node)
	case parser.KindParameter:
		p.printNode(node.Modifiers())
		p.printNode(c[1])
		if node.Flags.Has(parser.FlagVarargs) {
			p.write("...")
		}
		p.write(" ")
		p.write(node.Name())
		p.write(strings.Repeat("[]", node.Dims))
	default:
		p.unsupported(node)
	}
}

func (p *javaPrinter) printNew(node *parser.Node) {
	c := node.Children
	i := 0
	if c[0].Kind != parser.KindType && c[0].Kind != parser.KindTypeArguments {
		p.printNode(c[0])
		p.write(".")
		i++
	}
	p.write("new ")
	for ; i < len(c); i++ {
		switch c[i].Kind {
		case parser.KindClassBody:
			p.unsupported(c[i])
		default:
			p.printNode(c[i])
		}
	}
}

// printNewArray writes the element type, then the dimension
// expressions, then the empty brackets of each ArrayType layer from the
// innermost out.
func (p *javaPrinter) printNewArray(node *parser.Node) {
	typ := node.Children[0]
	var layers []*parser.Node
	for typ.Kind == parser.KindArrayType {
		layers = append(layers, typ)
		typ = typ.Children[len(typ.Children)-1]
	}
	p.write("new ")
	p.printNode(typ)
	if dims := node.FirstChildOfKind(parser.KindArrayDims); dims != nil {
		for _, dim := range dims.Children {
			p.write("[")
			p.printNode(dim)
			p.write("]")
		}
	}
	for i := len(layers) - 1; i >= 0; i-- {
		annotations := layers[i].Children[:len(layers[i].Children)-1]
		if len(annotations) > 0 {
			p.write(" ")
			p.printList(annotations, " ")
			p.write(" ")
		}
		p.write("[]")
	}
	if init := node.FirstChildOfKind(parser.KindArrayInit); init != nil {
		p.printNode(init)
	}
}

func (p *javaPrinter) printLambda(node *parser.Node) {
	params := node.Children[0]
	if len(params.Children) == 1 && params.Children[0].Kind == parser.KindIdentifier {
		p.printNode(params.Children[0])
	} else {
		p.write("(")
		p.printList(params.Children, ", ")
		p.write(")")
	}
	p.write(" -> ")
	body := node.Children[1]
	if body.Kind == parser.KindBlock {
		p.unsupported(body)
		return
	}
	p.printNode(body)
}
