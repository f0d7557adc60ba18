package parser

import "fmt"

// A Context names the grammar production a fragment is parsed as. Every
// fragment is parsed as a compilation unit: Wrap embeds the fragment in
// just enough scaffolding to make it one, and Unwrap digs the fragment's
// own node back out. The set of contexts is closed.
type Context interface {
	// Wrap returns the compilation unit that embeds fragment.
	Wrap(fragment string) string
	// Unwrap extracts the fragment's root from the parsed compilation
	// unit. The returned node has no parent.
	Unwrap(root *Node) (*Node, error)
	// String describes what is parsed, with an article: "an annotation".
	String() string

	wrapper() (prefix, suffix string)
}

const wrapperClass = "__Wrapper"

type (
	CompilationUnitContext struct{}
	TypeDeclarationContext struct{}
	BodyDeclarationContext struct{}
	StatementContext       struct{}
	ExpressionContext      struct{}
	TypeContext            struct{}
	AnnotationContext      struct{}
)

// Contexts lists every parsing context, keyed by the short name used on
// the command line.
var Contexts = map[string]Context{
	"compilation-unit": CompilationUnitContext{},
	"type-declaration": TypeDeclarationContext{},
	"body-declaration": BodyDeclarationContext{},
	"statement":        StatementContext{},
	"expression":       ExpressionContext{},
	"type":             TypeContext{},
	"annotation":       AnnotationContext{},
}

// ContextByName looks up a context by its short name.
func ContextByName(name string) (Context, error) {
	if ctx, ok := Contexts[name]; ok {
		return ctx, nil
	}
	return nil, fmt.Errorf("unknown parsing context %q", name)
}

func wrap(ctx Context, fragment string) string {
	prefix, suffix := ctx.wrapper()
	return prefix + fragment + suffix
}

func detach(n *Node) *Node {
	n.Parent = nil
	return n
}

func unwrapError(n *Node, format string, args ...any) error {
	return &ParseError{Pos: n.Span.Start, Message: fmt.Sprintf(format, args...)}
}

func (CompilationUnitContext) wrapper() (string, string)     { return "", "" }
func (c CompilationUnitContext) Wrap(fragment string) string { return wrap(c, fragment) }
func (CompilationUnitContext) String() string                { return "a compilation unit" }

func (CompilationUnitContext) Unwrap(root *Node) (*Node, error) {
	return detach(root), nil
}

func (TypeDeclarationContext) wrapper() (string, string)     { return "", "" }
func (c TypeDeclarationContext) Wrap(fragment string) string { return wrap(c, fragment) }
func (TypeDeclarationContext) String() string                { return "a type declaration" }

func (TypeDeclarationContext) Unwrap(root *Node) (*Node, error) {
	if len(root.Children) != 1 || !root.Children[0].Kind.IsTypeDecl() {
		return nil, unwrapError(root, "expected a single type declaration")
	}
	return detach(root.Children[0]), nil
}

// wrapperClassBody returns the body of the scaffolding class.
func wrapperClassBody(root *Node) *Node {
	if len(root.Children) != 1 || root.Children[0].Kind != KindClassDecl {
		return nil
	}
	return root.Children[0].FirstChildOfKind(KindClassBody)
}

func (BodyDeclarationContext) wrapper() (string, string) {
	return "class " + wrapperClass + " {\n", "\n}"
}
func (c BodyDeclarationContext) Wrap(fragment string) string { return wrap(c, fragment) }
func (BodyDeclarationContext) String() string                { return "a body declaration" }

func (BodyDeclarationContext) Unwrap(root *Node) (*Node, error) {
	body := wrapperClassBody(root)
	if body == nil || len(body.Children) != 1 {
		return nil, unwrapError(root, "expected a single body declaration")
	}
	return detach(body.Children[0]), nil
}

func (StatementContext) wrapper() (string, string) {
	return "class " + wrapperClass + " { void __m() {\n", "\n} }"
}
func (c StatementContext) Wrap(fragment string) string { return wrap(c, fragment) }
func (StatementContext) String() string                { return "a statement" }

func (StatementContext) Unwrap(root *Node) (*Node, error) {
	body := wrapperClassBody(root)
	if body == nil || len(body.Children) != 1 {
		return nil, unwrapError(root, "expected a single statement")
	}
	block := body.Children[0].FirstChildOfKind(KindBlock)
	if block == nil || len(block.Children) != 1 {
		return nil, unwrapError(root, "expected a single statement")
	}
	return detach(block.Children[0]), nil
}

// wrapperInitializer returns the initializer of the scaffolding field.
func wrapperInitializer(root *Node) *Node {
	body := wrapperClassBody(root)
	if body == nil || len(body.Children) != 1 || body.Children[0].Kind != KindFieldDecl {
		return nil
	}
	declarators := body.Children[0].ChildrenOfKind(KindVariableDeclarator)
	if len(declarators) != 1 || len(declarators[0].Children) != 2 {
		return nil
	}
	return declarators[0].Children[1]
}

func (ExpressionContext) wrapper() (string, string) {
	return "class " + wrapperClass + " { Object __o =\n", "\n; }"
}
func (c ExpressionContext) Wrap(fragment string) string { return wrap(c, fragment) }
func (ExpressionContext) String() string                { return "an expression" }

func (ExpressionContext) Unwrap(root *Node) (*Node, error) {
	init := wrapperInitializer(root)
	if init == nil || init.Kind == KindArrayInit {
		return nil, unwrapError(root, "expected a single expression")
	}
	return detach(init), nil
}

func (TypeContext) wrapper() (string, string) {
	return "class " + wrapperClass + " { Object __o = (\n", "\n) null; }"
}
func (c TypeContext) Wrap(fragment string) string { return wrap(c, fragment) }
func (TypeContext) String() string                { return "a type" }

func (TypeContext) Unwrap(root *Node) (*Node, error) {
	cast := wrapperInitializer(root)
	if cast == nil || cast.Kind != KindCastExpr || cast.ParenDepth > 0 || len(cast.Children) != 2 {
		return nil, unwrapError(root, "expected a single type")
	}
	if operand := cast.Children[1]; !operand.IsNullLiteral() || operand.ParenDepth > 0 {
		return nil, unwrapError(root, "expected a single type")
	}
	return detach(cast.Children[0]), nil
}

func (AnnotationContext) wrapper() (string, string) {
	return "", "\nclass " + wrapperClass + " {}"
}
func (c AnnotationContext) Wrap(fragment string) string { return wrap(c, fragment) }
func (AnnotationContext) String() string                { return "an annotation" }

func (AnnotationContext) Unwrap(root *Node) (*Node, error) {
	if len(root.Children) != 1 || root.Children[0].Kind != KindClassDecl {
		return nil, unwrapError(root, "expected a single annotation")
	}
	mods := root.Children[0].Modifiers()
	if mods == nil || mods.Explicit != 0 || len(mods.Children) != 1 {
		return nil, unwrapError(root, "expected a single annotation")
	}
	return detach(mods.Children[0]), nil
}
