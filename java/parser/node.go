package parser

import "strings"

type NodeKind int

const (
	KindError NodeKind = iota

	// Compilation unit level
	KindCompilationUnit
	KindPackageDecl
	KindImportDecl
	KindModuleDecl
	KindRequiresDirective
	KindExportsDirective
	KindOpensDirective
	KindUsesDirective
	KindProvidesDirective

	// Type declarations
	KindClassDecl
	KindInterfaceDecl
	KindEnumDecl
	KindRecordDecl
	KindAnnotationDecl
	KindClassBody
	KindEnumConstant

	// Members
	KindFieldDecl
	KindVariableDeclarator
	KindMethodDecl
	KindConstructorDecl
	KindInitializer
	KindDefaultValue
	KindReceiverParameter
	KindExplicitConstructorInvocation

	// Types and modifiers
	KindModifiers
	KindTypeParameters
	KindTypeParameter
	KindTypeArguments
	KindType
	KindArrayType
	KindWildcard
	KindUnionType
	KindIntersectionType
	KindExtendsClause
	KindImplementsClause
	KindPermitsClause
	KindThrowsList
	KindParameters
	KindParameter

	// Annotations
	KindAnnotation
	KindMemberList
	KindMemberValuePair
	KindMemberValueArray

	// Statements
	KindBlock
	KindEmptyStmt
	KindExprStmt
	KindIfStmt
	KindForStmt
	KindForInit
	KindForUpdate
	KindEnhancedForStmt
	KindWhileStmt
	KindDoStmt
	KindSwitchStmt
	KindSwitchCase
	KindSwitchLabel
	KindTypePattern
	KindRecordPattern
	KindGuard
	KindReturnStmt
	KindBreakStmt
	KindContinueStmt
	KindThrowStmt
	KindTryStmt
	KindResourceList
	KindCatchClause
	KindFinallyClause
	KindSynchronizedStmt
	KindAssertStmt
	KindLabeledStmt
	KindLocalVarDecl
	KindLocalClassDecl
	KindYieldStmt

	// Expressions
	KindAssignExpr
	KindTernaryExpr
	KindBinaryExpr
	KindUnaryExpr
	KindPostfixExpr
	KindCastExpr
	KindInstanceofExpr
	KindCallExpr
	KindArguments
	KindMethodRef
	KindFieldAccess
	KindArrayAccess
	KindNewExpr
	KindNewArrayExpr
	KindArrayDims
	KindArrayInit
	KindLambdaExpr
	KindLambdaParameters
	KindLiteral
	KindIdentifier
	KindQualifiedName
	KindThis
	KindSuper
	KindClassLiteral
	KindSwitchExpr

	kindCount
)

var nodeKindNames = [kindCount]string{
	KindError:                         "Error",
	KindCompilationUnit:               "CompilationUnit",
	KindPackageDecl:                   "PackageDecl",
	KindImportDecl:                    "ImportDecl",
	KindModuleDecl:                    "ModuleDecl",
	KindRequiresDirective:             "RequiresDirective",
	KindExportsDirective:              "ExportsDirective",
	KindOpensDirective:                "OpensDirective",
	KindUsesDirective:                 "UsesDirective",
	KindProvidesDirective:             "ProvidesDirective",
	KindClassDecl:                     "ClassDecl",
	KindInterfaceDecl:                 "InterfaceDecl",
	KindEnumDecl:                      "EnumDecl",
	KindRecordDecl:                    "RecordDecl",
	KindAnnotationDecl:                "AnnotationDecl",
	KindClassBody:                     "ClassBody",
	KindEnumConstant:                  "EnumConstant",
	KindFieldDecl:                     "FieldDecl",
	KindVariableDeclarator:            "VariableDeclarator",
	KindMethodDecl:                    "MethodDecl",
	KindConstructorDecl:               "ConstructorDecl",
	KindInitializer:                   "Initializer",
	KindDefaultValue:                  "DefaultValue",
	KindReceiverParameter:             "ReceiverParameter",
	KindExplicitConstructorInvocation: "ExplicitConstructorInvocation",
	KindModifiers:                     "Modifiers",
	KindTypeParameters:                "TypeParameters",
	KindTypeParameter:                 "TypeParameter",
	KindTypeArguments:                 "TypeArguments",
	KindType:                          "Type",
	KindArrayType:                     "ArrayType",
	KindWildcard:                      "Wildcard",
	KindUnionType:                     "UnionType",
	KindIntersectionType:              "IntersectionType",
	KindExtendsClause:                 "ExtendsClause",
	KindImplementsClause:              "ImplementsClause",
	KindPermitsClause:                 "PermitsClause",
	KindThrowsList:                    "ThrowsList",
	KindParameters:                    "Parameters",
	KindParameter:                     "Parameter",
	KindAnnotation:                    "Annotation",
	KindMemberList:                    "MemberList",
	KindMemberValuePair:               "MemberValuePair",
	KindMemberValueArray:              "MemberValueArray",
	KindBlock:                         "Block",
	KindEmptyStmt:                     "EmptyStmt",
	KindExprStmt:                      "ExprStmt",
	KindIfStmt:                        "IfStmt",
	KindForStmt:                       "ForStmt",
	KindForInit:                       "ForInit",
	KindForUpdate:                     "ForUpdate",
	KindEnhancedForStmt:               "EnhancedForStmt",
	KindWhileStmt:                     "WhileStmt",
	KindDoStmt:                        "DoStmt",
	KindSwitchStmt:                    "SwitchStmt",
	KindSwitchCase:                    "SwitchCase",
	KindSwitchLabel:                   "SwitchLabel",
	KindTypePattern:                   "TypePattern",
	KindRecordPattern:                 "RecordPattern",
	KindGuard:                         "Guard",
	KindReturnStmt:                    "ReturnStmt",
	KindBreakStmt:                     "BreakStmt",
	KindContinueStmt:                  "ContinueStmt",
	KindThrowStmt:                     "ThrowStmt",
	KindTryStmt:                       "TryStmt",
	KindResourceList:                  "ResourceList",
	KindCatchClause:                   "CatchClause",
	KindFinallyClause:                 "FinallyClause",
	KindSynchronizedStmt:              "SynchronizedStmt",
	KindAssertStmt:                    "AssertStmt",
	KindLabeledStmt:                   "LabeledStmt",
	KindLocalVarDecl:                  "LocalVarDecl",
	KindLocalClassDecl:                "LocalClassDecl",
	KindYieldStmt:                     "YieldStmt",
	KindAssignExpr:                    "AssignExpr",
	KindTernaryExpr:                   "TernaryExpr",
	KindBinaryExpr:                    "BinaryExpr",
	KindUnaryExpr:                     "UnaryExpr",
	KindPostfixExpr:                   "PostfixExpr",
	KindCastExpr:                      "CastExpr",
	KindInstanceofExpr:                "InstanceofExpr",
	KindCallExpr:                      "CallExpr",
	KindArguments:                     "Arguments",
	KindMethodRef:                     "MethodRef",
	KindFieldAccess:                   "FieldAccess",
	KindArrayAccess:                   "ArrayAccess",
	KindNewExpr:                       "NewExpr",
	KindNewArrayExpr:                  "NewArrayExpr",
	KindArrayDims:                     "ArrayDims",
	KindArrayInit:                     "ArrayInit",
	KindLambdaExpr:                    "LambdaExpr",
	KindLambdaParameters:              "LambdaParameters",
	KindLiteral:                       "Literal",
	KindIdentifier:                    "Identifier",
	KindQualifiedName:                 "QualifiedName",
	KindThis:                          "This",
	KindSuper:                         "Super",
	KindClassLiteral:                  "ClassLiteral",
	KindSwitchExpr:                    "SwitchExpr",
}

func (k NodeKind) String() string {
	if k >= 0 && k < kindCount {
		return nodeKindNames[k]
	}
	return "Unknown"
}

// IsExpression reports whether nodes of kind k can be parenthesized.
func (k NodeKind) IsExpression() bool {
	switch k {
	case KindAssignExpr, KindTernaryExpr, KindBinaryExpr, KindUnaryExpr,
		KindPostfixExpr, KindCastExpr, KindInstanceofExpr, KindCallExpr,
		KindMethodRef, KindFieldAccess, KindArrayAccess, KindNewExpr,
		KindNewArrayExpr, KindLambdaExpr, KindLiteral, KindIdentifier,
		KindThis, KindSuper, KindClassLiteral, KindSwitchExpr:
		return true
	}
	return false
}

// RequiresChildren reports whether a node of kind k always has at least
// one child.
func (k NodeKind) RequiresChildren() bool {
	switch k {
	case KindMemberList, KindQualifiedName, KindTypeArguments, KindTypeParameters,
		KindThrowsList, KindExtendsClause, KindImplementsClause, KindPermitsClause,
		KindUnionType, KindIntersectionType, KindResourceList, KindAnnotation,
		KindMemberValuePair, KindVariableDeclarator, KindLambdaExpr:
		return true
	}
	return false
}

// IsAccessNode reports whether nodes of kind k carry a Modifiers child.
func (k NodeKind) IsAccessNode() bool {
	switch k {
	case KindClassDecl, KindInterfaceDecl, KindEnumDecl, KindRecordDecl,
		KindAnnotationDecl, KindFieldDecl, KindMethodDecl, KindConstructorDecl,
		KindEnumConstant, KindLocalVarDecl, KindParameter:
		return true
	}
	return false
}

// IsTypeDecl reports whether k declares a class-like type.
func (k NodeKind) IsTypeDecl() bool {
	switch k {
	case KindClassDecl, KindInterfaceDecl, KindEnumDecl, KindRecordDecl, KindAnnotationDecl:
		return true
	}
	return false
}

// Flags hold boolean attributes that only some kinds use.
type Flags uint16

const (
	// FlagShorthand marks a member value written without its name.
	FlagShorthand Flags = 1 << iota
	// FlagSwitchRule marks "case ... ->" labels and cases.
	FlagSwitchRule
	FlagVarargs
	// FlagStatic marks static imports, static initializers and
	// "requires static".
	FlagStatic
	// FlagOnDemand marks ".*" imports.
	FlagOnDemand
	// FlagCompact marks compact record constructors.
	FlagCompact
	// FlagDefault marks a "default" switch label.
	FlagDefault
	FlagOpen
	FlagTransitive
	// FlagDiamond marks a class instance creation type written with "<>".
	FlagDiamond
)

func (f Flags) Has(flag Flags) bool { return f&flag != 0 }

// Node is a syntax tree node. Children are in source order. Parent is a
// back-reference for navigation and is never serialized or compared.
type Node struct {
	Kind     NodeKind
	Span     Span
	Children []*Node
	Parent   *Node
	Token    *Token
	Flags    Flags

	// ParenDepth counts the parentheses wrapped directly around an
	// expression.
	ParenDepth int

	// Dims counts array brackets written after a declarator name, as in
	// "int x[]" or "int m()[]".
	Dims int

	// Explicit and Effective are only set on KindModifiers nodes.
	Explicit  Modifier
	Effective Modifier
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		child.Parent = n
		n.Children = append(n.Children, child)
	}
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

func (n *Node) TokenLiteral() string {
	if n.Token != nil {
		return n.Token.Literal
	}
	return ""
}

// Name returns the literal of the first Identifier child, which for
// declarations is the declared name.
func (n *Node) Name() string {
	if id := n.FirstChildOfKind(KindIdentifier); id != nil {
		return id.TokenLiteral()
	}
	return ""
}

// Modifiers returns the Modifiers child of an access node, or nil.
func (n *Node) Modifiers() *Node {
	return n.FirstChildOfKind(KindModifiers)
}

// IsParenthesized reports whether the expression was written inside at
// least one pair of parentheses.
func (n *Node) IsParenthesized() bool {
	return n.ParenDepth > 0
}

// Root follows parent links to the top of the tree.
func (n *Node) Root() *Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// Index returns n's position among its parent's children, or -1.
func (n *Node) Index() int {
	if n.Parent == nil {
		return -1
	}
	for i, c := range n.Parent.Children {
		if c == n {
			return i
		}
	}
	return -1
}

// Ancestor returns the closest enclosing node of the given kind.
func (n *Node) Ancestor(kind NodeKind) *Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Kind == kind {
			return p
		}
	}
	return nil
}

func (n *Node) String() string {
	var sb strings.Builder
	n.writeTree(&sb, 0, false)
	return sb.String()
}

func (n *Node) StringWithPositions() string {
	var sb strings.Builder
	n.writeTree(&sb, 0, true)
	return sb.String()
}

func (n *Node) writeTree(sb *strings.Builder, indent int, showPositions bool) {
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(n.Kind.String())
	if showPositions {
		sb.WriteString(" [" + n.Span.Start.String() + "-" + n.Span.End.String() + "]")
	}
	if n.Token != nil {
		sb.WriteString(" " + n.Token.Literal)
	}
	for _, attr := range n.Attributes() {
		if attr.Name == "token" {
			continue
		}
		sb.WriteString(" " + attr.Name + "=" + attr.Value)
	}
	sb.WriteString("\n")
	for _, child := range n.Children {
		child.writeTree(sb, indent+1, showPositions)
	}
}
