package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/javafront/java/version"
)

func mustParse(t *testing.T, src string, ctx Context) *Node {
	t.Helper()
	node, err := Parse(src, version.Latest, ctx)
	require.NoError(t, err, "source:\n%s", src)
	require.NoError(t, Validate(node))
	return node
}

func kinds(nodes []*Node) []NodeKind {
	out := make([]NodeKind, len(nodes))
	for i, n := range nodes {
		out[i] = n.Kind
	}
	return out
}

func TestParseExpression(t *testing.T) {
	tests := []struct {
		input string
		kind  NodeKind
		check func(t *testing.T, n *Node)
	}{
		{"42", KindLiteral, func(t *testing.T, n *Node) {
			assert.True(t, n.IsNumericLiteral())
		}},
		{"x", KindIdentifier, nil},
		{"x + y * z", KindBinaryExpr, func(t *testing.T, n *Node) {
			assert.Equal(t, "+", n.Operator())
			assert.Equal(t, "*", n.Children[1].Operator())
		}},
		{"a - b - c", KindBinaryExpr, func(t *testing.T, n *Node) {
			assert.Equal(t, KindBinaryExpr, n.Children[0].Kind)
			assert.Equal(t, KindIdentifier, n.Children[1].Kind)
		}},
		{"a || b && c", KindBinaryExpr, func(t *testing.T, n *Node) {
			assert.Equal(t, "||", n.Operator())
			assert.Equal(t, "&&", n.Children[1].Operator())
		}},
		{"i >> 2 < n", KindBinaryExpr, func(t *testing.T, n *Node) {
			assert.Equal(t, "<", n.Operator())
			assert.Equal(t, ">>", n.Children[0].Operator())
		}},
		{"-x", KindUnaryExpr, func(t *testing.T, n *Node) {
			assert.Equal(t, "-", n.Operator())
		}},
		{"!done", KindUnaryExpr, nil},
		{"x++", KindPostfixExpr, func(t *testing.T, n *Node) {
			assert.Equal(t, "++", n.Operator())
		}},
		{"a ? b : c", KindTernaryExpr, func(t *testing.T, n *Node) {
			assert.Len(t, n.Children, 3)
		}},
		{"x = y = 1", KindAssignExpr, func(t *testing.T, n *Node) {
			assert.Equal(t, KindAssignExpr, n.Children[1].Kind)
		}},
		{"x += 1", KindAssignExpr, func(t *testing.T, n *Node) {
			assert.Equal(t, "+=", n.Operator())
		}},
		{"(x)", KindIdentifier, func(t *testing.T, n *Node) {
			assert.Equal(t, 1, n.ParenDepth)
			assert.True(t, n.IsParenthesized())
		}},
		{"((x + 1))", KindBinaryExpr, func(t *testing.T, n *Node) {
			assert.Equal(t, 2, n.ParenDepth)
			assert.Equal(t, 0, n.Children[0].ParenDepth)
		}},
		{"obj.field", KindFieldAccess, nil},
		{"a.b.c", KindFieldAccess, func(t *testing.T, n *Node) {
			assert.Equal(t, KindFieldAccess, n.Children[0].Kind)
			assert.Equal(t, "c", n.Children[1].TokenLiteral())
		}},
		{"obj.method(1, 2)", KindCallExpr, func(t *testing.T, n *Node) {
			assert.Equal(t, KindFieldAccess, n.Children[0].Kind)
			assert.Len(t, n.Children[1].Children, 2)
		}},
		{"foo()", KindCallExpr, nil},
		{"this.<T>foo()", KindCallExpr, func(t *testing.T, n *Node) {
			callee := n.Children[0]
			assert.Equal(t, []NodeKind{KindThis, KindTypeArguments, KindIdentifier}, kinds(callee.Children))
		}},
		{"a[0][1]", KindArrayAccess, func(t *testing.T, n *Node) {
			assert.Equal(t, KindArrayAccess, n.Children[0].Kind)
		}},
		{"(String) o", KindCastExpr, func(t *testing.T, n *Node) {
			assert.Equal(t, []NodeKind{KindType, KindIdentifier}, kinds(n.Children))
		}},
		{"(int) -1", KindCastExpr, func(t *testing.T, n *Node) {
			assert.Equal(t, KindUnaryExpr, n.Children[1].Kind)
		}},
		{"(a) - 1", KindBinaryExpr, nil},
		{"(List<String>) (Object) x", KindCastExpr, func(t *testing.T, n *Node) {
			assert.Equal(t, KindCastExpr, n.Children[1].Kind)
		}},
		{"(Runnable & java.io.Serializable) () -> {}", KindCastExpr, func(t *testing.T, n *Node) {
			assert.Equal(t, []NodeKind{KindIntersectionType, KindLambdaExpr}, kinds(n.Children))
		}},
		{"x -> x + 1", KindLambdaExpr, func(t *testing.T, n *Node) {
			assert.Equal(t, []NodeKind{KindIdentifier}, kinds(n.Children[0].Children))
		}},
		{"(a, b) -> a", KindLambdaExpr, func(t *testing.T, n *Node) {
			assert.Equal(t, []NodeKind{KindIdentifier, KindIdentifier}, kinds(n.Children[0].Children))
		}},
		{"(int a, final int b) -> { return a; }", KindLambdaExpr, func(t *testing.T, n *Node) {
			assert.Equal(t, []NodeKind{KindParameter, KindParameter}, kinds(n.Children[0].Children))
			assert.Equal(t, KindBlock, n.Children[1].Kind)
		}},
		{"(var a) -> a", KindLambdaExpr, nil},
		{"String::valueOf", KindMethodRef, func(t *testing.T, n *Node) {
			assert.Equal(t, "valueOf", n.TokenLiteral())
		}},
		{"int[]::new", KindMethodRef, func(t *testing.T, n *Node) {
			assert.Equal(t, "new", n.TokenLiteral())
			assert.Equal(t, KindArrayType, n.Children[0].Kind)
		}},
		{"List<String>::size", KindMethodRef, func(t *testing.T, n *Node) {
			assert.Equal(t, KindType, n.Children[0].Kind)
		}},
		{"super::toString", KindMethodRef, nil},
		{"String.class", KindClassLiteral, nil},
		{"java.lang.String[].class", KindClassLiteral, func(t *testing.T, n *Node) {
			arr := n.Children[0]
			require.Equal(t, KindArrayType, arr.Kind)
			assert.Equal(t, "java.lang.String", arr.Children[0].Children[0].QualifiedName())
		}},
		{"void.class", KindClassLiteral, nil},
		{"int.class", KindClassLiteral, nil},
		{"new Foo()", KindNewExpr, nil},
		{"new java.util.ArrayList<>()", KindNewExpr, func(t *testing.T, n *Node) {
			assert.True(t, n.Children[0].Flags.Has(FlagDiamond))
		}},
		{"new Object() { public String toString() { return \"\"; } }", KindNewExpr, func(t *testing.T, n *Node) {
			assert.Equal(t, []NodeKind{KindType, KindArguments, KindClassBody}, kinds(n.Children))
		}},
		{"outer.new Inner()", KindNewExpr, func(t *testing.T, n *Node) {
			assert.Equal(t, KindIdentifier, n.Children[0].Kind)
		}},
		{"new int[3][]", KindNewArrayExpr, func(t *testing.T, n *Node) {
			assert.Equal(t, []NodeKind{KindArrayType, KindArrayDims}, kinds(n.Children))
		}},
		{"new int[] {1, 2,}", KindNewArrayExpr, func(t *testing.T, n *Node) {
			assert.Equal(t, []NodeKind{KindArrayType, KindArrayInit}, kinds(n.Children))
			assert.Len(t, n.Children[1].Children, 2)
		}},
		{"x instanceof String", KindInstanceofExpr, func(t *testing.T, n *Node) {
			assert.Equal(t, KindType, n.Children[1].Kind)
		}},
		{"o instanceof String s && s.isEmpty()", KindBinaryExpr, func(t *testing.T, n *Node) {
			assert.Equal(t, KindTypePattern, n.Children[0].Children[1].Kind)
		}},
		{"o instanceof Point(int x, var y)", KindInstanceofExpr, func(t *testing.T, n *Node) {
			assert.Equal(t, KindRecordPattern, n.Children[1].Kind)
		}},
		{"switch (x) { case 1, 2 -> \"a\"; default -> { yield \"b\"; } }", KindSwitchExpr, func(t *testing.T, n *Node) {
			cases := n.ChildrenOfKind(KindSwitchCase)
			require.Len(t, cases, 2)
			assert.True(t, cases[0].Flags.Has(FlagSwitchRule))
			assert.Len(t, cases[0].Children[0].Children, 2)
			assert.True(t, cases[1].Children[0].Flags.Has(FlagDefault))
		}},
		{"\"\"\"\n  hi\n  \"\"\"", KindLiteral, func(t *testing.T, n *Node) {
			assert.True(t, n.IsTextBlock())
			assert.True(t, n.IsStringLiteral())
		}},
		{"0b1010_1010", KindLiteral, nil},
		{"'c'", KindLiteral, func(t *testing.T, n *Node) {
			assert.True(t, n.IsCharLiteral())
		}},
		{"null", KindLiteral, func(t *testing.T, n *Node) {
			assert.True(t, n.IsNullLiteral())
		}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node := mustParse(t, tt.input, ExpressionContext{})
			assert.Equal(t, tt.kind, node.Kind, "tree:\n%s", node)
			if tt.check != nil && node.Kind == tt.kind {
				tt.check(t, node)
			}
		})
	}
}

func TestParseStatement(t *testing.T) {
	tests := []struct {
		input string
		kind  NodeKind
		check func(t *testing.T, n *Node)
	}{
		{"int x = 1, y[] = {2};", KindLocalVarDecl, func(t *testing.T, n *Node) {
			decls := n.ChildrenOfKind(KindVariableDeclarator)
			require.Len(t, decls, 2)
			assert.Equal(t, 1, decls[1].Dims)
			assert.Equal(t, KindArrayInit, decls[1].Children[1].Kind)
		}},
		{"var list = new ArrayList<String>();", KindLocalVarDecl, func(t *testing.T, n *Node) {
			assert.Equal(t, "var", n.Children[1].TokenLiteral())
		}},
		{"Map<String, List<Integer>> m = null;", KindLocalVarDecl, nil},
		{"final @Deprecated String s;", KindLocalVarDecl, func(t *testing.T, n *Node) {
			mods := n.Modifiers()
			assert.Equal(t, ModFinal, mods.Explicit)
			assert.Len(t, mods.Children, 1)
		}},
		{"foo(1);", KindExprStmt, nil},
		{"i++;", KindExprStmt, nil},
		{"a.b.c = d;", KindExprStmt, nil},
		{";", KindEmptyStmt, nil},
		{"if (a) b(); else { c(); }", KindIfStmt, func(t *testing.T, n *Node) {
			assert.Len(t, n.Children, 3)
		}},
		{"for (int i = 0, j = 1; i < n; i++, j--) {}", KindForStmt, func(t *testing.T, n *Node) {
			assert.Equal(t, []NodeKind{KindForInit, KindBinaryExpr, KindForUpdate, KindBlock}, kinds(n.Children))
			assert.Len(t, n.Children[2].Children, 2)
		}},
		{"for (;;) break;", KindForStmt, func(t *testing.T, n *Node) {
			assert.Equal(t, []NodeKind{KindForInit, KindForUpdate, KindBreakStmt}, kinds(n.Children))
		}},
		{"for (final String s : list) use(s);", KindEnhancedForStmt, func(t *testing.T, n *Node) {
			assert.Equal(t, []NodeKind{KindLocalVarDecl, KindIdentifier, KindExprStmt}, kinds(n.Children))
		}},
		{"while (true) continue;", KindWhileStmt, nil},
		{"do { x--; } while (x > 0);", KindDoStmt, nil},
		{"switch (x) { case 1: case 2: a(); break; default: b(); }", KindSwitchStmt, func(t *testing.T, n *Node) {
			cases := n.ChildrenOfKind(KindSwitchCase)
			require.Len(t, cases, 2)
			assert.Equal(t, []NodeKind{KindSwitchLabel, KindSwitchLabel, KindExprStmt, KindBreakStmt}, kinds(cases[0].Children))
		}},
		{"switch (o) { case String s when s.isEmpty() -> a(); case null, default -> b(); }", KindSwitchStmt, func(t *testing.T, n *Node) {
			cases := n.ChildrenOfKind(KindSwitchCase)
			require.Len(t, cases, 2)
			label := cases[0].Children[0]
			assert.Equal(t, []NodeKind{KindTypePattern, KindGuard}, kinds(label.Children))
			assert.True(t, cases[1].Children[0].Flags.Has(FlagDefault))
		}},
		{"return;", KindReturnStmt, nil},
		{"return a + b;", KindReturnStmt, nil},
		{"throw new Error();", KindThrowStmt, nil},
		{"try (var in = open(); out) { } catch (IOException | RuntimeException e) { } finally { }", KindTryStmt, func(t *testing.T, n *Node) {
			assert.Equal(t, []NodeKind{KindResourceList, KindBlock, KindCatchClause, KindFinallyClause}, kinds(n.Children))
			param := n.Children[2].Children[0]
			assert.Equal(t, KindUnionType, param.Children[1].Kind)
		}},
		{"synchronized (lock) { }", KindSynchronizedStmt, nil},
		{"assert x : \"message\";", KindAssertStmt, nil},
		{"outer: for (;;) { break outer; }", KindLabeledStmt, nil},
		{"class Local { }", KindLocalClassDecl, nil},
		{"record Point(int x, int y) { }", KindLocalClassDecl, nil},
		{"yield = 3;", KindExprStmt, nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node := mustParse(t, tt.input, StatementContext{})
			assert.Equal(t, tt.kind, node.Kind, "tree:\n%s", node)
			if tt.check != nil && node.Kind == tt.kind {
				tt.check(t, node)
			}
		})
	}
}

func TestParseCompilationUnit(t *testing.T) {
	src := `package com.example;

import java.util.*;
import static java.lang.Math.max;

@SuppressWarnings("unchecked")
public final class Main<T extends Comparable<T> & Cloneable> extends Base implements Runnable {
    private static final int[] VALUES = {1, 2, 3};
    int legacy[];

    static { init(); }

    public Main(int x) throws Exception {
        super(x);
    }

    @Override
    public <R> R apply(java.util.function.Function<? super T, ? extends R> f) {
        return f.apply(null);
    }

    enum Color { RED, GREEN { }, BLUE; Color() {} }

    interface Shape { double area(); default String name() { return "shape"; } }
}
`
	root := mustParse(t, src, CompilationUnitContext{})
	require.Equal(t, KindCompilationUnit, root.Kind)
	assert.Equal(t, []NodeKind{KindPackageDecl, KindImportDecl, KindImportDecl, KindClassDecl}, kinds(root.Children))

	imports := root.ChildrenOfKind(KindImportDecl)
	assert.True(t, imports[0].Flags.Has(FlagOnDemand))
	assert.True(t, imports[1].Flags.Has(FlagStatic))

	class := root.Children[3]
	assert.Equal(t, "Main", class.Name())
	assert.Equal(t, []NodeKind{KindModifiers, KindIdentifier, KindTypeParameters, KindExtendsClause, KindImplementsClause, KindClassBody}, kinds(class.Children))

	bound := class.Children[2].Children[0].FirstChildOfKind(KindExtendsClause)
	require.NotNil(t, bound)
	assert.Len(t, bound.Children, 2)

	body := class.FirstChildOfKind(KindClassBody)
	assert.Equal(t, []NodeKind{
		KindFieldDecl, KindFieldDecl, KindInitializer, KindConstructorDecl,
		KindMethodDecl, KindEnumDecl, KindInterfaceDecl,
	}, kinds(body.Children))

	assert.Equal(t, 1, body.Children[1].ChildrenOfKind(KindVariableDeclarator)[0].Dims)

	ctor := body.Children[3]
	block := ctor.FirstChildOfKind(KindBlock)
	assert.Equal(t, KindExplicitConstructorInvocation, block.Children[0].Kind)
	assert.NotNil(t, ctor.FirstChildOfKind(KindThrowsList))

	enum := body.Children[5]
	constants := enum.FirstChildOfKind(KindClassBody).ChildrenOfKind(KindEnumConstant)
	assert.Len(t, constants, 3)
	assert.NotNil(t, constants[1].FirstChildOfKind(KindClassBody))
}

func TestParseModuleDeclaration(t *testing.T) {
	src := `@Deprecated
open module com.example.app {
    requires transitive java.sql;
    requires static lombok;
    exports com.example.api to com.example.client, com.example.test;
    opens com.example.internal;
    uses com.example.spi.Plugin;
    provides com.example.spi.Plugin with com.example.impl.DefaultPlugin;
}
`
	root := mustParse(t, src, CompilationUnitContext{})
	module := root.FirstChildOfKind(KindModuleDecl)
	require.NotNil(t, module)
	assert.True(t, module.Flags.Has(FlagOpen))
	assert.Equal(t, []NodeKind{
		KindAnnotation, KindQualifiedName,
		KindRequiresDirective, KindRequiresDirective, KindExportsDirective,
		KindOpensDirective, KindUsesDirective, KindProvidesDirective,
	}, kinds(module.Children))
	assert.True(t, module.Children[2].Flags.Has(FlagTransitive))
	assert.True(t, module.Children[3].Flags.Has(FlagStatic))
	assert.Len(t, module.Children[4].Children, 3)
}

func TestParseTypeDeclarations(t *testing.T) {
	tests := []struct {
		input string
		kind  NodeKind
	}{
		{"record Point(int x, int y) implements Shape { Point { if (x < 0) throw new IllegalArgumentException(); } }", KindRecordDecl},
		{"sealed interface Shape permits Circle, Square { }", KindInterfaceDecl},
		{"non-sealed class Square extends Shape { }", KindClassDecl},
		{"@interface Retry { int times() default 3; String[] on() default {}; }", KindAnnotationDecl},
		{"enum Empty { ; }", KindEnumDecl},
		{"class Generic<T> { <U> Generic(U u) { } }", KindClassDecl},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node := mustParse(t, tt.input, TypeDeclarationContext{})
			assert.Equal(t, tt.kind, node.Kind, "tree:\n%s", node)
		})
	}
}

func TestCompactConstructor(t *testing.T) {
	node := mustParse(t, "record R(int a) { R { } }", TypeDeclarationContext{})
	ctor := node.FirstChildOfKind(KindClassBody).Children[0]
	require.Equal(t, KindConstructorDecl, ctor.Kind)
	assert.True(t, ctor.Flags.Has(FlagCompact))
	assert.Nil(t, ctor.FirstChildOfKind(KindParameters))
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		ctx     Context
		message string
	}{
		{"missing semicolon", "int x = 1", StatementContext{}, "expected ';', found '}'"},
		{"not a statement", "a + b;", StatementContext{}, "not a statement"},
		{"parenthesized call statement", "(foo());", StatementContext{}, "not a statement"},
		{"assign to literal", "1 = 2", ExpressionContext{}, "unexpected type: required variable, found value"},
		{"two visibilities", "public private int x;", BodyDeclarationContext{}, "illegal combination of modifiers: public private"},
		{"repeated modifier", "static static int x;", BodyDeclarationContext{}, "repeated modifier 'static'"},
		{"final abstract", "final abstract class A {}", TypeDeclarationContext{}, "illegal combination of modifiers: abstract final"},
		{"try alone", "try { }", StatementContext{}, "'try' without 'catch', 'finally' or resource declarations"},
		{"array dims and init", "new int[1] {1}", ExpressionContext{}, "array creation with both dimension expression and initialization is illegal"},
		{"array without dims", "new int", ExpressionContext{}, "expected '[', found ';'"},
		{"class extends two", "class A extends B, C {}", TypeDeclarationContext{}, "a class can extend only one class"},
		{"mixed switch forms", "switch (x) { case 1 -> a(); case 2: b(); }", StatementContext{}, "different case kinds used in the switch"},
		{"bare super", "super", ExpressionContext{}, "expected '.', found ';'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := Parse(tt.input, version.Latest, tt.ctx)
			require.Error(t, err)
			assert.Nil(t, node)
			parseErr, ok := err.(*ParseError)
			require.True(t, ok, "got %T: %v", err, err)
			assert.Equal(t, tt.message, parseErr.Message)
			assert.Equal(t, tt.ctx.String(), parseErr.Context)
			assert.Equal(t, version.Latest, parseErr.Version)
		})
	}
}

func TestParseReportsFirstFailureOnly(t *testing.T) {
	_, err := Parse("class A { int x = ; int y = ; }", version.Latest, nil)
	require.Error(t, err)
	parseErr := err.(*ParseError)
	assert.Equal(t, 1, parseErr.Pos.Line)
	assert.Equal(t, 19, parseErr.Pos.Column)
	assert.Equal(t, "illegal start of expression: ';'", parseErr.Message)
}

func TestParseLexicalFailure(t *testing.T) {
	_, err := Parse(`String s = "unterminated;`, version.Latest, StatementContext{})
	require.Error(t, err)
	assert.True(t, IsLexical(err))
	lexErr := err.(*LexError)
	assert.Equal(t, Position{Offset: 11, Line: 1, Column: 12}, lexErr.Pos)
}

func TestNestedGenericsSplitShiftTokens(t *testing.T) {
	node := mustParse(t, "Map<String, List<Set<Integer>>> m;", StatementContext{})
	typ := node.Children[1]
	require.Equal(t, KindType, typ.Kind)
	args := typ.FirstChildOfKind(KindTypeArguments)
	require.Len(t, args.Children, 2)
	inner := args.Children[1].FirstChildOfKind(KindTypeArguments).Children[0]
	assert.Equal(t, "Set", inner.FirstChildOfKind(KindQualifiedName).QualifiedName())
}

func TestSpans(t *testing.T) {
	node := mustParse(t, "a  +\n  b", ExpressionContext{})
	assert.Equal(t, Position{Offset: 0, Line: 1, Column: 1}, node.Span.Start)
	assert.Equal(t, Position{Offset: 8, Line: 2, Column: 4}, node.Span.End)

	paren := mustParse(t, "(x)", ExpressionContext{})
	assert.Equal(t, 0, paren.Span.Start.Offset)
	assert.Equal(t, 3, paren.Span.End.Offset)
}
