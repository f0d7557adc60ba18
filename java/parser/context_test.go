package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/javafront/java/parser"
	"github.com/dhamidi/javafront/java/parser/parsertest"
	"github.com/dhamidi/javafront/java/version"
)

func TestContextUnwrap(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind parser.NodeKind
	}{
		{"compilation-unit", "package a; class A {}", parser.KindCompilationUnit},
		{"type-declaration", "public final class A {}", parser.KindClassDecl},
		{"type-declaration", "@interface Marker {}", parser.KindAnnotationDecl},
		{"body-declaration", "private int x = 1;", parser.KindFieldDecl},
		{"body-declaration", "void m() {}", parser.KindMethodDecl},
		{"body-declaration", "static {}", parser.KindInitializer},
		{"statement", "return 1;", parser.KindReturnStmt},
		{"statement", "int x = 1;", parser.KindLocalVarDecl},
		{"statement", "{ a(); b(); }", parser.KindBlock},
		{"expression", "a + b", parser.KindBinaryExpr},
		{"expression", "(a)", parser.KindIdentifier},
		{"type", "int[]", parser.KindArrayType},
		{"type", "java.util.Map<String, ? extends Number>", parser.KindType},
		{"annotation", "@A(1)", parser.KindAnnotation},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.src, func(t *testing.T) {
			ctx, err := parser.ContextByName(tt.name)
			require.NoError(t, err)

			node := parsertest.MustParse(t, ctx, version.Latest, tt.src)
			assert.Equal(t, tt.kind, node.Kind, "tree:\n%s", node)
			assert.Nil(t, node.Parent)
			assert.Empty(t, parser.Find(node, parser.KindError))
		})
	}
}

func TestContextPositionsAreRelativeToTheFragment(t *testing.T) {
	for name, ctx := range parser.Contexts {
		if name == "compilation-unit" || name == "type-declaration" || name == "annotation" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			src := map[string]string{
				"body-declaration": "int x;",
				"statement":        "x++;",
				"expression":       "x",
				"type":             "X",
			}[name]

			node := parsertest.MustParse(t, ctx, version.Latest, src)
			assert.Equal(t, parser.Position{Offset: 0, Line: 1, Column: 1}, node.Span.Start)
		})
	}
}

func TestContextFailurePositions(t *testing.T) {
	err := parsertest.MustFail(t, statement, version.Latest, "int x = 1\nint y;")
	assert.Equal(t, 2, err.Pos.Line)
	assert.Equal(t, 1, err.Pos.Column)
	assert.Equal(t, "expected ';', found 'int'", err.Message)

	_, lexErr := parser.Parse("x + 'ab", version.Latest, expression, parser.WithFile("Frag.java"))
	require.Error(t, lexErr)
	assert.True(t, parser.IsLexical(lexErr))
	assert.Equal(t, "Frag.java:1:5: lexical error: unterminated character literal", lexErr.Error())
}

func TestContextRejectsMoreThanOneItem(t *testing.T) {
	tests := []struct {
		ctx     parser.Context
		src     string
		message string
	}{
		{typeDecl, "class A {} class B {}", "expected a single type declaration"},
		{typeDecl, "", "expected a single type declaration"},
		{bodyDecl, "int x; int y;", "expected a single body declaration"},
		{statement, "a(); b();", "expected a single statement"},
		{statement, "", "expected a single statement"},
		{typeUse, "int x", "expected '.class', found identifier \"x\""},
		{annotation, "@A @B", "expected a single annotation"},
		{annotation, "", "expected a single annotation"},
	}

	for _, tt := range tests {
		t.Run(tt.ctx.String()+"/"+tt.src, func(t *testing.T) {
			err := parsertest.MustFail(t, tt.ctx, version.Latest, tt.src)
			assert.Equal(t, tt.message, err.Message)
		})
	}
}

func TestUnwrapFailureAtFragmentStart(t *testing.T) {
	err := parsertest.MustFail(t, bodyDecl, version.Latest, "int x; int y;")
	assert.Equal(t, parser.Position{Line: 1, Column: 1}, err.Pos)
	assert.Equal(t, "1:1: expected a single body declaration while parsing a body declaration (java 21)", err.Error())
}

func TestContextStrings(t *testing.T) {
	want := map[string]string{
		"compilation-unit": "a compilation unit",
		"type-declaration": "a type declaration",
		"body-declaration": "a body declaration",
		"statement":        "a statement",
		"expression":       "an expression",
		"type":             "a type",
		"annotation":       "an annotation",
	}
	require.Len(t, parser.Contexts, len(want))
	for name, desc := range want {
		ctx, err := parser.ContextByName(name)
		require.NoError(t, err)
		assert.Equal(t, desc, ctx.String())
	}

	_, err := parser.ContextByName("module")
	assert.EqualError(t, err, `unknown parsing context "module"`)
}

func TestContextWrap(t *testing.T) {
	for name, ctx := range parser.Contexts {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, ctx.Wrap("FRAGMENT"), "FRAGMENT")
		})
	}
	assert.Equal(t, "class A {}", parser.CompilationUnitContext{}.Wrap("class A {}"))
}
