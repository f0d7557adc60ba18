package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/javafront/java/parser"
	"github.com/dhamidi/javafront/java/parser/parsertest"
	"github.com/dhamidi/javafront/java/version"
)

var (
	compilationUnit = parser.CompilationUnitContext{}
	typeDecl        = parser.TypeDeclarationContext{}
	bodyDecl        = parser.BodyDeclarationContext{}
	statement       = parser.StatementContext{}
	expression      = parser.ExpressionContext{}
	typeUse         = parser.TypeContext{}
)

// Each snippet uses one gated production and nothing newer, so it must
// parse exactly on the levels where that production is legal.
func TestProductionGating(t *testing.T) {
	tests := []struct {
		prod parser.Production
		ctx  parser.Context
		src  string
	}{
		{parser.ProdAssert, statement, "assert !done;"},
		{parser.ProdAnnotations, typeDecl, "@Deprecated class A {}"},
		{parser.ProdAnnotations, typeDecl, "@interface A { int value() default 1; }"},
		{parser.ProdGenerics, typeUse, "java.util.List<String>"},
		{parser.ProdGenerics, typeDecl, "class Box<T extends Comparable<T>> {}"},
		{parser.ProdEnums, typeDecl, "enum Color { RED, GREEN }"},
		{parser.ProdVarargs, bodyDecl, "void m(String... args) {}"},
		{parser.ProdEnhancedFor, statement, "for (Object o : items) {}"},
		{parser.ProdStaticImport, compilationUnit, "import static java.lang.Math.max;"},
		{parser.ProdHexFloatLiterals, expression, "0x1.8p1"},
		{parser.ProdDiamond, expression, "new ArrayList<>()"},
		{parser.ProdTryWithResources, statement, "try (InputStream in = open()) {}"},
		{parser.ProdMultiCatch, statement, "try {} catch (IOException | RuntimeException e) {}"},
		{parser.ProdBinaryLiterals, expression, "0b101"},
		{parser.ProdUnderscoresInNumbers, expression, "1_000_000"},
		{parser.ProdLambdas, expression, "x -> x"},
		{parser.ProdMethodReferences, expression, "String::valueOf"},
		{parser.ProdDefaultMethods, typeDecl, "interface I { default void m() {} }"},
		{parser.ProdStaticInterfaceMethods, typeDecl, "interface I { static void m() {} }"},
		{parser.ProdTypeAnnotations, typeUse, "@NonNull String"},
		{parser.ProdReceiverParameters, bodyDecl, "void m(Outer this) {}"},
		{parser.ProdModules, compilationUnit, "module com.example { requires java.base; }"},
		{parser.ProdPrivateInterfaceMethods, typeDecl, "interface I { private void m() {} }"},
		{parser.ProdEffectivelyFinalResources, statement, "try (in) {}"},
		{parser.ProdSwitchRules, statement, "switch (x) { case 1 -> {} }"},
		{parser.ProdSwitchExpressions, expression, "switch (x) { default -> 1; }"},
		{parser.ProdMultipleCaseLabels, statement, "switch (x) { case 1, 2: break; }"},
		{parser.ProdYield, statement, "yield 1;"},
		{parser.ProdTextBlocks, expression, "\"\"\"\n  text\n  \"\"\""},
		{parser.ProdPatternInstanceof, expression, "o instanceof String s"},
		{parser.ProdRecords, typeDecl, "record Point(int x, int y) {}"},
		{parser.ProdLocalTypes, statement, "interface Local {}"},
		{parser.ProdSealed, typeDecl, "sealed interface Shape permits Circle {}"},
		{parser.ProdSealed, typeDecl, "non-sealed class Circle implements Shape {}"},
		{parser.ProdSwitchPatterns, statement, "switch (o) { case String s: break; default: break; }"},
		{parser.ProdRecordPatterns, expression, "o instanceof Point(int x, int y)"},
	}

	for _, tt := range tests {
		t.Run(tt.prod.String()+"/"+tt.src, func(t *testing.T) {
			legal := tt.prod.Versions()
			require.False(t, legal.Empty())
			parsertest.ParsesIn(t, tt.ctx, legal.Versions(), tt.src)
			parsertest.FailsIn(t, tt.ctx, legal.Complement().Versions(), tt.src)
		})
	}
}

// Before Java 10 "var" is an ordinary type name, so "(var x) -> x" is a
// lambda with an explicitly typed parameter wherever lambdas exist.
func TestVarLambdaParameters(t *testing.T) {
	const src = "(var x) -> x"
	parsertest.ParsesIn(t, expression, version.SinceSet(version.J1_8).Without(version.J10).Versions(), src)
	parsertest.FailsIn(t, expression, parsertest.Before(version.J1_8), src)

	err := parsertest.MustFail(t, expression, version.J10, src)
	assert.Equal(t, "'var' lambda parameters not supported in java 10 (legal in 11..21)", err.Message)
}

func TestUnsupportedProductionMessages(t *testing.T) {
	tests := []struct {
		ctx     parser.Context
		v       version.Version
		src     string
		message string
	}{
		{expression, version.J1_7, "x -> x", "lambda expressions not supported in java 1.7 (legal in 1.8..21)"},
		{statement, version.J13, "switch (x) { case 1 -> {} }", "switch rules not supported in java 13 (legal in 12-preview, 13-preview..21)"},
		{typeDecl, version.J15, "record R() {}", "records not supported in java 15 (legal in 16..21)"},
		{typeDecl, version.J1_4, "enum E { A }", "enums not supported in java 1.4 (legal in 1.5..21)"},
		{statement, version.J1_3, "assert !ok;", "assert statements not supported in java 1.3 (legal in 1.4..21)"},
		{compilationUnit, version.J1_8, "module m {}", "module declarations not supported in java 1.8 (legal in 9..21)"},
		{expression, version.J17, "o instanceof Point(int x)", "record patterns not supported in java 17 (legal in 21)"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			err := parsertest.MustFail(t, tt.ctx, tt.v, tt.src)
			assert.Equal(t, tt.message, err.Message)
		})
	}
}

func TestVarIsATypeNameBeforeJava10(t *testing.T) {
	const src = "var x = 1;"

	old := parsertest.MustParse(t, statement, version.J9, src)
	typ := old.FirstChildOfKind(parser.KindType)
	require.NotNil(t, typ)
	assert.Equal(t, "var", typ.Children[0].QualifiedName())

	for _, node := range parsertest.ParsesIn(t, statement, parsertest.Since(version.J10), src) {
		typ := node.FirstChildOfKind(parser.KindType)
		require.NotNil(t, typ)
		require.NotNil(t, typ.Token)
		assert.Equal(t, parser.TokenVar, typ.Token.Kind)
	}
}

func TestContextualKeywordsStayIdentifiers(t *testing.T) {
	tests := []struct {
		ctx parser.Context
		src string
	}{
		{statement, "int record = 1;"},
		{statement, "yield = 2;"},
		{statement, "String permits, sealed, when;"},
		{expression, "module.open(exports)"},
		{bodyDecl, "void var() {}"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			parsertest.ParsesIn(t, tt.ctx, version.Versions(), tt.src)
		})
	}
}

func TestFeaturesFor(t *testing.T) {
	f := parser.FeaturesFor(version.J1_4)
	assert.Equal(t, version.J1_4, f.Version())
	assert.True(t, f.Allows(parser.ProdAssert))
	assert.False(t, f.Allows(parser.ProdAnnotations))
	assert.Equal(t, []parser.Production{parser.ProdAssert}, f.Enabled())

	assert.Len(t, parser.FeaturesFor(version.Latest).Enabled(), len(parser.Productions()))
	assert.False(t, parser.FeaturesFor(version.J13).Allows(parser.ProdYield))
	assert.True(t, parser.FeaturesFor(version.J13Preview).Allows(parser.ProdYield))
}
