package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/javafront/java/parser"
	"github.com/dhamidi/javafront/java/parser/parsertest"
	"github.com/dhamidi/javafront/java/version"
)

var annotation = parser.AnnotationContext{}

func TestAnnotationsFailBeforeJava5(t *testing.T) {
	for _, src := range []string{"@F", "@F(a=1)"} {
		t.Run(src, func(t *testing.T) {
			parsertest.FailsIn(t, annotation, parsertest.Before(version.J1_5), src)
		})
	}

	err := parsertest.MustFail(t, annotation, version.J1_4, "@F")
	assert.Contains(t, err.Message, "annotations not supported in java 1.4")
	assert.Equal(t, 1, err.Pos.Line)
	assert.Equal(t, 1, err.Pos.Column)
}

func TestMarkerAnnotation(t *testing.T) {
	for _, node := range parsertest.ParsesIn(t, annotation, parsertest.Since(version.J1_5), "@F") {
		assert.Equal(t, parser.KindAnnotation, node.Kind)
		assert.Equal(t, "F", node.AnnotationName())
		assert.Equal(t, "F", node.SimpleName())
		assert.True(t, node.IsMarker())
		assert.Nil(t, node.MemberList())
		assert.Nil(t, node.Parent)
	}
}

func TestEmptyParenthesesAreAMarker(t *testing.T) {
	node := parsertest.MustParse(t, annotation, version.Latest, "@F()")
	assert.True(t, node.IsMarker())
}

func TestQualifiedAnnotationName(t *testing.T) {
	node := parsertest.MustParse(t, annotation, version.J1_5, "@java.lang.Override")
	assert.Equal(t, "java.lang.Override", node.AnnotationName())
	assert.Equal(t, "Override", node.SimpleName())

	node = parsertest.MustParse(t, annotation, version.Latest, "@org.pkg.F(1)")
	assert.Equal(t, "F", node.SimpleName())
}

func TestShorthandAnnotation(t *testing.T) {
	for _, node := range parsertest.ParsesIn(t, annotation, parsertest.Since(version.J1_5), `@F("x")`) {
		members := node.MemberList()
		require.NotNil(t, members)
		require.Len(t, members.Children, 1)

		pair := members.Children[0]
		assert.True(t, pair.IsShorthand())
		assert.Equal(t, "value", pair.MemberName())
		value := pair.Value()
		assert.True(t, value.IsStringLiteral())
		assert.Equal(t, `"x"`, value.TokenLiteral())
	}
}

func TestNamedPairAnnotation(t *testing.T) {
	node := parsertest.MustParse(t, annotation, version.J1_5, `@F(a="x")`)
	members := node.MemberList()
	require.NotNil(t, members)
	require.Len(t, members.Children, 1)

	pair := members.Children[0]
	assert.False(t, pair.IsShorthand())
	assert.Equal(t, "a", pair.MemberName())
	assert.True(t, pair.Value().IsStringLiteral())
}

func TestNamedPairsKeepOrderAndDuplicates(t *testing.T) {
	node := parsertest.MustParse(t, annotation, version.Latest, `@F(b=1, a=2, b=3)`)
	var names []string
	for _, pair := range node.MemberList().Children {
		assert.False(t, pair.IsShorthand())
		names = append(names, pair.MemberName())
	}
	assert.Equal(t, []string{"b", "a", "b"}, names)
}

func TestMemberValues(t *testing.T) {
	tests := []struct {
		src  string
		kind parser.NodeKind
	}{
		{`@F(1)`, parser.KindLiteral},
		{`@F('c')`, parser.KindLiteral},
		{`@F(true)`, parser.KindLiteral},
		{`@F(Foo.BAR)`, parser.KindFieldAccess},
		{`@F(BAR)`, parser.KindIdentifier},
		{`@F(String.class)`, parser.KindClassLiteral},
		{`@F(1 + 2)`, parser.KindBinaryExpr},
		{`@F(-1)`, parser.KindUnaryExpr},
		{`@F(a ? 1 : 2)`, parser.KindTernaryExpr},
		{`@F({})`, parser.KindMemberValueArray},
		{`@F(@G)`, parser.KindAnnotation},
		{`@F(value=@G(1))`, parser.KindAnnotation},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			node := parsertest.MustParse(t, annotation, version.Latest, tt.src)
			assert.Equal(t, tt.kind, node.MemberList().Children[0].Value().Kind)
		})
	}
}

func TestNestedAnnotationArrays(t *testing.T) {
	const src = `@T({@A({}), @B(value={"s1","s2",})})`
	for _, node := range parsertest.ParsesIn(t, annotation, parsertest.Since(version.J1_5), src) {
		outer := node.MemberList().Children[0]
		require.True(t, outer.IsShorthand())

		array := outer.Value()
		require.Equal(t, parser.KindMemberValueArray, array.Kind)
		require.Len(t, array.Children, 2)

		a := array.Children[0]
		assert.Equal(t, "A", a.AnnotationName())
		inner := a.MemberList().Children[0].Value()
		assert.Equal(t, parser.KindMemberValueArray, inner.Kind)
		assert.Empty(t, inner.Children)

		b := array.Children[1]
		pair := b.MemberList().Children[0]
		assert.False(t, pair.IsShorthand())
		assert.Equal(t, "value", pair.MemberName())
		values := pair.Value()
		require.Len(t, values.Children, 2)
		assert.Equal(t, `"s1"`, values.Children[0].TokenLiteral())
		assert.Equal(t, `"s2"`, values.Children[1].TokenLiteral())
	}
}

func TestDeeplyNestedArrays(t *testing.T) {
	src := "@F("
	const depth = 200
	for i := 0; i < depth; i++ {
		src += "{"
	}
	src += "1"
	for i := 0; i < depth; i++ {
		src += "}"
	}
	src += ")"

	node := parsertest.MustParse(t, annotation, version.Latest, src)
	levels := 0
	for v := node.MemberList().Children[0].Value(); v.Kind == parser.KindMemberValueArray; v = v.Children[0] {
		levels++
	}
	assert.Equal(t, depth, levels)
}

func TestTrailingCommaInMemberArray(t *testing.T) {
	with := parsertest.MustParse(t, annotation, version.Latest, `@F({1, 2,})`)
	without := parsertest.MustParse(t, annotation, version.Latest, `@F({1, 2})`)
	assert.True(t, parser.Equal(with, without), parser.Diff(with, without))

	lone := parsertest.MustParse(t, annotation, version.Latest, `@F({,})`)
	assert.Empty(t, lone.MemberList().Children[0].Value().Children)
}

func TestMalformedAnnotations(t *testing.T) {
	tests := []struct {
		src     string
		message string
	}{
		{`@`, "expected identifier, found"},
		{`@F(`, "illegal start of expression"},
		{`@F(a=)`, "illegal start of expression"},
		{`@F(a=1,)`, "expected identifier, found ')'"},
		{`@F(1, 2)`, "expected ')', found ','"},
		{`@F({1 2})`, "expected '}', found"},
		{`@F @G`, "expected a single annotation"},
		{`public @F`, "expected a single annotation"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			err := parsertest.MustFail(t, annotation, version.Latest, tt.src)
			assert.Contains(t, err.Message, tt.message)
		})
	}
}

func TestAnnotationInvariants(t *testing.T) {
	srcs := []string{
		`@F`,
		`@F("x")`,
		`@F(a=1, b={@G, @H(x=2)})`,
		`@T({@A({}), @B(value={"s1","s2",})})`,
	}
	for _, src := range srcs {
		node := parsertest.MustParse(t, annotation, version.Latest, src)
		parser.Walk(node, func(n *parser.Node) bool {
			if n.Kind == parser.KindMemberList {
				assert.NotEmpty(t, n.Children)
				shorthand := 0
				for _, pair := range n.Children {
					if pair.IsShorthand() {
						shorthand++
					}
				}
				if shorthand > 0 {
					assert.Equal(t, 1, len(n.Children), src)
				}
			}
			return true
		})
	}
}
