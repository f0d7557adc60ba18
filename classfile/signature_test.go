package classfile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/javafront/classfile"
)

func TestParseClassSignature(t *testing.T) {
	tests := []struct {
		sig  string
		want classfile.ClassSignature
	}{
		{
			"<T:Ljava/lang/Object;>Ljava/lang/Object;",
			classfile.ClassSignature{TypeParameters: []string{"T"}, Super: "java.lang.Object"},
		},
		{
			"<K:Ljava/lang/Object;V:Ljava/lang/Object;>Ljava/util/AbstractMap<TK;TV;>;Ljava/util/Map<TK;TV;>;Ljava/io/Serializable;",
			classfile.ClassSignature{
				TypeParameters: []string{"K", "V"},
				Super:          "java.util.AbstractMap",
				Interfaces:     []string{"java.util.Map", "java.io.Serializable"},
			},
		},
		{
			"<E::Ljava/lang/Comparable<-TE;>;>Ljava/lang/Object;",
			classfile.ClassSignature{TypeParameters: []string{"E"}, Super: "java.lang.Object"},
		},
		{
			"<T:Ljava/lang/Number;:Ljava/io/Serializable;:Ljava/lang/Comparable<TT;>;>Ljava/lang/Object;",
			classfile.ClassSignature{TypeParameters: []string{"T"}, Super: "java.lang.Object"},
		},
		{
			"Ljava/util/ArrayList<Ljava/lang/String;>;Ljava/util/List<*>;",
			classfile.ClassSignature{Super: "java.util.ArrayList", Interfaces: []string{"java.util.List"}},
		},
		{
			"<T:[Ljava/lang/Object;U:TT;A:[[I>Lp/Outer<TT;>.Inner<+TU;>;",
			classfile.ClassSignature{TypeParameters: []string{"T", "U", "A"}, Super: "p.Outer$Inner"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.sig, func(t *testing.T) {
			got, err := classfile.ParseClassSignature(tt.sig)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestParseClassSignatureErrors(t *testing.T) {
	tests := []struct {
		sig     string
		message string
	}{
		{"", `malformed signature "": expected 'L' at offset 0`},
		{"<>Ljava/lang/Object;", `malformed signature "<>Ljava/lang/Object;": expected a type parameter at offset 2`},
		{"<T>Ljava/lang/Object;", `malformed signature "<T>Ljava/lang/Object;": expected ':' at offset 2`},
		{"Ljava/lang/Object", `malformed signature "Ljava/lang/Object": expected ';' at offset 17`},
		{"<T:Ljava/lang/Object;>", `malformed signature "<T:Ljava/lang/Object;>": expected 'L' at offset 22`},
		{"Ljava/lang/Object;X", `malformed signature "Ljava/lang/Object;X": expected 'L' at offset 18`},
		{"Ljava/util/List<>;", `malformed signature "Ljava/util/List<>;": expected a type argument at offset 16`},
		{"<T:Q>Ljava/lang/Object;", `malformed signature "<T:Q>Ljava/lang/Object;": expected a reference type at offset 3`},
	}

	for _, tt := range tests {
		t.Run(tt.sig, func(t *testing.T) {
			_, err := classfile.ParseClassSignature(tt.sig)
			require.ErrorIs(t, err, classfile.ErrMalformedSignature)
			assert.EqualError(t, err, tt.message)
		})
	}
}
