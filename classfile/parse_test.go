package classfile_test

import (
	"bytes"
	"errors"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/javafront/classfile"
	"github.com/dhamidi/javafront/classfile/classfiletest"
)

func parse(t *testing.T, b *classfiletest.Builder) *classfile.ClassFile {
	t.Helper()
	cf, err := classfile.Parse(bytes.NewReader(b.Bytes()))
	require.NoError(t, err)
	return cf
}

func TestParseClassHeader(t *testing.T) {
	cf := parse(t, classfiletest.New("com.example.Widget").
		Flags(classfile.AccPublic|classfile.AccFinal|classfile.AccSuper).
		Super("com.example.Base").
		Implements("java.io.Serializable", "java.lang.Comparable").
		Field(classfile.AccPrivate, "size", "I").
		Method(classfile.AccPublic, "<init>", "()V").
		Method(classfile.AccPublic, "compareTo", "(Ljava/lang/Object;)I").
		Major(61))

	assert.Equal(t, uint16(61), cf.MajorVersion)
	assert.Equal(t, "com.example.Widget", cf.Name)
	assert.Equal(t, "com.example.Base", cf.SuperName)
	assert.Equal(t, []string{"java.io.Serializable", "java.lang.Comparable"}, cf.Interfaces)
	assert.Equal(t, "public final super", cf.AccessFlags.String())

	require.Len(t, cf.Fields, 1)
	assert.Equal(t, "size", cf.Fields[0].Name)
	assert.Equal(t, "I", cf.Fields[0].Descriptor)
	assert.True(t, cf.Fields[0].AccessFlags.IsPrivate())

	require.Len(t, cf.Methods, 2)
	m := cf.Method("compareTo")
	require.NotNil(t, m)
	assert.Equal(t, "(Ljava/lang/Object;)I", m.Descriptor)
	assert.Equal(t, "Synthetic", m.Attributes[0].Name)
	assert.Nil(t, cf.Method("missing"))
}

func TestParseWithoutSuperclass(t *testing.T) {
	cf := parse(t, classfiletest.New("java.lang.Object").Super(""))
	assert.Empty(t, cf.SuperName)
	assert.Empty(t, cf.Interfaces)
}

func TestClassKinds(t *testing.T) {
	tests := []struct {
		name    string
		builder *classfiletest.Builder
		check   func(*classfile.ClassFile) bool
	}{
		{"interface", classfiletest.New("a.I").Flags(classfile.AccInterface | classfile.AccAbstract), (*classfile.ClassFile).IsInterface},
		{"annotation", classfiletest.New("a.A").Flags(classfile.AccInterface | classfile.AccAbstract | classfile.AccAnnotation), (*classfile.ClassFile).IsAnnotation},
		{"enum", classfiletest.New("a.E").Flags(classfile.AccFinal | classfile.AccEnum).Super("java.lang.Enum"), (*classfile.ClassFile).IsEnum},
		{"record", classfiletest.New("a.R").Super("java.lang.Record").Attribute("Record", []byte{0, 0}), (*classfile.ClassFile).IsRecord},
		{"module", classfiletest.New("module-info").Flags(classfile.AccModule).Super(""), (*classfile.ClassFile).IsModule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(parse(t, tt.builder)))
		})
	}

	plain := parse(t, classfiletest.New("a.C"))
	assert.False(t, plain.IsInterface())
	assert.False(t, plain.IsEnum())
	assert.False(t, plain.IsRecord())
}

func TestInnerClasses(t *testing.T) {
	cf := parse(t, classfiletest.New("a.Outer$Inner").
		Inner("a.Outer$Inner", "a.Outer", "Inner", classfile.AccPublic|classfile.AccStatic).
		Inner("a.Outer$1", "", "", 0).
		Inner("a.Outer$1Local", "", "Local", classfile.AccFinal))

	entries, err := cf.InnerClasses()
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, classfile.InnerClass{
		Name:        "a.Outer$Inner",
		OuterName:   "a.Outer",
		SimpleName:  "Inner",
		AccessFlags: classfile.AccPublic | classfile.AccStatic,
	}, entries[0])
	assert.False(t, entries[0].IsAnonymous())
	assert.False(t, entries[0].IsLocal())

	assert.True(t, entries[1].IsAnonymous())
	assert.False(t, entries[1].IsLocal())

	assert.True(t, entries[2].IsLocal())
	assert.Equal(t, "Local", entries[2].SimpleName)

	self, ok, err := cf.Self()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Inner", self.SimpleName)
}

func TestTopLevelClassHasNoInnerClassEntry(t *testing.T) {
	cf := parse(t, classfiletest.New("a.Top"))
	entries, err := cf.InnerClasses()
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, ok, err := cf.Self()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSignatureAttribute(t *testing.T) {
	sig := "<T:Ljava/lang/Object;>Ljava/lang/Object;"
	cf := parse(t, classfiletest.New("a.Box").Signature(sig))
	got, err := cf.Signature()
	require.NoError(t, err)
	assert.Equal(t, sig, got)

	got, err = parse(t, classfiletest.New("a.Plain")).Signature()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWideConstantsTakeTwoSlots(t *testing.T) {
	cf := parse(t, classfiletest.New("a.Constants").Long(1).Long(-1).Implements("a.I"))
	assert.Equal(t, "a.Constants", cf.Name)
	assert.Equal(t, []string{"a.I"}, cf.Interfaces)
	assert.Equal(t, classfile.ConstantLong, cf.Pool[1].Tag)
	assert.Equal(t, classfile.ConstantTag(0), cf.Pool[2].Tag)
	assert.Equal(t, classfile.ConstantLong, cf.Pool[3].Tag)
}

func TestNonASCIINames(t *testing.T) {
	name := "p.Café\U0001D518"
	cf := parse(t, classfiletest.New(name))
	assert.Equal(t, name, cf.Name)
}

func TestEveryTruncationIsMalformed(t *testing.T) {
	data := classfiletest.New("a.Outer$Inner").
		Implements("a.I").
		Field(0, "f", "I").
		Method(0, "m", "()V").
		Inner("a.Outer$Inner", "a.Outer", "Inner", classfile.AccStatic).
		Signature("<T:Ljava/lang/Object;>Ljava/lang/Object;").
		Bytes()

	for n := 0; n < len(data); n++ {
		_, err := classfile.Parse(bytes.NewReader(data[:n]))
		require.Error(t, err, "prefix of %d bytes", n)
		assert.ErrorIs(t, err, classfile.ErrMalformed, "prefix of %d bytes", n)
	}
}

func TestMalformedClassFiles(t *testing.T) {
	valid := classfiletest.New("a.C").Bytes()

	tests := []struct {
		name    string
		mutate  func([]byte) []byte
		message string
	}{
		{"bad magic", func(b []byte) []byte {
			b[0] = 0xCB
			return b
		}, "malformed class file: bad magic 0xCBFEBABE"},
		{"empty constant pool", func(b []byte) []byte {
			b[8], b[9] = 0, 0
			return b
		}, "malformed class file: empty constant pool"},
		{"unknown tag", func(b []byte) []byte {
			b[10] = 2
			return b
		}, "constant pool entry 1: malformed class file: unknown constant pool tag 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.mutate(append([]byte(nil), valid...))
			_, err := classfile.Parse(bytes.NewReader(data))
			require.Error(t, err)
			assert.ErrorIs(t, err, classfile.ErrMalformed)
			assert.EqualError(t, err, tt.message)
		})
	}
}

func TestReaderErrorsAreNotMalformed(t *testing.T) {
	boom := errors.New("disk on fire")
	_, err := classfile.Parse(iotest.ErrReader(boom))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, classfile.ErrMalformed)
}

func TestBinaryNames(t *testing.T) {
	assert.Equal(t, "java.util.Map$Entry", classfile.BinaryName("java/util/Map$Entry"))
	assert.Equal(t, "java/util/Map$Entry", classfile.InternalName("java.util.Map$Entry"))
}
