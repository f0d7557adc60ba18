// Package classfiletest synthesizes small class files for tests that
// need compiled classes without a Java compiler.
package classfiletest

import (
	"bytes"
	"encoding/binary"
	"unicode/utf16"

	"github.com/dhamidi/javafront/classfile"
)

type member struct {
	flags      classfile.AccessFlags
	name, desc string
}

type innerEntry struct {
	inner, outer, simple string
	flags                classfile.AccessFlags
}

type attribute struct {
	name string
	info []byte
}

// Builder assembles a class file. Names are binary names
// ("a.b.Outer$Inner"). The zero configuration is a public class
// extending java.lang.Object.
type Builder struct {
	name       string
	super      string
	flags      classfile.AccessFlags
	major      uint16
	interfaces []string
	fields     []member
	methods    []member
	inner      []innerEntry
	signature  string
	attrs      []attribute
	longs      []int64

	pool    bytes.Buffer
	count   uint16
	utf8s   map[string]uint16
	classes map[string]uint16
}

func New(name string) *Builder {
	return &Builder{
		name:  name,
		super: "java.lang.Object",
		flags: classfile.AccPublic | classfile.AccSuper,
		major: 52,
	}
}

// Name returns the binary name of the class being built.
func (b *Builder) Name() string { return b.name }

func (b *Builder) Flags(flags classfile.AccessFlags) *Builder {
	b.flags = flags
	return b
}

// Super sets the superclass; "" leaves super_class zero.
func (b *Builder) Super(name string) *Builder {
	b.super = name
	return b
}

func (b *Builder) Major(major uint16) *Builder {
	b.major = major
	return b
}

func (b *Builder) Implements(names ...string) *Builder {
	b.interfaces = append(b.interfaces, names...)
	return b
}

func (b *Builder) Field(flags classfile.AccessFlags, name, desc string) *Builder {
	b.fields = append(b.fields, member{flags, name, desc})
	return b
}

func (b *Builder) Method(flags classfile.AccessFlags, name, desc string) *Builder {
	b.methods = append(b.methods, member{flags, name, desc})
	return b
}

// Inner adds an InnerClasses entry. Empty outer or simple names encode
// as index 0.
func (b *Builder) Inner(inner, outer, simple string, flags classfile.AccessFlags) *Builder {
	b.inner = append(b.inner, innerEntry{inner, outer, simple, flags})
	return b
}

func (b *Builder) Signature(sig string) *Builder {
	b.signature = sig
	return b
}

// Attribute adds a class attribute with an opaque body.
func (b *Builder) Attribute(name string, info []byte) *Builder {
	b.attrs = append(b.attrs, attribute{name, info})
	return b
}

// Long adds a long constant, which occupies two pool slots.
func (b *Builder) Long(v int64) *Builder {
	b.longs = append(b.longs, v)
	return b
}

func (b *Builder) utf8(s string) uint16 {
	if i, ok := b.utf8s[s]; ok {
		return i
	}
	enc := encodeModifiedUtf8(s)
	b.pool.WriteByte(byte(classfile.ConstantUtf8))
	writeU2(&b.pool, uint16(len(enc)))
	b.pool.Write(enc)
	b.count++
	b.utf8s[s] = b.count
	return b.count
}

func (b *Builder) class(name string) uint16 {
	if name == "" {
		return 0
	}
	if i, ok := b.classes[name]; ok {
		return i
	}
	nameIndex := b.utf8(classfile.InternalName(name))
	b.pool.WriteByte(byte(classfile.ConstantClass))
	writeU2(&b.pool, nameIndex)
	b.count++
	b.classes[name] = b.count
	return b.count
}

func (b *Builder) optionalUtf8(s string) uint16 {
	if s == "" {
		return 0
	}
	return b.utf8(s)
}

// Bytes renders the class file.
func (b *Builder) Bytes() []byte {
	b.pool.Reset()
	b.count = 0
	b.utf8s = map[string]uint16{}
	b.classes = map[string]uint16{}

	for _, v := range b.longs {
		b.pool.WriteByte(byte(classfile.ConstantLong))
		binary.Write(&b.pool, binary.BigEndian, v)
		b.count += 2
	}

	var body bytes.Buffer
	writeU2(&body, uint16(b.flags))
	writeU2(&body, b.class(b.name))
	writeU2(&body, b.class(b.super))
	writeU2(&body, uint16(len(b.interfaces)))
	for _, name := range b.interfaces {
		writeU2(&body, b.class(name))
	}
	b.writeMembers(&body, b.fields)
	b.writeMembers(&body, b.methods)

	attrs := append([]attribute(nil), b.attrs...)
	if len(b.inner) > 0 {
		var info bytes.Buffer
		writeU2(&info, uint16(len(b.inner)))
		for _, ic := range b.inner {
			writeU2(&info, b.class(ic.inner))
			writeU2(&info, b.class(ic.outer))
			writeU2(&info, b.optionalUtf8(ic.simple))
			writeU2(&info, uint16(ic.flags))
		}
		attrs = append(attrs, attribute{"InnerClasses", info.Bytes()})
	}
	if b.signature != "" {
		var info bytes.Buffer
		writeU2(&info, b.utf8(b.signature))
		attrs = append(attrs, attribute{"Signature", info.Bytes()})
	}
	b.writeAttributes(&body, attrs)

	var out bytes.Buffer
	writeU4(&out, classfile.Magic)
	writeU2(&out, 0)
	writeU2(&out, b.major)
	writeU2(&out, b.count+1)
	out.Write(b.pool.Bytes())
	out.Write(body.Bytes())
	return out.Bytes()
}

// writeMembers gives every member a zero-length Synthetic attribute so
// readers have an attribute table to skip.
func (b *Builder) writeMembers(w *bytes.Buffer, members []member) {
	writeU2(w, uint16(len(members)))
	for _, m := range members {
		writeU2(w, uint16(m.flags))
		writeU2(w, b.utf8(m.name))
		writeU2(w, b.utf8(m.desc))
		b.writeAttributes(w, []attribute{{name: "Synthetic"}})
	}
}

func (b *Builder) writeAttributes(w *bytes.Buffer, attrs []attribute) {
	writeU2(w, uint16(len(attrs)))
	for _, a := range attrs {
		writeU2(w, b.utf8(a.name))
		writeU4(w, uint32(len(a.info)))
		w.Write(a.info)
	}
}

func writeU2(w *bytes.Buffer, v uint16) {
	w.Write(binary.BigEndian.AppendUint16(nil, v))
}

func writeU4(w *bytes.Buffer, v uint32) {
	w.Write(binary.BigEndian.AppendUint32(nil, v))
}

func encodeModifiedUtf8(s string) []byte {
	var out []byte
	for _, r := range s {
		switch {
		case r == 0:
			out = append(out, 0xC0, 0x80)
		case r < 0x80:
			out = append(out, byte(r))
		case r < 0x800:
			out = append(out, 0xC0|byte(r>>6), 0x80|byte(r&0x3F))
		case r < 0x10000:
			out = append(out, 0xE0|byte(r>>12), 0x80|byte(r>>6&0x3F), 0x80|byte(r&0x3F))
		default:
			hi, lo := utf16.EncodeRune(r)
			for _, u := range []rune{hi, lo} {
				out = append(out, 0xE0|byte(u>>12), 0x80|byte(u>>6&0x3F), 0x80|byte(u&0x3F))
			}
		}
	}
	return out
}
