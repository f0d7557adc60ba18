package classfile

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unicode/utf16"
)

// Constant is one constant pool entry. Only the parts declaration
// metadata needs are decoded: the text of Utf8 entries and the name
// index of Class entries. Other payloads are kept raw.
type Constant struct {
	Tag  ConstantTag
	Text string
	Raw  []byte
}

// ConstantPool is indexed the way the class file indexes it: slot 0 and
// the slot after a long or double are zero Constants.
type ConstantPool []Constant

func (cp ConstantPool) entry(index uint16, tag ConstantTag) (Constant, error) {
	if index == 0 || int(index) >= len(cp) {
		return Constant{}, fmt.Errorf("%w: constant pool index %d out of range", ErrMalformed, index)
	}
	c := cp[index]
	if c.Tag != tag {
		return Constant{}, fmt.Errorf("%w: constant pool index %d is tag %d, want %d", ErrMalformed, index, c.Tag, tag)
	}
	return c, nil
}

// Utf8 returns the text of the Utf8 constant at index.
func (cp ConstantPool) Utf8(index uint16) (string, error) {
	c, err := cp.entry(index, ConstantUtf8)
	if err != nil {
		return "", err
	}
	return c.Text, nil
}

// ClassName returns the binary name, dots for slashes, of the Class
// constant at index.
func (cp ConstantPool) ClassName(index uint16) (string, error) {
	c, err := cp.entry(index, ConstantClass)
	if err != nil {
		return "", err
	}
	internal, err := cp.Utf8(binary.BigEndian.Uint16(c.Raw))
	if err != nil {
		return "", err
	}
	return BinaryName(internal), nil
}

// BinaryName converts an internal name such as "java/util/Map$Entry" to
// its binary form "java.util.Map$Entry".
func BinaryName(internal string) string {
	return strings.ReplaceAll(internal, "/", ".")
}

// InternalName is the inverse of BinaryName.
func InternalName(binaryName string) string {
	return strings.ReplaceAll(binaryName, ".", "/")
}

// decodeModifiedUtf8 decodes the JVM's modified UTF-8: NUL is two
// bytes and supplementary characters are surrogate pairs of three bytes
// each.
func decodeModifiedUtf8(b []byte) (string, error) {
	var sb strings.Builder
	sb.Grow(len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c < 0x80:
			sb.WriteByte(c)
			i++
		case c&0xE0 == 0xC0:
			if i+1 >= len(b) {
				return "", fmt.Errorf("%w: truncated modified UTF-8 sequence", ErrMalformed)
			}
			sb.WriteRune(rune(c&0x1F)<<6 | rune(b[i+1]&0x3F))
			i += 2
		case c&0xF0 == 0xE0:
			if i+2 >= len(b) {
				return "", fmt.Errorf("%w: truncated modified UTF-8 sequence", ErrMalformed)
			}
			r := rune(c&0x0F)<<12 | rune(b[i+1]&0x3F)<<6 | rune(b[i+2]&0x3F)
			i += 3
			if r >= 0xD800 && r < 0xDC00 && i+2 < len(b) && b[i] == 0xED {
				low := rune(b[i]&0x0F)<<12 | rune(b[i+1]&0x3F)<<6 | rune(b[i+2]&0x3F)
				if low >= 0xDC00 && low < 0xE000 {
					r = utf16.DecodeRune(r, low)
					i += 3
				}
			}
			sb.WriteRune(r)
		default:
			return "", fmt.Errorf("%w: invalid modified UTF-8 byte 0x%02X", ErrMalformed, c)
		}
	}
	return sb.String(), nil
}
