package classfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

type reader struct {
	r   io.Reader
	err error
}

func (r *reader) readU1() uint8 {
	if r.err != nil {
		return 0
	}
	var buf [1]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return buf[0]
}

func (r *reader) readU2() uint16 {
	if r.err != nil {
		return 0
	}
	var buf [2]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return binary.BigEndian.Uint16(buf[:])
}

func (r *reader) readU4() uint32 {
	if r.err != nil {
		return 0
	}
	var buf [4]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return binary.BigEndian.Uint32(buf[:])
}

func (r *reader) readBytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	// Lengths come from the file; read incrementally instead of trusting
	// them for an allocation.
	buf, err := io.ReadAll(io.LimitReader(r.r, int64(n)))
	if err == nil && len(buf) < n {
		err = io.ErrUnexpectedEOF
	}
	r.err = err
	return buf
}

// check turns the sticky read error into a positioned one. Running out
// of bytes means the class file is truncated, which is malformed.
func (r *reader) check(what string) error {
	if r.err == nil {
		return nil
	}
	if errors.Is(r.err, io.EOF) || errors.Is(r.err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: truncated while reading %s", ErrMalformed, what)
	}
	return fmt.Errorf("reading %s: %w", what, r.err)
}

// Parse decodes a class file. Errors caused by the content wrap
// ErrMalformed; errors from rd are wrapped as they are.
func Parse(rd io.Reader) (*ClassFile, error) {
	r := &reader{r: rd}

	magic := r.readU4()
	if err := r.check("magic"); err != nil {
		return nil, err
	}
	if magic != Magic {
		return nil, fmt.Errorf("%w: bad magic 0x%08X", ErrMalformed, magic)
	}

	cf := &ClassFile{
		MinorVersion: r.readU2(),
		MajorVersion: r.readU2(),
	}
	if err := r.check("version"); err != nil {
		return nil, err
	}

	pool, err := readConstantPool(r)
	if err != nil {
		return nil, err
	}
	cf.Pool = pool

	cf.AccessFlags = AccessFlags(r.readU2())
	thisClass := r.readU2()
	superClass := r.readU2()
	interfaces := make([]uint16, r.readU2())
	for i := range interfaces {
		interfaces[i] = r.readU2()
	}
	if err := r.check("class header"); err != nil {
		return nil, err
	}

	if cf.Name, err = pool.ClassName(thisClass); err != nil {
		return nil, fmt.Errorf("this_class: %w", err)
	}
	if superClass != 0 {
		if cf.SuperName, err = pool.ClassName(superClass); err != nil {
			return nil, fmt.Errorf("super_class: %w", err)
		}
	}
	for i, index := range interfaces {
		name, err := pool.ClassName(index)
		if err != nil {
			return nil, fmt.Errorf("interface %d: %w", i, err)
		}
		cf.Interfaces = append(cf.Interfaces, name)
	}

	if cf.Fields, err = readMembers(r, pool, "field"); err != nil {
		return nil, err
	}
	if cf.Methods, err = readMembers(r, pool, "method"); err != nil {
		return nil, err
	}
	if cf.Attributes, err = readAttributes(r, pool, "class attributes"); err != nil {
		return nil, err
	}
	return cf, nil
}

func readConstantPool(r *reader) (ConstantPool, error) {
	count := r.readU2()
	if err := r.check("constant pool count"); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: empty constant pool", ErrMalformed)
	}

	pool := make(ConstantPool, count)
	for i := 1; i < int(count); i++ {
		c, err := readConstant(r)
		if err != nil {
			return nil, fmt.Errorf("constant pool entry %d: %w", i, err)
		}
		pool[i] = c
		if c.Tag.wide() {
			i++
		}
	}
	return pool, nil
}

func readConstant(r *reader) (Constant, error) {
	tag := ConstantTag(r.readU1())
	if err := r.check("constant tag"); err != nil {
		return Constant{}, err
	}

	if tag == ConstantUtf8 {
		raw := r.readBytes(int(r.readU2()))
		if err := r.check("utf8 constant"); err != nil {
			return Constant{}, err
		}
		text, err := decodeModifiedUtf8(raw)
		if err != nil {
			return Constant{}, err
		}
		return Constant{Tag: tag, Text: text}, nil
	}

	size, ok := payloadSize[tag]
	if !ok {
		return Constant{}, fmt.Errorf("%w: unknown constant pool tag %d", ErrMalformed, tag)
	}
	raw := r.readBytes(size)
	if err := r.check("constant"); err != nil {
		return Constant{}, err
	}
	return Constant{Tag: tag, Raw: raw}, nil
}

func readMembers(r *reader, pool ConstantPool, kind string) ([]Member, error) {
	count := r.readU2()
	if err := r.check(kind + " count"); err != nil {
		return nil, err
	}

	members := make([]Member, 0, count)
	for i := 0; i < int(count); i++ {
		flags := AccessFlags(r.readU2())
		nameIndex := r.readU2()
		descIndex := r.readU2()
		if err := r.check(kind); err != nil {
			return nil, err
		}

		name, err := pool.Utf8(nameIndex)
		if err != nil {
			return nil, fmt.Errorf("%s %d name: %w", kind, i, err)
		}
		desc, err := pool.Utf8(descIndex)
		if err != nil {
			return nil, fmt.Errorf("%s %s descriptor: %w", kind, name, err)
		}
		attrs, err := readAttributes(r, pool, kind+" "+name)
		if err != nil {
			return nil, err
		}
		members = append(members, Member{AccessFlags: flags, Name: name, Descriptor: desc, Attributes: attrs})
	}
	return members, nil
}

func readAttributes(r *reader, pool ConstantPool, owner string) ([]Attribute, error) {
	count := r.readU2()
	if err := r.check(owner); err != nil {
		return nil, err
	}

	attrs := make([]Attribute, 0, count)
	for i := 0; i < int(count); i++ {
		nameIndex := r.readU2()
		info := r.readBytes(int(r.readU4()))
		if err := r.check(owner); err != nil {
			return nil, err
		}
		name, err := pool.Utf8(nameIndex)
		if err != nil {
			return nil, fmt.Errorf("%s: attribute %d: %w", owner, i, err)
		}
		attrs = append(attrs, Attribute{Name: name, Info: info})
	}
	return attrs, nil
}
