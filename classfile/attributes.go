package classfile

import (
	"encoding/binary"
	"fmt"
)

// InnerClass is one entry of the InnerClasses attribute with its
// indexes resolved. OuterName is empty for local and anonymous classes;
// SimpleName is empty for anonymous ones.
type InnerClass struct {
	Name        string
	OuterName   string
	SimpleName  string
	AccessFlags AccessFlags
}

func (ic InnerClass) IsAnonymous() bool { return ic.SimpleName == "" }

func (ic InnerClass) IsLocal() bool { return ic.OuterName == "" && ic.SimpleName != "" }

// InnerClasses decodes the InnerClasses attribute. A class without one
// yields no entries.
func (cf *ClassFile) InnerClasses() ([]InnerClass, error) {
	attr := cf.Attribute("InnerClasses")
	if attr == nil {
		return nil, nil
	}
	info := attr.Info
	if len(info) < 2 {
		return nil, fmt.Errorf("%w: InnerClasses attribute too short", ErrMalformed)
	}
	count := int(binary.BigEndian.Uint16(info))
	if len(info) != 2+count*8 {
		return nil, fmt.Errorf("%w: InnerClasses attribute has %d bytes for %d entries", ErrMalformed, len(info), count)
	}

	entries := make([]InnerClass, 0, count)
	for off := 2; off < len(info); off += 8 {
		innerIndex := binary.BigEndian.Uint16(info[off:])
		outerIndex := binary.BigEndian.Uint16(info[off+2:])
		nameIndex := binary.BigEndian.Uint16(info[off+4:])

		var ic InnerClass
		var err error
		if ic.Name, err = cf.Pool.ClassName(innerIndex); err != nil {
			return nil, fmt.Errorf("InnerClasses: %w", err)
		}
		if outerIndex != 0 {
			if ic.OuterName, err = cf.Pool.ClassName(outerIndex); err != nil {
				return nil, fmt.Errorf("InnerClasses: %w", err)
			}
		}
		if nameIndex != 0 {
			if ic.SimpleName, err = cf.Pool.Utf8(nameIndex); err != nil {
				return nil, fmt.Errorf("InnerClasses: %w", err)
			}
		}
		ic.AccessFlags = AccessFlags(binary.BigEndian.Uint16(info[off+6:]))
		entries = append(entries, ic)
	}
	return entries, nil
}

// Self returns the InnerClasses entry describing the class itself, if
// the class is nested.
func (cf *ClassFile) Self() (InnerClass, bool, error) {
	entries, err := cf.InnerClasses()
	if err != nil {
		return InnerClass{}, false, err
	}
	for _, ic := range entries {
		if ic.Name == cf.Name {
			return ic, true, nil
		}
	}
	return InnerClass{}, false, nil
}

// Signature returns the raw generic signature of the class, or "" when
// the class is not generic.
func (cf *ClassFile) Signature() (string, error) {
	attr := cf.Attribute("Signature")
	if attr == nil {
		return "", nil
	}
	if len(attr.Info) != 2 {
		return "", fmt.Errorf("%w: Signature attribute has %d bytes", ErrMalformed, len(attr.Info))
	}
	sig, err := cf.Pool.Utf8(binary.BigEndian.Uint16(attr.Info))
	if err != nil {
		return "", fmt.Errorf("Signature: %w", err)
	}
	return sig, nil
}
