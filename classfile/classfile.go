// Package classfile reads the declaration metadata of compiled Java
// classes: names, access flags, nesting and generic signatures. Code and
// member bodies are skipped.
package classfile

import "errors"

// ErrMalformed is wrapped by every error caused by the bytes of a class
// file rather than by the reader delivering them.
var ErrMalformed = errors.New("malformed class file")

type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	Pool         ConstantPool
	AccessFlags  AccessFlags

	// Name, SuperName and Interfaces are binary names. SuperName is
	// empty for java.lang.Object and module-info.
	Name       string
	SuperName  string
	Interfaces []string

	Fields     []Member
	Methods    []Member
	Attributes []Attribute
}

// Member is a field or method reduced to its signature line.
type Member struct {
	AccessFlags AccessFlags
	Name        string
	Descriptor  string
	Attributes  []Attribute
}

// Attribute is an attribute whose body has not been decoded.
type Attribute struct {
	Name string
	Info []byte
}

func (cf *ClassFile) IsInterface() bool  { return cf.AccessFlags.IsInterface() }
func (cf *ClassFile) IsAnnotation() bool { return cf.AccessFlags.IsAnnotation() }
func (cf *ClassFile) IsEnum() bool       { return cf.AccessFlags.IsEnum() }
func (cf *ClassFile) IsModule() bool     { return cf.AccessFlags.IsModule() }

// IsRecord reports whether the class carries a Record attribute.
func (cf *ClassFile) IsRecord() bool {
	return cf.Attribute("Record") != nil
}

// Attribute returns the first class attribute called name, or nil.
func (cf *ClassFile) Attribute(name string) *Attribute {
	for i := range cf.Attributes {
		if cf.Attributes[i].Name == name {
			return &cf.Attributes[i]
		}
	}
	return nil
}

// Method returns the first method called name, or nil.
func (cf *ClassFile) Method(name string) *Member {
	for i := range cf.Methods {
		if cf.Methods[i].Name == name {
			return &cf.Methods[i]
		}
	}
	return nil
}
