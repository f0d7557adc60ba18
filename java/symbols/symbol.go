package symbols

import "fmt"

// ClassSymbol is the descriptive surface shared by every class-like
// symbol. The set of implementations is closed: *ResolvedClass,
// *UnresolvedClass and *ArrayClass.
type ClassSymbol interface {
	IsUnresolved() bool

	IsClass() bool
	IsInterface() bool
	IsEnum() bool
	IsAnnotation() bool
	IsRecord() bool
	IsArray() bool
	IsAnonymousClass() bool

	SimpleName() string
	PackageName() string
	CanonicalName() string
	BinaryName() string

	TypeParameterCount() int
	TypeParameters() []*TypeParameter

	classSymbol()
}

// TypeParameter is a formal type parameter of a class symbol. The owner
// link is for navigation; the owner holds the parameter, not the other
// way around.
type TypeParameter struct {
	name  string
	owner ClassSymbol
}

func (p *TypeParameter) SimpleName() string { return p.name }

func (p *TypeParameter) DeclaringSymbol() ClassSymbol { return p.owner }

func (p *TypeParameter) String() string {
	return fmt.Sprintf("%s in %s", p.name, p.owner.BinaryName())
}

func newTypeParameters(owner ClassSymbol, names []string) []*TypeParameter {
	params := make([]*TypeParameter, len(names))
	for i, name := range names {
		params[i] = &TypeParameter{name: name, owner: owner}
	}
	return params
}

// ResolvedClass is a class symbol backed by a declaration.
type ResolvedClass struct {
	decl   *Declaration
	params []*TypeParameter
}

func NewResolvedClass(decl *Declaration) *ResolvedClass {
	c := &ResolvedClass{decl: decl}
	c.params = newTypeParameters(c, decl.TypeParameters)
	return c
}

func (c *ResolvedClass) classSymbol() {}

// Declaration returns the backing declaration.
func (c *ResolvedClass) Declaration() *Declaration { return c.decl }

func (c *ResolvedClass) IsUnresolved() bool { return false }
func (c *ResolvedClass) IsClass() bool {
	return c.decl.Kind == KindClass || c.decl.Kind == KindEnum || c.decl.Kind == KindRecord
}
func (c *ResolvedClass) IsInterface() bool {
	return c.decl.Kind == KindInterface || c.decl.Kind == KindAnnotation
}
func (c *ResolvedClass) IsEnum() bool           { return c.decl.Kind == KindEnum }
func (c *ResolvedClass) IsAnnotation() bool     { return c.decl.Kind == KindAnnotation }
func (c *ResolvedClass) IsRecord() bool         { return c.decl.Kind == KindRecord }
func (c *ResolvedClass) IsArray() bool          { return false }
func (c *ResolvedClass) IsAnonymousClass() bool { return c.decl.Anonymous }

func (c *ResolvedClass) SimpleName() string    { return c.decl.SimpleName }
func (c *ResolvedClass) PackageName() string   { return c.decl.Package }
func (c *ResolvedClass) CanonicalName() string { return c.decl.CanonicalName }
func (c *ResolvedClass) BinaryName() string    { return c.decl.BinaryName }

func (c *ResolvedClass) TypeParameterCount() int          { return len(c.params) }
func (c *ResolvedClass) TypeParameters() []*TypeParameter { return c.params }

func (c *ResolvedClass) String() string {
	return fmt.Sprintf("%s %s", c.decl.Kind, c.decl.BinaryName)
}

// ArrayClass is the array type whose elements are Component. Its names
// append "[]" to the component's and it lives in the component's
// package. An array over an unresolved component is itself well
// defined, so IsUnresolved is false.
type ArrayClass struct {
	component ClassSymbol
}

func NewArrayClass(component ClassSymbol) *ArrayClass {
	return &ArrayClass{component: component}
}

func (a *ArrayClass) classSymbol() {}

func (a *ArrayClass) Component() ClassSymbol { return a.component }

// Dimensions counts nested array levels, 1 for a plain array.
func (a *ArrayClass) Dimensions() int {
	if inner, ok := a.component.(*ArrayClass); ok {
		return inner.Dimensions() + 1
	}
	return 1
}

func (a *ArrayClass) IsUnresolved() bool     { return false }
func (a *ArrayClass) IsClass() bool          { return false }
func (a *ArrayClass) IsInterface() bool      { return false }
func (a *ArrayClass) IsEnum() bool           { return false }
func (a *ArrayClass) IsAnnotation() bool     { return false }
func (a *ArrayClass) IsRecord() bool         { return false }
func (a *ArrayClass) IsArray() bool          { return true }
func (a *ArrayClass) IsAnonymousClass() bool { return false }

func (a *ArrayClass) SimpleName() string  { return a.component.SimpleName() + "[]" }
func (a *ArrayClass) PackageName() string { return a.component.PackageName() }
func (a *ArrayClass) BinaryName() string  { return a.component.BinaryName() + "[]" }

// CanonicalName is empty when the component has no canonical name.
func (a *ArrayClass) CanonicalName() string {
	if c := a.component.CanonicalName(); c != "" {
		return c + "[]"
	}
	return ""
}

func (a *ArrayClass) TypeParameterCount() int          { return 0 }
func (a *ArrayClass) TypeParameters() []*TypeParameter { return nil }

func (a *ArrayClass) String() string { return "array " + a.BinaryName() }
