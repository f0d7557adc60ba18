package symbols

import (
	"errors"
	"strings"
)

// ErrClassNotFound is returned by a Loader that has no declaration for
// a binary name.
var ErrClassNotFound = errors.New("class not found")

// Loader supplies declarations by binary name ("java.util.Map$Entry").
type Loader interface {
	Load(binaryName string) (*Declaration, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(binaryName string) (*Declaration, error)

func (f LoaderFunc) Load(binaryName string) (*Declaration, error) {
	return f(binaryName)
}

type Kind int

const (
	KindClass Kind = iota
	KindInterface
	KindEnum
	KindAnnotation
	KindRecord
)

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindInterface:
		return "interface"
	case KindEnum:
		return "enum"
	case KindAnnotation:
		return "annotation"
	case KindRecord:
		return "record"
	}
	return "unknown"
}

// Declaration is the metadata of a class as a loader found it.
type Declaration struct {
	BinaryName string
	Kind       Kind

	// CanonicalName is empty for local and anonymous classes.
	CanonicalName string
	SimpleName    string
	Package       string
	Anonymous     bool
	Local         bool

	TypeParameters []string
	Super          string
	Interfaces     []string
}

// NewDeclaration describes a top-level or member class from its binary
// name, deriving the other names. Nested classes are separated by '$'.
func NewDeclaration(binaryName string, kind Kind, typeParams ...string) *Declaration {
	pkg, rest := splitPackage(binaryName)
	simple := rest
	if i := strings.LastIndexByte(rest, '$'); i >= 0 {
		simple = rest[i+1:]
	}
	canonical := strings.ReplaceAll(rest, "$", ".")
	if pkg != "" {
		canonical = pkg + "." + canonical
	}
	return &Declaration{
		BinaryName:     binaryName,
		Kind:           kind,
		CanonicalName:  canonical,
		SimpleName:     simple,
		Package:        pkg,
		TypeParameters: typeParams,
	}
}

// splitPackage splits a name at its last dot.
func splitPackage(name string) (pkg, rest string) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return "", name
	}
	return name[:i], name[i+1:]
}
