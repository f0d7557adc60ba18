package classpath

import (
	"fmt"
	"strings"

	"github.com/dhamidi/javafront/classfile"
	"github.com/dhamidi/javafront/java/symbols"
)

// DeclarationFromClassFile derives the declaration metadata of a
// decoded class file.
func DeclarationFromClassFile(cf *classfile.ClassFile) (*symbols.Declaration, error) {
	decl := symbols.NewDeclaration(cf.Name, classKind(cf))
	decl.Super = cf.SuperName
	decl.Interfaces = cf.Interfaces

	self, nested, err := cf.Self()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cf.Name, err)
	}
	if nested {
		decl.SimpleName = self.SimpleName
		decl.Anonymous = self.IsAnonymous()
		decl.Local = self.IsLocal()
		switch {
		case decl.Anonymous || decl.Local:
			decl.CanonicalName = ""
		default:
			decl.CanonicalName = strings.ReplaceAll(self.OuterName, "$", ".") + "." + self.SimpleName
		}
	}

	sig, err := cf.Signature()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cf.Name, err)
	}
	if sig != "" {
		parsed, err := classfile.ParseClassSignature(sig)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cf.Name, err)
		}
		decl.TypeParameters = parsed.TypeParameters
	}
	return decl, nil
}

func classKind(cf *classfile.ClassFile) symbols.Kind {
	switch {
	case cf.IsAnnotation():
		return symbols.KindAnnotation
	case cf.IsInterface():
		return symbols.KindInterface
	case cf.IsEnum():
		return symbols.KindEnum
	case cf.IsRecord():
		return symbols.KindRecord
	}
	return symbols.KindClass
}
