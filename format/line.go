package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/javafront/java/symbols"
)

// LineEncoder writes one tab-separated header line per symbol followed
// by one line per type parameter and supertype.
type LineEncoder struct {
	w io.Writer
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(sym symbols.ClassSymbol) error {
	text, err := e.MarshalText(sym)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText(sym symbols.ClassSymbol) ([]byte, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s\t%s\t%s\t%s\n", symbolKind(sym), sym.BinaryName(), orDash(sym.CanonicalName()), orDash(sym.PackageName()))

	for _, tp := range sym.TypeParameters() {
		fmt.Fprintf(&sb, "typeparam\t%s\n", tp.SimpleName())
	}
	if decl := declarationOf(sym); decl != nil {
		if decl.Super != "" {
			fmt.Fprintf(&sb, "extends\t%s\n", decl.Super)
		}
		for _, iface := range decl.Interfaces {
			fmt.Fprintf(&sb, "implements\t%s\n", iface)
		}
	}
	return []byte(sb.String()), nil
}

func symbolKind(sym symbols.ClassSymbol) string {
	switch {
	case sym.IsUnresolved():
		return "unresolved"
	case sym.IsArray():
		return "array"
	case sym.IsAnnotation():
		return "annotation"
	case sym.IsEnum():
		return "enum"
	case sym.IsRecord():
		return "record"
	case sym.IsInterface():
		return "interface"
	default:
		return "class"
	}
}

func declarationOf(sym symbols.ClassSymbol) *symbols.Declaration {
	if rc, ok := sym.(*symbols.ResolvedClass); ok {
		return rc.Declaration()
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
