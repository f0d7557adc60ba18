package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/javafront/java/symbols"
)

type JSONEncoder struct {
	w io.Writer
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(sym symbols.ClassSymbol) error {
	text, err := e.MarshalText(sym)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText(sym symbols.ClassSymbol) ([]byte, error) {
	return json.MarshalIndent(buildSymbolData(sym), "", "  ")
}

type jsonSymbol struct {
	Kind           string      `json:"kind"`
	BinaryName     string      `json:"binaryName"`
	CanonicalName  string      `json:"canonicalName,omitempty"`
	SimpleName     string      `json:"simpleName"`
	Package        string      `json:"package"`
	Anonymous      bool        `json:"anonymous,omitempty"`
	TypeParameters []string    `json:"typeParameters,omitempty"`
	SuperClass     string      `json:"superClass,omitempty"`
	Interfaces     []string    `json:"interfaces,omitempty"`
	Component      *jsonSymbol `json:"component,omitempty"`
}

func buildSymbolData(sym symbols.ClassSymbol) *jsonSymbol {
	data := &jsonSymbol{
		Kind:          symbolKind(sym),
		BinaryName:    sym.BinaryName(),
		CanonicalName: sym.CanonicalName(),
		SimpleName:    sym.SimpleName(),
		Package:       sym.PackageName(),
		Anonymous:     sym.IsAnonymousClass(),
	}
	for _, tp := range sym.TypeParameters() {
		data.TypeParameters = append(data.TypeParameters, tp.SimpleName())
	}
	if decl := declarationOf(sym); decl != nil {
		data.SuperClass = decl.Super
		data.Interfaces = decl.Interfaces
	}
	if arr, ok := sym.(*symbols.ArrayClass); ok {
		data.Component = buildSymbolData(arr.Component())
	}
	return data
}
