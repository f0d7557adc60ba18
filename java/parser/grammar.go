package parser

import (
	"fmt"

	"github.com/dhamidi/javafront/java/version"
)

// Production identifies a piece of syntax whose legality depends on the
// language level.
type Production int

const (
	ProdAssert Production = iota
	ProdAnnotations
	ProdGenerics
	ProdEnums
	ProdVarargs
	ProdEnhancedFor
	ProdStaticImport
	ProdHexFloatLiterals
	ProdDiamond
	ProdTryWithResources
	ProdMultiCatch
	ProdBinaryLiterals
	ProdUnderscoresInNumbers
	ProdLambdas
	ProdMethodReferences
	ProdDefaultMethods
	ProdStaticInterfaceMethods
	ProdTypeAnnotations
	ProdReceiverParameters
	ProdModules
	ProdPrivateInterfaceMethods
	ProdEffectivelyFinalResources
	ProdVar
	ProdVarLambdaParameters
	ProdSwitchRules
	ProdSwitchExpressions
	ProdMultipleCaseLabels
	ProdYield
	ProdTextBlocks
	ProdPatternInstanceof
	ProdRecords
	ProdLocalTypes
	ProdSealed
	ProdSwitchPatterns
	ProdRecordPatterns

	productionCount int = iota
)

type productionInfo struct {
	name    string
	allowed version.Set
}

var (
	since       = version.SinceSet
	switchRules = version.NewSet(version.J12Preview, version.J13Preview).Union(since(version.J14))
	yieldSet    = version.NewSet(version.J13Preview).Union(since(version.J14))
	textBlocks  = version.NewSet(version.J13Preview).Union(since(version.J15))
)

// productions is the grammar table. A parse consults it through Features
// and never mutates it.
var productions = [productionCount]productionInfo{
	ProdAssert:                    {"assert statements", since(version.J1_4)},
	ProdAnnotations:               {"annotations", since(version.J1_5)},
	ProdGenerics:                  {"generics", since(version.J1_5)},
	ProdEnums:                     {"enums", since(version.J1_5)},
	ProdVarargs:                   {"variable-arity parameters", since(version.J1_5)},
	ProdEnhancedFor:               {"enhanced for loops", since(version.J1_5)},
	ProdStaticImport:              {"static imports", since(version.J1_5)},
	ProdHexFloatLiterals:          {"hexadecimal floating-point literals", since(version.J1_5)},
	ProdDiamond:                   {"the diamond operator", since(version.J1_7)},
	ProdTryWithResources:          {"try-with-resources", since(version.J1_7)},
	ProdMultiCatch:                {"multi-catch", since(version.J1_7)},
	ProdBinaryLiterals:            {"binary literals", since(version.J1_7)},
	ProdUnderscoresInNumbers:      {"underscores in numeric literals", since(version.J1_7)},
	ProdLambdas:                   {"lambda expressions", since(version.J1_8)},
	ProdMethodReferences:          {"method references", since(version.J1_8)},
	ProdDefaultMethods:            {"default methods", since(version.J1_8)},
	ProdStaticInterfaceMethods:    {"static interface methods", since(version.J1_8)},
	ProdTypeAnnotations:           {"type annotations", since(version.J1_8)},
	ProdReceiverParameters:        {"receiver parameters", since(version.J1_8)},
	ProdModules:                   {"module declarations", since(version.J9)},
	ProdPrivateInterfaceMethods:   {"private interface methods", since(version.J9)},
	ProdEffectivelyFinalResources: {"resource references in try-with-resources", since(version.J9)},
	ProdVar:                       {"local variable type inference", since(version.J10)},
	ProdVarLambdaParameters:       {"'var' lambda parameters", since(version.J11)},
	ProdSwitchRules:               {"switch rules", switchRules},
	ProdSwitchExpressions:         {"switch expressions", switchRules},
	ProdMultipleCaseLabels:        {"multiple case labels", switchRules},
	ProdYield:                     {"yield statements", yieldSet},
	ProdTextBlocks:                {"text blocks", textBlocks},
	ProdPatternInstanceof:         {"pattern matching for instanceof", since(version.J16)},
	ProdRecords:                   {"records", since(version.J16)},
	ProdLocalTypes:                {"local interfaces and enums", since(version.J16)},
	ProdSealed:                    {"sealed classes", since(version.J17)},
	ProdSwitchPatterns:            {"pattern matching in switch", since(version.J21)},
	ProdRecordPatterns:            {"record patterns", since(version.J21)},
}

func (p Production) String() string {
	if p < 0 || int(p) >= productionCount {
		return fmt.Sprintf("Production(%d)", int(p))
	}
	return productions[p].name
}

// Productions lists every gated production in table order.
func Productions() []Production {
	out := make([]Production, productionCount)
	for i := range out {
		out[i] = Production(i)
	}
	return out
}

// Versions returns the language levels on which p is legal.
func (p Production) Versions() version.Set {
	return productions[p].allowed
}

// contextualKeywords maps words that only act as keywords from some
// language level on. Before that they lex as identifiers.
var contextualKeywords = map[TokenKind]Production{
	TokenAssert:     ProdAssert,
	TokenEnum:       ProdEnums,
	TokenVar:        ProdVar,
	TokenYield:      ProdYield,
	TokenRecord:     ProdRecords,
	TokenSealed:     ProdSealed,
	TokenNonSealed:  ProdSealed,
	TokenPermits:    ProdSealed,
	TokenWhen:       ProdSwitchPatterns,
	TokenModule:     ProdModules,
	TokenOpen:       ProdModules,
	TokenRequires:   ProdModules,
	TokenExports:    ProdModules,
	TokenOpens:      ProdModules,
	TokenUses:       ProdModules,
	TokenProvides:   ProdModules,
	TokenTo:         ProdModules,
	TokenWith:       ProdModules,
	TokenTransitive: ProdModules,
}

// Features is the set of productions active for one language level.
type Features struct {
	version version.Version
	enabled [productionCount]bool
}

// FeaturesFor compiles the grammar table for v.
func FeaturesFor(v version.Version) Features {
	f := Features{version: v}
	for i, info := range productions {
		f.enabled[i] = info.allowed.Contains(v)
	}
	return f
}

func (f Features) Version() version.Version { return f.version }

func (f Features) Allows(p Production) bool {
	return f.enabled[p]
}

// Enabled lists the active productions in table order.
func (f Features) Enabled() []Production {
	var out []Production
	for i, on := range f.enabled {
		if on {
			out = append(out, Production(i))
		}
	}
	return out
}

func (f Features) keyword(kind TokenKind) TokenKind {
	if prod, ok := contextualKeywords[kind]; ok && !f.enabled[prod] {
		return TokenIdent
	}
	return kind
}
