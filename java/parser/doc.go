// Package parser provides a version-aware parser for Java source code.
//
// # Overview
//
// A parse runs against one Java language level. Syntax that the level
// does not have, such as an annotation on Java 1.4 or a record pattern on
// Java 17, is rejected rather than parsed some other way.
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Source    │────▶│   Lexer     │────▶│   Parser    │────▶│   Context   │
//	│  fragment   │     │  (tokens)   │     │   (tree)    │     │   Unwrap    │
//	└─────────────┘     └─────────────┘     └─────────────┘     └─────────────┘
//	                           │                   │
//	                           ▼                   ▼
//	                    ┌─────────────┐     ┌─────────────┐
//	                    │  Features   │◀────│ Production  │
//	                    │ (compiled)  │     │   table     │
//	                    └─────────────┘     └─────────────┘
//
// # Language Levels
//
// The grammar table maps each Production to the version.Set in which it
// is legal. FeaturesFor compiles the table for one level; the lexer uses
// it to decide whether contextual keywords like "record" or "yield" are
// keywords or identifiers, and the parser consults it at every gated
// production:
//
//	f := parser.FeaturesFor(version.J1_4)
//	f.Allows(parser.ProdAnnotations) // false
//
// # Failures
//
// Parsing stops at the first failure. No partial tree is returned:
//
//   - *LexError for malformed tokens: unterminated strings, character
//     literals, text blocks and comments, or illegal characters.
//   - *ParseError for input that matches no production legal on the
//     level, with the position, the parsing context and the version.
//
// # Contexts
//
// Fragments smaller than a file are parsed in a Context. The fragment is
// embedded in scaffolding that makes it a compilation unit, and the
// fragment's own node is extracted afterwards:
//
//	ann, err := parser.Parse(`@SuppressWarnings("unchecked")`,
//	    version.Latest, parser.AnnotationContext{})
//
// Positions are always relative to the fragment.
//
// # Node Types
//
// The tree uses a uniform node structure:
//
//	type Node struct {
//	    Kind       NodeKind // e.g., KindClassDecl, KindAnnotation, KindBinaryExpr
//	    Span       Span     // source location
//	    Children   []*Node  // child nodes in source order
//	    Parent     *Node    // navigation only
//	    Token      *Token   // terminals and operators
//	    Flags      Flags    // kind-specific booleans
//	    ParenDepth int      // parentheses around an expression
//	}
//
// Parentheses do not create nodes; they increment ParenDepth. Operator
// expressions keep their operator in Token. Access nodes carry a
// KindModifiers child with the explicit modifiers and the effective ones,
// which add what the language implies, such as "public abstract" for an
// interface method.
//
// Annotations have the shape
//
//	Annotation
//	  QualifiedName
//	  MemberList?            absent for marker annotations
//	    MemberValuePair+     shorthand when the sole value has no name
//
// Node.Attributes lists the kind-specific properties in a stable order;
// Equal, Diff and the JSON encoding are defined over kinds, attributes
// and children.
//
// # Thread Safety
//
// Parse keeps no state between calls and may be called concurrently. The
// grammar table is never mutated.
package parser
