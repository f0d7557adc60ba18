package parser

import (
	"fmt"
	"strings"
)

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenComment
	TokenLineComment

	// Literals
	TokenIdent
	TokenIntLiteral
	TokenFloatLiteral
	TokenCharLiteral
	TokenStringLiteral
	TokenTextBlock
	TokenTrue
	TokenFalse
	TokenNull

	// Reserved keywords
	TokenAbstract
	TokenAssert
	TokenBoolean
	TokenBreak
	TokenByte
	TokenCase
	TokenCatch
	TokenChar
	TokenClass
	TokenConst
	TokenContinue
	TokenDefault
	TokenDo
	TokenDouble
	TokenElse
	TokenEnum
	TokenExtends
	TokenFinal
	TokenFinally
	TokenFloat
	TokenFor
	TokenGoto
	TokenIf
	TokenImplements
	TokenImport
	TokenInstanceof
	TokenInt
	TokenInterface
	TokenLong
	TokenNative
	TokenNew
	TokenPackage
	TokenPrivate
	TokenProtected
	TokenPublic
	TokenReturn
	TokenShort
	TokenStatic
	TokenStrictfp
	TokenSuper
	TokenSwitch
	TokenSynchronized
	TokenThis
	TokenThrow
	TokenThrows
	TokenTransient
	TokenTry
	TokenVoid
	TokenVolatile
	TokenWhile

	// Contextual keywords. The lexer only produces these on versions
	// that give the word a meaning; elsewhere they are identifiers.
	TokenVar
	TokenYield
	TokenRecord
	TokenSealed
	TokenNonSealed
	TokenPermits
	TokenWhen
	TokenModule
	TokenOpen
	TokenRequires
	TokenExports
	TokenOpens
	TokenUses
	TokenProvides
	TokenTo
	TokenWith
	TokenTransitive

	// Separators
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenComma
	TokenDot
	TokenEllipsis
	TokenAt
	TokenColonColon

	// Operators
	TokenAssign
	TokenEQ
	TokenNE
	TokenLT
	TokenLE
	TokenGT
	TokenGE
	TokenAnd
	TokenOr
	TokenNot
	TokenBitAnd
	TokenBitOr
	TokenBitXor
	TokenBitNot
	TokenShl
	TokenShr
	TokenUShr
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenIncrement
	TokenDecrement
	TokenQuestion
	TokenColon
	TokenArrow
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenSlashAssign
	TokenPercentAssign
	TokenAndAssign
	TokenOrAssign
	TokenXorAssign
	TokenShlAssign
	TokenShrAssign
	TokenUShrAssign
)

// spelledTokens holds the fixed spelling of every kind from TokenTrue
// through TokenUShrAssign, in declaration order.
var spelledTokens = strings.Fields(`
	true false null

	abstract assert boolean break byte case catch char class const
	continue default do double else enum extends final finally float
	for goto if implements import instanceof int interface long native
	new package private protected public return short static strictfp
	super switch synchronized this throw throws transient try void
	volatile while

	var yield record sealed non-sealed permits when module open requires
	exports opens uses provides to with transitive

	( ) { } [ ] ; , . ... @ ::

	= == != < <= > >= && || ! & | ^ ~ << >> >>> + - * / % ++ -- ? : ->
	+= -= *= /= %= &= |= ^= <<= >>= >>>=
`)

// spelling returns the fixed text of keyword and punctuation kinds.
func spelling(k TokenKind) (string, bool) {
	if k < TokenTrue || k > TokenUShrAssign {
		return "", false
	}
	return spelledTokens[k-TokenTrue], true
}

var descriptions = map[TokenKind]string{
	TokenEOF:           "end of input",
	TokenError:         "invalid character",
	TokenComment:       "comment",
	TokenLineComment:   "line comment",
	TokenIdent:         "identifier",
	TokenIntLiteral:    "integer literal",
	TokenFloatLiteral:  "floating-point literal",
	TokenCharLiteral:   "character literal",
	TokenStringLiteral: "string literal",
	TokenTextBlock:     "text block",
}

func (k TokenKind) String() string {
	if s, ok := spelling(k); ok {
		return s
	}
	if s, ok := descriptions[k]; ok {
		return s
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Quoted renders k for error messages: punctuation and keywords quoted,
// token classes spelled out.
func (k TokenKind) Quoted() string {
	if s, ok := spelling(k); ok {
		return "'" + s + "'"
	}
	return k.String()
}

func (k TokenKind) IsContextualKeyword() bool {
	return k >= TokenVar && k <= TokenTransitive
}

func (k TokenKind) IsLiteral() bool {
	return k >= TokenIntLiteral && k <= TokenNull
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
}

var keywords = func() map[string]TokenKind {
	m := make(map[string]TokenKind)
	for k := TokenTrue; k <= TokenTransitive; k++ {
		if k == TokenNonSealed {
			continue
		}
		m[spelledTokens[k-TokenTrue]] = k
	}
	return m
}()

// LookupKeyword maps a word to its keyword kind regardless of language
// level, or TokenIdent.
func LookupKeyword(word string) TokenKind {
	if kind, ok := keywords[word]; ok {
		return kind
	}
	return TokenIdent
}
