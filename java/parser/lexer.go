package parser

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Lexer turns source bytes into tokens. Keywords that only exist on some
// language levels are filtered through the active Features.
type Lexer struct {
	input    []byte
	file     string
	features Features
	pos      int
	line     int
	column   int
	base     int
	err      *LexError
}

func NewLexer(input []byte, file string, features Features) *Lexer {
	return &Lexer{
		input:    input,
		file:     file,
		features: features,
		line:     1,
		column:   1,
	}
}

// startAt shifts reported positions. Wrapped fragments use it so that the
// fragment itself starts at line 1, column 1, offset 0.
func (l *Lexer) startAt(line, offset int) {
	l.line = line
	l.base = offset
}

// Err returns the first lexical error, if any.
func (l *Lexer) Err() *LexError {
	return l.err
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos + l.base,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) peekRune() (rune, int) {
	if l.pos >= len(l.input) {
		return 0, 0
	}
	return utf8.DecodeRune(l.input[l.pos:])
}

func (l *Lexer) advance() {
	if l.pos >= len(l.input) {
		return
	}
	_, size := utf8.DecodeRune(l.input[l.pos:])
	if l.input[l.pos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos += size
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) fail(at Position, format string, args ...any) Token {
	if l.err == nil {
		l.err = &LexError{Pos: at, Message: fmt.Sprintf(format, args...)}
	}
	l.pos = len(l.input)
	return Token{Kind: TokenError, Span: Span{Start: at, End: l.Position()}}
}

// NextToken returns the next significant token or comment. After a lexical
// error it returns TokenError once and TokenEOF from then on.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()
	start := l.Position()
	if l.atEOF() {
		return Token{Kind: TokenEOF, Span: Span{Start: start, End: start}}
	}

	ch := l.peek()
	switch {
	case ch == '/' && l.peekN(1) == '/':
		return l.scanLineComment(start)
	case ch == '/' && l.peekN(1) == '*':
		return l.scanBlockComment(start)
	case ch == '"':
		if l.peekN(1) == '"' && l.peekN(2) == '"' {
			return l.scanTextBlock(start)
		}
		return l.scanString(start)
	case ch == '\'':
		return l.scanChar(start)
	case isDigit(ch), ch == '.' && isDigit(l.peekN(1)):
		return l.scanNumber(start)
	}

	if r, _ := l.peekRune(); isJavaLetter(r) {
		return l.scanWord(start)
	}
	return l.scanOperator(start)
}

func (l *Lexer) skipWhitespace() {
	for !l.atEOF() {
		switch l.peek() {
		case ' ', '\t', '\r', '\n', '\f':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset-l.base : end.Offset-l.base]),
	}
}

func (l *Lexer) scanLineComment(start Position) Token {
	for !l.atEOF() && l.peek() != '\n' {
		l.advance()
	}
	return l.token(TokenLineComment, start)
}

func (l *Lexer) scanBlockComment(start Position) Token {
	l.advanceN(2)
	for {
		if l.atEOF() {
			return l.fail(start, "unterminated comment")
		}
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.advanceN(2)
			return l.token(TokenComment, start)
		}
		l.advance()
	}
}

func (l *Lexer) scanWord(start Position) Token {
	for {
		r, _ := l.peekRune()
		if l.atEOF() || !isJavaLetterOrDigit(r) {
			break
		}
		l.advance()
	}
	tok := l.token(TokenIdent, start)

	if tok.Literal == "non" && string(l.input[l.pos:min(l.pos+7, len(l.input))]) == "-sealed" {
		after := l.pos + 7
		if after >= len(l.input) || !isJavaLetterOrDigit(rune(l.input[after])) {
			if l.features.keyword(TokenNonSealed) == TokenNonSealed {
				l.advanceN(7)
				return l.token(TokenNonSealed, start)
			}
		}
	}

	tok.Kind = l.features.keyword(LookupKeyword(tok.Literal))
	return tok
}

func (l *Lexer) scanDigits(valid func(byte) bool) {
	for valid(l.peek()) || l.peek() == '_' {
		l.advance()
	}
}

func (l *Lexer) scanNumber(start Position) Token {
	if l.peek() == '0' && (l.peekN(1) == 'x' || l.peekN(1) == 'X') {
		return l.scanHexNumber(start)
	}
	if l.peek() == '0' && (l.peekN(1) == 'b' || l.peekN(1) == 'B') {
		l.advanceN(2)
		l.scanDigits(func(c byte) bool { return c == '0' || c == '1' })
		if l.peek() == 'l' || l.peek() == 'L' {
			l.advance()
		}
		return l.token(TokenIntLiteral, start)
	}

	kind := TokenIntLiteral
	l.scanDigits(isDigit)
	if l.peek() == '.' && l.peekN(1) != '.' && !isMemberStart(l.peekN(1)) {
		kind = TokenFloatLiteral
		l.advance()
		l.scanDigits(isDigit)
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		kind = TokenFloatLiteral
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		if !isDigit(l.peek()) {
			return l.fail(start, "malformed floating-point literal")
		}
		l.scanDigits(isDigit)
	}
	switch l.peek() {
	case 'f', 'F', 'd', 'D':
		kind = TokenFloatLiteral
		l.advance()
	case 'l', 'L':
		if kind == TokenIntLiteral {
			l.advance()
		}
	}
	return l.token(kind, start)
}

func (l *Lexer) scanHexNumber(start Position) Token {
	l.advanceN(2)
	l.scanDigits(isHexDigit)
	kind := TokenIntLiteral
	if l.peek() == '.' {
		kind = TokenFloatLiteral
		l.advance()
		l.scanDigits(isHexDigit)
	}
	if l.peek() == 'p' || l.peek() == 'P' {
		kind = TokenFloatLiteral
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		l.scanDigits(isDigit)
	} else if kind == TokenFloatLiteral {
		return l.fail(start, "malformed hexadecimal floating-point literal")
	}
	switch l.peek() {
	case 'f', 'F', 'd', 'D':
		if kind == TokenFloatLiteral {
			l.advance()
		}
	case 'l', 'L':
		if kind == TokenIntLiteral {
			l.advance()
		}
	}
	return l.token(kind, start)
}

func (l *Lexer) scanEscape(start Position) bool {
	l.advance() // backslash
	switch c := l.peek(); {
	case c == 'b', c == 't', c == 'n', c == 'f', c == 'r', c == 's',
		c == '"', c == '\'', c == '\\':
		l.advance()
	case c >= '0' && c <= '7':
		for i := 0; i < 3 && l.peek() >= '0' && l.peek() <= '7'; i++ {
			l.advance()
		}
	case c == 'u':
		for l.peek() == 'u' {
			l.advance()
		}
		for i := 0; i < 4; i++ {
			if !isHexDigit(l.peek()) {
				l.fail(start, "malformed unicode escape")
				return false
			}
			l.advance()
		}
	default:
		l.fail(l.Position(), "illegal escape character %q", rune(c))
		return false
	}
	return true
}

func (l *Lexer) scanString(start Position) Token {
	l.advance()
	for {
		switch {
		case l.atEOF(), l.peek() == '\n', l.peek() == '\r':
			return l.fail(start, "unterminated string literal")
		case l.peek() == '"':
			l.advance()
			return l.token(TokenStringLiteral, start)
		case l.peek() == '\\':
			if !l.scanEscape(start) {
				return Token{Kind: TokenError, Span: Span{Start: start, End: l.Position()}}
			}
		default:
			l.advance()
		}
	}
}

func (l *Lexer) scanChar(start Position) Token {
	l.advance()
	switch {
	case l.atEOF(), l.peek() == '\n', l.peek() == '\r':
		return l.fail(start, "unterminated character literal")
	case l.peek() == '\'':
		return l.fail(start, "empty character literal")
	case l.peek() == '\\':
		if !l.scanEscape(start) {
			return Token{Kind: TokenError, Span: Span{Start: start, End: l.Position()}}
		}
	default:
		l.advance()
	}
	if l.peek() != '\'' {
		return l.fail(start, "unterminated character literal")
	}
	l.advance()
	return l.token(TokenCharLiteral, start)
}

func (l *Lexer) scanTextBlock(start Position) Token {
	l.advanceN(3)
	for l.peek() == ' ' || l.peek() == '\t' || l.peek() == '\f' {
		l.advance()
	}
	if l.peek() == '\r' {
		l.advance()
	}
	if l.peek() != '\n' {
		return l.fail(start, "text block opening delimiter must be followed by a line terminator")
	}
	for {
		switch {
		case l.atEOF():
			return l.fail(start, "unterminated text block")
		case l.peek() == '"' && l.peekN(1) == '"' && l.peekN(2) == '"':
			l.advanceN(3)
			return l.token(TokenTextBlock, start)
		case l.peek() == '\\':
			if l.peekN(1) == '\n' || l.peekN(1) == '\r' {
				l.advanceN(2)
				continue
			}
			if !l.scanEscape(start) {
				return Token{Kind: TokenError, Span: Span{Start: start, End: l.Position()}}
			}
		default:
			l.advance()
		}
	}
}

// operators is ordered longest first within each leading byte.
var operators = []struct {
	text string
	kind TokenKind
}{
	{">>>=", TokenUShrAssign},
	{"<<=", TokenShlAssign},
	{">>=", TokenShrAssign},
	{">>>", TokenUShr},
	{"...", TokenEllipsis},
	{"->", TokenArrow},
	{"::", TokenColonColon},
	{"++", TokenIncrement},
	{"--", TokenDecrement},
	{"&&", TokenAnd},
	{"||", TokenOr},
	{"==", TokenEQ},
	{"!=", TokenNE},
	{"<=", TokenLE},
	{">=", TokenGE},
	{"<<", TokenShl},
	{">>", TokenShr},
	{"+=", TokenPlusAssign},
	{"-=", TokenMinusAssign},
	{"*=", TokenStarAssign},
	{"/=", TokenSlashAssign},
	{"%=", TokenPercentAssign},
	{"&=", TokenAndAssign},
	{"|=", TokenOrAssign},
	{"^=", TokenXorAssign},
	{"(", TokenLParen},
	{")", TokenRParen},
	{"{", TokenLBrace},
	{"}", TokenRBrace},
	{"[", TokenLBracket},
	{"]", TokenRBracket},
	{";", TokenSemicolon},
	{",", TokenComma},
	{".", TokenDot},
	{"@", TokenAt},
	{"=", TokenAssign},
	{"<", TokenLT},
	{">", TokenGT},
	{"!", TokenNot},
	{"~", TokenBitNot},
	{"?", TokenQuestion},
	{":", TokenColon},
	{"&", TokenBitAnd},
	{"|", TokenBitOr},
	{"^", TokenBitXor},
	{"+", TokenPlus},
	{"-", TokenMinus},
	{"*", TokenStar},
	{"/", TokenSlash},
	{"%", TokenPercent},
}

func (l *Lexer) scanOperator(start Position) Token {
	rest := l.input[l.pos:]
	for _, op := range operators {
		if len(rest) >= len(op.text) && string(rest[:len(op.text)]) == op.text {
			l.advanceN(len(op.text))
			return l.token(op.kind, start)
		}
	}
	r, _ := l.peekRune()
	return l.fail(start, "illegal character %q", r)
}

// Tokenize lexes the whole input, separating comments from significant
// tokens. The returned slice always ends with TokenEOF.
func (l *Lexer) Tokenize() (tokens []Token, comments []Token, err error) {
	for {
		tok := l.NextToken()
		switch tok.Kind {
		case TokenComment, TokenLineComment:
			comments = append(comments, tok)
			continue
		case TokenError:
			return nil, comments, l.err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens, comments, nil
		}
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isJavaLetterByte(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '$'
}

// isMemberStart reports whether ch after "1." starts a member name rather
// than an exponent or a float suffix.
func isMemberStart(ch byte) bool {
	switch ch {
	case 'e', 'E', 'f', 'F', 'd', 'D':
		return false
	}
	return isJavaLetterByte(ch)
}

func isJavaLetter(r rune) bool {
	if r < utf8.RuneSelf {
		return isJavaLetterByte(byte(r))
	}
	return unicode.IsLetter(r) || unicode.Is(unicode.Sc, r)
}

func isJavaLetterOrDigit(r rune) bool {
	if r < utf8.RuneSelf {
		return isJavaLetterByte(byte(r)) || isDigit(byte(r))
	}
	return isJavaLetter(r) || unicode.IsDigit(r)
}
