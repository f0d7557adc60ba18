package parser

import "fmt"

// Parser is a recursive-descent parser over a fully lexed token slice.
// Productions whose legality depends on the language level consult the
// compiled Features. The first failure wins: it is recorded, the parser
// jumps to the end of input and every production unwinds from there.
type Parser struct {
	features Features
	tokens   []Token
	pos      int
	context  string
	err      *ParseError
}

func newParser(tokens []Token, features Features, context string) *Parser {
	if len(tokens) == 0 {
		tokens = []Token{{Kind: TokenEOF}}
	}
	return &Parser{features: features, tokens: tokens, context: context}
}

// Err returns the first grammar failure, if any.
func (p *Parser) Err() *ParseError {
	return p.err
}

func (p *Parser) tokenAt(i int) Token {
	if i < len(p.tokens) {
		return p.tokens[i]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) kindAt(i int) TokenKind {
	return p.tokenAt(i).Kind
}

func (p *Parser) peek() Token {
	return p.tokenAt(p.pos)
}

func (p *Parser) peekN(n int) Token {
	return p.tokenAt(p.pos + n)
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			return true
		}
	}
	return false
}

// accept consumes the next token if it has the given kind.
func (p *Parser) accept(kind TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

// more reports whether a list continues: the next token is neither the
// closing token nor the end of input.
func (p *Parser) more(closing TokenKind) bool {
	return !p.check(closing) && !p.check(TokenEOF)
}

func (p *Parser) expect(kind TokenKind) *Token {
	if p.check(kind) {
		tok := p.advance()
		return &tok
	}
	p.fail("expected %s, found %s", kind.Quoted(), describe(p.peek()))
	return nil
}

// mustProgress guards loops whose body might not consume anything. Call
// it at the top of an iteration and the returned func at the bottom.
func (p *Parser) mustProgress() func() {
	saved := p.pos
	return func() {
		if p.pos == saved && p.err == nil {
			p.fail("unexpected %s", describe(p.peek()))
		}
	}
}

func (p *Parser) fail(format string, args ...any) *Node {
	return p.failAt(p.peek(), format, args...)
}

func (p *Parser) failAt(tok Token, format string, args ...any) *Node {
	if p.err == nil {
		p.err = &ParseError{
			Pos:     tok.Span.Start,
			Message: fmt.Sprintf(format, args...),
			Context: p.context,
			Version: p.features.Version(),
		}
	}
	p.pos = len(p.tokens) - 1
	return &Node{Kind: KindError, Span: tok.Span}
}

// require fails unless prod is legal on the active language level.
func (p *Parser) require(prod Production) bool {
	return p.requireAt(prod, p.peek())
}

func (p *Parser) requireAt(prod Production, tok Token) bool {
	if p.features.Allows(prod) {
		return true
	}
	if p.err == nil {
		p.failAt(tok, "%s", errUnsupported(prod, p.features.Version()))
	}
	return false
}

func (p *Parser) startNode(kind NodeKind) *Node {
	return p.startNodeAt(kind, p.peek())
}

func (p *Parser) startNodeAt(kind NodeKind, tok Token) *Node {
	return &Node{Kind: kind, Span: Span{Start: tok.Span.Start}}
}

// startNodeFrom opens a node whose first child has already been parsed,
// as for binary operators and postfix selectors.
func (p *Parser) startNodeFrom(kind NodeKind, first *Node) *Node {
	node := &Node{Kind: kind, Span: Span{Start: first.Span.Start}}
	node.AddChild(first)
	return node
}

func (p *Parser) finishNode(n *Node) *Node {
	n.Span.End = n.Span.Start
	if p.pos > 0 {
		if end := p.tokens[p.pos-1].Span.End; end.Offset >= n.Span.Start.Offset {
			n.Span.End = end
		}
	}
	return n
}

func leaf(kind NodeKind, tok Token) *Node {
	return &Node{Kind: kind, Token: &tok, Span: tok.Span}
}

// isIdentifierKind reports whether tokens of kind k can name things.
// Contextual keywords stay usable as identifiers wherever the grammar
// does not expect the keyword.
func isIdentifierKind(k TokenKind) bool {
	return k == TokenIdent || (k.IsContextualKeyword() && k != TokenNonSealed)
}

func isPrimitive(k TokenKind) bool {
	switch k {
	case TokenBoolean, TokenByte, TokenChar, TokenShort,
		TokenInt, TokenLong, TokenFloat, TokenDouble:
		return true
	}
	return false
}

func describe(tok Token) string {
	switch {
	case tok.Kind == TokenIdent:
		return fmt.Sprintf("identifier %q", tok.Literal)
	case tok.Kind >= TokenIntLiteral && tok.Kind <= TokenTextBlock:
		return fmt.Sprintf("%s %s", tok.Kind, tok.Literal)
	}
	return tok.Kind.Quoted()
}

func (p *Parser) identifier() *Node {
	if !isIdentifierKind(p.peek().Kind) {
		return p.fail("expected identifier, found %s", describe(p.peek()))
	}
	return leaf(KindIdentifier, p.advance())
}

func (p *Parser) parseQualifiedName() *Node {
	node := p.startNode(KindQualifiedName)
	node.AddChild(p.identifier())
	for p.check(TokenDot) && isIdentifierKind(p.peekN(1).Kind) {
		p.advance()
		node.AddChild(p.identifier())
	}
	return p.finishNode(node)
}

// gatedWords are contextual keywords that lex as identifiers on language
// levels that lack them. Where only the keyword would fit, they are
// reported as an unsupported production rather than a bare syntax error.
var gatedWords = map[string]Production{
	"enum":    ProdEnums,
	"record":  ProdRecords,
	"module":  ProdModules,
	"open":    ProdModules,
	"sealed":  ProdSealed,
	"permits": ProdSealed,
	"assert":  ProdAssert,
}

func (p *Parser) failGatedWord(tok Token) bool {
	if tok.Kind != TokenIdent {
		return false
	}
	prod, ok := gatedWords[tok.Literal]
	if !ok || p.features.Allows(prod) {
		return false
	}
	return !p.requireAt(prod, tok)
}

// looksLikeEnumDecl recognizes "enum Name {" and "enum Name implements"
// on language levels where enum is still an identifier.
func (p *Parser) looksLikeEnumDecl() bool {
	tok := p.peek()
	if tok.Kind != TokenIdent || tok.Literal != "enum" || !isIdentifierKind(p.peekN(1).Kind) {
		return false
	}
	return p.peekN(2).Kind == TokenLBrace || p.peekN(2).Kind == TokenImplements
}

func (p *Parser) parseCompilationUnit() *Node {
	node := p.startNode(KindCompilationUnit)

	if p.check(TokenPackage) || p.isAnnotatedPackage() {
		node.AddChild(p.parsePackageDecl())
	}
	for p.check(TokenImport) {
		node.AddChild(p.parseImportDecl())
	}

	if p.isModuleDecl() {
		node.AddChild(p.parseModuleDecl())
		if !p.check(TokenEOF) {
			p.fail("unexpected %s after module declaration", describe(p.peek()))
		}
		return p.finishNode(node)
	}
	if tok := p.peek(); (tok.Literal == "module" || tok.Literal == "open") && isIdentifierKind(p.peekN(1).Kind) {
		p.failGatedWord(tok)
	}

	for !p.check(TokenEOF) {
		if p.accept(TokenSemicolon) {
			continue
		}
		progress := p.mustProgress()
		node.AddChild(p.parseTypeDecl())
		progress()
	}
	return p.finishNode(node)
}

func (p *Parser) isAnnotatedPackage() bool {
	if !p.check(TokenAt) {
		return false
	}
	return p.kindAt(p.scanAnnotations(p.pos)) == TokenPackage
}

func (p *Parser) isModuleDecl() bool {
	i := p.scanAnnotations(p.pos)
	if p.kindAt(i) == TokenOpen {
		i++
	}
	return p.kindAt(i) == TokenModule
}

func (p *Parser) parsePackageDecl() *Node {
	node := p.startNode(KindPackageDecl)
	for p.check(TokenAt) {
		node.AddChild(p.parseAnnotation())
	}
	p.expect(TokenPackage)
	node.AddChild(p.parseQualifiedName())
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseImportDecl() *Node {
	node := p.startNode(KindImportDecl)
	p.expect(TokenImport)
	if p.check(TokenStatic) {
		if !p.require(ProdStaticImport) {
			return node
		}
		p.advance()
		node.Flags |= FlagStatic
	}
	node.AddChild(p.parseQualifiedName())
	if p.accept(TokenDot) {
		p.expect(TokenStar)
		node.Flags |= FlagOnDemand
	}
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseModuleDecl() *Node {
	node := p.startNode(KindModuleDecl)
	if !p.require(ProdModules) {
		return node
	}
	for p.check(TokenAt) {
		node.AddChild(p.parseAnnotation())
	}
	if p.accept(TokenOpen) {
		node.Flags |= FlagOpen
	}
	p.expect(TokenModule)
	node.AddChild(p.parseQualifiedName())

	p.expect(TokenLBrace)
	for p.more(TokenRBrace) {
		node.AddChild(p.parseModuleDirective())
	}
	p.expect(TokenRBrace)
	return p.finishNode(node)
}

func (p *Parser) parseModuleDirective() *Node {
	var node *Node
	switch p.peek().Kind {
	case TokenRequires:
		node = p.startNode(KindRequiresDirective)
		p.advance()
		for {
			if p.check(TokenStatic) {
				node.Flags |= FlagStatic
			} else if p.check(TokenTransitive) && isIdentifierKind(p.peekN(1).Kind) {
				node.Flags |= FlagTransitive
			} else {
				break
			}
			p.advance()
		}
		node.AddChild(p.parseQualifiedName())
	case TokenExports, TokenOpens:
		kind := KindExportsDirective
		if p.check(TokenOpens) {
			kind = KindOpensDirective
		}
		node = p.startNode(kind)
		p.advance()
		node.AddChild(p.parseQualifiedName())
		if p.accept(TokenTo) {
			p.parseNameList(node)
		}
	case TokenUses:
		node = p.startNode(KindUsesDirective)
		p.advance()
		node.AddChild(p.parseQualifiedName())
	case TokenProvides:
		node = p.startNode(KindProvidesDirective)
		p.advance()
		node.AddChild(p.parseQualifiedName())
		p.expect(TokenWith)
		p.parseNameList(node)
	default:
		return p.fail("expected module directive, found %s", describe(p.peek()))
	}
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseNameList(node *Node) {
	for {
		node.AddChild(p.parseQualifiedName())
		if !p.accept(TokenComma) {
			return
		}
	}
}

func (p *Parser) parseTypeDecl() *Node {
	start := p.peek()
	mods := p.parseModifiers()
	if decl := p.parseTypeDeclRest(start, mods); decl != nil {
		return decl
	}
	if tok := p.peek(); tok.Literal == "record" && isIdentifierKind(p.peekN(1).Kind) {
		p.failGatedWord(tok)
	}
	if p.looksLikeEnumDecl() {
		p.failGatedWord(p.peek())
	}
	return p.fail("expected class, interface, enum or record declaration, found %s", describe(p.peek()))
}

// parseTypeDeclRest parses a class-like declaration after its modifiers,
// or returns nil when the next token does not start one.
func (p *Parser) parseTypeDeclRest(start Token, mods *Node) *Node {
	switch p.peek().Kind {
	case TokenClass:
		return p.parseClassDecl(start, mods)
	case TokenInterface:
		return p.parseInterfaceDecl(start, mods)
	case TokenEnum:
		return p.parseEnumDecl(start, mods)
	case TokenRecord:
		if isIdentifierKind(p.peekN(1).Kind) {
			return p.parseRecordDecl(start, mods)
		}
	case TokenAt:
		if p.peekN(1).Kind == TokenInterface {
			return p.parseAnnotationDecl(start, mods)
		}
	}
	return nil
}

func (p *Parser) parseModifiers() *Node {
	node := p.startNode(KindModifiers)
	for {
		tok := p.peek()
		if tok.Kind == TokenAt {
			if p.peekN(1).Kind == TokenInterface {
				break
			}
			node.AddChild(p.parseAnnotation())
			continue
		}
		mod, ok := modifierTokens[tok.Kind]
		if !ok {
			break
		}
		if mod == ModDefault && !p.require(ProdDefaultMethods) {
			break
		}
		if node.Explicit.HasAny(mod) {
			p.fail("repeated modifier %s", tok.Kind.Quoted())
			break
		}
		p.advance()
		node.Explicit |= mod
		if err := checkModifiers(node.Explicit); err != nil {
			p.failAt(tok, "%v", err)
			break
		}
	}
	return p.finishNode(node)
}

func (p *Parser) parseAnnotation() *Node {
	node := p.startNode(KindAnnotation)
	if !p.require(ProdAnnotations) {
		return node
	}
	p.expect(TokenAt)
	node.AddChild(p.parseQualifiedName())
	if p.accept(TokenLParen) {
		if !p.check(TokenRParen) {
			node.AddChild(p.parseMemberList())
		}
		p.expect(TokenRParen)
	}
	return p.finishNode(node)
}

// parseMemberList parses the inside of an annotation's parentheses. A
// lone value without a name becomes a single shorthand pair.
func (p *Parser) parseMemberList() *Node {
	node := p.startNode(KindMemberList)
	if !isIdentifierKind(p.peek().Kind) || p.peekN(1).Kind != TokenAssign {
		pair := p.startNode(KindMemberValuePair)
		pair.Flags |= FlagShorthand
		pair.AddChild(p.parseMemberValue())
		node.AddChild(p.finishNode(pair))
		return p.finishNode(node)
	}
	for {
		pair := p.startNode(KindMemberValuePair)
		pair.AddChild(p.identifier())
		p.expect(TokenAssign)
		pair.AddChild(p.parseMemberValue())
		node.AddChild(p.finishNode(pair))
		if !p.accept(TokenComma) {
			break
		}
	}
	return p.finishNode(node)
}

func (p *Parser) parseMemberValue() *Node {
	switch p.peek().Kind {
	case TokenAt:
		return p.parseAnnotation()
	case TokenLBrace:
		node := p.startNode(KindMemberValueArray)
		p.parseInitializerElements(node, (*Parser).parseMemberValue)
		return p.finishNode(node)
	}
	return p.parseTernaryExpr()
}

// parseInitializerElements parses "{ a, b, }" into node. The list may be
// empty and may end with a comma.
func (p *Parser) parseInitializerElements(node *Node, element func(*Parser) *Node) {
	p.expect(TokenLBrace)
	if p.check(TokenComma) && p.peekN(1).Kind == TokenRBrace {
		p.advance()
	}
	for p.more(TokenRBrace) {
		node.AddChild(element(p))
		if !p.accept(TokenComma) {
			break
		}
	}
	p.expect(TokenRBrace)
}

func (p *Parser) parseClassDecl(start Token, mods *Node) *Node {
	node := p.startNodeAt(KindClassDecl, start)
	node.AddChild(mods)
	p.expect(TokenClass)
	node.AddChild(p.identifier())
	if p.check(TokenLT) {
		node.AddChild(p.parseTypeParameters())
	}
	if p.check(TokenExtends) {
		extends := p.parseClause(KindExtendsClause, TokenExtends, TokenComma)
		if len(extends.Children) > 1 {
			p.failAt(start, "a class can extend only one class")
		}
		node.AddChild(extends)
	}
	if p.check(TokenImplements) {
		node.AddChild(p.parseClause(KindImplementsClause, TokenImplements, TokenComma))
	}
	if p.check(TokenPermits) {
		node.AddChild(p.parseClause(KindPermitsClause, TokenPermits, TokenComma))
	}
	node.AddChild(p.parseClassBody(KindClassDecl))
	return p.finishNode(node)
}

func (p *Parser) parseInterfaceDecl(start Token, mods *Node) *Node {
	node := p.startNodeAt(KindInterfaceDecl, start)
	node.AddChild(mods)
	p.expect(TokenInterface)
	node.AddChild(p.identifier())
	if p.check(TokenLT) {
		node.AddChild(p.parseTypeParameters())
	}
	if p.check(TokenExtends) {
		node.AddChild(p.parseClause(KindExtendsClause, TokenExtends, TokenComma))
	}
	if p.check(TokenPermits) {
		node.AddChild(p.parseClause(KindPermitsClause, TokenPermits, TokenComma))
	}
	node.AddChild(p.parseClassBody(KindInterfaceDecl))
	return p.finishNode(node)
}

func (p *Parser) parseEnumDecl(start Token, mods *Node) *Node {
	node := p.startNodeAt(KindEnumDecl, start)
	node.AddChild(mods)
	p.expect(TokenEnum)
	node.AddChild(p.identifier())
	if p.check(TokenImplements) {
		node.AddChild(p.parseClause(KindImplementsClause, TokenImplements, TokenComma))
	}

	body := p.startNode(KindClassBody)
	p.expect(TokenLBrace)
	for isIdentifierKind(p.peek().Kind) || p.check(TokenAt) {
		body.AddChild(p.parseEnumConstant())
		if !p.accept(TokenComma) {
			break
		}
	}
	if p.accept(TokenSemicolon) {
		p.parseMembers(body, KindEnumDecl)
	}
	p.expect(TokenRBrace)
	node.AddChild(p.finishNode(body))
	return p.finishNode(node)
}

func (p *Parser) parseEnumConstant() *Node {
	node := p.startNode(KindEnumConstant)
	mods := p.startNode(KindModifiers)
	for p.check(TokenAt) {
		mods.AddChild(p.parseAnnotation())
	}
	node.AddChild(p.finishNode(mods))
	node.AddChild(p.identifier())
	if p.check(TokenLParen) {
		node.AddChild(p.parseArguments())
	}
	if p.check(TokenLBrace) {
		node.AddChild(p.parseClassBody(KindClassDecl))
	}
	return p.finishNode(node)
}

func (p *Parser) parseRecordDecl(start Token, mods *Node) *Node {
	node := p.startNodeAt(KindRecordDecl, start)
	node.AddChild(mods)
	p.expect(TokenRecord)
	node.AddChild(p.identifier())
	if p.check(TokenLT) {
		node.AddChild(p.parseTypeParameters())
	}
	node.AddChild(p.parseParameters())
	if p.check(TokenImplements) {
		node.AddChild(p.parseClause(KindImplementsClause, TokenImplements, TokenComma))
	}
	node.AddChild(p.parseClassBody(KindRecordDecl))
	return p.finishNode(node)
}

func (p *Parser) parseAnnotationDecl(start Token, mods *Node) *Node {
	node := p.startNodeAt(KindAnnotationDecl, start)
	if !p.require(ProdAnnotations) {
		return node
	}
	node.AddChild(mods)
	p.expect(TokenAt)
	p.expect(TokenInterface)
	node.AddChild(p.identifier())
	node.AddChild(p.parseClassBody(KindAnnotationDecl))
	return p.finishNode(node)
}

// parseClause parses a keyword followed by a separated list of types, as
// in "implements A, B" or a type parameter bound "extends A & B".
func (p *Parser) parseClause(kind NodeKind, keyword, sep TokenKind) *Node {
	node := p.startNode(kind)
	p.expect(keyword)
	for {
		node.AddChild(p.parseType())
		if !p.accept(sep) {
			break
		}
	}
	return p.finishNode(node)
}

func (p *Parser) parseClassBody(owner NodeKind) *Node {
	node := p.startNode(KindClassBody)
	p.expect(TokenLBrace)
	p.parseMembers(node, owner)
	p.expect(TokenRBrace)
	return p.finishNode(node)
}

func (p *Parser) parseMembers(body *Node, owner NodeKind) {
	for p.more(TokenRBrace) {
		if p.accept(TokenSemicolon) {
			continue
		}
		progress := p.mustProgress()
		body.AddChild(p.parseClassMember(owner))
		progress()
	}
}

func (p *Parser) parseClassMember(owner NodeKind) *Node {
	start := p.peek()
	if p.check(TokenLBrace) || (p.check(TokenStatic) && p.peekN(1).Kind == TokenLBrace) {
		node := p.startNode(KindInitializer)
		if p.accept(TokenStatic) {
			node.Flags |= FlagStatic
		}
		node.AddChild(p.parseBlock())
		return p.finishNode(node)
	}

	mods := p.parseModifiers()
	if decl := p.parseTypeDeclRest(start, mods); decl != nil {
		return decl
	}
	if p.looksLikeEnumDecl() {
		p.failGatedWord(p.peek())
	}

	var typeParams *Node
	if p.check(TokenLT) {
		typeParams = p.parseTypeParameters()
	}

	if isIdentifierKind(p.peek().Kind) {
		switch p.peekN(1).Kind {
		case TokenLParen:
			return p.parseConstructor(start, mods, typeParams, false)
		case TokenLBrace:
			if owner == KindRecordDecl && typeParams == nil {
				return p.parseConstructor(start, mods, typeParams, true)
			}
		}
	}

	var result *Node
	if p.check(TokenVoid) {
		result = leaf(KindType, p.advance())
	} else {
		result = p.parseType()
	}
	if isIdentifierKind(p.peek().Kind) && p.peekN(1).Kind == TokenLParen {
		return p.parseMethod(start, mods, typeParams, result, owner)
	}
	if typeParams != nil || result.Token != nil && result.Token.Kind == TokenVoid {
		return p.fail("expected method declaration, found %s", describe(p.peek()))
	}
	return p.parseField(start, mods, result)
}

func (p *Parser) parseConstructor(start Token, mods, typeParams *Node, compact bool) *Node {
	node := p.startNodeAt(KindConstructorDecl, start)
	node.AddChild(mods)
	node.AddChild(typeParams)
	node.AddChild(p.identifier())
	if compact {
		node.Flags |= FlagCompact
	} else {
		node.AddChild(p.parseParameters())
	}
	if p.check(TokenThrows) {
		node.AddChild(p.parseClause(KindThrowsList, TokenThrows, TokenComma))
	}
	node.AddChild(p.parseConstructorBody())
	return p.finishNode(node)
}

// parseConstructorBody parses a block and turns a leading this(...) or
// super(...) call into an explicit constructor invocation.
func (p *Parser) parseConstructorBody() *Node {
	block := p.parseBlock()
	if len(block.Children) == 0 {
		return block
	}
	stmt := block.Children[0]
	if stmt.Kind != KindExprStmt || len(stmt.Children) != 1 {
		return block
	}
	call := stmt.Children[0]
	if call.Kind != KindCallExpr || call.ParenDepth > 0 {
		return block
	}
	callee := call.Children[0]
	eci := &Node{Kind: KindExplicitConstructorInvocation, Span: stmt.Span}
	switch {
	case callee.ParenDepth > 0:
		return block
	case callee.Kind == KindThis || callee.Kind == KindSuper:
		eci.AddChild(callee)
	case callee.Kind == KindFieldAccess && callee.Children[len(callee.Children)-1].Kind == KindSuper:
		for _, c := range callee.Children {
			eci.AddChild(c)
		}
	default:
		return block
	}
	eci.AddChild(call.Children[1])
	eci.Parent = block
	block.Children[0] = eci
	return block
}

func (p *Parser) parseMethod(start Token, mods, typeParams, result *Node, owner NodeKind) *Node {
	node := p.startNodeAt(KindMethodDecl, start)
	if owner == KindInterfaceDecl {
		switch {
		case mods.Explicit.Has(ModPrivate):
			p.requireAt(ProdPrivateInterfaceMethods, start)
		case mods.Explicit.Has(ModStatic):
			p.requireAt(ProdStaticInterfaceMethods, start)
		}
	}
	node.AddChild(mods)
	node.AddChild(typeParams)
	node.AddChild(result)
	node.AddChild(p.identifier())
	node.AddChild(p.parseParameters())
	node.Dims = p.parseDims()
	if p.check(TokenThrows) {
		node.AddChild(p.parseClause(KindThrowsList, TokenThrows, TokenComma))
	}
	if owner == KindAnnotationDecl && p.check(TokenDefault) {
		def := p.startNode(KindDefaultValue)
		p.advance()
		def.AddChild(p.parseMemberValue())
		node.AddChild(p.finishNode(def))
	}
	if p.check(TokenLBrace) {
		node.AddChild(p.parseBlock())
	} else {
		p.expect(TokenSemicolon)
	}
	return p.finishNode(node)
}

func (p *Parser) parseField(start Token, mods, typ *Node) *Node {
	node := p.startNodeAt(KindFieldDecl, start)
	node.AddChild(mods)
	node.AddChild(typ)
	p.parseDeclarators(node)
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseDeclarators(node *Node) {
	for {
		node.AddChild(p.parseVariableDeclarator())
		if !p.accept(TokenComma) {
			return
		}
	}
}

func (p *Parser) parseVariableDeclarator() *Node {
	node := p.startNode(KindVariableDeclarator)
	node.AddChild(p.identifier())
	node.Dims = p.parseDims()
	if p.accept(TokenAssign) {
		node.AddChild(p.parseVarInitializer())
	}
	return p.finishNode(node)
}

func (p *Parser) parseVarInitializer() *Node {
	if p.check(TokenLBrace) {
		return p.parseArrayInitializer()
	}
	return p.parseExpression()
}

func (p *Parser) parseArrayInitializer() *Node {
	node := p.startNode(KindArrayInit)
	p.parseInitializerElements(node, (*Parser).parseVarInitializer)
	return p.finishNode(node)
}

// parseDims consumes "[]" pairs after a declarator name.
func (p *Parser) parseDims() int {
	dims := 0
	for p.check(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
		p.advance()
		p.advance()
		dims++
	}
	return dims
}

func (p *Parser) parseParameters() *Node {
	node := p.startNode(KindParameters)
	p.expect(TokenLParen)
	if p.more(TokenRParen) {
		for {
			if len(node.Children) == 0 && p.isReceiverParameter() {
				node.AddChild(p.parseReceiverParameter())
			} else {
				node.AddChild(p.parseParameter())
			}
			if !p.accept(TokenComma) {
				break
			}
		}
	}
	p.expect(TokenRParen)
	return p.finishNode(node)
}

func (p *Parser) isReceiverParameter() bool {
	i, ok := p.scanType(p.pos)
	if !ok {
		return false
	}
	if p.kindAt(i) == TokenThis {
		return true
	}
	return isIdentifierKind(p.kindAt(i)) && p.kindAt(i+1) == TokenDot && p.kindAt(i+2) == TokenThis
}

func (p *Parser) parseReceiverParameter() *Node {
	node := p.startNode(KindReceiverParameter)
	if !p.require(ProdReceiverParameters) {
		return node
	}
	for p.check(TokenAt) {
		node.AddChild(p.parseAnnotation())
	}
	node.AddChild(p.parseType())
	if isIdentifierKind(p.peek().Kind) {
		node.AddChild(p.identifier())
		p.expect(TokenDot)
	}
	p.expect(TokenThis)
	return p.finishNode(node)
}

func (p *Parser) parseParameter() *Node {
	node := p.startNode(KindParameter)
	node.AddChild(p.parseModifiers())
	node.AddChild(p.parseLocalType())
	if p.check(TokenEllipsis) {
		if !p.require(ProdVarargs) {
			return node
		}
		p.advance()
		node.Flags |= FlagVarargs
	}
	node.AddChild(p.identifier())
	node.Dims = p.parseDims()
	return p.finishNode(node)
}

func (p *Parser) parseTypeParameters() *Node {
	node := p.startNode(KindTypeParameters)
	if !p.require(ProdGenerics) {
		return node
	}
	p.expect(TokenLT)
	for {
		node.AddChild(p.parseTypeParameter())
		if !p.accept(TokenComma) {
			break
		}
	}
	p.expectGT()
	return p.finishNode(node)
}

func (p *Parser) parseTypeParameter() *Node {
	node := p.startNode(KindTypeParameter)
	for p.check(TokenAt) {
		if !p.require(ProdTypeAnnotations) {
			return node
		}
		node.AddChild(p.parseAnnotation())
	}
	node.AddChild(p.identifier())
	if p.check(TokenExtends) {
		node.AddChild(p.parseClause(KindExtendsClause, TokenExtends, TokenBitAnd))
	}
	return p.finishNode(node)
}
