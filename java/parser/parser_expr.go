package parser

import "strings"

// binaryPrecedence ranks binary operators from loosest to tightest.
// Tokens missing from the table end a binary expression.
var binaryPrecedence = map[TokenKind]int{
	TokenOr:         1,
	TokenAnd:        2,
	TokenBitOr:      3,
	TokenBitXor:     4,
	TokenBitAnd:     5,
	TokenEQ:         6,
	TokenNE:         6,
	TokenLT:         7,
	TokenGT:         7,
	TokenLE:         7,
	TokenGE:         7,
	TokenInstanceof: 7,
	TokenShl:        8,
	TokenShr:        8,
	TokenUShr:       8,
	TokenPlus:       9,
	TokenMinus:      9,
	TokenStar:       10,
	TokenSlash:      10,
	TokenPercent:    10,
}

var assignOperators = map[TokenKind]bool{
	TokenAssign:        true,
	TokenPlusAssign:    true,
	TokenMinusAssign:   true,
	TokenStarAssign:    true,
	TokenSlashAssign:   true,
	TokenPercentAssign: true,
	TokenAndAssign:     true,
	TokenOrAssign:      true,
	TokenXorAssign:     true,
	TokenShlAssign:     true,
	TokenShrAssign:     true,
	TokenUShrAssign:    true,
}

// parseExpression parses a full expression: a lambda, or a conditional
// expression optionally followed by an assignment.
func (p *Parser) parseExpression() *Node {
	if p.isLambda() {
		return p.parseLambda()
	}
	left := p.parseTernaryExpr()
	if !assignOperators[p.peek().Kind] {
		return left
	}
	op := p.peek()
	switch left.Kind {
	case KindIdentifier, KindFieldAccess, KindArrayAccess:
	default:
		return p.failAt(op, "unexpected type: required variable, found value")
	}
	p.advance()
	node := p.startNodeFrom(KindAssignExpr, left)
	node.Token = &op
	node.AddChild(p.parseExpression())
	return p.finishNode(node)
}

func (p *Parser) parseTernaryExpr() *Node {
	cond := p.parseBinaryExpr(1)
	if !p.check(TokenQuestion) {
		return cond
	}
	node := p.startNodeFrom(KindTernaryExpr, cond)
	p.advance()
	node.AddChild(p.parseExpression())
	p.expect(TokenColon)
	if p.isLambda() {
		node.AddChild(p.parseLambda())
	} else {
		node.AddChild(p.parseTernaryExpr())
	}
	return p.finishNode(node)
}

// parseBinaryExpr climbs operator precedence starting at minPrec. All
// binary operators are left-associative.
func (p *Parser) parseBinaryExpr(minPrec int) *Node {
	left := p.parseUnaryExpr()
	for {
		op := p.peek()
		prec, ok := binaryPrecedence[op.Kind]
		if !ok || prec < minPrec {
			return left
		}
		if op.Kind == TokenInstanceof {
			left = p.parseInstanceof(left)
			continue
		}
		p.advance()
		node := p.startNodeFrom(KindBinaryExpr, left)
		node.Token = &op
		node.AddChild(p.parseBinaryExpr(prec + 1))
		left = p.finishNode(node)
	}
}

func (p *Parser) parseInstanceof(expr *Node) *Node {
	node := p.startNodeFrom(KindInstanceofExpr, expr)
	p.expect(TokenInstanceof)
	if p.looksLikePattern() {
		if !p.require(ProdPatternInstanceof) {
			return node
		}
		node.AddChild(p.parsePattern())
	} else {
		node.AddChild(p.parseType())
	}
	return p.finishNode(node)
}

func (p *Parser) parseUnaryExpr() *Node {
	tok := p.peek()
	switch tok.Kind {
	case TokenPlus, TokenMinus, TokenIncrement, TokenDecrement, TokenNot, TokenBitNot:
		p.advance()
		node := p.startNodeAt(KindUnaryExpr, tok)
		node.Token = &tok
		node.AddChild(p.parseUnaryExpr())
		return p.finishNode(node)
	case TokenLParen:
		if p.isCast() {
			return p.parseCast()
		}
	}
	return p.parsePostfixExpr()
}

// isCast decides whether the parenthesis at the current position opens a
// cast. A primitive type in parentheses always does. A reference type only
// does when the next token can start an operand that is not itself a
// binary or unary operator.
func (p *Parser) isCast() bool {
	i := p.pos + 1
	primitive := isPrimitive(p.kindAt(p.scanAnnotations(i)))
	j, ok := p.scanType(i)
	if !ok {
		return false
	}
	for !primitive && p.kindAt(j) == TokenBitAnd {
		if j, ok = p.scanType(j + 1); !ok {
			return false
		}
	}
	if p.kindAt(j) != TokenRParen {
		return false
	}
	if primitive {
		return true
	}
	switch next := p.kindAt(j + 1); {
	case isIdentifierKind(next), next.IsLiteral(), isPrimitive(next):
		return true
	case next == TokenLParen, next == TokenNot, next == TokenBitNot,
		next == TokenThis, next == TokenSuper, next == TokenNew, next == TokenSwitch:
		return true
	}
	return false
}

func (p *Parser) parseCast() *Node {
	node := p.startNode(KindCastExpr)
	p.expect(TokenLParen)
	typ := p.parseType()
	if p.check(TokenBitAnd) {
		inter := p.startNodeFrom(KindIntersectionType, typ)
		for p.accept(TokenBitAnd) {
			inter.AddChild(p.parseType())
		}
		typ = p.finishNode(inter)
	}
	node.AddChild(typ)
	p.expect(TokenRParen)
	if p.isLambda() {
		node.AddChild(p.parseLambda())
	} else {
		node.AddChild(p.parseUnaryExpr())
	}
	return p.finishNode(node)
}

func (p *Parser) parsePostfixExpr() *Node {
	expr := p.parseSelectors(p.parsePrimary())
	for p.match(TokenIncrement, TokenDecrement) {
		op := p.advance()
		node := p.startNodeFrom(KindPostfixExpr, expr)
		node.Token = &op
		expr = p.finishNode(node)
	}
	return expr
}

func (p *Parser) parsePrimary() *Node {
	tok := p.peek()
	switch {
	case tok.Kind.IsLiteral():
		return p.parseLiteral()
	case tok.Kind == TokenLParen:
		p.advance()
		expr := p.parseExpression()
		p.expect(TokenRParen)
		expr.ParenDepth++
		expr.Span.Start = tok.Span.Start
		return p.finishNode(expr)
	case tok.Kind == TokenThis:
		return leaf(KindThis, p.advance())
	case tok.Kind == TokenSuper:
		node := leaf(KindSuper, p.advance())
		if !p.match(TokenDot, TokenColonColon, TokenLParen) {
			return p.fail("expected '.', found %s", describe(p.peek()))
		}
		return node
	case tok.Kind == TokenNew:
		return p.parseNew(nil)
	case tok.Kind == TokenSwitch:
		return p.parseSwitchExpr()
	case tok.Kind == TokenVoid:
		typ := leaf(KindType, p.advance())
		if !p.check(TokenDot) || p.peekN(1).Kind != TokenClass {
			return p.fail("expected '.class', found %s", describe(p.peek()))
		}
		return typ
	case isPrimitive(tok.Kind):
		typ := p.parseType()
		if !p.check(TokenColonColon) && (!p.check(TokenDot) || p.peekN(1).Kind != TokenClass) {
			return p.fail("expected '.class', found %s", describe(p.peek()))
		}
		return typ
	case isIdentifierKind(tok.Kind):
		if p.peekN(1).Kind == TokenLT {
			if j, ok := p.scanType(p.pos); ok && p.kindAt(j) == TokenColonColon {
				return p.parseType()
			}
		}
		return leaf(KindIdentifier, p.advance())
	}
	if p.failGatedWord(tok) {
		return &Node{Kind: KindError}
	}
	return p.fail("illegal start of expression: %s", describe(tok))
}

func (p *Parser) parseLiteral() *Node {
	tok := p.peek()
	switch tok.Kind {
	case TokenTextBlock:
		if !p.require(ProdTextBlocks) {
			return &Node{Kind: KindError}
		}
	case TokenIntLiteral, TokenFloatLiteral:
		lit := strings.ToLower(tok.Literal)
		if strings.HasPrefix(lit, "0b") && !p.require(ProdBinaryLiterals) {
			return &Node{Kind: KindError}
		}
		if tok.Kind == TokenFloatLiteral && strings.HasPrefix(lit, "0x") && !p.require(ProdHexFloatLiterals) {
			return &Node{Kind: KindError}
		}
		if strings.Contains(lit, "_") && !p.require(ProdUnderscoresInNumbers) {
			return &Node{Kind: KindError}
		}
	}
	return leaf(KindLiteral, p.advance())
}

// parseSelectors applies member access, array access, calls, method
// references and class literals to expr.
func (p *Parser) parseSelectors(expr *Node) *Node {
	for p.err == nil {
		switch p.peek().Kind {
		case TokenDot:
			expr = p.parseDotSelector(expr)
		case TokenLBracket:
			if p.peekN(1).Kind == TokenRBracket {
				expr = p.parseArrayTypeSelector(expr)
				continue
			}
			node := p.startNodeFrom(KindArrayAccess, expr)
			p.advance()
			node.AddChild(p.parseExpression())
			p.expect(TokenRBracket)
			expr = p.finishNode(node)
		case TokenLParen:
			if !isCallee(expr) {
				return expr
			}
			node := p.startNodeFrom(KindCallExpr, expr)
			node.AddChild(p.parseArguments())
			expr = p.finishNode(node)
		case TokenColonColon:
			expr = p.parseMethodRef(expr)
		default:
			return expr
		}
	}
	return expr
}

// isCallee reports whether expr names a method that can be invoked.
func isCallee(expr *Node) bool {
	if expr.ParenDepth > 0 {
		return false
	}
	switch expr.Kind {
	case KindIdentifier, KindThis, KindSuper:
		return true
	case KindFieldAccess:
		return expr.Children[len(expr.Children)-1].Kind == KindIdentifier
	}
	return false
}

func (p *Parser) parseDotSelector(expr *Node) *Node {
	next := p.peekN(1)
	switch next.Kind {
	case TokenClass:
		typ := p.toType(expr)
		node := p.startNodeFrom(KindClassLiteral, typ)
		p.advance()
		p.advance()
		return p.finishNode(node)
	case TokenNew:
		p.advance()
		return p.parseNew(expr)
	}

	node := p.startNodeFrom(KindFieldAccess, expr)
	p.advance()
	switch {
	case next.Kind == TokenThis:
		node.AddChild(leaf(KindThis, p.advance()))
	case next.Kind == TokenSuper:
		node.AddChild(leaf(KindSuper, p.advance()))
		if !p.match(TokenDot, TokenColonColon, TokenLParen) {
			return p.fail("expected '.', found %s", describe(p.peek()))
		}
	case next.Kind == TokenLT:
		node.AddChild(p.parseTypeArguments())
		node.AddChild(p.identifier())
		if !p.check(TokenLParen) {
			return p.fail("expected '(', found %s", describe(p.peek()))
		}
	default:
		node.AddChild(p.identifier())
	}
	return p.finishNode(node)
}

// parseArrayTypeSelector handles "Name[]" in expression position, which
// is only legal before ".class" or "::".
func (p *Parser) parseArrayTypeSelector(expr *Node) *Node {
	typ := p.parseArrayDims(p.toType(expr))
	if p.check(TokenColonColon) {
		return typ
	}
	if !p.check(TokenDot) || p.peekN(1).Kind != TokenClass {
		return p.fail("expected '.class', found %s", describe(p.peek()))
	}
	return typ
}

// toType reinterprets an expression parsed as a name, such as "a.b.C",
// as a type.
func (p *Parser) toType(expr *Node) *Node {
	switch expr.Kind {
	case KindType, KindArrayType:
		return expr
	}
	var parts []*Node
	for e := expr; ; {
		if e.ParenDepth > 0 {
			return p.failAt(p.peek(), "expected type")
		}
		if e.Kind == KindIdentifier {
			parts = append([]*Node{e}, parts...)
			break
		}
		if e.Kind != KindFieldAccess || len(e.Children) != 2 || e.Children[1].Kind != KindIdentifier {
			return p.failAt(p.peek(), "expected type")
		}
		parts = append([]*Node{e.Children[1]}, parts...)
		e = e.Children[0]
	}
	name := &Node{Kind: KindQualifiedName, Span: expr.Span}
	for _, part := range parts {
		name.AddChild(part)
	}
	typ := &Node{Kind: KindType, Span: expr.Span}
	typ.AddChild(name)
	return typ
}

func (p *Parser) parseMethodRef(target *Node) *Node {
	node := p.startNodeFrom(KindMethodRef, target)
	if !p.require(ProdMethodReferences) {
		return node
	}
	p.expect(TokenColonColon)
	if p.check(TokenLT) {
		node.AddChild(p.parseTypeArguments())
	}
	if p.check(TokenNew) || isIdentifierKind(p.peek().Kind) {
		tok := p.advance()
		node.Token = &tok
	} else {
		return p.fail("expected identifier, found %s", describe(p.peek()))
	}
	return p.finishNode(node)
}

func (p *Parser) parseArguments() *Node {
	node := p.startNode(KindArguments)
	p.expect(TokenLParen)
	if p.more(TokenRParen) {
		for {
			node.AddChild(p.parseExpression())
			if !p.accept(TokenComma) {
				break
			}
		}
	}
	p.expect(TokenRParen)
	return p.finishNode(node)
}

// parseNew parses class instance and array creation. outer is the
// qualifying instance of "outer.new Inner()", or nil.
func (p *Parser) parseNew(outer *Node) *Node {
	start := p.peek()
	var node *Node
	if outer != nil {
		node = p.startNodeFrom(KindNewExpr, outer)
	} else {
		node = p.startNode(KindNewExpr)
	}
	p.expect(TokenNew)
	if p.check(TokenLT) {
		node.AddChild(p.parseTypeArguments())
	}

	typ := p.startNode(KindType)
	if !p.parseTypeAnnotations(typ) {
		return node
	}
	tok := p.peek()
	switch {
	case isPrimitive(tok.Kind):
		p.advance()
		typ.Token = &tok
		if !p.check(TokenLBracket) {
			return p.fail("expected '[', found %s", describe(p.peek()))
		}
	case isIdentifierKind(tok.Kind):
		p.parseCreatedType(typ)
	default:
		return p.fail("expected type, found %s", describe(tok))
	}
	p.finishNode(typ)

	if p.check(TokenLBracket) {
		if outer != nil || len(node.Children) > 0 || typ.Flags.Has(FlagDiamond) {
			return p.fail("unexpected '['")
		}
		return p.parseNewArray(start, typ)
	}

	node.AddChild(typ)
	node.AddChild(p.parseArguments())
	if p.check(TokenLBrace) {
		node.AddChild(p.parseClassBody(KindClassDecl))
	}
	return p.finishNode(node)
}

// parseCreatedType is parseClassTypeSegments that also accepts "<>".
func (p *Parser) parseCreatedType(typ *Node) {
	for {
		typ.AddChild(p.parseQualifiedName())
		if p.check(TokenLT) {
			if p.peekN(1).Kind == TokenGT {
				if !p.require(ProdDiamond) {
					return
				}
				p.advance()
				p.advance()
				typ.Flags |= FlagDiamond
			} else {
				typ.AddChild(p.parseTypeArguments())
			}
		}
		if !p.check(TokenDot) || !isIdentifierKind(p.peekN(1).Kind) {
			return
		}
		p.advance()
	}
}

func (p *Parser) parseNewArray(start Token, elem *Node) *Node {
	node := p.startNodeAt(KindNewArrayExpr, start)
	var dims *Node
	if p.check(TokenLBracket) && p.peekN(1).Kind != TokenRBracket {
		dims = p.startNode(KindArrayDims)
		for p.check(TokenLBracket) && p.peekN(1).Kind != TokenRBracket {
			p.advance()
			dims.AddChild(p.parseExpression())
			p.expect(TokenRBracket)
		}
		p.finishNode(dims)
	}
	typ := p.parseArrayDims(elem)
	node.AddChild(typ)
	node.AddChild(dims)

	switch {
	case p.check(TokenLBrace) && dims != nil:
		return p.fail("array creation with both dimension expression and initialization is illegal")
	case p.check(TokenLBrace):
		node.AddChild(p.parseArrayInitializer())
	case dims == nil:
		return p.fail("array dimension missing")
	}
	return p.finishNode(node)
}

func (p *Parser) parseSwitchExpr() *Node {
	node := p.startNode(KindSwitchExpr)
	if !p.require(ProdSwitchExpressions) {
		return node
	}
	p.expect(TokenSwitch)
	node.AddChild(p.parseParExpression())
	p.parseSwitchBody(node, true)
	return p.finishNode(node)
}

// isLambda recognizes "x ->" and "(...) ->" at the current position.
func (p *Parser) isLambda() bool {
	switch k := p.kindAt(p.pos); {
	case isIdentifierKind(k):
		return p.kindAt(p.pos+1) == TokenArrow
	case k == TokenLParen:
		j, ok := p.scanBalanced(p.pos)
		return ok && p.kindAt(j) == TokenArrow
	}
	return false
}

func (p *Parser) parseLambda() *Node {
	node := p.startNode(KindLambdaExpr)
	if !p.require(ProdLambdas) {
		return node
	}
	params := p.startNode(KindLambdaParameters)
	if !p.check(TokenLParen) {
		params.AddChild(p.identifier())
	} else {
		p.advance()
		inferred := isIdentifierKind(p.peek().Kind) &&
			(p.peekN(1).Kind == TokenComma || p.peekN(1).Kind == TokenRParen)
		for p.more(TokenRParen) {
			if inferred {
				params.AddChild(p.identifier())
			} else {
				params.AddChild(p.parseLambdaParameter())
			}
			if !p.accept(TokenComma) {
				break
			}
		}
		p.expect(TokenRParen)
	}
	node.AddChild(p.finishNode(params))
	p.expect(TokenArrow)
	if p.check(TokenLBrace) {
		node.AddChild(p.parseBlock())
	} else {
		node.AddChild(p.parseExpression())
	}
	return p.finishNode(node)
}

func (p *Parser) parseLambdaParameter() *Node {
	i := p.scanModifiers(p.pos)
	if p.kindAt(i) == TokenVar && isIdentifierKind(p.kindAt(i+1)) {
		if !p.requireAt(ProdVarLambdaParameters, p.tokenAt(i)) {
			return &Node{Kind: KindError}
		}
	}
	return p.parseParameter()
}
