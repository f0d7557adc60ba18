package parser

// parseType parses a primitive, class or array type. Annotations in front
// of the type are type annotations.
func (p *Parser) parseType() *Node {
	node := p.startNode(KindType)
	if !p.parseTypeAnnotations(node) {
		return node
	}

	tok := p.peek()
	switch {
	case isPrimitive(tok.Kind):
		p.advance()
		node.Token = &tok
	case isIdentifierKind(tok.Kind):
		p.parseClassTypeSegments(node)
	default:
		return p.fail("expected type, found %s", describe(tok))
	}
	return p.parseArrayDims(p.finishNode(node))
}

// parseLocalType is parseType plus "var" where a local variable type may
// be inferred.
func (p *Parser) parseLocalType() *Node {
	if p.check(TokenVar) && isIdentifierKind(p.peekN(1).Kind) {
		return leaf(KindType, p.advance())
	}
	return p.parseType()
}

func (p *Parser) parseTypeAnnotations(node *Node) bool {
	for p.check(TokenAt) {
		if !p.require(ProdTypeAnnotations) {
			return false
		}
		node.AddChild(p.parseAnnotation())
	}
	return true
}

// parseClassTypeSegments parses Name<Args>.Name<Args>... into node.
func (p *Parser) parseClassTypeSegments(node *Node) {
	node.AddChild(p.parseQualifiedName())
	if p.check(TokenLT) {
		node.AddChild(p.parseTypeArguments())
	}
	for p.check(TokenDot) && isIdentifierKind(p.peekN(1).Kind) {
		p.advance()
		node.AddChild(p.parseQualifiedName())
		if p.check(TokenLT) {
			node.AddChild(p.parseTypeArguments())
		}
	}
}

// parseArrayDims wraps elem in one ArrayType per "[]" that follows,
// including annotated dimensions like "@A []".
func (p *Parser) parseArrayDims(elem *Node) *Node {
	for {
		i := p.scanAnnotations(p.pos)
		if p.kindAt(i) != TokenLBracket || p.kindAt(i+1) != TokenRBracket {
			return elem
		}
		arr := &Node{Kind: KindArrayType, Span: Span{Start: elem.Span.Start}}
		if !p.parseTypeAnnotations(arr) {
			return arr
		}
		p.expect(TokenLBracket)
		p.expect(TokenRBracket)
		arr.AddChild(elem)
		elem = p.finishNode(arr)
	}
}

func (p *Parser) parseTypeArguments() *Node {
	node := p.startNode(KindTypeArguments)
	if !p.require(ProdGenerics) {
		return node
	}
	p.expect(TokenLT)
	for {
		node.AddChild(p.parseTypeArgument())
		if !p.accept(TokenComma) {
			break
		}
	}
	p.expectGT()
	return p.finishNode(node)
}

func (p *Parser) parseTypeArgument() *Node {
	if p.kindAt(p.scanAnnotations(p.pos)) != TokenQuestion {
		return p.parseType()
	}
	node := p.startNode(KindWildcard)
	if !p.parseTypeAnnotations(node) {
		return node
	}
	p.expect(TokenQuestion)
	if p.match(TokenExtends, TokenSuper) {
		tok := p.advance()
		node.Token = &tok
		node.AddChild(p.parseType())
	}
	return p.finishNode(node)
}

// expectGT consumes one '>' closing a type argument list. Shift and
// compound tokens such as '>>' are split so that nested lists close one
// level at a time.
func (p *Parser) expectGT() {
	switch p.peek().Kind {
	case TokenGT:
		p.advance()
	case TokenShr:
		p.splitToken(TokenGT)
	case TokenUShr:
		p.splitToken(TokenShr)
	case TokenGE:
		p.splitToken(TokenAssign)
	case TokenShrAssign:
		p.splitToken(TokenGE)
	case TokenUShrAssign:
		p.splitToken(TokenShrAssign)
	default:
		p.fail("expected '>', found %s", describe(p.peek()))
	}
}

// splitToken drops the leading '>' of the current token, leaving the
// remainder in its place.
func (p *Parser) splitToken(remainder TokenKind) {
	tok := p.tokens[p.pos]
	start := tok.Span.Start
	start.Offset++
	start.Column++
	p.tokens[p.pos] = Token{
		Kind:    remainder,
		Literal: tok.Literal[1:],
		Span:    Span{Start: start, End: tok.Span.End},
	}
}

// The scan functions below look ahead over raw tokens without building
// nodes or reporting failures. Each takes a token index and returns the
// index just past what it recognized.

func (p *Parser) scanAnnotation(i int) (int, bool) {
	if p.kindAt(i) != TokenAt || p.kindAt(i+1) == TokenInterface {
		return i, false
	}
	i++
	if !isIdentifierKind(p.kindAt(i)) {
		return i, false
	}
	i++
	for p.kindAt(i) == TokenDot && isIdentifierKind(p.kindAt(i+1)) {
		i += 2
	}
	if p.kindAt(i) == TokenLParen {
		return p.scanBalanced(i)
	}
	return i, true
}

func (p *Parser) scanAnnotations(i int) int {
	for {
		next, ok := p.scanAnnotation(i)
		if !ok {
			return i
		}
		i = next
	}
}

// scanModifiers skips annotations and modifier keywords.
func (p *Parser) scanModifiers(i int) int {
	for {
		i = p.scanAnnotations(i)
		if _, ok := modifierTokens[p.kindAt(i)]; !ok {
			return i
		}
		i++
	}
}

// scanBalanced skips from an opening parenthesis to just past its match.
func (p *Parser) scanBalanced(i int) (int, bool) {
	depth := 0
	for {
		switch p.kindAt(i) {
		case TokenLParen:
			depth++
		case TokenRParen:
			depth--
			if depth == 0 {
				return i + 1, true
			}
		case TokenEOF:
			return i, false
		}
		i++
	}
}

func (p *Parser) scanTypeArgs(i int) (int, bool) {
	depth := 0
	for {
		switch k := p.kindAt(i); {
		case k == TokenLT:
			depth++
		case k == TokenGT:
			depth--
		case k == TokenShr:
			depth -= 2
		case k == TokenUShr:
			depth -= 3
		case k == TokenAt:
			next, ok := p.scanAnnotation(i)
			if !ok {
				return i, false
			}
			i = next
			continue
		case isIdentifierKind(k), isPrimitive(k),
			k == TokenDot, k == TokenComma, k == TokenQuestion,
			k == TokenExtends, k == TokenSuper, k == TokenBitAnd,
			k == TokenLBracket, k == TokenRBracket:
		default:
			return i, false
		}
		i++
		if depth == 0 {
			return i, true
		}
		if depth < 0 {
			return i, false
		}
	}
}

func (p *Parser) scanType(i int) (int, bool) {
	i = p.scanAnnotations(i)
	switch k := p.kindAt(i); {
	case isPrimitive(k):
		i++
	case isIdentifierKind(k):
		i++
		for {
			if p.kindAt(i) == TokenLT {
				next, ok := p.scanTypeArgs(i)
				if !ok {
					return i, false
				}
				i = next
			}
			j := i
			if p.kindAt(j) != TokenDot {
				break
			}
			j = p.scanAnnotations(j + 1)
			if !isIdentifierKind(p.kindAt(j)) {
				break
			}
			i = j + 1
		}
	default:
		return i, false
	}
	for {
		j := p.scanAnnotations(i)
		if p.kindAt(j) != TokenLBracket || p.kindAt(j+1) != TokenRBracket {
			return i, true
		}
		i = j + 2
	}
}
