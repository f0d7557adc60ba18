package parser

func (p *Parser) parseBlock() *Node {
	node := p.startNode(KindBlock)
	p.expect(TokenLBrace)
	for p.more(TokenRBrace) {
		progress := p.mustProgress()
		node.AddChild(p.parseBlockStatement())
		progress()
	}
	p.expect(TokenRBrace)
	return p.finishNode(node)
}

// parseBlockStatement parses a local class, a local variable declaration
// or a statement.
func (p *Parser) parseBlockStatement() *Node {
	i := p.scanModifiers(p.pos)
	switch p.kindAt(i) {
	case TokenClass, TokenInterface, TokenEnum:
		return p.parseLocalClassDecl()
	case TokenRecord:
		if isIdentifierKind(p.kindAt(i + 1)) {
			return p.parseLocalClassDecl()
		}
	}
	if p.looksLikeEnumDecl() {
		p.failGatedWord(p.peek())
	}
	if p.check(TokenYield) && p.isYieldStatement() {
		return p.parseStatement()
	}
	if p.isLocalVarDecl() {
		node := p.parseLocalVarDecl()
		p.expect(TokenSemicolon)
		return p.finishNode(node)
	}
	return p.parseStatement()
}

func (p *Parser) isLocalVarDecl() bool {
	i, ok := p.scanType(p.scanModifiers(p.pos))
	return ok && isIdentifierKind(p.kindAt(i))
}

func (p *Parser) parseLocalVarDecl() *Node {
	node := p.startNode(KindLocalVarDecl)
	node.AddChild(p.parseModifiers())
	node.AddChild(p.parseLocalType())
	p.parseDeclarators(node)
	return p.finishNode(node)
}

func (p *Parser) parseLocalClassDecl() *Node {
	node := p.startNode(KindLocalClassDecl)
	start := p.peek()
	mods := p.parseModifiers()
	if p.match(TokenInterface, TokenEnum, TokenRecord) && !p.require(ProdLocalTypes) {
		return node
	}
	decl := p.parseTypeDeclRest(start, mods)
	if decl == nil {
		return p.fail("expected local class declaration, found %s", describe(p.peek()))
	}
	node.AddChild(decl)
	return p.finishNode(node)
}

// isYieldStatement tells "yield x;" from uses of a variable named yield.
func (p *Parser) isYieldStatement() bool {
	switch p.peekN(1).Kind {
	case TokenAssign, TokenPlusAssign, TokenMinusAssign, TokenStarAssign,
		TokenSlashAssign, TokenPercentAssign, TokenAndAssign, TokenOrAssign,
		TokenXorAssign, TokenShlAssign, TokenShrAssign, TokenUShrAssign,
		TokenDot, TokenLBracket, TokenColon, TokenSemicolon, TokenColonColon:
		return false
	}
	return true
}

func (p *Parser) parseStatement() *Node {
	tok := p.peek()
	switch tok.Kind {
	case TokenLBrace:
		return p.parseBlock()
	case TokenSemicolon:
		node := p.startNode(KindEmptyStmt)
		p.advance()
		return p.finishNode(node)
	case TokenIf:
		return p.parseIfStmt()
	case TokenFor:
		return p.parseForStmt()
	case TokenWhile:
		return p.parseWhileStmt()
	case TokenDo:
		return p.parseDoStmt()
	case TokenSwitch:
		return p.parseSwitchStmt()
	case TokenReturn:
		return p.parseKeywordStmt(KindReturnStmt, true)
	case TokenThrow:
		return p.parseKeywordStmt(KindThrowStmt, false)
	case TokenBreak:
		return p.parseJumpStmt(KindBreakStmt)
	case TokenContinue:
		return p.parseJumpStmt(KindContinueStmt)
	case TokenTry:
		return p.parseTryStmt()
	case TokenSynchronized:
		return p.parseSynchronizedStmt()
	case TokenAssert:
		return p.parseAssertStmt()
	case TokenYield:
		if p.isYieldStatement() {
			if !p.require(ProdYield) {
				return p.startNode(KindYieldStmt)
			}
			return p.parseKeywordStmt(KindYieldStmt, false)
		}
	}

	if isIdentifierKind(tok.Kind) && p.peekN(1).Kind == TokenColon {
		return p.parseLabeledStmt()
	}
	if tok.Literal == "assert" && p.startsOperand(p.peekN(1).Kind) {
		p.failGatedWord(tok)
	}
	return p.parseExprStmt()
}

// startsOperand reports whether k can begin an operand but cannot
// continue an expression already in progress.
func (p *Parser) startsOperand(k TokenKind) bool {
	switch {
	case isIdentifierKind(k), k.IsLiteral(),
		k == TokenNot, k == TokenBitNot, k == TokenThis, k == TokenNew, k == TokenSuper:
		return true
	}
	return false
}

func (p *Parser) parseExprStmt() *Node {
	node := p.startNode(KindExprStmt)
	expr := p.parseExpression()
	if !isStatementExpression(expr) {
		return p.failAt(p.tokenAt(p.pos), "not a statement")
	}
	node.AddChild(expr)
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

// isStatementExpression reports whether expr may stand alone as a
// statement.
func isStatementExpression(expr *Node) bool {
	if expr.ParenDepth > 0 {
		return false
	}
	switch expr.Kind {
	case KindAssignExpr, KindPostfixExpr, KindCallExpr, KindNewExpr:
		return true
	case KindUnaryExpr:
		op := expr.Operator()
		return op == "++" || op == "--"
	}
	return false
}

// parseKeywordStmt parses "keyword expr;" statements. The expression is
// optional only for return.
func (p *Parser) parseKeywordStmt(kind NodeKind, optional bool) *Node {
	node := p.startNode(kind)
	p.advance()
	if !optional || !p.check(TokenSemicolon) {
		node.AddChild(p.parseExpression())
	}
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseJumpStmt(kind NodeKind) *Node {
	node := p.startNode(kind)
	p.advance()
	if isIdentifierKind(p.peek().Kind) {
		node.AddChild(p.identifier())
	}
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseLabeledStmt() *Node {
	node := p.startNode(KindLabeledStmt)
	node.AddChild(p.identifier())
	p.expect(TokenColon)
	node.AddChild(p.parseStatement())
	return p.finishNode(node)
}

func (p *Parser) parseParExpression() *Node {
	p.expect(TokenLParen)
	expr := p.parseExpression()
	p.expect(TokenRParen)
	return expr
}

func (p *Parser) parseIfStmt() *Node {
	node := p.startNode(KindIfStmt)
	p.expect(TokenIf)
	node.AddChild(p.parseParExpression())
	node.AddChild(p.parseStatement())
	if p.accept(TokenElse) {
		node.AddChild(p.parseStatement())
	}
	return p.finishNode(node)
}

func (p *Parser) parseWhileStmt() *Node {
	node := p.startNode(KindWhileStmt)
	p.expect(TokenWhile)
	node.AddChild(p.parseParExpression())
	node.AddChild(p.parseStatement())
	return p.finishNode(node)
}

func (p *Parser) parseDoStmt() *Node {
	node := p.startNode(KindDoStmt)
	p.expect(TokenDo)
	node.AddChild(p.parseStatement())
	p.expect(TokenWhile)
	node.AddChild(p.parseParExpression())
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseForStmt() *Node {
	start := p.peek()
	p.expect(TokenFor)
	p.expect(TokenLParen)

	if p.isEnhancedFor() {
		node := p.startNodeAt(KindEnhancedForStmt, start)
		if !p.requireAt(ProdEnhancedFor, start) {
			return node
		}
		decl := p.startNode(KindLocalVarDecl)
		decl.AddChild(p.parseModifiers())
		decl.AddChild(p.parseLocalType())
		declarator := p.startNode(KindVariableDeclarator)
		declarator.AddChild(p.identifier())
		decl.AddChild(p.finishNode(declarator))
		node.AddChild(p.finishNode(decl))
		p.expect(TokenColon)
		node.AddChild(p.parseExpression())
		p.expect(TokenRParen)
		node.AddChild(p.parseStatement())
		return p.finishNode(node)
	}

	node := p.startNodeAt(KindForStmt, start)
	init := p.startNode(KindForInit)
	if !p.check(TokenSemicolon) {
		if p.isLocalVarDecl() {
			init.AddChild(p.parseLocalVarDecl())
		} else {
			p.parseStatementExpressions(init)
		}
	}
	node.AddChild(p.finishNode(init))
	p.expect(TokenSemicolon)
	if !p.check(TokenSemicolon) {
		node.AddChild(p.parseExpression())
	}
	p.expect(TokenSemicolon)
	update := p.startNode(KindForUpdate)
	if !p.check(TokenRParen) {
		p.parseStatementExpressions(update)
	}
	node.AddChild(p.finishNode(update))
	p.expect(TokenRParen)
	node.AddChild(p.parseStatement())
	return p.finishNode(node)
}

func (p *Parser) parseStatementExpressions(node *Node) {
	for {
		expr := p.parseExpression()
		if !isStatementExpression(expr) {
			p.fail("not a statement")
			return
		}
		node.AddChild(expr)
		if !p.accept(TokenComma) {
			return
		}
	}
}

func (p *Parser) isEnhancedFor() bool {
	i, ok := p.scanType(p.scanModifiers(p.pos))
	return ok && isIdentifierKind(p.kindAt(i)) && p.kindAt(i+1) == TokenColon
}

func (p *Parser) parseSwitchStmt() *Node {
	node := p.startNode(KindSwitchStmt)
	p.expect(TokenSwitch)
	node.AddChild(p.parseParExpression())
	p.parseSwitchBody(node, false)
	return p.finishNode(node)
}

// parseSwitchBody parses the cases of a switch statement or expression
// into node. All cases must use the same form: rules or labels.
func (p *Parser) parseSwitchBody(node *Node, isExpr bool) {
	p.expect(TokenLBrace)
	for p.more(TokenRBrace) {
		c := p.parseSwitchCase(isExpr)
		if first := node.FirstChildOfKind(KindSwitchCase); first != nil &&
			first.Flags.Has(FlagSwitchRule) != c.Flags.Has(FlagSwitchRule) {
			p.failAt(p.tokenAt(p.pos), "different case kinds used in the switch")
		}
		node.AddChild(c)
	}
	p.expect(TokenRBrace)
}

func (p *Parser) parseSwitchCase(isExpr bool) *Node {
	node := p.startNode(KindSwitchCase)
	if !p.match(TokenCase, TokenDefault) {
		return p.fail("expected 'case' or 'default', found %s", describe(p.peek()))
	}
	for p.match(TokenCase, TokenDefault) {
		label := p.parseSwitchLabel()
		if len(node.Children) > 0 && label.Flags.Has(FlagSwitchRule) {
			return p.failAt(p.tokenAt(p.pos-1), "different case kinds used in the switch")
		}
		node.AddChild(label)
		if label.Flags.Has(FlagSwitchRule) {
			node.Flags |= FlagSwitchRule
			break
		}
	}

	if !node.Flags.Has(FlagSwitchRule) {
		for !p.match(TokenCase, TokenDefault, TokenRBrace, TokenEOF) {
			progress := p.mustProgress()
			node.AddChild(p.parseBlockStatement())
			progress()
		}
		return p.finishNode(node)
	}

	switch p.peek().Kind {
	case TokenLBrace:
		node.AddChild(p.parseBlock())
	case TokenThrow:
		node.AddChild(p.parseKeywordStmt(KindThrowStmt, false))
	default:
		if !isExpr {
			node.AddChild(p.parseExprStmt())
			break
		}
		stmt := p.startNode(KindExprStmt)
		stmt.AddChild(p.parseExpression())
		p.expect(TokenSemicolon)
		node.AddChild(p.finishNode(stmt))
	}
	return p.finishNode(node)
}

func (p *Parser) parseSwitchLabel() *Node {
	node := p.startNode(KindSwitchLabel)
	if p.accept(TokenDefault) {
		node.Flags |= FlagDefault
	} else {
		p.expect(TokenCase)
		for {
			node.AddChild(p.parseCaseConstant())
			if !p.check(TokenComma) {
				break
			}
			if !p.require(ProdMultipleCaseLabels) {
				return node
			}
			p.advance()
			if p.check(TokenDefault) {
				p.advance()
				node.Flags |= FlagDefault
				break
			}
		}
		if p.check(TokenWhen) {
			guard := p.startNode(KindGuard)
			p.advance()
			guard.AddChild(p.parseTernaryExpr())
			node.AddChild(p.finishNode(guard))
		}
	}

	if p.check(TokenArrow) {
		if !p.require(ProdSwitchRules) {
			return node
		}
		p.advance()
		node.Flags |= FlagSwitchRule
	} else {
		p.expect(TokenColon)
	}
	return p.finishNode(node)
}

func (p *Parser) parseCaseConstant() *Node {
	if p.looksLikePattern() {
		if !p.require(ProdSwitchPatterns) {
			return p.startNode(KindTypePattern)
		}
		return p.parsePattern()
	}
	if p.check(TokenNull) && !p.require(ProdSwitchPatterns) {
		return p.startNode(KindLiteral)
	}
	return p.parseTernaryExpr()
}

// looksLikePattern recognizes "Type name" and "Type(" at the current
// position.
func (p *Parser) looksLikePattern() bool {
	i, ok := p.scanType(p.scanModifiers(p.pos))
	if !ok {
		return false
	}
	return (isIdentifierKind(p.kindAt(i)) && p.kindAt(i) != TokenWhen) || p.kindAt(i) == TokenLParen
}

func (p *Parser) parsePattern() *Node {
	start := p.peek()
	mods := p.parseModifiers()
	typ := p.parseType()

	if p.check(TokenLParen) && mods.Explicit == 0 && len(mods.Children) == 0 {
		node := p.startNodeAt(KindRecordPattern, start)
		if !p.requireAt(ProdRecordPatterns, start) {
			return node
		}
		node.AddChild(typ)
		p.advance()
		if p.more(TokenRParen) {
			for {
				node.AddChild(p.parsePattern())
				if !p.accept(TokenComma) {
					break
				}
			}
		}
		p.expect(TokenRParen)
		return p.finishNode(node)
	}

	node := p.startNodeAt(KindTypePattern, start)
	param := p.startNodeAt(KindParameter, start)
	param.AddChild(mods)
	param.AddChild(typ)
	param.AddChild(p.identifier())
	node.AddChild(p.finishNode(param))
	return p.finishNode(node)
}

func (p *Parser) parseTryStmt() *Node {
	node := p.startNode(KindTryStmt)
	p.expect(TokenTry)

	if p.check(TokenLParen) {
		if !p.require(ProdTryWithResources) {
			return node
		}
		list := p.startNode(KindResourceList)
		p.advance()
		for p.more(TokenRParen) {
			list.AddChild(p.parseResource())
			if !p.accept(TokenSemicolon) {
				break
			}
		}
		if len(list.Children) == 0 {
			return p.fail("expected resource, found %s", describe(p.peek()))
		}
		p.expect(TokenRParen)
		node.AddChild(p.finishNode(list))
	}

	node.AddChild(p.parseBlock())
	for p.check(TokenCatch) {
		node.AddChild(p.parseCatchClause())
	}
	if p.check(TokenFinally) {
		clause := p.startNode(KindFinallyClause)
		p.advance()
		clause.AddChild(p.parseBlock())
		node.AddChild(p.finishNode(clause))
	}
	if len(node.Children) == 1 {
		return p.fail("'try' without 'catch', 'finally' or resource declarations")
	}
	return p.finishNode(node)
}

func (p *Parser) parseResource() *Node {
	if p.isLocalVarDecl() {
		node := p.startNode(KindLocalVarDecl)
		node.AddChild(p.parseModifiers())
		node.AddChild(p.parseLocalType())
		declarator := p.startNode(KindVariableDeclarator)
		declarator.AddChild(p.identifier())
		p.expect(TokenAssign)
		declarator.AddChild(p.parseExpression())
		node.AddChild(p.finishNode(declarator))
		return p.finishNode(node)
	}
	if !p.require(ProdEffectivelyFinalResources) {
		return p.startNode(KindIdentifier)
	}
	expr := p.parsePostfixExpr()
	if expr.Kind != KindIdentifier && expr.Kind != KindFieldAccess {
		return p.fail("expected resource, found %s", describe(p.peek()))
	}
	return expr
}

func (p *Parser) parseCatchClause() *Node {
	node := p.startNode(KindCatchClause)
	p.expect(TokenCatch)
	p.expect(TokenLParen)

	param := p.startNode(KindParameter)
	param.AddChild(p.parseModifiers())
	typ := p.parseType()
	if p.check(TokenBitOr) {
		if !p.require(ProdMultiCatch) {
			return node
		}
		union := p.startNodeFrom(KindUnionType, typ)
		for p.accept(TokenBitOr) {
			union.AddChild(p.parseType())
		}
		typ = p.finishNode(union)
	}
	param.AddChild(typ)
	param.AddChild(p.identifier())
	node.AddChild(p.finishNode(param))

	p.expect(TokenRParen)
	node.AddChild(p.parseBlock())
	return p.finishNode(node)
}

func (p *Parser) parseSynchronizedStmt() *Node {
	node := p.startNode(KindSynchronizedStmt)
	p.expect(TokenSynchronized)
	node.AddChild(p.parseParExpression())
	node.AddChild(p.parseBlock())
	return p.finishNode(node)
}

func (p *Parser) parseAssertStmt() *Node {
	node := p.startNode(KindAssertStmt)
	if !p.require(ProdAssert) {
		return node
	}
	p.expect(TokenAssert)
	node.AddChild(p.parseExpression())
	if p.accept(TokenColon) {
		node.AddChild(p.parseExpression())
	}
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}
