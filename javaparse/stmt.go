package javaparse

// parseBlock parses `{ stmt... }` (spec §3 BLOCK, §4.4).
func (p *parser) parseBlock() (NodeID, error) {
	if err := p.enter(); err != nil {
		return NoNode, err
	}
	defer p.leave()

	start, err := p.expect(TokLBrace)
	if err != nil {
		return NoNode, err
	}

	var children []NodeID
	children = p.attachComments(children)
	for !p.at(TokRBrace) {
		if p.at(TokEOF) {
			return NoNode, expectedTokenError(p.src, TokRBrace, p.peek())
		}
		s, err := p.parseBlockStatement()
		if err != nil {
			return NoNode, err
		}
		children = append(children, s)
		children = p.attachComments(children)
	}

	end, err := p.expect(TokRBrace)
	if err != nil {
		return NoNode, err
	}
	return p.arena.newParent(NodeBlock, start.Start, end.End(), children)
}

// parseBlockStatement parses one statement inside a block: a nested type
// declaration, a local variable declaration, or a regular statement.
func (p *parser) parseBlockStatement() (NodeID, error) {
	if p.at(TokClass) || p.at(TokInterface) || p.at(TokEnum) ||
		(p.at(TokAt) && p.peekAt(1).Kind == TokInterface) ||
		(p.ctx.version.supports(featureRecords) && p.isContextualKeyword("record") && p.peekAt(1).Kind == TokIdentifier && p.peekAt(2).Kind == TokLParen) {
		return p.parseTypeDeclaration()
	}
	if p.looksLikeLocalVarDecl() {
		return p.parseLocalVariableDeclaration()
	}
	return p.parseStatement()
}

// looksLikeLocalVarDecl distinguishes a local variable declaration from an
// expression statement by speculatively parsing a type followed by an
// identifier (spec §4.4's "bounded speculation" technique, reused here for
// the same ambiguity class as the cast/lambda disambiguation).
func (p *parser) looksLikeLocalVarDecl() bool {
	if p.isVarKeyword() && p.peekAt(1).Kind == TokIdentifier {
		return true
	}
	if p.atAny(TokFinal) {
		return true
	}
	if p.at(TokAt) {
		return true
	}
	switch p.peek().Kind {
	case TokBoolean, TokByte, TokChar, TokShort, TokInt, TokLong, TokFloat, TokDouble:
		return true
	case TokIdentifier:
	default:
		return false
	}

	// arena nodes allocated during this probe are harmless: the cursor
	// snapshot below is always restored, and nothing keeps a reference to
	// the probed nodes.
	save := p.ctx.save()
	defer p.ctx.restore(save)

	if _, err := p.parseType(); err != nil {
		return false
	}
	return p.at(TokIdentifier) || p.at(TokEllipsis)
}

func (p *parser) parseLocalVariableDeclaration() (NodeID, error) {
	start := p.peek()
	anns, _, err := p.parseModifiersAndAnnotations()
	if err != nil {
		return NoNode, err
	}
	if len(anns) > 0 {
		_, s, _ := p.arena.Get(anns[0])
		start = Token{Start: s}
	}

	var typ NodeID
	if p.isVarKeyword() {
		tok := p.advance()
		typ, err = p.arena.newNode(NodeIdentifier, tok.Start, tok.End())
		if err != nil {
			return NoNode, err
		}
	} else {
		typ, err = p.parseType()
		if err != nil {
			return NoNode, err
		}
	}

	var declarators []NodeID
	for {
		name, err := p.expect(TokIdentifier)
		if err != nil {
			return NoNode, err
		}
		decl, err := p.parseVariableDeclaratorRest(name)
		if err != nil {
			return NoNode, err
		}
		declarators = append(declarators, decl)
		if p.at(TokComma) {
			p.advance()
			continue
		}
		break
	}

	end, err := p.expect(TokSemi)
	if err != nil {
		return NoNode, err
	}

	children := append([]NodeID{}, anns...)
	children = append(children, typ)
	children = append(children, declarators...)
	return p.arena.newParent(NodeLocalVariableDeclaration, start.Start, end.End(), children)
}

// parseStatement parses one non-declaration statement (spec §3's statement
// node kinds, §4.4).
func (p *parser) parseStatement() (NodeID, error) {
	if err := p.enter(); err != nil {
		return NoNode, err
	}
	defer p.leave()

	switch {
	case p.at(TokLBrace):
		return p.parseBlock()
	case p.at(TokIf):
		return p.parseIfStatement()
	case p.at(TokFor):
		return p.parseForOrEnhancedFor()
	case p.at(TokWhile):
		return p.parseWhileStatement()
	case p.at(TokDo):
		return p.parseDoStatement()
	case p.at(TokReturn):
		return p.parseReturnStatement()
	case p.at(TokBreak):
		return p.parseBreakStatement()
	case p.at(TokContinue):
		return p.parseContinueStatement()
	case p.at(TokThrow):
		return p.parseThrowStatement()
	case p.at(TokSynchronized):
		return p.parseSynchronizedStatement()
	case p.at(TokAssert):
		return p.parseAssertStatement()
	case p.at(TokTry):
		return p.parseTryStatement()
	case p.at(TokSwitch):
		return p.parseSwitchStatementOrExpressionStatement()
	case p.isContextualKeyword("yield") && p.statementFollowsYieldValue():
		return p.parseYieldStatement()
	case p.at(TokSemi):
		tok := p.advance()
		return p.arena.newNode(NodeBlock, tok.Start, tok.End())
	case p.at(TokIdentifier) && p.peekAt(1).Kind == TokColon:
		return p.parseLabeledStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// statementFollowsYieldValue disambiguates the contextual `yield` keyword
// (Java 13+ switch expressions) from an ordinary identifier named `yield`
// used as an expression-statement target: treated as the yield statement
// only when not immediately followed by something that can only continue an
// expression-statement reading of the identifier (assignment, call, `.`,
// etc).
func (p *parser) statementFollowsYieldValue() bool {
	switch p.peekAt(1).Kind {
	case TokAssign, TokDot, TokLParen, TokSemi, TokPlusPlus, TokMinusMinus,
		TokLBracket, TokColonColon:
		return false
	}
	return true
}

func (p *parser) parseIfStatement() (NodeID, error) {
	start, err := p.expect(TokIf)
	if err != nil {
		return NoNode, err
	}
	if _, err := p.expect(TokLParen); err != nil {
		return NoNode, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return NoNode, err
	}
	if _, err := p.expect(TokRParen); err != nil {
		return NoNode, err
	}
	thenStmt, err := p.parseStatement()
	if err != nil {
		return NoNode, err
	}
	children := []NodeID{cond, thenStmt}
	if p.at(TokElse) {
		p.advance()
		elseStmt, err := p.parseStatement()
		if err != nil {
			return NoNode, err
		}
		children = append(children, elseStmt)
	}
	_, _, lastEnd := p.arena.Get(children[len(children)-1])
	return p.arena.newParent(NodeIfStatement, start.Start, lastEnd, children)
}

// parseForOrEnhancedFor disambiguates `for (init; cond; update)` from
// `for (Type name : expr)` by speculatively scanning for a top-level colon
// before the matching ')'.
func (p *parser) parseForOrEnhancedFor() (NodeID, error) {
	start, err := p.expect(TokFor)
	if err != nil {
		return NoNode, err
	}
	if _, err := p.expect(TokLParen); err != nil {
		return NoNode, err
	}

	if p.isEnhancedForAhead() {
		return p.parseEnhancedForTail(start)
	}
	return p.parseForTail(start)
}

// isEnhancedForAhead scans forward from the cursor (already past the '(')
// for a top-level ':' before the matching ')', ignoring nested parens and
// brackets.
func (p *parser) isEnhancedForAhead() bool {
	depth := 0
	for i := 0; ; i++ {
		tok := p.peekAt(i)
		switch tok.Kind {
		case TokLParen, TokLBracket:
			depth++
		case TokRParen:
			if depth == 0 {
				return false
			}
			depth--
		case TokRBracket:
			depth--
		case TokColon:
			if depth == 0 {
				return true
			}
		case TokSemi:
			if depth == 0 {
				return false
			}
		case TokEOF:
			return false
		}
		if i > 100000 {
			return false
		}
	}
}

func (p *parser) parseEnhancedForTail(start Token) (NodeID, error) {
	_, _, err := p.parseModifiersAndAnnotations()
	if err != nil {
		return NoNode, err
	}

	var typ NodeID
	if p.isVarKeyword() {
		tok := p.advance()
		typ, err = p.arena.newNode(NodeIdentifier, tok.Start, tok.End())
	} else {
		typ, err = p.parseType()
	}
	if err != nil {
		return NoNode, err
	}

	name, err := p.expect(TokIdentifier)
	if err != nil {
		return NoNode, err
	}
	if _, err := p.expect(TokColon); err != nil {
		return NoNode, err
	}
	iterable, err := p.parseExpression()
	if err != nil {
		return NoNode, err
	}
	if _, err := p.expect(TokRParen); err != nil {
		return NoNode, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return NoNode, err
	}

	nameID, err := p.arena.newNode(NodeIdentifier, name.Start, name.End())
	if err != nil {
		return NoNode, err
	}
	_, _, bodyEnd := p.arena.Get(body)
	return p.arena.newParent(NodeEnhancedForStatement, start.Start, bodyEnd, []NodeID{typ, nameID, iterable, body})
}

func (p *parser) parseForTail(start Token) (NodeID, error) {
	var children []NodeID

	if !p.at(TokSemi) {
		init, err := p.parseForInit()
		if err != nil {
			return NoNode, err
		}
		children = append(children, init...)
	}
	if _, err := p.expect(TokSemi); err != nil {
		return NoNode, err
	}

	if !p.at(TokSemi) {
		cond, err := p.parseExpression()
		if err != nil {
			return NoNode, err
		}
		children = append(children, cond)
	}
	if _, err := p.expect(TokSemi); err != nil {
		return NoNode, err
	}

	if !p.at(TokRParen) {
		upd, err := p.parseExpressionList()
		if err != nil {
			return NoNode, err
		}
		children = append(children, upd...)
	}
	if _, err := p.expect(TokRParen); err != nil {
		return NoNode, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return NoNode, err
	}
	children = append(children, body)

	_, _, bodyEnd := p.arena.Get(body)
	return p.arena.newParent(NodeForStatement, start.Start, bodyEnd, children)
}

// parseForInit parses either a local variable declaration's components
// (without the trailing ';', which the caller consumes) or a list of
// expressions.
func (p *parser) parseForInit() ([]NodeID, error) {
	if p.looksLikeLocalVarDecl() {
		start := p.peek()
		anns, _, err := p.parseModifiersAndAnnotations()
		if err != nil {
			return nil, err
		}
		var typ NodeID
		if p.isVarKeyword() {
			tok := p.advance()
			typ, err = p.arena.newNode(NodeIdentifier, tok.Start, tok.End())
		} else {
			typ, err = p.parseType()
		}
		if err != nil {
			return nil, err
		}
		var declarators []NodeID
		for {
			name, err := p.expect(TokIdentifier)
			if err != nil {
				return nil, err
			}
			decl, err := p.parseVariableDeclaratorRest(name)
			if err != nil {
				return nil, err
			}
			declarators = append(declarators, decl)
			if p.at(TokComma) {
				p.advance()
				continue
			}
			break
		}
		lastDecl := declarators[len(declarators)-1]
		_, _, end := p.arena.Get(lastDecl)
		children := append([]NodeID{}, anns...)
		children = append(children, typ)
		children = append(children, declarators...)
		decl, err := p.arena.newParent(NodeLocalVariableDeclaration, start.Start, end, children)
		if err != nil {
			return nil, err
		}
		return []NodeID{decl}, nil
	}
	return p.parseExpressionList()
}

func (p *parser) parseExpressionList() ([]NodeID, error) {
	var out []NodeID
	e, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	out = append(out, e)
	for p.at(TokComma) {
		p.advance()
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (p *parser) parseWhileStatement() (NodeID, error) {
	start, err := p.expect(TokWhile)
	if err != nil {
		return NoNode, err
	}
	if _, err := p.expect(TokLParen); err != nil {
		return NoNode, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return NoNode, err
	}
	if _, err := p.expect(TokRParen); err != nil {
		return NoNode, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return NoNode, err
	}
	_, _, end := p.arena.Get(body)
	return p.arena.newParent(NodeWhileStatement, start.Start, end, []NodeID{cond, body})
}

func (p *parser) parseDoStatement() (NodeID, error) {
	start, err := p.expect(TokDo)
	if err != nil {
		return NoNode, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return NoNode, err
	}
	if _, err := p.expect(TokWhile); err != nil {
		return NoNode, err
	}
	if _, err := p.expect(TokLParen); err != nil {
		return NoNode, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return NoNode, err
	}
	if _, err := p.expect(TokRParen); err != nil {
		return NoNode, err
	}
	end, err := p.expect(TokSemi)
	if err != nil {
		return NoNode, err
	}
	return p.arena.newParent(NodeDoStatement, start.Start, end.End(), []NodeID{body, cond})
}

func (p *parser) parseReturnStatement() (NodeID, error) {
	start, err := p.expect(TokReturn)
	if err != nil {
		return NoNode, err
	}
	var children []NodeID
	if !p.at(TokSemi) {
		e, err := p.parseExpression()
		if err != nil {
			return NoNode, err
		}
		children = append(children, e)
	}
	end, err := p.expect(TokSemi)
	if err != nil {
		return NoNode, err
	}
	return p.arena.newParent(NodeReturnStatement, start.Start, end.End(), children)
}

func (p *parser) parseBreakStatement() (NodeID, error) {
	start, err := p.expect(TokBreak)
	if err != nil {
		return NoNode, err
	}
	if p.at(TokIdentifier) {
		p.advance()
	}
	end, err := p.expect(TokSemi)
	if err != nil {
		return NoNode, err
	}
	return p.arena.newNode(NodeBreakStatement, start.Start, end.End())
}

func (p *parser) parseContinueStatement() (NodeID, error) {
	start, err := p.expect(TokContinue)
	if err != nil {
		return NoNode, err
	}
	if p.at(TokIdentifier) {
		p.advance()
	}
	end, err := p.expect(TokSemi)
	if err != nil {
		return NoNode, err
	}
	return p.arena.newNode(NodeContinueStatement, start.Start, end.End())
}

func (p *parser) parseThrowStatement() (NodeID, error) {
	start, err := p.expect(TokThrow)
	if err != nil {
		return NoNode, err
	}
	e, err := p.parseExpression()
	if err != nil {
		return NoNode, err
	}
	end, err := p.expect(TokSemi)
	if err != nil {
		return NoNode, err
	}
	return p.arena.newParent(NodeThrowStatement, start.Start, end.End(), []NodeID{e})
}

func (p *parser) parseSynchronizedStatement() (NodeID, error) {
	start, err := p.expect(TokSynchronized)
	if err != nil {
		return NoNode, err
	}
	if _, err := p.expect(TokLParen); err != nil {
		return NoNode, err
	}
	lock, err := p.parseExpression()
	if err != nil {
		return NoNode, err
	}
	if _, err := p.expect(TokRParen); err != nil {
		return NoNode, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return NoNode, err
	}
	_, _, end := p.arena.Get(body)
	return p.arena.newParent(NodeSynchronizedStatement, start.Start, end, []NodeID{lock, body})
}

func (p *parser) parseAssertStatement() (NodeID, error) {
	start, err := p.expect(TokAssert)
	if err != nil {
		return NoNode, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return NoNode, err
	}
	children := []NodeID{cond}
	if p.at(TokColon) {
		p.advance()
		msg, err := p.parseExpression()
		if err != nil {
			return NoNode, err
		}
		children = append(children, msg)
	}
	end, err := p.expect(TokSemi)
	if err != nil {
		return NoNode, err
	}
	return p.arena.newParent(NodeAssertStatement, start.Start, end.End(), children)
}

// parseTryStatement parses try-with-resources, catch (including
// multi-catch `catch (A | B e)`), and finally (spec's "Supplemented
// features": try-with-resources/catch-multi).
func (p *parser) parseTryStatement() (NodeID, error) {
	start, err := p.expect(TokTry)
	if err != nil {
		return NoNode, err
	}

	var children []NodeID
	if p.at(TokLParen) {
		p.advance()
		for {
			res, err := p.parseResource()
			if err != nil {
				return NoNode, err
			}
			children = append(children, res)
			if p.at(TokSemi) {
				p.advance()
				if p.at(TokRParen) {
					break
				}
				continue
			}
			break
		}
		if _, err := p.expect(TokRParen); err != nil {
			return NoNode, err
		}
	}

	body, err := p.parseBlock()
	if err != nil {
		return NoNode, err
	}
	children = append(children, body)
	_, _, lastEnd := p.arena.Get(body)

	for p.at(TokCatch) {
		c, err := p.parseCatchClause()
		if err != nil {
			return NoNode, err
		}
		children = append(children, c)
		_, _, lastEnd = p.arena.Get(c)
	}

	if p.at(TokFinally) {
		p.advance()
		fin, err := p.parseBlock()
		if err != nil {
			return NoNode, err
		}
		children = append(children, fin)
		_, _, lastEnd = p.arena.Get(fin)
	}

	return p.arena.newParent(NodeTryStatement, start.Start, lastEnd, children)
}

func (p *parser) parseResource() (NodeID, error) {
	start := p.peek()
	if p.looksLikeLocalVarDecl() {
		_, _, err := p.parseModifiersAndAnnotations()
		if err != nil {
			return NoNode, err
		}
		typ, err := p.parseType()
		if err != nil {
			return NoNode, err
		}
		name, err := p.expect(TokIdentifier)
		if err != nil {
			return NoNode, err
		}
		if _, err := p.expect(TokAssign); err != nil {
			return NoNode, err
		}
		init, err := p.parseExpression()
		if err != nil {
			return NoNode, err
		}
		nameID, err := p.arena.newNode(NodeIdentifier, name.Start, name.End())
		if err != nil {
			return NoNode, err
		}
		_, _, end := p.arena.Get(init)
		return p.arena.newParent(NodeResource, start.Start, end, []NodeID{typ, nameID, init})
	}
	// effectively-final-variable resource: a bare expression naming an
	// existing AutoCloseable.
	e, err := p.parseExpression()
	if err != nil {
		return NoNode, err
	}
	_, eStart, eEnd := p.arena.Get(e)
	return p.arena.newParent(NodeResource, eStart, eEnd, []NodeID{e})
}

func (p *parser) parseCatchClause() (NodeID, error) {
	start, err := p.expect(TokCatch)
	if err != nil {
		return NoNode, err
	}
	if _, err := p.expect(TokLParen); err != nil {
		return NoNode, err
	}
	_, _, err = p.parseModifiersAndAnnotations()
	if err != nil {
		return NoNode, err
	}

	var types []NodeID
	t, err := p.parseType()
	if err != nil {
		return NoNode, err
	}
	types = append(types, t)
	for p.at(TokOr) {
		p.advance()
		t, err := p.parseType()
		if err != nil {
			return NoNode, err
		}
		types = append(types, t)
	}

	name, err := p.expect(TokIdentifier)
	if err != nil {
		return NoNode, err
	}
	if _, err := p.expect(TokRParen); err != nil {
		return NoNode, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return NoNode, err
	}

	nameID, err := p.arena.newNode(NodeIdentifier, name.Start, name.End())
	if err != nil {
		return NoNode, err
	}
	children := append(types, nameID, body)
	_, _, end := p.arena.Get(body)
	return p.arena.newParent(NodeCatchClause, start.Start, end, children)
}

// parseSwitchStatementOrExpressionStatement parses a `switch` at statement
// position. Such a token always starts a NodeSwitchStatement; what follows
// the closing brace is not inspected. A switch used as an expression (e.g.
// on the right of `=`) is reached through parsePrimary instead, which calls
// parseSwitchCore with NodeSwitchExpression.
func (p *parser) parseSwitchStatementOrExpressionStatement() (NodeID, error) {
	return p.parseSwitchCore(NodeSwitchStatement)
}

// parseSwitchCore implements the shared switch header + arm-list grammar
// for both switch statements and switch expressions (spec's "Supplemented
// features": switch expressions / pattern matching), producing either a
// NodeSwitchStatement or NodeSwitchExpression depending on resultKind.
func (p *parser) parseSwitchCore(resultKind NodeKind) (NodeID, error) {
	start, err := p.expect(TokSwitch)
	if err != nil {
		return NoNode, err
	}
	if _, err := p.expect(TokLParen); err != nil {
		return NoNode, err
	}
	selector, err := p.parseExpression()
	if err != nil {
		return NoNode, err
	}
	if _, err := p.expect(TokRParen); err != nil {
		return NoNode, err
	}
	if _, err := p.expect(TokLBrace); err != nil {
		return NoNode, err
	}

	children := []NodeID{selector}
	for !p.at(TokRBrace) {
		if p.at(TokEOF) {
			return NoNode, expectedTokenError(p.src, TokRBrace, p.peek())
		}
		c, err := p.parseSwitchCase()
		if err != nil {
			return NoNode, err
		}
		children = append(children, c)
		children = p.attachComments(children)
	}
	end, err := p.expect(TokRBrace)
	if err != nil {
		return NoNode, err
	}
	return p.arena.newParent(resultKind, start.Start, end.End(), children)
}

// parseSwitchCase parses one `case <labels> ->` or `case <labels> :` arm,
// or a `default` arm, including pattern labels (`case Integer i ->`) and
// guarded patterns (`case Integer i when i > 0 ->`).
func (p *parser) parseSwitchCase() (NodeID, error) {
	start := p.peek()
	var labels []NodeID

	// a bare `default` arm carries no label children, distinguishing it
	// from a `case` arm structurally rather than via an attribute.
	if p.at(TokDefault) {
		p.advance()
	} else {
		if _, err := p.expect(TokCase); err != nil {
			return NoNode, err
		}
		for {
			lbl, err := p.parseCaseLabel()
			if err != nil {
				return NoNode, err
			}
			labels = append(labels, lbl)
			if p.at(TokComma) {
				p.advance()
				continue
			}
			break
		}
	}

	children := append([]NodeID{}, labels...)

	switch {
	case p.at(TokArrow):
		p.advance()
		if p.at(TokLBrace) {
			body, err := p.parseBlock()
			if err != nil {
				return NoNode, err
			}
			children = append(children, body)
		} else if p.at(TokThrow) {
			stmt, err := p.parseThrowStatement()
			if err != nil {
				return NoNode, err
			}
			children = append(children, stmt)
		} else {
			e, err := p.parseExpression()
			if err != nil {
				return NoNode, err
			}
			if _, err := p.expect(TokSemi); err != nil {
				return NoNode, err
			}
			children = append(children, e)
		}
	case p.at(TokColon):
		p.advance()
		for !p.at(TokCase) && !p.at(TokDefault) && !p.at(TokRBrace) {
			s, err := p.parseBlockStatement()
			if err != nil {
				return NoNode, err
			}
			children = append(children, s)
			children = p.attachComments(children)
		}
	default:
		return NoNode, expectedTokenError(p.src, TokArrow, p.peek())
	}

	var end uint32
	if len(children) > 0 {
		_, _, end = p.arena.Get(children[len(children)-1])
	} else {
		end = start.End()
	}
	return p.arena.newParent(NodeSwitchCase, start.Start, end, children)
}

// parseCaseLabel parses one label in a case's comma-separated list: a
// constant expression, `null`, or a type pattern (`Type name [when guard]`).
func (p *parser) parseCaseLabel() (NodeID, error) {
	if p.looksLikePatternLabel() {
		if err := p.requireFeature(featurePatternSwitch, p.peek().Start, "pattern case labels"); err != nil {
			return NoNode, err
		}
		return p.parsePattern()
	}
	return p.parseExpression()
}

// looksLikePatternLabel reports whether the upcoming tokens form a type
// pattern rather than a constant expression: an identifier/primitive type
// (optionally generic) followed directly by a binding identifier.
func (p *parser) looksLikePatternLabel() bool {
	if !(p.at(TokIdentifier) || p.isPrimitiveTypeToken()) {
		return false
	}
	save := p.ctx.save()
	defer p.ctx.restore(save)
	if _, err := p.parseType(); err != nil {
		return false
	}
	return p.at(TokIdentifier)
}

func (p *parser) isPrimitiveTypeToken() bool {
	switch p.peek().Kind {
	case TokBoolean, TokByte, TokChar, TokShort, TokInt, TokLong, TokFloat, TokDouble:
		return true
	}
	return false
}

// parsePattern parses a type pattern `Type name [when guard]` (record
// patterns are out of scope beyond the top-level type-and-binding form;
// spec's Open Questions / Non-goals do not require deconstruction patterns'
// nested-component binding to be modeled).
func (p *parser) parsePattern() (NodeID, error) {
	start := p.peek()
	typ, err := p.parseType()
	if err != nil {
		return NoNode, err
	}
	name, err := p.expect(TokIdentifier)
	if err != nil {
		return NoNode, err
	}
	nameID, err := p.arena.newNode(NodeIdentifier, name.Start, name.End())
	if err != nil {
		return NoNode, err
	}
	children := []NodeID{typ, nameID}
	end := name.End()
	if p.isContextualKeyword("when") {
		p.advance()
		guard, err := p.parseExpression()
		if err != nil {
			return NoNode, err
		}
		children = append(children, guard)
		_, _, end = p.arena.Get(guard)
	}
	return p.arena.newParent(NodePattern, start.Start, end, children)
}

func (p *parser) parseYieldStatement() (NodeID, error) {
	start := p.advance() // 'yield' identifier
	e, err := p.parseExpression()
	if err != nil {
		return NoNode, err
	}
	end, err := p.expect(TokSemi)
	if err != nil {
		return NoNode, err
	}
	return p.arena.newParent(NodeYieldStatement, start.Start, end.End(), []NodeID{e})
}

func (p *parser) parseLabeledStatement() (NodeID, error) {
	label, err := p.expect(TokIdentifier)
	if err != nil {
		return NoNode, err
	}
	if _, err := p.expect(TokColon); err != nil {
		return NoNode, err
	}
	stmt, err := p.parseStatement()
	if err != nil {
		return NoNode, err
	}
	_, _, end := p.arena.Get(stmt)
	return p.arena.newParent(NodeLabeledStatement, label.Start, end, []NodeID{stmt})
}

func (p *parser) parseExpressionStatement() (NodeID, error) {
	start := p.peek()
	e, err := p.parseExpression()
	if err != nil {
		return NoNode, err
	}
	end, err := p.expect(TokSemi)
	if err != nil {
		return NoNode, err
	}
	return p.arena.newParent(NodeExpressionStatement, start.Start, end.End(), []NodeID{e})
}
