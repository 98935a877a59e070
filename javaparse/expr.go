package javaparse

// parseExpression is the grammar's expression entry point: assignment is
// the lowest-precedence production (spec §4.4's precedence ladder).
func (p *parser) parseExpression() (NodeID, error) {
	return p.parseAssignment()
}

var assignmentOps = map[TokenKind]bool{
	TokAssign: true, TokPlusEq: true, TokMinusEq: true, TokStarEq: true,
	TokSlashEq: true, TokPercentEq: true, TokAndEq: true, TokOrEq: true,
	TokCaretEq: true, TokLShiftEq: true, TokRShiftEq: true, TokURShiftEq: true,
}

// parseAssignment handles right-associative assignment, the lowest rung of
// the ladder (precedence 10).
func (p *parser) parseAssignment() (NodeID, error) {
	left, err := p.parseConditional()
	if err != nil {
		return NoNode, err
	}
	if !assignmentOps[p.peek().Kind] {
		return left, nil
	}
	p.advance()
	right, err := p.parseAssignment()
	if err != nil {
		return NoNode, err
	}
	_, lstart, _ := p.arena.Get(left)
	_, _, rend := p.arena.Get(right)
	children := p.attachComments([]NodeID{left})
	children = append(children, right)
	return p.arena.newParent(NodeAssignmentExpression, lstart, rend, children)
}

// parseConditional handles the ternary `? :` (precedence 20, right
// associative), sitting between assignment and the binary operator ladder.
func (p *parser) parseConditional() (NodeID, error) {
	cond, err := p.parseBinary(30)
	if err != nil {
		return NoNode, err
	}
	if !p.at(TokQuestion) {
		return cond, nil
	}
	p.advance()
	thenExpr, err := p.parseAssignment()
	if err != nil {
		return NoNode, err
	}
	children := p.attachComments([]NodeID{cond})
	children = append(children, thenExpr)
	if _, err := p.expect(TokColon); err != nil {
		return NoNode, err
	}
	elseExpr, err := p.parseConditional()
	if err != nil {
		return NoNode, err
	}
	children = p.attachComments(children)
	children = append(children, elseExpr)
	_, cstart, _ := p.arena.Get(cond)
	_, _, eend := p.arena.Get(elseExpr)
	return p.arena.newParent(NodeConditionalExpression, cstart, eend, children)
}

// parseBinary implements precedence-climbing over the left-associative
// binary ladder (||, &&, |, ^, &, ==/!=, relational/instanceof, shifts,
// additive, multiplicative), per spec §4.4.
func (p *parser) parseBinary(minPrec int) (NodeID, error) {
	left, err := p.parseUnary()
	if err != nil {
		return NoNode, err
	}

	for {
		op := p.peek()
		prec := op.Kind.precedence()
		if prec < minPrec || prec == 0 || prec == 10 || prec == 20 {
			// assignment/ternary are handled by their own productions, not
			// this ladder.
			return left, nil
		}

		if op.Kind == TokInstanceof {
			left, err = p.parseInstanceofTail(left)
			if err != nil {
				return NoNode, err
			}
			continue
		}

		p.advance()
		nextMin := prec + 1
		if op.Kind.isRightAssociative() {
			nextMin = prec
		}
		right, err := p.parseBinary(nextMin)
		if err != nil {
			return NoNode, err
		}
		_, lstart, _ := p.arena.Get(left)
		_, _, rend := p.arena.Get(right)
		children := p.attachComments([]NodeID{left})
		children = append(children, right)
		left, err = p.arena.newParent(NodeBinaryExpression, lstart, rend, children)
		if err != nil {
			return NoNode, err
		}
	}
}

// parseInstanceofTail parses `expr instanceof Type [binding]`. A pattern
// binding still produces a BINARY_EXPRESSION whose right child's span
// covers the binding identifier too (spec §4.4).
func (p *parser) parseInstanceofTail(left NodeID) (NodeID, error) {
	p.advance() // 'instanceof'
	typ, err := p.parseType()
	if err != nil {
		return NoNode, err
	}
	right := typ
	if p.at(TokIdentifier) && p.ctx.version.supports(featurePatternInstanceof) {
		name := p.advance()
		nameID, err := p.arena.newNode(NodeIdentifier, name.Start, name.End())
		if err != nil {
			return NoNode, err
		}
		_, tstart, _ := p.arena.Get(typ)
		right, err = p.arena.newParent(NodePattern, tstart, name.End(), []NodeID{typ, nameID})
		if err != nil {
			return NoNode, err
		}
	}
	_, lstart, _ := p.arena.Get(left)
	_, _, rend := p.arena.Get(right)
	children := p.attachComments([]NodeID{left})
	children = append(children, right)
	return p.arena.newParent(NodeBinaryExpression, lstart, rend, children)
}

var unaryPrefixOps = map[TokenKind]bool{
	TokPlusPlus: true, TokMinusMinus: true, TokPlus: true, TokMinus: true,
	TokNot: true, TokTilde: true,
}

// parenConstructKind is the result of classifying what follows an opening
// '(' at unary-expression position (spec §4.4 rule 1).
type parenConstructKind int

const (
	parenExpr parenConstructKind = iota
	parenCast
	parenLambdaTyped
	parenLambdaUntyped
)

// parseUnary parses prefix operators, the three-way '(' disambiguation, and
// the no-parens single-identifier lambda shorthand, falling back to postfix
// parsing of a primary expression.
func (p *parser) parseUnary() (NodeID, error) {
	if err := p.enter(); err != nil {
		return NoNode, err
	}
	defer p.leave()

	if unaryPrefixOps[p.peek().Kind] {
		op := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return NoNode, err
		}
		children := p.attachComments(nil)
		children = append(children, operand)
		_, _, end := p.arena.Get(operand)
		return p.arena.newParent(NodeUnaryExpression, op.Start, end, children)
	}

	if p.at(TokLParen) {
		switch p.classifyParenConstruct() {
		case parenCast:
			return p.parseCastExpression()
		case parenLambdaTyped, parenLambdaUntyped:
			return p.parseLambdaExpression()
		}
		return p.parsePostfix()
	}

	if p.at(TokIdentifier) && p.peekAt(1).Kind == TokArrow {
		return p.parseLambdaExpression()
	}

	return p.parsePostfix()
}

// classifyParenConstruct implements spec §4.4 rule 1: probe tokens at the
// inner positions of a parenthesized construct to classify it before
// committing to a production. Each probe restores the cursor afterwards.
// The probes reuse parseType and parseModifiersAndAnnotations, so they do
// allocate arena nodes; those nodes stay in the arena (and in NodeCount)
// but no parent ever references them once the cursor rewinds.
func (p *parser) classifyParenConstruct() parenConstructKind {
	base := p.ctx.save()
	p.advance() // '('
	afterParen := p.ctx.save()

	if p.probeUntypedLambdaParams() {
		p.ctx.restore(base)
		return parenLambdaUntyped
	}
	p.ctx.restore(afterParen)

	if p.probeTypedLambdaParams() {
		p.ctx.restore(base)
		return parenLambdaTyped
	}
	p.ctx.restore(afterParen)

	if p.probeCast() {
		p.ctx.restore(base)
		return parenCast
	}
	p.ctx.restore(base)
	return parenExpr
}

// probeUntypedLambdaParams expects (from just inside '(') a possibly empty
// bare identifier list followed by ')' then '->'.
func (p *parser) probeUntypedLambdaParams() bool {
	if p.at(TokRParen) {
		p.advance()
		return p.at(TokArrow)
	}
	if !p.at(TokIdentifier) {
		return false
	}
	p.advance()
	for p.at(TokComma) {
		p.advance()
		if !p.at(TokIdentifier) {
			return false
		}
		p.advance()
	}
	if !p.at(TokRParen) {
		return false
	}
	p.advance()
	return p.at(TokArrow)
}

// probeTypedLambdaParams expects (from just inside '(') one or more
// modifiers/annotations + type + identifier declarations, comma separated,
// followed by ')' then '->'.
func (p *parser) probeTypedLambdaParams() bool {
	for {
		if _, _, err := p.parseModifiersAndAnnotations(); err != nil {
			return false
		}
		if _, err := p.parseType(); err != nil {
			return false
		}
		if !p.at(TokIdentifier) {
			return false
		}
		p.advance()
		if p.at(TokComma) {
			p.advance()
			continue
		}
		break
	}
	if !p.at(TokRParen) {
		return false
	}
	p.advance()
	return p.at(TokArrow)
}

// probeCast expects (from just inside '(') a single type followed by ')'
// then a token that can only start a new unary expression.
func (p *parser) probeCast() bool {
	if _, err := p.parseType(); err != nil {
		return false
	}
	if !p.at(TokRParen) {
		return false
	}
	p.advance()
	return p.canStartCastOperand()
}

func (p *parser) canStartCastOperand() bool {
	switch p.peek().Kind {
	case TokIdentifier, TokIntegerLiteral, TokLongLiteral, TokFloatLiteral,
		TokDoubleLiteral, TokBooleanLiteral, TokStringLiteral, TokTextBlock,
		TokCharLiteral, TokNullLiteral, TokLParen, TokPlus, TokMinus, TokNot,
		TokTilde, TokThis, TokSuper, TokNew:
		return true
	}
	return false
}

func (p *parser) parseCastExpression() (NodeID, error) {
	start, err := p.expect(TokLParen)
	if err != nil {
		return NoNode, err
	}
	typ, err := p.parseType()
	if err != nil {
		return NoNode, err
	}
	// intersection cast: `(A & B) expr`
	children := []NodeID{typ}
	for p.at(TokAnd) {
		p.advance()
		extra, err := p.parseType()
		if err != nil {
			return NoNode, err
		}
		children = append(children, extra)
	}
	if _, err := p.expect(TokRParen); err != nil {
		return NoNode, err
	}
	operand, err := p.parseUnary()
	if err != nil {
		return NoNode, err
	}
	children = p.attachComments(children)
	children = append(children, operand)
	_, _, end := p.arena.Get(operand)
	return p.arena.newParent(NodeCastExpression, start.Start, end, children)
}

// parseLambdaExpression parses the three lambda param shapes: single bare
// identifier with no parens, a parenthesized untyped identifier list, or a
// parenthesized typed parameter list (spec §4.4 rules 1, 4).
func (p *parser) parseLambdaExpression() (NodeID, error) {
	start := p.peek()
	var params []NodeID

	if p.at(TokIdentifier) && p.peekAt(1).Kind == TokArrow {
		name := p.advance()
		id, err := p.arena.newNode(NodeParameterDeclaration, name.Start, name.End())
		if err != nil {
			return NoNode, err
		}
		p.arena.paramAttrs[id] = ParameterAttribute{Name: name.Text}
		params = append(params, id)
	} else {
		if _, err := p.expect(TokLParen); err != nil {
			return NoNode, err
		}
		for !p.at(TokRParen) {
			pstart := p.peek()
			_, mods, err := p.parseModifiersAndAnnotations()
			if err != nil {
				return NoNode, err
			}
			ptype := NoNode
			hasType := !(p.at(TokIdentifier) && (p.peekAt(1).Kind == TokComma || p.peekAt(1).Kind == TokRParen))
			if hasType {
				ptype, err = p.parseType()
				if err != nil {
					return NoNode, err
				}
			}
			name, err := p.expect(TokIdentifier)
			if err != nil {
				return NoNode, err
			}
			var children []NodeID
			if ptype != NoNode {
				children = append(children, ptype)
			}
			id, err := p.arena.newParent(NodeParameterDeclaration, pstart.Start, name.End(), children)
			if err != nil {
				return NoNode, err
			}
			p.arena.paramAttrs[id] = ParameterAttribute{Name: name.Text, IsFinal: mods.isFinal}
			params = append(params, id)
			if p.at(TokComma) {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(TokRParen); err != nil {
			return NoNode, err
		}
	}

	if _, err := p.expect(TokArrow); err != nil {
		return NoNode, err
	}

	var body NodeID
	var err error
	if p.at(TokLBrace) {
		body, err = p.parseBlock()
	} else {
		body, err = p.parseExpression()
	}
	if err != nil {
		return NoNode, err
	}

	children := append([]NodeID{}, params...)
	children = p.attachComments(children)
	children = append(children, body)
	_, _, end := p.arena.Get(body)
	return p.arena.newParent(NodeLambdaExpression, start.Start, end, children)
}

// parsePostfix parses a primary expression and chains postfix suffixes:
// field access, method invocation, array access, method references, and
// postfix increment/decrement (spec §4.4 rule 3).
func (p *parser) parsePostfix() (NodeID, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return NoNode, err
	}

	for {
		switch p.peek().Kind {
		case TokDot:
			base, err = p.parseDotSuffix(base)
		case TokLBracket:
			base, err = p.parseArrayAccessSuffix(base)
		case TokLParen:
			base, err = p.parseCallSuffix(base)
		case TokColonColon:
			base, err = p.parseMethodReferenceSuffix(base)
		case TokPlusPlus, TokMinusMinus:
			op := p.advance()
			_, bstart, _ := p.arena.Get(base)
			children := p.attachComments([]NodeID{base})
			base, err = p.arena.newParent(NodePostfixExpression, bstart, op.End(), children)
		default:
			return base, nil
		}
		if err != nil {
			return NoNode, err
		}
	}
}

func (p *parser) parseDotSuffix(base NodeID) (NodeID, error) {
	p.advance() // '.'

	if p.at(TokClass) {
		tok := p.advance()
		_, bstart, _ := p.arena.Get(base)
		children := p.attachComments([]NodeID{base})
		return p.arena.newParent(NodeFieldAccess, bstart, tok.End(), children)
	}
	if p.at(TokThis) {
		tok := p.advance()
		_, bstart, _ := p.arena.Get(base)
		children := p.attachComments([]NodeID{base})
		return p.arena.newParent(NodeFieldAccess, bstart, tok.End(), children)
	}
	if p.at(TokNew) {
		return p.parseQualifiedObjectCreation(base)
	}

	_, bstart, _ := p.arena.Get(base)
	children := p.attachComments([]NodeID{base})

	var typeArgs []NodeID
	if p.at(TokLess) && p.isGenericsAhead(0) {
		args, err := p.parseTypeArgumentList()
		if err != nil {
			return NoNode, err
		}
		typeArgs = args
	}
	children = append(children, typeArgs...)

	name, err := p.expect(TokIdentifier)
	if err != nil {
		return NoNode, err
	}
	nameID, err := p.arena.newNode(NodeIdentifier, name.Start, name.End())
	if err != nil {
		return NoNode, err
	}
	children = p.attachComments(children)
	children = append(children, nameID)

	if p.at(TokLParen) {
		args, rp, err := p.parseArgumentList()
		if err != nil {
			return NoNode, err
		}
		children = append(children, args...)
		return p.arena.newParent(NodeMethodInvocation, bstart, rp.End(), children)
	}

	return p.arena.newParent(NodeFieldAccess, bstart, name.End(), children)
}

func (p *parser) parseArrayAccessSuffix(base NodeID) (NodeID, error) {
	p.advance() // '['
	index, err := p.parseExpression()
	if err != nil {
		return NoNode, err
	}
	children := p.attachComments([]NodeID{base})
	children = append(children, index)
	rb, err := p.expect(TokRBracket)
	if err != nil {
		return NoNode, err
	}
	_, bstart, _ := p.arena.Get(base)
	return p.arena.newParent(NodeArrayAccess, bstart, rb.End(), children)
}

func (p *parser) parseCallSuffix(base NodeID) (NodeID, error) {
	args, rp, err := p.parseArgumentList()
	if err != nil {
		return NoNode, err
	}
	_, bstart, _ := p.arena.Get(base)
	children := p.attachComments([]NodeID{base})
	children = append(children, args...)
	return p.arena.newParent(NodeMethodInvocation, bstart, rp.End(), children)
}

// parseMethodReferenceSuffix parses `base :: [<TypeArgs>] (identifier|new)`
// (spec §4.4 rule 3).
func (p *parser) parseMethodReferenceSuffix(base NodeID) (NodeID, error) {
	p.advance() // '::'
	_, bstart, _ := p.arena.Get(base)
	children := p.attachComments([]NodeID{base})
	var typeArgs []NodeID
	if p.at(TokLess) && p.isGenericsAhead(0) {
		args, err := p.parseTypeArgumentList()
		if err != nil {
			return NoNode, err
		}
		typeArgs = args
	}
	children = append(children, typeArgs...)

	if p.at(TokNew) {
		tok := p.advance()
		return p.arena.newParent(NodeMethodReference, bstart, tok.End(), children)
	}
	name, err := p.expect(TokIdentifier)
	if err != nil {
		return NoNode, err
	}
	nameID, err := p.arena.newNode(NodeIdentifier, name.Start, name.End())
	if err != nil {
		return NoNode, err
	}
	children = p.attachComments(children)
	children = append(children, nameID)
	return p.arena.newParent(NodeMethodReference, bstart, name.End(), children)
}

// parsePrimary parses the terminal expression forms: literals, this/super,
// object/array creation, identifiers, parenthesized expressions, and switch
// expressions (spec §3, "Supplemented features").
func (p *parser) parsePrimary() (NodeID, error) {
	tok := p.peek()
	switch tok.Kind {
	case TokIntegerLiteral:
		p.advance()
		return p.arena.newNode(NodeIntegerLiteral, tok.Start, tok.End())
	case TokLongLiteral:
		p.advance()
		return p.arena.newNode(NodeLongLiteral, tok.Start, tok.End())
	case TokFloatLiteral:
		p.advance()
		return p.arena.newNode(NodeFloatLiteral, tok.Start, tok.End())
	case TokDoubleLiteral:
		p.advance()
		return p.arena.newNode(NodeDoubleLiteral, tok.Start, tok.End())
	case TokBooleanLiteral:
		p.advance()
		return p.arena.newNode(NodeBooleanLiteral, tok.Start, tok.End())
	case TokStringLiteral:
		p.advance()
		return p.arena.newNode(NodeStringLiteral, tok.Start, tok.End())
	case TokTextBlock:
		p.advance()
		return p.arena.newNode(NodeTextBlockLiteral, tok.Start, tok.End())
	case TokCharLiteral:
		p.advance()
		return p.arena.newNode(NodeCharLiteral, tok.Start, tok.End())
	case TokNullLiteral:
		p.advance()
		return p.arena.newNode(NodeNullLiteral, tok.Start, tok.End())
	case TokThis:
		p.advance()
		return p.arena.newNode(NodeThisExpression, tok.Start, tok.End())
	case TokSuper:
		p.advance()
		return p.arena.newNode(NodeSuperExpression, tok.Start, tok.End())
	case TokNew:
		return p.parseCreationExpression()
	case TokSwitch:
		if err := p.requireFeature(featureSwitchExpressions, tok.Start, "switch expressions"); err != nil {
			return NoNode, err
		}
		return p.parseSwitchCore(NodeSwitchExpression)
	case TokLParen:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return NoNode, err
		}
		children := p.attachComments(nil)
		children = append(children, inner)
		rp, err := p.expect(TokRParen)
		if err != nil {
			return NoNode, err
		}
		children = p.attachComments(children)
		return p.arena.newParent(NodeParenthesizedExpression, tok.Start, rp.End(), children)
	case TokBoolean, TokByte, TokChar, TokShort, TokInt, TokLong, TokFloat, TokDouble, TokVoid:
		// class literal on a primitive type, e.g. int.class
		p.advance()
		base, err := p.arena.newNode(NodePrimitiveType, tok.Start, tok.End())
		if err != nil {
			return NoNode, err
		}
		for p.at(TokLBracket) {
			start := p.advance()
			rb, err := p.expect(TokRBracket)
			if err != nil {
				return NoNode, err
			}
			base, err = p.arena.newParent(NodeArrayType, start.Start, rb.End(), []NodeID{base})
			if err != nil {
				return NoNode, err
			}
		}
		if _, err := p.expect(TokDot); err != nil {
			return NoNode, err
		}
		cls, err := p.expect(TokClass)
		if err != nil {
			return NoNode, err
		}
		return p.arena.newParent(NodeFieldAccess, tok.Start, cls.End(), []NodeID{base})
	case TokIdentifier:
		p.advance()
		return p.arena.newNode(NodeIdentifier, tok.Start, tok.End())
	}

	return NoNode, expectedTokenError(p.src, TokIdentifier, tok)
}

// parseCreationExpression parses `new Type(args) [classBody]` or
// `new Type[dims]...[initializer]` (object vs. array creation).
func (p *parser) parseCreationExpression() (NodeID, error) {
	start, err := p.expect(TokNew)
	if err != nil {
		return NoNode, err
	}

	if p.at(TokLess) {
		if _, err := p.parseTypeArgumentList(); err != nil {
			return NoNode, err
		}
	}

	typ, err := p.parseQualifiedType()
	if err != nil {
		return NoNode, err
	}

	if p.at(TokLBracket) {
		return p.parseArrayCreationTail(start, typ)
	}

	args, rp, err := p.parseArgumentList()
	if err != nil {
		return NoNode, err
	}
	children := append([]NodeID{typ}, args...)
	end := rp.End()

	if p.at(TokLBrace) {
		members, rb, err := p.parseMemberBody()
		if err != nil {
			return NoNode, err
		}
		children = append(children, members...)
		end = rb.End()
	}

	return p.arena.newParent(NodeObjectCreationExpression, start.Start, end, children)
}

// parseQualifiedObjectCreation parses `expr.new Inner(args)`, an inner-class
// instantiation qualified by an enclosing-instance expression.
func (p *parser) parseQualifiedObjectCreation(outer NodeID) (NodeID, error) {
	p.advance() // 'new'
	typ, err := p.parseQualifiedType()
	if err != nil {
		return NoNode, err
	}
	args, rp, err := p.parseArgumentList()
	if err != nil {
		return NoNode, err
	}
	_, ostart, _ := p.arena.Get(outer)
	children := append([]NodeID{outer, typ}, args...)
	return p.arena.newParent(NodeObjectCreationExpression, ostart, rp.End(), children)
}

// parseArrayCreationTail parses the `[dim]...` portion of `new Type[...]`,
// either with explicit dimension expressions or (for the last, empty
// brackets) an array initializer.
func (p *parser) parseArrayCreationTail(start Token, elemType NodeID) (NodeID, error) {
	children := []NodeID{elemType}
	sawEmpty := false
	var lastEnd uint32

	for p.at(TokLBracket) {
		p.advance()
		if p.at(TokRBracket) {
			rb := p.advance()
			sawEmpty = true
			lastEnd = rb.End()
			continue
		}
		dim, err := p.parseExpression()
		if err != nil {
			return NoNode, err
		}
		children = p.attachComments(children)
		children = append(children, dim)
		rb, err := p.expect(TokRBracket)
		if err != nil {
			return NoNode, err
		}
		lastEnd = rb.End()
	}

	if sawEmpty && p.at(TokLBrace) {
		init, err := p.parseArrayInitializer()
		if err != nil {
			return NoNode, err
		}
		children = p.attachComments(children)
		children = append(children, init)
		_, _, lastEnd = p.arena.Get(init)
	}

	return p.arena.newParent(NodeArrayCreationExpression, start.Start, lastEnd, children)
}

// parseArgumentList parses `(expr, expr, ...)`, used by method invocation,
// object creation, and enum constant argument lists.
func (p *parser) parseArgumentList() ([]NodeID, Token, error) {
	if _, err := p.expect(TokLParen); err != nil {
		return nil, Token{}, err
	}
	var args []NodeID
	for !p.at(TokRParen) {
		a, err := p.parseExpression()
		if err != nil {
			return nil, Token{}, err
		}
		args = p.attachComments(args)
		args = append(args, a)
		if p.at(TokComma) {
			p.advance()
			continue
		}
		break
	}
	args = p.attachComments(args)
	end, err := p.expect(TokRParen)
	if err != nil {
		return nil, Token{}, err
	}
	return args, end, nil
}
