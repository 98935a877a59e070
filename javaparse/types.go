package javaparse

// parseType implements the type-parsing state machine of spec §4.4: BASE ->
// TYPE_ARGS? -> DOT_TAIL? -> ARRAY_SUFFIX? -> terminal.
func (p *parser) parseType() (NodeID, error) {
	base, err := p.parseQualifiedType()
	if err != nil {
		return NoNode, err
	}
	return p.parseArraySuffix(base)
}

// parseQualifiedType implements BASE -> TYPE_ARGS? -> DOT_TAIL?, stopping
// short of the array suffix so callers that parse their own bracket syntax
// (e.g. array-creation dimension expressions) can reuse the dotted-name
// machinery without parseArraySuffix eagerly consuming a following `[]`.
func (p *parser) parseQualifiedType() (NodeID, error) {
	if err := p.enter(); err != nil {
		return NoNode, err
	}
	defer p.leave()

	base, err := p.parseTypeBase()
	if err != nil {
		return NoNode, err
	}

	for p.at(TokDot) && (p.peekAt(1).Kind == TokIdentifier || p.peekAt(1).Kind == TokAt) {
		// DOT_TAIL?: a '.' followed either directly by an inner type name,
		// or by a type-use annotation and then an inner type name. The
		// annotation is recorded as a child immediately preceding the
		// type-name component it decorates (Open Question resolution,
		// spec §9 / DESIGN.md).
		dotTok := p.advance()
		var children []NodeID
		for p.at(TokAt) {
			ann, err := p.parseAnnotation()
			if err != nil {
				return NoNode, err
			}
			children = append(children, ann)
		}
		name, err := p.expect(TokIdentifier)
		if err != nil {
			return NoNode, err
		}
		nameID, err := p.arena.newNode(NodeIdentifier, name.Start, name.End())
		if err != nil {
			return NoNode, err
		}
		children = append(children, nameID)

		if p.at(TokLess) && p.isGenericsAhead(0) {
			args, err := p.parseTypeArgumentList()
			if err != nil {
				return NoNode, err
			}
			children = append(children, args...)
		}

		allChildren := append([]NodeID{base}, children...)
		base, err = p.arena.newParent(NodeParameterizedType, dotTok.Start, 0, allChildren)
		if err != nil {
			return NoNode, err
		}
	}

	return base, nil
}

func (p *parser) parseTypeBase() (NodeID, error) {
	tok := p.peek()
	switch tok.Kind {
	case TokBoolean, TokByte, TokChar, TokShort, TokInt, TokLong, TokFloat, TokDouble, TokVoid:
		p.advance()
		return p.arena.newNode(NodePrimitiveType, tok.Start, tok.End())
	case TokQuestion:
		return p.parseWildcardType()
	}

	name, err := p.expect(TokIdentifier)
	if err != nil {
		return NoNode, err
	}
	nameID, err := p.arena.newNode(NodeIdentifier, name.Start, name.End())
	if err != nil {
		return NoNode, err
	}

	if p.at(TokLess) && p.isGenericsAhead(0) {
		args, err := p.parseTypeArgumentList()
		if err != nil {
			return NoNode, err
		}
		children := append([]NodeID{nameID}, args...)
		return p.arena.newParent(NodeParameterizedType, name.Start, 0, children)
	}

	return nameID, nil
}

func (p *parser) parseWildcardType() (NodeID, error) {
	start := p.advance() // '?'
	var children []NodeID
	if p.at(TokExtends) || p.at(TokSuper) {
		p.advance()
		bound, err := p.parseType()
		if err != nil {
			return NoNode, err
		}
		children = append(children, bound)
	}
	return p.arena.newParent(NodeWildcardType, start.Start, start.End(), children)
}

func (p *parser) parseTypeArgumentList() ([]NodeID, error) {
	if _, err := p.expect(TokLess); err != nil {
		return nil, err
	}
	var args []NodeID
	if !p.at(TokGreater) {
		for {
			arg, err := p.parseType()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.at(TokComma) {
				p.advance()
				continue
			}
			break
		}
	}
	if err := p.closeAngleBracket(); err != nil {
		return nil, err
	}
	return args, nil
}

// closeAngleBracket consumes a closing '>', splitting a '>>'/'>>>'/'>>='
// etc. token if the lexer glued it together with a sibling '>' from nested
// generics (e.g. List<List<String>>).
func (p *parser) closeAngleBracket() error {
	tok := p.peek()
	switch tok.Kind {
	case TokGreater:
		p.advance()
		return nil
	case TokRShift, TokURShift, TokGreaterEq, TokRShiftEq, TokURShiftEq:
		// split off one '>' and leave the rest for the enclosing generic
		// close to consume.
		p.ctx.tokens[p.ctx.cursor].Start++
		p.ctx.tokens[p.ctx.cursor].Length--
		switch tok.Kind {
		case TokRShift:
			p.ctx.tokens[p.ctx.cursor].Kind = TokGreater
		case TokURShift:
			p.ctx.tokens[p.ctx.cursor].Kind = TokRShift
		case TokGreaterEq:
			p.ctx.tokens[p.ctx.cursor].Kind = TokAssign
		case TokRShiftEq:
			p.ctx.tokens[p.ctx.cursor].Kind = TokGreaterEq
		case TokURShiftEq:
			p.ctx.tokens[p.ctx.cursor].Kind = TokRShiftEq
		}
		return nil
	}
	return expectedTokenError(p.src, TokGreater, tok)
}

func (p *parser) parseArraySuffix(base NodeID) (NodeID, error) {
	for p.at(TokLBracket) {
		save := p.ctx.save()
		start := p.advance()
		rb, err := p.expect(TokRBracket)
		if err != nil {
			p.ctx.restore(save)
			break
		}
		base, err = p.arena.newParent(NodeArrayType, start.Start, rb.End(), []NodeID{base})
		if err != nil {
			return NoNode, err
		}
	}
	return base, nil
}

// isGenericsAhead implements disambiguation rule 2 of spec §4.4: scan
// forward matching '<'/'>' while allowing commas, dots, identifiers, '?',
// extends, super, annotations, '[]', and nested '<...>'. A balanced '>'
// followed by a token that can legally follow a type confirms generics.
// offset is how many tokens ahead of the cursor the '<' itself sits (used
// by the DOT_TAIL loop, which must look past the '.').
func (p *parser) isGenericsAhead(offset int) bool {
	i := offset
	if p.peekAt(i).Kind != TokLess {
		return false
	}
	depth := 0
	for {
		tok := p.peekAt(i)
		switch tok.Kind {
		case TokLess:
			depth++
			i++
		case TokGreater:
			depth--
			i++
			if depth == 0 {
				return genericsFollowToken(p.peekAt(i).Kind)
			}
		case TokRShift, TokURShift, TokGreaterEq, TokRShiftEq, TokURShiftEq:
			// counts as closing more than one level at once
			closed := 1
			switch tok.Kind {
			case TokRShift, TokRShiftEq:
				closed = 2
			case TokURShift, TokURShiftEq:
				closed = 3
			}
			depth -= closed
			i++
			if depth <= 0 {
				return genericsFollowToken(p.peekAt(i).Kind)
			}
		case TokIdentifier, TokComma, TokDot, TokQuestion, TokExtends, TokSuper,
			TokAt, TokLBracket, TokRBracket, TokBoolean, TokByte, TokChar,
			TokShort, TokInt, TokLong, TokFloat, TokDouble, TokVoid, TokAnd:
			i++
		case TokEOF:
			return false
		default:
			return false
		}
		if i-offset > 10000 {
			return false // pathological input guard, never legitimately reached
		}
	}
}

func genericsFollowToken(k TokenKind) bool {
	switch k {
	case TokColonColon, TokDot, TokLParen, TokIdentifier, TokLBracket, TokSemi, TokComma, TokRParen, TokGreater:
		return true
	default:
		return false
	}
}
