package javaparse

// modifierSet tracks which modifier keywords preceded a declaration. Java
// modifiers don't need their own node kind (spec §3's node-kind list has no
// MODIFIER entry); callers that need "is this final/static/..." consult the
// attribute structs (e.g. ParameterAttribute.IsFinal) or, for declarations
// that don't carry a dedicated attribute, the modifier keyword tokens are
// simply not retained as nodes (matching "the parser does not verify
// semantic rules").
type modifierSet struct {
	isFinal bool
}

var modifierTokens = map[TokenKind]bool{
	TokPublic: true, TokPrivate: true, TokProtected: true, TokStatic: true,
	TokFinal: true, TokAbstract: true, TokNative: true, TokSynchronized: true,
	TokTransient: true, TokVolatile: true, TokStrictfp: true, TokDefault: true,
}

// parseModifiersAndAnnotations consumes a run of modifier keywords and
// annotations in any order (legal in Java), returning the annotation nodes
// in source order and the modifier set.
func (p *parser) parseModifiersAndAnnotations() ([]NodeID, modifierSet, error) {
	var anns []NodeID
	var mods modifierSet

	for {
		if p.at(TokAt) && !(p.peekAt(1).Kind == TokInterface) {
			ann, err := p.parseAnnotation()
			if err != nil {
				return nil, mods, err
			}
			anns = append(anns, ann)
			continue
		}
		if modifierTokens[p.peek().Kind] {
			if p.at(TokFinal) {
				mods.isFinal = true
			}
			p.advance()
			continue
		}
		if p.isContextualKeyword("sealed") || p.isContextualKeyword("non-sealed") {
			if err := p.requireFeature(featureSealedTypes, p.peek().Start, "sealed type modifiers"); err != nil {
				return nil, mods, err
			}
			p.advance()
			continue
		}
		break
	}
	return anns, mods, nil
}

// parseAnnotation parses `@Name`, `@Name(value)`, or `@Name(k=v, ...)`.
func (p *parser) parseAnnotation() (NodeID, error) {
	start, err := p.expect(TokAt)
	if err != nil {
		return NoNode, err
	}
	if _, err := p.parseQualifiedNameRaw(); err != nil {
		return NoNode, err
	}

	end := start
	var children []NodeID
	if p.at(TokLParen) {
		p.advance()
		for !p.at(TokRParen) {
			elem, err := p.parseAnnotationElement()
			if err != nil {
				return NoNode, err
			}
			children = append(children, elem)
			if p.at(TokComma) {
				p.advance()
				continue
			}
			break
		}
		rp, err := p.expect(TokRParen)
		if err != nil {
			return NoNode, err
		}
		end = rp
	}

	return p.arena.newParent(NodeAnnotation, start.Start, end.End(), children)
}

// parseAnnotationElement parses either a bare value (shorthand `@Ann(x)`)
// or a `name = value` pair.
func (p *parser) parseAnnotationElement() (NodeID, error) {
	if p.at(TokIdentifier) && p.peekAt(1).Kind == TokAssign {
		start := p.advance() // name
		p.advance()          // '='
		val, err := p.parseAnnotationValue()
		if err != nil {
			return NoNode, err
		}
		return p.arena.newParent(NodeAnnotationElement, start.Start, 0, []NodeID{val})
	}
	return p.parseAnnotationValue()
}

func (p *parser) parseAnnotationValue() (NodeID, error) {
	if p.at(TokLBrace) {
		return p.parseArrayInitializer()
	}
	if p.at(TokAt) {
		return p.parseAnnotation()
	}
	return p.parseExpression()
}

// parseTypeDeclaration dispatches on the leading keyword/contextual keyword
// to one of class/interface/enum/record/annotation.
func (p *parser) parseTypeDeclaration() (NodeID, error) {
	anns, _, err := p.parseModifiersAndAnnotations()
	if err != nil {
		return NoNode, err
	}

	switch {
	case p.at(TokClass):
		return p.parseClassLikeDeclaration(NodeClassDeclaration, TokClass, anns)
	case p.at(TokInterface):
		return p.parseClassLikeDeclaration(NodeInterfaceDeclaration, TokInterface, anns)
	case p.at(TokEnum):
		return p.parseEnumDeclaration(anns)
	case p.at(TokAt) && p.peekAt(1).Kind == TokInterface:
		return p.parseAnnotationDeclaration(anns)
	case p.isContextualKeyword("record") && p.peekAt(1).Kind == TokIdentifier:
		if err := p.requireFeature(featureRecords, p.peek().Start, "record declarations"); err != nil {
			return NoNode, err
		}
		return p.parseRecordDeclaration(anns)
	}

	pos := p.src.Position(p.peek().Start)
	return NoNode, ParseError{
		Kind:    ExpectedToken,
		Line:    pos.Line,
		Column:  pos.Column,
		Message: "Expected type declaration but found " + p.peek().Kind.String(),
	}
}

// parseClassLikeDeclaration handles `class`/`interface` headers: name,
// optional type parameters, optional extends/implements/permits clauses,
// then a member body.
func (p *parser) parseClassLikeDeclaration(kind NodeKind, headKw TokenKind, leadingAnns []NodeID) (NodeID, error) {
	start := p.peek()
	if len(leadingAnns) > 0 {
		start = Token{Start: minUint32(start.Start, p.firstAnnotationStart(leadingAnns))}
	}
	if _, err := p.expect(headKw); err != nil {
		return NoNode, err
	}
	name, err := p.expect(TokIdentifier)
	if err != nil {
		return NoNode, err
	}

	var children []NodeID
	children = append(children, leadingAnns...)

	if p.at(TokLess) {
		tps, err := p.parseTypeParameterList()
		if err != nil {
			return NoNode, err
		}
		children = append(children, tps...)
	}

	if p.at(TokExtends) {
		p.advance()
		sup, err := p.parseType()
		if err != nil {
			return NoNode, err
		}
		children = append(children, sup)
		// interfaces may extend several types
		for p.at(TokComma) {
			p.advance()
			sup, err := p.parseType()
			if err != nil {
				return NoNode, err
			}
			children = append(children, sup)
		}
	}

	if p.at(TokImplements) {
		p.advance()
		impl, err := p.parseTypeList()
		if err != nil {
			return NoNode, err
		}
		children = append(children, impl...)
	}

	if p.isContextualKeyword("permits") {
		if err := p.requireFeature(featureSealedTypes, p.peek().Start, "permits clauses"); err != nil {
			return NoNode, err
		}
		p.advance()
		perm, err := p.parseTypeList()
		if err != nil {
			return NoNode, err
		}
		children = append(children, perm...)
	}

	body, end, err := p.parseMemberBody()
	if err != nil {
		return NoNode, err
	}
	children = append(children, body...)

	id, err := p.arena.newParent(kind, start.Start, end.End(), children)
	if err != nil {
		return NoNode, err
	}
	p.arena.typeDeclAttrs[id] = TypeDeclarationAttribute{Name: name.Text}
	return id, nil
}

func (p *parser) firstAnnotationStart(anns []NodeID) uint32 {
	if len(anns) == 0 {
		return 0
	}
	_, start, _ := p.arena.Get(anns[0])
	return start
}

func minUint32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

func (p *parser) parseTypeList() ([]NodeID, error) {
	var out []NodeID
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	out = append(out, t)
	for p.at(TokComma) {
		p.advance()
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (p *parser) parseTypeParameterList() ([]NodeID, error) {
	if _, err := p.expect(TokLess); err != nil {
		return nil, err
	}
	var out []NodeID
	for {
		anns, _, err := p.parseModifiersAndAnnotations()
		if err != nil {
			return nil, err
		}
		name, err := p.expect(TokIdentifier)
		if err != nil {
			return nil, err
		}
		children := append([]NodeID{}, anns...)
		if p.at(TokExtends) {
			p.advance()
			bound, err := p.parseType()
			if err != nil {
				return nil, err
			}
			children = append(children, bound)
			for p.at(TokAnd) {
				p.advance()
				bound, err := p.parseType()
				if err != nil {
					return nil, err
				}
				children = append(children, bound)
			}
		}
		tp, err := p.arena.newParent(NodeTypeParameter, name.Start, name.End(), children)
		if err != nil {
			return nil, err
		}
		out = append(out, tp)
		if p.at(TokComma) {
			p.advance()
			continue
		}
		break
	}
	if err := p.closeAngleBracket(); err != nil {
		return nil, err
	}
	return out, nil
}

// parseMemberBody parses `{ members... }` shared by class/interface/
// annotation bodies.
func (p *parser) parseMemberBody() ([]NodeID, Token, error) {
	if _, err := p.expect(TokLBrace); err != nil {
		return nil, Token{}, err
	}
	var members []NodeID
	for !p.at(TokRBrace) {
		if p.at(TokEOF) {
			return nil, Token{}, expectedTokenError(p.src, TokRBrace, p.peek())
		}
		if p.at(TokSemi) {
			p.advance()
			continue
		}
		m, err := p.parseMember()
		if err != nil {
			return nil, Token{}, err
		}
		members = append(members, m)
		members = p.attachComments(members)
	}
	end, err := p.expect(TokRBrace)
	if err != nil {
		return nil, Token{}, err
	}
	return members, end, nil
}

// parseMember parses one class/interface/annotation body member: a nested
// type declaration, a static/instance initializer block, a field, or a
// method (including annotation elements, which reuse method syntax with an
// optional `default <value>`).
func (p *parser) parseMember() (NodeID, error) {
	if err := p.enter(); err != nil {
		return NoNode, err
	}
	defer p.leave()

	anns, mods, err := p.parseModifiersAndAnnotations()
	if err != nil {
		return NoNode, err
	}

	switch {
	case p.at(TokClass):
		return p.parseClassLikeDeclaration(NodeClassDeclaration, TokClass, anns)
	case p.at(TokInterface):
		return p.parseClassLikeDeclaration(NodeInterfaceDeclaration, TokInterface, anns)
	case p.at(TokEnum):
		return p.parseEnumDeclaration(anns)
	case p.at(TokAt) && p.peekAt(1).Kind == TokInterface:
		return p.parseAnnotationDeclaration(anns)
	case p.isContextualKeyword("record") && p.peekAt(1).Kind == TokIdentifier:
		if err := p.requireFeature(featureRecords, p.peek().Start, "record declarations"); err != nil {
			return NoNode, err
		}
		return p.parseRecordDeclaration(anns)
	case p.at(TokLBrace):
		return p.parseInitializerBlock()
	case p.at(TokLess):
		// generic method: <T> T m(...)
		tps, err := p.parseTypeParameterList()
		if err != nil {
			return NoNode, err
		}
		return p.parseMethodOrField(anns, tps)
	}

	return p.parseMethodOrField(anns, nil)
}

func (p *parser) parseInitializerBlock() (NodeID, error) {
	block, err := p.parseBlock()
	return block, err
}

// parseMethodOrField parses a declaration starting with a return/field
// type: either `Type name(params) [throws ...] (block|;)` (method) or
// `Type name [= init] (, name ...) ;` (field), disambiguated by whether a
// '(' follows the first declarator name.
func (p *parser) parseMethodOrField(anns []NodeID, typeParams []NodeID) (NodeID, error) {
	start := p.peek()
	if len(anns) > 0 {
		_, s, _ := p.arena.Get(anns[0])
		start = Token{Start: s}
	} else if len(typeParams) > 0 {
		_, s, _ := p.arena.Get(typeParams[0])
		start = Token{Start: s}
	}

	typ, err := p.parseType()
	if err != nil {
		return NoNode, err
	}

	name, err := p.expect(TokIdentifier)
	if err != nil {
		return NoNode, err
	}

	if p.at(TokLParen) {
		return p.parseMethodTail(start, anns, typeParams, typ, name)
	}

	return p.parseFieldTail(start, anns, typ, name)
}

func (p *parser) parseMethodTail(start Token, anns, typeParams []NodeID, returnType NodeID, name Token) (NodeID, error) {
	params, err := p.parseParameterList()
	if err != nil {
		return NoNode, err
	}

	// trailing array dims after the parameter list (C-style method return
	// array syntax, e.g. `String values()[]`) are consumed but don't alter
	// the declared return type node.
	if _, err := p.parseTrailingArrayDims(); err != nil {
		return NoNode, err
	}

	var throwsList []NodeID
	if p.at(TokThrows) {
		p.advance()
		throwsList, err = p.parseTypeList()
		if err != nil {
			return NoNode, err
		}
	}

	children := append([]NodeID{}, anns...)
	children = append(children, typeParams...)
	children = append(children, returnType)
	children = append(children, params...)
	children = append(children, throwsList...)

	var end Token
	if p.isContextualKeyword("default") || p.at(TokDefault) {
		// annotation element default value
		p.advance()
		val, err := p.parseAnnotationValue()
		if err != nil {
			return NoNode, err
		}
		children = append(children, val)
		end, err = p.expect(TokSemi)
		if err != nil {
			return NoNode, err
		}
	} else if p.at(TokLBrace) {
		body, err := p.parseBlock()
		if err != nil {
			return NoNode, err
		}
		children = append(children, body)
		_, _, e := p.arena.Get(body)
		end = Token{Start: e, Length: 0}
	} else {
		end, err = p.expect(TokSemi)
		if err != nil {
			return NoNode, err
		}
	}

	id, err := p.arena.newParent(NodeMethodDeclaration, start.Start, end.End(), children)
	if err != nil {
		return NoNode, err
	}
	p.arena.typeDeclAttrs[id] = TypeDeclarationAttribute{Name: name.Text}
	return id, nil
}

func (p *parser) parseFieldTail(start Token, anns []NodeID, typ NodeID, firstName Token) (NodeID, error) {
	var declarators []NodeID
	decl, err := p.parseVariableDeclaratorRest(firstName)
	if err != nil {
		return NoNode, err
	}
	declarators = append(declarators, decl)

	for p.at(TokComma) {
		p.advance()
		name, err := p.expect(TokIdentifier)
		if err != nil {
			return NoNode, err
		}
		decl, err := p.parseVariableDeclaratorRest(name)
		if err != nil {
			return NoNode, err
		}
		declarators = append(declarators, decl)
	}

	end, err := p.expect(TokSemi)
	if err != nil {
		return NoNode, err
	}

	children := append([]NodeID{}, anns...)
	children = append(children, typ)
	children = append(children, declarators...)
	return p.arena.newParent(NodeFieldDeclaration, start.Start, end.End(), children)
}

// parseVariableDeclaratorRest parses the part of a declarator after its
// name: optional trailing `[]` dims, optional `= initializer`.
func (p *parser) parseVariableDeclaratorRest(name Token) (NodeID, error) {
	var children []NodeID
	if _, err := p.parseTrailingArrayDims(); err != nil {
		return NoNode, err
	}
	end := name
	if p.at(TokAssign) {
		p.advance()
		init, err := p.parseVariableInitializer()
		if err != nil {
			return NoNode, err
		}
		children = append(children, init)
		_, _, e := p.arena.Get(init)
		end = Token{Start: e}
	}
	id, err := p.arena.newParent(NodeVariableDeclarator, name.Start, end.End(), children)
	if err != nil {
		return NoNode, err
	}
	p.arena.typeDeclAttrs[id] = TypeDeclarationAttribute{Name: name.Text}
	return id, nil
}

func (p *parser) parseVariableInitializer() (NodeID, error) {
	if p.at(TokLBrace) {
		return p.parseArrayInitializer()
	}
	return p.parseExpression()
}

func (p *parser) parseArrayInitializer() (NodeID, error) {
	start, err := p.expect(TokLBrace)
	if err != nil {
		return NoNode, err
	}
	var children []NodeID
	for !p.at(TokRBrace) {
		v, err := p.parseVariableInitializer()
		if err != nil {
			return NoNode, err
		}
		children = p.attachComments(children)
		children = append(children, v)
		if p.at(TokComma) {
			p.advance()
			continue
		}
		break
	}
	end, err := p.expect(TokRBrace)
	if err != nil {
		return NoNode, err
	}
	children = p.attachComments(children)
	return p.arena.newParent(NodeArrayInitializer, start.Start, end.End(), children)
}

// parseTrailingArrayDims consumes zero or more `[]` suffixes (C-style array
// declarators, e.g. `int x[]`), returning how many were found. Supplements
// the type-side array suffix to cover the declarator-side spelling too
// (SPEC_FULL.md "Supplemented features").
func (p *parser) parseTrailingArrayDims() (int, error) {
	n := 0
	for p.at(TokLBracket) {
		save := p.ctx.save()
		p.advance()
		if _, err := p.expect(TokRBracket); err != nil {
			p.ctx.restore(save)
			break
		}
		n++
	}
	return n, nil
}

// parseParameterList parses `(Type [final] [@Ann] name, ... [Type... name])`.
func (p *parser) parseParameterList() ([]NodeID, error) {
	if _, err := p.expect(TokLParen); err != nil {
		return nil, err
	}
	var params []NodeID
	for !p.at(TokRParen) {
		param, err := p.parseParameter()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if p.at(TokComma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(TokRParen); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *parser) parseParameter() (NodeID, error) {
	start := p.peek()
	_, mods, err := p.parseModifiersAndAnnotations()
	if err != nil {
		return NoNode, err
	}

	typ, err := p.parseType()
	if err != nil {
		return NoNode, err
	}

	isVarArgs := false
	if p.at(TokEllipsis) {
		p.advance()
		isVarArgs = true
	}

	name, err := p.expect(TokIdentifier)
	if err != nil {
		return NoNode, err
	}

	if _, err := p.parseTrailingArrayDims(); err != nil {
		return NoNode, err
	}

	id, err := p.arena.newParent(NodeParameterDeclaration, start.Start, name.End(), []NodeID{typ})
	if err != nil {
		return NoNode, err
	}
	p.arena.paramAttrs[id] = ParameterAttribute{
		Name:      name.Text,
		IsFinal:   mods.isFinal,
		IsVarArgs: isVarArgs,
	}
	return id, nil
}

// parseEnumDeclaration implements the enum-body state machine of spec §4.4:
// HEADER -> CONSTANTS -> optional ';' -> MEMBERS -> end.
func (p *parser) parseEnumDeclaration(leadingAnns []NodeID) (NodeID, error) {
	start, err := p.expect(TokEnum)
	if err != nil {
		return NoNode, err
	}
	name, err := p.expect(TokIdentifier)
	if err != nil {
		return NoNode, err
	}

	children := append([]NodeID{}, leadingAnns...)

	if p.at(TokImplements) {
		p.advance()
		impl, err := p.parseTypeList()
		if err != nil {
			return NoNode, err
		}
		children = append(children, impl...)
	}

	if _, err := p.expect(TokLBrace); err != nil {
		return NoNode, err
	}

	for !p.at(TokSemi) && !p.at(TokRBrace) {
		c, err := p.parseEnumConstant()
		if err != nil {
			return NoNode, err
		}
		children = append(children, c)
		children = p.attachComments(children)
		if p.at(TokComma) {
			p.advance()
			continue
		}
		break
	}
	if p.at(TokSemi) {
		p.advance()
		for !p.at(TokRBrace) {
			if p.at(TokEOF) {
				return NoNode, expectedTokenError(p.src, TokRBrace, p.peek())
			}
			if p.at(TokSemi) {
				p.advance()
				continue
			}
			m, err := p.parseMember()
			if err != nil {
				return NoNode, err
			}
			children = append(children, m)
			children = p.attachComments(children)
		}
	}

	end, err := p.expect(TokRBrace)
	if err != nil {
		return NoNode, err
	}

	id, err := p.arena.newParent(NodeEnumDeclaration, start.Start, end.End(), children)
	if err != nil {
		return NoNode, err
	}
	p.arena.typeDeclAttrs[id] = TypeDeclarationAttribute{Name: name.Text}
	return id, nil
}

func (p *parser) parseEnumConstant() (NodeID, error) {
	anns, _, err := p.parseModifiersAndAnnotations()
	if err != nil {
		return NoNode, err
	}
	name, err := p.expect(TokIdentifier)
	if err != nil {
		return NoNode, err
	}

	children := append([]NodeID{}, anns...)
	end := name

	if p.at(TokLParen) {
		args, rp, err := p.parseArgumentList()
		if err != nil {
			return NoNode, err
		}
		children = append(children, args...)
		end = rp
	}
	if p.at(TokLBrace) {
		members, rb, err := p.parseMemberBody()
		if err != nil {
			return NoNode, err
		}
		children = append(children, members...)
		end = rb
	}

	id, err := p.arena.newParent(NodeEnumConstant, name.Start, end.End(), children)
	if err != nil {
		return NoNode, err
	}
	p.arena.enumConstAttrs[id] = EnumConstantAttribute{Name: name.Text}
	return id, nil
}

// parseRecordDeclaration parses `record Name(components) [implements ...] {
// body }` (spec §4.4 scenario 4).
func (p *parser) parseRecordDeclaration(leadingAnns []NodeID) (NodeID, error) {
	start := p.advance() // 'record' identifier
	name, err := p.expect(TokIdentifier)
	if err != nil {
		return NoNode, err
	}

	children := append([]NodeID{}, leadingAnns...)

	if p.at(TokLess) {
		tps, err := p.parseTypeParameterList()
		if err != nil {
			return NoNode, err
		}
		children = append(children, tps...)
	}

	components, err := p.parseParameterList()
	if err != nil {
		return NoNode, err
	}
	children = append(children, components...)

	if p.at(TokImplements) {
		p.advance()
		impl, err := p.parseTypeList()
		if err != nil {
			return NoNode, err
		}
		children = append(children, impl...)
	}

	members, end, err := p.parseMemberBody()
	if err != nil {
		return NoNode, err
	}
	children = append(children, members...)

	id, err := p.arena.newParent(NodeRecordDeclaration, start.Start, end.End(), children)
	if err != nil {
		return NoNode, err
	}
	p.arena.typeDeclAttrs[id] = TypeDeclarationAttribute{Name: name.Text}
	return id, nil
}

// parseAnnotationDeclaration parses `@interface Name { elements... }`.
func (p *parser) parseAnnotationDeclaration(leadingAnns []NodeID) (NodeID, error) {
	start := p.advance() // '@'
	if _, err := p.expect(TokInterface); err != nil {
		return NoNode, err
	}
	name, err := p.expect(TokIdentifier)
	if err != nil {
		return NoNode, err
	}

	children := append([]NodeID{}, leadingAnns...)
	members, end, err := p.parseMemberBody()
	if err != nil {
		return NoNode, err
	}
	children = append(children, members...)

	id, err := p.arena.newParent(NodeAnnotationDeclaration, start.Start, end.End(), children)
	if err != nil {
		return NoNode, err
	}
	p.arena.typeDeclAttrs[id] = TypeDeclarationAttribute{Name: name.Text}
	return id, nil
}
