package javaparse

// ParseResult is the successful outcome of Parse: the root node id plus the
// arena that owns it (spec §3 "Result", §6).
type ParseResult struct {
	Root  NodeID
	Arena *Arena
}

// Parse is the library's primary entry point: a pure function from source
// text (plus an optional version selector) to (ParseResult, error). On
// failure, no partial AST is exposed; err is a ParseError or LexError value
// carrying location information (spec §1, §6, §7).
func Parse(source string, version ...Version) (ParseResult, error) {
	v := DefaultVersion
	if len(version) > 0 {
		v = version[0]
	}

	src := NewSource(source)
	toks, err := Tokenize(src, v)
	if err != nil {
		return ParseResult{}, err
	}

	ctx := newParseContext(src, toks, v)
	p := &parser{ctx: ctx, arena: NewArena(), src: src}

	root, err := p.parseCompilationUnit()
	if err != nil {
		if _, ok := err.(ParseError); !ok {
			// the arena watchdog reports a plain error; surface it as a
			// ResourceLimit ParseError at the current token.
			err = resourceLimitError(src, p.peek().Start, err.Error())
		}
		return ParseResult{}, err
	}

	return ParseResult{Root: root, Arena: p.arena}, nil
}

// parser drives the arena and consults the version strategy (spec §2).
type parser struct {
	ctx   *parseContext
	arena *Arena
	src   *Source
}

func (p *parser) peek() Token                     { return p.ctx.peek(0) }
func (p *parser) peekAt(k int) Token               { return p.ctx.peek(k) }
func (p *parser) at(kind TokenKind) bool           { return p.peek().Kind == kind }
func (p *parser) atAny(kinds ...TokenKind) bool {
	cur := p.peek().Kind
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	return p.ctx.expect(kind)
}

// advance consumes and returns the current token, queueing any comments it
// stepped over.
func (p *parser) advance() Token {
	return p.ctx.advanceQ()
}

func (p *parser) enter() error { return p.ctx.enter() }
func (p *parser) leave()       { p.ctx.leave() }

// requireFeature rejects a construct the selected language version does not
// enable (spec §4.5, ParseError.Feature).
func (p *parser) requireFeature(f feature, offset uint32, name string) error {
	if !p.ctx.version.supports(f) {
		return featureError(p.src, offset, name, p.ctx.version)
	}
	return nil
}

// identText returns the identifier text of an identifier-like token: a
// plain identifier, or (for contextual keywords) the same spelling since
// those lex as identifiers too.
func (p *parser) identText(tok Token) string {
	return tok.Text
}

// isContextualKeyword reports whether the current identifier token's
// spelling matches a given contextual keyword (spec §4.2, §9).
func (p *parser) isContextualKeyword(word string) bool {
	tok := p.peek()
	return tok.Kind == TokIdentifier && tok.Text == word
}

// isVarKeyword reports whether the current token is the `var` soft keyword
// at a version that enables local-variable type inference (spec §4.5); at
// earlier versions `var` is just an ordinary type/identifier spelling.
func (p *parser) isVarKeyword() bool {
	return p.isContextualKeyword("var") && p.ctx.version.supports(featureVar)
}

func (p *parser) attachComments(children []NodeID) []NodeID {
	for _, pc := range p.ctx.takePendingComments() {
		kind := NodeLineComment
		switch pc.tok.Kind {
		case TokBlockComment:
			kind = NodeBlockComment
		case TokJavadocComment:
			kind = NodeJavadocComment
		}
		id, err := p.arena.newNode(kind, pc.tok.Start, pc.tok.End())
		if err != nil {
			continue
		}
		children = append(children, id)
	}
	return children
}

// parseCompilationUnit is the grammar root: an optional package
// declaration, zero or more import declarations (or a single module
// declaration instead of a type-bearing unit), then zero or more top-level
// type declarations (spec §3, §4.4).
func (p *parser) parseCompilationUnit() (NodeID, error) {
	if err := p.enter(); err != nil {
		return NoNode, err
	}
	defer p.leave()

	var children []NodeID

	// leading comments before anything else still belong to the
	// compilation unit once nothing else claims them.
	children = p.attachComments(children)

	if p.isContextualKeyword("module") || (p.isContextualKeyword("open") && p.peekAt(1).Kind == TokIdentifier && p.peekAt(1).Text == "module") {
		if err := p.requireFeature(featureModules, p.peek().Start, "module declarations"); err != nil {
			return NoNode, err
		}
		mod, err := p.parseModuleDeclaration()
		if err != nil {
			return NoNode, err
		}
		children = append(children, mod)
		children = p.attachComments(children)
	} else {
		if p.at(TokPackage) {
			pkg, err := p.parsePackageDeclaration()
			if err != nil {
				return NoNode, err
			}
			children = append(children, pkg)
			children = p.attachComments(children)
		}

		for p.at(TokImport) {
			imp, err := p.parseImportDeclaration()
			if err != nil {
				return NoNode, err
			}
			children = append(children, imp)
			children = p.attachComments(children)
		}

		for !p.at(TokEOF) {
			if p.at(TokSemi) {
				p.advance() // stray top-level ';' is legal and carries no node
				continue
			}
			decl, err := p.parseTypeDeclaration()
			if err != nil {
				return NoNode, err
			}
			children = append(children, decl)
			children = p.attachComments(children)
		}
	}

	eof := p.peek()
	return p.arena.newParent(NodeCompilationUnit, 0, eof.Start, children)
}

func (p *parser) parsePackageDeclaration() (NodeID, error) {
	start, err := p.expect(TokPackage)
	if err != nil {
		return NoNode, err
	}
	name, err := p.parseQualifiedNameRaw()
	if err != nil {
		return NoNode, err
	}
	end, err := p.expect(TokSemi)
	if err != nil {
		return NoNode, err
	}

	id, err := p.arena.newNode(NodePackageDeclaration, start.Start, end.End())
	if err != nil {
		return NoNode, err
	}
	p.arena.packageAttrs[id] = PackageAttribute{Name: name}
	return id, nil
}

func (p *parser) parseImportDeclaration() (NodeID, error) {
	start, err := p.expect(TokImport)
	if err != nil {
		return NoNode, err
	}

	isStatic := false
	if p.at(TokStatic) {
		p.advance()
		isStatic = true
	}

	var sb []string
	first, err := p.expect(TokIdentifier)
	if err != nil {
		return NoNode, err
	}
	sb = append(sb, first.Text)
	for p.at(TokDot) {
		p.advance()
		if p.at(TokStar) {
			p.advance()
			sb = append(sb, "*")
			break
		}
		tok, err := p.expect(TokIdentifier)
		if err != nil {
			return NoNode, err
		}
		sb = append(sb, tok.Text)
	}

	end, err := p.expect(TokSemi)
	if err != nil {
		return NoNode, err
	}

	name := joinDots(sb)
	id, err := p.arena.newNode(NodeImportDeclaration, start.Start, end.End())
	if err != nil {
		return NoNode, err
	}
	p.arena.importAttrs[id] = ImportAttribute{QualifiedName: name, IsStatic: isStatic}
	return id, nil
}

func joinDots(parts []string) string {
	out := ""
	for i, s := range parts {
		if i > 0 {
			out += "."
		}
		out += s
	}
	return out
}

// parseQualifiedNameRaw reads a dotted identifier sequence and returns its
// spelling without allocating a node (used by package/import declarations,
// which allocate their own node with an attribute instead of a
// QUALIFIED_NAME child).
func (p *parser) parseQualifiedNameRaw() (string, error) {
	tok, err := p.expect(TokIdentifier)
	if err != nil {
		return "", err
	}
	name := tok.Text
	for p.at(TokDot) && p.peekAt(1).Kind == TokIdentifier {
		p.advance()
		next, err := p.expect(TokIdentifier)
		if err != nil {
			return "", err
		}
		name += "." + next.Text
	}
	return name, nil
}

// parseModuleDeclaration parses `[open] module <name> { <directives> }`
// (spec §4.4 "Module declaration" state machine).
func (p *parser) parseModuleDeclaration() (NodeID, error) {
	start := p.peek()
	if p.isContextualKeyword("open") {
		p.advance()
	}
	p.advance() // 'module' identifier

	_, err := p.parseQualifiedNameRaw()
	if err != nil {
		return NoNode, err
	}

	if _, err := p.expect(TokLBrace); err != nil {
		return NoNode, err
	}

	var children []NodeID
	for !p.at(TokRBrace) {
		if p.at(TokEOF) {
			return NoNode, expectedTokenError(p.src, TokRBrace, p.peek())
		}
		dir, err := p.parseModuleDirective()
		if err != nil {
			return NoNode, err
		}
		children = append(children, dir)
		children = p.attachComments(children)
	}
	end, err := p.expect(TokRBrace)
	if err != nil {
		return NoNode, err
	}

	return p.arena.newParent(NodeModuleDeclaration, start.Start, end.End(), children)
}

func (p *parser) parseModuleDirective() (NodeID, error) {
	start := p.peek()

	switch {
	case p.isContextualKeyword("requires"):
		p.advance()
		if p.isContextualKeyword("transitive") {
			p.advance()
		} else if p.at(TokStatic) {
			p.advance()
		}
		if _, err := p.parseQualifiedNameRaw(); err != nil {
			return NoNode, err
		}
	case p.isContextualKeyword("exports") || p.isContextualKeyword("opens"):
		p.advance()
		if _, err := p.parseQualifiedNameRaw(); err != nil {
			return NoNode, err
		}
		if p.isContextualKeyword("to") {
			p.advance()
			if err := p.parseNameList(); err != nil {
				return NoNode, err
			}
		}
	case p.isContextualKeyword("uses"):
		p.advance()
		if _, err := p.parseQualifiedNameRaw(); err != nil {
			return NoNode, err
		}
	case p.isContextualKeyword("provides"):
		p.advance()
		if _, err := p.parseQualifiedNameRaw(); err != nil {
			return NoNode, err
		}
		if p.isContextualKeyword("with") {
			p.advance()
			if err := p.parseNameList(); err != nil {
				return NoNode, err
			}
		}
	default:
		pos := p.src.Position(p.peek().Start)
		return NoNode, ParseError{
			Kind:    ExpectedToken,
			Line:    pos.Line,
			Column:  pos.Column,
			Message: "Expected module directive but found " + p.peek().Kind.String(),
		}
	}

	end, err := p.expect(TokSemi)
	if err != nil {
		return NoNode, err
	}
	return p.arena.newNode(NodeModuleDirective, start.Start, end.End())
}

func (p *parser) parseNameList() error {
	if _, err := p.parseQualifiedNameRaw(); err != nil {
		return err
	}
	for p.at(TokComma) {
		p.advance()
		if _, err := p.parseQualifiedNameRaw(); err != nil {
			return err
		}
	}
	return nil
}
