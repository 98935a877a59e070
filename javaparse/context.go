package javaparse

import "github.com/google/uuid"

const maxParseDepth = 1000

// pendingComment is a comment token buffered until the structural node that
// will contain it closes (spec §4.3, §4.4, §9 "Pending-comment queue").
type pendingComment struct {
	tok Token
}

// snapshot is a lightweight save point for speculative parsing: cursor
// position and pending-comment queue length only, never the arena (spec
// §4.3, §9 "Speculative parsing").
type snapshot struct {
	cursor        int
	pendingLen    int
	diagCount     int
}

// parseContext is the single-threaded cursor/state object a parser drives.
// Distinct contexts share no state (spec §4.3, §5).
type parseContext struct {
	id uuid.UUID

	src     *Source
	tokens  []Token // non-comment tokens only; see all for the full stream
	all     []Token // full stream including comments, for PeekIncludingComments
	nonCIdx []int   // index into `all` for each entry of `tokens`

	cursor int // index into tokens

	pending []pendingComment
	depth   int
	version Version
}

func newParseContext(src *Source, all []Token, version Version) *parseContext {
	var nonComment []Token
	var nonCIdx []int
	for i, t := range all {
		if !t.Kind.IsComment() {
			nonComment = append(nonComment, t)
			nonCIdx = append(nonCIdx, i)
		}
	}

	return &parseContext{
		id:      uuid.New(),
		src:     src,
		tokens:  nonComment,
		all:     all,
		nonCIdx: nonCIdx,
		version: version,
	}
}

// peek returns the k-th non-comment token after the cursor without
// consuming it.
func (c *parseContext) peek(k int) Token {
	idx := c.cursor + k
	if idx >= len(c.tokens) {
		return c.tokens[len(c.tokens)-1] // EOF
	}
	return c.tokens[idx]
}

// peekIncludingComments returns the k-th token (including comments) after
// the cursor's corresponding position in the full stream.
func (c *parseContext) peekIncludingComments(k int) Token {
	var base int
	if c.cursor < len(c.nonCIdx) {
		base = c.nonCIdx[c.cursor]
	} else {
		base = len(c.all) - 1
	}
	idx := base + k
	if idx >= len(c.all) {
		return c.all[len(c.all)-1]
	}
	if idx < 0 {
		idx = 0
	}
	return c.all[idx]
}

// advance consumes the current token and returns it. Any comments the
// cursor steps over are picked up separately by queueComments, which the
// parser calls with the before/after cursor positions (spec §4.3's
// pending-comment queue).
func (c *parseContext) advance() Token {
	tok := c.peek(0)
	if c.cursor < len(c.tokens) {
		c.cursor++
	}
	return tok
}

// advanceQ is advance() plus the comment-queueing step, the combination
// every production outside of expect() should use.
func (c *parseContext) advanceQ() Token {
	prev := c.cursor
	tok := c.advance()
	c.queueComments(prev, c.cursor)
	return tok
}

// queueComments appends every comment token in the full stream between the
// full-stream index of the previous cursor and the current cursor. Called
// by the parser after advance() to keep the pending queue in source order;
// split out from advance() so callers can control exactly when comments are
// folded in relative to node allocation.
func (c *parseContext) queueComments(prevCursor, curCursor int) {
	var lo, hi int
	if prevCursor < len(c.nonCIdx) {
		lo = c.nonCIdx[prevCursor]
	} else {
		lo = len(c.all)
	}
	if curCursor < len(c.nonCIdx) {
		hi = c.nonCIdx[curCursor]
	} else {
		hi = len(c.all)
	}
	for i := lo; i < hi; i++ {
		if c.all[i].Kind.IsComment() {
			c.pending = append(c.pending, pendingComment{tok: c.all[i]})
		}
	}
}

// takePendingComments drains and returns every comment queued so far, in
// source order, for attachment as children of the node now closing.
func (c *parseContext) takePendingComments() []pendingComment {
	out := c.pending
	c.pending = nil
	return out
}

// expect consumes the current token if it matches kind; otherwise it
// returns a ParseError of the "Expected X but found Y" form (spec §4.3,
// §6).
func (c *parseContext) expect(kind TokenKind) (Token, error) {
	tok := c.peek(0)
	if tok.Kind != kind {
		return Token{}, expectedTokenError(c.src, kind, tok)
	}
	prev := c.cursor
	c.advance()
	c.queueComments(prev, c.cursor)
	return tok, nil
}

// save returns a snapshot of cursor + pending-comment queue length,
// suitable for bounded speculation (spec §4.3, §9).
func (c *parseContext) save() snapshot {
	return snapshot{cursor: c.cursor, pendingLen: len(c.pending)}
}

// restore rewinds the cursor and pending-comment queue to a prior snapshot.
// Never rewinds arena allocations: nodes a probe allocated before the
// restore stay in the arena, unreferenced (spec §4.4, §9).
func (c *parseContext) restore(s snapshot) {
	c.cursor = s.cursor
	if s.pendingLen < len(c.pending) {
		c.pending = c.pending[:s.pendingLen]
	}
}

// enter increments the depth counter, failing with RecursionLimit if the
// hard cap of 1000 is breached (spec §4.3, §5, §7).
func (c *parseContext) enter() error {
	c.depth++
	if c.depth > maxParseDepth {
		tok := c.peek(0)
		return recursionLimitError(c.src, tok.Start, maxParseDepth)
	}
	return nil
}

// leave decrements the depth counter. Always pair with a successful enter.
func (c *parseContext) leave() {
	c.depth--
}
