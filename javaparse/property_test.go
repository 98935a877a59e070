package javaparse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test_Parse_emptyInput checks the degenerate empty-source boundary: a
// compilation unit with no children, spanning zero bytes.
func Test_Parse_emptyInput(t *testing.T) {
	assert := assert.New(t)
	res, err := Parse("")
	if !assert.NoError(err) {
		return
	}
	kind, start, end := res.Arena.Get(res.Root)
	assert.Equal(NodeCompilationUnit, kind)
	assert.Equal(uint32(0), start)
	assert.Equal(uint32(0), end)
	assert.Empty(res.Arena.Children(res.Root))
}

// Test_Parse_deeplyNestedParensHitsRecursionLimit exercises the 1000-deep
// recursion cap (spec §4.3, §5, §7): an expression nested far past the cap
// must fail with RecursionLimit, not a stack overflow.
func Test_Parse_deeplyNestedParensHitsRecursionLimit(t *testing.T) {
	assert := assert.New(t)
	depth := 2000
	src := "class T { void m() { int x = " + strings.Repeat("(", depth) + "1" + strings.Repeat(")", depth) + "; } }"
	_, err := Parse(src)
	if !assert.Error(err) {
		return
	}
	pe, ok := err.(ParseError)
	assert.True(ok, "expected a ParseError, got %T: %v", err, err)
	assert.Equal(RecursionLimit, pe.Kind)
}

// Test_Parse_shallowNestedParensSucceeds is the companion boundary check:
// nesting well under the cap must parse cleanly.
func Test_Parse_shallowNestedParensSucceeds(t *testing.T) {
	assert := assert.New(t)
	depth := 10
	src := "class T { void m() { int x = " + strings.Repeat("(", depth) + "1" + strings.Repeat(")", depth) + "; } }"
	_, err := Parse(src)
	assert.NoError(err)
}

// Test_Arena_spansAreContained asserts every node's span contains each of its
// children's spans (spec §3, §5): no child can straddle outside its parent.
func Test_Arena_spansAreContained(t *testing.T) {
	assert := assert.New(t)
	src := `class Outer {
		record Point(int x, int y) {}
		interface Shape {}
		void m(Object o) {
			if (o instanceof String s) {
				System.out.println(s);
			}
			int total = 1 + 2 * 3;
			Runnable r = () -> { total++; };
		}
	}`
	res, err := Parse(src, Version17)
	if !assert.NoError(err) {
		return
	}

	var walk func(id NodeID)
	walk = func(id NodeID) {
		_, pStart, pEnd := res.Arena.Get(id)
		for _, c := range res.Arena.Children(id) {
			_, cStart, cEnd := res.Arena.Get(c)
			assert.GreaterOrEqual(cStart, pStart, "child starts before parent")
			assert.LessOrEqual(cEnd, pEnd, "child ends after parent")
			walk(c)
		}
	}
	walk(res.Root)
}

// Test_Arena_allocationIsPostOrder asserts every node's id is greater than
// every one of its children's ids (spec §3, §5's index-overlay invariant).
func Test_Arena_allocationIsPostOrder(t *testing.T) {
	assert := assert.New(t)
	src := `class T {
		record Point(int x, int y) {}
		void m() {
			int x = 1 + 2;
			for (int i = 0; i < 10; i++) {}
		}
	}`
	res, err := Parse(src, Version17)
	if !assert.NoError(err) {
		return
	}

	var walk func(id NodeID)
	walk = func(id NodeID) {
		for _, c := range res.Arena.Children(id) {
			assert.Greater(int(id), int(c), "parent id must exceed child id")
			walk(c)
		}
	}
	walk(res.Root)
}

// Test_Tokenize_coversEntireSource asserts the flat token stream runs through
// the source buffer in order with no overlaps, ending in an EOF token at the
// end of the source (spec §4.2). Gaps between tokens are not checked.
func Test_Tokenize_coversEntireSource(t *testing.T) {
	assert := assert.New(t)
	src := `package p;
import java.util.List; // trailing comment
/** javadoc */
class T {
	/* block */
	void m(List<String> xs) { String s = "hi\n"; }
}`
	source := NewSource(src)
	toks, err := Tokenize(source)
	if !assert.NoError(err) {
		return
	}

	var cursor uint32
	for i, tok := range toks {
		if tok.Kind == TokEOF {
			assert.Equal(uint32(len(src)), tok.Start, "EOF must sit at end of source")
			continue
		}
		assert.GreaterOrEqual(tok.Start, cursor, "token %d overlaps the previous one", i)
		cursor = tok.End()
	}
}

// Test_Parse_isIdempotent asserts parsing the same source twice produces
// structurally identical trees (spec §1's "pure function of source text").
func Test_Parse_isIdempotent(t *testing.T) {
	assert := assert.New(t)
	src := `class T {
		record Point(int x, int y) {}
		String describe(Object o) {
			return switch (o) {
				case Integer i when i > 0 -> "positive";
				default -> "other";
			};
		}
	}`

	var shapeOf func(a *Arena, id NodeID) string
	shapeOf = func(a *Arena, id NodeID) string {
		kind, start, end := a.Get(id)
		s := kind.String()
		for _, c := range a.Children(id) {
			s += "(" + shapeOf(a, c) + ")"
		}
		_ = start
		_ = end
		return s
	}

	res1, err := Parse(src, Version21)
	if !assert.NoError(err) {
		return
	}
	res2, err := Parse(src, Version21)
	if !assert.NoError(err) {
		return
	}

	assert.Equal(shapeOf(res1.Arena, res1.Root), shapeOf(res2.Arena, res2.Root))
}

// Test_Parse_moduleMissingClosingBraceErrors checks that an unterminated
// module body is rejected with location information rather than hanging or
// silently truncating.
func Test_Parse_moduleMissingClosingBraceErrors(t *testing.T) {
	assert := assert.New(t)
	_, err := Parse("module foo.bar { requires java.base;", Version25)
	if !assert.Error(err) {
		return
	}
	_, ok := err.(ParseError)
	assert.True(ok, "expected a ParseError, got %T: %v", err, err)
}

// Test_Tokenize_numericLiteralSuffixes pins the two numeric-literal edge
// cases the spec calls out explicitly (spec §4.2): an underscore-separated
// binary literal with a long suffix, and a scientific-notation double.
func Test_Tokenize_numericLiteralSuffixes(t *testing.T) {
	assert := assert.New(t)

	toks, err := Tokenize(NewSource("0b1010_1100L"))
	if !assert.NoError(err) || !assert.Len(toks, 2) {
		return
	}
	assert.Equal(TokLongLiteral, toks[0].Kind)

	toks, err = Tokenize(NewSource("3.303e+23"))
	if !assert.NoError(err) || !assert.Len(toks, 2) {
		return
	}
	assert.Equal(TokDoubleLiteral, toks[0].Kind)
}
